package wrc

import (
	"testing"

	"github.com/alecthomas/assert"
	"github.com/pkg/errors"
)

func TestStringTable(t *testing.T) {
	data := readTestData(t, "string_table.bin")

	table, err := ParseStringTable(data, 63)
	assert.NoError(t, err)
	assert.Equal(t, 1, table.NumberOfStrings())
	assert.Equal(t, uint32(63), table.BaseIdentifier)

	// The string is in the 9th slot of the block.
	identifier, err := table.Identifier(0)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x3e8), identifier)

	size, err := table.UTF8StringSize(0)
	assert.NoError(t, err)
	assert.Equal(t, 10, size)

	buffer := make([]byte, size)
	assert.NoError(t, table.CopyUTF8String(0, buffer))
	assert.Equal(t, []byte("My string\x00"), buffer)

	index, pres := table.IndexByIdentifier(0x3e8)
	assert.True(t, pres)
	assert.Equal(t, 0, index)

	_, pres = table.IndexByIdentifier(992)
	assert.False(t, pres)
}

func TestStringTableFirstSlot(t *testing.T) {
	data := []byte{0x09, 0x00}
	for _, c := range "My string" {
		data = append(data, byte(c), 0)
	}
	for i := 1; i < 16; i++ {
		data = append(data, 0, 0)
	}

	table, err := ParseStringTable(data, 63)
	assert.NoError(t, err)
	assert.Equal(t, 1, table.NumberOfStrings())

	identifier, err := table.Identifier(0)
	assert.NoError(t, err)
	assert.Equal(t, uint32(992), identifier)
	assert.Equal(t, StringIdentifier(63, 0), identifier)

	size, err := table.UTF8StringSize(0)
	assert.NoError(t, err)
	assert.Equal(t, 10, size)
}

func TestStringTableErrors(t *testing.T) {
	data := readTestData(t, "string_table.bin")

	_, err := ParseStringTable(data, 0)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	_, err = ParseStringTable(data[:1], 1)
	assert.True(t, errors.Is(err, ErrTruncatedInput))

	// The string runs past the end of the block.
	_, err = ParseStringTable(data[:30], 63)
	assert.True(t, errors.Is(err, ErrSizeOutOfBounds))
}

func TestStringTableSlots(t *testing.T) {
	data := readTestData(t, "string_table.bin")

	table, err := ParseStringTable(data, 63)
	assert.NoError(t, err)

	for slot := uint32(0); slot < 16; slot++ {
		_, pres := table.IndexByIdentifier(StringIdentifier(63, slot))
		assert.Equal(t, slot == 8, pres)
	}
}
