package wrc

import (
	"encoding/binary"
	"testing"

	"github.com/alecthomas/assert"
	"github.com/pkg/errors"
)

func TestMui(t *testing.T) {
	data := readTestData(t, "mui.bin")

	values, err := ParseMui(data)
	assert.NoError(t, err)

	assert.Equal(t, uint32(232), values.Size)
	assert.Equal(t, uint32(0x10000), values.Version)
	assert.Equal(t, uint32(17), values.FileType)
	assert.Equal(t, uint32(1), values.UltimateFallbackLocation)
	assert.Equal(t, "9d73623d3f20933558e7057bb7f4d003",
		values.ServiceChecksumString())
	assert.Equal(t, "fbf0a98bbedbf7b9b03907e006c40eff", values.ChecksumString())

	size, pres, err := values.UTF8MainNameSize()
	assert.NoError(t, err)
	assert.True(t, pres)
	assert.Equal(t, 14, size)

	buffer := make([]byte, size)
	pres, err = values.CopyUTF8MainName(buffer)
	assert.NoError(t, err)
	assert.True(t, pres)
	assert.Equal(t, []byte("WEVT_TEMPLATE\x00"), buffer)
	assert.Equal(t, []string{"WEVT_TEMPLATE", "MUI"}, values.MainNames())

	size, pres, err = values.UTF8MuiNameSize()
	assert.NoError(t, err)
	assert.True(t, pres)
	assert.Equal(t, 4, size)

	size, pres, err = values.UTF16MuiNameSize()
	assert.NoError(t, err)
	assert.True(t, pres)
	assert.Equal(t, 4, size)

	// The resource only sets the fallback language slot.
	_, pres, err = values.UTF8LanguageSize()
	assert.NoError(t, err)
	assert.False(t, pres)

	pres, err = values.CopyUTF16Language(make([]uint16, 16))
	assert.NoError(t, err)
	assert.False(t, pres)

	size, pres, err = values.UTF8FallbackLanguageSize()
	assert.NoError(t, err)
	assert.True(t, pres)
	assert.Equal(t, 6, size)

	units := make([]uint16, 6)
	pres, err = values.CopyUTF16FallbackLanguage(units)
	assert.NoError(t, err)
	assert.True(t, pres)
	assert.Equal(t, []uint16{'e', 'n', '-', 'U', 'S', 0}, units)

	pres, err = values.CopyUTF16FallbackLanguage(units[:5])
	assert.True(t, pres)
	assert.True(t, errors.Is(err, ErrBufferTooSmall))

	// Parsing is idempotent.
	again, err := ParseMui(data)
	assert.NoError(t, err)
	assert.Equal(t, values, again)
}

func TestMuiErrors(t *testing.T) {
	data := readTestData(t, "mui.bin")

	corrupt := append([]byte{}, data...)
	corrupt[0] = 0
	_, err := ParseMui(corrupt)
	assert.True(t, errors.Is(err, ErrBadSignature))

	_, err = ParseMui(data[:0x80])
	assert.True(t, errors.Is(err, ErrTruncatedInput))

	// The declared size is larger than the data.
	_, err = ParseMui(data[:0xe0])
	assert.True(t, errors.Is(err, ErrSizeOutOfBounds))

	// Main name inside the header.
	corrupt = append([]byte{}, data...)
	binary.LittleEndian.PutUint32(corrupt[0x54:], 0x10)
	_, err = ParseMui(corrupt)
	assert.True(t, errors.Is(err, ErrOffsetOutOfBounds))

	// Main name past the end of the data.
	corrupt = append([]byte{}, data...)
	binary.LittleEndian.PutUint32(corrupt[0x58:], 0x1000)
	_, err = ParseMui(corrupt)
	assert.True(t, errors.Is(err, ErrSizeOutOfBounds))
}
