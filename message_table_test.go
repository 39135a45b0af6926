package wrc

import (
	"encoding/binary"
	"os"
	"testing"

	"github.com/alecthomas/assert"
	"github.com/pkg/errors"
)

func readTestData(t *testing.T, name string) []byte {
	data, err := os.ReadFile("testdata/" + name)
	assert.NoError(t, err)
	return data
}

func TestMessageTable(t *testing.T) {
	data := readTestData(t, "message_table.bin")

	table, err := ParseMessageTable(data, CODEPAGE_ASCII)
	assert.NoError(t, err)
	assert.Equal(t, 3, table.NumberOfMessages())

	identifier, err := table.Identifier(0)
	assert.NoError(t, err)
	assert.Equal(t, uint32(1), identifier)

	identifier, err = table.Identifier(2)
	assert.NoError(t, err)
	assert.Equal(t, uint32(0x3e8), identifier)

	size, err := table.UTF8StringSize(0)
	assert.NoError(t, err)
	assert.Equal(t, 11, size)

	value, err := table.UTF8String(0)
	assert.NoError(t, err)
	assert.Equal(t, "Category\r\n", value)

	value, err = table.UTF8String(1)
	assert.NoError(t, err)
	assert.Equal(t, "My message with parameters %1 %2.\r\n", value)

	index, pres := table.IndexByIdentifier(0x3e8)
	assert.True(t, pres)
	assert.Equal(t, 2, index)

	_, pres = table.IndexByIdentifier(0x3e9)
	assert.False(t, pres)

	_, err = table.Entry(3)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	// Both string sizes count the terminator.
	for i := 0; i < table.NumberOfMessages(); i++ {
		utf8_size, err := table.UTF8StringSize(i)
		assert.NoError(t, err)

		utf16_size, err := table.UTF16StringSize(i)
		assert.NoError(t, err)
		assert.Equal(t, utf8_size, utf16_size)

		units := make([]uint16, utf16_size)
		assert.NoError(t, table.CopyUTF16String(i, units))
		assert.Equal(t, uint16(0), units[utf16_size-1])
	}
}

func TestMessageTableErrors(t *testing.T) {
	data := readTestData(t, "message_table.bin")

	_, err := ParseMessageTable(data[:3], CODEPAGE_ASCII)
	assert.True(t, errors.Is(err, ErrTruncatedInput))

	_, err = ParseMessageTable(data, CODEPAGE_UTF16_LITTLE_ENDIAN)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	// The strings are cut off.
	_, err = ParseMessageTable(data[:0x40], CODEPAGE_ASCII)
	assert.Error(t, err)

	// More descriptors than fit in the data.
	corrupt := append([]byte{}, data...)
	binary.LittleEndian.PutUint32(corrupt, 1000)
	_, err = ParseMessageTable(corrupt, CODEPAGE_ASCII)
	assert.True(t, errors.Is(err, ErrSizeOutOfBounds))

	// first > last
	corrupt = append([]byte{}, data...)
	binary.LittleEndian.PutUint32(corrupt[4:], 3)
	_, err = ParseMessageTable(corrupt, CODEPAGE_ASCII)
	assert.True(t, errors.Is(err, ErrRangeInverted))

	// String offset pointing into the descriptors.
	corrupt = append([]byte{}, data...)
	binary.LittleEndian.PutUint32(corrupt[12:], 8)
	_, err = ParseMessageTable(corrupt, CODEPAGE_ASCII)
	assert.True(t, errors.Is(err, ErrOffsetOutOfBounds))

	// String record smaller than its header.
	corrupt = append([]byte{}, data...)
	binary.LittleEndian.PutUint16(corrupt[0x1c:], 2)
	_, err = ParseMessageTable(corrupt, CODEPAGE_ASCII)
	assert.True(t, errors.Is(err, ErrSizeOutOfBounds))
}

func TestMessageTableOddUnicode(t *testing.T) {
	data := []byte{
		0x01, 0x00, 0x00, 0x00,
		0x05, 0x00, 0x00, 0x00, 0x05, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00,

		// Size 9, unicode: five bytes of text can not be UTF-16.
		0x09, 0x00, 0x01, 0x00, 'H', 'i', '!', 0x00, 0x00,
	}

	_, err := ParseMessageTable(data, CODEPAGE_WINDOWS_1252)
	assert.True(t, errors.Is(err, ErrOddUTF16Length))

	// The same record as single byte text is fine.
	data[0x12] = 0
	table, err := ParseMessageTable(data, CODEPAGE_WINDOWS_1252)
	assert.NoError(t, err)
	assert.Equal(t, 1, table.NumberOfMessages())

	entry, err := table.Entry(0)
	assert.NoError(t, err)
	assert.Equal(t, "Hi!", entry.String())
}

func TestMessageTableUnicode(t *testing.T) {
	data := []byte{
		// One block with a single message.
		0x01, 0x00, 0x00, 0x00,
		0x05, 0x00, 0x00, 0x00, 0x05, 0x00, 0x00, 0x00, 0x10, 0x00, 0x00, 0x00,

		// Size 12, unicode: "Hi" followed by two NULs.
		0x0c, 0x00, 0x01, 0x00, 'H', 0x00, 'i', 0x00, 0x00, 0x00, 0x00, 0x00,
	}

	table, err := ParseMessageTable(data, CODEPAGE_WINDOWS_1252)
	assert.NoError(t, err)
	assert.Equal(t, 1, table.NumberOfMessages())

	entry, err := table.Entry(0)
	assert.NoError(t, err)
	assert.Equal(t, CODEPAGE_UTF16_LITTLE_ENDIAN, entry.Codepage())
	assert.Equal(t, "Hi", entry.String())

	// Trailing NULs are not part of the entry.
	assert.Equal(t, 4, len(entry.Data()))

	// A record holding only its header is an empty message.
	data[0x10] = 0x04
	data = data[:0x14]
	table, err = ParseMessageTable(data, CODEPAGE_WINDOWS_1252)
	assert.NoError(t, err)

	size, err := table.UTF8StringSize(0)
	assert.NoError(t, err)
	assert.Equal(t, 1, size)
}

func TestMessageTableTrailingNuls(t *testing.T) {
	data := readTestData(t, "message_table.bin")

	table, err := ParseMessageTable(data, CODEPAGE_ASCII)
	assert.NoError(t, err)

	// Records are packed back to back from the first string offset.
	offset := 0x1c
	for _, entry := range table.Entries() {
		size := int(binary.LittleEndian.Uint16(data[offset:]))
		text := data[offset+MESSAGE_TABLE_STRING_HEADER : offset+size]

		stripped := entry.Data()
		assert.Equal(t, text[:len(stripped)], stripped)
		for _, c := range text[len(stripped):] {
			assert.Equal(t, byte(0), c)
		}
		offset += size
	}
	assert.Equal(t, len(data), offset)
}

func TestMinimumSizes(t *testing.T) {
	_, err := ParseDataDescriptor(make([]byte, DATA_DESCRIPTOR_SIZE-1))
	assert.True(t, errors.Is(err, ErrTruncatedInput))

	_, err = ParseMessageTable(make([]byte, 3), CODEPAGE_ASCII)
	assert.True(t, errors.Is(err, ErrTruncatedInput))

	_, err = ParseStringTable(make([]byte, 1), 1)
	assert.True(t, errors.Is(err, ErrTruncatedInput))

	mui := readTestData(t, "mui.bin")
	_, err = ParseMui(mui[:MUI_HEADER_LENGTH-1])
	assert.True(t, errors.Is(err, ErrTruncatedInput))

	_, err = ParseWevtManifest([]byte("CRIM"))
	assert.True(t, errors.Is(err, ErrTruncatedInput))

	version := make([]byte, VERSION_BLOCK_MIN_SIZE-1)
	version[0] = byte(len(version))
	_, err = ParseVersionInformation(version, nil)
	assert.True(t, errors.Is(err, ErrSizeOutOfBounds))

	_, err = ParseVersionInformation(make([]byte, VERSION_BLOCK_MIN_SIZE), nil)
	assert.True(t, errors.Is(err, ErrTruncatedInput))
}
