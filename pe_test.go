package wrc

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/alecthomas/assert"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/binparsergen/reader"
)

const TEST_SECTION_OFFSET = 0x400

// Wraps a resource section into a minimal 64 bit PE image.
func buildPEFile(section []byte, with_data_directory bool) []byte {
	result := make([]byte, TEST_SECTION_OFFSET)

	binary.LittleEndian.PutUint16(result[0:], IMAGE_DOS_SIGNATURE)
	binary.LittleEndian.PutUint32(result[0x3c:], 0x40)

	nt_header := result[0x40:]
	binary.LittleEndian.PutUint32(nt_header[0:], IMAGE_NT_SIGNATURE)
	binary.LittleEndian.PutUint16(nt_header[4:], 0x8664)
	binary.LittleEndian.PutUint16(nt_header[6:], 1)
	binary.LittleEndian.PutUint16(nt_header[20:], 0xf0)

	optional_header := nt_header[4+IMAGE_FILE_HEADER_SIZE:]
	binary.LittleEndian.PutUint16(optional_header[0:], IMAGE_NT_OPTIONAL_HDR64_MAGIC)
	binary.LittleEndian.PutUint32(optional_header[24:], 0x40000000)
	binary.LittleEndian.PutUint32(optional_header[28:], 0x1)
	binary.LittleEndian.PutUint32(optional_header[108:], MAX_NUMBER_OF_RVA_AND_SIZE)

	if with_data_directory {
		directory := optional_header[112+IMAGE_DIRECTORY_ENTRY_RESOURCE*IMAGE_DATA_DIRECTORY_SIZE:]
		binary.LittleEndian.PutUint32(directory[0:], TEST_VIRTUAL_ADDRESS)
		binary.LittleEndian.PutUint32(directory[4:], uint32(len(section)))
	}

	section_header := optional_header[0xf0:]
	copy(section_header, ".rsrc")
	binary.LittleEndian.PutUint32(section_header[8:], uint32(len(section)))
	binary.LittleEndian.PutUint32(section_header[12:], TEST_VIRTUAL_ADDRESS)
	binary.LittleEndian.PutUint32(section_header[16:], uint32(len(section)))
	binary.LittleEndian.PutUint32(section_header[20:], TEST_SECTION_OFFSET)
	binary.LittleEndian.PutUint32(section_header[36:], 0x40000040)

	return append(result, section...)
}

func TestPEFile(t *testing.T) {
	section := buildResourceSection(TEST_VIRTUAL_ADDRESS, testResourceTree(t))

	reader, err := reader.NewPagedReader(
		bytes.NewReader(buildPEFile(section, true)), 4096, 100)
	assert.NoError(t, err)

	pe_file, err := NewPEFile(reader)
	assert.NoError(t, err)
	assert.Equal(t, "IMAGE_FILE_MACHINE_AMD64", pe_file.Machine)
	assert.Equal(t, "1970-01-01T00:00:00Z", pe_file.TimeDateStamp)
	assert.Equal(t, 1, len(pe_file.Sections))
	assert.Equal(t, ".rsrc", pe_file.Sections[0].Name)
	assert.Equal(t, "-r-", pe_file.Sections[0].Perm)
	assert.Equal(t, uint64(0x140000000), pe_file.nt_header.ImageBase)

	file_offset, size, rva, err := pe_file.ResourceSection()
	assert.NoError(t, err)
	assert.Equal(t, int64(TEST_SECTION_OFFSET), file_offset)
	assert.Equal(t, int64(len(section)), size)
	assert.Equal(t, uint32(TEST_VIRTUAL_ADDRESS), rva)

	stream, err := pe_file.OpenResourceStream(StreamOptions{})
	assert.NoError(t, err)
	assert.Equal(t, 6, stream.NumberOfResources())

	version := GetVersionInformation(stream)
	assert.Equal(t, "Windows Resource test file", version["FileDescription"])
}

func TestPEFileSectionFallback(t *testing.T) {
	section := buildResourceSection(TEST_VIRTUAL_ADDRESS, testResourceTree(t))

	pe_file, err := NewPEFile(bytes.NewReader(buildPEFile(section, false)))
	assert.NoError(t, err)

	stream, err := pe_file.OpenResourceStream(StreamOptions{})
	assert.NoError(t, err)
	assert.Equal(t, 3, len(GetMessages(stream)))
}

func TestPEFileErrors(t *testing.T) {
	data := buildPEFile([]byte{}, true)

	corrupt := append([]byte{}, data...)
	corrupt[0] = 0
	_, err := NewPEFile(bytes.NewReader(corrupt))
	assert.True(t, errors.Is(err, ErrBadSignature))

	_, err = NewPEFile(bytes.NewReader(data[:0x20]))
	assert.True(t, errors.Is(err, ErrIO))

	// No section maps the resource directory.
	pe_file, err := NewPEFile(bytes.NewReader(data))
	assert.NoError(t, err)

	_, err = pe_file.OpenResourceStream(StreamOptions{})
	assert.True(t, errors.Is(err, ErrOffsetOutOfBounds))
}
