package wrc

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

const (
	IMAGE_DOS_SIGNATURE = 0x5a4d
	IMAGE_NT_SIGNATURE  = 0x4550

	IMAGE_NT_OPTIONAL_HDR32_MAGIC = 0x10b
	IMAGE_NT_OPTIONAL_HDR64_MAGIC = 0x20b

	IMAGE_DIRECTORY_ENTRY_RESOURCE = 2

	IMAGE_FILE_HEADER_SIZE     = 20
	IMAGE_SECTION_HEADER_SIZE  = 40
	IMAGE_DATA_DIRECTORY_SIZE  = 8
	MAX_NUMBER_OF_SECTIONS     = 96
	MAX_NUMBER_OF_RVA_AND_SIZE = 16
)

var machine_names = map[uint16]string{
	0x014c: "IMAGE_FILE_MACHINE_I386",
	0x0166: "IMAGE_FILE_MACHINE_R4000",
	0x01c0: "IMAGE_FILE_MACHINE_ARM",
	0x01c4: "IMAGE_FILE_MACHINE_ARMNT",
	0x0200: "IMAGE_FILE_MACHINE_IA64",
	0x8664: "IMAGE_FILE_MACHINE_AMD64",
	0xaa64: "IMAGE_FILE_MACHINE_ARM64",
}

type IMAGE_DATA_DIRECTORY struct {
	VirtualAddress uint32
	DirSize        uint32
}

type IMAGE_SECTION_HEADER struct {
	Name             string
	VirtualSize      uint32
	VirtualAddress   uint32
	SizeOfRawData    uint32
	PointerToRawData uint32
	Characteristics  uint32
}

func (self *IMAGE_SECTION_HEADER) Permissions() string {
	characteristics := self.Characteristics

	result := ""
	if characteristics&0x20000000 > 0 {
		result += "x"
	} else {
		result += "-"
	}

	if characteristics&0x40000000 > 0 {
		result += "r"
	} else {
		result += "-"
	}

	if characteristics&0x80000000 > 0 {
		result += "w"
	} else {
		result += "-"
	}

	return result
}

type IMAGE_NT_HEADERS struct {
	Offset int64

	Machine              uint16
	NumberOfSections     uint16
	TimeDateStamp        uint32
	SizeOfOptionalHeader uint16
	Magic                uint16
	ImageBase            uint64

	DataDirectories []IMAGE_DATA_DIRECTORY
	Sections        []*IMAGE_SECTION_HEADER
}

func (self *IMAGE_NT_HEADERS) Is64Bit() bool {
	return self.Magic == IMAGE_NT_OPTIONAL_HDR64_MAGIC
}

func (self *IMAGE_NT_HEADERS) MachineName() string {
	name, pres := machine_names[self.Machine]
	if pres {
		return name
	}
	return fmt.Sprintf("0x%04x", self.Machine)
}

func (self *IMAGE_NT_HEADERS) DataDirectory(index int) IMAGE_DATA_DIRECTORY {
	if index < 0 || index >= len(self.DataDirectories) {
		return IMAGE_DATA_DIRECTORY{}
	}
	return self.DataDirectories[index]
}

func (self *IMAGE_NT_HEADERS) SectionByName(name string) *IMAGE_SECTION_HEADER {
	for _, section := range self.Sections {
		if section.Name == name {
			return section
		}
	}
	return nil
}

func parseNTHeaders(reader io.ReaderAt) (*IMAGE_NT_HEADERS, error) {
	dos_header, err := readBuffer(reader, 0, 0x40)
	if err != nil {
		return nil, errors.WithMessage(err, "IMAGE_DOS_HEADER")
	}

	if binary.LittleEndian.Uint16(dos_header) != IMAGE_DOS_SIGNATURE {
		return nil, errors.Wrap(ErrBadSignature, "Invalid IMAGE_DOS_HEADER")
	}

	result := &IMAGE_NT_HEADERS{
		Offset: int64(binary.LittleEndian.Uint32(dos_header[0x3c:])),
	}

	header, err := readBuffer(reader, result.Offset, 4+IMAGE_FILE_HEADER_SIZE+2)
	if err != nil {
		return nil, errors.WithMessage(err, "IMAGE_NT_HEADERS")
	}

	if binary.LittleEndian.Uint32(header) != IMAGE_NT_SIGNATURE {
		return nil, errors.Wrap(ErrBadSignature, "Invalid IMAGE_NT_HEADERS")
	}

	result.Machine = binary.LittleEndian.Uint16(header[4:])
	result.NumberOfSections = binary.LittleEndian.Uint16(header[6:])
	result.TimeDateStamp = binary.LittleEndian.Uint32(header[8:])
	result.SizeOfOptionalHeader = binary.LittleEndian.Uint16(header[20:])
	result.Magic = binary.LittleEndian.Uint16(header[24:])

	optional_header_offset := result.Offset + 4 + IMAGE_FILE_HEADER_SIZE
	optional_header, err := readBuffer(reader, optional_header_offset,
		int(result.SizeOfOptionalHeader))
	if err != nil {
		return nil, errors.WithMessage(err, "IMAGE_OPTIONAL_HEADER")
	}

	// The 64 bit header has a wider ImageBase so the data directory
	// moves down.
	var base_offset, count_offset, directory_offset int
	switch result.Magic {
	case IMAGE_NT_OPTIONAL_HDR32_MAGIC:
		base_offset, count_offset, directory_offset = 28, 92, 96
	case IMAGE_NT_OPTIONAL_HDR64_MAGIC:
		base_offset, count_offset, directory_offset = 24, 108, 112
	default:
		return nil, errors.Wrapf(ErrBadSignature,
			"unsupported optional header magic 0x%04x", result.Magic)
	}

	c := newCursor(optional_header)
	if c.seek(base_offset) == nil {
		if result.Is64Bit() {
			low, _ := c.uint32()
			high, _ := c.uint32()
			result.ImageBase = uint64(high)<<32 | uint64(low)
		} else {
			base, _ := c.uint32()
			result.ImageBase = uint64(base)
		}
	}

	if c.seek(count_offset) == nil {
		number_of_directories, _ := c.uint32()
		_ = c.seek(directory_offset)
		for i := uint32(0); i < CapUint32(number_of_directories,
			MAX_NUMBER_OF_RVA_AND_SIZE); i++ {
			va, err := c.uint32()
			if err != nil {
				break
			}
			size, err := c.uint32()
			if err != nil {
				break
			}
			result.DataDirectories = append(result.DataDirectories,
				IMAGE_DATA_DIRECTORY{VirtualAddress: va, DirSize: size})
		}
	}

	// The sections start immediately after the OptionalHeader:
	offset := optional_header_offset + int64(result.SizeOfOptionalHeader)
	number_of_sections := CapUint16(result.NumberOfSections,
		MAX_NUMBER_OF_SECTIONS)

	for i := 0; i < int(number_of_sections); i++ {
		data, err := readBuffer(reader, offset, IMAGE_SECTION_HEADER_SIZE)
		if err != nil {
			return nil, errors.WithMessagef(err, "IMAGE_SECTION_HEADER %d", i)
		}

		section := &IMAGE_SECTION_HEADER{
			Name:             strings.TrimRight(string(data[:8]), "\x00"),
			VirtualSize:      binary.LittleEndian.Uint32(data[8:]),
			VirtualAddress:   binary.LittleEndian.Uint32(data[12:]),
			SizeOfRawData:    binary.LittleEndian.Uint32(data[16:]),
			PointerToRawData: binary.LittleEndian.Uint32(data[20:]),
			Characteristics:  binary.LittleEndian.Uint32(data[36:]),
		}

		DebugPrint("Section %v at 0x%08x (%d bytes)",
			section.Name, section.VirtualAddress, section.SizeOfRawData)

		if section.Characteristics > 0 {
			result.Sections = append(result.Sections, section)
		}
		offset += IMAGE_SECTION_HEADER_SIZE
	}

	return result, nil
}
