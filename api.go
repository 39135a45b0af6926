package wrc

import (
	"io"

	"github.com/Velocidex/ordereddict"
	"github.com/pkg/errors"
)

// Exported API

type Section struct {
	Perm       string `json:"perm"`
	Name       string `json:"name"`
	FileOffset int64  `json:"file_offset"`
	VMA        int64  `json:"vma"`
	Size       int64  `json:"size"`
}

type PEFile struct {
	reader    io.ReaderAt
	nt_header *IMAGE_NT_HEADERS

	// Used to resolve RVA to file offsets.
	rva_resolver *RVAResolver

	Machine       string     `json:"machine"`
	TimeDateStamp string     `json:"TimeDateStamp"`
	Sections      []*Section `json:"sections"`
}

func NewPEFile(reader io.ReaderAt) (*PEFile, error) {
	nt_header, err := parseNTHeaders(reader)
	if err != nil {
		return nil, err
	}

	result := &PEFile{
		reader:        reader,
		nt_header:     nt_header,
		rva_resolver:  NewRVAResolver(nt_header),
		Machine:       nt_header.MachineName(),
		TimeDateStamp: NewUnixTimeStamp(nt_header.TimeDateStamp).String(),
	}

	for _, section := range nt_header.Sections {
		result.Sections = append(result.Sections, &Section{
			Perm:       section.Permissions(),
			Name:       section.Name,
			FileOffset: int64(section.PointerToRawData),
			VMA:        int64(section.VirtualAddress),
			Size:       int64(section.SizeOfRawData),
		})
	}

	return result, nil
}

// ResourceSection locates the resource directory. Returns the file
// offset, the number of bytes up to the end of the section and the
// virtual address of the directory.
func (self *PEFile) ResourceSection() (int64, int64, uint32, error) {
	rva := self.nt_header.DataDirectory(IMAGE_DIRECTORY_ENTRY_RESOURCE).VirtualAddress
	if rva == 0 {
		section := self.nt_header.SectionByName(".rsrc")
		if section == nil {
			return 0, 0, 0, errors.Wrap(ErrUnsupported, "no resource section")
		}
		rva = section.VirtualAddress
	}

	run, pres := self.rva_resolver.GetRun(rva)
	if !pres {
		return 0, 0, 0, errors.Wrapf(ErrOffsetOutOfBounds,
			"resource directory RVA 0x%08x is not mapped", rva)
	}

	file_offset := int64(rva-run.VirtualAddress) + int64(run.PhysicalAddress)
	size := int64(run.VirtualEnd - rva)

	return file_offset, size, rva, nil
}

// OpenResourceStream opens the resource section as a Stream.
func (self *PEFile) OpenResourceStream(options StreamOptions) (*Stream, error) {
	file_offset, size, rva, err := self.ResourceSection()
	if err != nil {
		return nil, err
	}

	return OpenStream(NewOffsetReader(self.reader, file_offset, size),
		size, rva, options)
}

// GetVersionInformation flattens the strings of all VERSION resources
// into a map. Later languages do not overwrite earlier ones.
func GetVersionInformation(stream *Stream) map[string]string {
	result := make(map[string]string)

	resource, pres := stream.ResourceByType(RESOURCE_TYPE_VERSION)
	if !pres {
		return result
	}

	for _, language_identifier := range resource.LanguageIdentifiers() {
		values, err := resource.VersionInformation(language_identifier)
		if err != nil {
			Logger().Sugar().Debugf("GetVersionInformation: %v", err)
			continue
		}

		for _, item := range values.Strings {
			_, pres := result[item.Key]
			if !pres {
				result[item.Key] = item.Value
			}
		}
	}

	return result
}

type Message struct {
	Id       int64  `json:"Id"`
	EventId  int    `json:"EventId"`
	Language uint32 `json:"Language"`
	Message  string `json:"Message"`
}

// GetMessages returns the messages of every language of the message
// table. Undecodable languages are skipped.
func GetMessages(stream *Stream) []*Message {
	result := []*Message{}

	resource, pres := stream.ResourceByType(RESOURCE_TYPE_MESSAGE_TABLE)
	if !pres {
		return result
	}

	for _, language_identifier := range resource.LanguageIdentifiers() {
		table, err := resource.MessageTable(language_identifier)
		if err != nil {
			Logger().Sugar().Debugf("GetMessages: %v", err)
			continue
		}

		for _, entry := range table.Entries() {
			// Bottom 16 bits are the event ID.
			result = append(result, &Message{
				Id:       int64(entry.Identifier()),
				EventId:  int(entry.Identifier() & 0xFFFF),
				Language: language_identifier,
				Message:  entry.String(),
			})
		}
	}

	return result
}

type ResourceString struct {
	Id       uint32 `json:"Id"`
	Language uint32 `json:"Language"`
	Value    string `json:"Value"`
}

func GetStrings(stream *Stream) []*ResourceString {
	result := []*ResourceString{}

	resource, pres := stream.ResourceByType(RESOURCE_TYPE_STRING)
	if !pres {
		return result
	}

	for _, language_identifier := range resource.LanguageIdentifiers() {
		tables, err := resource.StringTables(language_identifier)
		if err != nil {
			Logger().Sugar().Debugf("GetStrings: %v", err)
			continue
		}

		for _, table := range tables {
			for _, entry := range table.Entries() {
				result = append(result, &ResourceString{
					Id:       entry.Identifier(),
					Language: language_identifier,
					Value:    entry.String(),
				})
			}
		}
	}

	return result
}

func MuiToDict(values *MuiValues) *ordereddict.Dict {
	result := ordereddict.NewDict().
		Set("FileType", values.FileType).
		Set("SystemAttributes", values.SystemAttributes).
		Set("UltimateFallbackLocation", values.UltimateFallbackLocation).
		Set("ServiceChecksum", values.ServiceChecksumString()).
		Set("Checksum", values.ChecksumString()).
		Set("MainNames", values.MainNames()).
		Set("MuiNames", values.MuiNames())

	language, pres, _ := muiString(values.Language)
	if pres {
		result.Set("Language", language)
	}

	fallback, pres, _ := muiString(values.FallbackLanguage)
	if pres {
		result.Set("FallbackLanguage", fallback)
	}

	return result
}

func GetMuiInformation(stream *Stream) *ordereddict.Dict {
	result := ordereddict.NewDict()

	resource, pres := stream.ResourceByType(RESOURCE_TYPE_MUI)
	if !pres {
		return result
	}

	for _, language_identifier := range resource.LanguageIdentifiers() {
		values, err := resource.Mui(language_identifier)
		if err != nil {
			result.Set(FormatLanguageIdentifier(language_identifier), err.Error())
			continue
		}
		result.Set(FormatLanguageIdentifier(language_identifier), MuiToDict(values))
	}

	return result
}

func VersionToDict(values *VersionValues) *ordereddict.Dict {
	translations := []string{}
	for _, translation := range values.Translations {
		translations = append(translations, translation.String())
	}

	strings := ordereddict.NewDict()
	for _, item := range values.Strings {
		strings.Set(item.Key, item.Value)
	}

	return ordereddict.NewDict().
		Set("FileVersion", FormatVersion(values.FileVersion)).
		Set("ProductVersion", FormatVersion(values.ProductVersion)).
		Set("Translations", translations).
		Set("Strings", strings)
}

// ResourcesToDict summarizes the resource tree without decoding
// any payloads.
func ResourcesToDict(stream *Stream) []*ordereddict.Dict {
	result := []*ordereddict.Dict{}

	for _, resource := range stream.Resources() {
		for _, item := range resource.Items() {
			for _, language := range item.SubItems() {
				row := ordereddict.NewDict().
					Set("Type", resource.Name()).
					Set("Name", item.NameString()).
					Set("Language", FormatLanguageIdentifier(language.Identifier()))

				descriptor, err := language.DataDescriptor()
				if err != nil {
					row.Set("Error", err.Error())
				} else {
					row.Set("VirtualAddress", descriptor.VirtualAddress).
						Set("Size", descriptor.Size)
				}
				result = append(result, row)
			}
		}
	}

	return result
}
