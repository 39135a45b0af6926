package wrc

import (
	"encoding/binary"
	"encoding/hex"

	"github.com/pkg/errors"
)

const (
	MUI_SIGNATURE     = 0xfecdfecd
	MUI_HEADER_LENGTH = 0x84

	mui_slot_table_offset = 0x54
)

// Values of the MUI resource. Blobs are UTF-16LE and nil when the
// resource does not carry them.
type MuiValues struct {
	Size                     uint32
	Version                  uint32
	FileType                 uint32
	SystemAttributes         uint32
	UltimateFallbackLocation uint32
	ServiceChecksum          []byte
	Checksum                 []byte

	MainName         []byte
	MuiName          []byte
	Language         []byte
	FallbackLanguage []byte
}

func (self *MuiValues) isValue() {}

type muiSlot struct {
	name     string
	surfaced bool
}

var mui_slots = []muiSlot{
	{"main name", true},
	{"main identifier", false},
	{"MUI name", true},
	{"MUI identifier", false},
	{"language", true},
	{"fallback language", true},
}

func ParseMui(data []byte) (*MuiValues, error) {
	if len(data) < 4 || binary.LittleEndian.Uint32(data) != MUI_SIGNATURE {
		return nil, errors.Wrap(ErrBadSignature, "MUI resource")
	}

	if len(data) < MUI_HEADER_LENGTH {
		return nil, errors.Wrapf(ErrTruncatedInput,
			"MUI resource needs %d bytes, got %d", MUI_HEADER_LENGTH, len(data))
	}

	c := newCursor(data)
	_ = c.seek(4)

	result := &MuiValues{}
	result.Size, _ = c.uint32()
	result.Version, _ = c.uint32()
	_, _ = c.uint32()
	result.FileType, _ = c.uint32()
	result.SystemAttributes, _ = c.uint32()
	result.UltimateFallbackLocation, _ = c.uint32()
	result.ServiceChecksum, _ = c.take(16)
	result.Checksum, _ = c.take(16)

	if int64(result.Size) > int64(len(data)) {
		return nil, errors.Wrapf(ErrSizeOutOfBounds,
			"MUI resource size %d exceeds data size %d", result.Size, len(data))
	}

	_ = c.seek(mui_slot_table_offset)
	blobs := make([][]byte, 0, len(mui_slots))

	for _, slot := range mui_slots {
		offset, _ := c.uint32()
		size, _ := c.uint32()

		blob, err := readMuiSlot(data, slot.name, offset, size)
		if err != nil {
			return nil, err
		}
		if !slot.surfaced {
			blob = nil
		}
		blobs = append(blobs, blob)
	}

	result.MainName = blobs[0]
	result.MuiName = blobs[2]
	// Each language has its own slot. Some MUI readers fill the
	// language from the fallback slot, so a file that only sets the
	// fallback shows a language there and none here.
	result.Language = blobs[4]
	result.FallbackLanguage = blobs[5]

	return result, nil
}

func readMuiSlot(data []byte, name string, offset, size uint32) ([]byte, error) {
	if size == 0 {
		return nil, nil
	}

	if offset < MUI_HEADER_LENGTH || int64(offset) >= int64(len(data)) {
		return nil, errors.Wrapf(ErrOffsetOutOfBounds,
			"MUI %s offset 0x%x", name, offset)
	}

	if int64(size) > int64(len(data))-int64(offset) {
		return nil, errors.Wrapf(ErrSizeOutOfBounds,
			"MUI %s size %d at offset 0x%x", name, size, offset)
	}

	result := make([]byte, size)
	copy(result, data[offset:])
	return result, nil
}

// Returns the decoded field and whether the field is available.
func muiString(blob []byte) (string, bool, error) {
	if blob == nil {
		return "", false, nil
	}
	value, err := ParseUTF16String(blob)
	if err != nil {
		return "", true, err
	}
	return value, true, nil
}

func muiUTF8Size(blob []byte) (int, bool, error) {
	value, pres, err := muiString(blob)
	if !pres || err != nil {
		return 0, pres, err
	}
	return utf8StringSize(value), true, nil
}

func muiUTF16Size(blob []byte) (int, bool, error) {
	value, pres, err := muiString(blob)
	if !pres || err != nil {
		return 0, pres, err
	}
	return utf16StringSize(value), true, nil
}

func muiCopyUTF8(blob []byte, dst []byte) (bool, error) {
	value, pres, err := muiString(blob)
	if !pres || err != nil {
		return pres, err
	}
	return true, copyUTF8String(value, dst)
}

func muiCopyUTF16(blob []byte, dst []uint16) (bool, error) {
	value, pres, err := muiString(blob)
	if !pres || err != nil {
		return pres, err
	}
	return true, copyUTF16String(value, dst)
}

func (self *MuiValues) UTF8MainNameSize() (int, bool, error) {
	return muiUTF8Size(self.MainName)
}

func (self *MuiValues) CopyUTF8MainName(dst []byte) (bool, error) {
	return muiCopyUTF8(self.MainName, dst)
}

func (self *MuiValues) UTF16MainNameSize() (int, bool, error) {
	return muiUTF16Size(self.MainName)
}

func (self *MuiValues) CopyUTF16MainName(dst []uint16) (bool, error) {
	return muiCopyUTF16(self.MainName, dst)
}

func (self *MuiValues) UTF8MuiNameSize() (int, bool, error) {
	return muiUTF8Size(self.MuiName)
}

func (self *MuiValues) CopyUTF8MuiName(dst []byte) (bool, error) {
	return muiCopyUTF8(self.MuiName, dst)
}

func (self *MuiValues) UTF16MuiNameSize() (int, bool, error) {
	return muiUTF16Size(self.MuiName)
}

func (self *MuiValues) CopyUTF16MuiName(dst []uint16) (bool, error) {
	return muiCopyUTF16(self.MuiName, dst)
}

func (self *MuiValues) UTF8LanguageSize() (int, bool, error) {
	return muiUTF8Size(self.Language)
}

func (self *MuiValues) CopyUTF8Language(dst []byte) (bool, error) {
	return muiCopyUTF8(self.Language, dst)
}

func (self *MuiValues) UTF16LanguageSize() (int, bool, error) {
	return muiUTF16Size(self.Language)
}

func (self *MuiValues) CopyUTF16Language(dst []uint16) (bool, error) {
	return muiCopyUTF16(self.Language, dst)
}

func (self *MuiValues) UTF8FallbackLanguageSize() (int, bool, error) {
	return muiUTF8Size(self.FallbackLanguage)
}

func (self *MuiValues) CopyUTF8FallbackLanguage(dst []byte) (bool, error) {
	return muiCopyUTF8(self.FallbackLanguage, dst)
}

func (self *MuiValues) UTF16FallbackLanguageSize() (int, bool, error) {
	return muiUTF16Size(self.FallbackLanguage)
}

func (self *MuiValues) CopyUTF16FallbackLanguage(dst []uint16) (bool, error) {
	return muiCopyUTF16(self.FallbackLanguage, dst)
}

// The main and MUI name fields hold several NUL separated names, the
// accessors above only return the first one.
func (self *MuiValues) MainNames() []string {
	return splitMultiString(self.MainName)
}

func (self *MuiValues) MuiNames() []string {
	return splitMultiString(self.MuiName)
}

func (self *MuiValues) ChecksumString() string {
	return hex.EncodeToString(self.Checksum)
}

func (self *MuiValues) ServiceChecksumString() string {
	return hex.EncodeToString(self.ServiceChecksum)
}

func splitMultiString(blob []byte) []string {
	result := []string{}
	for len(blob) >= 2 {
		length, _ := utf16Length(blob)
		if length == 0 {
			break
		}
		result = append(result, UTF16ToStringLE(blob[:length*2]))
		blob = blob[CapInt64(int64(length*2+2), int64(len(blob))):]
	}
	return result
}
