package wrc

import (
	"github.com/pkg/errors"
)

// A TableEntry is one string of a message or string table. The
// string is kept in its on-disk encoding and converted on request.
type TableEntry struct {
	identifier uint32
	data       []byte
	codepage   Codepage
}

func NewTableEntry(identifier uint32, data []byte, codepage Codepage) (*TableEntry, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(ErrInvalidArgument, "empty table entry data")
	}
	return newTableEntry(identifier, data, codepage)
}

// Message tables may produce empty entries.
func newTableEntry(identifier uint32, data []byte, codepage Codepage) (*TableEntry, error) {
	if len(data) > MAX_TABLE_ENTRY_SIZE {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"table entry data size %d exceeds maximum", len(data))
	}

	if !codepage.valid() {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"unsupported codepage %d", int(codepage))
	}

	if codepage == CODEPAGE_UTF16_LITTLE_ENDIAN && len(data)%2 != 0 {
		return nil, errors.Wrapf(ErrOddUTF16Length,
			"table entry 0x%08x has %d bytes", identifier, len(data))
	}

	buffer := make([]byte, len(data))
	copy(buffer, data)

	return &TableEntry{
		identifier: identifier,
		data:       buffer,
		codepage:   codepage,
	}, nil
}

func (self *TableEntry) Identifier() uint32 {
	return self.identifier
}

func (self *TableEntry) Codepage() Codepage {
	return self.codepage
}

// Data returns a copy of the raw encoded bytes.
func (self *TableEntry) Data() []byte {
	result := make([]byte, len(self.data))
	copy(result, self.data)
	return result
}

func (self *TableEntry) decode() (string, error) {
	if self.codepage == CODEPAGE_UTF16_LITTLE_ENDIAN {
		return ParseUTF16String(self.data)
	}

	result, err := decodeByteStream(self.data, self.codepage)
	if err != nil {
		return "", err
	}
	return truncateAtNul(result), nil
}

func (self *TableEntry) UTF8Size() (int, error) {
	value, err := self.decode()
	if err != nil {
		return 0, err
	}
	return utf8StringSize(value), nil
}

func (self *TableEntry) CopyUTF8(dst []byte) error {
	value, err := self.decode()
	if err != nil {
		return err
	}
	return copyUTF8String(value, dst)
}

func (self *TableEntry) UTF16Size() (int, error) {
	value, err := self.decode()
	if err != nil {
		return 0, err
	}
	return utf16StringSize(value), nil
}

func (self *TableEntry) CopyUTF16(dst []uint16) error {
	value, err := self.decode()
	if err != nil {
		return err
	}
	return copyUTF16String(value, dst)
}

// UTF8String returns the decoded string without the terminator.
func (self *TableEntry) UTF8String() (string, error) {
	return self.decode()
}

func (self *TableEntry) String() string {
	value, _ := self.decode()
	return value
}
