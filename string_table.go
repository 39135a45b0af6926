package wrc

import (
	"github.com/pkg/errors"
)

// STRINGTABLE resources hold blocks of 16 length prefixed UTF-16
// strings. The block's name identifier selects the string
// identifiers: ((base - 1) << 4) | slot.
type StringTable struct {
	entryTable

	BaseIdentifier uint32
}

func (self *StringTable) isValue() {}

func (self *StringTable) NumberOfStrings() int {
	return len(self.entries)
}

func StringIdentifier(base_identifier uint32, slot uint32) uint32 {
	return ((base_identifier - 1) << 4) | slot
}

func ParseStringTable(data []byte, base_identifier uint32) (*StringTable, error) {
	if base_identifier == 0 {
		return nil, errors.Wrap(ErrInvalidArgument,
			"string table base identifier must be 1 based")
	}

	if len(data) < 2 {
		return nil, errors.Wrapf(ErrTruncatedInput,
			"string table needs at least 2 bytes, got %d", len(data))
	}

	result := &StringTable{BaseIdentifier: base_identifier}
	c := newCursor(data)

	for slot := uint32(0); c.remaining() >= 2; slot++ {
		length, _ := c.uint16()
		if length == 0 {
			continue
		}

		text, err := c.take(int(length) * 2)
		if err != nil {
			return nil, errors.WithMessagef(err, "string table slot %d", slot)
		}

		entry, err := NewTableEntry(StringIdentifier(base_identifier, slot),
			text, CODEPAGE_UTF16_LITTLE_ENDIAN)
		if err != nil {
			return nil, err
		}
		result.entries = append(result.entries, entry)
	}

	return result, nil
}
