package wrc

import (
	"github.com/pkg/errors"
)

// References: https://github.com/nsacyber/Windows-Event-Log-Messages/blob/master/welm/WelmLibrary/EventMessageFile.cs

const (
	MESSAGE_TABLE_DESCRIPTOR_SIZE = 12
	MESSAGE_TABLE_STRING_HEADER   = 4

	MESSAGE_FLAG_UNICODE = 0x0001
)

type MessageTable struct {
	entryTable
}

func (self *MessageTable) isValue() {}

func (self *MessageTable) NumberOfMessages() int {
	return len(self.entries)
}

// ParseMessageTable decodes a MESSAGETABLE resource. Non unicode
// messages are stored in codepage.
func ParseMessageTable(data []byte, codepage Codepage) (*MessageTable, error) {
	if len(data) < 4 {
		return nil, errors.Wrapf(ErrTruncatedInput,
			"message table needs at least 4 bytes, got %d", len(data))
	}

	if !codepage.IsByteStream() {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"unsupported ASCII codepage %d", int(codepage))
	}

	c := newCursor(data)
	number_of_descriptors, _ := c.uint32()
	if int64(number_of_descriptors) >
		int64(len(data)-4)/MESSAGE_TABLE_DESCRIPTOR_SIZE {
		return nil, errors.Wrapf(ErrSizeOutOfBounds,
			"%d message descriptors do not fit in %d bytes",
			number_of_descriptors, len(data))
	}

	result := &MessageTable{}
	for i := uint32(0); i < number_of_descriptors; i++ {
		first, _ := c.uint32()
		last, _ := c.uint32()
		offset, _ := c.uint32()

		if first > last {
			return nil, errors.Wrapf(ErrRangeInverted,
				"descriptor %d: 0x%08x > 0x%08x", i, first, last)
		}

		// Strings are packed back to back so the offset advances by
		// each record's size, not by the index.
		string_offset := int64(offset)
		for id := uint64(first); id <= uint64(last); id++ {
			entry, size, err := parseMessageString(
				data, string_offset, int64(c.offset), uint32(id), codepage)
			if err != nil {
				return nil, err
			}

			result.entries = append(result.entries, entry)
			if len(result.entries) > MAX_MESSAGES {
				return nil, errors.Wrapf(ErrSizeOutOfBounds,
					"more than %d messages", MAX_MESSAGES)
			}
			string_offset += size
		}
	}

	return result, nil
}

// Reads one {size, flags, text} record. data_offset is the end of the
// descriptors consumed so far - strings may not overlap them.
func parseMessageString(data []byte, offset, data_offset int64,
	identifier uint32, codepage Codepage) (*TableEntry, int64, error) {
	data_size := int64(len(data))

	if offset < data_offset || offset > data_size-MESSAGE_TABLE_STRING_HEADER {
		return nil, 0, errors.Wrapf(ErrOffsetOutOfBounds,
			"message 0x%08x string offset 0x%x", identifier, offset)
	}

	c := newCursor(data)
	_ = c.seek(int(offset))
	size, _ := c.uint16()
	flags, _ := c.uint16()

	if size < MESSAGE_TABLE_STRING_HEADER {
		return nil, 0, errors.Wrapf(ErrSizeOutOfBounds,
			"message 0x%08x string size %d smaller than its header",
			identifier, size)
	}

	text, err := c.take(int(size) - MESSAGE_TABLE_STRING_HEADER)
	if err != nil {
		return nil, 0, errors.WithMessagef(err, "message 0x%08x", identifier)
	}

	entry_codepage := codepage
	if flags&MESSAGE_FLAG_UNICODE != 0 {
		entry_codepage = CODEPAGE_UTF16_LITTLE_ENDIAN
		if len(text)%2 != 0 {
			return nil, 0, errors.Wrapf(ErrOddUTF16Length,
				"message 0x%08x has %d bytes of UTF-16 text",
				identifier, len(text))
		}
	}

	entry, err := newTableEntry(identifier,
		stripTrailingNuls(text, entry_codepage == CODEPAGE_UTF16_LITTLE_ENDIAN),
		entry_codepage)
	if err != nil {
		return nil, 0, err
	}
	return entry, int64(size), nil
}

// Removes trailing NUL characters but keeps at least one character so
// the entry always carries a terminated string.
func stripTrailingNuls(text []byte, is_utf16 bool) []byte {
	if is_utf16 {
		end := len(text)
		for end > 2 && text[end-2] == 0 && text[end-1] == 0 {
			end -= 2
		}
		return text[:end]
	}

	end := len(text)
	for end > 1 && text[end-1] == 0 {
		end--
	}
	return text[:end]
}
