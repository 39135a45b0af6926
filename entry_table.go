package wrc

import "github.com/pkg/errors"

// Shared query surface of message and string tables. Entries follow
// the on-disk record order.
type entryTable struct {
	entries []*TableEntry
}

func (self *entryTable) Entries() []*TableEntry {
	return self.entries
}

func (self *entryTable) Entry(index int) (*TableEntry, error) {
	if index < 0 || index >= len(self.entries) {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"entry index %d out of bounds (%d entries)", index, len(self.entries))
	}
	return self.entries[index], nil
}

func (self *entryTable) Identifier(index int) (uint32, error) {
	entry, err := self.Entry(index)
	if err != nil {
		return 0, err
	}
	return entry.Identifier(), nil
}

// IndexByIdentifier is a linear scan. A missing identifier is not an
// error.
func (self *entryTable) IndexByIdentifier(identifier uint32) (int, bool) {
	for idx, entry := range self.entries {
		if entry.Identifier() == identifier {
			return idx, true
		}
	}
	return 0, false
}

func (self *entryTable) UTF8StringSize(index int) (int, error) {
	entry, err := self.Entry(index)
	if err != nil {
		return 0, err
	}
	return entry.UTF8Size()
}

func (self *entryTable) UTF8String(index int) (string, error) {
	entry, err := self.Entry(index)
	if err != nil {
		return "", err
	}
	return entry.UTF8String()
}

func (self *entryTable) CopyUTF8String(index int, dst []byte) error {
	entry, err := self.Entry(index)
	if err != nil {
		return err
	}
	return entry.CopyUTF8(dst)
}

func (self *entryTable) UTF16StringSize(index int) (int, error) {
	entry, err := self.Entry(index)
	if err != nil {
		return 0, err
	}
	return entry.UTF16Size()
}

func (self *entryTable) CopyUTF16String(index int, dst []uint16) error {
	entry, err := self.Entry(index)
	if err != nil {
		return err
	}
	return entry.CopyUTF16(dst)
}
