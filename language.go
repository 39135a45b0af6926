package wrc

import (
	"fmt"

	"github.com/pkg/errors"
)

// Value is one decoded resource value. The set of implementations is
// closed: *StringTable, *MessageTable, *MuiValues, *VersionValues,
// *VersionString, *Manifest, *WevtManifest and *RawData.
type Value interface {
	isValue()
}

// RawData holds the payload of resource types without a decoder.
type RawData struct {
	Identifier uint32 `json:"identifier"`
	Name       string `json:"name,omitempty"`
	Data       []byte `json:"-"`
}

func (self *RawData) isValue() {}

// LanguageEntry holds the values decoded for one language, in the
// order they were decoded.
type LanguageEntry struct {
	LanguageIdentifier uint32

	// Items of this language that failed to decode. Their values are
	// missing from the entry.
	ItemErrors []error

	values []Value
}

func (self *LanguageEntry) appendValue(value Value) {
	self.values = append(self.values, value)
}

func (self *LanguageEntry) NumberOfValues() int {
	return len(self.values)
}

func (self *LanguageEntry) Values() []Value {
	return self.values
}

func (self *LanguageEntry) Value(index int) (Value, bool) {
	if index < 0 || index >= len(self.values) {
		return nil, false
	}
	return self.values[index], true
}

// LanguageTable maps language identifiers (LCID) to their entry.
type LanguageTable struct {
	entries []*LanguageEntry
	lookup  map[uint32]*LanguageEntry
}

func NewLanguageTable() *LanguageTable {
	return &LanguageTable{
		lookup: make(map[uint32]*LanguageEntry),
	}
}

func (self *LanguageTable) Insert(entry *LanguageEntry) error {
	_, pres := self.lookup[entry.LanguageIdentifier]
	if pres {
		return errors.Wrapf(ErrAlreadySet,
			"language 0x%04x", entry.LanguageIdentifier)
	}

	self.entries = append(self.entries, entry)
	self.lookup[entry.LanguageIdentifier] = entry
	return nil
}

func (self *LanguageTable) Get(language_identifier uint32) (*LanguageEntry, bool) {
	entry, pres := self.lookup[language_identifier]
	return entry, pres
}

func (self *LanguageTable) Len() int {
	return len(self.entries)
}

func (self *LanguageTable) EntryByIndex(index int) (*LanguageEntry, error) {
	if index < 0 || index >= len(self.entries) {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"language index %d out of bounds", index)
	}
	return self.entries[index], nil
}

func (self *LanguageTable) LanguageIdentifier(index int) (uint32, error) {
	entry, err := self.EntryByIndex(index)
	if err != nil {
		return 0, err
	}
	return entry.LanguageIdentifier, nil
}

func formatIdentifier(identifier uint32) string {
	return fmt.Sprintf("%d", identifier)
}

func FormatLanguageIdentifier(language_identifier uint32) string {
	return fmt.Sprintf("0x%04x", language_identifier)
}
