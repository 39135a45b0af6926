package wrc

import (
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Decode state of the values of one language of a resource.
type ResourceState int

const (
	// The tree position is known, nothing was read yet.
	RESOURCE_STATE_UNRESOLVED ResourceState = iota

	// The data descriptors were read, the payload is not decoded.
	RESOURCE_STATE_DESCRIPTOR_READ

	// The values are decoded and cached.
	RESOURCE_STATE_DECODED
)

func (self ResourceState) String() string {
	switch self {
	case RESOURCE_STATE_UNRESOLVED:
		return "Unresolved"
	case RESOURCE_STATE_DESCRIPTOR_READ:
		return "DescriptorRead"
	case RESOURCE_STATE_DECODED:
		return "Decoded"
	}
	return "Unknown"
}

// One payload of a resource: a language leaf and its name node.
type resourceLeaf struct {
	name *ResourceNode
	leaf *ResourceNode
}

// A Resource is one first level entry of the resource tree (a resource
// type). Values are decoded per language on first access and cached.
type Resource struct {
	stream *Stream
	node   *ResourceNode

	language_identifiers []uint32

	mu          sync.Mutex
	languages   *LanguageTable
	descriptors map[*ResourceNode]*DataDescriptor
	states      map[uint32]ResourceState
}

func newResource(stream *Stream, node *ResourceNode) *Resource {
	result := &Resource{
		stream:      stream,
		node:        node,
		languages:   NewLanguageTable(),
		descriptors: make(map[*ResourceNode]*DataDescriptor),
		states:      make(map[uint32]ResourceState),
	}

	seen := make(map[uint32]bool)
	for _, name := range node.Children {
		for _, language := range name.Children {
			if !language.IsLeaf() || seen[language.Identifier] {
				continue
			}
			seen[language.Identifier] = true
			result.language_identifiers = append(
				result.language_identifiers, language.Identifier)
		}
	}

	return result
}

func (self *Resource) Identifier() uint32 {
	return self.node.Identifier
}

func (self *Resource) Name() string {
	return self.node.NameString()
}

func (self *Resource) Type() ResourceType {
	return self.node.Type
}

func (self *Resource) Header() *ResourceNodeHeader {
	return self.node.Header
}

func (self *Resource) NumberOfItems() int {
	return len(self.node.Children)
}

func (self *Resource) ItemByIndex(index int) (*ResourceItem, error) {
	if index < 0 || index >= len(self.node.Children) {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"item index %d out of bounds", index)
	}

	return &ResourceItem{
		stream: self.stream,
		node:   self.node.Children[index],
	}, nil
}

func (self *Resource) Items() []*ResourceItem {
	result := make([]*ResourceItem, 0, len(self.node.Children))
	for _, child := range self.node.Children {
		result = append(result, &ResourceItem{stream: self.stream, node: child})
	}
	return result
}

func (self *Resource) NumberOfLanguages() int {
	return len(self.language_identifiers)
}

func (self *Resource) LanguageIdentifiers() []uint32 {
	return self.language_identifiers
}

func (self *Resource) LanguageIdentifier(index int) (uint32, error) {
	if index < 0 || index >= len(self.language_identifiers) {
		return 0, errors.Wrapf(ErrInvalidArgument,
			"language index %d out of bounds", index)
	}
	return self.language_identifiers[index], nil
}

func (self *Resource) LanguageState(language_identifier uint32) ResourceState {
	self.mu.Lock()
	defer self.mu.Unlock()

	return self.states[language_identifier]
}

// ValueByLanguageIdentifier returns the value at value_index for the
// language. The bool is false when there is no such value.
func (self *Resource) ValueByLanguageIdentifier(
	resource_type ResourceType, language_identifier uint32,
	value_index int) (Value, bool, error) {
	if resource_type != self.Type() {
		return nil, false, errors.Wrapf(ErrInvalidArgument,
			"resource is %v not %v", self.Type(), resource_type)
	}

	entry, pres, err := self.LanguageEntry(language_identifier)
	if err != nil || !pres {
		return nil, false, err
	}

	value, pres := entry.Value(value_index)
	return value, pres, nil
}

// LanguageEntry decodes, or returns the cached, values of a language.
func (self *Resource) LanguageEntry(
	language_identifier uint32) (*LanguageEntry, bool, error) {
	self.mu.Lock()
	defer self.mu.Unlock()

	entry, pres := self.languages.Get(language_identifier)
	if pres {
		return entry, true, nil
	}

	leaves := self.leavesForLanguage(language_identifier)
	if len(leaves) == 0 {
		return nil, false, nil
	}

	switch self.Type() {
	case RESOURCE_TYPE_MESSAGE_TABLE, RESOURCE_TYPE_VERSION,
		RESOURCE_TYPE_MANIFEST, RESOURCE_TYPE_MUI,
		RESOURCE_TYPE_WEVT_TEMPLATE:
		if len(self.node.Children) != 1 {
			return nil, false, errors.Wrapf(ErrUnsupported,
				"%v resource with %d items", self.Type(),
				len(self.node.Children))
		}
	}

	// Every item decodes on its own. A failing item is recorded on the
	// entry and the language fails only when no item decodes.
	entry = &LanguageEntry{LanguageIdentifier: language_identifier}
	for _, item := range leaves {
		err := self.decodeLeaf(entry, item)
		if err != nil {
			err = errors.WithMessagef(err, "%v %v language 0x%04x",
				self.Type(), item.name.NameString(), language_identifier)
			self.stream.logger.Debug("Skipping undecodable item",
				zap.Error(err))
			entry.ItemErrors = append(entry.ItemErrors, err)
		}
	}

	if entry.NumberOfValues() == 0 && len(entry.ItemErrors) > 0 {
		return nil, false, entry.ItemErrors[0]
	}

	err := self.languages.Insert(entry)
	if err != nil {
		return nil, false, err
	}
	self.states[language_identifier] = RESOURCE_STATE_DECODED

	return entry, true, nil
}

func (self *Resource) leavesForLanguage(language_identifier uint32) []resourceLeaf {
	result := []resourceLeaf{}
	for _, name := range self.node.Children {
		for _, language := range name.Children {
			if language.IsLeaf() && language.Identifier == language_identifier {
				result = append(result, resourceLeaf{name: name, leaf: language})
			}
		}
	}
	return result
}

// Reads the descriptor and payload of one item and decodes it into
// entry. The caller holds the lock.
func (self *Resource) decodeLeaf(entry *LanguageEntry, item resourceLeaf) error {
	descriptor, pres := self.descriptors[item.leaf]
	if !pres {
		var err error
		descriptor, err = self.stream.readDataDescriptor(item.leaf)
		if err != nil {
			return err
		}
		self.descriptors[item.leaf] = descriptor
		self.states[item.leaf.Identifier] = RESOURCE_STATE_DESCRIPTOR_READ
	}

	data, err := self.stream.readData(descriptor)
	if err != nil {
		return err
	}

	return self.decodeValues(entry, item.name, data)
}

// Dispatches the payload to the decoder of the resource type.
func (self *Resource) decodeValues(
	entry *LanguageEntry, name *ResourceNode, data []byte) error {
	switch self.Type() {
	case RESOURCE_TYPE_STRING:
		if name.HasName() {
			return errors.Wrapf(ErrUnsupported,
				"named string table %v", name.Name)
		}
		table, err := ParseStringTable(data, name.Identifier)
		if err != nil {
			return err
		}
		entry.appendValue(table)

	case RESOURCE_TYPE_MESSAGE_TABLE:
		table, err := ParseMessageTable(data, self.stream.ASCIICodepage())
		if err != nil {
			return err
		}
		entry.appendValue(table)

	case RESOURCE_TYPE_MUI:
		values, err := ParseMui(data)
		if err != nil {
			return err
		}
		entry.appendValue(values)

	case RESOURCE_TYPE_VERSION:
		values, err := ParseVersionInformation(data, self.stream.logger)
		if err != nil {
			return err
		}
		entry.appendValue(values)
		for _, item := range values.Strings {
			entry.appendValue(item)
		}

	case RESOURCE_TYPE_MANIFEST:
		manifest, err := ParseManifest(data)
		if err != nil {
			return err
		}
		entry.appendValue(manifest)

	case RESOURCE_TYPE_WEVT_TEMPLATE:
		manifest, err := ParseWevtManifest(data)
		if err != nil {
			return err
		}
		entry.appendValue(manifest)

	default:
		self.stream.logger.Debug("No decoder for resource type",
			zap.Stringer("type", self.Type()),
			zap.String("name", name.NameString()),
			zap.Int("size", len(data)))

		entry.appendValue(&RawData{
			Identifier: name.Identifier,
			Name:       name.Name,
			Data:       data,
		})
	}

	return nil
}

func (self *Resource) MessageTable(language_identifier uint32) (*MessageTable, error) {
	value, err := self.firstValue(RESOURCE_TYPE_MESSAGE_TABLE, language_identifier)
	if err != nil {
		return nil, err
	}
	return value.(*MessageTable), nil
}

func (self *Resource) Mui(language_identifier uint32) (*MuiValues, error) {
	value, err := self.firstValue(RESOURCE_TYPE_MUI, language_identifier)
	if err != nil {
		return nil, err
	}
	return value.(*MuiValues), nil
}

func (self *Resource) VersionInformation(language_identifier uint32) (*VersionValues, error) {
	value, err := self.firstValue(RESOURCE_TYPE_VERSION, language_identifier)
	if err != nil {
		return nil, err
	}
	return value.(*VersionValues), nil
}

func (self *Resource) Manifest(language_identifier uint32) (*Manifest, error) {
	value, err := self.firstValue(RESOURCE_TYPE_MANIFEST, language_identifier)
	if err != nil {
		return nil, err
	}
	return value.(*Manifest), nil
}

func (self *Resource) WevtManifest(language_identifier uint32) (*WevtManifest, error) {
	value, err := self.firstValue(RESOURCE_TYPE_WEVT_TEMPLATE, language_identifier)
	if err != nil {
		return nil, err
	}
	return value.(*WevtManifest), nil
}

// StringTables returns every string table block of the language.
func (self *Resource) StringTables(language_identifier uint32) ([]*StringTable, error) {
	if self.Type() != RESOURCE_TYPE_STRING {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"resource is %v not %v", self.Type(), RESOURCE_TYPE_STRING)
	}

	entry, pres, err := self.LanguageEntry(language_identifier)
	if err != nil {
		return nil, err
	}
	if !pres {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"no language 0x%04x", language_identifier)
	}

	result := []*StringTable{}
	for _, value := range entry.Values() {
		table, ok := value.(*StringTable)
		if ok {
			result = append(result, table)
		}
	}
	return result, nil
}

func (self *Resource) firstValue(
	resource_type ResourceType, language_identifier uint32) (Value, error) {
	value, pres, err := self.ValueByLanguageIdentifier(
		resource_type, language_identifier, 0)
	if err != nil {
		return nil, err
	}
	if !pres {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"no %v value for language 0x%04x", resource_type, language_identifier)
	}
	return value, nil
}
