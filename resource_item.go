package wrc

import (
	"github.com/pkg/errors"
)

// A ResourceItem gives raw access to a node of the resource tree:
// names and identifiers of the lower levels and the payload of
// language level leaves.
type ResourceItem struct {
	stream *Stream
	node   *ResourceNode
}

func (self *ResourceItem) Identifier() uint32 {
	return self.node.Identifier
}

func (self *ResourceItem) HasName() bool {
	return self.node.HasName()
}

// Name is empty for numeric entries.
func (self *ResourceItem) Name() string {
	return self.node.Name
}

func (self *ResourceItem) NameString() string {
	return self.node.NameString()
}

func (self *ResourceItem) Header() *ResourceNodeHeader {
	return self.node.Header
}

func (self *ResourceItem) IsLeaf() bool {
	return self.node.IsLeaf()
}

func (self *ResourceItem) NumberOfSubItems() int {
	return len(self.node.Children)
}

func (self *ResourceItem) SubItemByIndex(index int) (*ResourceItem, error) {
	if index < 0 || index >= len(self.node.Children) {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"sub item index %d out of bounds", index)
	}

	return &ResourceItem{
		stream: self.stream,
		node:   self.node.Children[index],
	}, nil
}

func (self *ResourceItem) SubItems() []*ResourceItem {
	result := make([]*ResourceItem, 0, len(self.node.Children))
	for _, child := range self.node.Children {
		result = append(result, &ResourceItem{stream: self.stream, node: child})
	}
	return result
}

func (self *ResourceItem) DataDescriptor() (*DataDescriptor, error) {
	return self.stream.readDataDescriptor(self.node)
}

func (self *ResourceItem) Size() (uint32, error) {
	descriptor, err := self.DataDescriptor()
	if err != nil {
		return 0, err
	}
	return descriptor.Size, nil
}

// ReadData reads the raw payload of a leaf.
func (self *ResourceItem) ReadData() ([]byte, error) {
	descriptor, err := self.DataDescriptor()
	if err != nil {
		return nil, err
	}
	return self.stream.readData(descriptor)
}
