package wrc

import (
	"io"
	"sync"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type StreamOptions struct {
	// Codepage of non unicode message table strings. Defaults to
	// ASCII.
	ASCIICodepage Codepage

	// Trace sink for decode diagnostics. Defaults to the package
	// logger.
	Logger *zap.Logger
}

// A Stream is the content of a resource section (.rsrc) mapped at a
// virtual address. Data descriptors inside the stream address their
// payload by virtual address.
type Stream struct {
	mu sync.Mutex

	reader          io.ReaderAt
	size            int64
	virtual_address uint32
	codepage        Codepage
	logger          *zap.Logger

	root      *ResourceNode
	resources []*Resource
}

func NewStream(options StreamOptions) (*Stream, error) {
	result := &Stream{
		codepage: CODEPAGE_ASCII,
		logger:   options.Logger,
	}

	if result.logger == nil {
		result.logger = Logger()
	}

	if options.ASCIICodepage != 0 {
		err := result.SetASCIICodepage(options.ASCIICodepage)
		if err != nil {
			return nil, err
		}
	}
	return result, nil
}

// OpenStream is a shorthand for NewStream() followed by Open().
func OpenStream(reader io.ReaderAt, size int64, virtual_address uint32,
	options StreamOptions) (*Stream, error) {
	result, err := NewStream(options)
	if err != nil {
		return nil, err
	}

	err = result.Open(reader, size, virtual_address)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (self *Stream) ASCIICodepage() Codepage {
	self.mu.Lock()
	defer self.mu.Unlock()

	return self.codepage
}

func (self *Stream) SetASCIICodepage(codepage Codepage) error {
	if !codepage.IsByteStream() {
		return errors.Wrapf(ErrInvalidArgument,
			"unsupported ASCII codepage %d", int(codepage))
	}

	self.mu.Lock()
	defer self.mu.Unlock()

	self.codepage = codepage
	return nil
}

func (self *Stream) VirtualAddress() uint32 {
	self.mu.Lock()
	defer self.mu.Unlock()

	return self.virtual_address
}

func (self *Stream) Size() int64 {
	self.mu.Lock()
	defer self.mu.Unlock()

	return self.size
}

// Open reads the resource directory tree. The resource payloads are
// read when they are requested.
func (self *Stream) Open(reader io.ReaderAt, size int64, virtual_address uint32) error {
	if reader == nil {
		return errors.Wrap(ErrInvalidArgument, "missing reader")
	}

	if size < RESOURCE_NODE_HEADER_SIZE {
		return errors.Wrapf(ErrTruncatedInput,
			"resource stream of %d bytes", size)
	}

	self.mu.Lock()
	defer self.mu.Unlock()

	if self.reader != nil {
		return errors.Wrap(ErrAlreadySet, "stream already open")
	}

	root, err := readResourceTree(reader, size, self.logger)
	if err != nil {
		return errors.WithMessage(err, "unable to read resource tree")
	}

	self.reader = reader
	self.size = size
	self.virtual_address = virtual_address
	self.root = root
	self.resources = nil

	for _, node := range root.Children {
		self.resources = append(self.resources, newResource(self, node))
	}

	return nil
}

func (self *Stream) Close() error {
	self.mu.Lock()
	defer self.mu.Unlock()

	if self.reader == nil {
		return errors.Wrap(ErrInvalidArgument, "stream not open")
	}

	self.reader = nil
	self.size = 0
	self.root = nil
	self.resources = nil
	return nil
}

func (self *Stream) Root() *ResourceNode {
	self.mu.Lock()
	defer self.mu.Unlock()

	return self.root
}

func (self *Stream) Resources() []*Resource {
	self.mu.Lock()
	defer self.mu.Unlock()

	return self.resources
}

func (self *Stream) NumberOfResources() int {
	return len(self.Resources())
}

func (self *Stream) ResourceByIndex(index int) (*Resource, error) {
	resources := self.Resources()
	if index < 0 || index >= len(resources) {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"resource index %d out of bounds", index)
	}
	return resources[index], nil
}

func (self *Stream) ResourceByIdentifier(identifier uint32) (*Resource, bool) {
	for _, resource := range self.Resources() {
		if !resource.node.HasName() && resource.Identifier() == identifier {
			return resource, true
		}
	}
	return nil, false
}

func (self *Stream) ResourceByType(resource_type ResourceType) (*Resource, bool) {
	for _, resource := range self.Resources() {
		if resource.Type() == resource_type {
			return resource, true
		}
	}
	return nil, false
}

func (self *Stream) ResourceByName(name string) (*Resource, bool) {
	for _, resource := range self.Resources() {
		if resource.node.HasName() && resource.Name() == name {
			return resource, true
		}
	}
	return nil, false
}

// Reads the payload of a data descriptor.
func (self *Stream) readData(descriptor *DataDescriptor) ([]byte, error) {
	self.mu.Lock()
	reader := self.reader
	size := self.size
	virtual_address := self.virtual_address
	self.mu.Unlock()

	if reader == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "stream not open")
	}

	offset, err := descriptor.StreamOffset(virtual_address, size)
	if err != nil {
		return nil, err
	}

	if int64(descriptor.Size) > GetResourceDataSizeLimit() {
		return nil, errors.Wrapf(ErrSizeOutOfBounds,
			"resource data size %d exceeds limit %d",
			descriptor.Size, GetResourceDataSizeLimit())
	}

	self.logger.Debug("Reading resource data",
		zap.Uint32("virtual_address", descriptor.VirtualAddress),
		zap.Uint32("size", descriptor.Size),
		zap.Int64("offset", offset))

	return readBuffer(reader, offset, int(descriptor.Size))
}

func (self *Stream) readDataDescriptor(node *ResourceNode) (*DataDescriptor, error) {
	self.mu.Lock()
	reader := self.reader
	self.mu.Unlock()

	if reader == nil {
		return nil, errors.Wrap(ErrInvalidArgument, "stream not open")
	}

	if !node.IsLeaf() {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"resource node %v is a directory", node.NameString())
	}
	return ReadDataDescriptor(reader, node.DataEntryOffset)
}
