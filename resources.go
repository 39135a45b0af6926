// Parse the resource directory tree. The tree is normally three levels
// deep: resource type -> name or identifier -> language.

package wrc

import (
	"encoding/binary"
	"io"
	"sort"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	RESOURCE_NODE_HEADER_SIZE = 16
	RESOURCE_NODE_ENTRY_SIZE  = 8

	RESOURCE_NODE_FLAG_SUB_DIRECTORY = 0x80000000

	MAX_RESOURCE_NODES = 100000
)

type ResourceNodeHeader struct {
	Flags                  uint32        `json:"flags"`
	CreationTime           UnixTimeStamp `json:"creation_time"`
	MajorVersion           uint16        `json:"major_version"`
	MinorVersion           uint16        `json:"minor_version"`
	NumberOfNamedEntries   uint16        `json:"number_of_named_entries"`
	NumberOfUnnamedEntries uint16        `json:"number_of_unnamed_entries"`
}

func parseResourceNodeHeader(data []byte) (*ResourceNodeHeader, error) {
	if len(data) < RESOURCE_NODE_HEADER_SIZE {
		return nil, errors.Wrapf(ErrTruncatedInput,
			"resource node header needs %d bytes, got %d",
			RESOURCE_NODE_HEADER_SIZE, len(data))
	}

	return &ResourceNodeHeader{
		Flags:                  binary.LittleEndian.Uint32(data[0:]),
		CreationTime:           NewUnixTimeStamp(binary.LittleEndian.Uint32(data[4:])),
		MajorVersion:           binary.LittleEndian.Uint16(data[8:]),
		MinorVersion:           binary.LittleEndian.Uint16(data[10:]),
		NumberOfNamedEntries:   binary.LittleEndian.Uint16(data[12:]),
		NumberOfUnnamedEntries: binary.LittleEndian.Uint16(data[14:]),
	}, nil
}

// A ResourceNode is an entry of a resource directory. Directory nodes
// have a Header and Children, leaf nodes point at a data descriptor
// which is only read when the data is requested.
type ResourceNode struct {
	Level      int
	Identifier uint32
	Name       string
	NameData   []byte

	// Only set on the first level.
	Type ResourceType

	Header   *ResourceNodeHeader
	Children []*ResourceNode

	DataEntryOffset int64
}

func (self *ResourceNode) HasName() bool {
	return self.Identifier&RESOURCE_IDENTIFIER_FLAG_HAS_NAME != 0
}

func (self *ResourceNode) IsLeaf() bool {
	return self.Header == nil
}

// NameString is the name of named entries or the numeric identifier.
func (self *ResourceNode) NameString() string {
	if self.HasName() {
		return self.Name
	}
	if self.Level == 1 && self.Type != RESOURCE_TYPE_UNKNOWN {
		return self.Type.String()
	}
	return formatIdentifier(self.Identifier)
}

type resourceTreeReader struct {
	reader      io.ReaderAt
	stream_size int64
	logger      *zap.Logger

	number_of_nodes int
}

// readResourceTree reads the directory tree of a resource stream. The
// root directory is at offset 0.
func readResourceTree(reader io.ReaderAt, stream_size int64,
	logger *zap.Logger) (*ResourceNode, error) {
	self := &resourceTreeReader{
		reader:      reader,
		stream_size: stream_size,
		logger:      traceOrNop(logger),
	}

	root := &ResourceNode{}
	err := self.readNode(root, 0, 1)
	if err != nil {
		return nil, err
	}
	return root, nil
}

func (self *resourceTreeReader) readNode(
	node *ResourceNode, offset int64, level int) error {
	if level < 1 || level > MAX_RESOURCE_TREE_DEPTH {
		return errors.Wrapf(ErrSizeOutOfBounds,
			"resource node level %d exceeds maximum depth", level)
	}

	header_data, err := readBuffer(self.reader, offset, RESOURCE_NODE_HEADER_SIZE)
	if err != nil {
		return errors.WithMessagef(err, "resource node header at 0x%08x", offset)
	}

	header, err := parseResourceNodeHeader(header_data)
	if err != nil {
		return err
	}
	node.Header = header

	number_of_entries := uint32(header.NumberOfNamedEntries) +
		uint32(header.NumberOfUnnamedEntries)
	if number_of_entries > MAX_RESOURCE_DIRECTORY_LENGTH {
		return errors.Wrapf(ErrSizeOutOfBounds,
			"resource node at 0x%08x has %d entries (maximum %d)",
			offset, number_of_entries, MAX_RESOURCE_DIRECTORY_LENGTH)
	}

	entry_data_offset := int64(RESOURCE_NODE_HEADER_SIZE) +
		int64(number_of_entries)*RESOURCE_NODE_ENTRY_SIZE
	if offset+entry_data_offset > self.stream_size {
		return errors.Wrapf(ErrSizeOutOfBounds,
			"%d resource node entries at 0x%08x exceed stream size %d",
			number_of_entries, offset, self.stream_size)
	}

	self.number_of_nodes += int(number_of_entries)
	if self.number_of_nodes > MAX_RESOURCE_NODES {
		return errors.Wrapf(ErrSizeOutOfBounds,
			"more than %d resource nodes", MAX_RESOURCE_NODES)
	}

	entries, err := readBuffer(self.reader, offset+RESOURCE_NODE_HEADER_SIZE,
		int(number_of_entries)*RESOURCE_NODE_ENTRY_SIZE)
	if err != nil {
		return errors.WithMessagef(err, "resource node entries at 0x%08x", offset)
	}

	self.logger.Debug("Resource node",
		zap.Int64("offset", offset),
		zap.Int("level", level),
		zap.Uint32("entries", number_of_entries))

	for i := 0; i < int(number_of_entries); i++ {
		entry := entries[i*RESOURCE_NODE_ENTRY_SIZE:]
		identifier := binary.LittleEndian.Uint32(entry[0:])
		entry_offset := binary.LittleEndian.Uint32(entry[4:])

		child := &ResourceNode{
			Level:      level,
			Identifier: identifier,
		}

		if child.HasName() {
			child.NameData, child.Name, err = self.readName(
				int64(identifier &^ RESOURCE_IDENTIFIER_FLAG_HAS_NAME))
			if err != nil {
				return errors.WithMessagef(err, "resource node entry %d", i)
			}
		}

		// Check the bounds here to fail fast on corrupt data.
		masked_offset := int64(entry_offset &^ RESOURCE_NODE_FLAG_SUB_DIRECTORY)
		if masked_offset < entry_data_offset || masked_offset >= self.stream_size {
			return errors.Wrapf(ErrOffsetOutOfBounds,
				"resource node entry %d offset 0x%08x", i, masked_offset)
		}

		if level == 1 {
			child.Type = resourceTypeFromEntry(identifier, child.Name)
		}

		if entry_offset&RESOURCE_NODE_FLAG_SUB_DIRECTORY != 0 {
			err = self.readNode(child, masked_offset, level+1)
			if err != nil {
				return err
			}
		} else {
			child.DataEntryOffset = masked_offset
		}

		node.Children = append(node.Children, child)
	}

	sort.SliceStable(node.Children, func(i, j int) bool {
		return node.Children[i].Identifier < node.Children[j].Identifier
	})

	return nil
}

// Names are a 16 bit character count followed by UTF-16LE text.
func (self *resourceTreeReader) readName(offset int64) ([]byte, string, error) {
	if offset+2 > self.stream_size {
		return nil, "", errors.Wrapf(ErrOffsetOutOfBounds,
			"resource name offset 0x%08x", offset)
	}

	size_data, err := readBuffer(self.reader, offset, 2)
	if err != nil {
		return nil, "", err
	}

	name_size := int64(binary.LittleEndian.Uint16(size_data)) * 2
	if name_size == 0 || offset+2+name_size > self.stream_size {
		return nil, "", errors.Wrapf(ErrSizeOutOfBounds,
			"resource name size %d at 0x%08x", name_size, offset)
	}

	name_data, err := readBuffer(self.reader, offset+2, int(name_size))
	if err != nil {
		return nil, "", err
	}

	name, err := ParseUTF16String(name_data)
	if err != nil {
		return nil, "", errors.WithMessagef(err, "resource name at 0x%08x", offset)
	}
	return name_data, name, nil
}
