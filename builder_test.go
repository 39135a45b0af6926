package wrc

import (
	"encoding/binary"
	"unicode/utf16"
)

// A node of a resource tree to serialize. Nodes without children are
// leaves carrying data.
type testNode struct {
	identifier uint32
	name       string
	children   []*testNode
	data       []byte
}

func (self *testNode) isLeaf() bool {
	return self.children == nil
}

func (self *testNode) walk(cb func(node *testNode)) {
	cb(self)
	for _, child := range self.children {
		child.walk(cb)
	}
}

// Serializes a resource tree the way linkers lay out .rsrc sections:
// directories, then names, then data descriptors, then the payloads.
type sectionBuilder struct {
	virtual_address uint32
	size            int

	directories map[*testNode]int
	names       map[*testNode]int
	descriptors map[*testNode]int
	payloads    map[*testNode]int
}

func buildResourceSection(virtual_address uint32, root *testNode) []byte {
	self := &sectionBuilder{
		virtual_address: virtual_address,
		directories:     make(map[*testNode]int),
		names:           make(map[*testNode]int),
		descriptors:     make(map[*testNode]int),
		payloads:        make(map[*testNode]int),
	}

	self.allocateDirectories(root)

	root.walk(func(node *testNode) {
		if node.name != "" {
			self.names[node] = self.size
			self.size += 2 + 2*len(utf16.Encode([]rune(node.name)))
		}
	})
	self.align()

	root.walk(func(node *testNode) {
		if node != root && node.isLeaf() {
			self.descriptors[node] = self.size
			self.size += DATA_DESCRIPTOR_SIZE
		}
	})

	root.walk(func(node *testNode) {
		if node != root && node.isLeaf() {
			self.payloads[node] = self.size
			self.size += len(node.data)
			self.align()
		}
	})

	result := make([]byte, self.size)
	root.walk(func(node *testNode) {
		offset, pres := self.directories[node]
		if pres {
			self.writeDirectory(result[offset:], node)
		}

		offset, pres = self.names[node]
		if pres {
			units := utf16.Encode([]rune(node.name))
			binary.LittleEndian.PutUint16(result[offset:], uint16(len(units)))
			for i, unit := range units {
				binary.LittleEndian.PutUint16(result[offset+2+2*i:], unit)
			}
		}

		offset, pres = self.descriptors[node]
		if pres {
			binary.LittleEndian.PutUint32(result[offset:],
				self.virtual_address+uint32(self.payloads[node]))
			binary.LittleEndian.PutUint32(result[offset+4:], uint32(len(node.data)))
			copy(result[self.payloads[node]:], node.data)
		}
	})

	return result
}

func (self *sectionBuilder) align() {
	self.size = int(RoundUpToWordAlignment(int64(self.size)))
}

func (self *sectionBuilder) allocateDirectories(node *testNode) {
	self.directories[node] = self.size
	self.size += RESOURCE_NODE_HEADER_SIZE + RESOURCE_NODE_ENTRY_SIZE*len(node.children)

	for _, child := range node.children {
		if !child.isLeaf() {
			self.allocateDirectories(child)
		}
	}
}

func (self *sectionBuilder) writeDirectory(data []byte, node *testNode) {
	named := 0
	for _, child := range node.children {
		if child.name != "" {
			named++
		}
	}
	binary.LittleEndian.PutUint16(data[12:], uint16(named))
	binary.LittleEndian.PutUint16(data[14:], uint16(len(node.children)-named))

	for i, child := range node.children {
		entry := data[RESOURCE_NODE_HEADER_SIZE+RESOURCE_NODE_ENTRY_SIZE*i:]

		identifier := child.identifier
		if child.name != "" {
			identifier = uint32(self.names[child]) | RESOURCE_IDENTIFIER_FLAG_HAS_NAME
		}
		binary.LittleEndian.PutUint32(entry, identifier)

		if child.isLeaf() {
			binary.LittleEndian.PutUint32(entry[4:], uint32(self.descriptors[child]))
		} else {
			binary.LittleEndian.PutUint32(entry[4:],
				uint32(self.directories[child])|RESOURCE_NODE_FLAG_SUB_DIRECTORY)
		}
	}
}

func languageNode(language_identifier uint32, data []byte) *testNode {
	return &testNode{identifier: language_identifier, data: data}
}

func itemNode(identifier uint32, languages ...*testNode) *testNode {
	return &testNode{identifier: identifier, children: languages}
}

func namedNode(name string, children ...*testNode) *testNode {
	return &testNode{name: name, children: children}
}

func typeNode(identifier uint32, items ...*testNode) *testNode {
	return &testNode{identifier: identifier, children: items}
}
