package wrc

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

// A cursor walks an immutable buffer. Every advance is bounds checked
// so decoders never index the buffer directly.
type cursor struct {
	data   []byte
	offset int
}

func newCursor(data []byte) *cursor {
	return &cursor{data: data}
}

func (self *cursor) remaining() int {
	return len(self.data) - self.offset
}

func (self *cursor) take(n int) ([]byte, error) {
	if n < 0 || n > self.remaining() {
		return nil, errors.Wrapf(ErrSizeOutOfBounds,
			"%d bytes requested at offset 0x%x, %d available",
			n, self.offset, self.remaining())
	}
	result := self.data[self.offset : self.offset+n]
	self.offset += n
	return result, nil
}

func (self *cursor) uint16() (uint16, error) {
	data, err := self.take(2)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(data), nil
}

func (self *cursor) uint32() (uint32, error) {
	data, err := self.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(data), nil
}

func (self *cursor) seek(offset int) error {
	if offset < 0 || offset > len(self.data) {
		return errors.Wrapf(ErrOffsetOutOfBounds,
			"offset 0x%x outside buffer of %d bytes", offset, len(self.data))
	}
	self.offset = offset
	return nil
}

// Skip the padding to the next 32 bit boundary. Padding is never read
// past the end of the buffer.
func (self *cursor) align() {
	aligned := int(RoundUpToWordAlignment(int64(self.offset)))
	if aligned > len(self.data) {
		aligned = len(self.data)
	}
	self.offset = aligned
}
