package wrc

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/pkg/errors"
)

const DATA_DESCRIPTOR_SIZE = 8

// The location of a resource payload in the image.
type DataDescriptor struct {
	VirtualAddress uint32 `json:"virtual_address"`
	Size           uint32 `json:"size"`
}

func (self *DataDescriptor) String() string {
	return fmt.Sprintf("DataDescriptor(0x%08x, %d)", self.VirtualAddress, self.Size)
}

func ParseDataDescriptor(data []byte) (*DataDescriptor, error) {
	if len(data) < DATA_DESCRIPTOR_SIZE {
		return nil, errors.Wrapf(ErrTruncatedInput,
			"data descriptor needs %d bytes, got %d",
			DATA_DESCRIPTOR_SIZE, len(data))
	}

	return &DataDescriptor{
		VirtualAddress: binary.LittleEndian.Uint32(data[0:4]),
		Size:           binary.LittleEndian.Uint32(data[4:8]),
	}, nil
}

func ReadDataDescriptor(reader io.ReaderAt, offset int64) (*DataDescriptor, error) {
	data, err := readBuffer(reader, offset, DATA_DESCRIPTOR_SIZE)
	if err != nil {
		return nil, errors.WithMessage(err, "data descriptor")
	}
	return ParseDataDescriptor(data)
}

// StreamOffset converts the descriptor's virtual address into an
// offset in a stream of stream_size bytes mapped at virtual_address.
func (self *DataDescriptor) StreamOffset(
	virtual_address uint32, stream_size int64) (int64, error) {
	start := int64(virtual_address)
	end := start + stream_size
	va := int64(self.VirtualAddress)

	if va < start || va >= end {
		return 0, errors.Wrapf(ErrOffsetOutOfBounds,
			"virtual address 0x%08x outside stream 0x%08x-0x%08x",
			va, start, end)
	}

	if va+int64(self.Size) > end {
		return 0, errors.Wrapf(ErrSizeOutOfBounds,
			"data size %d at 0x%08x exceeds stream end 0x%08x",
			self.Size, va, end)
	}

	return va - start, nil
}
