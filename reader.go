package wrc

import (
	"io"

	"github.com/pkg/errors"
)

// An OffsetReader presents a window of a larger reader as a
// standalone reader starting at 0.
type OffsetReader struct {
	reader io.ReaderAt
	offset int64
	length int64
}

func NewOffsetReader(reader io.ReaderAt, offset, length int64) *OffsetReader {
	return &OffsetReader{
		reader: reader,
		offset: offset,
		length: length,
	}
}

func (self OffsetReader) Size() int64 {
	return self.length
}

func (self OffsetReader) ReadAt(buff []byte, off int64) (int, error) {
	if off < 0 || off >= self.length {
		return 0, io.EOF
	}

	to_read := int64(len(buff))
	if off+to_read > self.length {
		to_read = self.length - off
	}

	n, err := self.reader.ReadAt(buff[:to_read], off+self.offset)
	if err == nil && to_read < int64(len(buff)) {
		err = io.EOF
	}
	return n, err
}

// Reads exactly size bytes or fails with ErrIO.
func readBuffer(reader io.ReaderAt, offset int64, size int) ([]byte, error) {
	buffer := make([]byte, size)
	n, err := reader.ReadAt(buffer, offset)
	if n != size {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return nil, errors.Wrapf(ErrIO, "read %d of %d bytes at offset 0x%08x: %v",
			n, size, offset, err)
	}
	return buffer, nil
}
