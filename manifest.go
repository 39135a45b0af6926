package wrc

import (
	"strings"

	xj "github.com/basgys/goxml2json"
	"github.com/pkg/errors"
)

// The application manifest: an UTF-8 XML document.
type Manifest struct {
	data []byte
}

func (self *Manifest) isValue() {}

func ParseManifest(data []byte) (*Manifest, error) {
	if len(data) == 0 {
		return nil, errors.Wrap(ErrTruncatedInput, "empty manifest")
	}

	buffer := make([]byte, len(data))
	copy(buffer, data)
	return &Manifest{data: buffer}, nil
}

func (self *Manifest) UTF8String() (string, error) {
	return decodeUTF8Stream(self.data)
}

func (self *Manifest) UTF8StringSize() (int, error) {
	value, err := self.UTF8String()
	if err != nil {
		return 0, err
	}
	return utf8StringSize(value), nil
}

func (self *Manifest) CopyUTF8String(dst []byte) error {
	value, err := self.UTF8String()
	if err != nil {
		return err
	}
	return copyUTF8String(value, dst)
}

func (self *Manifest) UTF16StringSize() (int, error) {
	value, err := self.UTF8String()
	if err != nil {
		return 0, err
	}
	return utf16StringSize(value), nil
}

func (self *Manifest) CopyUTF16String(dst []uint16) error {
	value, err := self.UTF8String()
	if err != nil {
		return err
	}
	return copyUTF16String(value, dst)
}

// JSON renders the manifest XML as a JSON document.
func (self *Manifest) JSON() ([]byte, error) {
	value, err := self.UTF8String()
	if err != nil {
		return nil, err
	}

	// Strip a byte order mark, the XML decoder rejects it.
	value = strings.TrimPrefix(value, "\ufeff")

	json, err := xj.Convert(strings.NewReader(value))
	if err != nil {
		return nil, errors.Wrapf(ErrEncoding, "manifest XML: %v", err)
	}
	return json.Bytes(), nil
}

func (self *Manifest) String() string {
	value, _ := self.UTF8String()
	return value
}
