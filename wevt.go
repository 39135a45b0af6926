package wrc

import (
	"encoding/binary"

	"github.com/pkg/errors"
)

const (
	WEVT_MANIFEST_SIGNATURE   = "CRIM"
	WEVT_MANIFEST_HEADER_SIZE = 16
	WEVT_PROVIDER_ENTRY_SIZE  = 20
)

type WevtProvider struct {
	Identifier GUID   `json:"identifier"`
	Offset     uint32 `json:"offset"`
}

// WevtManifest is the event template manifest of a WEVT_TEMPLATE
// resource. Only the header and the provider table are decoded, the
// raw data is kept for a dedicated event manifest parser.
type WevtManifest struct {
	Size         uint32          `json:"size"`
	MajorVersion uint16          `json:"major_version"`
	MinorVersion uint16          `json:"minor_version"`
	Providers    []*WevtProvider `json:"providers"`

	data []byte
}

func (self *WevtManifest) isValue() {}

func ParseWevtManifest(data []byte) (*WevtManifest, error) {
	if len(data) < WEVT_MANIFEST_HEADER_SIZE {
		return nil, errors.Wrapf(ErrTruncatedInput,
			"event manifest needs %d bytes, got %d",
			WEVT_MANIFEST_HEADER_SIZE, len(data))
	}

	if string(data[:4]) != WEVT_MANIFEST_SIGNATURE {
		return nil, errors.Wrap(ErrBadSignature, "event manifest")
	}

	c := newCursor(data)
	_ = c.seek(4)

	result := &WevtManifest{}
	result.Size, _ = c.uint32()
	result.MajorVersion, _ = c.uint16()
	result.MinorVersion, _ = c.uint16()
	number_of_providers, _ := c.uint32()

	if int64(result.Size) > int64(len(data)) {
		return nil, errors.Wrapf(ErrSizeOutOfBounds,
			"event manifest size %d exceeds data size %d",
			result.Size, len(data))
	}

	if int64(number_of_providers) >
		int64(len(data)-WEVT_MANIFEST_HEADER_SIZE)/WEVT_PROVIDER_ENTRY_SIZE {
		return nil, errors.Wrapf(ErrSizeOutOfBounds,
			"%d event providers do not fit in %d bytes",
			number_of_providers, len(data))
	}

	for i := uint32(0); i < number_of_providers; i++ {
		entry, _ := c.take(WEVT_PROVIDER_ENTRY_SIZE)

		provider := &WevtProvider{
			Offset: binary.LittleEndian.Uint32(entry[16:]),
		}
		copy(provider.Identifier[:], entry[:16])

		if int64(provider.Offset) >= int64(len(data)) {
			return nil, errors.Wrapf(ErrOffsetOutOfBounds,
				"event provider %v offset 0x%x", provider.Identifier,
				provider.Offset)
		}
		result.Providers = append(result.Providers, provider)
	}

	result.data = make([]byte, len(data))
	copy(result.data, data)

	return result, nil
}

func (self *WevtManifest) NumberOfProviders() int {
	return len(self.Providers)
}

func (self *WevtManifest) Provider(index int) (*WevtProvider, error) {
	if index < 0 || index >= len(self.Providers) {
		return nil, errors.Wrapf(ErrInvalidArgument,
			"provider index %d out of bounds", index)
	}
	return self.Providers[index], nil
}

func (self *WevtManifest) ProviderByIdentifier(identifier string) (*WevtProvider, bool) {
	for _, provider := range self.Providers {
		if provider.Identifier.Equal(identifier) {
			return provider, true
		}
	}
	return nil, false
}

// Data returns the raw manifest for downstream parsers.
func (self *WevtManifest) Data() []byte {
	return self.data
}
