package wrc

import (
	"encoding/binary"
	"encoding/json"
	"testing"

	"github.com/alecthomas/assert"
	"github.com/pkg/errors"
)

func TestManifest(t *testing.T) {
	data := readTestData(t, "manifest.bin")

	manifest, err := ParseManifest(data)
	assert.NoError(t, err)

	size, err := manifest.UTF8StringSize()
	assert.NoError(t, err)
	assert.Equal(t, 382, size)

	size, err = manifest.UTF16StringSize()
	assert.NoError(t, err)
	assert.Equal(t, 382, size)

	buffer := make([]byte, size)
	assert.NoError(t, manifest.CopyUTF8String(buffer))
	assert.Equal(t, byte(0), buffer[size-1])
	assert.Equal(t, data, buffer[:size-1])

	serialized, err := manifest.JSON()
	assert.NoError(t, err)

	document := make(map[string]interface{})
	assert.NoError(t, json.Unmarshal(serialized, &document))

	assembly, ok := document["assembly"].(map[string]interface{})
	assert.True(t, ok)
	assert.Equal(t, "1.0", assembly["-manifestVersion"])
}

func TestManifestErrors(t *testing.T) {
	_, err := ParseManifest(nil)
	assert.True(t, errors.Is(err, ErrTruncatedInput))

	manifest, err := ParseManifest([]byte{0x3c, 0xff, 0xfe})
	assert.NoError(t, err)

	_, err = manifest.UTF8StringSize()
	assert.True(t, errors.Is(err, ErrEncoding))
}

func TestWevtManifest(t *testing.T) {
	data := []byte("CRIM")
	data = binary.LittleEndian.AppendUint32(data, 0)
	data = binary.LittleEndian.AppendUint16(data, 3)
	data = binary.LittleEndian.AppendUint16(data, 1)
	data = binary.LittleEndian.AppendUint32(data, 1)

	// {5EF6F0A6-2B3A-4EC1-9ED9-7CE17C0B5E2A}
	data = append(data,
		0xa6, 0xf0, 0xf6, 0x5e, 0x3a, 0x2b, 0xc1, 0x4e,
		0x9e, 0xd9, 0x7c, 0xe1, 0x7c, 0x0b, 0x5e, 0x2a)
	data = binary.LittleEndian.AppendUint32(data, 36)
	data = append(data, make([]byte, 16)...)
	binary.LittleEndian.PutUint32(data[4:], uint32(len(data)))

	manifest, err := ParseWevtManifest(data)
	assert.NoError(t, err)
	assert.Equal(t, uint16(3), manifest.MajorVersion)
	assert.Equal(t, uint16(1), manifest.MinorVersion)
	assert.Equal(t, 1, manifest.NumberOfProviders())

	provider, err := manifest.Provider(0)
	assert.NoError(t, err)
	assert.Equal(t, "{5EF6F0A6-2B3A-4EC1-9ED9-7CE17C0B5E2A}",
		provider.Identifier.String())
	assert.Equal(t, uint32(36), provider.Offset)

	_, pres := manifest.ProviderByIdentifier("5ef6f0a6-2b3a-4ec1-9ed9-7ce17c0b5e2a")
	assert.True(t, pres)

	_, err = manifest.Provider(1)
	assert.True(t, errors.Is(err, ErrInvalidArgument))

	corrupt := append([]byte{}, data...)
	copy(corrupt, "MIRC")
	_, err = ParseWevtManifest(corrupt)
	assert.True(t, errors.Is(err, ErrBadSignature))

	corrupt = append([]byte{}, data...)
	binary.LittleEndian.PutUint32(corrupt[12:], 100)
	_, err = ParseWevtManifest(corrupt)
	assert.True(t, errors.Is(err, ErrSizeOutOfBounds))

	_, err = ParseWevtManifest(data[:8])
	assert.True(t, errors.Is(err, ErrTruncatedInput))
}
