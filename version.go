package wrc

import (
	"encoding/binary"
	"fmt"

	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const (
	VS_VERSION_INFO_KEY        = "VS_VERSION_INFO"
	VS_FIXEDFILEINFO_SIGNATURE = 0xfeef04bd
	VS_FIXEDFILEINFO_SIZE      = 52

	VERSION_BLOCK_HEADER_SIZE = 6
	VERSION_BLOCK_MIN_SIZE    = 8

	VERSION_VALUE_BINARY = 0
	VERSION_VALUE_TEXT   = 1
)

// A VersionBlock is one node of the VERSIONINFO block grammar. Every
// level uses the same layout: {size, value size, value type, key},
// padding, the value, padding, then the children.
type VersionBlock struct {
	Key       string
	ValueType uint16
	Value     []byte
	Children  []*VersionBlock
}

// TextValue decodes a text value up to its terminator. A block
// without a value holds the empty string.
func (self *VersionBlock) TextValue() (string, error) {
	if len(self.Value) == 0 {
		return "", nil
	}

	value, _, err := ParseTerminatedUTF16String(self.Value)
	return value, err
}

// A string from a StringFileInfo table.
type VersionString struct {
	Table string `json:"table"`
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (self *VersionString) isValue() {}

type VersionTranslation struct {
	LanguageIdentifier uint16 `json:"language_identifier"`
	Codepage           uint16 `json:"codepage"`
}

// The StringTable key used for this translation.
func (self VersionTranslation) String() string {
	return fmt.Sprintf("%04x%04x", self.LanguageIdentifier, self.Codepage)
}

type VersionValues struct {
	FileVersion    uint64 `json:"file_version"`
	ProductVersion uint64 `json:"product_version"`

	Strings      []*VersionString     `json:"strings"`
	Translations []VersionTranslation `json:"translations"`

	Root *VersionBlock `json:"-"`
}

func (self *VersionValues) isValue() {}

// Get returns the first string with this key from any table.
func (self *VersionValues) Get(key string) (string, bool) {
	for _, item := range self.Strings {
		if item.Key == key {
			return item.Value, true
		}
	}
	return "", false
}

func FormatVersion(version uint64) string {
	return fmt.Sprintf("%d.%d.%d.%d",
		version>>48, (version>>32)&0xffff,
		(version>>16)&0xffff, version&0xffff)
}

func ParseVersionInformation(data []byte, logger *zap.Logger) (*VersionValues, error) {
	logger = traceOrNop(logger)

	root, _, err := parseVersionBlock(data, 0, len(data), logger)
	if err != nil {
		return nil, errors.WithMessage(err, "VERSIONINFO")
	}

	if root == nil {
		return nil, errors.Wrap(ErrTruncatedInput, "empty VERSIONINFO")
	}

	if root.Key != VS_VERSION_INFO_KEY {
		return nil, errors.Wrapf(ErrBadSignature,
			"VERSIONINFO key %q", root.Key)
	}

	result := &VersionValues{Root: root}

	if len(root.Value) > 0 {
		if len(root.Value) < VS_FIXEDFILEINFO_SIZE {
			return nil, errors.Wrapf(ErrSizeOutOfBounds,
				"VS_FIXEDFILEINFO needs %d bytes, got %d",
				VS_FIXEDFILEINFO_SIZE, len(root.Value))
		}

		value := root.Value
		if binary.LittleEndian.Uint32(value) != VS_FIXEDFILEINFO_SIGNATURE {
			return nil, errors.Wrap(ErrBadSignature, "VS_FIXEDFILEINFO")
		}

		result.FileVersion = uint64(binary.LittleEndian.Uint32(value[8:]))<<32 |
			uint64(binary.LittleEndian.Uint32(value[12:]))
		result.ProductVersion = uint64(binary.LittleEndian.Uint32(value[16:]))<<32 |
			uint64(binary.LittleEndian.Uint32(value[20:]))
	}

	for _, child := range root.Children {
		switch child.Key {
		case "StringFileInfo":
			err := result.readStringFileInfo(child, logger)
			if err != nil {
				return nil, err
			}

		case "VarFileInfo":
			result.readVarFileInfo(child, logger)

		default:
			logger.Debug("Skipping unknown VERSIONINFO child",
				zap.String("key", child.Key))
		}
	}

	return result, nil
}

func (self *VersionValues) readStringFileInfo(
	block *VersionBlock, logger *zap.Logger) error {
	for _, table := range block.Children {
		for _, item := range table.Children {
			if item.ValueType != VERSION_VALUE_TEXT {
				logger.Debug("Skipping binary version string",
					zap.String("table", table.Key),
					zap.String("key", item.Key),
					zap.Int("size", len(item.Value)))
				continue
			}

			value, err := item.TextValue()
			if err != nil {
				return errors.WithMessagef(err, "version string %v", item.Key)
			}

			self.Strings = append(self.Strings, &VersionString{
				Table: table.Key,
				Key:   item.Key,
				Value: value,
			})
		}
	}
	return nil
}

func (self *VersionValues) readVarFileInfo(
	block *VersionBlock, logger *zap.Logger) {
	for _, item := range block.Children {
		if item.Key != "Translation" {
			logger.Debug("Skipping unknown Var",
				zap.String("key", item.Key))
			continue
		}

		for i := 0; i+4 <= len(item.Value); i += 4 {
			self.Translations = append(self.Translations, VersionTranslation{
				LanguageIdentifier: binary.LittleEndian.Uint16(item.Value[i:]),
				Codepage:           binary.LittleEndian.Uint16(item.Value[i+2:]),
			})
		}
	}
}

// Parses the block at offset which must end before end. Returns the
// block and its declared size. A zero sized block returns nil and
// terminates the sibling list.
func parseVersionBlock(data []byte, offset, end int,
	logger *zap.Logger) (*VersionBlock, int, error) {
	c := newCursor(data[:end])
	err := c.seek(offset)
	if err != nil {
		return nil, 0, err
	}

	size, err := c.uint16()
	if err != nil {
		return nil, 0, err
	}

	if size == 0 {
		return nil, 0, nil
	}

	if size < VERSION_BLOCK_MIN_SIZE || int(size) > end-offset {
		return nil, 0, errors.Wrapf(ErrSizeOutOfBounds,
			"version block at 0x%x has size %d (%d available)",
			offset, size, end-offset)
	}

	block_data := data[offset : offset+int(size)]
	bc := newCursor(block_data)
	_ = bc.seek(2)
	value_size, _ := bc.uint16()
	value_type, _ := bc.uint16()

	key, consumed, err := ParseTerminatedUTF16String(
		block_data[VERSION_BLOCK_HEADER_SIZE:])
	if err != nil {
		return nil, 0, errors.WithMessagef(err,
			"version block key at 0x%x", offset)
	}

	result := &VersionBlock{
		Key:       key,
		ValueType: value_type,
	}

	logger.Debug("Version block", zap.String("key", key),
		zap.Int("offset", offset), zap.Uint16("size", size))

	_ = bc.seek(VERSION_BLOCK_HEADER_SIZE + consumed)
	bc.align()

	value_length := int(value_size)
	if value_type == VERSION_VALUE_TEXT {
		value_length *= 2
	}

	if value_length > bc.remaining() {
		return nil, 0, errors.Wrapf(ErrSizeOutOfBounds,
			"version block %v value needs %d bytes (%d available)",
			key, value_length, bc.remaining())
	}

	result.Value, err = bc.take(value_length)
	if err != nil {
		return nil, 0, errors.WithMessagef(err, "version block %v value", key)
	}

	bc.align()
	for bc.remaining() > 0 {
		child_offset := bc.offset
		child, child_size, err := parseVersionBlock(
			block_data, child_offset, len(block_data), logger)
		if err != nil {
			return nil, 0, errors.WithMessagef(err, "in %v", key)
		}

		if child == nil {
			break
		}

		result.Children = append(result.Children, child)
		_ = bc.seek(child_offset + child_size)
		bc.align()
	}

	return result, int(size), nil
}
