package wrc

import (
	"encoding/binary"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/unicode"
)

// UTF16ToStringLE decodes a UTF-16LE buffer without validation.
func UTF16ToStringLE(data []byte) string {
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM).NewDecoder()
	result, err := decoder.Bytes(data)
	if err != nil {
		return ""
	}
	return string(result)
}

// Returns the number of UTF-16 code units before the first NUL code
// unit and whether a terminator was found.
func utf16Length(data []byte) (int, bool) {
	for i := 0; i+1 < len(data); i += 2 {
		if data[i] == 0 && data[i+1] == 0 {
			return i / 2, true
		}
	}
	return len(data) / 2, false
}

// ParseUTF16String decodes a UTF-16LE stream up to the first NUL
// code unit. Unpaired surrogates are an error.
func ParseUTF16String(data []byte) (string, error) {
	if len(data)%2 != 0 {
		return "", errors.Wrapf(ErrOddUTF16Length, "%d bytes", len(data))
	}

	length, _ := utf16Length(data)
	data = data[:length*2]

	for i := 0; i < length; i++ {
		unit := binary.LittleEndian.Uint16(data[i*2:])
		switch {
		case unit >= 0xd800 && unit < 0xdc00:
			if i+1 >= length {
				return "", errors.Wrapf(ErrEncoding,
					"unpaired high surrogate 0x%04x at %d", unit, i)
			}
			next := binary.LittleEndian.Uint16(data[i*2+2:])
			if next < 0xdc00 || next >= 0xe000 {
				return "", errors.Wrapf(ErrEncoding,
					"unpaired high surrogate 0x%04x at %d", unit, i)
			}
			i++

		case unit >= 0xdc00 && unit < 0xe000:
			return "", errors.Wrapf(ErrEncoding,
				"unpaired low surrogate 0x%04x at %d", unit, i)
		}
	}

	return UTF16ToStringLE(data), nil
}

// ParseTerminatedUTF16String requires the NUL terminator to be present.
// Returns the string and the number of bytes consumed including the
// terminator.
func ParseTerminatedUTF16String(data []byte) (string, int, error) {
	length, terminated := utf16Length(data)
	if !terminated {
		return "", 0, errors.Wrapf(ErrUnterminatedString,
			"no terminator in %d bytes", len(data))
	}

	result, err := ParseUTF16String(data[:length*2])
	if err != nil {
		return "", 0, err
	}
	return result, length*2 + 2, nil
}

func decodeUTF8Stream(data []byte) (string, error) {
	for i, c := range data {
		if c == 0 {
			data = data[:i]
			break
		}
	}

	if !utf8.Valid(data) {
		return "", errors.Wrap(ErrEncoding, "invalid UTF-8 stream")
	}
	return string(data), nil
}

func truncateAtNul(value string) string {
	for i := 0; i < len(value); i++ {
		if value[i] == 0 {
			return value[:i]
		}
	}
	return value
}

// Sizes always include the terminating NUL.
func utf8StringSize(value string) int {
	return len(value) + 1
}

func utf16StringSize(value string) int {
	return len(utf16.Encode([]rune(value))) + 1
}

func copyUTF8String(value string, dst []byte) error {
	if len(dst) < utf8StringSize(value) {
		return errors.Wrapf(ErrBufferTooSmall,
			"UTF-8 string needs %d bytes, got %d",
			utf8StringSize(value), len(dst))
	}
	n := copy(dst, value)
	dst[n] = 0
	return nil
}

func copyUTF16String(value string, dst []uint16) error {
	units := utf16.Encode([]rune(value))
	if len(dst) < len(units)+1 {
		return errors.Wrapf(ErrBufferTooSmall,
			"UTF-16 string needs %d code units, got %d",
			len(units)+1, len(dst))
	}
	n := copy(dst, units)
	dst[n] = 0
	return nil
}
