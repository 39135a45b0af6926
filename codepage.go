package wrc

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
)

// A Windows codepage identifier.
type Codepage int

const (
	CODEPAGE_ASCII               Codepage = 20127
	CODEPAGE_UTF16_LITTLE_ENDIAN Codepage = 1200
	CODEPAGE_UTF8                Codepage = 65001

	CODEPAGE_IBM_437     Codepage = 437
	CODEPAGE_IBM_850     Codepage = 850
	CODEPAGE_IBM_866     Codepage = 866
	CODEPAGE_KOI8_R      Codepage = 20866
	CODEPAGE_KOI8_U      Codepage = 21866
	CODEPAGE_ISO_8859_1  Codepage = 28591
	CODEPAGE_ISO_8859_2  Codepage = 28592
	CODEPAGE_ISO_8859_15 Codepage = 28605

	CODEPAGE_WINDOWS_874  Codepage = 874
	CODEPAGE_WINDOWS_932  Codepage = 932
	CODEPAGE_WINDOWS_936  Codepage = 936
	CODEPAGE_WINDOWS_949  Codepage = 949
	CODEPAGE_WINDOWS_950  Codepage = 950
	CODEPAGE_WINDOWS_1250 Codepage = 1250
	CODEPAGE_WINDOWS_1251 Codepage = 1251
	CODEPAGE_WINDOWS_1252 Codepage = 1252
	CODEPAGE_WINDOWS_1253 Codepage = 1253
	CODEPAGE_WINDOWS_1254 Codepage = 1254
	CODEPAGE_WINDOWS_1255 Codepage = 1255
	CODEPAGE_WINDOWS_1256 Codepage = 1256
	CODEPAGE_WINDOWS_1257 Codepage = 1257
	CODEPAGE_WINDOWS_1258 Codepage = 1258
)

var byte_stream_encodings = map[Codepage]encoding.Encoding{
	CODEPAGE_IBM_437:      charmap.CodePage437,
	CODEPAGE_IBM_850:      charmap.CodePage850,
	CODEPAGE_IBM_866:      charmap.CodePage866,
	CODEPAGE_KOI8_R:       charmap.KOI8R,
	CODEPAGE_KOI8_U:       charmap.KOI8U,
	CODEPAGE_ISO_8859_1:   charmap.ISO8859_1,
	CODEPAGE_ISO_8859_2:   charmap.ISO8859_2,
	CODEPAGE_ISO_8859_15:  charmap.ISO8859_15,
	CODEPAGE_WINDOWS_874:  charmap.Windows874,
	CODEPAGE_WINDOWS_932:  japanese.ShiftJIS,
	CODEPAGE_WINDOWS_936:  simplifiedchinese.GBK,
	CODEPAGE_WINDOWS_949:  korean.EUCKR,
	CODEPAGE_WINDOWS_950:  traditionalchinese.Big5,
	CODEPAGE_WINDOWS_1250: charmap.Windows1250,
	CODEPAGE_WINDOWS_1251: charmap.Windows1251,
	CODEPAGE_WINDOWS_1252: charmap.Windows1252,
	CODEPAGE_WINDOWS_1253: charmap.Windows1253,
	CODEPAGE_WINDOWS_1254: charmap.Windows1254,
	CODEPAGE_WINDOWS_1255: charmap.Windows1255,
	CODEPAGE_WINDOWS_1256: charmap.Windows1256,
	CODEPAGE_WINDOWS_1257: charmap.Windows1257,
	CODEPAGE_WINDOWS_1258: charmap.Windows1258,
}

func (self Codepage) String() string {
	switch self {
	case CODEPAGE_ASCII:
		return "ascii"
	case CODEPAGE_UTF16_LITTLE_ENDIAN:
		return "utf-16le"
	case CODEPAGE_UTF8:
		return "utf-8"
	}
	return fmt.Sprintf("cp%d", int(self))
}

// IsByteStream is true for the codepages usable as the ASCII
// codepage of a stream.
func (self Codepage) IsByteStream() bool {
	if self == CODEPAGE_ASCII {
		return true
	}
	_, pres := byte_stream_encodings[self]
	return pres
}

func (self Codepage) valid() bool {
	return self == CODEPAGE_UTF16_LITTLE_ENDIAN ||
		self == CODEPAGE_UTF8 || self.IsByteStream()
}

// ParseCodepage accepts "ascii", "utf-8", "cp1252", "windows-1252" or
// a bare number.
func ParseCodepage(name string) (Codepage, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	switch name {
	case "ascii", "us-ascii":
		return CODEPAGE_ASCII, nil
	case "utf-8", "utf8":
		return CODEPAGE_UTF8, nil
	case "utf-16le", "utf16le", "utf-16":
		return CODEPAGE_UTF16_LITTLE_ENDIAN, nil
	}

	for _, prefix := range []string{"windows-", "cp", "ibm"} {
		name = strings.TrimPrefix(name, prefix)
	}

	number, err := strconv.Atoi(name)
	if err != nil {
		return 0, errors.Wrapf(ErrInvalidArgument, "unknown codepage %q", name)
	}

	codepage := Codepage(number)
	if !codepage.valid() {
		return 0, errors.Wrapf(ErrInvalidArgument, "unsupported codepage %d", number)
	}
	return codepage, nil
}

// Decode a byte stream in a single byte or multi byte codepage.
func decodeByteStream(data []byte, codepage Codepage) (string, error) {
	switch codepage {
	case CODEPAGE_ASCII:
		for idx, c := range data {
			if c > 0x7f {
				return "", errors.Wrapf(ErrEncoding,
					"byte 0x%02x at %d is not ASCII", c, idx)
			}
		}
		return string(data), nil

	case CODEPAGE_UTF8:
		return decodeUTF8Stream(data)
	}

	enc, pres := byte_stream_encodings[codepage]
	if !pres {
		return "", errors.Wrapf(ErrInvalidArgument,
			"unsupported codepage %d", int(codepage))
	}

	result, err := enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", errors.Wrapf(ErrEncoding, "%v: %v", codepage, err)
	}
	return string(result), nil
}
