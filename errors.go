package wrc

import "github.com/pkg/errors"

// Error categories. Call sites wrap these with context so callers can
// test the category with errors.Is().
var (
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrAlreadySet         = errors.New("value already set")
	ErrTruncatedInput     = errors.New("truncated input")
	ErrSizeOutOfBounds    = errors.New("size value out of bounds")
	ErrOffsetOutOfBounds  = errors.New("offset value out of bounds")
	ErrRangeInverted      = errors.New("first identifier exceeds last")
	ErrOddUTF16Length     = errors.New("odd UTF-16 byte length")
	ErrBadSignature       = errors.New("unsupported signature")
	ErrUnterminatedString = errors.New("missing string terminator")
	ErrEncoding           = errors.New("invalid character encoding")
	ErrIO                 = errors.New("unable to read data")
	ErrBufferTooSmall     = errors.New("buffer too small")
	ErrUnsupported        = errors.New("unsupported resource")
)
