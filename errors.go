package strand

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"
)

var ErrOutOfBounds = errors.New("out of bounds")
var ErrMalformedValue = errors.New("malformed value")
var ErrMalformedList = errors.New("malformed list")
var ErrMalformedRecord = errors.New("malformed record")
var ErrMalformedKey = errors.New("malformed key")
var ErrTooShort = errors.New("too short")
var ErrTrailingData = errors.New("trailing data")

// Kind classifies a decode failure.
type Kind int

const (
	KindOutOfBounds Kind = iota + 1
	KindMalformedValue
	KindMalformedList
	KindMalformedRecord
	KindMalformedKey
	KindTooShort
	KindTrailingData
)

func (k Kind) String() string {
	if err := k.sentinel(); err != nil {
		return err.Error()
	}

	return "kind(" + strconv.Itoa(int(k)) + ")"
}

func (k Kind) sentinel() error {
	switch k {
	case KindOutOfBounds:
		return ErrOutOfBounds
	case KindMalformedValue:
		return ErrMalformedValue
	case KindMalformedList:
		return ErrMalformedList
	case KindMalformedRecord:
		return ErrMalformedRecord
	case KindMalformedKey:
		return ErrMalformedKey
	case KindTooShort:
		return ErrTooShort
	case KindTrailingData:
		return ErrTrailingData
	default:
		return nil
	}
}

// DecodeError describes where and why a decoder failed. It matches the sentinel
// error of its Kind with errors.Is, e.g. errors.Is(err, ErrTooShort).
type DecodeError struct {
	Kind Kind

	// Offset of the failure in the input, -1 if unknown.
	Offset int

	// Path to the failing value, e.g. `.second[1]`. Empty at the top level.
	Path string

	// Err is the underlying cause, may be nil.
	Err error
}

func (e *DecodeError) Error() string {
	msg := e.Kind.String()

	if e.Offset >= 0 {
		msg += " at offset " + strconv.Itoa(e.Offset)
	}

	if e.Path != "" {
		msg += " in " + e.Path
	}

	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}

	return msg
}

func (e *DecodeError) Unwrap() []error {
	var errs []error

	if sentinel := e.Kind.sentinel(); sentinel != nil {
		errs = append(errs, sentinel)
	}

	if e.Err != nil {
		errs = append(errs, e.Err)
	}

	return errs
}

// KindOf returns the Kind of the first DecodeError in err's chain.
func KindOf(err error) (Kind, bool) {
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		return 0, false
	}

	return decodeErr.Kind, true
}

// NotSupportedError is returned by a Reflector for types it can not build a decoder for.
type NotSupportedError struct {
	Type reflect.Type
}

func (n NotSupportedError) Error() string {
	return fmt.Sprintf("type %q is not supported", n.Type)
}

func errorAt(kind Kind, at Cursor, format string, args ...any) *DecodeError {
	var cause error
	if format != "" {
		cause = fmt.Errorf(format, args...)
	}

	return &DecodeError{Kind: kind, Offset: at.Offset(), Err: cause}
}

// withPath prefixes the path of a DecodeError with segment. Other errors are
// returned unchanged.
func withPath(err error, segment string) error {
	var decodeErr *DecodeError
	if !errors.As(err, &decodeErr) {
		return err
	}

	// copy, a DecodeError might be shared by reused results
	prefixed := *decodeErr
	prefixed.Path = segment + decodeErr.Path
	return &prefixed
}
