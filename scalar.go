package strand

import (
	"encoding"
	"errors"
	"fmt"
	"golang.org/x/exp/constraints"
	"strconv"
	"unsafe"
)

var errNoScalars = errors.New("format has no scalar literals")

// Int decodes a number literal into a signed integer type. Fails with
// ErrMalformedValue if the literal is not an integer or does not fit into T.
// Range errors also match strconv.ErrRange.
func Int[T constraints.Signed]() Decoder[T] {
	bitSize := int(unsafe.Sizeof(T(0))) * 8

	return number(func(text string) (T, error) {
		value, err := strconv.ParseInt(text, 10, bitSize)
		return T(value), err
	})
}

// Uint decodes a number literal into an unsigned integer type.
func Uint[T constraints.Unsigned]() Decoder[T] {
	bitSize := int(unsafe.Sizeof(T(0))) * 8

	return number(func(text string) (T, error) {
		value, err := strconv.ParseUint(text, 10, bitSize)
		return T(value), err
	})
}

// Float decodes a number literal into a floating point type.
func Float[T constraints.Float]() Decoder[T] {
	bitSize := int(unsafe.Sizeof(T(0))) * 8

	return number(func(text string) (T, error) {
		value, err := strconv.ParseFloat(text, bitSize)
		return T(value), err
	})
}

// Bool decodes a boolean literal.
func Bool() Decoder[bool] {
	return func(c Cursor, f Format) Result[bool] {
		sf, ok := f.(ScalarFormat)
		if !ok {
			return FailAt[bool](&DecodeError{Kind: KindMalformedValue, Offset: c.Offset(), Err: errNoScalars}, c)
		}

		value, rest, ok := sf.MatchBool(c)
		if !ok {
			return FailAt[bool](errorAt(KindMalformedValue, c, "expected boolean literal"), c)
		}

		return Succeed(value, rest)
	}
}

// Nullable decodes either the null literal, yielding nil, or a value using decoder.
// Formats without a null literal always use decoder.
func Nullable[T any](decoder Decoder[T]) Decoder[*T] {
	return func(c Cursor, f Format) Result[*T] {
		if sf, ok := f.(ScalarFormat); ok {
			if rest, ok := sf.MatchNull(c); ok {
				return Succeed[*T](nil, rest)
			}
		}

		res := decoder(c, f)
		if !res.Ok() {
			return failed[*T](res)
		}

		value := res.value
		return Succeed(&value, res.rest)
	}
}

// Text decodes a string literal into a type implementing encoding.TextUnmarshaler,
// e.g. net.IP or time.Time.
func Text[T any, P interface {
	*T
	encoding.TextUnmarshaler
}]() Decoder[T] {
	return Primitive(func(literal []byte) (T, error) {
		var value T
		if err := P(&value).UnmarshalText(literal); err != nil {
			return value, fmt.Errorf("unmarshal %T: %w", value, err)
		}

		return value, nil
	})
}

func number[T any](parse func(text string) (T, error)) Decoder[T] {
	return func(c Cursor, f Format) Result[T] {
		text, rest, err := matchNumber(c, f)
		if err != nil {
			return FailAt[T](err, c)
		}

		value, err := parse(text)
		if err != nil {
			return FailAt[T](parseError(c, text, err), c)
		}

		return Succeed(value, rest)
	}
}

func matchNumber(c Cursor, f Format) (string, Cursor, error) {
	sf, ok := f.(ScalarFormat)
	if !ok {
		return "", c, &DecodeError{Kind: KindMalformedValue, Offset: c.Offset(), Err: errNoScalars}
	}

	text, rest, ok := sf.MatchNumber(c)
	if !ok {
		return "", c, errorAt(KindMalformedValue, c, "expected number literal")
	}

	return string(text), rest, nil
}

func parseError(at Cursor, text string, err error) error {
	if errors.Is(err, strconv.ErrSyntax) {
		err = fmt.Errorf("parse number %q: %w", text, err)
	}

	return &DecodeError{Kind: KindMalformedValue, Offset: at.Offset(), Err: err}
}
