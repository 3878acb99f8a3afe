package strand

// Decoder reconstructs a value of type T from the input at a cursor, using a
// [Format] to recognize the tokens of the wire syntax.
//
// A Decoder is a plain function value without any state of its own. Combining
// decoders using [Map], [List] or [Record] never reads input, only invoking the
// resulting decoder does. Decoders can therefore be defined once, e.g. in a
// package level variable, and shared between any number of concurrent decodes.
type Decoder[T any] func(c Cursor, f Format) Result[T]

// Custom turns a function into a Decoder. It is the escape hatch for decoders
// that need direct access to the cursor and format.
func Custom[T any](fn func(c Cursor, f Format) Result[T]) Decoder[T] {
	return fn
}

// DecodeWith runs the decoder on the start of input. The remaining input is
// available from the result.
func DecodeWith[T any](input []byte, decoder Decoder[T], format Format) Result[T] {
	return decoder(NewCursor(input), format)
}

// Decode runs the decoder and requires that it consumes all of input.
// Returns an error matching ErrTrailingData if bytes are left over.
func Decode[T any](input []byte, decoder Decoder[T], format Format) (T, error) {
	var zero T

	value, rest, err := DecodeWith(input, decoder, format).Unwrap()
	if err != nil {
		return zero, err
	}

	if t, ok := format.(trailer); ok {
		rest = t.SkipTrailing(rest)
	}

	if !rest.Done() {
		return zero, errorAt(KindTrailingData, rest, "%d unread bytes", rest.Len())
	}

	return value, nil
}

// trailer is implemented by formats that allow insignificant bytes between
// tokens, e.g. whitespace. SkipTrailing consumes them.
type trailer interface {
	SkipTrailing(c Cursor) Cursor
}

// Primitive decodes a string literal and converts its raw content using parse.
// The content passed to parse aliases the input. Fails with ErrMalformedValue if
// no literal is present or parse returns an error.
func Primitive[T any](parse func(literal []byte) (T, error)) Decoder[T] {
	return func(c Cursor, f Format) Result[T] {
		literal, rest, ok := f.MatchStringLiteral(c)
		if !ok {
			return FailAt[T](errorAt(KindMalformedValue, c, "expected string literal"), c)
		}

		value, err := parse(literal)
		if err != nil {
			return FailAt[T](&DecodeError{Kind: KindMalformedValue, Offset: c.Offset(), Err: err}, c)
		}

		return Succeed(value, rest)
	}
}

// String decodes a string literal.
func String() Decoder[string] {
	return Primitive(func(literal []byte) (string, error) {
		return string(literal), nil
	})
}

// Bytes decodes a string literal without copying it. The returned slice aliases
// the input buffer.
func Bytes() Decoder[[]byte] {
	return Primitive(func(literal []byte) ([]byte, error) {
		return literal, nil
	})
}

// Map transforms the value of a successful decode. Failures are passed through unchanged.
func Map[T, U any](decoder Decoder[T], fn func(T) U) Decoder[U] {
	return func(c Cursor, f Format) Result[U] {
		res := decoder(c, f)
		if !res.Ok() {
			return failed[U](res)
		}

		return Succeed(fn(res.value), res.rest)
	}
}

// TryMap is like Map but fn may reject the value. A rejection fails with
// ErrMalformedValue positioned at the start of the value.
func TryMap[T, U any](decoder Decoder[T], fn func(T) (U, error)) Decoder[U] {
	return func(c Cursor, f Format) Result[U] {
		res := decoder(c, f)
		if !res.Ok() {
			return failed[U](res)
		}

		value, err := fn(res.value)
		if err != nil {
			return FailAt[U](&DecodeError{Kind: KindMalformedValue, Offset: c.Offset(), Err: err}, c)
		}

		return Succeed(value, res.rest)
	}
}

// List decodes a sequence of elements. The elements are returned in input order,
// an empty list yields an empty, non-nil slice.
//
// Fails with ErrMalformedList if the list is not opened, or if an element is
// followed by neither a separator nor the end of the list. The first failing
// element aborts the decode and its error is returned as is.
func List[T any](element Decoder[T]) Decoder[[]T] {
	return func(c Cursor, f Format) Result[[]T] {
		rest, ok := f.MatchOpenList(c)
		if !ok {
			return FailAt[[]T](errorAt(KindMalformedList, c, "expected start of list"), c)
		}

		values := []T{}

		if end, ok := f.MatchCloseList(rest); ok {
			return Succeed(values, end)
		}

		for idx := 0; ; idx++ {
			res := element(rest, f)
			if !res.Ok() {
				return failed[[]T](res.withPath(indexSegment(idx)))
			}

			values = append(values, res.value)
			rest = res.rest

			if end, ok := f.MatchCloseList(rest); ok {
				return Succeed(values, end)
			}

			if rest, ok = f.MatchElementSeparator(rest); !ok {
				return FailAt[[]T](errorAt(KindMalformedList, rest, "expected separator or end of list"), rest)
			}
		}
	}
}

// Raw captures the input bytes of exactly one value of any shape, as delimited by
// the format's SkipValue. Insignificant bytes in front of the value are not part
// of the capture. The returned slice aliases the input.
func Raw() Decoder[[]byte] {
	return func(c Cursor, f Format) Result[[]byte] {
		start := c
		if t, ok := f.(trailer); ok {
			start = t.SkipTrailing(c)
		}

		rest, ok := f.SkipValue(start)
		if !ok {
			return FailAt[[]byte](errorAt(KindMalformedValue, c, "expected a value"), c)
		}

		return Succeed(start.span(rest), rest)
	}
}

func (r Result[T]) withPath(segment string) Result[T] {
	if r.err != nil {
		r.err = withPath(r.err, segment)
	}

	return r
}
