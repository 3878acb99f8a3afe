package strand

// Result is the outcome of a single decoder invocation. It either holds a value
// and the remaining input, or an error together with the position of the failure
// if one is known.
type Result[T any] struct {
	value   T
	rest    Cursor
	hasRest bool
	err     error
}

// Succeed returns a successful result.
func Succeed[T any](value T, rest Cursor) Result[T] {
	return Result[T]{value: value, rest: rest, hasRest: true}
}

// Fail returns a failed result without a position.
func Fail[T any](err error) Result[T] {
	if err == nil {
		panic("strand: Fail called with nil error")
	}

	return Result[T]{err: err}
}

// FailAt returns a failed result that remembers the cursor at the point of failure.
func FailAt[T any](err error, at Cursor) Result[T] {
	if err == nil {
		panic("strand: FailAt called with nil error")
	}

	return Result[T]{err: err, rest: at, hasRest: true}
}

// Ok reports whether the decoder succeeded.
func (r Result[T]) Ok() bool {
	return r.err == nil
}

// Value returns the decoded value. It is the zero value on failure.
func (r Result[T]) Value() T {
	return r.value
}

// Err returns the decode error, nil on success.
func (r Result[T]) Err() error {
	return r.err
}

// Rest returns the remaining input. On failure the cursor is only available if the
// failing decoder recorded its position.
func (r Result[T]) Rest() (Cursor, bool) {
	return r.rest, r.hasRest
}

// Unwrap splits the result into its parts.
func (r Result[T]) Unwrap() (T, Cursor, error) {
	return r.value, r.rest, r.err
}

// failed converts a failed result into a failed result of another type.
func failed[U, T any](r Result[T]) Result[U] {
	return Result[U]{err: r.err, rest: r.rest, hasRest: r.hasRest}
}
