package strand

import (
	"errors"
	"fmt"
	"strconv"
)

// SlotState tracks the progress of a single named field during a record decode.
type SlotState int

const (
	SlotNotSeen SlotState = iota
	SlotPending
	SlotFilled
)

// Slot holds the state and, once filled, the decoded value of one field.
type Slot struct {
	State SlotState
	Value any
}

// Fields accumulates the slots of one record decode, indexed by field name.
// A fresh Fields value is created for every invocation of a record decoder.
type Fields map[string]Slot

// NewFields returns an accumulator with a NotSeen slot for every name.
func NewFields(names ...string) Fields {
	fields := make(Fields, len(names))
	for _, name := range names {
		fields[name] = Slot{State: SlotNotSeen}
	}

	return fields
}

// Action tells a record decoder what to do with the value of a key.
type Action struct {
	// nil for skip
	decoder Decoder[any]
}

// Keep decodes the value of the key with decoder and stores it in the keys slot.
// A later occurrence of the same key overwrites the value.
func Keep[T any](decoder Decoder[T]) Action {
	return Action{decoder: Map(decoder, func(value T) any { return value })}
}

// Skip discards the value of the key, whatever its shape.
func Skip() Action {
	return Action{}
}

// FieldStep classifies a key found in the input.
type FieldStep func(key string) Action

// Finalize assembles the record value from the accumulated fields. Use [Require]
// and [Lookup] to read the slots.
type Finalize[T any] func(fields Fields) (T, error)

// Record decodes a keyed collection into a value of type T.
//
// The accumulator starts with a NotSeen slot for every name in names. Each key
// of the input is passed to step: a [Keep] action decodes the value into the
// keys slot, a [Skip] action discards it. Keys may appear in any order. Once the
// collection is closed, finalize turns the accumulator into the result.
//
// A failing value decoder aborts the record with the decoders error. Errors
// returned by finalize are passed through if they are a *DecodeError, anything
// else is reported as ErrMalformedRecord.
func Record[T any](names []string, step FieldStep, finalize Finalize[T]) Decoder[T] {
	return func(c Cursor, f Format) Result[T] {
		fields := NewFields(names...)

		res := decodeEntries(c, f, func(key string, c Cursor) Result[struct{}] {
			action := step(key)
			if action.decoder == nil {
				return skipValue(c, f)
			}

			fields[key] = Slot{State: SlotPending}

			valueRes := action.decoder(c, f)
			if !valueRes.Ok() {
				return failed[struct{}](valueRes)
			}

			fields[key] = Slot{State: SlotFilled, Value: valueRes.value}
			return Succeed(struct{}{}, valueRes.rest)
		})

		if !res.Ok() {
			return failed[T](res)
		}

		value, err := finalize(fields)
		if err != nil {
			var decodeErr *DecodeError
			if !errors.As(err, &decodeErr) {
				err = &DecodeError{Kind: KindMalformedRecord, Offset: c.Offset(), Err: err}
			}

			return FailAt[T](err, c)
		}

		return Succeed(value, res.rest)
	}
}

// Dict decodes a keyed collection with arbitrary keys into a map. If a key
// appears more than once, the last value wins.
func Dict[V any](value Decoder[V]) Decoder[map[string]V] {
	return func(c Cursor, f Format) Result[map[string]V] {
		values := map[string]V{}

		res := decodeEntries(c, f, func(key string, c Cursor) Result[struct{}] {
			valueRes := value(c, f)
			if !valueRes.Ok() {
				return failed[struct{}](valueRes)
			}

			values[key] = valueRes.value
			return Succeed(struct{}{}, valueRes.rest)
		})

		if !res.Ok() {
			return failed[map[string]V](res)
		}

		return Succeed(values, res.rest)
	}
}

// Lookup returns the value of a filled slot.
func Lookup[T any](fields Fields, name string) (T, bool) {
	slot := fields[name]
	if slot.State != SlotFilled {
		var zero T
		return zero, false
	}

	value, ok := slot.Value.(T)
	return value, ok
}

// Require returns the value of a filled slot. It fails with ErrTooShort if the
// field never appeared in the input.
func Require[T any](fields Fields, name string) (T, error) {
	var zero T

	slot := fields[name]
	if slot.State != SlotFilled {
		return zero, &DecodeError{
			Kind:   KindTooShort,
			Offset: -1,
			Path:   fieldSegment(name),
			Err:    fmt.Errorf("required field %q is missing", name),
		}
	}

	value, ok := slot.Value.(T)
	if !ok {
		return zero, fmt.Errorf("field %q holds %T, not %T", name, slot.Value, zero)
	}

	return value, nil
}

// entryFunc decodes the value belonging to key, starting at c.
type entryFunc func(key string, c Cursor) Result[struct{}]

// decodeEntries walks a keyed collection and calls entry for every key.
func decodeEntries(c Cursor, f Format, entry entryFunc) Result[struct{}] {
	rest, ok := f.MatchOpenRecord(c)
	if !ok {
		return FailAt[struct{}](errorAt(KindMalformedRecord, c, "expected start of record"), c)
	}

	if end, ok := f.MatchCloseRecord(rest); ok {
		return Succeed(struct{}{}, end)
	}

	for {
		keyBytes, valueStart, ok := f.MatchKeyString(rest)
		if !ok {
			return FailAt[struct{}](errorAt(KindMalformedKey, rest, "expected key"), rest)
		}

		key := string(keyBytes)

		res := entry(key, valueStart)
		if !res.Ok() {
			return res.withPath(fieldSegment(key))
		}

		rest = res.rest

		if end, ok := f.MatchCloseRecord(rest); ok {
			return Succeed(struct{}{}, end)
		}

		if rest, ok = f.MatchFieldSeparator(rest); !ok {
			return FailAt[struct{}](errorAt(KindMalformedRecord, rest, "expected separator or end of record"), rest)
		}
	}
}

func skipValue(c Cursor, f Format) Result[struct{}] {
	rest, ok := f.SkipValue(c)
	if !ok {
		return FailAt[struct{}](errorAt(KindMalformedValue, c, "expected a value"), c)
	}

	return Succeed(struct{}{}, rest)
}

func fieldSegment(name string) string {
	return "." + name
}

func indexSegment(idx int) string {
	return "[" + strconv.Itoa(idx) + "]"
}
