package strand

import (
	"encoding"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"sync"
)

// Unmarshal decodes input into target, which must be a non-nil pointer. Decoders
// are derived from the targets type using the default [Reflector]. target is only
// modified if decoding succeeds.
func Unmarshal(input []byte, format Format, target any) error {
	return reflector.Unmarshal(input, format, target)
}

// UnmarshalNew decodes input into a new value of type T using the default [Reflector].
func UnmarshalNew[T any](input []byte, format Format) (T, error) {
	return UnmarshalNewWith[T](&reflector, input, format)
}

// UnmarshalNewWith is like UnmarshalNew but derives the decoder using r.
func UnmarshalNewWith[T any](r *Reflector, input []byte, format Format) (T, error) {
	decoder, err := DecoderFor[T](r)
	if err != nil {
		var zero T
		return zero, err
	}

	return Decode(input, decoder, format)
}

// DecoderFor derives a Decoder for T from its type.
//
// Structs are decoded from keyed collections using [Record]: keys are matched
// against the field names, unknown keys are skipped, and the last occurrence of a
// duplicate key wins. Slices and arrays are decoded using [List], maps with
// string keys using [Dict]. Types implementing encoding.TextUnmarshaler are
// decoded from string literals, numbers and booleans require a [ScalarFormat].
func DecoderFor[T any](r *Reflector) (Decoder[T], error) {
	ty := reflect.TypeFor[T]()

	set, err := r.setterOf(typeSet{}, ty)
	if err != nil {
		return nil, err
	}

	decoder := func(c Cursor, f Format) Result[T] {
		target := reflect.New(ty)

		res := set(c, f, target.Elem())
		if !res.Ok() {
			return failed[T](res)
		}

		return Succeed(*target.Interface().(*T), res.rest)
	}

	return decoder, nil
}

// A setter decodes a value at the cursor and stores it in target
type setter func(c Cursor, f Format, target reflect.Value) Result[struct{}]

// A set of types that are currently in construction
type typeSet map[reflect.Type]struct{}

var tyTextUnmarshaler = reflect.TypeFor[encoding.TextUnmarshaler]()

var (
	boolDecoder    = Bool()
	int64Decoder   = Int[int64]()
	uint64Decoder  = Uint[uint64]()
	float64Decoder = Float[float64]()
	stringDecoder  = String()
	bytesDecoder   = Bytes()
)

// The default Reflector instance.
var reflector Reflector

// Reflector derives decoders from Go types. The derived decoders are cached,
// a Reflector is safe for concurrent use.
type Reflector struct {
	// the struct tag that is used
	structTag string

	// Cache for setters, indexed by reflect.Type
	setterCache sync.Map

	// Require values for fields. Set to true to fail with ErrTooShort
	// if a field is missing in the input
	requireValues bool
}

// NewReflector returns a Reflector that reads the `json` struct tag.
func NewReflector() *Reflector {
	return &Reflector{
		structTag: "json",
	}
}

// WithTag returns a Reflector that takes field names from the given struct tag.
func (r *Reflector) WithTag(structTag string) *Reflector {
	if r.structTag == structTag {
		return r
	}

	return &Reflector{
		structTag:     structTag,
		requireValues: r.requireValues,
	}
}

// RequireValues returns a Reflector that fails with ErrTooShort if any field is missing.
func (r *Reflector) RequireValues() *Reflector {
	if r.requireValues {
		return r
	}

	return &Reflector{
		structTag:     r.structTag,
		requireValues: true,
	}
}

// Unmarshal decodes input into target, see [Unmarshal].
func (r *Reflector) Unmarshal(input []byte, format Format, target any) error {
	targetValue := reflect.ValueOf(target)
	if targetValue.Kind() != reflect.Pointer || targetValue.IsNil() {
		return fmt.Errorf("target must be a non-nil pointer, got %T", target)
	}

	ty := targetValue.Type().Elem()

	// build the setter for the targets type
	set, err := r.setterOf(typeSet{}, ty)
	if err != nil {
		return err
	}

	value, err := Decode(input, valueDecoder(ty, set), format)
	if err != nil {
		return err
	}

	targetValue.Elem().Set(value)
	return nil
}

func (r *Reflector) setterOf(inConstruction typeSet, ty reflect.Type) (setter, error) {
	if cached, ok := r.setterCache.Load(ty); ok {
		return cached.(setter), nil
	}

	if _, ok := inConstruction[ty]; ok {
		// detected a cycle. return a setter that looks up the actual setter when executed.
		// Setters containing this one may be cached and used by another goroutine before
		// ty itself is stored, so fall back to building it.
		lazySetter := func(c Cursor, f Format, target reflect.Value) Result[struct{}] {
			set, err := r.setterOf(typeSet{}, ty)
			if err != nil {
				return FailAt[struct{}](err, c)
			}

			return set(c, f, target)
		}

		return lazySetter, nil
	}

	inConstruction[ty] = struct{}{}

	set, err := r.makeSetterOf(inConstruction, ty)
	if err != nil {
		return nil, err
	}

	r.setterCache.Store(ty, set)

	return set, nil
}

func (r *Reflector) makeSetterOf(inConstruction typeSet, ty reflect.Type) (setter, error) {
	if reflect.PointerTo(ty).Implements(tyTextUnmarshaler) {
		return setTextUnmarshaler, nil
	}

	switch ty.Kind() {
	case reflect.Bool:
		return setBool, nil

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return setInt, nil

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return setUint, nil

	case reflect.Float32, reflect.Float64:
		return setFloat, nil

	case reflect.String:
		return setString, nil

	case reflect.Pointer:
		return r.makeSetPointer(inConstruction, ty)

	case reflect.Struct:
		return r.makeSetStruct(inConstruction, ty)

	case reflect.Slice:
		return r.makeSetSlice(inConstruction, ty)

	case reflect.Array:
		return r.makeSetArray(inConstruction, ty)

	case reflect.Map:
		return r.makeSetMap(inConstruction, ty)

	default:
		return nil, NotSupportedError{Type: ty}
	}
}

func (r *Reflector) makeSetStruct(inConstruction typeSet, ty reflect.Type) (setter, error) {
	structTag := r.structTag
	if structTag == "" {
		structTag = "json"
	}

	fields := fieldsToSerialize(ty, structTag)

	names := make([]string, 0, len(fields))
	decoders := make(map[string]Decoder[reflect.Value], len(fields))

	for _, field := range fields {
		set, err := r.setterOf(inConstruction, field.Type)
		if err != nil {
			return nil, fmt.Errorf("setter for field %q: %w", field.Name, err)
		}

		names = append(names, field.Name)
		decoders[field.Name] = valueDecoder(field.Type, set)
	}

	step := func(key string) Action {
		decoder, ok := decoders[key]
		if !ok {
			return Skip()
		}

		return Keep(decoder)
	}

	setter := func(c Cursor, f Format, target reflect.Value) Result[struct{}] {
		finalize := func(slots Fields) (struct{}, error) {
			// start from scratch, a previous occurrence must not leak into this one
			target.SetZero()

			for _, field := range fields {
				value, err := Require[reflect.Value](slots, field.Name)
				switch {
				case errors.Is(err, ErrTooShort):
					if r.requireValues || field.Required {
						return struct{}{}, err
					}
					// It is okay to not get a value at all,
					// in that case we just skip the field
					continue
				case err != nil:
					return struct{}{}, err
				}

				target.FieldByIndex(field.Index).Set(value)
			}

			return struct{}{}, nil
		}

		return Record[struct{}](names, step, finalize)(c, f)
	}

	return setter, nil
}

func (r *Reflector) makeSetMap(inConstruction typeSet, ty reflect.Type) (setter, error) {
	keyType := ty.Key()

	var makeKey func(key string) (reflect.Value, error)

	switch {
	case reflect.PointerTo(keyType).Implements(tyTextUnmarshaler):
		makeKey = func(key string) (reflect.Value, error) {
			keyValue := reflect.New(keyType)
			err := keyValue.Interface().(encoding.TextUnmarshaler).UnmarshalText([]byte(key))
			return keyValue.Elem(), err
		}

	case keyType.Kind() == reflect.String:
		makeKey = func(key string) (reflect.Value, error) {
			return reflect.ValueOf(key).Convert(keyType), nil
		}

	default:
		return nil, fmt.Errorf("setter for key type %q: %w", ty, NotSupportedError{Type: keyType})
	}

	valueSetter, err := r.setterOf(inConstruction, ty.Elem())
	if err != nil {
		return nil, fmt.Errorf("setter for value type %q: %w", ty, err)
	}

	entries := Dict(valueDecoder(ty.Elem(), valueSetter))

	setter := func(c Cursor, f Format, target reflect.Value) Result[struct{}] {
		res := entries(c, f)
		if !res.Ok() {
			return failed[struct{}](res)
		}

		mapTarget := reflect.MakeMapWithSize(ty, len(res.value))

		for key, value := range res.value {
			keyValue, err := makeKey(key)
			if err != nil {
				return FailAt[struct{}](&DecodeError{Kind: KindMalformedKey, Offset: c.Offset(), Err: fmt.Errorf("key %q: %w", key, err)}, c)
			}

			mapTarget.SetMapIndex(keyValue, value)
		}

		target.Set(mapTarget)
		return res.discard()
	}

	return setter, nil
}

func (r *Reflector) makeSetSlice(inConstruction typeSet, ty reflect.Type) (setter, error) {
	elementSetter, err := r.setterOf(inConstruction, ty.Elem())
	if err != nil {
		return nil, fmt.Errorf("setter for element type %q: %w", ty, err)
	}

	elements := List(valueDecoder(ty.Elem(), elementSetter))

	setter := func(c Cursor, f Format, target reflect.Value) Result[struct{}] {
		res := elements(c, f)
		if !res.Ok() {
			return failed[struct{}](res)
		}

		sliceTarget := reflect.MakeSlice(ty, len(res.value), len(res.value))
		for idx, value := range res.value {
			sliceTarget.Index(idx).Set(value)
		}

		target.Set(sliceTarget)
		return res.discard()
	}

	return setter, nil
}

func (r *Reflector) makeSetArray(inConstruction typeSet, ty reflect.Type) (setter, error) {
	elementSetter, err := r.setterOf(inConstruction, ty.Elem())
	if err != nil {
		return nil, fmt.Errorf("setter for element type %q: %w", ty, err)
	}

	elements := List(valueDecoder(ty.Elem(), elementSetter))

	setter := func(c Cursor, f Format, target reflect.Value) Result[struct{}] {
		res := elements(c, f)
		if !res.Ok() {
			return failed[struct{}](res)
		}

		// surplus elements are dropped, missing ones stay zero
		target.SetZero()
		for idx, value := range res.value {
			if idx >= ty.Len() {
				break
			}

			target.Index(idx).Set(value)
		}

		return res.discard()
	}

	return setter, nil
}

func (r *Reflector) makeSetPointer(inConstruction typeSet, ty reflect.Type) (setter, error) {
	pointeeType := ty.Elem()

	pointeeSetter, err := r.setterOf(inConstruction, pointeeType)
	if err != nil {
		return nil, err
	}

	setter := func(c Cursor, f Format, target reflect.Value) Result[struct{}] {
		if sf, ok := f.(ScalarFormat); ok {
			if rest, ok := sf.MatchNull(c); ok {
				target.SetZero()
				return Succeed(struct{}{}, rest)
			}
		}

		// newValue is now a pointer to an instance of the pointeeType
		newValue := reflect.New(pointeeType)

		res := pointeeSetter(c, f, newValue.Elem())
		if !res.Ok() {
			return res
		}

		// set pointer to the new value
		target.Set(newValue)

		return res
	}

	return setter, nil
}

func setBool(c Cursor, f Format, target reflect.Value) Result[struct{}] {
	res := boolDecoder(c, f)
	if !res.Ok() {
		return failed[struct{}](res)
	}

	target.SetBool(res.value)
	return res.discard()
}

func setInt(c Cursor, f Format, target reflect.Value) Result[struct{}] {
	res := int64Decoder(c, f)
	if !res.Ok() {
		return failed[struct{}](res)
	}

	if target.OverflowInt(res.value) {
		return rangeFailure(c, res.value, target)
	}

	target.SetInt(res.value)
	return res.discard()
}

func setUint(c Cursor, f Format, target reflect.Value) Result[struct{}] {
	res := uint64Decoder(c, f)
	if !res.Ok() {
		return failed[struct{}](res)
	}

	if target.OverflowUint(res.value) {
		return rangeFailure(c, res.value, target)
	}

	target.SetUint(res.value)
	return res.discard()
}

func setFloat(c Cursor, f Format, target reflect.Value) Result[struct{}] {
	res := float64Decoder(c, f)
	if !res.Ok() {
		return failed[struct{}](res)
	}

	if target.OverflowFloat(res.value) {
		return rangeFailure(c, res.value, target)
	}

	target.SetFloat(res.value)
	return res.discard()
}

func setString(c Cursor, f Format, target reflect.Value) Result[struct{}] {
	res := stringDecoder(c, f)
	if !res.Ok() {
		return failed[struct{}](res)
	}

	target.SetString(res.value)
	return res.discard()
}

func setTextUnmarshaler(c Cursor, f Format, target reflect.Value) Result[struct{}] {
	res := bytesDecoder(c, f)
	if !res.Ok() {
		return failed[struct{}](res)
	}

	m := target.Addr().Interface().(encoding.TextUnmarshaler)
	if err := m.UnmarshalText(res.value); err != nil {
		return FailAt[struct{}](&DecodeError{Kind: KindMalformedValue, Offset: c.Offset(), Err: err}, c)
	}

	return res.discard()
}

func rangeFailure[V any](c Cursor, value V, target reflect.Value) Result[struct{}] {
	err := &DecodeError{
		Kind:   KindMalformedValue,
		Offset: c.Offset(),
		Err:    fmt.Errorf("invalid %s value %v: %w", target.Type(), value, strconv.ErrRange),
	}

	return FailAt[struct{}](err, c)
}

// valueDecoder decodes a fresh value of type ty using set.
func valueDecoder(ty reflect.Type, set setter) Decoder[reflect.Value] {
	return func(c Cursor, f Format) Result[reflect.Value] {
		value := reflect.New(ty).Elem()

		res := set(c, f, value)
		if !res.Ok() {
			return failed[reflect.Value](res)
		}

		return Succeed(value, res.rest)
	}
}

func (r Result[T]) discard() Result[struct{}] {
	if !r.Ok() {
		return failed[struct{}](r)
	}

	return Succeed(struct{}{}, r.rest)
}
