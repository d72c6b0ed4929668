package responses

import (
	"bytes"
	"encoding/json"
	"math"
	"reflect"
)

var rawMessageType = reflect.TypeOf(json.RawMessage(nil))

// Kind tags the variant held by a Payload
type Kind uint8

const (
	KindNone Kind = iota
	KindSequence
	KindRecord
	KindScalar
)

func (k Kind) String() string {
	switch k {
	case KindSequence:
		return "sequence"
	case KindRecord:
		return "record"
	case KindScalar:
		return "scalar"
	default:
		return "none"
	}
}

// Payload is the optional data attached to an envelope. The zero value is None.
type Payload struct {
	kind  Kind
	value any
}

// Kind reports which variant p holds
func (p Payload) Kind() Kind { return p.kind }

// Value returns the raw value held by p, nil for None
func (p Payload) Value() any { return p.value }

// None is the absent payload
func None() Payload { return Payload{} }

// Sequence holds an ordered list. A nil slice is None.
func Sequence[T any](items []T) Payload {
	if items == nil {
		return None()
	}
	return Payload{kind: KindSequence, value: items}
}

// Record holds a keyed structure. A nil map is None.
func Record[K comparable, V any](fields map[K]V) Payload {
	if fields == nil {
		return None()
	}
	return Payload{kind: KindRecord, value: fields}
}

// Object holds a struct (or pointer to one) as a record. A nil pointer is None.
func Object(v any) Payload {
	if isNil(v) {
		return None()
	}
	return Payload{kind: KindRecord, value: v}
}

// Scalar holds a single value that gets wrapped as {"value": v} when emitted
func Scalar(v any) Payload {
	if isNil(v) {
		return None()
	}
	return Payload{kind: KindScalar, value: v}
}

// PayloadOf classifies an arbitrary value. Slices and arrays become
// sequences, maps and structs become records, nil becomes None and
// everything else is a scalar. A Payload is returned as is. Anything that
// would marshal to null, such as a pointer to a nil slice or a raw JSON
// null, is None.
func PayloadOf(v any) Payload {
	if p, ok := v.(Payload); ok {
		return p
	}
	if isNil(v) {
		return None()
	}

	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		rv = rv.Elem()
	}
	if !rv.IsValid() {
		return None()
	}
	if rv.Type() == rawMessageType {
		raw := bytes.TrimSpace(rv.Bytes())
		if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
			return None()
		}
	}

	switch rv.Kind() {
	case reflect.Slice, reflect.Map:
		if rv.IsNil() {
			return None()
		}
		if rv.Kind() == reflect.Map {
			return Payload{kind: KindRecord, value: v}
		}
		return Payload{kind: KindSequence, value: v}
	case reflect.Array:
		return Payload{kind: KindSequence, value: v}
	case reflect.Struct:
		return Payload{kind: KindRecord, value: v}
	default:
		return Payload{kind: KindScalar, value: v}
	}
}

// Value is the record a scalar payload is wrapped in
type Value struct {
	Value any `json:"value"`
}

// Normalize returns the form of p that goes into the envelope's data field,
// and false when the field must be omitted.
//
// Sequences and records pass through untouched, so normalizing an already
// normalized payload is a no-op. Scalars are wrapped in Value unless they
// are falsy: 0, NaN, "" and false are treated exactly like no payload.
func Normalize(p Payload) (any, bool) {
	switch p.kind {
	case KindSequence, KindRecord:
		return p.value, true
	case KindScalar:
		if falsy(p.value) {
			return nil, false
		}
		return Value{Value: p.value}, true
	default:
		return nil, false
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

func falsy(v any) bool {
	if isNil(v) {
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return true
		}
		rv = rv.Elem()
	}

	switch rv.Kind() {
	case reflect.Bool:
		return !rv.Bool()
	case reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() == 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f == 0 || math.IsNaN(f)
	default:
		return false
	}
}
