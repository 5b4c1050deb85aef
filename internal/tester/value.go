package tester

import (
	"fmt"
	"math"

	"github.com/apple/foundationdb/bindings/go/src/fdb/tuple"
)

// Kind tags the sum type carried on the deferred stack (§3 "Dynamic
// value"): a signed integer; byte-string; UTF-8 string; bool; 32/64-bit
// float; UUID; nested tuple; the ERROR(code) sentinel; and the fixed
// RESULT_NOT_PRESENT sentinel.
type Kind int

const (
	KindInt Kind = iota
	KindBytes
	KindString
	KindBool
	KindFloat32
	KindFloat64
	KindUUID
	KindTuple
	KindError
	KindNotPresent
)

// Value is one materialised stack value. Only the field matching Kind
// is meaningful.
type Value struct {
	kind    Kind
	i       int64
	b       []byte
	s       string
	bl      bool
	f32     float32
	f64     float64
	uuid    tuple.UUID
	tup     tuple.Tuple
	errCode int
}

func (v Value) Kind() Kind { return v.kind }

func IntValue(i int64) Value             { return Value{kind: KindInt, i: i} }
func BytesValue(b []byte) Value          { return Value{kind: KindBytes, b: b} }
func StringValue(s string) Value         { return Value{kind: KindString, s: s} }
func BoolValue(b bool) Value             { return Value{kind: KindBool, bl: b} }
func Float32Value(f float32) Value       { return Value{kind: KindFloat32, f32: f} }
func Float64Value(f float64) Value       { return Value{kind: KindFloat64, f64: f} }
func UUIDValue(u tuple.UUID) Value       { return Value{kind: KindUUID, uuid: u} }
func TupleValue(t tuple.Tuple) Value     { return Value{kind: KindTuple, tup: t} }
func ErrorValue(code int) Value          { return Value{kind: KindError, errCode: code} }

// NotPresentValue is the fixed RESULT_NOT_PRESENT sentinel, pushed
// wherever a read found nothing.
func NotPresentValue() Value { return Value{kind: KindNotPresent} }

func (v Value) Int() (int64, error) {
	if v.kind != KindInt {
		return 0, errIllegalValueType("expected integer")
	}
	return v.i, nil
}

func (v Value) Bool() (bool, error) {
	if v.kind != KindBool {
		return false, errIllegalValueType("expected bool")
	}
	return v.bl, nil
}

func (v Value) Tuple() (tuple.Tuple, error) {
	if v.kind != KindTuple {
		return nil, errIllegalValueType("expected tuple")
	}
	return v.tup, nil
}

// Bytes returns v coerced to a byte-string. Legal coercions per §4.2:
// an exact byte-string match, or a nested tuple coerced by packing it
// (the binding's Key/Value abstraction is just []byte in this module).
func (v Value) Bytes() ([]byte, error) {
	switch v.kind {
	case KindBytes:
		return v.b, nil
	case KindTuple:
		return v.tup.Pack(), nil
	default:
		return nil, errIllegalValueType("expected byte-string or tuple")
	}
}

// Str returns v's UTF-8 string, with no coercion (strings and
// byte-strings are distinct kinds per the data model).
func (v Value) Str() (string, error) {
	switch v.kind {
	case KindString:
		return v.s, nil
	default:
		return "", errIllegalValueType("expected string")
	}
}

// Pack renders v using the tuple codec's typed element packing, the
// form written by LOG_STACK and read back by TUPLE_UNPACK et al.
func (v Value) Pack() []byte {
	return tuple.Tuple{v.toElement()}.Pack()
}

// toElement returns v as a tuple element suitable for embedding inside
// a larger tuple.Tuple (TUPLE_PACK, TUPLE_RANGE, Pack).
func (v Value) toElement() tuple.TupleElement {
	switch v.kind {
	case KindInt:
		return v.i
	case KindBytes:
		return v.b
	case KindString:
		return v.s
	case KindBool:
		return v.bl
	case KindFloat32:
		return v.f32
	case KindFloat64:
		return v.f64
	case KindUUID:
		return v.uuid
	case KindTuple:
		return v.tup
	case KindError:
		return packedError(v.errCode)
	case KindNotPresent:
		return []byte(sentinelNotPresent)
	default:
		panic(fmt.Sprintf("unhandled value kind %d", v.kind))
	}
}

// fromElement decodes a tuple element (as produced by tuple.Unpack) at
// its declared wire type into a dynamic stack Value. Used by the PUSH
// argument decoder (§4.1); TUPLE_UNPACK and TUPLE_SORT push packed
// byte-strings and do not go through it.
func fromElement(e tuple.TupleElement) (Value, error) {
	switch x := e.(type) {
	case int64:
		return IntValue(x), nil
	case uint64:
		if x > math.MaxInt64 {
			return Value{}, errIllegalValueType("integer literal out of range")
		}
		return IntValue(int64(x)), nil
	case int:
		return IntValue(int64(x)), nil
	case []byte:
		return BytesValue(x), nil
	case string:
		return StringValue(x), nil
	case bool:
		return BoolValue(x), nil
	case float32:
		return Float32Value(x), nil
	case float64:
		return Float64Value(x), nil
	case tuple.UUID:
		return UUIDValue(x), nil
	case tuple.Tuple:
		return TupleValue(x), nil
	case nil:
		return NotPresentValue(), nil
	default:
		return Value{}, errIllegalValueType(fmt.Sprintf("unsupported tuple element type %T", e))
	}
}

// Equal reports whether two values carry the same kind and payload;
// used only by tests.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindInt:
		return v.i == o.i
	case KindBytes:
		return string(v.b) == string(o.b)
	case KindString:
		return v.s == o.s
	case KindBool:
		return v.bl == o.bl
	case KindFloat32:
		return math.Float32bits(v.f32) == math.Float32bits(o.f32)
	case KindFloat64:
		return math.Float64bits(v.f64) == math.Float64bits(o.f64)
	case KindUUID:
		return v.uuid == o.uuid
	case KindTuple:
		return string(v.tup.Pack()) == string(o.tup.Pack())
	case KindError:
		return v.errCode == o.errCode
	case KindNotPresent:
		return true
	default:
		return false
	}
}

// Diff reports the human-readable differences between two values, for
// table-driven test failures; empty when Equal(v, o) would be true.
func (v Value) Diff(o Value) (res []string) {
	if v.kind != o.kind {
		res = append(res, fmt.Sprintf("different kind: %d vs %d", v.kind, o.kind))
		return res
	}
	if !v.Equal(o) {
		res = append(res, fmt.Sprintf("different value: %s vs %s", v.render(), o.render()))
	}
	return res
}

// render formats a value for Diff messages; it is not a wire format.
func (v Value) render() string {
	switch v.kind {
	case KindInt:
		return fmt.Sprintf("%d", v.i)
	case KindBytes:
		return fmt.Sprintf("%x", v.b)
	case KindString:
		return v.s
	case KindBool:
		return fmt.Sprintf("%t", v.bl)
	case KindFloat32:
		return fmt.Sprintf("%v", v.f32)
	case KindFloat64:
		return fmt.Sprintf("%v", v.f64)
	case KindUUID:
		return fmt.Sprintf("%v", v.uuid)
	case KindTuple:
		return fmt.Sprintf("%x", v.tup.Pack())
	case KindError:
		return fmt.Sprintf("ERROR(%d)", v.errCode)
	case KindNotPresent:
		return "RESULT_NOT_PRESENT"
	default:
		return "<unknown>"
	}
}
