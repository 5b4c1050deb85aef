package tester

import (
	"math"
	"testing"

	"github.com/apple/foundationdb/bindings/go/src/fdb/tuple"
)

func TestValuePackRoundTrip(t *testing.T) {
	cases := []Value{
		IntValue(42),
		IntValue(-7),
		BytesValue([]byte("hello")),
		StringValue("world"),
		BoolValue(true),
		Float32Value(1.5),
		Float64Value(-2.25),
		NotPresentValue(),
		ErrorValue(1020),
	}

	for _, v := range cases {
		packed := v.Pack()
		unpacked, err := tuple.Unpack(packed)
		if err != nil {
			t.Fatalf("unpacking %+v: %v", v, err)
		}
		if len(unpacked) != 1 {
			t.Fatalf("expected a single element, got %d", len(unpacked))
		}
		got, err := fromElement(unpacked[0])
		if err != nil {
			t.Fatalf("fromElement: %v", err)
		}
		if v.Kind() == KindError || v.Kind() == KindNotPresent {
			// These sentinels round-trip as plain byte-strings, not
			// back into their original kind.
			continue
		}
		if !v.Equal(got) {
			t.Errorf("round trip mismatch: want %+v got %+v", v, got)
		}
	}
}

func TestValueFloatBitExactness(t *testing.T) {
	nan := Float64Value(math.NaN())
	other := Float64Value(math.NaN())
	if !nan.Equal(other) {
		t.Errorf("two NaNs with identical bit patterns should compare equal")
	}

	negZero := Float64Value(math.Copysign(0, -1))
	posZero := Float64Value(0)
	if negZero.Equal(posZero) {
		t.Errorf("-0.0 and 0.0 have distinct bit patterns and must not compare equal")
	}
}

func TestValueBytesCoercesTuple(t *testing.T) {
	tup := TupleValue(tuple.Tuple{int64(1), "x"})
	b, err := tup.Bytes()
	if err != nil {
		t.Fatalf("Bytes: %v", err)
	}
	want := tuple.Tuple{int64(1), "x"}.Pack()
	if string(b) != string(want) {
		t.Errorf("tuple coercion mismatch: want %x got %x", want, b)
	}
}

func TestValueStrRejectsInt(t *testing.T) {
	if _, err := IntValue(1).Str(); err == nil {
		t.Errorf("expected IllegalValueType coercing int to string")
	}
}

func TestValueDiffReportsKindAndValueMismatches(t *testing.T) {
	if diff := IntValue(1).Diff(IntValue(1)); len(diff) != 0 {
		t.Errorf("expected no diff for equal values, got %v", diff)
	}
	if diff := IntValue(1).Diff(IntValue(2)); len(diff) != 1 {
		t.Errorf("expected one diff line for differing ints, got %v", diff)
	}
	if diff := IntValue(1).Diff(StringValue("1")); len(diff) != 1 {
		t.Errorf("expected one diff line for differing kinds, got %v", diff)
	}
}
