package tester

import (
	"math"
	"testing"

	"github.com/apple/foundationdb/bindings/go/src/fdb/tuple"
	"go.uber.org/mock/gomock"
	"pgregory.net/rand"

	"github.com/foundationdb/fdb-go-stacktester/internal/surface"
)

// Invariant 1: len(stack) == pushes - pops over the run, with failed
// pops counting as neither.
func TestInvariantStackLengthTracksPushesAndPops(t *testing.T) {
	ip := runProgram(t, nil, []Command{
		push(IntValue(1)),
		push(IntValue(2)),
		push(IntValue(3)),
		{Op: OpPop},
	})
	if ip.stack.Len() != 2 {
		t.Errorf("expected 2 slots remaining, got %d", ip.stack.Len())
	}
}

// Invariant 3: the slot produced by the opcode at index i carries
// producer_index == i.
func TestInvariantProducerIndexMatchesCommandIndex(t *testing.T) {
	ip := runProgram(t, nil, []Command{
		push(IntValue(1)), // index 0
		push(IntValue(2)), // index 1
	})
	slots := ip.stack.Slots()
	if len(slots) != 2 {
		t.Fatalf("expected 2 slots, got %d", len(slots))
	}
	if slots[0].ProducerIndex != 0 || slots[1].ProducerIndex != 1 {
		t.Errorf("unexpected producer indices: %d, %d", slots[0].ProducerIndex, slots[1].ProducerIndex)
	}
}

// Invariant 4: current_name is always resolvable -- USE_TRANSACTION on
// a never-seen name creates it rather than erroring.
func TestInvariantCurrentNameAlwaysPresent(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := surface.NewMockDatabaseHandle(ctrl)
	tr := surface.NewMockTransaction(ctrl)
	db.EXPECT().StartTransaction().Return(tr, nil)

	r := NewRegistry(db, "")
	if r.CurrentName() != "" {
		t.Fatalf("expected empty initial current name, got %q", r.CurrentName())
	}
	r.SetCurrentName("never-seen")
	if got, ok := r.txns["never-seen"]; !ok || got != tr {
		t.Errorf("expected USE_TRANSACTION on an unseen name to create its transaction")
	}
}

// Invariant 6: TUPLE_UNPACK(TUPLE_PACK(v1..vn)) pushes n slots whose
// materialised byte-strings equal the singleton-packed tuples of v1..vn.
func TestInvariantTuplePackUnpackRoundTrip(t *testing.T) {
	values := []Value{IntValue(1), StringValue("x"), BytesValue([]byte("y")), BoolValue(true)}
	var cmds []Command
	for _, v := range values {
		cmds = append(cmds, push(v))
	}
	cmds = append(cmds, push(IntValue(int64(len(values)))))
	cmds = append(cmds, Command{Op: OpTuplePack}, Command{Op: OpTupleUnpack})

	ip := runProgram(t, nil, cmds)
	if ip.stack.Len() != len(values) {
		t.Fatalf("expected %d slots after unpack, got %d", len(values), ip.stack.Len())
	}

	// TUPLE_PACK packs in pop order (top becomes element 0), and
	// TUPLE_UNPACK pushes elements in their tuple order, so the final
	// stack (top to bottom) mirrors the original push order.
	for i := 0; i < len(values); i++ {
		top, err := popValue(ip.stack)
		if err != nil {
			t.Fatalf("pop: %v", err)
		}
		want := tuple.Tuple{values[i].toElement()}.Pack()
		if string(top.b) != string(want) {
			t.Errorf("slot %d: want %x got %x", i, want, top.b)
		}
	}
}

// Invariant 7: ENCODE_FLOAT/DOUBLE round-trips through DECODE are
// bit-exact, including NaN payloads and negative zero.
func TestInvariantFloatRoundTripBitExact(t *testing.T) {
	rng := rand.New(0xC0FFEE)
	for i := 0; i < 200; i++ {
		var raw [4]byte
		rng.Read(raw[:])
		ip := runProgram(t, nil, []Command{
			push(BytesValue(raw[:])),
			{Op: OpEncodeFloat},
			{Op: OpDecodeFloat},
		})
		top, err := popValue(ip.stack)
		if err != nil {
			t.Fatalf("pop: %v", err)
		}
		if string(top.b) != string(raw[:]) {
			t.Fatalf("round trip mismatch for %x: got %x", raw, top.b)
		}
	}
}

func TestInvariantDoubleRoundTripBitExactNaN(t *testing.T) {
	bits := math.Float64bits(math.NaN())
	raw := make([]byte, 8)
	putBeUint64(raw, bits)
	ip := runProgram(t, nil, []Command{
		push(BytesValue(raw)),
		{Op: OpEncodeDouble},
		{Op: OpDecodeDouble},
	})
	top, err := popValue(ip.stack)
	if err != nil {
		t.Fatalf("pop: %v", err)
	}
	if string(top.b) != string(raw) {
		t.Errorf("NaN bit pattern not preserved: want %x got %x", raw, top.b)
	}
}

// Invariant 8: TUPLE_SORT yields the lexicographic order defined by the
// tuple codec.
func TestInvariantTupleSortCanonicalOrder(t *testing.T) {
	packed := []tuple.Tuple{
		{int64(3)},
		{int64(1)},
		{int64(2)},
	}
	var cmds []Command
	for _, tup := range packed {
		cmds = append(cmds, push(BytesValue(tup.Pack())))
	}
	cmds = append(cmds, push(IntValue(int64(len(packed)))))
	cmds = append(cmds, Command{Op: OpTupleSort})

	ip := runProgram(t, nil, cmds)

	// Popping drains the stack top-first, which is the reverse of the
	// order TUPLE_SORT pushed its (ascending) results in.
	var popped []string
	for ip.stack.Len() > 0 {
		v, err := popValue(ip.stack)
		if err != nil {
			t.Fatalf("pop: %v", err)
		}
		popped = append(popped, string(v.b))
	}
	for i := 1; i < len(popped); i++ {
		if popped[i-1] < popped[i] {
			t.Errorf("results not in descending pop order (ascending push order): %x then %x", popped[i-1], popped[i])
		}
	}
}
