package tester

import (
	"testing"

	"github.com/foundationdb/fdb-go-stacktester/internal/surface"
)

func TestStackPopEmptyIsPoppedEmptyStack(t *testing.T) {
	s := NewStack()
	_, err := popValue(s)
	if err == nil {
		t.Fatal("expected PoppedEmptyStack error")
	}
}

func TestStackDupSharesIdentity(t *testing.T) {
	s := NewStack()
	calls := 0
	s.PushPending(NewPending(func() (Value, error) {
		calls++
		return IntValue(7), nil
	}), 0)
	if err := s.Dup(); err != nil {
		t.Fatalf("Dup: %v", err)
	}

	top, err := popValue(s)
	if err != nil {
		t.Fatalf("pop 1: %v", err)
	}
	second, err := popValue(s)
	if err != nil {
		t.Fatalf("pop 2: %v", err)
	}
	if !top.Equal(second) {
		t.Errorf("duplicated slots should resolve to the same value")
	}
	if calls != 1 {
		t.Errorf("dup must not re-run the underlying computation, ran %d times", calls)
	}
}

func TestStackSwap(t *testing.T) {
	s := NewStack()
	s.Push(IntValue(1), 0)
	s.Push(IntValue(2), 1)
	s.Push(IntValue(3), 2)
	// swap(0) is a no-op on the tail.
	if err := s.swapAt(0); err != nil {
		t.Fatalf("swapAt(0): %v", err)
	}
	top, _ := popValue(s)
	if v, _ := top.Int(); v != 3 {
		t.Errorf("swapAt(0) changed the tail, got %d", v)
	}

	// swap(1) exchanges the tail with the slot below it.
	s2 := NewStack()
	s2.Push(IntValue(10), 0)
	s2.Push(IntValue(20), 1)
	if err := s2.swapAt(1); err != nil {
		t.Fatalf("swapAt(1): %v", err)
	}
	a, _ := popValue(s2)
	b, _ := popValue(s2)
	av, _ := a.Int()
	bv, _ := b.Int()
	if av != 10 || bv != 20 {
		t.Errorf("swapAt(1) expected order (10, 20) after pops, got (%d, %d)", av, bv)
	}
}

func TestStackSwapOutOfBounds(t *testing.T) {
	s := NewStack()
	s.Push(IntValue(1), 0)
	if err := s.swapAt(5); err == nil {
		t.Error("expected SwappedBeyondBounds")
	}
}

func TestStackEmptyDiscardsEverything(t *testing.T) {
	s := NewStack()
	s.Push(IntValue(1), 0)
	s.Push(IntValue(2), 1)
	s.Empty()
	if s.Len() != 0 {
		t.Errorf("expected empty stack, got len %d", s.Len())
	}
}

func TestPendingBindingErrorTranslatesOnPop(t *testing.T) {
	s := NewStack()
	s.PushPending(Failed(surface.NewBindingError(1020, "not_committed")), 0)
	v, err := popValue(s)
	if err != nil {
		t.Fatalf("expected the binding error to be translated, got %v", err)
	}
	if v.Kind() != KindError {
		t.Fatalf("expected an ERROR value, got kind %d", v.Kind())
	}
}
