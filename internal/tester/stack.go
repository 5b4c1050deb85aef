package tester

import "sync"

// Pending is a deferred computation of a Value (§3, §9 "Lazy stack
// values"). Resolve is memoised: whichever caller resolves it first
// runs fn exactly once, and every later caller observes the same
// outcome. This is what makes dup (§4.2) correct without re-running
// the underlying binding call.
type Pending struct {
	once sync.Once
	fn   func() (Value, error)
	val  Value
	err  error
}

// NewPending defers fn until the first Resolve call.
func NewPending(fn func() (Value, error)) *Pending {
	return &Pending{fn: fn}
}

// Ready wraps an already-known value as a resolved Pending.
func Ready(v Value) *Pending {
	return &Pending{val: v}
}

// Failed wraps an already-known error as a resolved Pending.
func Failed(err error) *Pending {
	return &Pending{err: err}
}

// Resolve materialises the value, running fn at most once.
func (p *Pending) Resolve() (Value, error) {
	p.once.Do(func() {
		if p.fn != nil {
			p.val, p.err = p.fn()
		}
	})
	return p.val, p.err
}

// Slot is one stack entry: a pending result tagged with the index of
// the command that produced it (§3, invariant 3).
type Slot struct {
	Pending       *Pending
	ProducerIndex uint64
}

// Stack is the interpreter's deferred value stack (C4).
type Stack struct {
	slots []Slot
}

func NewStack() *Stack { return &Stack{} }

// Len reports the number of slots currently on the stack.
func (s *Stack) Len() int { return len(s.slots) }

// Push wraps value as an already-resolved pending tagged with
// producerIndex and appends it.
func (s *Stack) Push(value Value, producerIndex uint64) {
	s.PushPending(Ready(value), producerIndex)
}

// PushPending appends an already-built pending slot.
func (s *Stack) PushPending(p *Pending, producerIndex uint64) {
	s.slots = append(s.slots, Slot{Pending: p, ProducerIndex: producerIndex})
}

// Pop removes and returns the tail slot's pending. An empty stack
// yields an immediate PoppedEmptyStack failure rather than panicking,
// so callers can still run it through the binding-error translator.
func (s *Stack) Pop() *Pending {
	if len(s.slots) == 0 {
		return Failed(errPoppedEmptyStack())
	}
	slot := s.slots[len(s.slots)-1]
	s.slots = s.slots[:len(s.slots)-1]
	return slot.Pending
}

// PopSlot is Pop but keeps the producer index around for callers (like
// WAIT_FUTURE) that need it without a second pop.
func (s *Stack) PopSlot() (Slot, bool) {
	if len(s.slots) == 0 {
		return Slot{}, false
	}
	slot := s.slots[len(s.slots)-1]
	s.slots = s.slots[:len(s.slots)-1]
	return slot, true
}

// Dup duplicates the tail slot. The duplicate shares the same Pending
// pointer (and hence the same memoised resolution and producer index)
// as the original, per §4.2.
func (s *Stack) Dup() error {
	if len(s.slots) == 0 {
		return errPoppedEmptyStack()
	}
	s.slots = append(s.slots, s.slots[len(s.slots)-1])
	return nil
}

// Swap pops n as an integer and swaps the tail slot with the slot at
// index len-1-n (measured after popping n). n >= len is out of bounds.
func (s *Stack) Swap(nPending *Pending) error {
	nVal, err := nPending.Resolve()
	if err != nil {
		return err
	}
	n, err := nVal.Int()
	if err != nil {
		return err
	}
	return s.swapAt(int(n))
}

func (s *Stack) swapAt(n int) error {
	l := len(s.slots)
	if n < 0 || n >= l {
		return errSwappedBeyondBounds()
	}
	top := l - 1
	other := l - 1 - n
	s.slots[top], s.slots[other] = s.slots[other], s.slots[top]
	return nil
}

// Empty discards all slots.
func (s *Stack) Empty() {
	s.slots = nil
}

// Slots returns the live slots, highest index last, for callers (like
// LOG_STACK) that must walk the whole stack without consuming it.
func (s *Stack) Slots() []Slot {
	return s.slots
}

// popValue pops the tail slot and resolves it, translating a
// binding-layer error into an ERROR(code) value per C8 (§4.2's pop()
// contract). Any other error propagates untranslated.
func popValue(s *Stack) (Value, error) {
	p := s.Pop()
	v, err := p.Resolve()
	if err == nil {
		return v, nil
	}
	if ev, ok := translateError(err); ok {
		return ev, nil
	}
	return Value{}, err
}

func popInt(s *Stack) (int64, error) {
	v, err := popValue(s)
	if err != nil {
		return 0, err
	}
	return v.Int()
}

func popBool(s *Stack) (bool, error) {
	v, err := popValue(s)
	if err != nil {
		return false, err
	}
	return v.Bool()
}

func popBytes(s *Stack) ([]byte, error) {
	v, err := popValue(s)
	if err != nil {
		return nil, err
	}
	return v.Bytes()
}

func popString(s *Stack) (string, error) {
	v, err := popValue(s)
	if err != nil {
		return "", err
	}
	return v.Str()
}
