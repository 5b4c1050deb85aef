// Package surface defines the capability interfaces the stack-machine
// interpreter is written against. These mirror the abstract "binding
// surface" a FoundationDB client exposes: transactions, key selectors,
// streaming range reads, atomic mutations, and options. The interpreter
// never imports the concrete FoundationDB client directly; fdbadapter
// is the only package that does.
package surface

import "context"

//go:generate mockgen -source surface.go -destination mock_surface.go -package surface

// StreamingMode controls the batching heuristic of a range read. Values
// mirror the small-integer enum exposed by the FoundationDB client.
type StreamingMode int

const (
	StreamingModeWantAll StreamingMode = iota
	StreamingModeIterator
	StreamingModeSmall
	StreamingModeMedium
	StreamingModeLarge
	StreamingModeSerial
	StreamingModeExact
)

// NumStreamingModes bounds the valid StreamingMode values; anything
// outside [0, NumStreamingModes) is an illegal streaming mode number.
const NumStreamingModes = int(StreamingModeExact) + 1

// MutationType enumerates the atomic mutation codes 0..20 a binding's
// client exposes. The numeric values match the wire-level mutation
// type codes so ATOMIC_OP can select by integer code directly.
type MutationType int

const (
	MutationTypeAdd                    MutationType = 2
	MutationTypeBitAnd                 MutationType = 6
	MutationTypeBitOr                  MutationType = 7
	MutationTypeBitXor                 MutationType = 8
	MutationTypeAppendIfFits           MutationType = 9
	MutationTypeMax                    MutationType = 12
	MutationTypeMin                    MutationType = 13
	MutationTypeSetVersionstampedKey   MutationType = 14
	MutationTypeSetVersionstampedValue MutationType = 15
	MutationTypeByteMin                MutationType = 16
	MutationTypeByteMax                MutationType = 17
	MutationTypeCompareAndClear        MutationType = 20
)

// MaxMutationTypeCode is the upper bound of the mutation-type code space;
// most codes in [0, 20] are unassigned/reserved. ATOMIC_OP does not
// iterate this space: it resolves names through an explicit table.
const MaxMutationTypeCode = 20

// KeySelector is (anchor key, or-equal flag, integer offset): a
// lexicographic anchor plus a +-N key walk, as resolved by
// Transaction.FindKey / Transaction.GetRange.
type KeySelector struct {
	Key     []byte
	OrEqual bool
	Offset  int
}

// KeyValue is one row of a range read.
type KeyValue struct {
	Key   []byte
	Value []byte
}

// RangeOptions bounds a streaming range read.
type RangeOptions struct {
	Limit   int
	Mode    StreamingMode
	Reverse bool
}

// ReadTransaction is the read-only subset of Transaction. Snapshot reads
// use the same methods with snapshot set to true.
type ReadTransaction interface {
	Get(ctx context.Context, key []byte, snapshot bool) ([]byte, bool, error)
	FindKey(ctx context.Context, sel KeySelector, snapshot bool) ([]byte, bool, error)
	GetRange(ctx context.Context, begin, end KeySelector, opts RangeOptions, snapshot bool) ([]KeyValue, error)
}

// Transaction is the full read/write capability surface a single named
// transaction in the registry exposes. All methods that touch the
// network are blocking from the caller's perspective; the interpreter
// is responsible for deferring materialisation onto its stack.
type Transaction interface {
	ReadTransaction

	Set(key, value []byte)
	Clear(key []byte)
	ClearRange(begin, end []byte) error
	AtomicOp(op MutationType, key, param []byte) error

	AddReadConflictKey(key []byte)
	AddWriteConflictKey(key []byte)
	AddReadConflictRange(begin, end []byte) error
	AddWriteConflictRange(begin, end []byte) error
	DisableNextWriteConflict()

	Commit(ctx context.Context) error
	Reset()
	Cancel()
	OnError(ctx context.Context, code int) error

	GetReadVersion(ctx context.Context) (int64, error)
	SetReadVersion(v int64)
	GetCommittedVersion() (int64, error)
	GetVersionstamp(ctx context.Context) ([]byte, error)
}

// DatabaseHandle is the database-level capability: creating fresh
// transactions and running auto-retrying transient ones.
type DatabaseHandle interface {
	StartTransaction() (Transaction, error)
	RunRetriable(ctx context.Context, body func(Transaction) error) error
}

// BindingError is the kind carried by an error returned from any method
// above when the failure originated in the binding/client layer (as
// opposed to an interpreter-level bug). Only binding errors are
// eligible for ON_ERROR / automatic retry and for translation into an
// ERROR(code) stack value; every other error kind ends the run.
type BindingError struct {
	Code int
	msg  string
}

func (e *BindingError) Error() string {
	if e.msg != "" {
		return e.msg
	}
	return "binding error"
}

// NewBindingError builds a BindingError with the given numeric code.
func NewBindingError(code int, msg string) *BindingError {
	return &BindingError{Code: code, msg: msg}
}
