package tester

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/apple/foundationdb/bindings/go/src/fdb/tuple"

	"github.com/foundationdb/fdb-go-stacktester/internal/surface"
)

// Embedded literals (§6.3), emitted verbatim as ASCII byte-strings.
const (
	sentinelNotPresent        = "RESULT_NOT_PRESENT"
	sentinelGotReadVersion    = "GOT_READ_VERSION"
	sentinelGotCommittedVers  = "GOT_COMMITTED_VERSION"
	sentinelSetConflictKey    = "SET_CONFLICT_KEY"
	sentinelSetConflictRange  = "SET_CONFLICT_RANGE"
	sentinelWaitedForEmpty    = "WAITED_FOR_EMPTY"
	sentinelErrorTag          = "ERROR"
	errCodeClearRangeInverted = 2005
)

// kind distinguishes interpreter-level failures from binding-layer
// failures (§7). Only the latter are eligible for ERROR(code)
// translation at pop time and for ON_ERROR/retry recovery.
type kind int

const (
	kindBinding kind = iota
	kindInterpreter
	kindFatal
)

// interpError is an interpreter-level failure (§7): PoppedEmptyStack,
// PushedEmptyValue, SwappedBeyondBounds, IllegalValueType,
// IllegalStreamingMode, CommandNotSupported. These always propagate and
// end the run unless they arose while resolving a *binding-layer*
// pending (see popValue in stack.go), in which case
// §4.2's pop() contract still lets C8 translate the underlying binding
// error first.
type interpError struct {
	reason string
}

func (e *interpError) Error() string { return e.reason }

func errPoppedEmptyStack() error     { return &interpError{"PoppedEmptyStack"} }
func errPushedEmptyValue() error     { return &interpError{"PushedEmptyValue"} }
func errSwappedBeyondBounds() error  { return &interpError{"SwappedBeyondBounds"} }
func errIllegalValueType(why string) error {
	return &interpError{"IllegalValueType: " + why}
}
func errIllegalStreamingMode() error { return &interpError{"IllegalStreamingMode"} }
func errCommandNotSupported(name string) error {
	return &interpError{"CommandNotSupported: " + name}
}

// classify returns the kind of err for the purposes of §7's policy:
// binding errors are recoverable and convertible to ERROR(code);
// everything else ends the run.
func classify(err error) (kind, int) {
	var be *surface.BindingError
	if errors.As(err, &be) {
		return kindBinding, be.Code
	}
	return kindInterpreter, 0
}

// translateError implements C8: on pop, a binding-layer error is
// converted to the tuple-packed byte-string ("ERROR", decimal code)
// instead of propagating. For any other error kind it reports false,
// and the caller keeps the original error and ends the run.
func translateError(err error) (Value, bool) {
	if err == nil {
		return Value{}, false
	}
	k, code := classify(err)
	if k != kindBinding {
		return Value{}, false
	}
	return ErrorValue(code), true
}

// packedError renders an ERROR(code) value the way §4.1/§6.3 describe:
// a tuple-packed byte-string ("ERROR", decimal_ascii_code).
func packedError(code int) []byte {
	return tuple.Tuple{sentinelErrorTag, []byte(strconv.Itoa(code))}.Pack()
}

func fatalf(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
