package tester

import (
	"strings"

	"github.com/apple/foundationdb/bindings/go/src/fdb/tuple"
)

// OpCode names the ~47 opcode tags a Command can carry (§3, §4.1).
type OpCode string

const (
	OpPush  OpCode = "PUSH"
	OpDup   OpCode = "DUP"
	OpPop   OpCode = "POP"
	OpEmptyStack OpCode = "EMPTY_STACK"
	OpSwap  OpCode = "SWAP"
	OpSub   OpCode = "SUB"
	OpConcat OpCode = "CONCAT"

	OpLogStack OpCode = "LOG_STACK"

	OpNewTransaction       OpCode = "NEW_TRANSACTION"
	OpUseTransaction       OpCode = "USE_TRANSACTION"
	OpReset                OpCode = "RESET"
	OpCancel               OpCode = "CANCEL"
	OpCommit               OpCode = "COMMIT"
	OpOnError              OpCode = "ON_ERROR"
	OpGetCommittedVersion  OpCode = "GET_COMMITTED_VERSION"
	OpGetReadVersion       OpCode = "GET_READ_VERSION"
	OpSetReadVersion       OpCode = "SET_READ_VERSION"
	OpGetVersionstamp      OpCode = "GET_VERSIONSTAMP"
	OpWaitFuture           OpCode = "WAIT_FUTURE"

	OpGet                OpCode = "GET"
	OpGetKey             OpCode = "GET_KEY"
	OpGetRange           OpCode = "GET_RANGE"
	OpGetRangeStartsWith OpCode = "GET_RANGE_STARTS_WITH"
	OpGetRangeSelector   OpCode = "GET_RANGE_SELECTOR"

	OpSet                  OpCode = "SET"
	OpClear                OpCode = "CLEAR"
	OpClearRange           OpCode = "CLEAR_RANGE"
	OpClearRangeStartsWith OpCode = "CLEAR_RANGE_STARTS_WITH"

	OpAtomicOp OpCode = "ATOMIC_OP"

	OpReadConflictKey      OpCode = "READ_CONFLICT_KEY"
	OpWriteConflictKey     OpCode = "WRITE_CONFLICT_KEY"
	OpReadConflictRange    OpCode = "READ_CONFLICT_RANGE"
	OpWriteConflictRange   OpCode = "WRITE_CONFLICT_RANGE"
	OpDisableWriteConflict OpCode = "DISABLE_WRITE_CONFLICT"

	OpTuplePack  OpCode = "TUPLE_PACK"
	OpTupleUnpack OpCode = "TUPLE_UNPACK"
	OpTupleRange OpCode = "TUPLE_RANGE"
	OpTupleSort  OpCode = "TUPLE_SORT"

	OpEncodeFloat  OpCode = "ENCODE_FLOAT"
	OpEncodeDouble OpCode = "ENCODE_DOUBLE"
	OpDecodeFloat  OpCode = "DECODE_FLOAT"
	OpDecodeDouble OpCode = "DECODE_DOUBLE"

	OpStartThread OpCode = "START_THREAD"
	OpWaitEmpty   OpCode = "WAIT_EMPTY"

	OpUnitTests OpCode = "UNIT_TESTS"
)

// knownOpcodes is the full opcode vocabulary the decoder recognises.
// Anything else is "skip" per §4.1.
var knownOpcodes = map[OpCode]bool{
	OpPush: true, OpDup: true, OpPop: true, OpEmptyStack: true, OpSwap: true,
	OpSub: true, OpConcat: true, OpLogStack: true,
	OpNewTransaction: true, OpUseTransaction: true, OpReset: true, OpCancel: true,
	OpCommit: true, OpOnError: true, OpGetCommittedVersion: true, OpGetReadVersion: true,
	OpSetReadVersion: true, OpGetVersionstamp: true, OpWaitFuture: true,
	OpGet: true, OpGetKey: true, OpGetRange: true, OpGetRangeStartsWith: true,
	OpGetRangeSelector: true,
	OpSet: true, OpClear: true, OpClearRange: true, OpClearRangeStartsWith: true,
	OpAtomicOp: true,
	OpReadConflictKey: true, OpWriteConflictKey: true, OpReadConflictRange: true,
	OpWriteConflictRange: true, OpDisableWriteConflict: true,
	OpTuplePack: true, OpTupleUnpack: true, OpTupleRange: true, OpTupleSort: true,
	OpEncodeFloat: true, OpEncodeDouble: true, OpDecodeFloat: true, OpDecodeDouble: true,
	OpStartThread: true, OpWaitEmpty: true,
	OpUnitTests: true,
}

// Command is one decoded instruction (§3).
type Command struct {
	Op       OpCode
	Arg      Value
	HasArg   bool
	Snapshot bool
	Direct   bool
}

// DecodeCommand parses a stored program tuple into a Command per §4.1.
// The second return value is false when the tuple should be skipped
// (unknown opcode, or a PUSH with no argument) -- the command is then
// omitted from the program rather than halting the run.
func DecodeCommand(t tuple.Tuple) (Command, bool) {
	if len(t) == 0 {
		return Command{}, false
	}
	name, ok := t[0].(string)
	if !ok {
		return Command{}, false
	}

	snapshot := false
	direct := false
	switch {
	case strings.HasSuffix(name, "_SNAPSHOT"):
		snapshot = true
		name = strings.TrimSuffix(name, "_SNAPSHOT")
	case strings.HasSuffix(name, "_DATABASE"):
		direct = true
		name = strings.TrimSuffix(name, "_DATABASE")
	}

	op := OpCode(name)
	if !knownOpcodes[op] {
		return Command{}, false
	}

	cmd := Command{Op: op, Snapshot: snapshot, Direct: direct}
	if op == OpPush {
		if len(t) < 2 {
			return Command{}, false
		}
		v, err := fromElement(t[1])
		if err != nil {
			return Command{}, false
		}
		cmd.Arg = v
		cmd.HasArg = true
	}
	return cmd, true
}
