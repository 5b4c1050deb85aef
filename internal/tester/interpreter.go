package tester

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/apple/foundationdb/bindings/go/src/fdb/tuple"
	"github.com/dsnet/golib/unitconv"

	"github.com/foundationdb/fdb-go-stacktester/internal/surface"
)

// waitEmptyPollInterval paces WAIT_EMPTY's polling loop.
const waitEmptyPollInterval = 20 * time.Millisecond

// Interpreter walks one decoded program (C6). Each interpreter owns an
// independent Stack and Registry; Spawner lets START_THREAD fork
// siblings that share only the database handle (C7).
type Interpreter struct {
	Name     string
	commands []Command
	pc       uint64
	stack    *Stack
	registry *Registry
	lastSeenVersion int64
	finished bool
	trace    func(string, ...any)
	spawner  *Spawner
}

// NewInterpreter builds an interpreter rooted at name, reading its
// program from commands (already decoded by the bootstrap).
func NewInterpreter(name string, commands []Command, db surface.DatabaseHandle, spawner *Spawner) *Interpreter {
	return &Interpreter{
		Name:            name,
		commands:        commands,
		stack:           NewStack(),
		registry:        NewRegistry(db, ""),
		lastSeenVersion: -1,
		trace:           func(format string, args ...any) { fmt.Printf(format, args...) },
		spawner:         spawner,
	}
}

// Run executes every command in order until the list is exhausted or a
// non-recoverable error ends the run (§4.3 step 3).
func (ip *Interpreter) Run(ctx context.Context) error {
	for ip.pc < uint64(len(ip.commands)) {
		cmd := ip.commands[ip.pc]
		ip.trace("Executing %s %d - Stack %d\n", cmd.Op, ip.pc, ip.stack.Len())
		if ip.pc > 0 && ip.pc%1000 == 0 {
			ip.trace("... %s commands executed\n", unitconv.FormatPrefix(float64(ip.pc), unitconv.SI, 0))
		}
		if err := ip.step(ctx, cmd, ip.pc); err != nil {
			ip.finished = true
			return err
		}
		ip.pc++
	}
	ip.finished = true
	return nil
}

func (ip *Interpreter) push(v Value, producerIndex uint64) {
	ip.stack.Push(v, producerIndex)
}

func (ip *Interpreter) pushPending(p *Pending, producerIndex uint64) {
	ip.stack.PushPending(p, producerIndex)
}

// step dispatches a single command. idx is the command's own index,
// used to tag any slot it produces (invariant 3).
func (ip *Interpreter) step(ctx context.Context, cmd Command, idx uint64) error {
	switch cmd.Op {

	// --- Stack ops ---
	case OpPush:
		if !cmd.HasArg {
			return errPushedEmptyValue()
		}
		ip.push(cmd.Arg, idx)
		return nil

	case OpDup:
		return ip.stack.Dup()

	case OpPop:
		ip.stack.Pop()
		return nil

	case OpEmptyStack:
		ip.stack.Empty()
		return nil

	case OpSwap:
		return ip.stack.Swap(ip.stack.Pop())

	case OpSub:
		return ip.opSub(idx)

	case OpConcat:
		return ip.opConcat(idx)

	// --- Logging ---
	case OpLogStack:
		return ip.opLogStack(ctx)

	// --- Transaction ops ---
	case OpNewTransaction:
		return ip.registry.NewTransactionForCurrent()

	case OpUseTransaction:
		name, err := popString(ip.stack)
		if err != nil {
			return err
		}
		ip.registry.SetCurrentName(name)
		return nil

	case OpReset:
		tr, err := ip.registry.Current()
		if err != nil {
			return err
		}
		tr.Reset()
		return nil

	case OpCancel:
		tr, err := ip.registry.Current()
		if err != nil {
			return err
		}
		tr.Cancel()
		return nil

	case OpCommit:
		tr, err := ip.registry.Current()
		if err != nil {
			return err
		}
		ip.pushPending(NewPending(func() (Value, error) {
			if err := tr.Commit(ctx); err != nil {
				return Value{}, err
			}
			return NotPresentValue(), nil
		}), idx)
		return nil

	case OpOnError:
		return ip.opOnError(ctx, idx)

	case OpGetCommittedVersion:
		tr, err := ip.registry.Current()
		if err != nil {
			return err
		}
		v, err := tr.GetCommittedVersion()
		if err != nil {
			return err
		}
		ip.lastSeenVersion = v
		ip.push(BytesValue([]byte(sentinelGotCommittedVers)), idx)
		return nil

	case OpGetReadVersion:
		tr, err := ip.registry.Current()
		if err != nil {
			return err
		}
		v, err := tr.GetReadVersion(ctx)
		if err != nil {
			if ev, ok := translateError(err); ok {
				ip.push(ev, idx)
				return nil
			}
			return err
		}
		ip.lastSeenVersion = v
		ip.push(BytesValue([]byte(sentinelGotReadVersion)), idx)
		return nil

	case OpSetReadVersion:
		tr, err := ip.registry.Current()
		if err != nil {
			return err
		}
		tr.SetReadVersion(ip.lastSeenVersion)
		return nil

	case OpGetVersionstamp:
		tr, err := ip.registry.Current()
		if err != nil {
			return err
		}
		ip.pushPending(NewPending(func() (Value, error) {
			vs, err := tr.GetVersionstamp(ctx)
			if err != nil {
				return Value{}, err
			}
			return BytesValue(vs), nil
		}), idx)
		return nil

	case OpWaitFuture:
		return ip.opWaitFuture()

	// --- Reads ---
	case OpGet:
		return ip.opGet(ctx, cmd, idx)
	case OpGetKey:
		return ip.opGetKey(ctx, cmd, idx)
	case OpGetRange:
		return ip.opGetRange(ctx, cmd, idx)
	case OpGetRangeStartsWith:
		return ip.opGetRangeStartsWith(ctx, cmd, idx)
	case OpGetRangeSelector:
		return ip.opGetRangeSelector(ctx, cmd, idx)

	// --- Writes ---
	case OpSet:
		return ip.opSet(ctx, cmd, idx)
	case OpClear:
		return ip.opClear(ctx, cmd, idx)
	case OpClearRange:
		return ip.opClearRange(ctx, cmd, idx)
	case OpClearRangeStartsWith:
		return ip.opClearRangeStartsWith(ctx, cmd, idx)

	// --- Atomic ---
	case OpAtomicOp:
		return ip.opAtomicOp(ctx, cmd, idx)

	// --- Conflicts ---
	case OpReadConflictKey:
		return ip.opConflictKey(idx, false)
	case OpWriteConflictKey:
		return ip.opConflictKey(idx, true)
	case OpReadConflictRange:
		return ip.opConflictRange(idx, false)
	case OpWriteConflictRange:
		return ip.opConflictRange(idx, true)
	case OpDisableWriteConflict:
		tr, err := ip.registry.Current()
		if err != nil {
			return err
		}
		tr.DisableNextWriteConflict()
		return nil

	// --- Tuple opcodes ---
	case OpTuplePack:
		return ip.opTuplePack(idx)
	case OpTupleUnpack:
		return ip.opTupleUnpack(idx)
	case OpTupleRange:
		return ip.opTupleRange(idx)
	case OpTupleSort:
		return ip.opTupleSort(idx)

	// --- Float helpers ---
	case OpEncodeFloat:
		return ip.opEncodeFloat(idx)
	case OpEncodeDouble:
		return ip.opEncodeDouble(idx)
	case OpDecodeFloat:
		return ip.opDecodeFloat(idx)
	case OpDecodeDouble:
		return ip.opDecodeDouble(idx)

	// --- Threading ---
	case OpStartThread:
		return ip.opStartThread(ctx)
	case OpWaitEmpty:
		return ip.opWaitEmpty(ctx, idx)

	case OpUnitTests:
		return nil

	default:
		return errCommandNotSupported(string(cmd.Op))
	}
}

func (ip *Interpreter) opSub(idx uint64) error {
	top, err := popInt(ip.stack)
	if err != nil {
		return err
	}
	next, err := popInt(ip.stack)
	if err != nil {
		return err
	}
	ip.push(IntValue(next-top), idx)
	return nil
}

func (ip *Interpreter) opConcat(idx uint64) error {
	top, err := popValue(ip.stack)
	if err != nil {
		return err
	}
	next, err := popValue(ip.stack)
	if err != nil {
		return err
	}
	switch {
	case top.Kind() == KindString && next.Kind() == KindString:
		a, _ := next.Str()
		b, _ := top.Str()
		ip.push(StringValue(a+b), idx)
	case top.Kind() == KindBytes && next.Kind() == KindBytes:
		a, _ := next.Bytes()
		b, _ := top.Bytes()
		out := make([]byte, 0, len(a)+len(b))
		out = append(out, a...)
		out = append(out, b...)
		ip.push(BytesValue(out), idx)
	default:
		return errIllegalValueType("CONCAT requires matching string or byte-string kinds")
	}
	return nil
}

// opWaitFuture resolves the top slot in place (§4.3): binding errors
// are swallowed into the ordinary ERROR(code) translation, everything
// else propagates and ends the run.
func (ip *Interpreter) opWaitFuture() error {
	slot, ok := ip.stack.PopSlot()
	if !ok {
		return errPoppedEmptyStack()
	}
	v, err := slot.Pending.Resolve()
	if err != nil {
		ev, ok := translateError(err)
		if !ok {
			return err
		}
		v = ev
	}
	ip.stack.PushPending(Ready(v), slot.ProducerIndex)
	return nil
}

func (ip *Interpreter) opOnError(ctx context.Context, idx uint64) error {
	code, err := popInt(ip.stack)
	if err != nil {
		return err
	}
	tr, err := ip.registry.Current()
	if err != nil {
		return err
	}
	ip.pushPending(NewPending(func() (Value, error) {
		if err := tr.OnError(ctx, int(code)); err != nil {
			return Value{}, err
		}
		return NotPresentValue(), nil
	}), idx)
	return nil
}

// --- Reads ---

func (ip *Interpreter) currentOrTransient(ctx context.Context, direct bool, body func(surface.Transaction) error) error {
	if direct {
		return ip.registry.Database().RunRetriable(ctx, body)
	}
	tr, err := ip.registry.Current()
	if err != nil {
		return err
	}
	return body(tr)
}

func (ip *Interpreter) opGet(ctx context.Context, cmd Command, idx uint64) error {
	key, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	ip.pushPending(NewPending(func() (Value, error) {
		var raw []byte
		var present bool
		err := ip.currentOrTransient(ctx, cmd.Direct, func(tr surface.Transaction) error {
			var e error
			raw, present, e = tr.Get(ctx, key, cmd.Snapshot)
			return e
		})
		if err != nil {
			return Value{}, err
		}
		if !present {
			return NotPresentValue(), nil
		}
		return BytesValue(raw), nil
	}), idx)
	return nil
}

// popSelector decodes a (anchor, or_equal, offset) triple, top-first.
func (ip *Interpreter) popSelector() (surface.KeySelector, error) {
	anchor, err := popBytes(ip.stack)
	if err != nil {
		return surface.KeySelector{}, err
	}
	orEqual, err := popBool(ip.stack)
	if err != nil {
		return surface.KeySelector{}, err
	}
	offset, err := popInt(ip.stack)
	if err != nil {
		return surface.KeySelector{}, err
	}
	return surface.KeySelector{Key: anchor, OrEqual: orEqual, Offset: int(offset)}, nil
}

func (ip *Interpreter) opGetKey(ctx context.Context, cmd Command, idx uint64) error {
	sel, err := ip.popSelector()
	if err != nil {
		return err
	}
	prefix, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	ip.pushPending(NewPending(func() (Value, error) {
		var key []byte
		err := ip.currentOrTransient(ctx, cmd.Direct, func(tr surface.Transaction) error {
			k, _, e := tr.FindKey(ctx, sel, cmd.Snapshot)
			key = k
			return e
		})
		if err != nil {
			return Value{}, err
		}
		switch {
		case hasPrefix(key, prefix):
			return BytesValue(key), nil
		case bytesLess(key, prefix):
			return BytesValue(prefix), nil
		default:
			return BytesValue(incrementLastByte(prefix)), nil
		}
	}), idx)
	return nil
}

func popRangeTail(s *Stack) (limit int, reverse bool, mode surface.StreamingMode, err error) {
	limit64, err := popInt(s)
	if err != nil {
		return
	}
	reverse, err = popBool(s)
	if err != nil {
		return
	}
	modeNum, err := popInt(s)
	if err != nil {
		return
	}
	return int(limit64), reverse, surface.StreamingMode(modeNum), nil
}

func validStreamingMode(mode surface.StreamingMode) bool {
	return int(mode) >= 0 && int(mode) < surface.NumStreamingModes
}

func packRangeResult(kvs []surface.KeyValue) []byte {
	elems := make(tuple.Tuple, 0, len(kvs)*2)
	for _, kv := range kvs {
		elems = append(elems, kv.Key, kv.Value)
	}
	return elems.Pack()
}

func (ip *Interpreter) opGetRange(ctx context.Context, cmd Command, idx uint64) error {
	begin, err := ip.popSelector()
	if err != nil {
		return err
	}
	end, err := ip.popSelector()
	if err != nil {
		return err
	}
	limit, reverse, mode, err := popRangeTail(ip.stack)
	if err != nil {
		return err
	}
	ip.pushPending(NewPending(func() (Value, error) {
		if !validStreamingMode(mode) {
			return Value{}, errIllegalStreamingMode()
		}
		var kvs []surface.KeyValue
		err := ip.currentOrTransient(ctx, cmd.Direct, func(tr surface.Transaction) error {
			var e error
			kvs, e = tr.GetRange(ctx, begin, end, surface.RangeOptions{Limit: limit, Mode: mode, Reverse: reverse}, cmd.Snapshot)
			return e
		})
		if err != nil {
			return Value{}, err
		}
		return BytesValue(packRangeResult(kvs)), nil
	}), idx)
	return nil
}

func (ip *Interpreter) opGetRangeStartsWith(ctx context.Context, cmd Command, idx uint64) error {
	prefix, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	limit, reverse, mode, err := popRangeTail(ip.stack)
	if err != nil {
		return err
	}
	begin := surface.KeySelector{Key: prefix, OrEqual: true, Offset: 0}
	end := surface.KeySelector{Key: append(append([]byte{}, prefix...), 0xFF), OrEqual: true, Offset: 0}
	ip.pushPending(NewPending(func() (Value, error) {
		if !validStreamingMode(mode) {
			return Value{}, errIllegalStreamingMode()
		}
		var kvs []surface.KeyValue
		err := ip.currentOrTransient(ctx, cmd.Direct, func(tr surface.Transaction) error {
			var e error
			kvs, e = tr.GetRange(ctx, begin, end, surface.RangeOptions{Limit: limit, Mode: mode, Reverse: reverse}, cmd.Snapshot)
			return e
		})
		if err != nil {
			return Value{}, err
		}
		return BytesValue(packRangeResult(kvs)), nil
	}), idx)
	return nil
}

func (ip *Interpreter) opGetRangeSelector(ctx context.Context, cmd Command, idx uint64) error {
	begin, err := ip.popSelector()
	if err != nil {
		return err
	}
	end, err := ip.popSelector()
	if err != nil {
		return err
	}
	limit, reverse, mode, err := popRangeTail(ip.stack)
	if err != nil {
		return err
	}
	prefix, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	ip.pushPending(NewPending(func() (Value, error) {
		if !validStreamingMode(mode) {
			return Value{}, errIllegalStreamingMode()
		}
		var kvs []surface.KeyValue
		err := ip.currentOrTransient(ctx, cmd.Direct, func(tr surface.Transaction) error {
			var e error
			kvs, e = tr.GetRange(ctx, begin, end, surface.RangeOptions{Limit: limit, Mode: mode, Reverse: reverse}, cmd.Snapshot)
			return e
		})
		if err != nil {
			return Value{}, err
		}
		filtered := kvs[:0]
		for _, kv := range kvs {
			if hasPrefix(kv.Key, prefix) {
				filtered = append(filtered, kv)
			}
		}
		return BytesValue(packRangeResult(filtered)), nil
	}), idx)
	return nil
}

// --- Writes ---

// opSet implements SET(key, value): key and value are named in push
// order (key pushed first), so value -- the last pushed, top of stack
// -- is popped first (§8 S2).
func (ip *Interpreter) opSet(ctx context.Context, cmd Command, idx uint64) error {
	value, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	key, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	err = ip.currentOrTransient(ctx, cmd.Direct, func(tr surface.Transaction) error {
		tr.Set(key, value)
		return nil
	})
	if err != nil {
		return err
	}
	if cmd.Direct {
		ip.push(NotPresentValue(), idx)
	}
	return nil
}

func (ip *Interpreter) opClear(ctx context.Context, cmd Command, idx uint64) error {
	key, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	err = ip.currentOrTransient(ctx, cmd.Direct, func(tr surface.Transaction) error {
		tr.Clear(key)
		return nil
	})
	if err != nil {
		return err
	}
	if cmd.Direct {
		ip.push(NotPresentValue(), idx)
	}
	return nil
}

// opClearRange implements CLEAR_RANGE(k1, k2): named in push order
// (k1 pushed first), so k2 -- last pushed, top of stack -- is popped
// first (§8 S4).
func (ip *Interpreter) opClearRange(ctx context.Context, cmd Command, idx uint64) error {
	k2, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	k1, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	if bytesLess(k2, k1) {
		ip.pushPending(Failed(surface.NewBindingError(errCodeClearRangeInverted, "clear range end before begin")), idx)
		return nil
	}
	err = ip.currentOrTransient(ctx, cmd.Direct, func(tr surface.Transaction) error {
		return tr.ClearRange(k1, k2)
	})
	if err != nil {
		return err
	}
	if cmd.Direct {
		ip.push(NotPresentValue(), idx)
	}
	return nil
}

func (ip *Interpreter) opClearRangeStartsWith(ctx context.Context, cmd Command, idx uint64) error {
	prefix, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	end := append(append([]byte{}, prefix...), 0xFF)
	err = ip.currentOrTransient(ctx, cmd.Direct, func(tr surface.Transaction) error {
		return tr.ClearRange(prefix, end)
	})
	if err != nil {
		return err
	}
	if cmd.Direct {
		ip.push(NotPresentValue(), idx)
	}
	return nil
}

// --- Atomic ---

func (ip *Interpreter) opAtomicOp(ctx context.Context, cmd Command, idx uint64) error {
	name, err := popString(ip.stack)
	if err != nil {
		return err
	}
	key, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	value, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	op, ok := mutationTypeFromName(strings.ToUpper(name))
	if !ok {
		return errIllegalValueType(fmt.Sprintf("unknown atomic mutation %q", name))
	}
	err = ip.currentOrTransient(ctx, cmd.Direct, func(tr surface.Transaction) error {
		return tr.AtomicOp(op, key, value)
	})
	if err != nil {
		return err
	}
	if cmd.Direct {
		ip.push(NotPresentValue(), idx)
	}
	return nil
}

// --- Conflicts ---

func (ip *Interpreter) opConflictKey(idx uint64, write bool) error {
	key, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	tr, err := ip.registry.Current()
	if err != nil {
		return err
	}
	if write {
		tr.AddWriteConflictKey(key)
	} else {
		tr.AddReadConflictKey(key)
	}
	ip.push(BytesValue([]byte(sentinelSetConflictKey)), idx)
	return nil
}

// opConflictRange implements READ/WRITE_CONFLICT_RANGE(k1, k2): named
// in push order (k1 pushed first), so k2 -- top of stack -- is popped
// first, matching CLEAR_RANGE's convention.
func (ip *Interpreter) opConflictRange(idx uint64, write bool) error {
	k2, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	k1, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	if bytesLess(k2, k1) {
		ip.pushPending(Failed(surface.NewBindingError(errCodeClearRangeInverted, "conflict range end before begin")), idx)
		return nil
	}
	tr, err := ip.registry.Current()
	if err != nil {
		return err
	}
	if write {
		err = tr.AddWriteConflictRange(k1, k2)
	} else {
		err = tr.AddReadConflictRange(k1, k2)
	}
	if err != nil {
		return err
	}
	ip.push(BytesValue([]byte(sentinelSetConflictRange)), idx)
	return nil
}

// --- Tuple opcodes ---

func (ip *Interpreter) opTuplePack(idx uint64) error {
	n, err := popInt(ip.stack)
	if err != nil {
		return err
	}
	elems := make(tuple.Tuple, n)
	for i := int64(0); i < n; i++ {
		v, err := popValue(ip.stack)
		if err != nil {
			return err
		}
		elems[i] = v.toElement()
	}
	ip.push(BytesValue(elems.Pack()), idx)
	return nil
}

func (ip *Interpreter) opTupleUnpack(idx uint64) error {
	raw, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	t, err := tuple.Unpack(raw)
	if err != nil {
		return errIllegalValueType("TUPLE_UNPACK: " + err.Error())
	}
	for _, e := range t {
		ip.push(BytesValue(tuple.Tuple{e}.Pack()), idx)
	}
	return nil
}

func (ip *Interpreter) opTupleRange(idx uint64) error {
	n, err := popInt(ip.stack)
	if err != nil {
		return err
	}
	elems := make(tuple.Tuple, n)
	for i := int64(0); i < n; i++ {
		v, err := popValue(ip.stack)
		if err != nil {
			return err
		}
		elems[i] = v.toElement()
	}
	packed := elems.Pack()
	begin := append(append([]byte{}, packed...), 0x00)
	end := append(append([]byte{}, packed...), 0xFF)
	ip.push(BytesValue(begin), idx)
	ip.push(BytesValue(end), idx)
	return nil
}

func (ip *Interpreter) opTupleSort(idx uint64) error {
	n, err := popInt(ip.stack)
	if err != nil {
		return err
	}
	tuples := make([]tuple.Tuple, n)
	for i := int64(0); i < n; i++ {
		raw, err := popBytes(ip.stack)
		if err != nil {
			return err
		}
		t, err := tuple.Unpack(raw)
		if err != nil {
			return errIllegalValueType("TUPLE_SORT: " + err.Error())
		}
		tuples[i] = t
	}
	sortTuples(tuples)
	for _, t := range tuples {
		ip.push(BytesValue(t.Pack()), idx)
	}
	return nil
}

// sortTuples orders by the tuple codec's canonical (packed byte-string)
// order, which matches the codec's own lexicographic definition.
func sortTuples(tuples []tuple.Tuple) {
	for i := 1; i < len(tuples); i++ {
		for j := i; j > 0 && string(tuples[j-1].Pack()) > string(tuples[j].Pack()); j-- {
			tuples[j-1], tuples[j] = tuples[j], tuples[j-1]
		}
	}
}

// --- Float helpers ---

func (ip *Interpreter) opEncodeFloat(idx uint64) error {
	raw, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	if len(raw) != 4 {
		return errIllegalValueType("ENCODE_FLOAT requires 4 bytes")
	}
	bits := beUint32(raw)
	ip.push(Float32Value(math.Float32frombits(bits)), idx)
	return nil
}

func (ip *Interpreter) opEncodeDouble(idx uint64) error {
	raw, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	if len(raw) != 8 {
		return errIllegalValueType("ENCODE_DOUBLE requires 8 bytes")
	}
	bits := beUint64(raw)
	ip.push(Float64Value(math.Float64frombits(bits)), idx)
	return nil
}

func (ip *Interpreter) opDecodeFloat(idx uint64) error {
	v, err := popValue(ip.stack)
	if err != nil {
		return err
	}
	if v.Kind() != KindFloat32 {
		return errIllegalValueType("DECODE_FLOAT requires a float32")
	}
	buf := make([]byte, 4)
	putBeUint32(buf, math.Float32bits(v.f32))
	ip.push(BytesValue(buf), idx)
	return nil
}

func (ip *Interpreter) opDecodeDouble(idx uint64) error {
	v, err := popValue(ip.stack)
	if err != nil {
		return err
	}
	if v.Kind() != KindFloat64 {
		return errIllegalValueType("DECODE_DOUBLE requires a float64")
	}
	buf := make([]byte, 8)
	putBeUint64(buf, math.Float64bits(v.f64))
	ip.push(BytesValue(buf), idx)
	return nil
}

// --- Logging ---

func (ip *Interpreter) opLogStack(ctx context.Context) error {
	prefix, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	slots := ip.stack.Slots()
	type entry struct {
		key   []byte
		value []byte
	}
	entries := make([]entry, 0, len(slots))
	for i := len(slots) - 1; i >= 0; i-- {
		slot := slots[i]
		v, err := slot.Pending.Resolve()
		if err != nil {
			ev, ok := translateError(err)
			if !ok {
				return err
			}
			v = ev
		}
		key := append(append([]byte{}, prefix...), tuple.Tuple{int64(i), int64(slot.ProducerIndex)}.Pack()...)
		value := v.Pack()
		if len(value) > 40000 {
			value = value[:40000]
		}
		entries = append(entries, entry{key: key, value: value})
	}
	err = ip.registry.Database().RunRetriable(ctx, func(tr surface.Transaction) error {
		for _, e := range entries {
			tr.Set(e.key, e.value)
		}
		return nil
	})
	if err != nil {
		return err
	}
	ip.stack.Empty()
	return nil
}

// --- Threading ---

func (ip *Interpreter) opStartThread(ctx context.Context) error {
	prefix, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	if ip.spawner == nil {
		return fatalf("START_THREAD issued but no spawner is configured")
	}
	ip.spawner.Spawn(ctx, string(prefix))
	return nil
}

// opWaitEmpty implements WAIT_EMPTY (§4.3): the range is checked inside
// its own retriable transaction, once every waitEmptyPollInterval, until
// it comes back empty. A non-empty range raises no error; the loop here
// simply runs the check again.
func (ip *Interpreter) opWaitEmpty(ctx context.Context, idx uint64) error {
	prefix, err := popBytes(ip.stack)
	if err != nil {
		return err
	}
	end := append(append([]byte{}, prefix...), 0xFF)

	for {
		var notEmpty bool
		err := ip.registry.Database().RunRetriable(ctx, func(tr surface.Transaction) error {
			kvs, e := tr.GetRange(ctx,
				surface.KeySelector{Key: prefix, OrEqual: true},
				surface.KeySelector{Key: end, OrEqual: true},
				surface.RangeOptions{Limit: 1}, false)
			if e != nil {
				return e
			}
			notEmpty = len(kvs) > 0
			return nil
		})
		if err != nil {
			if ev, ok := translateError(err); ok {
				ip.push(ev, idx)
				return nil
			}
			return err
		}
		if !notEmpty {
			ip.push(BytesValue([]byte(sentinelWaitedForEmpty)), idx)
			return nil
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(waitEmptyPollInterval):
		}
	}
}

// --- byte helpers ---

func hasPrefix(b, prefix []byte) bool {
	return len(b) >= len(prefix) && string(b[:len(prefix)]) == string(prefix)
}

func bytesLess(a, b []byte) bool {
	return string(a) < string(b)
}

func incrementLastByte(b []byte) []byte {
	out := append([]byte{}, b...)
	if len(out) == 0 {
		return []byte{0xFF}
	}
	out[len(out)-1]++
	return out
}

func beUint32(b []byte) uint32 {
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3])
}

func beUint64(b []byte) uint64 {
	var v uint64
	for i := 0; i < 8; i++ {
		v = v<<8 | uint64(b[i])
	}
	return v
}

func putBeUint32(b []byte, v uint32) {
	b[0] = byte(v >> 24)
	b[1] = byte(v >> 16)
	b[2] = byte(v >> 8)
	b[3] = byte(v)
}

func putBeUint64(b []byte, v uint64) {
	for i := 7; i >= 0; i-- {
		b[i] = byte(v)
		v >>= 8
	}
}
