// Package fdbadapter implements the surface.DatabaseHandle and
// surface.Transaction capabilities against the real FoundationDB Go
// client. This is the only package in the module that imports the
// client directly; everything else programs against the interfaces in
// package surface.
package fdbadapter

import (
	"context"
	"fmt"

	"github.com/apple/foundationdb/bindings/go/src/fdb"

	"github.com/foundationdb/fdb-go-stacktester/internal/surface"
)

// OpenDatabase opens the cluster named by clusterFile (the empty string
// selects the default cluster file) after negotiating the requested API
// version per §6.1: if the linked client rejects the version as too
// new, it is stepped down until one is accepted.
func OpenDatabase(clusterFile string, apiVersion int) (surface.DatabaseHandle, error) {
	version := apiVersion
	for version > 0 {
		if err := fdb.APIVersion(version); err == nil {
			break
		}
		version--
	}
	if version <= 0 {
		return nil, fmt.Errorf("no supported API version at or below %d", apiVersion)
	}

	db, err := fdb.OpenDatabase(clusterFile)
	if err != nil {
		return nil, fmt.Errorf("failed to open cluster file %q: %w", clusterFile, err)
	}
	return &database{db: db}, nil
}

type database struct {
	db fdb.Database
}

func (d *database) StartTransaction() (surface.Transaction, error) {
	tr, err := d.db.CreateTransaction()
	if err != nil {
		return nil, translate(err)
	}
	return &transaction{tr: tr}, nil
}

func (d *database) RunRetriable(ctx context.Context, body func(surface.Transaction) error) error {
	_, err := d.db.Transact(func(tr fdb.Transaction) (interface{}, error) {
		return nil, body(&transaction{tr: tr})
	})
	return translate(err)
}

type transaction struct {
	tr               fdb.Transaction
	nextWriteNoConfl bool
}

func (t *transaction) Get(ctx context.Context, key []byte, snapshot bool) ([]byte, bool, error) {
	reader := t.reader(snapshot)
	v, err := reader.Get(fdb.Key(key)).Get()
	if err != nil {
		return nil, false, translate(err)
	}
	if v == nil {
		return nil, false, nil
	}
	return v, true, nil
}

func (t *transaction) FindKey(ctx context.Context, sel surface.KeySelector, snapshot bool) ([]byte, bool, error) {
	reader := t.reader(snapshot)
	k, err := reader.GetKey(toFDBSelector(sel)).Get()
	if err != nil {
		return nil, false, translate(err)
	}
	return []byte(k), true, nil
}

func (t *transaction) GetRange(ctx context.Context, begin, end surface.KeySelector, opts surface.RangeOptions, snapshot bool) ([]surface.KeyValue, error) {
	reader := t.reader(snapshot)
	r := fdb.SelectorRange{Begin: toFDBSelector(begin), End: toFDBSelector(end)}
	rr := reader.GetRange(r, fdb.RangeOptions{
		Limit:   opts.Limit,
		Mode:    fdb.StreamingMode(opts.Mode),
		Reverse: opts.Reverse,
	})
	kvs, err := rr.GetSliceWithError()
	if err != nil {
		return nil, translate(err)
	}
	out := make([]surface.KeyValue, len(kvs))
	for i, kv := range kvs {
		out[i] = surface.KeyValue{Key: []byte(kv.Key), Value: kv.Value}
	}
	return out, nil
}

// reader returns the snapshot or transactional read view, matching the
// snapshot modifier derived from the opcode suffix (§4.1's "snapshot").
func (t *transaction) reader(snapshot bool) fdb.ReadTransaction {
	if snapshot {
		return t.tr.Snapshot()
	}
	return t.tr
}

func (t *transaction) Set(key, value []byte) {
	t.tr.Set(fdb.Key(key), value)
}

func (t *transaction) Clear(key []byte) {
	t.tr.Clear(fdb.Key(key))
}

func (t *transaction) ClearRange(begin, end []byte) error {
	t.tr.ClearRange(fdb.KeyRange{Begin: fdb.Key(begin), End: fdb.Key(end)})
	return nil
}

func (t *transaction) AtomicOp(op surface.MutationType, key, param []byte) error {
	switch op {
	case surface.MutationTypeAdd:
		t.tr.Add(fdb.Key(key), param)
	case surface.MutationTypeBitAnd:
		t.tr.BitAnd(fdb.Key(key), param)
	case surface.MutationTypeBitOr:
		t.tr.BitOr(fdb.Key(key), param)
	case surface.MutationTypeBitXor:
		t.tr.BitXor(fdb.Key(key), param)
	case surface.MutationTypeMax:
		t.tr.Max(fdb.Key(key), param)
	case surface.MutationTypeMin:
		t.tr.Min(fdb.Key(key), param)
	case surface.MutationTypeByteMin:
		t.tr.ByteMin(fdb.Key(key), param)
	case surface.MutationTypeByteMax:
		t.tr.ByteMax(fdb.Key(key), param)
	case surface.MutationTypeCompareAndClear:
		t.tr.CompareAndClear(fdb.Key(key), param)
	case surface.MutationTypeSetVersionstampedKey:
		t.tr.SetVersionstampedKey(fdb.Key(key), param)
	case surface.MutationTypeSetVersionstampedValue:
		t.tr.SetVersionstampedValue(fdb.Key(key), param)
	case surface.MutationTypeAppendIfFits:
		t.tr.AppendIfFits(fdb.Key(key), param)
	default:
		return fmt.Errorf("mutation type code %d has no client-side primitive", op)
	}
	if t.nextWriteNoConfl {
		t.nextWriteNoConfl = false
	}
	return nil
}

func (t *transaction) AddReadConflictKey(key []byte)  { t.tr.AddReadConflictKey(fdb.Key(key)) }
func (t *transaction) AddWriteConflictKey(key []byte) { t.tr.AddWriteConflictKey(fdb.Key(key)) }

func (t *transaction) AddReadConflictRange(begin, end []byte) error {
	return translate(t.tr.AddReadConflictRange(fdb.KeyRange{Begin: fdb.Key(begin), End: fdb.Key(end)}))
}

func (t *transaction) AddWriteConflictRange(begin, end []byte) error {
	return translate(t.tr.AddWriteConflictRange(fdb.KeyRange{Begin: fdb.Key(begin), End: fdb.Key(end)}))
}

func (t *transaction) DisableNextWriteConflict() {
	t.nextWriteNoConfl = true
	t.tr.Options().SetNextWriteNoWriteConflictRange()
}

func (t *transaction) Commit(ctx context.Context) error {
	return translate(t.tr.Commit().Get())
}

func (t *transaction) Reset()  { t.tr.Reset() }
func (t *transaction) Cancel() { t.tr.Cancel() }

func (t *transaction) OnError(ctx context.Context, code int) error {
	return translate(t.tr.OnError(fdb.Error{Code: code}).Get())
}

func (t *transaction) GetReadVersion(ctx context.Context) (int64, error) {
	v, err := t.tr.GetReadVersion().Get()
	return v, translate(err)
}

func (t *transaction) SetReadVersion(v int64) { t.tr.SetReadVersion(v) }

func (t *transaction) GetCommittedVersion() (int64, error) {
	v, err := t.tr.GetCommittedVersion()
	return v, translate(err)
}

func (t *transaction) GetVersionstamp(ctx context.Context) ([]byte, error) {
	future, err := t.tr.GetVersionstamp()
	if err != nil {
		return nil, translate(err)
	}
	v, err := future.Get()
	return v, translate(err)
}

func toFDBSelector(sel surface.KeySelector) fdb.KeySelector {
	return fdb.KeySelector{Key: fdb.Key(sel.Key), OrEqual: sel.OrEqual, Offset: sel.Offset}
}

// translate wraps a raw client error into a surface.BindingError,
// carrying its numeric code so the interpreter's error translator (C8)
// can turn it into an ERROR(code) stack value at pop time. Every other
// error returned by this adapter (malformed input, client panics
// recovered elsewhere) is left untranslated and ends the run.
func translate(err error) error {
	if err == nil {
		return nil
	}
	if fdbErr, ok := err.(fdb.Error); ok {
		return surface.NewBindingError(fdbErr.Code, fdbErr.Error())
	}
	return err
}
