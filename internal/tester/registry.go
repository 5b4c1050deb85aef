package tester

import "github.com/foundationdb/fdb-go-stacktester/internal/surface"

// Registry is the named-transaction map described in §3/§4.4 (C5): one
// name is "current"; dereferencing a missing name creates a fresh
// transaction on demand rather than erroring.
type Registry struct {
	db      surface.DatabaseHandle
	current string
	txns    map[string]surface.Transaction
}

func NewRegistry(db surface.DatabaseHandle, initialName string) *Registry {
	return &Registry{db: db, current: initialName, txns: map[string]surface.Transaction{}}
}

// CurrentName reports the registry's current transaction name.
func (r *Registry) CurrentName() string { return r.current }

// SetCurrentName switches the current pointer, creating the named
// transaction on demand if it is not already present (USE_TRANSACTION).
func (r *Registry) SetCurrentName(name string) {
	r.current = name
	r.ensure(name)
}

// Current returns the current transaction, creating it if absent. This
// keeps invariant 4 (current_name is always present) true at every
// opcode boundary.
func (r *Registry) Current() (surface.Transaction, error) {
	return r.ensure(r.current)
}

func (r *Registry) ensure(name string) (surface.Transaction, error) {
	if tr, ok := r.txns[name]; ok {
		return tr, nil
	}
	tr, err := r.db.StartTransaction()
	if err != nil {
		return nil, err
	}
	r.txns[name] = tr
	return tr, nil
}

// NewTransactionForCurrent replaces the entry under the current name
// with a freshly started transaction (NEW_TRANSACTION). The old
// transaction object is simply dropped; nothing in the surface
// interface requires an explicit close.
func (r *Registry) NewTransactionForCurrent() error {
	tr, err := r.db.StartTransaction()
	if err != nil {
		return err
	}
	r.txns[r.current] = tr
	return nil
}

// Database exposes the underlying database handle for opcodes that
// need a transient auto-retrying transaction (direct mode, WAIT_EMPTY,
// LOG_STACK).
func (r *Registry) Database() surface.DatabaseHandle { return r.db }
