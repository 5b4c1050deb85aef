package tester

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"github.com/apple/foundationdb/bindings/go/src/fdb/tuple"
	"github.com/apple/foundationdb/bindings/go/src/fdb/subspace"

	"github.com/foundationdb/fdb-go-stacktester/internal/surface"
)

// Spawner starts independent sibling interpreters for START_THREAD
// (C7). Every spawned interpreter shares only the database handle;
// each gets its own Stack and Registry, and reads its own program from
// the prefix it was started with. Wait, which RunProgram calls after the
// root interpreter returns, blocks until every spawned interpreter has
// finished, matching
// §5's "the process exits only once every thread is done".
type Spawner struct {
	db   surface.DatabaseHandle
	mu   sync.Mutex
	wg   sync.WaitGroup
	errs []error
	sub  subspace.Subspace
}

// NewSpawner builds a Spawner rooted at the root program's subspace;
// START_THREAD's popped prefix is always interpreted relative to the
// same absolute key space the root program was loaded from. A nil root
// disables the bounds check (used by tests that spawn against a bare
// mock with no real key space).
func NewSpawner(db surface.DatabaseHandle, root subspace.Subspace) *Spawner {
	return &Spawner{db: db, sub: root}
}

// Spawn loads the program stored under prefix and runs it on its own
// goroutine with a freshly constructed Interpreter. Errors are
// collected rather than surfaced synchronously, since the spawning
// opcode itself must not block on the child's outcome.
func (s *Spawner) Spawn(ctx context.Context, prefix string) {
	if s.sub != nil && !bytes.HasPrefix([]byte(prefix), s.sub.Bytes()) {
		s.fail(fmt.Errorf("thread %q: prefix escapes root subspace %x", prefix, s.sub.Bytes()))
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		cmds, err := LoadProgram(ctx, s.db, []byte(prefix))
		if err != nil {
			s.fail(fmt.Errorf("thread %q: %w", prefix, err))
			return
		}
		child := NewInterpreter(prefix, cmds, s.db, s)
		if err := child.Run(ctx); err != nil {
			s.fail(fmt.Errorf("thread %q: %w", prefix, err))
		}
	}()
}

func (s *Spawner) fail(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs = append(s.errs, err)
}

// Wait blocks until every spawned thread has returned and reports the
// first failure, if any.
func (s *Spawner) Wait() error {
	s.wg.Wait()
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.errs) > 0 {
		return s.errs[0]
	}
	return nil
}

// LoadProgram reads the tuple-encoded command list stored at keys
// prefix + pack(i) for ascending i, the instruction stream format both
// the root interpreter and every START_THREAD child read from (§4).
func LoadProgram(ctx context.Context, db surface.DatabaseHandle, prefix []byte) ([]Command, error) {
	sub := subspace.FromBytes(prefix)
	begin := sub.Bytes()
	end := append(append([]byte{}, begin...), 0xFF)

	var commands []Command
	err := db.RunRetriable(ctx, func(tr surface.Transaction) error {
		commands = nil
		kvs, err := tr.GetRange(ctx,
			surface.KeySelector{Key: begin, OrEqual: true},
			surface.KeySelector{Key: end, OrEqual: true},
			surface.RangeOptions{}, false)
		if err != nil {
			return err
		}
		for _, kv := range kvs {
			t, err := tuple.Unpack(kv.Value)
			if err != nil {
				return fmt.Errorf("decoding program entry: %w", err)
			}
			if cmd, ok := DecodeCommand(t); ok {
				commands = append(commands, cmd)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return commands, nil
}
