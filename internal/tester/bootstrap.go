package tester

import (
	"context"
	"fmt"

	"github.com/apple/foundationdb/bindings/go/src/fdb/subspace"

	"github.com/foundationdb/fdb-go-stacktester/internal/surface"
)

// RunProgram is the top-level entry point §6.1 describes: open the
// program stored under prefix, execute it as the root interpreter, and
// block until every thread START_THREAD spawned along the way has also
// finished.
func RunProgram(ctx context.Context, db surface.DatabaseHandle, prefix []byte) error {
	commands, err := LoadProgram(ctx, db, prefix)
	if err != nil {
		return fmt.Errorf("loading program at prefix %q: %w", prefix, err)
	}

	spawner := NewSpawner(db, subspace.FromBytes(prefix))
	root := NewInterpreter(string(prefix), commands, db, spawner)

	runErr := root.Run(ctx)
	waitErr := spawner.Wait()

	if runErr != nil {
		return runErr
	}
	return waitErr
}
