package tester

import (
	"context"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"github.com/apple/foundationdb/bindings/go/src/fdb/tuple"

	"github.com/foundationdb/fdb-go-stacktester/internal/surface"
)

// TestSpawnerRunsIndependentProgram verifies START_THREAD's sibling
// loads its own program from the database and runs to completion
// sharing only the database handle (C7).
func TestSpawnerRunsIndependentProgram(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := surface.NewMockDatabaseHandle(ctrl)
	loadTr := surface.NewMockTransaction(ctrl)

	childProgram := tuple.Tuple{"PUSH", int64(1)}.Pack()

	db.EXPECT().RunRetriable(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, body func(surface.Transaction) error) error {
			return body(loadTr)
		})
	loadTr.EXPECT().GetRange(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), false).
		Return([]surface.KeyValue{{Key: []byte("child/0"), Value: childProgram}}, nil)

	s := NewSpawner(db, nil)
	s.Spawn(context.Background(), "child")

	done := make(chan error, 1)
	go func() { done <- s.Wait() }()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("spawned thread failed: %v", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for spawned thread")
	}
}
