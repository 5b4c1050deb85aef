package tester

import (
	"context"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/foundationdb/fdb-go-stacktester/internal/surface"
)

// Invariant 2: after LOG_STACK resolves, len(stack) == 0.
func TestLogStackEmptiesTheStackAfterCommit(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := surface.NewMockDatabaseHandle(ctrl)
	tr := surface.NewMockTransaction(ctrl)

	db.EXPECT().RunRetriable(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, body func(surface.Transaction) error) error {
			return body(tr)
		})
	tr.EXPECT().Set(gomock.Any(), gomock.Any()).Times(2)

	ip := runProgram(t, db, []Command{
		push(IntValue(1)),
		push(IntValue(2)),
		push(BytesValue([]byte("prefix"))),
		{Op: OpLogStack},
	})

	if ip.stack.Len() != 0 {
		t.Errorf("expected empty stack after LOG_STACK, got %d", ip.stack.Len())
	}
}
