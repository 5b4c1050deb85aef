package tester

import (
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/foundationdb/fdb-go-stacktester/internal/surface"
)

func TestRegistryEnsureCreatesOnDemand(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := surface.NewMockDatabaseHandle(ctrl)
	tr := surface.NewMockTransaction(ctrl)
	db.EXPECT().StartTransaction().Return(tr, nil)

	r := NewRegistry(db, "")
	got, err := r.Current()
	if err != nil {
		t.Fatalf("Current: %v", err)
	}
	if got != tr {
		t.Errorf("expected the started transaction back")
	}

	// A second call to Current for the same name must not start a
	// second transaction.
	got2, err := r.Current()
	if err != nil {
		t.Fatalf("Current (2nd): %v", err)
	}
	if got2 != tr {
		t.Errorf("expected the cached transaction, not a fresh one")
	}
}

func TestRegistrySetCurrentNameCreatesNamedTransaction(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := surface.NewMockDatabaseHandle(ctrl)
	trA := surface.NewMockTransaction(ctrl)
	trB := surface.NewMockTransaction(ctrl)

	gomock.InOrder(
		db.EXPECT().StartTransaction().Return(trA, nil),
		db.EXPECT().StartTransaction().Return(trB, nil),
	)

	r := NewRegistry(db, "")
	if _, err := r.Current(); err != nil {
		t.Fatalf("Current: %v", err)
	}

	r.SetCurrentName("b")
	if r.CurrentName() != "b" {
		t.Errorf("expected current name %q, got %q", "b", r.CurrentName())
	}
	got, err := r.Current()
	if err != nil {
		t.Fatalf("Current after switch: %v", err)
	}
	if got != trB {
		t.Errorf("expected the transaction created for name 'b'")
	}
}

func TestRegistryNewTransactionForCurrentReplaces(t *testing.T) {
	ctrl := gomock.NewController(t)
	db := surface.NewMockDatabaseHandle(ctrl)
	trOld := surface.NewMockTransaction(ctrl)
	trNew := surface.NewMockTransaction(ctrl)

	gomock.InOrder(
		db.EXPECT().StartTransaction().Return(trOld, nil),
		db.EXPECT().StartTransaction().Return(trNew, nil),
	)

	r := NewRegistry(db, "")
	if _, err := r.Current(); err != nil {
		t.Fatalf("Current: %v", err)
	}
	if err := r.NewTransactionForCurrent(); err != nil {
		t.Fatalf("NewTransactionForCurrent: %v", err)
	}
	got, err := r.Current()
	if err != nil {
		t.Fatalf("Current after replace: %v", err)
	}
	if got != trNew {
		t.Errorf("expected the freshly started transaction to replace the old one")
	}
}
