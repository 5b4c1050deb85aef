package tester

import (
	"errors"
	"testing"

	"github.com/foundationdb/fdb-go-stacktester/internal/surface"
)

func TestTranslateErrorOnlyConvertsBindingErrors(t *testing.T) {
	if _, ok := translateError(errPoppedEmptyStack()); ok {
		t.Error("interpreter-level errors must not translate into ERROR(code)")
	}
	v, ok := translateError(surface.NewBindingError(1007, "transaction_too_old"))
	if !ok {
		t.Fatal("expected a binding error to translate")
	}
	if v.Kind() != KindError {
		t.Fatalf("expected KindError, got %d", v.Kind())
	}
}

func TestTranslateErrorWrappedBindingError(t *testing.T) {
	wrapped := errors.Join(surface.NewBindingError(2101, "some op"), nil)
	v, ok := translateError(wrapped)
	if !ok {
		t.Fatal("errors.As must see through wrapping")
	}
	if v.errCode != 2101 {
		t.Errorf("expected code 2101, got %d", v.errCode)
	}
}

func TestPackedErrorFormat(t *testing.T) {
	b := packedError(1020)
	if len(b) == 0 {
		t.Fatal("expected non-empty packed error")
	}
}
