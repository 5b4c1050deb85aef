package tester

import (
	"testing"

	"github.com/apple/foundationdb/bindings/go/src/fdb/tuple"
)

func TestDecodeCommandPushCarriesArg(t *testing.T) {
	cmd, ok := DecodeCommand(tuple.Tuple{"PUSH", int64(42)})
	if !ok {
		t.Fatal("expected PUSH to decode")
	}
	if cmd.Op != OpPush || !cmd.HasArg {
		t.Fatalf("unexpected command: %+v", cmd)
	}
	v, err := cmd.Arg.Int()
	if err != nil || v != 42 {
		t.Fatalf("expected arg 42, got %v err %v", v, err)
	}
}

func TestDecodeCommandPushWithoutArgIsSkipped(t *testing.T) {
	_, ok := DecodeCommand(tuple.Tuple{"PUSH"})
	if ok {
		t.Error("PUSH with no argument must be skipped, not decoded")
	}
}

func TestDecodeCommandUnknownOpcodeIsSkipped(t *testing.T) {
	_, ok := DecodeCommand(tuple.Tuple{"NOT_A_REAL_OPCODE"})
	if ok {
		t.Error("unknown opcodes must be skipped")
	}
}

func TestDecodeCommandSnapshotSuffix(t *testing.T) {
	cmd, ok := DecodeCommand(tuple.Tuple{"GET_SNAPSHOT"})
	if !ok {
		t.Fatal("expected GET_SNAPSHOT to decode")
	}
	if cmd.Op != OpGet || !cmd.Snapshot || cmd.Direct {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestDecodeCommandDatabaseSuffix(t *testing.T) {
	cmd, ok := DecodeCommand(tuple.Tuple{"SET_DATABASE"})
	if !ok {
		t.Fatal("expected SET_DATABASE to decode")
	}
	if cmd.Op != OpSet || !cmd.Direct || cmd.Snapshot {
		t.Fatalf("unexpected command: %+v", cmd)
	}
}

func TestDecodeCommandEmptyTupleIsSkipped(t *testing.T) {
	if _, ok := DecodeCommand(tuple.Tuple{}); ok {
		t.Error("empty tuple must be skipped")
	}
}

func TestMutationTypeFromName(t *testing.T) {
	cases := map[string]bool{
		"ADD":     true,
		"BIT_AND": true,
		"BOGUS":   false,
	}
	for name, want := range cases {
		_, ok := mutationTypeFromName(name)
		if ok != want {
			t.Errorf("mutationTypeFromName(%q) = %v, want %v", name, ok, want)
		}
	}
}
