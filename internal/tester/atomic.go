package tester

import "github.com/foundationdb/fdb-go-stacktester/internal/surface"

// atomicMutationByName is an explicit SCREAMING_SNAKE_CASE -> mutation
// code table (§9 Design Notes: "a cleaner implementation uses an
// explicit table ... avoiding reflection entirely"). ATOMIC_OP (§4.3)
// looks the popped name up here directly instead of camel-casing it and
// probing the mutation enum's string form.
var atomicMutationByName = map[string]surface.MutationType{
	"ADD":                      surface.MutationTypeAdd,
	"BIT_AND":                  surface.MutationTypeBitAnd,
	"AND":                      surface.MutationTypeBitAnd,
	"BIT_OR":                   surface.MutationTypeBitOr,
	"OR":                       surface.MutationTypeBitOr,
	"BIT_XOR":                  surface.MutationTypeBitXor,
	"XOR":                      surface.MutationTypeBitXor,
	"APPEND_IF_FITS":           surface.MutationTypeAppendIfFits,
	"MAX":                      surface.MutationTypeMax,
	"MIN":                      surface.MutationTypeMin,
	"SET_VERSIONSTAMPED_KEY":   surface.MutationTypeSetVersionstampedKey,
	"SET_VERSIONSTAMPED_VALUE": surface.MutationTypeSetVersionstampedValue,
	"BYTE_MIN":                 surface.MutationTypeByteMin,
	"BYTE_MAX":                 surface.MutationTypeByteMax,
	"COMPARE_AND_CLEAR":        surface.MutationTypeCompareAndClear,
}

// mutationTypeFromName resolves the popped ATOMIC_OP name (already
// upper-cased by convention) to a mutation code, or reports that the
// name is unknown (§4.3: "Unknown name => IllegalValueType").
func mutationTypeFromName(name string) (surface.MutationType, bool) {
	op, ok := atomicMutationByName[name]
	return op, ok
}
