package operations

import "fmt"

// Canonical operation names. These double as the HTTP route segments, so
// changing one is a wire-format change.
const (
	OpAdd      = "add"
	OpSubtract = "subtract"
	OpMultiply = "multiply"
	OpDivide   = "divide"
	OpPower    = "power"
	OpModulo   = "modulo"
)

// Func is the common signature every operation exposes.
type Func func(a, b Number) (Number, error)

// Operation pairs a canonical name with its implementation and the
// human-readable label responses echo back ("addition", "division", ...).
type Operation struct {
	Name        string
	DisplayName string
	Apply       Func
}

// All lists every operation in a stable order, for route registration and
// documentation generation.
func All() []Operation {
	return []Operation{
		{Name: OpAdd, DisplayName: "addition", Apply: Add},
		{Name: OpSubtract, DisplayName: "subtraction", Apply: Subtract},
		{Name: OpMultiply, DisplayName: "multiplication", Apply: Multiply},
		{Name: OpDivide, DisplayName: "division", Apply: Divide},
		{Name: OpPower, DisplayName: "power", Apply: Power},
		{Name: OpModulo, DisplayName: "modulo", Apply: Modulo},
	}
}

// Lookup resolves an operation selector to its implementation.
func Lookup(name string) (Operation, error) {
	for _, op := range All() {
		if op.Name == name {
			return op, nil
		}
	}
	return Operation{}, fmt.Errorf("unknown operation %q", name)
}
