package gen

import (
	"fmt"
	"strconv"
)

// Numeric is a value appearing in a declaration: either an integer literal
// or a reference to a variable bound by an earlier int declaration.
type Numeric struct {
	// Value holds the literal when Name is empty.
	Value int64

	// Name is the referenced variable, empty for literals.
	Name string
}

// parseNumeric never fails: any token that is not an integer literal is
// taken as a variable reference. Unknown references surface later, at
// evaluation time.
func parseNumeric(tok string) Numeric {
	if v, err := strconv.ParseInt(tok, 10, 64); err == nil {
		return Numeric{Value: v}
	}
	return Numeric{Name: tok}
}

// Eval resolves the numeric against the bindings populated so far in the
// current generation pass.
func (n Numeric) Eval(store map[string]int64) (int64, error) {
	if n.Name == "" {
		return n.Value, nil
	}
	v, ok := store[n.Name]
	if !ok {
		return 0, fmt.Errorf("undefined variable %q", n.Name)
	}
	return v, nil
}
