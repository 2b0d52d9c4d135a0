// Package gen implements the interpreted test-input generator: it parses a
// small declaration language ("int", "arr", "perm") and produces randomized
// but internally consistent input buffers from it.
package gen

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
)

// ErrSyntax is the single parse-error kind: an unknown keyword or a
// declaration missing one of its fields.
var ErrSyntax = errors.New("malformed specification")

// Specification is an ordered sequence of parsed atoms. It is immutable
// after parsing; every Generate call starts from a clean slate.
type Specification struct {
	atoms []atom
	rng   *rand.Rand
}

// Parse builds a Specification from its textual form. Each line holds one
// or more whitespace-separated declarations and yields one newline-terminated
// record in the generated output; a blank line therefore becomes an empty
// record separator. rng is the random source used by every subsequent
// Generate call.
func Parse(src string, rng *rand.Rand) (*Specification, error) {
	spec := &Specification{rng: rng}
	lines := strings.Split(strings.TrimSuffix(src, "\n"), "\n")
	for lineno, line := range lines {
		tokens := strings.Fields(line)
		for len(tokens) > 0 {
			keyword := tokens[0]
			tokens = tokens[1:]
			var fields int
			switch keyword {
			case "int":
				fields = 3
			case "arr":
				fields = 4
			case "perm":
				fields = 2
			default:
				return nil, fmt.Errorf("%w: unknown keyword %q on line %d", ErrSyntax, keyword, lineno+1)
			}
			if len(tokens) < fields {
				return nil, fmt.Errorf("%w: truncated %q declaration on line %d", ErrSyntax, keyword, lineno+1)
			}
			switch keyword {
			case "int":
				spec.atoms = append(spec.atoms, intAtom{
					name:   tokens[0],
					lower:  parseNumeric(tokens[1]),
					higher: parseNumeric(tokens[2]),
				})
			case "arr":
				spec.atoms = append(spec.atoms, arrAtom{
					name:   tokens[0],
					length: parseNumeric(tokens[1]),
					lower:  parseNumeric(tokens[2]),
					higher: parseNumeric(tokens[3]),
				})
			case "perm":
				spec.atoms = append(spec.atoms, permAtom{
					name:   tokens[0],
					length: parseNumeric(tokens[1]),
				})
			}
			tokens = tokens[fields:]
		}
		spec.atoms = append(spec.atoms, lineBreakAtom{})
	}
	return spec, nil
}

// Generate walks the atom sequence once and returns the produced input
// buffer. Variable bindings live only for the duration of the call, so
// int declarations resample on every invocation. An error means the
// specification itself is defective (inverted bounds, negative length,
// forward reference) and the run should stop.
func (spec *Specification) Generate() ([]byte, error) {
	s := &emitState{
		store: make(map[string]int64),
		rng:   spec.rng,
	}
	for _, a := range spec.atoms {
		if err := a.emit(s); err != nil {
			return nil, fmt.Errorf("generate: %w", err)
		}
	}
	return s.out.Bytes(), nil
}

// Close implements the generator contract; the interpreted backend holds
// no external resources.
func (spec *Specification) Close() error {
	return nil
}
