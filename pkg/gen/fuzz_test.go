package gen_test

import (
	"math/rand"
	"testing"

	"github.com/Daniel-Anker-Hermansen/cpfuzz/pkg/gen"
)

// FuzzParse feeds arbitrary text into the parser. Garbage is expected to
// be rejected; what matters is that rejection is a returned error and
// never a panic, and that whatever parses also generates cleanly or fails
// cleanly.
func FuzzParse(f *testing.F) {
	f.Add("int n 1 10\narr a n 0 n\nperm p n")
	f.Add("int a 1 1 int b 2 2")
	f.Add("")
	f.Add("\n\n\n")
	f.Add("perm p -3")
	f.Add("int x 5 3")
	f.Add("arr a m 1 2")

	f.Fuzz(func(t *testing.T, src string) {
		spec, err := gen.Parse(src, rand.New(rand.NewSource(1)))
		if err != nil {
			return
		}
		// Generation errors (inverted bounds, forward references) are
		// fine; panics are not.
		spec.Generate()
	})
}
