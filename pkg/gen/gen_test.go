package gen

import (
	"errors"
	"math/rand"
	"strconv"
	"strings"
	"testing"
)

func newTestRand() *rand.Rand {
	return rand.New(rand.NewSource(1))
}

func mustParse(t *testing.T, src string) *Specification {
	t.Helper()
	spec, err := Parse(src, newTestRand())
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return spec
}

func TestGenerateFixedValues(t *testing.T) {
	// Degenerate ranges pin every sampled value, so the whole output is known.
	spec := mustParse(t, "int n 1 1\narr a n 5 5")
	for i := 0; i < 10; i++ {
		out, err := spec.Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if string(out) != "1 \n5 \n" {
			t.Fatalf("Generate = %q, want %q", out, "1 \n5 \n")
		}
	}
}

func TestDegenerateRange(t *testing.T) {
	spec := mustParse(t, "int x 7 7")
	for i := 0; i < 50; i++ {
		out, err := spec.Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if string(out) != "7 \n" {
			t.Fatalf("Generate = %q, want %q", out, "7 \n")
		}
	}
}

func TestInvertedBoundsFailEveryCall(t *testing.T) {
	spec := mustParse(t, "int x 5 3")
	for i := 0; i < 3; i++ {
		if _, err := spec.Generate(); err == nil {
			t.Fatal("expected generation error for inverted bounds")
		}
	}
}

func TestNegativeLength(t *testing.T) {
	spec := mustParse(t, "arr a -1 0 9")
	if _, err := spec.Generate(); err == nil {
		t.Fatal("expected generation error for negative length")
	}
}

func TestUndefinedVariable(t *testing.T) {
	spec := mustParse(t, "arr a m 1 2")
	if _, err := spec.Generate(); err == nil {
		t.Fatal("expected generation error for undefined variable")
	}
}

func TestVariableVisibleOnlyAfterDeclaration(t *testing.T) {
	// n is declared on the first line and drives both the length and the
	// bounds of the array on the second.
	spec := mustParse(t, "int n 2 5\narr a n n n")
	for i := 0; i < 20; i++ {
		out, err := spec.Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		lines := strings.Split(strings.TrimSuffix(string(out), "\n"), "\n")
		if len(lines) != 2 {
			t.Fatalf("got %d lines, want 2: %q", len(lines), out)
		}
		n, err := strconv.Atoi(strings.Fields(lines[0])[0])
		if err != nil {
			t.Fatalf("bad int token: %v", err)
		}
		values := strings.Fields(lines[1])
		if len(values) != n {
			t.Fatalf("array has %d values, want %d: %q", len(values), n, out)
		}
		for _, v := range values {
			if v != strconv.Itoa(n) {
				t.Fatalf("array value %s, want %d: %q", v, n, out)
			}
		}
	}
}

func TestPermutationMultiset(t *testing.T) {
	spec := mustParse(t, "perm p 10")
	for i := 0; i < 20; i++ {
		out, err := spec.Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		seen := make(map[int]bool)
		fields := strings.Fields(string(out))
		if len(fields) != 10 {
			t.Fatalf("permutation has %d values, want 10", len(fields))
		}
		for _, f := range fields {
			v, err := strconv.Atoi(f)
			if err != nil {
				t.Fatalf("bad permutation token %q: %v", f, err)
			}
			if v < 1 || v > 10 || seen[v] {
				t.Fatalf("not a permutation of 1..10: %q", out)
			}
			seen[v] = true
		}
	}
}

func TestEmptyPermutation(t *testing.T) {
	spec := mustParse(t, "perm p 0")
	out, err := spec.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if string(out) != "\n" {
		t.Fatalf("Generate = %q, want just the record separator", out)
	}
}

func TestShapeDeterminism(t *testing.T) {
	// Values vary between calls, but the shape (line and token counts) may
	// not, as long as no data-dependent length is involved.
	spec := mustParse(t, "int a 1 100 int b 1 100\narr xs 4 -50 50\nperm p 6")
	first, err := spec.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		out, err := spec.Generate()
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		if got, want := strings.Count(string(out), "\n"), strings.Count(string(first), "\n"); got != want {
			t.Fatalf("line count changed between calls: %d vs %d", got, want)
		}
		if got, want := len(strings.Fields(string(out))), len(strings.Fields(string(first))); got != want {
			t.Fatalf("token count changed between calls: %d vs %d", got, want)
		}
	}
}

func TestMultipleDeclarationsPerLine(t *testing.T) {
	spec := mustParse(t, "int a 1 1 int b 2 2 arr xs 2 3 3")
	out, err := spec.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if string(out) != "1 2 3 3 \n" {
		t.Fatalf("Generate = %q, want %q", out, "1 2 3 3 \n")
	}
}

func TestBlankLineSeparatesRecords(t *testing.T) {
	spec := mustParse(t, "int a 1 1\n\nint b 2 2")
	out, err := spec.Generate()
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if string(out) != "1 \n\n2 \n" {
		t.Fatalf("Generate = %q, want %q", out, "1 \n\n2 \n")
	}
}

func TestParseErrors(t *testing.T) {
	for _, src := range []string{
		"bogus a 1 2",
		"int a 1",
		"arr a 1 2",
		"perm a",
		"int a 1 2 trailing",
	} {
		if _, err := Parse(src, newTestRand()); !errors.Is(err, ErrSyntax) {
			t.Errorf("Parse(%q) = %v, want ErrSyntax", src, err)
		}
	}
}

func TestParseAcceptsVariableReferences(t *testing.T) {
	if _, err := Parse("int n 1 10 arr a n 0 n perm p n", newTestRand()); err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
}
