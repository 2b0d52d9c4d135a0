package gen

import (
	"bytes"
	"fmt"
	"math/rand"
	"strconv"
)

// emitState is the scratch state of a single generation pass: the output
// buffer plus the bindings made by the int declarations executed so far.
// A fresh one is created per Generate call; nothing survives across calls.
type emitState struct {
	out   bytes.Buffer
	store map[string]int64
	rng   *rand.Rand
}

func (s *emitState) putInt(v int64) {
	// Canonical decimal, one trailing space after every number,
	// including the last one of an array or permutation.
	s.out.Write(strconv.AppendInt(nil, v, 10))
	s.out.WriteByte(' ')
}

// atom is one instruction of a parsed specification. The set is closed:
// int, arr, perm and the implicit line break.
type atom interface {
	emit(s *emitState) error
}

// intAtom samples a value from [lower, higher] and binds it under name
// for all later atoms.
type intAtom struct {
	name   string
	lower  Numeric
	higher Numeric
}

func (a intAtom) emit(s *emitState) error {
	lo, err := a.lower.Eval(s.store)
	if err != nil {
		return err
	}
	hi, err := a.higher.Eval(s.store)
	if err != nil {
		return err
	}
	if hi < lo {
		return fmt.Errorf("int %s: inverted bounds %d..%d", a.name, lo, hi)
	}
	v := Int64InRange(s.rng, lo, hi)
	s.store[a.name] = v
	s.putInt(v)
	return nil
}

// arrAtom samples length values from [lower, higher]. The name is kept for
// readability of the specification file only; arrays never bind anything.
type arrAtom struct {
	name   string
	length Numeric
	lower  Numeric
	higher Numeric
}

func (a arrAtom) emit(s *emitState) error {
	n, err := a.length.Eval(s.store)
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("arr %s: negative length %d", a.name, n)
	}
	lo, err := a.lower.Eval(s.store)
	if err != nil {
		return err
	}
	hi, err := a.higher.Eval(s.store)
	if err != nil {
		return err
	}
	if hi < lo {
		return fmt.Errorf("arr %s: inverted bounds %d..%d", a.name, lo, hi)
	}
	for i := int64(0); i < n; i++ {
		s.putInt(Int64InRange(s.rng, lo, hi))
	}
	return nil
}

// permAtom emits a uniformly random permutation of 1..length.
type permAtom struct {
	name   string
	length Numeric
}

func (a permAtom) emit(s *emitState) error {
	n, err := a.length.Eval(s.store)
	if err != nil {
		return err
	}
	if n < 0 {
		return fmt.Errorf("perm %s: negative length %d", a.name, n)
	}
	perm := make([]int64, n)
	for i := range perm {
		perm[i] = int64(i) + 1
	}
	// rand.Shuffle is a Fisher-Yates shuffle, so the permutation is unbiased.
	s.rng.Shuffle(len(perm), func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})
	for _, v := range perm {
		s.putInt(v)
	}
	return nil
}

// lineBreakAtom terminates a record. Inserted by the parser between input
// lines, never written explicitly.
type lineBreakAtom struct{}

func (lineBreakAtom) emit(s *emitState) error {
	s.out.WriteByte('\n')
	return nil
}
