package plugin

import (
	"bytes"
	"math/rand"
	"strconv"
	"sync"

	"github.com/Daniel-Anker-Hermansen/cpfuzz/pkg/gen"
)

// contextState accumulates the output of one plugin invocation. It also
// owns every array handed across the boundary, keeping that memory alive
// until the invocation returns; nothing of it survives the call.
type contextState struct {
	out    bytes.Buffer
	rng    *rand.Rand
	arrays [][]int64
}

func (s *contextState) putInt(v int64) {
	s.out.Write(strconv.AppendInt(nil, v, 10))
	s.out.WriteByte(' ')
}

func (s *contextState) genInt(lo, hi int64) int64 {
	if hi < lo {
		// Tolerate inverted bounds from generator code.
		lo, hi = hi, lo
	}
	v := gen.Int64InRange(s.rng, lo, hi)
	s.putInt(v)
	return v
}

// genArray samples and emits n values and retains the backing slice so the
// plugin may read it for the rest of the call. Returns nil for n == 0.
func (s *contextState) genArray(n int, lo, hi int64) []int64 {
	if hi < lo {
		lo, hi = hi, lo
	}
	arr := make([]int64, n)
	for i := range arr {
		arr[i] = gen.Int64InRange(s.rng, lo, hi)
		s.putInt(arr[i])
	}
	if n == 0 {
		return nil
	}
	s.arrays = append(s.arrays, arr)
	return arr
}

func (s *contextState) newline() {
	s.out.WriteByte('\n')
}

func (s *contextState) putBytes(b []byte) {
	s.out.Write(b)
}

// The state passed through the ABI is an opaque handle, never a real
// pointer: plugin code cannot dereference it and the Go heap stays
// invisible across the boundary. The registry resolves handles back to
// their states inside the callbacks.
var (
	statesMu   sync.Mutex
	states     = map[uintptr]*contextState{}
	lastHandle uintptr
)

func registerState(s *contextState) uintptr {
	statesMu.Lock()
	defer statesMu.Unlock()
	lastHandle++
	states[lastHandle] = s
	return lastHandle
}

func lookupState(handle uintptr) *contextState {
	statesMu.Lock()
	defer statesMu.Unlock()
	return states[handle]
}

func releaseState(handle uintptr) {
	statesMu.Lock()
	defer statesMu.Unlock()
	delete(states, handle)
}
