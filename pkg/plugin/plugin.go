// Package plugin implements the native generator backend: it compiles a
// user-supplied C generator against a fixed callback ABI, loads the result
// into the process and drives its single entry point. All raw pointers and
// function addresses are confined to this package; the rest of the harness
// only sees the Generate contract.
package plugin

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"sync"
	"unsafe"

	"github.com/ebitengine/purego"
)

// entrySymbol is the one function every generator plugin must export:
// void generate(cpfuzz_context_t*).
const entrySymbol = "generate"

// abiContext mirrors cpfuzz_context_t from the preamble: five callback
// slots followed by the opaque state handle. Field order and the
// all-pointer-size layout are the binary contract; change either only
// together with the preamble.
type abiContext struct {
	putI64   uintptr
	genI64   uintptr
	genArray uintptr
	newline  uintptr
	putASCII uintptr
	state    uintptr
}

// The callback trampolines are created once per process; purego callbacks
// are a finite resource and never released.
var (
	callbackOnce sync.Once
	cbPutI64     uintptr
	cbGenI64     uintptr
	cbGenArray   uintptr
	cbNewline    uintptr
	cbPutASCII   uintptr
)

func installCallbacks() {
	cbPutI64 = purego.NewCallback(func(state, val uintptr) uintptr {
		lookupState(state).putInt(int64(val))
		return 0
	})
	cbGenI64 = purego.NewCallback(func(state, lo, hi uintptr) uintptr {
		return uintptr(lookupState(state).genInt(int64(lo), int64(hi)))
	})
	cbGenArray = purego.NewCallback(func(state, length, lo, hi uintptr) uintptr {
		arr := lookupState(state).genArray(int(length), int64(lo), int64(hi))
		if len(arr) == 0 {
			return 0
		}
		return uintptr(unsafe.Pointer(&arr[0]))
	})
	cbNewline = purego.NewCallback(func(state uintptr) uintptr {
		lookupState(state).newline()
		return 0
	})
	cbPutASCII = purego.NewCallback(func(state, str uintptr) uintptr {
		lookupState(state).putBytes(goBytes(str))
		return 0
	})
}

// goBytes copies the NUL-terminated byte string at p, which lives in the
// plugin's memory, never the Go heap.
func goBytes(p uintptr) []byte {
	if p == 0 {
		return nil
	}
	var b []byte
	for i := uintptr(0); ; i++ {
		c := *(*byte)(unsafe.Pointer(p + i))
		if c == 0 {
			return b
		}
		b = append(b, c)
	}
}

// Plugin is a loaded generator. It exclusively owns the shared object and
// its backing file for the whole process lifetime.
type Plugin struct {
	library uintptr
	entry   uintptr
	object  string
	rng     *rand.Rand
}

// Load compiles the generator source at srcPath and loads the resulting
// shared object. rng is the random source behind the gen_* callbacks.
func Load(srcPath string, rng *rand.Rand) (*Plugin, error) {
	callbackOnce.Do(installCallbacks)

	object, err := compile(srcPath)
	if err != nil {
		return nil, err
	}
	library, err := purego.Dlopen(object, purego.RTLD_NOW|purego.RTLD_GLOBAL)
	if err != nil {
		os.Remove(object)
		return nil, fmt.Errorf("failed to load %s: %w", object, err)
	}
	entry, err := purego.Dlsym(library, entrySymbol)
	if err != nil {
		purego.Dlclose(library)
		os.Remove(object)
		return nil, fmt.Errorf("generator does not export %q: %w", entrySymbol, err)
	}
	return &Plugin{library: library, entry: entry, object: object, rng: rng}, nil
}

// Generate invokes the plugin entry point against a fresh context and
// returns whatever it emitted. Array memory handed to the plugin is valid
// until the entry point returns and is dropped with the state afterwards.
func (p *Plugin) Generate() ([]byte, error) {
	state := &contextState{rng: p.rng}
	handle := registerState(state)
	defer releaseState(handle)

	ctx := abiContext{
		putI64:   cbPutI64,
		genI64:   cbGenI64,
		genArray: cbGenArray,
		newline:  cbNewline,
		putASCII: cbPutASCII,
		state:    handle,
	}
	purego.SyscallN(p.entry, uintptr(unsafe.Pointer(&ctx)))
	runtime.KeepAlive(&ctx)
	return state.out.Bytes(), nil
}

// Close unloads the shared object and deletes the compiled artifact.
// Deletion is best effort; a leftover file is not worth failing over.
func (p *Plugin) Close() error {
	err := purego.Dlclose(p.library)
	os.Remove(p.object)
	return err
}
