// Command libjsheap builds the C ABI shared/static library embedding the
// jsheap object heap and generational collector. Build with:
//
//	go build -buildmode=c-archive -o libjsheap.a ./cmd/libjsheap
//	go build -buildmode=c-shared  -o libjsheap.so ./cmd/libjsheap
//
// Every host-visible handle (a collector instance or a script object) is an
// opaque uintptr_t looked up in a process-wide registry — never a raw Go
// pointer handed to C. Passing Go pointers across the cgo boundary is only
// safe when the pointed-to memory holds no other Go pointers and is pinned
// for the call's duration; a registry sidesteps that restriction entirely
// and gives the C side a stable, copyable, comparable token instead.
//
// © 2025 jsheap authors. MIT License.
package main

/*
#include <stddef.h>
#include <stdint.h>

typedef struct {
	size_t   young_gen_threshold_kb;
	size_t   old_gen_threshold_kb;
	uint64_t max_pause_ms;
	int      incremental;
	int      verbose;
} jsheap_config_t;

typedef struct {
	uint64_t allocation_count;
	uint64_t collection_count;
	uint64_t objects_freed;
	uint64_t young_generation_size;
	uint64_t old_generation_size;
} jsheap_stats_t;

typedef void (*jsheap_finalizer_fn)(uintptr_t object);

static inline void jsheap_invoke_finalizer(jsheap_finalizer_fn fn, uintptr_t object) {
	if (fn != NULL) {
		fn(object);
	}
}
*/
import "C"

import (
	"sync"
	"unsafe"

	"github.com/corvid-rt/jsheap/internal/intern"
	jsheap "github.com/corvid-rt/jsheap/pkg"
)

func main() {}

// registry holds every live Machine and Handle behind monotonically
// increasing uintptr_t tokens rather than exposing raw Go pointers to C.
var (
	registryMu sync.Mutex

	machines                = map[C.uintptr_t]*jsheap.Machine{}
	nextMachine C.uintptr_t = 1
	handles                 = map[C.uintptr_t]*jsheap.Handle{}
	nextHandle  C.uintptr_t = 1
)

func registerMachine(m *jsheap.Machine) C.uintptr_t {
	registryMu.Lock()
	defer registryMu.Unlock()
	id := nextMachine
	nextMachine++
	machines[id] = m
	return id
}

func lookupMachine(id C.uintptr_t) *jsheap.Machine {
	registryMu.Lock()
	defer registryMu.Unlock()
	return machines[id]
}

func takeMachine(id C.uintptr_t) *jsheap.Machine {
	registryMu.Lock()
	defer registryMu.Unlock()
	m := machines[id]
	delete(machines, id)
	return m
}

func registerHandle(h *jsheap.Handle) C.uintptr_t {
	if h == nil {
		return 0
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	id := nextHandle
	nextHandle++
	handles[id] = h
	return id
}

func lookupHandle(id C.uintptr_t) *jsheap.Handle {
	if id == 0 {
		return nil
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	return handles[id]
}

func takeHandle(id C.uintptr_t) *jsheap.Handle {
	if id == 0 {
		return nil
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	h := handles[id]
	delete(handles, id)
	return h
}

// typeTagFromInt maps the C ABI's type codes (0-7, see jsheap.h) onto
// jsheap.TypeTag. An unrecognized code falls back to TypeObject rather than
// panicking across the cgo boundary.
func typeTagFromInt(v C.int) jsheap.TypeTag {
	switch v {
	case 0:
		return jsheap.TypeObject
	case 1:
		return jsheap.TypeArray
	case 2:
		return jsheap.TypeFunction
	case 3:
		return jsheap.TypeString
	case 4:
		return jsheap.TypeNumber
	case 5:
		return jsheap.TypeBoolean
	case 6:
		return jsheap.TypeNull
	case 7:
		return jsheap.TypeUndefined
	default:
		return jsheap.TypeObject
	}
}

//export jsheap_init
func jsheap_init() C.uintptr_t {
	return registerMachine(jsheap.New())
}

//export jsheap_shutdown
func jsheap_shutdown(gc C.uintptr_t) {
	takeMachine(gc)
}

//export jsheap_configure
func jsheap_configure(gc C.uintptr_t, cfg *C.jsheap_config_t) {
	m := lookupMachine(gc)
	if m == nil || cfg == nil {
		return
	}
	m.Configure(jsheap.Config{
		YoungGenThresholdKB: uint64(cfg.young_gen_threshold_kb),
		OldGenThresholdKB:   uint64(cfg.old_gen_threshold_kb),
		MaxPauseMS:          uint64(cfg.max_pause_ms),
		Incremental:         cfg.incremental != 0,
		Verbose:             cfg.verbose != 0,
	})
}

//export jsheap_collect
func jsheap_collect(gc C.uintptr_t) {
	m := lookupMachine(gc)
	if m == nil {
		return
	}
	m.Collect()
}

//export jsheap_add_root
func jsheap_add_root(gc C.uintptr_t, obj C.uintptr_t) {
	m := lookupMachine(gc)
	h := lookupHandle(obj)
	if m == nil || h == nil {
		return
	}
	m.AddRoot(h)
}

//export jsheap_remove_root
func jsheap_remove_root(gc C.uintptr_t, obj C.uintptr_t) {
	m := lookupMachine(gc)
	h := lookupHandle(obj)
	if m == nil || h == nil {
		return
	}
	m.RemoveRoot(h)
}

//export jsheap_stats
func jsheap_stats(gc C.uintptr_t) C.jsheap_stats_t {
	m := lookupMachine(gc)
	if m == nil {
		return C.jsheap_stats_t{}
	}
	s := m.Statistics()
	return C.jsheap_stats_t{
		allocation_count:      C.uint64_t(s.AllocationCount),
		collection_count:      C.uint64_t(s.CollectionCount),
		objects_freed:         C.uint64_t(s.ObjectsFreed),
		young_generation_size: C.uint64_t(s.YoungGenerationSize),
		old_generation_size:   C.uint64_t(s.OldGenerationSize),
	}
}

//export jsheap_create_object
func jsheap_create_object(gc C.uintptr_t, objectType C.int) C.uintptr_t {
	m := lookupMachine(gc)
	if m == nil {
		return 0
	}
	h := m.CreateObject(typeTagFromInt(objectType))
	return registerHandle(h)
}

//export jsheap_release_object
func jsheap_release_object(obj C.uintptr_t) {
	h := takeHandle(obj)
	if h == nil {
		return
	}
	h.Release()
}

//export jsheap_get_object_type
func jsheap_get_object_type(obj C.uintptr_t) C.int {
	h := lookupHandle(obj)
	if h == nil {
		return -1
	}
	switch h.Type() {
	case jsheap.TypeObject:
		return 0
	case jsheap.TypeArray:
		return 1
	case jsheap.TypeFunction:
		return 2
	case jsheap.TypeString:
		return 3
	case jsheap.TypeNumber:
		return 4
	case jsheap.TypeBoolean:
		return 5
	case jsheap.TypeNull:
		return 6
	default:
		return 7
	}
}

//export jsheap_set_property_string
func jsheap_set_property_string(obj C.uintptr_t, key *C.char, value *C.char) C.int {
	h := lookupHandle(obj)
	if h == nil || key == nil {
		return 0
	}
	v := ""
	if value != nil {
		v = C.GoString(value)
	}
	h.SetProperty(C.GoString(key), jsheap.String(v))
	return 1
}

//export jsheap_set_property_number
func jsheap_set_property_number(obj C.uintptr_t, key *C.char, value C.double) C.int {
	h := lookupHandle(obj)
	if h == nil || key == nil {
		return 0
	}
	h.SetProperty(C.GoString(key), jsheap.Number(float64(value)))
	return 1
}

//export jsheap_set_property_boolean
func jsheap_set_property_boolean(obj C.uintptr_t, key *C.char, value C.int) C.int {
	h := lookupHandle(obj)
	if h == nil || key == nil {
		return 0
	}
	h.SetProperty(C.GoString(key), jsheap.Bool(value != 0))
	return 1
}

//export jsheap_set_property_object
func jsheap_set_property_object(obj C.uintptr_t, key *C.char, child C.uintptr_t) C.int {
	h := lookupHandle(obj)
	if h == nil || key == nil {
		return 0
	}
	h.SetProperty(C.GoString(key), jsheap.ObjectValue(lookupHandle(child)))
	return 1
}

//export jsheap_get_property_string
func jsheap_get_property_string(obj C.uintptr_t, key *C.char, outBuf *C.char, bufSize C.size_t) C.int {
	h := lookupHandle(obj)
	if h == nil || key == nil || outBuf == nil || bufSize == 0 {
		return 0
	}
	s, ok := h.GetProperty(C.GoString(key)).AsString()
	if !ok {
		return 0
	}
	writeCString(outBuf, bufSize, s)
	return 1
}

//export jsheap_get_property_number
func jsheap_get_property_number(obj C.uintptr_t, key *C.char, out *C.double) C.int {
	h := lookupHandle(obj)
	if h == nil || key == nil || out == nil {
		return 0
	}
	n, ok := h.GetProperty(C.GoString(key)).AsNumber()
	if !ok {
		return 0
	}
	*out = C.double(n)
	return 1
}

//export jsheap_get_property_boolean
func jsheap_get_property_boolean(obj C.uintptr_t, key *C.char, out *C.int) C.int {
	h := lookupHandle(obj)
	if h == nil || key == nil || out == nil {
		return 0
	}
	b, ok := h.GetProperty(C.GoString(key)).AsBool()
	if !ok {
		return 0
	}
	if b {
		*out = 1
	} else {
		*out = 0
	}
	return 1
}

// jsheap_get_property_object writes a fresh handle token into *outHandle.
// The caller owns that share and must eventually pass it to
// jsheap_release_object, matching the Go API's Value.AsHandle contract.
//
//export jsheap_get_property_object
func jsheap_get_property_object(obj C.uintptr_t, key *C.char, outHandle *C.uintptr_t) C.int {
	h := lookupHandle(obj)
	if h == nil || key == nil || outHandle == nil {
		return 0
	}
	child, ok := h.GetProperty(C.GoString(key)).AsHandle()
	if !ok {
		return 0
	}
	*outHandle = registerHandle(child)
	return 1
}

//export jsheap_set_finalizer
func jsheap_set_finalizer(obj C.uintptr_t, fn C.jsheap_finalizer_fn) C.int {
	h := lookupHandle(obj)
	if h == nil {
		return 0
	}
	if fn == nil {
		h.SetFinalizer(nil)
		return 1
	}
	h.SetFinalizer(func(*jsheap.Handle) {
		C.jsheap_invoke_finalizer(fn, obj)
	})
	return 1
}

//export jsheap_interned_string_count
func jsheap_interned_string_count() C.size_t {
	return C.size_t(intern.Global.Count())
}

//export jsheap_interned_string_memory
func jsheap_interned_string_memory() C.size_t {
	return C.size_t(intern.Global.MemoryEstimate())
}

// writeCString copies s into buf, truncating to bufSize-1 bytes and always
// NUL-terminating, mirroring strlcpy semantics that C callers expect from a
// fixed-size output buffer.
func writeCString(buf *C.char, bufSize C.size_t, s string) {
	n := int(bufSize) - 1
	if n < 0 {
		n = 0
	}
	if len(s) < n {
		n = len(s)
	}
	dst := unsafe.Slice((*byte)(unsafe.Pointer(buf)), int(bufSize))
	copy(dst, s[:n])
	dst[n] = 0
}
