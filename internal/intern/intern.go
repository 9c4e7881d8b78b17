// Package intern provides process-wide deduplication of UTF-8 content —
// property names and string values alike — behind a canonical *String
// handle whose identity is the handle's address, not its bytes.
//
// Shapes key their property maps and transition caches by *String, so the
// cost of a property lookup collapses to a pointer-keyed hash probe
// instead of a byte-wise string compare. That only holds if every
// equal-content request anywhere in the process returns the exact same
// *String — which is why, unlike a per-shard or per-goroutine cache, this
// interner is a single shared structure behind one lock.
//
// © 2025 jsheap authors. MIT License.
package intern

import (
	"sync"

	"github.com/corvid-rt/jsheap/internal/unsafehelpers"
)

// String is a canonical, immutable byte sequence. Two Strings obtained from
// Intern are == (pointer-equal) if and only if their content was byte-equal
// at the time of interning; they are never reclaimed during the process
// lifetime.
type String struct {
	s string
}

// Bytes returns a borrowed view of the interned content. Callers must not
// mutate the returned slice.
func (s *String) Bytes() []byte {
	return unsafehelpers.StringToBytes(s.s)
}

// String returns the interned content as a Go string (no copy).
func (s *String) String() string {
	return s.s
}

// Len returns the byte length of the interned content.
func (s *String) Len() int {
	return len(s.s)
}

// Interner is a process-wide, mutex-guarded content→handle table. The zero
// value is not usable; construct one with New. A single package-level
// instance (Global) backs the default API used by internal/shape and
// internal/object — every equal-content request anywhere in the process
// must return the same *String, so sharding by goroutine or shard would
// break that guarantee (see DESIGN.md).
type Interner struct {
	mu      sync.Mutex
	entries map[string]*String
}

// New constructs an empty interner.
func New() *Interner {
	return &Interner{entries: make(map[string]*String, 64)}
}

// Intern returns the canonical *String for the given content, inserting a
// fresh entry on first sight. The input slice is never retained: a probe
// uses a zero-copy string view of it, and only a genuine miss copies the
// bytes into a new owned string.
func (in *Interner) Intern(content []byte) *String {
	probe := unsafehelpers.BytesToString(content)

	in.mu.Lock()
	defer in.mu.Unlock()

	if existing, ok := in.entries[probe]; ok {
		return existing
	}

	owned := string(content) // the one real copy
	fresh := &String{s: owned}
	in.entries[owned] = fresh
	return fresh
}

// InternString is a convenience wrapper for already-owned Go strings; on a
// miss it stores content as is, without the byte copy Intern makes.
func (in *Interner) InternString(content string) *String {
	in.mu.Lock()
	defer in.mu.Unlock()

	if existing, ok := in.entries[content]; ok {
		return existing
	}
	fresh := &String{s: content}
	in.entries[content] = fresh
	return fresh
}

// Count returns the number of distinct interned strings currently
// retained.
func (in *Interner) Count() int {
	in.mu.Lock()
	defer in.mu.Unlock()
	return len(in.entries)
}

// MemoryEstimate returns a rough sum of key length plus per-entry overhead.
// Exactness is not required; like internal/gc's object-size estimate, this
// only needs to be monotone enough to drive diagnostics.
func (in *Interner) MemoryEstimate() uintptr {
	const perEntryOverhead = uintptr(48) // map bucket + *String header, approximate

	in.mu.Lock()
	defer in.mu.Unlock()

	var total uintptr
	for k := range in.entries {
		total += uintptr(len(k)) + perEntryOverhead
	}
	return total
}

// Global is the single process-wide interner used by internal/shape and
// internal/object. A package-level singleton is the simplest way to
// guarantee exactly one shared, pointer-identity domain for interned
// strings.
var Global = New()

// Intern interns content against the process-wide Global interner.
func Intern(content []byte) *String { return Global.Intern(content) }

// InternString interns an owned Go string against the process-wide Global
// interner.
func InternString(content string) *String { return Global.InternString(content) }
