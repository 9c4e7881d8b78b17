// Package unsafehelpers centralises the `unsafe` usage of jsheap's internal
// packages so that they stay clean and easier to audit; the only other user
// of `unsafe` is the cgo boundary in cmd/libjsheap. Every helper is documented with clear pre-/post-
// conditions.
//
// ⚠️  DISCLAIMER   These helpers deliberately break the Go memory-safety
// model for the sake of zero-allocation conversions. Use ONLY inside this
// repository; they are not part of the public API and may change without
// notice. Misuse will lead to subtle data races or interner corruption.
//
// All functions are go:linkname-free, cgo-free and pure Go.
//
// © 2025 jsheap authors. MIT License.
package unsafehelpers

import "unsafe"

/* -------------------------------------------------------------------------
   1. Zero-copy string/[]byte conversions
   ------------------------------------------------------------------------- */

// BytesToString converts a byte slice to a string without allocating. The
// caller must guarantee that b is never modified for the lifetime of the
// resulting string. The interner satisfies this by only ever using the
// result as a throwaway map-probe key, never retaining it.
func BytesToString(b []byte) string {
	if len(b) == 0 {
		return ""
	}
	return unsafe.String(&b[0], len(b))
}

// StringToBytes re-interprets string data as a byte slice without copying.
// The returned slice MUST be treated as read-only: writing through it
// mutates immutable string storage and is undefined behavior.
func StringToBytes(s string) []byte {
	if len(s) == 0 {
		return nil
	}
	return unsafe.Slice(unsafe.StringData(s), len(s))
}

/* -------------------------------------------------------------------------
   2. Alignment helpers
   ------------------------------------------------------------------------- */

// AlignUp rounds x up to the nearest multiple of align (which must be a
// power of two), the way a real allocator rounds allocations up.
func AlignUp(x, align uintptr) uintptr {
	return (x + align - 1) &^ (align - 1)
}

// IsPowerOfTwo returns true if x is a power of two (exactly one bit set).
func IsPowerOfTwo(x uintptr) bool {
	return x != 0 && (x&(x-1)) == 0
}
