package intern

import (
	"sync"
	"testing"
)

func TestInternIdentity(t *testing.T) {
	in := New()
	a := in.Intern([]byte("hello"))
	b := in.Intern([]byte("hello"))
	if a != b {
		t.Fatalf("expected identity equality for byte-equal content")
	}
}

func TestInternDistinctness(t *testing.T) {
	in := New()
	a := in.Intern([]byte("hello"))
	b := in.Intern([]byte("world"))
	if a == b {
		t.Fatalf("expected distinct identities for distinct content")
	}
}

func TestInternEmptyString(t *testing.T) {
	in := New()
	a := in.Intern(nil)
	b := in.Intern([]byte{})
	if a != b {
		t.Fatalf("expected canonical empty string")
	}
	if a.Len() != 0 {
		t.Fatalf("expected zero length, got %d", a.Len())
	}
}

func TestInternDoesNotRetainInputSlice(t *testing.T) {
	in := New()
	buf := []byte("mutable")
	s := in.Intern(buf)
	buf[0] = 'X'
	if s.String() != "mutable" {
		t.Fatalf("interned string observed mutation of caller's slice: %q", s.String())
	}
}

func TestCount(t *testing.T) {
	in := New()
	if in.Count() != 0 {
		t.Fatalf("expected empty interner, got count %d", in.Count())
	}
	in.Intern([]byte("a"))
	in.Intern([]byte("b"))
	in.Intern([]byte("a"))
	if got := in.Count(); got != 2 {
		t.Fatalf("expected count 2, got %d", got)
	}
}

func TestMemoryEstimateMonotone(t *testing.T) {
	in := New()
	before := in.MemoryEstimate()
	in.Intern([]byte("some content"))
	after := in.MemoryEstimate()
	if after <= before {
		t.Fatalf("expected memory estimate to grow: before=%d after=%d", before, after)
	}
}

func TestInternConcurrent(t *testing.T) {
	in := New()
	var wg sync.WaitGroup
	results := make([]*String, 64)
	for i := range results {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx] = in.Intern([]byte("shared"))
		}(i)
	}
	wg.Wait()
	for _, r := range results[1:] {
		if r != results[0] {
			t.Fatalf("concurrent interning produced divergent identities")
		}
	}
}

func TestInternString(t *testing.T) {
	in := New()
	a := in.InternString("owned")
	b := in.Intern([]byte("owned"))
	if a != b {
		t.Fatalf("InternString and Intern should converge on the same handle")
	}
}
