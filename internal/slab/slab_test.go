package slab

import "testing"

type widget struct{ n int }

func TestGetReturnsEmptySlice(t *testing.T) {
	p := NewPool[widget]()
	s := p.Get()
	if len(s) != 0 {
		t.Fatalf("expected empty slice, got len %d", len(s))
	}
}

func TestPutGetRecyclesCapacity(t *testing.T) {
	p := NewPool[widget]()
	s := p.Get()
	s = append(s, &widget{n: 1}, &widget{n: 2})
	cap1 := cap(s)
	p.Put(s)

	again := p.Get()
	if len(again) != 0 {
		t.Fatalf("expected recycled slice to come back empty, got len %d", len(again))
	}
	if cap(again) < cap1 {
		t.Fatalf("expected recycled slice to retain capacity >= %d, got %d", cap1, cap(again))
	}
}

func TestPutClearsElements(t *testing.T) {
	p := NewPool[widget]()
	s := p.Get()
	w := &widget{n: 1}
	s = append(s, w)
	full := s[:cap(s)]
	p.Put(s)

	for i, e := range full {
		if e != nil {
			t.Fatalf("expected element %d cleared after Put, found %+v", i, e)
		}
	}
}
