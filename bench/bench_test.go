// Package bench provides reproducible micro-benchmarks for jsheap.
// Run via:  go test ./bench -bench=. -benchmem -cpu 1,4,16
//
// The benchmarks intentionally use a single property shape so results are
// comparable across versions: every object that gets the full property set
// gets the same three properties (name, value, count) inserted in the same
// order, so those benchmarks exercise the same shape-transition chain.
//
// We measure:
//  1. CreateObject     – allocation-only workload
//  2. SetProperty      – write path, first insertion vs. in-place update
//  3. GetProperty       – read-only workload (after warm-up)
//  4. GetPropertyParallel – highly concurrent reads (b.RunParallel)
//  5. Collect          – a full mark/sweep pass over a populated heap
//
// Results are printed in ns/op + alloc/op so CI can diff via benchstat.
//
// NOTE: Unit tests live elsewhere; this file is only for performance.
//
// © 2025 jsheap authors. MIT License.
package bench

import (
	"math/rand"
	"runtime"
	"testing"

	jsheap "github.com/corvid-rt/jsheap/pkg"
)

const objectCount = 1 << 16 // 64K objects for dataset

func newTestMachine() *jsheap.Machine {
	return jsheap.New()
}

func populate(m *jsheap.Machine, n int) []*jsheap.Handle {
	handles := make([]*jsheap.Handle, n)
	for i := range handles {
		h := m.CreateObject(jsheap.TypeObject)
		h.SetProperty("name", jsheap.String("bench"))
		h.SetProperty("value", jsheap.Number(float64(i)))
		h.SetProperty("count", jsheap.Number(0))
		m.AddRoot(h)
		handles[i] = h
	}
	return handles
}

func BenchmarkCreateObject(b *testing.B) {
	m := newTestMachine()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := m.CreateObject(jsheap.TypeObject)
		h.Release()
	}
}

func BenchmarkSetPropertyFirstInsertion(b *testing.B) {
	m := newTestMachine()
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := m.CreateObject(jsheap.TypeObject)
		h.SetProperty("name", jsheap.String("bench"))
		h.SetProperty("value", jsheap.Number(float64(i)))
		h.SetProperty("count", jsheap.Number(0))
		h.Release()
	}
}

func BenchmarkSetPropertyInPlaceUpdate(b *testing.B) {
	m := newTestMachine()
	h := m.CreateObject(jsheap.TypeObject)
	defer h.Release()
	h.SetProperty("value", jsheap.Number(0))

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h.SetProperty("value", jsheap.Number(float64(i)))
	}
}

func BenchmarkGetProperty(b *testing.B) {
	m := newTestMachine()
	handles := populate(m, objectCount)

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		h := handles[i&(objectCount-1)]
		_, _ = h.GetProperty("value").AsNumber()
	}
}

func BenchmarkGetPropertyParallel(b *testing.B) {
	m := newTestMachine()
	handles := populate(m, objectCount)

	b.ReportAllocs()
	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		idx := rand.Intn(objectCount)
		for pb.Next() {
			idx = (idx + 1) & (objectCount - 1)
			_, _ = handles[idx].GetProperty("value").AsNumber()
		}
	})
}

func BenchmarkCollect(b *testing.B) {
	m := newTestMachine()
	// Half the dataset stays rooted and survives every sweep; each
	// iteration also allocates one object and immediately releases it, so
	// every Collect call actually has garbage to reclaim instead of just
	// walking live objects.
	handles := populate(m, objectCount/2)
	defer func() {
		for _, h := range handles {
			h.Release()
		}
	}()

	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		garbage := m.CreateObject(jsheap.TypeObject)
		garbage.Release()
		m.Collect()
	}
}

func init() {
	runtime.GOMAXPROCS(runtime.NumCPU())
}
