package status

import (
	"sync"
	"testing"
)

func TestCounterPointerIsStable(t *testing.T) {
	r := NewRegistry()
	a := r.Counter(Frames)
	b := r.Counter(Frames)
	if a != b {
		t.Error("Expected the same pointer for repeated lookups")
	}
	a.Add(3)
	if b.Load() != 3 {
		t.Errorf("Expected 3, got %d", b.Load())
	}
}

func TestSnapshotAndString(t *testing.T) {
	r := NewRegistry()
	r.Counter(Keys).Add(5)
	r.Counter(Frames).Add(6)
	r.Counter(Blocked)

	snap := r.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("Expected 3 counters, got %d", len(snap))
	}
	if snap[Keys] != 5 || snap[Frames] != 6 || snap[Blocked] != 0 {
		t.Errorf("Unexpected snapshot %v", snap)
	}

	want := "frames=6 keys=5 moves_blocked=0"
	if got := r.String(); got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
}

func TestConcurrentGet(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.Counter(Moves).Add(1)
			}
		}()
	}
	wg.Wait()
	if got := r.Counter(Moves).Load(); got != 800 {
		t.Errorf("Expected 800, got %d", got)
	}
}

func TestMetricMapRangeOrder(t *testing.T) {
	m := NewMetricMap[int]()
	*m.Get("moves") = 2
	*m.Get("blocked") = 1
	m.Get("moves")

	if m.Count() != 2 {
		t.Fatalf("Expected 2 counters, got %d", m.Count())
	}
	var names []string
	m.Range(func(name string, ptr *int) { names = append(names, name) })
	if len(names) != 2 || names[0] != "blocked" || names[1] != "moves" {
		t.Errorf("Expected [blocked moves], got %v", names)
	}
}
