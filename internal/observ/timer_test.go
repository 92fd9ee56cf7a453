package observ

import (
	"strings"
	"sync"
	"testing"
	"time"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("discover")
	tm.End(idx, "3 files")
	tm.End(42, "ignored")

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Accumulate("check", 2*time.Millisecond)
		}()
	}
	wg.Wait()

	r := tm.Report()
	if len(r.Phases) != 2 {
		t.Fatalf("phases = %+v", r.Phases)
	}
	check := r.Phases[1]
	if check.Name != "check" || check.Count != 4 || check.DurationMS != 8 {
		t.Fatalf("check phase = %+v", check)
	}
	if r.WallMS >= 8 {
		t.Fatalf("accumulated phases must not count toward wall time: %v", r.WallMS)
	}

	s := tm.Summary()
	for _, want := range []string{"discover", "// 3 files", "(4×)", "wall"} {
		if !strings.Contains(s, want) {
			t.Errorf("summary misses %q:\n%s", want, s)
		}
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	tm.End(tm.Begin("x"), "")
	tm.Accumulate("y", time.Second)
	if r := tm.Report(); len(r.Phases) != 0 {
		t.Fatal("nil timer must report nothing")
	}
}
