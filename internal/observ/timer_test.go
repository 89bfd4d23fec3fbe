package observ

import (
	"strings"
	"testing"
)

func TestTimerPhases(t *testing.T) {
	tm := NewTimer()
	p := tm.Begin("parse")
	tm.End(p, "units=2")
	s := tm.Begin("sema")
	tm.End(s, "")
	tm.End(99, "ignored")

	r := tm.Report()
	if len(r.Phases) != 2 || r.Phases[0].Name != "parse" || r.Phases[0].Note != "units=2" {
		t.Fatalf("report = %+v", r)
	}
	sum := tm.Summary()
	if !strings.Contains(sum, "parse") || !strings.Contains(sum, "// units=2") || !strings.Contains(sum, "total") {
		t.Fatalf("summary:\n%s", sum)
	}
}

func TestNilTimer(t *testing.T) {
	var tm *Timer
	idx := tm.Begin("x")
	tm.End(idx, "")
	if idx != -1 || len(tm.Report().Phases) != 0 {
		t.Fatalf("nil timer must record nothing")
	}
}
