package ui

import (
	"strings"
	"testing"

	"lu/internal/buildpipeline"
)

func TestApplyEventTracksFiles(t *testing.T) {
	m := newProgressModel("diagnosing", []string{"./a.lu", "b.lu"}, nil)

	steps := []struct {
		ev      buildpipeline.Event
		want    []string
		percent float64
	}{
		{buildpipeline.Event{File: "a.lu", Stage: buildpipeline.StageParse, Status: buildpipeline.StatusWorking}, []string{"parsing", "queued"}, 0.05},
		{buildpipeline.Event{File: "b.lu", Stage: buildpipeline.StageSema, Status: buildpipeline.StatusWorking}, []string{"parsing", "analyzing"}, 0.25},
		{buildpipeline.Event{File: "a.lu", Stage: buildpipeline.StageLower, Status: buildpipeline.StatusDone}, []string{"done", "analyzing"}, 0.7},
		{buildpipeline.Event{File: "a.lu", Stage: buildpipeline.StageRun, Status: buildpipeline.StatusWorking}, []string{"done", "analyzing"}, 0.7},
		{buildpipeline.Event{File: "b.lu", Stage: buildpipeline.StageSema, Status: buildpipeline.StatusError}, []string{"done", "error"}, 1},
		{buildpipeline.Event{File: "zzz.lu", Status: buildpipeline.StatusDone}, []string{"done", "error"}, 1},
	}
	for i, st := range steps {
		m.applyEvent(st.ev)
		for j, want := range st.want {
			if got := m.items[j].status; got != want {
				t.Fatalf("step %d: item %d status %q, want %q", i, j, got, want)
			}
		}
		if got := m.percent(); got < st.percent-1e-9 || got > st.percent+1e-9 {
			t.Fatalf("step %d: percent %v, want %v", i, got, st.percent)
		}
	}

	m.applyEvent(buildpipeline.Event{Stage: buildpipeline.StageRun, Status: buildpipeline.StatusWorking})
	view := m.View()
	for _, want := range []string{"diagnosing (running) [2/2, 1 failed]", "a.lu", "b.lu"} {
		if !strings.Contains(view, want) {
			t.Fatalf("view missing %q:\n%s", want, view)
		}
	}
}

func TestEmptyModelRendersNothing(t *testing.T) {
	if got := newProgressModel("x", nil, nil).View(); got != "" {
		t.Fatalf("View() = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	cases := []struct {
		in    string
		width int
		want  string
	}{
		{"short.lu", 20, "short.lu"},
		{"some/long/path/main.lu", 10, "some/lo..."},
		{"abcdef", 3, "abc"},
		{"abc", 0, "abc"},
	}
	for _, tc := range cases {
		if got := truncate(tc.in, tc.width); got != tc.want {
			t.Errorf("truncate(%q, %d) = %q, want %q", tc.in, tc.width, got, tc.want)
		}
	}
}
