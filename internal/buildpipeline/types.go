// Package buildpipeline holds the progress vocabulary shared by the
// compile driver and the terminal UI.
package buildpipeline

import "time"

// Stage identifies a compilation step.
type Stage string

const (
	// StageParse is the parsing stage.
	StageParse Stage = "parse"
	// StageSema is the semantic analysis stage.
	StageSema Stage = "sema"
	// StageLower is the lowering stage.
	StageLower Stage = "lower"
	StageRun   Stage = "run"
)

// ParseStage converts a --stages value.
func ParseStage(s string) (Stage, bool) {
	switch Stage(s) {
	case StageParse, StageSema, StageLower, StageRun:
		return Stage(s), true
	}
	return "", false
}

// Rank orders stages; an unknown stage ranks after all others.
func (s Stage) Rank() int {
	switch s {
	case StageParse:
		return 0
	case StageSema:
		return 1
	case StageLower:
		return 2
	case StageRun:
		return 3
	}
	return 4
}

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the task is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the task is currently working.
	StatusWorking Status = "working"
	// StatusDone indicates the task is done.
	StatusDone Status = "done"
	// StatusError indicates the task encountered an error.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the overall pipeline when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}
