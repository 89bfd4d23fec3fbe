// Package trace is the structured logging layer of the lu toolchain.
//
// Phases do not print. They open spans and emit point events on a Tracer
// taken from the context:
//
//	t := trace.FromContext(ctx)
//	span := trace.Begin(t, trace.ScopePass, "sema", 0)
//	defer span.End("")
//
// Enable output from the CLI:
//
//	lu run --trace=- --trace-level=detail main.lu
//
// # Sinks
//
//   - Nop: zero-cost tracer used when tracing is off
//   - StreamTracer: writes each event immediately (text or NDJSON)
//   - RingTracer: keeps the last N events in memory
//   - MultiTracer: fans out to several tracers
//
// # Levels and scopes
//
// LevelPhase shows driver and pass spans, LevelDetail adds one event per
// top-level unit, LevelDebug adds node-level events such as every executed
// instruction.
package trace
