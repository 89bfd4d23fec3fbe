// Package diag defines the diagnostic model shared by all pipeline phases.
//
// # Data model
//
// Diagnostic is the central record:
//
//   - Severity – debug, info, warning or error (numerically 0/100/200/300).
//   - Code – compact numeric identifier (see codes.go) with stable string form.
//   - Message – human oriented text; keep it short and actionable.
//   - Primary span – the source.Span pointing to the issue. Line and column are
//     resolved through source.FileSet only when rendering.
//   - Notes – optional secondary spans/messages.
//
// # Producers
//
// Phases never print. They push diagnostics into a Logger, which is a
// Reporter plus the IsFatal query. Bag implements both through BagReporter
// and owns the fatal threshold; DedupLogger filters repeats.
//
// # Recovery
//
// A phase that fails on one top-level unit wraps the diagnostic in a
// Failure. The phase driver pushes it, asks Logger.IsFatal, and either
// skips to the next unit or stops. InternalError is reserved for
// programmer errors and is never recovered from.
//
// Rendering (pretty, JSON) lives in internal/diagfmt.
package diag
