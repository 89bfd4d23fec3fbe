// Package driver runs the compilation pipeline over source files: parse,
// analyze and lower, with optional caching and parallel diagnosis.
package driver

import (
	"context"
	"fmt"

	"fortio.org/safecast"

	"lu/internal/ast"
	"lu/internal/buildpipeline"
	"lu/internal/diag"
	"lu/internal/mir"
	"lu/internal/observ"
	"lu/internal/parser"
	"lu/internal/project"
	"lu/internal/sema"
	"lu/internal/session"
	"lu/internal/source"
	"lu/internal/trace"
)

// Options controls one compilation.
type Options struct {
	MaxDiagnostics int
	FatalLevel     diag.Severity
	// Until is the last stage to run; empty means lower.
	Until   buildpipeline.Stage
	Timings bool
	Cache   *DiskCache
}

// Result holds whatever the stages that ran produced.
type Result struct {
	Path    string
	FileSet *source.FileSet
	FileID  source.FileID
	Bag     *diag.Bag
	Tree    *ast.Tree
	Sema    *sema.Tree
	Program *mir.Program
	// Failed names the stage that reported errors, empty if none did.
	Failed buildpipeline.Stage
	Cached bool
	Timer  *observ.Timer
}

// OK reports whether every stage that ran succeeded.
func (r *Result) OK() bool { return r.Failed == "" }

// CompileFile loads path into a fresh file set and compiles it.
func CompileFile(ctx context.Context, path string, opts Options, sink buildpipeline.ProgressSink) (*Result, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	return Compile(ctx, fs, id, opts, sink)
}

// Compile runs the pipeline over an already loaded file. The returned
// error is set only for internal errors and context cancellation;
// diagnostics land in Result.Bag.
func Compile(ctx context.Context, fs *source.FileSet, id source.FileID, opts Options, sink buildpipeline.ProgressSink) (*Result, error) {
	file := fs.Get(id)
	if file == nil {
		return nil, fmt.Errorf("unknown file id %d", id)
	}
	until := opts.Until
	if until == "" {
		until = buildpipeline.StageLower
	}

	bag := diag.NewBag(opts.MaxDiagnostics)
	bag.SetFatalLevel(opts.FatalLevel)
	logger := diag.NewDedupLogger(bag.Logger())

	res := &Result{Path: file.Path, FileSet: fs, FileID: id, Bag: bag}
	if opts.Timings {
		res.Timer = observ.NewTimer()
	}

	tracer := trace.FromContext(ctx)
	span := trace.Begin(tracer, trace.ScopeDriver, "compile", 0).WithExtra("file", file.Path)
	defer func() {
		detail := "ok"
		if !res.OK() {
			detail = "failed at " + string(res.Failed)
		}
		span.End(detail)
	}()

	emit := func(stage buildpipeline.Stage, status buildpipeline.Status) {
		buildpipeline.Emit(sink, buildpipeline.Event{File: file.Path, Stage: stage, Status: status})
	}
	fail := func(stage buildpipeline.Stage) (*Result, error) {
		res.Failed = stage
		emit(stage, buildpipeline.StatusError)
		return res, nil
	}

	key := CacheKey(project.Digest(file.Hash))
	if opts.Cache != nil && until.Rank() >= buildpipeline.StageLower.Rank() {
		var payload DiskPayload
		hit, err := opts.Cache.Get(key, &payload)
		if err != nil {
			trace.Point(tracer, trace.ScopeError, "cache.get", err.Error(), span.ID())
		}
		if hit {
			res.Program = payload.Program
			res.Cached = true
			trace.Point(tracer, trace.ScopeDriver, "cache.hit", file.Path, span.ID())
			emit(buildpipeline.StageLower, buildpipeline.StatusDone)
			return res, nil
		}
	}

	// parse
	emit(buildpipeline.StageParse, buildpipeline.StatusWorking)
	maxErrors, err := safecast.Conv[uint](max(opts.MaxDiagnostics, 0))
	if err != nil {
		return nil, err
	}
	idx := res.Timer.Begin("parse")
	parsed := parser.ParseFile(fs, id, parser.Options{MaxErrors: maxErrors, Logger: logger})
	res.Tree = parsed.Tree
	res.Timer.End(idx, fmt.Sprintf("units=%d", len(parsed.Tree.Units)))
	if !parsed.Status.OK() {
		return fail(buildpipeline.StageParse)
	}
	if until == buildpipeline.StageParse {
		emit(buildpipeline.StageParse, buildpipeline.StatusDone)
		return res, nil
	}

	// sema
	emit(buildpipeline.StageSema, buildpipeline.StatusWorking)
	sess, err := session.New()
	if err != nil {
		return nil, err
	}
	idx = res.Timer.Begin("sema")
	typed, status, err := sema.Analyze(ctx, parsed.Tree, sess, logger)
	res.Sema = typed
	res.Timer.End(idx, fmt.Sprintf("symbols=%d", sess.Symbols().Len()))
	if err != nil {
		return res, err
	}
	if !status.OK() {
		return fail(buildpipeline.StageSema)
	}
	if until == buildpipeline.StageSema {
		emit(buildpipeline.StageSema, buildpipeline.StatusDone)
		return res, nil
	}

	// lower
	emit(buildpipeline.StageLower, buildpipeline.StatusWorking)
	idx = res.Timer.Begin("lower")
	prog, status, err := mir.Lower(ctx, typed, sess.Move(), logger)
	res.Program = prog
	res.Timer.End(idx, fmt.Sprintf("instrs=%d", prog.Len()))
	if err != nil {
		return res, err
	}
	if !status.OK() {
		return fail(buildpipeline.StageLower)
	}
	if opts.Cache != nil {
		if err := opts.Cache.Put(key, &DiskPayload{Path: file.Path, SourceHash: project.Digest(file.Hash), Program: prog}); err != nil {
			trace.Point(tracer, trace.ScopeError, "cache.put", err.Error(), span.ID())
		}
	}
	emit(buildpipeline.StageLower, buildpipeline.StatusDone)
	return res, nil
}
