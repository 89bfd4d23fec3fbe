package driver

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"lu/internal/buildpipeline"
	"lu/internal/diag"
	"lu/internal/source"
)

// SourceExt is the extension of lu source files.
const SourceExt = ".lu"

// ListSourceFiles expands directories to the sorted *.lu files beneath
// them. Plain file arguments are kept as given, in order.
func ListSourceFiles(paths []string) ([]string, error) {
	var out []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %q: %w", p, err)
		}
		if !info.IsDir() {
			out = append(out, p)
			continue
		}
		var files []string
		err = filepath.WalkDir(p, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.HasSuffix(path, SourceExt) {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
		// Сортируем для детерминированного порядка
		sort.Strings(files)
		out = append(out, files...)
	}
	return out, nil
}

// DiagnoseOptions adds parallelism to the per-file options.
type DiagnoseOptions struct {
	Options
	Jobs int // <= 0 means GOMAXPROCS
}

// DiagnoseFiles compiles every file independently, each in its own
// session, at most Jobs at a time. Results are in input order. A file
// that cannot be read yields a result with an I/O diagnostic.
func DiagnoseFiles(ctx context.Context, files []string, opts DiagnoseOptions, sink buildpipeline.ProgressSink) ([]*Result, error) {
	results := make([]*Result, len(files))
	if len(files) == 0 {
		return results, nil
	}
	for _, path := range files {
		buildpipeline.Emit(sink, buildpipeline.Event{File: EventPath(path), Status: buildpipeline.StatusQueued})
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			// Проверка отмены
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			fileSet := source.NewFileSet()
			id, err := fileSet.Load(path)
			if err != nil {
				results[i] = loadFailure(fileSet, path, err, opts.MaxDiagnostics)
				buildpipeline.Emit(sink, buildpipeline.Event{File: EventPath(path), Stage: buildpipeline.StageParse, Status: buildpipeline.StatusError, Err: err})
				return nil
			}
			res, err := Compile(gctx, fileSet, id, opts.Options, sink)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			// индекс i уникален, мьютекс не нужен
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

// EventPath is the form of path carried by progress events.
func EventPath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}

func loadFailure(fileSet *source.FileSet, path string, err error, maxDiagnostics int) *Result {
	bag := diag.NewBag(maxDiagnostics)
	// Пустой файл-заглушка, чтобы span указывал на путь
	id := fileSet.AddVirtual(path, nil)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, "failed to load file: "+err.Error()))
	return &Result{
		Path:    EventPath(path),
		FileSet: fileSet,
		FileID:  id,
		Bag:     bag,
		Failed:  buildpipeline.StageParse,
	}
}
