package driver

import (
	"context"
	"fmt"
	"runtime"

	"fortio.org/safecast"
	"golang.org/x/sync/errgroup"

	"surgelint/internal/ast"
	"surgelint/internal/diag"
	"surgelint/internal/lint"
	"surgelint/internal/parser"
	"surgelint/internal/project"
	"surgelint/internal/sema"
	"surgelint/internal/source"
)

// CodeLoadFile marks I/O failures while reading a lint target.
const CodeLoadFile diag.Code = "load_file"

// Options configures one lint run over a set of targets.
type Options struct {
	Config   project.Config
	Registry *lint.Registry
	Cache    *DiskCache // nil disables result caching
	BaseDir  string     // project root, used for relative path output
	Jobs     int        // 0 falls back to Config.Lint.Jobs, then GOMAXPROCS
}

// FileResult is the outcome for one source file.
type FileResult struct {
	Path      string
	FileID    source.FileID
	Bag       *diag.Bag
	FromCache bool
}

// Result aggregates a lint run.
type Result struct {
	FileSet   *source.FileSet
	Files     []FileResult
	Bag       *diag.Bag // merged, sorted, deduplicated
	CacheHits int
}

// LintTargets discovers source files under targets and lints them in
// parallel. Output order is deterministic regardless of scheduling:
// files are preloaded in sorted order and the merged bag is sorted at
// the end.
func LintTargets(ctx context.Context, targets []string, opts Options) (*Result, error) {
	files, err := project.DiscoverFiles(targets)
	if err != nil {
		return nil, err
	}

	if opts.Registry == nil {
		opts.Registry = lint.Default()
	}
	maxDiagnostics := opts.Config.Lint.MaxDiagnostics
	if maxDiagnostics <= 0 {
		maxDiagnostics = project.DefaultConfig().Lint.MaxDiagnostics
	}

	overrides := opts.Config.RuleOverrides(opts.Registry.Known)
	cfgDigest := opts.Config.Digest()

	fileSet := source.NewFileSetWithBase(opts.BaseDir)
	merged := diag.NewBag(maxDiagnostics)
	for _, name := range overrides.Unknown {
		merged.Add(diag.New(diag.SevWarning, lint.CodeUnknownRule, source.Span{},
			fmt.Sprintf("unknown rule %q in %s", name, project.ConfigFileName)))
	}

	result := &Result{
		FileSet: fileSet,
		Files:   make([]FileResult, len(files)),
		Bag:     merged,
	}
	if len(files) == 0 {
		merged.Sort()
		return result, nil
	}

	// Preload in sorted order so FileIDs, and with them the final
	// diagnostic order, do not depend on goroutine scheduling.
	fileIDs := make(map[string]source.FileID, len(files))
	loadErrors := make(map[string]error, len(files))
	for _, path := range files {
		fileID, err := fileSet.Load(path)
		if err != nil {
			loadErrors[path] = err
			continue
		}
		fileIDs[path] = fileID
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = opts.Config.Lint.Jobs
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	if jobs > len(files) {
		jobs = len(files)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			bag := diag.NewBag(maxDiagnostics)
			if loadErr, hadError := loadErrors[path]; hadError {
				bag.Add(diag.New(diag.SevError, CodeLoadFile, source.Span{},
					"failed to load file: "+loadErr.Error()))
				result.Files[i] = FileResult{Path: path, Bag: bag}
				return nil
			}

			fileID := fileIDs[path]
			file := fileSet.Get(fileID)
			key := project.Combine(project.Digest(file.Hash), cfgDigest)

			var payload LintPayload
			if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
				fromPayload(&payload, fileID, bag)
				result.Files[i] = FileResult{Path: path, FileID: fileID, Bag: bag, FromCache: true}
				return nil
			}

			lintFile(file, bag, opts.Registry, overrides, maxDiagnostics)

			// A broken cache must not fail the run; the results were
			// computed from source either way.
			_ = opts.Cache.Put(key, toPayload(bag.Items()))
			result.Files[i] = FileResult{Path: path, FileID: fileID, Bag: bag}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return result, err
	}

	for _, fr := range result.Files {
		if fr.FromCache {
			result.CacheHits++
		}
		merged.Merge(fr.Bag)
	}
	merged.Sort()
	merged.Dedup()
	return result, nil
}

// lintFile runs the parse -> analyze -> lint pipeline for one file
// into bag.
func lintFile(file *source.File, bag *diag.Bag, registry *lint.Registry, overrides project.RuleOverrides, maxDiagnostics int) {
	maxErrors, err := safecast.Conv[uint](maxDiagnostics)
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}

	builder := ast.NewBuilder(ast.Hints{})
	res := parser.ParseFile(file, builder, parser.Options{
		Reporter:  diag.BagReporter{Bag: bag},
		MaxErrors: maxErrors,
	})
	if bag.HasErrors() {
		// Rules assume a well-formed tree; syntax errors stand alone.
		return
	}

	facts := sema.Analyze(builder, res.File)
	lint.Run(file, builder, res.File, facts, lint.Options{
		Registry: registry,
		Reporter: diag.BagReporter{Bag: bag},
		Enabled:  overrides.Enabled,
		Severity: overrides.Severity,
	})
}
