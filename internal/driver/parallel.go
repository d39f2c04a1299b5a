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

	gitignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"

	"hush/internal/trace"
)

// ScriptExtensions are the file suffixes picked up when a directory is expanded.
var ScriptExtensions = []string{".js", ".mjs", ".cjs", ".jsx"}

// BatchOptions configure TransformPaths.
type BatchOptions struct {
	Options
	Jobs int // 0 - GOMAXPROCS
	// Ignore holds extra gitignore-style patterns applied on top of .gitignore.
	Ignore []string
	// Progress, если не nil, получает события по каждому файлу. Канал не закрывается.
	Progress chan<- ProgressEvent
	// Cache, если не nil, отдаёт готовые результаты для неизменённых файлов.
	Cache *DiskCache
}

// BatchResult is the outcome for one input file. Exactly one of Output and Err is set.
type BatchResult struct {
	Path   string
	Output *Output
	Err    error
	Cached bool
}

type ProgressStatus uint8

const (
	ProgressStarted ProgressStatus = iota
	ProgressDone
	ProgressFailed
)

func (s ProgressStatus) String() string {
	switch s {
	case ProgressStarted:
		return "started"
	case ProgressDone:
		return "done"
	default:
		return "failed"
	}
}

// ProgressEvent reports one file of a batch.
type ProgressEvent struct {
	Path   string
	Index  int
	Total  int
	Status ProgressStatus
	Err    error
}

// ExpandPaths turns files and directories into a sorted, deduplicated list of
// script files. Directories are walked honouring their .gitignore, extra
// patterns, and skipping hidden entries and node_modules. Explicit file
// arguments are always kept.
func ExpandPaths(ctx context.Context, paths, ignore []string) ([]string, error) {
	seen := make(map[string]struct{})
	var files []string
	add := func(p string) {
		if _, ok := seen[p]; !ok {
			seen[p] = struct{}{}
			files = append(files, p)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("failed to process input file %s: %w", root, err)
		}
		if !info.IsDir() {
			add(filepath.Clean(root))
			continue
		}
		matcher := loadIgnore(root, ignore)
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && (isHidden(d.Name()) || d.Name() == "node_modules" || matcher.MatchesPath(rel+"/")) {
					return filepath.SkipDir
				}
				return nil
			}
			if isHidden(d.Name()) || !isScript(path) || matcher.MatchesPath(rel) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, err
		}
	}

	sort.Strings(files)
	return files, nil
}

func loadIgnore(root string, extra []string) *gitignore.GitIgnore {
	gitignorePath := filepath.Join(root, ".gitignore")
	if _, err := os.Stat(gitignorePath); err == nil {
		if m, err := gitignore.CompileIgnoreFileAndLines(gitignorePath, extra...); err == nil {
			return m
		}
	}
	return gitignore.CompileIgnoreLines(extra...)
}

func isScript(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range ScriptExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func isHidden(name string) bool {
	return len(name) > 1 && strings.HasPrefix(name, ".")
}

// TransformPaths expands paths and transforms every file in parallel. A file
// that fails keeps its error in its BatchResult; only context cancellation
// and path expansion errors abort the batch.
func (c *Compiler) TransformPaths(ctx context.Context, paths []string, opts BatchOptions) ([]BatchResult, error) {
	files, err := ExpandPaths(ctx, paths, opts.Ignore)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	batch, batchCtx := trace.Start(ctx, c.tracer, trace.ScopeDriver, "batch")
	defer batch.End(fmt.Sprintf("%d files", len(files)))

	// индексы уникальны для каждой горутины, мьютекс не нужен
	results := make([]BatchResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))

	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			if err := report(gctx, opts.Progress, ProgressEvent{Path: path, Index: i, Total: len(files), Status: ProgressStarted}); err != nil {
				return err
			}

			span, fileCtx := trace.Start(batchCtx, c.tracer, trace.ScopeFile, "file:"+path)
			res := c.transformFile(fileCtx, path, opts)
			results[i] = res

			ev := ProgressEvent{Path: path, Index: i, Total: len(files), Status: ProgressDone}
			if res.Err != nil {
				ev.Status = ProgressFailed
				ev.Err = res.Err
			}
			span.End(ev.Status.String())
			return report(gctx, opts.Progress, ev)
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (c *Compiler) transformFile(ctx context.Context, path string, batch BatchOptions) BatchResult {
	// #nosec G304 -- path comes from ExpandPaths
	content, err := os.ReadFile(path)
	if err != nil {
		return BatchResult{Path: path, Err: fmt.Errorf("failed to process input file %s: %w", path, err)}
	}
	opts := batch.Options
	opts.Filename = path

	var key Digest
	if batch.Cache != nil {
		key = c.cacheKey(path, content, opts)
		var payload DiskPayload
		if ok, err := batch.Cache.Get(key, &payload); err == nil && ok {
			return BatchResult{Path: path, Output: payload.output(), Cached: true}
		}
	}

	out, err := c.Transform(ctx, string(content), opts)
	if err == nil && batch.Cache != nil {
		// ошибка записи в кэш не влияет на результат
		_ = batch.Cache.Put(key, payloadFor(path, out))
	}
	return BatchResult{Path: path, Output: out, Err: err}
}

func report(ctx context.Context, ch chan<- ProgressEvent, ev ProgressEvent) error {
	if ch == nil {
		return nil
	}
	select {
	case ch <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// FirstError returns the first failed result, or nil.
func FirstError(results []BatchResult) error {
	for _, r := range results {
		if r.Err != nil {
			return r.Err
		}
	}
	return nil
}

// Failed counts results with a transform error.
func Failed(results []BatchResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}
