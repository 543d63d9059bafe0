// Package ingest implements the Ingest Planner and Stdin Capturer: turning
// positional CLI arguments into a deduplicated, ordered CandidateFile list,
// and folding piped standard input into the same pipeline as a synthetic
// file. Concurrency is generalized from the teacher's walker.Walker, scaled
// down from a channel-based traversal to a worker-pool fan-out over an
// already-expanded path list, since this package's ordering is decided
// up front rather than streamed.
package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/llm-ctx/llm-ctx/internal/classify"
	"github.com/llm-ctx/llm-ctx/internal/globmatch"
	"github.com/llm-ctx/llm-ctx/internal/ignore"
)

// CandidateFile is a file that survived argument expansion, ignore
// filtering, and classification, per spec §3.
type CandidateFile struct {
	Path     string // relative to the invocation root, slash-separated
	Size     int64
	IsBinary bool
	Raw      []byte // not populated by the planner or by cmd/llmctx, which keeps file bodies in its own map
	Score    float64
	HitCount int
}

// Warning is a non-fatal diagnostic produced while planning, surfaced on the
// diagnostic stream (stderr) rather than aborting the run.
type Warning struct {
	Path    string
	Message string
}

func (w Warning) String() string {
	if w.Path == "" {
		return w.Message
	}
	return fmt.Sprintf("%s: %s", w.Path, w.Message)
}

// Planner expands positional arguments into CandidateFiles.
type Planner struct {
	Engine         *ignore.Engine
	NoGitignore    bool
	Permissive     bool // --no-gitignore also relaxes the dotfile glob guard
	MaxWorkers     int
	ControlRatio   float64
}

// NewPlanner returns a Planner with GOMAXPROCS-sized worker concurrency.
func NewPlanner(engine *ignore.Engine) *Planner {
	return &Planner{Engine: engine, MaxWorkers: runtime.GOMAXPROCS(0)}
}

// Plan expands args (in order) into a deduplicated, first-encounter-ordered
// CandidateFile list, statting and classifying each file concurrently.
func (p *Planner) Plan(args []string) ([]CandidateFile, []Warning) {
	var warnings []Warning
	var orderedPaths []string
	seen := map[string]bool{}
	guard := newCycleGuard()

	addPath := func(path string) {
		clean := filepath.ToSlash(filepath.Clean(path))
		if seen[clean] {
			return
		}
		seen[clean] = true
		orderedPaths = append(orderedPaths, clean)
	}

	for _, arg := range args {
		switch {
		case globmatch.HasMeta(arg):
			matches, err := globmatch.Expand(arg, p.Permissive)
			if err != nil {
				warnings = append(warnings, Warning{arg, "pattern expansion failed: " + err.Error()})
				continue
			}
			for _, m := range matches {
				addPath(m)
			}
		default:
			info, err := os.Lstat(arg)
			if err != nil {
				warnings = append(warnings, Warning{arg, "not found: " + err.Error()})
				continue
			}
			if info.IsDir() {
				files, werr := walkDir(arg, guard)
				warnings = append(warnings, werr...)
				for _, f := range files {
					addPath(f)
				}
				continue
			}
			addPath(arg)
		}
	}

	var filtered []string
	for _, path := range orderedPaths {
		if isUnderGit(path) {
			continue // .git/ is always excluded, even with --no-gitignore
		}
		if p.NoGitignore || p.Engine == nil {
			filtered = append(filtered, path)
			continue
		}
		isDir := false
		if info, err := os.Stat(path); err == nil {
			isDir = info.IsDir()
		}
		if p.Engine.ShouldIgnore(path, isDir) {
			continue
		}
		filtered = append(filtered, path)
	}

	candidates, statWarnings := p.statAndClassify(filtered)
	warnings = append(warnings, statWarnings...)
	return candidates, warnings
}

// isUnderGit reports whether path is ".git" or sits inside a ".git"
// directory component.
func isUnderGit(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == ".git" {
			return true
		}
	}
	return false
}

// statAndClassify stats and classifies every path concurrently, then
// restores the original order with a stable sort keyed on input index —
// the spec permits internal parallelism here provided the final order is
// deterministic.
func (p *Planner) statAndClassify(paths []string) ([]CandidateFile, []Warning) {
	type indexed struct {
		idx  int
		file CandidateFile
		warn *Warning
	}

	workers := p.MaxWorkers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > len(paths) {
		workers = len(paths)
	}
	if workers == 0 {
		return nil, nil
	}

	jobs := make(chan int)
	results := make(chan indexed, len(paths))

	// Coordinated fan-out, generalized from the Builder's symbolWorker/
	// errgroup pattern: every worker reports through the same errgroup, but
	// a stat/open failure here is a per-file Warning, not an aborting
	// error, so g.Wait() never sees a non-nil return.
	g, _ := errgroup.WithContext(context.Background())
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			for idx := range jobs {
				path := paths[idx]
				info, err := os.Stat(path)
				if err != nil {
					results <- indexed{idx: idx, warn: &Warning{path, "stat failed: " + err.Error()}}
					continue
				}
				if !info.Mode().IsRegular() {
					results <- indexed{idx: idx, warn: &Warning{path, "skipped: not a regular file"}}
					continue
				}

				buf := make([]byte, classify.WindowSize)
				f, err := os.Open(path)
				n := 0
				if err == nil {
					n, _ = io.ReadFull(f, buf)
					f.Close()
				}

				results <- indexed{idx: idx, file: CandidateFile{
					Path:     path,
					Size:     info.Size(),
					IsBinary: classify.IsBinary(buf[:n], p.ControlRatio),
				}}
			}
			return nil
		})
	}
	for i := range paths {
		jobs <- i
	}
	close(jobs)
	g.Wait()
	close(results)

	ordered := make([]indexed, 0, len(paths))
	for r := range results {
		ordered = append(ordered, r)
	}
	sort.SliceStable(ordered, func(i, j int) bool { return ordered[i].idx < ordered[j].idx })

	var files []CandidateFile
	var warnings []Warning
	for _, r := range ordered {
		if r.warn != nil {
			warnings = append(warnings, *r.warn)
			continue
		}
		files = append(files, r.file)
	}
	return files, warnings
}
