package resolver

import (
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/sourcegraph/conc/pool"

	"github.com/glyphlang/glyphc/internal/export"
	"github.com/glyphlang/glyphc/internal/source"
	"github.com/glyphlang/glyphc/internal/types"
)

// Options configures a compilation run.
type Options struct {
	// Workers is the fixed worker-thread count; 0 means hardware
	// parallelism.
	Workers int

	// Verbose, when non-nil, receives per-unit progress lines.
	Verbose io.Writer
}

// UnitResult is the per-unit outcome of a run: the unit's pipeline state
// plus its resolved AST (nil when the unit failed).
type UnitResult struct {
	Path     string
	Unit     *Unit
	Resolved *ResolvedAST
}

// Failed reports whether this unit produced any error.
func (u *UnitResult) Failed() bool {
	return u.Unit == nil || u.Unit.Failed() || u.Resolved == nil
}

// Result aggregates every unit's outcome.
type Result struct {
	Units []*UnitResult

	// Exports is the merged global table every unit resolved against.
	Exports *export.Table
}

// Errors flattens every unit's error vector, in unit order.
func (r *Result) Errors() []error {
	var out []error
	for _, u := range r.Units {
		if u.Unit != nil {
			out = append(out, u.Unit.Errors...)
		}
	}
	return out
}

// GetCompiledResult returns every unit's resolved AST, or nil if any unit
// failed.
func (r *Result) GetCompiledResult() []*ResolvedAST {
	out := make([]*ResolvedAST, 0, len(r.Units))
	for _, u := range r.Units {
		if u.Failed() {
			return nil
		}
		out = append(out, u.Resolved)
	}
	return out
}

// jobQueue is the shared, mutex-protected queue of source-file paths the
// workers pull from.
type jobQueue struct {
	mu    sync.Mutex
	paths []string
}

func (q *jobQueue) pop() (string, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.paths) == 0 {
		return "", false
	}
	path := q.paths[0]
	q.paths = q.paths[1:]
	return path, true
}

// Run compiles paths with a fixed pool of workers. Each worker pulls one
// source at a time, runs stage one (load → lex → parse → collect-exports)
// and keeps the unit on a local vector; once the queue is empty it drops
// its writer on the export-table barrier and, when every worker has done
// the same, runs stage two over its units.
func Run(paths []string, opts Options) *Result {
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(paths) && len(paths) > 0 {
		workers = len(paths)
	}

	global := export.NewGlobal()
	factory := types.NewFactory()
	ids := &idAllocator{}
	queue := &jobQueue{paths: append([]string(nil), paths...)}

	var mu sync.Mutex
	var units []*UnitResult

	p := pool.New().WithMaxGoroutines(workers)
	for w := 0; w < workers; w++ {
		writer := global.Clone()
		p.Go(func() {
			var local []*UnitResult

			for {
				path, ok := queue.pop()
				if !ok {
					break
				}
				if opts.Verbose != nil {
					fmt.Fprintf(opts.Verbose, "compiling %s\n", path)
				}

				res := &UnitResult{Path: path}
				file, err := source.Load(path)
				if err != nil {
					res.Unit = &Unit{Errors: []error{err}}
				} else {
					res.Unit = NewUnit(file, factory)
					res.Unit.CollectExports(writer)
				}
				local = append(local, res)
			}

			// Every export of every local unit is in; cross the barrier.
			complete := writer.AwaitComplete()

			for _, res := range local {
				if res.Unit.Failed() {
					continue
				}
				res.Resolved = res.Unit.ResolveBodies(complete, ids)
			}

			mu.Lock()
			units = append(units, local...)
			mu.Unlock()
		})
	}

	// The driver's own writer contributes nothing.
	global.Drop()
	p.Wait()

	complete := global.AwaitComplete()
	result := &Result{Units: units, Exports: complete}

	// Surface core-merge conflicts (a user type shadowing a primitive).
	if errs := global.MergeErrors(); len(errs) > 0 {
		for _, u := range result.Units {
			if u.Unit != nil {
				u.Unit.Errors = append(u.Unit.Errors, errs...)
				break
			}
		}
	}
	return result
}
