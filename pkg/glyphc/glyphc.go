// Package glyphc is the public driver API: load a set of source files,
// run them through the full front-end/mid-end pipeline in parallel, and
// hand each resolved unit to a code-generation backend.
package glyphc

import (
	"io"

	"github.com/glyphlang/glyphc/internal/backend"
	"github.com/glyphlang/glyphc/internal/resolver"
)

// Options configures a compilation.
type Options struct {
	// Jobs is the worker count; 0 means hardware parallelism.
	Jobs int

	// Adapter receives each resolved unit. Nil skips code generation
	// (front-end-only check).
	Adapter backend.Adapter

	// Verbose, when non-nil, receives progress lines.
	Verbose io.Writer
}

// Result is the aggregate outcome of one compilation.
type Result struct {
	inner *resolver.Result

	// BackendErrors collects per-unit code-generation failures, in unit
	// order, when an Adapter was configured.
	BackendErrors []error
}

// Errors returns every front-end error across all units.
func (r *Result) Errors() []error { return r.inner.Errors() }

// Units returns the per-unit results.
func (r *Result) Units() []*resolver.UnitResult { return r.inner.Units }

// Ok reports whether every unit compiled without errors.
func (r *Result) Ok() bool {
	return r.inner.GetCompiledResult() != nil && len(r.BackendErrors) == 0
}

// Compile runs paths through the pipeline. Every unit is pushed through
// stage one even when siblings fail, so one run surfaces all issues;
// units with stage-one errors never reach stage two or the backend.
func Compile(paths []string, opts Options) *Result {
	res := resolver.Run(paths, resolver.Options{Workers: opts.Jobs, Verbose: opts.Verbose})
	out := &Result{inner: res}

	if opts.Adapter == nil {
		return out
	}
	resolved := res.GetCompiledResult()
	if resolved == nil {
		return out
	}
	for _, unit := range resolved {
		if err := opts.Adapter.Compile(backend.NewHandoff(unit)); err != nil {
			out.BackendErrors = append(out.BackendErrors, err)
		}
	}
	return out
}
