package export

import "sync"

// Global is the shared export-table state machine:
// Incomplete{writers, table} → Complete(mergedReadOnly). The transition
// happens exactly once, on the last writer drop, and is broadcast to every
// goroutine blocked in AwaitComplete.
type Global struct {
	mu   sync.Mutex
	cond *sync.Cond

	writers   int
	complete  bool
	table     *Table // mutable while !complete, frozen after
	mergeErrs []error
}

// NewGlobal creates a Global in the Incomplete state with a single writer:
// the caller. Hand further writers out with Clone, one per contributing
// worker, before any work begins.
func NewGlobal() *Global {
	g := &Global{writers: 1, table: NewTable()}
	g.cond = sync.NewCond(&g.mu)
	return g
}

// Clone registers one more writer. Must be called before the table could
// possibly complete (i.e. while the caller still holds a live writer).
func (g *Global) Clone() *Global {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.complete {
		panic("export: Clone on a completed global table")
	}
	g.writers++
	return g
}

// Drop releases one writer. When the count reaches zero the table merges
// in the core exports, transitions to Complete, and wakes every waiter.
func (g *Global) Drop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.dropLocked()
}

func (g *Global) dropLocked() {
	if g.complete {
		panic("export: Drop on a completed global table")
	}
	g.writers--
	if g.writers > 0 {
		return
	}
	core := coreTable()
	g.mergeErrs = append(g.mergeErrs, g.table.Merge(core)...)
	g.complete = true
	g.cond.Broadcast()
}

// WithWriteTable runs fn against the shared incomplete table under the
// lock. Panics if the table has already completed: exporting after the
// barrier is a protocol violation, not
// a recoverable condition.
func (g *Global) WithWriteTable(fn func(*Table) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.complete {
		panic("export: WithWriteTable on a completed global table")
	}
	return fn(g.table)
}

// AwaitComplete drops the caller's writer, then blocks until every other
// writer has dropped, returning the merged read-only table. The caller must have
// finished every export before calling this, or the group deadlocks.
func (g *Global) AwaitComplete() *Table {
	g.mu.Lock()
	defer g.mu.Unlock()
	if !g.complete {
		g.dropLocked()
	}
	for !g.complete {
		g.cond.Wait()
	}
	return g.table
}

// MergeErrors returns the conflicts detected while folding in the core
// exports at completion time. Only valid after AwaitComplete returns.
func (g *Global) MergeErrors() []error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.mergeErrs
}
