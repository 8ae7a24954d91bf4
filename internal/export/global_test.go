package export

import (
	"sync"
	"testing"

	"github.com/glyphlang/glyphc/internal/types"
)

func TestBarrierMergesAllWriters(t *testing.T) {
	const units = 8

	global := NewGlobal()
	factory := types.NewFactory()

	writers := make([]*Global, units)
	for i := range writers {
		writers[i] = global.Clone()
	}
	global.Drop() // the creator contributes nothing

	var wg sync.WaitGroup
	results := make([]*Table, units)
	names := []string{"alpha", "beta", "gamma", "delta", "epsilon", "zeta", "eta", "theta"}

	for i := 0; i < units; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fn := factory.NewFunction(types.Public, names[i], types.Void, nil)
			err := writers[i].WithWriteTable(func(tab *Table) error {
				return tab.AddExportedFunction(fn)
			})
			if err != nil {
				t.Errorf("unit %d: unexpected export conflict: %v", i, err)
			}
			results[i] = writers[i].AwaitComplete()
		}(i)
	}
	wg.Wait()

	for i, tab := range results {
		if tab == nil {
			t.Fatalf("unit %d: AwaitComplete returned nil", i)
		}
		if tab != results[0] {
			t.Fatalf("unit %d: got a different merged table than unit 0", i)
		}
	}

	merged := results[0]
	if got := merged.Functions(); got != units {
		t.Fatalf("merged table has %d functions, want %d", merged.Functions(), units)
	}
	for _, name := range names {
		if _, ok := merged.LookupFunction(name); !ok {
			t.Errorf("merged table missing function %s", name)
		}
	}

	// Core exports are folded in at completion.
	for _, prim := range types.Primitives() {
		if got, ok := merged.LookupType(prim.Name); !ok || got != prim {
			t.Errorf("merged table missing core type %s", prim.Name)
		}
	}
}

func TestDuplicateExportIsOneConflictPerName(t *testing.T) {
	const dupes = 3

	global := NewGlobal()
	factory := types.NewFactory()

	writers := make([]*Global, dupes)
	for i := range writers {
		writers[i] = global.Clone()
	}
	global.Drop()

	var mu sync.Mutex
	var conflicts []error

	var wg sync.WaitGroup
	for i := 0; i < dupes; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			fn := factory.NewFunction(types.Public, "duplicated", types.Int, nil)
			err := writers[i].WithWriteTable(func(tab *Table) error {
				return tab.AddExportedFunction(fn)
			})
			if err != nil {
				mu.Lock()
				conflicts = append(conflicts, err)
				mu.Unlock()
			}
			writers[i].AwaitComplete()
		}(i)
	}
	wg.Wait()

	// The first insert wins; every later insert of the same name conflicts.
	if len(conflicts) != dupes-1 {
		t.Fatalf("got %d conflicts, want %d", len(conflicts), dupes-1)
	}
	for _, err := range conflicts {
		if _, ok := err.(*ConflictingFunctionError); !ok {
			t.Errorf("want ConflictingFunctionError, got %T", err)
		}
	}
}

func TestConflictingTypeDefinition(t *testing.T) {
	tab := NewTable()
	a := types.New("Widget", 64)
	b := types.New("Widget", 32)

	if err := tab.AddExportedType(a); err != nil {
		t.Fatalf("first insert: %v", err)
	}
	err := tab.AddExportedType(b)
	conflict, ok := err.(*ConflictingTypeError)
	if !ok {
		t.Fatalf("want ConflictingTypeError, got %T", err)
	}
	if conflict.Existing != a || conflict.New != b {
		t.Fatalf("conflict carries wrong handles: %+v", conflict)
	}
}

func TestAwaitCompleteUnblocksLateWaiter(t *testing.T) {
	global := NewGlobal()
	other := global.Clone()

	done := make(chan *Table)
	go func() {
		done <- other.AwaitComplete()
	}()

	// The creator finishing is what completes the table.
	got := global.AwaitComplete()
	if merged := <-done; merged != got {
		t.Fatal("waiters observed different merged tables")
	}
}
