package resource

import (
	"sync"
	"testing"
)

type testObserver struct {
	mu     sync.Mutex
	events []Event
}

func (o *testObserver) OnResourceEvent(e Event) {
	o.mu.Lock()
	o.events = append(o.events, e)
	o.mu.Unlock()
}

func TestUnifiedTable_Basic(t *testing.T) {
	table := NewTable()

	h := table.Insert(1, 0, "test")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := table.Get(h)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	if _, ok = table.GetTyped(h, 1); !ok {
		t.Fatal("GetTyped with correct type failed")
	}

	if _, ok = table.GetTyped(h, 2); ok {
		t.Fatal("GetTyped with wrong type should fail")
	}

	val, ok = table.Remove(h)
	if !ok {
		t.Fatal("Remove failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
}

func TestUnifiedTable_ZeroHandle(t *testing.T) {
	table := NewTable()
	table.Insert(1, 0, "x")

	if _, ok := table.Get(0); ok {
		t.Fatal("Get(0) should fail")
	}
	if _, ok := table.GetTyped(0, 1); ok {
		t.Fatal("GetTyped(0) should fail")
	}
	if _, ok := table.Remove(0); ok {
		t.Fatal("Remove(0) should be a no-op")
	}
	if table.Len() != 1 {
		t.Fatalf("Expected Len() == 1, got %d", table.Len())
	}
}

func TestUnifiedTable_RemoveIsIdempotent(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	h := table.Insert(1, 0, "v")
	if _, ok := table.Remove(h); !ok {
		t.Fatal("first Remove failed")
	}
	if _, ok := table.Remove(h); ok {
		t.Fatal("second Remove should report not found")
	}
	if _, ok := table.Get(h); ok {
		t.Fatal("Get after Remove should fail")
	}
	if len(obs.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(obs.events))
	}
}

func TestUnifiedTable_StaleHandleAfterReuse(t *testing.T) {
	table := NewTable()

	old := table.Insert(1, 0, "old")
	table.Remove(old)

	fresh := table.Insert(1, 0, "new")
	if fresh == old {
		t.Fatal("Reused slot must produce a different token")
	}
	if uint32(fresh) != uint32(old) {
		t.Fatalf("Expected slot reuse, old=%x fresh=%x", old, fresh)
	}
	if _, ok := table.Get(old); ok {
		t.Fatal("Stale token must not resolve to the new value")
	}
	if _, ok := table.Remove(old); ok {
		t.Fatal("Removing a stale token must not drop the new value")
	}
	if v, ok := table.Get(fresh); !ok || v != "new" {
		t.Fatalf("Expected 'new', got %v %v", v, ok)
	}
}

func TestUnifiedTable_UniqueAmongLive(t *testing.T) {
	table := NewTable()
	seen := make(map[Handle]bool)
	for i := 0; i < 1000; i++ {
		h := table.Insert(1, 0, i)
		if seen[h] {
			t.Fatalf("duplicate live handle %x", h)
		}
		seen[h] = true
		if i%3 == 0 {
			table.Remove(h)
			delete(seen, h)
		}
	}
	if table.Len() != len(seen) {
		t.Fatalf("Len() = %d, want %d", table.Len(), len(seen))
	}
}

func TestUnifiedTable_ParentFreedChildStillValid(t *testing.T) {
	table := NewTable()

	book := table.Insert(1, 0, "workbook")
	sheets := table.Insert(2, book, "worksheets")

	table.Remove(book)

	v, ok := table.GetTyped(sheets, 2)
	if !ok || v != "worksheets" {
		t.Fatal("Child must stay valid after its parent is freed")
	}
	if p, ok := table.Parent(sheets); !ok || p != book {
		t.Fatalf("Parent = %x, want %x", p, book)
	}
}

func TestUnifiedTable_RemoveDescendants(t *testing.T) {
	table := NewTable()

	pkg := table.Insert(1, 0, "pkg")
	book := table.Insert(2, pkg, "book")
	sheet := table.Insert(3, book, "sheet")
	rng := table.Insert(4, sheet, "range")
	other := table.Insert(1, 0, "other")
	otherChild := table.Insert(2, other, "other-book")

	// Break the chain in the middle: descendants are still found through the root.
	table.Remove(book)

	n := table.RemoveDescendants(pkg)
	if n != 2 {
		t.Fatalf("Expected 2 descendants removed, got %d", n)
	}
	for _, h := range []Handle{sheet, rng} {
		if _, ok := table.Get(h); ok {
			t.Fatalf("descendant %x should be gone", h)
		}
	}
	if _, ok := table.Get(pkg); !ok {
		t.Fatal("RemoveDescendants must not drop the handle itself")
	}
	if _, ok := table.Get(otherChild); !ok {
		t.Fatal("Unrelated tree must be untouched")
	}
}

func TestUnifiedTable_RemoveDescendantsOfInnerNode(t *testing.T) {
	table := NewTable()

	pkg := table.Insert(1, 0, "pkg")
	sheet := table.Insert(3, pkg, "sheet")
	rng := table.Insert(4, sheet, "range")
	style := table.Insert(5, rng, "style")
	sibling := table.Insert(3, pkg, "sheet2")

	if n := table.RemoveDescendants(sheet); n != 2 {
		t.Fatalf("Expected 2 removed, got %d", n)
	}
	if _, ok := table.Get(style); ok {
		t.Fatal("grandchild should be gone")
	}
	if _, ok := table.Get(sibling); !ok {
		t.Fatal("sibling should survive")
	}
}

func TestUnifiedTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	parent := table.Insert(1, 0, "p")
	h := table.Insert(1, parent, "test")
	if len(obs.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(obs.events))
	}
	if obs.events[1].Type != EventCreated {
		t.Fatal("Expected EventCreated")
	}
	if obs.events[1].Handle != h || obs.events[1].Parent != parent {
		t.Fatal("Wrong handle in event")
	}

	table.Remove(h)
	if len(obs.events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(obs.events))
	}
	if obs.events[2].Type != EventDropped {
		t.Fatal("Expected EventDropped")
	}
	if obs.events[2].Parent != parent {
		t.Fatal("Dropped event should carry parent")
	}

	table.Unsubscribe(obs)
	table.Insert(1, 0, "test2")
	if len(obs.events) != 3 {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestUnifiedTable_Clear(t *testing.T) {
	table := NewTable()

	table.Insert(1, 0, "a")
	table.Insert(1, 0, "b")
	table.Insert(1, 0, "c")

	if table.Len() != 3 {
		t.Fatal("Expected Len() == 3")
	}

	table.Clear()

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Clear")
	}
}

func TestUnifiedTable_Close(t *testing.T) {
	table := NewTable()

	table.Insert(1, 0, "a")
	table.Insert(1, 0, "b")

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if h := table.Insert(1, 0, "c"); h != 0 {
		t.Fatal("Expected Insert to fail after Close")
	}
	if table.Len() != 0 {
		t.Fatal("Expected empty table after Close")
	}
}

type dropCounter struct {
	mu    sync.Mutex
	count int
}

func (d *dropCounter) Drop() {
	d.mu.Lock()
	d.count++
	d.mu.Unlock()
}

func TestUnifiedTable_DropperInterface(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}

	h := table.Insert(1, 0, d)
	table.Remove(h)
	table.Remove(h)

	if d.count != 1 {
		t.Fatalf("Expected Drop() to be called once, called %d times", d.count)
	}
}

func TestUnifiedTable_ConcurrentInsertRemove(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				h := table.Insert(1, 0, d)
				if _, ok := table.Get(h); !ok {
					t.Error("fresh handle must resolve")
					return
				}
				table.Remove(h)
				table.Remove(h)
			}
		}()
	}
	wg.Wait()

	if d.count != 8*200 {
		t.Fatalf("Expected %d drops, got %d", 8*200, d.count)
	}
	if table.Len() != 0 {
		t.Fatalf("Expected empty table, got %d", table.Len())
	}
}
