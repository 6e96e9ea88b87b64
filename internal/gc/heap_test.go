package gc

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
)

type node struct {
	next  *node
	name  string
	owner *node
}

func mustStartHeap(t *testing.T) *Heap {
	t.Helper()
	h := NewHeap()
	if err := h.StartUp(); err != nil {
		t.Fatalf("StartUp() error = %v", err)
	}
	return h
}

func mustNodeTag(t *testing.T, h *Heap, finalized *[]string) *Tag {
	t.Helper()
	tag, err := h.RegisterTag(Tag{
		Name: "node",
		Visit: func(h *Heap, obj any) {
			if n := obj.(*node); n.next != nil {
				h.Visit(n.next)
			}
		},
		Finalize: func(h *Heap, obj any) {
			n := obj.(*node)
			*finalized = append(*finalized, n.name)
			if n.owner != nil {
				if err := h.Unlock(n.owner); err != nil {
					t.Errorf("Unlock(owner of %s) error = %v", n.name, err)
				}
			}
		},
	})
	if err != nil {
		t.Fatalf("RegisterTag() error = %v", err)
	}
	return tag
}

func mustTrack(t *testing.T, h *Heap, tag *Tag, n *node) *node {
	t.Helper()
	if err := h.Track(tag, n); err != nil {
		t.Fatalf("Track(%s) error = %v", n.name, err)
	}
	return n
}

func TestRunReclaimsUnreachable(t *testing.T) {
	h := mustStartHeap(t)
	var finalized []string
	tag := mustNodeTag(t, h, &finalized)

	c := mustTrack(t, h, tag, &node{name: "c"})
	b := mustTrack(t, h, tag, &node{name: "b", next: c})
	a := mustTrack(t, h, tag, &node{name: "a", next: b})
	_ = mustTrack(t, h, tag, &node{name: "garbage"})
	if err := h.Lock(a); err != nil {
		t.Fatalf("Lock(a) error = %v", err)
	}

	n, err := h.Run()
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if n != 1 {
		t.Fatalf("Run() reclaimed %d, want 1", n)
	}
	if len(finalized) != 1 || finalized[0] != "garbage" {
		t.Fatalf("finalized = %v, want [garbage]", finalized)
	}
	for _, live := range []*node{a, b, c} {
		if !h.Tracked(live) {
			t.Fatalf("%s reclaimed while reachable", live.name)
		}
	}

	if err := h.Unlock(a); err != nil {
		t.Fatalf("Unlock(a) error = %v", err)
	}
	if n, _ := h.Run(); n != 3 {
		t.Fatalf("Run() after unlock reclaimed %d, want 3", n)
	}
	if s := h.Stats(); s.Live != 0 || s.Passes != 2 || s.Reclaimed != 4 {
		t.Fatalf("Stats() = %+v", s)
	}
}

func TestVisitBeforeRunKeepsAllocation(t *testing.T) {
	h := mustStartHeap(t)
	var finalized []string
	tag := mustNodeTag(t, h, &finalized)
	x := mustTrack(t, h, tag, &node{name: "x"})

	h.Visit(x)
	if n, _ := h.Run(); n != 0 {
		t.Fatalf("Run() reclaimed %d visited allocations", n)
	}
	if n, _ := h.Run(); n != 1 {
		t.Fatalf("second Run() reclaimed %d, want 1", n)
	}
}

func TestFinalizerUnlockDefersToNextPass(t *testing.T) {
	h := mustStartHeap(t)
	var finalized []string
	tag := mustNodeTag(t, h, &finalized)

	parent := mustTrack(t, h, tag, &node{name: "parent"})
	child := mustTrack(t, h, tag, &node{name: "child", owner: parent})
	if err := h.Lock(parent); err != nil {
		t.Fatalf("Lock(parent) error = %v", err)
	}
	_ = child

	if n, _ := h.Run(); n != 1 {
		t.Fatalf("first Run() reclaimed %d, want 1 (child)", n)
	}
	if h.Locks(parent) != 0 {
		t.Fatalf("parent still locked after child finalized")
	}
	if n, _ := h.Run(); n != 1 {
		t.Fatalf("second Run() reclaimed %d, want 1 (parent)", n)
	}
	if n, _ := h.Run(); n != 0 {
		t.Fatalf("third Run() reclaimed %d, want 0", n)
	}
	want := []string{"child", "parent"}
	if len(finalized) != 2 || finalized[0] != want[0] || finalized[1] != want[1] {
		t.Fatalf("finalized = %v, want %v", finalized, want)
	}
}

func TestHeapErrors(t *testing.T) {
	h := NewHeap()
	if _, err := h.Run(); !errors.Is(err, rterrors.StatusEnvironmentFailed) {
		t.Fatalf("Run() before start error = %v", err)
	}
	h = mustStartHeap(t)
	if err := h.StartUp(); !errors.Is(err, rterrors.StatusEnvironmentFailed) {
		t.Fatalf("second StartUp() error = %v", err)
	}
	var finalized []string
	tag := mustNodeTag(t, h, &finalized)
	if _, err := h.RegisterTag(Tag{Name: "node"}); !errors.Is(err, rterrors.StatusExists) {
		t.Fatalf("duplicate RegisterTag() error = %v", err)
	}
	if _, err := h.RegisterTag(Tag{}); !errors.Is(err, rterrors.StatusArgumentInvalid) {
		t.Fatalf("empty RegisterTag() error = %v", err)
	}
	if err := h.Track(tag, node{name: "value"}); !errors.Is(err, rterrors.StatusArgumentInvalid) {
		t.Fatalf("Track(non-pointer) error = %v", err)
	}
	if err := h.Track(&Tag{Name: "node"}, &node{}); !errors.Is(err, rterrors.StatusArgumentInvalid) {
		t.Fatalf("Track(foreign tag) error = %v", err)
	}
	n := mustTrack(t, h, tag, &node{name: "n"})
	if err := h.Track(tag, n); !errors.Is(err, rterrors.StatusExists) {
		t.Fatalf("Track twice error = %v", err)
	}
	if err := h.Unlock(n); !errors.Is(err, rterrors.StatusOperationInvalid) {
		t.Fatalf("Unlock(unlocked) error = %v", err)
	}
	if err := h.Lock(&node{}); !errors.Is(err, rterrors.StatusNotExists) {
		t.Fatalf("Lock(untracked) error = %v", err)
	}
}

func TestShutDownReportsLeaks(t *testing.T) {
	h := mustStartHeap(t)
	var finalized []string
	tag := mustNodeTag(t, h, &finalized)
	leak := mustTrack(t, h, tag, &node{name: "leak"})
	_ = mustTrack(t, h, tag, &node{name: "free", next: leak})
	if err := h.Lock(leak); err != nil {
		t.Fatalf("Lock() error = %v", err)
	}
	leaked, err := h.ShutDown()
	if err != nil {
		t.Fatalf("ShutDown() error = %v", err)
	}
	if leaked != 1 {
		t.Fatalf("ShutDown() leaked = %d, want 1", leaked)
	}
	if h.Started() {
		t.Fatalf("heap still started after ShutDown")
	}
	if _, err := h.ShutDown(); err == nil {
		t.Fatalf("second ShutDown() error = nil")
	}
}

func TestAllocationsDuringPassSurvive(t *testing.T) {
	h := mustStartHeap(t)
	var (
		finalized []string
		late      *node
		tag       *Tag
		err       error
	)
	white := &node{name: "white"}
	tag, err = h.RegisterTag(Tag{
		Name: "node",
		Visit: func(h *Heap, obj any) {
			if obj.(*node).name != "root" {
				return
			}
			late = &node{name: "late"}
			if err := h.Track(tag, late); err != nil {
				t.Errorf("Track(late) error = %v", err)
			}
			if err := h.Lock(white); err != nil {
				t.Errorf("Lock(white) error = %v", err)
			}
		},
		Finalize: func(h *Heap, obj any) {
			finalized = append(finalized, obj.(*node).name)
		},
	})
	if err != nil {
		t.Fatalf("RegisterTag() error = %v", err)
	}
	root := mustTrack(t, h, tag, &node{name: "root"})
	mustTrack(t, h, tag, white)
	if err := h.Lock(root); err != nil {
		t.Fatalf("Lock(root) error = %v", err)
	}
	if n, err := h.Run(); err != nil || n != 0 {
		t.Fatalf("Run() = %d, %v; want 0, nil (finalized %v)", n, err, finalized)
	}
	if !h.Tracked(late) || !h.Tracked(white) {
		t.Fatalf("allocations made during the pass were reclaimed: %v", finalized)
	}
}

func TestConcurrentUse(t *testing.T) {
	h := mustStartHeap(t)
	var finalized []string
	var finalizeMu sync.Mutex
	tag, err := h.RegisterTag(Tag{
		Name: "node",
		Visit: func(h *Heap, obj any) {
			if n := obj.(*node); n.next != nil {
				h.Visit(n.next)
			}
		},
		Finalize: func(h *Heap, obj any) {
			finalizeMu.Lock()
			defer finalizeMu.Unlock()
			finalized = append(finalized, obj.(*node).name)
		},
	})
	if err != nil {
		t.Fatalf("RegisterTag() error = %v", err)
	}

	const workers, perWorker = 4, 50
	kept := make([][]*node, workers)
	var wg sync.WaitGroup
	for w := range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range perWorker {
				n := &node{name: fmt.Sprintf("%d/%d", w, i)}
				if err := h.Track(tag, n); err != nil {
					t.Errorf("Track(%s) error = %v", n.name, err)
					return
				}
				if err := h.Lock(n); err != nil {
					// A pass may reclaim an unlocked allocation before it is locked.
					if !errors.Is(err, rterrors.StatusNotExists) {
						t.Errorf("Lock(%s) error = %v", n.name, err)
					}
					continue
				}
				kept[w] = append(kept[w], n)
			}
		}()
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		for range perWorker {
			if _, err := h.Run(); err != nil && !errors.Is(err, rterrors.StatusEnvironmentFailed) {
				t.Errorf("Run() error = %v", err)
			}
			_ = h.Stats()
		}
	}()
	wg.Wait()

	if _, err := h.Run(); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	for _, nodes := range kept {
		for _, n := range nodes {
			if !h.Tracked(n) {
				t.Fatalf("locked allocation %s was reclaimed", n.name)
			}
		}
	}
}
