// Package gc implements the tracing collector the runtime cooperates with.
//
// Allocations are ordinary Go pointers registered with a Heap under a Tag.
// A pass shades every locked allocation and everything visited since the
// previous pass, traces through each tag's Visit callback, and reclaims what
// stayed unshaded by calling the tag's Finalize callback and forgetting it.
// Go's own garbage collector frees the memory once nothing else refers to it.
//
// A Heap is safe for concurrent use. Its lock is never held while a tag
// callback runs, so callbacks may call back into the heap and take the
// locks of their owners.
package gc

import (
	"fmt"
	"reflect"
	"sync"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
)

// Tag describes how one kind of allocation is traced and finalized.
// Visit shades the allocations obj refers to through Heap.Visit. Finalize
// runs once obj is reclaimed and may unlock other allocations.
type Tag struct {
	Visit    func(h *Heap, obj any)
	Finalize func(h *Heap, obj any)
	Name     string
}

type color uint8

const (
	white color = iota
	gray
	black
)

type header struct {
	tag   *Tag
	obj   any
	locks int
	color color
}

// Stats summarizes heap activity.
type Stats struct {
	Live      int
	Locked    int
	Passes    int
	Reclaimed int
}

// Heap owns every tracked allocation.
type Heap struct {
	tags    map[string]*Tag
	objects map[any]*header
	gray    []*header
	stats   Stats
	mu      sync.Mutex
	started bool
	running bool
}

// NewHeap creates a heap in the stopped state.
func NewHeap() *Heap {
	return &Heap{}
}

// StartUp prepares the heap for use.
func (h *Heap) StartUp() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.started {
		return rterrors.New(rterrors.StatusEnvironmentFailed, "gc startup", "heap already started")
	}
	h.tags = make(map[string]*Tag)
	h.objects = make(map[any]*header)
	h.gray = h.gray[:0]
	h.stats = Stats{}
	h.started = true
	return nil
}

// ShutDown reclaims everything that is no longer locked and forgets the rest.
// It returns the number of allocations still locked, which are leaks.
func (h *Heap) ShutDown() (int, error) {
	for {
		n, err := h.Run()
		if err != nil {
			return 0, err
		}
		if n == 0 {
			break
		}
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	leaked := len(h.objects)
	h.objects = nil
	h.tags = nil
	h.gray = nil
	h.started = false
	return leaked, nil
}

// Started reports whether the heap is usable.
func (h *Heap) Started() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.started
}

// RegisterTag registers an allocation tag under a unique name.
func (h *Heap) RegisterTag(tag Tag) (*Tag, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ensureStarted("register tag"); err != nil {
		return nil, err
	}
	if tag.Name == "" {
		return nil, rterrors.New(rterrors.StatusArgumentInvalid, "register tag", "empty tag name")
	}
	if _, ok := h.tags[tag.Name]; ok {
		return nil, rterrors.Newf(rterrors.StatusExists, "register tag", "tag %q already registered", tag.Name)
	}
	t := &tag
	h.tags[tag.Name] = t
	return t, nil
}

// Tag returns the registered tag called name.
func (h *Heap) Tag(name string) (*Tag, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.started {
		return nil, false
	}
	t, ok := h.tags[name]
	return t, ok
}

// Track starts managing obj, which must be a non-nil pointer.
// The allocation starts unlocked and unshaded, except during a pass, which
// it survives.
func (h *Heap) Track(tag *Tag, obj any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ensureStarted("track"); err != nil {
		return err
	}
	if tag == nil || h.tags[tag.Name] != tag {
		return rterrors.New(rterrors.StatusArgumentInvalid, "track", "unregistered tag")
	}
	if err := checkPointer(obj); err != nil {
		return err
	}
	if _, ok := h.objects[obj]; ok {
		return rterrors.Newf(rterrors.StatusExists, "track", "%T already tracked", obj)
	}
	hdr := &header{tag: tag, obj: obj}
	h.objects[obj] = hdr
	if h.running {
		h.shade(hdr)
	}
	return nil
}

// Tracked reports whether obj is managed by the heap.
func (h *Heap) Tracked(obj any) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.started || obj == nil {
		return false
	}
	_, ok := h.objects[obj]
	return ok
}

// Lock retains obj: a locked allocation is a root of every pass.
func (h *Heap) Lock(obj any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	hdr, err := h.header("lock", obj)
	if err != nil {
		return err
	}
	hdr.locks++
	if h.running {
		h.shade(hdr)
	}
	return nil
}

// Unlock releases one Lock.
func (h *Heap) Unlock(obj any) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	hdr, err := h.header("unlock", obj)
	if err != nil {
		return err
	}
	if hdr.locks == 0 {
		return rterrors.Newf(rterrors.StatusOperationInvalid, "unlock", "%T is not locked", obj)
	}
	hdr.locks--
	return nil
}

// Locks reports the lock count of obj.
func (h *Heap) Locks(obj any) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.started || obj == nil {
		return 0
	}
	if hdr, ok := h.objects[obj]; ok {
		return hdr.locks
	}
	return 0
}

// Visit shades obj so that it survives the current (or next) pass.
// Visiting nil or an untracked value is a no-op.
func (h *Heap) Visit(obj any) {
	if obj == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	if !h.started {
		return
	}
	if hdr, ok := h.objects[obj]; ok {
		h.shade(hdr)
	}
}

// Run performs one collector pass and returns how many allocations it
// reclaimed. Finalizers run after the sweep, once the pass is over.
func (h *Heap) Run() (int, error) {
	dead, err := h.collect()
	if err != nil {
		return 0, err
	}
	for _, hdr := range dead {
		if hdr.tag.Finalize != nil {
			hdr.tag.Finalize(h, hdr.obj)
		}
	}
	return len(dead), nil
}

// collect marks from the locked allocations and sweeps. The heap lock is
// released around each Visit callback.
func (h *Heap) collect() ([]*header, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.ensureStarted("run"); err != nil {
		return nil, err
	}
	if h.running {
		return nil, rterrors.New(rterrors.StatusEnvironmentFailed, "run", "collector pass already running")
	}
	h.running = true
	defer func() { h.running = false }()

	for _, hdr := range h.objects {
		if hdr.locks > 0 {
			h.shade(hdr)
		}
	}
	for len(h.gray) > 0 {
		last := len(h.gray) - 1
		hdr := h.gray[last]
		h.gray[last] = nil
		h.gray = h.gray[:last]
		hdr.color = black
		if hdr.tag.Visit != nil {
			h.trace(hdr)
		}
	}

	var dead []*header
	for obj, hdr := range h.objects {
		if hdr.color == white {
			dead = append(dead, hdr)
			delete(h.objects, obj)
			continue
		}
		hdr.color = white
	}
	h.stats.Passes++
	h.stats.Reclaimed += len(dead)
	return dead, nil
}

func (h *Heap) trace(hdr *header) {
	h.mu.Unlock()
	defer h.mu.Lock()
	hdr.tag.Visit(h, hdr.obj)
}

// Stats returns a snapshot of heap statistics.
func (h *Heap) Stats() Stats {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := h.stats
	out.Live = len(h.objects)
	for _, hdr := range h.objects {
		if hdr.locks > 0 {
			out.Locked++
		}
	}
	return out
}

func (h *Heap) shade(hdr *header) {
	if hdr.color != white {
		return
	}
	hdr.color = gray
	h.gray = append(h.gray, hdr)
}

func (h *Heap) header(op string, obj any) (*header, error) {
	if err := h.ensureStarted(op); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, rterrors.New(rterrors.StatusArgumentInvalid, op, "nil allocation")
	}
	hdr, ok := h.objects[obj]
	if !ok {
		return nil, rterrors.Newf(rterrors.StatusNotExists, op, "%T is not tracked", obj)
	}
	return hdr, nil
}

func (h *Heap) ensureStarted(op string) error {
	if !h.started {
		return rterrors.New(rterrors.StatusEnvironmentFailed, op, "heap not started")
	}
	return nil
}

func checkPointer(obj any) error {
	if obj == nil {
		return rterrors.New(rterrors.StatusArgumentInvalid, "track", "nil allocation")
	}
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		return rterrors.New(rterrors.StatusArgumentInvalid, "track", fmt.Sprintf("%T is not a non-nil pointer", obj))
	}
	return nil
}
