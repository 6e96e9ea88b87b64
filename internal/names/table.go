// Package names implements the interned name table.
//
// A Name is the canonical handle for a byte sequence: two names with equal
// bytes are always the same pointer. Entries are collector allocations and
// are evicted by age in two phases that ride on collector passes: PreMark
// shades every entry used within the eviction age, the pass reclaims the
// unshaded entries nothing else visited, and Finalize unlinks them.
package names

import (
	"bytes"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/gc"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/state"
)

// TagName is the collector tag of name entries.
const TagName = "Arcadia.Name"

const (
	// DefaultEvictionAge is how long an unused entry survives collector passes.
	DefaultEvictionAge = 30 * time.Second
	// DefaultCapacity is the initial bucket count.
	DefaultCapacity = 64
)

// Clock reports monotonic time elapsed since an arbitrary epoch.
type Clock func() time.Duration

// MonotonicClock returns a Clock backed by the process monotonic clock.
func MonotonicClock() Clock {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// Name is an interned byte sequence.
type Name struct {
	next  *Name
	bytes []byte
	hash  uint64
	age   atomic.Int64
	dead  bool
}

// Bytes returns the name's bytes. Callers must not modify the result.
func (n *Name) Bytes() []byte {
	return n.bytes
}

// Hash returns the name's hash.
func (n *Name) Hash() uint64 {
	return n.hash
}

// Len returns the number of bytes in the name.
func (n *Name) Len() int {
	return len(n.bytes)
}

// String returns the name's bytes as a string.
func (n *Name) String() string {
	if n == nil {
		return "<nil>"
	}
	return string(n.bytes)
}

// Age returns the clock reading of the last lookup or visit.
func (n *Name) Age() time.Duration {
	return time.Duration(n.age.Load())
}

func (n *Name) touch(now time.Duration) {
	n.age.Store(int64(now))
}

// Config configures a Table.
type Config struct {
	Clock       Clock
	Logger      *slog.Logger
	Capacity    int
	EvictionAge time.Duration
}

// Table deduplicates byte sequences into Names.
type Table struct {
	heap      *gc.Heap
	tag       *gc.Tag
	clock     Clock
	logger    *slog.Logger
	buckets   []*Name
	reclaimed []*Name
	size      int
	capacity  int
	maxAge    time.Duration
	mu        sync.Mutex
	started   bool
}

// New creates a stopped table whose entries live on heap.
func New(heap *gc.Heap, cfg Config) *Table {
	t := &Table{
		heap:     heap,
		clock:    cfg.Clock,
		logger:   cfg.Logger,
		capacity: cfg.Capacity,
		maxAge:   cfg.EvictionAge,
	}
	if t.clock == nil {
		t.clock = MonotonicClock()
	}
	if t.logger == nil {
		t.logger = slog.New(slog.DiscardHandler)
	}
	if t.capacity <= 0 {
		t.capacity = DefaultCapacity
	}
	if t.maxAge <= 0 {
		t.maxAge = DefaultEvictionAge
	}
	return t
}

// StartUp registers the name tag with the heap and allocates the buckets.
func (t *Table) StartUp() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.started {
		return rterrors.New(rterrors.StatusEnvironmentFailed, "names startup", "table already started")
	}
	tag, ok := t.heap.Tag(TagName)
	if !ok {
		var err error
		tag, err = t.heap.RegisterTag(gc.Tag{
			Name:     TagName,
			Finalize: t.finalizeName,
		})
		if err != nil {
			return err
		}
	}
	t.tag = tag
	t.buckets = make([]*Name, t.capacity)
	t.reclaimed = nil
	t.size = 0
	t.started = true
	return nil
}

// ShutDown forgets every entry. Entries still on the heap are left to the
// heap's own shutdown.
func (t *Table) ShutDown() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return rterrors.New(rterrors.StatusEnvironmentFailed, "names shutdown", "table not started")
	}
	if t.size > 0 {
		t.logger.Debug("name table shut down with live entries", "entries", t.size)
	}
	t.buckets = nil
	t.reclaimed = nil
	t.size = 0
	t.started = false
	return nil
}

// GetOrCreate returns the canonical Name for b, creating it on first use.
func (t *Table) GetOrCreate(b []byte) (*Name, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return nil, rterrors.New(rterrors.StatusEnvironmentFailed, "name get or create", "table not started")
	}
	h := HashBytes(b)
	if n := t.find(b, h); n != nil {
		n.touch(t.clock())
		return n, nil
	}
	if err := t.ensureCapacity(t.size + 1); err != nil {
		return nil, err
	}
	n := &Name{bytes: bytes.Clone(b), hash: h}
	n.touch(t.clock())
	if n.bytes == nil {
		n.bytes = []byte{}
	}
	if err := t.heap.Track(t.tag, n); err != nil {
		return nil, rterrors.Wrap(rterrors.StatusAllocationFailed, "name get or create", err)
	}
	i := h % uint64(len(t.buckets))
	n.next = t.buckets[i]
	t.buckets[i] = n
	t.size++
	return n, nil
}

// GetOrCreateString is GetOrCreate for a string.
func (t *Table) GetOrCreateString(s string) (*Name, error) {
	return t.GetOrCreate([]byte(s))
}

// Lookup returns the existing Name for b without creating one.
func (t *Table) Lookup(b []byte) (*Name, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started {
		return nil, false
	}
	n := t.find(b, HashBytes(b))
	if n == nil {
		return nil, false
	}
	n.touch(t.clock())
	return n, true
}

// VisitName stamps n as used now and shades it for the current pass.
// Owners of names call it from their own collector visit callbacks.
func (t *Table) VisitName(n *Name) {
	if n == nil {
		return
	}
	n.touch(t.clock())
	t.heap.Visit(n)
}

// PreMark shades every entry used within the eviction age so that it
// survives the coming pass. With purge set no entry is shaded and every
// entry nothing else visits is reclaimed.
func (t *Table) PreMark(purge bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started || purge {
		return
	}
	now := t.clock()
	for _, head := range t.buckets {
		for n := head; n != nil; n = n.next {
			if now-n.Age() <= t.maxAge {
				t.heap.Visit(n)
			}
		}
	}
}

// Finalize unlinks the entries reclaimed by the last pass and returns how
// many were removed.
func (t *Table) Finalize() int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.started || len(t.reclaimed) == 0 {
		t.reclaimed = t.reclaimed[:0]
		return 0
	}
	removed := 0
	for _, n := range t.reclaimed {
		if t.unlink(n) {
			removed++
		}
	}
	clear(t.reclaimed)
	t.reclaimed = t.reclaimed[:0]
	t.logger.Debug("evicted names", "count", removed, "remaining", t.size)
	return removed
}

// Len reports the number of linked entries.
func (t *Table) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.size
}

// EvictionAge reports the configured eviction age.
func (t *Table) EvictionAge() time.Duration {
	return t.maxAge
}

func (t *Table) find(b []byte, h uint64) *Name {
	for n := t.buckets[h%uint64(len(t.buckets))]; n != nil; n = n.next {
		if n.dead || n.hash != h {
			continue
		}
		if bytes.Equal(n.bytes, b) {
			return n
		}
	}
	return nil
}

// unlink removes n by identity from the chain its hash selects.
func (t *Table) unlink(n *Name) bool {
	if len(t.buckets) == 0 {
		return false
	}
	i := n.hash % uint64(len(t.buckets))
	prev := &t.buckets[i]
	for cur := *prev; cur != nil; cur = cur.next {
		if cur == n {
			*prev = cur.next
			cur.next = nil
			t.size--
			return true
		}
		prev = &cur.next
	}
	return false
}

func (t *Table) ensureCapacity(required int) error {
	if required <= len(t.buckets) {
		return nil
	}
	next, err := state.NextCapacity(len(t.buckets), required, 0)
	if err != nil {
		return rterrors.Wrap(rterrors.StatusAllocationFailed, "name table grow", err)
	}
	buckets := make([]*Name, next)
	for _, head := range t.buckets {
		for n := head; n != nil; {
			following := n.next
			i := n.hash % uint64(next)
			n.next = buckets[i]
			buckets[i] = n
			n = following
		}
	}
	t.buckets = buckets
	return nil
}

func (t *Table) finalizeName(_ *gc.Heap, obj any) {
	n := obj.(*Name)
	t.mu.Lock()
	defer t.mu.Unlock()
	n.dead = true
	t.reclaimed = append(t.reclaimed, n)
}
