// Package types implements the runtime type system: tagged values, the type
// registry with its single-inheritance object hierarchy and dispatch tables,
// the execution context with its resumption stack, and the object
// construction protocol.
package types

import (
	"bytes"
	"log/slog"
	"slices"
	"sync"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/gc"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/names"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/state"
)

const (
	// TagType is the collector tag of type descriptors.
	TagType = "Arcadia.TypeDescriptor"
	// TagObject is the collector tag of object instances.
	TagObject = "Arcadia.Instance"
	// DefaultCapacity is the initial bucket count.
	DefaultCapacity = 32
)

// Config configures a Registry.
type Config struct {
	Logger   *slog.Logger
	Capacity int
}

// Registry owns the registered type descriptors.
//
// Every descriptor is a collector allocation that locks itself while it is
// registered and locks its parent for as long as it exists, so a parent can
// never be reclaimed before its children.
type Registry struct {
	heap      *gc.Heap
	names     *names.Table
	typeTag   *gc.Tag
	objectTag *gc.Tag
	logger    *slog.Logger
	buckets   []*Type
	kinds     [kindCount]*Type
	capacity  int
	size      int
	reclaimed int
	objectID  uint64
	mu        sync.Mutex
	started   bool
}

// NewRegistry creates a stopped registry whose descriptors live on heap and
// whose names are interned in table.
func NewRegistry(heap *gc.Heap, table *names.Table, cfg Config) *Registry {
	r := &Registry{
		heap:     heap,
		names:    table,
		logger:   cfg.Logger,
		capacity: cfg.Capacity,
	}
	if r.logger == nil {
		r.logger = slog.New(slog.DiscardHandler)
	}
	if r.capacity <= 0 {
		r.capacity = DefaultCapacity
	}
	return r
}

// StartUp registers the descriptor and instance tags and allocates buckets.
func (r *Registry) StartUp() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.started {
		return rterrors.New(rterrors.StatusEnvironmentFailed, "types startup", "registry already started")
	}
	typeTag, err := r.tag(gc.Tag{Name: TagType, Visit: r.visitType, Finalize: r.finalizeType})
	if err != nil {
		return err
	}
	objectTag, err := r.tag(gc.Tag{Name: TagObject, Visit: r.visitObject, Finalize: r.finalizeObject})
	if err != nil {
		return err
	}
	r.typeTag = typeTag
	r.objectTag = objectTag
	r.buckets = make([]*Type, r.capacity)
	r.kinds = [kindCount]*Type{}
	r.size = 0
	r.reclaimed = 0
	r.started = true
	return nil
}

// ShutDown destroys every registered type and stops the registry.
func (r *Registry) ShutDown() error {
	if err := r.Destroy(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.buckets = nil
	r.started = false
	return nil
}

// Started reports whether the registry accepts registrations.
func (r *Registry) Started() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.started
}

// PreMark has nothing to shade: registered descriptors are locked.
func (r *Registry) PreMark(bool) {}

// Finalize returns how many descriptors and instances the collector
// reclaimed since the previous call.
func (r *Registry) Finalize() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.reclaimed
	r.reclaimed = 0
	return n
}

// Heap returns the heap descriptors and instances live on.
func (r *Registry) Heap() *gc.Heap {
	return r.heap
}

// RegisterInternalType registers a type used only by the runtime itself.
func (r *Registry) RegisterInternalType(spec TypeSpec) (*Type, error) {
	return r.register("register internal type", spec, TypeKindInternal, nil, nil, nil)
}

// RegisterScalarType registers a scalar type whose values occupy valueSize
// bytes.
func (r *Registry) RegisterScalarType(spec TypeSpec, valueSize int) (*Type, error) {
	const op = "register scalar type"
	return r.register(op, spec, TypeKindScalar, nonNegative(op, "value size", valueSize), func(t *Type) error {
		t.valueSize = valueSize
		return nil
	}, nil)
}

// RegisterEnumerationType registers an enumeration type whose values occupy
// valueSize bytes.
func (r *Registry) RegisterEnumerationType(spec TypeSpec, valueSize int) (*Type, error) {
	const op = "register enumeration type"
	return r.register(op, spec, TypeKindEnumeration, nonNegative(op, "value size", valueSize), func(t *Type) error {
		t.valueSize = valueSize
		return nil
	}, nil)
}

// RegisterInterfaceType registers an interface type with dispatchSize slots.
func (r *Registry) RegisterInterfaceType(spec TypeSpec, dispatchSize int) (*Type, error) {
	const op = "register interface type"
	return r.register(op, spec, TypeKindInterface, nonNegative(op, "dispatch size", dispatchSize), func(t *Type) error {
		t.dispatchSize = dispatchSize
		return nil
	}, nil)
}

// RegisterObjectType registers an object type. Its instances carry
// valueSize fields of their own after the parent's fields. Its dispatch
// table has dispatchSize slots, starts as a copy of the parent's table and
// is then patched by init. init runs outside the registry lock and may look
// up other types.
func (r *Registry) RegisterObjectType(spec TypeSpec, valueSize int, parent *Type, dispatchSize int, init DispatchInitializer) (*Type, error) {
	const op = "register object type"
	validate := func(*Type) error {
		if valueSize < 0 || dispatchSize < 0 {
			return rterrors.Newf(rterrors.StatusArgumentInvalid, op, "negative size (value %d, dispatch %d)", valueSize, dispatchSize)
		}
		if parent == nil {
			return nil
		}
		if parent.registry != r || !parent.linked {
			return rterrors.Newf(rterrors.StatusArgumentInvalid, op, "parent %s is not registered", parent)
		}
		if parent.kind != TypeKindObject {
			return rterrors.Newf(rterrors.StatusArgumentInvalid, op, "parent %s is a %s type", parent, parent.kind)
		}
		if dispatchSize < parent.dispatchSize {
			return rterrors.Newf(rterrors.StatusArgumentInvalid, op, "dispatch size %d smaller than parent %s (%d)", dispatchSize, parent, parent.dispatchSize)
		}
		return nil
	}
	build := func(t *Type) error {
		t.valueSize = valueSize
		t.dispatchSize = dispatchSize
		t.dispatch = &DispatchTable{owner: t, slots: make([]Method, dispatchSize)}
		if parent != nil {
			if err := r.heap.Lock(parent); err != nil {
				return rterrors.Wrap(rterrors.StatusEnvironmentFailed, op, err)
			}
			t.parent = parent
			t.holdsParent = true
			t.fieldOffset = parent.FieldCount()
			t.ops.inherit(parent.ops)
			copy(t.dispatch.slots, parent.dispatch.slots)
		}
		return nil
	}
	patch := func(t *Type) error {
		if init == nil {
			return nil
		}
		return init(t.dispatch)
	}
	return r.register(op, spec, TypeKindObject, validate, build, patch)
}

// register runs validate and build under the registry lock, then patch
// without it, and finally links the descriptor under the lock again. The
// name is checked for duplicates in both critical sections.
func (r *Registry) register(op string, spec TypeSpec, kind TypeKind, validate, build, patch func(t *Type) error) (*Type, error) {
	t, err := r.prepare(op, spec, kind, validate, build)
	if err != nil {
		return nil, err
	}
	if patch != nil {
		if err := patch(t); err != nil {
			r.abandon(t)
			return nil, err
		}
	}
	if err := r.link(op, t); err != nil {
		r.abandon(t)
		return nil, err
	}
	r.logger.Debug("registered type", "name", spec.Name, "kind", kind.String(), "parent", t.parent.String())
	return t, nil
}

func (r *Registry) prepare(op string, spec TypeSpec, kind TypeKind, validate, build func(t *Type) error) (*Type, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return nil, rterrors.New(rterrors.StatusEnvironmentFailed, op, "registry not started")
	}
	if spec.Name == "" {
		return nil, rterrors.New(rterrors.StatusArgumentInvalid, op, "empty type name")
	}
	n, err := r.names.GetOrCreateString(spec.Name)
	if err != nil {
		return nil, err
	}
	if r.find(n) != nil {
		return nil, rterrors.Newf(rterrors.StatusExists, op, "type %q already registered", spec.Name)
	}
	t := &Type{
		registry: r,
		name:     n,
		kind:     kind,
		ops:      spec.Operations,
		destruct: spec.Destruct,
	}
	if validate != nil {
		if err := validate(t); err != nil {
			return nil, err
		}
	}
	if err := r.heap.Track(r.typeTag, t); err != nil {
		return nil, rterrors.Wrap(rterrors.StatusAllocationFailed, op, err)
	}
	// Held until the descriptor is linked or abandoned.
	if err := r.heap.Lock(t); err != nil {
		return nil, rterrors.Wrap(rterrors.StatusEnvironmentFailed, op, err)
	}
	if build != nil {
		if err := build(t); err != nil {
			r.abandon(t)
			return nil, err
		}
	}
	return t, nil
}

func (r *Registry) link(op string, t *Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return rterrors.New(rterrors.StatusEnvironmentFailed, op, "registry stopped during registration")
	}
	if r.find(t.name) != nil {
		return rterrors.Newf(rterrors.StatusExists, op, "type %q already registered", t.name)
	}
	if t.parent != nil && !t.parent.linked {
		return rterrors.Newf(rterrors.StatusArgumentInvalid, op, "parent %s was unregistered", t.parent)
	}
	if err := r.ensureCapacity(r.size + 1); err != nil {
		return err
	}
	i := t.name.Hash() % uint64(len(r.buckets))
	t.next = r.buckets[i]
	r.buckets[i] = t
	t.linked = true
	r.size++
	return nil
}

// Lookup returns the registered type called name.
func (r *Registry) Lookup(name string) (*Type, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return nil, false
	}
	n, ok := r.names.Lookup([]byte(name))
	if !ok {
		return nil, false
	}
	t := r.find(n)
	return t, t != nil
}

// IsSubType reports whether self is other or, for object types, descends
// from it.
func (r *Registry) IsSubType(self, other *Type) bool {
	if self == nil || other == nil || self.kind != other.kind {
		return false
	}
	if self.kind != TypeKindObject {
		return self == other
	}
	for t := self; t != nil; t = t.parent {
		if t == other {
			return true
		}
	}
	return false
}

// HasChildren reports whether a registered object type names t as parent.
// It scans the whole registry.
func (r *Registry) HasChildren(t *Type) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hasChildren(t)
}

// Len reports the number of registered types.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.size
}

// Types returns the registered types ordered by name.
func (r *Registry) Types() []*Type {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]*Type, 0, r.size)
	for _, head := range r.buckets {
		for t := head; t != nil; t = t.next {
			out = append(out, t)
		}
	}
	slices.SortFunc(out, func(a, b *Type) int {
		return bytes.Compare(a.name.Bytes(), b.name.Bytes())
	})
	return out
}

// BindKind makes t the type of every value of kind k.
func (r *Registry) BindKind(k Kind, t *Type) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if k >= kindCount || k == KindObject {
		return rterrors.Newf(rterrors.StatusArgumentInvalid, "bind kind", "kind %s cannot be bound", k)
	}
	if t == nil || t.registry != r || !t.linked {
		return rterrors.New(rterrors.StatusArgumentInvalid, "bind kind", "type is not registered")
	}
	r.kinds[k] = t
	return nil
}

// TypeOf returns the descriptor of v's type.
func (r *Registry) TypeOf(v Value) (*Type, error) {
	if v.kind == KindObject {
		if v.obj == nil {
			return nil, rterrors.New(rterrors.StatusArgumentInvalid, "type of", "nil object reference")
		}
		return v.obj.typ, nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if v.kind >= kindCount || r.kinds[v.kind] == nil {
		return nil, rterrors.Newf(rterrors.StatusNotExists, "type of", "no type bound to %s", v.kind)
	}
	return r.kinds[v.kind], nil
}

// Destroy removes every registered type, leaves first. A type's Destruct
// callback never runs while a registered type still names it as parent.
func (r *Registry) Destroy() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.started {
		return rterrors.New(rterrors.StatusEnvironmentFailed, "types destroy", "registry not started")
	}
	r.kinds = [kindCount]*Type{}
	rounds := 0
	for r.size > 0 {
		removed := 0
		for i := range r.buckets {
			prev := &r.buckets[i]
			for t := *prev; t != nil; {
				next := t.next
				if r.hasChildren(t) {
					prev = &t.next
					t = next
					continue
				}
				*prev = next
				t.next = nil
				t.linked = false
				r.size--
				removed++
				if t.destruct != nil {
					t.destruct(t)
				}
				if err := r.heap.Unlock(t); err != nil {
					return rterrors.Wrap(rterrors.StatusEnvironmentFailed, "types destroy", err)
				}
				t = next
			}
		}
		rounds++
		if removed == 0 {
			return rterrors.Newf(rterrors.StatusEnvironmentFailed, "types destroy", "%d types left without a leaf", r.size)
		}
	}
	r.logger.Debug("destroyed type registry", "rounds", rounds)
	return nil
}

func (r *Registry) hasChildren(t *Type) bool {
	if t == nil || t.kind != TypeKindObject {
		return false
	}
	for _, head := range r.buckets {
		for c := head; c != nil; c = c.next {
			if c.parent == t {
				return true
			}
		}
	}
	return false
}

func (r *Registry) find(n *names.Name) *Type {
	if len(r.buckets) == 0 {
		return nil
	}
	for t := r.buckets[n.Hash()%uint64(len(r.buckets))]; t != nil; t = t.next {
		if t.name == n {
			return t
		}
	}
	return nil
}

func (r *Registry) ensureCapacity(required int) error {
	if required <= len(r.buckets) {
		return nil
	}
	next, err := state.NextCapacity(len(r.buckets), required, 0)
	if err != nil {
		return rterrors.Wrap(rterrors.StatusAllocationFailed, "types grow", err)
	}
	buckets := make([]*Type, next)
	for _, head := range r.buckets {
		for t := head; t != nil; {
			following := t.next
			i := t.name.Hash() % uint64(next)
			t.next = buckets[i]
			buckets[i] = t
			t = following
		}
	}
	r.buckets = buckets
	return nil
}

func (r *Registry) tag(tag gc.Tag) (*gc.Tag, error) {
	if existing, ok := r.heap.Tag(tag.Name); ok {
		return existing, nil
	}
	return r.heap.RegisterTag(tag)
}

// abandon gives up a descriptor that was never linked. The next collector
// pass reclaims it.
func (r *Registry) abandon(t *Type) {
	r.releaseParent(t)
	if err := r.heap.Unlock(t); err != nil {
		r.logger.Warn("abandon type", "type", t.String(), "error", err)
	}
}

func (r *Registry) releaseParent(t *Type) {
	if !t.holdsParent {
		return
	}
	t.holdsParent = false
	if err := r.heap.Unlock(t.parent); err != nil {
		r.logger.Warn("release parent type", "type", t.String(), "parent", t.parent.String(), "error", err)
	}
}

func (r *Registry) visitType(h *gc.Heap, obj any) {
	t := obj.(*Type)
	r.names.VisitName(t.name)
	if t.parent != nil {
		h.Visit(t.parent)
	}
}

func (r *Registry) finalizeType(_ *gc.Heap, obj any) {
	t := obj.(*Type)
	r.releaseParent(t)
	t.dispatch = nil
	r.mu.Lock()
	r.reclaimed++
	r.mu.Unlock()
}

func nonNegative(op, what string, n int) func(*Type) error {
	return func(*Type) error {
		if n < 0 {
			return rterrors.Newf(rterrors.StatusArgumentInvalid, op, "negative %s %d", what, n)
		}
		return nil
	}
}
