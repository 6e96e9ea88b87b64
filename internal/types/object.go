package types

import (
	"fmt"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/gc"
)

// Object is an instance of an object type. Fields holds the fields of every
// level of the type chain, root type first.
type Object struct {
	typ    *Type
	Fields []Value
	id     uint64
}

// Type returns the instance's type.
func (o *Object) Type() *Type {
	return o.typ
}

// ID returns the instance number, unique within its registry.
func (o *Object) ID() uint64 {
	return o.id
}

// Own returns the fields introduced by t, which must be o's type or one of
// its ancestors.
func (o *Object) Own(t *Type) []Value {
	if t == nil || t.kind != TypeKindObject {
		return nil
	}
	return o.Fields[t.fieldOffset : t.fieldOffset+t.valueSize]
}

// String returns a diagnostic label.
func (o *Object) String() string {
	if o == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s#%d", o.typ, o.id)
}

// New constructs an instance of t. It pushes args and their count onto the
// context's value stack and runs t's constructor, which must pop exactly the
// arguments and the count. The stack is restored to its depth before the
// call when construction fails, whether the constructor returns an error or
// raises.
//
// The instance is a collector allocation: it survives passes only while it
// is retained or reachable from something visited.
func (r *Registry) New(ctx *Context, t *Type, args ...Value) (*Object, error) {
	const op = "new object"
	r.mu.Lock()
	if t == nil || t.kind != TypeKindObject || t.registry != r || !t.linked {
		r.mu.Unlock()
		return nil, rterrors.Newf(rterrors.StatusArgumentInvalid, op, "%s is not a registered object type", t)
	}
	r.objectID++
	o := &Object{typ: t, Fields: make([]Value, t.FieldCount()), id: r.objectID}
	r.mu.Unlock()

	base := ctx.Len()
	done := false
	defer func() {
		if !done {
			ctx.truncate(base)
		}
	}()
	for _, arg := range args {
		if err := ctx.Push(arg); err != nil {
			return nil, err
		}
	}
	if err := ctx.Push(SizeValue(uint(len(args)))); err != nil {
		return nil, err
	}
	if err := construct(ctx, t, o); err != nil {
		return nil, err
	}
	if ctx.Len() != base {
		return nil, rterrors.Newf(rterrors.StatusStackCorruption, op, "%s constructor left the stack at %d, want %d", t, ctx.Len(), base)
	}
	done = true
	if err := r.heap.Track(r.objectTag, o); err != nil {
		return nil, rterrors.Wrap(rterrors.StatusAllocationFailed, op, err)
	}
	return o, nil
}

// Retain locks o so that it survives collector passes.
func (r *Registry) Retain(o *Object) error {
	return r.heap.Lock(o)
}

// Release undoes one Retain.
func (r *Registry) Release(o *Object) error {
	return r.heap.Unlock(o)
}

// ConstructParent runs the constructor of t's parent on self with an
// argument count of zero. Constructors call it before initializing their
// own fields; it does nothing for a root type.
func ConstructParent(ctx *Context, t *Type, self *Object) error {
	if t == nil || t.parent == nil {
		return nil
	}
	if err := ctx.Push(SizeValue(0)); err != nil {
		return err
	}
	return construct(ctx, t.parent, self)
}

// ArgumentCount returns the argument count on top of the value stack.
func ArgumentCount(ctx *Context) (int, error) {
	top, err := ctx.Peek(0)
	if err != nil {
		return 0, err
	}
	if !top.IsSize() {
		return 0, rterrors.Newf(rterrors.StatusStackCorruption, "argument count", "stack top is %s, want size", top.Kind())
	}
	n := int(top.Size())
	if n < 0 || n+1 > ctx.Len() {
		return 0, rterrors.Newf(rterrors.StatusStackCorruption, "argument count", "count %d exceeds stack of %d", n, ctx.Len()-1)
	}
	return n, nil
}

// Arguments returns the n arguments below the count marker in push order.
func Arguments(ctx *Context, n int) ([]Value, error) {
	if n < 0 || n+1 > ctx.Len() {
		return nil, rterrors.Newf(rterrors.StatusStackCorruption, "arguments", "%d arguments exceed stack of %d", n, ctx.Len())
	}
	items := ctx.Values()
	end := len(items) - 1
	return append([]Value(nil), items[end-n:end]...), nil
}

// construct resolves the constructor along t's chain and runs it. Without a
// constructor anywhere in the chain only an empty argument list is accepted.
func construct(ctx *Context, t *Type, self *Object) error {
	for c := t; c != nil; c = c.parent {
		if c.ops.Construct != nil {
			return c.ops.Construct(ctx, self)
		}
	}
	n, err := ArgumentCount(ctx)
	if err != nil {
		return err
	}
	if n != 0 {
		return rterrors.Newf(rterrors.StatusArgumentInvalid, "construct", "%s takes no arguments, got %d", t, n)
	}
	return ctx.PopCount(1)
}

// chain returns t and its ancestors, root first.
func chain(t *Type) []*Type {
	var out []*Type
	for c := t; c != nil; c = c.parent {
		out = append(out, c)
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// VisitValue shades the collector allocation v refers to, if any.
func VisitValue(h *gc.Heap, v Value) {
	switch v.kind {
	case KindObject:
		if v.obj != nil {
			h.Visit(v.obj)
		}
	case KindType:
		if v.typ != nil {
			h.Visit(v.typ)
		}
	}
}

func (r *Registry) visitObject(h *gc.Heap, obj any) {
	o := obj.(*Object)
	h.Visit(o.typ)
	for _, t := range chain(o.typ) {
		if t.ops.Visit != nil {
			t.ops.Visit(h, o)
			continue
		}
		for _, v := range o.Own(t) {
			VisitValue(h, v)
		}
	}
}

func (r *Registry) finalizeObject(_ *gc.Heap, obj any) {
	o := obj.(*Object)
	for t := o.typ; t != nil; t = t.parent {
		if t.ops.Destruct != nil {
			t.ops.Destruct(o)
		}
	}
	r.mu.Lock()
	r.reclaimed++
	r.mu.Unlock()
}
