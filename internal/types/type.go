package types

import (
	"fmt"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/gc"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/names"
)

// TypeKind classifies a type descriptor.
type TypeKind uint8

const (
	TypeKindInternal TypeKind = iota + 1
	TypeKindScalar
	TypeKindEnumeration
	TypeKindInterface
	TypeKindObject
)

// String returns the kind label.
func (k TypeKind) String() string {
	switch k {
	case TypeKindInternal:
		return "internal"
	case TypeKindScalar:
		return "scalar"
	case TypeKindEnumeration:
		return "enumeration"
	case TypeKindInterface:
		return "interface"
	case TypeKindObject:
		return "object"
	default:
		return fmt.Sprintf("typekind(%d)", k)
	}
}

// Operations is the operation table of a type.
//
// Construct, Destruct and Visit apply to object instances. Construct is
// resolved along the parent chain; Destruct and Visit are called once per
// level of the chain and only see the fields that level introduced. The
// value operations of an object type that are left nil are inherited from
// its parent at registration.
type Operations struct {
	Construct func(ctx *Context, self *Object) error
	Destruct  func(self *Object)
	Visit     func(h *gc.Heap, self *Object)

	Equal   func(a, b Value) (bool, error)
	Compare func(a, b Value) (int, error)
	Hash    func(a Value) (uint64, error)

	Add      func(a, b Value) (Value, error)
	Subtract func(a, b Value) (Value, error)
	Multiply func(a, b Value) (Value, error)
	Divide   func(a, b Value) (Value, error)
	Negate   func(a Value) (Value, error)
}

func (o *Operations) inherit(parent Operations) {
	if o.Equal == nil {
		o.Equal = parent.Equal
	}
	if o.Compare == nil {
		o.Compare = parent.Compare
	}
	if o.Hash == nil {
		o.Hash = parent.Hash
	}
	if o.Add == nil {
		o.Add = parent.Add
	}
	if o.Subtract == nil {
		o.Subtract = parent.Subtract
	}
	if o.Multiply == nil {
		o.Multiply = parent.Multiply
	}
	if o.Divide == nil {
		o.Divide = parent.Divide
	}
	if o.Negate == nil {
		o.Negate = parent.Negate
	}
}

// TypeSpec carries the parts every registration call shares.
type TypeSpec struct {
	// Destruct runs when the registry tears the type down. It must not
	// call back into the registry.
	Destruct   func(t *Type)
	Name       string
	Operations Operations
}

// Type is a registered type descriptor.
type Type struct {
	next         *Type
	registry     *Registry
	name         *names.Name
	parent       *Type
	dispatch     *DispatchTable
	destruct     func(*Type)
	ops          Operations
	valueSize    int
	fieldOffset  int
	dispatchSize int
	kind         TypeKind
	linked       bool
	holdsParent  bool
}

// Name returns the interned type name.
func (t *Type) Name() *names.Name {
	return t.name
}

// String returns the type name.
func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	return t.name.String()
}

// Kind returns the descriptor kind.
func (t *Type) Kind() TypeKind {
	return t.kind
}

// Operations returns the operation table, inherited entries included.
func (t *Type) Operations() Operations {
	return t.ops
}

// Parent returns the parent object type, or nil.
func (t *Type) Parent() *Type {
	return t.parent
}

// ValueSize returns the value size. For object types it counts the fields
// the type itself introduces.
func (t *Type) ValueSize() int {
	return t.valueSize
}

// FieldCount returns the number of fields an instance of t carries.
func (t *Type) FieldCount() int {
	return t.fieldOffset + t.valueSize
}

// DispatchSize returns the number of dispatch slots.
func (t *Type) DispatchSize() int {
	return t.dispatchSize
}

// Dispatch returns the dispatch table of an object type, or nil.
func (t *Type) Dispatch() *DispatchTable {
	return t.dispatch
}

// Registered reports whether t is still linked into its registry.
func (t *Type) Registered() bool {
	return t.linked
}

// Method is one dispatch slot entry.
type Method any

// DispatchTable is the slot table of an object type. A child's table starts
// as a copy of its parent's and is then patched by the child's initializer.
type DispatchTable struct {
	owner *Type
	slots []Method
}

// Type returns the descriptor owning the table.
func (d *DispatchTable) Type() *Type {
	return d.owner
}

// Len returns the slot count.
func (d *DispatchTable) Len() int {
	return len(d.slots)
}

// Slot returns the method in slot i, or nil when i is out of range.
func (d *DispatchTable) Slot(i int) Method {
	if i < 0 || i >= len(d.slots) {
		return nil
	}
	return d.slots[i]
}

// Set stores m in slot i.
func (d *DispatchTable) Set(i int, m Method) error {
	if i < 0 || i >= len(d.slots) {
		return rterrors.Newf(rterrors.StatusArgumentInvalid, "dispatch set", "slot %d out of range [0,%d)", i, len(d.slots))
	}
	d.slots[i] = m
	return nil
}

// Slots returns a copy of the slot entries.
func (d *DispatchTable) Slots() []Method {
	return append([]Method(nil), d.slots...)
}

// DispatchInitializer patches a freshly inherited table with the type's own
// overrides. The type is not yet visible through Lookup while it runs.
type DispatchInitializer func(table *DispatchTable) error
