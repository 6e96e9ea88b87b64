package arcadia

import (
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/gc"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/names"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/types"
)

// Heap is the tracing collector a runtime's allocations live on.
type Heap = gc.Heap

// Name is an interned byte sequence.
type Name = names.Name

// NameTable deduplicates byte sequences into Names.
type NameTable = names.Table

// Registry is the type registry.
type Registry = types.Registry

// Type is a registered type descriptor.
type Type = types.Type

// TypeSpec describes a type to register.
type TypeSpec = types.TypeSpec

// Operations is the per-type operation table.
type Operations = types.Operations

// DispatchTable holds the method slots of an object type.
type DispatchTable = types.DispatchTable

// Value is a tagged value.
type Value = types.Value

// Kind discriminates a Value.
type Kind = types.Kind

// Object is a constructed instance of an object type.
type Object = types.Object

// Context is an execution context: resumption stack, status and value stack.
type Context = types.Context

// ResumptionPoint is a saved location a raise transfers control back to.
type ResumptionPoint = types.ResumptionPoint

// NumericCodec converts numeric text into values.
type NumericCodec = types.NumericCodec

// Value kinds.
const (
	KindVoid      Kind = types.KindVoid
	KindBoolean   Kind = types.KindBoolean
	KindInteger8  Kind = types.KindInteger8
	KindInteger16 Kind = types.KindInteger16
	KindInteger32 Kind = types.KindInteger32
	KindInteger64 Kind = types.KindInteger64
	KindNatural8  Kind = types.KindNatural8
	KindNatural16 Kind = types.KindNatural16
	KindNatural32 Kind = types.KindNatural32
	KindNatural64 Kind = types.KindNatural64
	KindReal32    Kind = types.KindReal32
	KindReal64    Kind = types.KindReal64
	KindSize      Kind = types.KindSize
	KindType      Kind = types.KindType
	KindObject    Kind = types.KindObject
)

// TypeKind classifies a type descriptor.
type TypeKind = types.TypeKind

// Type descriptor kinds.
const (
	TypeKindInternal    TypeKind = types.TypeKindInternal
	TypeKindScalar      TypeKind = types.TypeKindScalar
	TypeKindEnumeration TypeKind = types.TypeKindEnumeration
	TypeKindInterface   TypeKind = types.TypeKindInterface
	TypeKindObject      TypeKind = types.TypeKindObject
)

// BooleanValue returns a boolean value.
func BooleanValue(b bool) Value {
	return types.BooleanValue(b)
}

// Integer64Value returns a 64-bit signed integer value.
func Integer64Value(x int64) Value {
	return types.Integer64Value(x)
}

// Natural64Value returns a 64-bit unsigned integer value.
func Natural64Value(x uint64) Value {
	return types.Natural64Value(x)
}

// Real64Value returns a 64-bit real value.
func Real64Value(x float64) Value {
	return types.Real64Value(x)
}

// SizeValue returns a size value.
func SizeValue(x uint) Value {
	return types.SizeValue(x)
}

// TypeValue returns a value referring to t.
func TypeValue(t *Type) Value {
	return types.TypeValue(t)
}

// ObjectValue returns a value referring to o.
func ObjectValue(o *Object) Value {
	return types.ObjectValue(o)
}
