package types

import "math"

// Kind identifies which arm of a Value is valid.
type Kind uint8

const (
	KindVoid Kind = iota
	KindBoolean
	KindInteger8
	KindInteger16
	KindInteger32
	KindInteger64
	KindNatural8
	KindNatural16
	KindNatural32
	KindNatural64
	KindReal32
	KindReal64
	KindSize
	KindType
	KindObject

	kindCount
)

// String returns the kind label.
func (k Kind) String() string {
	switch k {
	case KindVoid:
		return "void"
	case KindBoolean:
		return "boolean"
	case KindInteger8:
		return "integer8"
	case KindInteger16:
		return "integer16"
	case KindInteger32:
		return "integer32"
	case KindInteger64:
		return "integer64"
	case KindNatural8:
		return "natural8"
	case KindNatural16:
		return "natural16"
	case KindNatural32:
		return "natural32"
	case KindNatural64:
		return "natural64"
	case KindReal32:
		return "real32"
	case KindReal64:
		return "real64"
	case KindSize:
		return "size"
	case KindType:
		return "type"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is the tagged value passed as argument, result and operand.
// The zero Value is void. Scalars live in bits; the type and object arms are
// pointers that do not retain their referent. Reading an arm other than the
// one Kind names yields that arm's zero value.
type Value struct {
	typ  *Type
	obj  *Object
	bits uint64
	kind Kind
}

// Kind returns the discriminant.
func (v Value) Kind() Kind { return v.kind }

// IsVoid reports whether v is void.
func (v Value) IsVoid() bool { return v.kind == KindVoid }

// SetVoid makes v void.
func (v *Value) SetVoid() { *v = Value{} }

// VoidValue returns the void value.
func VoidValue() Value { return Value{} }

// IsBoolean reports whether v holds a boolean.
func (v Value) IsBoolean() bool { return v.kind == KindBoolean }

// Boolean returns the boolean arm.
func (v Value) Boolean() bool { return v.kind == KindBoolean && v.bits != 0 }

// SetBoolean stores a boolean.
func (v *Value) SetBoolean(b bool) {
	*v = Value{kind: KindBoolean}
	if b {
		v.bits = 1
	}
}

// BooleanValue returns a boolean value.
func BooleanValue(b bool) Value {
	var v Value
	v.SetBoolean(b)
	return v
}

// IsInteger8 reports whether v holds an 8-bit integer.
func (v Value) IsInteger8() bool { return v.kind == KindInteger8 }

// Integer8 returns the integer8 arm.
func (v Value) Integer8() int8 {
	if v.kind != KindInteger8 {
		return 0
	}
	return int8(v.bits)
}

// SetInteger8 stores an 8-bit integer.
func (v *Value) SetInteger8(x int8) { *v = Value{kind: KindInteger8, bits: uint64(int64(x))} }

// Integer8Value returns an 8-bit integer value.
func Integer8Value(x int8) Value { return Value{kind: KindInteger8, bits: uint64(int64(x))} }

// IsInteger16 reports whether v holds a 16-bit integer.
func (v Value) IsInteger16() bool { return v.kind == KindInteger16 }

// Integer16 returns the integer16 arm.
func (v Value) Integer16() int16 {
	if v.kind != KindInteger16 {
		return 0
	}
	return int16(v.bits)
}

// SetInteger16 stores a 16-bit integer.
func (v *Value) SetInteger16(x int16) { *v = Value{kind: KindInteger16, bits: uint64(int64(x))} }

// Integer16Value returns a 16-bit integer value.
func Integer16Value(x int16) Value { return Value{kind: KindInteger16, bits: uint64(int64(x))} }

// IsInteger32 reports whether v holds a 32-bit integer.
func (v Value) IsInteger32() bool { return v.kind == KindInteger32 }

// Integer32 returns the integer32 arm.
func (v Value) Integer32() int32 {
	if v.kind != KindInteger32 {
		return 0
	}
	return int32(v.bits)
}

// SetInteger32 stores a 32-bit integer.
func (v *Value) SetInteger32(x int32) { *v = Value{kind: KindInteger32, bits: uint64(int64(x))} }

// Integer32Value returns a 32-bit integer value.
func Integer32Value(x int32) Value { return Value{kind: KindInteger32, bits: uint64(int64(x))} }

// IsInteger64 reports whether v holds a 64-bit integer.
func (v Value) IsInteger64() bool { return v.kind == KindInteger64 }

// Integer64 returns the integer64 arm.
func (v Value) Integer64() int64 {
	if v.kind != KindInteger64 {
		return 0
	}
	return int64(v.bits)
}

// SetInteger64 stores a 64-bit integer.
func (v *Value) SetInteger64(x int64) { *v = Value{kind: KindInteger64, bits: uint64(x)} }

// Integer64Value returns a 64-bit integer value.
func Integer64Value(x int64) Value { return Value{kind: KindInteger64, bits: uint64(x)} }

// IsNatural8 reports whether v holds an 8-bit natural.
func (v Value) IsNatural8() bool { return v.kind == KindNatural8 }

// Natural8 returns the natural8 arm.
func (v Value) Natural8() uint8 {
	if v.kind != KindNatural8 {
		return 0
	}
	return uint8(v.bits)
}

// SetNatural8 stores an 8-bit natural.
func (v *Value) SetNatural8(x uint8) { *v = Value{kind: KindNatural8, bits: uint64(x)} }

// Natural8Value returns an 8-bit natural value.
func Natural8Value(x uint8) Value { return Value{kind: KindNatural8, bits: uint64(x)} }

// IsNatural16 reports whether v holds a 16-bit natural.
func (v Value) IsNatural16() bool { return v.kind == KindNatural16 }

// Natural16 returns the natural16 arm.
func (v Value) Natural16() uint16 {
	if v.kind != KindNatural16 {
		return 0
	}
	return uint16(v.bits)
}

// SetNatural16 stores a 16-bit natural.
func (v *Value) SetNatural16(x uint16) { *v = Value{kind: KindNatural16, bits: uint64(x)} }

// Natural16Value returns a 16-bit natural value.
func Natural16Value(x uint16) Value { return Value{kind: KindNatural16, bits: uint64(x)} }

// IsNatural32 reports whether v holds a 32-bit natural.
func (v Value) IsNatural32() bool { return v.kind == KindNatural32 }

// Natural32 returns the natural32 arm.
func (v Value) Natural32() uint32 {
	if v.kind != KindNatural32 {
		return 0
	}
	return uint32(v.bits)
}

// SetNatural32 stores a 32-bit natural.
func (v *Value) SetNatural32(x uint32) { *v = Value{kind: KindNatural32, bits: uint64(x)} }

// Natural32Value returns a 32-bit natural value.
func Natural32Value(x uint32) Value { return Value{kind: KindNatural32, bits: uint64(x)} }

// IsNatural64 reports whether v holds a 64-bit natural.
func (v Value) IsNatural64() bool { return v.kind == KindNatural64 }

// Natural64 returns the natural64 arm.
func (v Value) Natural64() uint64 {
	if v.kind != KindNatural64 {
		return 0
	}
	return v.bits
}

// SetNatural64 stores a 64-bit natural.
func (v *Value) SetNatural64(x uint64) { *v = Value{kind: KindNatural64, bits: x} }

// Natural64Value returns a 64-bit natural value.
func Natural64Value(x uint64) Value { return Value{kind: KindNatural64, bits: x} }

// IsReal32 reports whether v holds a 32-bit real.
func (v Value) IsReal32() bool { return v.kind == KindReal32 }

// Real32 returns the 32-bit real arm.
func (v Value) Real32() float32 {
	if v.kind != KindReal32 {
		return 0
	}
	return math.Float32frombits(uint32(v.bits))
}

// SetReal32 stores a 32-bit real.
func (v *Value) SetReal32(x float32) {
	*v = Value{kind: KindReal32, bits: uint64(math.Float32bits(x))}
}

// Real32Value returns a 32-bit real value.
func Real32Value(x float32) Value {
	return Value{kind: KindReal32, bits: uint64(math.Float32bits(x))}
}

// IsReal64 reports whether v holds a 64-bit real.
func (v Value) IsReal64() bool { return v.kind == KindReal64 }

// Real64 returns the 64-bit real arm.
func (v Value) Real64() float64 {
	if v.kind != KindReal64 {
		return 0
	}
	return math.Float64frombits(v.bits)
}

// SetReal64 stores a 64-bit real.
func (v *Value) SetReal64(x float64) { *v = Value{kind: KindReal64, bits: math.Float64bits(x)} }

// Real64Value returns a 64-bit real value.
func Real64Value(x float64) Value { return Value{kind: KindReal64, bits: math.Float64bits(x)} }

// IsSize reports whether v holds a size.
func (v Value) IsSize() bool { return v.kind == KindSize }

// Size returns the size arm.
func (v Value) Size() uint {
	if v.kind != KindSize {
		return 0
	}
	return uint(v.bits)
}

// SetSize stores a size.
func (v *Value) SetSize(x uint) { *v = Value{kind: KindSize, bits: uint64(x)} }

// SizeValue returns a size value.
func SizeValue(x uint) Value { return Value{kind: KindSize, bits: uint64(x)} }

// IsType reports whether v holds a type handle.
func (v Value) IsType() bool { return v.kind == KindType }

// Type returns the type arm.
func (v Value) Type() *Type { return v.typ }

// SetType stores a type handle.
func (v *Value) SetType(t *Type) { *v = Value{kind: KindType, typ: t} }

// TypeValue returns a type handle value.
func TypeValue(t *Type) Value { return Value{kind: KindType, typ: t} }

// IsObject reports whether v holds an object reference.
func (v Value) IsObject() bool { return v.kind == KindObject }

// Object returns the object arm.
func (v Value) Object() *Object { return v.obj }

// SetObject stores an object reference.
func (v *Value) SetObject(o *Object) { *v = Value{kind: KindObject, obj: o} }

// ObjectValue returns an object reference value.
func ObjectValue(o *Object) Value { return Value{kind: KindObject, obj: o} }
