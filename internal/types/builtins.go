package types

import (
	"math/bits"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
)

// Names of the built-in types.
const (
	NameVoid      = "Arcadia.Void"
	NameBoolean   = "Arcadia.Boolean"
	NameInteger8  = "Arcadia.Integer8"
	NameInteger16 = "Arcadia.Integer16"
	NameInteger32 = "Arcadia.Integer32"
	NameInteger64 = "Arcadia.Integer64"
	NameNatural8  = "Arcadia.Natural8"
	NameNatural16 = "Arcadia.Natural16"
	NameNatural32 = "Arcadia.Natural32"
	NameNatural64 = "Arcadia.Natural64"
	NameReal32    = "Arcadia.Real32"
	NameReal64    = "Arcadia.Real64"
	NameSize      = "Arcadia.Size"
	NameType      = "Arcadia.Type"
	NameObject    = "Arcadia.Object"
)

type builtin struct {
	name string
	kind Kind
	size int
}

var scalarBuiltins = []builtin{
	{name: NameVoid, kind: KindVoid, size: 0},
	{name: NameBoolean, kind: KindBoolean, size: 1},
	{name: NameInteger8, kind: KindInteger8, size: 1},
	{name: NameInteger16, kind: KindInteger16, size: 2},
	{name: NameInteger32, kind: KindInteger32, size: 4},
	{name: NameInteger64, kind: KindInteger64, size: 8},
	{name: NameNatural8, kind: KindNatural8, size: 1},
	{name: NameNatural16, kind: KindNatural16, size: 2},
	{name: NameNatural32, kind: KindNatural32, size: 4},
	{name: NameNatural64, kind: KindNatural64, size: 8},
	{name: NameReal32, kind: KindReal32, size: 4},
	{name: NameReal64, kind: KindReal64, size: 8},
	{name: NameSize, kind: KindSize, size: bits.UintSize / 8},
}

var numericOperations = Operations{
	Equal:    equalNumeric,
	Compare:  compareNumeric,
	Hash:     hashNumeric,
	Add:      Add,
	Subtract: Subtract,
	Multiply: Multiply,
	Divide:   Divide,
	Negate:   Negate,
}

var voidOperations = Operations{
	Equal: func(_, b Value) (bool, error) { return b.kind == KindVoid, nil },
	Hash:  func(Value) (uint64, error) { return hashUint64(0), nil },
}

var booleanOperations = Operations{
	Equal: func(a, b Value) (bool, error) {
		return b.kind == KindBoolean && a.Boolean() == b.Boolean(), nil
	},
	Compare: func(a, b Value) (int, error) {
		if b.kind != KindBoolean {
			return 0, rterrors.Newf(rterrors.StatusArgumentTypeInvalid, "compare", "boolean and %s", b.kind)
		}
		switch {
		case a.Boolean() == b.Boolean():
			return 0, nil
		case b.Boolean():
			return -1, nil
		default:
			return 1, nil
		}
	},
	Hash: func(a Value) (uint64, error) { return hashUint64(a.bits), nil },
}

var typeOperations = Operations{
	Equal: func(a, b Value) (bool, error) {
		return b.kind == KindType && a.typ == b.typ, nil
	},
	Hash: func(a Value) (uint64, error) {
		if a.typ == nil {
			return hashUint64(0), nil
		}
		return a.typ.name.Hash(), nil
	},
}

var objectOperations = Operations{
	Equal: func(a, b Value) (bool, error) {
		return b.kind == KindObject && a.obj == b.obj, nil
	},
	Hash: func(a Value) (uint64, error) {
		if a.obj == nil {
			return hashUint64(0), nil
		}
		return hashUint64(a.obj.id), nil
	},
}

// RegisterBuiltins registers the scalar types, Arcadia.Type and the root
// object type Arcadia.Object, and binds every value kind to its type.
func RegisterBuiltins(r *Registry) error {
	for _, b := range scalarBuiltins {
		ops := numericOperations
		switch b.kind {
		case KindVoid:
			ops = voidOperations
		case KindBoolean:
			ops = booleanOperations
		}
		t, err := r.RegisterScalarType(TypeSpec{Name: b.name, Operations: ops}, b.size)
		if err != nil {
			return err
		}
		if err := r.BindKind(b.kind, t); err != nil {
			return err
		}
	}
	t, err := r.RegisterInternalType(TypeSpec{Name: NameType, Operations: typeOperations})
	if err != nil {
		return err
	}
	if err := r.BindKind(KindType, t); err != nil {
		return err
	}
	_, err = r.RegisterObjectType(TypeSpec{Name: NameObject, Operations: objectOperations}, 0, nil, 0, nil)
	return err
}
