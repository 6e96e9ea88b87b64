package types

import (
	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
)

// Equal reports whether a equals b according to a's type. A type without
// an equality entry reports not equal.
func (r *Registry) Equal(a, b Value) (bool, error) {
	t, err := r.TypeOf(a)
	if err != nil {
		return false, err
	}
	if t.ops.Equal == nil {
		return false, nil
	}
	return t.ops.Equal(a, b)
}

// NotEqual is the negation of Equal.
func (r *Registry) NotEqual(a, b Value) (bool, error) {
	eq, err := r.Equal(a, b)
	return !eq, err
}

// Compare orders a against b according to a's type.
func (r *Registry) Compare(a, b Value) (int, error) {
	t, err := r.TypeOf(a)
	if err != nil {
		return 0, err
	}
	if t.ops.Compare == nil {
		return 0, rterrors.Newf(rterrors.StatusArgumentTypeInvalid, "compare", "%s is not ordered", t)
	}
	return t.ops.Compare(a, b)
}

// Less reports a < b.
func (r *Registry) Less(a, b Value) (bool, error) {
	c, err := r.Compare(a, b)
	return c < 0, err
}

// LessOrEqual reports a <= b.
func (r *Registry) LessOrEqual(a, b Value) (bool, error) {
	c, err := r.Compare(a, b)
	return c <= 0 && err == nil, err
}

// Greater reports a > b.
func (r *Registry) Greater(a, b Value) (bool, error) {
	c, err := r.Compare(a, b)
	return c > 0, err
}

// GreaterOrEqual reports a >= b.
func (r *Registry) GreaterOrEqual(a, b Value) (bool, error) {
	c, err := r.Compare(a, b)
	return c >= 0 && err == nil, err
}

// Hash returns the hash of a according to its type.
func (r *Registry) Hash(a Value) (uint64, error) {
	t, err := r.TypeOf(a)
	if err != nil {
		return 0, err
	}
	if t.ops.Hash == nil {
		return 0, rterrors.Newf(rterrors.StatusArgumentTypeInvalid, "hash", "%s is not hashable", t)
	}
	return t.ops.Hash(a)
}

// Add returns a+b through a's operation table.
func (r *Registry) Add(a, b Value) (Value, error) {
	return r.binary("add", a, b, func(o Operations) func(a, b Value) (Value, error) { return o.Add })
}

// Subtract returns a-b through a's operation table.
func (r *Registry) Subtract(a, b Value) (Value, error) {
	return r.binary("subtract", a, b, func(o Operations) func(a, b Value) (Value, error) { return o.Subtract })
}

// Multiply returns a*b through a's operation table.
func (r *Registry) Multiply(a, b Value) (Value, error) {
	return r.binary("multiply", a, b, func(o Operations) func(a, b Value) (Value, error) { return o.Multiply })
}

// Divide returns a/b through a's operation table.
func (r *Registry) Divide(a, b Value) (Value, error) {
	return r.binary("divide", a, b, func(o Operations) func(a, b Value) (Value, error) { return o.Divide })
}

// Negate returns -a through a's operation table.
func (r *Registry) Negate(a Value) (Value, error) {
	t, err := r.TypeOf(a)
	if err != nil {
		return Value{}, err
	}
	if t.ops.Negate == nil {
		return Value{}, rterrors.Newf(rterrors.StatusArgumentTypeInvalid, "negate", "%s has no negation", t)
	}
	return t.ops.Negate(a)
}

func (r *Registry) binary(op string, a, b Value, pick func(Operations) func(a, b Value) (Value, error)) (Value, error) {
	t, err := r.TypeOf(a)
	if err != nil {
		return Value{}, err
	}
	fn := pick(t.ops)
	if fn == nil {
		return Value{}, rterrors.Newf(rterrors.StatusArgumentTypeInvalid, op, "%s has no %s operation", t, op)
	}
	return fn(a, b)
}
