package types

import (
	"math"
	"math/big"
	"math/bits"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/names"
)

type numClass uint8

const (
	numNone numClass = iota
	numSigned
	numUnsigned
	numReal
)

func classify(k Kind) (numClass, int) {
	switch k {
	case KindInteger8:
		return numSigned, 8
	case KindInteger16:
		return numSigned, 16
	case KindInteger32:
		return numSigned, 32
	case KindInteger64:
		return numSigned, 64
	case KindNatural8:
		return numUnsigned, 8
	case KindNatural16:
		return numUnsigned, 16
	case KindNatural32:
		return numUnsigned, 32
	case KindNatural64:
		return numUnsigned, 64
	case KindSize:
		return numUnsigned, bits.UintSize
	case KindReal32:
		return numReal, 32
	case KindReal64:
		return numReal, 64
	default:
		return numNone, 0
	}
}

// IsNumeric reports whether k is an integer, natural, size or real kind.
func IsNumeric(k Kind) bool {
	c, _ := classify(k)
	return c != numNone
}

func signedKind(width int) Kind {
	switch width {
	case 8:
		return KindInteger8
	case 16:
		return KindInteger16
	case 32:
		return KindInteger32
	default:
		return KindInteger64
	}
}

func wider(a, b Kind) Kind {
	_, wa := classify(a)
	_, wb := classify(b)
	switch {
	case wa > wb:
		return a
	case wb > wa:
		return b
	case b == KindSize:
		return b
	default:
		return a
	}
}

// widen returns the kind able to represent the ranges of both a and b.
// When flexible is set the result is Integer64 if the value fits and the
// unsigned operand's kind otherwise.
func widen(a, b Kind) (k Kind, flexible bool, err error) {
	ca, wa := classify(a)
	cb, wb := classify(b)
	switch {
	case ca == numNone || cb == numNone:
		return 0, false, rterrors.Newf(rterrors.StatusArgumentTypeInvalid, "widen", "%s and %s are not both numeric", a, b)
	case ca == numReal || cb == numReal:
		if a == KindReal32 && b == KindReal32 {
			return KindReal32, false, nil
		}
		return KindReal64, false, nil
	case ca == cb:
		return wider(a, b), false, nil
	}
	signed, unsigned, ws, wu := a, b, wa, wb
	if ca == numUnsigned {
		signed, unsigned, ws, wu = b, a, wb, wa
	}
	switch {
	case ws > wu:
		return signed, false, nil
	case 2*wu <= 64:
		return signedKind(2 * wu), false, nil
	default:
		return unsigned, true, nil
	}
}

func toBigInt(v Value) *big.Int {
	c, _ := classify(v.kind)
	if c == numSigned {
		return new(big.Int).SetInt64(signedBits(v))
	}
	return new(big.Int).SetUint64(v.bits)
}

func signedBits(v Value) int64 {
	switch v.kind {
	case KindInteger8:
		return int64(v.Integer8())
	case KindInteger16:
		return int64(v.Integer16())
	case KindInteger32:
		return int64(v.Integer32())
	default:
		return v.Integer64()
	}
}

func toFloat64(v Value) float64 {
	switch c, _ := classify(v.kind); c {
	case numSigned:
		return float64(signedBits(v))
	case numUnsigned:
		return float64(v.bits)
	}
	if v.kind == KindReal32 {
		return float64(v.Real32())
	}
	return v.Real64()
}

func integerRange(k Kind) (lo, hi *big.Int) {
	c, w := classify(k)
	if c == numSigned {
		lo = new(big.Int).Lsh(big.NewInt(-1), uint(w-1))
		hi = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(w-1)), big.NewInt(1))
		return lo, hi
	}
	return new(big.Int), new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), uint(w)), big.NewInt(1))
}

func fits(x *big.Int, k Kind) bool {
	lo, hi := integerRange(k)
	return x.Cmp(lo) >= 0 && x.Cmp(hi) <= 0
}

// narrow converts x to kind k, failing when it is out of range.
func narrow(op string, x *big.Int, k Kind) (Value, error) {
	if !fits(x, k) {
		return Value{}, rterrors.Newf(rterrors.StatusNumericOverflow, op, "%s does not fit %s", x, k)
	}
	c, _ := classify(k)
	if c == numSigned {
		return Value{kind: k, bits: uint64(x.Int64())}, nil
	}
	return Value{kind: k, bits: x.Uint64()}, nil
}

type arithOp uint8

const (
	opAdd arithOp = iota
	opSubtract
	opMultiply
	opDivide
)

func (o arithOp) String() string {
	switch o {
	case opAdd:
		return "add"
	case opSubtract:
		return "subtract"
	case opMultiply:
		return "multiply"
	default:
		return "divide"
	}
}

func arithmetic(o arithOp, a, b Value) (Value, error) {
	op := o.String()
	k, flexible, err := widen(a.kind, b.kind)
	if err != nil {
		return Value{}, rterrors.Wrap(rterrors.StatusArgumentTypeInvalid, op, err)
	}
	if c, _ := classify(k); c == numReal {
		return realArithmetic(o, k, toFloat64(a), toFloat64(b)), nil
	}

	x, y := toBigInt(a), toBigInt(b)
	z := new(big.Int)
	switch o {
	case opAdd:
		z.Add(x, y)
	case opSubtract:
		z.Sub(x, y)
	case opMultiply:
		z.Mul(x, y)
	case opDivide:
		if y.Sign() == 0 {
			return Value{}, rterrors.New(rterrors.StatusDivisionByZero, op, "integer division by zero")
		}
		z.Quo(x, y)
	}
	if flexible && fits(z, KindInteger64) {
		k = KindInteger64
	}
	return narrow(op, z, k)
}

func realArithmetic(o arithOp, k Kind, x, y float64) Value {
	if k == KindReal32 {
		a, b := float32(x), float32(y)
		switch o {
		case opAdd:
			return Real32Value(a + b)
		case opSubtract:
			return Real32Value(a - b)
		case opMultiply:
			return Real32Value(a * b)
		default:
			return Real32Value(a / b)
		}
	}
	switch o {
	case opAdd:
		return Real64Value(x + y)
	case opSubtract:
		return Real64Value(x - y)
	case opMultiply:
		return Real64Value(x * y)
	default:
		return Real64Value(x / y)
	}
}

// Add returns a+b in the kind that represents both operand ranges.
func Add(a, b Value) (Value, error) { return arithmetic(opAdd, a, b) }

// Subtract returns a-b in the kind that represents both operand ranges.
func Subtract(a, b Value) (Value, error) { return arithmetic(opSubtract, a, b) }

// Multiply returns a*b in the kind that represents both operand ranges.
func Multiply(a, b Value) (Value, error) { return arithmetic(opMultiply, a, b) }

// Divide returns a/b. Integer division truncates toward zero and fails on a
// zero divisor; real division follows IEEE 754.
func Divide(a, b Value) (Value, error) { return arithmetic(opDivide, a, b) }

// Negate returns -a. Naturals negate into the signed kind twice as wide,
// capped at Integer64.
func Negate(a Value) (Value, error) {
	c, w := classify(a.kind)
	switch c {
	case numReal:
		if a.kind == KindReal32 {
			return Real32Value(-a.Real32()), nil
		}
		return Real64Value(-a.Real64()), nil
	case numSigned:
		return narrow("negate", new(big.Int).Neg(toBigInt(a)), a.kind)
	case numUnsigned:
		return narrow("negate", new(big.Int).Neg(toBigInt(a)), signedKind(min(2*w, 64)))
	default:
		return Value{}, rterrors.Newf(rterrors.StatusArgumentTypeInvalid, "negate", "%s is not numeric", a.kind)
	}
}

// toBigFloat converts a finite numeric value exactly.
func toBigFloat(v Value) *big.Float {
	if c, _ := classify(v.kind); c == numReal {
		return new(big.Float).SetFloat64(toFloat64(v))
	}
	return new(big.Float).SetInt(toBigInt(v))
}

func isNaN(v Value) bool {
	c, _ := classify(v.kind)
	return c == numReal && math.IsNaN(toFloat64(v))
}

func isInf(v Value) int {
	if c, _ := classify(v.kind); c != numReal {
		return 0
	}
	f := toFloat64(v)
	switch {
	case math.IsInf(f, 1):
		return 1
	case math.IsInf(f, -1):
		return -1
	default:
		return 0
	}
}

// compareNumeric orders two numeric values of any kinds by mathematical value.
func compareNumeric(a, b Value) (int, error) {
	if !IsNumeric(a.kind) || !IsNumeric(b.kind) {
		return 0, rterrors.Newf(rterrors.StatusArgumentTypeInvalid, "compare", "%s and %s are not both numeric", a.kind, b.kind)
	}
	if isNaN(a) || isNaN(b) {
		return 0, rterrors.New(rterrors.StatusArgumentInvalid, "compare", "NaN is unordered")
	}
	ia, ib := isInf(a), isInf(b)
	if ia != 0 || ib != 0 {
		switch {
		case ia == ib:
			return 0, nil
		case ia < ib:
			return -1, nil
		default:
			return 1, nil
		}
	}
	ca, _ := classify(a.kind)
	cb, _ := classify(b.kind)
	if ca != numReal && cb != numReal {
		return toBigInt(a).Cmp(toBigInt(b)), nil
	}
	return toBigFloat(a).Cmp(toBigFloat(b)), nil
}

func equalNumeric(a, b Value) (bool, error) {
	if !IsNumeric(b.kind) {
		return false, nil
	}
	if isNaN(a) || isNaN(b) {
		return false, nil
	}
	c, err := compareNumeric(a, b)
	return c == 0, err
}

// hashNumeric hashes by mathematical value so that values equal across
// kinds hash alike.
func hashNumeric(a Value) (uint64, error) {
	if !IsNumeric(a.kind) {
		return 0, rterrors.Newf(rterrors.StatusArgumentTypeInvalid, "hash", "%s is not numeric", a.kind)
	}
	if c, _ := classify(a.kind); c == numReal {
		f := toFloat64(a)
		switch {
		case math.IsNaN(f):
			return hashUint64(0x7ff8000000000001), nil
		case math.IsInf(f, 0) || f != math.Trunc(f):
			return hashUint64(math.Float64bits(f)), nil
		}
		x, _ := new(big.Float).SetFloat64(f).Int(nil)
		return hashBigInt(x), nil
	}
	return hashBigInt(toBigInt(a)), nil
}

func hashBigInt(x *big.Int) uint64 {
	b := x.Bytes()
	if x.Sign() < 0 {
		b = append([]byte{'-'}, b...)
	}
	return names.HashBytes(b)
}

func hashUint64(x uint64) uint64 {
	var b [9]byte
	b[0] = 'f'
	for i := range 8 {
		b[i+1] = byte(x >> (8 * i))
	}
	return names.HashBytes(b[:])
}
