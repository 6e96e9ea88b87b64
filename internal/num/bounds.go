package num

import "math"

// Bounds of the fixed-width integer kinds.
var (
	MinInt8  = FromInt64(math.MinInt8)
	MaxInt8  = FromInt64(math.MaxInt8)
	MinInt16 = FromInt64(math.MinInt16)
	MaxInt16 = FromInt64(math.MaxInt16)
	MinInt32 = FromInt64(math.MinInt32)
	MaxInt32 = FromInt64(math.MaxInt32)
	MinInt64 = FromInt64(math.MinInt64)
	MaxInt64 = FromInt64(math.MaxInt64)

	MaxUint8  = FromUint64(math.MaxUint8)
	MaxUint16 = FromUint64(math.MaxUint16)
	MaxUint32 = FromUint64(math.MaxUint32)
	MaxUint64 = FromUint64(math.MaxUint64)

	zero = FromUint64(0)
)

// SignedBounds returns the range of a signed integer of bitSize bits.
func SignedBounds(bitSize int) (lo, hi Int, ok bool) {
	switch bitSize {
	case 8:
		return MinInt8, MaxInt8, true
	case 16:
		return MinInt16, MaxInt16, true
	case 32:
		return MinInt32, MaxInt32, true
	case 64:
		return MinInt64, MaxInt64, true
	default:
		return Int{}, Int{}, false
	}
}

// UnsignedBounds returns the range of an unsigned integer of bitSize bits.
func UnsignedBounds(bitSize int) (lo, hi Int, ok bool) {
	switch bitSize {
	case 8:
		return zero, MaxUint8, true
	case 16:
		return zero, MaxUint16, true
	case 32:
		return zero, MaxUint32, true
	case 64:
		return zero, MaxUint64, true
	default:
		return Int{}, Int{}, false
	}
}
