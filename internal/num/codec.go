package num

import (
	"strconv"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
)

// Codec converts numeric text for the runtime. Malformed text fails with
// StatusConversionFailed, values outside the requested width with
// StatusNumericOverflow.
type Codec struct{}

// ParseInteger parses a signed integer of bitSize bits.
func (Codec) ParseInteger(text []byte, bitSize int) (int64, error) {
	const op = "parse integer"
	lo, hi, ok := SignedBounds(bitSize)
	if !ok {
		return 0, rterrors.Newf(rterrors.StatusArgumentInvalid, op, "unsupported bit size %d", bitSize)
	}
	v, perr := ParseInt(text)
	if perr != nil {
		return 0, conversionError(op, text, perr)
	}
	if !v.Within(lo, hi) {
		return 0, rterrors.Newf(rterrors.StatusNumericOverflow, op, "%q does not fit %d bits", text, bitSize)
	}
	x, _ := v.Int64()
	return x, nil
}

// ParseNatural parses an unsigned integer of bitSize bits.
func (Codec) ParseNatural(text []byte, bitSize int) (uint64, error) {
	const op = "parse natural"
	lo, hi, ok := UnsignedBounds(bitSize)
	if !ok {
		return 0, rterrors.Newf(rterrors.StatusArgumentInvalid, op, "unsupported bit size %d", bitSize)
	}
	v, perr := ParseInt(text)
	if perr != nil {
		return 0, conversionError(op, text, perr)
	}
	if !v.Within(lo, hi) {
		return 0, rterrors.Newf(rterrors.StatusNumericOverflow, op, "%q does not fit %d bits", text, bitSize)
	}
	x, _ := v.Uint64()
	return x, nil
}

// ParseReal parses a real of bitSize bits, 32 or 64.
func (Codec) ParseReal(text []byte, bitSize int) (float64, error) {
	const op = "parse real"
	if bitSize != 32 && bitSize != 64 {
		return 0, rterrors.Newf(rterrors.StatusArgumentInvalid, op, "unsupported bit size %d", bitSize)
	}
	f, _, perr := ParseFloat(text, bitSize)
	if perr != nil {
		return 0, conversionError(op, text, perr)
	}
	return f, nil
}

func conversionError(op string, text []byte, perr *ParseError) error {
	return &rterrors.Error{
		Status:  rterrors.StatusConversionFailed,
		Op:      op,
		Message: strconv.Quote(string(text)),
		Err:     perr,
	}
}
