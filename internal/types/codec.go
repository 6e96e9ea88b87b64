package types

import (
	"strconv"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
)

// NumericCodec converts numeric text. It is the narrow interface the
// runtime uses to reach the numeric conversion library; implementations
// report malformed text with StatusConversionFailed and out of range values
// with StatusNumericOverflow.
type NumericCodec interface {
	ParseInteger(text []byte, bitSize int) (int64, error)
	ParseNatural(text []byte, bitSize int) (uint64, error)
	ParseReal(text []byte, bitSize int) (float64, error)
}

// ParseValue converts text into a value of kind k.
func ParseValue(codec NumericCodec, k Kind, text []byte) (Value, error) {
	switch k {
	case KindVoid:
		if len(text) != 0 {
			return Value{}, rterrors.Newf(rterrors.StatusConversionFailed, "parse value", "void takes no text, got %q", text)
		}
		return Value{}, nil
	case KindBoolean:
		switch string(text) {
		case "true":
			return BooleanValue(true), nil
		case "false":
			return BooleanValue(false), nil
		}
		return Value{}, rterrors.Newf(rterrors.StatusConversionFailed, "parse value", "%q is not a boolean", text)
	case KindType, KindObject:
		return Value{}, rterrors.Newf(rterrors.StatusArgumentInvalid, "parse value", "%s values have no text form", k)
	}
	if codec == nil {
		return Value{}, rterrors.New(rterrors.StatusArgumentInvalid, "parse value", "nil numeric codec")
	}
	c, w := classify(k)
	switch c {
	case numSigned:
		x, err := codec.ParseInteger(text, w)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: k, bits: uint64(x)}, nil
	case numUnsigned:
		x, err := codec.ParseNatural(text, w)
		if err != nil {
			return Value{}, err
		}
		return Value{kind: k, bits: x}, nil
	case numReal:
		x, err := codec.ParseReal(text, w)
		if err != nil {
			return Value{}, err
		}
		if k == KindReal32 {
			return Real32Value(float32(x)), nil
		}
		return Real64Value(x), nil
	}
	return Value{}, rterrors.Newf(rterrors.StatusArgumentInvalid, "parse value", "unknown kind %s", k)
}

// String renders v for diagnostics.
func (v Value) String() string {
	switch c, _ := classify(v.kind); c {
	case numSigned:
		return strconv.FormatInt(signedBits(v), 10)
	case numUnsigned:
		return strconv.FormatUint(v.bits, 10)
	case numReal:
		if v.kind == KindReal32 {
			return strconv.FormatFloat(float64(v.Real32()), 'g', -1, 32)
		}
		return strconv.FormatFloat(v.Real64(), 'g', -1, 64)
	}
	switch v.kind {
	case KindVoid:
		return "void"
	case KindBoolean:
		return strconv.FormatBool(v.Boolean())
	case KindType:
		return "type " + v.typ.String()
	case KindObject:
		return "object " + v.obj.String()
	default:
		return "value(" + v.kind.String() + ")"
	}
}
