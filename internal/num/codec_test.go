package num

import (
	"errors"
	"math"
	"testing"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
)

func TestCodecParseInteger(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		bits   int
		want   int64
		status rterrors.Status
	}{
		{name: "int8 min", input: "-128", bits: 8, want: -128},
		{name: "int8 max", input: "+127", bits: 8, want: 127},
		{name: "int8 overflow", input: "128", bits: 8, status: rterrors.StatusNumericOverflow},
		{name: "int64 min", input: "-9223372036854775808", bits: 64, want: math.MinInt64},
		{name: "int64 overflow", input: "9223372036854775808", bits: 64, status: rterrors.StatusNumericOverflow},
		{name: "leading zeros", input: "-0007", bits: 16, want: -7},
		{name: "bad char", input: "1x", bits: 32, status: rterrors.StatusConversionFailed},
		{name: "empty", input: "", bits: 32, status: rterrors.StatusConversionFailed},
		{name: "bad width", input: "1", bits: 12, status: rterrors.StatusArgumentInvalid},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Codec{}.ParseInteger([]byte(tc.input), tc.bits)
			if tc.status != rterrors.StatusSuccess {
				if !errors.Is(err, tc.status) {
					t.Fatalf("error = %v, want %s", err, tc.status)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("value = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCodecParseNatural(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		bits   int
		want   uint64
		status rterrors.Status
	}{
		{name: "zero", input: "-0", bits: 8, want: 0},
		{name: "uint16 max", input: "65535", bits: 16, want: 65535},
		{name: "uint16 overflow", input: "65536", bits: 16, status: rterrors.StatusNumericOverflow},
		{name: "negative", input: "-1", bits: 32, status: rterrors.StatusNumericOverflow},
		{name: "uint64 max", input: "18446744073709551615", bits: 64, want: math.MaxUint64},
		{name: "sign only", input: "+", bits: 64, status: rterrors.StatusConversionFailed},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Codec{}.ParseNatural([]byte(tc.input), tc.bits)
			if tc.status != rterrors.StatusSuccess {
				if !errors.Is(err, tc.status) {
					t.Fatalf("error = %v, want %s", err, tc.status)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("value = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestCodecParseReal(t *testing.T) {
	got, err := Codec{}.ParseReal([]byte("0.5"), 32)
	if err != nil || got != 0.5 {
		t.Fatalf("ParseReal(0.5) = %v, %v", got, err)
	}
	_, err = Codec{}.ParseReal([]byte("abc"), 64)
	if !errors.Is(err, rterrors.StatusConversionFailed) {
		t.Fatalf("ParseReal(abc) error = %v", err)
	}
	var perr *ParseError
	if !errors.As(err, &perr) || perr.Kind != ParseBadChar {
		t.Fatalf("ParseReal(abc) cause = %v", err)
	}
	if _, err := (Codec{}).ParseReal([]byte("1"), 16); !errors.Is(err, rterrors.StatusArgumentInvalid) {
		t.Fatalf("ParseReal(16 bits) error = %v", err)
	}
}
