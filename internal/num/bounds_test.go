package num

import (
	"math"
	"testing"
)

func TestBoundsRender(t *testing.T) {
	tests := []struct {
		name string
		v    Int
		want string
	}{
		{name: "int8 min", v: MinInt8, want: "-128"},
		{name: "int32 max", v: MaxInt32, want: "2147483647"},
		{name: "int64 min", v: MinInt64, want: "-9223372036854775808"},
		{name: "uint64 max", v: MaxUint64, want: "18446744073709551615"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := string(tc.v.RenderCanonical(nil)); got != tc.want {
				t.Fatalf("render = %q, want %q", got, tc.want)
			}
		})
	}
}

func TestIntToMachineWords(t *testing.T) {
	tests := []struct {
		input string
		i64   int64
		i64OK bool
		u64   uint64
		u64OK bool
	}{
		{input: "0", i64OK: true, u64OK: true},
		{input: "-9223372036854775808", i64: math.MinInt64, i64OK: true},
		{input: "-9223372036854775809"},
		{input: "9223372036854775807", i64: math.MaxInt64, i64OK: true, u64: math.MaxInt64, u64OK: true},
		{input: "9223372036854775808", u64: 1 << 63, u64OK: true},
		{input: "18446744073709551615", u64: math.MaxUint64, u64OK: true},
		{input: "18446744073709551616"},
		{input: "100000000000000000000"},
	}
	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			v, perr := ParseInt([]byte(tc.input))
			if perr != nil {
				t.Fatalf("ParseInt() error = %v", perr)
			}
			if got, ok := v.Int64(); ok != tc.i64OK || got != tc.i64 {
				t.Fatalf("Int64() = %d, %v; want %d, %v", got, ok, tc.i64, tc.i64OK)
			}
			if got, ok := v.Uint64(); ok != tc.u64OK || got != tc.u64 {
				t.Fatalf("Uint64() = %d, %v; want %d, %v", got, ok, tc.u64, tc.u64OK)
			}
		})
	}
}

func TestParseErrorOffset(t *testing.T) {
	tests := []struct {
		input string
		real  bool
		want  string
	}{
		{input: "12a4", want: "bad character at offset 2"},
		{input: "-", want: "no digits at offset 1"},
		{input: "", want: "empty"},
		{input: "1.5x", real: true, want: "bad character at offset 3"},
		{input: "2e", real: true, want: "bad character at offset 2"},
	}
	for _, tc := range tests {
		var perr *ParseError
		if tc.real {
			_, _, perr = ParseFloat([]byte(tc.input), 64)
		} else {
			_, perr = ParseInt([]byte(tc.input))
		}
		if perr == nil {
			t.Fatalf("parse %q succeeded", tc.input)
		}
		if got := perr.Error(); got != tc.want {
			t.Fatalf("parse %q error = %q, want %q", tc.input, got, tc.want)
		}
	}
}
