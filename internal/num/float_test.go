package num

import (
	"math"
	"testing"
)

func TestParseFloat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		bits    int
		class   FloatClass
		want    float64
		wantErr bool
		errKind ParseErrKind
	}{
		{name: "inf", input: "INF", bits: 64, class: FloatPosInf},
		{name: "neg inf", input: "-INF", bits: 32, class: FloatNegInf},
		{name: "nan", input: "NaN", bits: 64, class: FloatNaN},
		{name: "finite", input: "1.25", bits: 64, class: FloatFinite, want: 1.25},
		{name: "exponent", input: "-2.5e3", bits: 32, class: FloatFinite, want: -2500},
		{name: "out of range", input: "1e39", bits: 32, class: FloatPosInf},
		{name: "empty", input: "", wantErr: true, errKind: ParseEmpty},
		{name: "plus inf invalid", input: "+INF", wantErr: true, errKind: ParseBadChar},
		{name: "bad char", input: "1e", wantErr: true, errKind: ParseBadChar},
		{name: "dot only", input: ".", wantErr: true, errKind: ParseBadChar},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bits := tc.bits
			if bits == 0 {
				bits = 64
			}
			val, class, err := ParseFloat([]byte(tc.input), bits)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				if err.Kind != tc.errKind {
					t.Fatalf("error kind = %v, want %v", err.Kind, tc.errKind)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if class != tc.class {
				t.Fatalf("class = %v, want %v", class, tc.class)
			}
			switch class {
			case FloatNaN:
				if !math.IsNaN(val) {
					t.Fatalf("expected NaN")
				}
			case FloatPosInf:
				if !math.IsInf(val, 1) {
					t.Fatalf("expected +Inf")
				}
			case FloatNegInf:
				if !math.IsInf(val, -1) {
					t.Fatalf("expected -Inf")
				}
			default:
				if val != tc.want {
					t.Fatalf("value = %v, want %v", val, tc.want)
				}
			}
		})
	}
}
