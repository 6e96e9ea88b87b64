// Package num parses and bounds-checks numeric text for the runtime's
// numeric codec.
package num

import (
	"math"
	"strconv"
)

var zeroDigits = []byte{'0'}

// Int is an integer held as a sign and its decimal digits.
type Int struct {
	Sign   int8
	Digits []byte
}

// ParseInt parses an optionally signed run of decimal digits.
func ParseInt(b []byte) (Int, *ParseError) {
	if len(b) == 0 {
		return Int{}, &ParseError{Kind: ParseEmpty}
	}
	sign := int8(1)
	i := 0
	switch b[0] {
	case '+':
		i++
	case '-':
		sign = -1
		i++
	}
	if i >= len(b) {
		return Int{}, &ParseError{Kind: ParseNoDigits, Offset: i}
	}
	first := -1
	for j := i; j < len(b); j++ {
		switch c := b[j]; {
		case !isDigit(c):
			return Int{}, &ParseError{Kind: ParseBadChar, Offset: j}
		case c != '0' && first < 0:
			first = j
		}
	}
	if first < 0 {
		return Int{Sign: 0, Digits: zeroDigits}, nil
	}
	return Int{Sign: sign, Digits: b[first:]}, nil
}

// FromInt64 converts v.
func FromInt64(v int64) Int {
	switch {
	case v == 0:
		return Int{Sign: 0, Digits: zeroDigits}
	case v < 0:
		// The magnitude of MinInt64 only fits an unsigned integer.
		return Int{Sign: -1, Digits: strconv.AppendUint(nil, uint64(-(v+1))+1, 10)}
	default:
		return Int{Sign: 1, Digits: strconv.AppendInt(nil, v, 10)}
	}
}

// FromUint64 converts v.
func FromUint64(v uint64) Int {
	if v == 0 {
		return Int{Sign: 0, Digits: zeroDigits}
	}
	return Int{Sign: 1, Digits: strconv.AppendUint(nil, v, 10)}
}

// Int64 returns a as an int64 and whether it fits.
func (a Int) Int64() (int64, bool) {
	mag, ok := a.magnitude()
	switch {
	case !ok:
		return 0, false
	case a.Sign < 0:
		if mag > 1<<63 {
			return 0, false
		}
		return int64(-mag), true
	case mag > math.MaxInt64:
		return 0, false
	default:
		return int64(mag), true
	}
}

// Uint64 returns a as a uint64 and whether it fits.
func (a Int) Uint64() (uint64, bool) {
	if a.Sign < 0 {
		return 0, false
	}
	return a.magnitude()
}

func (a Int) magnitude() (uint64, bool) {
	if len(a.Digits) > len(MaxUint64.Digits) {
		return 0, false
	}
	var v uint64
	for _, c := range a.Digits {
		d := uint64(c - '0')
		if v > (math.MaxUint64-d)/10 {
			return 0, false
		}
		v = v*10 + d
	}
	return v, true
}

// Compare compares two Int values.
func (a Int) Compare(b Int) int {
	if a.Sign == 0 && b.Sign == 0 {
		return 0
	}
	if a.Sign != b.Sign {
		if a.Sign < b.Sign {
			return -1
		}
		return 1
	}
	cmp := compareDigits(a.Digits, b.Digits)
	if a.Sign < 0 {
		return -cmp
	}
	return cmp
}

// Within reports whether lo <= a <= hi.
func (a Int) Within(lo, hi Int) bool {
	return a.Compare(lo) >= 0 && a.Compare(hi) <= 0
}

// RenderCanonical appends the canonical lexical form to dst.
func (a Int) RenderCanonical(dst []byte) []byte {
	if a.Sign == 0 {
		return append(dst, '0')
	}
	if a.Sign < 0 {
		dst = append(dst, '-')
	}
	return append(dst, a.Digits...)
}

func compareDigits(a, b []byte) int {
	if len(a) != len(b) {
		if len(a) < len(b) {
			return -1
		}
		return 1
	}
	for i := 0; i < len(a); i++ {
		if a[i] == b[i] {
			continue
		}
		if a[i] < b[i] {
			return -1
		}
		return 1
	}
	return 0
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
