package num

import (
	"bytes"
	"errors"
	"math"
	"strconv"
	"unsafe"
)

// FloatClass identifies the class of a parsed real.
type FloatClass uint8

const (
	FloatFinite FloatClass = iota
	FloatPosInf
	FloatNegInf
	FloatNaN
)

// ParseFloat parses a real for the requested bit size. Besides decimal and
// exponent notation it accepts INF, -INF and NaN. Values beyond the range
// of the bit size become infinities.
func ParseFloat(b []byte, bits int) (float64, FloatClass, *ParseError) {
	if len(b) == 0 {
		return 0, FloatFinite, &ParseError{Kind: ParseEmpty}
	}
	switch {
	case bytes.Equal(b, []byte("INF")):
		return math.Inf(1), FloatPosInf, nil
	case bytes.Equal(b, []byte("-INF")):
		return math.Inf(-1), FloatNegInf, nil
	case bytes.Equal(b, []byte("NaN")):
		return math.NaN(), FloatNaN, nil
	}
	if at, ok := floatLexical(b); !ok {
		return 0, FloatFinite, &ParseError{Kind: ParseBadChar, Offset: at}
	}
	lexical := unsafe.String(unsafe.SliceData(b), len(b))
	f, err := strconv.ParseFloat(lexical, bits)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			class := FloatFinite
			if math.IsInf(f, 1) {
				class = FloatPosInf
			} else if math.IsInf(f, -1) {
				class = FloatNegInf
			}
			return f, class, nil
		}
		return 0, FloatFinite, &ParseError{Kind: ParseBadChar}
	}
	return f, FloatFinite, nil
}

// floatLexical reports whether value is a decimal real and, if not, the
// offset where scanning stopped.
func floatLexical(value []byte) (int, bool) {
	if len(value) == 0 {
		return 0, false
	}
	i := 0
	if value[i] == '+' || value[i] == '-' {
		i++
		if i == len(value) {
			return i, false
		}
	}
	startDigits := 0
	for i < len(value) && isDigit(value[i]) {
		i++
		startDigits++
	}
	if i < len(value) && value[i] == '.' {
		i++
		fracDigits := 0
		for i < len(value) && isDigit(value[i]) {
			i++
			fracDigits++
		}
		if startDigits == 0 && fracDigits == 0 {
			return i, false
		}
	} else if startDigits == 0 {
		return i, false
	}
	if i < len(value) && (value[i] == 'e' || value[i] == 'E') {
		i++
		if i == len(value) {
			return i, false
		}
		if value[i] == '+' || value[i] == '-' {
			i++
			if i == len(value) {
				return i, false
			}
		}
		expDigits := 0
		for i < len(value) && isDigit(value[i]) {
			i++
			expDigits++
		}
		if expDigits == 0 {
			return i, false
		}
	}
	return i, i == len(value)
}
