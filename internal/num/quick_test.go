package num

import (
	"bytes"
	"math"
	"testing"
	"testing/quick"
)

func TestQuickIntRoundTrip(t *testing.T) {
	cfg := &quick.Config{MaxCount: 1000}
	err := quick.Check(func(v int64) bool {
		if v == math.MinInt64 {
			return true
		}
		got, err := ParseInt(FromInt64(v).RenderCanonical(nil))
		if err != nil {
			return false
		}
		want := FromInt64(v)
		return got.Sign == want.Sign && bytes.Equal(got.Digits, want.Digits)
	}, cfg)
	if err != nil {
		t.Fatal(err)
	}
}

func TestQuickIntCompare(t *testing.T) {
	cfg := &quick.Config{MaxCount: 1000}
	err := quick.Check(func(a, b int64) bool {
		if a == math.MinInt64 || b == math.MinInt64 {
			return true
		}
		got := FromInt64(a).Compare(FromInt64(b))
		want := cmpInt64(a, b)
		return got == want
	}, cfg)
	if err != nil {
		t.Fatal(err)
	}
}

func TestQuickCodecNatural(t *testing.T) {
	cfg := &quick.Config{MaxCount: 1000}
	err := quick.Check(func(v uint64) bool {
		got, err := Codec{}.ParseNatural(FromUint64(v).RenderCanonical(nil), 64)
		return err == nil && got == v
	}, cfg)
	if err != nil {
		t.Fatal(err)
	}
}

func cmpInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
