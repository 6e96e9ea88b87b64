package state

import (
	"errors"
	"testing"
)

func TestStackPushPop(t *testing.T) {
	s := NewStack[int](0, 0)
	for i := range 20 {
		if err := s.Push(i); err != nil {
			t.Fatalf("Push(%d) error = %v", i, err)
		}
	}
	if s.Len() != 20 {
		t.Fatalf("Len() = %d, want 20", s.Len())
	}
	top, ok := s.Peek(0)
	if !ok || top != 19 {
		t.Fatalf("Peek(0) = %d, %v; want 19, true", top, ok)
	}
	below, ok := s.Peek(3)
	if !ok || below != 16 {
		t.Fatalf("Peek(3) = %d, %v; want 16, true", below, ok)
	}
	if _, ok := s.Peek(20); ok {
		t.Fatalf("Peek(20) ok = true")
	}
	v, ok := s.Pop()
	if !ok || v != 19 {
		t.Fatalf("Pop() = %d, %v; want 19, true", v, ok)
	}
}

func TestStackPopCount(t *testing.T) {
	s := NewStack[string](4, 0)
	for _, v := range []string{"a", "b", "c", "d"} {
		if err := s.Push(v); err != nil {
			t.Fatalf("Push(%q) error = %v", v, err)
		}
	}
	if err := s.PopCount(3); err != nil {
		t.Fatalf("PopCount(3) error = %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", s.Len())
	}
	err := s.PopCount(2)
	var popErr ErrPopCount
	if !errors.As(err, &popErr) {
		t.Fatalf("PopCount(2) error = %v, want ErrPopCount", err)
	}
	if popErr.Count != 2 || popErr.Len != 1 {
		t.Fatalf("ErrPopCount = %+v", popErr)
	}
	if s.Len() != 1 {
		t.Fatalf("failed PopCount changed depth to %d", s.Len())
	}
	if err := s.PopCount(-1); err == nil {
		t.Fatalf("PopCount(-1) error = nil")
	}
}

func TestStackMaxDepth(t *testing.T) {
	s := NewStack[int](0, 3)
	for i := range 3 {
		if err := s.Push(i); err != nil {
			t.Fatalf("Push(%d) error = %v", i, err)
		}
	}
	var capErr ErrCapacity
	if err := s.Push(3); !errors.As(err, &capErr) {
		t.Fatalf("Push beyond max error = %v, want ErrCapacity", err)
	}
	if s.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", s.Len())
	}
}

func TestStackGrowthIsGeometric(t *testing.T) {
	s := NewStack[int](0, 0)
	grows := 0
	last := s.Cap()
	for i := range 10000 {
		if err := s.Push(i); err != nil {
			t.Fatalf("Push(%d) error = %v", i, err)
		}
		if s.Cap() != last {
			grows++
			last = s.Cap()
		}
	}
	if grows > 12 {
		t.Fatalf("stack grew %d times for 10000 pushes", grows)
	}
}

func TestStackResetAndTruncate(t *testing.T) {
	s := NewStack[int](2, 0)
	for i := range 4 {
		_ = s.Push(i)
	}
	s.Truncate(6)
	if s.Len() != 4 {
		t.Fatalf("Truncate(6) len=%d, want 4", s.Len())
	}
	s.Truncate(1)
	if s.Len() != 1 || s.Items()[0] != 0 {
		t.Fatalf("Truncate(1) = %v, want [0]", s.Items())
	}
	if tail := s.Items()[:4]; tail[1] != 0 || tail[3] != 0 {
		t.Fatalf("Truncate left popped values in storage: %v", tail)
	}
	c := s.Cap()
	s.Reset()
	if s.Len() != 0 || s.Cap() != c {
		t.Fatalf("Reset: len=%d cap=%d, want 0, %d", s.Len(), s.Cap(), c)
	}
	var nilStack *Stack[int]
	if nilStack.Len() != 0 || nilStack.Cap() != 0 {
		t.Fatalf("nil stack reports depth")
	}
}

func TestNextCapacity(t *testing.T) {
	tests := []struct {
		name     string
		old      int
		required int
		max      int
		want     int
		wantErr  bool
	}{
		{name: "fits", old: 16, required: 10, want: 16},
		{name: "minimum", old: 0, required: 1, want: MinCapacity},
		{name: "double", old: 8, required: 9, want: 16},
		{name: "double repeatedly", old: 8, required: 100, want: 128},
		{name: "clamped", old: 8, required: 10, max: 12, want: 12},
		{name: "over max", old: 8, required: 13, max: 12, wantErr: true},
		{name: "negative", old: 8, required: -1, wantErr: true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextCapacity(tc.old, tc.required, tc.max)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("NextCapacity(%d, %d, %d) = %d, want %d", tc.old, tc.required, tc.max, got, tc.want)
			}
		})
	}
}
