package state

import "fmt"

// ErrPopCount reports a pop count larger than the stack depth.
type ErrPopCount struct {
	Count int
	Len   int
}

// Error returns the error string.
func (e ErrPopCount) Error() string {
	return fmt.Sprintf("pop %d exceeds stack depth %d", e.Count, e.Len)
}

// Stack is a reusable LIFO stack whose backing array grows geometrically
// and never beyond a maximum depth.
type Stack[T any] struct {
	items []T
	max   int
}

// NewStack creates a stack with an optional capacity hint and an optional
// maximum depth (0 means unbounded).
func NewStack[T any](capacity, maxDepth int) Stack[T] {
	s := Stack[T]{max: maxDepth}
	if capacity > 0 {
		s.items = make([]T, 0, capacity)
	}
	return s
}

// Push adds one value to the stack top.
func (s *Stack[T]) Push(value T) error {
	n := len(s.items)
	if n == cap(s.items) {
		next, err := NextCapacity(cap(s.items), n+1, s.max)
		if err != nil {
			return err
		}
		grown := make([]T, n, next)
		copy(grown, s.items)
		s.items = grown
	}
	s.items = append(s.items, value)
	return nil
}

// Pop removes and returns the top value.
func (s *Stack[T]) Pop() (T, bool) {
	var zero T
	if s == nil || len(s.items) == 0 {
		return zero, false
	}
	last := len(s.items) - 1
	value := s.items[last]
	s.items[last] = zero
	s.items = s.items[:last]
	return value, true
}

// PopCount removes the n topmost values.
func (s *Stack[T]) PopCount(n int) error {
	if n < 0 || n > s.Len() {
		return ErrPopCount{Count: n, Len: s.Len()}
	}
	var zero T
	keep := len(s.items) - n
	for i := keep; i < len(s.items); i++ {
		s.items[i] = zero
	}
	s.items = s.items[:keep]
	return nil
}

// Peek returns the value i slots below the top without removing it.
func (s *Stack[T]) Peek(i int) (T, bool) {
	var zero T
	if s == nil || i < 0 || i >= len(s.items) {
		return zero, false
	}
	return s.items[len(s.items)-1-i], true
}

// Len reports the current stack depth.
func (s *Stack[T]) Len() int {
	if s == nil {
		return 0
	}
	return len(s.items)
}

// Cap reports the underlying slice capacity.
func (s *Stack[T]) Cap() int {
	if s == nil {
		return 0
	}
	return cap(s.items)
}

// Items returns the stack backing slice in push order.
func (s *Stack[T]) Items() []T {
	if s == nil {
		return nil
	}
	return s.items
}

// Reset clears the stack while retaining capacity.
func (s *Stack[T]) Reset() {
	if s == nil {
		return
	}
	clear(s.items)
	s.items = s.items[:0]
}

// Truncate pops values until at most n remain.
func (s *Stack[T]) Truncate(n int) {
	if s == nil || n >= len(s.items) {
		return
	}
	n = max(n, 0)
	clear(s.items[n:])
	s.items = s.items[:n]
}
