package state

import "fmt"

// MinCapacity is the smallest capacity handed out by NextCapacity.
const MinCapacity = 8

// ErrCapacity reports a required capacity above the configured maximum.
type ErrCapacity struct {
	Required int
	Max      int
}

// Error returns the error string.
func (e ErrCapacity) Error() string {
	return fmt.Sprintf("capacity %d exceeds maximum %d", e.Required, e.Max)
}

// NextCapacity returns the capacity to grow to when old cannot hold required
// elements. Capacity doubles until it covers required and is clamped to
// maxCapacity (0 means unbounded).
func NextCapacity(old, required, maxCapacity int) (int, error) {
	if required < 0 {
		return 0, ErrCapacity{Required: required, Max: maxCapacity}
	}
	if maxCapacity > 0 && required > maxCapacity {
		return 0, ErrCapacity{Required: required, Max: maxCapacity}
	}
	if old >= required {
		return old, nil
	}
	next := max(old, MinCapacity)
	for next < required {
		if next > int(^uint(0)>>2) {
			next = required
			break
		}
		next *= 2
	}
	if maxCapacity > 0 && next > maxCapacity {
		next = maxCapacity
	}
	return next, nil
}
