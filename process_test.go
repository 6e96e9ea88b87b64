package arcadia

import (
	"errors"
	"testing"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
)

func TestProcessRuntimeIsShared(t *testing.T) {
	first, err := AcquireProcess(NewOptions())
	if err != nil {
		t.Fatalf("AcquireProcess() error = %v", err)
	}
	second, err := AcquireProcess(NewOptions().WithStackMax(-1))
	if err != nil {
		t.Fatalf("second AcquireProcess() error = %v", err)
	}
	if first != second || first.Refs() != 2 {
		t.Fatalf("AcquireProcess() returned %p and %p with %d refs", first, second, first.Refs())
	}
	if err := ReleaseProcess(); err != nil {
		t.Fatalf("ReleaseProcess() error = %v", err)
	}
	if err := ReleaseProcess(); err != nil {
		t.Fatalf("last ReleaseProcess() error = %v", err)
	}
	if err := ReleaseProcess(); !errors.Is(err, rterrors.StatusOperationInvalid) {
		t.Fatalf("ReleaseProcess() without runtime error = %v", err)
	}

	// Options only apply when the process runtime is created.
	if _, err := AcquireProcess(NewOptions().WithStackMax(-1)); !errors.Is(err, rterrors.StatusArgumentInvalid) {
		t.Fatalf("AcquireProcess(invalid) error = %v", err)
	}
}
