package arcadia

import (
	"sync"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
)

var process struct {
	rt *Runtime
	mu sync.Mutex
}

// AcquireProcess acquires the process-wide runtime, creating it with opts
// on first use. Later calls ignore opts until the runtime is released for
// the last time.
func AcquireProcess(opts Options) (*Runtime, error) {
	process.mu.Lock()
	defer process.mu.Unlock()

	rt := process.rt
	if rt == nil {
		rt = New(opts)
	}
	if err := rt.Acquire(); err != nil {
		return nil, err
	}
	process.rt = rt
	return rt, nil
}

// ReleaseProcess releases one reference to the process-wide runtime.
func ReleaseProcess() error {
	process.mu.Lock()
	defer process.mu.Unlock()

	if process.rt == nil {
		return rterrors.New(rterrors.StatusOperationInvalid, "release process", "process runtime not acquired")
	}
	err := process.rt.Release()
	if process.rt.Refs() == 0 {
		process.rt = nil
	}
	return err
}
