package arcadia

import (
	"reflect"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
)

const (
	moduleNames = "Arcadia.Names"
	moduleTypes = "Arcadia.Types"
)

// Module is a subsystem started and stopped by a Runtime and driven by its
// collection cycles. Modules start in registration order after the name
// table and the type registry, and may assume both are live.
type Module interface {
	Name() string
	// StartUp and ShutDown run while the runtime is being acquired or
	// released and must not call Acquire, Release, Refs or
	// RunCollectionCycle.
	StartUp(rt *Runtime) error
	ShutDown(rt *Runtime) error
	// PreMark runs before each collector pass. With purge set, caches
	// should keep nothing alive on their own account.
	PreMark(purge bool)
	// Visit shades the allocations the module keeps alive.
	Visit(h *Heap)
	// Finalize runs after each collector pass and returns how many of the
	// module's entries the pass destroyed.
	Finalize() int
}

// Callbacks are the collector hooks registered for one owner. Nil hooks
// are skipped.
type Callbacks struct {
	PreMark  func(purge bool)
	Visit    func(h *Heap)
	Finalize func() int
}

type callbackNode struct {
	next      *callbackNode
	owner     any
	callbacks Callbacks
}

// RegisterCallbacks adds collector hooks for owner, which must be comparable
// and not already registered.
func (r *Runtime) RegisterCallbacks(owner any, callbacks Callbacks) error {
	r.cbMu.Lock()
	defer r.cbMu.Unlock()
	return r.registerCallbacks(owner, callbacks)
}

// UnregisterCallbacks removes the hooks registered for owner.
func (r *Runtime) UnregisterCallbacks(owner any) error {
	r.cbMu.Lock()
	defer r.cbMu.Unlock()
	return r.unregisterCallbacks(owner)
}

func (r *Runtime) registerCallbacks(owner any, callbacks Callbacks) error {
	const op = "register callbacks"
	if err := checkOwner(op, owner); err != nil {
		return err
	}
	for n := r.callbacks; n != nil; n = n.next {
		if n.owner == owner {
			return rterrors.Newf(rterrors.StatusExists, op, "callbacks for %T already registered", owner)
		}
	}
	r.callbacks = &callbackNode{next: r.callbacks, owner: owner, callbacks: callbacks}
	return nil
}

func (r *Runtime) unregisterCallbacks(owner any) error {
	const op = "unregister callbacks"
	if err := checkOwner(op, owner); err != nil {
		return err
	}
	for link := &r.callbacks; *link != nil; link = &(*link).next {
		if (*link).owner == owner {
			*link = (*link).next
			return nil
		}
	}
	return rterrors.Newf(rterrors.StatusNotExists, op, "no callbacks for %T", owner)
}

func checkOwner(op string, owner any) error {
	if owner == nil {
		return rterrors.New(rterrors.StatusArgumentInvalid, op, "nil owner")
	}
	if !reflect.TypeOf(owner).Comparable() {
		return rterrors.Newf(rterrors.StatusArgumentInvalid, op, "owner %T is not comparable", owner)
	}
	return nil
}

// moduleCallbacks adapts a module's hooks.
func moduleCallbacks(m Module) Callbacks {
	return Callbacks{PreMark: m.PreMark, Visit: m.Visit, Finalize: m.Finalize}
}
