// Package arcadia is the runtime core: tagged values, interned names, the
// type registry, the execution context and the collector driver that ties
// them to one tracing heap.
//
// A Runtime is started by its first Acquire and shut down by its last
// Release:
//
//	rt := arcadia.New(arcadia.NewOptions())
//	if err := rt.Acquire(); err != nil {
//		return err
//	}
//	defer rt.Release()
package arcadia

import (
	"errors"
	"log/slog"
	"math"
	"sync"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/gc"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/lifecycle"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/names"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/types"
)

// Runtime owns one heap, one execution context, the name table, the type
// registry and any extra modules. The accessors are valid between the first
// Acquire and the last Release.
type Runtime struct {
	opts      Options
	resolved  resolvedOptions
	logger    *slog.Logger
	heap      *gc.Heap
	ctx       *types.Context
	names     *names.Table
	types     *types.Registry
	seq       *lifecycle.Sequence
	callbacks *callbackNode
	mu        sync.Mutex
	cbMu      sync.Mutex
	refs      int32
}

// New creates a stopped runtime. Options are validated by the first Acquire.
func New(opts Options) *Runtime {
	return &Runtime{opts: opts}
}

// Acquire adds a reference, starting the runtime when it is the first.
// A failed start-up rolls back the steps that completed and returns the
// original failure.
func (r *Runtime) Acquire() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.refs == math.MaxInt32 {
		return rterrors.New(rterrors.StatusEnvironmentFailed, "acquire", "reference count saturated")
	}
	if r.refs == 0 {
		if err := r.startUp(); err != nil {
			return err
		}
	}
	r.refs++
	return nil
}

// Release drops a reference, shutting the runtime down when it is the last.
func (r *Runtime) Release() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.refs == 0 {
		return rterrors.New(rterrors.StatusOperationInvalid, "release", "runtime not acquired")
	}
	r.refs--
	if r.refs > 0 {
		return nil
	}
	return r.shutDown()
}

// Refs reports the reference count.
func (r *Runtime) Refs() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int(r.refs)
}

// Context returns the execution context.
func (r *Runtime) Context() *Context {
	return r.ctx
}

// Names returns the interned name table.
func (r *Runtime) Names() *NameTable {
	return r.names
}

// Types returns the type registry.
func (r *Runtime) Types() *Registry {
	return r.types
}

// Heap returns the heap.
func (r *Runtime) Heap() *Heap {
	return r.heap
}

// Logger returns the runtime's logger.
func (r *Runtime) Logger() *slog.Logger {
	if r.logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.logger
}

// ParseValue converts text into a value of kind k with the configured
// numeric codec.
func (r *Runtime) ParseValue(k Kind, text []byte) (Value, error) {
	return types.ParseValue(r.resolved.codec, k, text)
}

// NewObject constructs an instance of t on the runtime's context.
func (r *Runtime) NewObject(t *Type, args ...Value) (*Object, error) {
	if r.types == nil || r.ctx == nil {
		return nil, rterrors.New(rterrors.StatusEnvironmentFailed, "new object", "runtime not started")
	}
	return r.types.New(r.ctx, t, args...)
}

func (r *Runtime) startUp() error {
	resolved, err := r.opts.withDefaults()
	if err != nil {
		return err
	}
	r.resolved = resolved
	r.logger = resolved.logger

	steps := []lifecycle.Step{
		r.logged(lifecycle.Step{Name: "gc", Up: r.startHeap, Down: r.stopHeap}),
		r.logged(lifecycle.Step{Name: "context", Up: r.startContext, Down: r.stopContext}),
		r.logged(lifecycle.Step{Name: moduleNames, Up: r.startNames, Down: r.stopNames}),
		r.logged(lifecycle.Step{Name: moduleTypes, Up: r.startTypes, Down: r.stopTypes}),
	}
	for _, m := range resolved.modules {
		steps = append(steps, r.logged(lifecycle.Step{
			Name: m.Name(),
			Up:   func() error { return r.startModule(m) },
			Down: func() error { return r.stopModule(m) },
		}))
	}
	seq := lifecycle.New(steps...)
	seq.OnRollback = func(step string, err error) {
		r.logger.Warn("rollback step failed", "step", step, "error", err)
	}
	if err := seq.Begin(); err != nil {
		r.logger.Warn("runtime start-up failed", "error", err)
		r.reset()
		return err
	}
	r.seq = seq
	r.logger.Debug("runtime started", "modules", len(steps))
	return nil
}

func (r *Runtime) shutDown() error {
	err := r.seq.End()
	r.seq = nil
	r.reset()
	if err != nil {
		r.logger.Warn("runtime shutdown failed", "error", err)
		return err
	}
	r.logger.Debug("runtime stopped")
	return nil
}

func (r *Runtime) reset() {
	r.heap = nil
	r.ctx = nil
	r.names = nil
	r.types = nil
	r.cbMu.Lock()
	r.callbacks = nil
	r.cbMu.Unlock()
}

func (r *Runtime) logged(step lifecycle.Step) lifecycle.Step {
	up, down := step.Up, step.Down
	step.Up = func() error {
		r.logger.Debug("start step", "step", step.Name)
		return up()
	}
	step.Down = func() error {
		r.logger.Debug("stop step", "step", step.Name)
		return down()
	}
	return step
}

func (r *Runtime) startHeap() error {
	r.heap = gc.NewHeap()
	return r.heap.StartUp()
}

func (r *Runtime) stopHeap() error {
	leaked, err := r.heap.ShutDown()
	if err != nil {
		return err
	}
	if leaked > 0 {
		r.logger.Warn("locked allocations leaked at shutdown", "count", leaked)
	}
	return nil
}

func (r *Runtime) startContext() error {
	r.ctx = types.NewContext(types.ContextConfig{
		StackCapacity: r.resolved.stackCapacity,
		StackMax:      r.resolved.stackMax,
	})
	return r.RegisterCallbacks(r.ctx, Callbacks{Visit: r.visitValueStack})
}

func (r *Runtime) stopContext() error {
	err := r.UnregisterCallbacks(r.ctx)
	r.ctx.Reset()
	return err
}

// visitValueStack keeps objects and types referenced from the value stack
// alive.
func (r *Runtime) visitValueStack(h *Heap) {
	for _, v := range r.ctx.Values() {
		types.VisitValue(h, v)
	}
}

func (r *Runtime) startNames() error {
	r.names = names.New(r.heap, names.Config{
		Clock:       r.resolved.clock,
		Logger:      r.logger,
		Capacity:    r.resolved.nameCapacity,
		EvictionAge: r.resolved.evictionAge,
	})
	if err := r.names.StartUp(); err != nil {
		return err
	}
	if err := r.RegisterCallbacks(r.names, Callbacks{PreMark: r.names.PreMark, Finalize: r.names.Finalize}); err != nil {
		return errors.Join(err, r.names.ShutDown())
	}
	return nil
}

func (r *Runtime) stopNames() error {
	return errors.Join(r.UnregisterCallbacks(r.names), r.names.ShutDown())
}

func (r *Runtime) startTypes() error {
	r.types = types.NewRegistry(r.heap, r.names, types.Config{
		Logger:   r.logger,
		Capacity: r.resolved.registryCapacity,
	})
	if err := r.types.StartUp(); err != nil {
		return err
	}
	if err := r.RegisterCallbacks(r.types, Callbacks{PreMark: r.types.PreMark, Finalize: r.types.Finalize}); err != nil {
		return errors.Join(err, r.types.ShutDown())
	}
	if r.resolved.builtinTypes {
		if err := types.RegisterBuiltins(r.types); err != nil {
			return errors.Join(err, r.stopTypes())
		}
	}
	return nil
}

// stopTypes destroys every type, then runs a purge cycle while the
// registry's hooks are still registered so the descriptors and any names
// only they referenced are reclaimed before the name table stops.
func (r *Runtime) stopTypes() error {
	if err := r.types.ShutDown(); err != nil {
		return err
	}
	stats, err := r.runCycle(true)
	if err != nil {
		return errors.Join(err, r.UnregisterCallbacks(r.types))
	}
	r.logger.Debug("purged at shutdown", "passes", stats.Passes, "reclaimed", stats.Reclaimed)
	return r.UnregisterCallbacks(r.types)
}

func (r *Runtime) startModule(m Module) error {
	if err := m.StartUp(r); err != nil {
		return err
	}
	if err := r.RegisterCallbacks(m, moduleCallbacks(m)); err != nil {
		return errors.Join(err, m.ShutDown(r))
	}
	return nil
}

func (r *Runtime) stopModule(m Module) error {
	return errors.Join(r.UnregisterCallbacks(m), m.ShutDown(r))
}
