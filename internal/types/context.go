package types

import (
	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/state"
)

// ResumptionPoint is a saved place a later Raise transfers control back to.
// Points are pushed and popped by their owner and must be popped on every
// exit path before they go out of scope.
type ResumptionPoint struct {
	prev *ResumptionPoint
}

// jump is the panic value Raise unwinds with.
type jump struct {
	point *ResumptionPoint
	err   *rterrors.Error
}

// ContextConfig sizes the value stack.
type ContextConfig struct {
	// StackCapacity is the initial value stack capacity.
	StackCapacity int
	// StackMax bounds the value stack depth; 0 means unbounded.
	StackMax int
}

// Context is the execution context of one logical call chain: a status
// code, a resumption stack and a value stack used for arguments and
// intermediate results.
//
// A Context is not safe for concurrent use.
type Context struct {
	top    *ResumptionPoint
	err    *rterrors.Error
	values state.Stack[Value]
	depth  int
	status rterrors.Status
}

// NewContext creates an execution context.
func NewContext(cfg ContextConfig) *Context {
	return &Context{values: state.NewStack[Value](cfg.StackCapacity, cfg.StackMax)}
}

// SetStatus overwrites the status.
func (c *Context) SetStatus(s rterrors.Status) {
	c.status = s
	c.err = nil
}

// Status returns the status set by the last fallible operation.
func (c *Context) Status() rterrors.Status {
	return c.status
}

// Err returns the error carried by the last raise, or nil.
func (c *Context) Err() error {
	if c.err == nil {
		return nil
	}
	return c.err
}

// PushResumptionPoint links p above the current top.
func (c *Context) PushResumptionPoint(p *ResumptionPoint) {
	p.prev = c.top
	c.top = p
	c.depth++
}

// PopResumptionPoint unlinks the top point.
func (c *Context) PopResumptionPoint() {
	if c.top == nil {
		panic(rterrors.New(rterrors.StatusStackCorruption, "pop resumption point", "resumption stack is empty"))
	}
	p := c.top
	c.top = p.prev
	p.prev = nil
	c.depth--
}

// ResumptionDepth reports how many points are pushed.
func (c *Context) ResumptionDepth() int {
	return c.depth
}

// Raise transfers control to the top resumption point. The status must have
// been set before. Raising with no point pushed is a programming error and
// panics with an *errors.Error.
func (c *Context) Raise() {
	if c.err == nil {
		c.err = rterrors.New(c.status, "raise", "")
	}
	if c.top == nil {
		panic(rterrors.Wrap(rterrors.StatusEnvironmentFailed, "raise", c.err))
	}
	panic(jump{point: c.top, err: c.err})
}

// Jump sets the status and raises.
func (c *Context) Jump(s rterrors.Status) {
	c.SetStatus(s)
	c.Raise()
}

// Check raises with the status carried by err when err is not nil.
func (c *Context) Check(err error) {
	if err == nil {
		return
	}
	c.raiseError(err)
}

func (c *Context) raiseError(err error) {
	c.record(err)
	c.Raise()
}

func (c *Context) record(err error) {
	e, ok := rterrors.AsError(err)
	if !ok {
		e = rterrors.Wrap(rterrors.StatusOf(err), "", err)
	}
	c.status = e.Status
	c.err = e
}

// Catch is deferred by the owner of p together with recover:
//
//	defer func() { resumed = ctx.Catch(&p, recover()) }()
//
// It pops p and everything pushed above it, and reports whether a raise
// aimed at p, or at a point above p nobody caught, was recovered. Other
// panics continue unwinding.
func (c *Context) Catch(p *ResumptionPoint, recovered any) bool {
	j, isJump := recovered.(jump)
	ours, found := false, false
	for q := c.top; q != nil && !found; q = q.prev {
		if isJump && q == j.point {
			ours = true
		}
		found = q == p
	}
	c.unwindTo(p)
	if recovered == nil {
		return false
	}
	if !ours || !found {
		panic(recovered)
	}
	return true
}

// Try runs body under a fresh resumption point and reports whether it was
// left by a raise. The status and Err describe the raise.
func (c *Context) Try(body func()) (resumed bool) {
	var p ResumptionPoint
	c.PushResumptionPoint(&p)
	defer func() { resumed = c.Catch(&p, recover()) }()
	body()
	return false
}

// Guard runs body under a fresh resumption point and returns the failure
// as an error: either the error body returned or the one a raise beneath it
// carried. The status is updated in both cases. The resumption stack is
// left as it was before the call.
func (c *Context) Guard(body func() error) error {
	var err error
	if c.Try(func() { err = body() }) {
		return c.err
	}
	if err != nil {
		c.record(err)
		return err
	}
	return nil
}

// unwindTo pops p and every point above it.
func (c *Context) unwindTo(p *ResumptionPoint) {
	for q := c.top; q != nil; q = q.prev {
		if q == p {
			for c.top != p {
				c.PopResumptionPoint()
			}
			c.PopResumptionPoint()
			return
		}
	}
}

// Push appends v to the value stack.
func (c *Context) Push(v Value) error {
	if err := c.values.Push(v); err != nil {
		return rterrors.Wrap(rterrors.StatusAllocationFailed, "push", err)
	}
	return nil
}

// PopCount removes the n topmost values.
func (c *Context) PopCount(n int) error {
	if err := c.values.PopCount(n); err != nil {
		return rterrors.Wrap(rterrors.StatusStackCorruption, "pop count", err)
	}
	return nil
}

// Pop removes and returns the top value.
func (c *Context) Pop() (Value, error) {
	v, ok := c.values.Pop()
	if !ok {
		return Value{}, rterrors.New(rterrors.StatusStackCorruption, "pop", "value stack is empty")
	}
	return v, nil
}

// Peek returns the value i slots below the top.
func (c *Context) Peek(i int) (Value, error) {
	v, ok := c.values.Peek(i)
	if !ok {
		return Value{}, rterrors.Newf(rterrors.StatusStackCorruption, "peek", "index %d outside stack of %d", i, c.values.Len())
	}
	return v, nil
}

// Len reports the value stack depth.
func (c *Context) Len() int {
	return c.values.Len()
}

// Values returns the value stack in push order. Callers must not modify it.
func (c *Context) Values() []Value {
	return c.values.Items()
}

// Reset clears the value stack, the resumption stack and the status.
func (c *Context) Reset() {
	c.values.Reset()
	for c.top != nil {
		c.PopResumptionPoint()
	}
	c.status = rterrors.StatusSuccess
	c.err = nil
}

// truncate pops the value stack down to depth n.
func (c *Context) truncate(n int) {
	c.values.Truncate(n)
}
