package arcadia

import (
	"log/slog"
	"time"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/names"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/num"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/types"
)

// DefaultStackCapacity is the initial value stack capacity.
const DefaultStackCapacity = 64

// NewOptions returns a default, valid options value.
func NewOptions() Options {
	return Options{}
}

// Validate validates option values.
func (o Options) Validate() error {
	_, err := o.withDefaults()
	return err
}

// WithEvictionAge sets how long an unused interned name survives collection
// cycles (0 uses default).
func (o Options) WithEvictionAge(value time.Duration) Options {
	o.evictionAge = durationOption{value: value, set: true}
	return o
}

// WithNameCapacity sets the initial name table bucket count (0 uses default).
func (o Options) WithNameCapacity(value int) Options {
	o.nameCapacity = intOption{value: value, set: true}
	return o
}

// WithRegistryCapacity sets the initial type registry bucket count (0 uses default).
func (o Options) WithRegistryCapacity(value int) Options {
	o.registryCapacity = intOption{value: value, set: true}
	return o
}

// WithStackCapacity sets the initial value stack capacity (0 uses default).
func (o Options) WithStackCapacity(value int) Options {
	o.stackCapacity = intOption{value: value, set: true}
	return o
}

// WithStackMax bounds the value stack depth (0 means unbounded).
func (o Options) WithStackMax(value int) Options {
	o.stackMax = intOption{value: value, set: true}
	return o
}

// WithClock sets the clock name ages are measured with.
func (o Options) WithClock(clock func() time.Duration) Options {
	o.clock = clock
	return o
}

// WithLogger sets the structured logger. A nil logger discards records.
func (o Options) WithLogger(logger *slog.Logger) Options {
	o.logger = logger
	return o
}

// WithNumericCodec sets the codec Runtime.ParseValue converts text with.
func (o Options) WithNumericCodec(codec NumericCodec) Options {
	o.codec = codec
	return o
}

// WithModules appends modules started after the type registry, in order.
func (o Options) WithModules(modules ...Module) Options {
	o.modules = append(o.modules[:len(o.modules):len(o.modules)], modules...)
	return o
}

// WithBuiltinTypes controls whether the built-in scalar, type and object
// types are registered at start-up (default true).
func (o Options) WithBuiltinTypes(value bool) Options {
	o.skipBuiltinTypes = !value
	return o
}

func (o Options) withDefaults() (resolvedOptions, error) {
	const op = "options"
	if o.evictionAge.value < 0 {
		return resolvedOptions{}, rterrors.Newf(rterrors.StatusArgumentInvalid, op, "negative eviction age %s", o.evictionAge.value)
	}
	for _, n := range []struct {
		name  string
		value int
	}{
		{"name capacity", o.nameCapacity.value},
		{"registry capacity", o.registryCapacity.value},
		{"stack capacity", o.stackCapacity.value},
		{"stack max", o.stackMax.value},
	} {
		if n.value < 0 {
			return resolvedOptions{}, rterrors.Newf(rterrors.StatusArgumentInvalid, op, "negative %s %d", n.name, n.value)
		}
	}
	resolved := resolvedOptions{
		clock:            o.clock,
		logger:           o.logger,
		codec:            o.codec,
		evictionAge:      o.evictionAge.resolved(names.DefaultEvictionAge),
		nameCapacity:     o.nameCapacity.resolved(names.DefaultCapacity),
		registryCapacity: o.registryCapacity.resolved(types.DefaultCapacity),
		stackCapacity:    o.stackCapacity.resolved(DefaultStackCapacity),
		stackMax:         o.stackMax.resolved(0),
		builtinTypes:     !o.skipBuiltinTypes,
	}
	if resolved.stackMax > 0 && resolved.stackCapacity > resolved.stackMax {
		resolved.stackCapacity = resolved.stackMax
	}
	if resolved.clock == nil {
		resolved.clock = names.MonotonicClock()
	}
	if resolved.logger == nil {
		resolved.logger = slog.New(slog.DiscardHandler)
	}
	if resolved.codec == nil {
		resolved.codec = num.Codec{}
	}
	seen := make(map[string]struct{}, len(o.modules))
	for i, m := range o.modules {
		if m == nil {
			return resolvedOptions{}, rterrors.Newf(rterrors.StatusArgumentInvalid, op, "module %d is nil", i)
		}
		name := m.Name()
		if name == moduleNames || name == moduleTypes {
			return resolvedOptions{}, rterrors.Newf(rterrors.StatusExists, op, "module name %q is reserved", name)
		}
		if _, ok := seen[name]; ok {
			return resolvedOptions{}, rterrors.Newf(rterrors.StatusExists, op, "duplicate module %q", name)
		}
		seen[name] = struct{}{}
	}
	resolved.modules = append([]Module(nil), o.modules...)
	return resolved, nil
}
