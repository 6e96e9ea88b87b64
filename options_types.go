package arcadia

import (
	"log/slog"
	"time"

	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/names"
)

type intOption struct {
	value int
	set   bool
}

func (o intOption) resolved(fallback int) int {
	if !o.set || o.value == 0 {
		return fallback
	}
	return o.value
}

type durationOption struct {
	value time.Duration
	set   bool
}

func (o durationOption) resolved(fallback time.Duration) time.Duration {
	if !o.set || o.value == 0 {
		return fallback
	}
	return o.value
}

// Options configures a Runtime. The zero value is valid; every setter
// returns a modified copy.
type Options struct {
	clock            names.Clock
	logger           *slog.Logger
	codec            NumericCodec
	modules          []Module
	evictionAge      durationOption
	nameCapacity     intOption
	registryCapacity intOption
	stackCapacity    intOption
	stackMax         intOption
	skipBuiltinTypes bool
}

type resolvedOptions struct {
	clock            names.Clock
	logger           *slog.Logger
	codec            NumericCodec
	modules          []Module
	evictionAge      time.Duration
	nameCapacity     int
	registryCapacity int
	stackCapacity    int
	stackMax         int
	builtinTypes     bool
}
