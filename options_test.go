package arcadia

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/names"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/num"
	"github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/internal/types"
)

func TestOptionsDefaults(t *testing.T) {
	resolved, err := NewOptions().withDefaults()
	if err != nil {
		t.Fatalf("withDefaults() error = %v", err)
	}
	if resolved.evictionAge != names.DefaultEvictionAge {
		t.Fatalf("evictionAge = %s, want %s", resolved.evictionAge, names.DefaultEvictionAge)
	}
	if resolved.nameCapacity != names.DefaultCapacity || resolved.registryCapacity != types.DefaultCapacity {
		t.Fatalf("capacities = %d, %d", resolved.nameCapacity, resolved.registryCapacity)
	}
	if resolved.stackCapacity != DefaultStackCapacity || resolved.stackMax != 0 {
		t.Fatalf("stack = %d/%d", resolved.stackCapacity, resolved.stackMax)
	}
	if !resolved.builtinTypes || resolved.logger == nil || resolved.clock == nil {
		t.Fatalf("defaults not filled: %+v", resolved)
	}
	if _, ok := resolved.codec.(num.Codec); !ok {
		t.Fatalf("codec = %T, want num.Codec", resolved.codec)
	}
}

func TestOptionsSettersCopy(t *testing.T) {
	base := NewOptions()
	changed := base.WithStackMax(16).WithStackCapacity(32)
	if base.stackMax.set {
		t.Fatalf("setter modified the receiver")
	}
	resolved, err := changed.withDefaults()
	if err != nil {
		t.Fatalf("withDefaults() error = %v", err)
	}
	if resolved.stackCapacity != 16 || resolved.stackMax != 16 {
		t.Fatalf("stack = %d/%d, want capacity clamped to 16", resolved.stackCapacity, resolved.stackMax)
	}
	if err := base.WithEvictionAge(-time.Second).Validate(); !errors.Is(err, rterrors.StatusArgumentInvalid) {
		t.Fatalf("Validate(negative age) error = %v", err)
	}
}

func TestLoadOptions(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		status rterrors.Status
		check  func(t *testing.T, r resolvedOptions)
	}{
		{
			name: "full",
			input: `evictionAge: 45s
nameCapacity: 128
registryCapacity: 16
stackCapacity: 8
stackMax: 1024
builtinTypes: false
`,
			check: func(t *testing.T, r resolvedOptions) {
				if r.evictionAge != 45*time.Second || r.nameCapacity != 128 || r.registryCapacity != 16 {
					t.Fatalf("resolved = %+v", r)
				}
				if r.stackCapacity != 8 || r.stackMax != 1024 || r.builtinTypes {
					t.Fatalf("resolved = %+v", r)
				}
			},
		},
		{
			name:  "partial",
			input: "stackMax: 4\n",
			check: func(t *testing.T, r resolvedOptions) {
				if r.stackMax != 4 || r.stackCapacity != 4 || !r.builtinTypes {
					t.Fatalf("resolved = %+v", r)
				}
			},
		},
		{
			name:  "empty",
			input: "",
			check: func(t *testing.T, r resolvedOptions) {
				if r.evictionAge != names.DefaultEvictionAge {
					t.Fatalf("evictionAge = %s", r.evictionAge)
				}
			},
		},
		{name: "unknown key", input: "heapSize: 1\n", status: rterrors.StatusConversionFailed},
		{name: "bad type", input: "nameCapacity: many\n", status: rterrors.StatusConversionFailed},
		{name: "negative", input: "registryCapacity: -1\n", status: rterrors.StatusArgumentInvalid},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := LoadOptions(strings.NewReader(tt.input))
			if tt.status != rterrors.StatusSuccess {
				if !errors.Is(err, tt.status) {
					t.Fatalf("LoadOptions() error = %v, want %s", err, tt.status)
				}
				return
			}
			if err != nil {
				t.Fatalf("LoadOptions() error = %v", err)
			}
			resolved, err := opts.withDefaults()
			if err != nil {
				t.Fatalf("withDefaults() error = %v", err)
			}
			tt.check(t, resolved)
		})
	}
}

func TestLoadOptionsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "options.yaml")
	if err := os.WriteFile(path, []byte("evictionAge: 2m\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}
	opts, err := LoadOptionsFile(path)
	if err != nil {
		t.Fatalf("LoadOptionsFile() error = %v", err)
	}
	if opts.evictionAge.value != 2*time.Minute {
		t.Fatalf("evictionAge = %s, want 2m", opts.evictionAge.value)
	}
	if _, err := LoadOptionsFile(filepath.Join(t.TempDir(), "missing.yaml")); !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("LoadOptionsFile(missing) error = %v", err)
	}
}
