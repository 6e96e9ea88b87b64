package arcadia

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	rterrors "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002/errors"
)

// optionsFile is the YAML form of Options. Unknown keys are rejected.
type optionsFile struct {
	EvictionAge      *time.Duration `yaml:"evictionAge"`
	NameCapacity     *int           `yaml:"nameCapacity"`
	RegistryCapacity *int           `yaml:"registryCapacity"`
	StackCapacity    *int           `yaml:"stackCapacity"`
	StackMax         *int           `yaml:"stackMax"`
	BuiltinTypes     *bool          `yaml:"builtinTypes"`
}

// LoadOptions decodes options from YAML. Settings absent from the document
// keep their defaults; an empty document yields NewOptions().
func LoadOptions(r io.Reader) (Options, error) {
	const op = "load options"
	if r == nil {
		return Options{}, rterrors.New(rterrors.StatusArgumentInvalid, op, "nil reader")
	}
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var raw optionsFile
	if err := decoder.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return NewOptions(), nil
		}
		return Options{}, rterrors.Wrap(rterrors.StatusConversionFailed, op, err)
	}
	opts := raw.toOptions()
	if err := opts.Validate(); err != nil {
		return Options{}, err
	}
	return opts, nil
}

// LoadOptionsFile decodes options from the YAML file at path.
func LoadOptionsFile(path string) (opts Options, err error) {
	f, err := os.Open(path)
	if err != nil {
		return Options{}, fmt.Errorf("open options file %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("close options file %s: %w", path, closeErr)
		}
	}()

	opts, err = LoadOptions(f)
	if err != nil {
		return Options{}, fmt.Errorf("options file %s: %w", path, err)
	}
	return opts, nil
}

func (f optionsFile) toOptions() Options {
	opts := NewOptions()
	if f.EvictionAge != nil {
		opts = opts.WithEvictionAge(*f.EvictionAge)
	}
	if f.NameCapacity != nil {
		opts = opts.WithNameCapacity(*f.NameCapacity)
	}
	if f.RegistryCapacity != nil {
		opts = opts.WithRegistryCapacity(*f.RegistryCapacity)
	}
	if f.StackCapacity != nil {
		opts = opts.WithStackCapacity(*f.StackCapacity)
	}
	if f.StackMax != nil {
		opts = opts.WithStackMax(*f.StackMax)
	}
	if f.BuiltinTypes != nil {
		opts = opts.WithBuiltinTypes(*f.BuiltinTypes)
	}
	return opts
}
