package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	arcadia "github.com/michaelheilmann/michaelheilmann.com-arcadia-sub002"
)

// manifest lists object types to register, in order. A parent must be a
// built-in type or appear earlier in the list.
type manifest struct {
	Types []manifestType `yaml:"types"`
}

type manifestType struct {
	Name         string `yaml:"name"`
	Parent       string `yaml:"parent"`
	ValueSize    int    `yaml:"valueSize"`
	DispatchSize int    `yaml:"dispatchSize"`
	Instances    int    `yaml:"instances"`
}

// manifestError aggregates manifest validation failures.
type manifestError struct {
	issues []string
}

func (e *manifestError) Error() string {
	var b strings.Builder
	b.WriteString("manifest validation failed:")
	for _, issue := range e.issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

func loadManifest(path string) (m *manifest, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: open %s: %w", path, err)
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			m, err = nil, fmt.Errorf("manifest: close %s: %w", path, closeErr)
		}
	}()

	m, err = decodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return m, nil
}

// decodeManifest reads one YAML manifest document, rejecting unknown keys.
func decodeManifest(r io.Reader) (*manifest, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)

	var m manifest
	if err := decoder.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("empty document")
		}
		return nil, fmt.Errorf("parse: %w", err)
	}
	if err := m.validate(); err != nil {
		return nil, err
	}
	return &m, nil
}

func (m *manifest) validate() error {
	var issues []string
	seen := make(map[string]struct{}, len(m.Types))
	for i, t := range m.Types {
		if t.Name == "" {
			issues = append(issues, fmt.Sprintf("types[%d]: name is required", i))
			continue
		}
		if _, ok := seen[t.Name]; ok {
			issues = append(issues, fmt.Sprintf("types[%d]: duplicate name %q", i, t.Name))
		}
		seen[t.Name] = struct{}{}
		if t.ValueSize < 0 || t.DispatchSize < 0 || t.Instances < 0 {
			issues = append(issues, fmt.Sprintf("type %q: sizes and instance counts must not be negative", t.Name))
		}
	}
	if len(issues) > 0 {
		return &manifestError{issues: issues}
	}
	return nil
}

// register registers every manifest type and constructs its unretained
// instances.
func (m *manifest) register(rt *arcadia.Runtime) error {
	reg := rt.Types()
	for _, mt := range m.Types {
		var parent *arcadia.Type
		if mt.Parent != "" {
			p, ok := reg.Lookup(mt.Parent)
			if !ok {
				return fmt.Errorf("type %q: unknown parent %q", mt.Name, mt.Parent)
			}
			parent = p
		}
		t, err := reg.RegisterObjectType(arcadia.TypeSpec{Name: mt.Name}, mt.ValueSize, parent, mt.DispatchSize, nil)
		if err != nil {
			return fmt.Errorf("type %q: %w", mt.Name, err)
		}
		for range mt.Instances {
			if _, err := rt.NewObject(t); err != nil {
				return fmt.Errorf("type %q: construct: %w", mt.Name, err)
			}
		}
	}
	return nil
}
