package scene

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownShape is returned for shapes other than sphere, box, capsule (and mixed when generating).
	ErrUnknownShape = errors.New("unknown shape")
	// ErrUnknownJoint is returned for joint types other than fixed and ball.
	ErrUnknownJoint = errors.New("unknown joint type")
	// ErrUnknownObject is returned when a joint names an object that does not exist.
	ErrUnknownObject = errors.New("unknown object")
	// ErrDuplicateObject is returned when two objects share a name.
	ErrDuplicateObject = errors.New("duplicate object name")
)

// Load reads and parses the scene file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Parse decodes a YAML scene and checks shape and joint names.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, err
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// Validate checks shape and joint type names and that object names are
// unique.
func (f *File) Validate() error {
	for i, o := range f.Objects {
		if _, err := o.Shape.class(); err != nil {
			return fmt.Errorf("object %d (%s): %w", i, o.Name, err)
		}
	}
	if err := uniqueNames(f.Objects); err != nil {
		return err
	}
	for i, j := range f.Joints {
		if j.Type != "fixed" && j.Type != "ball" {
			return fmt.Errorf("joint %d: %w: %q", i, ErrUnknownJoint, j.Type)
		}
	}
	if g := f.Generate; g != nil && g.Shape != ShapeMixed && g.Shape != "" {
		if _, err := g.Shape.class(); err != nil {
			return fmt.Errorf("generate: %w", err)
		}
	}
	return nil
}

// uniqueNames reports the first object whose name was already used. Unnamed
// objects never clash.
func uniqueNames(defs []ObjectDef) error {
	seen := make(map[string]int, len(defs))
	for i, d := range defs {
		if d.Name == "" {
			continue
		}
		if first, ok := seen[d.Name]; ok {
			return fmt.Errorf("object %d: %w: %q (first used by object %d)", i, ErrDuplicateObject, d.Name, first)
		}
		seen[d.Name] = i
	}
	return nil
}

// Save writes f as YAML.
func Save(path string, f *File) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
