package driver

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrManifestNotFound is returned by LoadManifestFrom when no schema.yaml is
// found while walking up from a starting directory.
var ErrManifestNotFound = errors.New("schema.yaml not found")

// Manifest models a package's schema.yaml: its own name and the set of
// other packages it depends on.
type Manifest struct {
	Path         string
	Name         string
	Main         bool
	Dependencies []DependencySpec
}

// DependencySpec names one dependency entry. Exactly one of Git or Path is
// expected to be set; Rev, Tag, and Branch select a revision within a git
// dependency (see gitRevisionFromSpec).
type DependencySpec struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`
	Git     string `yaml:"git"`
	Path    string `yaml:"path"`
	Rev     string `yaml:"rev"`
	Tag     string `yaml:"tag"`
	Branch  string `yaml:"branch"`
}

type manifestDisk struct {
	Name         string           `yaml:"name"`
	Main         bool             `yaml:"main"`
	Dependencies []DependencySpec `yaml:"dependencies"`
}

// LoadManifest parses a schema.yaml file at the given path.
func LoadManifest(path string) (*Manifest, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("manifest: read %s: %w", abs, err)
	}
	var raw manifestDisk
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("manifest: parse %s: %w", abs, err)
	}
	if strings.TrimSpace(raw.Name) == "" {
		return nil, fmt.Errorf("manifest: %s missing name", abs)
	}
	return &Manifest{
		Path:         abs,
		Name:         sanitizeSegment(raw.Name),
		Main:         raw.Main,
		Dependencies: raw.Dependencies,
	}, nil
}

// LoadManifestFrom walks up from dir looking for schema.yaml.
func LoadManifestFrom(dir string) (*Manifest, error) {
	start, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("manifest: resolve %s: %w", dir, err)
	}
	current := start
	for {
		candidate := filepath.Join(current, "schema.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return LoadManifest(candidate)
		}
		parent := filepath.Dir(current)
		if parent == current {
			return nil, ErrManifestNotFound
		}
		current = parent
	}
}

// Root returns the directory containing the manifest.
func (m *Manifest) Root() string {
	if m == nil || m.Path == "" {
		return "."
	}
	return filepath.Dir(m.Path)
}
