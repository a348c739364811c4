package driver

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"ecsc/pkg/schema"
)

// Lockfile models schema.lock: for every dependency a manifest names, the
// resolved source and a fingerprint of the declarations it exposed the last
// time it was loaded.
type Lockfile struct {
	Path      string `yaml:"-"`
	Root      string `yaml:"root"`
	Generated string `yaml:"generated"`
	Tool      string `yaml:"tool"`

	Entries []*LockedDependency `yaml:"entries"`
}

// LockedDependency pins one dependency package to a resolved source (a git
// commit, or "local" for a path dependency) and a content digest of its
// declarations, computed by DigestSnapshot. The digest is recorded
// alongside the revision; `ecsc deps lock` replaces an existing entry with
// the newly computed one and does not compare the old and new digests.
type LockedDependency struct {
	Name     string   `yaml:"name"`
	Source   string   `yaml:"source"`
	Resolved string   `yaml:"resolved"`
	Digest   string   `yaml:"digest"`
	Declares []string `yaml:"declares,omitempty"`
}

// DigestSnapshot fingerprints a loaded package's declarations: every
// component, transient, enum, system, and action name prefixed by its kind,
// sorted, and sha256-hashed. It returns the sorted list alongside the hex
// digest so a lockfile entry can keep both a human-readable diff and a
// single comparable value.
func DigestSnapshot(snap schema.Snapshot) (declares []string, digest string) {
	for _, c := range snap.Components {
		declares = append(declares, "component:"+c.Name)
	}
	for _, t := range snap.Transients {
		declares = append(declares, "transient:"+t.Name)
	}
	for _, e := range snap.Enums {
		declares = append(declares, "enum:"+e.Name)
	}
	for _, s := range snap.Systems {
		declares = append(declares, "system:"+s.Name)
	}
	for _, a := range snap.Actions {
		declares = append(declares, "action:"+a.Name)
	}
	sort.Strings(declares)

	sum := sha256.Sum256([]byte(strings.Join(declares, "\n")))
	return declares, hex.EncodeToString(sum[:])
}

// NewLockfile constructs an empty lockfile rooted at root.
func NewLockfile(root, tool string) *Lockfile {
	return &Lockfile{
		Root:      sanitizeSegment(root),
		Generated: time.Now().UTC().Format(time.RFC3339),
		Tool:      strings.TrimSpace(tool),
	}
}

// LoadLockfile parses schema.lock from disk.
func LoadLockfile(path string) (*Lockfile, error) {
	if path == "" {
		return nil, fmt.Errorf("lockfile: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, err
	}

	lock := &Lockfile{}
	dec := yaml.NewDecoder(strings.NewReader(string(data)))
	dec.KnownFields(true)
	if err := dec.Decode(lock); err != nil {
		return nil, fmt.Errorf("lockfile: parse %s: %w", abs, err)
	}
	lock.Path = abs
	lock.normalize()
	return lock, nil
}

// WriteLockfile serialises lock to path, stamping Generated if it is unset.
func WriteLockfile(lock *Lockfile, path string) error {
	if lock == nil {
		return fmt.Errorf("lockfile: nil lockfile")
	}
	if path == "" {
		if lock.Path == "" {
			return fmt.Errorf("lockfile: missing path")
		}
		path = lock.Path
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("lockfile: resolve %s: %w", path, err)
	}
	if lock.Generated == "" {
		lock.Generated = time.Now().UTC().Format(time.RFC3339)
	}
	lock.Path = abs
	lock.normalize()

	out, err := yaml.Marshal(lock)
	if err != nil {
		return fmt.Errorf("lockfile: marshal %s: %w", abs, err)
	}
	if err := os.WriteFile(abs, out, 0o644); err != nil {
		return fmt.Errorf("lockfile: write %s: %w", abs, err)
	}
	return nil
}

// Find returns the locked entry for name, if present.
func (l *Lockfile) Find(name string) (*LockedDependency, bool) {
	if l == nil {
		return nil, false
	}
	name = sanitizeSegment(name)
	for _, dep := range l.Entries {
		if dep != nil && dep.Name == name {
			return dep, true
		}
	}
	return nil, false
}

// Put inserts or replaces the locked entry for dep.Name.
func (l *Lockfile) Put(dep *LockedDependency) {
	if l == nil || dep == nil {
		return
	}
	dep.Name = sanitizeSegment(dep.Name)
	for i, existing := range l.Entries {
		if existing != nil && existing.Name == dep.Name {
			l.Entries[i] = dep
			return
		}
	}
	l.Entries = append(l.Entries, dep)
}

func (l *Lockfile) normalize() {
	if l == nil {
		return
	}
	l.Root = sanitizeSegment(l.Root)
	l.Tool = strings.TrimSpace(l.Tool)
	for _, dep := range l.Entries {
		if dep == nil {
			continue
		}
		dep.Name = sanitizeSegment(dep.Name)
		dep.Source = strings.TrimSpace(dep.Source)
		dep.Resolved = strings.TrimSpace(dep.Resolved)
		dep.Digest = strings.TrimSpace(dep.Digest)
		sort.Strings(dep.Declares)
	}
	sort.SliceStable(l.Entries, func(i, j int) bool {
		return l.Entries[i].Name < l.Entries[j].Name
	})
}
