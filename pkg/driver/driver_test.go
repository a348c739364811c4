package driver

import (
	"os"
	"path/filepath"
	"testing"

	"ecsc/pkg/schema"
)

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestLoadManifestRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.yaml")
	writeFile(t, path, `
name: game
main: true
dependencies:
  - name: core
    path: ../core
`)
	manifest, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("LoadManifest: %v", err)
	}
	if manifest.Name != "game" || !manifest.Main {
		t.Fatalf("manifest = %+v, want name=game main=true", manifest)
	}
	if len(manifest.Dependencies) != 1 || manifest.Dependencies[0].Path != "../core" {
		t.Fatalf("manifest.Dependencies = %+v", manifest.Dependencies)
	}
}

func TestLockfileWriteAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "schema.lock")

	lock := NewLockfile(dir, "ecsc")
	declares, digest := DigestSnapshot(schema.Snapshot{
		Components: []schema.ComponentSnapshot{{Name: "Health"}},
	})
	lock.Put(&LockedDependency{
		Name:     "core",
		Source:   "git+https://example.com/core",
		Resolved: "abc123",
		Declares: declares,
		Digest:   digest,
	})
	if err := WriteLockfile(lock, path); err != nil {
		t.Fatalf("WriteLockfile: %v", err)
	}

	loaded, err := LoadLockfile(path)
	if err != nil {
		t.Fatalf("LoadLockfile: %v", err)
	}
	entry, ok := loaded.Find("core")
	if !ok {
		t.Fatalf("Find(core) = false, want true")
	}
	if entry.Resolved != "abc123" {
		t.Fatalf("entry.Resolved = %q, want abc123", entry.Resolved)
	}
	if entry.Digest != digest {
		t.Fatalf("entry.Digest = %q, want %q", entry.Digest, digest)
	}
}

func TestLoaderLoadsDependencyBeforeEntryPackage(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "core", "schema.yaml"), `
name: core
main: false
dependencies: []
`)
	writeFile(t, filepath.Join(root, "core", "body.yaml"), `
name: core
main: false
body:
  - kind: component
    name: Health
    children:
      - kind: builtin_type_field
        name: hp
        builtin: f32
`)

	writeFile(t, filepath.Join(root, "game", "schema.yaml"), `
name: game
main: true
dependencies:
  - name: core
    path: ../core
`)
	writeFile(t, filepath.Join(root, "game", "body.yaml"), `
name: game
main: true
body:
  - kind: import
    name: core
  - kind: system
    name: Regen
    children:
      - kind: system_component
        name: core.Health
        capability: read_write
`)

	reg := schema.NewMemoryRegistry()
	loader := NewLoader(reg)
	gamePkg, err := loader.Load(filepath.Join(root, "game", "schema.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	packages := reg.ListPackages()
	if len(packages) != 2 {
		t.Fatalf("ListPackages = %v, want 2 packages", packages)
	}

	deps := reg.PackageDependencies(gamePkg)
	if len(deps) != 1 || reg.PackageName(deps[0]) != "core" {
		t.Fatalf("PackageDependencies(game) = %v, want [core]", deps)
	}

	var health schema.DeclID
	for _, pkg := range packages {
		if reg.PackageName(pkg) != "core" {
			continue
		}
		comps := reg.ComponentIDs(pkg)
		if len(comps) != 1 {
			t.Fatalf("core ComponentIDs = %v, want 1 component", comps)
		}
		health = comps[0]
	}

	systems := reg.SystemIDs(gamePkg)
	if len(systems) != 1 {
		t.Fatalf("game SystemIDs = %v, want 1 system", systems)
	}
	caps := reg.SystemCapabilities(systems[0])
	if got, ok := caps[health]; !ok || got != schema.CapabilityReadWrite {
		t.Fatalf("Regen capabilities = %v, want Health->ReadWrite", caps)
	}
}

func TestLoaderRejectsDependencyCycle(t *testing.T) {
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "a", "schema.yaml"), `
name: a
main: false
dependencies:
  - name: b
    path: ../b
`)
	writeFile(t, filepath.Join(root, "a", "body.yaml"), `
name: a
body: []
`)
	writeFile(t, filepath.Join(root, "b", "schema.yaml"), `
name: b
main: false
dependencies:
  - name: a
    path: ../a
`)
	writeFile(t, filepath.Join(root, "b", "body.yaml"), `
name: b
body: []
`)

	reg := schema.NewMemoryRegistry()
	loader := NewLoader(reg)
	if _, err := loader.Load(filepath.Join(root, "a", "schema.yaml")); err == nil {
		t.Fatalf("Load with a dependency cycle succeeded, want error")
	}
}
