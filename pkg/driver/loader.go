package driver

import (
	"fmt"
	"path/filepath"

	"ecsc/pkg/ast"
	"ecsc/pkg/eval"
	"ecsc/pkg/schema"
)

func packageHeaderStatement(manifest *Manifest) ast.Statement {
	return ast.Statement{Kind: ast.PACKAGE, Name: manifest.Name, Main: manifest.Main}
}

// Loader resolves a package's dependency graph from schema.yaml manifests
// and feeds each package's statement body into an Evaluator in dependency
// order, so that IMPORT statements always resolve against an
// already-registered package.
type Loader struct {
	reg schema.Registry
	ev  *eval.Evaluator

	loaded     map[string]schema.PackageID
	inProgress map[string]bool
}

// NewLoader constructs a Loader bound to reg.
func NewLoader(reg schema.Registry) *Loader {
	return &Loader{
		reg:        reg,
		ev:         eval.New(reg),
		loaded:     make(map[string]schema.PackageID),
		inProgress: make(map[string]bool),
	}
}

// Evaluator returns the Evaluator the loader drives, so callers can run
// further ad hoc statements against the same registry after loading.
func (l *Loader) Evaluator() *eval.Evaluator { return l.ev }

// Load reads the manifest at manifestPath, loads every dependency it names
// (recursively, depth first) ahead of the package itself, and returns the
// entry package's id.
func (l *Loader) Load(manifestPath string) (schema.PackageID, error) {
	manifest, err := LoadManifest(manifestPath)
	if err != nil {
		return schema.NilPackageID, err
	}
	return l.loadManifest(manifest)
}

func (l *Loader) loadManifest(manifest *Manifest) (schema.PackageID, error) {
	if id, ok := l.loaded[manifest.Name]; ok {
		return id, nil
	}
	if l.inProgress[manifest.Name] {
		return schema.NilPackageID, fmt.Errorf("driver: dependency cycle detected at package %s", manifest.Name)
	}
	l.inProgress[manifest.Name] = true
	defer delete(l.inProgress, manifest.Name)

	for _, dep := range manifest.Dependencies {
		depManifestPath, err := l.resolveDependencyManifest(manifest, dep)
		if err != nil {
			return schema.NilPackageID, err
		}
		depManifest, err := LoadManifest(depManifestPath)
		if err != nil {
			return schema.NilPackageID, err
		}
		if _, err := l.loadManifest(depManifest); err != nil {
			return schema.NilPackageID, err
		}
	}

	id := l.ev.EvalPackageStatement(packageHeaderStatement(manifest))
	l.loaded[manifest.Name] = id

	bodyPath := filepath.Join(manifest.Root(), "body.yaml")
	doc, err := LoadPackageDoc(bodyPath)
	if err != nil {
		return schema.NilPackageID, err
	}
	if err := WalkBody(l.ev, id, doc.Body); err != nil {
		return schema.NilPackageID, fmt.Errorf("driver: package %s: %w", manifest.Name, err)
	}
	return id, nil
}

func (l *Loader) resolveDependencyManifest(manifest *Manifest, dep DependencySpec) (string, error) {
	if dep.Path != "" {
		path := dep.Path
		if !filepath.IsAbs(path) {
			path = filepath.Join(manifest.Root(), path)
		}
		return filepath.Join(path, "schema.yaml"), nil
	}
	if dep.Git != "" {
		return "", fmt.Errorf("driver: dependency %q has no local path; the loader only loads path dependencies", dep.Name)
	}
	return "", fmt.Errorf("driver: dependency %q specifies neither path nor git", dep.Name)
}
