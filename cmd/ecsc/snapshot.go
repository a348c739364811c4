package main

import (
	"fmt"
	"os"
	"path/filepath"

	"ecsc/pkg/driver"
	"ecsc/pkg/schema"
	"ecsc/pkg/schema/sqlitestore"
)

func dbPathFor(manifest *driver.Manifest) string {
	if path := os.Getenv("ECSC_DB"); path != "" {
		return path
	}
	return filepath.Join(manifest.Root(), "schema.db")
}

// runDump loads a package and its dependencies and saves a snapshot of the
// loaded package's registry contents (not its dependencies') to a local
// sqlite database.
func runDump(args []string) int {
	manifestPath, err := resolveManifestArg(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	reg := schema.NewMemoryRegistry()
	loader := driver.NewLoader(reg)
	pkg, err := loader.Load(manifestPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	store, err := sqlitestore.Open(dbPathFor(manifest))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer store.Close()

	if err := store.Save(reg, pkg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "saved snapshot of %s to %s\n", reg.PackageName(pkg), dbPathFor(manifest))
	return 0
}

// runLoad prints a previously dumped snapshot without re-evaluating the
// package it came from.
func runLoad(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: ecsc load <package-name> [schema.yaml]")
		return 1
	}
	packageName := args[0]
	manifestPath, err := resolveManifestArg(args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	manifest, err := driver.LoadManifest(manifestPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	store, err := sqlitestore.Open(dbPathFor(manifest))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	defer store.Close()

	rec, err := store.Load(packageName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "package %s (saved %s)\n", rec.Snapshot.Package, rec.SavedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(os.Stdout, "  %d components, %d transients, %d enums, %d systems, %d actions\n",
		len(rec.Snapshot.Components), len(rec.Snapshot.Transients), len(rec.Snapshot.Enums),
		len(rec.Snapshot.Systems), len(rec.Snapshot.Actions))
	return 0
}
