package main

import (
	"fmt"
	"os"
	"path/filepath"

	"ecsc/pkg/driver"
	"ecsc/pkg/schema"
)

func runDeps(args []string) int {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "usage: ecsc deps <fetch|lock> [schema.yaml]")
		return 1
	}
	switch args[0] {
	case "fetch":
		return runDepsFetch(args[1:])
	case "lock":
		return runDepsLock(args[1:])
	default:
		fmt.Fprintf(os.Stderr, "unknown deps command %q\n", args[0])
		return 1
	}
}

func cacheDirFor(manifest *driver.Manifest) string {
	if dir := os.Getenv("ECSC_CACHE"); dir != "" {
		return dir
	}
	return filepath.Join(manifest.Root(), ".ecsc-cache")
}

func runDepsFetch(args []string) int {
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
	cacheDir := cacheDirFor(manifest)
	lock, err := driver.LoadLockfile(filepath.Join(manifest.Root(), "schema.lock"))
	if err != nil {
		lock = driver.NewLockfile(manifest.Root(), cliToolVersion)
	}
	for _, dep := range manifest.Dependencies {
		if dep.Git == "" {
			continue
		}
		locked, dir, err := driver.FetchGitDependency(cacheDir, lock, dep)
		if err != nil {
			fmt.Fprintf(os.Stderr, "fetch %s: %v\n", dep.Name, err)
			return 1
		}
		fmt.Fprintf(os.Stdout, "fetched %s@%s -> %s\n", locked.Name, locked.Resolved, dir)
	}
	return 0
}

// digestDependency loads the package rooted at manifestPath into a scratch
// registry and fingerprints its declarations via driver.DigestSnapshot, so
// a lock entry can record what a dependency actually declares rather than
// just where it came from.
func digestDependency(manifestPath string) ([]string, string, error) {
	reg := schema.NewMemoryRegistry()
	pkg, err := driver.NewLoader(reg).Load(manifestPath)
	if err != nil {
		return nil, "", err
	}
	declares, digest := driver.DigestSnapshot(schema.BuildSnapshot(reg, pkg))
	return declares, digest, nil
}

func runDepsLock(args []string) int {
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
	cacheDir := cacheDirFor(manifest)
	lockPath := filepath.Join(manifest.Root(), "schema.lock")
	lock, err := driver.LoadLockfile(lockPath)
	if err != nil {
		lock = driver.NewLockfile(manifest.Root(), cliToolVersion)
	}
	lock.Tool = cliToolVersion

	for _, dep := range manifest.Dependencies {
		switch {
		case dep.Git != "":
			locked, dir, err := driver.FetchGitDependency(cacheDir, lock, dep)
			if err != nil {
				fmt.Fprintf(os.Stderr, "lock %s: %v\n", dep.Name, err)
				return 1
			}
			declares, digest, err := digestDependency(filepath.Join(dir, "schema.yaml"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "lock %s: %v\n", dep.Name, err)
				return 1
			}
			locked.Declares, locked.Digest = declares, digest
			lock.Put(locked)
		case dep.Path != "":
			declares, digest, err := digestDependency(filepath.Join(manifest.Root(), dep.Path, "schema.yaml"))
			if err != nil {
				fmt.Fprintf(os.Stderr, "lock %s: %v\n", dep.Name, err)
				return 1
			}
			lock.Put(&driver.LockedDependency{
				Name:     dep.Name,
				Source:   fmt.Sprintf("path:%s", dep.Path),
				Resolved: "local",
				Declares: declares,
				Digest:   digest,
			})
		}
	}
	if err := driver.WriteLockfile(lock, lockPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintf(os.Stdout, "wrote %s\n", lockPath)
	return 0
}
