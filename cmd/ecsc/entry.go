package main

import (
	"fmt"
	"os"
	"path/filepath"

	"ecsc/pkg/driver"
	"ecsc/pkg/schema"
)

func runEntry(args []string) int {
	manifestPath, err := resolveManifestArg(args)
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
	printSummary(os.Stdout, reg, pkg)
	return 0
}

func runCheck(args []string) int {
	manifestPath, err := resolveManifestArg(args)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	reg := schema.NewMemoryRegistry()
	loader := driver.NewLoader(reg)
	if _, err := loader.Load(manifestPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	fmt.Fprintln(os.Stdout, "ok")
	return 0
}

func resolveManifestArg(args []string) (string, error) {
	target := "."
	if len(args) > 0 {
		target = args[0]
	}
	info, err := os.Stat(target)
	if err != nil {
		return "", fmt.Errorf("ecsc: %w", err)
	}
	if info.IsDir() {
		return filepath.Join(target, "schema.yaml"), nil
	}
	return target, nil
}
