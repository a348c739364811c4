package main

import (
	"fmt"
	"io"

	"ecsc/pkg/schema"
)

// printSummary reports every declaration the named package carries,
// grouped by kind, for the `run` command's human-facing output.
func printSummary(w io.Writer, reg schema.Registry, pkg schema.PackageID) {
	fmt.Fprintf(w, "package %s\n", reg.PackageName(pkg))
	for _, id := range reg.ComponentIDs(pkg) {
		fmt.Fprintf(w, "  component %s (%d fields)\n", reg.DeclarationName(id), len(reg.FieldIDs(id)))
	}
	for _, id := range reg.TransientIDs(pkg) {
		fmt.Fprintf(w, "  transient %s (%d fields)\n", reg.DeclarationName(id), len(reg.FieldIDs(id)))
	}
	for _, id := range reg.EnumIDs(pkg) {
		fmt.Fprintf(w, "  enum %s (%d values)\n", reg.DeclarationName(id), len(reg.EnumValues(id)))
	}
	for _, id := range reg.SystemIDs(pkg) {
		printSystemLike(w, reg, "system", id)
	}
	for _, id := range reg.ActionIDs(pkg) {
		printSystemLike(w, reg, "action", id)
	}
}

func printSystemLike(w io.Writer, reg schema.Registry, label string, id schema.DeclID) {
	fmt.Fprintf(w, "  %s %s (%d capabilities, %d associations)\n",
		label, reg.DeclarationName(id), len(reg.SystemCapabilities(id)), len(reg.SystemAssocIDs(id)))
}
