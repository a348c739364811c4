package driver

import "strings"

// sanitizeSegment trims a manifest-supplied name so it is safe to use as a
// map key and a filesystem path component.
func sanitizeSegment(name string) string {
	name = strings.TrimSpace(name)
	name = strings.Trim(name, "/")
	return name
}
