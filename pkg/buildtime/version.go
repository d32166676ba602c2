// Package buildtime exposes version information stamped into the binary.
package buildtime

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

//go:embed revision
var revision string

// VERSION is the release this binary was built from.
func VERSION() string {
	return strings.TrimSpace(version)
}

// GIT_REVISION is the commit this binary was built from.
func GIT_REVISION() string {
	return strings.TrimSpace(revision)
}

func VersionString() string {
	return VERSION() + " (commit: " + GIT_REVISION() + ")"
}
