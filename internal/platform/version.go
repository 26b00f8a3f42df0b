package platform

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var version string

// Version returns the release version of jurnalo.
func Version() string {
	return strings.TrimSpace(version)
}
