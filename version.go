package balance

import (
	_ "embed"
	"strings"
)

//go:embed VERSION
var rawVersion string

// Version returns the module version.
func Version() string {
	return strings.TrimSpace(rawVersion)
}
