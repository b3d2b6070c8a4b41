// Package hobbes holds shared metadata for the hobbes calendar tools.
package hobbes

import (
	_ "embed"
	"strings"
)

//go:embed .version
var embeddedVersion string

// Version returns the embedded version string, trimmed.
func Version() string {
	return strings.TrimSpace(embeddedVersion)
}
