// Package version carries build identification for the obsgen CLI.
// The variables are overridden at build time via -ldflags.
package version

import (
	"strings"

	"github.com/fatih/color"
)

var (
	// Version is the semantic version of the CLI. It is plain text so it
	// can be embedded in generated-file headers.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Styled renders the version with per-component colors for terminal output.
// Falls back to the plain string when the version is not dotted semver.
func Styled() string {
	base, suffix := Version, ""
	if i := strings.IndexAny(base, "-+"); i >= 0 {
		base, suffix = base[:i], base[i:]
	}
	parts := strings.Split(base, ".")
	if len(parts) != 3 {
		return Version
	}
	return majorColor.Sprint(parts[0]) + "." +
		minorColor.Sprint(parts[1]) + "." +
		patchColor.Sprint(parts[2]) + suffix
}

// Full returns the styled version followed by commit and build date when
// they were stamped in.
func Full() string {
	out := Styled()
	if GitCommit != "" {
		out += " (" + GitCommit
		if BuildDate != "" {
			out += ", " + BuildDate
		}
		out += ")"
	} else if BuildDate != "" {
		out += " (" + BuildDate + ")"
	}
	return out
}
