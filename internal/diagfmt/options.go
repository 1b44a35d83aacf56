// Package diagfmt renders collected diagnostics for humans (pretty), tools
// (JSON) and CI annotation surfaces (SARIF). Rendering never mutates the
// bag; callers sort it first.
package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto prefers relative paths, falling back to absolute.
	PathModeAuto PathMode = iota
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color bool
	// Width caps rendered source lines; 0 means the terminal width or
	// unlimited when that is unknown.
	Width     int
	PathMode  PathMode
	ShowNotes bool
	ShowFixes bool
	// ShowExcerpt prints the offending source line with a caret underline.
	ShowExcerpt bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	// IncludePositions adds line/col to every location.
	IncludePositions bool
	PathMode         PathMode
	// Max truncates the output, not the bag.
	Max          int
	IncludeNotes bool
	IncludeFixes bool
}

// SarifRunMeta provides tool metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}
