package diagfmt

import (
	"path/filepath"

	"obsgen/internal/source"
)

// displayPath renders a file path according to the path mode.
func displayPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if fs == nil || int(id) >= fs.Len() {
		return "<unknown>"
	}
	f := fs.Get(id)
	switch mode {
	case PathModeAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return abs
		}
		return f.Path
	case PathModeBasename:
		return filepath.Base(f.Path)
	case PathModeRelative, PathModeAuto:
		return fs.RelPath(id)
	}
	return f.Path
}

// hasLocation reports whether the span points at real file content; gate
// and run-level diagnostics carry an empty span.
func hasLocation(fs *source.FileSet, span source.Span) bool {
	return fs != nil && fs.Len() > 0 &&
		int(span.File) < fs.Len() && !(span.File == 0 && span.Start == 0 && span.End == 0)
}
