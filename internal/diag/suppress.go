package diag

import (
	"github.com/bmatcuk/doublestar/v4"

	"obsgen/internal/source"
)

// Suppression silences one diagnostic code, optionally limited to files
// matching a doublestar glob. Justification is mandatory so suppression
// files stay auditable.
type Suppression struct {
	Code          Code
	PathGlob      string
	Justification string
}

// Matches reports whether the suppression applies to the given code at path.
func (s Suppression) Matches(code Code, path string) bool {
	if s.Code != code {
		return false
	}
	if s.PathGlob == "" {
		return true
	}
	ok, err := doublestar.Match(s.PathGlob, path)
	return err == nil && ok
}

// SuppressingReporter filters diagnostics against an allow-list of
// suppressions before forwarding to the next reporter. Suppressed
// diagnostics are counted, not lost silently.
type SuppressingReporter struct {
	next       Reporter
	fs         *source.FileSet
	rules      []Suppression
	suppressed int
}

// NewSuppressingReporter builds the filter. The FileSet is used to resolve
// span file IDs into paths for glob matching; it may be nil, in which case
// only glob-less rules apply.
func NewSuppressingReporter(next Reporter, fs *source.FileSet, rules []Suppression) *SuppressingReporter {
	return &SuppressingReporter{next: next, fs: fs, rules: rules}
}

// Suppressed returns how many diagnostics were silenced so far.
func (r *SuppressingReporter) Suppressed() int {
	if r == nil {
		return 0
	}
	return r.suppressed
}

func (r *SuppressingReporter) Report(code Code, sev Severity, primary source.Span, msg string, notes []Note, fixes []Fix) {
	if r == nil {
		return
	}
	path := ""
	if r.fs != nil && int(primary.File) < r.fs.Len() {
		path = r.fs.RelPath(primary.File)
	}
	for _, rule := range r.rules {
		if rule.PathGlob != "" && path == "" {
			continue
		}
		if rule.Matches(code, path) {
			r.suppressed++
			return
		}
	}
	if r.next != nil {
		r.next.Report(code, sev, primary, msg, notes, fixes)
	}
}
