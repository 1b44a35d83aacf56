package diag

import (
	"obsgen/internal/source"
)

// Note attaches secondary context to a diagnostic.
type Note struct {
	Span source.Span
	Msg  string
}

// TextEdit replaces the text covered by Span with NewText. OldText, when
// non-empty, guards the edit: it must match the current content or the fix
// is skipped.
type TextEdit struct {
	Span    source.Span
	NewText string
	OldText string
}

// Fix is a suggested source change attached to a diagnostic.
type Fix struct {
	ID          string
	Title       string
	Edits       []TextEdit
	IsPreferred bool
}

// Diagnostic is one identified report tied to a source location.
type Diagnostic struct {
	Severity Severity
	Code     Code
	Message  string
	Primary  source.Span
	Notes    []Note
	Fixes    []Fix
}

// WithFix returns a copy of the diagnostic with an extra fix appended.
func (d Diagnostic) WithFix(title string, edits ...TextEdit) Diagnostic {
	d.Fixes = append(d.Fixes[:len(d.Fixes):len(d.Fixes)], Fix{Title: title, Edits: edits})
	return d
}
