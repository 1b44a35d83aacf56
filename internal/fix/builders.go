package fix

import (
	"obsgen/internal/diag"
	"obsgen/internal/source"
)

// Builders construct well-formed fixes for rule and projector code. Spans
// are byte offsets into the normalized file content, the same coordinates
// diagnostics carry.

// InsertText creates a fix that inserts text at span.Start. The span's End
// is ignored.
func InsertText(title string, span source.Span, text string) diag.Fix {
	at := source.Span{File: span.File, Start: span.Start, End: span.Start}
	return diag.Fix{
		Title: title,
		Edits: []diag.TextEdit{{Span: at, NewText: text}},
	}
}

// ReplaceSpan creates a fix that replaces the span with text. oldText, when
// non-empty, becomes a guard: the fix is skipped if the file content at the
// span no longer matches.
func ReplaceSpan(title string, span source.Span, text, oldText string) diag.Fix {
	return diag.Fix{
		Title: title,
		Edits: []diag.TextEdit{{Span: span, NewText: text, OldText: oldText}},
	}
}

// DeleteSpan creates a fix that removes the span, with an optional oldText
// guard.
func DeleteSpan(title string, span source.Span, oldText string) diag.Fix {
	return ReplaceSpan(title, span, "", oldText)
}

// Preferred marks the fix as the preferred one for its diagnostic.
func Preferred(f diag.Fix) diag.Fix {
	f.IsPreferred = true
	return f
}

// WithID assigns a stable ID so the fix can be targeted from the CLI.
func WithID(f diag.Fix, id string) diag.Fix {
	f.ID = id
	return f
}
