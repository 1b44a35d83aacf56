// Package fix applies the text edits attached to diagnostics back to the
// source tree. Edits are guarded: when a fix carries OldText and the file
// no longer matches, the fix is skipped rather than corrupting the file.
package fix

import (
	"fmt"
	"os"
	"sort"

	"github.com/cockroachdb/errors"

	"obsgen/internal/diag"
	"obsgen/internal/source"
)

// ErrNoFixes is returned when nothing was applied.
var ErrNoFixes = errors.New("no applicable fixes found")

// ApplyMode determines the selection strategy.
type ApplyMode uint8

const (
	// ApplyModeOnce applies the first applicable fix only.
	ApplyModeOnce ApplyMode = iota
	// ApplyModeAll applies every non-conflicting fix.
	ApplyModeAll
	// ApplyModeID applies only the fix with the given stable ID.
	ApplyModeID
)

// ApplyOptions configures fix selection.
type ApplyOptions struct {
	Mode     ApplyMode
	TargetID string
	// DryRun computes changes without writing files.
	DryRun bool
}

// AppliedFix records a successfully applied fix.
type AppliedFix struct {
	ID        string
	Title     string
	Code      diag.Code
	Path      string
	EditCount int
}

// SkippedFix captures a skipped fix with its reason.
type SkippedFix struct {
	ID     string
	Title  string
	Reason string
}

// ApplyResult aggregates the outcome of one fix run.
type ApplyResult struct {
	Applied []AppliedFix
	Skipped []SkippedFix
	// Changed maps file paths to their rewritten content (written to disk
	// unless DryRun).
	Changed map[string][]byte
}

type candidate struct {
	diag  diag.Diagnostic
	fix   diag.Fix
	order int
}

// Apply selects fixes from the diagnostics according to opts and applies
// them to the files in fs.
func Apply(fs *source.FileSet, diagnostics []diag.Diagnostic, opts ApplyOptions) (*ApplyResult, error) {
	result := &ApplyResult{Changed: make(map[string][]byte)}
	if fs == nil {
		return result, errors.New("fix: FileSet is nil")
	}

	cands := gather(diagnostics)
	if len(cands) == 0 {
		return result, ErrNoFixes
	}
	sortCandidates(cands)

	selected, skips := selectCandidates(cands, opts)
	result.Skipped = append(result.Skipped, skips...)
	if len(selected) == 0 {
		return result, ErrNoFixes
	}

	content := make(map[source.FileID][]byte)
	touched := make(map[source.FileID]bool)

	for _, c := range selected {
		if skip, reason := apply(fs, content, c.fix); skip {
			result.Skipped = append(result.Skipped, SkippedFix{
				ID: c.fix.ID, Title: c.fix.Title, Reason: reason,
			})
			continue
		}
		path := fs.Get(c.fix.Edits[0].Span.File).Path
		for _, e := range c.fix.Edits {
			touched[e.Span.File] = true
		}
		result.Applied = append(result.Applied, AppliedFix{
			ID:        c.fix.ID,
			Title:     c.fix.Title,
			Code:      c.diag.Code,
			Path:      path,
			EditCount: len(c.fix.Edits),
		})
		if opts.Mode == ApplyModeOnce {
			break
		}
	}

	if len(result.Applied) == 0 {
		return result, ErrNoFixes
	}

	for id := range touched {
		f := fs.Get(id)
		result.Changed[f.Path] = content[id]
		if opts.DryRun || f.Flags&source.FileVirtual != 0 {
			continue
		}
		if err := os.WriteFile(f.Path, content[id], 0o644); err != nil {
			return result, errors.Wrapf(err, "write %s", f.Path)
		}
	}
	return result, nil
}

func gather(diagnostics []diag.Diagnostic) []candidate {
	var cands []candidate
	order := 0
	for _, d := range diagnostics {
		for i, f := range d.Fixes {
			if len(f.Edits) == 0 {
				continue
			}
			if f.ID == "" {
				e := f.Edits[0]
				f.ID = fmt.Sprintf("%s-%d-%d-%d", d.Code.ID(), e.Span.File, e.Span.Start, i)
			}
			cands = append(cands, candidate{diag: d, fix: f, order: order})
			order++
		}
	}
	return cands
}

// sortCandidates orders preferred fixes first, then by file position, then
// by insertion order for stability.
func sortCandidates(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		a, b := cands[i], cands[j]
		if a.fix.IsPreferred != b.fix.IsPreferred {
			return a.fix.IsPreferred
		}
		ae, be := a.fix.Edits[0], b.fix.Edits[0]
		if ae.Span.File != be.Span.File {
			return ae.Span.File < be.Span.File
		}
		if ae.Span.Start != be.Span.Start {
			return ae.Span.Start < be.Span.Start
		}
		return a.order < b.order
	})
}

func selectCandidates(cands []candidate, opts ApplyOptions) ([]candidate, []SkippedFix) {
	if opts.Mode != ApplyModeID {
		return cands, nil
	}
	var selected []candidate
	var skips []SkippedFix
	for _, c := range cands {
		if c.fix.ID == opts.TargetID {
			selected = append(selected, c)
		}
	}
	if len(selected) == 0 {
		skips = append(skips, SkippedFix{
			ID:     opts.TargetID,
			Reason: "no fix with this ID",
		})
	}
	return selected, skips
}

// apply performs one fix's edits against the working content, verifying
// OldText guards first. Edits are applied back-to-front so earlier offsets
// stay valid.
func apply(fs *source.FileSet, content map[source.FileID][]byte, f diag.Fix) (skipped bool, reason string) {
	edits := make([]diag.TextEdit, len(f.Edits))
	copy(edits, f.Edits)
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].Span.Start > edits[j].Span.Start
	})

	// guard pass over the current working content
	for _, e := range edits {
		buf, ok := content[e.Span.File]
		if !ok {
			buf = fs.Get(e.Span.File).Content
		}
		if int(e.Span.End) > len(buf) {
			return true, "edit span out of range"
		}
		if e.OldText != "" && string(buf[e.Span.Start:e.Span.End]) != e.OldText {
			return true, "file changed since the diagnostic was produced"
		}
	}

	for _, e := range edits {
		buf, ok := content[e.Span.File]
		if !ok {
			buf = append([]byte(nil), fs.Get(e.Span.File).Content...)
		}
		next := make([]byte, 0, len(buf)+len(e.NewText))
		next = append(next, buf[:e.Span.Start]...)
		next = append(next, e.NewText...)
		next = append(next, buf[e.Span.End:]...)
		content[e.Span.File] = next
	}
	return false, ""
}
