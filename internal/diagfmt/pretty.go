package diagfmt

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"obsgen/internal/diag"
	"obsgen/internal/source"
)

// Pretty renders diagnostics for a terminal. Expects a sorted bag. Each
// diagnostic prints as
//
//	path:line:col: error VAL3004: notify target Missing does not ...
//	    name string
//	    ^~~~
//
// followed by indented notes, and fix titles when ShowFixes is set.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	width := opts.Width
	if width == 0 {
		if tw, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && tw > 20 {
			width = tw
		}
	}

	sevColor := map[diag.Severity]*color.Color{
		diag.SevError:   color.New(color.FgRed, color.Bold),
		diag.SevWarning: color.New(color.FgYellow, color.Bold),
		diag.SevInfo:    color.New(color.FgCyan),
	}

	paint := func(sev diag.Severity, s string) string {
		if !opts.Color {
			return s
		}
		if c, ok := sevColor[sev]; ok {
			return c.Sprint(s)
		}
		return s
	}

	for _, d := range bag.Items() {
		head := paint(d.Severity, d.Severity.String()) + " " + d.Code.ID() + ": " + d.Message
		if hasLocation(fs, d.Primary) {
			start, _ := fs.Resolve(d.Primary)
			fmt.Fprintf(w, "%s:%d:%d: %s\n",
				displayPath(fs, d.Primary.File, opts.PathMode), start.Line, start.Col, head)
			if opts.ShowExcerpt {
				writeExcerpt(w, fs, d.Primary, width)
			}
		} else {
			fmt.Fprintf(w, "%s\n", head)
		}

		if opts.ShowNotes {
			for _, n := range d.Notes {
				if hasLocation(fs, n.Span) {
					start, _ := fs.Resolve(n.Span)
					fmt.Fprintf(w, "  note: %s (%s:%d:%d)\n", n.Msg,
						displayPath(fs, n.Span.File, opts.PathMode), start.Line, start.Col)
				} else {
					fmt.Fprintf(w, "  note: %s\n", n.Msg)
				}
			}
		}
		if opts.ShowFixes {
			for _, f := range d.Fixes {
				marker := "fix"
				if f.IsPreferred {
					marker = "fix*"
				}
				fmt.Fprintf(w, "  %s: %s\n", marker, f.Title)
			}
		}
	}
}

// writeExcerpt prints the first line the span covers with a caret
// underline sized to the span's extent on that line.
func writeExcerpt(w io.Writer, fs *source.FileSet, span source.Span, width int) {
	f := fs.Get(span.File)
	start, end := fs.Resolve(span)
	line := f.GetLine(start.Line)
	if line == "" {
		return
	}
	line = strings.ReplaceAll(line, "\t", "    ")
	if width > 8 && runewidth.StringWidth(line) > width-4 {
		line = runewidth.Truncate(line, width-4, "…")
	}

	fmt.Fprintf(w, "    %s\n", line)

	caretStart := int(start.Col) - 1
	caretLen := 1
	if end.Line == start.Line && end.Col > start.Col {
		caretLen = int(end.Col - start.Col)
	}
	if caretStart < 0 || caretStart > runewidth.StringWidth(line) {
		return
	}
	underline := strings.Repeat(" ", caretStart) + "^" + strings.Repeat("~", maxInt(caretLen-1, 0))
	fmt.Fprintf(w, "    %s\n", underline)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
