// Package scan is the syntax-filter stage: a cheap, semantics-free pass
// over go/ast files that flags declarations structurally capable of
// carrying an obsgen directive. It runs on every file of every loaded
// package, so the predicate is a plain comment-prefix check; anything it
// lets through is re-examined (and possibly dropped) by the semantic
// projector. False positives here are cheap, false negatives would
// silently drop valid input, so the filter only requires node shape plus
// the comment marker and nothing else.
package scan

import (
	"go/ast"
	"go/token"
	"strings"

	"fortio.org/safecast"

	"obsgen/internal/directive"
	"obsgen/internal/source"
)

// CandidateKind tags the node shape a candidate was flagged on.
type CandidateKind uint8

const (
	CandidateType CandidateKind = iota
	CandidateField
	CandidateMethod
)

func (k CandidateKind) String() string {
	switch k {
	case CandidateType:
		return "type"
	case CandidateField:
		return "field"
	case CandidateMethod:
		return "method"
	}
	return "unknown"
}

// Line is one raw directive comment line with its byte offset, ready for
// directive.ParseLine.
type Line struct {
	Text string
	Base uint32
}

// Candidate is a flagged syntax location. It holds live AST references and
// is consumed within the same pipeline run; candidates are never cached.
type Candidate struct {
	Kind   CandidateKind
	FileID source.FileID
	Span   source.Span

	// Owner is the enclosing type spec; set for every kind (for methods it
	// is nil, the receiver is resolved semantically later).
	Owner *ast.TypeSpec
	Field *ast.Field
	Func  *ast.FuncDecl
	Lines []Line
}

// File scans one parsed file and returns candidates in source order.
// fileID identifies the file inside the caller's source.FileSet; tokfs is
// the token file set the AST was parsed with.
func File(f *ast.File, tokfs *token.FileSet, fileID source.FileID) []Candidate {
	var out []Candidate

	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.GenDecl:
			if d.Tok != token.TYPE {
				continue
			}
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				doc := ts.Doc
				if doc == nil && len(d.Specs) == 1 {
					doc = d.Doc
				}
				if lines := directiveLines(doc, tokfs); len(lines) > 0 {
					out = append(out, Candidate{
						Kind:   CandidateType,
						FileID: fileID,
						Span:   nodeSpan(ts.Name, tokfs, fileID),
						Owner:  ts,
						Lines:  lines,
					})
				}
				out = appendFieldCandidates(out, ts, tokfs, fileID)
			}
		case *ast.FuncDecl:
			if d.Recv == nil || len(d.Recv.List) == 0 {
				continue
			}
			if lines := directiveLines(d.Doc, tokfs); len(lines) > 0 {
				out = append(out, Candidate{
					Kind:   CandidateMethod,
					FileID: fileID,
					Span:   nodeSpan(d.Name, tokfs, fileID),
					Func:   d,
					Lines:  lines,
				})
			}
		}
	}
	return out
}

func appendFieldCandidates(out []Candidate, ts *ast.TypeSpec, tokfs *token.FileSet, fileID source.FileID) []Candidate {
	st, ok := ts.Type.(*ast.StructType)
	if !ok || st.Fields == nil {
		return out
	}
	for _, field := range st.Fields.List {
		lines := directiveLines(field.Doc, tokfs)
		if len(lines) == 0 {
			continue
		}
		span := nodeSpan(field, tokfs, fileID)
		if len(field.Names) > 0 {
			span = nodeSpan(field.Names[0], tokfs, fileID)
		}
		out = append(out, Candidate{
			Kind:   CandidateField,
			FileID: fileID,
			Span:   span,
			Owner:  ts,
			Field:  field,
			Lines:  lines,
		})
	}
	return out
}

// directiveLines extracts //obsgen: lines with their offsets. Pure string
// prefix matching; malformed directives still pass (parsing happens later).
func directiveLines(doc *ast.CommentGroup, tokfs *token.FileSet) []Line {
	if doc == nil {
		return nil
	}
	var lines []Line
	for _, c := range doc.List {
		if !strings.HasPrefix(c.Text, directive.Prefix) {
			continue
		}
		off := tokfs.Position(c.Pos()).Offset
		base, err := safecast.Conv[uint32](off)
		if err != nil {
			continue
		}
		lines = append(lines, Line{Text: c.Text, Base: base})
	}
	return lines
}

func nodeSpan(n ast.Node, tokfs *token.FileSet, fileID source.FileID) source.Span {
	start, err := safecast.Conv[uint32](tokfs.Position(n.Pos()).Offset)
	if err != nil {
		return source.Span{File: fileID}
	}
	end, err := safecast.Conv[uint32](tokfs.Position(n.End()).Offset)
	if err != nil {
		return source.Span{File: fileID}
	}
	return source.Span{File: fileID, Start: start, End: end}
}
