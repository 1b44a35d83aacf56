// Package project is the semantic-projector stage. Given syntax candidates
// and the compilation's type information, it resolves each candidate's
// symbol, applies structural preconditions, decodes directive arguments and
// distills everything into the flat value models of internal/model.
//
// The one rule this package lives by: nothing semantic leaves it. Symbols
// and AST nodes are borrowed, scope-limited views owned by the loader;
// models copy out primitives and strings and sever every reference before
// the caching boundary downstream.
//
// Failure handling follows the silent-skip contract: a candidate whose
// symbol does not resolve, or whose node shape turns out not to be a real
// declaration, produces no model and no diagnostic. Malformed directives
// and precondition violations that the user plainly intended to work are
// reported instead.
package project

import (
	"go/token"
	"go/types"
	"sort"

	"obsgen/internal/diag"
	"obsgen/internal/directive"
	"obsgen/internal/model"
	"obsgen/internal/scan"
	"obsgen/internal/source"
)

// Package bundles the borrowed semantic view of one loaded package.
type Package struct {
	Types *types.Package
	Info  *types.Info
	TokFS *token.FileSet
	// Files maps syntax filenames to the span file IDs they were registered
	// under, so spans for positions outside the candidate's own file resolve
	// to the right file.
	Files map[string]source.FileID
	// Dir is the package directory, recorded into units for emission.
	Dir string
}

// Item is one projected member: exactly one of Observable, Property,
// Command, Recipient is set. Items from the same owning type are grouped
// into a TypeUnit by the aggregator.
type Item struct {
	PkgPath  string
	PkgName  string
	TypeName string
	Dir      string
	Facts    model.TypeFacts
	TypeSpan source.Span

	Observable *model.ObservableModel
	Property   *model.PropertyModel
	Command    *model.CommandModel
	Recipient  *model.RecipientModel
}

type projector struct {
	r     diag.Reporter
	pkg   Package
	facts map[*types.Named]model.TypeFacts
	// firstSeen implements first-occurrence-wins for type-level synthesis
	// requested from several places (e.g. recipient directives on methods
	// spread across files).
	firstSeen map[seenKey]bool
}

type seenKey struct {
	typ  *types.Named
	kind directive.Kind
}

// Project runs the semantic projector over the candidates of one package.
// Candidates are processed in deterministic (file, offset) order regardless
// of input order.
func Project(r diag.Reporter, pkg Package, cands []scan.Candidate) []Item {
	sorted := make([]scan.Candidate, len(cands))
	copy(sorted, cands)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].FileID != sorted[j].FileID {
			return sorted[i].FileID < sorted[j].FileID
		}
		return sorted[i].Span.Start < sorted[j].Span.Start
	})

	p := &projector{
		r:         r,
		pkg:       pkg,
		facts:     make(map[*types.Named]model.TypeFacts),
		firstSeen: make(map[seenKey]bool),
	}

	var items []Item
	for i := range sorted {
		items = append(items, p.candidate(&sorted[i])...)
	}
	return items
}

func (p *projector) candidate(c *scan.Candidate) []Item {
	dirs := p.parseDirectives(c)
	if len(dirs) == 0 {
		return nil
	}

	var items []Item
	for _, d := range dirs {
		if item, ok := p.directive(c, d); ok {
			items = append(items, item)
		}
	}
	return items
}

// parseDirectives parses every directive line on the candidate, reporting
// duplicates of the same directive on one declaration.
func (p *projector) parseDirectives(c *scan.Candidate) []directive.Directive {
	var out []directive.Directive
	seen := make(map[directive.Kind]bool)
	for _, line := range c.Lines {
		d, ok := directive.ParseLine(p.r, c.FileID, line.Base, line.Text)
		if !ok {
			continue
		}
		if seen[d.Kind] {
			diag.ReportError(p.r, diag.DirDuplicateDirective, d.Span,
				"directive "+d.Name+" repeated on the same declaration").Emit()
			continue
		}
		seen[d.Kind] = true
		out = append(out, d)
	}
	return out
}

func (p *projector) directive(c *scan.Candidate, d directive.Directive) (Item, bool) {
	spec, _ := directive.Lookup(d.Name)
	if !spec.AllowedOn(targetOf(c.Kind)) {
		diag.ReportError(p.r, diag.DirNotAllowedHere, d.Span,
			"directive "+d.Name+" cannot annotate a "+c.Kind.String()).Emit()
		return Item{}, false
	}

	switch d.Kind {
	case directive.KindObservable:
		return p.observable(c, d)
	case directive.KindProperty:
		return p.property(c, d)
	case directive.KindCommand:
		return p.command(c, d)
	case directive.KindRecipient:
		return p.recipient(c, d)
	}
	return Item{}, false
}

func targetOf(k scan.CandidateKind) directive.Target {
	switch k {
	case scan.CandidateType:
		return directive.TargetType
	case scan.CandidateField:
		return directive.TargetField
	case scan.CandidateMethod:
		return directive.TargetMethod
	}
	return 0
}

// ownerType resolves the named struct type a candidate belongs to. For
// method candidates the receiver's base type is used. A nil result means
// silent skip.
func (p *projector) ownerType(c *scan.Candidate) (*types.Named, *types.Struct) {
	var obj types.Object
	switch {
	case c.Owner != nil:
		obj = p.pkg.Info.Defs[c.Owner.Name]
	case c.Func != nil:
		recv := c.Func.Recv.List[0]
		tv, ok := p.pkg.Info.Types[recv.Type]
		if !ok {
			// receiver type not in Types map; fall back through Defs on names
			if len(recv.Names) > 0 {
				if def := p.pkg.Info.Defs[recv.Names[0]]; def != nil {
					return p.namedStruct(def.Type())
				}
			}
			return nil, nil
		}
		return p.namedStruct(tv.Type)
	}
	if obj == nil {
		return nil, nil
	}
	tn, ok := obj.(*types.TypeName)
	if !ok || tn.IsAlias() {
		return nil, nil
	}
	return p.namedStruct(tn.Type())
}

func (p *projector) namedStruct(t types.Type) (*types.Named, *types.Struct) {
	if ptr, ok := t.(*types.Pointer); ok {
		t = ptr.Elem()
	}
	named, ok := t.(*types.Named)
	if !ok {
		return nil, nil
	}
	st, ok := named.Underlying().(*types.Struct)
	if !ok {
		return nil, nil
	}
	return named, st
}

// checkShape applies the preconditions shared by every directive family and
// assembles the item skeleton. Returns ok=false (with or without a
// diagnostic, per the silent-skip contract) when the candidate is not
// projectable.
func (p *projector) checkShape(c *scan.Candidate, d directive.Directive) (Item, *types.Named, *types.Struct, bool) {
	named, st := p.ownerType(c)
	if named == nil {
		return Item{}, nil, nil, false
	}
	if named.TypeParams().Len() > 0 {
		diag.ReportError(p.r, diag.ValGenericTypeUnsupported, d.Span,
			"generic type "+named.Obj().Name()+" cannot use obsgen directives").Emit()
		return Item{}, nil, nil, false
	}

	item := Item{
		PkgPath:  p.pkg.Types.Path(),
		PkgName:  p.pkg.Types.Name(),
		TypeName: named.Obj().Name(),
		Dir:      p.pkg.Dir,
		Facts:    p.typeFacts(named, st),
		TypeSpan: p.spanOf(named.Obj().Pos(), c.FileID),
	}
	return item, named, st, true
}

func (p *projector) spanOf(pos token.Pos, fallbackFile source.FileID) source.Span {
	if !pos.IsValid() {
		return source.Span{File: fallbackFile}
	}
	position := p.pkg.TokFS.Position(pos)
	file := fallbackFile
	if id, ok := p.pkg.Files[position.Filename]; ok {
		file = id
	}
	off := uint32(position.Offset) //nolint:gosec // source files fit uint32
	return source.Span{File: file, Start: off, End: off}
}
