package project

import (
	"go/ast"

	"obsgen/internal/diag"
	"obsgen/internal/directive"
	"obsgen/internal/model"
	"obsgen/internal/scan"
	"obsgen/internal/source"
)

func (p *projector) observable(c *scan.Candidate, d directive.Directive) (Item, bool) {
	item, named, _, ok := p.checkShape(c, d)
	if !ok {
		return Item{}, false
	}

	// First occurrence wins: a second observable directive on the same type
	// (usually in another file of the package) is reported and dropped so
	// the aggregated unit stays single-sourced.
	key := seenKey{typ: named, kind: directive.KindObservable}
	if p.firstSeen[key] {
		diag.ReportError(p.r, diag.ValObservableAlreadyDeclared, d.Span,
			"type "+item.TypeName+" is already declared observable").Emit()
		return Item{}, false
	}
	p.firstSeen[key] = true

	var bodySpan source.Span
	if c.Owner != nil {
		if st, isStruct := c.Owner.Type.(*ast.StructType); isStruct && st.Fields != nil && st.Fields.Opening.IsValid() {
			bodySpan = p.spanOf(st.Fields.Opening+1, c.FileID)
		}
	}

	item.Observable = &model.ObservableModel{
		Validate: d.Has("validate"),
		Span:     d.Span,
		BodySpan: bodySpan,
	}
	return item, true
}
