package project

import (
	"go/types"

	"obsgen/internal/diag"
	"obsgen/internal/directive"
	"obsgen/internal/model"
	"obsgen/internal/names"
	"obsgen/internal/scan"
)

func (p *projector) property(c *scan.Candidate, d directive.Directive) (Item, bool) {
	item, _, st, ok := p.checkShape(c, d)
	if !ok {
		return Item{}, false
	}
	if c.Field == nil || len(c.Field.Names) == 0 {
		// embedded field or vanished node: nothing to name, silent skip
		return Item{}, false
	}
	if len(c.Field.Names) > 1 {
		diag.ReportError(p.r, diag.DirNotAllowedHere, d.Span,
			"property directive cannot annotate a multi-name field declaration").
			WithNote(c.Span, "split the declaration so each property has its own field").
			Emit()
		return Item{}, false
	}

	fieldName := c.Field.Names[0].Name
	fieldType := p.fieldType(st, fieldName)
	if fieldType == nil {
		return Item{}, false
	}

	propName := names.Property(fieldName)
	if v, set := d.Get("name"); set {
		propName = v
	}

	typeExpr, typeImports := renderType(p.pkg.Types, fieldType)

	pm := &model.PropertyModel{
		FieldName:    fieldName,
		PropertyName: propName,
		TypeExpr:     typeExpr,
		TypeImports:  typeImports,
		Broadcast:    d.Has("broadcast"),
		Validate:     d.Has("validate"),
		Comparable:   types.Comparable(fieldType),
		FieldSpan:    c.Span,
		DirSpan:      d.Span,
	}
	if pm.Validate {
		if hook := "validate" + propName; item.Facts.HasMethod(hook) {
			pm.ValidateHook = hook
		}
	}
	if v, set := d.Get("notify"); set {
		pm.Notify = directive.SplitList(v)
		pm.NotifySpan = d.ArgSpan("notify")
	}

	item.Property = pm
	return item, true
}

func (p *projector) fieldType(st *types.Struct, name string) types.Type {
	for i := 0; i < st.NumFields(); i++ {
		if f := st.Field(i); !f.Embedded() && f.Name() == name {
			return f.Type()
		}
	}
	return nil
}
