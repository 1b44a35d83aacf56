package project

import (
	"go/types"

	"obsgen/internal/directive"
	"obsgen/internal/model"
	"obsgen/internal/names"
	"obsgen/internal/scan"
)

func (p *projector) command(c *scan.Candidate, d directive.Directive) (Item, bool) {
	item, _, _, ok := p.checkShape(c, d)
	if !ok {
		return Item{}, false
	}
	if c.Func == nil {
		return Item{}, false
	}

	obj := p.pkg.Info.Defs[c.Func.Name]
	fn, ok2 := obj.(*types.Func)
	if !ok2 {
		return Item{}, false
	}
	sig := fn.Type().(*types.Signature)

	methodName := c.Func.Name.Name
	cmdName := names.Command(methodName)
	if v, set := d.Get("name"); set {
		cmdName = v
	}

	cm := &model.CommandModel{
		MethodName:  methodName,
		CommandName: cmdName,
		Async:       d.Has("async"),
		MethodSpan:  c.Span,
		DirSpan:     d.Span,
	}

	// Raw signature shape, rendered. The validator judges whether the shape
	// is a legal relay; the projector only records what it sees.
	for i := 0; i < sig.Params().Len(); i++ {
		expr, imps := renderType(p.pkg.Types, sig.Params().At(i).Type())
		cm.ParamTypes = append(cm.ParamTypes, expr)
		cm.ParamImports = mergeImports(cm.ParamImports, imps)
	}
	for i := 0; i < sig.Results().Len(); i++ {
		expr, imps := renderType(p.pkg.Types, sig.Results().At(i).Type())
		cm.ResultTypes = append(cm.ResultTypes, expr)
		cm.ParamImports = mergeImports(cm.ParamImports, imps)
	}

	if v, set := d.Get("canexecute"); set {
		cm.CanExecute = v
		cm.CanExecuteSpan = d.ArgSpan("canexecute")
		// Kind is committed only on unique resolution; the 0-match and
		// ambiguous cases stay TargetNone for the validator to report.
		isField := contains(item.Facts.BoolFields, v)
		isMethod := contains(item.Facts.BoolMethods, v)
		switch {
		case isField && !isMethod:
			cm.CanExecuteKind = model.TargetFieldRef
		case isMethod && !isField:
			cm.CanExecuteKind = model.TargetMethodCall
		}
	}

	item.Command = cm
	return item, true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
