package rules

import (
	"obsgen/internal/diag"
	"obsgen/internal/model"
	"obsgen/internal/names"
)

func checkCommandSignature(r diag.Reporter, u *model.TypeUnit) {
	for i := range u.Commands {
		c := &u.Commands[i]

		params := c.ParamTypes
		if c.Async && len(params) > 0 && params[0] == "context.Context" {
			params = params[1:]
		}
		if len(params) > 1 {
			diag.ReportError(r, diag.ValCommandBadSignature, c.MethodSpan,
				"command method "+c.MethodName+" takes more than one value parameter").
				WithNote(c.DirSpan, "commands relay either no argument or exactly one").
				Emit()
		}

		switch {
		case len(c.ResultTypes) == 0:
		case len(c.ResultTypes) == 1 && c.ResultTypes[0] == "error":
		default:
			diag.ReportError(r, diag.ValCommandBadSignature, c.MethodSpan,
				"command method "+c.MethodName+" must return nothing or a single error").Emit()
		}
	}
}

func checkAsyncContext(r diag.Reporter, u *model.TypeUnit) {
	for i := range u.Commands {
		c := &u.Commands[i]
		if !c.Async {
			continue
		}
		if len(c.ParamTypes) == 0 || c.ParamTypes[0] != "context.Context" {
			diag.ReportError(r, diag.ValAsyncCommandNoContext, c.MethodSpan,
				"async command "+c.MethodName+" must take context.Context as its first parameter").Emit()
		}
	}
}

func checkCommandHost(r diag.Reporter, u *model.TypeUnit) {
	if len(u.Commands) == 0 || u.Facts.HasEmbed(commandHost) {
		return
	}
	diag.ReportError(r, diag.ValCommandMissingHost, u.TypeSpan,
		"type "+u.TypeName+" must embed command.Host to cache generated command accessors").Emit()
}

func checkCommandMethodExported(r diag.Reporter, u *model.TypeUnit) {
	for i := range u.Commands {
		c := &u.Commands[i]
		if names.IsExported(c.MethodName) {
			diag.ReportError(r, diag.ValCommandMethodExported, c.MethodSpan,
				"command method "+c.MethodName+" must be unexported; the generated accessor is the public surface").Emit()
		}
	}
}

// canExecuteMatches counts bool-shaped members answering to the name.
func canExecuteMatches(f model.TypeFacts, name string) int {
	n := 0
	for _, v := range f.BoolFields {
		if v == name {
			n++
		}
	}
	for _, v := range f.BoolMethods {
		if v == name {
			n++
		}
	}
	return n
}

func checkCanExecuteNotFound(r diag.Reporter, u *model.TypeUnit) {
	for i := range u.Commands {
		c := &u.Commands[i]
		if c.CanExecute == "" || canExecuteMatches(u.Facts, c.CanExecute) != 0 {
			continue
		}
		// Distinguish "nothing by that name at all" from "exists but wrong
		// shape": the latter has its own rule.
		if u.Facts.HasField(c.CanExecute) || u.Facts.HasMethod(c.CanExecute) {
			continue
		}
		diag.ReportError(r, diag.ValCanExecuteNotFound, c.CanExecuteSpan,
			"canexecute target "+c.CanExecute+" does not name a member of "+u.TypeName).Emit()
	}
}

func checkCanExecuteAmbiguous(r diag.Reporter, u *model.TypeUnit) {
	for i := range u.Commands {
		c := &u.Commands[i]
		if c.CanExecute != "" && canExecuteMatches(u.Facts, c.CanExecute) > 1 {
			diag.ReportError(r, diag.ValCanExecuteAmbiguous, c.CanExecuteSpan,
				"canexecute target "+c.CanExecute+" matches both a field and a method of "+u.TypeName).Emit()
		}
	}
}

func checkCanExecuteShape(r diag.Reporter, u *model.TypeUnit) {
	for i := range u.Commands {
		c := &u.Commands[i]
		if c.CanExecute == "" || canExecuteMatches(u.Facts, c.CanExecute) != 0 {
			continue
		}
		if u.Facts.HasField(c.CanExecute) {
			diag.ReportError(r, diag.ValCanExecuteBadShape, c.CanExecuteSpan,
				"canexecute field "+c.CanExecute+" must have type bool").Emit()
		} else if u.Facts.HasMethod(c.CanExecute) {
			diag.ReportError(r, diag.ValCanExecuteBadShape, c.CanExecuteSpan,
				"canexecute method "+c.CanExecute+" must take no parameters and return a single bool").Emit()
		}
	}
}
