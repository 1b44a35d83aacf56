package rules

import (
	"obsgen/internal/diag"
	"obsgen/internal/model"
	"obsgen/internal/names"
)

// notifyTargets counts how many generated members answer to the given
// name: other properties by their property name, plus declared methods.
// Matching is exact and case-sensitive.
func notifyTargets(u *model.TypeUnit, name string) int {
	n := 0
	for i := range u.Properties {
		if u.Properties[i].PropertyName == name {
			n++
		}
	}
	if u.Facts.HasMethod(name) {
		n++
	}
	return n
}

func checkNotifyNotFound(r diag.Reporter, u *model.TypeUnit) {
	for i := range u.Properties {
		p := &u.Properties[i]
		for _, target := range p.Notify {
			if target == p.PropertyName {
				continue // self-notify has its own rule
			}
			if notifyTargets(u, target) == 0 {
				diag.ReportError(r, diag.ValNotifyTargetNotFound, p.NotifySpan,
					"notify target "+target+" does not name a property or method of "+u.TypeName).
					WithNote(p.DirSpan, "matching is exact and case-sensitive").
					Emit()
			}
		}
	}
}

func checkNotifyAmbiguous(r diag.Reporter, u *model.TypeUnit) {
	for i := range u.Properties {
		p := &u.Properties[i]
		for _, target := range p.Notify {
			if target == p.PropertyName {
				continue
			}
			if notifyTargets(u, target) > 1 {
				diag.ReportError(r, diag.ValNotifyTargetAmbiguous, p.NotifySpan,
					"notify target "+target+" matches both a property and a method of "+u.TypeName).Emit()
			}
		}
	}
}

func checkNotifySelf(r diag.Reporter, u *model.TypeUnit) {
	for i := range u.Properties {
		p := &u.Properties[i]
		for _, target := range p.Notify {
			if target == p.PropertyName {
				diag.ReportError(r, diag.ValNotifyTargetSelf, p.NotifySpan,
					"property "+p.PropertyName+" already notifies itself; drop it from notify").Emit()
			}
		}
	}
}

func checkPropertyNameCollision(r diag.Reporter, u *model.TypeUnit) {
	seen := make(map[string]*model.PropertyModel, len(u.Properties))
	for i := range u.Properties {
		p := &u.Properties[i]
		if prev, dup := seen[p.PropertyName]; dup {
			diag.ReportError(r, diag.ValPropertyNameCollision, p.DirSpan,
				"property name "+p.PropertyName+" is already generated from field "+prev.FieldName).
				WithNote(prev.DirSpan, "first declared here").
				Emit()
			continue
		}
		seen[p.PropertyName] = p
	}
}

func checkValidateHookShape(r diag.Reporter, u *model.TypeUnit) {
	for i := range u.Properties {
		p := &u.Properties[i]
		if p.ValidateHook == "" || u.Facts.HasValidator(p.ValidateHook) {
			continue
		}
		diag.ReportError(r, diag.ValValidateHookBadShape, p.DirSpan,
			p.ValidateHook+" on "+u.TypeName+" must take the property value and return []error to serve as a validate hook").Emit()
	}
}

func checkPropertyFieldExported(r diag.Reporter, u *model.TypeUnit) {
	for i := range u.Properties {
		p := &u.Properties[i]
		if names.IsExported(p.FieldName) {
			diag.ReportError(r, diag.ValPropertyFieldExported, p.FieldSpan,
				"field "+p.FieldName+" is exported; property synthesis requires an unexported backing field").Emit()
		}
	}
}

func checkPropertyNameIsField(r diag.Reporter, u *model.TypeUnit) {
	for i := range u.Properties {
		p := &u.Properties[i]
		if u.Facts.HasField(p.PropertyName) {
			diag.ReportError(r, diag.ValPropertyNameIsField, p.DirSpan,
				"generated property "+p.PropertyName+" would collide with an existing field").
				WithNote(p.DirSpan, "rename the field or set name= explicitly").
				Emit()
		}
	}
}
