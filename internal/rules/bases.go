package rules

import "obsgen/internal/model"

// Qualified names of the runtime capability bases annotated types must
// embed. Validation matches these against TypeFacts.Embeds exactly.
const (
	observableBase = "obsgen/runtime/observable.Base"
	errorsBase     = "obsgen/runtime/observable.ErrorsBase"
	commandHost    = "obsgen/runtime/command.Host"
)

func hasNotifyBase(f model.TypeFacts) bool {
	return f.HasEmbed(observableBase) || f.HasEmbed(errorsBase)
}

// wantsValidation reports whether any part of the unit opted into
// validation hooks, which upgrade the required base to ErrorsBase.
func wantsValidation(u *model.TypeUnit) bool {
	if u.Observable != nil && u.Observable.Validate {
		return true
	}
	for i := range u.Properties {
		if u.Properties[i].Validate {
			return true
		}
	}
	return false
}

// notifiable reports whether the unit synthesizes change notification and
// therefore needs a notify base embedded.
func notifiable(u *model.TypeUnit) bool {
	return u.Observable != nil || len(u.Properties) > 0
}
