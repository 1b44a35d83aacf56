package rules

import (
	"obsgen/internal/diag"
	"obsgen/internal/model"
	"obsgen/internal/source"
)

func checkObservableBase(r diag.Reporter, u *model.TypeUnit) {
	if !notifiable(u) || hasNotifyBase(u.Facts) {
		return
	}
	span := u.TypeSpan
	if u.Observable != nil {
		span = u.Observable.Span
	}
	b := diag.ReportError(r, diag.ValMissingObservableBase, span,
		"type "+u.TypeName+" must embed observable.Base (or observable.ErrorsBase) to synthesize notification").
		WithNote(u.TypeSpan, "add `observable.Base` as the first embedded field")
	if u.Observable != nil && u.Observable.BodySpan != (source.Span{}) {
		embed := "observable.Base"
		if wantsValidation(u) {
			embed = "observable.ErrorsBase"
		}
		b.WithFix("embed "+embed, diag.TextEdit{Span: u.Observable.BodySpan, NewText: "\n\t" + embed})
	}
	b.Emit()
}

func checkErrorsBase(r diag.Reporter, u *model.TypeUnit) {
	if !wantsValidation(u) || u.Facts.HasEmbed(errorsBase) {
		return
	}
	// Only fire when some notify base exists; a type with no base at all is
	// already covered by observable-base-required.
	if !hasNotifyBase(u.Facts) {
		return
	}
	span := u.TypeSpan
	if u.Observable != nil {
		span = u.Observable.Span
	}
	diag.ReportError(r, diag.ValMissingErrorsBase, span,
		"validation on "+u.TypeName+" requires observable.ErrorsBase, not observable.Base").Emit()
}

func checkBroadcastObservable(r diag.Reporter, u *model.TypeUnit) {
	if u.Observable != nil {
		return
	}
	for i := range u.Properties {
		p := &u.Properties[i]
		if p.Broadcast {
			diag.ReportError(r, diag.ValBroadcastWithoutObservable, p.DirSpan,
				"broadcast on "+p.PropertyName+" requires an observable directive on "+u.TypeName).Emit()
		}
	}
}
