package rules

import (
	"strings"

	"obsgen/internal/diag"
	"obsgen/internal/model"
)

const handlerPrefix = "Receive"

func checkRecipientNoHandlers(r diag.Reporter, u *model.TypeUnit) {
	if u.Recipient == nil || len(u.Recipient.Messages) > 0 {
		return
	}
	diag.ReportError(r, diag.ValRecipientNoHandlers, u.Recipient.Span,
		"recipient "+u.TypeName+" declares no Receive methods; nothing to register").Emit()
}

func checkRecipientDuplicateMessage(r diag.Reporter, u *model.TypeUnit) {
	if u.Recipient == nil {
		return
	}
	seen := make(map[string]string, len(u.Recipient.Messages))
	for _, m := range u.Recipient.Messages {
		if prev, dup := seen[m.TypeExpr]; dup {
			diag.ReportError(r, diag.ValRecipientDuplicateMessage, u.Recipient.Span,
				"handlers "+prev+" and "+m.Method+" both receive "+m.TypeExpr+"; registration would be ambiguous").Emit()
			continue
		}
		seen[m.TypeExpr] = m.Method
	}
}

// checkRecipientOddHandler flags Receive-prefixed methods the projector left
// out of the model, which means their shape was not func (t *T) ReceiveX(msg).
func checkRecipientOddHandler(r diag.Reporter, u *model.TypeUnit) {
	if u.Recipient == nil {
		return
	}
	wired := make(map[string]bool, len(u.Recipient.Messages))
	for _, m := range u.Recipient.Messages {
		wired[m.Method] = true
	}
	for _, m := range u.Facts.Methods {
		if !strings.HasPrefix(m, handlerPrefix) || m == handlerPrefix || wired[m] {
			continue
		}
		diag.ReportWarning(r, diag.ValRecipientOddHandler, u.Recipient.Span,
			"method "+m+" looks like a handler but does not take exactly one message parameter; it will not be registered").Emit()
	}
}
