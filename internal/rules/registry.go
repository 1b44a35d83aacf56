// Package rules is the validation stage: a flat registry of independent
// rules applied to every aggregated TypeUnit. Rules consume only the
// severed value models and TypeFacts, never live symbols, so the whole
// stage is trivially cacheable and order-independent.
//
// Every rule owns exactly one diagnostic code. Codes are an external
// contract (suppressions and baselines reference them), so rules are
// appended, never renumbered; a retired rule leaves its code reserved.
package rules

import (
	"obsgen/internal/diag"
	"obsgen/internal/model"
)

// Rule is one validation check. Name is the stable human identifier shown
// by the explain command; Check reports zero or more diagnostics for the
// unit.
type Rule struct {
	Code  diag.Code
	Name  string
	Check func(r diag.Reporter, u *model.TypeUnit)
}

var registry = []Rule{
	{diag.ValMissingObservableBase, "observable-base-required", checkObservableBase},
	{diag.ValMissingErrorsBase, "errors-base-required", checkErrorsBase},
	{diag.ValNotifyTargetNotFound, "notify-target-exists", checkNotifyNotFound},
	{diag.ValNotifyTargetAmbiguous, "notify-target-unique", checkNotifyAmbiguous},
	{diag.ValNotifyTargetSelf, "notify-target-not-self", checkNotifySelf},
	{diag.ValPropertyNameCollision, "property-names-distinct", checkPropertyNameCollision},
	{diag.ValPropertyFieldExported, "property-field-unexported", checkPropertyFieldExported},
	{diag.ValPropertyNameIsField, "property-name-not-a-field", checkPropertyNameIsField},
	{diag.ValCommandBadSignature, "command-signature", checkCommandSignature},
	{diag.ValCommandMissingHost, "command-host-required", checkCommandHost},
	{diag.ValCommandMethodExported, "command-method-unexported", checkCommandMethodExported},
	{diag.ValCanExecuteNotFound, "canexecute-exists", checkCanExecuteNotFound},
	{diag.ValCanExecuteAmbiguous, "canexecute-unique", checkCanExecuteAmbiguous},
	{diag.ValCanExecuteBadShape, "canexecute-shape", checkCanExecuteShape},
	{diag.ValRecipientNoHandlers, "recipient-has-handlers", checkRecipientNoHandlers},
	{diag.ValRecipientDuplicateMessage, "recipient-messages-distinct", checkRecipientDuplicateMessage},
	{diag.ValRecipientOddHandler, "recipient-handler-shape", checkRecipientOddHandler},
	{diag.ValBroadcastWithoutObservable, "broadcast-needs-observable", checkBroadcastObservable},
	{diag.ValAsyncCommandNoContext, "async-command-context", checkAsyncContext},
	{diag.ValGeneratedMemberClash, "generated-members-unique", checkGeneratedMemberClash},
	{diag.ValValidateHookBadShape, "validate-hook-shape", checkValidateHookShape},
}

// Registry returns the rule table, for the explain command.
func Registry() []Rule {
	return registry
}

// Apply runs every rule against the unit.
func Apply(r diag.Reporter, u *model.TypeUnit) {
	for _, rule := range registry {
		rule.Check(r, u)
	}
}
