package rules

import (
	"obsgen/internal/diag"
	"obsgen/internal/model"
	"obsgen/internal/source"
)

// generatedMember pairs one name the emitter will declare with the span of
// the directive that requests it.
type generatedMember struct {
	name string
	span source.Span
}

func generatedMembers(u *model.TypeUnit) []generatedMember {
	var out []generatedMember
	for i := range u.Properties {
		p := &u.Properties[i]
		out = append(out,
			generatedMember{p.PropertyName, p.DirSpan},
			generatedMember{"Set" + p.PropertyName, p.DirSpan},
		)
	}
	for i := range u.Commands {
		c := &u.Commands[i]
		out = append(out, generatedMember{c.CommandName + "Command", c.DirSpan})
	}
	if u.Recipient != nil && len(u.Recipient.Messages) > 0 {
		out = append(out, generatedMember{"RegisterRecipient", u.Recipient.Span})
	}
	return out
}

// checkGeneratedMemberClash reports hand-written methods the emitted file
// would redeclare. Only methods declared directly on the type collide;
// promoted methods from embeds are legally shadowed.
func checkGeneratedMemberClash(r diag.Reporter, u *model.TypeUnit) {
	for _, m := range generatedMembers(u) {
		if u.Facts.HasDeclaredMethod(m.name) {
			diag.ReportError(r, diag.ValGeneratedMemberClash, m.span,
				u.TypeName+" already declares "+m.name+"; the generated file would redeclare it").
				WithNote(m.span, "remove the hand-written member or pick another name with name=").
				Emit()
		}
	}
}
