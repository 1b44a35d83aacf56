package project

import (
	"go/types"
	"sort"
	"strings"

	"obsgen/internal/directive"
	"obsgen/internal/model"
	"obsgen/internal/scan"
)

// handlerPrefix names the method convention recipient registration scans
// for: func (t *T) ReceiveXxx(msg M).
const handlerPrefix = "Receive"

func (p *projector) recipient(c *scan.Candidate, d directive.Directive) (Item, bool) {
	item, named, _, ok := p.checkShape(c, d)
	if !ok {
		return Item{}, false
	}

	// The directive may sit on the type or on any handler method; either way
	// the whole type's handler set is projected once. Later occurrences are
	// skipped silently since they request the same synthesis.
	key := seenKey{typ: named, kind: directive.KindRecipient}
	if p.firstSeen[key] {
		return Item{}, false
	}
	p.firstSeen[key] = true

	rm := &model.RecipientModel{Span: d.Span}

	mset := types.NewMethodSet(types.NewPointer(named))
	for i := 0; i < mset.Len(); i++ {
		fn, ok2 := mset.At(i).Obj().(*types.Func)
		if !ok2 || !strings.HasPrefix(fn.Name(), handlerPrefix) {
			continue
		}
		sig := fn.Type().(*types.Signature)
		// Odd-shaped Receive methods are left out of the model; the
		// validator spots the gap against the type facts and reports it.
		if sig.Params().Len() != 1 || sig.Results().Len() != 0 {
			continue
		}
		expr, imps := renderType(p.pkg.Types, sig.Params().At(0).Type())
		rm.Messages = append(rm.Messages, model.RecipientMessage{
			TypeExpr: expr,
			Imports:  imps,
			Method:   fn.Name(),
		})
	}

	sort.Slice(rm.Messages, func(i, j int) bool {
		return rm.Messages[i].Method < rm.Messages[j].Method
	})

	item.Recipient = rm
	return item, true
}
