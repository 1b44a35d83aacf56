package diag

import (
	"testing"

	"obsgen/internal/source"
)

func TestEscalatingReporterUpgradesListedWarnings(t *testing.T) {
	bag := NewBag(8)
	r := NewEscalatingReporter(BagReporter{Bag: bag}, ValRecipientOddHandler)

	r.Report(ValRecipientOddHandler, SevWarning, source.Span{}, "odd handler", nil, nil)
	r.Report(ValCommandMethodExported, SevWarning, source.Span{}, "exported", nil, nil)
	r.Report(ValRecipientOddHandler, SevInfo, source.Span{}, "just info", nil, nil)

	items := bag.Items()
	if len(items) != 3 {
		t.Fatalf("got %d diagnostics, want 3", len(items))
	}
	if items[0].Severity != SevError {
		t.Errorf("listed warning = %v, want escalated to error", items[0].Severity)
	}
	if items[1].Severity != SevWarning {
		t.Errorf("unlisted warning = %v, must pass through", items[1].Severity)
	}
	if items[2].Severity != SevInfo {
		t.Errorf("info = %v, only warnings escalate", items[2].Severity)
	}
	if !bag.HasErrors() {
		t.Error("escalated warning must count as a blocking error")
	}
}
