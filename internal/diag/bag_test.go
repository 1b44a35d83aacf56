package diag

import (
	"testing"

	"obsgen/internal/source"
)

func TestBagLimit(t *testing.T) {
	b := NewBag(2)
	d := Diagnostic{Severity: SevWarning, Code: ValInfo}
	if !b.Add(d) || !b.Add(d) {
		t.Fatal("first two adds must succeed")
	}
	if b.Add(d) {
		t.Error("third add must be rejected at limit 2")
	}
	if b.Len() != 2 {
		t.Errorf("Len = %d, want 2", b.Len())
	}
}

func TestBagHasErrors(t *testing.T) {
	b := NewBag(10)
	b.Add(Diagnostic{Severity: SevWarning, Code: ValRecipientOddHandler})
	if b.HasErrors() {
		t.Error("warning-only bag must not report errors")
	}
	if !b.HasWarnings() {
		t.Error("expected HasWarnings")
	}
	b.Add(Diagnostic{Severity: SevError, Code: ValNotifyTargetNotFound})
	if !b.HasErrors() {
		t.Error("expected HasErrors after adding an error")
	}
}

func TestBagSortDeterministic(t *testing.T) {
	b := NewBag(10)
	spanAt := func(file source.FileID, start uint32) source.Span {
		return source.Span{File: file, Start: start, End: start + 1}
	}
	b.Add(Diagnostic{Severity: SevWarning, Code: ValNotifyTargetSelf, Primary: spanAt(1, 5)})
	b.Add(Diagnostic{Severity: SevError, Code: ValNotifyTargetNotFound, Primary: spanAt(0, 9)})
	b.Add(Diagnostic{Severity: SevError, Code: ValNotifyTargetAmbiguous, Primary: spanAt(0, 2)})
	b.Sort()

	items := b.Items()
	if items[0].Code != ValNotifyTargetAmbiguous {
		t.Errorf("first after sort = %s, want VAL3005", items[0].Code.ID())
	}
	if items[2].Code != ValNotifyTargetSelf {
		t.Errorf("last after sort = %s, want VAL3020", items[2].Code.ID())
	}
}

func TestBagDedup(t *testing.T) {
	b := NewBag(10)
	span := source.Span{File: 0, Start: 1, End: 4}
	b.Add(Diagnostic{Severity: SevError, Code: ValCanExecuteNotFound, Primary: span})
	b.Add(Diagnostic{Severity: SevError, Code: ValCanExecuteNotFound, Primary: span})
	b.Add(Diagnostic{Severity: SevError, Code: ValCanExecuteAmbiguous, Primary: span})
	b.Dedup()
	if b.Len() != 2 {
		t.Errorf("Len after Dedup = %d, want 2", b.Len())
	}
}

func TestBagMergeGrowsLimit(t *testing.T) {
	a := NewBag(1)
	a.Add(Diagnostic{Code: ValInfo})
	other := NewBag(2)
	other.Add(Diagnostic{Code: DirInfo})
	other.Add(Diagnostic{Code: PrjInfo})
	a.Merge(other)
	if a.Len() != 3 {
		t.Errorf("Len after Merge = %d, want 3", a.Len())
	}
}
