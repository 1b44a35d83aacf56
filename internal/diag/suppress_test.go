package diag

import (
	"testing"

	"obsgen/internal/source"
)

func TestSuppressingReporterByCode(t *testing.T) {
	fs := source.NewFileSet()
	id := fs.AddVirtual("vm/counter.go", []byte("package vm\n"))

	bag := NewBag(10)
	r := NewSuppressingReporter(BagReporter{Bag: bag}, fs, []Suppression{
		{Code: ValNotifyTargetSelf, Justification: "legacy view models"},
	})

	span := source.Span{File: id, Start: 0, End: 1}
	r.Report(ValNotifyTargetSelf, SevWarning, span, "self notify", nil, nil)
	r.Report(ValNotifyTargetNotFound, SevError, span, "missing", nil, nil)

	if bag.Len() != 1 {
		t.Fatalf("bag has %d items, want 1", bag.Len())
	}
	if bag.Items()[0].Code != ValNotifyTargetNotFound {
		t.Errorf("surviving code = %s, want VAL3004", bag.Items()[0].Code.ID())
	}
	if r.Suppressed() != 1 {
		t.Errorf("Suppressed = %d, want 1", r.Suppressed())
	}
}

func TestSuppressingReporterPathGlob(t *testing.T) {
	fs := source.NewFileSetWithBase("/repo")
	inside := fs.AddVirtual("/repo/legacy/vm.go", []byte("x"))
	outside := fs.AddVirtual("/repo/app/vm.go", []byte("x"))

	bag := NewBag(10)
	r := NewSuppressingReporter(BagReporter{Bag: bag}, fs, []Suppression{
		{Code: ValCommandMethodExported, PathGlob: "legacy/**", Justification: "pre-directive code"},
	})

	r.Report(ValCommandMethodExported, SevWarning, source.Span{File: inside, End: 1}, "exported", nil, nil)
	r.Report(ValCommandMethodExported, SevWarning, source.Span{File: outside, End: 1}, "exported", nil, nil)

	if bag.Len() != 1 {
		t.Fatalf("bag has %d items, want 1", bag.Len())
	}
	if r.Suppressed() != 1 {
		t.Errorf("Suppressed = %d, want 1", r.Suppressed())
	}
}
