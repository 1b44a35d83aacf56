package directive

import (
	"testing"

	"obsgen/internal/diag"
)

func parseOne(t *testing.T, line string) (Directive, bool, *diag.Bag) {
	t.Helper()
	bag := diag.NewBag(16)
	d, ok := ParseLine(diag.BagReporter{Bag: bag}, 0, 0, line)
	return d, ok, bag
}

func TestParseLineProperty(t *testing.T) {
	d, ok, bag := parseOne(t, "//obsgen:property name=Count notify=FullName,Display broadcast")
	if !ok {
		t.Fatalf("parse failed, diagnostics: %v", bag.Items())
	}
	if d.Kind != KindProperty {
		t.Errorf("Kind = %v, want property", d.Kind)
	}
	if v, _ := d.Get("name"); v != "Count" {
		t.Errorf("name = %q, want Count", v)
	}
	if v, _ := d.Get("notify"); v != "FullName,Display" {
		t.Errorf("notify = %q", v)
	}
	if !d.Has("broadcast") {
		t.Error("broadcast flag missing")
	}
	if bag.Len() != 0 {
		t.Errorf("unexpected diagnostics: %v", bag.Items())
	}
}

func TestParseLineNotADirective(t *testing.T) {
	_, ok, bag := parseOne(t, "// plain comment")
	if ok || bag.Len() != 0 {
		t.Error("plain comments must be ignored silently")
	}
}

func TestParseLineUnknownDirective(t *testing.T) {
	_, ok, bag := parseOne(t, "//obsgen:proprety name=X")
	if ok {
		t.Fatal("misspelled directive must not parse")
	}
	if bag.CountByCode(diag.DirUnknownDirective) != 1 {
		t.Errorf("want exactly one DIR2001, got %v", bag.Items())
	}
}

func TestParseLineArgumentErrors(t *testing.T) {
	cases := []struct {
		name string
		line string
		code diag.Code
	}{
		{"unknown argument", "//obsgen:property color=red", diag.DirUnknownArgument},
		{"flag with value", "//obsgen:property broadcast=yes", diag.DirMalformedArgument},
		{"value missing", "//obsgen:property name", diag.DirMalformedArgument},
		{"empty value", "//obsgen:property name=", diag.DirEmptyArgument},
		{"duplicate argument", "//obsgen:property name=A name=B", diag.DirMalformedArgument},
		{"dangling equals", "//obsgen:property =X", diag.DirMalformedArgument},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, ok, bag := parseOne(t, tc.line)
			if ok {
				t.Fatal("malformed line must not parse")
			}
			if bag.CountByCode(tc.code) == 0 {
				t.Errorf("want %s, got %v", tc.code.ID(), bag.Items())
			}
		})
	}
}

func findDiag(bag *diag.Bag, code diag.Code) (diag.Diagnostic, bool) {
	for _, d := range bag.Items() {
		if d.Code == code {
			return d, true
		}
	}
	return diag.Diagnostic{}, false
}

func TestParseLineFlagWithValueCarriesFix(t *testing.T) {
	line := "//obsgen:property broadcast=yes"
	_, ok, bag := parseOne(t, line)
	if ok {
		t.Fatal("flag with value must not parse")
	}
	d, found := findDiag(bag, diag.DirMalformedArgument)
	if !found || len(d.Fixes) != 1 {
		t.Fatalf("want one fix on the diagnostic, got %+v", d.Fixes)
	}
	edit := d.Fixes[0].Edits[0]
	if got := line[edit.Span.Start:edit.Span.End]; got != "broadcast=yes" {
		t.Errorf("fix covers %q, want the whole argument", got)
	}
	if edit.OldText != "broadcast=yes" || edit.NewText != "broadcast" {
		t.Errorf("fix rewrites %q -> %q, want the bare flag", edit.OldText, edit.NewText)
	}
}

func TestParseLineMiscasedArgumentCarriesFix(t *testing.T) {
	_, ok, bag := parseOne(t, "//obsgen:property Name=X")
	if ok {
		t.Fatal("miscased argument must not parse")
	}
	d, found := findDiag(bag, diag.DirUnknownArgument)
	if !found || len(d.Fixes) != 1 {
		t.Fatalf("want a canonical-spelling fix, got %+v", d.Fixes)
	}
	if got := d.Fixes[0].Edits[0].NewText; got != "name=X" {
		t.Errorf("fix text = %q, want name=X", got)
	}

	_, _, bag = parseOne(t, "//obsgen:property color=red")
	if d, found := findDiag(bag, diag.DirUnknownArgument); !found || len(d.Fixes) != 0 {
		t.Errorf("no near-miss, no fix; got %+v", d.Fixes)
	}
}

func TestParseLineArgSpans(t *testing.T) {
	line := "//obsgen:property notify=Missing"
	d, ok, _ := parseOne(t, line)
	if !ok {
		t.Fatal("parse failed")
	}
	sp := d.ArgSpan("notify")
	if got := line[sp.Start:sp.End]; got != "notify=Missing" {
		t.Errorf("ArgSpan slices %q, want the argument text", got)
	}
}

func TestParseLineBaseOffset(t *testing.T) {
	const base = 100
	bag := diag.NewBag(4)
	d, ok := ParseLine(diag.BagReporter{Bag: bag}, 3, base, "//obsgen:recipient")
	if !ok {
		t.Fatal("parse failed")
	}
	if d.Span.File != 3 || d.Span.Start != base {
		t.Errorf("Span = %v, want file 3 offset %d", d.Span, base)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" A, B ,,C ")
	want := []string{"A", "B", "C"}
	if len(got) != len(want) {
		t.Fatalf("SplitList = %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SplitList[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestRegistryTargets(t *testing.T) {
	spec, ok := Lookup("property")
	if !ok {
		t.Fatal("property not registered")
	}
	if !spec.AllowedOn(TargetField) || spec.AllowedOn(TargetType) {
		t.Error("property must target fields only")
	}

	spec, _ = Lookup("observable")
	if !spec.AllowedOn(TargetType) {
		t.Error("observable must target types")
	}
}
