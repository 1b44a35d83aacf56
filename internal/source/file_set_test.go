package source

import "testing"

func TestFileSetResolve(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("main.go", []byte("package main\n\nfunc main() {}\n"))

	cases := []struct {
		name     string
		span     Span
		wantLine uint32
		wantCol  uint32
	}{
		{"start of file", Span{File: id, Start: 0, End: 7}, 1, 1},
		{"after first newline", Span{File: id, Start: 13, End: 13}, 2, 1},
		{"func keyword", Span{File: id, Start: 14, End: 18}, 3, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start, _ := fs.Resolve(tc.span)
			if start.Line != tc.wantLine || start.Col != tc.wantCol {
				t.Errorf("Resolve(%v) start = %d:%d, want %d:%d",
					tc.span, start.Line, start.Col, tc.wantLine, tc.wantCol)
			}
		})
	}
}

func TestFileSetGetLine(t *testing.T) {
	fs := NewFileSet()
	id := fs.AddVirtual("x.go", []byte("first\nsecond\nthird"))
	f := fs.Get(id)

	cases := []struct {
		line uint32
		want string
	}{
		{0, ""},
		{1, "first"},
		{2, "second"},
		{3, "third"},
		{4, ""},
	}
	for _, tc := range cases {
		if got := f.GetLine(tc.line); got != tc.want {
			t.Errorf("GetLine(%d) = %q, want %q", tc.line, got, tc.want)
		}
	}
}

func TestNormalizeCRLF(t *testing.T) {
	out, changed := normalizeCRLF([]byte("a\r\nb\rc"))
	if !changed {
		t.Fatal("expected CRLF normalization")
	}
	if string(out) != "a\nb\rc" {
		t.Errorf("normalizeCRLF = %q, lone \\r must survive", out)
	}

	out, changed = normalizeCRLF([]byte("plain"))
	if changed || string(out) != "plain" {
		t.Errorf("no-op normalization mangled content: %q", out)
	}
}

func TestRemoveBOM(t *testing.T) {
	out, had := removeBOM([]byte{0xEF, 0xBB, 0xBF, 'x'})
	if !had || string(out) != "x" {
		t.Errorf("removeBOM = %q (had=%v)", out, had)
	}
}

func TestFileSetLoadDedup(t *testing.T) {
	fs := NewFileSet()
	a := fs.AddVirtual("dup.go", []byte("one"))
	b := fs.AddVirtual("dup.go", []byte("two"))
	if a == b {
		t.Fatal("Add must always mint a fresh FileID")
	}
	f, ok := fs.GetByPath("dup.go")
	if !ok || string(f.Content) != "two" {
		t.Error("path index must point at the latest version")
	}
}
