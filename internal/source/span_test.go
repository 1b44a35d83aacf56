package source

import "testing"

func TestSpanCover(t *testing.T) {
	a := Span{File: 1, Start: 10, End: 20}
	b := Span{File: 1, Start: 5, End: 15}

	got := a.Cover(b)
	if got.Start != 5 || got.End != 20 {
		t.Errorf("Cover = %v, want 1:5-20", got)
	}

	other := Span{File: 2, Start: 0, End: 100}
	if got := a.Cover(other); got != a {
		t.Errorf("Cover across files must be a no-op, got %v", got)
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{File: 0, Start: 3, End: 7}
	cases := []struct {
		off  uint32
		want bool
	}{
		{2, false},
		{3, true},
		{6, true},
		{7, false},
	}
	for _, tc := range cases {
		if got := s.Contains(tc.off); got != tc.want {
			t.Errorf("Contains(%d) = %v, want %v", tc.off, got, tc.want)
		}
	}
}

func TestSpanEmptyLen(t *testing.T) {
	if !(Span{Start: 4, End: 4}).Empty() {
		t.Error("zero-length span should be empty")
	}
	if got := (Span{Start: 4, End: 9}).Len(); got != 5 {
		t.Errorf("Len = %d, want 5", got)
	}
}
