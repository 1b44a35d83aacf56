package names

import "testing"

func TestProperty(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"count", "Count"},
		{"fullName", "FullName"},
		{"user_name", "UserName"},
		{"_hidden", "Hidden"},
		{"__x", "X"},
		{"httpTimeout", "HttpTimeout"},
		{"", ""},
	}
	for _, tc := range cases {
		if got := Property(tc.in); got != tc.want {
			t.Errorf("Property(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestIsExported(t *testing.T) {
	if IsExported("count") || !IsExported("Count") {
		t.Error("IsExported misclassifies ASCII identifiers")
	}
}
