// Package names derives generated identifier names from annotated source
// identifiers.
package names

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var titler = cases.Title(language.Und, cases.NoLower)

// Property derives the exported property name for an annotated field:
// leading underscores are stripped, snake_case segments are joined, and the
// first letter of each segment is upper-cased without touching the rest
// ("fullName" -> "FullName", "user_name" -> "UserName", "_count" -> "Count").
func Property(field string) string {
	field = strings.TrimLeft(field, "_")
	if field == "" {
		return ""
	}
	parts := strings.Split(field, "_")
	var b strings.Builder
	for _, p := range parts {
		if p == "" {
			continue
		}
		b.WriteString(titler.String(p))
	}
	return b.String()
}

// Command derives the accessor stem for an annotated method: the exported
// form of the method name ("save" -> "Save", the accessor is then
// "SaveCommand").
func Command(method string) string {
	return Property(method)
}

// IsExported reports whether the identifier starts with an upper-case letter.
func IsExported(name string) bool {
	r, _ := utf8.DecodeRuneInString(name)
	return unicode.IsUpper(r)
}
