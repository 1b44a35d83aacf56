package model

import (
	"crypto/sha256"

	"github.com/vmihailenco/msgpack/v5"

	"obsgen/internal/source"
)

// TypeUnit is the per-type emission unit the aggregator assembles from
// member models. One TypeUnit renders to exactly one generated file.
type TypeUnit struct {
	PkgPath  string
	PkgName  string
	TypeName string
	// Dir is the package directory generated output is written into.
	Dir string

	Facts      TypeFacts
	Observable *ObservableModel
	Properties []PropertyModel
	Commands   []CommandModel
	Recipient  *RecipientModel

	// TypeSpan locates the type declaration for diagnostics.
	TypeSpan source.Span `msgpack:"-"`
}

// HintName is the generated file name for the unit.
func (u *TypeUnit) HintName(suffix string) string {
	return snake(u.TypeName) + suffix
}

func snake(name string) string {
	out := make([]rune, 0, len(name)+4)
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				out = append(out, '_')
			}
			r += 'a' - 'A'
		}
		out = append(out, r)
	}
	return string(out)
}

// Fingerprint is the unit's content digest: the msgpack encoding of every
// equality-relevant field hashed with SHA-256. Spans are excluded via
// msgpack:"-" tags, so trivia edits do not move the digest.
func (u *TypeUnit) Fingerprint() Digest {
	enc, err := msgpack.Marshal(u)
	if err != nil {
		// Models are plain value types; encoding them cannot fail in
		// practice. A zero digest forces a cache miss rather than a crash.
		return Digest{}
	}
	return sha256.Sum256(enc)
}

// Equal is full structural equality over the unit, order-sensitive for
// every slice. Two equal units must regenerate byte-identical output; the
// incremental cache relies on exactly this contract.
func (u *TypeUnit) Equal(other *TypeUnit) bool {
	if u == nil || other == nil {
		return u == other
	}
	if u.PkgPath != other.PkgPath || u.PkgName != other.PkgName ||
		u.TypeName != other.TypeName || u.Dir != other.Dir {
		return false
	}
	if !factsEqual(u.Facts, other.Facts) {
		return false
	}
	if !observableEqual(u.Observable, other.Observable) {
		return false
	}
	if len(u.Properties) != len(other.Properties) {
		return false
	}
	for i := range u.Properties {
		if !propertyEqual(&u.Properties[i], &other.Properties[i]) {
			return false
		}
	}
	if len(u.Commands) != len(other.Commands) {
		return false
	}
	for i := range u.Commands {
		if !commandEqual(&u.Commands[i], &other.Commands[i]) {
			return false
		}
	}
	return recipientEqual(u.Recipient, other.Recipient)
}

func factsEqual(a, b TypeFacts) bool {
	return stringsEqual(a.Methods, b.Methods) &&
		stringsEqual(a.DeclaredMethods, b.DeclaredMethods) &&
		stringsEqual(a.Fields, b.Fields) &&
		stringsEqual(a.Embeds, b.Embeds) &&
		stringsEqual(a.BoolFields, b.BoolFields) &&
		stringsEqual(a.BoolMethods, b.BoolMethods) &&
		stringsEqual(a.ValidatorMethods, b.ValidatorMethods) &&
		a.IsGeneric == b.IsGeneric
}

func observableEqual(a, b *ObservableModel) bool {
	if a == nil || b == nil {
		return (a == nil) == (b == nil)
	}
	return a.Validate == b.Validate
}

func propertyEqual(a, b *PropertyModel) bool {
	return a.FieldName == b.FieldName &&
		a.PropertyName == b.PropertyName &&
		a.TypeExpr == b.TypeExpr &&
		stringsEqual(a.TypeImports, b.TypeImports) &&
		stringsEqual(a.Notify, b.Notify) &&
		a.Broadcast == b.Broadcast &&
		a.Validate == b.Validate &&
		a.Comparable == b.Comparable &&
		a.ValidateHook == b.ValidateHook
}

func commandEqual(a, b *CommandModel) bool {
	return a.MethodName == b.MethodName &&
		a.CommandName == b.CommandName &&
		stringsEqual(a.ParamTypes, b.ParamTypes) &&
		stringsEqual(a.ResultTypes, b.ResultTypes) &&
		stringsEqual(a.ParamImports, b.ParamImports) &&
		a.Async == b.Async &&
		a.CanExecute == b.CanExecute &&
		a.CanExecuteKind == b.CanExecuteKind
}

func recipientEqual(a, b *RecipientModel) bool {
	if a == nil || b == nil {
		return (a == nil) == (b == nil)
	}
	if len(a.Messages) != len(b.Messages) {
		return false
	}
	for i := range a.Messages {
		am, bm := a.Messages[i], b.Messages[i]
		if am.TypeExpr != bm.TypeExpr || am.Method != bm.Method ||
			!stringsEqual(am.Imports, bm.Imports) {
			return false
		}
	}
	return true
}

func stringsEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
