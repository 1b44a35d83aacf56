// Package model defines the immutable value models the semantic projector
// distills from the live go/types symbol graph. Models hold only strings,
// booleans and slices of those: no types.Object, ast.Node or other
// compilation-owned reference ever crosses into a model, which is what makes
// downstream validation, aggregation and caching safe to reuse across runs.
//
// Spans carried for diagnostics are excluded from equality and from the
// fingerprint: two inputs differing only in trivia outside the annotated
// declarations produce equal models and therefore identical output.
package model

import (
	"obsgen/internal/source"
)

// Digest is a SHA-256 content fingerprint.
type Digest [32]byte

// ObservableModel requests change-notification synthesis for a type.
type ObservableModel struct {
	// Validate switches the required base capability from observable.Base
	// to observable.ErrorsBase and enables validation hooks in setters.
	Validate bool

	Span source.Span `msgpack:"-"`
	// BodySpan points just inside the struct body's opening brace, the
	// insertion point for a missing base embed.
	BodySpan source.Span `msgpack:"-"`
}

// TargetKind says what a resolved cross-reference (canexecute target)
// points at; it decides whether the emitter renders a field read or a call.
type TargetKind uint8

const (
	TargetNone TargetKind = iota
	TargetFieldRef
	TargetMethodCall
)

// PropertyModel is one annotated field: generated getter plus notifying
// setter.
type PropertyModel struct {
	FieldName    string
	PropertyName string
	// TypeExpr is the field type rendered relative to the declaring package
	// ("int", "*time.Time", "model.User").
	TypeExpr string
	// TypeImports lists import paths TypeExpr mentions.
	TypeImports []string
	// Notify lists also-notify property names, emission order.
	Notify    []string
	Broadcast bool
	Validate  bool
	// Comparable records whether the field type supports ==; setters only
	// guard against no-op writes when it does.
	Comparable bool
	// ValidateHook names the user-declared validate method the setter calls,
	// empty when validation is off or no hook exists on the type.
	ValidateHook string

	FieldSpan  source.Span `msgpack:"-"`
	DirSpan    source.Span `msgpack:"-"`
	NotifySpan source.Span `msgpack:"-"`
}

// CommandModel is one annotated method: generated lazily-cached accessor.
type CommandModel struct {
	MethodName  string
	CommandName string // accessor is <CommandName>Command
	// ParamTypes and ResultTypes carry the annotated method's signature as
	// rendered type expressions; the validator judges the shape, the
	// emitter renders the matching relay constructor.
	ParamTypes   []string
	ResultTypes  []string
	ParamImports []string
	Async        bool
	CanExecute   string
	// CanExecuteKind is set by the projector only when the target resolves
	// to exactly one member; the validator reports the 0 and >1 cases.
	CanExecuteKind TargetKind

	MethodSpan     source.Span `msgpack:"-"`
	DirSpan        source.Span `msgpack:"-"`
	CanExecuteSpan source.Span `msgpack:"-"`
}

// RecipientMessage wires one Receive method to its message type.
type RecipientMessage struct {
	TypeExpr string
	Imports  []string
	Method   string
}

// RecipientModel requests messenger registration synthesis for a type.
type RecipientModel struct {
	Messages []RecipientMessage

	Span source.Span `msgpack:"-"`
}

// TypeFacts are symbol-free observations about the annotated type that
// validation rules consume. Everything is a plain string so rules never
// reach back into the compilation.
type TypeFacts struct {
	// Methods lists the full method set of *T, promoted methods included.
	Methods []string
	// DeclaredMethods lists methods declared directly on T or *T; promoted
	// methods from embedded types are excluded, since outer declarations
	// legally shadow them.
	DeclaredMethods []string
	// Fields lists field names, declaration order.
	Fields []string
	// Embeds lists embedded types as fully qualified paths
	// ("obsgen/runtime/observable.Base").
	Embeds []string
	// BoolFields lists fields of type bool, for canexecute resolution.
	BoolFields []string
	// BoolMethods lists parameterless methods returning exactly one bool.
	BoolMethods []string
	// ValidatorMethods lists methods shaped func(T) []error, the only shape
	// a validating setter can feed into SetErrors.
	ValidatorMethods []string
	IsGeneric        bool
}

// HasEmbed reports whether the type embeds the given qualified type.
func (f TypeFacts) HasEmbed(qualified string) bool {
	for _, e := range f.Embeds {
		if e == qualified {
			return true
		}
	}
	return false
}

// HasMethod reports an exact, case-sensitive method name match.
func (f TypeFacts) HasMethod(name string) bool {
	for _, m := range f.Methods {
		if m == name {
			return true
		}
	}
	return false
}

// HasDeclaredMethod reports whether the method is declared directly on the
// type, as opposed to promoted from an embed.
func (f TypeFacts) HasDeclaredMethod(name string) bool {
	for _, m := range f.DeclaredMethods {
		if m == name {
			return true
		}
	}
	return false
}

// HasValidator reports whether the type declares a validator-shaped method
// with the given name.
func (f TypeFacts) HasValidator(name string) bool {
	for _, m := range f.ValidatorMethods {
		if m == name {
			return true
		}
	}
	return false
}

// HasField reports an exact, case-sensitive field name match.
func (f TypeFacts) HasField(name string) bool {
	for _, fd := range f.Fields {
		if fd == name {
			return true
		}
	}
	return false
}
