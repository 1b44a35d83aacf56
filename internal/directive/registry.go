// Package directive parses //obsgen: annotation comments into typed
// directives and validates them against a flat registry of known names and
// argument shapes. Parsing is pure text work over byte offsets; no AST or
// type information is consulted here.
package directive

import "strings"

// Prefix is the comment marker every obsgen annotation starts with.
const Prefix = "//obsgen:"

// Kind enumerates the directive families.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindObservable
	KindProperty
	KindCommand
	KindRecipient
)

func (k Kind) String() string {
	switch k {
	case KindObservable:
		return "observable"
	case KindProperty:
		return "property"
	case KindCommand:
		return "command"
	case KindRecipient:
		return "recipient"
	}
	return "unknown"
}

// Target describes which declaration kinds a directive may annotate.
type Target uint8

const (
	TargetType Target = 1 << iota
	TargetField
	TargetMethod
)

// ArgSpec describes one accepted argument key.
type ArgSpec struct {
	Key    string
	Valued bool // key=value when true, bare flag otherwise
}

// Spec describes one registered directive: its name, the declarations it may
// sit on, and the arguments it accepts. New directives are added to the
// table below; nothing else needs to change for parsing to pick them up.
type Spec struct {
	Name    string
	Kind    Kind
	Targets Target
	Args    []ArgSpec
}

var registry = []Spec{
	{
		Name:    "observable",
		Kind:    KindObservable,
		Targets: TargetType,
		Args: []ArgSpec{
			{Key: "validate", Valued: false},
		},
	},
	{
		Name:    "property",
		Kind:    KindProperty,
		Targets: TargetField,
		Args: []ArgSpec{
			{Key: "name", Valued: true},
			{Key: "notify", Valued: true},
			{Key: "broadcast", Valued: false},
			{Key: "validate", Valued: false},
		},
	},
	{
		Name:    "command",
		Kind:    KindCommand,
		Targets: TargetMethod,
		Args: []ArgSpec{
			{Key: "name", Valued: true},
			{Key: "canexecute", Valued: true},
			{Key: "async", Valued: false},
		},
	},
	{
		Name:    "recipient",
		Kind:    KindRecipient,
		Targets: TargetType | TargetMethod,
		Args:    nil,
	},
}

// Lookup resolves a directive name to its spec.
func Lookup(name string) (Spec, bool) {
	for _, s := range registry {
		if s.Name == name {
			return s, true
		}
	}
	return Spec{}, false
}

// Specs returns the registered directive table.
func Specs() []Spec {
	return registry
}

func (s Spec) argSpec(key string) (ArgSpec, bool) {
	for _, a := range s.Args {
		if a.Key == key {
			return a, true
		}
	}
	return ArgSpec{}, false
}

// argSpecFold matches key ignoring case, so a miscased argument can carry a
// fix pointing at the canonical spelling.
func (s Spec) argSpecFold(key string) (ArgSpec, bool) {
	for _, a := range s.Args {
		if strings.EqualFold(a.Key, key) {
			return a, true
		}
	}
	return ArgSpec{}, false
}

// AllowedOn reports whether the directive may annotate the given target.
func (s Spec) AllowedOn(t Target) bool {
	return s.Targets&t != 0
}
