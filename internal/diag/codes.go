package diag

import (
	"fmt"
)

// Code identifies a diagnostic rule. Rendered IDs (GATE1001, VAL3004, ...)
// are an external contract: suppression files and editors pin them, so
// values are append-only and never reused for a different rule.
type Code uint16

const (
	UnknownCode Code = 0

	// Compilation-wide gates
	GateInfo            Code = 1000
	GateGoVersionTooOld Code = 1001
	GateNoModule        Code = 1002

	// Directive parsing
	DirInfo               Code = 2000
	DirUnknownDirective   Code = 2001
	DirMalformedArgument  Code = 2002
	DirDuplicateDirective Code = 2003
	DirNotAllowedHere     Code = 2004
	DirUnknownArgument    Code = 2005
	DirEmptyArgument      Code = 2006

	// Model validation
	ValInfo                       Code = 3000
	ValObservableAlreadyDeclared  Code = 3001
	ValMissingObservableBase      Code = 3002
	ValMissingErrorsBase          Code = 3003
	ValNotifyTargetNotFound       Code = 3004
	ValNotifyTargetAmbiguous      Code = 3005
	ValPropertyNameCollision      Code = 3006
	ValPropertyFieldExported      Code = 3007
	ValPropertyNameIsField        Code = 3008
	ValCommandBadSignature        Code = 3009
	ValCommandMissingHost         Code = 3010
	ValCommandMethodExported      Code = 3011
	ValCanExecuteNotFound         Code = 3012
	ValCanExecuteAmbiguous        Code = 3013
	ValCanExecuteBadShape         Code = 3014
	ValRecipientNoHandlers        Code = 3015
	ValRecipientDuplicateMessage  Code = 3016
	ValRecipientOddHandler        Code = 3017
	ValGenericTypeUnsupported     Code = 3018
	ValBroadcastWithoutObservable Code = 3019
	ValNotifyTargetSelf           Code = 3020
	ValAsyncCommandNoContext      Code = 3021
	ValGeneratedMemberClash       Code = 3022
	ValValidateHookBadShape       Code = 3023

	// Emission
	EmitInfo         Code = 4000
	EmitFormatFailed Code = 4001
	EmitWriteFailed  Code = 4002
	EmitDrift        Code = 4003
	EmitStaleOutput  Code = 4004

	// Project loading
	PrjInfo       Code = 5000
	PrjLoadFailed Code = 5001
	PrjNoPackages Code = 5002
	PrjTypeErrors Code = 5003
)

var codeDescription = map[Code]string{
	UnknownCode: "Unknown diagnostic",

	GateInfo:            "Gate information",
	GateGoVersionTooOld: "Module go directive below the minimum supported version",
	GateNoModule:        "No module information available for the loaded packages",

	DirInfo:               "Directive information",
	DirUnknownDirective:   "Unknown obsgen directive",
	DirMalformedArgument:  "Malformed directive argument",
	DirDuplicateDirective: "Directive repeated on the same declaration",
	DirNotAllowedHere:     "Directive not allowed on this declaration kind",
	DirUnknownArgument:    "Unknown argument for this directive",
	DirEmptyArgument:      "Directive argument has an empty value",

	ValInfo:                       "Validation information",
	ValObservableAlreadyDeclared:  "Type already declares the notification members obsgen would generate",
	ValMissingObservableBase:      "Observable type must embed observable.Base",
	ValMissingErrorsBase:          "Validated type must embed observable.ErrorsBase",
	ValNotifyTargetNotFound:       "notify target does not match any property or method",
	ValNotifyTargetAmbiguous:      "notify target matches more than one member",
	ValPropertyNameCollision:      "Two fields map to the same generated property name",
	ValPropertyFieldExported:      "Annotated field must be unexported",
	ValPropertyNameIsField:        "Generated property name collides with the field itself",
	ValCommandBadSignature:        "Command method has an unsupported signature",
	ValCommandMissingHost:         "Command type must embed command.Host",
	ValCommandMethodExported:      "Command method should be unexported; the generated accessor is the public surface",
	ValCanExecuteNotFound:         "canexecute target does not match any member",
	ValCanExecuteAmbiguous:        "canexecute target matches more than one member",
	ValCanExecuteBadShape:         "canexecute target must be a bool field or a parameterless bool method",
	ValRecipientNoHandlers:        "Recipient type declares no well-formed Receive methods",
	ValRecipientDuplicateMessage:  "Two Receive methods accept the same message type",
	ValRecipientOddHandler:        "Method looks like a message handler but has an unsupported shape",
	ValGenericTypeUnsupported:     "Generic types are not supported by obsgen",
	ValBroadcastWithoutObservable: "broadcast property requires the observable directive on its type",
	ValNotifyTargetSelf:           "Property notifies itself; the self notification is implicit",
	ValAsyncCommandNoContext:      "async command method must take context.Context as its first parameter",
	ValGeneratedMemberClash:       "Type already declares a member with the same name obsgen would generate",
	ValValidateHookBadShape:       "validate hook must take the property value and return []error",

	EmitInfo:         "Emission information",
	EmitFormatFailed: "Generated source failed gofmt rendering",
	EmitWriteFailed:  "Failed to write generated file",
	EmitDrift:        "Generated file on disk is out of date",
	EmitStaleOutput:  "Generated file has no matching annotated type",

	PrjInfo:       "Project information",
	PrjLoadFailed: "Failed to load packages",
	PrjNoPackages: "No packages matched the requested patterns",
	PrjTypeErrors: "Package has type errors; generation may be degraded",
}

// ID renders the stable string identifier for the code.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("GATE%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("DIR%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("VAL%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("EMIT%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	}
	return "E0000"
}

// Title returns the registered one-line description.
func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// ParseCodeID resolves a rendered ID (e.g. "VAL3004") back to its Code.
// Returns UnknownCode when the ID is not registered.
func ParseCodeID(id string) Code {
	for c := range codeDescription {
		if c != UnknownCode && c.ID() == id {
			return c
		}
	}
	return UnknownCode
}

// AllCodes returns every registered code except UnknownCode, unordered.
func AllCodes() []Code {
	out := make([]Code, 0, len(codeDescription))
	for c := range codeDescription {
		if c != UnknownCode {
			out = append(out, c)
		}
	}
	return out
}
