// Package errs defines the single error taxonomy shared by every pipeline
// stage: one Kind enumeration and one Error struct carrying an optional
// source range and a handful of payload fields used by specific kinds.
package errs

import (
	"fmt"

	"github.com/foglang/fogc/lang/token"
)

// Kind identifies the specific failure a stage reported. Every fallible
// operation in lang/* and project returns a *Error tagged with one of
// these, so a caller can recover stable, machine-checkable error identity
// via errors.As instead of string matching.
type Kind int

const (
	_ Kind = iota

	// Lexical
	LeftOpenBraces
	LeftOpenParentheses
	LeftOpenSquareBrackets
	LeftOpenAngledBrackets
	OpenQuotes
	MissingSemiColon
	NumberTooLarge
	InvalidUtf8Literal

	// Structural/syntactic
	InvalidStatementDefinition
	InvalidFunctionDefinition
	InvalidStructDefinition
	InvalidStructFieldDefinition
	InvalidIfConditionDefinition
	InvalidLoopBody
	MissingCommaAtArrayDef
	InvalidStructExtensionPlacement
	InvalidEllipsisLocation
	FunctionRequiresExplicitVisibility
	InvalidModulePathDefinition
	InvalidCompilerHint

	// Semantic
	TypeError
	VariableNotFound
	VariableTypeMismatch
	StructFieldNotFound
	TypeMismatchNonIndexable
	InvalidTypeCast
	InvalidFunctionArgumentCount
	InvalidFunctionCallArguments
	ArgumentError
	DuplicateSignatureImports
	FunctionDependencyNotFound
	EnumVariantNotFound
	InvalidValue
	ValueTypeUnknown
	FloatIsNAN
	InvalidControlFlowUsage
	InvalidFeatureRequirement
	InvalidType
	InvalidStructName

	// Entry-point
	NoMain
	InvalidMain
)

var kindMessages = map[Kind]string{
	LeftOpenBraces:         "an open '{' has been left in the code",
	LeftOpenParentheses:    "an open '(' has been left in the code",
	LeftOpenSquareBrackets: "an open '[' has been left in the code",
	LeftOpenAngledBrackets: "an open '<' has been left in the code",
	OpenQuotes:             `an open '"' has been left in the code`,
	MissingSemiColon:       "the code is missing a ';'",
	NumberTooLarge:         "the number literal is too large for any known type",
	InvalidUtf8Literal:     "the source contains an invalid UTF-8 byte sequence",

	InvalidStatementDefinition:         "invalid statement definition",
	InvalidFunctionDefinition:          "invalid function definition",
	InvalidStructDefinition:            "invalid struct definition",
	InvalidStructFieldDefinition:       "invalid struct field definition",
	InvalidIfConditionDefinition:       "an if condition must be surrounded by parentheses",
	InvalidLoopBody:                    "loop bodies are defined with braces surrounding the repeated code",
	MissingCommaAtArrayDef:             "a comma has been left out when defining an array",
	InvalidStructExtensionPlacement:    "struct extensions may only be placed at the top level",
	InvalidEllipsisLocation:            "an ellipsis may only appear as the final parameter",
	FunctionRequiresExplicitVisibility: "a function definition requires an explicit visibility keyword",
	InvalidModulePathDefinition:        "invalid module path definition",
	InvalidCompilerHint:                "invalid compiler hint",

	TypeError:                    "mismatched operand types",
	VariableNotFound:             "variable not found",
	VariableTypeMismatch:         "variable type mismatch",
	StructFieldNotFound:          "struct field not found",
	TypeMismatchNonIndexable:     "the type cannot be indexed",
	InvalidTypeCast:              "invalid type cast",
	InvalidFunctionArgumentCount: "wrong number of function call arguments",
	InvalidFunctionCallArguments: "invalid function call arguments",
	ArgumentError:                "invalid argument",
	DuplicateSignatureImports:    "the import resolves to more than one signature",
	FunctionDependencyNotFound:   "the import does not resolve to any signature",
	EnumVariantNotFound:          "enum variant not found",
	InvalidValue:                 "the token cannot be interpreted as a value",
	ValueTypeUnknown:             "the literal's type cannot be inferred without a desired-type context",
	FloatIsNAN:                   "the float literal is NaN",
	InvalidControlFlowUsage:      "break/continue used outside a loop",
	InvalidFeatureRequirement:    "invalid feature requirement",
	InvalidType:                  "no matching type for the token",
	InvalidStructName:            "no struct registered with that name",

	NoMain:      "executable projects require a main function",
	InvalidMain: "main must take no parameters and return int",
}

func (k Kind) String() string {
	if msg, ok := kindMessages[k]; ok {
		return msg
	}
	return "unknown error"
}

// Error is the single error type returned by every fallible operation in
// this module. Payload fields are populated only by the Kinds that need
// them; the zero value of each is left unused otherwise.
type Error struct {
	Kind  Kind
	Range token.Range // zero Range if the failure has no associated source span

	// Payload, populated by specific Kinds.
	Name   string // VariableNotFound, StructFieldNotFound, EnumVariantNotFound, FunctionDependencyNotFound, ...
	Type1  string // TypeError: left operand type, InvalidTypeCast: source type, InvalidType: offending token text
	Type2  string // TypeError: right operand type, InvalidTypeCast: target type
	Detail string // free-form extra context, e.g. offending module path or hint name
}

func (e *Error) Error() string {
	msg := e.Kind.String()
	switch e.Kind {
	case TypeError:
		msg = fmt.Sprintf("%s: %s vs %s", msg, e.Type1, e.Type2)
	case InvalidTypeCast:
		msg = fmt.Sprintf("%s: %s to %s", msg, e.Type1, e.Type2)
	case VariableNotFound, StructFieldNotFound, EnumVariantNotFound,
		FunctionDependencyNotFound, InvalidStructName, DuplicateSignatureImports:
		if e.Name != "" {
			msg = fmt.Sprintf("%s: %q", msg, e.Name)
		}
	case InvalidType:
		if e.Type1 != "" {
			msg = fmt.Sprintf("%s: %q", msg, e.Type1)
		}
	}
	if e.Detail != "" {
		msg = fmt.Sprintf("%s (%s)", msg, e.Detail)
	}
	if e.Range.Start.Valid() {
		msg = fmt.Sprintf("%d:%d: %s", e.Range.Start.Line, e.Range.Start.Col, msg)
	}
	return msg
}

// New builds an *Error of the given kind at the given range, with no
// payload. Use the New* helpers below when a Kind needs payload fields.
func New(kind Kind, rng token.Range) *Error {
	return &Error{Kind: kind, Range: rng}
}

// NewNamed builds an *Error carrying a Name payload (VariableNotFound,
// StructFieldNotFound, EnumVariantNotFound, FunctionDependencyNotFound,
// InvalidStructName).
func NewNamed(kind Kind, rng token.Range, name string) *Error {
	return &Error{Kind: kind, Range: rng, Name: name}
}

// NewTypeError builds a TypeError between two mismatched operand types.
func NewTypeError(rng token.Range, left, right string) *Error {
	return &Error{Kind: TypeError, Range: rng, Type1: left, Type2: right}
}

// NewTypeCastError builds an InvalidTypeCast between a source and target type.
func NewTypeCastError(rng token.Range, from, to string) *Error {
	return &Error{Kind: InvalidTypeCast, Range: rng, Type1: from, Type2: to}
}

// NewDetailed builds an *Error carrying free-form extra context.
func NewDetailed(kind Kind, rng token.Range, detail string) *Error {
	return &Error{Kind: kind, Range: rng, Detail: detail}
}
