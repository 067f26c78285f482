// Package ast defines the recursive parsed-node tree produced by the body
// parser, and the function-signature data shared between the signature
// collector, the dependency merger, and the body parser.
package ast

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/foglang/fogc/lang/token"
	"github.com/foglang/fogc/lang/types"
)

// Node is implemented by every parsed-node variant. It carries no position
// information itself; every Node is wrapped in an Instance, which does.
type Node interface {
	parsedNode()
}

// Instance wraps a Node with the source range its constituent tokens
// covered, computed by merging those tokens' ranges (token.Merge).
type Instance struct {
	Node  Node
	Range token.Range
}

// Wrap is a convenience constructor for Instance.
func Wrap(n Node, rng token.Range) *Instance { return &Instance{Node: n, Range: rng} }

// Visibility is one of the four classes a function signature may declare.
type Visibility int

const (
	Private Visibility = iota
	Public             // intra-project
	PublicLibrary      // exported across the dependency boundary
	Branch             // internal anonymous bodies, not user-addressable
)

func (v Visibility) String() string {
	switch v {
	case Private:
		return "priv"
	case Public:
		return "pub"
	case PublicLibrary:
		return "publib"
	case Branch:
		return "branch"
	default:
		return "unknown"
	}
}

// CompilerHint is one of the recognised `@hint` markers preceding a
// function definition.
type CompilerHint int

const (
	HintCold CompilerHint = iota
	HintNoFree
	HintInline
	HintNoUnwind
	HintFeature // carries a Feature string, the gate name
)

// Hint pairs a CompilerHint with its optional argument (populated only by
// HintFeature).
type Hint struct {
	Kind    CompilerHint
	Feature string
}

// OrderedArgMap is the concrete ordered map type backing ArgMap.
type OrderedArgMap = orderedmap.OrderedMap[ArgKey, Argument]

// Parameters is the ordered name -> type map a signature's parameter list
// is stored as; iteration order is the declaration order and is observable
// downstream.
type Parameters = *orderedmap.OrderedMap[string, *types.Type]

// ModulePath is the list of identifiers naming a function's enclosing
// project/library and file path, used to disambiguate imports (spec
// GLOSSARY "Module path").
type ModulePath []string

func (p ModulePath) String() string {
	s := ""
	for i, seg := range p {
		if i > 0 {
			s += "::"
		}
		s += seg
	}
	return s
}

// Signature is the externally observable part of a function.
type Signature struct {
	Name            string
	Parameters      Parameters
	ReturnType      *types.Type
	ModulePath      ModulePath
	Visibility      Visibility
	Hints           []Hint
	EllipsisPresent bool // set for foreign imports whose parameter list ends with `...`
	Foreign         bool // true for `import NAME(...): T;` declarations with no body
}

// HasFeatureGate reports whether the signature carries an `@feature("X")`
// hint, and if so returns the gate name.
func (s *Signature) HasFeatureGate() (string, bool) {
	for _, h := range s.Hints {
		if h.Kind == HintFeature {
			return h.Feature, true
		}
	}
	return "", false
}

// FunctionDefinition is a signature plus the ordered list of parsed node
// instances making up its body. Foreign imports have a nil Body.
type FunctionDefinition struct {
	Signature *Signature
	Body      []*Instance
}

// UnparsedFunctionDefinition is what the signature collector records for a
// function with a body: its signature plus the raw token span of the body,
// handed to the body parser in the second pass.
type UnparsedFunctionDefinition struct {
	Signature  *Signature
	BodyTokens []token.Token
	BodyText   []string
	BodyRanges []token.Range
}
