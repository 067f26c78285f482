package ast

import "github.com/foglang/fogc/lang/types"

// NewVariable is a variable declaration. Id is drawn once from the parser's
// monotonic counter and is unique across the entire compilation unit.
type NewVariable struct {
	Name    string
	Type    *types.Type
	Init    *Instance // nil if the declaration has no initializer
	ID      int64
	Mutable bool
}

func (*NewVariable) parsedNode() {}

// SetValue is an assignment. Target must be a variable reference, an array
// index, a struct field path, or a dereferenced pointer.
type SetValue struct {
	Target *Instance
	Value  *Instance
}

func (*SetValue) parsedNode() {}

// ReturnValue is a `return` statement. Expr is nil when returning from a
// void-returning function.
type ReturnValue struct {
	Expr *Instance
}

func (*ReturnValue) parsedNode() {}

// If is a conditional. Then and Else are always present (an absent branch
// is represented as an empty slice, never nil semantics-wise).
type If struct {
	Cond *Instance
	Then []*Instance
	Else []*Instance
}

func (*If) parsedNode() {}

// CodeBlock is a nested, bare body (the desugared init/step wrapper `for`
// produces, or an explicit `{ ... }` block used as a statement).
type CodeBlock struct {
	Body []*Instance
}

func (*CodeBlock) parsedNode() {}

// Loop is an infinite loop body. `while` and `for` both desugar to this.
type Loop struct {
	Body []*Instance
}

func (*Loop) parsedNode() {}

// ControlFlowKind distinguishes break from continue.
type ControlFlowKind int

const (
	Break ControlFlowKind = iota
	Continue
)

// ControlFlow is a `break`/`continue` statement. The parser statically
// tracks loop nesting and rejects these outside of a loop body.
type ControlFlow struct {
	Kind ControlFlowKind
}

func (*ControlFlow) parsedNode() {}
