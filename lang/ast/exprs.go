package ast

import (
	"strconv"

	"github.com/foglang/fogc/lang/types"
)

// MathOp is a binary arithmetic operator kind.
type MathOp int

const (
	Add MathOp = iota
	Sub
	Mul
	Div
	Mod
)

// CompareOp is a comparison ordering kind.
type CompareOp int

const (
	Eq CompareOp = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

// Literal is a fully-typed literal value: an int/float/bool/string constant
// that has already been resolved against a desired-type context. A numeric
// literal parsed without a numeric desired type is typed i32, whatever its
// text; no smaller or wider type is inferred from the value.
type Literal struct {
	Type *types.Type
	Text string // the literal's canonical textual form, e.g. "0", "true", "\"hi\""
}

func (*Literal) parsedNode() {}

// FieldStep is one hop of a struct-field access chain: the struct type it
// is taken against, and the field name selected.
type FieldStep struct {
	StructType *types.Type
	FieldName  string
}

// BasicReference is a plain variable-name lookup.
type BasicReference struct {
	Name string
	Type *types.Type
}

func (*BasicReference) parsedNode() {}

// ArrayReference is an array index: Base[Index].
type ArrayReference struct {
	Base  *Instance
	Index *Instance
	Type  *types.Type // element type
}

func (*ArrayReference) parsedNode() {}

// StructFieldReference is a chain of field lookups rooted at Base, e.g.
// `p.x` or `p.inner.y`.
type StructFieldReference struct {
	Base  *Instance
	Chain []FieldStep
	Type  *types.Type // the resolved type of the final field in the chain
}

func (*StructFieldReference) parsedNode() {}

// TypeCast casts Expr's value to Target.
type TypeCast struct {
	Expr   *Instance
	Target *types.Type
}

func (*TypeCast) parsedNode() {}

// MathematicalExpression is a binary arithmetic node. Operand types must
// match exactly; no implicit numeric promotion is performed.
type MathematicalExpression struct {
	Left, Right *Instance
	Op          MathOp
	Type        *types.Type // the shared, resolved operand type
}

func (*MathematicalExpression) parsedNode() {}

// MathematicalBlock wraps an expression to preserve operator precedence by
// bracketing. The body parser does not construct it: the parenthesized
// sub-expression of `(a + b) * c` is parsed as Brackets.
type MathematicalBlock struct {
	Inner *Instance
	Type  *types.Type
}

func (*MathematicalBlock) parsedNode() {}

// Brackets is a parenthesized group carrying its value type, e.g. `(expr)`.
// The body parser produces it for every parenthesized expression,
// including arithmetic regrouping such as `(a + b) * c`.
type Brackets struct {
	Inner *Instance
	Type  *types.Type
}

func (*Brackets) parsedNode() {}

// Comparison is a binary comparison node.
type Comparison struct {
	Left, Right *Instance
	Op          CompareOp
	OperandType *types.Type
}

func (*Comparison) parsedNode() {}

// ArgKey identifies a function-call argument map slot: either a named
// parameter or a zero-based positional index.
type ArgKey struct {
	Name    string
	Index   int
	IsNamed bool
}

func NamedArg(name string) ArgKey   { return ArgKey{Name: name, IsNamed: true} }
func PositionalArg(i int) ArgKey    { return ArgKey{Index: i} }
func (k ArgKey) String() string {
	if k.IsNamed {
		return k.Name
	}
	return "#" + strconv.Itoa(k.Index)
}

// Argument is a single resolved call-site argument: its expression, its
// resolved type, and (matching the unique-id scheme used by declarations)
// an id drawn from the parser's monotonic counter.
type Argument struct {
	Expr *Instance
	Type *types.Type
	ID   int64
}

// ArgMap is the ordered argument-identifier -> Argument map every
// FunctionCall carries; iteration order follows the order arguments were
// consumed at the call site.
type ArgMap = *OrderedArgMap

// FunctionCall is a call to a known signature; Args is total for every
// call that is not to an ellipsis_present import (every declared parameter
// is assigned exactly once).
type FunctionCall struct {
	Signature *Signature
	Name      string
	Args      ArgMap
	Type      *types.Type // the call's resolved type (the signature's return type)
}

func (*FunctionCall) parsedNode() {}

// GetPointerTo is the address-of operator applied to an lvalue expression.
type GetPointerTo struct {
	Expr *Instance
	Type *types.Type // pointer-to-Expr's-type
}

func (*GetPointerTo) parsedNode() {}

// DerefPointer dereferences a pointer-typed expression.
type DerefPointer struct {
	Expr *Instance
	Type *types.Type // the pointee type
}

func (*DerefPointer) parsedNode() {}

// ArrayInitialization is an array literal: a list of element expressions
// plus the shared element type.
type ArrayInitialization struct {
	Elems    []*Instance
	ElemType *types.Type
}

func (*ArrayInitialization) parsedNode() {}
