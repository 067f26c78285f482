package parser

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/foglang/fogc/lang/ast"
	"github.com/foglang/fogc/lang/errs"
	"github.com/foglang/fogc/lang/token"
	"github.com/foglang/fogc/lang/types"
)

// parseExpr parses one expression against desired, the type context the
// caller already knows (a declared variable's type, a parameter's type, a
// function's return type, ...). desired resolves untyped literals and
// disambiguates nothing else: every other node already carries its own
// type, computed bottom-up from its operands.
func (fp *funcParser) parseExpr(desired *types.Type) (*ast.Instance, *errs.Error) {
	return fp.parseLogical(desired)
}

func (fp *funcParser) parseLogical(desired *types.Type) (*ast.Instance, *errs.Error) {
	left, err := fp.parseComparison(desired)
	if err != nil {
		return nil, err
	}
	for fp.tok() == token.AND_AND || fp.tok() == token.OR_OR {
		op := compareOpFor(fp.tok())
		fp.next()
		right, rerr := fp.parseComparison(desired)
		if rerr != nil {
			return nil, rerr
		}
		left = ast.Wrap(&ast.Comparison{Left: left, Right: right, Op: op, OperandType: types.TypeBool}, merge(left.Range, right.Range))
	}
	return left, nil
}

func (fp *funcParser) parseComparison(desired *types.Type) (*ast.Instance, *errs.Error) {
	left, err := fp.parseAdditive(desired)
	if err != nil {
		return nil, err
	}
	if isComparisonTok(fp.tok()) {
		op := compareOpFor(fp.tok())
		fp.next()
		right, rerr := fp.parseAdditive(typeOf(left.Node))
		if rerr != nil {
			return nil, rerr
		}
		lt, rt := typeOf(left.Node), typeOf(right.Node)
		if !types.Equal(lt, rt) {
			return nil, errs.NewTypeError(merge(left.Range, right.Range), lt.String(), rt.String())
		}
		return ast.Wrap(&ast.Comparison{Left: left, Right: right, Op: op, OperandType: lt}, merge(left.Range, right.Range)), nil
	}
	return left, nil
}

func isComparisonTok(t token.Token) bool {
	switch t {
	case token.EQL, token.NEQ, token.LT, token.LE, token.GT, token.GE, token.LANGLE, token.RANGLE:
		return true
	default:
		return false
	}
}

func compareOpFor(t token.Token) ast.CompareOp {
	switch t {
	case token.EQL:
		return ast.Eq
	case token.NEQ:
		return ast.Ne
	case token.LT, token.LANGLE:
		return ast.Lt
	case token.LE:
		return ast.Le
	case token.GT, token.RANGLE:
		return ast.Gt
	case token.GE:
		return ast.Ge
	default:
		return ast.Eq
	}
}

func (fp *funcParser) parseAdditive(desired *types.Type) (*ast.Instance, *errs.Error) {
	left, err := fp.parseMultiplicative(desired)
	if err != nil {
		return nil, err
	}
	for fp.tok() == token.PLUS || fp.tok() == token.MINUS {
		op := ast.Add
		if fp.tok() == token.MINUS {
			op = ast.Sub
		}
		fp.next()
		right, rerr := fp.parseMultiplicative(typeOf(left.Node))
		if rerr != nil {
			return nil, rerr
		}
		left, err = fp.combineArith(left, right, op)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (fp *funcParser) parseMultiplicative(desired *types.Type) (*ast.Instance, *errs.Error) {
	left, err := fp.parseUnary(desired)
	if err != nil {
		return nil, err
	}
	for fp.tok() == token.STAR || fp.tok() == token.SLASH || fp.tok() == token.MOD {
		var op ast.MathOp
		switch fp.tok() {
		case token.STAR:
			op = ast.Mul
		case token.SLASH:
			op = ast.Div
		case token.MOD:
			op = ast.Mod
		}
		fp.next()
		right, rerr := fp.parseUnary(typeOf(left.Node))
		if rerr != nil {
			return nil, rerr
		}
		left, err = fp.combineArith(left, right, op)
		if err != nil {
			return nil, err
		}
	}
	return left, nil
}

func (fp *funcParser) combineArith(left, right *ast.Instance, op ast.MathOp) (*ast.Instance, *errs.Error) {
	lt, rt := typeOf(left.Node), typeOf(right.Node)
	if !types.Equal(lt, rt) {
		return nil, errs.NewTypeError(merge(left.Range, right.Range), lt.String(), rt.String())
	}
	return ast.Wrap(&ast.MathematicalExpression{Left: left, Right: right, Op: op, Type: lt}, merge(left.Range, right.Range)), nil
}

// parseUnary handles `!expr`, `ref expr` (address-of), `deref expr`
// (dereference), and `expr as Type` casts, which bind tighter than any
// binary operator.
func (fp *funcParser) parseUnary(desired *types.Type) (*ast.Instance, *errs.Error) {
	switch fp.tok() {
	case token.NOT:
		start := fp.rng()
		fp.next()
		operand, err := fp.parseUnary(types.TypeBool)
		if err != nil {
			return nil, err
		}
		if typeOf(operand.Node).Kind != types.Bool {
			return nil, errs.New(errs.TypeMismatchNonIndexable, operand.Range)
		}
		return ast.Wrap(&ast.Comparison{
			Left:        operand,
			Right:       ast.Wrap(&ast.Literal{Type: types.TypeBool, Text: "false"}, operand.Range),
			Op:          ast.Eq,
			OperandType: types.TypeBool,
		}, merge(start, operand.Range)), nil
	case token.REF:
		start := fp.rng()
		fp.next()
		operand, err := fp.parseUnary(nil)
		if err != nil {
			return nil, err
		}
		return ast.Wrap(&ast.GetPointerTo{Expr: operand, Type: types.NewPointer(typeOf(operand.Node))}, merge(start, operand.Range)), nil
	case token.DEREF:
		start := fp.rng()
		fp.next()
		operand, err := fp.parseUnary(nil)
		if err != nil {
			return nil, err
		}
		ot := typeOf(operand.Node)
		if ot.Kind != types.Pointer {
			return nil, errs.New(errs.InvalidTypeCast, operand.Range)
		}
		return ast.Wrap(&ast.DerefPointer{Expr: operand, Type: ot.Elem}, merge(start, operand.Range)), nil
	}
	return fp.parseCastOrPostfix(desired)
}

func (fp *funcParser) parseCastOrPostfix(desired *types.Type) (*ast.Instance, *errs.Error) {
	expr, err := fp.parsePostfix(desired)
	if err != nil {
		return nil, err
	}
	for fp.tok() == token.AS {
		fp.next()
		if fp.tok() != token.TYPE_DEFINITION && fp.tok() != token.IDENTIFIER {
			return nil, errs.New(errs.InvalidTypeCast, fp.rng())
		}
		target, terr := types.FromToken(fp.text(), fp.p.reg, fp.rng())
		if terr != nil {
			return nil, terr
		}
		end := fp.rng()
		fp.next()
		expr = ast.Wrap(&ast.TypeCast{Expr: expr, Target: target}, merge(expr.Range, end))
	}
	return expr, nil
}

// parsePostfix handles field access (`.`) and array indexing (`[`) chained
// onto a primary expression.
func (fp *funcParser) parsePostfix(desired *types.Type) (*ast.Instance, *errs.Error) {
	base, err := fp.parsePrimary(desired)
	if err != nil {
		return nil, err
	}
	for {
		switch fp.tok() {
		case token.DOT:
			fp.next()
			if fp.tok() != token.IDENTIFIER {
				return nil, errs.New(errs.StructFieldNotFound, fp.rng())
			}
			field := fp.text()
			end := fp.rng()
			fp.next()

			baseType := typeOf(base.Node)
			if baseType.Kind == types.Pointer {
				baseType = baseType.Elem
			}
			if baseType.Kind != types.Struct {
				return nil, errs.New(errs.StructFieldNotFound, end)
			}
			fieldType, ok := baseType.Fields.Get(field)
			if !ok {
				return nil, errs.NewNamed(errs.StructFieldNotFound, end, field)
			}
			base = ast.Wrap(&ast.StructFieldReference{
				Base:  base,
				Chain: []ast.FieldStep{{StructType: baseType, FieldName: field}},
				Type:  fieldType,
			}, merge(base.Range, end))
		case token.LBRACK:
			fp.next()
			idx, ierr := fp.parseExpr(types.TypeI32)
			if ierr != nil {
				return nil, ierr
			}
			end := fp.rng()
			if err := fp.expect(token.RBRACK, errs.LeftOpenSquareBrackets); err != nil {
				return nil, err
			}
			baseType := typeOf(base.Node)
			if !types.IsIndexable(baseType) {
				return nil, errs.New(errs.TypeMismatchNonIndexable, end)
			}
			base = ast.Wrap(&ast.ArrayReference{Base: base, Index: idx, Type: baseType.Elem}, merge(base.Range, end))
		default:
			return base, nil
		}
	}
}

// parsePrimary parses a literal, a parenthesized/bracketed expression, an
// array initializer, or an identifier reference (variable, or a call when
// immediately followed by '(').
func (fp *funcParser) parsePrimary(desired *types.Type) (*ast.Instance, *errs.Error) {
	switch fp.tok() {
	case token.UNPARSED_LITERAL, token.STRING_LITERAL, token.BOOL_LITERAL:
		return fp.parseLiteral(desired)
	case token.LPAREN:
		start := fp.rng()
		fp.next()
		inner, err := fp.parseExpr(desired)
		if err != nil {
			return nil, err
		}
		end := fp.rng()
		if err := fp.expect(token.RPAREN, errs.LeftOpenParentheses); err != nil {
			return nil, err
		}
		return ast.Wrap(&ast.Brackets{Inner: inner, Type: typeOf(inner.Node)}, merge(start, end)), nil
	case token.LBRACK:
		return fp.parseArrayInit(desired)
	case token.IDENTIFIER:
		if fp.peekTok(1) == token.LPAREN {
			return fp.parseCallExpr()
		}
		return fp.parseReference()
	case token.THIS:
		return fp.parseReference()
	default:
		return nil, errs.New(errs.InvalidValue, fp.rng())
	}
}

func (fp *funcParser) parseLiteral(desired *types.Type) (*ast.Instance, *errs.Error) {
	text := fp.text()
	rng := fp.rng()
	tok := fp.tok()
	fp.next()

	var lt *types.Type
	switch tok {
	case token.BOOL_LITERAL:
		lt = types.TypeBool
	case token.STRING_LITERAL:
		lt = types.TypeCstr
	default:
		if desired == nil || !isNumeric(desired) {
			if text == "" {
				return nil, errs.New(errs.ValueTypeUnknown, rng)
			}
			lt = types.TypeI32
		} else {
			lt = desired
		}
	}
	return ast.Wrap(&ast.Literal{Type: lt, Text: text}, rng), nil
}

func isNumeric(t *types.Type) bool {
	switch t.Kind {
	case types.I16, types.I32, types.I64, types.U8, types.U16, types.U32, types.U64, types.F16, types.F32, types.F64:
		return true
	default:
		return false
	}
}

func (fp *funcParser) parseArrayInit(desired *types.Type) (*ast.Instance, *errs.Error) {
	start := fp.rng()
	fp.next() // '['
	elemDesired := (*types.Type)(nil)
	if desired != nil && desired.Kind == types.Array {
		elemDesired = desired.Elem
	}

	var elems []*ast.Instance
	for fp.tok() != token.RBRACK {
		e, err := fp.parseExpr(elemDesired)
		if err != nil {
			return nil, err
		}
		elems = append(elems, e)
		if elemDesired == nil {
			elemDesired = typeOf(e.Node)
		}
		if fp.tok() == token.COMMA {
			fp.next()
			continue
		}
		if fp.tok() != token.RBRACK {
			return nil, errs.New(errs.MissingCommaAtArrayDef, fp.rng())
		}
	}
	end := fp.rng()
	if err := fp.expect(token.RBRACK, errs.LeftOpenSquareBrackets); err != nil {
		return nil, err
	}
	if elemDesired == nil {
		elemDesired = types.TypeVoid
	}
	return ast.Wrap(&ast.ArrayInitialization{Elems: elems, ElemType: elemDesired}, merge(start, end)), nil
}

// parseReference resolves a bare identifier (or `this`) against the scope
// stack.
func (fp *funcParser) parseReference() (*ast.Instance, *errs.Error) {
	name := fp.text()
	rng := fp.rng()
	fp.next()

	t, ok := fp.lookup(name)
	if !ok {
		return nil, errs.NewNamed(errs.VariableNotFound, rng, name)
	}
	return ast.Wrap(&ast.BasicReference{Name: name, Type: t}, rng), nil
}

// parseCallExpr parses `Name '(' args ')'`, resolving named and
// positional arguments against the callee's parameter list: a named
// argument consumes its matching parameter slot, a positional argument
// consumes the first slot not yet filled, in declaration order.
func (fp *funcParser) parseCallExpr() (*ast.Instance, *errs.Error) {
	name := fp.text()
	start := fp.rng()
	fp.next()

	sig, ok := fp.p.imports.Get(name)
	if !ok {
		return nil, errs.NewNamed(errs.FunctionDependencyNotFound, start, name)
	}

	if err := fp.expect(token.LPAREN, errs.LeftOpenParentheses); err != nil {
		return nil, err
	}

	remaining := orderedmap.New[string, *types.Type]()
	for pr := sig.Parameters.Oldest(); pr != nil; pr = pr.Next() {
		remaining.Set(pr.Key, pr.Value)
	}

	args := orderedmap.New[ast.ArgKey, ast.Argument]()
	argIndex := 0
	for fp.tok() != token.RPAREN {
		key, desired, err := fp.resolveArgSlot(remaining, argIndex, sig.EllipsisPresent)
		if err != nil {
			return nil, err
		}
		expr, aerr := fp.parseExpr(desired)
		if aerr != nil {
			return nil, aerr
		}
		id := fp.p.newID()
		args.Set(key, ast.Argument{Expr: expr, Type: typeOf(expr.Node), ID: id})
		argIndex++

		if fp.tok() == token.COMMA {
			fp.next()
			continue
		}
		break
	}
	end := fp.rng()
	if err := fp.expect(token.RPAREN, errs.LeftOpenParentheses); err != nil {
		return nil, err
	}
	if !sig.EllipsisPresent && remaining.Len() > 0 && args.Len() != sig.Parameters.Len() {
		return nil, errs.New(errs.InvalidFunctionArgumentCount, merge(start, end))
	}

	return ast.Wrap(&ast.FunctionCall{Signature: sig, Name: name, Args: args, Type: sig.ReturnType}, merge(start, end)), nil
}

// resolveArgSlot decides whether the next argument is named (`name = expr`)
// or positional, consumes its slot from remaining, and returns the
// ArgKey plus the parameter's declared type to parse the value against.
// A variadic trailing argument (beyond the declared parameters, only
// legal when the signature ends in an ellipsis) has no desired type.
func (fp *funcParser) resolveArgSlot(remaining *orderedmap.OrderedMap[string, *types.Type], index int, variadic bool) (ast.ArgKey, *types.Type, *errs.Error) {
	if fp.tok() == token.IDENTIFIER && fp.peekTok(1) == token.ASSIGN {
		name := fp.text()
		fp.next()
		fp.next() // '='
		t, ok := remaining.Delete(name)
		if !ok {
			return ast.ArgKey{}, nil, errs.NewNamed(errs.InvalidFunctionCallArguments, fp.rng(), name)
		}
		return ast.NamedArg(name), t, nil
	}

	first := remaining.Oldest()
	if first == nil {
		if !variadic {
			return ast.ArgKey{}, nil, errs.New(errs.InvalidFunctionArgumentCount, fp.rng())
		}
		return ast.PositionalArg(index), nil, nil
	}
	remaining.Delete(first.Key)
	return ast.PositionalArg(index), first.Value, nil
}

// parseLvalue parses the left-hand side of an assignment: a variable
// reference optionally followed by field/index chains, reusing the same
// postfix machinery as expression parsing.
func (fp *funcParser) parseLvalue() (*ast.Instance, *errs.Error) {
	return fp.parsePostfix(nil)
}
