package parser

import (
	"github.com/foglang/fogc/lang/ast"
	"github.com/foglang/fogc/lang/errs"
	"github.com/foglang/fogc/lang/token"
	"github.com/foglang/fogc/lang/types"
)

// parseBlock parses statements until the cursor reaches end (an index into
// fp.insts, exclusive), returning the ordered list of parsed instances.
func (fp *funcParser) parseBlock(end int) ([]*ast.Instance, *errs.Error) {
	var out []*ast.Instance
	for fp.pos < end {
		if fp.tok() == token.SEMI || fp.tok() == token.DOC_COMMENT {
			fp.next()
			continue
		}
		inst, err := fp.parseStatement()
		if err != nil {
			return out, err
		}
		out = append(out, inst)
	}
	return out, nil
}

// parseStatement dispatches on the current token per the state machine
// governing statement bodies: decl | assign | call | ret | if | loop |
// while | for | break | continue | nested code block.
func (fp *funcParser) parseStatement() (*ast.Instance, *errs.Error) {
	start := fp.rng()
	switch fp.tok() {
	case token.RETURN:
		return fp.parseReturn(start)
	case token.IF:
		return fp.parseIf(start)
	case token.LOOP:
		return fp.parseLoop(start)
	case token.WHILE:
		return fp.parseWhile(start)
	case token.FOR:
		return fp.parseFor(start)
	case token.BREAK:
		return fp.parseControlFlow(start, ast.Break)
	case token.CONTINUE:
		return fp.parseControlFlow(start, ast.Continue)
	case token.LBRACE:
		return fp.parseCodeBlock(start)
	case token.CONST:
		return fp.parseDecl(start, false)
	case token.TYPE_DEFINITION:
		return fp.parseDecl(start, true)
	case token.IDENTIFIER:
		if _, ok := fp.p.reg.Lookup(fp.text()); ok && fp.peekTok(1) == token.IDENTIFIER {
			return fp.parseDecl(start, true)
		}
		return fp.parseAssignOrCall(start)
	case token.EXTEND:
		return nil, errs.New(errs.InvalidStructExtensionPlacement, start)
	default:
		return nil, errs.New(errs.InvalidStatementDefinition, start)
	}
}

func (fp *funcParser) parseControlFlow(start token.Range, kind ast.ControlFlowKind) (*ast.Instance, *errs.Error) {
	fp.next()
	end := fp.lastRng()
	if err := fp.expect(token.SEMI, errs.MissingSemiColon); err != nil {
		return nil, err
	}
	if fp.loopDepth == 0 {
		return nil, errs.New(errs.InvalidControlFlowUsage, start)
	}
	return ast.Wrap(&ast.ControlFlow{Kind: kind}, merge(start, end)), nil
}

// lastRng returns the range of the token just consumed.
func (fp *funcParser) lastRng() token.Range {
	if fp.pos == 0 || len(fp.insts) == 0 {
		return fp.rng()
	}
	i := fp.pos - 1
	if i >= len(fp.insts) {
		i = len(fp.insts) - 1
	}
	return fp.insts[i].Range
}

func merge(a, b token.Range) token.Range {
	return token.Merge([]token.Range{a, b}, true)
}

// parseDecl parses `TypeDef Identifier ('=' Expr)? ';'`. When mutable is
// false the leading `const` keyword has already been seen and is consumed
// here; the grammar is otherwise identical: `const TypeDef Identifier
// ('=' Expr)? ';'`.
func (fp *funcParser) parseDecl(start token.Range, mutable bool) (*ast.Instance, *errs.Error) {
	if !mutable {
		fp.next() // consume `const`
	}
	if fp.tok() != token.TYPE_DEFINITION && fp.tok() != token.IDENTIFIER {
		return nil, errs.New(errs.InvalidStatementDefinition, fp.rng())
	}
	declType, terr := types.FromToken(fp.text(), fp.p.reg, fp.rng())
	if terr != nil {
		return nil, terr
	}
	fp.next()

	if fp.tok() != token.IDENTIFIER {
		return nil, errs.New(errs.InvalidStatementDefinition, fp.rng())
	}
	name := fp.text()
	fp.next()

	var init *ast.Instance
	if fp.tok() == token.ASSIGN {
		fp.next()
		var err *errs.Error
		init, err = fp.parseExpr(declType)
		if err != nil {
			return nil, err
		}
	}
	end := fp.lastRng()
	if err := fp.expect(token.SEMI, errs.MissingSemiColon); err != nil {
		return nil, err
	}

	if err := fp.declare(name, declType, start); err != nil {
		return nil, err
	}
	id := fp.p.newID()
	return ast.Wrap(&ast.NewVariable{Name: name, Type: declType, Init: init, ID: id, Mutable: mutable}, merge(start, end)), nil
}

// parseAssignOrCall parses `Identifier '(' args ')' ';'` when the lvalue
// is immediately followed by an opening parenthesis, otherwise `Lvalue
// ('=' | compound-assign) Expr ';'`.
func (fp *funcParser) parseAssignOrCall(start token.Range) (*ast.Instance, *errs.Error) {
	inst, err := fp.parseAssignOrCallCore(start)
	if err != nil {
		return nil, err
	}
	if err := fp.expect(token.SEMI, errs.MissingSemiColon); err != nil {
		return nil, err
	}
	return inst, nil
}

// parseAssignOrCallCore parses the same `Identifier '(' args ')'` /
// `Lvalue ('=' | compound-assign) Expr` grammar as parseAssignOrCall but
// consumes no trailing terminator, for use where the caller's own grammar
// supplies it (a `for` loop's step clause is followed by ')', not ';').
func (fp *funcParser) parseAssignOrCallCore(start token.Range) (*ast.Instance, *errs.Error) {
	if fp.tok() == token.IDENTIFIER && fp.peekTok(1) == token.LPAREN {
		call, err := fp.parseCallExpr()
		if err != nil {
			return nil, err
		}
		end := fp.lastRng()
		return ast.Wrap(call.Node, merge(start, end)), nil
	}

	lhs, err := fp.parseLvalue()
	if err != nil {
		return nil, err
	}

	op, compound := compoundOpFor(fp.tok())
	switch {
	case fp.tok() == token.ASSIGN:
		fp.next()
	case compound:
		fp.next()
	default:
		return nil, errs.New(errs.InvalidStatementDefinition, fp.rng())
	}

	lhsType := typeOf(lhs.Node)
	rhs, err := fp.parseExpr(lhsType)
	if err != nil {
		return nil, err
	}
	end := fp.lastRng()

	value := rhs
	if compound {
		rhsType := typeOf(rhs.Node)
		if !types.Equal(rhsType, lhsType) {
			return nil, errs.NewTypeError(rhs.Range, lhsType.String(), rhsType.String())
		}
		value = ast.Wrap(&ast.MathematicalExpression{Left: lhs, Right: rhs, Op: op, Type: lhsType}, merge(lhs.Range, rhs.Range))
	}
	return ast.Wrap(&ast.SetValue{Target: lhs, Value: value}, merge(start, end)), nil
}

func compoundOpFor(tok token.Token) (ast.MathOp, bool) {
	switch tok {
	case token.PLUS_EQ:
		return ast.Add, true
	case token.MINUS_EQ:
		return ast.Sub, true
	case token.STAR_EQ:
		return ast.Mul, true
	case token.SLASH_EQ:
		return ast.Div, true
	case token.MOD_EQ:
		return ast.Mod, true
	default:
		return 0, false
	}
}

func (fp *funcParser) parseReturn(start token.Range) (*ast.Instance, *errs.Error) {
	fp.next() // return
	if fp.retTy.Kind == types.Void {
		end := fp.lastRng()
		if err := fp.expect(token.SEMI, errs.MissingSemiColon); err != nil {
			return nil, err
		}
		return ast.Wrap(&ast.ReturnValue{}, merge(start, end)), nil
	}
	expr, err := fp.parseExpr(fp.retTy)
	if err != nil {
		return nil, err
	}
	end := fp.lastRng()
	if err := fp.expect(token.SEMI, errs.MissingSemiColon); err != nil {
		return nil, err
	}
	return ast.Wrap(&ast.ReturnValue{Expr: expr}, merge(start, end)), nil
}

// parseIf parses `if (cond) { then } [else if (cond2) {...}]* [else
// {else-body}]?`, desugaring else-if chains into nested If nodes at parse
// time, as spelled out in the surface grammar's desugaring rules.
func (fp *funcParser) parseIf(start token.Range) (*ast.Instance, *errs.Error) {
	fp.next() // if
	cond, err := fp.parseParenCondition()
	if err != nil {
		return nil, err
	}
	then, err := fp.parseBracedBlock()
	if err != nil {
		return nil, err
	}

	var elseBody []*ast.Instance
	if fp.tok() == token.ELSE {
		fp.next()
		if fp.tok() == token.IF {
			nested, nerr := fp.parseIf(fp.rng())
			if nerr != nil {
				return nil, nerr
			}
			elseBody = []*ast.Instance{nested}
		} else {
			elseBody, err = fp.parseBracedBlock()
			if err != nil {
				return nil, err
			}
		}
	}
	return ast.Wrap(&ast.If{Cond: cond, Then: then, Else: elseBody}, merge(start, fp.lastRng())), nil
}

func (fp *funcParser) parseParenCondition() (*ast.Instance, *errs.Error) {
	if err := fp.expect(token.LPAREN, errs.InvalidIfConditionDefinition); err != nil {
		return nil, err
	}
	cond, err := fp.parseExpr(types.TypeBool)
	if err != nil {
		return nil, err
	}
	if typeOf(cond.Node).Kind != types.Bool {
		return nil, errs.New(errs.InvalidIfConditionDefinition, cond.Range)
	}
	if err := fp.expect(token.RPAREN, errs.InvalidIfConditionDefinition); err != nil {
		return nil, err
	}
	return cond, nil
}

func (fp *funcParser) parseBracedBlock() ([]*ast.Instance, *errs.Error) {
	closeIdx, err := closingDelim(fp, token.LBRACE, token.RBRACE, errs.LeftOpenBraces)
	if err != nil {
		return nil, err
	}
	fp.next() // '{'
	fp.pushScope()
	defer fp.popScope()
	body, berr := fp.parseBlock(closeIdx)
	if berr != nil {
		return nil, berr
	}
	fp.pos = closeIdx + 1 // past '}'
	return body, nil
}

func (fp *funcParser) parseCodeBlock(start token.Range) (*ast.Instance, *errs.Error) {
	body, err := fp.parseBracedBlock()
	if err != nil {
		return nil, err
	}
	return ast.Wrap(&ast.CodeBlock{Body: body}, merge(start, fp.lastRng())), nil
}

// parseLoop parses a bare `loop { body }`.
func (fp *funcParser) parseLoop(start token.Range) (*ast.Instance, *errs.Error) {
	fp.next() // loop
	fp.loopDepth++
	body, err := fp.parseBracedBlock()
	fp.loopDepth--
	if err != nil {
		return nil, err
	}
	return ast.Wrap(&ast.Loop{Body: body}, merge(start, fp.lastRng())), nil
}

// parseWhile desugars `while (cond) { body }` to `loop { if (!cond) break;
// body }`.
func (fp *funcParser) parseWhile(start token.Range) (*ast.Instance, *errs.Error) {
	fp.next() // while
	cond, err := fp.parseParenCondition()
	if err != nil {
		return nil, err
	}
	fp.loopDepth++
	body, berr := fp.parseBracedBlock()
	fp.loopDepth--
	if berr != nil {
		return nil, berr
	}

	guard := negatedBreakGuard(cond)
	loopBody := append([]*ast.Instance{guard}, body...)
	return ast.Wrap(&ast.Loop{Body: loopBody}, merge(start, fp.lastRng())), nil
}

// negatedBreakGuard builds `if (!cond) break;`, used to desugar both
// `while` and `for` into a bare `loop`. The type system has no dedicated
// unary-not node, so `!cond` is represented as `cond == false`.
func negatedBreakGuard(cond *ast.Instance) *ast.Instance {
	notCond := ast.Wrap(&ast.Comparison{
		Left:        cond,
		Right:       ast.Wrap(&ast.Literal{Type: types.TypeBool, Text: "false"}, cond.Range),
		Op:          ast.Eq,
		OperandType: types.TypeBool,
	}, cond.Range)
	brk := ast.Wrap(&ast.ControlFlow{Kind: ast.Break}, cond.Range)
	return ast.Wrap(&ast.If{Cond: notCond, Then: []*ast.Instance{brk}}, cond.Range)
}

// parseFor desugars `for (init; cond; step) { body }` to `{ init; loop {
// if (!cond) break; body; step; } }`.
func (fp *funcParser) parseFor(start token.Range) (*ast.Instance, *errs.Error) {
	fp.next() // for
	if err := fp.expect(token.LPAREN, errs.InvalidLoopBody); err != nil {
		return nil, err
	}
	fp.pushScope()
	defer fp.popScope()

	init, err := fp.parseStatement()
	if err != nil {
		return nil, err
	}
	cond, err := fp.parseExpr(types.TypeBool)
	if err != nil {
		return nil, err
	}
	if err := fp.expect(token.SEMI, errs.MissingSemiColon); err != nil {
		return nil, err
	}
	step, err := fp.parseAssignOrCallCore(fp.rng())
	if err != nil {
		return nil, err
	}
	if err := fp.expect(token.RPAREN, errs.InvalidLoopBody); err != nil {
		return nil, err
	}

	fp.loopDepth++
	body, berr := fp.parseBracedBlock()
	fp.loopDepth--
	if berr != nil {
		return nil, berr
	}

	guard := negatedBreakGuard(cond)
	loopBody := append([]*ast.Instance{guard}, body...)
	loopBody = append(loopBody, step)
	loop := ast.Wrap(&ast.Loop{Body: loopBody}, merge(start, fp.lastRng()))

	return ast.Wrap(&ast.CodeBlock{Body: []*ast.Instance{init, loop}}, merge(start, fp.lastRng())), nil
}

func typeOf(n ast.Node) *types.Type {
	switch n := n.(type) {
	case *ast.BasicReference:
		return n.Type
	case *ast.ArrayReference:
		return n.Type
	case *ast.StructFieldReference:
		return n.Type
	case *ast.Literal:
		return n.Type
	case *ast.TypeCast:
		return n.Target
	case *ast.MathematicalExpression:
		return n.Type
	case *ast.MathematicalBlock:
		return n.Type
	case *ast.Brackets:
		return n.Type
	case *ast.Comparison:
		return types.TypeBool
	case *ast.FunctionCall:
		return n.Type
	case *ast.GetPointerTo:
		return n.Type
	case *ast.DerefPointer:
		return n.Type
	case *ast.ArrayInitialization:
		return types.NewArray(n.ElemType, len(n.Elems))
	default:
		return types.TypeVoid
	}
}
