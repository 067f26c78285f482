// Package signature implements the first parser pass (spec's "Signature
// Collector"): a top-level-only scan of the token stream that registers
// custom types, function signatures (with their unparsed body token spans),
// foreign and source imports, and the public-library export table, without
// descending into any function body.
package signature

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/foglang/fogc/lang/ast"
	"github.com/foglang/fogc/lang/errs"
	"github.com/foglang/fogc/lang/lexer"
	"github.com/foglang/fogc/lang/token"
	"github.com/foglang/fogc/lang/types"
)

// SourceImport is a `import mod :: name;` directive: a module path to be
// resolved against the dependency function table in the merge phase.
type SourceImport struct {
	Path  ast.ModulePath
	Range token.Range
}

// Output is everything the signature pass hands to the dependency merger
// and the body parser.
type Output struct {
	Functions       []*ast.UnparsedFunctionDefinition
	SourceImports   []SourceImport
	ExternalImports []*ast.Signature // foreign imports (Signature.Foreign == true)
	CustomTypes     *types.Registry
	LibraryPublic   *orderedmap.OrderedMap[string, *ast.Signature] // only PublicLibrary-visibility functions
}

// Collect scans insts top-level and produces an Output, or the first error
// encountered. modulePath is stamped on every signature collected from this
// token stream.
func Collect(insts []lexer.Instance, modulePath ast.ModulePath) (*Output, *errs.Error) {
	c := &cursor{insts: insts}
	out := &Output{
		CustomTypes:   types.NewRegistry(),
		LibraryPublic: orderedmap.New[string, *ast.Signature](),
	}

	for c.tok() != token.EOF {
		switch c.tok() {
		case token.DOC_COMMENT, token.SEMI:
			c.next()

		case token.STRUCT:
			if err := collectStruct(c, out.CustomTypes); err != nil {
				return out, err
			}

		case token.ENUM:
			if err := collectEnum(c, out.CustomTypes); err != nil {
				return out, err
			}

		case token.IMPORT:
			if err := collectImport(c, modulePath, out); err != nil {
				return out, err
			}

		case token.EXTEND:
			if err := collectExtend(c, modulePath, out); err != nil {
				return out, err
			}

		case token.AT, token.PRIV, token.PUB, token.PUBLIB:
			if err := collectFunction(c, modulePath, out); err != nil {
				return out, err
			}

		case token.FUNCTION:
			return out, errs.New(errs.FunctionRequiresExplicitVisibility, c.rng())

		default:
			return out, errs.New(errs.InvalidStatementDefinition, c.rng())
		}
	}
	return out, nil
}

// cursor is a minimal read-only forward scanner over a lexed instance
// slice, shared by every top-level collector function in this package.
type cursor struct {
	insts []lexer.Instance
	pos   int
}

func (c *cursor) tok() token.Token {
	if c.pos >= len(c.insts) {
		return token.EOF
	}
	return c.insts[c.pos].Tok
}

func (c *cursor) text() string {
	if c.pos >= len(c.insts) {
		return ""
	}
	return c.insts[c.pos].Text
}

func (c *cursor) rng() token.Range {
	if c.pos >= len(c.insts) {
		if len(c.insts) == 0 {
			return token.Range{}
		}
		return c.insts[len(c.insts)-1].Range
	}
	return c.insts[c.pos].Range
}

func (c *cursor) peekTok(ahead int) token.Token {
	i := c.pos + ahead
	if i >= len(c.insts) {
		return token.EOF
	}
	return c.insts[i].Tok
}

func (c *cursor) next() { c.pos++ }

func (c *cursor) expect(tok token.Token, kind errs.Kind) *errs.Error {
	if c.tok() != tok {
		return errs.New(kind, c.rng())
	}
	c.next()
	return nil
}

// closingParen returns the index into c.insts of the ')' matching the '('
// at the current position, at the same nesting depth. It fails with
// LeftOpenParentheses if no match is found before EOF.
func closingParen(c *cursor) (int, *errs.Error) {
	return matchingDelim(c, token.LPAREN, token.RPAREN, errs.LeftOpenParentheses)
}

// closingBrace is the brace analogue of closingParen.
func closingBrace(c *cursor) (int, *errs.Error) {
	return matchingDelim(c, token.LBRACE, token.RBRACE, errs.LeftOpenBraces)
}

func matchingDelim(c *cursor, open, close token.Token, failKind errs.Kind) (int, *errs.Error) {
	if c.tok() != open {
		return 0, errs.New(failKind, c.rng())
	}
	depth := 0
	for i := c.pos; i < len(c.insts); i++ {
		switch c.insts[i].Tok {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, errs.New(failKind, c.rng())
}

func collectStruct(c *cursor, reg *types.Registry) *errs.Error {
	start := c.rng()
	c.next() // struct
	if c.tok() != token.IDENTIFIER {
		return errs.New(errs.InvalidStructDefinition, c.rng())
	}
	name := c.text()
	c.next()

	closeIdx, err := closingBrace(c)
	if err != nil {
		return err
	}
	c.next() // '{'

	fields := orderedmap.New[string, *types.Type]()
	for c.pos < closeIdx {
		if c.tok() != token.IDENTIFIER {
			return errs.New(errs.InvalidStructFieldDefinition, c.rng())
		}
		fieldName := c.text()
		c.next()
		if err := c.expect(token.COLON, errs.InvalidStructFieldDefinition); err != nil {
			return err
		}
		if c.tok() != token.TYPE_DEFINITION && c.tok() != token.IDENTIFIER {
			return errs.New(errs.InvalidStructFieldDefinition, c.rng())
		}
		fieldType, terr := types.FromToken(c.text(), reg, c.rng())
		if terr != nil {
			return terr
		}
		c.next()
		fields.Set(fieldName, fieldType)
		if c.tok() == token.COMMA {
			c.next()
		}
	}
	c.pos = closeIdx + 1 // consume '}'

	return reg.Register(name, types.NewStruct(name, fields), start)
}

func collectEnum(c *cursor, reg *types.Registry) *errs.Error {
	start := c.rng()
	c.next() // enum
	if c.tok() != token.IDENTIFIER {
		return errs.New(errs.InvalidStructDefinition, c.rng())
	}
	name := c.text()
	c.next()

	tagType := types.TypeI32
	if c.tok() == token.COLON {
		c.next()
		if c.tok() != token.TYPE_DEFINITION {
			return errs.New(errs.InvalidStructDefinition, c.rng())
		}
		var terr *errs.Error
		tagType, terr = types.FromToken(c.text(), reg, c.rng())
		if terr != nil {
			return terr
		}
		c.next()
	}

	closeIdx, err := closingBrace(c)
	if err != nil {
		return err
	}
	c.next()

	variants := orderedmap.New[string, int64]()
	var next int64
	for c.pos < closeIdx {
		if c.tok() != token.IDENTIFIER {
			return errs.New(errs.InvalidStructDefinition, c.rng())
		}
		variantName := c.text()
		c.next()
		value := next
		if c.tok() == token.ASSIGN {
			c.next()
			if c.tok() != token.UNPARSED_LITERAL {
				return errs.New(errs.InvalidStructDefinition, c.rng())
			}
			value = parseIntLiteral(c.text())
			c.next()
		}
		variants.Set(variantName, value)
		next = value + 1
		if c.tok() == token.COMMA {
			c.next()
		}
	}
	c.pos = closeIdx + 1

	return reg.Register(name, types.NewEnum(name, tagType, variants), start)
}

func parseIntLiteral(text string) int64 {
	neg := false
	if len(text) > 0 && text[0] == '-' {
		neg = true
		text = text[1:]
	}
	var v int64
	for _, r := range text {
		if r < '0' || r > '9' {
			break
		}
		v = v*10 + int64(r-'0')
	}
	if neg {
		v = -v
	}
	return v
}

// collectHints consumes a run of `@hint` markers preceding a function
// definition.
func collectHints(c *cursor) ([]ast.Hint, *errs.Error) {
	var hints []ast.Hint
	for c.tok() == token.AT {
		c.next()
		if c.tok() != token.IDENTIFIER {
			return nil, errs.New(errs.InvalidCompilerHint, c.rng())
		}
		name := c.text()
		c.next()
		switch name {
		case "cold":
			hints = append(hints, ast.Hint{Kind: ast.HintCold})
		case "nofree":
			hints = append(hints, ast.Hint{Kind: ast.HintNoFree})
		case "inline":
			hints = append(hints, ast.Hint{Kind: ast.HintInline})
		case "nounwind":
			hints = append(hints, ast.Hint{Kind: ast.HintNoUnwind})
		case "feature":
			if err := c.expect(token.LPAREN, errs.InvalidCompilerHint); err != nil {
				return nil, err
			}
			if c.tok() != token.STRING_LITERAL {
				return nil, errs.New(errs.InvalidCompilerHint, c.rng())
			}
			feature := c.text()
			c.next()
			if err := c.expect(token.RPAREN, errs.InvalidCompilerHint); err != nil {
				return nil, err
			}
			hints = append(hints, ast.Hint{Kind: ast.HintFeature, Feature: feature})
		default:
			return nil, errs.New(errs.InvalidCompilerHint, c.rng())
		}
	}
	return hints, nil
}

func visibilityFromTok(tok token.Token) (ast.Visibility, bool) {
	switch tok {
	case token.PRIV:
		return ast.Private, true
	case token.PUB:
		return ast.Public, true
	case token.PUBLIB:
		return ast.PublicLibrary, true
	default:
		return 0, false
	}
}

// collectFunction parses `HINTS? VIS function NAME(params): ret { body }`
// and records it in out.Functions (with its raw body token span) and, if
// the visibility is public-library, in out.LibraryPublic.
func collectFunction(c *cursor, modulePath ast.ModulePath, out *Output) *errs.Error {
	hints, err := collectHints(c)
	if err != nil {
		return err
	}
	vis, ok := visibilityFromTok(c.tok())
	if !ok {
		return errs.New(errs.FunctionRequiresExplicitVisibility, c.rng())
	}
	c.next()
	if err := c.expect(token.FUNCTION, errs.InvalidFunctionDefinition); err != nil {
		return err
	}

	sig, err := parseSignatureHead(c, out.CustomTypes, modulePath, vis, hints, nil)
	if err != nil {
		return err
	}

	closeIdx, err := closingBrace(c)
	if err != nil {
		return err
	}
	bodyStart := c.pos + 1
	body := c.insts[bodyStart:closeIdx]
	c.pos = closeIdx + 1

	def := &ast.UnparsedFunctionDefinition{
		Signature:  sig,
		BodyTokens: lexer.Tokens(body),
		BodyText:   textOf(body),
		BodyRanges: lexer.Ranges(body),
	}
	out.Functions = append(out.Functions, def)
	if vis == ast.PublicLibrary {
		out.LibraryPublic.Set(sig.Name, sig)
	}
	return nil
}

func textOf(insts []lexer.Instance) []string {
	out := make([]string, len(insts))
	for i, inst := range insts {
		out[i] = inst.Text
	}
	return out
}

// parseSignatureHead parses `NAME ( params ) : return-type` and stops right
// before the terminator ('{' or ';'); implicitParam, when
// non-nil, is prepended to the parameter map (used by `extend` methods'
// implicit `this`).
func parseSignatureHead(c *cursor, reg *types.Registry, modulePath ast.ModulePath, vis ast.Visibility, hints []ast.Hint, implicitParam *orderedmap.Pair[string, *types.Type]) (*ast.Signature, *errs.Error) {
	if c.tok() != token.IDENTIFIER {
		return nil, errs.New(errs.InvalidFunctionDefinition, c.rng())
	}
	name := c.text()
	c.next()

	closeIdx, err := closingParen(c)
	if err != nil {
		return nil, err
	}
	c.next() // '('

	params := orderedmap.New[string, *types.Type]()
	if implicitParam != nil {
		params.Set(implicitParam.Key, implicitParam.Value)
	}
	ellipsisPresent := false
	for c.pos < closeIdx {
		if c.tok() == token.ELLIPSIS {
			c.next()
			if c.pos != closeIdx {
				return nil, errs.New(errs.InvalidEllipsisLocation, c.rng())
			}
			ellipsisPresent = true
			break
		}
		if c.tok() != token.IDENTIFIER {
			return nil, errs.New(errs.InvalidFunctionDefinition, c.rng())
		}
		paramName := c.text()
		c.next()
		if err := c.expect(token.COLON, errs.InvalidFunctionDefinition); err != nil {
			return nil, err
		}
		if c.tok() != token.TYPE_DEFINITION && c.tok() != token.IDENTIFIER {
			return nil, errs.New(errs.InvalidFunctionDefinition, c.rng())
		}
		paramType, terr := types.FromToken(c.text(), reg, c.rng())
		if terr != nil {
			return nil, terr
		}
		c.next()
		params.Set(paramName, paramType)
		if c.tok() == token.COMMA {
			c.next()
		}
	}
	c.pos = closeIdx + 1 // consume ')'

	if err := c.expect(token.COLON, errs.InvalidFunctionDefinition); err != nil {
		return nil, err
	}
	if c.tok() != token.TYPE_DEFINITION && c.tok() != token.IDENTIFIER {
		return nil, errs.New(errs.InvalidFunctionDefinition, c.rng())
	}
	retType, terr := types.FromToken(c.text(), reg, c.rng())
	if terr != nil {
		return nil, terr
	}
	c.next()

	return &ast.Signature{
		Name:            name,
		Parameters:      params,
		ReturnType:      retType,
		ModulePath:      modulePath,
		Visibility:      vis,
		Hints:           hints,
		EllipsisPresent: ellipsisPresent,
	}, nil
}

// collectImport handles both foreign (`import NAME(...): T;`) and source
// (`import mod :: name;`) imports.
func collectImport(c *cursor, modulePath ast.ModulePath, out *Output) *errs.Error {
	start := c.rng()
	c.next() // import
	if c.tok() != token.IDENTIFIER {
		return errs.New(errs.InvalidModulePathDefinition, c.rng())
	}

	if c.peekTok(1) == token.LPAREN {
		// foreign import
		sig, err := parseSignatureHead(c, out.CustomTypes, modulePath, ast.Public, nil, nil)
		if err != nil {
			return err
		}
		sig.Foreign = true
		if err := c.expect(token.SEMI, errs.InvalidFunctionDefinition); err != nil {
			return err
		}
		out.ExternalImports = append(out.ExternalImports, sig)
		return nil
	}

	// source import: mod :: name ( :: name )* ;
	var path ast.ModulePath
	for {
		if c.tok() != token.IDENTIFIER {
			return errs.New(errs.InvalidModulePathDefinition, c.rng())
		}
		path = append(path, c.text())
		c.next()
		if c.tok() != token.COLONCOLON {
			break
		}
		c.next()
	}
	if err := c.expect(token.SEMI, errs.InvalidModulePathDefinition); err != nil {
		return err
	}
	out.SourceImports = append(out.SourceImports, SourceImport{Path: path, Range: start})
	return nil
}

// collectExtend parses `extend StructName { method functions }`, each
// method's implicit first parameter bound to `this: StructName`.
func collectExtend(c *cursor, modulePath ast.ModulePath, out *Output) *errs.Error {
	c.next() // extend
	if c.tok() != token.IDENTIFIER {
		return errs.New(errs.InvalidStructExtensionPlacement, c.rng())
	}
	structName := c.text()
	c.next()

	structType, ok := out.CustomTypes.Lookup(structName)
	if !ok {
		return errs.NewNamed(errs.InvalidStructName, c.rng(), structName)
	}

	closeIdx, err := closingBrace(c)
	if err != nil {
		return err
	}
	c.next()

	this := orderedmap.Pair[string, *types.Type]{Key: "this", Value: structType}
	for c.pos < closeIdx {
		switch c.tok() {
		case token.DOC_COMMENT, token.SEMI:
			c.next()
			continue
		}
		hints, herr := collectHints(c)
		if herr != nil {
			return herr
		}
		vis, ok := visibilityFromTok(c.tok())
		if !ok {
			return errs.New(errs.FunctionRequiresExplicitVisibility, c.rng())
		}
		c.next()
		if err := c.expect(token.FUNCTION, errs.InvalidFunctionDefinition); err != nil {
			return err
		}
		sig, err := parseSignatureHead(c, out.CustomTypes, modulePath, vis, hints, &this)
		if err != nil {
			return err
		}
		sig.Name = structName + "." + sig.Name

		bodyCloseIdx, err := closingBrace(c)
		if err != nil {
			return err
		}
		bodyStart := c.pos + 1
		body := c.insts[bodyStart:bodyCloseIdx]
		c.pos = bodyCloseIdx + 1

		out.Functions = append(out.Functions, &ast.UnparsedFunctionDefinition{
			Signature:  sig,
			BodyTokens: lexer.Tokens(body),
			BodyText:   textOf(body),
			BodyRanges: lexer.Ranges(body),
		})
		if vis == ast.PublicLibrary {
			out.LibraryPublic.Set(sig.Name, sig)
		}
	}
	c.pos = closeIdx + 1
	return nil
}
