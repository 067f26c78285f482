// Package parser implements the body parser (spec's "Expression/Statement
// Parser", the second pass): it consumes the unparsed token body the
// signature collector recorded for each function and produces a typed
// parsed-node tree, resolving scopes, literal types, and call arguments
// against the combined scope (parameters, imports, custom types).
package parser

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/foglang/fogc/lang/ast"
	"github.com/foglang/fogc/lang/errs"
	"github.com/foglang/fogc/lang/lexer"
	"github.com/foglang/fogc/lang/token"
	"github.com/foglang/fogc/lang/types"
)

// Imports is the combined name -> signature table consulted for bare
// function calls: the project's own functions plus whatever the dependency
// merger resolved for this file's import directives.
type Imports = *orderedmap.OrderedMap[string, *ast.Signature]

// Parser parses every function body of a compilation unit. A single
// Parser instance owns the monotonic unique-id counter shared by every
// NewVariable and call-argument across the whole unit (spec.md §5: "A
// unique-id counter is the single mutable scalar; it is confined to the
// parser instance").
type Parser struct {
	reg     *types.Registry
	imports Imports
	nextID  int64
}

func New(reg *types.Registry, imports Imports) *Parser {
	return &Parser{reg: reg, imports: imports}
}

// ParseFunction parses one function's body against its own parameter
// scope. Foreign imports have no body and are never passed here.
func (p *Parser) ParseFunction(def *ast.UnparsedFunctionDefinition) ([]*ast.Instance, *errs.Error) {
	body := zip(def)
	fp := &funcParser{
		p:      p,
		insts:  body,
		scopes: []scope{newScope(def.Signature.Parameters)},
		retTy:  def.Signature.ReturnType,
	}
	return fp.parseBlock(len(body))
}

func zip(def *ast.UnparsedFunctionDefinition) []lexer.Instance {
	out := make([]lexer.Instance, len(def.BodyTokens))
	for i := range def.BodyTokens {
		out[i] = lexer.Instance{Tok: def.BodyTokens[i], Text: def.BodyText[i], Range: def.BodyRanges[i]}
	}
	return out
}

func (p *Parser) newID() int64 {
	p.nextID++
	return p.nextID
}

// scope is an ordered name -> type map; a function's parameter scope is the
// root, and each nested block pushes a child that is popped on exit.
type scope = *orderedmap.OrderedMap[string, *types.Type]

func newScope(seed scope) scope {
	s := orderedmap.New[string, *types.Type]()
	if seed != nil {
		for p := seed.Oldest(); p != nil; p = p.Next() {
			s.Set(p.Key, p.Value)
		}
	}
	return s
}

// funcParser holds the mutable state for parsing a single function body: a
// cursor over its tokens, the active scope stack, the return type it must
// check `return` statements against, and the current loop nesting depth.
type funcParser struct {
	p         *Parser
	insts     []lexer.Instance
	pos       int
	scopes    []scope
	retTy     *types.Type
	loopDepth int
}

func (fp *funcParser) tok() token.Token {
	if fp.pos >= len(fp.insts) {
		return token.EOF
	}
	return fp.insts[fp.pos].Tok
}

func (fp *funcParser) text() string {
	if fp.pos >= len(fp.insts) {
		return ""
	}
	return fp.insts[fp.pos].Text
}

func (fp *funcParser) rng() token.Range {
	if fp.pos >= len(fp.insts) {
		if len(fp.insts) == 0 {
			return token.Range{}
		}
		return fp.insts[len(fp.insts)-1].Range
	}
	return fp.insts[fp.pos].Range
}

func (fp *funcParser) peekTok(ahead int) token.Token {
	i := fp.pos + ahead
	if i >= len(fp.insts) {
		return token.EOF
	}
	return fp.insts[i].Tok
}

func (fp *funcParser) next() { fp.pos++ }

func (fp *funcParser) expect(tok token.Token, kind errs.Kind) *errs.Error {
	if fp.tok() != tok {
		return errs.New(kind, fp.rng())
	}
	fp.next()
	return nil
}

func (fp *funcParser) pushScope() { fp.scopes = append(fp.scopes, orderedmap.New[string, *types.Type]()) }

func (fp *funcParser) popScope() { fp.scopes = fp.scopes[:len(fp.scopes)-1] }

// lookup searches the scope stack innermost-first.
func (fp *funcParser) lookup(name string) (*types.Type, bool) {
	for i := len(fp.scopes) - 1; i >= 0; i-- {
		if t, ok := fp.scopes[i].Get(name); ok {
			return t, true
		}
	}
	return nil, false
}

// declare adds name to the innermost scope. Redeclaring with a different
// type in the same scope is an error; same-type shadowing is allowed.
func (fp *funcParser) declare(name string, t *types.Type, rng token.Range) *errs.Error {
	innermost := fp.scopes[len(fp.scopes)-1]
	if existing, ok := innermost.Get(name); ok && !types.Equal(existing, t) {
		return errs.New(errs.VariableTypeMismatch, rng)
	}
	innermost.Set(name, t)
	return nil
}

func closingDelim(fp *funcParser, open, close token.Token, failKind errs.Kind) (int, *errs.Error) {
	if fp.tok() != open {
		return 0, errs.New(failKind, fp.rng())
	}
	depth := 0
	for i := fp.pos; i < len(fp.insts); i++ {
		switch fp.insts[i].Tok {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return i, nil
			}
		}
	}
	return 0, errs.New(failKind, fp.rng())
}
