package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foglang/fogc/lang/errs"
	"github.com/foglang/fogc/lang/token"
)

func lexOK(t *testing.T, src string) []Instance {
	t.Helper()
	insts, err := Lex([]byte(src))
	require.Nil(t, err)
	return insts
}

func toks(insts []Instance) []token.Token { return Tokens(insts) }

func TestLexMinimalEntryPoint(t *testing.T) {
	insts := lexOK(t, "pub function main(): int { return 0; }")
	require.Equal(t, []token.Token{
		token.PUB, token.FUNCTION, token.IDENTIFIER, token.LPAREN, token.RPAREN,
		token.COLON, token.TYPE_DEFINITION, token.LBRACE,
		token.RETURN, token.UNPARSED_LITERAL, token.SEMI,
		token.RBRACE, token.EOF,
	}, toks(insts))
}

func TestLexStringEscapes(t *testing.T) {
	insts := lexOK(t, `"a\nb\t\"c\""`)
	require.Equal(t, token.STRING_LITERAL, insts[0].Tok)
	require.Equal(t, "a\nb\t\"c\"", insts[0].Text)
}

func TestLexUnterminatedString(t *testing.T) {
	_, err := Lex([]byte(`"abc`))
	require.NotNil(t, err)
	require.Equal(t, errs.OpenQuotes, err.Kind)
}

func TestLexDocComment(t *testing.T) {
	insts := lexOK(t, "# hello world\nx")
	require.Equal(t, token.DOC_COMMENT, insts[0].Tok)
	require.Equal(t, " hello world", insts[0].Text)
}

func TestLexMinusAfterValueIsSubtraction(t *testing.T) {
	insts := lexOK(t, "a - 1")
	require.Equal(t, []token.Token{token.IDENTIFIER, token.MINUS, token.UNPARSED_LITERAL, token.EOF}, toks(insts))
}

func TestLexLeadingMinusIsNegativeLiteral(t *testing.T) {
	insts := lexOK(t, "x = -1;")
	require.Equal(t, []token.Token{token.IDENTIFIER, token.ASSIGN, token.UNPARSED_LITERAL, token.SEMI, token.EOF}, toks(insts))
	require.Equal(t, "-1", insts[2].Text)
}

func TestLexMinusAfterCloseParenIsSubtraction(t *testing.T) {
	insts := lexOK(t, "f() - 1")
	require.Equal(t, token.MINUS, insts[3].Tok)
}

func TestLexCompoundAssignments(t *testing.T) {
	insts := lexOK(t, "=+ =- =* =/ %=")
	require.Equal(t, []token.Token{
		token.PLUS_EQ, token.MINUS_EQ, token.STAR_EQ, token.SLASH_EQ, token.MOD_EQ, token.EOF,
	}, toks(insts))
}

func TestLexMultiCharOperators(t *testing.T) {
	insts := lexOK(t, "== >= <= != && || << >> ::")
	require.Equal(t, []token.Token{
		token.EQL, token.GE, token.LE, token.NEQ, token.AND_AND, token.OR_OR,
		token.SHL, token.SHR, token.COLONCOLON, token.EOF,
	}, toks(insts))
}

func TestLexEllipsis(t *testing.T) {
	insts := lexOK(t, "(...)")
	require.Equal(t, []token.Token{token.LPAREN, token.ELLIPSIS, token.RPAREN, token.EOF}, toks(insts))
}

func TestLexFloatLiteral(t *testing.T) {
	insts := lexOK(t, "1.5e-3")
	require.Equal(t, token.UNPARSED_LITERAL, insts[0].Tok)
	require.Equal(t, "1.5e-3", insts[0].Text)
}

func TestLexBoolLiterals(t *testing.T) {
	insts := lexOK(t, "true false")
	require.Equal(t, []token.Token{token.BOOL_LITERAL, token.BOOL_LITERAL, token.EOF}, toks(insts))
}

func TestLexNumberTooLarge(t *testing.T) {
	_, err := Lex([]byte("99999999999999999999999999999"))
	require.NotNil(t, err)
	require.Equal(t, errs.NumberTooLarge, err.Kind)
}

func TestLexRangesCoverSubstring(t *testing.T) {
	src := "pub function main"
	insts := lexOK(t, src)
	for _, inst := range insts {
		if inst.Tok == token.EOF {
			continue
		}
		col := inst.Range.Start.Col
		require.Equal(t, inst.Text, src[col-1:col-1+len(inst.Text)], "range start locates the token text")
	}
	require.Equal(t, 1, insts[0].Range.Start.Col)
	require.Equal(t, 5, insts[1].Range.Start.Col)
}

func TestTokensAndRangesParallel(t *testing.T) {
	insts := lexOK(t, "x = 1;")
	require.Equal(t, len(insts), len(Tokens(insts)))
	require.Equal(t, len(insts), len(Ranges(insts)))
}
