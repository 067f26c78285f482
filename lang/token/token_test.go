package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestTokenGoString(t *testing.T) {
	require.Equal(t, "'('", LPAREN.GoString())
	require.Equal(t, "identifier", IDENTIFIER.GoString())
}

func TestLookupKeywords(t *testing.T) {
	cases := map[string]Token{
		"priv":     PRIV,
		"pub":      PUB,
		"publib":   PUBLIB,
		"function": FUNCTION,
		"struct":   STRUCT,
		"enum":     ENUM,
		"extend":   EXTEND,
		"impls":    IMPLS,
		"trait":    TRAIT,
		"this":     THIS,
		"const":    CONST,
		"import":   IMPORT,
		"export":   EXPORT,
		"ref":      REF,
		"deref":    DEREF,
		"as":       AS,
		"if":       IF,
		"else":     ELSE,
		"loop":     LOOP,
		"while":    WHILE,
		"for":      FOR,
		"break":    BREAK,
		"continue": CONTINUE,
		"return":   RETURN,
	}
	for name, want := range cases {
		require.Equal(t, want, Lookup(name), "Lookup(%q)", name)
	}
}

func TestLookupTypeKeywords(t *testing.T) {
	for _, name := range []string{"int", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f16", "f32", "f64", "float", "bool", "string", "void"} {
		require.Equal(t, TYPE_DEFINITION, Lookup(name), "Lookup(%q)", name)
	}
}

func TestLookupIdentifier(t *testing.T) {
	require.Equal(t, IDENTIFIER, Lookup("my_variable"))
	require.Equal(t, IDENTIFIER, Lookup("P"))
}
