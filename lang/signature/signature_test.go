package signature

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foglang/fogc/lang/ast"
	"github.com/foglang/fogc/lang/errs"
	"github.com/foglang/fogc/lang/lexer"
)

func mustLex(t *testing.T, src string) []lexer.Instance {
	t.Helper()
	insts, err := lexer.Lex([]byte(src))
	require.Nil(t, err)
	return insts
}

func TestCollectMinimalEntryPoint(t *testing.T) {
	insts := mustLex(t, "pub function main(): int { return 0; }")
	out, err := Collect(insts, nil)
	require.Nil(t, err)
	require.Len(t, out.Functions, 1)
	sig := out.Functions[0].Signature
	require.Equal(t, "main", sig.Name)
	require.Equal(t, 0, sig.Parameters.Len())
	require.Equal(t, ast.Public, sig.Visibility)
}

func TestCollectStructDefinition(t *testing.T) {
	insts := mustLex(t, "struct P { x: int, y: int, } pub function main(): int { return 0; }")
	out, err := Collect(insts, nil)
	require.Nil(t, err)
	typ, ok := out.CustomTypes.Lookup("P")
	require.True(t, ok)
	require.Equal(t, 2, typ.Fields.Len())
}

func TestCollectDuplicateStructFails(t *testing.T) {
	insts := mustLex(t, "struct P { x: int, } struct P { y: int, }")
	_, err := Collect(insts, nil)
	require.NotNil(t, err)
	require.Equal(t, errs.InvalidStructDefinition, err.Kind)
}

func TestCollectFunctionRequiresVisibility(t *testing.T) {
	insts := mustLex(t, "function main(): int { return 0; }")
	_, err := Collect(insts, nil)
	require.NotNil(t, err)
	require.Equal(t, errs.FunctionRequiresExplicitVisibility, err.Kind)
}

func TestCollectForeignVariadicImport(t *testing.T) {
	insts := mustLex(t, `import printf(fmt: string, ...): int;`)
	out, err := Collect(insts, nil)
	require.Nil(t, err)
	require.Len(t, out.ExternalImports, 1)
	require.True(t, out.ExternalImports[0].EllipsisPresent)
	require.True(t, out.ExternalImports[0].Foreign)
}

func TestCollectEllipsisNonTerminalFails(t *testing.T) {
	insts := mustLex(t, `import printf(..., fmt: string): int;`)
	_, err := Collect(insts, nil)
	require.NotNil(t, err)
	require.Equal(t, errs.InvalidEllipsisLocation, err.Kind)
}

func TestCollectSourceImport(t *testing.T) {
	insts := mustLex(t, "import mod::name;")
	out, err := Collect(insts, nil)
	require.Nil(t, err)
	require.Len(t, out.SourceImports, 1)
	require.Equal(t, ast.ModulePath{"mod", "name"}, out.SourceImports[0].Path)
}

func TestCollectFeatureHint(t *testing.T) {
	insts := mustLex(t, `@feature("slow") pub function helper(): int { return 0; }`)
	out, err := Collect(insts, nil)
	require.Nil(t, err)
	feature, ok := out.Functions[0].Signature.HasFeatureGate()
	require.True(t, ok)
	require.Equal(t, "slow", feature)
}

func TestCollectExtendBlock(t *testing.T) {
	insts := mustLex(t, `struct P { x: int, } extend P { pub function get_x(): int { return this.x; } }`)
	out, err := Collect(insts, nil)
	require.Nil(t, err)
	require.Len(t, out.Functions, 1)
	require.Equal(t, "P.get_x", out.Functions[0].Signature.Name)
	_, ok := out.Functions[0].Signature.Parameters.Get("this")
	require.True(t, ok)
}

func TestCollectExtendOutsideTopLevelNotPossible(t *testing.T) {
	// extend is only recognised at the top level by construction: the
	// collector never descends into a function body, so a stray `extend`
	// keyword inside one is simply part of the unparsed body handed to the
	// body parser, which rejects it with InvalidStructExtensionPlacement.
	insts := mustLex(t, `pub function main(): int { extend } `)
	out, err := Collect(insts, nil)
	require.Nil(t, err)
	require.Len(t, out.Functions, 1)
}

func TestCollectLibraryPublicTable(t *testing.T) {
	insts := mustLex(t, `publib function helper(): int { return 0; }`)
	out, err := Collect(insts, nil)
	require.Nil(t, err)
	_, ok := out.LibraryPublic.Get("helper")
	require.True(t, ok)
}

func TestCollectUnclosedBraceFails(t *testing.T) {
	insts := mustLex(t, `pub function main(): int { return 0;`)
	_, err := Collect(insts, nil)
	require.NotNil(t, err)
	require.Equal(t, errs.LeftOpenBraces, err.Kind)
}
