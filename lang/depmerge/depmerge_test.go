package depmerge

import (
	"testing"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"github.com/stretchr/testify/require"

	"github.com/foglang/fogc/lang/ast"
	"github.com/foglang/fogc/lang/errs"
	"github.com/foglang/fogc/lang/signature"
	"github.com/foglang/fogc/lang/token"
	"github.com/foglang/fogc/lang/types"
)

func rng() token.Range {
	return token.Range{Start: token.Position{Line: 1, Col: 1}, End: token.Position{Line: 1, Col: 2}}
}

func sig(name string, modulePath ast.ModulePath, vis ast.Visibility) *ast.Signature {
	return &ast.Signature{Name: name, ModulePath: modulePath, Visibility: vis, Parameters: orderedmap.New[string, *types.Type]()}
}

func TestMergeIntraProjectImport(t *testing.T) {
	local := orderedmap.New[string, *ast.Signature]()
	helper := sig("helper", ast.ModulePath{"app", "util"}, ast.Private)
	local.Set(ast.ModulePath{"app", "util", "helper"}.String(), helper)

	imports := []signature.SourceImport{{Path: ast.ModulePath{"util", "helper"}, Range: rng()}}
	out, err := Merge(imports, ast.ModulePath{"app"}, local, nil)
	require.Nil(t, err)
	got, ok := out.Get("helper")
	require.True(t, ok)
	require.Same(t, helper, got)
}

func TestMergeMissingImportFails(t *testing.T) {
	local := orderedmap.New[string, *ast.Signature]()
	imports := []signature.SourceImport{{Path: ast.ModulePath{"util", "helper"}, Range: rng()}}
	_, err := Merge(imports, ast.ModulePath{"app"}, local, nil)
	require.NotNil(t, err)
	require.Equal(t, errs.FunctionDependencyNotFound, err.Kind)
}

func TestMergeLibraryImportRequiresPublicLibraryVisibility(t *testing.T) {
	local := orderedmap.New[string, *ast.Signature]()
	libTbl := orderedmap.New[string, *ast.Signature]()
	libTbl.Set(ast.ModulePath{"helper"}.String(), sig("helper", nil, ast.Public))
	libs := Libraries{"mathlib": libTbl}

	imports := []signature.SourceImport{{Path: ast.ModulePath{"mathlib", "helper"}, Range: rng()}}
	_, err := Merge(imports, ast.ModulePath{"app"}, local, libs)
	require.NotNil(t, err)
	require.Equal(t, errs.FunctionDependencyNotFound, err.Kind)
}

func TestMergeLibraryImportSucceeds(t *testing.T) {
	local := orderedmap.New[string, *ast.Signature]()
	libTbl := orderedmap.New[string, *ast.Signature]()
	want := sig("helper", nil, ast.PublicLibrary)
	libTbl.Set(ast.ModulePath{"helper"}.String(), want)
	libs := Libraries{"mathlib": libTbl}

	imports := []signature.SourceImport{{Path: ast.ModulePath{"mathlib", "helper"}, Range: rng()}}
	out, err := Merge(imports, ast.ModulePath{"app"}, local, libs)
	require.Nil(t, err)
	got, ok := out.Get("helper")
	require.True(t, ok)
	require.Same(t, want, got)
}

func TestMergeAmbiguousImportFails(t *testing.T) {
	local := orderedmap.New[string, *ast.Signature]()
	local.Set(ast.ModulePath{"app", "util", "helper"}.String(), sig("helper", ast.ModulePath{"app", "util"}, ast.Private))

	libTbl := orderedmap.New[string, *ast.Signature]()
	libTbl.Set(ast.ModulePath{"helper"}.String(), sig("helper", nil, ast.PublicLibrary))
	libs := Libraries{"util": libTbl}

	imports := []signature.SourceImport{{Path: ast.ModulePath{"util", "helper"}, Range: rng()}}
	_, err := Merge(imports, ast.ModulePath{"app"}, local, libs)
	require.NotNil(t, err)
	require.Equal(t, errs.DuplicateSignatureImports, err.Kind)
}

func TestBuildLocalIndex(t *testing.T) {
	funcs := []*ast.UnparsedFunctionDefinition{
		{Signature: sig("helper", ast.ModulePath{"app"}, ast.Private)},
	}
	idx := BuildLocalIndex(funcs)
	_, ok := idx.Get(ast.ModulePath{"app", "helper"}.String())
	require.True(t, ok)
}
