package project

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/foglang/fogc/lang/ast"
	"github.com/foglang/fogc/lang/depmerge"
	"github.com/foglang/fogc/lang/errs"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(&bytes.Buffer{})
	return log
}

func TestCompileMinimalExecutable(t *testing.T) {
	cfg := &Config{Name: "app", IsLibrary: false}
	o := New(cfg, testLogger())
	res, err := o.Compile(ast.ModulePath{"app"}, []byte("pub function main(): int { return 0; }"), nil)
	require.Nil(t, err)
	_, ok := res.FunctionTable.Get("main")
	require.True(t, ok)
}

func TestCompileExecutableMissingMainFails(t *testing.T) {
	cfg := &Config{Name: "app", IsLibrary: false}
	o := New(cfg, testLogger())
	_, err := o.Compile(ast.ModulePath{"app"}, []byte("priv function helper(): int { return 0; }"), nil)
	require.NotNil(t, err)
	require.Equal(t, errs.NoMain, err.Kind)
}

func TestCompileLibraryAllowsMissingMain(t *testing.T) {
	cfg := &Config{Name: "libmath", IsLibrary: true}
	o := New(cfg, testLogger())
	res, err := o.Compile(ast.ModulePath{"libmath"}, []byte("publib function add(a: int, b: int): int { return a + b; }"), nil)
	require.Nil(t, err)
	require.Equal(t, 1, res.FunctionTable.Len())
	_, ok := res.LibraryPublicFunctionTable.Get("add")
	require.True(t, ok)
}

func TestCompileElidesDisabledFeature(t *testing.T) {
	cfg := &Config{Name: "app", IsLibrary: false, Features: []string{"fast"}}
	o := New(cfg, testLogger())
	src := `@feature("slow") pub function helper(): int { return 0; }
pub function main(): int { return 0; }`
	res, err := o.Compile(ast.ModulePath{"app"}, []byte(src), nil)
	require.Nil(t, err)
	_, ok := res.FunctionTable.Get("helper")
	require.False(t, ok)
	_, ok = res.FunctionTable.Get("main")
	require.True(t, ok)
}

func TestCompileKeepsEnabledFeature(t *testing.T) {
	cfg := &Config{Name: "app", IsLibrary: false, Features: []string{"slow"}}
	o := New(cfg, testLogger())
	src := `@feature("slow") pub function helper(): int { return 0; }
pub function main(): int { return 0; }`
	res, err := o.Compile(ast.ModulePath{"app"}, []byte(src), nil)
	require.Nil(t, err)
	_, ok := res.FunctionTable.Get("helper")
	require.True(t, ok)
}

func TestCompileInvalidMainSignatureFails(t *testing.T) {
	cfg := &Config{Name: "app", IsLibrary: false}
	o := New(cfg, testLogger())
	_, err := o.Compile(ast.ModulePath{"app"}, []byte("pub function main(x: int): int { return 0; }"), nil)
	require.NotNil(t, err)
	require.Equal(t, errs.InvalidMain, err.Kind)
}

func TestCompileWithLibraryDependency(t *testing.T) {
	libCfg := &Config{Name: "mathlib", IsLibrary: true}
	libO := New(libCfg, testLogger())
	libRes, err := libO.Compile(ast.ModulePath{"mathlib"}, []byte("publib function add(a: int, b: int): int { return a + b; }"), nil)
	require.Nil(t, err)

	appCfg := &Config{Name: "app", IsLibrary: false}
	appO := New(appCfg, testLogger())
	libs := depmerge.Libraries{"mathlib": libRes.LibraryPublicFunctionTable}
	src := `import mathlib::add;
pub function main(): int { return add(1, 2); }`
	res, err := appO.Compile(ast.ModulePath{"app"}, []byte(src), libs)
	require.Nil(t, err)
	_, ok := res.FunctionTable.Get("main")
	require.True(t, ok)
}
