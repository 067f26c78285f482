package errs

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/foglang/fogc/lang/token"
)

func TestErrorRendersRange(t *testing.T) {
	rng := token.Range{Start: token.Position{Line: 3, Col: 5}, End: token.Position{Line: 3, Col: 9}}
	err := New(VariableNotFound, rng)
	require.Contains(t, err.Error(), "3:5")
}

func TestErrorNoRange(t *testing.T) {
	err := New(NoMain, token.Range{})
	require.NotContains(t, err.Error(), ":")
}

func TestNewNamed(t *testing.T) {
	err := NewNamed(StructFieldNotFound, token.Range{}, "z")
	require.Contains(t, err.Error(), `"z"`)
}

func TestNewTypeError(t *testing.T) {
	err := NewTypeError(token.Range{}, "i32", "bool")
	require.Contains(t, err.Error(), "i32")
	require.Contains(t, err.Error(), "bool")
}

func TestNewTypeCastError(t *testing.T) {
	err := NewTypeCastError(token.Range{}, "Cstr", "i32")
	require.Contains(t, err.Error(), "Cstr")
	require.Contains(t, err.Error(), "i32")
}

func TestKindStringCovered(t *testing.T) {
	for k := LeftOpenBraces; k <= InvalidMain; k++ {
		require.NotEqual(t, "unknown error", k.String(), "kind %d missing message", k)
	}
}
