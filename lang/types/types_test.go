package types

import (
	"testing"

	orderedmap "github.com/wk8/go-ordered-map/v2"
	"github.com/stretchr/testify/require"

	"github.com/foglang/fogc/lang/errs"
	"github.com/foglang/fogc/lang/token"
)

func fieldMap(pairs ...any) FieldMap {
	m := orderedmap.New[string, *Type]()
	for i := 0; i < len(pairs); i += 2 {
		m.Set(pairs[i].(string), pairs[i+1].(*Type))
	}
	return m
}

func TestEqualPrimitives(t *testing.T) {
	require.True(t, Equal(TypeI32, TypeI32))
	require.False(t, Equal(TypeI32, TypeI64))
}

func TestEqualStructNominal(t *testing.T) {
	p1 := NewStruct("P", fieldMap("x", TypeI32, "y", TypeI32))
	p2 := NewStruct("P", fieldMap("x", TypeI32, "y", TypeI32))
	q := NewStruct("Q", fieldMap("x", TypeI32, "y", TypeI32))
	require.True(t, Equal(p1, p2))
	require.False(t, Equal(p1, q))
}

func TestEqualStructFieldOrderMatters(t *testing.T) {
	p1 := NewStruct("P", fieldMap("x", TypeI32, "y", TypeI32))
	p2 := NewStruct("P", fieldMap("y", TypeI32, "x", TypeI32))
	require.False(t, Equal(p1, p2))
}

func TestEqualArray(t *testing.T) {
	require.True(t, Equal(NewArray(TypeI32, 3), NewArray(TypeI32, 3)))
	require.False(t, Equal(NewArray(TypeI32, 3), NewArray(TypeI32, 4)))
	require.False(t, Equal(NewArray(TypeI32, 3), NewArray(TypeI64, 3)))
}

func TestIsIndexable(t *testing.T) {
	require.True(t, IsIndexable(NewArray(TypeI32, 3)))
	require.False(t, IsIndexable(TypeI32))
}

func TestCoercibleIdentityOnly(t *testing.T) {
	require.True(t, Coercible(TypeI32, TypeI32))
	require.False(t, Coercible(TypeI32, TypeI64))
	require.False(t, Coercible(TypeI32, TypeF32))
}

func TestSizeOfPrimitives(t *testing.T) {
	require.Equal(t, 1, SizeOf(TypeU8))
	require.Equal(t, 2, SizeOf(TypeI16))
	require.Equal(t, 4, SizeOf(TypeI32))
	require.Equal(t, 8, SizeOf(TypeI64))
	require.Equal(t, 8, SizeOf(TypeCstr))
	require.Equal(t, 0, SizeOf(TypeVoid))
}

func TestSizeOfStructRespectsFieldOrder(t *testing.T) {
	p := NewStruct("P", fieldMap("x", TypeI32, "y", TypeI64))
	require.Equal(t, 12, SizeOf(p))
}

func TestSizeOfArray(t *testing.T) {
	require.Equal(t, 12, SizeOf(NewArray(TypeI32, 3)))
}

func TestAlignOfArrayIsElementAlignment(t *testing.T) {
	require.Equal(t, AlignOf(TypeI64), AlignOf(NewArray(TypeI64, 5)))
}

func TestRegistryDuplicateFails(t *testing.T) {
	reg := NewRegistry()
	p := NewStruct("P", fieldMap("x", TypeI32))
	require.Nil(t, reg.Register("P", p, token.Range{}))
	err := reg.Register("P", p, token.Range{})
	require.NotNil(t, err)
	require.Equal(t, errs.InvalidStructDefinition, err.Kind)
}

func TestFromTokenPrimitive(t *testing.T) {
	reg := NewRegistry()
	typ, err := FromToken("int", reg, token.Range{})
	require.Nil(t, err)
	require.Equal(t, I32, typ.Kind)
}

func TestFromTokenCustom(t *testing.T) {
	reg := NewRegistry()
	p := NewStruct("P", fieldMap("x", TypeI32))
	require.Nil(t, reg.Register("P", p, token.Range{}))
	typ, err := FromToken("P", reg, token.Range{})
	require.Nil(t, err)
	require.Same(t, p, typ)
}

func TestFromTokenUnknown(t *testing.T) {
	reg := NewRegistry()
	_, err := FromToken("Bogus", reg, token.Range{})
	require.NotNil(t, err)
	require.Equal(t, errs.InvalidType, err.Kind)
}
