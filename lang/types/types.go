// Package types implements the closed static type universe: primitive
// types, composite types (struct, enum, array, pointer), the size/alignment
// rules that walk them, structural vs. nominal equality, and the
// custom-type registry populated by the signature collector.
package types

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/foglang/fogc/lang/errs"
	"github.com/foglang/fogc/lang/token"
)

// Kind discriminates the type universe's variants.
type Kind int

const (
	Invalid Kind = iota
	I16
	I32
	I64
	U8
	U16
	U32
	U64
	F16
	F32
	F64
	Bool
	Cstr // null-terminated byte string
	Void
	Pointer
	Array
	Struct
	Enum
)

var primitiveNames = map[Kind]string{
	I16: "i16", I32: "i32", I64: "i64",
	U8: "u8", U16: "u16", U32: "u32", U64: "u64",
	F16: "f16", F32: "f32", F64: "f64",
	Bool: "bool", Cstr: "string", Void: "void",
}

// aliasNames maps the surface-syntax spellings that aren't the canonical
// primitive name to the Kind they resolve to (spec.md's `int` and `float`
// keywords are sugar for the default-width signed integer and float).
var aliasNames = map[string]Kind{
	"int":   I32,
	"float": F32,
}

// FieldMap is the ordered field/variant map every struct and enum carries;
// iteration order is observable and part of the contract consumed by the
// lowering collaborator.
type FieldMap = *orderedmap.OrderedMap[string, *Type]

// Type is a single value of the closed type universe. Composite kinds
// populate only the fields relevant to them; Struct and Enum are identified
// nominally by Name, everything else structurally.
type Type struct {
	Kind Kind

	// Pointer, Array
	Elem *Type

	// Array
	Len int

	// Struct
	Name   string
	Fields FieldMap

	// Enum
	Tag      *Type // the underlying integer tag type
	Variants *orderedmap.OrderedMap[string, int64]
}

func Primitive(k Kind) *Type { return &Type{Kind: k} }

var (
	TypeI16  = Primitive(I16)
	TypeI32  = Primitive(I32)
	TypeI64  = Primitive(I64)
	TypeU8   = Primitive(U8)
	TypeU16  = Primitive(U16)
	TypeU32  = Primitive(U32)
	TypeU64  = Primitive(U64)
	TypeF16  = Primitive(F16)
	TypeF32  = Primitive(F32)
	TypeF64  = Primitive(F64)
	TypeBool = Primitive(Bool)
	TypeCstr = Primitive(Cstr)
	TypeVoid = Primitive(Void)
)

func NewPointer(elem *Type) *Type { return &Type{Kind: Pointer, Elem: elem} }

func NewArray(elem *Type, length int) *Type { return &Type{Kind: Array, Elem: elem, Len: length} }

func NewStruct(name string, fields FieldMap) *Type {
	return &Type{Kind: Struct, Name: name, Fields: fields}
}

func NewEnum(name string, tag *Type, variants *orderedmap.OrderedMap[string, int64]) *Type {
	return &Type{Kind: Enum, Name: name, Tag: tag, Variants: variants}
}

// String renders the type the way it would appear in source.
func (t *Type) String() string {
	if t == nil {
		return "<nil type>"
	}
	switch t.Kind {
	case Pointer:
		return "*" + t.Elem.String()
	case Array:
		return t.Elem.String() + "[]"
	case Struct, Enum:
		return t.Name
	default:
		if name, ok := primitiveNames[t.Kind]; ok {
			return name
		}
		return "<invalid type>"
	}
}

// Equal reports whether a and b denote the same type: structural for
// primitives, pointers and arrays, nominal (name + ordered field map) for
// structs and enums.
func Equal(a, b *Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case Pointer:
		return Equal(a.Elem, b.Elem)
	case Array:
		return a.Len == b.Len && Equal(a.Elem, b.Elem)
	case Struct:
		if a.Name != b.Name || a.Fields.Len() != b.Fields.Len() {
			return false
		}
		for pa, pb := a.Fields.Oldest(), b.Fields.Oldest(); pa != nil; pa, pb = pa.Next(), pb.Next() {
			if pb == nil || pa.Key != pb.Key || !Equal(pa.Value, pb.Value) {
				return false
			}
		}
		return true
	case Enum:
		return a.Name == b.Name
	default:
		return true
	}
}

// IsIndexable reports whether t supports `[index]` access. Only arrays are
// indexable.
func IsIndexable(t *Type) bool { return t != nil && t.Kind == Array }

// Coercible reports whether a value of type from may be used directly where
// to is expected. Only identity coercion is permitted; any numeric
// conversion requires an explicit `as` cast, producing a TypeCast node in
// the parsed tree instead of an implicit promotion.
func Coercible(from, to *Type) bool { return Equal(from, to) }

// SizeOf returns the size in bytes of t, recursively summing composite
// fields in declaration order; arrays multiply the element size by length.
func SizeOf(t *Type) int {
	switch t.Kind {
	case I16, U16, F16:
		return 2
	case I32, U32, F32:
		return 4
	case I64, U64, F64, Pointer, Cstr:
		return 8
	case U8, Bool:
		return 1
	case Void:
		return 0
	case Array:
		return SizeOf(t.Elem) * t.Len
	case Struct:
		var size int
		for p := t.Fields.Oldest(); p != nil; p = p.Next() {
			size += SizeOf(p.Value)
		}
		return size
	case Enum:
		return SizeOf(t.Tag)
	default:
		return 0
	}
}

// AlignOf returns the alignment in bytes of t. A composite's alignment is
// that of its first field (struct) or its element (array); this mirrors
// the ordered recursive walk the core owns, not a target data layout.
func AlignOf(t *Type) int {
	switch t.Kind {
	case Array:
		return AlignOf(t.Elem)
	case Struct:
		if t.Fields.Len() == 0 {
			return 1
		}
		return AlignOf(t.Fields.Oldest().Value)
	case Enum:
		return AlignOf(t.Tag)
	default:
		return SizeOf(t)
	}
}

// Registry is the ordered name -> custom-type map populated by the
// signature collector and frozen before body parsing. Duplicate
// registrations fail with InvalidStructDefinition.
type Registry struct {
	types *orderedmap.OrderedMap[string, *Type]
}

func NewRegistry() *Registry {
	return &Registry{types: orderedmap.New[string, *Type]()}
}

// Register adds a custom type to the registry. It fails if a type with the
// same name is already registered.
func (r *Registry) Register(name string, t *Type, rng token.Range) *errs.Error {
	if _, ok := r.types.Get(name); ok {
		return errs.NewNamed(errs.InvalidStructDefinition, rng, name)
	}
	r.types.Set(name, t)
	return nil
}

// Lookup returns the custom type registered under name, if any.
func (r *Registry) Lookup(name string) (*Type, bool) { return r.types.Get(name) }

// Len reports the number of registered custom types.
func (r *Registry) Len() int { return r.types.Len() }

// Oldest returns the first registration pair for ordered iteration, or nil
// if the registry is empty.
func (r *Registry) Oldest() *orderedmap.Pair[string, *Type] { return r.types.Oldest() }

// FromToken maps a TYPE_DEFINITION token's text to its Type, consulting the
// registry for names that aren't built-in primitives. Fails with
// InvalidType when no match exists.
func FromToken(text string, reg *Registry, rng token.Range) (*Type, *errs.Error) {
	for kind, name := range primitiveNames {
		if name == text {
			return Primitive(kind), nil
		}
	}
	if kind, ok := aliasNames[text]; ok {
		return Primitive(kind), nil
	}
	if t, ok := reg.Lookup(text); ok {
		return t, nil
	}
	return nil, &errs.Error{Kind: errs.InvalidType, Range: rng, Type1: text}
}
