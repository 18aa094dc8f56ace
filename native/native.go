// Package native models the shape of native Go types as a closed, tagged
// descriptor AST. Agent declarations are built from these descriptors at
// startup; the schema package maps them to wire-level schemas.
//
// The AST is deliberately closed: every consumer matches exhaustively on
// Kind, so an unsupported shape is a compile-visible case instead of a
// runtime default branch.
package native

import "fmt"

// Kind enumerates the supported native type shapes.
type Kind int

const (
	KindBool Kind = iota
	KindS8
	KindS16
	KindS32
	KindS64
	KindU8
	KindU16
	KindU32
	KindU64
	KindF32
	KindF64
	KindChar
	KindString
	KindList
	KindOption
	KindRecord
	KindTuple
	KindEnum
	KindVariant
	KindFlags
	KindResult

	// KindStringLiteral is a single string literal, usable only inside
	// literal tuples and as variant/enum case tags.
	KindStringLiteral

	// KindLiteralTuple is a fixed tuple of string literals. It is the only
	// accepted type parameter of the unstructured marker types.
	KindLiteralTuple

	// KindUnstructuredText and KindUnstructuredBinary are the opaque payload
	// marker types, intercepted by the mapper before generic recursion.
	KindUnstructuredText
	KindUnstructuredBinary

	// KindMultimodal marks a tagged union of otherwise unrelated member
	// shapes, addressed by member type name.
	KindMultimodal

	// KindFuture wraps an eventually-available value. It only appears on
	// method return types and is unwrapped before schema derivation.
	KindFuture
)

var kindNames = map[Kind]string{
	KindBool:               "bool",
	KindS8:                 "int8",
	KindS16:                "int16",
	KindS32:                "int32",
	KindS64:                "int64",
	KindU8:                 "uint8",
	KindU16:                "uint16",
	KindU32:                "uint32",
	KindU64:                "uint64",
	KindF32:                "float32",
	KindF64:                "float64",
	KindChar:               "char",
	KindString:             "string",
	KindList:               "list",
	KindOption:             "option",
	KindRecord:             "record",
	KindTuple:              "tuple",
	KindEnum:               "enum",
	KindVariant:            "variant",
	KindFlags:              "flags",
	KindResult:             "result",
	KindStringLiteral:      "string-literal",
	KindLiteralTuple:       "literal-tuple",
	KindUnstructuredText:   "UnstructuredText",
	KindUnstructuredBinary: "UnstructuredBinary",
	KindMultimodal:         "Multimodal",
	KindFuture:             "future",
}

// Type is one native type descriptor node.
type Type struct {
	Kind Kind

	// Name is the declared type name of records, variants, enums and
	// multimodal members; for string literals it is the literal value.
	Name string

	// Elem is the element of list, option and future nodes, and the type
	// parameter of the unstructured marker types (nil means unrestricted).
	Elem *Type

	// Fields are record fields, in declaration order.
	Fields []Field

	// Items are tuple elements and literal-tuple members, in order.
	Items []*Type

	// Cases are variant and enum cases, in declaration order. A nil case
	// type means the case carries no payload.
	Cases []Case

	// Names are the declared flag names of a flags type.
	Names []string

	// OkType and ErrType are the optional payloads of a result type.
	OkType  *Type
	ErrType *Type

	// Members are the named alternatives of a multimodal type, in order.
	Members []Member
}

// Field is one named record field.
type Field struct {
	Name string
	Type *Type
}

// Case is one tagged case of a variant or enum.
type Case struct {
	Name string
	Type *Type
}

// Member is one named multimodal alternative.
type Member struct {
	Name string
	Type *Type
}

// TypeName returns the name used for this type in error messages: the
// declared name when present, otherwise the kind name.
func (t *Type) TypeName() string {
	if t == nil {
		return "<nil>"
	}
	if t.Name != "" && (t.Kind == KindRecord || t.Kind == KindVariant || t.Kind == KindEnum || t.Kind == KindMultimodal) {
		return t.Name
	}
	return kindNames[t.Kind]
}

func (t *Type) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindList, KindOption, KindFuture:
		return fmt.Sprintf("%s<%s>", kindNames[t.Kind], t.Elem)
	default:
		return t.TypeName()
	}
}

// Bool returns the boolean descriptor.
func Bool() *Type { return &Type{Kind: KindBool} }

// S8 returns the signed 8-bit integer descriptor.
func S8() *Type { return &Type{Kind: KindS8} }

// S16 returns the signed 16-bit integer descriptor.
func S16() *Type { return &Type{Kind: KindS16} }

// S32 returns the signed 32-bit integer descriptor.
func S32() *Type { return &Type{Kind: KindS32} }

// S64 returns the signed 64-bit integer descriptor.
func S64() *Type { return &Type{Kind: KindS64} }

// U8 returns the unsigned 8-bit integer descriptor.
func U8() *Type { return &Type{Kind: KindU8} }

// U16 returns the unsigned 16-bit integer descriptor.
func U16() *Type { return &Type{Kind: KindU16} }

// U32 returns the unsigned 32-bit integer descriptor.
func U32() *Type { return &Type{Kind: KindU32} }

// U64 returns the unsigned 64-bit integer descriptor.
func U64() *Type { return &Type{Kind: KindU64} }

// F32 returns the 32-bit float descriptor.
func F32() *Type { return &Type{Kind: KindF32} }

// F64 returns the 64-bit float descriptor.
func F64() *Type { return &Type{Kind: KindF64} }

// Char returns the character descriptor.
func Char() *Type { return &Type{Kind: KindChar} }

// Str returns the string descriptor.
func Str() *Type { return &Type{Kind: KindString} }

// ListOf returns a list descriptor with the given element type.
func ListOf(elem *Type) *Type { return &Type{Kind: KindList, Elem: elem} }

// OptionOf returns an optional descriptor with the given element type.
func OptionOf(elem *Type) *Type { return &Type{Kind: KindOption, Elem: elem} }

// RecordOf returns a named record descriptor with ordered fields.
func RecordOf(name string, fields ...Field) *Type {
	return &Type{Kind: KindRecord, Name: name, Fields: fields}
}

// FieldOf builds one record field.
func FieldOf(name string, t *Type) Field { return Field{Name: name, Type: t} }

// TupleOf returns a tuple descriptor with ordered element types.
func TupleOf(items ...*Type) *Type { return &Type{Kind: KindTuple, Items: items} }

// EnumOf returns a named enum descriptor whose cases carry no payload.
func EnumOf(name string, cases ...string) *Type {
	t := &Type{Kind: KindEnum, Name: name}
	for _, c := range cases {
		t.Cases = append(t.Cases, Case{Name: c})
	}
	return t
}

// VariantOf returns a named variant descriptor with ordered tagged cases.
func VariantOf(name string, cases ...Case) *Type {
	return &Type{Kind: KindVariant, Name: name, Cases: cases}
}

// CaseOf builds one variant case; t may be nil for payload-free cases.
func CaseOf(name string, t *Type) Case { return Case{Name: name, Type: t} }

// FlagsOf returns a flags descriptor with the given flag names.
func FlagsOf(names ...string) *Type { return &Type{Kind: KindFlags, Names: names} }

// ResultOf returns a result descriptor; ok and err may each be nil for
// payload-free sides.
func ResultOf(ok, err *Type) *Type {
	return &Type{Kind: KindResult, OkType: ok, ErrType: err}
}

// StringLiteral returns a string literal descriptor.
func StringLiteral(value string) *Type {
	return &Type{Kind: KindStringLiteral, Name: value}
}

// LiteralTupleOf returns a literal tuple descriptor.
func LiteralTupleOf(items ...*Type) *Type {
	return &Type{Kind: KindLiteralTuple, Items: items}
}

// Text returns the unstructured text marker, optionally restricted to the
// given language codes.
func Text(languageCodes ...string) *Type {
	return &Type{Kind: KindUnstructuredText, Elem: literalsOf(languageCodes)}
}

// Binary returns the unstructured binary marker, optionally restricted to the
// given MIME types.
func Binary(mimeTypes ...string) *Type {
	return &Type{Kind: KindUnstructuredBinary, Elem: literalsOf(mimeTypes)}
}

func literalsOf(values []string) *Type {
	if len(values) == 0 {
		return nil
	}
	items := make([]*Type, 0, len(values))
	for _, v := range values {
		items = append(items, StringLiteral(v))
	}
	return LiteralTupleOf(items...)
}

// MultimodalOf returns a named multimodal descriptor with ordered members.
func MultimodalOf(name string, members ...Member) *Type {
	return &Type{Kind: KindMultimodal, Name: name, Members: members}
}

// MemberOf builds one multimodal member.
func MemberOf(name string, t *Type) Member { return Member{Name: name, Type: t} }

// FutureOf wraps a return type as eventually available.
func FutureOf(elem *Type) *Type { return &Type{Kind: KindFuture, Elem: elem} }
