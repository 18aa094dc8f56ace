package types

import "fmt"

// WireKind enumerates the structural type kinds understood by the boundary.
type WireKind string

const (
	KindBool    WireKind = "bool"
	KindS8      WireKind = "s8"
	KindS16     WireKind = "s16"
	KindS32     WireKind = "s32"
	KindS64     WireKind = "s64"
	KindU8      WireKind = "u8"
	KindU16     WireKind = "u16"
	KindU32     WireKind = "u32"
	KindU64     WireKind = "u64"
	KindF32     WireKind = "f32"
	KindF64     WireKind = "f64"
	KindChar    WireKind = "char"
	KindString  WireKind = "string"
	KindList    WireKind = "list"
	KindOption  WireKind = "option"
	KindRecord  WireKind = "record"
	KindTuple   WireKind = "tuple"
	KindVariant WireKind = "variant"
	KindEnum    WireKind = "enum"
	KindFlags   WireKind = "flags"
	KindResult  WireKind = "result"
)

// AnalysedType is the structural schema of one component-model value. It is a
// closed AST: exactly the fields relevant for Kind are populated.
type AnalysedType struct {
	Kind WireKind `json:"kind"`

	// Name is the declared type name for records and variants, when known.
	Name string `json:"name,omitempty"`

	// Elem is the element type of list and option.
	Elem *AnalysedType `json:"elem,omitempty"`

	// Fields are the named fields of a record, in declaration order.
	Fields []NamedType `json:"fields,omitempty"`

	// Items are the positional element types of a tuple.
	Items []*AnalysedType `json:"items,omitempty"`

	// Cases are the tagged cases of a variant, in declaration order.
	Cases []VariantCase `json:"cases,omitempty"`

	// Names are the case names of an enum or the flag names of a flags type.
	Names []string `json:"names,omitempty"`

	// Ok and Err are the optional payload types of a result.
	Ok  *AnalysedType `json:"ok,omitempty"`
	Err *AnalysedType `json:"err,omitempty"`
}

// NamedType is a named record field type.
type NamedType struct {
	Name string        `json:"name"`
	Type *AnalysedType `json:"type"`
}

// VariantCase is one tagged case of a variant; Type is nil for payload-free
// cases.
type VariantCase struct {
	Name string        `json:"name"`
	Type *AnalysedType `json:"type,omitempty"`
}

// String renders a compact human-readable form of the type, used in error
// messages.
func (t *AnalysedType) String() string {
	if t == nil {
		return "<nil>"
	}
	switch t.Kind {
	case KindList:
		return fmt.Sprintf("list<%s>", t.Elem)
	case KindOption:
		return fmt.Sprintf("option<%s>", t.Elem)
	case KindRecord:
		if t.Name != "" {
			return fmt.Sprintf("record %s", t.Name)
		}
		return "record"
	case KindTuple:
		return fmt.Sprintf("tuple(%d)", len(t.Items))
	case KindVariant:
		if t.Name != "" {
			return fmt.Sprintf("variant %s", t.Name)
		}
		return "variant"
	default:
		return string(t.Kind)
	}
}

// ElementSchemaKind discriminates the three element schema shapes.
type ElementSchemaKind string

const (
	ElementSchemaComponentModel     ElementSchemaKind = "componentModel"
	ElementSchemaUnstructuredText   ElementSchemaKind = "unstructuredText"
	ElementSchemaUnstructuredBinary ElementSchemaKind = "unstructuredBinary"
)

// ElementSchema describes one parameter or return element: either a fully
// analysed component-model type or an opaque unstructured payload with
// restriction metadata.
type ElementSchema struct {
	Kind        ElementSchemaKind `json:"type"`
	ElementType *AnalysedType     `json:"elementType,omitempty"`
	Text        *TextDescriptor   `json:"textDescriptor,omitempty"`
	Binary      *BinaryDescriptor `json:"binaryDescriptor,omitempty"`
}

// ComponentModelSchema wraps an analysed type as an element schema.
func ComponentModelSchema(t *AnalysedType) ElementSchema {
	return ElementSchema{Kind: ElementSchemaComponentModel, ElementType: t}
}

// UnstructuredTextSchema wraps a text descriptor as an element schema.
func UnstructuredTextSchema(d TextDescriptor) ElementSchema {
	return ElementSchema{Kind: ElementSchemaUnstructuredText, Text: &d}
}

// UnstructuredBinarySchema wraps a binary descriptor as an element schema.
func UnstructuredBinarySchema(d BinaryDescriptor) ElementSchema {
	return ElementSchema{Kind: ElementSchemaUnstructuredBinary, Binary: &d}
}

// NamedElementSchema is an element schema addressed by name: a parameter name
// for tuple schemas, a member type name for multimodal schemas.
type NamedElementSchema struct {
	Name   string        `json:"name"`
	Schema ElementSchema `json:"schema"`
}

// DataSchemaKind discriminates the two data schema shapes.
type DataSchemaKind string

const (
	DataSchemaTuple      DataSchemaKind = "tuple"
	DataSchemaMultimodal DataSchemaKind = "multimodal"
)

// DataSchema describes a full parameter list or return shape: an ordered
// tuple of named elements, or a multimodal set of named alternatives.
type DataSchema struct {
	Kind     DataSchemaKind       `json:"type"`
	Elements []NamedElementSchema `json:"elements"`
}

// TupleSchema builds a tuple data schema from ordered named elements.
func TupleSchema(elements ...NamedElementSchema) DataSchema {
	return DataSchema{Kind: DataSchemaTuple, Elements: elements}
}

// MultimodalSchema builds a multimodal data schema from ordered alternatives.
func MultimodalSchema(elements ...NamedElementSchema) DataSchema {
	return DataSchema{Kind: DataSchemaMultimodal, Elements: elements}
}

// TextType restricts an unstructured text payload to one language.
type TextType struct {
	LanguageCode string `json:"languageCode"`
}

// TextDescriptor carries the optional language restrictions of an
// unstructured text element. A nil Restrictions slice means unrestricted.
type TextDescriptor struct {
	Restrictions []TextType `json:"restrictions,omitempty"`
}

// BinaryType restricts an unstructured binary payload to one MIME type.
type BinaryType struct {
	MimeType string `json:"mimeType"`
}

// BinaryDescriptor carries the optional MIME restrictions of an unstructured
// binary element. A nil Restrictions slice means unrestricted.
type BinaryDescriptor struct {
	Restrictions []BinaryType `json:"restrictions,omitempty"`
}
