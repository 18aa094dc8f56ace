package types

// ElementValueKind discriminates the three element value shapes. It mirrors
// ElementSchemaKind: a value only matches a schema of the same kind.
type ElementValueKind string

const (
	ElementValueComponentModel     ElementValueKind = "componentModel"
	ElementValueUnstructuredText   ElementValueKind = "unstructuredText"
	ElementValueUnstructuredBinary ElementValueKind = "unstructuredBinary"
)

// ElementValue is one wire-encoded parameter or return element.
//
// For component-model elements, Value holds the codec's JSON-shaped encoding
// (scalars, []any, map[string]any). Higher layers never inspect it; only the
// codec produces and consumes it.
type ElementValue struct {
	Kind   ElementValueKind `json:"type"`
	Value  any              `json:"value,omitempty"`
	Text   *TextReference   `json:"text,omitempty"`
	Binary *BinaryReference `json:"binary,omitempty"`
}

// ComponentModelValue wraps a codec-encoded value as an element value.
func ComponentModelValue(v any) ElementValue {
	return ElementValue{Kind: ElementValueComponentModel, Value: v}
}

// UnstructuredTextValue wraps a text reference as an element value.
func UnstructuredTextValue(ref TextReference) ElementValue {
	return ElementValue{Kind: ElementValueUnstructuredText, Text: &ref}
}

// UnstructuredBinaryValue wraps a binary reference as an element value.
func UnstructuredBinaryValue(ref BinaryReference) ElementValue {
	return ElementValue{Kind: ElementValueUnstructuredBinary, Binary: &ref}
}

// NamedElementValue is an element value addressed by its multimodal member
// name.
type NamedElementValue struct {
	Name  string       `json:"name"`
	Value ElementValue `json:"value"`
}

// DataValueKind discriminates the two data value shapes.
type DataValueKind string

const (
	DataValueTuple      DataValueKind = "tuple"
	DataValueMultimodal DataValueKind = "multimodal"
)

// DataValue is the opaque wire value exchanged at the boundary: a positional
// tuple of elements, or a named multimodal set.
type DataValue struct {
	Kind     DataValueKind       `json:"type"`
	Elements []ElementValue      `json:"elements,omitempty"`
	Named    []NamedElementValue `json:"named,omitempty"`
}

// TupleValue builds a tuple data value from ordered elements.
func TupleValue(elements ...ElementValue) DataValue {
	return DataValue{Kind: DataValueTuple, Elements: elements}
}

// MultimodalValue builds a multimodal data value from named elements.
func MultimodalValue(named ...NamedElementValue) DataValue {
	return DataValue{Kind: DataValueMultimodal, Named: named}
}

// TextReference is an unstructured text payload: either a URL pointing at the
// text or the inline text itself with an optional language tag.
type TextReference struct {
	URL  string    `json:"url,omitempty"`
	Data string    `json:"data,omitempty"`
	Type *TextType `json:"textType,omitempty"`
}

// InlineText builds an inline text reference.
func InlineText(data string, languageCode string) TextReference {
	ref := TextReference{Data: data}
	if languageCode != "" {
		ref.Type = &TextType{LanguageCode: languageCode}
	}
	return ref
}

// TextURL builds a URL text reference.
func TextURL(url string) TextReference {
	return TextReference{URL: url}
}

// BinaryReference is an unstructured binary payload: either a URL or the
// inline bytes with their MIME type.
type BinaryReference struct {
	URL  string      `json:"url,omitempty"`
	Data []byte      `json:"data,omitempty"`
	Type *BinaryType `json:"binaryType,omitempty"`
}

// InlineBinary builds an inline binary reference.
func InlineBinary(data []byte, mimeType string) BinaryReference {
	return BinaryReference{Data: data, Type: &BinaryType{MimeType: mimeType}}
}

// BinaryURL builds a URL binary reference.
func BinaryURL(url string) BinaryReference {
	return BinaryReference{URL: url}
}

// VariantValue is the native representation of a variant: the selected case
// name and its optional payload.
type VariantValue struct {
	Case  string
	Value any
}

// ResultValue is the native representation of a result: Ok selects the
// success payload, otherwise Value is the error payload.
type ResultValue struct {
	Ok    bool
	Value any
}

// NamedValue is the native representation of one multimodal element.
type NamedValue struct {
	Name  string
	Value any
}
