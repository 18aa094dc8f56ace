package types

// TypeInfoKind discriminates the four codec-level shapes of a parameter or
// return slot.
type TypeInfoKind string

const (
	TypeInfoAnalysed           TypeInfoKind = "analysed"
	TypeInfoUnstructuredText   TypeInfoKind = "unstructured-text"
	TypeInfoUnstructuredBinary TypeInfoKind = "unstructured-binary"
	TypeInfoMultimodal         TypeInfoKind = "multimodal"
)

// TypeInfo is the codec's view of one parameter or return slot. Exactly the
// field matching Kind is populated. Every TypeInfo handed to the codec must
// have been produced by the schema mapper from a fully validated type.
type TypeInfo struct {
	Kind TypeInfoKind

	// Analysed is the full structural schema for analysed slots.
	Analysed *AnalysedType

	// Text and Binary carry the restriction metadata of unstructured slots.
	Text   *TextDescriptor
	Binary *BinaryDescriptor

	// Multimodal is the ordered name to TypeInfo list of a multimodal slot.
	Multimodal []NamedTypeInfo
}

// NamedTypeInfo is one multimodal alternative, addressed by its member type
// name.
type NamedTypeInfo struct {
	Name string
	Info TypeInfo
}

// AnalysedInfo builds an analysed TypeInfo.
func AnalysedInfo(t *AnalysedType) TypeInfo {
	return TypeInfo{Kind: TypeInfoAnalysed, Analysed: t}
}

// TextInfo builds an unstructured-text TypeInfo.
func TextInfo(d TextDescriptor) TypeInfo {
	return TypeInfo{Kind: TypeInfoUnstructuredText, Text: &d}
}

// BinaryInfo builds an unstructured-binary TypeInfo.
func BinaryInfo(d BinaryDescriptor) TypeInfo {
	return TypeInfo{Kind: TypeInfoUnstructuredBinary, Binary: &d}
}

// MultimodalInfo builds a multimodal TypeInfo from ordered alternatives.
func MultimodalInfo(members ...NamedTypeInfo) TypeInfo {
	return TypeInfo{Kind: TypeInfoMultimodal, Multimodal: members}
}

// ElementSchema converts the TypeInfo to its externally visible element
// schema. Multimodal infos have no single element schema; they surface as a
// multimodal DataSchema instead.
func (i TypeInfo) ElementSchema() (ElementSchema, bool) {
	switch i.Kind {
	case TypeInfoAnalysed:
		return ComponentModelSchema(i.Analysed), true
	case TypeInfoUnstructuredText:
		return UnstructuredTextSchema(*i.Text), true
	case TypeInfoUnstructuredBinary:
		return UnstructuredBinarySchema(*i.Binary), true
	default:
		return ElementSchema{}, false
	}
}
