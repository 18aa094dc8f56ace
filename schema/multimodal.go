package schema

import (
	"github.com/BaSui01/agentwire/native"
	"github.com/BaSui01/agentwire/types"
)

// ResolveTypeInfo derives the codec-level TypeInfo for one parameter or
// return slot. Unstructured markers and multimodal unions are intercepted
// here; everything else goes through the generic mapper.
func ResolveTypeInfo(t *native.Type, scope Scope) (types.TypeInfo, error) {
	if t == nil {
		return types.TypeInfo{}, scope.errorf("missing type descriptor")
	}

	switch t.Kind {
	case native.KindUnstructuredText:
		descriptor, err := textRestrictions(t.Elem, scope)
		if err != nil {
			return types.TypeInfo{}, err
		}
		return types.TextInfo(descriptor), nil

	case native.KindUnstructuredBinary:
		descriptor, err := binaryRestrictions(t.Elem, scope)
		if err != nil {
			return types.TypeInfo{}, err
		}
		return types.BinaryInfo(descriptor), nil

	case native.KindMultimodal:
		return resolveMultimodal(t, scope)

	default:
		_, analysed, err := Map(t, scope)
		if err != nil {
			return types.TypeInfo{}, err
		}
		return types.AnalysedInfo(analysed), nil
	}
}

// resolveMultimodal flattens a multimodal union into its ordered named
// alternatives, each derived independently. Members are addressed by their
// member type name and must not themselves be multimodal.
func resolveMultimodal(t *native.Type, scope Scope) (types.TypeInfo, error) {
	members := make([]types.NamedTypeInfo, 0, len(t.Members))
	for _, m := range t.Members {
		if m.Type != nil && m.Type.Kind == native.KindMultimodal {
			return types.TypeInfo{}, scope.errorf("multimodal member %q cannot itself be multimodal", m.Name)
		}
		info, err := ResolveTypeInfo(m.Type, scope)
		if err != nil {
			return types.TypeInfo{}, err
		}
		members = append(members, types.NamedTypeInfo{Name: m.Name, Info: info})
	}
	return types.MultimodalInfo(members...), nil
}

// multimodalSchema converts a resolved multimodal TypeInfo into its
// DataSchema form, preserving member order.
func multimodalSchema(info types.TypeInfo) types.DataSchema {
	elements := make([]types.NamedElementSchema, 0, len(info.Multimodal))
	for _, m := range info.Multimodal {
		es, _ := m.Info.ElementSchema()
		elements = append(elements, types.NamedElementSchema{Name: m.Name, Schema: es})
	}
	return types.MultimodalSchema(elements...)
}
