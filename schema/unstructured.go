package schema

import (
	"github.com/BaSui01/agentwire/native"
	"github.com/BaSui01/agentwire/types"
)

// textRestrictions extracts the language restrictions of an unstructured text
// marker. The marker's type parameter must be absent or a literal tuple of
// string literals; zero literals means unrestricted.
func textRestrictions(param *native.Type, scope Scope) (types.TextDescriptor, error) {
	values, err := restrictionLiterals(param, scope, "UnstructuredText")
	if err != nil {
		return types.TextDescriptor{}, err
	}
	if len(values) == 0 {
		return types.TextDescriptor{}, nil
	}
	restrictions := make([]types.TextType, 0, len(values))
	for _, v := range values {
		restrictions = append(restrictions, types.TextType{LanguageCode: v})
	}
	return types.TextDescriptor{Restrictions: restrictions}, nil
}

// binaryRestrictions extracts the MIME restrictions of an unstructured binary
// marker, with the same rules as textRestrictions.
func binaryRestrictions(param *native.Type, scope Scope) (types.BinaryDescriptor, error) {
	values, err := restrictionLiterals(param, scope, "UnstructuredBinary")
	if err != nil {
		return types.BinaryDescriptor{}, err
	}
	if len(values) == 0 {
		return types.BinaryDescriptor{}, nil
	}
	restrictions := make([]types.BinaryType, 0, len(values))
	for _, v := range values {
		restrictions = append(restrictions, types.BinaryType{MimeType: v})
	}
	return types.BinaryDescriptor{Restrictions: restrictions}, nil
}

func restrictionLiterals(param *native.Type, scope Scope, marker string) ([]string, error) {
	if param == nil {
		return nil, nil
	}
	if param.Kind != native.KindLiteralTuple {
		return nil, scope.errorf("unknown parameter type for %s: %q", marker, param.TypeName())
	}
	values := make([]string, 0, len(param.Items))
	for _, item := range param.Items {
		if item == nil || item.Kind != native.KindStringLiteral {
			return nil, scope.errorf("unknown parameter type for %s: %q", marker, item.TypeName())
		}
		values = append(values, item.Name)
	}
	return values, nil
}
