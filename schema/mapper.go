package schema

import (
	"github.com/BaSui01/agentwire/native"
	"github.com/BaSui01/agentwire/types"
)

// Map converts one native type descriptor into its wire kind and analysed
// schema. It is total over the supported shapes: anything else is an error
// naming the scope and the offending type.
//
// The unstructured marker types and multimodal unions never reach Map as a
// whole slot (ResolveTypeInfo intercepts them first); encountering one during
// recursion means it was nested inside a structural type, which is not
// supported.
func Map(t *native.Type, scope Scope) (types.WireKind, *types.AnalysedType, error) {
	if t == nil {
		return "", nil, scope.errorf("missing type descriptor")
	}

	switch t.Kind {
	case native.KindBool:
		return prim(types.KindBool)
	case native.KindS8:
		return prim(types.KindS8)
	case native.KindS16:
		return prim(types.KindS16)
	case native.KindS32:
		return prim(types.KindS32)
	case native.KindS64:
		return prim(types.KindS64)
	case native.KindU8:
		return prim(types.KindU8)
	case native.KindU16:
		return prim(types.KindU16)
	case native.KindU32:
		return prim(types.KindU32)
	case native.KindU64:
		return prim(types.KindU64)
	case native.KindF32:
		return prim(types.KindF32)
	case native.KindF64:
		return prim(types.KindF64)
	case native.KindChar:
		return prim(types.KindChar)
	case native.KindString:
		return prim(types.KindString)

	case native.KindList:
		_, elem, err := Map(t.Elem, scope)
		if err != nil {
			return "", nil, err
		}
		return types.KindList, &types.AnalysedType{Kind: types.KindList, Elem: elem}, nil

	case native.KindOption:
		_, elem, err := Map(t.Elem, scope)
		if err != nil {
			return "", nil, err
		}
		return types.KindOption, &types.AnalysedType{Kind: types.KindOption, Elem: elem}, nil

	case native.KindRecord:
		fields := make([]types.NamedType, 0, len(t.Fields))
		for _, f := range t.Fields {
			_, ft, err := Map(f.Type, scope)
			if err != nil {
				return "", nil, err
			}
			fields = append(fields, types.NamedType{Name: f.Name, Type: ft})
		}
		return types.KindRecord, &types.AnalysedType{Kind: types.KindRecord, Name: t.Name, Fields: fields}, nil

	case native.KindTuple:
		items := make([]*types.AnalysedType, 0, len(t.Items))
		for _, item := range t.Items {
			_, it, err := Map(item, scope)
			if err != nil {
				return "", nil, err
			}
			items = append(items, it)
		}
		return types.KindTuple, &types.AnalysedType{Kind: types.KindTuple, Items: items}, nil

	case native.KindEnum:
		return mapEnum(t)

	case native.KindVariant:
		// A union whose every case is payload-free degenerates to an enum.
		if payloadFree(t.Cases) {
			return mapEnum(t)
		}
		cases := make([]types.VariantCase, 0, len(t.Cases))
		for _, c := range t.Cases {
			vc := types.VariantCase{Name: c.Name}
			if c.Type != nil {
				_, ct, err := Map(c.Type, scope)
				if err != nil {
					return "", nil, err
				}
				vc.Type = ct
			}
			cases = append(cases, vc)
		}
		return types.KindVariant, &types.AnalysedType{Kind: types.KindVariant, Name: t.Name, Cases: cases}, nil

	case native.KindFlags:
		names := append([]string(nil), t.Names...)
		return types.KindFlags, &types.AnalysedType{Kind: types.KindFlags, Names: names}, nil

	case native.KindResult:
		result := &types.AnalysedType{Kind: types.KindResult}
		if t.OkType != nil {
			_, ok, err := Map(t.OkType, scope)
			if err != nil {
				return "", nil, err
			}
			result.Ok = ok
		}
		if t.ErrType != nil {
			_, errT, err := Map(t.ErrType, scope)
			if err != nil {
				return "", nil, err
			}
			result.Err = errT
		}
		return types.KindResult, result, nil

	case native.KindUnstructuredText, native.KindUnstructuredBinary:
		return "", nil, scope.errorf("%s is only supported as a whole parameter or return value", t.TypeName())

	case native.KindMultimodal:
		return "", nil, scope.errorf("Multimodal type %q cannot be nested inside another type", t.TypeName())

	case native.KindFuture:
		return "", nil, scope.errorf("future type %s is only supported as a method return wrapper", t)

	case native.KindStringLiteral, native.KindLiteralTuple:
		return "", nil, scope.errorf("literal type %q is only supported inside unstructured restriction lists", t.TypeName())
	}

	return "", nil, scope.errorf("unsupported type %q", t.TypeName())
}

func prim(kind types.WireKind) (types.WireKind, *types.AnalysedType, error) {
	return kind, &types.AnalysedType{Kind: kind}, nil
}

func mapEnum(t *native.Type) (types.WireKind, *types.AnalysedType, error) {
	names := make([]string, 0, len(t.Cases))
	for _, c := range t.Cases {
		names = append(names, c.Name)
	}
	return types.KindEnum, &types.AnalysedType{Kind: types.KindEnum, Name: t.Name, Names: names}, nil
}

func payloadFree(cases []native.Case) bool {
	for _, c := range cases {
		if c.Type != nil {
			return false
		}
	}
	return true
}
