package schema

import (
	"errors"

	"github.com/BaSui01/agentwire/native"
	"github.com/BaSui01/agentwire/types"
)

// Slot is one named parameter and its declared native type.
type Slot struct {
	Name string
	Type *native.Type
}

// BuildInputSchema derives the DataSchema and per-slot TypeInfos for a
// parameter list of the given class operation (a method name or
// ConstructorOperation).
//
// A multimodal slot must be the only parameter of its operation; any failed
// slot fails the whole operation, with every slot error aggregated.
func BuildInputSchema(class, operation string, params []Slot) (types.DataSchema, []types.NamedTypeInfo, error) {
	var errs []error
	infos := make([]types.NamedTypeInfo, 0, len(params))
	multimodal := -1

	for i, p := range params {
		scope := Scope{Class: class, Operation: operation, Param: p.Name}
		info, err := ResolveTypeInfo(p.Type, scope)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if info.Kind == types.TypeInfoMultimodal {
			if multimodal >= 0 {
				errs = append(errs, scope.errorf("at most one multimodal parameter is allowed"))
				continue
			}
			multimodal = i
		}
		infos = append(infos, types.NamedTypeInfo{Name: p.Name, Info: info})
	}

	if multimodal >= 0 && len(params) > 1 {
		scope := Scope{Class: class, Operation: operation, Param: params[multimodal].Name}
		errs = append(errs, scope.errorf("a multimodal parameter must be the only parameter"))
	}

	if len(errs) > 0 {
		return types.DataSchema{}, nil, errors.Join(errs...)
	}

	if multimodal >= 0 {
		return multimodalSchema(infos[multimodal].Info), infos, nil
	}

	elements := make([]types.NamedElementSchema, 0, len(infos))
	for _, si := range infos {
		es, _ := si.Info.ElementSchema()
		elements = append(elements, types.NamedElementSchema{Name: si.Name, Schema: es})
	}
	return types.TupleSchema(elements...), infos, nil
}

// BuildOutputSchema derives the DataSchema and TypeInfo for a method return
// type. One layer of future wrapping is unwrapped before derivation; a nil
// return type produces an empty tuple schema and no TypeInfo.
func BuildOutputSchema(class, method string, ret *native.Type) (types.DataSchema, []types.NamedTypeInfo, error) {
	if ret != nil && ret.Kind == native.KindFuture {
		ret = ret.Elem
	}
	if ret == nil {
		return types.TupleSchema(), nil, nil
	}

	scope := ReturnScope(class, method)
	info, err := ResolveTypeInfo(ret, scope)
	if err != nil {
		return types.DataSchema{}, nil, err
	}

	infos := []types.NamedTypeInfo{{Name: ReturnParameter, Info: info}}
	if info.Kind == types.TypeInfoMultimodal {
		return multimodalSchema(info), infos, nil
	}

	es, _ := info.ElementSchema()
	return types.TupleSchema(types.NamedElementSchema{Name: ReturnParameter, Schema: es}), infos, nil
}
