package native

import (
	"fmt"
	"reflect"

	"github.com/BaSui01/agentwire/internal/strcase"
)

// Of derives a native descriptor for a plain Go type: structs become records
// (fields in declaration order, names normalized to kebab-case), slices
// become lists, pointers become options and fixed arrays become tuples.
//
// Shapes Go cannot express structurally (variants, enums, flags, results,
// unstructured payloads, multimodal unions) must be declared with the
// explicit constructors instead.
func Of(v any) (*Type, error) {
	return fromReflect(reflect.TypeOf(v))
}

func fromReflect(t reflect.Type) (*Type, error) {
	if t == nil {
		return nil, fmt.Errorf("cannot derive descriptor for untyped nil")
	}
	switch t.Kind() {
	case reflect.Bool:
		return Bool(), nil
	case reflect.Int8:
		return S8(), nil
	case reflect.Int16:
		return S16(), nil
	case reflect.Int32:
		// rune is an alias of int32; there is no way to tell them apart
		// through reflection, so int32 always derives as s32. Use Char()
		// explicitly for character parameters.
		return S32(), nil
	case reflect.Int, reflect.Int64:
		return S64(), nil
	case reflect.Uint8:
		return U8(), nil
	case reflect.Uint16:
		return U16(), nil
	case reflect.Uint32:
		return U32(), nil
	case reflect.Uint, reflect.Uint64:
		return U64(), nil
	case reflect.Float32:
		return F32(), nil
	case reflect.Float64:
		return F64(), nil
	case reflect.String:
		return Str(), nil
	case reflect.Slice:
		elem, err := fromReflect(t.Elem())
		if err != nil {
			return nil, err
		}
		return ListOf(elem), nil
	case reflect.Pointer:
		elem, err := fromReflect(t.Elem())
		if err != nil {
			return nil, err
		}
		return OptionOf(elem), nil
	case reflect.Array:
		elem, err := fromReflect(t.Elem())
		if err != nil {
			return nil, err
		}
		items := make([]*Type, t.Len())
		for i := range items {
			items[i] = elem
		}
		return TupleOf(items...), nil
	case reflect.Struct:
		fields := make([]Field, 0, t.NumField())
		for i := 0; i < t.NumField(); i++ {
			f := t.Field(i)
			if !f.IsExported() {
				continue
			}
			ft, err := fromReflect(f.Type)
			if err != nil {
				return nil, fmt.Errorf("field %s of %s: %w", f.Name, t.Name(), err)
			}
			fields = append(fields, FieldOf(strcase.ToKebab(f.Name), ft))
		}
		return RecordOf(strcase.ToKebab(t.Name()), fields...), nil
	default:
		return nil, fmt.Errorf("unsupported Go type %s (kind %s)", t, t.Kind())
	}
}
