package codec

import (
	"fmt"
	"reflect"

	"github.com/BaSui01/agentwire/types"
)

// Serialize converts ordered native values into a wire DataValue matching the
// given slots. A single multimodal slot expects one []types.NamedValue
// argument and produces a multimodal value; everything else produces a
// positional tuple.
func Serialize(args []any, slots []types.NamedTypeInfo) (types.DataValue, error) {
	if len(slots) == 1 && slots[0].Info.Kind == types.TypeInfoMultimodal {
		if len(args) != 1 {
			return types.DataValue{}, fmt.Errorf("expected 1 multimodal argument, got %d", len(args))
		}
		return serializeMultimodal(args[0], slots[0])
	}

	if len(args) != len(slots) {
		return types.DataValue{}, fmt.Errorf("expected %d arguments, got %d", len(slots), len(args))
	}
	elements := make([]types.ElementValue, 0, len(slots))
	for i, slot := range slots {
		ev, err := serializeElement(args[i], slot.Info)
		if err != nil {
			return types.DataValue{}, fmt.Errorf("argument %q: %w", slot.Name, err)
		}
		elements = append(elements, ev)
	}
	return types.TupleValue(elements...), nil
}

func serializeMultimodal(arg any, slot types.NamedTypeInfo) (types.DataValue, error) {
	values, ok := arg.([]types.NamedValue)
	if !ok {
		return types.DataValue{}, fmt.Errorf("argument %q: expected []types.NamedValue for multimodal slot, got %T", slot.Name, arg)
	}
	named := make([]types.NamedElementValue, 0, len(values))
	for _, nv := range values {
		member, ok := multimodalMember(slot.Info, nv.Name)
		if !ok {
			return types.DataValue{}, fmt.Errorf("argument %q: unknown multimodal member %q", slot.Name, nv.Name)
		}
		ev, err := serializeElement(nv.Value, member)
		if err != nil {
			return types.DataValue{}, fmt.Errorf("argument %q, member %q: %w", slot.Name, nv.Name, err)
		}
		named = append(named, types.NamedElementValue{Name: nv.Name, Value: ev})
	}
	return types.MultimodalValue(named...), nil
}

func multimodalMember(info types.TypeInfo, name string) (types.TypeInfo, bool) {
	for _, m := range info.Multimodal {
		if m.Name == name {
			return m.Info, true
		}
	}
	return types.TypeInfo{}, false
}

func serializeElement(v any, info types.TypeInfo) (types.ElementValue, error) {
	switch info.Kind {
	case types.TypeInfoAnalysed:
		encoded, err := encodeValue(v, info.Analysed)
		if err != nil {
			return types.ElementValue{}, err
		}
		return types.ComponentModelValue(encoded), nil

	case types.TypeInfoUnstructuredText:
		ref, ok := v.(types.TextReference)
		if !ok {
			return types.ElementValue{}, fmt.Errorf("expected types.TextReference, got %T", v)
		}
		if err := checkTextRestrictions(ref, info.Text); err != nil {
			return types.ElementValue{}, err
		}
		return types.UnstructuredTextValue(ref), nil

	case types.TypeInfoUnstructuredBinary:
		ref, ok := v.(types.BinaryReference)
		if !ok {
			return types.ElementValue{}, fmt.Errorf("expected types.BinaryReference, got %T", v)
		}
		if err := checkBinaryRestrictions(ref, info.Binary); err != nil {
			return types.ElementValue{}, err
		}
		return types.UnstructuredBinaryValue(ref), nil

	default:
		return types.ElementValue{}, fmt.Errorf("multimodal element cannot nest another multimodal value")
	}
}

func checkTextRestrictions(ref types.TextReference, d *types.TextDescriptor) error {
	if d == nil || len(d.Restrictions) == 0 || ref.Type == nil {
		return nil
	}
	for _, r := range d.Restrictions {
		if r.LanguageCode == ref.Type.LanguageCode {
			return nil
		}
	}
	return fmt.Errorf("language %q is not among the declared restrictions", ref.Type.LanguageCode)
}

func checkBinaryRestrictions(ref types.BinaryReference, d *types.BinaryDescriptor) error {
	if d == nil || len(d.Restrictions) == 0 || ref.Type == nil {
		return nil
	}
	for _, r := range d.Restrictions {
		if r.MimeType == ref.Type.MimeType {
			return nil
		}
	}
	return fmt.Errorf("mime type %q is not among the declared restrictions", ref.Type.MimeType)
}

// encodeValue converts one native value into its wire encoding, validating it
// against the analysed type.
func encodeValue(v any, t *types.AnalysedType) (any, error) {
	switch t.Kind {
	case types.KindBool:
		b, ok := v.(bool)
		if !ok {
			return nil, typeMismatch(t, v)
		}
		return b, nil

	case types.KindS8, types.KindS16, types.KindS32, types.KindS64:
		return encodeSigned(v, t)

	case types.KindU8, types.KindU16, types.KindU32, types.KindU64:
		return encodeUnsigned(v, t)

	case types.KindF32:
		f, ok := v.(float32)
		if !ok {
			return nil, typeMismatch(t, v)
		}
		return float64(f), nil

	case types.KindF64:
		f, ok := v.(float64)
		if !ok {
			return nil, typeMismatch(t, v)
		}
		return f, nil

	case types.KindChar:
		r, ok := v.(rune)
		if !ok {
			return nil, typeMismatch(t, v)
		}
		if err := checkSignedRange(int64(r), types.KindChar); err != nil {
			return nil, err
		}
		return int64(r), nil

	case types.KindString:
		s, ok := v.(string)
		if !ok {
			return nil, typeMismatch(t, v)
		}
		return s, nil

	case types.KindList:
		items, err := asSlice(v)
		if err != nil {
			return nil, typeMismatch(t, v)
		}
		encoded := make([]any, 0, len(items))
		for i, item := range items {
			e, err := encodeValue(item, t.Elem)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			encoded = append(encoded, e)
		}
		return encoded, nil

	case types.KindOption:
		if v == nil {
			return nil, nil
		}
		return encodeValue(v, t.Elem)

	case types.KindRecord:
		fields, ok := v.(map[string]any)
		if !ok {
			return nil, typeMismatch(t, v)
		}
		for name := range fields {
			if !recordHasField(t, name) {
				return nil, fmt.Errorf("record %s: unknown field %q", t.Name, name)
			}
		}
		encoded := make(map[string]any, len(t.Fields))
		for _, f := range t.Fields {
			fv, present := fields[f.Name]
			if !present && f.Type.Kind != types.KindOption {
				return nil, fmt.Errorf("record %s: missing field %q", t.Name, f.Name)
			}
			e, err := encodeValue(fv, f.Type)
			if err != nil {
				return nil, fmt.Errorf("record %s, field %q: %w", t.Name, f.Name, err)
			}
			encoded[f.Name] = e
		}
		return encoded, nil

	case types.KindTuple:
		items, err := asSlice(v)
		if err != nil {
			return nil, typeMismatch(t, v)
		}
		if len(items) != len(t.Items) {
			return nil, fmt.Errorf("tuple: %d elements given, %d declared", len(items), len(t.Items))
		}
		encoded := make([]any, 0, len(items))
		for i, item := range items {
			e, err := encodeValue(item, t.Items[i])
			if err != nil {
				return nil, fmt.Errorf("tuple index %d: %w", i, err)
			}
			encoded = append(encoded, e)
		}
		return encoded, nil

	case types.KindEnum:
		s, ok := v.(string)
		if !ok {
			return nil, typeMismatch(t, v)
		}
		if !contains(t.Names, s) {
			return nil, fmt.Errorf("enum %s: unknown case %q", t.Name, s)
		}
		return s, nil

	case types.KindVariant:
		vv, ok := v.(types.VariantValue)
		if !ok {
			return nil, typeMismatch(t, v)
		}
		c, ok := variantCase(t, vv.Case)
		if !ok {
			return nil, fmt.Errorf("variant %s: unknown case %q", t.Name, vv.Case)
		}
		encoded := map[string]any{"case": vv.Case}
		if c.Type != nil {
			e, err := encodeValue(vv.Value, c.Type)
			if err != nil {
				return nil, fmt.Errorf("variant %s, case %q: %w", t.Name, vv.Case, err)
			}
			encoded["value"] = e
		} else if vv.Value != nil {
			return nil, fmt.Errorf("variant %s: case %q carries no payload", t.Name, vv.Case)
		}
		return encoded, nil

	case types.KindFlags:
		names, ok := v.([]string)
		if !ok {
			return nil, typeMismatch(t, v)
		}
		seen := make(map[string]bool, len(names))
		for _, n := range names {
			if !contains(t.Names, n) {
				return nil, fmt.Errorf("flags: unknown flag %q", n)
			}
			if seen[n] {
				return nil, fmt.Errorf("flags: duplicate flag %q", n)
			}
			seen[n] = true
		}
		return append([]string(nil), names...), nil

	case types.KindResult:
		rv, ok := v.(types.ResultValue)
		if !ok {
			return nil, typeMismatch(t, v)
		}
		side := t.Err
		key := "err"
		if rv.Ok {
			side = t.Ok
			key = "ok"
		}
		encoded := map[string]any{"ok": rv.Ok}
		if side != nil {
			e, err := encodeValue(rv.Value, side)
			if err != nil {
				return nil, fmt.Errorf("result %s side: %w", key, err)
			}
			encoded["value"] = e
		} else if rv.Value != nil {
			return nil, fmt.Errorf("result %s side carries no payload", key)
		}
		return encoded, nil
	}

	return nil, fmt.Errorf("unsupported wire kind %q", t.Kind)
}

func encodeSigned(v any, t *types.AnalysedType) (any, error) {
	var n int64
	switch x := v.(type) {
	case int8:
		n = int64(x)
	case int16:
		n = int64(x)
	case int32:
		n = int64(x)
	case int64:
		n = x
	case int:
		n = int64(x)
	default:
		return nil, typeMismatch(t, v)
	}
	if err := checkSignedRange(n, t.Kind); err != nil {
		return nil, err
	}
	return n, nil
}

func encodeUnsigned(v any, t *types.AnalysedType) (any, error) {
	var n uint64
	switch x := v.(type) {
	case uint8:
		n = uint64(x)
	case uint16:
		n = uint64(x)
	case uint32:
		n = uint64(x)
	case uint64:
		n = x
	case uint:
		n = uint64(x)
	default:
		return nil, typeMismatch(t, v)
	}
	if err := checkUnsignedRange(n, t.Kind); err != nil {
		return nil, err
	}
	return n, nil
}

func asSlice(v any) ([]any, error) {
	if items, ok := v.([]any); ok {
		return items, nil
	}
	rv := reflect.ValueOf(v)
	if !rv.IsValid() || rv.Kind() != reflect.Slice {
		return nil, fmt.Errorf("not a slice")
	}
	items := make([]any, rv.Len())
	for i := range items {
		items[i] = rv.Index(i).Interface()
	}
	return items, nil
}

func typeMismatch(t *types.AnalysedType, v any) error {
	return fmt.Errorf("expected %s, got %T", t, v)
}

func contains(names []string, s string) bool {
	for _, n := range names {
		if n == s {
			return true
		}
	}
	return false
}

func recordHasField(t *types.AnalysedType, name string) bool {
	for _, f := range t.Fields {
		if f.Name == name {
			return true
		}
	}
	return false
}

func variantCase(t *types.AnalysedType, name string) (types.VariantCase, bool) {
	for _, c := range t.Cases {
		if c.Name == name {
			return c, true
		}
	}
	return types.VariantCase{}, false
}
