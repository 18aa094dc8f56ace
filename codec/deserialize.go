package codec

import (
	"fmt"
	"math"

	"github.com/BaSui01/agentwire/types"
)

// Deserialize converts a wire DataValue into ordered native values matching
// the given slots. Arity and shape mismatches are reported with the slot name
// included.
func Deserialize(value types.DataValue, slots []types.NamedTypeInfo) ([]any, error) {
	if len(slots) == 1 && slots[0].Info.Kind == types.TypeInfoMultimodal {
		if value.Kind != types.DataValueMultimodal {
			return nil, fmt.Errorf("expected a multimodal value for slot %q, got %s", slots[0].Name, value.Kind)
		}
		return deserializeMultimodal(value, slots[0])
	}

	if value.Kind != types.DataValueTuple {
		return nil, fmt.Errorf("expected a tuple value, got %s", value.Kind)
	}
	if len(value.Elements) != len(slots) {
		return nil, fmt.Errorf("expected %d arguments, got %d", len(slots), len(value.Elements))
	}
	args := make([]any, 0, len(slots))
	for i, slot := range slots {
		v, err := deserializeElement(value.Elements[i], slot.Info)
		if err != nil {
			return nil, fmt.Errorf("argument %q: %w", slot.Name, err)
		}
		args = append(args, v)
	}
	return args, nil
}

func deserializeMultimodal(value types.DataValue, slot types.NamedTypeInfo) ([]any, error) {
	values := make([]types.NamedValue, 0, len(value.Named))
	for _, ne := range value.Named {
		member, ok := multimodalMember(slot.Info, ne.Name)
		if !ok {
			return nil, fmt.Errorf("slot %q: unknown multimodal member %q", slot.Name, ne.Name)
		}
		v, err := deserializeElement(ne.Value, member)
		if err != nil {
			return nil, fmt.Errorf("slot %q, member %q: %w", slot.Name, ne.Name, err)
		}
		values = append(values, types.NamedValue{Name: ne.Name, Value: v})
	}
	return []any{values}, nil
}

func deserializeElement(ev types.ElementValue, info types.TypeInfo) (any, error) {
	switch info.Kind {
	case types.TypeInfoAnalysed:
		if ev.Kind != types.ElementValueComponentModel {
			return nil, fmt.Errorf("expected a component-model element, got %s", ev.Kind)
		}
		return decodeValue(ev.Value, info.Analysed)

	case types.TypeInfoUnstructuredText:
		if ev.Kind != types.ElementValueUnstructuredText || ev.Text == nil {
			return nil, fmt.Errorf("expected an unstructured-text element, got %s", ev.Kind)
		}
		if err := checkTextRestrictions(*ev.Text, info.Text); err != nil {
			return nil, err
		}
		return *ev.Text, nil

	case types.TypeInfoUnstructuredBinary:
		if ev.Kind != types.ElementValueUnstructuredBinary || ev.Binary == nil {
			return nil, fmt.Errorf("expected an unstructured-binary element, got %s", ev.Kind)
		}
		if err := checkBinaryRestrictions(*ev.Binary, info.Binary); err != nil {
			return nil, err
		}
		return *ev.Binary, nil

	default:
		return nil, fmt.Errorf("multimodal element cannot nest another multimodal value")
	}
}

// decodeValue converts one wire encoding back into its native value,
// validating it against the analysed type.
func decodeValue(w any, t *types.AnalysedType) (any, error) {
	switch t.Kind {
	case types.KindBool:
		b, ok := w.(bool)
		if !ok {
			return nil, wireMismatch(t, w)
		}
		return b, nil

	case types.KindS8:
		n, err := wireSigned(w, t)
		if err != nil {
			return nil, err
		}
		return int8(n), nil

	case types.KindS16:
		n, err := wireSigned(w, t)
		if err != nil {
			return nil, err
		}
		return int16(n), nil

	case types.KindS32:
		n, err := wireSigned(w, t)
		if err != nil {
			return nil, err
		}
		return int32(n), nil

	case types.KindS64:
		return wireSigned(w, t)

	case types.KindU8:
		n, err := wireUnsigned(w, t)
		if err != nil {
			return nil, err
		}
		return uint8(n), nil

	case types.KindU16:
		n, err := wireUnsigned(w, t)
		if err != nil {
			return nil, err
		}
		return uint16(n), nil

	case types.KindU32:
		n, err := wireUnsigned(w, t)
		if err != nil {
			return nil, err
		}
		return uint32(n), nil

	case types.KindU64:
		return wireUnsigned(w, t)

	case types.KindF32:
		f, ok := wireFloat(w)
		if !ok {
			return nil, wireMismatch(t, w)
		}
		return float32(f), nil

	case types.KindF64:
		f, ok := wireFloat(w)
		if !ok {
			return nil, wireMismatch(t, w)
		}
		return f, nil

	case types.KindChar:
		n, err := wireSigned(w, t)
		if err != nil {
			return nil, err
		}
		return rune(n), nil

	case types.KindString:
		s, ok := w.(string)
		if !ok {
			return nil, wireMismatch(t, w)
		}
		return s, nil

	case types.KindList:
		items, ok := w.([]any)
		if !ok {
			return nil, wireMismatch(t, w)
		}
		decoded := make([]any, 0, len(items))
		for i, item := range items {
			d, err := decodeValue(item, t.Elem)
			if err != nil {
				return nil, fmt.Errorf("list index %d: %w", i, err)
			}
			decoded = append(decoded, d)
		}
		return decoded, nil

	case types.KindOption:
		if w == nil {
			return nil, nil
		}
		return decodeValue(w, t.Elem)

	case types.KindRecord:
		fields, ok := w.(map[string]any)
		if !ok {
			return nil, wireMismatch(t, w)
		}
		decoded := make(map[string]any, len(t.Fields))
		for _, f := range t.Fields {
			fv, present := fields[f.Name]
			if !present && f.Type.Kind != types.KindOption {
				return nil, fmt.Errorf("record %s: missing field %q", t.Name, f.Name)
			}
			d, err := decodeValue(fv, f.Type)
			if err != nil {
				return nil, fmt.Errorf("record %s, field %q: %w", t.Name, f.Name, err)
			}
			decoded[f.Name] = d
		}
		return decoded, nil

	case types.KindTuple:
		items, ok := w.([]any)
		if !ok {
			return nil, wireMismatch(t, w)
		}
		if len(items) != len(t.Items) {
			return nil, fmt.Errorf("tuple: %d elements given, %d declared", len(items), len(t.Items))
		}
		decoded := make([]any, 0, len(items))
		for i, item := range items {
			d, err := decodeValue(item, t.Items[i])
			if err != nil {
				return nil, fmt.Errorf("tuple index %d: %w", i, err)
			}
			decoded = append(decoded, d)
		}
		return decoded, nil

	case types.KindEnum:
		s, ok := w.(string)
		if !ok {
			return nil, wireMismatch(t, w)
		}
		if !contains(t.Names, s) {
			return nil, fmt.Errorf("enum %s: unknown case %q", t.Name, s)
		}
		return s, nil

	case types.KindVariant:
		fields, ok := w.(map[string]any)
		if !ok {
			return nil, wireMismatch(t, w)
		}
		caseName, ok := fields["case"].(string)
		if !ok {
			return nil, fmt.Errorf("variant %s: missing case tag", t.Name)
		}
		c, ok := variantCase(t, caseName)
		if !ok {
			return nil, fmt.Errorf("variant %s: unknown case %q", t.Name, caseName)
		}
		vv := types.VariantValue{Case: caseName}
		if c.Type != nil {
			d, err := decodeValue(fields["value"], c.Type)
			if err != nil {
				return nil, fmt.Errorf("variant %s, case %q: %w", t.Name, caseName, err)
			}
			vv.Value = d
		}
		return vv, nil

	case types.KindFlags:
		names, err := wireStrings(w)
		if err != nil {
			return nil, wireMismatch(t, w)
		}
		for _, n := range names {
			if !contains(t.Names, n) {
				return nil, fmt.Errorf("flags: unknown flag %q", n)
			}
		}
		return names, nil

	case types.KindResult:
		fields, ok := w.(map[string]any)
		if !ok {
			return nil, wireMismatch(t, w)
		}
		okFlag, ok := fields["ok"].(bool)
		if !ok {
			return nil, fmt.Errorf("result: missing ok tag")
		}
		side := t.Err
		if okFlag {
			side = t.Ok
		}
		rv := types.ResultValue{Ok: okFlag}
		if side != nil {
			d, err := decodeValue(fields["value"], side)
			if err != nil {
				return nil, fmt.Errorf("result payload: %w", err)
			}
			rv.Value = d
		}
		return rv, nil
	}

	return nil, fmt.Errorf("unsupported wire kind %q", t.Kind)
}

func wireSigned(w any, t *types.AnalysedType) (int64, error) {
	var n int64
	switch x := w.(type) {
	case int64:
		n = x
	case int:
		n = int64(x)
	case float64:
		// Values that crossed a JSON boundary arrive as float64.
		if x != math.Trunc(x) {
			return 0, wireMismatch(t, w)
		}
		n = int64(x)
	default:
		return 0, wireMismatch(t, w)
	}
	if err := checkSignedRange(n, t.Kind); err != nil {
		return 0, err
	}
	return n, nil
}

func wireUnsigned(w any, t *types.AnalysedType) (uint64, error) {
	var n uint64
	switch x := w.(type) {
	case uint64:
		n = x
	case int64:
		if x < 0 {
			return 0, wireMismatch(t, w)
		}
		n = uint64(x)
	case float64:
		if x < 0 || x != math.Trunc(x) {
			return 0, wireMismatch(t, w)
		}
		n = uint64(x)
	default:
		return 0, wireMismatch(t, w)
	}
	if err := checkUnsignedRange(n, t.Kind); err != nil {
		return 0, err
	}
	return n, nil
}

func wireFloat(w any) (float64, bool) {
	switch x := w.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	default:
		return 0, false
	}
}

func wireStrings(w any) ([]string, error) {
	switch x := w.(type) {
	case []string:
		return append([]string(nil), x...), nil
	case []any:
		names := make([]string, 0, len(x))
		for _, item := range x {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("not a string list")
			}
			names = append(names, s)
		}
		return names, nil
	default:
		return nil, fmt.Errorf("not a string list")
	}
}

func wireMismatch(t *types.AnalysedType, w any) error {
	return fmt.Errorf("wire value %v does not match %s", w, t)
}
