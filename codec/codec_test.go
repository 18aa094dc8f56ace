package codec

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BaSui01/agentwire/types"
)

func analysedSlot(name string, t *types.AnalysedType) types.NamedTypeInfo {
	return types.NamedTypeInfo{Name: name, Info: types.AnalysedInfo(t)}
}

func kind(k types.WireKind) *types.AnalysedType {
	return &types.AnalysedType{Kind: k}
}

func TestRoundTrip_Primitives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		typ  *types.AnalysedType
		in   any
		wire any
	}{
		{"bool", kind(types.KindBool), true, true},
		{"s8", kind(types.KindS8), int8(-5), int64(-5)},
		{"s16", kind(types.KindS16), int16(300), int64(300)},
		{"s32", kind(types.KindS32), int32(-70000), int64(-70000)},
		{"s64", kind(types.KindS64), int64(1 << 40), int64(1 << 40)},
		{"u8", kind(types.KindU8), uint8(200), uint64(200)},
		{"u16", kind(types.KindU16), uint16(60000), uint64(60000)},
		{"u32", kind(types.KindU32), uint32(4000000000), uint64(4000000000)},
		{"u64", kind(types.KindU64), uint64(1 << 60), uint64(1 << 60)},
		{"f32", kind(types.KindF32), float32(1.5), float64(1.5)},
		{"f64", kind(types.KindF64), 2.25, 2.25},
		{"char", kind(types.KindChar), 'A', int64(65)},
		{"string", kind(types.KindString), "hello", "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			slots := []types.NamedTypeInfo{analysedSlot("v", tt.typ)}

			dv, err := Serialize([]any{tt.in}, slots)
			require.NoError(t, err)
			require.Len(t, dv.Elements, 1)
			assert.Equal(t, tt.wire, dv.Elements[0].Value)

			out, err := Deserialize(dv, slots)
			require.NoError(t, err)
			require.Len(t, out, 1)
			assert.Equal(t, tt.in, out[0])
		})
	}
}

func TestRoundTrip_Composites(t *testing.T) {
	t.Parallel()

	listType := &types.AnalysedType{Kind: types.KindList, Elem: kind(types.KindString)}
	slots := []types.NamedTypeInfo{analysedSlot("tags", listType)}
	dv, err := Serialize([]any{[]string{"a", "b"}}, slots)
	require.NoError(t, err)
	out, err := Deserialize(dv, slots)
	require.NoError(t, err)
	assert.Equal(t, []any{"a", "b"}, out[0])

	optType := &types.AnalysedType{Kind: types.KindOption, Elem: kind(types.KindS64)}
	slots = []types.NamedTypeInfo{analysedSlot("limit", optType)}
	dv, err = Serialize([]any{nil}, slots)
	require.NoError(t, err)
	assert.Nil(t, dv.Elements[0].Value)
	out, err = Deserialize(dv, slots)
	require.NoError(t, err)
	assert.Nil(t, out[0])

	dv, err = Serialize([]any{int64(7)}, slots)
	require.NoError(t, err)
	out, err = Deserialize(dv, slots)
	require.NoError(t, err)
	assert.Equal(t, int64(7), out[0])

	recType := &types.AnalysedType{
		Kind: types.KindRecord,
		Name: "point",
		Fields: []types.NamedType{
			{Name: "x", Type: kind(types.KindF64)},
			{Name: "y", Type: kind(types.KindF64)},
			{Name: "label", Type: &types.AnalysedType{Kind: types.KindOption, Elem: kind(types.KindString)}},
		},
	}
	slots = []types.NamedTypeInfo{analysedSlot("p", recType)}
	dv, err = Serialize([]any{map[string]any{"x": 1.0, "y": 2.0}}, slots)
	require.NoError(t, err)
	out, err = Deserialize(dv, slots)
	require.NoError(t, err)
	decoded := out[0].(map[string]any)
	assert.Equal(t, 1.0, decoded["x"])
	assert.Nil(t, decoded["label"], "absent optional fields decode to nil")

	tupType := &types.AnalysedType{
		Kind:  types.KindTuple,
		Items: []*types.AnalysedType{kind(types.KindString), kind(types.KindBool)},
	}
	slots = []types.NamedTypeInfo{analysedSlot("pair", tupType)}
	dv, err = Serialize([]any{[]any{"on", true}}, slots)
	require.NoError(t, err)
	out, err = Deserialize(dv, slots)
	require.NoError(t, err)
	assert.Equal(t, []any{"on", true}, out[0])
}

func TestRoundTrip_TaggedTypes(t *testing.T) {
	t.Parallel()

	enumType := &types.AnalysedType{Kind: types.KindEnum, Name: "color", Names: []string{"red", "green"}}
	slots := []types.NamedTypeInfo{analysedSlot("c", enumType)}
	dv, err := Serialize([]any{"green"}, slots)
	require.NoError(t, err)
	assert.Equal(t, "green", dv.Elements[0].Value)
	out, err := Deserialize(dv, slots)
	require.NoError(t, err)
	assert.Equal(t, "green", out[0])

	varType := &types.AnalysedType{
		Kind: types.KindVariant,
		Name: "shape",
		Cases: []types.VariantCase{
			{Name: "circle", Type: kind(types.KindF64)},
			{Name: "empty"},
		},
	}
	slots = []types.NamedTypeInfo{analysedSlot("s", varType)}
	dv, err = Serialize([]any{types.VariantValue{Case: "circle", Value: 3.0}}, slots)
	require.NoError(t, err)
	wire := dv.Elements[0].Value.(map[string]any)
	assert.Equal(t, "circle", wire["case"])
	assert.Equal(t, 3.0, wire["value"])
	out, err = Deserialize(dv, slots)
	require.NoError(t, err)
	assert.Equal(t, types.VariantValue{Case: "circle", Value: 3.0}, out[0])

	dv, err = Serialize([]any{types.VariantValue{Case: "empty"}}, slots)
	require.NoError(t, err)
	_, hasPayload := dv.Elements[0].Value.(map[string]any)["value"]
	assert.False(t, hasPayload)

	flagsType := &types.AnalysedType{Kind: types.KindFlags, Names: []string{"read", "write", "exec"}}
	slots = []types.NamedTypeInfo{analysedSlot("perm", flagsType)}
	dv, err = Serialize([]any{[]string{"read", "exec"}}, slots)
	require.NoError(t, err)
	out, err = Deserialize(dv, slots)
	require.NoError(t, err)
	assert.Equal(t, []string{"read", "exec"}, out[0])

	resType := &types.AnalysedType{Kind: types.KindResult, Ok: kind(types.KindString), Err: kind(types.KindS64)}
	slots = []types.NamedTypeInfo{analysedSlot("r", resType)}
	dv, err = Serialize([]any{types.ResultValue{Ok: true, Value: "done"}}, slots)
	require.NoError(t, err)
	out, err = Deserialize(dv, slots)
	require.NoError(t, err)
	assert.Equal(t, types.ResultValue{Ok: true, Value: "done"}, out[0])

	dv, err = Serialize([]any{types.ResultValue{Ok: false, Value: int64(404)}}, slots)
	require.NoError(t, err)
	out, err = Deserialize(dv, slots)
	require.NoError(t, err)
	assert.Equal(t, types.ResultValue{Ok: false, Value: int64(404)}, out[0])
}

func TestSerialize_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		typ     *types.AnalysedType
		in      any
		wantMsg string
	}{
		{"type mismatch", kind(types.KindBool), "yes", "expected bool, got string"},
		{"s8 overflow", kind(types.KindS8), int64(200), "out of range for s8"},
		{"u16 overflow", kind(types.KindU16), uint64(70000), "out of range for u16"},
		{"negative for unsigned", kind(types.KindU32), int64(-1), "expected u32"},
		{"char out of range", kind(types.KindChar), rune(0x110000), "out of range for char"},
		{
			"unknown record field",
			&types.AnalysedType{Kind: types.KindRecord, Name: "point", Fields: []types.NamedType{{Name: "x", Type: kind(types.KindF64)}}},
			map[string]any{"x": 1.0, "z": 2.0},
			`unknown field "z"`,
		},
		{
			"missing record field",
			&types.AnalysedType{Kind: types.KindRecord, Name: "point", Fields: []types.NamedType{{Name: "x", Type: kind(types.KindF64)}}},
			map[string]any{},
			`missing field "x"`,
		},
		{
			"unknown enum case",
			&types.AnalysedType{Kind: types.KindEnum, Name: "color", Names: []string{"red"}},
			"blue",
			`unknown case "blue"`,
		},
		{
			"unknown variant case",
			&types.AnalysedType{Kind: types.KindVariant, Name: "shape", Cases: []types.VariantCase{{Name: "empty"}}},
			types.VariantValue{Case: "square"},
			`unknown case "square"`,
		},
		{
			"payload on bare case",
			&types.AnalysedType{Kind: types.KindVariant, Name: "shape", Cases: []types.VariantCase{{Name: "empty"}}},
			types.VariantValue{Case: "empty", Value: 1.0},
			"carries no payload",
		},
		{
			"duplicate flag",
			&types.AnalysedType{Kind: types.KindFlags, Names: []string{"read"}},
			[]string{"read", "read"},
			`duplicate flag "read"`,
		},
		{
			"tuple arity",
			&types.AnalysedType{Kind: types.KindTuple, Items: []*types.AnalysedType{kind(types.KindBool)}},
			[]any{true, false},
			"2 elements given, 1 declared",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := Serialize([]any{tt.in}, []types.NamedTypeInfo{analysedSlot("v", tt.typ)})
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Contains(t, err.Error(), `argument "v"`)
		})
	}
}

func TestSerialize_Arity(t *testing.T) {
	t.Parallel()

	slots := []types.NamedTypeInfo{analysedSlot("a", kind(types.KindBool))}
	_, err := Serialize([]any{}, slots)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1 arguments, got 0")
}

func TestDeserialize_JSONBoundaryNumbers(t *testing.T) {
	t.Parallel()

	// Numbers that crossed a JSON boundary arrive as float64.
	slots := []types.NamedTypeInfo{analysedSlot("n", kind(types.KindS32))}
	dv := types.TupleValue(types.ComponentModelValue(float64(42)))
	out, err := Deserialize(dv, slots)
	require.NoError(t, err)
	assert.Equal(t, int32(42), out[0])

	dv = types.TupleValue(types.ComponentModelValue(float64(42.5)))
	_, err = Deserialize(dv, slots)
	require.Error(t, err, "non-integral floats never decode as integers")

	slots = []types.NamedTypeInfo{analysedSlot("n", kind(types.KindU8))}
	dv = types.TupleValue(types.ComponentModelValue(float64(-1)))
	_, err = Deserialize(dv, slots)
	require.Error(t, err)
}

func TestDeserialize_ShapeErrors(t *testing.T) {
	t.Parallel()

	slots := []types.NamedTypeInfo{analysedSlot("v", kind(types.KindString))}

	_, err := Deserialize(types.MultimodalValue(), slots)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a tuple value")

	_, err = Deserialize(types.TupleValue(), slots)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected 1 arguments, got 0")

	ref := types.InlineText("bonjour", "fr")
	_, err = Deserialize(types.TupleValue(types.UnstructuredTextValue(ref)), slots)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a component-model element")
}

func TestRoundTrip_Unstructured(t *testing.T) {
	t.Parallel()

	textInfo := types.TextInfo(types.TextDescriptor{Restrictions: []types.TextType{{LanguageCode: "en"}}})
	slots := []types.NamedTypeInfo{{Name: "doc", Info: textInfo}}

	ref := types.InlineText("hello", "en")
	dv, err := Serialize([]any{ref}, slots)
	require.NoError(t, err)
	assert.Equal(t, types.ElementValueUnstructuredText, dv.Elements[0].Kind)

	out, err := Deserialize(dv, slots)
	require.NoError(t, err)
	assert.Equal(t, ref, out[0])

	_, err = Serialize([]any{types.InlineText("hola", "es")}, slots)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `language "es" is not among the declared restrictions`)

	// Untagged payloads pass restriction checks.
	_, err = Serialize([]any{types.TextURL("https://example.com/doc.txt")}, slots)
	require.NoError(t, err)

	binInfo := types.BinaryInfo(types.BinaryDescriptor{Restrictions: []types.BinaryType{{MimeType: "image/png"}}})
	slots = []types.NamedTypeInfo{{Name: "img", Info: binInfo}}
	_, err = Serialize([]any{types.InlineBinary([]byte{1, 2}, "image/gif")}, slots)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `mime type "image/gif" is not among the declared restrictions`)
}

func TestRoundTrip_Multimodal(t *testing.T) {
	t.Parallel()

	info := types.MultimodalInfo(
		types.NamedTypeInfo{Name: "question", Info: types.AnalysedInfo(kind(types.KindString))},
		types.NamedTypeInfo{Name: "image", Info: types.BinaryInfo(types.BinaryDescriptor{})},
	)
	slots := []types.NamedTypeInfo{{Name: "prompt", Info: info}}

	img := types.InlineBinary([]byte{0x89, 0x50}, "image/png")
	in := []types.NamedValue{
		{Name: "question", Value: "what is this?"},
		{Name: "image", Value: img},
	}
	dv, err := Serialize([]any{in}, slots)
	require.NoError(t, err)
	assert.Equal(t, types.DataValueMultimodal, dv.Kind)
	require.Len(t, dv.Named, 2)
	assert.Equal(t, "question", dv.Named[0].Name)

	out, err := Deserialize(dv, slots)
	require.NoError(t, err)
	require.Len(t, out, 1)
	values := out[0].([]types.NamedValue)
	require.Len(t, values, 2)
	assert.Equal(t, "what is this?", values[0].Value)
	assert.Equal(t, img, values[1].Value)

	_, err = Serialize([]any{[]types.NamedValue{{Name: "audio", Value: "x"}}}, slots)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown multimodal member "audio"`)
}
