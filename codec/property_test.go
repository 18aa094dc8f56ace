package codec

import (
	"encoding/json"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/BaSui01/agentwire/types"
)

func TestProperty_StringRoundTrip(t *testing.T) {
	slots := []types.NamedTypeInfo{analysedSlot("s", kind(types.KindString))}
	rapid.Check(t, func(rt *rapid.T) {
		in := rapid.String().Draw(rt, "value")

		dv, err := Serialize([]any{in}, slots)
		require.NoError(t, err)
		out, err := Deserialize(dv, slots)
		require.NoError(t, err)
		assert.Equal(t, in, out[0])
	})
}

func TestProperty_ListRoundTrip(t *testing.T) {
	listType := &types.AnalysedType{Kind: types.KindList, Elem: kind(types.KindS64)}
	slots := []types.NamedTypeInfo{analysedSlot("xs", listType)}
	rapid.Check(t, func(rt *rapid.T) {
		in := rapid.SliceOfN(rapid.Int64(), 0, 32).Draw(rt, "items")
		args := make([]any, len(in))
		for i, v := range in {
			args[i] = v
		}

		dv, err := Serialize([]any{args}, slots)
		require.NoError(t, err)
		out, err := Deserialize(dv, slots)
		require.NoError(t, err)

		decoded := out[0].([]any)
		require.Len(t, decoded, len(in))
		for i, v := range in {
			assert.Equal(t, v, decoded[i])
		}
	})
}

func TestProperty_RecordRoundTripSurvivesJSON(t *testing.T) {
	recType := &types.AnalysedType{
		Kind: types.KindRecord,
		Name: "sample",
		Fields: []types.NamedType{
			{Name: "id", Type: kind(types.KindU32)},
			{Name: "name", Type: kind(types.KindString)},
			{Name: "ratio", Type: kind(types.KindF64)},
		},
	}
	slots := []types.NamedTypeInfo{analysedSlot("r", recType)}
	rapid.Check(t, func(rt *rapid.T) {
		in := map[string]any{
			"id":    uint32(rapid.Uint32().Draw(rt, "id")),
			"name":  rapid.StringMatching(`[a-z]{0,20}`).Draw(rt, "name"),
			"ratio": rapid.Float64Range(-1e6, 1e6).Draw(rt, "ratio"),
		}

		dv, err := Serialize([]any{in}, slots)
		require.NoError(t, err)

		// The wire form is exchanged as JSON between hosts.
		data, err := json.Marshal(dv)
		require.NoError(t, err)
		var wire types.DataValue
		require.NoError(t, json.Unmarshal(data, &wire))

		out, err := Deserialize(wire, slots)
		require.NoError(t, err)
		decoded := out[0].(map[string]any)
		assert.Equal(t, in["id"], decoded["id"])
		assert.Equal(t, in["name"], decoded["name"])
		assert.InDelta(t, in["ratio"].(float64), decoded["ratio"].(float64), 1e-9)
	})
}

func TestProperty_NumericRoundTrips(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	roundTrip := func(in any, t *types.AnalysedType) (any, error) {
		dv, err := Serialize([]any{in}, []types.NamedTypeInfo{analysedSlot("n", t)})
		if err != nil {
			return nil, err
		}
		out, err := Deserialize(dv, []types.NamedTypeInfo{analysedSlot("n", t)})
		if err != nil {
			return nil, err
		}
		return out[0], nil
	}

	properties.Property("s8 survives the wire", prop.ForAll(
		func(n int8) bool {
			out, err := roundTrip(n, kind(types.KindS8))
			return err == nil && out == n
		},
		gen.Int8(),
	))

	properties.Property("s64 survives the wire", prop.ForAll(
		func(n int64) bool {
			out, err := roundTrip(n, kind(types.KindS64))
			return err == nil && out == n
		},
		gen.Int64(),
	))

	properties.Property("u16 survives the wire", prop.ForAll(
		func(n uint16) bool {
			out, err := roundTrip(n, kind(types.KindU16))
			return err == nil && out == n
		},
		gen.UInt16(),
	))

	properties.Property("u64 survives the wire", prop.ForAll(
		func(n uint64) bool {
			out, err := roundTrip(n, kind(types.KindU64))
			return err == nil && out == n
		},
		gen.UInt64(),
	))

	properties.Property("f64 survives the wire", prop.ForAll(
		func(f float64) bool {
			out, err := roundTrip(f, kind(types.KindF64))
			return err == nil && out == f
		},
		gen.Float64Range(-1e12, 1e12),
	))

	properties.Property("out-of-range values are rejected for s8", prop.ForAll(
		func(n int64) bool {
			_, err := roundTrip(n, kind(types.KindS8))
			inRange := n >= -128 && n <= 127
			return (err == nil) == inRange
		},
		gen.Int64Range(-1000, 1000),
	))

	properties.TestingRun(t)
}
