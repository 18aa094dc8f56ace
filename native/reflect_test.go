package native

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOf_Primitives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want Kind
	}{
		{"bool", true, KindBool},
		{"int8", int8(0), KindS8},
		{"int16", int16(0), KindS16},
		{"int32", int32(0), KindS32},
		{"int64", int64(0), KindS64},
		{"int", 0, KindS64},
		{"uint8", uint8(0), KindU8},
		{"uint32", uint32(0), KindU32},
		{"uint64", uint64(0), KindU64},
		{"float32", float32(0), KindF32},
		{"float64", float64(0), KindF64},
		{"string", "", KindString},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := Of(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.Kind)
		})
	}
}

func TestOf_Composites(t *testing.T) {
	t.Parallel()

	list, err := Of([]string{})
	require.NoError(t, err)
	assert.Equal(t, KindList, list.Kind)
	assert.Equal(t, KindString, list.Elem.Kind)

	opt, err := Of((*int64)(nil))
	require.NoError(t, err)
	assert.Equal(t, KindOption, opt.Kind)
	assert.Equal(t, KindS64, opt.Elem.Kind)

	arr, err := Of([3]float64{})
	require.NoError(t, err)
	assert.Equal(t, KindTuple, arr.Kind)
	require.Len(t, arr.Items, 3)
	assert.Equal(t, KindF64, arr.Items[0].Kind)
}

func TestOf_Struct(t *testing.T) {
	t.Parallel()

	type WeatherReport struct {
		CityName    string
		Temperature float64
		WindSpeed   *float64
		hidden      int
	}

	_ = WeatherReport{hidden: 0}

	got, err := Of(WeatherReport{})
	require.NoError(t, err)
	assert.Equal(t, KindRecord, got.Kind)
	assert.Equal(t, "weather-report", got.Name)
	require.Len(t, got.Fields, 3, "unexported fields are skipped")
	assert.Equal(t, "city-name", got.Fields[0].Name)
	assert.Equal(t, KindString, got.Fields[0].Type.Kind)
	assert.Equal(t, "temperature", got.Fields[1].Name)
	assert.Equal(t, "wind-speed", got.Fields[2].Name)
	assert.Equal(t, KindOption, got.Fields[2].Type.Kind)
}

func TestOf_Unsupported(t *testing.T) {
	t.Parallel()

	_, err := Of(map[string]int{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported Go type")

	_, err = Of(make(chan int))
	require.Error(t, err)
}

func TestOf_NestedStruct(t *testing.T) {
	t.Parallel()

	type Inner struct {
		Value int32
	}
	type Outer struct {
		Inner Inner
		Tags  []string
	}

	got, err := Of(Outer{})
	require.NoError(t, err)
	require.Len(t, got.Fields, 2)
	assert.Equal(t, KindRecord, got.Fields[0].Type.Kind)
	assert.Equal(t, "inner", got.Fields[0].Type.Name)
	assert.Equal(t, KindList, got.Fields[1].Type.Kind)
}
