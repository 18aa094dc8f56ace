package codec

import (
	"encoding/base64"
	"encoding/json"
	"fmt"

	"github.com/BaSui01/agentwire/types"
)

// StringifyArgs renders every element of a constructor DataValue as a
// deterministic string, in order. The rendering has no hidden state: equal
// inputs always produce equal output, which makes it usable as a routing key.
func StringifyArgs(value types.DataValue) []string {
	var out []string
	switch value.Kind {
	case types.DataValueTuple:
		for _, ev := range value.Elements {
			out = append(out, StringifyElement(ev))
		}
	case types.DataValueMultimodal:
		for _, ne := range value.Named {
			out = append(out, fmt.Sprintf("%s:%s", ne.Name, StringifyElement(ne.Value)))
		}
	}
	return out
}

// StringifyElement renders one element value deterministically. Component
// model values use compact JSON (Go serializes map keys in sorted order);
// unstructured payloads use their URL or inline data.
func StringifyElement(ev types.ElementValue) string {
	switch ev.Kind {
	case types.ElementValueComponentModel:
		data, err := json.Marshal(ev.Value)
		if err != nil {
			return fmt.Sprintf("%v", ev.Value)
		}
		return string(data)
	case types.ElementValueUnstructuredText:
		if ev.Text.URL != "" {
			return ev.Text.URL
		}
		return ev.Text.Data
	case types.ElementValueUnstructuredBinary:
		if ev.Binary.URL != "" {
			return ev.Binary.URL
		}
		return base64.StdEncoding.EncodeToString(ev.Binary.Data)
	}
	return ""
}
