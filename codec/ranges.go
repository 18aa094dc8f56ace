package codec

import (
	"fmt"
	"math"

	"github.com/BaSui01/agentwire/types"
)

func checkSignedRange(n int64, kind types.WireKind) error {
	var lo, hi int64
	switch kind {
	case types.KindS8:
		lo, hi = math.MinInt8, math.MaxInt8
	case types.KindS16:
		lo, hi = math.MinInt16, math.MaxInt16
	case types.KindS32:
		lo, hi = math.MinInt32, math.MaxInt32
	case types.KindChar:
		lo, hi = 0, 0x10FFFF
	default:
		return nil
	}
	if n < lo || n > hi {
		return fmt.Errorf("value %d out of range for %s", n, kind)
	}
	return nil
}

func checkUnsignedRange(n uint64, kind types.WireKind) error {
	var hi uint64
	switch kind {
	case types.KindU8:
		hi = math.MaxUint8
	case types.KindU16:
		hi = math.MaxUint16
	case types.KindU32:
		hi = math.MaxUint32
	default:
		return nil
	}
	if n > hi {
		return fmt.Errorf("value %d out of range for %s", n, kind)
	}
	return nil
}
