// Package safe provides range-checked integer conversions.
package safe

import (
	"fmt"
	"math"
)

// Integer is any builtin integer type.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 | ~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

// Uint32 converts v to uint32, failing on negatives and values above math.MaxUint32.
func Uint32[T Integer](v T) (uint32, error) {
	if v < 0 || uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(v), nil
}

// Uint64 converts v to uint64, failing on negatives.
func Uint64[T Integer](v T) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return uint64(v), nil
}

// Int converts v to int, failing when it does not fit.
func Int[T Integer](v T) (int, error) {
	if v >= 0 && uint64(v) > math.MaxInt {
		return 0, fmt.Errorf("value %d out of int range", v)
	}
	if v < 0 && int64(v) < math.MinInt {
		return 0, fmt.Errorf("value %d out of int range", v)
	}
	return int(v), nil
}

// Int64 converts v to int64, failing on values above math.MaxInt64.
func Int64[T Integer](v T) (int64, error) {
	if v >= 0 && uint64(v) > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range", v)
	}
	return int64(v), nil
}
