// Package conv provides checked narrowing conversions for table building.
//
// The frozen tables store state numbers as uint16 and character indices as
// uint8. Overflow of either is a construction-time defect, so these helpers
// panic rather than return errors; the freezer validates the counts up front
// and only then narrows.
package conv

import "math"

// IntToUint16 converts n to uint16, panicking if it does not fit.
func IntToUint16(n int) uint16 {
	if n < 0 || n > math.MaxUint16 {
		panic("conv: int value out of uint16 range")
	}
	return uint16(n)
}

// IntToUint8 converts n to uint8, panicking if it does not fit.
func IntToUint8(n int) uint8 {
	if n < 0 || n > math.MaxUint8 {
		panic("conv: int value out of uint8 range")
	}
	return uint8(n)
}

// IntToUint32 converts n to uint32, panicking if it does not fit.
func IntToUint32(n int) uint32 {
	if n < 0 || uint64(n) > math.MaxUint32 {
		panic("conv: int value out of uint32 range")
	}
	return uint32(n)
}
