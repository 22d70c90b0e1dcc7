package conv

import (
	"fmt"
	"strings"
)

// PaddingMode selects how the border of the input is treated.
//
// The numeric values are part of the external contract: 0 is VALID, 1 is SAME.
type PaddingMode int

const (
	// Valid uses only windows that fit entirely inside the input. Output shrinks.
	Valid PaddingMode = 0
	// Same pads the input with implicit zeros so that output = ceil(input / stride).
	Same PaddingMode = 1
)

// String returns "VALID", "SAME" or "PaddingMode(n)".
func (m PaddingMode) String() string {
	switch m {
	case Valid:
		return "VALID"
	case Same:
		return "SAME"
	default:
		return fmt.Sprintf("PaddingMode(%d)", int(m))
	}
}

// IsValid reports whether m is a known padding mode.
func (m PaddingMode) IsValid() bool {
	return m == Valid || m == Same
}

// ParsePaddingMode parses "valid", "same" (any case) or the numeric codes "0" and "1".
func ParsePaddingMode(s string) (PaddingMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "valid", "0":
		return Valid, nil
	case "same", "1":
		return Same, nil
	default:
		return 0, &ConfigError{
			Field:   "padding_mode",
			Details: fmt.Sprintf("unknown padding mode %q (want valid|same|0|1)", s),
		}
	}
}

// OutputSize returns the output length along one axis.
//
//	VALID: floor((inputDim - kernelSize) / stride) + 1
//	SAME:  ceil(inputDim / stride)
//
// The result may be zero or negative (for example VALID with inputDim < kernelSize);
// callers must reject non-positive sizes.
func OutputSize(inputDim, kernelSize, stride int, mode PaddingMode) int {
	if mode == Same {
		return ceilDiv(inputDim, stride)
	}
	return floorDiv(inputDim-kernelSize, stride) + 1
}

// PaddingAmount returns the top/left zero padding for SAME mode:
//
//	max(0, floor(((outputDim-1)*stride + kernelSize - inputDim) / 2))
//
// Any remaining padding on the bottom/right is implicit: reads past the end of the
// input are treated as zero during accumulation.
func PaddingAmount(inputDim, outputDim, kernelSize, stride int) int {
	return max(0, floorDiv((outputDim-1)*stride+kernelSize-inputDim, 2))
}

// floorDiv divides rounding toward negative infinity. b must be positive.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// ceilDiv divides rounding toward positive infinity. b must be positive.
func ceilDiv(a, b int) int {
	return -floorDiv(-a, b)
}
