package utils

import (
	"strconv"
	"strings"

	dexscreener_entity "spike_detector/internal/entity"
)

// SafeDerefFloat64 safely dereferences the liquidity pointer and reads one field via getter.
func SafeDerefFloat64(liquidity *dexscreener_entity.DEXLiquidity, getter func(dexscreener_entity.DEXLiquidity) float64) float64 {
	if liquidity == nil {
		return 0.0
	}
	return getter(*liquidity)
}

// ParseFloatOrZero parses a decimal string, returning 0 for empty or malformed input.
func ParseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// LowerSet builds a lookup set of trimmed, lower-cased non-empty values.
func LowerSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		item = strings.ToLower(strings.TrimSpace(item))
		if item != "" {
			set[item] = struct{}{}
		}
	}
	return set
}
