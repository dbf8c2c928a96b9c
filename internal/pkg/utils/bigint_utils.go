package utils

import (
	"math/big"
	"strings"
)

// FormatBigInt converts a big.Int value to a human-readable decimal string,
// dividing by 10^decimals. Trailing zeros are trimmed.
// Example: amount=1234500000000000000, decimals=18 => "1.2345"
func FormatBigInt(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}
	if decimals == 0 {
		return amount.String()
	}

	divisor := new(big.Float).SetInt(new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(decimals)), nil))
	value := new(big.Float).Quo(new(big.Float).SetInt(amount), divisor)
	return trimDecimal(value.Text('f', int(decimals)))
}

const gweiDecimals = 9

// FormatGwei renders a wei amount in gwei with at most precision decimals.
func FormatGwei(wei *big.Int, precision int) string {
	exact := FormatBigInt(wei, gweiDecimals)
	value, ok := new(big.Float).SetPrec(128).SetString(exact)
	if !ok {
		return exact
	}
	return trimDecimal(value.Text('f', precision))
}

func trimDecimal(s string) string {
	if strings.Contains(s, ".") {
		s = strings.TrimRight(s, "0")
		s = strings.TrimRight(s, ".")
	}
	if strings.HasPrefix(s, ".") {
		s = "0" + s
	}
	if s == "" || s == "-0" {
		return "0"
	}
	return s
}
