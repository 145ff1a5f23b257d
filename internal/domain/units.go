package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// ParseUnits scales a decimal literal by 10^decimals using integer arithmetic only.
// "1000000" with 18 decimals yields 1000000 * 10^18 exactly.
func ParseUnits(value string, decimals uint8) (*big.Int, error) {
	s := strings.TrimSpace(value)
	if s == "" {
		return nil, fmt.Errorf("%w: empty value", ErrInvalidAmount)
	}

	switch s[0] {
	case '-':
		return nil, fmt.Errorf("%w: %q is negative", ErrInvalidAmount, value)
	case '+':
		s = s[1:]
	}

	whole, fraction, _ := strings.Cut(s, ".")
	if whole == "" && fraction == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	if !isDigits(whole) || !isDigits(fraction) {
		return nil, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidAmount, value)
	}

	// Trailing zeros never change the value, so they don't count against precision.
	fraction = strings.TrimRight(fraction, "0")
	if len(fraction) > int(decimals) {
		return nil, fmt.Errorf("%w: %q has more than %d fractional digits", ErrInvalidAmount, value, decimals)
	}
	fraction += strings.Repeat("0", int(decimals)-len(fraction))

	digits := strings.TrimLeft(whole+fraction, "0")
	if digits == "" {
		return new(big.Int), nil
	}

	amount, ok := new(big.Int).SetString(digits, 10)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAmount, value)
	}
	return amount, nil
}

// FormatUnits renders a fixed-point amount as a decimal string, dropping trailing zeros.
func FormatUnits(amount *big.Int, decimals uint8) string {
	if amount == nil {
		return "0"
	}

	digits := new(big.Int).Abs(amount).String()
	sign := ""
	if amount.Sign() < 0 {
		sign = "-"
	}

	if decimals == 0 {
		return sign + digits
	}

	if len(digits) <= int(decimals) {
		digits = strings.Repeat("0", int(decimals)-len(digits)+1) + digits
	}

	split := len(digits) - int(decimals)
	whole, fraction := digits[:split], strings.TrimRight(digits[split:], "0")
	if fraction == "" {
		return sign + whole
	}
	return sign + whole + "." + fraction
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
