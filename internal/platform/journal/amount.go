package journal

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ParseAmount parses a free-form amount string leniently: leading/trailing
// whitespace is ignored, a valid numeric prefix is honored even when followed
// by stray text, and anything else (including empty input) parses as zero.
// Sums over these values use exact decimal arithmetic.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}

	prefix := numericPrefix(s)
	if prefix == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(prefix)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// numericPrefix returns the longest prefix of s that forms a plain decimal
// number: optional sign, digits, at most one decimal point.
func numericPrefix(s string) string {
	end := 0
	seenDigit := false
	seenDot := false
	for i, r := range s {
		switch {
		case (r == '-' || r == '+') && i == 0:
		case r >= '0' && r <= '9':
			seenDigit = true
			end = i + 1
		case r == '.' && !seenDot:
			seenDot = true
		default:
			if !seenDigit {
				return ""
			}
			return s[:end]
		}
	}
	if !seenDigit {
		return ""
	}
	return s[:end]
}
