// Package moneyx converts between user-entered currency amounts and the
// integer cents the backend works with.
package moneyx

import (
	"errors"
	"math"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// ErrInvalidAmount is returned for input that is not a plain amount with an
// optional two-digit fraction.
var ErrInvalidAmount = errors.New("invalid amount")

// amountPattern: optional minus, digits, optional "," or "." followed by
// exactly two digits.
var amountPattern = regexp.MustCompile(`^-?\d+([.,]\d{2})?$`)

var (
	hundred  = decimal.NewFromInt(100)
	minCents = decimal.NewFromInt(math.MinInt64)
	maxCents = decimal.NewFromInt(math.MaxInt64)
)

// ValidAmount reports whether s is an acceptable amount string.
func ValidAmount(s string) bool {
	return amountPattern.MatchString(s)
}

// ParseCents converts "12", "12.50" or "12,50" into cents. Surrounding
// whitespace is not accepted, the caller decides whether to trim. Amounts
// whose cents do not fit an int64 are invalid.
func ParseCents(s string) (int64, error) {
	if !ValidAmount(s) {
		return 0, ErrInvalidAmount
	}
	d, err := decimal.NewFromString(strings.Replace(s, ",", ".", 1))
	if err != nil {
		return 0, ErrInvalidAmount
	}
	cents := d.Mul(hundred)
	if !cents.IsInteger() || cents.LessThan(minCents) || cents.GreaterThan(maxCents) {
		return 0, ErrInvalidAmount
	}
	return cents.IntPart(), nil
}

// FormatCents renders cents as a decimal currency amount without trailing
// zeros: 2500 -> "25", -150 -> "-1.5", 1999 -> "19.99".
func FormatCents(cents int64) string {
	return decimal.New(cents, -2).String()
}

// FormatSigned is FormatCents with an explicit "+" for positive amounts.
// Zero carries no sign.
func FormatSigned(cents int64) string {
	s := FormatCents(cents)
	if cents > 0 {
		return "+" + s
	}
	return s
}
