// Package core provides amount parsing for ledger input.
//
// Amounts are stored as float64 magnitudes; the sign of a record comes from
// its transaction type. Parsing is deliberately lenient: the ledger always
// prefers a degraded zero amount over a rejected write.
package core

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount converts a decimal string to a float64 amount.
//
// It accepts both dot (12.34) and comma (12,34) decimal separators. Anything
// that does not parse as a finite number degrades to 0 rather than failing:
//
//	ParseAmount("12.34") -> 12.34
//	ParseAmount("12,34") -> 12.34
//	ParseAmount("abc")   -> 0
//	ParseAmount("")      -> 0
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseAmountStrict converts a decimal string to a positive float64 amount,
// returning ErrInvalidAmount for anything unparseable or non-positive. Used
// at the form-validation boundary where zero would hide user mistakes.
func ParseAmountStrict(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	s = strings.ReplaceAll(s, ",", ".")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v <= 0 {
		return 0, ErrInvalidAmount
	}
	return v, nil
}
