// Package core provides the domain types of the food gashapon:
// modes, intervals, records, money and week-window math.
//
// This file contains money parsing and handling. Amounts are kept in
// tenths of a currency unit, matching the one fractional digit of
// precision the record store guarantees.
package core

import (
	"math"
	"strconv"
	"strings"
	"unicode"
)

// Money is an amount in tenths of a currency unit. Integer tenths keep
// week aggregation exact; floats only appear at the display and storage
// boundaries.
type Money struct {
	Tenths int64
}

// ParseDecimalToTenths converts a decimal string to tenths with half-up
// rounding on the second decimal place.
//
// It accepts both dot (12.3) and comma (12,3) separators. Negative values
// are rejected; zero is allowed (a free meal is a valid record).
//
// Examples:
//
//	ParseDecimalToTenths("12.3")  -> 123, nil
//	ParseDecimalToTenths("12,3")  -> 123, nil
//	ParseDecimalToTenths("12.34") -> 123, nil (rounds down)
//	ParseDecimalToTenths("12.35") -> 124, nil (rounds up)
func ParseDecimalToTenths(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	// Normalize decimal comma to dot
	s = strings.ReplaceAll(s, ",", ".")
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		return 0, ErrInvalidAmount
	}
	parts := strings.Split(s, ".")
	if len(parts) > 2 {
		return 0, ErrInvalidAmount
	}
	intPart := parts[0]
	fracPart := ""
	if len(parts) == 2 {
		fracPart = parts[1]
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	for _, r := range fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}
	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	// Prevent overflow when multiplying by 10
	const maxSafeInt64 = (1<<63 - 1) / 10
	if iv > maxSafeInt64 {
		return 0, ErrInvalidAmount
	}
	// First fractional digit is kept; half-up rounding on the second
	var fracTenths int64 = 0
	if len(fracPart) > 0 {
		fracTenths = int64(fracPart[0] - '0')
		if len(fracPart) > 1 && fracPart[1] >= '5' {
			fracTenths++
		}
	}
	return iv*10 + fracTenths, nil
}

// MoneyFromUnits converts a float amount (as stored in the REAL column or
// received over the API) to Money, rounding to the nearest tenth.
func MoneyFromUnits(v float64) Money {
	return Money{Tenths: int64(math.Round(v * 10))}
}

// Units returns the amount in currency units for display and storage.
// Use tenths for calculations to avoid floating-point drift.
func (m Money) Units() float64 {
	return float64(m.Tenths) / 10.0
}

// String formats the amount with one fractional digit.
func (m Money) String() string {
	return strconv.FormatFloat(m.Units(), 'f', 1, 64)
}

// MarshalJSON encodes the amount as a decimal number with one fractional
// digit, which is how it crosses the API and sits in the REAL column.
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.String()), nil
}

// UnmarshalJSON accepts either a JSON number or a quoted decimal string.
func (m *Money) UnmarshalJSON(data []byte) error {
	s := strings.Trim(strings.TrimSpace(string(data)), `"`)
	t, err := ParseDecimalToTenths(s)
	if err != nil {
		return err
	}
	m.Tenths = t
	return nil
}
