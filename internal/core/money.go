// Package core holds the budget domain model and the pure aggregation
// functions computed over it.
//
// This file parses monetary amounts from user input and converts
// between cents and dollar representations.
package core

import (
	"strconv"
	"strings"
	"unicode"
)

// ParseDecimalToCents converts a decimal dollar string to cents with
// half-up rounding on the third decimal place.
//
// A leading "$" and thousands-separator commas are stripped, so
// "1,200.50" and "$45" both parse. The result must be strictly
// positive; zero, negative, and malformed inputs are rejected.
//
// Examples:
//
//	ParseDecimalToCents("12.34")    -> 1234, nil
//	ParseDecimalToCents("$1,200")   -> 120000, nil
//	ParseDecimalToCents("12.345")   -> 1234, nil (rounds down)
//	ParseDecimalToCents("12.346")   -> 1235, nil (rounds up)
func ParseDecimalToCents(s string) (int64, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if strings.HasPrefix(s, "+") || strings.HasPrefix(s, "-") {
		// Signs are rejected outright; refunds are not modeled as
		// negative transactions.
		return 0, ErrInvalidAmount
	}

	intPart, fracPart, found := strings.Cut(s, ".")
	if found && strings.Contains(fracPart, ".") {
		return 0, ErrInvalidAmount
	}
	if intPart == "" {
		intPart = "0"
	}
	for _, r := range intPart + fracPart {
		if !unicode.IsDigit(r) {
			return 0, ErrInvalidAmount
		}
	}

	iv, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	const maxSafe = (1<<63 - 1) / 100
	if iv > maxSafe {
		return 0, ErrInvalidAmount
	}

	var fracCents int64
	if len(fracPart) > 0 {
		fracCents = int64(fracPart[0]-'0') * 10
		if len(fracPart) > 1 {
			fracCents += int64(fracPart[1] - '0')
			if len(fracPart) > 2 && fracPart[2] >= '5' {
				fracCents++
			}
		}
	}

	cents := iv*100 + fracCents
	if cents <= 0 {
		return 0, ErrInvalidAmount
	}
	return cents, nil
}

// Dollars returns the dollar value as a float64 for display purposes.
// Use cents for calculations to avoid floating-point drift.
func (m Money) Dollars() float64 {
	return float64(m.Cents) / 100.0
}

// CentsFromDollars converts a backend decimal amount (dollars) into
// cents with half-up rounding. Store adapters use it when the backing
// store keeps amounts as numeric columns.
func CentsFromDollars(dollars float64) int64 {
	if dollars >= 0 {
		return int64(dollars*100 + 0.5)
	}
	return -int64(-dollars*100 + 0.5)
}
