// Package money provides integer-only arithmetic over amounts expressed in a
// currency's minor unit (cents). Amounts are never represented as floating
// point; every division distributes its remainder explicitly so that sums
// stay exact.
package money

import (
	"strconv"
	"strings"
	"unicode"
)

// Amount is a non-negative number of minor currency units (e.g. cents).
// It is a distinct type so identifiers and money can never be mixed in
// arithmetic by accident.
type Amount int64

// DefaultCeiling is the largest amount accepted from raw input before the
// extra-digit correction kicks in (ten digits of minor units).
const DefaultCeiling Amount = 9_999_999_999

// ParseAmount converts raw user input to an Amount by stripping every
// non-digit rune and parsing what remains. Empty or unparsable input is 0.
//
// Examples:
//
//	ParseAmount("12.34") -> 1234
//	ParseAmount("1,000") -> 1000
//	ParseAmount("abc")   -> 0
func ParseAmount(raw string) Amount {
	digits := keepDigits(raw)
	if digits == "" {
		return 0
	}
	v, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0
	}
	return Amount(v)
}

// Clamp corrects amounts above ceiling by floor-dividing by 10. This assumes
// the user typed one digit too many rather than rejecting the input.
func Clamp(a, ceiling Amount) Amount {
	if a > ceiling {
		return a / 10
	}
	return a
}

// ParsePercent converts raw user input to an integer percentage. Non-digit
// runes are stripped; unparsable input is 0. A value above 100 receives the
// same extra-digit correction as Clamp, so "990" is read as 99. Values that
// still exceed 100 after correction are returned as-is and must be rejected
// by the caller.
func ParsePercent(raw string) int {
	digits := keepDigits(raw)
	if digits == "" {
		return 0
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0
	}
	if v > 100 {
		v /= 10
	}
	if v < 0 {
		return 0
	}
	return v
}

// SplitEvenly divides total into n shares. It returns the base share and the
// number of shares that must receive one extra minor unit so the shares sum
// to total exactly. n must be positive.
func SplitEvenly(total Amount, n int) (base Amount, extra int) {
	base = total / Amount(n)
	extra = int(total % Amount(n))
	return base, extra
}

// PercentAmount returns percent% of total, rounded half up. The Shares
// strategy's validity depends on this exact rounding mode.
func PercentAmount(total Amount, percent int) Amount {
	return (total*Amount(percent) + 50) / 100
}

func keepDigits(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
