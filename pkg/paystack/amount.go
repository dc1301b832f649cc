package paystack

import "github.com/shopspring/decimal"

const minorUnitsExp = -2

// ToMinor converts a whole naira amount to kobo.
func ToMinor(major int64) int64 {
	return decimal.NewFromInt(major).Shift(-minorUnitsExp).IntPart()
}

// ToMinorDecimal converts a naira amount that may carry kobo back to kobo.
func ToMinorDecimal(major decimal.Decimal) int64 {
	return major.Shift(-minorUnitsExp).Round(0).IntPart()
}

// ToMajor converts kobo to naira without losing fractions.
func ToMajor(minor int64) decimal.Decimal {
	return decimal.New(minor, minorUnitsExp)
}
