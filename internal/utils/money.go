package utils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Money represents a monetary value in the smallest currency unit (cents).
// Every amount in the dataset carries exactly two decimals, so integer cents
// keep balances exact across long transaction streams.
type Money int64

// Currency describes how to display amounts in a settlement currency.
type Currency struct {
	Code         string
	Symbol       string
	SymbolFirst  bool
	ThousandsSep string
	DecimalSep   string
}

// Currencies covers the settlement currencies of the supported countries.
var Currencies = map[string]Currency{
	"USD": {Code: "USD", Symbol: "$", SymbolFirst: true, ThousandsSep: ",", DecimalSep: "."},
	"EUR": {Code: "EUR", Symbol: "€", SymbolFirst: true, ThousandsSep: ".", DecimalSep: ","},
	"GBP": {Code: "GBP", Symbol: "£", SymbolFirst: true, ThousandsSep: ",", DecimalSep: "."},
	"SEK": {Code: "SEK", Symbol: "kr", SymbolFirst: false, ThousandsSep: " ", DecimalSep: ","},
}

// DefaultCurrency is used when a currency code is not found
var DefaultCurrency = Currencies["USD"]

// Dollars creates a Money value from whole major units
func Dollars(dollars int64) Money {
	return Money(dollars * 100)
}

// FromFloat creates a Money value from a float64, rounding half away from
// zero to the nearest cent.
func FromFloat(amount float64) Money {
	return FromDecimal(decimal.NewFromFloat(amount))
}

// FromDecimal rounds d to the cent.
func FromDecimal(d decimal.Decimal) Money {
	return Money(d.Round(2).Shift(2).IntPart())
}

// Decimal returns the value as an exact decimal in major units.
func (m Money) Decimal() decimal.Decimal {
	return decimal.New(int64(m), -2)
}

// ToDollars returns the value as a float64 (for display and sampling only)
func (m Money) ToDollars() float64 {
	return float64(m) / 100
}

// MulRate multiplies by a fractional rate and rounds to the cent.
func (m Money) MulRate(rate float64) Money {
	return FromDecimal(m.Decimal().Mul(decimal.NewFromFloat(rate)))
}

// DivInt divides by n and rounds to the cent. Used for monthly figures
// of annual plans.
func (m Money) DivInt(n int64) Money {
	if n == 0 {
		return m
	}
	return FromDecimal(m.Decimal().Div(decimal.NewFromInt(n)))
}

// Max returns the larger of two Money values
func (m Money) Max(other Money) Money {
	if m > other {
		return m
	}
	return other
}

// String returns the plain two-decimal representation (e.g., "-123.45")
func (m Money) String() string {
	return m.Decimal().StringFixed(2)
}

// Format formats the value for display in the given currency
func (m Money) Format(currencyCode string) string {
	currency, ok := Currencies[currencyCode]
	if !ok {
		currency = DefaultCurrency
	}

	negative := m < 0
	if negative {
		m = -m
	}

	result := formatWithSeparator(int64(m)/100, currency.ThousandsSep) +
		currency.DecimalSep + fmt.Sprintf("%02d", int64(m)%100)

	if currency.SymbolFirst {
		result = currency.Symbol + result
	} else {
		result = result + " " + currency.Symbol
	}

	if negative {
		result = "-" + result
	}
	return result
}

func formatWithSeparator(n int64, sep string) string {
	str := strconv.FormatInt(n, 10)
	if len(str) <= 3 || sep == "" {
		return str
	}

	var result strings.Builder
	startOffset := len(str) % 3
	if startOffset == 0 {
		startOffset = 3
	}

	result.WriteString(str[:startOffset])
	for i := startOffset; i < len(str); i += 3 {
		result.WriteString(sep)
		result.WriteString(str[i : i+3])
	}

	return result.String()
}
