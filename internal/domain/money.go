package domain

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Currencies whose minor unit is the major unit (no decimal subdivision).
var zeroExponentCurrencies = map[string]struct{}{
	"BIF": {}, "CLP": {}, "DJF": {}, "GNF": {}, "ISK": {}, "JPY": {},
	"KMF": {}, "KRW": {}, "PYG": {}, "RWF": {}, "UGX": {}, "VND": {},
	"VUV": {}, "XAF": {}, "XOF": {}, "XPF": {},
}

// Currencies subdivided into thousandths.
var threeExponentCurrencies = map[string]struct{}{
	"BHD": {}, "IQD": {}, "JOD": {}, "KWD": {}, "LYD": {}, "OMR": {},
	"TND": {},
}

// CurrencyExponent returns the number of minor-unit decimal places for a
// currency code. Unknown codes default to two, the common case.
func CurrencyExponent(code string) int32 {
	upper := strings.ToUpper(code)
	if _, ok := zeroExponentCurrencies[upper]; ok {
		return 0
	}
	if _, ok := threeExponentCurrencies[upper]; ok {
		return 3
	}
	return 2
}

// FormatAmount renders an amount in minor units as a major-unit figure with
// its currency code, e.g. 1050 USD -> "10.50 USD", -300 JPY -> "-300 JPY".
// Display only; amounts stay int64 minor units everywhere on the wire.
func FormatAmount(minor int64, currency string) string {
	exp := CurrencyExponent(currency)
	return decimal.New(minor, -exp).StringFixed(exp) + " " + currency
}
