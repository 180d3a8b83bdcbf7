package engine

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Display formatting contract. Rounding happens here and only here;
// aggregation keeps full float precision.

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency renders a locale-grouped, $-prefixed amount with a fixed
// number of decimals, e.g. FormatCurrency(1234.5, 2) -> "$1,234.50".
func FormatCurrency(v float64, decimals int) string {
	if v < 0 {
		return "-" + FormatCurrency(-v, decimals)
	}
	return "$" + printer.Sprintf("%v", number.Decimal(v, number.Scale(decimals)))
}

// FormatNumber renders a locale-grouped integer, e.g. 12345 -> "12,345".
func FormatNumber(n int) string {
	return printer.Sprintf("%v", number.Decimal(n))
}

// FormatCompactNumber abbreviates with K/M/B/T suffixes and at most one
// fractional digit, e.g. 12340 -> "12.3K".
func FormatCompactNumber(v float64) string {
	abs := math.Abs(v)
	switch {
	case abs >= 1e12:
		return compactPart(v/1e12) + "T"
	case abs >= 1e9:
		return compactPart(v/1e9) + "B"
	case abs >= 1e6:
		return compactPart(v/1e6) + "M"
	case abs >= 1e3:
		return compactPart(v/1e3) + "K"
	default:
		return compactPart(v)
	}
}

// FormatCompactCurrency is the compact notation with a $ prefix.
func FormatCompactCurrency(v float64) string {
	return "$" + FormatCompactNumber(v)
}

// FormatPercent renders a fixed one-decimal percentage, e.g. "12.5%".
func FormatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64) + "%"
}

// FormatDate renders a day as MM/DD/YYYY; unparseable input passes through.
func FormatDate(date string) string {
	d, ok := ParseDay(date)
	if !ok {
		return date
	}
	return d.Format("01/02/2006")
}

// compactPart rounds to one fractional digit and drops it when zero.
func compactPart(v float64) string {
	return strconv.FormatFloat(math.Round(v*10)/10, 'f', -1, 64)
}
