// Package money converts and formats menu prices. Prices are stored in BGN;
// the EUR amount is derived with the fixed conversion rate.
package money

import (
	"math"
	"strconv"
	"strings"
)

// Rate is the fixed BGN per EUR conversion rate.
const Rate = 1.95583

// Converter derives EUR amounts with a configurable rate.
type Converter struct {
	Rate float64
}

// ToEUR rounds to whole cents.
func (c Converter) ToEUR(bgn float64) float64 {
	rate := c.Rate
	if rate <= 0 {
		rate = Rate
	}
	return math.Round(bgn/rate*100) / 100
}

// ToEUR converts with the fixed rate: ToEUR(10) == 5.11.
func ToEUR(bgn float64) float64 {
	return Converter{Rate: Rate}.ToEUR(bgn)
}

// FormatBGN renders 10 as "10,00 лв.".
func FormatBGN(amount float64) string {
	return formatAmount(amount) + " лв."
}

// FormatEUR renders 5.11 as "5,11 €".
func FormatEUR(amount float64) string {
	return formatAmount(amount) + " €"
}

// formatAmount writes two decimals with a decimal comma. Integer parts of
// five or more digits are grouped by three with spaces, as bg-BG does.
func formatAmount(amount float64) string {
	s := strconv.FormatFloat(math.Abs(amount), 'f', 2, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	if len(intPart) >= 5 {
		var b strings.Builder
		lead := len(intPart) % 3
		if lead > 0 {
			b.WriteString(intPart[:lead])
		}
		for i := lead; i < len(intPart); i += 3 {
			if b.Len() > 0 {
				b.WriteByte(' ')
			}
			b.WriteString(intPart[i : i+3])
		}
		intPart = b.String()
	}

	out := intPart + "," + frac
	if amount < 0 && s != "0.00" {
		out = "-" + out
	}
	return out
}
