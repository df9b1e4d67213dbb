package cgd

import (
	"strings"

	"github.com/shopspring/decimal"
)

var amountReplacer = strings.NewReplacer(".", "", ",", ".", " ", "", "\u00a0", "")

// parseEuropeanAmount parses amounts such as "1.234,56" or "-588,74".
func parseEuropeanAmount(s string) (decimal.Decimal, error) {
	return decimal.NewFromString(amountReplacer.Replace(s))
}

// readAmount reports false for blank, unparsable or zero cells.
func readAmount(row []string, idx int) (decimal.Decimal, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return decimal.Zero, false
	}

	d, err := parseEuropeanAmount(s)
	if err != nil || d.IsZero() {
		return decimal.Zero, false
	}

	return d, true
}
