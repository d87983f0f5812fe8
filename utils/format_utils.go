package utils

import (
	"fmt"
	"math"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// FormatPercent renders a percentage with one decimal, e.g. "12.3%".
func FormatPercent(v float64) string {
	return decimal.NewFromFloat(sanitize(v)).StringFixed(1) + "%"
}

// FormatCurrency renders an amount as whole dollars with thousands
// separators, e.g. "$1,235" or "-$40".
func FormatCurrency(v float64) string {
	rounded := decimal.NewFromFloat(sanitize(v)).Round(0).IntPart()
	if rounded < 0 {
		return "-$" + humanize.Comma(-rounded)
	}
	return "$" + humanize.Comma(rounded)
}

// FormatCount renders an integer count with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatChange renders a period-over-period change with a direction arrow.
func FormatChange(v float64) string {
	v = sanitize(v)
	arrow := "➡️"
	switch {
	case v > 0:
		arrow = "⬆️"
	case v < 0:
		arrow = "⬇️"
	}
	return fmt.Sprintf("%s %s", arrow, FormatPercent(math.Abs(v)))
}

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
