// Package format turns raw price API values into display strings.
// All functions are pure and render en-US conventions.
package format

import (
	"fmt"
	"iter"
	"math"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"

	"github.com/status-im/price-dashboard/priceapi"
)

// Placeholder is shown for values that have never been fetched
const Placeholder = "--"

const (
	trillion = 1e12
	billion  = 1e9
	million  = 1e6
)

// Time layouts matching en-US locale output
const (
	AxisTimeLayout = "03:04 PM"
	FullTimeLayout = "1/2/2006, 3:04:05 PM"
	ClockLayout    = "3:04:05 PM"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders value as US dollars with grouping and exactly two
// fraction digits: 1234.5 -> "$1,234.50", -5 -> "-$5.00".
func FormatPrice(value float64) string {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return Placeholder
	}

	cents := math.Round(math.Abs(value) * 100)
	amount := printer.Sprintf("%v", number.Decimal(cents/100, number.Scale(2)))
	if value < 0 && cents != 0 {
		return "-$" + amount
	}
	return "$" + amount
}

// FormatLargeNumber scales value with a T/B/M suffix, falling back to
// FormatPrice below one million. Thresholds are inclusive.
func FormatLargeNumber(value float64) string {
	switch {
	case value >= trillion:
		return fmt.Sprintf("$%.2fT", roundCents(value/trillion))
	case value >= billion:
		return fmt.Sprintf("$%.2fB", roundCents(value/billion))
	case value >= million:
		return fmt.Sprintf("$%.2fM", roundCents(value/million))
	default:
		return FormatPrice(value)
	}
}

// IsPositiveChange reports whether a 24h change gets the positive badge.
// Zero counts as positive.
func IsPositiveChange(percent float64) bool {
	return percent >= 0
}

// FormatPercentChange renders a signed percentage with two decimals: "+2.50%", "-1.25%"
func FormatPercentChange(percent float64) string {
	if percent == 0 {
		// -0 from JSON renders as +0.00%
		percent = 0
	}
	if IsPositiveChange(percent) {
		return fmt.Sprintf("+%.2f%%", roundCents(percent))
	}
	return fmt.Sprintf("%.2f%%", roundCents(percent))
}

// roundCents rounds to two decimals, ties away from zero
func roundCents(value float64) float64 {
	return math.Round(value*100) / 100
}

// FormatAxisPrice renders a y-axis tick: "$" followed by the grouped value
// with at most three fraction digits.
func FormatAxisPrice(value float64) string {
	return "$" + printer.Sprintf("%v", number.Decimal(value, number.MaxFractionDigits(3)))
}

// FormatClock renders the time of day, e.g. "3:04:05 PM"
func FormatClock(t time.Time, loc *time.Location) string {
	return t.In(resolve(loc)).Format(ClockLayout)
}

// ChartPoint is one entry of the price chart
type ChartPoint struct {
	// Time is the hour:minute axis label
	Time string `json:"time"`
	// FullTime is the full date-time shown in the tooltip
	FullTime string  `json:"full_time"`
	Price    float64 `json:"price"`
}

// FormatChartData lazily maps points to chart entries in input order.
// The sequence is derived on each iteration and holds no state of its own.
func FormatChartData(points []priceapi.PricePoint, loc *time.Location) iter.Seq[ChartPoint] {
	loc = resolve(loc)
	return func(yield func(ChartPoint) bool) {
		for _, point := range points {
			local := point.Timestamp.In(loc)
			entry := ChartPoint{
				Time:     local.Format(AxisTimeLayout),
				FullTime: local.Format(FullTimeLayout),
				Price:    point.Price,
			}
			if !yield(entry) {
				return
			}
		}
	}
}

func resolve(loc *time.Location) *time.Location {
	if loc == nil {
		return time.Local
	}
	return loc
}
