package format

import (
	"math"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/status-im/price-dashboard/priceapi"
)

func TestFormatPrice(t *testing.T) {
	tests := []struct {
		value float64
		want  string
	}{
		{0, "$0.00"},
		{1234.5, "$1,234.50"},
		{50000, "$50,000.00"},
		{999, "$999.00"},
		{0.005, "$0.01"},
		{1234567.891, "$1,234,567.89"},
		{-5, "-$5.00"},
		{-0.001, "$0.00"},
		{math.NaN(), Placeholder},
		{math.Inf(1), Placeholder},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatPrice(tt.value), "FormatPrice(%v)", tt.value)
	}
}

func TestFormatLargeNumber(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  string
	}{
		{"trillions", 1_500_000_000_000, "$1.50T"},
		{"billions", 2_300_000_000, "$2.30B"},
		{"millions", 4_560_000, "$4.56M"},
		{"below million", 999, FormatPrice(999)},
		{"exact trillion", 1e12, "$1.00T"},
		{"just below trillion", 1e12 - 1, "$1000.00B"},
		{"exact billion", 1e9, "$1.00B"},
		{"exact million", 1e6, "$1.00M"},
		{"just below million", 999_999.99, "$999,999.99"},
		{"zero", 0, "$0.00"},
		{"volume", 3e10, "$30.00B"},
		{"tie rounds up trillions", 1.125e12, "$1.13T"},
		{"tie rounds up billions", 2.625e9, "$2.63B"},
		{"tie rounds up millions", 1.375e6, "$1.38M"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatLargeNumber(tt.value))
		})
	}
}

func TestFormatPercentChange(t *testing.T) {
	assert.Equal(t, "+2.50%", FormatPercentChange(2.5))
	assert.Equal(t, "+0.00%", FormatPercentChange(0))
	assert.Equal(t, "-1.25%", FormatPercentChange(-1.25))
	assert.Equal(t, "+12.35%", FormatPercentChange(12.345678))
	assert.Equal(t, "+2.13%", FormatPercentChange(2.125))
	assert.Equal(t, "-2.13%", FormatPercentChange(-2.125))
	assert.Equal(t, "+0.00%", FormatPercentChange(math.Copysign(0, -1)))

	assert.True(t, IsPositiveChange(0))
	assert.True(t, IsPositiveChange(0.01))
	assert.False(t, IsPositiveChange(-0.01))
}

func TestFormatAxisPrice(t *testing.T) {
	assert.Equal(t, "$50,000", FormatAxisPrice(50000))
	assert.Equal(t, "$50,000.5", FormatAxisPrice(50000.5))
	assert.Equal(t, "$1.235", FormatAxisPrice(1.23456))
}

func TestFormatClock(t *testing.T) {
	ts := time.Date(2024, 5, 1, 15, 4, 5, 0, time.UTC)
	assert.Equal(t, "3:04:05 PM", FormatClock(ts, time.UTC))

	tokyo := time.FixedZone("JST", 9*3600)
	assert.Equal(t, "12:04:05 AM", FormatClock(ts, tokyo))
}

func historyAt(base time.Time, prices ...float64) []priceapi.PricePoint {
	points := make([]priceapi.PricePoint, len(prices))
	for i, price := range prices {
		points[i] = priceapi.PricePoint{
			ID:        int64(i + 1),
			Timestamp: priceapi.Timestamp{Time: base.Add(time.Duration(i) * time.Minute)},
			Price:     price,
		}
	}
	return points
}

func TestFormatChartData(t *testing.T) {
	base := time.Date(2024, 5, 1, 9, 5, 30, 0, time.UTC)
	points := historyAt(base, 100, 250.5, 75)

	chart := slices.Collect(FormatChartData(points, time.UTC))
	require.Len(t, chart, len(points))

	assert.Equal(t, ChartPoint{Time: "09:05 AM", FullTime: "5/1/2024, 9:05:30 AM", Price: 100}, chart[0])
	assert.Equal(t, ChartPoint{Time: "09:06 AM", FullTime: "5/1/2024, 9:06:30 AM", Price: 250.5}, chart[1])
	assert.Equal(t, ChartPoint{Time: "09:07 AM", FullTime: "5/1/2024, 9:07:30 AM", Price: 75}, chart[2])
}

func TestFormatChartData_PreservesOrderAndLength(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	for n := 1; n <= 25; n++ {
		prices := make([]float64, n)
		for i := range prices {
			prices[i] = float64(n - i)
		}
		points := historyAt(base, prices...)

		chart := slices.Collect(FormatChartData(points, time.UTC))
		require.Len(t, chart, n)
		for i := range chart {
			assert.Equal(t, points[i].Price, chart[i].Price)
		}
	}
}

func TestFormatChartData_EmptyAndEarlyStop(t *testing.T) {
	assert.Empty(t, slices.Collect(FormatChartData(nil, time.UTC)))

	points := historyAt(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 1, 2, 3)
	var seen []float64
	for entry := range FormatChartData(points, time.UTC) {
		seen = append(seen, entry.Price)
		if len(seen) == 2 {
			break
		}
	}
	assert.Equal(t, []float64{1, 2}, seen)
}

func TestFormatChartData_ReflectsInputAtIteration(t *testing.T) {
	points := historyAt(time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), 1, 2)
	seq := FormatChartData(points, time.UTC)

	points[0].Price = 42
	chart := slices.Collect(seq)
	assert.Equal(t, 42.0, chart[0].Price)
}

func TestFormatChartData_Timezone(t *testing.T) {
	points := historyAt(time.Date(2024, 5, 1, 23, 30, 0, 0, time.UTC), 1)
	berlin := time.FixedZone("CEST", 2*3600)

	chart := slices.Collect(FormatChartData(points, berlin))
	require.Len(t, chart, 1)
	assert.Equal(t, "01:30 AM", chart[0].Time)
	assert.Equal(t, "5/2/2024, 1:30:00 AM", chart[0].FullTime)
}
