package dashboard

import (
	"slices"
	"time"

	"github.com/status-im/price-dashboard/format"
)

// EmptyChartMessage is shown instead of the chart until history is available
const EmptyChartMessage = "No historical data available"

// View holds display-ready values for one render
type View struct {
	Loading     bool   `json:"loading"`
	Refreshing  bool   `json:"refreshing"`
	LastUpdated string `json:"last_updated"`

	Price string `json:"price"`
	// Change badge, only set when a snapshot is held
	HasChange      bool   `json:"has_change"`
	PriceChange    string `json:"price_change,omitempty"`
	ChangePositive bool   `json:"change_positive"`

	MarketCap  string `json:"market_cap"`
	Volume24h  string `json:"volume_24h"`
	DataPoints int    `json:"data_points"`

	Chart        []format.ChartPoint `json:"chart"`
	ChartEmpty   bool                `json:"chart_empty"`
	EmptyMessage string              `json:"empty_message,omitempty"`
	AxisMin      string              `json:"axis_min,omitempty"`
	AxisMax      string              `json:"axis_max,omitempty"`
}

// BuildView derives display strings from state. Chart entries are
// recomputed on every call.
func BuildView(state State, loc *time.Location) View {
	view := View{
		Loading:     state.Loading,
		Refreshing:  state.Refreshing,
		LastUpdated: format.FormatClock(state.LastRefresh, loc),
		Price:       format.Placeholder,
		MarketCap:   format.Placeholder,
		Volume24h:   format.Placeholder,
		DataPoints:  len(state.History),
	}

	if current := state.CurrentPrice; current != nil {
		view.Price = format.FormatPrice(current.Price)
		view.HasChange = true
		view.PriceChange = format.FormatPercentChange(current.PriceChange24h)
		view.ChangePositive = format.IsPositiveChange(current.PriceChange24h)
		view.MarketCap = format.FormatLargeNumber(current.MarketCap)
		view.Volume24h = format.FormatLargeNumber(current.Volume24h)
	}

	view.Chart = slices.Collect(format.FormatChartData(state.History, loc))
	if len(view.Chart) == 0 {
		view.Chart = []format.ChartPoint{}
		view.ChartEmpty = true
		view.EmptyMessage = EmptyChartMessage
		return view
	}

	low, high := view.Chart[0].Price, view.Chart[0].Price
	for _, entry := range view.Chart[1:] {
		low = min(low, entry.Price)
		high = max(high, entry.Price)
	}
	view.AxisMin = format.FormatAxisPrice(low)
	view.AxisMax = format.FormatAxisPrice(high)

	return view
}

// View builds the view for the controller's current state
func (c *Controller) View() View {
	return BuildView(c.State(), c.location)
}
