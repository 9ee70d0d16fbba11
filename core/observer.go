package core

import (
	"context"

	"github.com/status-im/price-dashboard/dashboard"
	"github.com/status-im/price-dashboard/events"
	"github.com/status-im/price-dashboard/metrics"
)

// stateObserver mirrors dashboard state into the state gauges
type stateObserver struct {
	controller *dashboard.Controller
	sub        *events.Subscription
}

func newStateObserver(controller *dashboard.Controller) *stateObserver {
	return &stateObserver{controller: controller}
}

func (o *stateObserver) Start(ctx context.Context) error {
	o.sub = o.controller.Subscribe().Watch(ctx, func(events.Update) {
		o.record()
	})
	return nil
}

func (o *stateObserver) Stop() {
	if o.sub != nil {
		o.sub.Cancel()
	}
}

func (o *stateObserver) record() {
	state := o.controller.State()
	var price float64
	if state.CurrentPrice != nil {
		price = state.CurrentPrice.Price
	}
	metrics.RecordDashboardState(price, state.CurrentPrice != nil, len(state.History))
}
