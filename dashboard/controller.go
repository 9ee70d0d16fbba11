package dashboard

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"github.com/status-im/price-dashboard/cache"
	"github.com/status-im/price-dashboard/config"
	"github.com/status-im/price-dashboard/events"
	"github.com/status-im/price-dashboard/metrics"
	"github.com/status-im/price-dashboard/priceapi"
	"github.com/status-im/price-dashboard/scheduler"
)

// FailureLog records fetch failures per source
type FailureLog interface {
	Record(source string, err error)
	Last(source string) (cache.Failure, bool)
	Clear(source string)
}

// Source health as reported by SourceStatus
const (
	StatusUp       = "up"
	StatusDegraded = "degraded"
	StatusDown     = "down"
	StatusUnknown  = "unknown"
)

// State is a copy of everything the dashboard renders from
type State struct {
	CurrentPrice *priceapi.CurrentPrice
	History      []priceapi.PricePoint
	// HistoryLoaded is set once a history fetch has succeeded
	HistoryLoaded bool
	Loading       bool
	Refreshing    bool
	LastRefresh   time.Time
}

// Controller polls the price API and owns the dashboard state. Each fetch
// replaces only its own slot; a failed fetch leaves the slot untouched.
type Controller struct {
	config         config.DashboardFetcher
	location       *time.Location
	client         priceapi.APIClient
	failures       FailureLog
	subscriptions  *events.SubscriptionManager
	priceMetrics   *metrics.MetricsWriter
	historyMetrics *metrics.MetricsWriter
	logger         zerolog.Logger
	now            func() time.Time

	state struct {
		sync.RWMutex
		currentPrice  *priceapi.CurrentPrice
		history       []priceapi.PricePoint
		historyLoaded bool
		loading       bool
		lastRefresh   time.Time
	}

	// priceInFlight counts callers inside FetchCurrentPrice
	priceInFlight atomic.Int32
	// flights coalesces concurrent fetches of the same endpoint
	flights singleflight.Group
	// baseCtx is the context coalesced requests run on
	baseCtx atomic.Pointer[baseContext]

	lifecycle struct {
		sync.Mutex
		scheduler *scheduler.Scheduler
		cancel    context.CancelFunc
	}
	wg sync.WaitGroup
}

// NewController creates a controller in the loading state
func NewController(cfg config.DashboardFetcher, location *time.Location, client priceapi.APIClient, failures FailureLog) *Controller {
	if location == nil {
		location = time.Local
	}
	c := &Controller{
		config:         cfg,
		location:       location,
		client:         client,
		failures:       failures,
		subscriptions:  events.NewSubscriptionManager(),
		priceMetrics:   metrics.NewMetricsWriter(metrics.SourcePrice),
		historyMetrics: metrics.NewMetricsWriter(metrics.SourceHistory),
		logger:         log.With().Str("component", "dashboard").Logger(),
		now:            time.Now,
	}
	c.state.loading = true
	c.state.lastRefresh = c.now()
	c.baseCtx.Store(&baseContext{ctx: context.Background()})
	return c
}

// Start runs the initial combined fetch in the background and registers
// the periodic refresh. Calling Start again while running is a no-op.
func (c *Controller) Start(ctx context.Context) error {
	if c.client == nil {
		return errors.New("price API client dependency not provided")
	}
	if c.config.UpdateInterval <= 0 {
		return fmt.Errorf("invalid update interval %v", c.config.UpdateInterval)
	}

	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()
	if c.lifecycle.scheduler != nil {
		return nil
	}

	ctx, cancel := context.WithCancel(ctx)
	c.lifecycle.cancel = cancel
	c.baseCtx.Store(&baseContext{ctx: ctx})

	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		c.refresh(ctx, metrics.TriggerInitial, true)
	}()

	c.lifecycle.scheduler = scheduler.New("dashboard-refresh", c.config.UpdateInterval, c.onTick)
	c.lifecycle.scheduler.Start(ctx, false)

	c.logger.Info().Dur("interval", c.config.UpdateInterval).Msg("Dashboard polling started")
	return nil
}

// Stop deregisters the periodic refresh and waits for fetches it started
func (c *Controller) Stop() {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()

	if c.lifecycle.scheduler == nil {
		return
	}
	c.lifecycle.scheduler.Stop()
	c.lifecycle.cancel()
	c.wg.Wait()
	c.baseCtx.Store(&baseContext{ctx: context.Background()})
	c.lifecycle.scheduler = nil
	c.lifecycle.cancel = nil
	c.logger.Info().Msg("Dashboard polling stopped")
}

// IsPolling returns true while the periodic refresh is registered
func (c *Controller) IsPolling() bool {
	c.lifecycle.Lock()
	defer c.lifecycle.Unlock()
	return c.lifecycle.scheduler != nil && c.lifecycle.scheduler.IsRunning()
}

// onTick fires both fetches independently. They are neither joined with
// each other nor with a manual refresh.
func (c *Controller) onTick(ctx context.Context) {
	metrics.RecordRefreshCycle(metrics.TriggerSchedule)
	ctx = withCycleID(ctx, uuid.NewString())

	c.wg.Add(2)
	go func() {
		defer c.wg.Done()
		_ = c.FetchCurrentPrice(ctx)
	}()
	go func() {
		defer c.wg.Done()
		_ = c.FetchHistoricalData(ctx)
	}()
}

// RefreshAll re-runs both fetches and waits for both to settle. Used for
// manual refresh, so the full-page loading state is not shown.
func (c *Controller) RefreshAll(ctx context.Context) {
	c.refresh(ctx, metrics.TriggerManual, false)
}

func (c *Controller) refresh(ctx context.Context, trigger string, showLoading bool) {
	metrics.RecordRefreshCycle(trigger)
	cycleID := uuid.NewString()
	ctx = withCycleID(ctx, cycleID)
	logger := c.logger.With().Str("cycle_id", cycleID).Str("trigger", trigger).Logger()

	if showLoading {
		c.setLoading(true)
	}

	var g errgroup.Group
	g.Go(func() error { return c.FetchCurrentPrice(ctx) })
	g.Go(func() error { return c.FetchHistoricalData(ctx) })
	err := g.Wait()

	if showLoading {
		c.setLoading(false)
	}

	if err != nil {
		logger.Debug().Err(err).Msg("Refresh completed with failures")
		return
	}
	logger.Debug().Msg("Refresh completed")
}

// FetchCurrentPrice replaces the price snapshot on success. On failure the
// previous snapshot is kept and the failure is logged and recorded.
func (c *Controller) FetchCurrentPrice(ctx context.Context) error {
	c.priceInFlight.Add(1)
	defer c.priceInFlight.Add(-1)

	_, err, _ := c.flights.Do(metrics.SourcePrice, func() (interface{}, error) {
		ctx := c.sharedContext(ctx)
		snapshot, err := c.fetch(ctx, metrics.SourcePrice, c.priceMetrics, func() (interface{}, error) {
			return c.client.FetchCurrentPrice(ctx)
		})
		if err != nil {
			return nil, err
		}

		c.state.Lock()
		c.state.currentPrice = snapshot.(*priceapi.CurrentPrice)
		c.state.lastRefresh = c.now()
		c.state.Unlock()

		c.subscriptions.Emit(context.WithoutCancel(ctx), events.Update{Source: metrics.SourcePrice})
		return nil, nil
	})
	return err
}

// FetchHistoricalData replaces the history on success. On failure the
// previous sequence is kept.
func (c *Controller) FetchHistoricalData(ctx context.Context) error {
	_, err, _ := c.flights.Do(metrics.SourceHistory, func() (interface{}, error) {
		ctx := c.sharedContext(ctx)
		points, err := c.fetch(ctx, metrics.SourceHistory, c.historyMetrics, func() (interface{}, error) {
			return c.client.FetchHistory(ctx)
		})
		if err != nil {
			return nil, err
		}

		c.state.Lock()
		c.state.history = points.([]priceapi.PricePoint)
		c.state.historyLoaded = true
		c.state.Unlock()

		c.subscriptions.Emit(context.WithoutCancel(ctx), events.Update{Source: metrics.SourceHistory})
		return nil, nil
	})
	return err
}

// fetch runs one request with metrics, logging and failure bookkeeping
func (c *Controller) fetch(ctx context.Context, source string, mw *metrics.MetricsWriter, do func() (interface{}, error)) (interface{}, error) {
	logger := c.logger.With().Str("source", source).Str("cycle_id", cycleIDFrom(ctx)).Logger()

	mw.FetchStarted()
	start := time.Now()
	result, err := do()
	mw.RecordFetchDuration(time.Since(start))
	mw.FetchFinished()

	if err != nil {
		logger.Warn().Err(err).Msg("Fetch failed, keeping previous data")
		if c.failures != nil {
			c.failures.Record(source, err)
		}
		return nil, fmt.Errorf("fetch %s: %w", source, err)
	}

	if c.failures != nil {
		c.failures.Clear(source)
	}
	mw.RecordSuccess(c.now())
	logger.Debug().Dur("took", time.Since(start)).Msg("Fetch succeeded")
	return result, nil
}

// sharedContext detaches a coalesced request from the caller that started
// it, so one caller going away does not fail the others. Only Stop ends it.
func (c *Controller) sharedContext(caller context.Context) context.Context {
	return withCycleID(c.baseCtx.Load().ctx, cycleIDFrom(caller))
}

func (c *Controller) setLoading(loading bool) {
	c.state.Lock()
	c.state.loading = loading
	c.state.Unlock()
}

// State returns a copy of the current dashboard state
func (c *Controller) State() State {
	c.state.RLock()
	defer c.state.RUnlock()

	var current *priceapi.CurrentPrice
	if c.state.currentPrice != nil {
		snapshot := *c.state.currentPrice
		current = &snapshot
	}
	history := make([]priceapi.PricePoint, len(c.state.history))
	copy(history, c.state.history)

	return State{
		CurrentPrice:  current,
		History:       history,
		HistoryLoaded: c.state.historyLoaded,
		Loading:       c.state.loading,
		Refreshing:    c.IsRefreshing(),
		LastRefresh:   c.state.lastRefresh,
	}
}

// CurrentPrice returns a copy of the held snapshot, or nil before the first success
func (c *Controller) CurrentPrice() *priceapi.CurrentPrice {
	return c.State().CurrentPrice
}

// History returns a copy of the held history
func (c *Controller) History() []priceapi.PricePoint {
	return c.State().History
}

// IsLoading is true until the initial combined fetch settles
func (c *Controller) IsLoading() bool {
	c.state.RLock()
	defer c.state.RUnlock()
	return c.state.loading
}

// IsRefreshing is true while a price fetch is in flight
func (c *Controller) IsRefreshing() bool {
	return c.priceInFlight.Load() > 0
}

// LastRefresh is the completion time of the last successful price fetch,
// or the controller creation time before that
func (c *Controller) LastRefresh() time.Time {
	c.state.RLock()
	defer c.state.RUnlock()
	return c.state.lastRefresh
}

// Location is the zone used for display labels
func (c *Controller) Location() *time.Location {
	return c.location
}

// Subscribe returns a subscription notified after every state replacement
func (c *Controller) Subscribe() *events.Subscription {
	return c.subscriptions.Subscribe(2)
}

// SourceStatus reports the health of one source
func (c *Controller) SourceStatus(source string) string {
	c.state.RLock()
	var populated bool
	switch source {
	case metrics.SourcePrice:
		populated = c.state.currentPrice != nil
	case metrics.SourceHistory:
		populated = c.state.historyLoaded
	}
	c.state.RUnlock()

	failed := false
	if c.failures != nil {
		_, failed = c.failures.Last(source)
	}

	switch {
	case failed && populated:
		return StatusDegraded
	case failed:
		return StatusDown
	case populated:
		return StatusUp
	default:
		return StatusUnknown
	}
}

// Healthy checks that a price snapshot is held
func (c *Controller) Healthy() bool {
	c.state.RLock()
	defer c.state.RUnlock()
	return c.state.currentPrice != nil
}

type baseContext struct {
	ctx context.Context
}

type cycleIDKey struct{}

func withCycleID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, cycleIDKey{}, id)
}

func cycleIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(cycleIDKey{}).(string)
	return id
}
