package priceapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// IHttpStatusHandler is an interface for handling HTTP request statuses
type IHttpStatusHandler interface {
	// OnRequest handles a request with its status result
	OnRequest(status string)
}

// Request statuses reported to IHttpStatusHandler
const (
	StatusSuccess     = "success"
	StatusError       = "error"
	StatusTimeout     = "timeout"
	StatusRateLimited = "rate_limited"
)

// MaxResponseBytes caps the body read from either endpoint
const MaxResponseBytes = 4 << 20

// RequestOptions configures timeouts for HTTP requests
type RequestOptions struct {
	ConnectionTimeout time.Duration // Timeout for establishing connection
	RequestTimeout    time.Duration // Total request timeout including reading response
}

// DefaultRequestOptions returns default request options
func DefaultRequestOptions() RequestOptions {
	return RequestOptions{
		ConnectionTimeout: 10 * time.Second,
		RequestTimeout:    30 * time.Second,
	}
}

// NewHTTPClient builds the shared transport used for all endpoints
func NewHTTPClient(opts RequestOptions) *http.Client {
	return &http.Client{
		Timeout: opts.RequestTimeout,
		Transport: &http.Transport{
			DialContext: (&net.Dialer{
				Timeout: opts.ConnectionTimeout,
			}).DialContext,
		},
	}
}

// endpointClient executes single-attempt GET requests for one endpoint.
// There are no retries: the next polling tick is the only retry.
type endpointClient struct {
	client        *http.Client
	limiter       *rate.Limiter
	statusHandler IHttpStatusHandler
	logger        zerolog.Logger
}

func newEndpointClient(client *http.Client, limiter *rate.Limiter, handler IHttpStatusHandler, source string) *endpointClient {
	return &endpointClient{
		client:        client,
		limiter:       limiter,
		statusHandler: handler,
		logger:        log.With().Str("component", "priceapi").Str("source", source).Logger(),
	}
}

func (c *endpointClient) report(status string) {
	if c.statusHandler != nil {
		c.statusHandler.OnRequest(status)
	}
}

// get performs the request and returns the body of a 200 response
func (c *endpointClient) get(ctx context.Context, url string) ([]byte, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.report(StatusRateLimited)
			return nil, fmt.Errorf("%w: rate limiter wait failed: %v", ErrFetchFailed, err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		c.report(StatusError)
		return nil, fmt.Errorf("%w: error creating request: %v", ErrFetchFailed, err)
	}
	req.Header.Set("Accept", "application/json")

	requestStart := time.Now()
	resp, err := c.client.Do(req)
	requestDuration := time.Since(requestStart)
	if err != nil {
		c.report(classifyTransportError(err))
		return nil, fmt.Errorf("%w: request failed after %.2fs: %v", ErrFetchFailed, requestDuration.Seconds(), err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxResponseBytes+1))
	if err != nil {
		c.report(classifyTransportError(err))
		return nil, fmt.Errorf("%w: error reading response: %v", ErrFetchFailed, err)
	}
	if int64(len(body)) > MaxResponseBytes {
		c.report(StatusError)
		return nil, fmt.Errorf("%w: response exceeds %d bytes", ErrFetchFailed, MaxResponseBytes)
	}

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusTooManyRequests {
			c.report(StatusRateLimited)
		} else {
			c.report(StatusError)
		}
		return nil, fmt.Errorf("%w: %s", ErrFetchFailed, describeErrorResponse(resp.StatusCode, body))
	}

	c.report(StatusSuccess)
	c.logger.Debug().
		Str("url", url).
		Float64("duration_s", requestDuration.Seconds()).
		Int("bytes", len(body)).
		Msg("Request completed")
	return body, nil
}

func classifyTransportError(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return StatusTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return StatusTimeout
	}
	return StatusError
}
