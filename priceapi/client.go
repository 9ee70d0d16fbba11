package priceapi

//go:generate mockgen -destination=mocks/api_client.go . APIClient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

const (
	// DefaultAPIBaseURL is the compiled-in address of the price API
	DefaultAPIBaseURL = "http://192.168.29.23:5000"

	CurrentPriceEndpoint = "/api/data"
	HistoryEndpoint      = "/api/history"
)

// ErrFetchFailed is the only error kind produced by the client. Network
// errors, non-200 statuses and undecodable bodies all wrap it.
var ErrFetchFailed = errors.New("fetch failed")

// APIClient fetches price data from the remote API
type APIClient interface {
	FetchCurrentPrice(ctx context.Context) (*CurrentPrice, error)
	FetchHistory(ctx context.Context) ([]PricePoint, error)
}

// Options configures Client
type Options struct {
	Request RequestOptions

	// Limiter caps the outbound request rate across both endpoints. Nil disables it.
	Limiter *rate.Limiter

	PriceStatusHandler   IHttpStatusHandler
	HistoryStatusHandler IHttpStatusHandler
}

// Client handles HTTP communication with the price API
type Client struct {
	baseURL string
	price   *endpointClient
	history *endpointClient
}

// NewClient creates a new API client. An empty baseURL selects DefaultAPIBaseURL.
func NewClient(baseURL string, opts Options) *Client {
	if baseURL == "" {
		baseURL = DefaultAPIBaseURL
	}
	httpClient := NewHTTPClient(opts.Request)

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		price:   newEndpointClient(httpClient, opts.Limiter, opts.PriceStatusHandler, "price"),
		history: newEndpointClient(httpClient, opts.Limiter, opts.HistoryStatusHandler, "history"),
	}
}

// NewLimiter converts a per-minute budget into a rate.Limiter. Returns nil
// when requestsPerMinute is not positive.
func NewLimiter(requestsPerMinute, burst int) *rate.Limiter {
	if requestsPerMinute <= 0 {
		return nil
	}
	if burst <= 0 {
		burst = 1
	}
	return rate.NewLimiter(rate.Limit(float64(requestsPerMinute)/60.0), burst)
}

// BaseURL returns the address requests are sent to
func (c *Client) BaseURL() string {
	return c.baseURL
}

// FetchCurrentPrice retrieves the current price snapshot
func (c *Client) FetchCurrentPrice(ctx context.Context) (*CurrentPrice, error) {
	body, err := c.price.get(ctx, c.baseURL+CurrentPriceEndpoint)
	if err != nil {
		return nil, err
	}

	var snapshot *CurrentPrice
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return nil, fmt.Errorf("%w: error unmarshaling price response: %v", ErrFetchFailed, err)
	}
	if snapshot == nil {
		return nil, fmt.Errorf("%w: empty price response", ErrFetchFailed)
	}

	return snapshot, nil
}

// FetchHistory retrieves the recent price history in server order
func (c *Client) FetchHistory(ctx context.Context) ([]PricePoint, error) {
	body, err := c.history.get(ctx, c.baseURL+HistoryEndpoint)
	if err != nil {
		return nil, err
	}

	var points []PricePoint
	if err := json.Unmarshal(body, &points); err != nil {
		return nil, fmt.Errorf("%w: error unmarshaling history response: %v", ErrFetchFailed, err)
	}
	if points == nil {
		points = []PricePoint{}
	}

	return points, nil
}

// errorEnvelope is the body the API sends with 5xx responses
type errorEnvelope struct {
	Error   string `json:"error"`
	Details string `json:"details"`
}

func describeErrorResponse(statusCode int, body []byte) string {
	var envelope errorEnvelope
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Error != "" {
		if envelope.Details != "" {
			return fmt.Sprintf("API request failed with status %d: %s (%s)", statusCode, envelope.Error, envelope.Details)
		}
		return fmt.Sprintf("API request failed with status %d: %s", statusCode, envelope.Error)
	}

	text := strings.TrimSpace(string(body))
	if text == "" {
		text = http.StatusText(statusCode)
	}
	const maxBody = 256
	if len(text) > maxBody {
		text = text[:maxBody] + "..."
	}
	return fmt.Sprintf("API request failed with status %d: %s", statusCode, text)
}
