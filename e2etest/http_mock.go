package e2etest

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog/log"
)

// MockServer stands in for the price API
type MockServer struct {
	server *httptest.Server

	mu          sync.RWMutex
	priceBody   string
	historyBody string
	priceFail   bool
	historyFail bool
	priceHits   atomic.Int64
	historyHits atomic.Int64
}

// NewMockServer creates a mock API serving one snapshot and three history points
func NewMockServer() *MockServer {
	ms := &MockServer{
		priceBody:   defaultPriceData(),
		historyBody: defaultHistoryData(),
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/api/data", ms.handlePrice)
	mux.HandleFunc("/api/history", ms.handleHistory)
	ms.server = httptest.NewServer(mux)

	return ms
}

// GetURL returns the base URL of the mock API
func (ms *MockServer) GetURL() string {
	return ms.server.URL
}

func (ms *MockServer) Close() {
	if ms.server != nil {
		ms.server.Close()
	}
}

// SetPriceData replaces the body served by /api/data
func (ms *MockServer) SetPriceData(body string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.priceBody = body
}

// SetHistoryData replaces the body served by /api/history
func (ms *MockServer) SetHistoryData(body string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.historyBody = body
}

// SetPriceFailure makes /api/data answer with 500
func (ms *MockServer) SetPriceFailure(fail bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.priceFail = fail
}

// SetHistoryFailure makes /api/history answer with 500
func (ms *MockServer) SetHistoryFailure(fail bool) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.historyFail = fail
}

func (ms *MockServer) PriceHits() int64   { return ms.priceHits.Load() }
func (ms *MockServer) HistoryHits() int64 { return ms.historyHits.Load() }

func (ms *MockServer) handlePrice(w http.ResponseWriter, r *http.Request) {
	ms.priceHits.Add(1)
	ms.mu.RLock()
	body, fail := ms.priceBody, ms.priceFail
	ms.mu.RUnlock()
	ms.respond(w, r, body, fail)
}

func (ms *MockServer) handleHistory(w http.ResponseWriter, r *http.Request) {
	ms.historyHits.Add(1)
	ms.mu.RLock()
	body, fail := ms.historyBody, ms.historyFail
	ms.mu.RUnlock()
	ms.respond(w, r, body, fail)
}

func (ms *MockServer) respond(w http.ResponseWriter, r *http.Request, body string, fail bool) {
	log.Debug().Str("path", r.URL.Path).Bool("fail", fail).Msg("MockServer: request")

	w.Header().Set("Content-Type", "application/json")
	if fail {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, `{"error":"database unavailable"}`)
		return
	}
	fmt.Fprint(w, body)
}

func defaultPriceData() string {
	return `{
		"price": 50000,
		"market_cap": 1000000000000,
		"volume_24h": 30000000000,
		"price_change_24h": 2.5,
		"last_updated": "2024-05-01T12:03:00.123456"
	}`
}

func defaultHistoryData() string {
	return `[
		{"id": 3, "timestamp": "2024-05-01T12:00:00", "price": 49900, "market_cap": 9.9e11, "volume_24h": 2.9e10, "price_change_24h": 2.1},
		{"id": 2, "timestamp": "2024-05-01T12:01:00", "price": 50100, "market_cap": 1e12, "volume_24h": 3e10, "price_change_24h": 2.4},
		{"id": 1, "timestamp": "2024-05-01T12:02:00", "price": 50000, "market_cap": 1e12, "volume_24h": 3e10, "price_change_24h": 2.5}
	]`
}
