package priceapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// CurrentPrice is the latest known spot price returned by /api/data
type CurrentPrice struct {
	Price          float64   `json:"price"`
	MarketCap      float64   `json:"market_cap"`
	Volume24h      float64   `json:"volume_24h"`
	PriceChange24h float64   `json:"price_change_24h"`
	LastUpdated    Timestamp `json:"last_updated"`
}

// PricePoint is a single entry of the /api/history sequence
type PricePoint struct {
	ID             int64     `json:"id"`
	Timestamp      Timestamp `json:"timestamp"`
	Price          float64   `json:"price"`
	MarketCap      float64   `json:"market_cap"`
	Volume24h      float64   `json:"volume_24h"`
	PriceChange24h float64   `json:"price_change_24h"`
}

// naiveLayout matches ISO-8601 values written without a zone offset
const naiveLayout = "2006-01-02T15:04:05.999999999"

// Timestamp decodes the API's ISO-8601 timestamps. Values without a zone
// offset are UTC wall-clock times.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements json.Unmarshaler
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		t.Time = time.Time{}
		return nil
	}

	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp must be a string: %w", err)
	}
	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := ParseTimestamp(raw)
	if err != nil {
		return err
	}
	t.Time = parsed
	return nil
}

// MarshalJSON implements json.Marshaler
func (t Timestamp) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Time.Format(time.RFC3339Nano))
}

// ParseTimestamp parses an RFC 3339 value or a naive ISO-8601 value (as UTC)
func ParseTimestamp(raw string) (time.Time, error) {
	if parsed, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return parsed, nil
	}
	parsed, err := time.ParseInLocation(naiveLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: %w", raw, err)
	}
	return parsed, nil
}
