package priceapi

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{
			name: "naive with microseconds is UTC",
			raw:  "2024-05-01T12:30:45.123456",
			want: time.Date(2024, 5, 1, 12, 30, 45, 123456000, time.UTC),
		},
		{
			name: "naive without fraction",
			raw:  "2024-05-01T12:30:45",
			want: time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC),
		},
		{
			name: "rfc3339 with Z",
			raw:  "2024-05-01T12:30:45Z",
			want: time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC),
		},
		{
			name: "rfc3339 with offset",
			raw:  "2024-05-01T14:30:45+02:00",
			want: time.Date(2024, 5, 1, 12, 30, 45, 0, time.UTC),
		},
		{
			name:    "garbage",
			raw:     "yesterday",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "got %v, want %v", got, tt.want)
		})
	}
}

func TestCurrentPrice_Decode(t *testing.T) {
	body := `{
		"price": 50000,
		"market_cap": 1000000000000,
		"volume_24h": 30000000000,
		"price_change_24h": -1.25,
		"last_updated": "2024-05-01T12:00:00.000001",
		"source": "CoinGecko"
	}`

	var snapshot CurrentPrice
	require.NoError(t, json.Unmarshal([]byte(body), &snapshot))

	assert.Equal(t, 50000.0, snapshot.Price)
	assert.Equal(t, 1e12, snapshot.MarketCap)
	assert.Equal(t, 3e10, snapshot.Volume24h)
	assert.Equal(t, -1.25, snapshot.PriceChange24h)
	assert.Equal(t, 2024, snapshot.LastUpdated.Year())
	assert.Equal(t, time.UTC, snapshot.LastUpdated.Location())
}

func TestPricePoint_DecodeNulls(t *testing.T) {
	body := `{"id": 7, "timestamp": "2024-05-01T12:00:00", "price": 100.5,
		"market_cap": null, "volume_24h": null, "price_change_24h": null}`

	var point PricePoint
	require.NoError(t, json.Unmarshal([]byte(body), &point))

	assert.Equal(t, int64(7), point.ID)
	assert.Equal(t, 100.5, point.Price)
	assert.Zero(t, point.MarketCap)
	assert.Zero(t, point.Volume24h)
	assert.Zero(t, point.PriceChange24h)
}

func TestTimestamp_NullAndEmpty(t *testing.T) {
	var ts Timestamp
	require.NoError(t, json.Unmarshal([]byte(`null`), &ts))
	assert.True(t, ts.IsZero())

	require.NoError(t, json.Unmarshal([]byte(`""`), &ts))
	assert.True(t, ts.IsZero())

	assert.Error(t, json.Unmarshal([]byte(`12345`), &ts))
}

func TestTimestamp_Marshal(t *testing.T) {
	ts := Timestamp{Time: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
	data, err := json.Marshal(ts)
	require.NoError(t, err)
	assert.Equal(t, `"2024-05-01T12:00:00Z"`, string(data))

	data, err = json.Marshal(Timestamp{})
	require.NoError(t, err)
	assert.Equal(t, `null`, string(data))
}
