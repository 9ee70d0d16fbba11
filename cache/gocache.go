package cache

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// Failure is the last recorded fetch failure of a source
type Failure struct {
	Source     string    `json:"source"`
	Message    string    `json:"message"`
	OccurredAt time.Time `json:"occurred_at"`
}

// FailureLog is an in-memory record of recent fetch failures backed by go-cache.
// Entries expire after the configured TTL.
type FailureLog struct {
	cache *cache.Cache
	now   func() time.Time
}

// NewFailureLog creates a new FailureLog instance
func NewFailureLog(cfg Config) *FailureLog {
	return &FailureLog{
		cache: cache.New(cfg.TTL, cfg.CleanupInterval),
		now:   time.Now,
	}
}

// Record stores err as the latest failure for source, replacing any previous one
func (fl *FailureLog) Record(source string, err error) {
	if err == nil {
		return
	}
	fl.cache.SetDefault(source, Failure{
		Source:     source,
		Message:    err.Error(),
		OccurredAt: fl.now(),
	})
}

// Last returns the unexpired failure recorded for source
func (fl *FailureLog) Last(source string) (Failure, bool) {
	value, found := fl.cache.Get(source)
	if !found {
		return Failure{}, false
	}
	failure, ok := value.(Failure)
	return failure, ok
}

// Clear forgets the failure recorded for source
func (fl *FailureLog) Clear(source string) {
	fl.cache.Delete(source)
}

// ItemCount returns the number of sources with a failure on record
func (fl *FailureLog) ItemCount() int {
	return fl.cache.ItemCount()
}
