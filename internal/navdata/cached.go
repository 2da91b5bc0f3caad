package navdata

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/investa/finserve/internal/domain"
	"github.com/investa/finserve/internal/logging"
)

// DefaultCacheTTL matches the feed's once-a-day publishing with some slack
const DefaultCacheTTL = 30 * time.Minute

// CachedSource serves histories from a Cache, falling back to the wrapped Source
type CachedSource struct {
	source Source
	cache  Cache
	ttl    time.Duration
	logger *logging.Logger
}

// NewCachedSource wraps source with cache. A nil logger is replaced by a silent one.
func NewCachedSource(source Source, cache Cache, ttl time.Duration, logger *logging.Logger) *CachedSource {
	if logger == nil {
		logger = logging.NewSilentLogger()
	}
	return &CachedSource{source: source, cache: cache, ttl: ttl, logger: logger}
}

func cacheKey(code int) string {
	return fmt.Sprintf("nav:%d", code)
}

// FetchHistory returns the cached history for code if present
func (s *CachedSource) FetchHistory(ctx context.Context, code int) (*domain.NavHistory, error) {
	key := cacheKey(code)
	if raw, ok := s.cache.Get(ctx, key); ok {
		var history domain.NavHistory
		if err := json.Unmarshal([]byte(raw), &history); err == nil {
			s.logger.Debug().Str("key", key).Msg("NAV cache hit")
			return &history, nil
		}
		s.logger.Warn().Str("key", key).Msg("discarding unreadable cache entry")
	}

	history, err := s.source.FetchHistory(ctx, code)
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(history)
	if err != nil {
		return nil, fmt.Errorf("encode history: %w", err)
	}
	if err := s.cache.Set(ctx, key, string(raw), s.ttl); err != nil {
		// a cache outage must not fail the lookup
		s.logger.Warn().Err(err).Str("key", key).Msg("NAV cache write failed")
	}
	return history, nil
}
