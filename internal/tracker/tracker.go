// Package tracker keeps live NAV and trailing-return snapshots for a set of funds
package tracker

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/investa/finserve/internal/calculation"
	"github.com/investa/finserve/internal/domain"
	"github.com/investa/finserve/internal/logging"
	"github.com/investa/finserve/internal/navdata"
)

const (
	// DefaultRefreshInterval is how often Run polls the NAV feed
	DefaultRefreshInterval = 60 * time.Second
	defaultMaxConcurrent   = 5
)

// ErrUnknownFund is returned for codes the tracker does not follow
var ErrUnknownFund = errors.New("fund not tracked")

// nowFunc returns the current time (override in tests for determinism).
var nowFunc = time.Now

// Tracker refreshes fund snapshots from a NAV source. A failed refresh keeps
// the previous figures and flags the fund with Error.
type Tracker struct {
	source        navdata.Source
	funds         []domain.Fund
	interval      time.Duration
	maxConcurrent int
	logger        *logging.Logger

	mu          sync.RWMutex
	snapshots   map[int]domain.FundSnapshot
	lastRefresh time.Time
}

// Option configures a Tracker
type Option func(*Tracker)

// WithFunds replaces the tracked funds
func WithFunds(funds []domain.Fund) Option {
	return func(t *Tracker) {
		t.funds = append([]domain.Fund(nil), funds...)
	}
}

// WithInterval sets the refresh interval
func WithInterval(d time.Duration) Option {
	return func(t *Tracker) {
		if d > 0 {
			t.interval = d
		}
	}
}

// WithMaxConcurrent bounds parallel fetches
func WithMaxConcurrent(n int) Option {
	return func(t *Tracker) {
		if n > 0 {
			t.maxConcurrent = n
		}
	}
}

// WithLogger sets the logger
func WithLogger(logger *logging.Logger) Option {
	return func(t *Tracker) {
		if logger != nil {
			t.logger = logger
		}
	}
}

// New creates a tracker following every curated fund. Snapshots start out loading.
func New(source navdata.Source, opts ...Option) *Tracker {
	t := &Tracker{
		source:        source,
		funds:         DistinctFunds(),
		interval:      DefaultRefreshInterval,
		maxConcurrent: defaultMaxConcurrent,
		logger:        logging.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(t)
	}

	t.snapshots = make(map[int]domain.FundSnapshot, len(t.funds))
	for _, f := range t.funds {
		t.snapshots[f.Code] = domain.FundSnapshot{
			Fund:    f,
			Returns: emptyReturns(),
			Loading: true,
		}
	}
	return t
}

func emptyReturns() map[domain.ReturnWindow]*float64 {
	out := make(map[domain.ReturnWindow]*float64)
	for _, w := range domain.StandardWindows() {
		out[w] = nil
	}
	return out
}

// Interval returns the refresh interval
func (t *Tracker) Interval() time.Duration { return t.interval }

// Refresh fetches every fund once. Individual failures are joined into the
// returned error; successful funds are updated regardless.
func (t *Tracker) Refresh(ctx context.Context) error {
	sem := make(chan struct{}, t.maxConcurrent)
	var wg sync.WaitGroup
	var mu sync.Mutex
	var errs []error

	for _, fund := range t.funds {
		select {
		case sem <- struct{}{}:
		case <-ctx.Done():
		}
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		go func(fund domain.Fund) {
			defer wg.Done()
			defer func() { <-sem }()

			if err := t.refreshFund(ctx, fund); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("%d %s: %w", fund.Code, fund.Name, err))
				mu.Unlock()
			}
		}(fund)
	}
	wg.Wait()

	t.mu.Lock()
	t.lastRefresh = nowFunc()
	t.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if len(errs) > 0 {
		t.logger.Warn().Int("errors", len(errs)).Int("funds", len(t.funds)).Msg("fund refresh completed with errors")
		return errors.Join(errs...)
	}
	t.logger.Debug().Int("funds", len(t.funds)).Msg("fund refresh completed")
	return nil
}

// RefreshFund fetches a single tracked fund
func (t *Tracker) RefreshFund(ctx context.Context, code int) (domain.FundSnapshot, error) {
	fund, ok := t.fund(code)
	if !ok {
		return domain.FundSnapshot{}, fmt.Errorf("%w: %d", ErrUnknownFund, code)
	}
	err := t.refreshFund(ctx, fund)
	snap, _ := t.Snapshot(code)
	return snap, err
}

func (t *Tracker) refreshFund(ctx context.Context, fund domain.Fund) error {
	history, err := t.source.FetchHistory(ctx, fund.Code)
	if err == nil && (history == nil || len(history.Observations) == 0) {
		err = navdata.ErrNoData
	}
	if err != nil {
		t.logger.Warn().Err(err).Int("code", fund.Code).Msg("NAV fetch failed")
		t.update(fund.Code, func(s *domain.FundSnapshot) {
			s.Loading = false
			s.Error = true
		})
		return err
	}

	latest, _ := calculation.LatestObservation(history.Observations)
	returns := calculation.ComputeReturns(history.Observations)
	now := nowFunc()

	t.update(fund.Code, func(s *domain.FundSnapshot) {
		nav := latest.NAV
		s.CurrentNAV = &nav
		s.AsOf = latest.Date
		s.Returns = returns
		s.Loading = false
		s.Error = false
		s.UpdatedAt = now
	})
	return nil
}

func (t *Tracker) update(code int, fn func(*domain.FundSnapshot)) {
	t.mu.Lock()
	defer t.mu.Unlock()
	snap := t.snapshots[code]
	fn(&snap)
	t.snapshots[code] = snap
}

func (t *Tracker) fund(code int) (domain.Fund, bool) {
	for _, f := range t.funds {
		if f.Code == code {
			return f, true
		}
	}
	return domain.Fund{}, false
}

// Snapshot returns the current view of one fund
func (t *Tracker) Snapshot(code int) (domain.FundSnapshot, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	snap, ok := t.snapshots[code]
	return snap, ok
}

// Snapshots returns the funds of a list in list order. Funds the tracker does
// not follow are skipped.
func (t *Tracker) Snapshots(list ListKind) []domain.FundSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	var out []domain.FundSnapshot
	for _, f := range Funds(list) {
		if snap, ok := t.snapshots[f.Code]; ok {
			out = append(out, snap)
		}
	}
	return out
}

// All returns every tracked fund ordered by code
func (t *Tracker) All() []domain.FundSnapshot {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make([]domain.FundSnapshot, 0, len(t.snapshots))
	for _, snap := range t.snapshots {
		out = append(out, snap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Fund.Code < out[j].Fund.Code })
	return out
}

// NextRefresh returns when Run will poll next. Before the first refresh it is zero.
func (t *Tracker) NextRefresh() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.lastRefresh.IsZero() {
		return time.Time{}
	}
	return t.lastRefresh.Add(t.interval)
}

// Run refreshes immediately and then on every tick until ctx is cancelled
func (t *Tracker) Run(ctx context.Context) error {
	t.logger.Info().Int("funds", len(t.funds)).Dur("interval", t.interval).Msg("fund tracker started")
	if err := t.Refresh(ctx); err != nil && ctx.Err() == nil {
		t.logger.Warn().Err(err).Msg("initial fund refresh")
	}

	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			t.logger.Info().Msg("fund tracker stopped")
			return ctx.Err()
		case <-ticker.C:
			if err := t.Refresh(ctx); err != nil && ctx.Err() == nil {
				t.logger.Warn().Err(err).Msg("fund refresh")
			}
		}
	}
}
