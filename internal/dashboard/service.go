package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mvillegas/cabstock-backend/pkg/config"
	"github.com/mvillegas/cabstock-backend/pkg/debounce"
	pkgerrors "github.com/mvillegas/cabstock-backend/pkg/errors"
	"github.com/mvillegas/cabstock-backend/pkg/logger"
	redisclient "github.com/mvillegas/cabstock-backend/pkg/redis"
)

// summaryCache is the slice of the redis client the dashboard uses.
type summaryCache interface {
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Del(ctx context.Context, keys ...string) error
	DashboardSummaryKey() string
}

// EventLoader replays historic sale events, used to rebuild the in-memory
// aggregates after a restart.
type EventLoader func(ctx context.Context) ([]SaleEvent, error)

// StatsLoader computes the advisory inventory snapshot (total value and
// low/out-of-stock counts) shown alongside the sale aggregates.
type StatsLoader func(ctx context.Context) (InventoryStats, error)

// Service exposes dashboard aggregation.
type Service interface {
	Summary(ctx context.Context) (*Summary, error)
	PublishSale(ctx context.Context, ev SaleEvent)
	RetractSale(ctx context.Context, ev SaleEvent)
	Rehydrate(ctx context.Context) error
}

type service struct {
	aggMu  sync.RWMutex
	agg    *Aggregator
	cache  summaryCache
	loader EventLoader
	stats  StatsLoader
	ttl    time.Duration
	reDel  *debounce.Debouncer
	logg   *logger.Logger
	now    func() time.Time
}

// aggregator returns the current aggregator; Rehydrate may swap it at any
// time, so all other methods go through here.
func (s *service) aggregator() *Aggregator {
	s.aggMu.RLock()
	defer s.aggMu.RUnlock()
	return s.agg
}

// NewService wires the aggregator, redis summary cache and event loader.
// cache may be nil (summaries are then computed on every request), and so
// may stats (inventory figures stay zero).
func NewService(cfg config.DashboardConfig, cache *redisclient.Client, loader EventLoader, stats StatsLoader, logg *logger.Logger) (Service, error) {
	if loader == nil {
		return nil, fmt.Errorf("event loader required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}

	svc := &service{
		agg:    NewAggregator(cfg.ActivityFeedLen),
		loader: loader,
		stats:  stats,
		ttl:    cfg.SummaryCacheTTL,
		logg:   logg,
		now:    time.Now,
	}
	if cache != nil {
		svc.cache = cache
		svc.reDel = debounce.New(0)
	}
	return svc, nil
}

// Rehydrate replays all historic sales into a fresh aggregator.
func (s *service) Rehydrate(ctx context.Context) error {
	events, err := s.loader(ctx)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "loading sale history")
	}

	fresh := NewAggregator(s.aggregator().feedLen)
	for _, ev := range events {
		fresh.RecordSale(ev)
	}

	s.aggMu.Lock()
	s.agg = fresh
	s.aggMu.Unlock()
	s.invalidate(ctx)
	return nil
}

// PublishSale records a completed sale and invalidates the cached summary.
func (s *service) PublishSale(ctx context.Context, ev SaleEvent) {
	s.aggregator().RecordSale(ev)
	s.invalidate(ctx)
}

// RetractSale reverses a voided sale and invalidates the cached summary.
func (s *service) RetractSale(ctx context.Context, ev SaleEvent) {
	s.aggregator().RemoveSale(ev)
	s.invalidate(ctx)
}

// Summary serves the cached summary when fresh, recomputing on miss.
func (s *service) Summary(ctx context.Context) (*Summary, error) {
	if s.cache != nil {
		raw, err := s.cache.Get(ctx, s.cache.DashboardSummaryKey())
		if err == nil {
			var cached Summary
			if jsonErr := json.Unmarshal([]byte(raw), &cached); jsonErr == nil {
				return &cached, nil
			}
		} else if !redisclient.IsNil(err) {
			// cache being down degrades to a recompute, never an outage
			s.logg.Warn(ctx, "dashboard summary cache read failed")
		}
	}

	summary := s.aggregator().Snapshot(s.now().UTC())

	if s.stats != nil {
		stats, err := s.stats(ctx)
		if err != nil {
			// advisory figures only; a failed stock scan never blocks the page
			s.logg.Warn(ctx, "inventory stats load failed")
		} else {
			summary.Inventory = stats
		}
	}

	if s.cache != nil && s.ttl > 0 {
		if payload, err := json.Marshal(summary); err == nil {
			if err := s.cache.Set(ctx, s.cache.DashboardSummaryKey(), string(payload), s.ttl); err != nil {
				s.logg.Warn(ctx, "dashboard summary cache write failed")
			}
		}
	}
	return &summary, nil
}

func (s *service) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	key := s.cache.DashboardSummaryKey()
	if err := s.cache.Del(ctx, key); err != nil {
		s.logg.Warn(ctx, "dashboard summary cache invalidation failed")
	}

	// A Summary recompute racing a sale burst can re-cache a snapshot that
	// predates the sale. The trailing second delete clears it.
	if s.reDel != nil {
		s.reDel.Call(func() {
			if err := s.cache.Del(context.Background(), key); err != nil {
				s.logg.Warn(context.Background(), "dashboard summary cache re-delete failed")
			}
		})
	}
}
