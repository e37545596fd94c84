package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"balance_formatter/internal/app/port"
	"balance_formatter/internal/domain/entity"
	"balance_formatter/internal/infrastructure/metrics"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

const (
	priceTableCacheKey = "price_table"
	latestQuotesKey    = "latest_quotes"

	defaultRefreshTimeout = 30 * time.Second
)

// tokenPriceServiceImpl implements port.TokenPriceService.
type tokenPriceServiceImpl struct {
	source  port.PriceSource
	store   port.PriceSnapshotStore // optional
	cache   *gocache.Cache
	group   singleflight.Group
	logger  port.Logger
	metrics *metrics.Metrics

	refreshTimeout time.Duration
}

// NewTokenPriceService creates a TokenPriceService that keeps the collapsed
// price table for ttl. store may be nil.
func NewTokenPriceService(
	source port.PriceSource,
	store port.PriceSnapshotStore,
	ttl time.Duration,
	l port.Logger,
	m *metrics.Metrics,
) port.TokenPriceService {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	return &tokenPriceServiceImpl{
		source:  source,
		store:   store,
		cache:   gocache.New(ttl, 2*ttl),
		logger:  l,
		metrics: m,

		refreshTimeout: defaultRefreshTimeout,
	}
}

// LoadAndCachePrices fetches the feed and replaces the cached table.
func (s *tokenPriceServiceImpl) LoadAndCachePrices(ctx context.Context) error {
	_, err := s.refresh(ctx)
	return err
}

// GetPriceTable returns the cached table, refreshing it when it has expired.
func (s *tokenPriceServiceImpl) GetPriceTable(ctx context.Context) (entity.PriceTable, error) {
	if cached, ok := s.cache.Get(priceTableCacheKey); ok {
		return copyPriceTable(cached.(entity.PriceTable)), nil
	}
	quotes, err := s.refresh(ctx)
	if err != nil {
		return nil, err
	}
	return BuildPriceTable(quotes), nil
}

// ListPrices implements port.TokenPriceService.
func (s *tokenPriceServiceImpl) ListPrices(ctx context.Context, query string) ([]entity.TokenPrice, error) {
	var quotes []entity.TokenPrice
	if cached, ok := s.cache.Get(latestQuotesKey); ok {
		quotes = cached.([]entity.TokenPrice)
	} else {
		var err error
		if quotes, err = s.refresh(ctx); err != nil {
			return nil, err
		}
	}

	needle := strings.ToLower(strings.TrimSpace(query))
	result := make([]entity.TokenPrice, 0, len(quotes))
	for _, q := range quotes {
		if needle == "" || strings.Contains(strings.ToLower(q.Currency), needle) {
			result = append(result, q)
		}
	}
	return result, nil
}

// refresh loads the latest quotes once even when called concurrently. The
// shared load is detached from the caller's cancellation and bounded by
// refreshTimeout; each caller still stops waiting when its own ctx is done.
func (s *tokenPriceServiceImpl) refresh(ctx context.Context) ([]entity.TokenPrice, error) {
	ch := s.group.DoChan(latestQuotesKey, func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.refreshTimeout)
		defer cancel()
		return s.load(loadCtx)
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		if res.Shared {
			s.logger.Debug("Price refresh shared with a concurrent caller")
		}
		return res.Val.([]entity.TokenPrice), nil
	}
}

func (s *tokenPriceServiceImpl) load(ctx context.Context) ([]entity.TokenPrice, error) {
	s.logger.Info("Loading token prices from source...")

	raw, fetchErr := s.source.FetchPrices(ctx)
	if fetchErr == nil {
		quotes := LatestQuotes(raw)
		if len(quotes) == 0 {
			fetchErr = fmt.Errorf("price source returned no usable quotes (%d raw entries)", len(raw))
		} else {
			s.metrics.ObservePriceRefresh("source")
			s.cacheQuotes(quotes)
			if s.store != nil {
				if err := s.store.SavePrices(ctx, quotes); err != nil {
					s.logger.Warn("Failed to persist price snapshot", "error", err)
				}
			}
			s.logger.Info("Token prices loaded and cached", "raw_entries", len(raw), "currencies", len(quotes))
			return quotes, nil
		}
	}

	s.logger.Error("Failed to load token prices from source", "error", fetchErr)
	if s.store == nil {
		s.metrics.ObservePriceRefresh("failed")
		return nil, fmt.Errorf("%w: %v", entity.ErrNoPrices, fetchErr)
	}

	snapshot, err := s.store.LoadPrices(ctx)
	if err == nil && len(snapshot) == 0 {
		err = errors.New("snapshot is empty")
	}
	if err != nil {
		s.metrics.ObservePriceRefresh("failed")
		return nil, fmt.Errorf("%w: source: %v, snapshot: %v", entity.ErrNoPrices, fetchErr, err)
	}

	quotes := LatestQuotes(snapshot)
	s.metrics.ObservePriceRefresh("snapshot")
	s.cacheQuotes(quotes)
	s.logger.Warn("Serving token prices from the last snapshot", "currencies", len(quotes))
	return quotes, nil
}

func (s *tokenPriceServiceImpl) cacheQuotes(quotes []entity.TokenPrice) {
	s.cache.SetDefault(latestQuotesKey, quotes)
	s.cache.SetDefault(priceTableCacheKey, BuildPriceTable(quotes))
}

// LatestQuotes keeps one quote per currency: the one with the latest date,
// and among equal dates the one that appears last. Non-positive and
// non-finite prices are dropped. The result is sorted by currency.
func LatestQuotes(prices []entity.TokenPrice) []entity.TokenPrice {
	latest := make(map[string]entity.TokenPrice, len(prices))
	for _, p := range prices {
		if p.Currency == "" || !(p.Price > 0) || math.IsInf(p.Price, 0) {
			continue
		}
		if prev, ok := latest[p.Currency]; ok && p.Date.Before(prev.Date) {
			continue
		}
		latest[p.Currency] = p
	}

	quotes := make([]entity.TokenPrice, 0, len(latest))
	for _, q := range latest {
		quotes = append(quotes, q)
	}
	sort.Slice(quotes, func(i, j int) bool { return quotes[i].Currency < quotes[j].Currency })
	return quotes
}

// BuildPriceTable collapses quotes into a currency -> USD price table.
func BuildPriceTable(prices []entity.TokenPrice) entity.PriceTable {
	quotes := LatestQuotes(prices)
	table := make(entity.PriceTable, len(quotes))
	for _, q := range quotes {
		table[q.Currency] = q.Price
	}
	return table
}

func copyPriceTable(t entity.PriceTable) entity.PriceTable {
	out := make(entity.PriceTable, len(t))
	for k, v := range t {
		out[k] = v
	}
	return out
}
