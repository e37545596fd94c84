package port

import (
	"context"

	"balance_formatter/internal/domain/entity"
)

// PriceSource defines the interface for fetching raw quotes from a price feed.
type PriceSource interface {
	FetchPrices(ctx context.Context) ([]entity.TokenPrice, error)
}

// PriceSnapshotStore keeps the last known quote per currency.
type PriceSnapshotStore interface {
	SavePrices(ctx context.Context, prices []entity.TokenPrice) error
	LoadPrices(ctx context.Context) ([]entity.TokenPrice, error)
}

// TokenPriceService provides the current USD prices.
type TokenPriceService interface {
	LoadAndCachePrices(ctx context.Context) error
	GetPriceTable(ctx context.Context) (entity.PriceTable, error)
	// ListPrices returns one quote per currency whose name contains query,
	// ignoring case. An empty query matches every currency.
	ListPrices(ctx context.Context, query string) ([]entity.TokenPrice, error)
}
