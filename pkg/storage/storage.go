// Package storage contains the document store interfaces and shared errors.
//
//go:generate mockgen -source storage.go -destination ../../internal/mocks/mock_storage.go -package mocks DocumentStore
package storage

import (
	"context"

	"github.com/shambalink/shambalink/pkg/types"
)

const (
	// DefaultRecentOrdersLimit bounds the recent-order history attached to
	// listing-rooted traceability reports.
	DefaultRecentOrdersLimit = 5

	// DefaultMaxRangeResults bounds how many listings a single geohash
	// range scan returns.
	DefaultMaxRangeResults = 1000
)

// MarketReader provides the point lookups, range queries and sub-collection
// listings consumed by the discovery and provenance subsystems. All reads
// are point-in-time snapshots; no cross-read consistency is attempted.
type MarketReader interface {
	// GetListing returns the listing with the given ID, or ErrNotFound.
	GetListing(ctx context.Context, id string) (*types.Listing, error)

	// GetOrder returns the order with the given ID, or ErrNotFound.
	GetOrder(ctx context.Context, id string) (*types.Order, error)

	// GetOffer returns the offer with the given ID, or ErrNotFound.
	GetOffer(ctx context.Context, id string) (*types.Offer, error)

	// GetCrop returns the crop with the given ID, or ErrNotFound.
	GetCrop(ctx context.Context, id string) (*types.Crop, error)

	// GetFarm returns the farm with the given ID, or ErrNotFound.
	GetFarm(ctx context.Context, id string) (*types.Farm, error)

	// GetAccount returns the account with the given ID, or ErrNotFound.
	GetAccount(ctx context.Context, id string) (*types.Account, error)

	// QueryListingsByGeohashRange returns listings whose geohash key falls
	// in the half-open interval [start, end). There is NO guarantee on the
	// order of the returned listings.
	QueryListingsByGeohashRange(ctx context.Context, start, end string) ([]*types.Listing, error)

	// ListOrdersByListing returns up to limit orders referencing the
	// listing, ordered by creation time descending.
	ListOrdersByListing(ctx context.Context, listingID string, limit int) ([]*types.Order, error)

	// ListPestDiseaseEvents returns the crop's pest/disease sub-collection
	// ordered by recording time ascending.
	ListPestDiseaseEvents(ctx context.Context, cropID string) ([]*types.PestDiseaseEvent, error)

	// ListFertilizationEvents returns the crop's fertilization
	// sub-collection ordered by recording time ascending.
	ListFertilizationEvents(ctx context.Context, cropID string) ([]*types.FertilizationEvent, error)
}

// MarketWriter is the write surface used by the CRUD collaborators, seeds
// and tests. The discovery and provenance subsystems never write.
type MarketWriter interface {
	// UpsertListing writes a listing, recomputing its geohash from its
	// location so the index key invariant holds.
	UpsertListing(ctx context.Context, listing *types.Listing) error

	UpsertOrder(ctx context.Context, order *types.Order) error
	UpsertOffer(ctx context.Context, offer *types.Offer) error
	UpsertCrop(ctx context.Context, crop *types.Crop) error
	UpsertFarm(ctx context.Context, farm *types.Farm) error
	UpsertAccount(ctx context.Context, account *types.Account) error

	// AddPestDiseaseEvent appends to a crop's pest/disease sub-collection.
	AddPestDiseaseEvent(ctx context.Context, cropID string, event *types.PestDiseaseEvent) error

	// AddFertilizationEvent appends to a crop's fertilization
	// sub-collection.
	AddFertilizationEvent(ctx context.Context, cropID string, event *types.FertilizationEvent) error
}

// DocumentStore is the full backend contract implemented by the memory,
// sqlite and postgres engines.
type DocumentStore interface {
	MarketReader
	MarketWriter

	// IsReady reports whether the datastore is ready to accept traffic.
	IsReady(ctx context.Context) (bool, error)

	// Close releases any held resources.
	Close()
}
