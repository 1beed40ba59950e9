package commands

import (
	"context"
	"errors"
	"math"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/shambalink/shambalink/internal/concurrency"
	"github.com/shambalink/shambalink/internal/geo"
	"github.com/shambalink/shambalink/internal/planner"
	"github.com/shambalink/shambalink/internal/policy"
	"github.com/shambalink/shambalink/pkg/logger"
	serverErrors "github.com/shambalink/shambalink/pkg/server/errors"
	"github.com/shambalink/shambalink/pkg/storage"
	"github.com/shambalink/shambalink/pkg/types"
)

var tracer = otel.Tracer("shambalink/pkg/server/commands")

// defaultMaxConcurrentRangeReads bounds the fan-out width of one search.
const defaultMaxConcurrentRangeReads = 8

// SearchListingsRequest is the input of a radius search.
type SearchListingsRequest struct {
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	RadiusMeters float64 `json:"radiusMeters"`
}

// SearchListingsResponse holds the unique listings verified to lie within
// the radius. Order is unspecified; callers re-sort if they need one.
type SearchListingsResponse struct {
	Listings []*types.Listing `json:"listings"`
}

// SearchListingsQuery implements the nearby-listings search: plan covering
// key ranges, fan out one range query each, then refine candidates by exact
// great-circle distance and deduplicate.
type SearchListingsQuery struct {
	datastore          storage.MarketReader
	logger             logger.Logger
	maxConcurrentReads int
}

// SearchListingsQueryOption configures a SearchListingsQuery.
type SearchListingsQueryOption func(*SearchListingsQuery)

// WithSearchLogger overrides the default noop logger.
func WithSearchLogger(l logger.Logger) SearchListingsQueryOption {
	return func(q *SearchListingsQuery) {
		q.logger = l
	}
}

// WithMaxConcurrentRangeReads overrides the fan-out width.
func WithMaxConcurrentRangeReads(n int) SearchListingsQueryOption {
	return func(q *SearchListingsQuery) {
		q.maxConcurrentReads = n
	}
}

// NewSearchListingsQuery creates a search query over the given datastore.
func NewSearchListingsQuery(datastore storage.MarketReader, opts ...SearchListingsQueryOption) *SearchListingsQuery {
	q := &SearchListingsQuery{
		datastore:          datastore,
		logger:             logger.NewNoopLogger(),
		maxConcurrentReads: defaultMaxConcurrentRangeReads,
	}
	for _, opt := range opts {
		opt(q)
	}
	return q
}

// Execute runs the search. Cancellation aborts the outstanding range reads
// and fails the whole request: a partial spatial search would silently
// under-report matches.
func (q *SearchListingsQuery) Execute(ctx context.Context, actor types.Actor, req *SearchListingsRequest) (*SearchListingsResponse, error) {
	ctx, span := tracer.Start(ctx, "SearchListings")
	defer span.End()

	center := types.Point{Latitude: req.Latitude, Longitude: req.Longitude}
	if !geo.ValidPoint(center) {
		return nil, serverErrors.ErrInvalidCoordinates
	}
	if math.IsNaN(req.RadiusMeters) || req.RadiusMeters <= 0 {
		return nil, serverErrors.ErrInvalidRadius
	}

	ranges, err := planner.PlanRanges(center, req.RadiusMeters)
	if err != nil {
		return nil, serverErrors.ErrInvalidCoordinates
	}

	resultsChan := make(chan []*types.Listing, len(ranges))
	pool := concurrency.NewPool(ctx, q.maxConcurrentReads)

	for _, keyRange := range ranges {
		pool.Go(func(ctx context.Context) error {
			listings, err := q.datastore.QueryListingsByGeohashRange(ctx, keyRange.Start, keyRange.End)
			if err != nil {
				return err
			}
			concurrency.TrySendThroughChannel(ctx, listings, resultsChan)
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		if errors.Is(err, storage.ErrCancelled) || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return nil, serverErrors.ErrRequestCancelled
		}
		return nil, serverErrors.HandleError("", err)
	}
	close(resultsChan)

	var candidates []*types.Listing
	for batch := range resultsChan {
		candidates = append(candidates, batch...)
	}

	return &SearchListingsResponse{
		Listings: q.refineAndDedup(actor, center, req.RadiusMeters, candidates),
	}, nil
}

// refineAndDedup discards false positives from curve-cell imprecision,
// removes duplicates appearing in overlapping ranges (keeping the first
// occurrence of each listing ID) and drops listings the actor may not see.
func (q *SearchListingsQuery) refineAndDedup(actor types.Actor, center types.Point, radiusMeters float64, candidates []*types.Listing) []*types.Listing {
	seen := make(map[string]struct{}, len(candidates))
	matches := make([]*types.Listing, 0, len(candidates))

	for _, listing := range candidates {
		if _, ok := seen[listing.ID]; ok {
			continue
		}
		if listing.Location == nil {
			// Not an error: a listing without a location can never match.
			q.logger.Debug("skipping listing without location", zap.String("listing_id", listing.ID))
			seen[listing.ID] = struct{}{}
			continue
		}
		if geo.Haversine(center, *listing.Location) > radiusMeters {
			continue
		}
		seen[listing.ID] = struct{}{}
		if !policy.Decide(actor, types.KindListing, listing).Allowed {
			continue
		}
		matches = append(matches, listing)
	}

	return matches
}
