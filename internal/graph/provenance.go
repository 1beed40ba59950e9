// Package graph resolves provenance reports by walking the fixed entity
// chain Order -> Listing -> Crop -> Farm. Only the start node enforces a
// hard authorization gate; every later hop degrades to an "absent" status
// instead of failing the request, because downstream linkage is optional
// data rather than a security boundary once the start node is authorized.
package graph

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/shambalink/shambalink/internal/concurrency"
	"github.com/shambalink/shambalink/internal/policy"
	"github.com/shambalink/shambalink/pkg/logger"
	"github.com/shambalink/shambalink/pkg/storage"
	"github.com/shambalink/shambalink/pkg/types"
)

var tracer = otel.Tracer("shambalink/internal/graph")

// ErrPermissionDenied is returned when the actor is not authorized on the
// start node. No partial report is ever produced in that case.
var ErrPermissionDenied = errors.New("permission denied on start node")

// StartKind tags the kind of identifier a traceability request starts from.
type StartKind string

const (
	StartKindOrder   StartKind = "order"
	StartKindListing StartKind = "listing"
)

// Valid reports whether the kind is a member of the closed set.
func (k StartKind) Valid() bool {
	return k == StartKindOrder || k == StartKindListing
}

// Status tags how a node in the report was resolved.
type Status string

const (
	StatusResolved Status = "resolved"
	StatusAbsent   Status = "absent"
)

// OrderNode is the order entry of a report.
type OrderNode struct {
	Status Status       `json:"status"`
	Record *types.Order `json:"record,omitempty"`
}

// ListingNode is the listing entry of a report.
type ListingNode struct {
	Status Status         `json:"status"`
	Record *types.Listing `json:"record,omitempty"`
}

// CropNode is the crop entry of a report, including both append-only
// sub-event collections in recording order.
type CropNode struct {
	Status         Status                      `json:"status"`
	Record         *types.Crop                 `json:"record,omitempty"`
	PestsDiseases  []*types.PestDiseaseEvent   `json:"pestsDiseasesEncountered,omitempty"`
	Fertilizations []*types.FertilizationEvent `json:"fertilizationHistory,omitempty"`
}

// FarmNode is the farm entry of a report.
type FarmNode struct {
	Status Status      `json:"status"`
	Record *types.Farm `json:"record,omitempty"`
}

// Report is the assembled provenance of a product. Every node carries an
// explicit resolution status so absent branches are distinguishable from
// failures.
type Report struct {
	Order        *OrderNode           `json:"order,omitempty"`
	Listing      *ListingNode         `json:"listing,omitempty"`
	Crop         *CropNode            `json:"crop,omitempty"`
	Farm         *FarmNode            `json:"farm,omitempty"`
	RecentOrders []types.OrderSummary `json:"recentOrders,omitempty"`
}

// Resolver walks the provenance graph. The graph is finite and acyclic by
// construction, so resolution always terminates within a bounded number of
// store calls.
type Resolver struct {
	datastore storage.MarketReader
	logger    logger.Logger
}

// NewResolver creates a resolver over the given datastore.
func NewResolver(datastore storage.MarketReader, l logger.Logger) *Resolver {
	if l == nil {
		l = logger.NewNoopLogger()
	}
	return &Resolver{
		datastore: datastore,
		logger:    l,
	}
}

// Resolve builds the provenance report rooted at the given identifier.
// It returns storage.ErrNotFound when the start node is absent and
// ErrPermissionDenied when the actor fails the start-node gate.
func (r *Resolver) Resolve(ctx context.Context, actor types.Actor, kind StartKind, id string) (*Report, error) {
	ctx, span := tracer.Start(ctx, "graph.Resolve")
	defer span.End()

	switch kind {
	case StartKindOrder:
		return r.resolveFromOrder(ctx, actor, id)
	case StartKindListing:
		return r.resolveFromListing(ctx, actor, id)
	default:
		return nil, errors.New("unknown start kind")
	}
}

// resolveFromOrder handles order-rooted requests. An order is the access
// boundary: without order-level authorization there is no partial report.
func (r *Resolver) resolveFromOrder(ctx context.Context, actor types.Actor, id string) (*Report, error) {
	order, err := r.datastore.GetOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	decision := policy.Decide(actor, types.KindOrder, order)
	if !decision.Allowed {
		return nil, ErrPermissionDenied
	}

	report := &Report{
		Order: &OrderNode{Status: StatusResolved, Record: order},
	}

	if order.ListingID == "" {
		report.Listing = &ListingNode{Status: StatusAbsent}
		return report, nil
	}

	listing, err := r.datastore.GetListing(ctx, order.ListingID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			// The snapshot reference can outlive the listing.
			report.Listing = &ListingNode{Status: StatusAbsent}
			return report, nil
		}
		return nil, err
	}

	report.Listing = &ListingNode{Status: StatusResolved, Record: listing}

	if err := r.resolveDownstream(ctx, report, listing, decision); err != nil {
		return nil, err
	}
	return report, nil
}

// resolveFromListing handles listing-rooted requests and additionally
// attaches the listing's most recent orders as summaries.
func (r *Resolver) resolveFromListing(ctx context.Context, actor types.Actor, id string) (*Report, error) {
	listing, err := r.datastore.GetListing(ctx, id)
	if err != nil {
		return nil, err
	}

	decision := policy.Decide(actor, types.KindListing, listing)
	if !decision.Allowed {
		return nil, ErrPermissionDenied
	}

	report := &Report{
		Listing: &ListingNode{Status: StatusResolved, Record: listing},
	}

	if err := r.resolveDownstream(ctx, report, listing, decision); err != nil {
		return nil, err
	}

	orders, err := r.datastore.ListOrdersByListing(ctx, listing.ID, storage.DefaultRecentOrdersLimit)
	if err != nil {
		return nil, err
	}
	for _, o := range orders {
		report.RecentOrders = append(report.RecentOrders, o.Summary())
	}

	return report, nil
}

// resolveDownstream runs the shared Listing -> Crop -> Farm traversal once,
// regardless of which start kind produced the authorized root.
func (r *Resolver) resolveDownstream(ctx context.Context, report *Report, listing *types.Listing, root policy.Decision) error {
	cropID := listing.CropID()
	if cropID == "" {
		// Legitimate partial provenance: agro input and service listings
		// carry no crop linkage.
		report.Crop = &CropNode{Status: StatusAbsent}
		return nil
	}

	if !policy.DecideLinked(root).Allowed {
		report.Crop = &CropNode{Status: StatusAbsent}
		return nil
	}

	crop, err := r.datastore.GetCrop(ctx, cropID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			r.logger.Debug("crop linked from listing is gone",
				zap.String("listing_id", listing.ID),
				zap.String("crop_id", cropID),
			)
			report.Crop = &CropNode{Status: StatusAbsent}
			return nil
		}
		return err
	}

	cropNode := &CropNode{Status: StatusResolved, Record: crop}
	farmNode := &FarmNode{Status: StatusAbsent}

	// The sub-event collections and the farm are independent once the crop
	// is known; fetch them concurrently and join before assembling.
	pool := concurrency.NewPool(ctx, 3)

	pool.Go(func(ctx context.Context) error {
		events, err := r.datastore.ListPestDiseaseEvents(ctx, crop.ID)
		if err != nil {
			return err
		}
		cropNode.PestsDiseases = events
		return nil
	})

	pool.Go(func(ctx context.Context) error {
		events, err := r.datastore.ListFertilizationEvents(ctx, crop.ID)
		if err != nil {
			return err
		}
		cropNode.Fertilizations = events
		return nil
	})

	if crop.FarmID != "" && policy.DecideLinked(root).Allowed {
		pool.Go(func(ctx context.Context) error {
			farm, err := r.datastore.GetFarm(ctx, crop.FarmID)
			if err != nil {
				if errors.Is(err, storage.ErrNotFound) {
					return nil
				}
				return err
			}
			farmNode.Status = StatusResolved
			farmNode.Record = farm
			return nil
		})
	}

	if err := pool.Wait(); err != nil {
		return err
	}

	report.Crop = cropNode
	report.Farm = farmNode
	return nil
}
