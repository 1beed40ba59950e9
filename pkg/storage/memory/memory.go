// Package memory provides an ephemeral memory-backed implementation of
// storage.DocumentStore. Instances may be safely shared by multiple
// goroutines.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/shambalink/shambalink/internal/geo"
	"github.com/shambalink/shambalink/pkg/storage"
	"github.com/shambalink/shambalink/pkg/types"
)

var tracer = otel.Tracer("shambalink/pkg/storage/memory")

// Datastore holds every collection in process memory.
type Datastore struct {
	listings map[string]*types.Listing // GUARDED_BY(mu).
	orders   map[string]*types.Order   // GUARDED_BY(mu).
	offers   map[string]*types.Offer   // GUARDED_BY(mu).
	crops    map[string]*types.Crop    // GUARDED_BY(mu).
	farms    map[string]*types.Farm    // GUARDED_BY(mu).
	accounts map[string]*types.Account // GUARDED_BY(mu).

	// Crop sub-collections, append-only.
	pestEvents map[string][]*types.PestDiseaseEvent   // GUARDED_BY(mu).
	fertEvents map[string][]*types.FertilizationEvent // GUARDED_BY(mu).

	mu sync.RWMutex
}

var _ storage.DocumentStore = (*Datastore)(nil)

// New creates an empty in-memory datastore.
func New() *Datastore {
	return &Datastore{
		listings:   make(map[string]*types.Listing),
		orders:     make(map[string]*types.Order),
		offers:     make(map[string]*types.Offer),
		crops:      make(map[string]*types.Crop),
		farms:      make(map[string]*types.Farm),
		accounts:   make(map[string]*types.Account),
		pestEvents: make(map[string][]*types.PestDiseaseEvent),
		fertEvents: make(map[string][]*types.FertilizationEvent),
	}
}

// GetListing see [storage.MarketReader].GetListing.
func (d *Datastore) GetListing(ctx context.Context, id string) (*types.Listing, error) {
	_, span := tracer.Start(ctx, "memory.GetListing")
	defer span.End()

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	l, ok := d.listings[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *l
	return &cp, nil
}

// GetOrder see [storage.MarketReader].GetOrder.
func (d *Datastore) GetOrder(ctx context.Context, id string) (*types.Order, error) {
	_, span := tracer.Start(ctx, "memory.GetOrder")
	defer span.End()

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	o, ok := d.orders[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

// GetOffer see [storage.MarketReader].GetOffer.
func (d *Datastore) GetOffer(ctx context.Context, id string) (*types.Offer, error) {
	_, span := tracer.Start(ctx, "memory.GetOffer")
	defer span.End()

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	o, ok := d.offers[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

// GetCrop see [storage.MarketReader].GetCrop.
func (d *Datastore) GetCrop(ctx context.Context, id string) (*types.Crop, error) {
	_, span := tracer.Start(ctx, "memory.GetCrop")
	defer span.End()

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	c, ok := d.crops[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *c
	return &cp, nil
}

// GetFarm see [storage.MarketReader].GetFarm.
func (d *Datastore) GetFarm(ctx context.Context, id string) (*types.Farm, error) {
	_, span := tracer.Start(ctx, "memory.GetFarm")
	defer span.End()

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	f, ok := d.farms[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *f
	return &cp, nil
}

// GetAccount see [storage.MarketReader].GetAccount.
func (d *Datastore) GetAccount(ctx context.Context, id string) (*types.Account, error) {
	_, span := tracer.Start(ctx, "memory.GetAccount")
	defer span.End()

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	a, ok := d.accounts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *a
	return &cp, nil
}

// QueryListingsByGeohashRange see [storage.MarketReader].QueryListingsByGeohashRange.
func (d *Datastore) QueryListingsByGeohashRange(ctx context.Context, start, end string) ([]*types.Listing, error) {
	_, span := tracer.Start(ctx, "memory.QueryListingsByGeohashRange")
	defer span.End()

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []*types.Listing
	for _, l := range d.listings {
		if l.Geohash >= start && l.Geohash < end {
			cp := *l
			out = append(out, &cp)
			if len(out) >= storage.DefaultMaxRangeResults {
				break
			}
		}
	}
	return out, nil
}

// ListOrdersByListing see [storage.MarketReader].ListOrdersByListing.
func (d *Datastore) ListOrdersByListing(ctx context.Context, listingID string, limit int) ([]*types.Order, error) {
	_, span := tracer.Start(ctx, "memory.ListOrdersByListing")
	defer span.End()

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	var out []*types.Order
	for _, o := range d.orders {
		if o.ListingID == listingID {
			cp := *o
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ListPestDiseaseEvents see [storage.MarketReader].ListPestDiseaseEvents.
func (d *Datastore) ListPestDiseaseEvents(ctx context.Context, cropID string) ([]*types.PestDiseaseEvent, error) {
	_, span := tracer.Start(ctx, "memory.ListPestDiseaseEvents")
	defer span.End()

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	events := make([]*types.PestDiseaseEvent, 0, len(d.pestEvents[cropID]))
	for _, e := range d.pestEvents[cropID] {
		cp := *e
		events = append(events, &cp)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].RecordedAt.Before(events[j].RecordedAt)
	})
	return events, nil
}

// ListFertilizationEvents see [storage.MarketReader].ListFertilizationEvents.
func (d *Datastore) ListFertilizationEvents(ctx context.Context, cropID string) ([]*types.FertilizationEvent, error) {
	_, span := tracer.Start(ctx, "memory.ListFertilizationEvents")
	defer span.End()

	if err := ctxErr(ctx); err != nil {
		return nil, err
	}

	d.mu.RLock()
	defer d.mu.RUnlock()

	events := make([]*types.FertilizationEvent, 0, len(d.fertEvents[cropID]))
	for _, e := range d.fertEvents[cropID] {
		cp := *e
		events = append(events, &cp)
	}
	sort.Slice(events, func(i, j int) bool {
		return events[i].RecordedAt.Before(events[j].RecordedAt)
	})
	return events, nil
}

// UpsertListing see [storage.MarketWriter].UpsertListing. The geohash index
// key is recomputed from the location on every write.
func (d *Datastore) UpsertListing(ctx context.Context, listing *types.Listing) error {
	_, span := tracer.Start(ctx, "memory.UpsertListing")
	defer span.End()

	if err := ctxErr(ctx); err != nil {
		return err
	}

	cp := *listing
	if cp.Location != nil {
		cp.Geohash = geo.Encode(cp.Location.Latitude, cp.Location.Longitude, geo.StoragePrecision)
	} else {
		cp.Geohash = ""
	}
	cp.UpdatedAt = time.Now().UTC()
	if cp.CreatedAt.IsZero() {
		cp.CreatedAt = cp.UpdatedAt
	}

	d.mu.Lock()
	defer d.mu.Unlock()
	d.listings[cp.ID] = &cp
	return nil
}

// UpsertOrder see [storage.MarketWriter].UpsertOrder.
func (d *Datastore) UpsertOrder(ctx context.Context, order *types.Order) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}

	cp := *order
	d.mu.Lock()
	defer d.mu.Unlock()
	d.orders[cp.ID] = &cp
	return nil
}

// UpsertOffer see [storage.MarketWriter].UpsertOffer.
func (d *Datastore) UpsertOffer(ctx context.Context, offer *types.Offer) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}

	cp := *offer
	d.mu.Lock()
	defer d.mu.Unlock()
	d.offers[cp.ID] = &cp
	return nil
}

// UpsertCrop see [storage.MarketWriter].UpsertCrop.
func (d *Datastore) UpsertCrop(ctx context.Context, crop *types.Crop) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}

	cp := *crop
	d.mu.Lock()
	defer d.mu.Unlock()
	d.crops[cp.ID] = &cp
	return nil
}

// UpsertFarm see [storage.MarketWriter].UpsertFarm.
func (d *Datastore) UpsertFarm(ctx context.Context, farm *types.Farm) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}

	cp := *farm
	d.mu.Lock()
	defer d.mu.Unlock()
	d.farms[cp.ID] = &cp
	return nil
}

// UpsertAccount see [storage.MarketWriter].UpsertAccount.
func (d *Datastore) UpsertAccount(ctx context.Context, account *types.Account) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}

	cp := *account
	d.mu.Lock()
	defer d.mu.Unlock()
	d.accounts[cp.ID] = &cp
	return nil
}

// AddPestDiseaseEvent see [storage.MarketWriter].AddPestDiseaseEvent.
func (d *Datastore) AddPestDiseaseEvent(ctx context.Context, cropID string, event *types.PestDiseaseEvent) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}

	cp := *event
	d.mu.Lock()
	defer d.mu.Unlock()
	d.pestEvents[cropID] = append(d.pestEvents[cropID], &cp)
	return nil
}

// AddFertilizationEvent see [storage.MarketWriter].AddFertilizationEvent.
func (d *Datastore) AddFertilizationEvent(ctx context.Context, cropID string, event *types.FertilizationEvent) error {
	if err := ctxErr(ctx); err != nil {
		return err
	}

	cp := *event
	d.mu.Lock()
	defer d.mu.Unlock()
	d.fertEvents[cropID] = append(d.fertEvents[cropID], &cp)
	return nil
}

// IsReady see [storage.DocumentStore].IsReady.
func (d *Datastore) IsReady(ctx context.Context) (bool, error) {
	if err := ctxErr(ctx); err != nil {
		return false, err
	}
	return true, nil
}

// Close see [storage.DocumentStore].Close.
func (d *Datastore) Close() {}

func ctxErr(ctx context.Context) error {
	if ctx.Err() != nil {
		return storage.ErrCancelled
	}
	return nil
}
