// Package sqlcommon contains the SQL query building and row scanning shared
// by the sqlite and postgres document store engines.
package sqlcommon

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"go.opentelemetry.io/otel"

	"github.com/shambalink/shambalink/internal/geo"
	"github.com/shambalink/shambalink/pkg/logger"
	"github.com/shambalink/shambalink/pkg/storage"
	"github.com/shambalink/shambalink/pkg/types"
)

var tracer = otel.Tracer("shambalink/pkg/storage/sqlcommon")

// Config defines the configuration parameters for setting up and managing a
// sql connection.
type Config struct {
	Logger logger.Logger

	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxIdleTime time.Duration
	ConnMaxLifetime time.Duration

	ExportMetrics bool
}

// DatastoreOption defines a function type used for configuring a Config
// object.
type DatastoreOption func(*Config)

// WithLogger returns a DatastoreOption that sets the Logger in the Config.
func WithLogger(l logger.Logger) DatastoreOption {
	return func(cfg *Config) {
		cfg.Logger = l
	}
}

// WithMaxOpenConns returns a DatastoreOption that sets the maximum number of
// open connections in the Config.
func WithMaxOpenConns(c int) DatastoreOption {
	return func(cfg *Config) {
		cfg.MaxOpenConns = c
	}
}

// WithMaxIdleConns returns a DatastoreOption that sets the maximum number of
// idle connections in the Config.
func WithMaxIdleConns(c int) DatastoreOption {
	return func(cfg *Config) {
		cfg.MaxIdleConns = c
	}
}

// WithConnMaxIdleTime returns a DatastoreOption that sets the maximum idle
// time for a connection in the Config.
func WithConnMaxIdleTime(d time.Duration) DatastoreOption {
	return func(cfg *Config) {
		cfg.ConnMaxIdleTime = d
	}
}

// WithConnMaxLifetime returns a DatastoreOption that sets the maximum
// lifetime for a connection in the Config.
func WithConnMaxLifetime(d time.Duration) DatastoreOption {
	return func(cfg *Config) {
		cfg.ConnMaxLifetime = d
	}
}

// WithMetrics returns a DatastoreOption that enables the export of metrics.
func WithMetrics() DatastoreOption {
	return func(cfg *Config) {
		cfg.ExportMetrics = true
	}
}

// NewConfig returns a sql config with the given options applied.
func NewConfig(opts ...DatastoreOption) *Config {
	config := &Config{Logger: logger.NewNoopLogger()}

	for _, opt := range opts {
		opt(config)
	}

	return config
}

// ErrorHandler converts a driver-specific error into one of the storage
// sentinel errors.
type ErrorHandler func(error) error

// Store implements the document store contract over a squirrel statement
// builder. The sqlite and postgres engines differ only in DSN preparation,
// placeholder format and error conversion.
type Store struct {
	stbl        sq.StatementBuilderType
	db          *sql.DB
	handleError ErrorHandler
	logger      logger.Logger
}

// NewStore creates a Store over the given connection.
func NewStore(db *sql.DB, stbl sq.StatementBuilderType, handleError ErrorHandler, l logger.Logger) *Store {
	if l == nil {
		l = logger.NewNoopLogger()
	}
	return &Store{
		stbl:        stbl,
		db:          db,
		handleError: handleError,
		logger:      l,
	}
}

func (s *Store) err(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, storage.ErrNotFound) || errors.Is(err, storage.ErrInvalidRecord) {
		return err
	}
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return storage.ErrCancelled
	}
	return s.handleError(err)
}

// GetListing see [storage.MarketReader].GetListing.
func (s *Store) GetListing(ctx context.Context, id string) (*types.Listing, error) {
	ctx, span := tracer.Start(ctx, "sql.GetListing")
	defer span.End()

	row := s.stbl.
		Select(listingColumns...).
		From("listings").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	listing, err := scanListing(row)
	if err != nil {
		return nil, s.err(err)
	}
	return listing, nil
}

// GetOrder see [storage.MarketReader].GetOrder.
func (s *Store) GetOrder(ctx context.Context, id string) (*types.Order, error) {
	ctx, span := tracer.Start(ctx, "sql.GetOrder")
	defer span.End()

	row := s.stbl.
		Select("id", "listing_id", "buyer_id", "seller_id", "status", "created_at", "updated_at").
		From("orders").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	var o types.Order
	if err := row.Scan(&o.ID, &o.ListingID, &o.BuyerID, &o.SellerID, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, s.err(err)
	}
	return &o, nil
}

// GetOffer see [storage.MarketReader].GetOffer.
func (s *Store) GetOffer(ctx context.Context, id string) (*types.Offer, error) {
	ctx, span := tracer.Start(ctx, "sql.GetOffer")
	defer span.End()

	row := s.stbl.
		Select("id", "listing_id", "buyer_id", "seller_id", "proposed_price", "proposed_quantity", "status", "created_at", "updated_at").
		From("offers").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	var o types.Offer
	if err := row.Scan(&o.ID, &o.ListingID, &o.BuyerID, &o.SellerID, &o.ProposedPrice, &o.ProposedQuantity, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
		return nil, s.err(err)
	}
	return &o, nil
}

// GetCrop see [storage.MarketReader].GetCrop.
func (s *Store) GetCrop(ctx context.Context, id string) (*types.Crop, error) {
	ctx, span := tracer.Start(ctx, "sql.GetCrop")
	defer span.End()

	row := s.stbl.
		Select("id", "farm_id", "crop_type", "variety", "planted_at", "harvested_at").
		From("crops").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	var (
		c           types.Crop
		farmID      sql.NullString
		variety     sql.NullString
		plantedAt   sql.NullTime
		harvestedAt sql.NullTime
	)
	if err := row.Scan(&c.ID, &farmID, &c.CropType, &variety, &plantedAt, &harvestedAt); err != nil {
		return nil, s.err(err)
	}
	c.FarmID = farmID.String
	c.Variety = variety.String
	if plantedAt.Valid {
		t := plantedAt.Time.UTC()
		c.PlantedAt = &t
	}
	if harvestedAt.Valid {
		t := harvestedAt.Time.UTC()
		c.HarvestedAt = &t
	}
	return &c, nil
}

// GetFarm see [storage.MarketReader].GetFarm.
func (s *Store) GetFarm(ctx context.Context, id string) (*types.Farm, error) {
	ctx, span := tracer.Start(ctx, "sql.GetFarm")
	defer span.End()

	row := s.stbl.
		Select("id", "owner_id", "name", "description", "latitude", "longitude", "size_acres", "created_at").
		From("farms").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	var (
		f           types.Farm
		description sql.NullString
		lat, lng    sql.NullFloat64
		sizeAcres   sql.NullFloat64
	)
	if err := row.Scan(&f.ID, &f.OwnerID, &f.Name, &description, &lat, &lng, &sizeAcres, &f.CreatedAt); err != nil {
		return nil, s.err(err)
	}
	f.Description = description.String
	f.SizeAcres = sizeAcres.Float64
	if lat.Valid && lng.Valid {
		f.Location = &types.Point{Latitude: lat.Float64, Longitude: lng.Float64}
	}
	return &f, nil
}

// GetAccount see [storage.MarketReader].GetAccount.
func (s *Store) GetAccount(ctx context.Context, id string) (*types.Account, error) {
	ctx, span := tracer.Start(ctx, "sql.GetAccount")
	defer span.End()

	row := s.stbl.
		Select("id", "roles").
		From("accounts").
		Where(sq.Eq{"id": id}).
		QueryRowContext(ctx)

	var (
		a        types.Account
		rolesRaw []byte
	)
	if err := row.Scan(&a.ID, &rolesRaw); err != nil {
		return nil, s.err(err)
	}
	if len(rolesRaw) > 0 {
		if err := json.Unmarshal(rolesRaw, &a.Roles); err != nil {
			return nil, storage.ErrInvalidRecord
		}
	}
	return &a, nil
}

// QueryListingsByGeohashRange see [storage.MarketReader].QueryListingsByGeohashRange.
func (s *Store) QueryListingsByGeohashRange(ctx context.Context, start, end string) ([]*types.Listing, error) {
	ctx, span := tracer.Start(ctx, "sql.QueryListingsByGeohashRange")
	defer span.End()

	rows, err := s.stbl.
		Select(listingColumns...).
		From("listings").
		Where(sq.GtOrEq{"geohash": start}).
		Where(sq.Lt{"geohash": end}).
		Limit(storage.DefaultMaxRangeResults).
		QueryContext(ctx)
	if err != nil {
		return nil, s.err(err)
	}
	defer rows.Close()

	var listings []*types.Listing
	for rows.Next() {
		listing, err := scanListing(rows)
		if err != nil {
			return nil, s.err(err)
		}
		listings = append(listings, listing)
	}
	if err := rows.Err(); err != nil {
		return nil, s.err(err)
	}
	return listings, nil
}

// ListOrdersByListing see [storage.MarketReader].ListOrdersByListing.
func (s *Store) ListOrdersByListing(ctx context.Context, listingID string, limit int) ([]*types.Order, error) {
	ctx, span := tracer.Start(ctx, "sql.ListOrdersByListing")
	defer span.End()

	sb := s.stbl.
		Select("id", "listing_id", "buyer_id", "seller_id", "status", "created_at", "updated_at").
		From("orders").
		Where(sq.Eq{"listing_id": listingID}).
		OrderBy("created_at DESC")
	if limit > 0 {
		sb = sb.Limit(uint64(limit))
	}

	rows, err := sb.QueryContext(ctx)
	if err != nil {
		return nil, s.err(err)
	}
	defer rows.Close()

	var orders []*types.Order
	for rows.Next() {
		var o types.Order
		if err := rows.Scan(&o.ID, &o.ListingID, &o.BuyerID, &o.SellerID, &o.Status, &o.CreatedAt, &o.UpdatedAt); err != nil {
			return nil, s.err(err)
		}
		orders = append(orders, &o)
	}
	if err := rows.Err(); err != nil {
		return nil, s.err(err)
	}
	return orders, nil
}

// ListPestDiseaseEvents see [storage.MarketReader].ListPestDiseaseEvents.
func (s *Store) ListPestDiseaseEvents(ctx context.Context, cropID string) ([]*types.PestDiseaseEvent, error) {
	ctx, span := tracer.Start(ctx, "sql.ListPestDiseaseEvents")
	defer span.End()

	rows, err := s.stbl.
		Select("id", "name", "treatment", "recorded_at").
		From("crop_pest_events").
		Where(sq.Eq{"crop_id": cropID}).
		OrderBy("recorded_at ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, s.err(err)
	}
	defer rows.Close()

	var events []*types.PestDiseaseEvent
	for rows.Next() {
		var (
			e         types.PestDiseaseEvent
			treatment sql.NullString
		)
		if err := rows.Scan(&e.ID, &e.Name, &treatment, &e.RecordedAt); err != nil {
			return nil, s.err(err)
		}
		e.Treatment = treatment.String
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, s.err(err)
	}
	return events, nil
}

// ListFertilizationEvents see [storage.MarketReader].ListFertilizationEvents.
func (s *Store) ListFertilizationEvents(ctx context.Context, cropID string) ([]*types.FertilizationEvent, error) {
	ctx, span := tracer.Start(ctx, "sql.ListFertilizationEvents")
	defer span.End()

	rows, err := s.stbl.
		Select("id", "product", "quantity_kg", "recorded_at").
		From("crop_fertilization_events").
		Where(sq.Eq{"crop_id": cropID}).
		OrderBy("recorded_at ASC").
		QueryContext(ctx)
	if err != nil {
		return nil, s.err(err)
	}
	defer rows.Close()

	var events []*types.FertilizationEvent
	for rows.Next() {
		var (
			e          types.FertilizationEvent
			quantityKg sql.NullFloat64
		)
		if err := rows.Scan(&e.ID, &e.Product, &quantityKg, &e.RecordedAt); err != nil {
			return nil, s.err(err)
		}
		e.QuantityKg = quantityKg.Float64
		events = append(events, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, s.err(err)
	}
	return events, nil
}

// UpsertListing see [storage.MarketWriter].UpsertListing.
func (s *Store) UpsertListing(ctx context.Context, listing *types.Listing) error {
	ctx, span := tracer.Start(ctx, "sql.UpsertListing")
	defer span.End()

	var (
		lat, lng sql.NullFloat64
		geohash  sql.NullString
	)
	if listing.Location != nil {
		lat = sql.NullFloat64{Float64: listing.Location.Latitude, Valid: true}
		lng = sql.NullFloat64{Float64: listing.Location.Longitude, Valid: true}
		// Index key invariant: geohash always reflects the current location.
		geohash = sql.NullString{
			String: geo.Encode(listing.Location.Latitude, listing.Location.Longitude, geo.StoragePrecision),
			Valid:  true,
		}
	}

	categoryData, err := json.Marshal(listing.CategoryData)
	if err != nil {
		return storage.ErrInvalidRecord
	}

	now := time.Now().UTC()
	createdAt := listing.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err = s.stbl.
		Insert("listings").
		Columns("id", "seller_id", "category", "category_data", "price", "status",
			"latitude", "longitude", "geohash", "created_at", "updated_at").
		Values(listing.ID, listing.SellerID, listing.Category, categoryData, listing.Price, listing.Status,
			lat, lng, geohash, createdAt, now).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			seller_id = excluded.seller_id,
			category = excluded.category,
			category_data = excluded.category_data,
			price = excluded.price,
			status = excluded.status,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			geohash = excluded.geohash,
			updated_at = excluded.updated_at`).
		ExecContext(ctx)
	return s.err(err)
}

// UpsertOrder see [storage.MarketWriter].UpsertOrder.
func (s *Store) UpsertOrder(ctx context.Context, order *types.Order) error {
	ctx, span := tracer.Start(ctx, "sql.UpsertOrder")
	defer span.End()

	now := time.Now().UTC()
	createdAt := order.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := s.stbl.
		Insert("orders").
		Columns("id", "listing_id", "buyer_id", "seller_id", "status", "created_at", "updated_at").
		Values(order.ID, order.ListingID, order.BuyerID, order.SellerID, order.Status, createdAt, now).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			status = excluded.status,
			updated_at = excluded.updated_at`).
		ExecContext(ctx)
	return s.err(err)
}

// UpsertOffer see [storage.MarketWriter].UpsertOffer.
func (s *Store) UpsertOffer(ctx context.Context, offer *types.Offer) error {
	ctx, span := tracer.Start(ctx, "sql.UpsertOffer")
	defer span.End()

	now := time.Now().UTC()
	createdAt := offer.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	_, err := s.stbl.
		Insert("offers").
		Columns("id", "listing_id", "buyer_id", "seller_id", "proposed_price", "proposed_quantity", "status", "created_at", "updated_at").
		Values(offer.ID, offer.ListingID, offer.BuyerID, offer.SellerID, offer.ProposedPrice, offer.ProposedQuantity, offer.Status, createdAt, now).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			proposed_price = excluded.proposed_price,
			proposed_quantity = excluded.proposed_quantity,
			status = excluded.status,
			updated_at = excluded.updated_at`).
		ExecContext(ctx)
	return s.err(err)
}

// UpsertCrop see [storage.MarketWriter].UpsertCrop.
func (s *Store) UpsertCrop(ctx context.Context, crop *types.Crop) error {
	ctx, span := tracer.Start(ctx, "sql.UpsertCrop")
	defer span.End()

	var plantedAt, harvestedAt sql.NullTime
	if crop.PlantedAt != nil {
		plantedAt = sql.NullTime{Time: *crop.PlantedAt, Valid: true}
	}
	if crop.HarvestedAt != nil {
		harvestedAt = sql.NullTime{Time: *crop.HarvestedAt, Valid: true}
	}

	_, err := s.stbl.
		Insert("crops").
		Columns("id", "farm_id", "crop_type", "variety", "planted_at", "harvested_at").
		Values(crop.ID, nullString(crop.FarmID), crop.CropType, nullString(crop.Variety), plantedAt, harvestedAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			farm_id = excluded.farm_id,
			crop_type = excluded.crop_type,
			variety = excluded.variety,
			planted_at = excluded.planted_at,
			harvested_at = excluded.harvested_at`).
		ExecContext(ctx)
	return s.err(err)
}

// UpsertFarm see [storage.MarketWriter].UpsertFarm.
func (s *Store) UpsertFarm(ctx context.Context, farm *types.Farm) error {
	ctx, span := tracer.Start(ctx, "sql.UpsertFarm")
	defer span.End()

	var lat, lng sql.NullFloat64
	if farm.Location != nil {
		lat = sql.NullFloat64{Float64: farm.Location.Latitude, Valid: true}
		lng = sql.NullFloat64{Float64: farm.Location.Longitude, Valid: true}
	}

	createdAt := farm.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}

	_, err := s.stbl.
		Insert("farms").
		Columns("id", "owner_id", "name", "description", "latitude", "longitude", "size_acres", "created_at").
		Values(farm.ID, farm.OwnerID, farm.Name, nullString(farm.Description), lat, lng, farm.SizeAcres, createdAt).
		Suffix(`ON CONFLICT (id) DO UPDATE SET
			owner_id = excluded.owner_id,
			name = excluded.name,
			description = excluded.description,
			latitude = excluded.latitude,
			longitude = excluded.longitude,
			size_acres = excluded.size_acres`).
		ExecContext(ctx)
	return s.err(err)
}

// UpsertAccount see [storage.MarketWriter].UpsertAccount.
func (s *Store) UpsertAccount(ctx context.Context, account *types.Account) error {
	ctx, span := tracer.Start(ctx, "sql.UpsertAccount")
	defer span.End()

	roles, err := json.Marshal(account.Roles)
	if err != nil {
		return storage.ErrInvalidRecord
	}

	_, err = s.stbl.
		Insert("accounts").
		Columns("id", "roles").
		Values(account.ID, roles).
		Suffix(`ON CONFLICT (id) DO UPDATE SET roles = excluded.roles`).
		ExecContext(ctx)
	return s.err(err)
}

// AddPestDiseaseEvent see [storage.MarketWriter].AddPestDiseaseEvent.
func (s *Store) AddPestDiseaseEvent(ctx context.Context, cropID string, event *types.PestDiseaseEvent) error {
	ctx, span := tracer.Start(ctx, "sql.AddPestDiseaseEvent")
	defer span.End()

	_, err := s.stbl.
		Insert("crop_pest_events").
		Columns("id", "crop_id", "name", "treatment", "recorded_at").
		Values(event.ID, cropID, event.Name, nullString(event.Treatment), event.RecordedAt).
		ExecContext(ctx)
	return s.err(err)
}

// AddFertilizationEvent see [storage.MarketWriter].AddFertilizationEvent.
func (s *Store) AddFertilizationEvent(ctx context.Context, cropID string, event *types.FertilizationEvent) error {
	ctx, span := tracer.Start(ctx, "sql.AddFertilizationEvent")
	defer span.End()

	_, err := s.stbl.
		Insert("crop_fertilization_events").
		Columns("id", "crop_id", "product", "quantity_kg", "recorded_at").
		Values(event.ID, cropID, event.Product, event.QuantityKg, event.RecordedAt).
		ExecContext(ctx)
	return s.err(err)
}

// IsReady see [storage.DocumentStore].IsReady.
func (s *Store) IsReady(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return false, err
	}
	return true, nil
}

var listingColumns = []string{
	"id", "seller_id", "category", "category_data", "price", "status",
	"latitude", "longitude", "geohash", "created_at", "updated_at",
}

// rowScanner is implemented by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanListing(row rowScanner) (*types.Listing, error) {
	var (
		l            types.Listing
		categoryData []byte
		lat, lng     sql.NullFloat64
		geohash      sql.NullString
	)
	if err := row.Scan(&l.ID, &l.SellerID, &l.Category, &categoryData, &l.Price, &l.Status,
		&lat, &lng, &geohash, &l.CreatedAt, &l.UpdatedAt); err != nil {
		return nil, err
	}

	if lat.Valid && lng.Valid {
		l.Location = &types.Point{Latitude: lat.Float64, Longitude: lng.Float64}
	}
	l.Geohash = geohash.String

	cd, err := types.DecodeCategoryData(l.Category, categoryData)
	if err != nil {
		return nil, storage.ErrInvalidRecord
	}
	l.CategoryData = cd

	return &l, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
