package memory

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"github.com/shambalink/shambalink/internal/geo"
	"github.com/shambalink/shambalink/pkg/storage"
	"github.com/shambalink/shambalink/pkg/testutils"
	"github.com/shambalink/shambalink/pkg/types"
)

func TestDatastore_point_lookups(t *testing.T) {
	ds := New()
	t.Cleanup(ds.Close)
	ctx := context.Background()

	t.Run("missing_records_return_not_found", func(t *testing.T) {
		_, err := ds.GetListing(ctx, "nope")
		require.ErrorIs(t, err, storage.ErrNotFound)
		_, err = ds.GetOrder(ctx, "nope")
		require.ErrorIs(t, err, storage.ErrNotFound)
		_, err = ds.GetOffer(ctx, "nope")
		require.ErrorIs(t, err, storage.ErrNotFound)
		_, err = ds.GetCrop(ctx, "nope")
		require.ErrorIs(t, err, storage.ErrNotFound)
		_, err = ds.GetFarm(ctx, "nope")
		require.ErrorIs(t, err, storage.ErrNotFound)
		_, err = ds.GetAccount(ctx, "nope")
		require.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("upsert_then_get", func(t *testing.T) {
		listing := testutils.ActiveListingAt("seller-1", -1.2833, 36.8167)
		require.NoError(t, ds.UpsertListing(ctx, listing))

		got, err := ds.GetListing(ctx, listing.ID)
		require.NoError(t, err)
		require.Equal(t, listing.ID, got.ID)
		require.Equal(t, geo.Encode(-1.2833, 36.8167, geo.StoragePrecision), got.Geohash)
	})

	t.Run("reads_return_copies", func(t *testing.T) {
		listing := testutils.ActiveListingAt("seller-1", -1.29, 36.82)
		require.NoError(t, ds.UpsertListing(ctx, listing))

		first, err := ds.GetListing(ctx, listing.ID)
		require.NoError(t, err)
		first.Status = types.ListingStatusSold

		second, err := ds.GetListing(ctx, listing.ID)
		require.NoError(t, err)
		require.Equal(t, types.ListingStatusActive, second.Status)
	})

	t.Run("upsert_replaces", func(t *testing.T) {
		listing := testutils.ActiveListingAt("seller-1", -1.29, 36.82)
		require.NoError(t, ds.UpsertListing(ctx, listing))

		listing.Price = 75
		require.NoError(t, ds.UpsertListing(ctx, listing))

		got, err := ds.GetListing(ctx, listing.ID)
		require.NoError(t, err)
		require.Equal(t, 75.0, got.Price)
	})
}

func TestDatastore_geohash_recomputed_on_move(t *testing.T) {
	ds := New()
	t.Cleanup(ds.Close)
	ctx := context.Background()

	listing := testutils.ActiveListingAt("seller-1", -1.2833, 36.8167)
	require.NoError(t, ds.UpsertListing(ctx, listing))

	listing.Location = &types.Point{Latitude: 51.5072, Longitude: -0.1276}
	require.NoError(t, ds.UpsertListing(ctx, listing))

	got, err := ds.GetListing(ctx, listing.ID)
	require.NoError(t, err)
	require.Equal(t, geo.Encode(51.5072, -0.1276, geo.StoragePrecision), got.Geohash)
}

func TestDatastore_geohash_range_query(t *testing.T) {
	ds := New()
	t.Cleanup(ds.Close)
	ctx := context.Background()

	nairobi := testutils.ActiveListingAt("seller-1", -1.2833, 36.8167)
	london := testutils.ActiveListingAt("seller-1", 51.5072, -0.1276)
	require.NoError(t, ds.UpsertListing(ctx, nairobi))
	require.NoError(t, ds.UpsertListing(ctx, london))

	nairobiHash := geo.Encode(-1.2833, 36.8167, geo.StoragePrecision)
	prefix := nairobiHash[:4]
	end, ok := geo.Increment(prefix)
	require.True(t, ok)

	got, err := ds.QueryListingsByGeohashRange(ctx, prefix, end)
	require.NoError(t, err)
	require.Len(t, got, 1)
	require.Equal(t, nairobi.ID, got[0].ID)

	// Half-open: a range ending exactly at the stored key excludes it.
	got, err = ds.QueryListingsByGeohashRange(ctx, prefix, nairobiHash)
	require.NoError(t, err)
	require.Empty(t, got)

	// Inclusive start.
	got, err = ds.QueryListingsByGeohashRange(ctx, nairobiHash, nairobiHash+"~")
	require.NoError(t, err)
	require.Len(t, got, 1)
}

func TestDatastore_list_orders_by_listing(t *testing.T) {
	ds := New()
	t.Cleanup(ds.Close)
	ctx := context.Background()

	listing := testutils.ActiveListingAt("seller-1", -1.2833, 36.8167)
	require.NoError(t, ds.UpsertListing(ctx, listing))

	base := time.Now().UTC().Add(-time.Hour)
	var ids []string
	for i := 0; i < 7; i++ {
		o := testutils.OrderFor(listing, "buyer")
		o.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, ds.UpsertOrder(ctx, o))
		ids = append(ids, o.ID)
	}

	// Unrelated order that must not appear.
	other := testutils.ActiveListingAt("seller-2", -1.30, 36.82)
	require.NoError(t, ds.UpsertListing(ctx, other))
	require.NoError(t, ds.UpsertOrder(ctx, testutils.OrderFor(other, "buyer")))

	got, err := ds.ListOrdersByListing(ctx, listing.ID, 5)
	require.NoError(t, err)
	require.Len(t, got, 5)
	for i, o := range got {
		// Newest first.
		require.Equal(t, ids[len(ids)-1-i], o.ID)
	}

	got, err = ds.ListOrdersByListing(ctx, listing.ID, 100)
	require.NoError(t, err)
	require.Len(t, got, 7)
}

func TestDatastore_sub_events_sorted_ascending(t *testing.T) {
	ds := New()
	t.Cleanup(ds.Close)
	ctx := context.Background()

	crop := &types.Crop{ID: ulid.Make().String(), CropType: "maize"}
	require.NoError(t, ds.UpsertCrop(ctx, crop))

	base := time.Now().UTC().Add(-time.Hour)
	// Insert out of order on purpose.
	for _, offset := range []int{2, 0, 1} {
		require.NoError(t, ds.AddFertilizationEvent(ctx, crop.ID, &types.FertilizationEvent{
			ID:         ulid.Make().String(),
			Product:    "NPK",
			RecordedAt: base.Add(time.Duration(offset) * time.Minute),
		}))
	}

	events, err := ds.ListFertilizationEvents(ctx, crop.ID)
	require.NoError(t, err)
	require.Len(t, events, 3)
	for i := 1; i < len(events); i++ {
		require.False(t, events[i].RecordedAt.Before(events[i-1].RecordedAt))
	}

	// Unknown crop yields an empty collection, not an error.
	events, err = ds.ListFertilizationEvents(ctx, "nope")
	require.NoError(t, err)
	require.Empty(t, events)
}

func TestDatastore_respects_context_cancellation(t *testing.T) {
	ds := New()
	t.Cleanup(ds.Close)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ds.GetListing(ctx, "any")
	require.ErrorIs(t, err, storage.ErrCancelled)

	_, err = ds.QueryListingsByGeohashRange(ctx, "0", "z")
	require.ErrorIs(t, err, storage.ErrCancelled)
}

func TestDatastore_is_ready(t *testing.T) {
	ds := New()
	t.Cleanup(ds.Close)

	ready, err := ds.IsReady(context.Background())
	require.NoError(t, err)
	require.True(t, ready)
}
