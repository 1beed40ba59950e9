// Package testutils contains code that is useful in tests.
package testutils

import (
	"context"
	"testing"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/require"

	"github.com/shambalink/shambalink/pkg/storage"
	"github.com/shambalink/shambalink/pkg/types"
)

// CreateRandomString returns a ULID, usable wherever a unique identifier is
// needed in tests.
func CreateRandomString() string {
	return ulid.Make().String()
}

// ActiveListingAt builds an active fresh produce listing at the given
// coordinates. The storage layer computes the geohash on write.
func ActiveListingAt(sellerID string, lat, lng float64) *types.Listing {
	now := time.Now().UTC()
	return &types.Listing{
		ID:       ulid.Make().String(),
		SellerID: sellerID,
		Category: types.CategoryFreshProduce,
		CategoryData: types.FreshProduceData{
			Quantity: 100,
			Unit:     "kg",
		},
		Price:     50,
		Status:    types.ListingStatusActive,
		Location:  &types.Point{Latitude: lat, Longitude: lng},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ListingWithCrop builds an active fresh produce listing linked to a crop.
func ListingWithCrop(sellerID, cropID string) *types.Listing {
	listing := ActiveListingAt(sellerID, -1.2833, 36.8167)
	listing.CategoryData = types.FreshProduceData{
		CropID:   cropID,
		Quantity: 100,
		Unit:     "kg",
	}
	return listing
}

// OrderFor builds a pending order referencing the given listing.
func OrderFor(listing *types.Listing, buyerID string) *types.Order {
	now := time.Now().UTC()
	return &types.Order{
		ID:        ulid.Make().String(),
		ListingID: listing.ID,
		BuyerID:   buyerID,
		SellerID:  listing.SellerID,
		Status:    types.OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// MustSeedProvenanceChain writes a full farm -> crop -> listing -> order
// chain and returns each record. The caller owns the returned records.
func MustSeedProvenanceChain(t *testing.T, ds storage.DocumentStore, sellerID, buyerID string) (*types.Farm, *types.Crop, *types.Listing, *types.Order) {
	t.Helper()
	ctx := context.Background()

	farm := &types.Farm{
		ID:        ulid.Make().String(),
		OwnerID:   sellerID,
		Name:      "Green Valley Farm",
		Location:  &types.Point{Latitude: -1.29, Longitude: 36.81},
		SizeAcres: 12,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, ds.UpsertFarm(ctx, farm))

	planted := time.Now().UTC().Add(-120 * 24 * time.Hour)
	crop := &types.Crop{
		ID:        ulid.Make().String(),
		FarmID:    farm.ID,
		CropType:  "maize",
		Variety:   "H614",
		PlantedAt: &planted,
	}
	require.NoError(t, ds.UpsertCrop(ctx, crop))

	listing := ListingWithCrop(sellerID, crop.ID)
	require.NoError(t, ds.UpsertListing(ctx, listing))

	order := OrderFor(listing, buyerID)
	require.NoError(t, ds.UpsertOrder(ctx, order))

	return farm, crop, listing, order
}
