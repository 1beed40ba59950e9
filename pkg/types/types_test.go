package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDecodeCategoryData(t *testing.T) {
	t.Run("fresh_produce", func(t *testing.T) {
		data, err := DecodeCategoryData(CategoryFreshProduce, []byte(`{"cropId":"crop-1","quantity":100,"unit":"kg"}`))
		require.NoError(t, err)

		produce, ok := data.(FreshProduceData)
		require.True(t, ok)
		require.Equal(t, "crop-1", produce.CropID)
		require.Equal(t, 100.0, produce.Quantity)
	})

	t.Run("agro_inputs", func(t *testing.T) {
		data, err := DecodeCategoryData(CategoryAgroInputs, []byte(`{"inputType":"fertilizer"}`))
		require.NoError(t, err)

		inputs, ok := data.(AgroInputsData)
		require.True(t, ok)
		require.Equal(t, "fertilizer", inputs.InputType)
	})

	t.Run("service", func(t *testing.T) {
		data, err := DecodeCategoryData(CategoryService, []byte(`{"serviceType":"tractor_hire","ratePerDay":80}`))
		require.NoError(t, err)

		svc, ok := data.(ServiceData)
		require.True(t, ok)
		require.Equal(t, "tractor_hire", svc.ServiceType)
	})

	t.Run("empty_payload_decodes_to_zero_value", func(t *testing.T) {
		data, err := DecodeCategoryData(CategoryFreshProduce, nil)
		require.NoError(t, err)
		require.Equal(t, FreshProduceData{}, data)
	})

	t.Run("unknown_category_is_rejected", func(t *testing.T) {
		_, err := DecodeCategoryData(ListingCategory("livestock"), []byte(`{}`))
		require.Error(t, err)
	})
}

func TestListing_UnmarshalJSON(t *testing.T) {
	raw := `{
		"id": "listing-1",
		"sellerId": "seller-1",
		"category": "fresh_produce",
		"categoryData": {"cropId": "crop-1", "quantity": 50, "unit": "kg"},
		"price": 120,
		"status": "active",
		"location": {"latitude": -1.2833, "longitude": 36.8167}
	}`

	var listing Listing
	require.NoError(t, json.Unmarshal([]byte(raw), &listing))

	require.Equal(t, "listing-1", listing.ID)
	require.Equal(t, CategoryFreshProduce, listing.Category)
	require.Equal(t, "crop-1", listing.CropID())
	require.NotNil(t, listing.Location)
	require.Equal(t, -1.2833, listing.Location.Latitude)
}

func TestListing_CropID(t *testing.T) {
	produce := &Listing{CategoryData: FreshProduceData{CropID: "crop-1"}}
	require.Equal(t, "crop-1", produce.CropID())

	inputs := &Listing{CategoryData: AgroInputsData{InputType: "seed"}}
	require.Empty(t, inputs.CropID())

	var none Listing
	require.Empty(t, none.CropID())
}

func TestActor_HasRole(t *testing.T) {
	actor := Actor{ID: "acct-1", Roles: []string{"farmer", RoleAdmin}}
	require.True(t, actor.HasRole(RoleAdmin))
	require.True(t, actor.HasRole("farmer"))
	require.False(t, actor.HasRole("buyer"))
	require.False(t, Actor{}.HasRole(RoleAdmin))
}

func TestOrder_Summary(t *testing.T) {
	order := Order{ID: "order-1", ListingID: "listing-1", BuyerID: "buyer-1", SellerID: "seller-1", Status: OrderStatusPending}
	summary := order.Summary()

	require.Equal(t, "order-1", summary.ID)
	require.Equal(t, "buyer-1", summary.BuyerID)
	require.Equal(t, OrderStatusPending, summary.Status)
}
