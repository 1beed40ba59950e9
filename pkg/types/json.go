package types

import (
	"encoding/json"
	"time"
)

// listingEnvelope mirrors Listing with the category payload left raw so the
// variant can be decoded against the category tag.
type listingEnvelope struct {
	ID           string          `json:"id"`
	SellerID     string          `json:"sellerId"`
	Category     ListingCategory `json:"category"`
	CategoryData json.RawMessage `json:"categoryData,omitempty"`
	Price        float64         `json:"price"`
	Status       ListingStatus   `json:"status"`
	Location     *Point          `json:"location,omitempty"`
	Geohash      string          `json:"geohash,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// UnmarshalJSON decodes a listing, resolving the category payload into its
// concrete variant.
func (l *Listing) UnmarshalJSON(data []byte) error {
	var env listingEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}

	*l = Listing{
		ID:        env.ID,
		SellerID:  env.SellerID,
		Category:  env.Category,
		Price:     env.Price,
		Status:    env.Status,
		Location:  env.Location,
		Geohash:   env.Geohash,
		CreatedAt: env.CreatedAt,
		UpdatedAt: env.UpdatedAt,
	}

	if env.Category == "" {
		return nil
	}

	cd, err := DecodeCategoryData(env.Category, env.CategoryData)
	if err != nil {
		return err
	}
	l.CategoryData = cd
	return nil
}
