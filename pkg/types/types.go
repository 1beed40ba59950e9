// Package types contains the marketplace domain model shared by the
// discovery and provenance subsystems. All records are owned by the CRUD
// collaborators; this subsystem only reads them.
package types

import (
	"encoding/json"
	"fmt"
	"time"
)

// RecordKind identifies the kind of record an authorization decision is
// being made about.
type RecordKind string

const (
	KindOrder   RecordKind = "order"
	KindListing RecordKind = "listing"
	KindCrop    RecordKind = "crop"
	KindFarm    RecordKind = "farm"
)

// ListingCategory is the closed set of listing categories.
type ListingCategory string

const (
	CategoryFreshProduce ListingCategory = "fresh_produce"
	CategoryAgroInputs   ListingCategory = "agro_inputs"
	CategoryService      ListingCategory = "service"
)

// ListingStatus is the lifecycle status of a listing. Listings referenced by
// an open order are never hard-deleted; they transition to inactive or sold.
type ListingStatus string

const (
	ListingStatusActive   ListingStatus = "active"
	ListingStatusInactive ListingStatus = "inactive"
	ListingStatusSold     ListingStatus = "sold"
)

// OrderStatus is the order state machine. Transitions are validated by the
// order CRUD collaborator, not here.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusInTransit OrderStatus = "in_transit"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OfferStatus is the lifecycle status of an offer.
type OfferStatus string

const (
	OfferStatusPending  OfferStatus = "pending"
	OfferStatusAccepted OfferStatus = "accepted"
	OfferStatusRejected OfferStatus = "rejected"
)

// Point is a WGS84 coordinate pair.
type Point struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// Actor is the authenticated principal attached to every request. It is
// resolved once per request and passed by value; this subsystem never
// mutates accounts.
type Actor struct {
	ID    string   `json:"id"`
	Roles []string `json:"roles"`
}

// HasRole reports whether the actor carries the given role tag.
func (a Actor) HasRole(role string) bool {
	for _, r := range a.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// RoleAdmin actors bypass all other authorization rules.
const RoleAdmin = "admin"

// CategoryData is the closed tagged union of per-category listing payloads.
// Traversal logic pattern-matches on the concrete type instead of probing
// optional fields.
type CategoryData interface {
	isCategoryData()
}

// FreshProduceData links a listing to the crop it was harvested from.
type FreshProduceData struct {
	CropID      string     `json:"cropId,omitempty"`
	Quantity    float64    `json:"quantity,omitempty"`
	Unit        string     `json:"unit,omitempty"`
	HarvestDate *time.Time `json:"harvestDate,omitempty"`
}

// AgroInputsData describes fertilizer, seed and similar input listings.
type AgroInputsData struct {
	InputType    string `json:"inputType,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`
}

// ServiceData describes service listings such as tractor hire.
type ServiceData struct {
	ServiceType string  `json:"serviceType,omitempty"`
	RatePerDay  float64 `json:"ratePerDay,omitempty"`
}

func (FreshProduceData) isCategoryData() {}
func (AgroInputsData) isCategoryData()   {}
func (ServiceData) isCategoryData()      {}

// DecodeCategoryData decodes the raw JSON payload for the given category
// into its concrete variant. An unknown category is an error so callers
// never traverse an unrecognized shape.
func DecodeCategoryData(category ListingCategory, raw []byte) (CategoryData, error) {
	if len(raw) == 0 {
		raw = []byte("{}")
	}
	switch category {
	case CategoryFreshProduce:
		var d FreshProduceData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case CategoryAgroInputs:
		var d AgroInputsData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	case CategoryService:
		var d ServiceData
		if err := json.Unmarshal(raw, &d); err != nil {
			return nil, err
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown listing category %q", category)
	}
}

// Listing is a marketplace listing. Geohash is always the canonical encoding
// of Location; the storage layer recomputes it whenever Location changes.
type Listing struct {
	ID           string          `json:"id"`
	SellerID     string          `json:"sellerId"`
	Category     ListingCategory `json:"category"`
	CategoryData CategoryData    `json:"categoryData,omitempty"`
	Price        float64         `json:"price"`
	Status       ListingStatus   `json:"status"`
	Location     *Point          `json:"location,omitempty"`
	Geohash      string          `json:"geohash,omitempty"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

// CropID returns the linked crop identifier for fresh produce listings, or
// empty when the listing has no crop linkage.
func (l *Listing) CropID() string {
	if d, ok := l.CategoryData.(FreshProduceData); ok {
		return d.CropID
	}
	return ""
}

// Order links a buyer to a listing. The listing reference is a snapshot
// taken at creation time; later listing mutations do not rewrite it.
type Order struct {
	ID        string      `json:"id"`
	ListingID string      `json:"listingId"`
	BuyerID   string      `json:"buyerId"`
	SellerID  string      `json:"sellerId"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
	UpdatedAt time.Time   `json:"updatedAt"`
}

// Summary projects an order down to the fields exposed in a listing's
// recent-order history.
func (o *Order) Summary() OrderSummary {
	return OrderSummary{
		ID:        o.ID,
		BuyerID:   o.BuyerID,
		Status:    o.Status,
		CreatedAt: o.CreatedAt,
	}
}

// OrderSummary is the reduced order shape attached to listing-rooted
// traceability reports.
type OrderSummary struct {
	ID        string      `json:"id"`
	BuyerID   string      `json:"buyerId"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

// Offer is a price/quantity proposal on a listing. Offers exist
// independently of orders.
type Offer struct {
	ID               string      `json:"id"`
	ListingID        string      `json:"listingId"`
	BuyerID          string      `json:"buyerId"`
	SellerID         string      `json:"sellerId"`
	ProposedPrice    float64     `json:"proposedPrice"`
	ProposedQuantity float64     `json:"proposedQuantity"`
	Status           OfferStatus `json:"status"`
	CreatedAt        time.Time   `json:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt"`
}

// Crop is a planted crop on a farm, linked from fresh produce listings.
// Its sub-event collections are append-only.
type Crop struct {
	ID          string     `json:"id"`
	FarmID      string     `json:"farmId,omitempty"`
	CropType    string     `json:"cropType"`
	Variety     string     `json:"variety,omitempty"`
	PlantedAt   *time.Time `json:"plantedAt,omitempty"`
	HarvestedAt *time.Time `json:"harvestedAt,omitempty"`
}

// PestDiseaseEvent records a pest or disease encountered on a crop.
type PestDiseaseEvent struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Treatment  string    `json:"treatment,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// FertilizationEvent records a fertilizer application on a crop.
type FertilizationEvent struct {
	ID         string    `json:"id"`
	Product    string    `json:"product"`
	QuantityKg float64   `json:"quantityKg,omitempty"`
	RecordedAt time.Time `json:"recordedAt"`
}

// Farm is the origin farm of a crop.
type Farm struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Location    *Point    `json:"location,omitempty"`
	SizeAcres   float64   `json:"sizeAcres,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Account carries the role tags used for authorization decisions. Never
// mutated by this subsystem.
type Account struct {
	ID    string   `json:"id"`
	Roles []string `json:"roles"`
}
