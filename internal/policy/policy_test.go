package policy

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shambalink/shambalink/pkg/types"
)

func TestDecide(t *testing.T) {
	admin := types.Actor{ID: "acct-admin", Roles: []string{types.RoleAdmin}}
	buyer := types.Actor{ID: "acct-buyer"}
	seller := types.Actor{ID: "acct-seller"}
	stranger := types.Actor{ID: "acct-stranger"}
	anonymous := types.Actor{}

	order := &types.Order{ID: "order-1", BuyerID: buyer.ID, SellerID: seller.ID}
	activeListing := &types.Listing{ID: "listing-1", SellerID: seller.ID, Status: types.ListingStatusActive}
	soldListing := &types.Listing{ID: "listing-2", SellerID: seller.ID, Status: types.ListingStatusSold}

	tests := []struct {
		name    string
		actor   types.Actor
		kind    types.RecordKind
		record  any
		allowed bool
	}{
		{name: "admin_reads_order", actor: admin, kind: types.KindOrder, record: order, allowed: true},
		{name: "admin_reads_sold_listing", actor: admin, kind: types.KindListing, record: soldListing, allowed: true},
		{name: "buyer_reads_own_order", actor: buyer, kind: types.KindOrder, record: order, allowed: true},
		{name: "seller_reads_own_order", actor: seller, kind: types.KindOrder, record: order, allowed: true},
		{name: "stranger_cannot_read_order", actor: stranger, kind: types.KindOrder, record: order, allowed: false},
		{name: "anonymous_cannot_read_order", actor: anonymous, kind: types.KindOrder, record: order, allowed: false},
		{name: "anyone_reads_active_listing", actor: stranger, kind: types.KindListing, record: activeListing, allowed: true},
		{name: "anonymous_reads_active_listing", actor: anonymous, kind: types.KindListing, record: activeListing, allowed: true},
		{name: "seller_reads_own_sold_listing", actor: seller, kind: types.KindListing, record: soldListing, allowed: true},
		{name: "stranger_cannot_read_sold_listing", actor: stranger, kind: types.KindListing, record: soldListing, allowed: false},
		{name: "crop_without_linked_hop_denied", actor: stranger, kind: types.KindCrop, record: &types.Crop{ID: "crop-1"}, allowed: false},
		{name: "farm_without_linked_hop_denied", actor: stranger, kind: types.KindFarm, record: &types.Farm{ID: "farm-1"}, allowed: false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			decision := Decide(test.actor, test.kind, test.record)
			require.Equal(t, test.allowed, decision.Allowed)
			if !test.allowed {
				// Denials never disclose which rule matched.
				require.Equal(t, ReasonForbidden, decision.Reason)
			} else {
				require.Empty(t, decision.Reason)
			}
		})
	}
}

func TestDecide_never_panics_on_bad_records(t *testing.T) {
	actor := types.Actor{ID: "acct-1"}

	require.Equal(t, Deny, Decide(actor, types.KindOrder, nil))
	require.Equal(t, Deny, Decide(actor, types.KindOrder, (*types.Order)(nil)))
	require.Equal(t, Deny, Decide(actor, types.KindOrder, "not an order"))
	require.Equal(t, Deny, Decide(actor, types.KindListing, (*types.Listing)(nil)))
	require.Equal(t, Deny, Decide(actor, types.KindListing, &types.Order{}))
	require.Equal(t, Deny, Decide(actor, types.RecordKind("bogus"), &types.Listing{}))
}

func TestDecideLinked(t *testing.T) {
	require.Equal(t, Allow, DecideLinked(Allow))
	require.Equal(t, Deny, DecideLinked(Deny))

	// The carried decision collapses to the canonical values; no upstream
	// reason text survives.
	require.Equal(t, Deny, DecideLinked(Decision{Allowed: false, Reason: "anything"}))
}
