// Package policy implements the access control decisions shared by the
// discovery and provenance paths. Evaluation is pure: no I/O, no hidden
// state, and it never panics; unexpected inputs resolve to a denial.
package policy

import (
	"github.com/shambalink/shambalink/pkg/types"
)

// ReasonForbidden is the only reason code surfaced on denials. Callers must
// not leak which specific rule denied.
const ReasonForbidden = "forbidden"

// Decision is the outcome of a policy evaluation.
type Decision struct {
	Allowed bool
	Reason  string
}

// Allow is the affirmative decision.
var Allow = Decision{Allowed: true}

// Deny is the default denial.
var Deny = Decision{Allowed: false, Reason: ReasonForbidden}

// Decide evaluates the access rules for the given record. Rules are applied
// in order and the first match wins:
//
//  1. admins may read anything;
//  2. orders are visible to their buyer and seller;
//  3. listings are visible to their seller and, when active, to everyone;
//  4. anything else is denied.
//
// Crop and farm records derive their decision from the hop that referenced
// them; see DecideLinked.
func Decide(actor types.Actor, kind types.RecordKind, record any) Decision {
	if actor.HasRole(types.RoleAdmin) {
		return Allow
	}

	switch kind {
	case types.KindOrder:
		order, ok := record.(*types.Order)
		if !ok || order == nil {
			return Deny
		}
		if actor.ID != "" && (actor.ID == order.BuyerID || actor.ID == order.SellerID) {
			return Allow
		}

	case types.KindListing:
		listing, ok := record.(*types.Listing)
		if !ok || listing == nil {
			return Deny
		}
		if actor.ID != "" && actor.ID == listing.SellerID {
			return Allow
		}
		if listing.Status == types.ListingStatusActive {
			return Allow
		}
	}

	return Deny
}

// DecideLinked resolves access to a crop or farm reached through an already
// evaluated order or listing hop. The upstream decision is carried forward
// rather than re-deriving ownership, so a single request cannot observe two
// inconsistent answers for the same chain.
func DecideLinked(upstream Decision) Decision {
	if upstream.Allowed {
		return Allow
	}
	return Deny
}
