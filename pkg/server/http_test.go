package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/shambalink/shambalink/pkg/server/commands"
	"github.com/shambalink/shambalink/pkg/storage/memory"
	"github.com/shambalink/shambalink/pkg/testutils"
	"github.com/shambalink/shambalink/pkg/types"
)

func newTestServer(t *testing.T) (*Server, *memory.Datastore) {
	t.Helper()
	ds := memory.New()
	t.Cleanup(ds.Close)
	return New(&Dependencies{Datastore: ds}), ds
}

func TestHandler_search_listings(t *testing.T) {
	srv, ds := newTestServer(t)
	handler := srv.Handler()

	ctx := context.Background()
	inside := testutils.ActiveListingAt("seller-1", -1.30, 36.82)
	outside := testutils.ActiveListingAt("seller-1", -1.40, 36.90)
	require.NoError(t, ds.UpsertListing(ctx, inside))
	require.NoError(t, ds.UpsertListing(ctx, outside))

	body := `{"latitude": -1.2833, "longitude": 36.8167, "radiusMeters": 5000}`
	req := httptest.NewRequest(http.MethodPost, "/v1/listings/search", strings.NewReader(body))
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp commands.SearchListingsResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	require.Len(t, resp.Listings, 1)
	require.Equal(t, inside.ID, resp.Listings[0].ID)
}

func TestHandler_search_listings_bad_request(t *testing.T) {
	srv, _ := newTestServer(t)
	handler := srv.Handler()

	t.Run("malformed_body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/v1/listings/search", strings.NewReader("{"))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("invalid_coordinates", func(t *testing.T) {
		body := `{"latitude": 95, "longitude": 0, "radiusMeters": 100}`
		req := httptest.NewRequest(http.MethodPost, "/v1/listings/search", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)

		var apiErr struct {
			Code    string `json:"code"`
			Message string `json:"message"`
		}
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
		require.Equal(t, "InvalidArgument", apiErr.Code)
	})

	t.Run("invalid_radius", func(t *testing.T) {
		body := `{"latitude": 0, "longitude": 0, "radiusMeters": -1}`
		req := httptest.NewRequest(http.MethodPost, "/v1/listings/search", strings.NewReader(body))
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandler_traceability(t *testing.T) {
	srv, ds := newTestServer(t)
	handler := srv.Handler()

	buyerID := "buyer-1"
	_, _, listing, order := testutils.MustSeedProvenanceChain(t, ds, "seller-1", buyerID)

	t.Run("order_rooted_as_buyer", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/traceability?identifier="+order.ID+"&identifierKind=order", nil)
		req.Header.Set("X-Actor-Id", buyerID)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp commands.TraceabilityResponse
		require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
		require.NotNil(t, resp.Report)
		require.Equal(t, order.ID, resp.Report.Order.Record.ID)
		require.Equal(t, listing.ID, resp.Report.Listing.Record.ID)
	})

	t.Run("order_rooted_as_stranger_is_forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/traceability?identifier="+order.ID+"&identifierKind=order", nil)
		req.Header.Set("X-Actor-Id", "stranger")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("order_rooted_as_admin", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/traceability?identifier="+order.ID+"&identifierKind=order", nil)
		req.Header.Set("X-Actor-Id", "root")
		req.Header.Set("X-Actor-Roles", "support, admin")
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("unknown_identifier_is_not_found", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/traceability?identifier=nope&identifierKind=listing", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("unknown_kind_is_bad_request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/v1/traceability?identifier=x&identifierKind=farm", nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestActorFromRequest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	require.Equal(t, types.Actor{}, actorFromRequest(req))

	req.Header.Set("X-Actor-Id", "acct-1")
	req.Header.Set("X-Actor-Roles", "farmer, admin, ")
	actor := actorFromRequest(req)
	require.Equal(t, "acct-1", actor.ID)
	require.Equal(t, []string{"farmer", "admin"}, actor.Roles)
}
