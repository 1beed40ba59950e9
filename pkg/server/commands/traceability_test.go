package commands

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/shambalink/shambalink/pkg/storage/memory"
	"github.com/shambalink/shambalink/pkg/testutils"
	"github.com/shambalink/shambalink/pkg/types"
)

func TestTraceability_validation(t *testing.T) {
	query := NewTraceabilityQuery(memory.New())
	ctx := context.Background()

	t.Run("missing_identifier", func(t *testing.T) {
		_, err := query.Execute(ctx, types.Actor{}, &TraceabilityRequest{IdentifierKind: "order"})
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("unknown_identifier_kind", func(t *testing.T) {
		_, err := query.Execute(ctx, types.Actor{}, &TraceabilityRequest{Identifier: "x", IdentifierKind: "crop"})
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})

	t.Run("empty_identifier_kind", func(t *testing.T) {
		_, err := query.Execute(ctx, types.Actor{}, &TraceabilityRequest{Identifier: "x"})
		require.Equal(t, codes.InvalidArgument, status.Code(err))
	})
}

func TestTraceability_error_mapping(t *testing.T) {
	ds := memory.New()
	t.Cleanup(ds.Close)
	ctx := context.Background()

	buyerID := testutils.CreateRandomString()
	_, _, listing, order := testutils.MustSeedProvenanceChain(t, ds, testutils.CreateRandomString(), buyerID)

	query := NewTraceabilityQuery(ds)

	t.Run("unknown_start_node_is_not_found", func(t *testing.T) {
		_, err := query.Execute(ctx, types.Actor{ID: buyerID}, &TraceabilityRequest{
			Identifier:     "no-such-order",
			IdentifierKind: "order",
		})
		require.Equal(t, codes.NotFound, status.Code(err))
		require.Contains(t, status.Convert(err).Message(), "no-such-order")
	})

	t.Run("unauthorized_actor_is_denied", func(t *testing.T) {
		_, err := query.Execute(ctx, types.Actor{ID: "stranger"}, &TraceabilityRequest{
			Identifier:     order.ID,
			IdentifierKind: "order",
		})
		require.Equal(t, codes.PermissionDenied, status.Code(err))
	})

	t.Run("authorized_actor_gets_report", func(t *testing.T) {
		resp, err := query.Execute(ctx, types.Actor{ID: buyerID}, &TraceabilityRequest{
			Identifier:     order.ID,
			IdentifierKind: "order",
		})
		require.NoError(t, err)
		require.NotNil(t, resp.Report)
		require.Equal(t, order.ID, resp.Report.Order.Record.ID)
	})

	t.Run("listing_rooted_report", func(t *testing.T) {
		resp, err := query.Execute(ctx, types.Actor{}, &TraceabilityRequest{
			Identifier:     listing.ID,
			IdentifierKind: "listing",
		})
		require.NoError(t, err)
		require.Nil(t, resp.Report.Order)
		require.Equal(t, listing.ID, resp.Report.Listing.Record.ID)
	})
}
