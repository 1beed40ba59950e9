// Package server implements the marketplace discovery and provenance
// service backend.
package server

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"

	"github.com/shambalink/shambalink/pkg/logger"
	"github.com/shambalink/shambalink/pkg/server/commands"
	"github.com/shambalink/shambalink/pkg/storage"
	"github.com/shambalink/shambalink/pkg/types"
)

var tracer = otel.Tracer("shambalink/pkg/server")

var requestDurationHistogram = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "shambalink",
	Name:      "request_duration_seconds",
	Help:      "Duration of server requests by operation.",
	Buckets:   []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
}, []string{"operation"})

// A Server exposes the two subsystem operations over an injected document
// store. It holds no mutable state of its own; every operation is a
// read-only request/response invocation.
type Server struct {
	logger    logger.Logger
	datastore storage.DocumentStore

	searchQuery *commands.SearchListingsQuery
	traceQuery  *commands.TraceabilityQuery
}

// Dependencies are the collaborators injected into a Server.
type Dependencies struct {
	Datastore storage.DocumentStore
	Logger    logger.Logger

	// MaxConcurrentRangeReads bounds the fan-out of one spatial search.
	// Zero means the command's default.
	MaxConcurrentRangeReads int
}

// New creates a new Server which uses the supplied backends for reading
// data.
func New(deps *Dependencies) *Server {
	l := deps.Logger
	if l == nil {
		l = logger.NewNoopLogger()
	}

	searchOpts := []commands.SearchListingsQueryOption{
		commands.WithSearchLogger(l),
	}
	if deps.MaxConcurrentRangeReads > 0 {
		searchOpts = append(searchOpts, commands.WithMaxConcurrentRangeReads(deps.MaxConcurrentRangeReads))
	}

	return &Server{
		logger:    l,
		datastore: deps.Datastore,
		searchQuery: commands.NewSearchListingsQuery(
			deps.Datastore,
			searchOpts...,
		),
		traceQuery: commands.NewTraceabilityQuery(
			deps.Datastore,
			commands.WithTraceabilityLogger(l),
		),
	}
}

// SearchListingsByLocation returns the unique listings within the requested
// radius of the given point, visible to the actor.
func (s *Server) SearchListingsByLocation(ctx context.Context, actor types.Actor, req *commands.SearchListingsRequest) (*commands.SearchListingsResponse, error) {
	ctx, span := tracer.Start(ctx, "SearchListingsByLocation")
	defer span.End()

	timer := prometheus.NewTimer(requestDurationHistogram.WithLabelValues("search_listings_by_location"))
	defer timer.ObserveDuration()

	return s.searchQuery.Execute(ctx, actor, req)
}

// GetProductTraceability resolves the provenance report rooted at the given
// identifier on behalf of the actor.
func (s *Server) GetProductTraceability(ctx context.Context, actor types.Actor, req *commands.TraceabilityRequest) (*commands.TraceabilityResponse, error) {
	ctx, span := tracer.Start(ctx, "GetProductTraceability")
	defer span.End()

	timer := prometheus.NewTimer(requestDurationHistogram.WithLabelValues("get_product_traceability"))
	defer timer.ObserveDuration()

	return s.traceQuery.Execute(ctx, actor, req)
}

// IsReady reports whether the underlying datastore is ready.
func (s *Server) IsReady(ctx context.Context) (bool, error) {
	return s.datastore.IsReady(ctx)
}
