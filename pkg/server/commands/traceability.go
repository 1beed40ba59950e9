package commands

import (
	"context"
	"errors"

	"github.com/shambalink/shambalink/internal/graph"
	"github.com/shambalink/shambalink/pkg/logger"
	serverErrors "github.com/shambalink/shambalink/pkg/server/errors"
	"github.com/shambalink/shambalink/pkg/storage"
	"github.com/shambalink/shambalink/pkg/types"
)

// TraceabilityRequest is the input of a provenance lookup.
type TraceabilityRequest struct {
	Identifier     string `json:"identifier"`
	IdentifierKind string `json:"identifierKind"`
}

// TraceabilityResponse wraps the assembled provenance report.
type TraceabilityResponse struct {
	Report *graph.Report `json:"report"`
}

// TraceabilityQuery resolves a product's provenance chain on behalf of an
// actor.
type TraceabilityQuery struct {
	resolver *graph.Resolver
	logger   logger.Logger
}

// TraceabilityQueryOption configures a TraceabilityQuery.
type TraceabilityQueryOption func(*TraceabilityQuery)

// WithTraceabilityLogger overrides the default noop logger.
func WithTraceabilityLogger(l logger.Logger) TraceabilityQueryOption {
	return func(q *TraceabilityQuery) {
		q.logger = l
	}
}

// NewTraceabilityQuery creates a traceability query over the given
// datastore.
func NewTraceabilityQuery(datastore storage.MarketReader, opts ...TraceabilityQueryOption) *TraceabilityQuery {
	q := &TraceabilityQuery{
		logger: logger.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(q)
	}
	q.resolver = graph.NewResolver(datastore, q.logger)
	return q
}

// Execute validates the request, resolves the report and maps resolver
// failures into the server error taxonomy.
func (q *TraceabilityQuery) Execute(ctx context.Context, actor types.Actor, req *TraceabilityRequest) (*TraceabilityResponse, error) {
	ctx, span := tracer.Start(ctx, "GetProductTraceability")
	defer span.End()

	if req.Identifier == "" {
		return nil, serverErrors.ErrInvalidIdentifier
	}

	kind := graph.StartKind(req.IdentifierKind)
	if !kind.Valid() {
		return nil, serverErrors.ErrInvalidIdentifierKind
	}

	report, err := q.resolver.Resolve(ctx, actor, kind, req.Identifier)
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return nil, serverErrors.NotFound(req.IdentifierKind, req.Identifier)
		case errors.Is(err, graph.ErrPermissionDenied):
			return nil, serverErrors.ErrPermissionDenied
		case errors.Is(err, storage.ErrCancelled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return nil, serverErrors.ErrRequestCancelled
		default:
			return nil, serverErrors.HandleError("", err)
		}
	}

	return &TraceabilityResponse{Report: report}, nil
}
