// Package errors contains the error taxonomy surfaced by the server.
// Internal causes are hidden from callers; permission denials never state
// which rule denied.
package errors

import (
	"errors"
	"fmt"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/shambalink/shambalink/pkg/storage"
)

const InternalServerErrorMsg = "Internal Server Error"

var (
	// ErrInvalidCoordinates is returned when latitude or longitude are out
	// of range.
	ErrInvalidCoordinates = status.Error(codes.InvalidArgument, "Invalid coordinates. Latitude must be in [-90, 90] and longitude in [-180, 180]")

	// ErrInvalidRadius is returned when the search radius is not positive.
	ErrInvalidRadius = status.Error(codes.InvalidArgument, "Invalid radius. Make sure you provide a positive radius in meters")

	// ErrInvalidIdentifier is returned when a traceability request is
	// missing its identifier.
	ErrInvalidIdentifier = status.Error(codes.InvalidArgument, "Invalid input. Make sure you provide an identifier")

	// ErrInvalidIdentifierKind is returned when a traceability request
	// names an unknown identifier kind.
	ErrInvalidIdentifierKind = status.Error(codes.InvalidArgument, `Invalid identifier kind. Allowed values: "order", "listing"`)

	// ErrPermissionDenied is returned when the actor is not authorized on
	// the start node. Deliberately unspecific.
	ErrPermissionDenied = status.Error(codes.PermissionDenied, "Permission denied")

	// ErrRequestCancelled is returned when the caller's deadline elapsed
	// or the request was cancelled mid-flight.
	ErrRequestCancelled = status.Error(codes.DeadlineExceeded, "Request cancelled")
)

// NotFound returns a not-found error for the requested start node.
func NotFound(kind, id string) error {
	return status.Error(codes.NotFound, fmt.Sprintf("%s '%s' not found", kind, id))
}

// InternalError is an error that hides its internal cause from the caller.
type InternalError struct {
	public   error
	internal error
}

func (e InternalError) Error() string {
	return e.public.Error()
}

// Unwrap exposes the public error so status.FromError resolves the code.
func (e InternalError) Unwrap() error {
	return e.public
}

// Internal returns the hidden cause, for logging.
func (e InternalError) Internal() error {
	return e.internal
}

// GRPCStatus implements the interface used by status.FromError.
func (e InternalError) GRPCStatus() *status.Status {
	s, _ := status.FromError(e.public)
	return s
}

// NewInternalError hides an internal error with a public message. Use
// `public` to return an error message to the user.
func NewInternalError(public string, internal error) InternalError {
	if public == "" {
		public = InternalServerErrorMsg
	}

	return InternalError{
		public:   status.Error(codes.Internal, public),
		internal: internal,
	}
}

// HandleError converts storage errors into the server taxonomy and hides
// everything else behind an internal error.
func HandleError(public string, err error) error {
	if errors.Is(err, storage.ErrCancelled) {
		return ErrRequestCancelled
	}
	return NewInternalError(public, err)
}
