package storage

import (
	"errors"
)

var (
	// ErrNotFound is returned when a requested record is absent.
	ErrNotFound = errors.New("not found")

	// ErrCancelled is returned when the request context was cancelled
	// while a read was in flight.
	ErrCancelled = errors.New("request has been cancelled")

	// ErrInvalidRecord is returned when a stored record cannot be decoded,
	// e.g. an unknown listing category payload.
	ErrInvalidRecord = errors.New("invalid record")
)
