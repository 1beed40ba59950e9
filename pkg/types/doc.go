// Package types contains the domain records shared across the marketplace
// services: accounts, listings, orders, offers, crops, and farms, plus the
// actor identity attached to each request.
package types
