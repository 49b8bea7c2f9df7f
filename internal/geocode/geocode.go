// Package geocode wraps a forward/reverse geocoding provider and the
// resolve-then-confirm protocol that guards order delivery locations.
//
// A geocoded point is never trusted as final: it is proposed to the user,
// may be adjusted, and only an explicit confirmation yields a point that the
// order lifecycle will accept. No retries are performed here; a failed call
// is surfaced for the caller to retry explicitly.
package geocode

import (
	"context"
	"errors"

	"materialOrderManagement/models"
)

var (
	// ErrAddressNotFound means the provider answered but had no result for
	// the input. Recoverable by correcting the address text.
	ErrAddressNotFound = errors.New("geocode: address not found")
	// ErrProvider covers transport, auth and quota failures, including
	// provider timeouts. Recoverable by retrying the call.
	ErrProvider = errors.New("geocode: provider error")
)

// Provider is the external geocoding capability. Both operations perform a
// single attempt and normalize failures to ErrAddressNotFound or ErrProvider.
type Provider interface {
	// Forward resolves free-form address text to a geographic point.
	Forward(ctx context.Context, address string) (models.LatLng, error)
	// Reverse resolves a point to a structured address. Components absent
	// from the provider response come back as empty strings rather than
	// failing the whole call.
	Reverse(ctx context.Context, point models.LatLng) (models.Address, error)
}
