package geocode

import (
	"context"
	"errors"

	"materialOrderManagement/models"
)

// ResolutionState tracks how far a delivery point has progressed through the
// resolve-then-confirm protocol.
type ResolutionState string

const (
	StateUnresolved ResolutionState = "unresolved"
	StateProposed   ResolutionState = "proposed"
	StateConfirmed  ResolutionState = "confirmed"
)

var (
	ErrNothingProposed  = errors.New("geocode: no point has been proposed")
	ErrAlreadyConfirmed = errors.New("geocode: resolution already confirmed")
	ErrNotConfirmed     = errors.New("geocode: resolution not confirmed")

	errAdjustUnresolved = errors.New("geocode: cannot adjust before a point is proposed")
)

// Resolution is the two-phase handshake over a delivery point:
// Unresolved -> Proposed -> Confirmed. Only a confirmed resolution may be
// committed to an order.
type Resolution struct {
	state ResolutionState
	point models.LatLng
}

// NewResolution returns an unresolved resolution.
func NewResolution() *Resolution {
	return &Resolution{state: StateUnresolved}
}

// State returns the current protocol state.
func (r *Resolution) State() ResolutionState {
	return r.state
}

// Propose records a geocoded candidate point. Proposing again replaces the
// candidate, but a confirmed resolution is frozen.
func (r *Resolution) Propose(p models.LatLng) error {
	if r.state == StateConfirmed {
		return ErrAlreadyConfirmed
	}
	r.point = p
	r.state = StateProposed
	return nil
}

// Adjust moves the proposed point (the user dragging the marker).
func (r *Resolution) Adjust(p models.LatLng) error {
	switch r.state {
	case StateUnresolved:
		return errAdjustUnresolved
	case StateConfirmed:
		return ErrAlreadyConfirmed
	}
	r.point = p
	return nil
}

// Confirm freezes the current point as the acknowledged delivery location.
func (r *Resolution) Confirm() error {
	switch r.state {
	case StateUnresolved:
		return ErrNothingProposed
	case StateConfirmed:
		return ErrAlreadyConfirmed
	}
	r.state = StateConfirmed
	return nil
}

// Proposed returns the candidate point awaiting acknowledgment, or ok=false
// outside the Proposed state. Callers display it; they must not commit it.
func (r *Resolution) Proposed() (models.LatLng, bool) {
	if r.state != StateProposed {
		return models.LatLng{}, false
	}
	return r.point, true
}

// Confirmed returns the acknowledged point, or ok=false if the protocol has
// not completed.
func (r *Resolution) Confirmed() (models.LatLng, bool) {
	if r.state != StateConfirmed {
		return models.LatLng{}, false
	}
	return r.point, true
}

// Resolver runs forward geocoding and starts the confirmation handshake.
type Resolver struct {
	provider Provider
}

// NewResolver creates a Resolver over the given provider.
func NewResolver(p Provider) *Resolver {
	return &Resolver{provider: p}
}

// Resolve geocodes the address text and returns a resolution in the Proposed
// state. Resolve never touches any order; committing the point requires the
// caller to Confirm and hand the resolution to the order lifecycle.
func (r *Resolver) Resolve(ctx context.Context, address string) (*Resolution, error) {
	point, err := r.provider.Forward(ctx, address)
	if err != nil {
		return nil, err
	}
	res := NewResolution()
	_ = res.Propose(point)
	return res, nil
}

// Reverse exposes the provider's reverse lookup for address prefill.
func (r *Resolver) Reverse(ctx context.Context, point models.LatLng) (models.Address, error) {
	return r.provider.Reverse(ctx, point)
}
