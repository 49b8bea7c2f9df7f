package lifecycle

import (
	"errors"
	"fmt"

	"materialOrderManagement/models"
)

var (
	// ErrOrderNotFound is returned when the referenced order does not exist.
	ErrOrderNotFound = errors.New("order not found")
	// ErrAlreadyConfirmed rejects a second delivery confirmation; the first
	// one is preserved untouched.
	ErrAlreadyConfirmed = errors.New("delivery already confirmed")
	// ErrEmptySignature rejects a confirmation without a signature artifact.
	ErrEmptySignature = errors.New("signature artifact is empty")
)

// ValidationError reports malformed order input. Fully recoverable by the
// caller correcting the input; nothing was persisted.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func validationf(format string, args ...any) error {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// IllegalTransitionError reports a status change outside the transition
// table. The order state is unchanged and no notification was created.
type IllegalTransitionError struct {
	From models.OrderStatus
	To   models.OrderStatus
}

func (e *IllegalTransitionError) Error() string {
	return fmt.Sprintf("illegal transition from %s to %s", e.From, e.To)
}
