// Package priority classifies a delivery window into an urgency tier used
// for staff triage. Classification happens once at order creation; the
// stored priority is immutable afterwards.
package priority

import (
	"errors"
	"time"

	"materialOrderManagement/models"
)

// ErrUnclassifiable is returned when the delivery window is missing. Priority
// drives staff triage, so a silent default would hide broken input.
var ErrUnclassifiable = errors.New("priority: delivery window is missing")

const (
	// UrgentWithin is the inclusive upper bound for Urgent.
	UrgentWithin = 3 * 24 * time.Hour
	// SoonWithin is the inclusive upper bound for Soon.
	SoonWithin = 7 * 24 * time.Hour
)

// Classify maps a delivery window to a priority tier relative to now.
// The rule depends only on the window start:
//
//	Urgent: start within 3 days (inclusive)
//	Soon:   start more than 3 and at most 7 days out
//	Normal: start more than 7 days out
//
// The caller guarantees from >= now; Classify is pure and total over valid
// inputs.
func Classify(from, to, now time.Time) (models.Priority, error) {
	if from.IsZero() || to.IsZero() {
		return "", ErrUnclassifiable
	}
	lead := from.Sub(now)
	switch {
	case lead <= UrgentWithin:
		return models.PriorityUrgent, nil
	case lead <= SoonWithin:
		return models.PrioritySoon, nil
	default:
		return models.PriorityNormal, nil
	}
}
