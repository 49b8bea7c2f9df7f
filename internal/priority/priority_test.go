package priority

import (
	"errors"
	"testing"
	"time"

	"materialOrderManagement/models"
)

func TestClassify_Boundaries(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		from time.Time
		want models.Priority
	}{
		{"immediate", now, models.PriorityUrgent},
		{"one day out", now.Add(24 * time.Hour), models.PriorityUrgent},
		{"exactly three days", now.Add(3 * 24 * time.Hour), models.PriorityUrgent},
		{"three days and one second", now.Add(3*24*time.Hour + time.Second), models.PrioritySoon},
		{"exactly seven days", now.Add(7 * 24 * time.Hour), models.PrioritySoon},
		{"seven days and one second", now.Add(7*24*time.Hour + time.Second), models.PriorityNormal},
		{"two weeks out", now.Add(14 * 24 * time.Hour), models.PriorityNormal},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Classify(tc.from, tc.from.Add(48*time.Hour), now)
			if err != nil {
				t.Fatalf("Classify: %v", err)
			}
			if got != tc.want {
				t.Fatalf("Classify(from=%v) = %q, want %q", tc.from, got, tc.want)
			}
		})
	}
}

func TestClassify_IgnoresWindowEnd(t *testing.T) {
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)
	from := now.Add(24 * time.Hour)

	// A far-away end date must not downgrade the priority.
	got, err := Classify(from, now.Add(30*24*time.Hour), now)
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if got != models.PriorityUrgent {
		t.Fatalf("Classify = %q, want urgent regardless of window end", got)
	}
}

func TestClassify_MissingDates(t *testing.T) {
	now := time.Now()
	if _, err := Classify(time.Time{}, now, now); !errors.Is(err, ErrUnclassifiable) {
		t.Fatalf("expected ErrUnclassifiable for zero from, got %v", err)
	}
	if _, err := Classify(now, time.Time{}, now); !errors.Is(err, ErrUnclassifiable) {
		t.Fatalf("expected ErrUnclassifiable for zero to, got %v", err)
	}
}
