package services

import (
	"calendar-transit-service/internal/domain"
	"time"
)

// OverlapsTravel reports whether the candidate interval [start, end)
// intersects any existing travel-tagged appointment, using strict
// open-interval overlap. A true result discards the candidate leg.
func OverlapsTravel(start, end time.Time, all []domain.Appointment) bool {
	for _, a := range all {
		if a.Category != domain.CategoryTravel || a.AllDay {
			continue
		}
		if start.Before(a.End) && end.After(a.Start) {
			return true
		}
	}
	return false
}

// OverlapsLegs reports whether the candidate interval intersects any leg
// already synthesized this run, keeping the run's own output pairwise
// disjoint. Same strict open-interval rule as OverlapsTravel.
func OverlapsLegs(start, end time.Time, legs []domain.TravelLeg) bool {
	for _, l := range legs {
		if start.Before(l.End) && end.After(l.Start) {
			return true
		}
	}
	return false
}
