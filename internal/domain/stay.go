package domain

import "time"

// StayWindow is the inclusive range of nights a lodging appointment is
// interpreted to cover, associated with where the traveler slept.
//
// A lodging appointment spanning dates [S, E) covers nights S through
// E-2: the end date is checkout, not a night spent there. A single-day
// instance (E = S+1) covers exactly night S.
type StayWindow struct {
	Location   string
	Name       string
	FirstNight string // YYYY-MM-DD
	LastNight  string // YYYY-MM-DD, inclusive
}

// NewStayWindow derives a StayWindow from an all-day lodging appointment.
// It returns false when the appointment cannot represent a stay (not
// all-day, no location, or a non-positive date span).
func NewStayWindow(a Appointment, name string) (StayWindow, bool) {
	if !a.AllDay || a.Location == "" {
		return StayWindow{}, false
	}
	start := a.Start
	end := a.End
	if !end.After(start) {
		return StayWindow{}, false
	}
	// The date before the exclusive end is checkout, not a night spent
	// there, so the last covered night is end-2. A single-day instance
	// still covers its own night.
	last := end.AddDate(0, 0, -2)
	if last.Before(start) {
		last = start
	}
	return StayWindow{
		Location:   a.Location,
		Name:       name,
		FirstNight: start.Format(DateKey),
		LastNight:  last.Format(DateKey),
	}, true
}

// CoversNight reports whether the given YYYY-MM-DD date is one of the
// nights spent at this stay.
func (s StayWindow) CoversNight(date string) bool {
	return date >= s.FirstNight && date <= s.LastNight
}

// TripWindow is the set of dates on which travel-leg synthesis is
// suppressed entirely. Immutable once detection has run.
type TripWindow map[string]struct{}

// Contains reports whether the given YYYY-MM-DD date is a trip date.
func (w TripWindow) Contains(date string) bool {
	_, ok := w[date]
	return ok
}

// Add marks a date as a trip date.
func (w TripWindow) Add(date string) {
	w[date] = struct{}{}
}

// AddRange marks every date in the half-open range [start, end).
func (w TripWindow) AddRange(start, end time.Time) {
	for d := start; d.Before(end); d = d.AddDate(0, 0, 1) {
		w.Add(d.Format(DateKey))
	}
}
