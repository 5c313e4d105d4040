package domain

import "time"

// Category classifies an appointment by its calendar tag. The raw tag is
// decoded at the source adapter boundary so the core can match on it
// exhaustively instead of comparing opaque strings.
type Category int

const (
	// CategoryRegular is an ordinary confirmed appointment.
	CategoryRegular Category = iota
	// CategoryTravel marks an appointment that is itself a travel leg,
	// typically one created by a previous run.
	CategoryTravel
	// CategoryHold marks a tentative appointment that has not been confirmed.
	CategoryHold
)

func (c Category) String() string {
	switch c {
	case CategoryTravel:
		return "travel"
	case CategoryHold:
		return "hold"
	default:
		return "regular"
	}
}

// Appointment is a single calendar entry inside the planning window.
// Appointments are owned by the external calendar source and read-only
// within one run.
//
// For all-day appointments Start and End hold the civil dates at local
// midnight, with End exclusive (an appointment ending on the 15th covers
// through the end of the 14th).
type Appointment struct {
	ID       string
	Title    string
	Location string
	Start    time.Time
	End      time.Time
	AllDay   bool
	Category Category
	Remote   bool
}

// DateKey layout for per-day grouping and trip/stay lookups.
const DateKey = "2006-01-02"

// Date returns the appointment's calendar date as a YYYY-MM-DD key.
func (a Appointment) Date() string {
	return a.Start.Format(DateKey)
}
