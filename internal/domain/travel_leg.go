package domain

import "time"

// TravelMode is the means of travel for a synthesized leg.
type TravelMode string

const (
	ModeTransit TravelMode = "transit"
	ModeDriving TravelMode = "driving"
)

// TitlePrefix returns the summary prefix used for calendar entries of
// this mode.
func (m TravelMode) TitlePrefix() string {
	if m == ModeDriving {
		return "DRIVE"
	}
	return "TRANSIT"
}

// Synthesized travel legs must fall inside this duration band; anything
// outside is discarded rather than emitted.
const (
	MinLegMinutes = 10
	MaxLegMinutes = 180
)

// LegDiagnostics carries informational metadata about how a leg was
// computed. It is never inserted into the calendar; sinks must strip it.
type LegDiagnostics struct {
	// IsStub is true when the duration came from the fixed-duration fake
	// routing backend rather than a live estimate.
	IsStub bool `json:"is_stub"`
	// IsBlended is true when the duration was blended toward a pessimistic
	// traffic estimate.
	IsBlended bool `json:"is_blended"`
	// CarOnlyReason names the configured address pattern that forced
	// driving mode, when one matched.
	CarOnlyReason string `json:"car_only_reason,omitempty"`
	// ForTitle is the title of the appointment this leg precedes, or
	// "return home" for a day's trailing leg.
	ForTitle string `json:"for_event"`
}

// TravelLeg is a planned block of travel time between two locations.
// It is the sole output entity of a run, consumed by a calendar sink or
// the dry-run writer. A TravelLeg ends exactly when its target
// appointment starts (or, for a trailing leg, starts exactly when the
// day's last appointment ends).
type TravelLeg struct {
	Origin          string
	OriginName      string
	Destination     string
	DestinationName string
	Start           time.Time
	End             time.Time
	Mode            TravelMode
	Minutes         int
	Diagnostics     LegDiagnostics
}

// Title renders the calendar summary for the leg.
func (l TravelLeg) Title() string {
	return l.Mode.TitlePrefix() + ": " + l.OriginName + " → " + l.DestinationName
}

// Description renders the free-text calendar description for the leg.
func (l TravelLeg) Description() string {
	return "Travel from " + l.Origin + " to " + l.Destination
}
