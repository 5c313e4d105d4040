package services

import (
	"calendar-transit-service/internal/config"
	"calendar-transit-service/internal/domain"
	"log"
)

// DetectTripDates scans the whole unfiltered appointment set once and
// returns the dates on which transit synthesis is suppressed. Two
// independent rules are unioned:
//
//   - outbound-flight rule: an appointment whose title matches a flight
//     token and whose location names a home airport marks its own date
//     (the traveler is leaving the area that day);
//   - stay rule: an all-day appointment whose title matches a lodging
//     token marks every date in its half-open [start, end) range.
//
// The detector must see appointments the classifier would exclude (all-day
// lodging events in particular), so it runs before any filtering.
func DetectTripDates(all []domain.Appointment, cfg *config.Config) domain.TripWindow {
	trips := domain.TripWindow{}

	for _, a := range all {
		if tok := matchAny(a.Title, cfg.FlightTokens); tok != "" {
			if ap := matchAny(a.Location, cfg.HomeAirportTokens); ap != "" {
				log.Printf("trip date=%s rule=flight title=%q token=%q airport=%q", a.Date(), a.Title, tok, ap)
				trips.Add(a.Date())
			}
		}

		if a.AllDay && matchAny(a.Title, cfg.LodgingTokens) != "" {
			log.Printf("trip dates=[%s, %s) rule=stay title=%q",
				a.Start.Format(domain.DateKey), a.End.Format(domain.DateKey), a.Title)
			trips.AddRange(a.Start, a.End)
		}
	}

	return trips
}
