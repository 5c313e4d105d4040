package services

import (
	"calendar-transit-service/internal/config"
	"calendar-transit-service/internal/domain"
	"time"
)

// StayResolver answers "where did the traveler sleep" queries for the
// start and end of each day, falling back to the configured default base
// address when no stay covers the night in question.
type StayResolver struct {
	windows  []domain.StayWindow
	base     string
	baseName string
}

// NewStayResolver derives stay windows from all-day lodging appointments
// in the unfiltered set. Lodging appointments without a location cannot
// anchor a stay and are ignored.
func NewStayResolver(all []domain.Appointment, cfg *config.Config) *StayResolver {
	r := &StayResolver{
		base:     cfg.DefaultBaseAddress,
		baseName: cfg.DefaultBaseName,
	}

	for _, a := range all {
		if !a.AllDay || matchAny(a.Title, cfg.LodgingTokens) == "" {
			continue
		}
		if stay, ok := domain.NewStayWindow(a, LocationName(a.Location)); ok {
			r.windows = append(r.windows, stay)
		}
	}
	return r
}

// HomeForMorning returns the base location and display name for the
// start of the given date: wherever the traveler slept the prior night.
func (r *StayResolver) HomeForMorning(date string) (string, string) {
	prior, err := time.Parse(domain.DateKey, date)
	if err != nil {
		return r.base, r.baseName
	}
	return r.homeForNight(prior.AddDate(0, 0, -1).Format(domain.DateKey))
}

// HomeForEvening returns the base location and display name for the end
// of the given date: wherever the traveler sleeps that night.
func (r *StayResolver) HomeForEvening(date string) (string, string) {
	return r.homeForNight(date)
}

func (r *StayResolver) homeForNight(night string) (string, string) {
	for _, s := range r.windows {
		if s.CoversNight(night) {
			return s.Location, s.Name
		}
	}
	return r.base, r.baseName
}
