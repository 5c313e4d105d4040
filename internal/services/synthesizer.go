package services

import (
	"calendar-transit-service/internal/config"
	"calendar-transit-service/internal/domain"
	"calendar-transit-service/internal/ports"
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"
)

// Departure estimate for a day's first leg: the target appointment's
// start minus this lead time.
const firstLegLeadTime = 60 * time.Minute

// SynthesizeRequest carries one run's snapshot and toggles.
type SynthesizeRequest struct {
	// Appointments is the full unfiltered snapshot for the window.
	Appointments []domain.Appointment
	// DetectTrips enables trip-date suppression.
	DetectTrips bool
	// ForceDriving is the global car-only switch.
	ForceDriving bool
}

// Synthesizer walks each day's appointments in order and decides which
// travel legs to emit. It is pure apart from the RouteEstimator calls
// and skip logging; routing failures degrade to skipping the affected
// leg rather than aborting the run.
type Synthesizer struct {
	Estimator ports.RouteEstimator
	Config    *config.Config
}

// Synthesize produces the ordered list of travel legs for the snapshot.
// Days are processed chronologically and strictly sequentially within a
// day: each decision depends on the previous leg's outcome.
func (s *Synthesizer) Synthesize(ctx context.Context, req SynthesizeRequest) ([]domain.TravelLeg, error) {
	if s.Estimator == nil {
		return nil, errors.New("synthesize: estimator must be non-nil")
	}
	if s.Config == nil {
		return nil, errors.New("synthesize: config must be non-nil")
	}

	trips := domain.TripWindow{}
	if req.DetectTrips {
		trips = DetectTripDates(req.Appointments, s.Config)
	}
	resolver := NewStayResolver(req.Appointments, s.Config)

	legs := []domain.TravelLeg{}
	for _, day := range PartitionByDay(req.Appointments) {
		if trips.Contains(day.Date) {
			log.Printf("skip day date=%s reason=%q", day.Date, "trip date")
			continue
		}

		dayLegs, err := s.synthesizeDay(ctx, day, resolver, req, legs)
		if err != nil {
			return nil, fmt.Errorf("synthesize day %s: %w", day.Date, err)
		}
		legs = append(legs, dayLegs...)
	}

	return legs, nil
}

func (s *Synthesizer) synthesizeDay(
	ctx context.Context,
	day DateWindow,
	resolver *StayResolver,
	req SynthesizeRequest,
	prior []domain.TravelLeg,
) ([]domain.TravelLeg, error) {
	current, currentName := resolver.HomeForMorning(day.Date)
	eveningBase, eveningName := resolver.HomeForEvening(day.Date)

	// Candidates are checked against every leg already synthesized this
	// run, not just pre-existing calendar entries, so the output itself
	// stays pairwise disjoint.
	emitted := append([]domain.TravelLeg{}, prior...)

	legs := []domain.TravelLeg{}
	var lastEnd *time.Time

	for _, appt := range day.Appointments {
		keep, reason := Classify(appt, s.Config)
		if !keep {
			log.Printf("skip appointment date=%s title=%q reason=%q", day.Date, appt.Title, reason)
			continue
		}

		if strings.EqualFold(appt.Location, current) {
			// No leg between identical consecutive locations, but the
			// cursor's display name follows the appointment.
			log.Printf("skip appointment date=%s title=%q reason=%q", day.Date, appt.Title, "same location as previous")
			currentName = LocationName(appt.Location)
			end := appt.End
			lastEnd = &end
			continue
		}

		var departAt *time.Time
		if lastEnd != nil {
			departAt = lastEnd
		} else {
			d := appt.Start.Add(-firstLegLeadTime)
			departAt = &d
		}

		leg, ok := s.candidateLeg(ctx, candidate{
			origin:     current,
			originName: currentName,
			dest:       appt.Location,
			destName:   LocationName(appt.Location),
			arriveBy:   &appt.Start,
			departAt:   departAt,
			forTitle:   appt.Title,
		}, req, emitted)
		if ok {
			legs = append(legs, leg)
			emitted = append(emitted, leg)
		}

		// The cursor advances whether or not a leg was emitted: the
		// traveler is at the appointment either way.
		current = appt.Location
		currentName = LocationName(appt.Location)
		end := appt.End
		lastEnd = &end
	}

	// Trailing leg back to wherever the traveler sleeps tonight.
	if lastEnd != nil && !strings.EqualFold(current, eveningBase) {
		leg, ok := s.candidateLeg(ctx, candidate{
			origin:     current,
			originName: currentName,
			dest:       eveningBase,
			destName:   eveningName,
			departAt:   lastEnd,
			forTitle:   "return home",
		}, req, emitted)
		if ok {
			legs = append(legs, leg)
		}
	}

	return legs, nil
}

// candidate describes a travel leg under consideration. Exactly one of
// arriveBy (leg ends at the appointment start) is set for preceding
// legs; trailing legs anchor on departAt instead.
type candidate struct {
	origin, originName string
	dest, destName     string
	arriveBy           *time.Time
	departAt           *time.Time
	forTitle           string
}

// candidateLeg queries routing for one candidate and applies the
// duration-band and overlap rules. It returns ok=false when the leg is
// discarded; every discard is logged with its reason.
func (s *Synthesizer) candidateLeg(
	ctx context.Context,
	c candidate,
	req SynthesizeRequest,
	emitted []domain.TravelLeg,
) (domain.TravelLeg, bool) {
	force := req.ForceDriving
	carReason := ""
	if p := s.carOnlyMatch(c.origin, c.dest); p != "" {
		force = true
		carReason = p
	}

	est, err := s.Estimator.Estimate(ctx, c.origin, c.dest, c.departAt, force)
	switch {
	case errors.Is(err, ports.ErrNoRoute):
		log.Printf("skip leg origin=%q dest=%q for=%q reason=%q", c.origin, c.dest, c.forTitle, "no route found")
		return domain.TravelLeg{}, false
	case err != nil:
		log.Printf("skip leg origin=%q dest=%q for=%q reason=%q err=%v", c.origin, c.dest, c.forTitle, "routing failed", err)
		return domain.TravelLeg{}, false
	}

	if est.Minutes < domain.MinLegMinutes || est.Minutes > domain.MaxLegMinutes {
		log.Printf("skip leg origin=%q dest=%q for=%q reason=%q minutes=%d",
			c.origin, c.dest, c.forTitle, "duration out of bounds", est.Minutes)
		return domain.TravelLeg{}, false
	}

	var start, end time.Time
	if c.arriveBy != nil {
		end = *c.arriveBy
		start = end.Add(-time.Duration(est.Minutes) * time.Minute)
	} else {
		start = *c.departAt
		end = start.Add(time.Duration(est.Minutes) * time.Minute)
	}

	if OverlapsTravel(start, end, req.Appointments) {
		log.Printf("skip leg origin=%q dest=%q for=%q reason=%q", c.origin, c.dest, c.forTitle, "overlaps existing travel leg")
		return domain.TravelLeg{}, false
	}
	if OverlapsLegs(start, end, emitted) {
		log.Printf("skip leg origin=%q dest=%q for=%q reason=%q", c.origin, c.dest, c.forTitle, "overlaps leg synthesized this run")
		return domain.TravelLeg{}, false
	}

	return domain.TravelLeg{
		Origin:          c.origin,
		OriginName:      c.originName,
		Destination:     c.dest,
		DestinationName: c.destName,
		Start:           start,
		End:             end,
		Mode:            est.Mode,
		Minutes:         est.Minutes,
		Diagnostics: domain.LegDiagnostics{
			IsStub:        est.IsStub,
			IsBlended:     est.IsBlended,
			CarOnlyReason: carReason,
			ForTitle:      c.forTitle,
		},
	}, true
}

// carOnlyMatch returns the first configured car-only pattern matching
// either endpoint, or "" when none match.
func (s *Synthesizer) carOnlyMatch(origin, dest string) string {
	lowerOrigin := strings.ToLower(origin)
	lowerDest := strings.ToLower(dest)
	for _, p := range s.Config.CarOnlyPatterns {
		if p == "" {
			continue
		}
		lp := strings.ToLower(p)
		if strings.Contains(lowerOrigin, lp) || strings.Contains(lowerDest, lp) {
			return p
		}
	}
	return ""
}
