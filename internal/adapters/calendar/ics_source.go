package calendar

import (
	"calendar-transit-service/internal/config"
	"calendar-transit-service/internal/domain"
	"context"
	"fmt"
	"log"
	"os"
	"strings"
	"time"

	ical "github.com/arran4/golang-ical"
)

// ICSSource reads appointments from a local ICS export. It is the
// credential-free alternative to the Google Calendar source, mainly for
// dry runs against a calendar snapshot. The calendar tag is carried in
// the CATEGORIES property.
type ICSSource struct {
	Path      string
	travelTag string
	holdTag   string
}

func NewICSSource(path string, cfg *config.Config) *ICSSource {
	return &ICSSource{Path: path, travelTag: cfg.TravelTag, holdTag: cfg.HoldTag}
}

func (s *ICSSource) ListAppointments(
	ctx context.Context,
	from time.Time,
	to time.Time,
) ([]domain.Appointment, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("ics source: open %q: %w", s.Path, err)
	}
	defer f.Close()

	cal, err := ical.ParseCalendar(f)
	if err != nil {
		return nil, fmt.Errorf("ics source: parse %q: %w", s.Path, err)
	}

	appts := make([]domain.Appointment, 0)
	for _, ve := range cal.Events() {
		appt, convErr := s.toAppointment(ve)
		if convErr != nil {
			log.Printf("skip appointment id=%s reason=%q err=%v", eventUID(ve), "malformed appointment", convErr)
			continue
		}
		if appt.Start.Before(from) || !appt.Start.Before(to) {
			continue
		}
		appts = append(appts, appt)
	}

	return appts, nil
}

func (s *ICSSource) toAppointment(ve *ical.VEvent) (domain.Appointment, error) {
	appt := domain.Appointment{ID: eventUID(ve)}
	if appt.ID == "" {
		return domain.Appointment{}, fmt.Errorf("missing UID")
	}

	if p := ve.GetProperty(ical.ComponentPropertySummary); p != nil {
		appt.Title = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyLocation); p != nil {
		appt.Location = p.Value
	}
	if p := ve.GetProperty(ical.ComponentPropertyCategories); p != nil {
		appt.Category = s.decodeTag(p.Value)
	}

	start, err := ve.GetStartAt()
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("missing DTSTART: %w", err)
	}
	end, err := ve.GetEndAt()
	if err != nil {
		return domain.Appointment{}, fmt.Errorf("missing DTEND: %w", err)
	}
	appt.Start = start
	appt.End = end
	appt.AllDay = isAllDay(ve)

	return appt, nil
}

func (s *ICSSource) decodeTag(raw string) domain.Category {
	switch raw {
	case s.travelTag:
		return domain.CategoryTravel
	case s.holdTag:
		return domain.CategoryHold
	default:
		return domain.CategoryRegular
	}
}

func eventUID(ve *ical.VEvent) string {
	if p := ve.GetProperty(ical.ComponentPropertyUniqueId); p != nil {
		return p.Value
	}
	return ""
}

// isAllDay detects date-valued DTSTART (VALUE=DATE or no time part).
func isAllDay(ve *ical.VEvent) bool {
	p := ve.GetProperty(ical.ComponentPropertyDtStart)
	if p == nil {
		return false
	}
	if params := p.ICalParameters; params != nil {
		if vs, ok := params["VALUE"]; ok && len(vs) > 0 && strings.EqualFold(vs[0], "DATE") {
			return true
		}
	}
	return !strings.Contains(p.Value, "T")
}
