package calendar

import (
	"calendar-transit-service/internal/config"
	"calendar-transit-service/internal/domain"
	"calendar-transit-service/internal/platform/obs"
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

// GoogleCalendar adapts the Google Calendar API to the appointment
// source and sink ports. The raw colorId tag is decoded into a Category
// here so the core never sees provider-specific strings.
type GoogleCalendar struct {
	svc        *gcal.Service
	calendarID string
	travelTag  string
	holdTag    string
}

func NewGoogleCalendar(svc *gcal.Service, cfg *config.Config) *GoogleCalendar {
	return &GoogleCalendar{
		svc:        svc,
		calendarID: "primary",
		travelTag:  cfg.TravelTag,
		holdTag:    cfg.HoldTag,
	}
}

// ListAppointments fetches single-instance events for the window,
// ordered by start time. Malformed events (missing start or end) are
// skipped with a logged reason rather than failing the run.
func (g *GoogleCalendar) ListAppointments(
	ctx context.Context,
	from time.Time,
	to time.Time,
) (_ []domain.Appointment, err error) {
	defer obs.Time(ctx, "calendar.ListAppointments")(&err)

	res, listErr := g.svc.Events.List(g.calendarID).
		TimeMin(from.Format(time.RFC3339)).
		TimeMax(to.Format(time.RFC3339)).
		SingleEvents(true).
		OrderBy("startTime").
		MaxResults(250).
		Context(ctx).
		Do()
	if listErr != nil {
		err = fmt.Errorf("list appointments: %w", listErr)
		return nil, err
	}

	appts := make([]domain.Appointment, 0, len(res.Items))
	for _, item := range res.Items {
		appt, convErr := g.toAppointment(item)
		if convErr != nil {
			log.Printf("skip appointment id=%s title=%q reason=%q err=%v",
				item.Id, item.Summary, "malformed appointment", convErr)
			continue
		}
		appts = append(appts, appt)
	}

	return appts, nil
}

func (g *GoogleCalendar) toAppointment(e *gcal.Event) (domain.Appointment, error) {
	if e.Start == nil || e.End == nil {
		return domain.Appointment{}, errors.New("missing start or end")
	}

	appt := domain.Appointment{
		ID:       e.Id,
		Title:    e.Summary,
		Location: e.Location,
		Remote:   e.ConferenceData != nil,
		Category: g.decodeTag(e.ColorId),
	}

	switch {
	case e.Start.DateTime != "":
		start, err := time.Parse(time.RFC3339, e.Start.DateTime)
		if err != nil {
			return domain.Appointment{}, fmt.Errorf("parse start %q: %w", e.Start.DateTime, err)
		}
		if e.End.DateTime == "" {
			return domain.Appointment{}, errors.New("timed event without end instant")
		}
		end, err := time.Parse(time.RFC3339, e.End.DateTime)
		if err != nil {
			return domain.Appointment{}, fmt.Errorf("parse end %q: %w", e.End.DateTime, err)
		}
		appt.Start = start
		appt.End = end
	case e.Start.Date != "":
		start, err := time.ParseInLocation(domain.DateKey, e.Start.Date, time.Local)
		if err != nil {
			return domain.Appointment{}, fmt.Errorf("parse start date %q: %w", e.Start.Date, err)
		}
		end := start.AddDate(0, 0, 1)
		if e.End.Date != "" {
			end, err = time.ParseInLocation(domain.DateKey, e.End.Date, time.Local)
			if err != nil {
				return domain.Appointment{}, fmt.Errorf("parse end date %q: %w", e.End.Date, err)
			}
		}
		appt.Start = start
		appt.End = end
		appt.AllDay = true
	default:
		return domain.Appointment{}, errors.New("start has neither instant nor date")
	}

	return appt, nil
}

func (g *GoogleCalendar) decodeTag(colorID string) domain.Category {
	switch colorID {
	case g.travelTag:
		return domain.CategoryTravel
	case g.holdTag:
		return domain.CategoryHold
	default:
		return domain.CategoryRegular
	}
}
