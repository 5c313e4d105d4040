package calendar

import (
	"calendar-transit-service/internal/domain"
	"calendar-transit-service/internal/platform/obs"
	"context"
	"fmt"
	"log"
	"time"

	gcal "google.golang.org/api/calendar/v3"
)

// InsertLeg creates a calendar event for a synthesized travel leg. Only
// title, location, tag, times, and description are sent; diagnostic
// metadata never reaches the calendar.
func (g *GoogleCalendar) InsertLeg(ctx context.Context, leg domain.TravelLeg) (err error) {
	defer obs.Time(ctx, "calendar.InsertLeg")(&err)

	ev := &gcal.Event{
		Summary:     leg.Title(),
		Location:    leg.Origin,
		ColorId:     g.travelTag,
		Description: leg.Description(),
		Start:       &gcal.EventDateTime{DateTime: leg.Start.Format(time.RFC3339)},
		End:         &gcal.EventDateTime{DateTime: leg.End.Format(time.RFC3339)},
	}

	created, insertErr := g.svc.Events.Insert(g.calendarID, ev).Context(ctx).Do()
	if insertErr != nil {
		err = fmt.Errorf("insert travel leg %q: %w", leg.Title(), insertErr)
		return err
	}

	log.Printf("created travel leg summary=%q link=%s", created.Summary, created.HtmlLink)
	return nil
}
