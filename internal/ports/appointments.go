package ports

import (
	"calendar-transit-service/internal/domain"
	"context"
	"time"
)

// Contract for listing a person's appointments over a bounded window.
type AppointmentSource interface {
	// ListAppointments returns all appointments starting in [from, to),
	// ordered by start time. The core treats the result as an in-memory
	// snapshot; it does not paginate or retry.
	ListAppointments(ctx context.Context, from, to time.Time) ([]domain.Appointment, error)
}

// Contract for inserting synthesized travel legs into a calendar.
// Implementations must strip diagnostic metadata before insertion.
type AppointmentSink interface {
	InsertLeg(ctx context.Context, leg domain.TravelLeg) error
}
