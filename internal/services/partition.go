package services

import (
	"calendar-transit-service/internal/domain"
	"sort"
)

// DateWindow is one calendar date's appointments, ordered by start time
// ascending with stable input-order ties.
type DateWindow struct {
	Date         string // YYYY-MM-DD
	Appointments []domain.Appointment
}

// PartitionByDay groups appointments by the date component of their
// start (the all-day date when no precise instant exists) and returns
// one DateWindow per distinct date, in chronological order. Dates with
// no appointments are simply absent.
func PartitionByDay(appts []domain.Appointment) []DateWindow {
	byDay := make(map[string][]domain.Appointment)
	for _, a := range appts {
		key := a.Date()
		byDay[key] = append(byDay[key], a)
	}

	dates := make([]string, 0, len(byDay))
	for d := range byDay {
		dates = append(dates, d)
	}
	sort.Strings(dates)

	windows := make([]DateWindow, 0, len(dates))
	for _, d := range dates {
		day := byDay[d]
		sort.SliceStable(day, func(i, j int) bool {
			return day[i].Start.Before(day[j].Start)
		})
		windows = append(windows, DateWindow{Date: d, Appointments: day})
	}
	return windows
}
