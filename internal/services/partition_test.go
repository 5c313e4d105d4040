package services

import (
	"calendar-transit-service/internal/domain"
	"testing"
)

func TestPartitionByDayGroupsAndOrders(t *testing.T) {
	appts := []domain.Appointment{
		{ID: "c", Title: "Lunch", Start: ts("2026-03-11", "12:00"), End: ts("2026-03-11", "13:00")},
		{ID: "a", Title: "Late meeting", Start: ts("2026-03-10", "16:00"), End: ts("2026-03-10", "17:00")},
		{ID: "b", Title: "Morning meeting", Start: ts("2026-03-10", "09:00"), End: ts("2026-03-10", "10:00")},
	}

	windows := PartitionByDay(appts)
	if len(windows) != 2 {
		t.Fatalf("expected 2 date windows, got %d", len(windows))
	}

	if windows[0].Date != "2026-03-10" || windows[1].Date != "2026-03-11" {
		t.Fatalf("dates out of order: %s, %s", windows[0].Date, windows[1].Date)
	}

	day := windows[0]
	if len(day.Appointments) != 2 {
		t.Fatalf("expected 2 appointments on 2026-03-10, got %d", len(day.Appointments))
	}
	if day.Appointments[0].ID != "b" || day.Appointments[1].ID != "a" {
		t.Errorf("within-day order wrong: %s, %s", day.Appointments[0].ID, day.Appointments[1].ID)
	}
}

func TestPartitionByDayStableTies(t *testing.T) {
	appts := []domain.Appointment{
		{ID: "first", Start: ts("2026-03-10", "09:00"), End: ts("2026-03-10", "10:00")},
		{ID: "second", Start: ts("2026-03-10", "09:00"), End: ts("2026-03-10", "09:30")},
	}

	day := PartitionByDay(appts)[0]
	if day.Appointments[0].ID != "first" || day.Appointments[1].ID != "second" {
		t.Errorf("ties must keep input order: %s, %s", day.Appointments[0].ID, day.Appointments[1].ID)
	}
}

func TestPartitionByDayUsesAllDayDate(t *testing.T) {
	appts := []domain.Appointment{
		{ID: "allday", AllDay: true, Start: ts("2026-03-12", "00:00"), End: ts("2026-03-13", "00:00")},
	}

	windows := PartitionByDay(appts)
	if len(windows) != 1 || windows[0].Date != "2026-03-12" {
		t.Fatalf("all-day appointment grouped wrong: %+v", windows)
	}
}

func TestPartitionByDayEmpty(t *testing.T) {
	if windows := PartitionByDay(nil); len(windows) != 0 {
		t.Fatalf("expected no windows, got %d", len(windows))
	}
}
