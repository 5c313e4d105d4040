package services

import (
	"calendar-transit-service/internal/domain"
	"testing"
)

const lodgingAddr = "310 Harrison Ave, Boston, MA"

// Three-night stay: event dates 2025-12-12 through checkout on the 15th
// (exclusive end 2025-12-16), covering nights 12, 13, and 14.
func lodgingAppointment() domain.Appointment {
	return domain.Appointment{
		Title:    "Hotel: Boston",
		Location: lodgingAddr,
		AllDay:   true,
		Start:    ts("2025-12-12", "00:00"),
		End:      ts("2025-12-16", "00:00"),
	}
}

func TestStayResolverEvening(t *testing.T) {
	cfg := testConfig()
	r := NewStayResolver([]domain.Appointment{lodgingAppointment()}, cfg)

	loc, name := r.HomeForEvening("2025-12-13")
	if loc != lodgingAddr {
		t.Errorf("evening of 12-13 = %q, want lodging address", loc)
	}
	if name != "310 Harrison Ave" {
		t.Errorf("evening name = %q, want short lodging name", name)
	}

	// Checkout day: the traveler sleeps at home again.
	loc, name = r.HomeForEvening("2025-12-15")
	if loc != cfg.DefaultBaseAddress || name != "Home" {
		t.Errorf("evening of checkout day = %q/%q, want default base", loc, name)
	}
}

func TestStayResolverMorning(t *testing.T) {
	cfg := testConfig()
	r := NewStayResolver([]domain.Appointment{lodgingAppointment()}, cfg)

	// Morning of the 13th: slept at the hotel on the night of the 12th.
	if loc, _ := r.HomeForMorning("2025-12-13"); loc != lodgingAddr {
		t.Errorf("morning of 12-13 = %q, want lodging address", loc)
	}

	// Morning of arrival day: slept at home the night before.
	if loc, _ := r.HomeForMorning("2025-12-12"); loc != cfg.DefaultBaseAddress {
		t.Errorf("morning of 12-12 = %q, want default base", loc)
	}

	// Morning after the last covered night.
	if loc, _ := r.HomeForMorning("2025-12-15"); loc != lodgingAddr {
		t.Errorf("morning of 12-15 = %q, want lodging address (slept there on the 14th)", loc)
	}

	if loc, _ := r.HomeForMorning("2025-12-16"); loc != cfg.DefaultBaseAddress {
		t.Errorf("morning of 12-16 = %q, want default base", loc)
	}
}

func TestStayResolverIgnoresNonLodging(t *testing.T) {
	cfg := testConfig()
	appts := []domain.Appointment{
		// Timed appointment with a lodging word in the title.
		{
			Title:    "Drinks at the Hotel Bar",
			Location: "somewhere",
			Start:    ts("2025-12-12", "19:00"),
			End:      ts("2025-12-12", "21:00"),
		},
		// All-day lodging without a location cannot anchor a stay.
		{
			Title:  "Airbnb weekend",
			AllDay: true,
			Start:  ts("2025-12-12", "00:00"),
			End:    ts("2025-12-14", "00:00"),
		},
	}

	r := NewStayResolver(appts, cfg)
	if loc, _ := r.HomeForEvening("2025-12-12"); loc != cfg.DefaultBaseAddress {
		t.Errorf("evening = %q, want default base", loc)
	}
}
