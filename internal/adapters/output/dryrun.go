package output

import (
	"calendar-transit-service/internal/domain"
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// LegRecord is the dry-run file representation of one travel leg.
// Unlike calendar insertion, the dry run keeps the diagnostic metadata
// so a reviewer can see why each leg looks the way it does.
type LegRecord struct {
	Summary     string                `json:"summary"`
	Location    string                `json:"location"`
	Description string                `json:"description"`
	Start       time.Time             `json:"start"`
	End         time.Time             `json:"end"`
	Mode        domain.TravelMode     `json:"mode"`
	Minutes     int                   `json:"duration_minutes"`
	Metadata    domain.LegDiagnostics `json:"metadata"`
}

type dryRunFile struct {
	GeneratedAt time.Time   `json:"generated_at"`
	Note        string      `json:"note"`
	LegCount    int         `json:"travel_legs_count"`
	Legs        []LegRecord `json:"travel_legs"`
}

// WriteDryRun writes planned travel legs to a JSON file for review
// instead of inserting them into the calendar.
func WriteDryRun(path string, legs []domain.TravelLeg) error {
	records := make([]LegRecord, 0, len(legs))
	for _, leg := range legs {
		records = append(records, LegRecord{
			Summary:     leg.Title(),
			Location:    leg.Origin,
			Description: leg.Description(),
			Start:       leg.Start,
			End:         leg.End,
			Mode:        leg.Mode,
			Minutes:     leg.Minutes,
			Metadata:    leg.Diagnostics,
		})
	}

	out := dryRunFile{
		GeneratedAt: time.Now(),
		Note:        "This is a dry run. No events were created in the calendar.",
		LegCount:    len(records),
		Legs:        records,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("dry run: marshal output: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("dry run: write %q: %w", path, err)
	}

	return nil
}
