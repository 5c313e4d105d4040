package services

import (
	"calendar-transit-service/internal/config"
	"calendar-transit-service/internal/domain"
	"fmt"
	"strings"
)

// Overnight window: appointments starting in [00:00, 06:00) local time
// never get a travel leg.
const overnightEndHour = 6

// Classify decides whether an appointment participates in transit
// computation. It returns keep=false with a human-readable reason when
// the appointment must be skipped. Rules are evaluated in order; the
// first match wins. Deterministic, no side effects.
func Classify(a domain.Appointment, cfg *config.Config) (keep bool, reason string) {
	if a.Location == "" {
		return false, "no location"
	}

	switch a.Category {
	case domain.CategoryTravel:
		return false, "already a travel leg"
	case domain.CategoryHold:
		return false, "tentative hold"
	case domain.CategoryRegular:
		// fall through to the remaining rules
	}

	if a.Remote {
		return false, "video call (remote meeting)"
	}
	if d := matchAny(a.Location, cfg.VideoDomains); d != "" {
		return false, fmt.Sprintf("video call (%s in location)", d)
	}

	if !a.AllDay && a.Start.Hour() < overnightEndHour {
		return false, "overnight event (12am-6am)"
	}

	if a.AllDay {
		return false, "all-day event"
	}

	return true, ""
}

// matchAny returns the first token that is a case-insensitive substring
// of s, or "" when none match.
func matchAny(s string, tokens []string) string {
	lower := strings.ToLower(s)
	for _, tok := range tokens {
		if tok == "" {
			continue
		}
		if strings.Contains(lower, strings.ToLower(tok)) {
			return tok
		}
	}
	return ""
}
