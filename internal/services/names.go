package services

import "strings"

// LocationName extracts a short display name from a full address for use
// in travel-leg summaries: the part before the first comma, truncated to
// 30 characters.
func LocationName(location string) string {
	if location == "" {
		return "Unknown"
	}
	name := strings.TrimSpace(strings.SplitN(location, ",", 2)[0])
	if len(name) > 30 {
		name = name[:27] + "..."
	}
	return name
}
