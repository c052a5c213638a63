package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// VarietyFAQ is the default variety when the upstream record leaves it blank.
// "FAQ" (Fair Average Quality) is the data source's own catch-all grade.
const VarietyFAQ = "FAQ"

// District is one district entry inside a state's location index,
// carrying the set of market names observed in price data.
type District struct {
	Name    string   `json:"name"`
	Markets []string `json:"markets"`
}

// Date returns t reduced to a timezone-naive calendar date (midnight UTC).
// Arrival dates are stored at day granularity only; keeping a time-of-day
// component would reintroduce timezone drift between the upstream feed and
// the store.
func Date(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// ParseArrivalDate parses the upstream "DD/MM/YYYY" arrival date positionally.
// The separator-based split is deliberate: locale-aware parsing would swap
// day and month for the first twelve days of each month.
func ParseArrivalDate(s string) (time.Time, error) {
	parts := strings.Split(s, "/")
	if len(parts) != 3 {
		return time.Time{}, fmt.Errorf("invalid arrival date %q: expected DD/MM/YYYY", s)
	}

	day, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day in arrival date %q: %w", s, err)
	}
	month, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month in arrival date %q: %w", s, err)
	}
	year, err := strconv.Atoi(strings.TrimSpace(parts[2]))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid year in arrival date %q: %w", s, err)
	}

	if month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, fmt.Errorf("arrival date %q out of range", s)
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), nil
}

// FormatFilterDate renders a calendar date the way the upstream query API
// expects it (YYYY-MM-DD).
func FormatFilterDate(t time.Time) string {
	return t.Format(time.DateOnly)
}
