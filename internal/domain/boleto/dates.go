package boleto

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts accepted on the wire. The ERP sends both depending on the
// endpoint; the lookup endpoints expect the Brazilian form.
const (
	LayoutBR  = "02/01/2006"
	LayoutISO = "2006-01-02"
)

// ParseDate parses a due date in either accepted encoding and returns it as a
// calendar date at UTC midnight. All date arithmetic in this package happens
// on that canonical form.
func ParseDate(s string) (time.Time, error) {
	trimmed := strings.TrimSpace(s)
	layout := LayoutBR
	if strings.Contains(trimmed, "-") {
		layout = LayoutISO
	}
	t, err := time.Parse(layout, trimmed)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t.UTC(), nil
}

// FormatBR formats a date in the dd/mm/yyyy form expected by the ERP lookup
// contract.
func FormatBR(t time.Time) string {
	return t.Format(LayoutBR)
}

// truncateToDate strips the time-of-day component in UTC.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DaysSince returns the whole number of calendar days elapsed from due to
// today. Positive values mean the due date lies in the past. Time of day is
// ignored so the result is stable across the day.
func DaysSince(due, today time.Time) int {
	diff := truncateToDate(today).Sub(truncateToDate(due))
	return int(diff.Hours() / 24)
}

// LookupWindow derives the inclusive due-date window [today-daysBefore,
// today+daysAfter] used for the ERP boleto lookup.
func LookupWindow(today time.Time, daysBefore, daysAfter int) (start, end time.Time) {
	base := truncateToDate(today)
	return base.AddDate(0, 0, -daysBefore), base.AddDate(0, 0, daysAfter)
}
