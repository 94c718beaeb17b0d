package roster

import (
	"time"

	"github.com/frahmantamala/roster-management/internal"
)

const (
	monthLayout = "2006-01"
	dateLayout  = "2006-01-02"
)

// ParseMonth validates a "YYYY-MM" value.
func ParseMonth(month string) (time.Time, error) {
	t, err := time.Parse(monthLayout, month)
	if err != nil {
		return time.Time{}, internal.NewValidationError("month must be in YYYY-MM format", internal.ErrCodeInvalidMonth)
	}
	return t, nil
}

// MonthDates expands a month into every calendar date it contains, in
// ascending order. AddDate normalizes day overflow, so month lengths and
// leap years come out of the time package rather than a lookup table.
func MonthDates(month time.Time) []string {
	first := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	dates := make([]string, 0, 31)
	for d := first; d.Month() == first.Month(); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates
}

// DateSelector picks which roster dates an operation covers: an explicit
// month, everything, or (zero value) the most recent month present.
type DateSelector struct {
	All   bool
	Month string
}

// SelectorFromQuery builds a DateSelector from the month/all query params.
func SelectorFromQuery(month string, all bool) DateSelector {
	if all {
		return DateSelector{All: true}
	}
	return DateSelector{Month: month}
}
