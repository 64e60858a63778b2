package record

import (
	"fmt"
	"time"
)

const (
	DateLayout      = "2006-01-02"
	YearMonthLayout = "2006-01"
	TimeLayout      = "15:04"
)

// MonthRange returns the inclusive date bounds used for month queries.
// The upper bound is the literal "-31" regardless of month length: dates
// compare lexically, and no valid day suffix of the same month sorts above
// "31", while the next month's "-01" differs in the month digits already.
func MonthRange(yearMonth string) (start, end string) {
	return yearMonth + "-01", yearMonth + "-31"
}

// ValidYearMonth checks for a calendar-valid "YYYY-MM" string.
func ValidYearMonth(s string) error {
	if _, err := time.Parse(YearMonthLayout, s); err != nil {
		return fmt.Errorf("invalid year-month %q: %w", s, err)
	}
	return nil
}

// ValidDate checks for a calendar-valid "YYYY-MM-DD" string.
func ValidDate(s string) error {
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("invalid date %q: %w", s, err)
	}
	return nil
}

// ValidDinnerTime checks for a valid "HH:MM" string.
func ValidDinnerTime(s string) error {
	if _, err := time.Parse(TimeLayout, s); err != nil {
		return fmt.Errorf("invalid dinner time %q: %w", s, err)
	}
	return nil
}
