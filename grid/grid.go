// Package grid projects a month of dinner records onto a calendar grid.
// The projection is a pure function of (records, month, current user) and
// carries everything the calendar page needs to render a cell.
package grid

import (
	"time"

	"bangohan/services/record"
)

// Day is one cell of the month grid.
type Day struct {
	Date       string `json:"date"`
	DayOfMonth int    `json:"dayOfMonth"`
	// InMonth is false for the leading/trailing days that pad the first and
	// last weeks. Those cells render but are non-interactive.
	InMonth bool `json:"inMonth"`
	Today   bool `json:"today"`
	// DinnerCount is the number of people whose current answer for this
	// date is "needs dinner".
	DinnerCount int `json:"dinnerCount"`
	// Mine is true when the current user has a current answer for this date;
	// MineNeedsDinner carries that answer for the cell emphasis.
	Mine            bool `json:"mine"`
	MineNeedsDinner bool `json:"mineNeedsDinner"`
}

// Month is the rendered grid for one displayed month.
type Month struct {
	Year  int        `json:"year"`
	Month time.Month `json:"month"`
	// Label is the "YYYY-MM" key of the displayed month; Prev and Next are
	// the keys one calendar month away, independent of day-of-month.
	Label string  `json:"label"`
	Prev  string  `json:"prev"`
	Next  string  `json:"next"`
	Weeks [][]Day `json:"weeks"`
}

// Build renders the grid for the month containing the given time.
func Build(records []record.DinnerRecord, month time.Time, currentUserName string) Month {
	return buildAt(records, month, currentUserName, time.Now())
}

func buildAt(records []record.DinnerRecord, month time.Time, currentUserName string, now time.Time) Month {
	monthStart := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, month.Location())
	monthEnd := monthStart.AddDate(0, 1, -1)

	// Weeks run Sunday through Saturday.
	gridStart := monthStart.AddDate(0, 0, -int(monthStart.Weekday()))
	gridEnd := monthEnd.AddDate(0, 0, int(time.Saturday-monthEnd.Weekday()))

	answers := record.CurrentAnswers(records)
	counts := make(map[string]int)
	mine := make(map[string]bool)
	for _, a := range answers {
		if a.NeedsDinner {
			counts[a.Date]++
		}
		if a.Name == currentUserName {
			mine[a.Date] = a.NeedsDinner
		}
	}

	today := now.Format(record.DateLayout)
	weeks := make([][]Day, 0, 6)
	week := make([]Day, 0, 7)
	for d := gridStart; !d.After(gridEnd); d = d.AddDate(0, 0, 1) {
		date := d.Format(record.DateLayout)
		needs, hasAnswer := mine[date]
		week = append(week, Day{
			Date:            date,
			DayOfMonth:      d.Day(),
			InMonth:         d.Month() == monthStart.Month(),
			Today:           date == today,
			DinnerCount:     counts[date],
			Mine:            hasAnswer,
			MineNeedsDinner: hasAnswer && needs,
		})
		if len(week) == 7 {
			weeks = append(weeks, week)
			week = make([]Day, 0, 7)
		}
	}

	return Month{
		Year:  monthStart.Year(),
		Month: monthStart.Month(),
		Label: monthStart.Format(record.YearMonthLayout),
		Prev:  monthStart.AddDate(0, -1, 0).Format(record.YearMonthLayout),
		Next:  monthStart.AddDate(0, 1, 0).Format(record.YearMonthLayout),
		Weeks: weeks,
	}
}
