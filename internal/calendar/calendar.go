// Package calendar builds the monthly mood calendar shown on the dashboard.
package calendar

import (
	"errors"
	"fmt"
	"time"

	"github.com/iliyamo/mindful/internal/model"
)

// ErrBadMonth is returned by ParseMonth for anything but YYYY-MM.
var ErrBadMonth = errors.New("month must be in YYYY-MM format")

// Day is one cell of the month grid.  Blank cells pad the first week so
// day 1 falls under its weekday column (Sunday first); they carry no date.
type Day struct {
	Blank bool   `json:"blank,omitempty"`
	Day   int    `json:"day,omitempty"`
	Date  string `json:"date,omitempty"`
	Emoji string `json:"emoji,omitempty"`
	Mood  string `json:"mood,omitempty"`
	Today bool   `json:"today,omitempty"`
}

// Month is the full grid for one calendar month.
type Month struct {
	Month    string   `json:"month"` // YYYY-MM
	Title    string   `json:"title"` // e.g. "October 2026"
	Weekdays []string `json:"weekdays"`
	Days     []Day    `json:"days"`
}

var weekdays = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// ParseMonth parses YYYY-MM into the first day of that month (UTC).  An
// empty string yields the month containing now.
func ParseMonth(s string, now time.Time) (time.Time, error) {
	if s == "" {
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse("2006-01", s)
	if err != nil {
		return time.Time{}, ErrBadMonth
	}
	return t, nil
}

// Bounds returns the first and last date of the month starting at first,
// as YYYY-MM-DD strings suitable for a BETWEEN query.
func Bounds(first time.Time) (from, to string) {
	last := first.AddDate(0, 1, -1)
	return first.Format(time.DateOnly), last.Format(time.DateOnly)
}

// Build lays out the month starting at first and fills in the recorded
// moods.  Moods outside the month are ignored.  now decides the Today
// marker.
func Build(first time.Time, moods []model.Mood, now time.Time) Month {
	byDate := make(map[string]model.Mood, len(moods))
	for _, m := range moods {
		byDate[m.Date] = m
	}

	daysIn := first.AddDate(0, 1, -1).Day()
	offset := int(first.Weekday())
	today := now.Format(time.DateOnly)

	days := make([]Day, 0, offset+daysIn)
	for i := 0; i < offset; i++ {
		days = append(days, Day{Blank: true})
	}
	for d := 1; d <= daysIn; d++ {
		date := time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, time.UTC).Format(time.DateOnly)
		cell := Day{Day: d, Date: date, Today: date == today}
		if m, ok := byDate[date]; ok {
			cell.Emoji, cell.Mood = m.Emoji, m.Mood
		}
		days = append(days, cell)
	}

	return Month{
		Month:    first.Format("2006-01"),
		Title:    fmt.Sprintf("%s %d", first.Month(), first.Year()),
		Weekdays: weekdays,
		Days:     days,
	}
}
