package model

import "time"

// Counts are the raw per-user row counts behind Stats.
type Counts struct {
	Journal   int
	Mood      int
	Gratitude int
	JoinDate  time.Time
}

// Stats is the response of GET /api/stats.
type Stats struct {
	JournalCount   int `json:"journalCount"`
	MoodCount      int `json:"moodCount"`
	GratitudeCount int `json:"gratitudeCount"`
	DaysActive     int `json:"daysActive"`
}

// NewStats derives Stats from raw counts.  DaysActive counts the join day
// itself, so a user who joined today has been active for one day.
func NewStats(c Counts, now time.Time) Stats {
	days := int(now.Sub(c.JoinDate)/(24*time.Hour)) + 1
	if days < 1 {
		days = 1
	}
	return Stats{
		JournalCount:   c.Journal,
		MoodCount:      c.Mood,
		GratitudeCount: c.Gratitude,
		DaysActive:     days,
	}
}
