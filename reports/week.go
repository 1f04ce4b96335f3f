package reports

import (
	"fmt"
	"time"
)

// DashboardWeeks is the number of weekly buckets on the dashboard.
const DashboardWeeks = 10

// WeekBucket is the number of patients registered during one ISO week.
type WeekBucket struct {
	Week  string `json:"week"`
	Count int    `json:"count"`
}

// WeekKey formats the ISO year and week of t as "2006-W01".
func WeekKey(t time.Time) string {
	year, week := t.UTC().ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// WeeklyCounts buckets times into the given number of consecutive ISO weeks
// ending with the week that contains now, oldest first. Weeks without entries
// are reported with a zero count and times outside the window are ignored.
func WeeklyCounts(times []time.Time, now time.Time, weeks int) []WeekBucket {
	if weeks <= 0 {
		return []WeekBucket{}
	}
	now = now.UTC()
	offset := (int(now.Weekday()) + 6) % 7
	monday := time.Date(now.Year(), now.Month(), now.Day()-offset, 0, 0, 0, 0, time.UTC)

	buckets := make([]WeekBucket, weeks)
	index := make(map[string]int, weeks)
	for i := 0; i < weeks; i++ {
		key := WeekKey(monday.AddDate(0, 0, -7*(weeks-1-i)))
		buckets[i] = WeekBucket{Week: key}
		index[key] = i
	}

	for _, t := range times {
		if i, ok := index[WeekKey(t)]; ok {
			buckets[i].Count++
		}
	}
	return buckets
}
