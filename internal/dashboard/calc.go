package dashboard

import (
	"math"
	"time"
)

const (
	day       = 24 * time.Hour
	dayLayout = "2006-01-02"
)

// round1 rounds to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// ratio returns num/den rounded to one decimal, or 0 when den is zero.
func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return round1(num / den)
}

// daysUntil returns ceil((eventDate - submittedAt) / 1 day). Negative when
// the response arrived after the event.
func daysUntil(eventDate, submittedAt time.Time) int {
	diff := float64(eventDate.Sub(submittedAt)) / float64(day)
	return int(math.Ceil(diff))
}

// dayKey formats the calendar day of t in its own location.
func dayKey(t time.Time) string {
	return t.Format(dayLayout)
}
