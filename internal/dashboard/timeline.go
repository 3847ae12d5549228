package dashboard

import (
	"math"
	"slices"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

// DayTrend counts the responses submitted on one calendar day.
type DayTrend struct {
	Responses    int `json:"responses"`
	Attending    int `json:"attending"`
	NotAttending int `json:"not_attending"`
	Maybe        int `json:"maybe"`
	TotalGuests  int `json:"total_guests"`
}

// DayPattern is a responsePatterns bucket keyed by days before the event.
type DayPattern struct {
	Date        string `json:"date"`
	Responses   int    `json:"responses"`
	Attending   int    `json:"attending"`
	TotalGuests int    `json:"total_guests"`
}

// Milestone marks when cumulative responses first reached a share of the total.
type Milestone struct {
	Percentage     int    `json:"percentage"`
	Count          int    `json:"count"`
	Date           string `json:"date"`
	DaysUntilEvent int    `json:"days_until_event"`
}

// Timeline describes how responses were spread over the run-up to the event.
type Timeline struct {
	DaysUntilEvent   []int              `json:"days_until_event"`
	ResponsePatterns map[int]DayPattern `json:"response_patterns"`
	Milestones       []Milestone        `json:"milestones"`
}

var milestoneFractions = [...]struct {
	percentage int
	fraction   float64
}{
	{25, 0.25},
	{50, 0.50},
	{75, 0.75},
	{100, 1.00},
}

// ComputeTrends groups responses by the calendar day they were submitted on,
// in the timestamp's own location.
func ComputeTrends(responses []model.Response) map[string]DayTrend {
	trends := make(map[string]DayTrend)
	for i := range responses {
		r := &responses[i]
		key := dayKey(r.SubmittedAt)
		t := trends[key]
		t.Responses++
		switch r.Attendance {
		case model.AttendanceYes:
			t.Attending++
		case model.AttendanceNo:
			t.NotAttending++
		case model.AttendanceMaybe:
			t.Maybe++
		}
		t.TotalGuests += r.GuestCount
		trends[key] = t
	}
	return trends
}

// ComputeTimeline computes per-response lead times, day buckets counted back
// from the event date and the 25/50/75/100% milestones.
func ComputeTimeline(responses []model.Response, event model.EventSummary) Timeline {
	tl := Timeline{
		DaysUntilEvent:   make([]int, 0, len(responses)),
		ResponsePatterns: make(map[int]DayPattern),
		Milestones:       make([]Milestone, 0, len(milestoneFractions)),
	}
	if len(responses) == 0 {
		return tl
	}

	for i := range responses {
		tl.DaysUntilEvent = append(tl.DaysUntilEvent, daysUntil(event.Date, responses[i].SubmittedAt))
	}

	sorted := sortedBySubmission(responses)
	tl.ResponsePatterns = responsePatterns(sorted, event)

	total := len(sorted)
	for _, m := range milestoneFractions {
		target := int(math.Ceil(float64(total) * m.fraction))
		r := &sorted[target-1]
		tl.Milestones = append(tl.Milestones, Milestone{
			Percentage:     m.percentage,
			Count:          target,
			Date:           dayKey(r.SubmittedAt),
			DaysUntilEvent: daysUntil(event.Date, r.SubmittedAt),
		})
	}

	return tl
}

// responsePatterns walks back from the event date one calendar day at a time,
// as far as the earliest response, keeping only days that received responses.
func responsePatterns(sorted []model.Response, event model.EventSummary) map[int]DayPattern {
	patterns := make(map[int]DayPattern)

	byDay := make(map[string]DayPattern)
	for i := range sorted {
		r := &sorted[i]
		key := dayKey(r.SubmittedAt)
		p := byDay[key]
		p.Date = key
		p.Responses++
		if r.Attendance == model.AttendanceYes {
			p.Attending++
		}
		p.TotalGuests += r.GuestCount
		byDay[key] = p
	}

	span := daysUntil(event.Date, sorted[0].SubmittedAt)
	for daysBefore := 0; daysBefore <= span; daysBefore++ {
		key := dayKey(event.Date.AddDate(0, 0, -daysBefore))
		if p, ok := byDay[key]; ok {
			patterns[daysBefore] = p
		}
	}

	return patterns
}

// sortedBySubmission returns a copy ordered by submission time, oldest first.
// Equal timestamps keep their input order.
func sortedBySubmission(responses []model.Response) []model.Response {
	sorted := slices.Clone(responses)
	slices.SortStableFunc(sorted, func(a, b model.Response) int {
		return a.SubmittedAt.Compare(b.SubmittedAt)
	})
	return sorted
}
