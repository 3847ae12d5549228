// Package dashboard turns a list of guest responses into the aggregates shown
// on an event dashboard: summary counts, rates, trends, dietary and guest
// breakdowns, a response timeline, filtered views and exports.
//
// Every function here is pure. Inputs are never mutated and no state is kept
// between calls.
package dashboard

import (
	"time"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

// Summary holds headline totals.
type Summary struct {
	TotalResponses   int `json:"total_responses"`
	Attending        int `json:"attending"`
	NotAttending     int `json:"not_attending"`
	Maybe            int `json:"maybe"`
	TotalGuests      int `json:"total_guests"`
	PendingResponses int `json:"pending_responses"`
}

// Analytics holds derived rates and peaks.
type Analytics struct {
	AttendanceRate           float64 `json:"attendance_rate"`
	AverageGuestsPerResponse float64 `json:"average_guests_per_response"`
	AverageResponseTime      float64 `json:"average_response_time"` // days
	PeakResponseDay          string  `json:"peak_response_day"`
	// PeakResponseHour is nil when there are no responses.
	PeakResponseHour       *int           `json:"peak_response_hour"`
	DietaryBreakdown       map[string]int `json:"dietary_breakdown"`
	GuestCountDistribution map[int]int    `json:"guest_count_distribution"`
}

// Snapshot is the full set of aggregates for one event at one point in time.
type Snapshot struct {
	EventID      string             `json:"event_id"`
	GeneratedAt  time.Time          `json:"generated_at"`
	Event        model.EventSummary `json:"event"`
	InviteCounts model.InviteCounts `json:"invite_counts"`

	Summary         Summary             `json:"summary"`
	Analytics       Analytics           `json:"analytics"`
	Trends          map[string]DayTrend `json:"trends"`
	DietaryAnalysis DietaryAnalysis     `json:"dietary_analysis"`
	GuestAnalysis   GuestAnalysis       `json:"guest_analysis"`
	Timeline        Timeline            `json:"timeline"`
}

// ComputeDashboard builds a snapshot from the responses of one event.
// It never fails; an empty response list yields zeroed aggregates.
// GeneratedAt is left for the caller to stamp.
func ComputeDashboard(responses []model.Response, event model.EventSummary, counts model.InviteCounts) *Snapshot {
	return &Snapshot{
		EventID:         event.ID,
		Event:           event,
		InviteCounts:    counts,
		Summary:         ComputeSummary(responses, counts),
		Analytics:       ComputeAnalytics(responses, event),
		Trends:          ComputeTrends(responses),
		DietaryAnalysis: AnalyzeDietaryPreferences(responses),
		GuestAnalysis:   AnalyzeGuestCounts(responses),
		Timeline:        ComputeTimeline(responses, event),
	}
}

// ComputeSummary counts responses by attendance and sums guests.
func ComputeSummary(responses []model.Response, counts model.InviteCounts) Summary {
	s := Summary{TotalResponses: len(responses)}
	for i := range responses {
		r := &responses[i]
		switch r.Attendance {
		case model.AttendanceYes:
			s.Attending++
		case model.AttendanceNo:
			s.NotAttending++
		case model.AttendanceMaybe:
			s.Maybe++
		}
		s.TotalGuests += r.GuestCount
	}
	s.PendingResponses = max(0, counts.TotalInvites-s.TotalResponses)
	return s
}

// ComputeAnalytics derives rates, averages and peak day/hour.
//
// Peak ties go to the day (or hour) that first appears in input order.
func ComputeAnalytics(responses []model.Response, event model.EventSummary) Analytics {
	a := Analytics{
		DietaryBreakdown:       make(map[string]int),
		GuestCountDistribution: make(map[int]int),
	}
	if len(responses) == 0 {
		return a
	}

	var attending, totalGuests, totalDays int
	days := newFirstSeenCounter[string]()
	hours := newFirstSeenCounter[int]()

	for i := range responses {
		r := &responses[i]
		if r.Attendance == model.AttendanceYes {
			attending++
		}
		totalGuests += r.GuestCount
		totalDays += absDays(event.Date, r.SubmittedAt)

		days.add(dayKey(r.SubmittedAt))
		hours.add(r.SubmittedAt.Hour())

		for _, tag := range r.DietaryTags() {
			a.DietaryBreakdown[tag]++
		}
		a.GuestCountDistribution[r.GuestCount]++
	}

	n := float64(len(responses))
	a.AttendanceRate = ratio(float64(attending)*100, n)
	a.AverageGuestsPerResponse = ratio(float64(totalGuests), n)
	a.AverageResponseTime = ratio(float64(totalDays), n)
	a.PeakResponseDay, _ = days.peak()
	if hour, ok := hours.peak(); ok {
		a.PeakResponseHour = &hour
	}

	return a
}

// absDays is |eventDate - submittedAt| rounded up to whole days.
func absDays(eventDate, submittedAt time.Time) int {
	d := daysUntil(eventDate, submittedAt)
	if eventDate.Before(submittedAt) {
		d = daysUntil(submittedAt, eventDate)
	}
	return d
}

// firstSeenCounter counts keys and remembers the order they first appeared.
type firstSeenCounter[K comparable] struct {
	counts map[K]int
	order  []K
}

func newFirstSeenCounter[K comparable]() *firstSeenCounter[K] {
	return &firstSeenCounter[K]{counts: make(map[K]int)}
}

func (c *firstSeenCounter[K]) add(k K) {
	if _, ok := c.counts[k]; !ok {
		c.order = append(c.order, k)
	}
	c.counts[k]++
}

// peak returns the most frequent key, preferring the earliest seen on ties.
func (c *firstSeenCounter[K]) peak() (K, bool) {
	var best K
	bestCount := 0
	for _, k := range c.order {
		if c.counts[k] > bestCount {
			best, bestCount = k, c.counts[k]
		}
	}
	return best, bestCount > 0
}
