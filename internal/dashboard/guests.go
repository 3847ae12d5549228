package dashboard

import (
	"strings"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

// DietaryAnalysis breaks down dietary tags and free-text restrictions.
type DietaryAnalysis struct {
	TotalWithDietary    int            `json:"total_with_dietary"`
	TotalWithoutDietary int            `json:"total_without_dietary"`
	Preferences         map[string]int `json:"preferences"`
	// Restrictions is keyed by the exact free text; no normalization.
	Restrictions       map[string]int `json:"restrictions"`
	CommonCombinations map[string]int `json:"common_combinations"`
}

// GuestAnalysis describes the distribution of party sizes.
type GuestAnalysis struct {
	TotalGuests              int         `json:"total_guests"`
	AverageGuestsPerResponse float64     `json:"average_guests_per_response"`
	GuestCountDistribution   map[int]int `json:"guest_count_distribution"`
	SoloAttendees            int         `json:"solo_attendees"`
	GroupAttendees           int         `json:"group_attendees"`
	MaxGroupSize             int         `json:"max_group_size"`
}

// AnalyzeDietaryPreferences counts tags, restriction texts and multi-tag
// combinations. Combination keys are the sorted tags joined by ", ".
func AnalyzeDietaryPreferences(responses []model.Response) DietaryAnalysis {
	d := DietaryAnalysis{
		Preferences:        make(map[string]int),
		Restrictions:       make(map[string]int),
		CommonCombinations: make(map[string]int),
	}

	for i := range responses {
		r := &responses[i]
		tags := r.DietaryTags()
		if len(tags) > 0 {
			d.TotalWithDietary++
		} else {
			d.TotalWithoutDietary++
		}

		for _, tag := range tags {
			d.Preferences[tag]++
		}
		if len(tags) >= 2 {
			d.CommonCombinations[strings.Join(tags, ", ")]++
		}
		if r.DietaryRestrictions != "" {
			d.Restrictions[r.DietaryRestrictions]++
		}
	}

	return d
}

// AnalyzeGuestCounts summarises guest counts across responses.
func AnalyzeGuestCounts(responses []model.Response) GuestAnalysis {
	g := GuestAnalysis{GuestCountDistribution: make(map[int]int)}

	for i := range responses {
		count := responses[i].GuestCount
		g.TotalGuests += count
		g.GuestCountDistribution[count]++
		if count == 1 {
			g.SoloAttendees++
		} else if count > 1 {
			g.GroupAttendees++
		}
		if count > g.MaxGroupSize {
			g.MaxGroupSize = count
		}
	}
	g.AverageGuestsPerResponse = ratio(float64(g.TotalGuests), float64(len(responses)))

	return g
}
