package service

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/dashboard"
)

func TestParseFiltersValid(t *testing.T) {
	f, err := ParseFilters(FilterParams{
		Attendance: "Yes",
		Search:     "  alice ",
		Dietary:    []string{"Vegan", " ", "Gluten-Free"},
		GuestMin:   "1",
		GuestMax:   "4",
		From:       "2025-06-01",
		To:         "2025-06-03",
		SortBy:     "guestCount",
	})
	if err != nil {
		t.Fatalf("ParseFilters: %v", err)
	}

	if f.Attendance != "yes" {
		t.Errorf("Attendance = %q, want yes", f.Attendance)
	}
	if f.Search != "alice" {
		t.Errorf("Search = %q, want alice", f.Search)
	}
	if len(f.DietaryOptions) != 2 {
		t.Errorf("DietaryOptions = %v, want 2 tags", f.DietaryOptions)
	}
	if f.GuestCount == nil || *f.GuestCount.Min != 1 || *f.GuestCount.Max != 4 {
		t.Errorf("GuestCount = %+v", f.GuestCount)
	}
	if f.SortBy != dashboard.SortByGuestCount {
		t.Errorf("SortBy = %q", f.SortBy)
	}

	wantEnd := time.Date(2025, 6, 3, 23, 59, 59, int(time.Second-time.Nanosecond), time.UTC)
	if f.DateRange == nil || !f.DateRange.End.Equal(wantEnd) {
		t.Errorf("DateRange.End = %v, want %v", f.DateRange.End, wantEnd)
	}
	if !f.DateRange.Start.Equal(time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("DateRange.Start = %v", f.DateRange.Start)
	}
}

func TestParseFiltersEmpty(t *testing.T) {
	f, err := ParseFilters(FilterParams{Attendance: "all"})
	if err != nil {
		t.Fatalf("ParseFilters: %v", err)
	}
	if f.Attendance != "" || f.GuestCount != nil || f.DateRange != nil || f.SortBy != "" {
		t.Errorf("expected zero filters, got %+v", f)
	}
}

func TestParseFiltersRFC3339(t *testing.T) {
	f, err := ParseFilters(FilterParams{To: "2025-06-03T12:00:00Z"})
	if err != nil {
		t.Fatalf("ParseFilters: %v", err)
	}
	if f.DateRange.Start != nil {
		t.Errorf("Start should be unset")
	}
	if !f.DateRange.End.Equal(time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("End = %v", f.DateRange.End)
	}
}

func TestParseFiltersInvalid(t *testing.T) {
	tests := []struct {
		name   string
		params FilterParams
		want   []string
	}{
		{"attendance", FilterParams{Attendance: "perhaps"}, []string{"attendance"}},
		{"guest_not_int", FilterParams{GuestMin: "two"}, []string{"guestMin must be an integer"}},
		{"guest_out_of_range", FilterParams{GuestMax: "101"}, []string{"guestMax must be between 1 and 100"}},
		{"guest_zero", FilterParams{GuestMin: "0"}, []string{"guestMin must be between 1 and 100"}},
		{"guest_min_above_max", FilterParams{GuestMin: "5", GuestMax: "2"}, []string{"guestMin must not exceed guestMax"}},
		{"bad_date", FilterParams{From: "June 1"}, []string{"from must be"}},
		{"dates_reversed", FilterParams{From: "2025-06-05", To: "2025-06-01"}, []string{"from must not be after to"}},
		{"sort", FilterParams{SortBy: "age"}, []string{"sortBy"}},
		{"search_too_long", FilterParams{Search: strings.Repeat("x", maxSearchLength+1)}, []string{"search"}},
		{
			"all_problems_reported",
			FilterParams{Attendance: "x", GuestMin: "0", To: "bad", SortBy: "x"},
			[]string{"attendance", "guestMin", "to must be", "sortBy"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := ParseFilters(test.params)
			var fe *FilterError
			if !errors.As(err, &fe) {
				t.Fatalf("expected *FilterError, got %v", err)
			}
			if len(fe.Problems) != len(test.want) {
				t.Fatalf("problems = %q, want %d", fe.Problems, len(test.want))
			}
			for i, want := range test.want {
				if !strings.Contains(fe.Problems[i], want) {
					t.Errorf("problem %d = %q, want it to contain %q", i, fe.Problems[i], want)
				}
			}
		})
	}
}
