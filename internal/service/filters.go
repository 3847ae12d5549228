package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/dashboard"
	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

const (
	minGuestCount   = 1
	maxGuestCount   = 100
	maxSearchLength = 200
	dateOnlyLayout  = "2006-01-02"
)

// FilterParams holds raw, unvalidated filter values as received from a
// query string. Empty strings mean "not set".
type FilterParams struct {
	Attendance string
	Search     string
	Dietary    []string
	GuestMin   string
	GuestMax   string
	From       string
	To         string
	SortBy     string
}

// FilterError lists every problem found in a set of filter params.
type FilterError struct {
	Problems []string
}

func (e *FilterError) Error() string {
	return "invalid filters: " + strings.Join(e.Problems, "; ")
}

// ParseFilters validates params and converts them to engine filters.
// All problems are collected before returning.
func ParseFilters(p FilterParams) (dashboard.Filters, error) {
	var (
		f        dashboard.Filters
		problems []string
	)
	addProblem := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	switch a := strings.ToLower(strings.TrimSpace(p.Attendance)); {
	case a == "" || a == dashboard.AttendanceAll:
	case model.Attendance(a).IsValid():
		f.Attendance = a
	default:
		addProblem("attendance must be one of all, yes, no, maybe")
	}

	f.Search = strings.TrimSpace(p.Search)
	if len(f.Search) > maxSearchLength {
		addProblem("search must be at most %d characters", maxSearchLength)
	}

	for _, tag := range p.Dietary {
		if tag = strings.TrimSpace(tag); tag != "" {
			f.DietaryOptions = append(f.DietaryOptions, tag)
		}
	}

	guestMin, okMin := parseGuestBound("guestMin", p.GuestMin, addProblem)
	guestMax, okMax := parseGuestBound("guestMax", p.GuestMax, addProblem)
	if okMin && okMax && guestMin != nil && guestMax != nil && *guestMin > *guestMax {
		addProblem("guestMin must not exceed guestMax")
	}
	if guestMin != nil || guestMax != nil {
		f.GuestCount = &dashboard.GuestCountRange{Min: guestMin, Max: guestMax}
	}

	from, okFrom := parseDateBound("from", p.From, false, addProblem)
	to, okTo := parseDateBound("to", p.To, true, addProblem)
	if okFrom && okTo && from != nil && to != nil && from.After(*to) {
		addProblem("from must not be after to")
	}
	if from != nil || to != nil {
		f.DateRange = &dashboard.DateRange{Start: from, End: to}
	}

	if s := strings.TrimSpace(p.SortBy); s != "" {
		f.SortBy = dashboard.SortField(s)
		if !f.SortBy.IsValid() {
			addProblem("sortBy must be one of name, email, attendance, guestCount, submittedAt")
		}
	}

	if len(problems) > 0 {
		return dashboard.Filters{}, &FilterError{Problems: problems}
	}
	return f, nil
}

func parseGuestBound(name, raw string, addProblem func(string, ...any)) (*int, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		addProblem("%s must be an integer", name)
		return nil, false
	}
	if n < minGuestCount || n > maxGuestCount {
		addProblem("%s must be between %d and %d", name, minGuestCount, maxGuestCount)
		return nil, false
	}
	return &n, true
}

// parseDateBound accepts RFC 3339 timestamps or plain dates. A plain date
// used as an upper bound covers the whole day.
func parseDateBound(name, raw string, endOfDay bool, addProblem func(string, ...any)) (*time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, true
	}
	t, err := time.Parse(dateOnlyLayout, raw)
	if err != nil {
		addProblem("%s must be an RFC 3339 timestamp or YYYY-MM-DD date", name)
		return nil, false
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, true
}
