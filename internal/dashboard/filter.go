package dashboard

import (
	"slices"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

// SortField names a sort order for filtered responses.
type SortField string

const (
	SortByName        SortField = "name"
	SortByEmail       SortField = "email"
	SortByAttendance  SortField = "attendance"
	SortByGuestCount  SortField = "guestCount"
	SortBySubmittedAt SortField = "submittedAt"
)

// AttendanceAll disables attendance filtering.
const AttendanceAll = "all"

// GuestCountRange bounds guest counts inclusively. Either bound may be nil.
type GuestCountRange struct {
	Min *int
	Max *int
}

// DateRange bounds submission times inclusively. Either bound may be nil.
type DateRange struct {
	Start *time.Time
	End   *time.Time
}

// Filters are combined with logical AND. Zero values disable a predicate.
type Filters struct {
	Attendance     string
	Search         string
	DietaryOptions []string
	GuestCount     *GuestCountRange
	DateRange      *DateRange
	SortBy         SortField
}

// FilterResult is a filtered view plus the counts for "N of M shown".
type FilterResult struct {
	Responses     []model.Response `json:"responses"`
	TotalCount    int              `json:"total_count"`
	OriginalCount int              `json:"original_count"`
}

// FilterResponses applies filters then a stable sort. The input slice is not
// modified; the result is a new slice.
func FilterResponses(responses []model.Response, f Filters) FilterResult {
	match := f.matcher()

	out := make([]model.Response, 0, len(responses))
	for i := range responses {
		if match(&responses[i]) {
			out = append(out, responses[i])
		}
	}

	if cmp := f.SortBy.compare(); cmp != nil {
		slices.SortStableFunc(out, cmp)
	}

	return FilterResult{
		Responses:     out,
		TotalCount:    len(out),
		OriginalCount: len(responses),
	}
}

func (f Filters) matcher() func(*model.Response) bool {
	var preds []func(*model.Response) bool

	if f.Attendance != "" && f.Attendance != AttendanceAll {
		want := model.Attendance(f.Attendance)
		preds = append(preds, func(r *model.Response) bool {
			return r.Attendance == want
		})
	}

	if f.Search != "" {
		fold := cases.Fold()
		needle := fold.String(f.Search)
		preds = append(preds, func(r *model.Response) bool {
			for _, field := range [...]string{r.GuestName, r.GuestEmail, r.Message} {
				if strings.Contains(fold.String(field), needle) {
					return true
				}
			}
			return false
		})
	}

	if len(f.DietaryOptions) > 0 {
		wanted := f.DietaryOptions
		preds = append(preds, func(r *model.Response) bool {
			return slices.ContainsFunc(r.DietaryOptions, func(tag string) bool {
				return slices.Contains(wanted, tag)
			})
		})
	}

	if gc := f.GuestCount; gc != nil {
		preds = append(preds, func(r *model.Response) bool {
			if gc.Min != nil && r.GuestCount < *gc.Min {
				return false
			}
			if gc.Max != nil && r.GuestCount > *gc.Max {
				return false
			}
			return true
		})
	}

	if dr := f.DateRange; dr != nil {
		preds = append(preds, func(r *model.Response) bool {
			if dr.Start != nil && r.SubmittedAt.Before(*dr.Start) {
				return false
			}
			if dr.End != nil && r.SubmittedAt.After(*dr.End) {
				return false
			}
			return true
		})
	}

	return func(r *model.Response) bool {
		for _, p := range preds {
			if !p(r) {
				return false
			}
		}
		return true
	}
}

// compare returns the ordering for the field, or nil to keep filtered order.
func (s SortField) compare() func(a, b model.Response) int {
	switch s {
	case SortByName:
		return func(a, b model.Response) int { return strings.Compare(a.GuestName, b.GuestName) }
	case SortByEmail:
		return func(a, b model.Response) int { return strings.Compare(a.GuestEmail, b.GuestEmail) }
	case SortByAttendance:
		return func(a, b model.Response) int { return strings.Compare(string(a.Attendance), string(b.Attendance)) }
	case SortByGuestCount:
		return func(a, b model.Response) int { return b.GuestCount - a.GuestCount }
	case SortBySubmittedAt:
		return func(a, b model.Response) int { return b.SubmittedAt.Compare(a.SubmittedAt) }
	default:
		return nil
	}
}

// IsValid reports whether s is a known sort field.
func (s SortField) IsValid() bool {
	return s.compare() != nil
}
