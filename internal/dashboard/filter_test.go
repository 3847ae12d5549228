package dashboard

import (
	"slices"
	"testing"
	"time"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

func intPtr(v int) *int { return &v }

func timePtr(v time.Time) *time.Time { return &v }

func filterFixture(t *testing.T) []model.Response {
	t.Helper()
	responses := []model.Response{
		newResponse("Carol", model.AttendanceYes, 1, at(t, "2025-06-03T10:00:00Z"), "Vegan"),
		newResponse("alice", model.AttendanceNo, 2, at(t, "2025-06-01T10:00:00Z")),
		newResponse("Bob", model.AttendanceMaybe, 3, at(t, "2025-06-05T10:00:00Z"), "Halal", "Kosher"),
		newResponse("Dave", model.AttendanceYes, 6, at(t, "2025-06-02T10:00:00Z")),
	}
	responses[2].Message = "Looking forward to the CAKE"
	return responses
}

func TestFilterResponses_Empty(t *testing.T) {
	res := FilterResponses(nil, Filters{Attendance: "yes", Search: "x", SortBy: SortByName})
	if res.TotalCount != 0 || res.OriginalCount != 0 || len(res.Responses) != 0 {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestFilterResponses_NoFiltersIsIdentity(t *testing.T) {
	responses := filterFixture(t)
	res := FilterResponses(responses, Filters{})

	if res.TotalCount != len(responses) || res.OriginalCount != len(responses) {
		t.Fatalf("counts = %d/%d, want %d", res.TotalCount, res.OriginalCount, len(responses))
	}
	if !slices.Equal(names(res.Responses), names(responses)) {
		t.Errorf("order changed: %v", names(res.Responses))
	}
}

func TestFilterResponses_Predicates(t *testing.T) {
	responses := filterFixture(t)

	tests := []struct {
		name    string
		filters Filters
		want    []string
	}{
		{"attendance yes", Filters{Attendance: "yes"}, []string{"Carol", "Dave"}},
		{"attendance all", Filters{Attendance: AttendanceAll}, []string{"Carol", "alice", "Bob", "Dave"}},
		{"search name case-insensitive", Filters{Search: "ALICE"}, []string{"alice"}},
		{"search email", Filters{Search: "dave@"}, []string{"Dave"}},
		{"search message", Filters{Search: "cake"}, []string{"Bob"}},
		{"search no match", Filters{Search: "zed"}, []string{}},
		{"dietary intersection", Filters{DietaryOptions: []string{"Kosher", "Vegan"}}, []string{"Carol", "Bob"}},
		{"guest count min", Filters{GuestCount: &GuestCountRange{Min: intPtr(3)}}, []string{"Bob", "Dave"}},
		{"guest count max", Filters{GuestCount: &GuestCountRange{Max: intPtr(1)}}, []string{"Carol"}},
		{
			"date range inclusive",
			Filters{DateRange: &DateRange{
				Start: timePtr(at(t, "2025-06-02T10:00:00Z")),
				End:   timePtr(at(t, "2025-06-03T10:00:00Z")),
			}},
			[]string{"Carol", "Dave"},
		},
		{"date range open end", Filters{DateRange: &DateRange{Start: timePtr(at(t, "2025-06-04T00:00:00Z"))}}, []string{"Bob"}},
		{"combined", Filters{Attendance: "yes", GuestCount: &GuestCountRange{Min: intPtr(2)}}, []string{"Dave"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := FilterResponses(responses, tt.filters)
			if got := names(res.Responses); !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if res.TotalCount != len(tt.want) || res.OriginalCount != len(responses) {
				t.Errorf("counts = %d of %d", res.TotalCount, res.OriginalCount)
			}
		})
	}
}

func TestFilterResponses_GuestCountRange(t *testing.T) {
	ts := at(t, "2025-06-10T10:00:00Z")
	responses := []model.Response{
		newResponse("one", model.AttendanceYes, 1, ts),
		newResponse("two", model.AttendanceYes, 2, ts),
		newResponse("three", model.AttendanceYes, 3, ts),
		newResponse("six", model.AttendanceYes, 6, ts),
	}

	res := FilterResponses(responses, Filters{GuestCount: &GuestCountRange{Min: intPtr(2), Max: intPtr(5)}})
	if res.TotalCount != 2 || !slices.Equal(names(res.Responses), []string{"two", "three"}) {
		t.Fatalf("got %v", names(res.Responses))
	}
}

func TestFilterResponses_Sort(t *testing.T) {
	responses := filterFixture(t)

	tests := []struct {
		sortBy SortField
		want   []string
	}{
		{SortByName, []string{"Bob", "Carol", "Dave", "alice"}},
		{SortByEmail, []string{"Bob", "Carol", "Dave", "alice"}},
		{SortByAttendance, []string{"Bob", "alice", "Carol", "Dave"}},
		{SortByGuestCount, []string{"Dave", "Bob", "alice", "Carol"}},
		{SortBySubmittedAt, []string{"Bob", "Carol", "Dave", "alice"}},
		{"unknown", []string{"Carol", "alice", "Bob", "Dave"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.sortBy), func(t *testing.T) {
			res := FilterResponses(responses, Filters{SortBy: tt.sortBy})
			if got := names(res.Responses); !slices.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}

	// the caller's slice keeps its order
	if got := names(responses); !slices.Equal(got, []string{"Carol", "alice", "Bob", "Dave"}) {
		t.Errorf("input mutated: %v", got)
	}
}

func TestFilterResponses_SortIsStable(t *testing.T) {
	ts := at(t, "2025-06-10T10:00:00Z")
	responses := []model.Response{
		newResponse("a", model.AttendanceYes, 2, ts),
		newResponse("b", model.AttendanceYes, 2, ts),
		newResponse("c", model.AttendanceYes, 5, ts.Add(time.Hour)),
		newResponse("d", model.AttendanceYes, 2, ts),
	}

	byGuests := FilterResponses(responses, Filters{SortBy: SortByGuestCount})
	if got := names(byGuests.Responses); !slices.Equal(got, []string{"c", "a", "b", "d"}) {
		t.Errorf("guestCount sort = %v", got)
	}

	once := FilterResponses(responses, Filters{SortBy: SortBySubmittedAt})
	twice := FilterResponses(once.Responses, Filters{SortBy: SortBySubmittedAt})
	if !slices.Equal(names(once.Responses), names(twice.Responses)) {
		t.Errorf("re-sorting changed order: %v vs %v", names(once.Responses), names(twice.Responses))
	}
	if got := names(once.Responses); !slices.Equal(got, []string{"c", "a", "b", "d"}) {
		t.Errorf("submittedAt sort = %v", got)
	}
}

func TestSortField_IsValid(t *testing.T) {
	for _, s := range []SortField{SortByName, SortByEmail, SortByAttendance, SortByGuestCount, SortBySubmittedAt} {
		if !s.IsValid() {
			t.Errorf("expected %q to be valid", s)
		}
	}
	if SortField("createdAt").IsValid() || SortField("").IsValid() {
		t.Error("expected unknown sort fields to be invalid")
	}
}
