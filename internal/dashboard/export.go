package dashboard

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bradmoore314/rsvp-management-app-sub000/internal/model"
)

// Format is an export output format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	// FormatExcel produces the same bytes as FormatCSV. There is no binary
	// spreadsheet encoder.
	FormatExcel Format = "excel"
)

// ErrUnsupportedFormat is returned for unknown export formats.
var ErrUnsupportedFormat = errors.New("unsupported export format")

// ParseFormat maps a request value to a Format. Empty means CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return FormatCSV, nil
	case FormatCSV, FormatJSON, FormatExcel:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// ExportOptions tunes the CSV writer.
type ExportOptions struct {
	// QuoteCSV quotes fields per RFC 4180. When false, values are written
	// verbatim and a value containing a comma shifts the columns after it.
	QuoteCSV bool
}

// Export is a rendered download.
type Export struct {
	Body        []byte
	ContentType string
	Filename    string
}

// ResponseColumns is the column header of the RSVP RESPONSES block.
var ResponseColumns = []string{
	"Guest Name",
	"Guest Email",
	"Attendance",
	"Guest Count",
	"Dietary Options",
	"Dietary Restrictions",
	"Message",
	"Submitted At",
	"Response Time (Days Before Event)",
}

// exportRow mirrors ResponseColumns.
type exportRow struct {
	GuestName           string `json:"guest_name"`
	GuestEmail          string `json:"guest_email"`
	Attendance          string `json:"attendance"`
	GuestCount          int    `json:"guest_count"`
	DietaryOptions      string `json:"dietary_options"`
	DietaryRestrictions string `json:"dietary_restrictions"`
	Message             string `json:"message"`
	SubmittedAt         string `json:"submitted_at"`
	ResponseTimeDays    int    `json:"response_time_days"`
}

func (r exportRow) fields() []string {
	return []string{
		r.GuestName,
		r.GuestEmail,
		r.Attendance,
		strconv.Itoa(r.GuestCount),
		r.DietaryOptions,
		r.DietaryRestrictions,
		r.Message,
		r.SubmittedAt,
		strconv.Itoa(r.ResponseTimeDays),
	}
}

type summaryLine struct {
	key   string
	value string
}

type jsonSummaryField struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

type jsonExport struct {
	EventSummary []jsonSummaryField `json:"event_summary"`
	Responses    []exportRow        `json:"responses"`
}

// ExportDashboard renders the event summary of snap followed by responses, in
// the given order, as CSV or JSON.
func ExportDashboard(snap *Snapshot, responses []model.Response, format Format, opts ExportOptions) (*Export, error) {
	if snap == nil {
		return nil, errors.New("export: nil snapshot")
	}

	summary := summaryLines(snap)
	rows := make([]exportRow, 0, len(responses))
	for i := range responses {
		rows = append(rows, newExportRow(&responses[i], snap.Event.Date))
	}

	var (
		body []byte
		err  error
		ext  string
		ct   string
	)
	switch format {
	case FormatCSV, FormatExcel, "":
		body, err = renderCSV(summary, rows, opts.QuoteCSV)
		ext, ct = "csv", "text/csv"
	case FormatJSON:
		body, err = renderJSON(summary, rows)
		ext, ct = "json", "application/json"
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	if err != nil {
		return nil, fmt.Errorf("render %s export: %w", ext, err)
	}

	return &Export{
		Body:        body,
		ContentType: ct,
		Filename:    exportFilename(snap, ext),
	}, nil
}

func summaryLines(snap *Snapshot) []summaryLine {
	ev := snap.Event
	eventDate := ""
	if !ev.Date.IsZero() {
		eventDate = ev.Date.Format(dayLayout)
	}
	return []summaryLine{
		{"Event Name", ev.Title},
		{"Event Date", eventDate},
		{"Event Time", ev.Time},
		{"Location", ev.Location},
		{"Host", ev.HostEmail},
		{"Total Invites", strconv.Itoa(snap.InviteCounts.TotalInvites)},
		{"Total Responses", strconv.Itoa(snap.InviteCounts.TotalResponses)},
		{"Response Rate", strconv.FormatFloat(snap.InviteCounts.ResponseRate, 'f', -1, 64) + "%"},
		{"Attending", strconv.Itoa(snap.Summary.Attending)},
		{"Total Guests", strconv.Itoa(snap.Summary.TotalGuests)},
	}
}

func newExportRow(r *model.Response, eventDate time.Time) exportRow {
	return exportRow{
		GuestName:           r.GuestName,
		GuestEmail:          r.GuestEmail,
		Attendance:          string(r.Attendance),
		GuestCount:          r.GuestCount,
		DietaryOptions:      strings.Join(r.DistinctDietaryOptions(), "; "),
		DietaryRestrictions: r.DietaryRestrictions,
		Message:             r.Message,
		SubmittedAt:         r.SubmittedAt.Format(time.RFC3339),
		ResponseTimeDays:    daysUntil(eventDate, r.SubmittedAt),
	}
}

func renderCSV(summary []summaryLine, rows []exportRow, quote bool) ([]byte, error) {
	lines := [][]string{{"EVENT SUMMARY"}}
	for _, l := range summary {
		lines = append(lines, []string{l.key, l.value})
	}
	lines = append(lines, []string{""}, []string{"RSVP RESPONSES"}, ResponseColumns)
	for _, row := range rows {
		lines = append(lines, row.fields())
	}

	var buf bytes.Buffer
	if !quote {
		for _, fields := range lines {
			buf.WriteString(strings.Join(fields, ","))
			buf.WriteByte('\n')
		}
		return buf.Bytes(), nil
	}

	w := csv.NewWriter(&buf)
	if err := w.WriteAll(lines); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func renderJSON(summary []summaryLine, rows []exportRow) ([]byte, error) {
	out := jsonExport{
		EventSummary: make([]jsonSummaryField, 0, len(summary)),
		Responses:    rows,
	}
	for _, l := range summary {
		out.EventSummary = append(out.EventSummary, jsonSummaryField{Field: l.key, Value: l.value})
	}
	return json.MarshalIndent(out, "", "  ")
}

// exportFilename follows rsvp-dashboard-<eventId>-<isoDate>.<ext>.
func exportFilename(snap *Snapshot, ext string) string {
	generated := snap.GeneratedAt
	if generated.IsZero() {
		generated = time.Now().UTC()
	}
	return fmt.Sprintf("rsvp-dashboard-%s-%s.%s", snap.EventID, generated.Format(dayLayout), ext)
}
