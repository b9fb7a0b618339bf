package report

import (
	"fmt"
	"strings"
	"time"
)

// LineBreak separates lines inside a single table cell
const LineBreak = "<br>"

const tableHeader = "| PR# | Title | Author | Reviewers | Created | Updated |\n" +
	"|-----|-------|--------|-----------|---------|---------|\n"

// Row is one rendered PR line
type Row struct {
	Number    int
	Title     string
	URL       string
	Status    string
	Author    string
	Reviewers string
	CreatedAt string
	UpdatedAt string
}

// Document is the whole status page
type Document struct {
	Title       string
	GeneratedAt time.Time
	TimeFormat  string
	Rows        []Row
}

// Render serializes the document as Markdown
func Render(doc Document) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", doc.Title)
	fmt.Fprintf(&b, "Last updated: %s\n\n", doc.GeneratedAt.Format(doc.TimeFormat))
	b.WriteString(tableHeader)
	for _, row := range doc.Rows {
		b.WriteString(RenderRow(row))
		b.WriteByte('\n')
	}
	return b.String()
}

// RenderRow formats a single table row without the trailing newline
func RenderRow(row Row) string {
	return fmt.Sprintf("| #%d | [%s](%s)%s(%s) | %s | %s | %s | %s |",
		row.Number,
		EscapeCell(row.Title),
		row.URL,
		LineBreak,
		row.Status,
		row.Author,
		row.Reviewers,
		FormatDate(row.CreatedAt),
		FormatDate(row.UpdatedAt),
	)
}

// EscapeCell escapes pipe characters so they do not split table cells
func EscapeCell(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}

// FormatDate reduces an ISO-8601 timestamp to its calendar date.
// Values that are not RFC 3339 are cut at the time separator.
func FormatDate(ts string) string {
	if t, err := time.Parse(time.RFC3339, ts); err == nil {
		return t.Format(time.DateOnly)
	}
	date, _, _ := strings.Cut(ts, "T")
	return date
}
