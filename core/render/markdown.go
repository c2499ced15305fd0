package render

import (
	"strings"

	"github.com/gaurav-prasanna/articlescore/core"
)

// MarkdownRenderer writes the report as a Markdown pipe table.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render returns a heading, the run id and the table.
func (r *MarkdownRenderer) Render(records []core.Record, meta core.ReportMeta) ([]byte, error) {
	var b strings.Builder
	b.WriteString("# Article metrics\n\n")
	if meta.RunID != "" {
		b.WriteString("Run `" + meta.RunID + "`")
		if !meta.GeneratedAt.IsZero() {
			b.WriteString(", generated " + meta.GeneratedAt.UTC().Format("2006-01-02 15:04:05 MST"))
		}
		b.WriteString("\n\n")
	}

	writeRow(&b, core.ReportColumns)
	sep := make([]string, len(core.ReportColumns))
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&b, sep)
	for _, rec := range records {
		writeRow(&b, rec.Values())
	}
	return []byte(b.String()), nil
}

func writeRow(b *strings.Builder, cells []string) {
	b.WriteString("|")
	for _, c := range cells {
		b.WriteString(" ")
		b.WriteString(escapeCell(c))
		b.WriteString(" |")
	}
	b.WriteString("\n")
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "|", `\|`)
	return strings.ReplaceAll(s, "\n", " ")
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
