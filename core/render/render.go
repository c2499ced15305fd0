// Package render provides the report renderers for articlescore.
// Every renderer emits one row per record with the columns of
// core.ReportColumns, in that order.
package render

import (
	"fmt"
	"strings"

	"github.com/gaurav-prasanna/articlescore/core"
)

// Format names accepted by New.
const (
	FormatCSV      = "csv"
	FormatJSON     = "json"
	FormatMarkdown = "markdown"
	FormatPDF      = "pdf"
)

// New returns the Renderer for the named format.
func New(format string) (core.Renderer, error) {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "", FormatCSV:
		return NewCSVRenderer(), nil
	case FormatJSON:
		return NewJSONRenderer(), nil
	case FormatMarkdown, "md":
		return NewMarkdownRenderer(), nil
	case FormatPDF:
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown report format %q", format)
	}
}
