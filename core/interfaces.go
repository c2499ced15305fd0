// Package core defines the pipeline types and stage interfaces for articlescore.
// Each stage of the pipeline is a small, testable interface.
package core

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"
)

// InputRecord is one row of the input list.
type InputRecord struct {
	ID  string
	URL string
}

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	URL        string
	StatusCode int
	HTML       string
}

// Article is the readable part of a fetched page.
type Article struct {
	Title string
	Body  string
	// BodyHTML is the outer HTML of the paragraphs that make up Body.
	BodyHTML string
}

// Document is an extracted article keyed by its input identifier.
type Document struct {
	ID    string
	URL   string
	Title string
	Body  string
}

// Stats holds the lexical and readability statistics of one document.
type Stats struct {
	PositiveScore       int
	NegativeScore       int
	Polarity            float64
	Subjectivity        float64
	AvgSentenceLength   float64
	PercentComplexWords float64
	FogIndex            float64
	ComplexWordCount    int
	TotalWords          int
	SyllableCount       int
	PersonalPronouns    int
	AvgWordLength       float64
}

// Record is one row of the final report.
type Record struct {
	URLID string
	URL   string
	Stats
}

// ReportColumns is the fixed column order of every tabular report.
var ReportColumns = []string{
	"URL_ID",
	"URL",
	"Positive Score",
	"Negative Score",
	"Polarity Score",
	"Subjectivity Score",
	"Avg Sentence Length",
	"Percentage of Complex Words",
	"Fog Index",
	"Complex Word Count",
	"Total Words",
	"Syllable Count",
	"Personal Pronouns",
	"Avg Word Length",
}

// Values formats the record in ReportColumns order.
func (r Record) Values() []string {
	return []string{
		r.URLID,
		r.URL,
		strconv.Itoa(r.PositiveScore),
		strconv.Itoa(r.NegativeScore),
		formatFloat(r.Polarity),
		formatFloat(r.Subjectivity),
		formatFloat(r.AvgSentenceLength),
		formatFloat(r.PercentComplexWords),
		formatFloat(r.FogIndex),
		strconv.Itoa(r.ComplexWordCount),
		strconv.Itoa(r.TotalWords),
		strconv.Itoa(r.SyllableCount),
		strconv.Itoa(r.PersonalPronouns),
		formatFloat(r.AvgWordLength),
	}
}

// formatFloat writes the shortest round-trip form of v with the same
// layout as Python's float repr: fixed notation for exponents in [-4, 16),
// always with a fractional part, and e-notation otherwise.
func formatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err != nil || exp < -4 || exp >= 16 {
		return sci
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// ReportMeta describes the run that produced a report.
type ReportMeta struct {
	RunID       string
	GeneratedAt time.Time
	Source      string
}

// Fetcher retrieves raw HTML from a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) (*FetchResult, error)
}

// Extractor pulls the title and paragraph text out of raw HTML.
type Extractor interface {
	Extract(html string, pageURL string) (*Article, error)
}

// Normalizer converts an article's paragraph HTML into Markdown.
type Normalizer interface {
	Normalize(title string, html string) (string, error)
}

// Renderer converts report records into a final output format.
type Renderer interface {
	Render(records []Record, meta ReportMeta) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".csv", ".pdf").
	Extension() string
}
