package render

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/gaurav-prasanna/articlescore/core"
)

// JSONRenderer produces the report as a JSON document.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

type jsonReport struct {
	RunID       string       `json:"run_id,omitempty"`
	GeneratedAt string       `json:"generated_at,omitempty"` // RFC3339
	Source      string       `json:"source,omitempty"`
	Count       int          `json:"count"`
	Records     []jsonRecord `json:"records"`
}

type jsonRecord struct {
	URLID               string  `json:"url_id"`
	URL                 string  `json:"url"`
	PositiveScore       int     `json:"positive_score"`
	NegativeScore       int     `json:"negative_score"`
	Polarity            float64 `json:"polarity_score"`
	Subjectivity        float64 `json:"subjectivity_score"`
	AvgSentenceLength   float64 `json:"avg_sentence_length"`
	PercentComplexWords float64 `json:"percentage_of_complex_words"`
	FogIndex            float64 `json:"fog_index"`
	ComplexWordCount    int     `json:"complex_word_count"`
	TotalWords          int     `json:"total_words"`
	SyllableCount       int     `json:"syllable_count"`
	PersonalPronouns    int     `json:"personal_pronouns"`
	AvgWordLength       float64 `json:"avg_word_length"`
}

// Render marshals run metadata and records as indented JSON.
func (r *JSONRenderer) Render(records []core.Record, meta core.ReportMeta) ([]byte, error) {
	report := jsonReport{
		RunID:   meta.RunID,
		Source:  meta.Source,
		Count:   len(records),
		Records: make([]jsonRecord, 0, len(records)),
	}
	if !meta.GeneratedAt.IsZero() {
		report.GeneratedAt = meta.GeneratedAt.UTC().Format(time.RFC3339)
	}
	for _, rec := range records {
		report.Records = append(report.Records, jsonRecord{
			URLID:               rec.URLID,
			URL:                 rec.URL,
			PositiveScore:       rec.PositiveScore,
			NegativeScore:       rec.NegativeScore,
			Polarity:            rec.Polarity,
			Subjectivity:        rec.Subjectivity,
			AvgSentenceLength:   rec.AvgSentenceLength,
			PercentComplexWords: rec.PercentComplexWords,
			FogIndex:            rec.FogIndex,
			ComplexWordCount:    rec.ComplexWordCount,
			TotalWords:          rec.TotalWords,
			SyllableCount:       rec.SyllableCount,
			PersonalPronouns:    rec.PersonalPronouns,
			AvgWordLength:       rec.AvgWordLength,
		})
	}

	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
