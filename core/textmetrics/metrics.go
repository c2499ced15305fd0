package textmetrics

import (
	"unicode/utf8"

	"github.com/gaurav-prasanna/articlescore/core"
	"github.com/gaurav-prasanna/articlescore/core/lexicon"
)

// epsilon keeps the sentiment ratios finite when no words are found.
const epsilon = 0.000001

// fogWeight is the Gunning fog scaling factor.
const fogWeight = 0.4

// Analyze computes the statistics of one document's raw text.
// It has no side effects; lex is only read.
func Analyze(text string, lex *lexicon.Lexicon) core.Stats {
	if lex == nil {
		lex = &lexicon.Lexicon{}
	}

	words := Clean(text, lex.Stopwords)
	total := len(words)

	var (
		positive, negative int
		complexCount       int
		syllables          int
		letters            int
	)
	for _, w := range words {
		if lex.Positive.Has(w) {
			positive++
		}
		if lex.Negative.Has(w) {
			negative++
		}
		n := CountSyllables(w)
		syllables += n
		if n > 2 {
			complexCount++
		}
		letters += utf8.RuneCountInString(w)
	}

	stats := core.Stats{
		PositiveScore:    positive,
		NegativeScore:    negative,
		Polarity:         float64(positive-negative) / (float64(positive+negative) + epsilon),
		Subjectivity:     float64(positive+negative) / (float64(total) + epsilon),
		ComplexWordCount: complexCount,
		TotalWords:       total,
		SyllableCount:    syllables,
		PersonalPronouns: CountPersonalPronouns(text),
	}

	if sentences := CountSentences(text); sentences > 0 {
		stats.AvgSentenceLength = float64(total) / float64(sentences)
	}
	if total > 0 {
		stats.PercentComplexWords = float64(complexCount) / float64(total)
		stats.AvgWordLength = float64(letters) / float64(total)
	}
	stats.FogIndex = fogWeight * (stats.AvgSentenceLength + stats.PercentComplexWords)

	return stats
}
