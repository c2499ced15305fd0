// Package textmetrics computes the lexical and readability statistics of a
// document: sentiment scores against a lexicon, fog index, syllable and
// pronoun counts, and word/sentence lengths.
//
// Sentence splitting on '.' and syllable counting by vowel groups are
// deliberately naive; downstream reports depend on the exact numbers.
package textmetrics

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/gaurav-prasanna/articlescore/core/lexicon"
)

var vowelGroup = regexp.MustCompile(`[aeiouy]+`)

var personalPronouns = map[string]struct{}{
	"i":    {},
	"we":   {},
	"my":   {},
	"ours": {},
	"us":   {},
}

// Clean replaces every non-word character with a space, lowercases the
// text, splits it on whitespace and drops stopwords.
func Clean(text string, stopwords lexicon.WordSet) []string {
	spaced := strings.Map(func(r rune) rune {
		if isWordRune(r) {
			return r
		}
		return ' '
	}, text)

	tokens := strings.Fields(strings.ToLower(spaced))
	words := tokens[:0]
	for _, tok := range tokens {
		if stopwords.Has(tok) {
			continue
		}
		words = append(words, tok)
	}
	return words
}

func isWordRune(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// CountSyllables returns the number of vowel groups in word.
func CountSyllables(word string) int {
	return len(vowelGroup.FindAllStringIndex(strings.ToLower(word), -1))
}

// IsComplex reports whether word has more than two vowel groups.
func IsComplex(word string) bool {
	return CountSyllables(word) > 2
}

// CountSentences splits text on '.' and returns the number of fragments.
// Abbreviations and decimals are not special-cased.
func CountSentences(text string) int {
	return len(strings.Split(text, "."))
}

// CountPersonalPronouns counts whole-word, case-insensitive occurrences of
// I, we, my, ours and us. Word boundaries follow isWordRune, so a pronoun
// touching any letter, digit or underscore is part of a longer word.
func CountPersonalPronouns(text string) int {
	n := 0
	for _, word := range strings.FieldsFunc(text, func(r rune) bool { return !isWordRune(r) }) {
		if _, ok := personalPronouns[strings.ToLower(word)]; ok {
			n++
		}
	}
	return n
}
