// Package lexicon loads the word lists used for sentiment scoring and
// stopword removal. A Lexicon is built once per run and never mutated.
package lexicon

import (
	"bufio"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"go.uber.org/zap"
)

//go:embed stopwords_en.txt
var englishStopwords string

// WordSet is a set of lowercase words.
type WordSet map[string]struct{}

// NewWordSet builds a WordSet from the given words, lowercasing each one.
func NewWordSet(words ...string) WordSet {
	s := make(WordSet, len(words))
	for _, w := range words {
		s.add(w)
	}
	return s
}

func (s WordSet) add(w string) {
	w = strings.ToLower(strings.TrimSpace(w))
	if w == "" {
		return
	}
	s[w] = struct{}{}
}

// Has reports whether w is in the set. A nil set contains nothing.
func (s WordSet) Has(w string) bool {
	_, ok := s[w]
	return ok
}

// Len returns the number of words in the set.
func (s WordSet) Len() int {
	return len(s)
}

// Lexicon groups the sentiment word lists with the stopword set.
type Lexicon struct {
	Positive  WordSet
	Negative  WordSet
	Stopwords WordSet
}

// Options points Load at the word list files.
type Options struct {
	PositivePath  string
	NegativePath  string
	StopwordPaths []string
	// Strict turns a missing sentiment word list into a load error instead
	// of an empty set.
	Strict bool
}

// ErrMissingWordList is returned in strict mode when a word list file does not exist.
var ErrMissingWordList = errors.New("word list not found")

// DefaultStopwords returns the built-in English stopword set.
func DefaultStopwords() WordSet {
	s, _ := ReadWordList(strings.NewReader(englishStopwords))
	return s
}

// ReadWordList reads whitespace separated words from r.
func ReadWordList(r io.Reader) (WordSet, error) {
	s := make(WordSet)
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	scanner.Split(bufio.ScanWords)
	for scanner.Scan() {
		s.add(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning word list: %w", err)
	}
	return s, nil
}

// Load reads the positive and negative word lists and builds the stopword
// set from the built-in list plus any extra stopword files.
//
// A missing positive or negative list is logged and leaves that set empty,
// unless opts.Strict is set.
func Load(opts Options, logger *zap.Logger) (*Lexicon, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	positive, err := loadSentimentList(opts.PositivePath, opts.Strict, logger)
	if err != nil {
		return nil, err
	}
	negative, err := loadSentimentList(opts.NegativePath, opts.Strict, logger)
	if err != nil {
		return nil, err
	}

	stopwords := DefaultStopwords()
	for _, path := range opts.StopwordPaths {
		extra, err := readWordListFile(path)
		if err != nil {
			return nil, err
		}
		for w := range extra {
			stopwords[w] = struct{}{}
		}
	}

	logger.Info("Lexicon loaded",
		zap.Int("positive", positive.Len()),
		zap.Int("negative", negative.Len()),
		zap.Int("stopwords", stopwords.Len()),
	)

	return &Lexicon{
		Positive:  positive,
		Negative:  negative,
		Stopwords: stopwords,
	}, nil
}

func loadSentimentList(path string, strict bool, logger *zap.Logger) (WordSet, error) {
	words, err := readWordListFile(path)
	switch {
	case err == nil:
		return words, nil
	case errors.Is(err, fs.ErrNotExist) && !strict:
		logger.Warn("Word list not found; scoring continues with an empty set", zap.String("path", path))
		return WordSet{}, nil
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: %s", ErrMissingWordList, path)
	default:
		return nil, err
	}
}

func readWordListFile(path string) (WordSet, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening word list %s: %w", path, err)
	}
	defer f.Close()

	words, err := ReadWordList(f)
	if err != nil {
		return nil, fmt.Errorf("reading word list %s: %w", path, err)
	}
	return words, nil
}
