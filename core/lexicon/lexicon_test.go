package lexicon

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestReadWordListLowercasesAndSplitsOnWhitespace(t *testing.T) {
	t.Parallel()

	words, err := ReadWordList(strings.NewReader("Good\tGREAT\n\nnice  nice\r\n"))
	require.NoError(t, err)

	assert.Equal(t, 3, words.Len())
	assert.True(t, words.Has("good"))
	assert.True(t, words.Has("great"))
	assert.True(t, words.Has("nice"))
	assert.False(t, words.Has("Good"))
}

func TestDefaultStopwords(t *testing.T) {
	t.Parallel()

	stop := DefaultStopwords()
	assert.Equal(t, 179, stop.Len())
	for _, w := range []string{"i", "we", "my", "ours", "the", "and", "wouldn't"} {
		assert.Truef(t, stop.Has(w), "expected %q to be a stopword", w)
	}
	assert.False(t, stop.Has("love"))
}

func TestLoadReadsAllLists(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := Options{
		PositivePath:  writeFile(t, dir, "positive-words.txt", "love\ngreat\n"),
		NegativePath:  writeFile(t, dir, "negative-words.txt", "awful\n"),
		StopwordPaths: []string{writeFile(t, dir, "extra.txt", "Blackcoffer\n")},
	}

	lex, err := Load(opts, nil)
	require.NoError(t, err)

	assert.Equal(t, 2, lex.Positive.Len())
	assert.Equal(t, 1, lex.Negative.Len())
	assert.True(t, lex.Stopwords.Has("blackcoffer"))
	assert.True(t, lex.Stopwords.Has("the"))
}

func TestLoadMissingListDegradesToEmptySet(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := Options{
		PositivePath: writeFile(t, dir, "positive-words.txt", "love\n"),
		NegativePath: filepath.Join(dir, "missing.txt"),
	}

	lex, err := Load(opts, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, lex.Positive.Len())
	assert.Equal(t, 0, lex.Negative.Len())
	assert.False(t, lex.Negative.Has("love"))
}

func TestLoadMissingListStrict(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := Options{
		PositivePath: filepath.Join(dir, "missing.txt"),
		NegativePath: writeFile(t, dir, "negative-words.txt", "awful\n"),
		Strict:       true,
	}

	_, err := Load(opts, nil)
	require.ErrorIs(t, err, ErrMissingWordList)
}

func TestLoadMissingStopwordFileFails(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	opts := Options{
		PositivePath:  writeFile(t, dir, "positive-words.txt", "love\n"),
		NegativePath:  writeFile(t, dir, "negative-words.txt", "awful\n"),
		StopwordPaths: []string{filepath.Join(dir, "nope.txt")},
	}

	_, err := Load(opts, nil)
	require.Error(t, err)
}

func TestNilWordSetHasNothing(t *testing.T) {
	t.Parallel()

	var s WordSet
	assert.False(t, s.Has("anything"))
	assert.Equal(t, 0, s.Len())
}
