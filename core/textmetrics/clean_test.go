package textmetrics

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gaurav-prasanna/articlescore/core/lexicon"
)

func TestClean(t *testing.T) {
	t.Parallel()

	stop := lexicon.NewWordSet("this", "it", "was", "and")

	tests := []struct {
		name string
		in   string
		want []string
	}{
		{"punctuation becomes whitespace", "I love this. It was great and wonderful.", []string{"i", "love", "great", "wonderful"}},
		{"apostrophes split words", "Don't stop", []string{"don", "t", "stop"}},
		{"underscores and digits are word characters", "snake_case 2024!", []string{"snake_case", "2024"}},
		{"unicode letters survive", "Café—naïve", []string{"café", "naïve"}},
		{"empty", "", []string{}},
		{"only stopwords", "This. It! AND?", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Clean(tt.in, stop)
			assert.Equal(t, tt.want, append([]string{}, got...))
		})
	}
}

func TestCleanIsIdempotent(t *testing.T) {
	t.Parallel()

	stop := lexicon.DefaultStopwords()
	first := Clean("We, the people -- of the United States; in order to form a more perfect Union.", stop)
	second := Clean(strings.Join(first, " "), stop)
	assert.Equal(t, first, second)
}

func TestCountSyllables(t *testing.T) {
	t.Parallel()

	tests := map[string]int{
		"hello":     2,
		"Hello":     2,
		"HELLO":     2,
		"sky":       1,
		"rhythm":    1,
		"xyz":       1,
		"bcd":       0,
		"queue":     1,
		"wonderful": 3,
		"beautiful": 3,
		"":          0,
	}
	for word, want := range tests {
		assert.Equalf(t, want, CountSyllables(word), "CountSyllables(%q)", word)
	}
}

func TestIsComplex(t *testing.T) {
	t.Parallel()

	assert.True(t, IsComplex("wonderful"))
	assert.True(t, IsComplex("Readability"))
	assert.False(t, IsComplex("love"))
	assert.False(t, IsComplex("great"))
}

func TestCountSentences(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 1, CountSentences(""))
	assert.Equal(t, 1, CountSentences("no period"))
	assert.Equal(t, 3, CountSentences("One. Two."))
	assert.Equal(t, 3, CountSentences("Pi is 3.14. Right"))
}

func TestCountPersonalPronouns(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want int
	}{
		{"I think we should tell my friends about us and ours.", 5},
		{"i WE My OURS Us", 5},
		{"Inside the museum, wealthy users mystify.", 0},
		{"usó usé Ímy my_x 2us", 0},
		{"«Us», (we) and-I.", 3},
		{"", 0},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.want, CountPersonalPronouns(tt.in), "CountPersonalPronouns(%q)", tt.in)
	}
}
