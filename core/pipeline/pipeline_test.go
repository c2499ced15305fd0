package pipeline

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"

	"github.com/gaurav-prasanna/articlescore/core"
	"github.com/gaurav-prasanna/articlescore/core/extract"
	"github.com/gaurav-prasanna/articlescore/core/lexicon"
	"github.com/gaurav-prasanna/articlescore/core/normalize"
	"github.com/gaurav-prasanna/articlescore/core/output"
	"github.com/gaurav-prasanna/articlescore/internal/telemetry"
)

// MockFetcher is a mock implementation of the core.Fetcher interface.
type MockFetcher struct {
	mock.Mock
}

func (m *MockFetcher) Fetch(ctx context.Context, rawURL string) (*core.FetchResult, error) {
	args := m.Called(ctx, rawURL)
	res, _ := args.Get(0).(*core.FetchResult)
	return res, args.Error(1)
}

func page(url, title, body string) *core.FetchResult {
	return &core.FetchResult{
		URL:        url,
		StatusCode: 200,
		HTML:       "<html><head><title>" + title + "</title></head><body>" + body + "</body></html>",
	}
}

func newFetchStage(t *testing.T, fetcher core.Fetcher) (*FetchStage, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "extracted_articles")
	writer, err := output.New(dir)
	require.NoError(t, err)
	return &FetchStage{
		Fetcher:   fetcher,
		Extractor: extract.New(extract.ModeParagraphs),
		Writer:    writer,
		Recorder:  telemetry.NewRecorder(),
	}, dir
}

func TestFetchStageSkipsFailuresAndContinues(t *testing.T) {
	t.Parallel()

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://example.com/1").
		Return(page("https://example.com/1", "One", "<p>I love this.</p><p>It was great.</p>"), nil)
	fetcher.On("Fetch", mock.Anything, "https://example.com/2").
		Return(nil, errors.New("connection refused"))
	fetcher.On("Fetch", mock.Anything, "https://example.com/3").
		Return(page("https://example.com/3", "Three", "<div>no paragraphs</div>"), nil)
	fetcher.On("Fetch", mock.Anything, "https://example.com/4").
		Return(page("https://example.com/4", "Four", "<p>Awful news.</p>"), nil)

	stage, dir := newFetchStage(t, fetcher)
	records := []core.InputRecord{
		{ID: "1", URL: "https://example.com/1"},
		{ID: "2", URL: "https://example.com/2"},
		{ID: "3", URL: "https://example.com/3"},
		{ID: "4", URL: "https://example.com/4"},
	}

	summary, err := stage.Run(context.Background(), records)
	require.NoError(t, err)
	fetcher.AssertExpectations(t)

	assert.Equal(t, FetchSummary{Attempted: 4, Saved: 2, Failed: 2, SavedIDs: []string{"1", "4"}}, summary)

	content, err := os.ReadFile(filepath.Join(dir, "1.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Title: One\nI love this. It was great.", string(content))

	assert.NoFileExists(t, filepath.Join(dir, "2.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "3.txt"))
	assert.FileExists(t, filepath.Join(dir, "4.txt"))
}

func TestFetchStageSkipsEmptyTitle(t *testing.T) {
	t.Parallel()

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://example.com/blank").
		Return(page("https://example.com/blank", "", "<p>Body text.</p>"), nil)
	fetcher.On("Fetch", mock.Anything, "https://example.com/untitled").
		Return(&core.FetchResult{URL: "https://example.com/untitled", StatusCode: 200, HTML: "<p>Body text.</p>"}, nil)

	stage, dir := newFetchStage(t, fetcher)
	summary, err := stage.Run(context.Background(), []core.InputRecord{
		{ID: "blank", URL: "https://example.com/blank"},
		{ID: "untitled", URL: "https://example.com/untitled"},
	})
	require.NoError(t, err)

	assert.Equal(t, FetchSummary{Attempted: 2, Saved: 1, Failed: 1, SavedIDs: []string{"untitled"}}, summary)
	assert.NoFileExists(t, filepath.Join(dir, "blank.txt"))

	content, err := os.ReadFile(filepath.Join(dir, "untitled.txt"))
	require.NoError(t, err)
	assert.Equal(t, "Title: No Title Found\nBody text.", string(content))
}

func TestFetchStageWritesMarkdownSnapshot(t *testing.T) {
	t.Parallel()

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://example.com/a").
		Return(page("https://example.com/a", "Alpha", "<p>Some <em>text</em>.</p>"), nil)

	stage, dir := newFetchStage(t, fetcher)
	stage.Normalizer = normalize.New()
	stage.Limiter = rate.NewLimiter(rate.Inf, 1)

	summary, err := stage.Run(context.Background(), []core.InputRecord{{ID: "a", URL: "https://example.com/a"}})
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Saved)

	md, err := os.ReadFile(filepath.Join(dir, "a.md"))
	require.NoError(t, err)
	assert.Contains(t, string(md), "# Alpha")
	assert.Contains(t, string(md), "*text*")
}

func TestFetchStageStopsOnCanceledContext(t *testing.T) {
	t.Parallel()

	fetcher := new(MockFetcher)
	stage, _ := newFetchStage(t, fetcher)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	summary, err := stage.Run(ctx, []core.InputRecord{{ID: "a", URL: "https://example.com/a"}})
	require.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, summary.Attempted)
	fetcher.AssertNotCalled(t, "Fetch", mock.Anything, mock.Anything)
}

func TestAnalyzeStageProducesOneRecordPerDocument(t *testing.T) {
	t.Parallel()

	fetcher := new(MockFetcher)
	fetcher.On("Fetch", mock.Anything, "https://example.com/b").
		Return(page("https://example.com/b", "Bad day", "<p>Awful, terrible news.</p>"), nil)
	fetcher.On("Fetch", mock.Anything, "https://example.com/a").
		Return(page("https://example.com/a", "Good day", "<p>I love this. It was great and wonderful.</p>"), nil)
	fetcher.On("Fetch", mock.Anything, "https://example.com/c").
		Return(nil, errors.New("timeout"))

	fetchStage, dir := newFetchStage(t, fetcher)
	inputs := []core.InputRecord{
		{ID: "b", URL: "https://example.com/b"},
		{ID: "a", URL: "https://example.com/a"},
		{ID: "c", URL: "https://example.com/c"},
	}
	_, err := fetchStage.Run(context.Background(), inputs)
	require.NoError(t, err)

	lex := &lexicon.Lexicon{
		Positive:  lexicon.NewWordSet("love", "great", "wonderful", "good"),
		Negative:  lexicon.NewWordSet("awful", "terrible", "bad"),
		Stopwords: lexicon.NewWordSet("this", "it", "was", "and", "title"),
	}
	recorder := telemetry.NewRecorder()
	stage := &AnalyzeStage{
		Dir:      dir,
		Lexicon:  lex,
		URLs:     map[string]string{"a": "https://example.com/a"},
		Recorder: recorder,
	}

	records, err := stage.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "a", records[0].URLID)
	assert.Equal(t, "https://example.com/a", records[0].URL)
	// "Title: Good day\nI love this. It was great and wonderful."
	assert.Equal(t, 4, records[0].PositiveScore)
	assert.Equal(t, 6, records[0].TotalWords)

	assert.Equal(t, "b", records[1].URLID)
	assert.Empty(t, records[1].URL)
	assert.Equal(t, 3, records[1].NegativeScore)
	assert.Negative(t, records[1].Polarity)
}

func TestAnalyzeStageMissingDir(t *testing.T) {
	t.Parallel()

	stage := &AnalyzeStage{Dir: filepath.Join(t.TempDir(), "missing")}
	_, err := stage.Run(context.Background())
	require.Error(t, err)
}

func TestAnalyzeStageEmptyDocument(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "empty.txt"), nil, 0o600))

	stage := &AnalyzeStage{Dir: dir, Lexicon: &lexicon.Lexicon{Stopwords: lexicon.DefaultStopwords()}}
	records, err := stage.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Zero(t, records[0].TotalWords)
	assert.Zero(t, records[0].FogIndex)
}
