package telemetry

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorderCounts(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.FetchDone(StatusSaved, 120*time.Millisecond)
	r.FetchDone(StatusSaved, 80*time.Millisecond)
	r.FetchDone(StatusFailed, time.Second)
	r.DocumentAnalyzed(40)
	r.DocumentAnalyzed(2)
	r.DocumentSkipped()

	assert.InDelta(t, 2, testutil.ToFloat64(r.fetches.WithLabelValues(StatusSaved)), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.fetches.WithLabelValues(StatusFailed)), 0)
	assert.InDelta(t, 2, testutil.ToFloat64(r.analyzed), 0)
	assert.InDelta(t, 1, testutil.ToFloat64(r.skipped), 0)
	assert.InDelta(t, 42, testutil.ToFloat64(r.words), 0)
	assert.Equal(t, 1, testutil.CollectAndCount(r.fetchDuration))
}

func TestWriteTextfile(t *testing.T) {
	t.Parallel()

	r := NewRecorder()
	r.DocumentAnalyzed(5)

	path := filepath.Join(t.TempDir(), "articlescore.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "articlescore_documents_analyzed_total 1")
	assert.Contains(t, string(data), "articlescore_words_total 5")
}

func TestNilRecorderIsNoop(t *testing.T) {
	t.Parallel()

	var r *Recorder
	r.FetchDone(StatusFailed, time.Second)
	r.DocumentAnalyzed(1)
	r.DocumentSkipped()
	assert.Nil(t, r.Registry())
	require.NoError(t, r.WriteTextfile("ignored"))
}

func TestWriteTextfileEmptyPath(t *testing.T) {
	t.Parallel()

	require.NoError(t, NewRecorder().WriteTextfile(""))
}
