package pipeline

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/articlescore/core"
	"github.com/gaurav-prasanna/articlescore/core/lexicon"
	"github.com/gaurav-prasanna/articlescore/core/output"
	"github.com/gaurav-prasanna/articlescore/core/textmetrics"
	"github.com/gaurav-prasanna/articlescore/internal/telemetry"
)

// AnalyzeStage scores every saved document in Dir.
type AnalyzeStage struct {
	Dir     string
	Lexicon *lexicon.Lexicon
	// URLs maps identifiers to their source URL; missing entries leave the
	// URL column blank.
	URLs     map[string]string
	Recorder *telemetry.Recorder
	Logger   *zap.Logger
}

// Run returns one record per readable document, sorted by identifier.
// Unreadable documents are logged and skipped.
func (s *AnalyzeStage) Run(ctx context.Context) ([]core.Record, error) {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	files, err := output.ListDocuments(s.Dir)
	if err != nil {
		return nil, err
	}

	records := make([]core.Record, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return records, fmt.Errorf("analyze run interrupted: %w", err)
		}

		content, err := output.ReadDocument(file.Path)
		if err != nil {
			s.Recorder.DocumentSkipped()
			logger.Warn("Skipping unreadable document", zap.String("url_id", file.ID), zap.Error(err))
			continue
		}

		stats := textmetrics.Analyze(content, s.Lexicon)
		records = append(records, core.Record{
			URLID: file.ID,
			URL:   s.URLs[file.ID],
			Stats: stats,
		})
		s.Recorder.DocumentAnalyzed(stats.TotalWords)

		title, _ := output.SplitTitle(content)
		logger.Debug("Document analyzed",
			zap.String("url_id", file.ID),
			zap.String("title", title),
			zap.Int("total_words", stats.TotalWords),
			zap.Float64("polarity", stats.Polarity),
			zap.Float64("fog_index", stats.FogIndex),
		)
	}

	logger.Info("Analysis finished",
		zap.Int("documents", len(files)),
		zap.Int("records", len(records)),
	)
	return records, nil
}
