// Package pipeline runs the two batch stages of articlescore: fetching
// articles to text files, and turning those files into report records.
// Both stages are sequential; one item's failure never stops the batch.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/gaurav-prasanna/articlescore/core"
	"github.com/gaurav-prasanna/articlescore/core/output"
	"github.com/gaurav-prasanna/articlescore/internal/telemetry"
)

// FetchStage downloads each input URL and stores its article text.
type FetchStage struct {
	Fetcher   core.Fetcher
	Extractor core.Extractor
	Writer    *output.Writer
	// Normalizer, when set, also stores a Markdown snapshot per article.
	Normalizer core.Normalizer
	// Limiter, when set, paces requests.
	Limiter  *rate.Limiter
	Recorder *telemetry.Recorder
	Logger   *zap.Logger
}

// FetchSummary counts the outcomes of a fetch run.
type FetchSummary struct {
	Attempted int
	Saved     int
	Failed    int
	// SavedIDs lists the identifiers written, in input order.
	SavedIDs []string
}

// Run processes records in order. Per-record failures are logged and
// counted; only context cancellation ends the run early.
func (s *FetchStage) Run(ctx context.Context, records []core.InputRecord) (FetchSummary, error) {
	logger := s.logger()
	var summary FetchSummary

	for i, rec := range records {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("fetch run interrupted: %w", err)
		}
		if s.Limiter != nil {
			if err := s.Limiter.Wait(ctx); err != nil {
				return summary, fmt.Errorf("fetch run interrupted: %w", err)
			}
		}

		summary.Attempted++
		itemLog := logger.With(
			zap.String("url_id", rec.ID),
			zap.String("url", rec.URL),
			zap.Int("item", i+1),
			zap.Int("of", len(records)),
		)

		start := time.Now()
		path, err := s.processRecord(ctx, rec, itemLog)
		elapsed := time.Since(start)
		if err != nil {
			summary.Failed++
			status := telemetry.StatusFailed
			if errors.Is(err, errEmptyBody) || errors.Is(err, errEmptyTitle) {
				status = telemetry.StatusEmpty
			}
			s.Recorder.FetchDone(status, elapsed)
			itemLog.Warn("Failed to extract article", zap.Error(err), zap.Duration("elapsed", elapsed))
			continue
		}

		summary.Saved++
		summary.SavedIDs = append(summary.SavedIDs, rec.ID)
		s.Recorder.FetchDone(telemetry.StatusSaved, elapsed)
		itemLog.Info("Article saved", zap.String("path", path), zap.Duration("elapsed", elapsed))
	}

	logger.Info("Fetch finished",
		zap.Int("attempted", summary.Attempted),
		zap.Int("saved", summary.Saved),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

var (
	errEmptyBody  = errors.New("no paragraph text found")
	errEmptyTitle = errors.New("page title is empty")
)

// processRecord runs one record through fetch, extract and write.
func (s *FetchStage) processRecord(ctx context.Context, rec core.InputRecord, logger *zap.Logger) (string, error) {
	// 1. Fetch
	result, err := s.Fetcher.Fetch(ctx, rec.URL)
	if err != nil {
		return "", fmt.Errorf("fetch: %w", err)
	}

	// 2. Extract title and paragraphs
	article, err := s.Extractor.Extract(result.HTML, result.URL)
	if err != nil {
		return "", fmt.Errorf("extract: %w", err)
	}
	if article.Title == "" {
		return "", errEmptyTitle
	}
	if article.Body == "" {
		return "", errEmptyBody
	}

	// 3. Write the text file
	path, err := s.Writer.WriteDocument(core.Document{
		ID:    rec.ID,
		URL:   rec.URL,
		Title: article.Title,
		Body:  article.Body,
	})
	if err != nil {
		return "", fmt.Errorf("write: %w", err)
	}

	// 4. Optional Markdown snapshot; its failure does not undo the text file.
	if s.Normalizer != nil {
		md, err := s.Normalizer.Normalize(article.Title, article.BodyHTML)
		if err == nil {
			_, err = s.Writer.WriteSnapshot(rec.ID, md)
		}
		if err != nil {
			logger.Warn("Failed to write Markdown snapshot", zap.Error(err))
		}
	}

	return path, nil
}

func (s *FetchStage) logger() *zap.Logger {
	if s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}
