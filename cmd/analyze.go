package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/articlescore/core"
	"github.com/gaurav-prasanna/articlescore/core/input"
	"github.com/gaurav-prasanna/articlescore/core/lexicon"
	"github.com/gaurav-prasanna/articlescore/core/pipeline"
	"github.com/gaurav-prasanna/articlescore/core/render"
	"github.com/gaurav-prasanna/articlescore/core/store"
)

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Score every stored article and write the report",
		Long: `Analyze reads each <dir>/<URL_ID>.txt, computes its sentiment and
readability metrics, and writes one report row per document, sorted by URL_ID.
The input list is only used to fill the URL column.

Examples:
  articlescore analyze
  articlescore analyze --format pdf --report results.pdf
  articlescore analyze --positive lists/positive.txt --negative lists/negative.txt --strict`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := resolveSession(cmd.Context())
			if err != nil {
				return err
			}
			_, err = runAnalyze(cmd.Context(), s)
			return err
		},
	}

	addInputFlags(cmd.Flags())
	addDocumentFlags(cmd.Flags())
	addAnalyzeFlags(cmd.Flags())
	addMetricsFlags(cmd.Flags())
	return cmd
}

// runAnalyze scores the documents and returns the path of the written report.
func runAnalyze(ctx context.Context, s *session) (string, error) {
	cfg := s.cfg

	lex, err := lexicon.Load(lexicon.Options{
		PositivePath:  cfg.Lexicon.Positive,
		NegativePath:  cfg.Lexicon.Negative,
		StopwordPaths: cfg.Lexicon.Stopwords,
		Strict:        cfg.Lexicon.Strict,
	}, s.logger)
	if err != nil {
		return "", fmt.Errorf("load lexicon: %w", err)
	}

	renderer, err := render.New(cfg.Report.Format)
	if err != nil {
		return "", err
	}

	stage := &pipeline.AnalyzeStage{
		Dir:      cfg.Documents.Dir,
		Lexicon:  lex,
		URLs:     loadURLIndex(s),
		Recorder: s.recorder,
		Logger:   s.logger.Named("analyze"),
	}
	records, err := stage.Run(ctx)
	if err != nil {
		return "", err
	}

	data, err := renderer.Render(records, core.ReportMeta{
		RunID:       s.runID,
		GeneratedAt: time.Now().UTC(),
		Source:      cfg.Documents.Dir,
	})
	if err != nil {
		return "", fmt.Errorf("render report: %w", err)
	}

	path := reportPath(cfg.Report.Path, renderer.Extension())
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating report directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}
	s.logger.Info("Report written", zap.String("path", path), zap.Int("rows", len(records)))

	saveToStore(ctx, s, records)
	return path, nil
}

// loadURLIndex reads the input list for the URL column. A missing or
// unreadable list only leaves the column blank.
func loadURLIndex(s *session) map[string]string {
	records, err := input.Load(s.cfg.Input.Path, s.cfg.Input.Sheet, s.logger)
	if err != nil {
		s.logger.Warn("Input list unavailable; URL column left blank", zap.Error(err))
		return nil
	}
	return input.URLIndex(records)
}

// saveToStore copies the report rows into Postgres when a DSN is configured.
// Failures are logged; the file report is already written.
func saveToStore(ctx context.Context, s *session, records []core.Record) {
	pg := s.cfg.Report.Postgres
	if pg.DSN == "" {
		return
	}
	logger := s.logger.Named("store")

	metricsStore, err := store.New(ctx, store.Config{DSN: pg.DSN, Table: pg.Table, MaxConns: pg.MaxConns})
	if err != nil {
		logger.Warn("Postgres store unavailable", zap.Error(err))
		return
	}
	defer metricsStore.Close()

	if err := metricsStore.EnsureTable(ctx); err != nil {
		logger.Warn("Failed to prepare metrics table", zap.Error(err))
		return
	}

	saved := 0
	for _, rec := range records {
		if err := metricsStore.SaveRecord(ctx, s.runID, rec); err != nil {
			logger.Warn("Failed to save record", zap.String("url_id", rec.URLID), zap.Error(err))
			continue
		}
		saved++
	}
	logger.Info("Records stored", zap.Int("saved", saved), zap.Int("total", len(records)))
}

// reportPath swaps the extension of path for ext.
func reportPath(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
