package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/gaurav-prasanna/articlescore/core/extract"
	"github.com/gaurav-prasanna/articlescore/core/fetch"
	"github.com/gaurav-prasanna/articlescore/core/input"
	"github.com/gaurav-prasanna/articlescore/core/normalize"
	"github.com/gaurav-prasanna/articlescore/core/output"
	"github.com/gaurav-prasanna/articlescore/core/pipeline"
)

func newFetchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fetch",
		Short: "Download every listed article and store its text",
		Long: `Fetch reads the (URL_ID, URL) list, downloads each page, and writes
<dir>/<URL_ID>.txt holding "Title: <title>" followed by the paragraph text.
Pages that cannot be fetched or parsed are logged and skipped, and so are
pages with an empty <title> or no paragraph text. Any non-2xx response counts
as a failed fetch, even when the error page carries paragraphs.

Examples:
  articlescore fetch --input Input.xlsx
  articlescore fetch --input urls.csv --engine colly --rate 2 --keep-markdown`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := resolveSession(cmd.Context())
			if err != nil {
				return err
			}
			_, err = runFetch(cmd.Context(), s)
			return err
		},
	}

	addInputFlags(cmd.Flags())
	addDocumentFlags(cmd.Flags())
	addFetchFlags(cmd.Flags())
	addMetricsFlags(cmd.Flags())
	return cmd
}

func runFetch(ctx context.Context, s *session) (pipeline.FetchSummary, error) {
	cfg := s.cfg

	records, err := input.Load(cfg.Input.Path, cfg.Input.Sheet, s.logger)
	if err != nil {
		return pipeline.FetchSummary{}, fmt.Errorf("load input list: %w", err)
	}

	fetcher, err := fetch.New(cfg.Fetch.Engine, fetch.Options{
		Timeout:   cfg.Fetch.Timeout,
		UserAgent: cfg.Fetch.UserAgent,
	})
	if err != nil {
		return pipeline.FetchSummary{}, err
	}

	mode, err := extract.ParseMode(cfg.Fetch.BodyMode)
	if err != nil {
		return pipeline.FetchSummary{}, err
	}

	writer, err := output.New(cfg.Documents.Dir)
	if err != nil {
		return pipeline.FetchSummary{}, fmt.Errorf("initializing output writer: %w", err)
	}

	stage := &pipeline.FetchStage{
		Fetcher:   fetcher,
		Extractor: extract.New(mode),
		Writer:    writer,
		Recorder:  s.recorder,
		Logger:    s.logger.Named("fetch"),
	}
	if cfg.Fetch.KeepMarkdown {
		stage.Normalizer = normalize.New()
	}
	if cfg.Fetch.RatePerSecond > 0 {
		stage.Limiter = rate.NewLimiter(rate.Limit(cfg.Fetch.RatePerSecond), 1)
	}

	s.logger.Info("Fetching articles",
		zap.Int("urls", len(records)),
		zap.String("engine", cfg.Fetch.Engine),
		zap.String("dir", writer.Dir),
	)
	return stage.Run(ctx, records)
}
