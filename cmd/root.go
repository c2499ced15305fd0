// Package cmd implements the CLI commands for articlescore using Cobra.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/gaurav-prasanna/articlescore/internal/config"
	"github.com/gaurav-prasanna/articlescore/internal/logging"
	"github.com/gaurav-prasanna/articlescore/internal/telemetry"
)

// sessionKeyType is the key for storing the session in the context.
type sessionKeyType string

const sessionKey sessionKeyType = "session"

// session holds what every subcommand shares for one invocation.
type session struct {
	cfg      config.Config
	logger   *zap.Logger
	runID    string
	recorder *telemetry.Recorder
}

func newRootCmd() *cobra.Command {
	var (
		cfgFile string
		devLog  bool
	)

	cmd := &cobra.Command{
		Use:   "articlescore",
		Short: "Fetch news articles and score their text",
		Long: `articlescore downloads the articles listed in an input sheet, stores their
title and paragraph text, and computes sentiment and readability metrics
(polarity, subjectivity, fog index, syllables, personal pronouns) for each one.

Usage:
  articlescore fetch    [flags]
  articlescore analyze  [flags]
  articlescore run      [flags]`,
		SilenceUsage: true,

		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(cfgFile, cmd.Flags())
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			logger, err := logging.New(cfg.Logging.Development)
			if err != nil {
				return err
			}

			runID := uuid.NewString()
			rt := &session{
				cfg:      cfg,
				logger:   logging.ForRun(logger, runID).With(zap.String("command", cmd.Name())),
				runID:    runID,
				recorder: telemetry.NewRecorder(),
			}
			cmd.SetContext(context.WithValue(cmd.Context(), sessionKey, rt))
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			rt, err := resolveSession(cmd.Context())
			if err != nil {
				return
			}
			if path := rt.cfg.Metrics.Textfile; path != "" {
				if err := rt.recorder.WriteTextfile(path); err != nil {
					rt.logger.Warn("Failed to write metrics textfile", zap.String("path", path), zap.Error(err))
				}
			}
			_ = rt.logger.Sync()
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	cmd.PersistentFlags().BoolVar(&devLog, "dev-log", false, "human-readable development logging")

	cmd.AddCommand(newFetchCmd(), newAnalyzeCmd(), newRunCmd())
	return cmd
}

func resolveSession(ctx context.Context) (*session, error) {
	if ctx == nil {
		return nil, errors.New("session not initialized")
	}
	rt, ok := ctx.Value(sessionKey).(*session)
	if !ok || rt == nil {
		return nil, errors.New("session not initialized")
	}
	return rt, nil
}

// Execute runs the root command. SIGINT and SIGTERM cancel the batch
// after the item in flight.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}
