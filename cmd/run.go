package cmd

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Fetch the listed articles, then analyze them",
		Long: `Run performs fetch followed by analyze in one process, sharing the
configuration, logger and run id. Analysis covers every document in the
directory, including ones stored by earlier runs.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := resolveSession(cmd.Context())
			if err != nil {
				return err
			}

			summary, err := runFetch(cmd.Context(), s)
			if err != nil {
				return err
			}
			if summary.Saved == 0 {
				s.logger.Warn("No articles were saved in this run", zap.Int("attempted", summary.Attempted))
			}

			_, err = runAnalyze(cmd.Context(), s)
			return err
		},
	}

	addInputFlags(cmd.Flags())
	addDocumentFlags(cmd.Flags())
	addFetchFlags(cmd.Flags())
	addAnalyzeFlags(cmd.Flags())
	addMetricsFlags(cmd.Flags())
	return cmd
}
