package main

import (
	"github.com/spf13/cobra"

	"invoice-dashboard/internal/core"
	"invoice-dashboard/internal/logger"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [export-file]",
	Short: "Load a document analytics JSON export into the database",
	Long: `Load a document analytics JSON export into the database.

Each export entry is written in its own transaction. Entries that fail
to parse or violate the schema are logged and skipped; the run always
continues to the end of the file.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger.WithComponent("ingest")

		ctx := cmd.Context()
		pool, err := connect(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		report, err := core.NewIngestService(pool).IngestFile(ctx, args[0])
		if err != nil {
			return err
		}
		log.Info().
			Int("documents", report.Documents).
			Int("invoices", report.Invoices).
			Int("skipped", report.Skipped).
			Str("file", args[0]).
			Msg("ingest finished")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}
