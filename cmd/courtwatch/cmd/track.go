package cmd

import (
	"context"
	"log/slog"

	"courtwatch-backend/lib/scrapers/countycourt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(trackCmd)
}

var trackCmd = &cobra.Command{
	Use:   "track <case number>...",
	Short: "Re-fetch a set of tracked cases and show their current state.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		service.OnCaseUpdated = func(_ context.Context, record countycourt.CaseRecord) {
			slog.Info("case refreshed", "case_number", record.CaseNumber, "status", record.Status)
		}

		records := service.UpdateTrackedCases(cmd.Context(), args)
		if len(records) > 0 {
			renderRecords(records)
		}
		if len(records) < len(args) {
			slog.Warn("some cases could not be refreshed",
				"requested", len(args),
				"refreshed", len(records),
			)
		}
		return nil
	},
}
