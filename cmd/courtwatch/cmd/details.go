package cmd

import (
	"fmt"
	"os"

	"courtwatch-backend/lib/scrapers/countycourt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(detailsCmd)
}

var detailsCmd = &cobra.Command{
	Use:   "details <case number>",
	Short: "Fetch the detail page for a single case.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := service.GetCaseDetails(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		renderRecords([]countycourt.CaseRecord{record})

		if len(record.RegisterOfActions) > 0 {
			fmt.Println("\nRegister of actions:")
			t := table.NewWriter()
			t.SetOutputMirror(os.Stdout)
			t.AppendHeader(table.Row{"Date", "Action", "Filed By"})
			for _, a := range record.RegisterOfActions {
				t.AppendRow(table.Row{a.Date, a.Action, a.FiledBy})
			}
			t.Render()
		}
		return nil
	},
}
