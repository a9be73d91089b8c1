package cmd

import (
	"fmt"
	"os"
	"strings"

	"courtwatch-backend/lib/scrapers/countycourt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var searchKind string

func init() {
	searchCmd.Flags().StringVarP(&searchKind, "kind", "k", string(countycourt.KindAll),
		"one of: name, caseNumber, attorney, all")
	rootCmd.AddCommand(searchCmd)
}

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the county case index.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		records, err := service.SearchCases(
			cmd.Context(),
			args[0],
			countycourt.SearchKind(searchKind),
		)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Println("No matching cases.")
			return nil
		}
		renderRecords(records)
		return nil
	},
}

func renderRecords(records []countycourt.CaseRecord) {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.AppendHeader(table.Row{"Case #", "Title", "Type", "Status", "Filed", "Dept", "Judge", "Parties"})
	for _, r := range records {
		t.AppendRow(table.Row{
			r.CaseNumber,
			r.Title,
			r.CaseType,
			r.Status,
			r.DateFiled,
			r.Department,
			r.Judge,
			strings.Join(r.Parties, ", "),
		})
	}
	t.Render()
}
