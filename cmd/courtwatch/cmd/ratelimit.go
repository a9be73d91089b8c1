package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(ratelimitCmd)
}

var ratelimitCmd = &cobra.Command{
	Use:   "ratelimit",
	Short: "Show the current outbound request budget.",
	Run: func(cmd *cobra.Command, args []string) {
		status := service.RateLimitStatus()
		fmt.Printf("%d / %d requests used in the window starting %s\n",
			status.Current,
			status.Limit,
			status.ResetTime.Format("15:04:05.000"),
		)
	},
}
