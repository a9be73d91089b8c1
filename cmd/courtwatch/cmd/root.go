package cmd

import (
	"context"
	"fmt"
	"os"

	"courtwatch-backend/lib/configutil"
	"courtwatch-backend/lib/telemetry"
	"courtwatch-backend/services/courtdata"

	"github.com/spf13/cobra"
)

var service *courtdata.Service

var debug bool

var rootCmd = &cobra.Command{
	Use:   "courtwatch",
	Short: "courtwatch is a CLI interface for the county court record client.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		telemetry.InitSlog(debug)

		config, err := configutil.ReadRecursively[courtdata.Config]("config.json5")
		if os.IsNotExist(err) {
			// workable defaults for poking at the live site
			config = courtdata.Config{
				BaseUrl:        "https://www.stanct.org",
				EmulateBrowser: true,
			}
		} else if err != nil {
			return err
		}

		service, err = courtdata.NewService(config)
		return err
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every request")
}

func Execute(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
