package cmd

import (
	"github.com/spf13/cobra"

	"github.com/open-unicorn/uws-sidebar/internal/config"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "uws-sidebar",
	Short: "Apply the modern navigation sidebar to the UWS service pages",
	Long: `uws-sidebar splices the Unicorn navigation sidebar (HTML, CSS and
JavaScript) into each UWS service page of the static directory. Pages that
already carry the sidebar are left untouched, so running it again is safe.

Running uws-sidebar without a subcommand is the same as "uws-sidebar apply".`,
	SilenceUsage: true,
	RunE:         runApply,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", config.DefaultPath, "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
