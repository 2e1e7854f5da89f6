package cmd

import (
	"github.com/spf13/cobra"

	"github.com/open-unicorn/uws-sidebar/internal/config"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a uws-sidebar config file with an interactive wizard",
	Long:  `Runs an interactive wizard and writes the answers to the file named by --config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := config.RunWizard(cfgFile)
		return err
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
