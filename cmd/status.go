package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-unicorn/uws-sidebar/internal/runner"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show which UWS pages already have the sidebar",
	RunE:  runStatus,
}

func init() {
	statusCmd.Flags().String("dir", "", "static directory holding the pages (overrides config)")
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	statuses, err := runner.Status(runner.Options{
		StaticDir: cfg.StaticDir,
		Include:   cfg.Include,
		Exclude:   cfg.Exclude,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	counts := make(map[runner.State]int)
	for _, st := range statuses {
		counts[st.State]++
		fmt.Fprintf(out, "  %-8s %-20s %s\n", st.State, st.Filename, st.Title)
	}
	fmt.Fprintf(out, "\n%d patched, %d pending, %d missing\n",
		counts[runner.StatePatched], counts[runner.StatePending], counts[runner.StateMissing])
	return nil
}
