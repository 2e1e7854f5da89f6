package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-unicorn/uws-sidebar/internal/patcher"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List previous runs recorded in the journal",
	Long:  `Lists the runs recorded in the SQLite journal. The journal is enabled by setting "journal" in the config file.`,
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().Int("limit", 10, "number of runs to show")
	historyCmd.Flags().String("page", "", "show the recorded outcomes of a single page instead")
	rootCmd.AddCommand(historyCmd)
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if !cfg.JournalEnabled() {
		return fmt.Errorf("no journal configured\nSet `journal` in %s or run `uws-sidebar init`", cfgFile)
	}

	store, closeJournal, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer closeJournal()

	limit, _ := cmd.Flags().GetInt("limit")
	page, _ := cmd.Flags().GetString("page")
	out := cmd.OutOrStdout()

	if page != "" {
		records, err := store.PageHistory(cmd.Context(), page, limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintf(out, "No runs recorded for %s.\n", page)
			return nil
		}
		for _, r := range records {
			fmt.Fprintf(out, "  %-9s applied=%d missing_anchors=%d\n", r.Outcome, len(r.Applied), len(r.MissingAnchors))
		}
		return nil
	}

	runs, err := store.Recent(cmd.Context(), limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	for _, run := range runs {
		mode := ""
		if run.DryRun {
			mode = " (dry run)"
		}
		fmt.Fprintf(out, "%s  %s  %s%s\n", run.StartedAt.Local().Format("2006-01-02 15:04:05"), run.ID, run.StaticDir, mode)
		fmt.Fprintf(out, "  %d patched, %d skipped, %d unchanged, %d missing\n",
			run.Count(patcher.OutcomePatched),
			run.Count(patcher.OutcomeSkipped),
			run.Count(patcher.OutcomeUnchanged),
			run.Count(patcher.OutcomeMissing),
		)
		if verbose {
			for _, p := range run.Pages {
				fmt.Fprintf(out, "    %-20s %s\n", p.Filename, p.Outcome)
			}
		}
	}
	return nil
}
