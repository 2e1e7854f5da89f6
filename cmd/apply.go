package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/open-unicorn/uws-sidebar/internal/progress"
	"github.com/open-unicorn/uws-sidebar/internal/runner"
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Add the sidebar to every UWS page that lacks it",
	Long: `Reads each UWS service page from the static directory and, unless it
already has the sidebar, inserts the Font Awesome stylesheet, the sidebar CSS,
the sidebar markup and the sidebar script. Missing pages are reported and
skipped; a missing static directory aborts the run.`,
	RunE: runApply,
}

func init() {
	applyCmd.Flags().String("dir", "", "static directory holding the pages (overrides config)")
	applyCmd.Flags().Bool("dry-run", false, "show what would change without writing files")
	applyCmd.Flags().StringSlice("only", nil, "only patch pages matching these globs")
	applyCmd.Flags().StringSlice("exclude", nil, "skip pages matching these globs")
	applyCmd.Flags().String("report", "", "write a run report (.md for Markdown, otherwise HTML)")
	applyCmd.Flags().Bool("progress", false, "show a progress bar on stderr")
	rootCmd.AddCommand(applyCmd)
}

func runApply(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	dryRun, _ := cmd.Flags().GetBool("dry-run")
	if only, _ := cmd.Flags().GetStringSlice("only"); len(only) > 0 {
		cfg.Include = only
	}
	if exclude, _ := cmd.Flags().GetStringSlice("exclude"); len(exclude) > 0 {
		cfg.Exclude = append(cfg.Exclude, exclude...)
	}
	if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
		cfg.Report = reportPath
	}
	if showProgress, _ := cmd.Flags().GetBool("progress"); showProgress {
		cfg.Progress = true
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	store, closeJournal, err := openJournal(cfg)
	if err != nil {
		return err
	}
	defer closeJournal()

	opts := runner.Options{
		StaticDir:  cfg.StaticDir,
		Include:    cfg.Include,
		Exclude:    cfg.Exclude,
		DryRun:     dryRun,
		ReportPath: cfg.Report,
		Verbose:    verbose,
		Stdout:     cmd.OutOrStdout(),
		Stderr:     cmd.ErrOrStderr(),
		Reporter:   progress.NewReporter(cfg.Progress),
	}
	if store != nil {
		opts.Journal = store
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sum, err := runner.New(opts).Run(ctx)
	if err != nil {
		return err
	}

	if verbose {
		fmt.Fprintf(cmd.ErrOrStderr(), "%d pages scanned, %d missing\n", len(sum.Records), len(sum.Missing))
	}
	return nil
}
