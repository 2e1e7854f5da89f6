// Package runner drives one sequential sidebar pass over the static pages.
package runner

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/open-unicorn/uws-sidebar/internal/journal"
	"github.com/open-unicorn/uws-sidebar/internal/patcher"
	"github.com/open-unicorn/uws-sidebar/internal/progress"
	"github.com/open-unicorn/uws-sidebar/internal/report"
	"github.com/open-unicorn/uws-sidebar/internal/walker"
)

// ErrStaticDirNotFound aborts a run before any page is touched.
var ErrStaticDirNotFound = walker.ErrRootNotFound

var rule = strings.Repeat("=", 50)

// Recorder stores a finished run. *journal.Store satisfies it.
type Recorder interface {
	Record(ctx context.Context, run journal.Run) (string, error)
}

// Options configures a Runner.
type Options struct {
	StaticDir  string
	Include    []string
	Exclude    []string
	DryRun     bool
	ReportPath string
	Verbose    bool

	Stdout   io.Writer
	Stderr   io.Writer
	Reporter progress.Reporter
	Journal  Recorder
}

// Summary is what a run did.
type Summary struct {
	RunID      string
	StaticDir  string
	DryRun     bool
	StartedAt  time.Time
	FinishedAt time.Time
	Changes    []*patcher.Change
	Missing    []string
	Records    []journal.PageRecord
}

// Count returns the number of pages with the given outcome.
func (s *Summary) Count(outcome patcher.Outcome) int {
	n := 0
	for _, r := range s.Records {
		if r.Outcome == outcome {
			n++
		}
	}
	return n
}

// Runner applies the sidebar to every configured page, one at a time.
type Runner struct {
	opts Options
}

// New creates a Runner, filling in defaults for unset writers and reporter.
func New(opts Options) *Runner {
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}
	if opts.Reporter == nil {
		opts.Reporter = progress.NopReporter{}
	}
	return &Runner{opts: opts}
}

// Run processes the pages in table order. A missing static directory is
// fatal; a missing page is reported and skipped. The context is checked
// between pages.
func (r *Runner) Run(ctx context.Context) (*Summary, error) {
	out, errOut := r.opts.Stdout, r.opts.Stderr

	sum := &Summary{
		StaticDir: r.opts.StaticDir,
		DryRun:    r.opts.DryRun,
		StartedAt: time.Now(),
	}

	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: r.opts.StaticDir,
		Include: r.opts.Include,
		Exclude: r.opts.Exclude,
	})
	if err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "Applying modern sidebar to UWS pages...")
	fmt.Fprintln(out, rule)
	if r.opts.DryRun {
		fmt.Fprintln(out, "Dry run: no files will be written")
	}

	r.opts.Reporter.Start(len(files))
	for i, f := range files {
		if err := ctx.Err(); err != nil {
			r.opts.Reporter.Finish()
			return sum, err
		}

		if !f.Exists {
			fmt.Fprintf(out, "Warning: %s not found\n", f.RelPath)
			sum.Missing = append(sum.Missing, f.RelPath)
			sum.Records = append(sum.Records, journal.PageRecord{
				Filename: f.RelPath,
				Outcome:  patcher.OutcomeMissing,
			})
			r.opts.Reporter.Update(i+1, f.RelPath)
			continue
		}

		fmt.Fprintf(out, "Processing: %s\n", f.Path)
		change, err := patcher.PatchFile(f.Path, r.opts.DryRun)
		if err != nil {
			r.opts.Reporter.Finish()
			return sum, err
		}
		sum.Changes = append(sum.Changes, change)

		res := change.Result
		switch res.Outcome {
		case patcher.OutcomeSkipped:
			fmt.Fprintf(out, "  Skipping %s - already has sidebar\n", res.Filename)
		case patcher.OutcomeUnchanged:
			fmt.Fprintf(out, "  Nothing to apply to %s\n", res.Filename)
		default:
			if r.opts.DryRun {
				fmt.Fprintf(out, "  Would apply sidebar to %s\n", res.Filename)
			} else {
				fmt.Fprintf(out, "  Applied sidebar to %s\n", res.Filename)
			}
		}
		for _, edit := range res.MissingAnchors {
			fmt.Fprintf(errOut, "  Warning: %s: anchor for %s edit not found\n", res.Filename, edit)
		}
		if r.opts.Verbose && len(res.Applied) > 0 {
			fmt.Fprintf(errOut, "  %s: applied %s\n", res.Filename, joinEdits(res.Applied))
		}

		sum.Records = append(sum.Records, journal.PageRecord{
			Filename:       res.Filename,
			Outcome:        res.Outcome,
			Applied:        res.Applied,
			MissingAnchors: res.MissingAnchors,
			HashBefore:     f.ContentHash,
			HashAfter:      walker.HashString(change.After),
		})
		r.opts.Reporter.Update(i+1, res.Filename)
	}
	r.opts.Reporter.Finish()

	fmt.Fprintln(out, rule)
	fmt.Fprintln(out, "Sidebar application completed!")
	sum.FinishedAt = time.Now()

	if r.opts.Journal != nil {
		id, err := r.opts.Journal.Record(ctx, journal.Run{
			StartedAt:  sum.StartedAt,
			FinishedAt: sum.FinishedAt,
			StaticDir:  sum.StaticDir,
			DryRun:     sum.DryRun,
			Pages:      sum.Records,
		})
		if err != nil {
			return sum, fmt.Errorf("recording run: %w", err)
		}
		sum.RunID = id
		if r.opts.Verbose {
			fmt.Fprintf(errOut, "Recorded run %s\n", id)
		}
	}

	if r.opts.ReportPath != "" {
		rep := &report.Report{
			RunID:       sum.RunID,
			StaticDir:   sum.StaticDir,
			DryRun:      sum.DryRun,
			GeneratedAt: sum.FinishedAt,
			Changes:     sum.Changes,
			Missing:     sum.Missing,
		}
		if err := rep.WriteFile(r.opts.ReportPath); err != nil {
			return sum, err
		}
		fmt.Fprintf(out, "Report written to %s\n", r.opts.ReportPath)
	}

	return sum, nil
}

func joinEdits(edits []patcher.Edit) string {
	parts := make([]string, len(edits))
	for i, e := range edits {
		parts[i] = string(e)
	}
	return strings.Join(parts, ", ")
}
