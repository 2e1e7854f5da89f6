// Package journal keeps an optional SQLite history of patch runs.
package journal

import (
	"time"

	"github.com/open-unicorn/uws-sidebar/internal/patcher"
)

// Run is one invocation of apply.
type Run struct {
	ID         string
	StartedAt  time.Time
	FinishedAt time.Time
	StaticDir  string
	DryRun     bool
	Pages      []PageRecord
}

// PageRecord is the outcome for one page within a run.
type PageRecord struct {
	Filename       string
	Outcome        patcher.Outcome
	Applied        []patcher.Edit
	MissingAnchors []patcher.Edit
	HashBefore     string
	HashAfter      string
}

// Count returns how many pages of the run ended with the given outcome.
func (r *Run) Count(outcome patcher.Outcome) int {
	n := 0
	for _, p := range r.Pages {
		if p.Outcome == outcome {
			n++
		}
	}
	return n
}
