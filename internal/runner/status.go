package runner

import (
	"fmt"
	"os"

	"github.com/open-unicorn/uws-sidebar/internal/patcher"
	"github.com/open-unicorn/uws-sidebar/internal/walker"
)

// State is the sidebar state of one page on disk.
type State string

const (
	StatePatched State = "patched"
	StatePending State = "pending"
	StateMissing State = "missing"
)

// PageStatus reports whether a page already has the sidebar.
type PageStatus struct {
	Filename string
	Title    string
	Path     string
	State    State
}

// Status inspects the configured pages without modifying them.
func Status(opts Options) ([]PageStatus, error) {
	files, err := walker.Walk(walker.WalkerConfig{
		RootDir: opts.StaticDir,
		Include: opts.Include,
		Exclude: opts.Exclude,
	})
	if err != nil {
		return nil, err
	}

	statuses := make([]PageStatus, 0, len(files))
	for _, f := range files {
		st := PageStatus{
			Filename: f.Page.Filename,
			Title:    f.Page.Title,
			Path:     f.Path,
			State:    StateMissing,
		}
		if f.Exists {
			data, err := os.ReadFile(f.Path)
			if err != nil {
				return nil, fmt.Errorf("reading %s: %w", f.Path, err)
			}
			st.State = StatePending
			if patcher.HasSidebar(string(data)) {
				st.State = StatePatched
			}
		}
		statuses = append(statuses, st)
	}
	return statuses, nil
}
