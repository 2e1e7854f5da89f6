package patcher

import (
	"fmt"
	"os"
	"path/filepath"
)

// Change is the outcome of patching one file on disk.
type Change struct {
	Path    string
	Before  string
	After   string
	Written bool
	Result  Result
}

// Changed reports whether patching altered the document.
func (c *Change) Changed() bool {
	return c.Before != c.After
}

// PatchFile reads path, patches it and, unless dryRun is set, overwrites the
// file when the content changed. File permissions are preserved.
func PatchFile(path string, dryRun bool) (*Change, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	before := string(data)
	after, res, err := Patch(before, filepath.Base(path))
	if err != nil {
		return nil, err
	}

	change := &Change{
		Path:   path,
		Before: before,
		After:  after,
		Result: res,
	}

	if dryRun || !change.Changed() {
		return change, nil
	}

	if err := os.WriteFile(path, []byte(after), info.Mode().Perm()); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	change.Written = true
	return change, nil
}
