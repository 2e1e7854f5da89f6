package walker

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/open-unicorn/uws-sidebar/internal/pages"
)

// ErrRootNotFound is returned when the static directory does not exist.
var ErrRootNotFound = errors.New("static directory not found")

// FileInfo holds what the walker learned about one page of the table.
type FileInfo struct {
	Page        pages.Entry
	Path        string // Absolute path on disk.
	RelPath     string // Path relative to the root directory.
	Exists      bool
	Size        int64
	ContentHash string // SHA-256 hex digest, empty when the file is missing.
}

// WalkerConfig controls the behaviour of the Walk function.
type WalkerConfig struct {
	RootDir string   // Static directory holding the pages.
	Include []string // Glob patterns; only matching pages are kept.
	Exclude []string // Glob patterns; matching pages are dropped.
}

// Walk resolves every page of the table against config.RootDir, in table
// order. Pages filtered out by include/exclude are omitted; pages missing
// from disk are returned with Exists unset.
func Walk(config WalkerConfig) ([]FileInfo, error) {
	root, err := filepath.Abs(config.RootDir)
	if err != nil {
		return nil, fmt.Errorf("walker: resolve root: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrRootNotFound, config.RootDir)
		}
		return nil, fmt.Errorf("walker: stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrRootNotFound, config.RootDir)
	}

	var files []FileInfo
	for _, page := range pages.All() {
		if !MatchesInclude(page.Filename, config.Include) {
			continue
		}
		if MatchesExclude(page.Filename, config.Exclude) {
			continue
		}

		fi := FileInfo{
			Page:    page,
			Path:    filepath.Join(root, page.Filename),
			RelPath: page.Filename,
		}

		st, err := os.Stat(fi.Path)
		if err == nil && st.Mode().IsRegular() {
			fi.Exists = true
			fi.Size = st.Size()
			if hash, err := HashFile(fi.Path); err == nil {
				fi.ContentHash = hash
			}
		}

		files = append(files, fi)
	}

	return files, nil
}

// HashFile computes the SHA-256 digest of the given file.
func HashFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// HashString returns the SHA-256 hex digest of s.
func HashString(s string) string {
	sum := sha256.Sum256([]byte(s))
	return hex.EncodeToString(sum[:])
}
