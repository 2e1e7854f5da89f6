package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/manifoldco/promptui"
)

// RunWizard asks for the static directory and optional features, then saves
// the resulting Config to path.
func RunWizard(path string) (*Config, error) {
	fmt.Println("Let's configure uws-sidebar for this repository.")
	fmt.Println()

	cfg := DefaultConfig()

	// 1. Static directory.
	dirPrompt := promptui.Prompt{
		Label:   "Directory holding the UWS pages",
		Default: DefaultStaticDir,
		Validate: func(s string) error {
			if strings.TrimSpace(s) == "" {
				return fmt.Errorf("directory is required")
			}
			return nil
		},
	}
	staticDir, err := dirPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("static dir: %w", err)
	}
	cfg.StaticDir = strings.TrimSpace(staticDir)
	if _, err := os.Stat(cfg.StaticDir); os.IsNotExist(err) {
		fmt.Printf("Note: %s does not exist yet; apply will fail until it does.\n", cfg.StaticDir)
	}

	// 2. Page subset.
	includePrompt := promptui.Prompt{
		Label:   "Only patch pages matching (comma-separated globs, blank for all)",
		Default: "",
	}
	includeStr, err := includePrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("include patterns: %w", err)
	}
	cfg.Include = splitAndTrim(includeStr)

	// 3. Journal.
	journalPrompt := promptui.Select{
		Label: "Record each run in a SQLite journal?",
		Items: []string{"no", "yes"},
	}
	journalIdx, _, err := journalPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("journal selection: %w", err)
	}
	if journalIdx == 1 {
		cfg.Journal = DefaultJournalPath
	}

	// 4. Progress bar.
	progressPrompt := promptui.Select{
		Label: "Show a progress bar while patching?",
		Items: []string{"no", "yes"},
	}
	progressIdx, _, err := progressPrompt.Run()
	if err != nil {
		return nil, fmt.Errorf("progress selection: %w", err)
	}
	cfg.Progress = progressIdx == 1

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Save(path); err != nil {
		return nil, fmt.Errorf("saving config: %w", err)
	}

	fmt.Printf("\nConfiguration saved to %s\n", path)
	return cfg, nil
}

// splitAndTrim splits a comma-separated string and trims whitespace,
// dropping empty entries.
func splitAndTrim(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			result = append(result, part)
		}
	}
	return result
}
