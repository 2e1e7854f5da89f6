package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/open-unicorn/uws-sidebar/internal/config"
	"github.com/open-unicorn/uws-sidebar/internal/db"
	"github.com/open-unicorn/uws-sidebar/internal/journal"
)

// loadConfig loads and validates the config, applying a --dir override
// when the command defines one.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if dir, _ := cmd.Flags().GetString("dir"); dir != "" {
		cfg.StaticDir = dir
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// openJournal opens the run journal named in cfg. The returned close func
// is always safe to call.
func openJournal(cfg *config.Config) (*journal.Store, func(), error) {
	if !cfg.JournalEnabled() {
		return nil, func() {}, nil
	}
	database, err := db.Open(cfg.Journal)
	if err != nil {
		return nil, func() {}, fmt.Errorf("opening journal %s: %w", cfg.Journal, err)
	}
	return journal.NewStore(database), func() { database.Close() }, nil
}
