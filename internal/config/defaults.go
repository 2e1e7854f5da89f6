package config

// DefaultPath is the config file looked up when --config is not given.
const DefaultPath = ".uws-sidebar.yml"

// DefaultStaticDir is where the UWS service pages live in the unicorn repo.
const DefaultStaticDir = "src/main/resources/static"

// DefaultJournalPath is suggested by the init wizard when the journal is enabled.
const DefaultJournalPath = ".uws-sidebar/journal.db"

// EnvPrefix prefixes environment overrides, e.g. UWS_SIDEBAR_STATIC_DIR.
const EnvPrefix = "UWS_SIDEBAR_"

// DefaultConfig returns a Config matching the tool's historical behaviour:
// every page, no journal, no report, plain progress lines.
func DefaultConfig() *Config {
	return &Config{
		StaticDir: DefaultStaticDir,
		Preview: PreviewConfig{
			Port: 8080,
		},
	}
}
