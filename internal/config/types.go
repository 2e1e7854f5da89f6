package config

// Config is the top-level configuration, corresponding to .uws-sidebar.yml.
type Config struct {
	StaticDir string        `yaml:"static_dir" koanf:"static_dir"`
	Include   []string      `yaml:"include" koanf:"include"`
	Exclude   []string      `yaml:"exclude" koanf:"exclude"`
	Journal   string        `yaml:"journal" koanf:"journal"`
	Report    string        `yaml:"report" koanf:"report"`
	Progress  bool          `yaml:"progress" koanf:"progress"`
	Preview   PreviewConfig `yaml:"preview" koanf:"preview"`
}

// PreviewConfig holds settings for the serve command.
type PreviewConfig struct {
	Port     int  `yaml:"port" koanf:"port"`
	AllowAll bool `yaml:"allow_all" koanf:"allow_all"`
}

// JournalEnabled reports whether runs should be recorded.
func (c *Config) JournalEnabled() bool {
	return c.Journal != ""
}
