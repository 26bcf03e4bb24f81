package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	API        APIConfig        `mapstructure:"api"`
	BulkDelete BulkDeleteConfig `mapstructure:"bulk_delete"`
	Safety     SafetyConfig     `mapstructure:"safety"`
	Radarr     RadarrConfig     `mapstructure:"radarr"`
	Filter     FilterConfig     `mapstructure:"filter"`
	Logging    LoggingConfig    `mapstructure:"logging"`
	Update     UpdateConfig     `mapstructure:"update"`
}

// APIConfig holds catalog API connection details
type APIConfig struct {
	URL     string        `mapstructure:"url"`
	Token   string        `mapstructure:"token"`
	Casing  string        `mapstructure:"casing"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// BulkDeleteConfig controls how delete-all fans out.
// MaxConcurrency 0 means one request per movie, all at once.
type BulkDeleteConfig struct {
	MaxConcurrency int `mapstructure:"max_concurrency"`
}

// SafetyConfig contains safety-related settings
type SafetyConfig struct {
	DryRun        bool `mapstructure:"dry_run"`
	ConfirmDelete bool `mapstructure:"confirm_delete"`
}

// RadarrConfig holds Radarr API connection details used by import
type RadarrConfig struct {
	URL    string `mapstructure:"url"`
	APIKey string `mapstructure:"api_key"`
}

// FilterConfig contains named filter presets
type FilterConfig struct {
	Presets map[string]string `mapstructure:"presets"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
}

// UpdateConfig names the GitHub repository releases are fetched from
type UpdateConfig struct {
	Repository string `mapstructure:"repository"`
}
