// Package config provides configuration types and defaults for prdash.
package config

import "time"

// Config holds all configuration for prdash.
type Config struct {
	Jenkins     JenkinsConfig     `yaml:"jenkins" mapstructure:"jenkins"`
	GitHub      GitHubConfig      `yaml:"github" mapstructure:"github"`
	Refresh     RefreshConfig     `yaml:"refresh" mapstructure:"refresh"`
	Paths       PathsConfig       `yaml:"paths" mapstructure:"paths"`
	LogRotation LogRotationConfig `yaml:"log_rotation" mapstructure:"log_rotation"`
}

// JenkinsConfig holds the Jenkins endpoint and credentials.
type JenkinsConfig struct {
	BaseURL  string        `yaml:"base_url" mapstructure:"base_url"`
	Username string        `yaml:"username" mapstructure:"username"`
	Token    string        `yaml:"token" mapstructure:"token"`
	JobPath  string        `yaml:"job_path" mapstructure:"job_path"` // Overrides owner/repo-based inference
	Timeout  time.Duration `yaml:"timeout" mapstructure:"timeout"`
}

// GitHubConfig holds the GitHub Enterprise endpoint, repository identity,
// and the optional token for PR head-branch resolution.
type GitHubConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
	Owner   string `yaml:"owner" mapstructure:"owner"`
	Repo    string `yaml:"repo" mapstructure:"repo"`
	Token   string `yaml:"token" mapstructure:"token"`
}

// RefreshConfig holds the periodic tile refresh settings.
type RefreshConfig struct {
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// PathsConfig holds file paths for persisted state and logs.
type PathsConfig struct {
	State string `yaml:"state" mapstructure:"state"`
	Log   string `yaml:"log" mapstructure:"log"`
}

// LogRotationConfig holds settings for the TUI debug log rotation
// (lumberjack-based).
type LogRotationConfig struct {
	MaxSizeMB  int  `yaml:"max_size_mb" mapstructure:"max_size_mb"`
	MaxBackups int  `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAgeDays int  `yaml:"max_age_days" mapstructure:"max_age_days"`
	Compress   bool `yaml:"compress" mapstructure:"compress"`
}

// Default returns a Config with sensible defaults. Endpoints and
// credentials are expected to come from config files or PRDASH_* env vars.
func Default() *Config {
	return &Config{
		Jenkins: JenkinsConfig{
			BaseURL: "https://build.example.com",
			Timeout: 10 * time.Second,
		},
		GitHub: GitHubConfig{
			BaseURL: "https://github.example.com",
			Owner:   "identity-manage",
			Repo:    "account",
		},
		Refresh: RefreshConfig{
			Interval: 10 * time.Second,
		},
		Paths: PathsConfig{
			State: ".prdash/state.json",
			Log:   ".prdash/prdash.log",
		},
		LogRotation: LogRotationConfig{
			MaxSizeMB:  100,
			MaxBackups: 3,
			MaxAgeDays: 7,
			Compress:   true,
		},
	}
}
