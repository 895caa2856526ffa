package domain

import "time"

// Config represents the domscan configuration loaded from domscan.yaml.
type Config struct {
	API     APIConfig
	Reports ReportsConfig
	Logging LoggingConfig
}

type APIConfig struct {
	BaseURL string
	Timeout time.Duration
}

type ReportsConfig struct {
	Dir string
}

type LoggingConfig struct {
	Debug bool
}

// DefaultConfig provides sane defaults if domscan.yaml is missing or partial.
func DefaultConfig() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080",
			Timeout: 30 * time.Second,
		},
		Reports: ReportsConfig{Dir: "reports"},
	}
}

// WorkspaceSpec describes the project directory created by `domscan init`.
type WorkspaceSpec struct {
	Root       string
	ReportsDir string
}
