package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/aalvaropc/domscan/internal/domain"
)

const (
	EnvAPIURL     = "DOMSCAN_API_URL"
	EnvAPITimeout = "DOMSCAN_API_TIMEOUT"
)

type yamlConfig struct {
	Domscan struct {
		API struct {
			BaseURL string `yaml:"base_url"`
			Timeout string `yaml:"timeout"`
		} `yaml:"api"`

		Reports struct {
			Dir string `yaml:"dir"`
		} `yaml:"reports"`

		Logging struct {
			Debug *bool `yaml:"debug"`
		} `yaml:"logging"`
	} `yaml:"domscan"`
}

// LoadFile reads one domscan.yaml and applies it on top of the defaults.
func LoadFile(path string) (domain.Config, error) {
	cfg := domain.DefaultConfig()

	b, err := os.ReadFile(path)
	if err != nil {
		kind := domain.KindExecution
		if errors.Is(err, fs.ErrNotExist) {
			kind = domain.KindNotFound
		}
		return cfg, &domain.OpError{Op: "config.load", Kind: kind, Path: path, Err: err}
	}

	var y yamlConfig
	if err := yaml.Unmarshal(b, &y); err != nil {
		return cfg, &domain.OpError{Op: "config.load", Kind: domain.KindInvalidConfig, Path: path, Err: err}
	}

	if v := strings.TrimSpace(y.Domscan.API.BaseURL); v != "" {
		cfg.API.BaseURL = v
	}
	if v := strings.TrimSpace(y.Domscan.API.Timeout); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return cfg, &domain.OpError{Op: "config.load", Kind: domain.KindInvalidConfig, Path: path, Err: err}
		}
		cfg.API.Timeout = d
	}
	if v := strings.TrimSpace(y.Domscan.Reports.Dir); v != "" {
		cfg.Reports.Dir = v
	}
	if y.Domscan.Logging.Debug != nil {
		cfg.Logging.Debug = *y.Domscan.Logging.Debug
	}
	return cfg, nil
}

// ApplyEnv overlays DOMSCAN_* variables read through getenv.
func ApplyEnv(cfg domain.Config, getenv func(string) string) (domain.Config, error) {
	if getenv == nil {
		getenv = os.Getenv
	}
	if v := strings.TrimSpace(getenv(EnvAPIURL)); v != "" {
		cfg.API.BaseURL = v
	}
	if v := strings.TrimSpace(getenv(EnvAPITimeout)); v != "" {
		d, err := parseTimeout(v)
		if err != nil {
			return cfg, &domain.OpError{Op: "config.env", Kind: domain.KindInvalidConfig, Path: EnvAPITimeout, Err: err}
		}
		cfg.API.Timeout = d
	}
	return cfg, nil
}

// Options drive Resolve.
type Options struct {
	// Path is an explicit config file (--config). When set it must exist.
	Path string
	// StartDir is where the upward search begins when Path is empty.
	StartDir string
	// APIURL overrides everything else when non-empty (--api-url).
	APIURL string
	Getenv func(string) string
}

// Resolved is the effective configuration and the directory it belongs to.
type Resolved struct {
	Config domain.Config
	Root   string
	// File is the loaded config path, empty when defaults were used.
	File string
}

// Resolve builds the effective configuration: defaults, then domscan.yaml,
// then environment, then flags. A missing domscan.yaml is not an error unless
// it was named explicitly.
func Resolve(opts Options) (Resolved, error) {
	out := Resolved{Config: domain.DefaultConfig()}

	switch {
	case opts.Path != "":
		cfg, err := LoadFile(opts.Path)
		if err != nil {
			return out, err
		}
		out.Config = cfg
		out.File = opts.Path
		out.Root = filepath.Dir(opts.Path)

	default:
		start := opts.StartDir
		if start == "" {
			start = "."
		}
		root, err := NewFinder().FindRoot(start)
		switch {
		case err == nil:
			path := filepath.Join(root, FileName)
			cfg, err := LoadFile(path)
			if err != nil {
				return out, err
			}
			out.Config = cfg
			out.File = path
			out.Root = root
		case domain.IsKind(err, domain.KindNotFound):
			abs, absErr := filepath.Abs(start)
			if absErr != nil {
				abs = start
			}
			out.Root = abs
		default:
			return out, err
		}
	}

	cfg, err := ApplyEnv(out.Config, opts.Getenv)
	if err != nil {
		return out, err
	}
	if v := strings.TrimSpace(opts.APIURL); v != "" {
		cfg.API.BaseURL = v
	}
	out.Config = cfg
	return out, nil
}

func parseTimeout(s string) (time.Duration, error) {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("timeout %q: %w", s, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("timeout %q must be positive", s)
	}
	return d, nil
}
