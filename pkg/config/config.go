// Package config defines the settings surface for screensense: how the
// browser is acquired, which vision processor handles coordinate lookups,
// and the credentials that processor needs. Settings load from a YAML
// file (default ~/.screensense/config.yaml) with environment fallbacks
// for credentials.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// BrowserMode selects how a session acquires its browser handle.
type BrowserMode string

const (
	// ModeRemote attaches to an already-running browser over a
	// websocket or CDP endpoint.
	ModeRemote BrowserMode = "remote"

	// ModeLocal launches a browser on this machine.
	ModeLocal BrowserMode = "local"
)

// RemoteSettings configures attachment to a running browser. When both
// URLs are set the websocket endpoint wins.
type RemoteSettings struct {
	WSSURL string `yaml:"wss_url"`
	CDPURL string `yaml:"cdp_url"`
}

// LocalSettings configures a locally launched browser.
type LocalSettings struct {
	ExecutablePath string `yaml:"executable_path"`
	ProxyServer    string `yaml:"proxy_server"`
}

// BrowserSettings is a tagged variant: Mode picks remote or local
// explicitly rather than inferring it from which fields are set.
type BrowserSettings struct {
	Mode   BrowserMode    `yaml:"mode"`
	Remote RemoteSettings `yaml:"remote"`
	Local  LocalSettings  `yaml:"local"`
}

// Validate checks the discriminant. An empty mode defaults to local.
func (s *BrowserSettings) Validate() error {
	switch s.Mode {
	case "":
		s.Mode = ModeLocal
	case ModeRemote, ModeLocal:
	default:
		return fmt.Errorf("unknown browser mode %q (want %q or %q)", s.Mode, ModeRemote, ModeLocal)
	}
	return nil
}

// VisionSettings configures the default vision processor.
type VisionSettings struct {
	// APIKey authenticates against the vision-model API. Falls back to
	// ANTHROPIC_API_KEY. Empty means coordinate lookups soft-fail to
	// empty results.
	APIKey string `yaml:"api_key"`

	// Model names the vision model to query.
	Model string `yaml:"model"`

	// ToolVersion selects the computer-use protocol revision.
	ToolVersion string `yaml:"tool_version"`

	// MaxTokens caps the model response length.
	MaxTokens int `yaml:"max_tokens"`

	// CacheSize bounds the per-processor memoization cache.
	CacheSize int `yaml:"cache_size"`
}

// Config is the full settings surface for one session.
type Config struct {
	Browser   BrowserSettings `yaml:"browser"`
	UserAgent string          `yaml:"user_agent"`

	// Processor names a registered vision processor. Empty or unknown
	// names fall back to a fresh default processor.
	Processor string `yaml:"processor"`

	Vision VisionSettings `yaml:"vision"`
}

const (
	DefaultModel       = "claude-3-7-sonnet-20250219"
	DefaultToolVersion = "20250124"
	DefaultMaxTokens   = 1024
	DefaultCacheSize   = 128
)

// Default returns a config that launches a local browser and reads the
// vision credential from the environment.
func Default() *Config {
	cfg := &Config{
		Browser: BrowserSettings{Mode: ModeLocal},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML config file. An empty path means the default
// location; a missing file at the default location yields Default().
func Load(path string) (*Config, error) {
	defaulted := path == ""
	if defaulted {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home directory: %w", err)
		}
		path = filepath.Join(home, ".screensense", "config.yaml")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if defaulted && os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}

	if err := cfg.Browser.Validate(); err != nil {
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Vision.APIKey == "" {
		c.Vision.APIKey = os.Getenv("ANTHROPIC_API_KEY")
	}
	if c.Vision.Model == "" {
		c.Vision.Model = DefaultModel
	}
	if c.Vision.ToolVersion == "" {
		c.Vision.ToolVersion = DefaultToolVersion
	}
	if c.Vision.MaxTokens == 0 {
		c.Vision.MaxTokens = DefaultMaxTokens
	}
	if c.Vision.CacheSize == 0 {
		c.Vision.CacheSize = DefaultCacheSize
	}
}
