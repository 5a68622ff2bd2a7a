// Package config handles global configuration, the workspace directory, and
// logger setup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/matsen/dblp2wd/internal/dblp"
)

// GlobalConfig represents configuration stored in ~/.config/dblp2wd/config.yml.
type GlobalConfig struct {
	SPARQLEndpoint string        `yaml:"sparql_endpoint,omitempty"`
	SearchEndpoint string        `yaml:"search_endpoint,omitempty"`
	UserAgent      string        `yaml:"user_agent,omitempty"`
	RateLimit      float64       `yaml:"-"` // requests per second, <=0 disables
	Timeout        time.Duration `yaml:"timeout,omitempty"`
	LogFile        string        `yaml:"log_file,omitempty"`
	LogLevel       string        `yaml:"log_level,omitempty"`
}

// fileConfig is the on-disk form. RateLimit is a pointer so that an explicit
// "rate_limit: 0" disables limiting rather than reading as unset.
type fileConfig struct {
	GlobalConfig `yaml:",inline"`
	RateLimit    *float64 `yaml:"rate_limit,omitempty"`
}

const (
	// GlobalConfigDir is the directory name under XDG_CONFIG_HOME.
	GlobalConfigDir = "dblp2wd"
	// GlobalConfigFile is the config file name.
	GlobalConfigFile = "config.yml"

	// EnvPrefix prefixes every environment override.
	EnvPrefix = "DBLP2WD_"
)

// globalConfigCache caches the loaded global config.
var globalConfigCache *GlobalConfig

// DefaultGlobalConfig returns the configuration used when nothing is set.
func DefaultGlobalConfig() *GlobalConfig {
	return &GlobalConfig{
		SPARQLEndpoint: dblp.SPARQLEndpoint,
		SearchEndpoint: dblp.SearchEndpoint,
		UserAgent:      dblp.DefaultUserAgent,
		RateLimit:      dblp.DefaultRateLimit,
		Timeout:        dblp.DefaultTimeout,
		LogLevel:       "info",
	}
}

// GlobalConfigPath returns the path to the global config file.
// Respects XDG_CONFIG_HOME, defaults to ~/.config/dblp2wd/config.yml.
func GlobalConfigPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, GlobalConfigDir, GlobalConfigFile)
}

// LoadGlobalConfig loads the global configuration file, fills unset fields
// with defaults, and applies environment overrides.
// A missing file is not an error.
func LoadGlobalConfig() (*GlobalConfig, error) {
	if globalConfigCache != nil {
		return globalConfigCache, nil
	}

	cfg := DefaultGlobalConfig()

	if path := GlobalConfigPath(); path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return nil, fmt.Errorf("reading global config: %w", err)
		}
		if err == nil {
			var file fileConfig
			if err := yaml.Unmarshal(data, &file); err != nil {
				return nil, fmt.Errorf("parsing global config: %w", err)
			}
			cfg.merge(&file)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	if cfg.LogFile != "" {
		cfg.LogFile = ExpandPath(cfg.LogFile)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return nil, err
	}

	globalConfigCache = cfg
	return cfg, nil
}

// ResetGlobalConfigCache clears the cached global config.
// Useful for testing.
func ResetGlobalConfigCache() {
	globalConfigCache = nil
}

// merge copies every set field of other onto c.
func (c *GlobalConfig) merge(other *fileConfig) {
	if other.SPARQLEndpoint != "" {
		c.SPARQLEndpoint = other.SPARQLEndpoint
	}
	if other.SearchEndpoint != "" {
		c.SearchEndpoint = other.SearchEndpoint
	}
	if other.UserAgent != "" {
		c.UserAgent = other.UserAgent
	}
	if other.RateLimit != nil {
		c.RateLimit = *other.RateLimit
	}
	if other.Timeout != 0 {
		c.Timeout = other.Timeout
	}
	if other.LogFile != "" {
		c.LogFile = other.LogFile
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

func (c *GlobalConfig) applyEnv() error {
	strs := []struct {
		key string
		dst *string
	}{
		{"SPARQL_ENDPOINT", &c.SPARQLEndpoint},
		{"SEARCH_ENDPOINT", &c.SearchEndpoint},
		{"USER_AGENT", &c.UserAgent},
		{"LOG_FILE", &c.LogFile},
		{"LOG_LEVEL", &c.LogLevel},
	}
	for _, s := range strs {
		if v := os.Getenv(EnvPrefix + s.key); v != "" {
			*s.dst = v
		}
	}

	if v := os.Getenv(EnvPrefix + "RATE_LIMIT"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("parsing %sRATE_LIMIT: %w", EnvPrefix, err)
		}
		c.RateLimit = r
	}
	if v := os.Getenv(EnvPrefix + "TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parsing %sTIMEOUT: %w", EnvPrefix, err)
		}
		c.Timeout = d
	}
	return nil
}

// ClientOptions translates the configuration into dblp client options.
func (c *GlobalConfig) ClientOptions() []dblp.ClientOption {
	return []dblp.ClientOption{
		dblp.WithSPARQLEndpoint(c.SPARQLEndpoint),
		dblp.WithSearchEndpoint(c.SearchEndpoint),
		dblp.WithUserAgent(c.UserAgent),
		dblp.WithRateLimit(c.RateLimit),
		dblp.WithTimeout(c.Timeout),
	}
}

// HelpfulConfigMessage describes where the config file lives.
func HelpfulConfigMessage() string {
	configPath := GlobalConfigPath()
	return fmt.Sprintf(`Configuration is read from %s.

Example:
  mkdir -p %s
  cat > %s <<EOF
  user_agent: my-curation-tool/1.0 (me@example.org)
  rate_limit: 1
  log_file: ~/dblp2wd.log
  EOF

Every key can be overridden with a %s* environment variable.`,
		configPath,
		filepath.Dir(configPath),
		configPath,
		EnvPrefix)
}
