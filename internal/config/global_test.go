package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/matsen/dblp2wd/internal/dblp"
)

// isolateConfig points XDG_CONFIG_HOME at a fresh directory and clears every
// override so the host environment cannot leak into a test.
func isolateConfig(t *testing.T) string {
	t.Helper()
	ResetGlobalConfigCache()
	t.Cleanup(ResetGlobalConfigCache)

	tmpDir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", tmpDir)
	for _, key := range []string{"SPARQL_ENDPOINT", "SEARCH_ENDPOINT", "USER_AGENT", "RATE_LIMIT", "TIMEOUT", "LOG_FILE", "LOG_LEVEL"} {
		t.Setenv(EnvPrefix+key, "")
	}
	return tmpDir
}

func writeGlobalConfig(t *testing.T, configHome, content string) {
	t.Helper()
	configDir := filepath.Join(configHome, GlobalConfigDir)
	if err := os.MkdirAll(configDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(configDir, GlobalConfigFile), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestGlobalConfigPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/custom/config")
	path := GlobalConfigPath()
	want := "/custom/config/dblp2wd/config.yml"
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}

	// Test with empty XDG_CONFIG_HOME (should use ~/.config)
	t.Setenv("XDG_CONFIG_HOME", "")
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}
	path = GlobalConfigPath()
	want = filepath.Join(home, ".config", "dblp2wd", "config.yml")
	if path != want {
		t.Errorf("GlobalConfigPath() = %q, want %q", path, want)
	}
}

func TestLoadGlobalConfig_NotFound(t *testing.T) {
	isolateConfig(t)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	want := DefaultGlobalConfig()
	if *cfg != *want {
		t.Errorf("LoadGlobalConfig() = %+v, want defaults %+v", cfg, want)
	}
	if cfg.SPARQLEndpoint != dblp.SPARQLEndpoint {
		t.Errorf("SPARQLEndpoint = %q", cfg.SPARQLEndpoint)
	}
}

func TestLoadGlobalConfig_Valid(t *testing.T) {
	dir := isolateConfig(t)
	writeGlobalConfig(t, dir, `
sparql_endpoint: http://localhost:7878/sparql
user_agent: test-agent
rate_limit: 5
timeout: 10s
log_file: ~/dblp2wd.log
log_level: debug
`)

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}

	if cfg.SPARQLEndpoint != "http://localhost:7878/sparql" {
		t.Errorf("SPARQLEndpoint = %q", cfg.SPARQLEndpoint)
	}
	if cfg.SearchEndpoint != dblp.SearchEndpoint {
		t.Errorf("SearchEndpoint = %q, want default", cfg.SearchEndpoint)
	}
	if cfg.UserAgent != "test-agent" {
		t.Errorf("UserAgent = %q", cfg.UserAgent)
	}
	if cfg.RateLimit != 5 {
		t.Errorf("RateLimit = %v, want 5", cfg.RateLimit)
	}
	if cfg.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.Timeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}

	home, _ := os.UserHomeDir()
	if want := filepath.Join(home, "dblp2wd.log"); cfg.LogFile != want {
		t.Errorf("LogFile = %q, want %q", cfg.LogFile, want)
	}
}

func TestLoadGlobalConfig_RateLimit(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    float64
	}{
		{"unset keeps default", "user_agent: x\n", dblp.DefaultRateLimit},
		{"explicit zero disables", "rate_limit: 0\n", 0},
		{"negative disables", "rate_limit: -1\n", -1},
		{"fractional", "rate_limit: 0.5\n", 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := isolateConfig(t)
			writeGlobalConfig(t, dir, tt.content)

			cfg, err := LoadGlobalConfig()
			if err != nil {
				t.Fatalf("LoadGlobalConfig() error = %v", err)
			}
			if cfg.RateLimit != tt.want {
				t.Errorf("RateLimit = %v, want %v", cfg.RateLimit, tt.want)
			}
		})
	}
}

func TestLoadGlobalConfig_InvalidYAML(t *testing.T) {
	dir := isolateConfig(t)
	writeGlobalConfig(t, dir, "rate_limit: [not a number")

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("LoadGlobalConfig() should return error for invalid YAML")
	}
}

func TestLoadGlobalConfig_InvalidLevel(t *testing.T) {
	dir := isolateConfig(t)
	writeGlobalConfig(t, dir, "log_level: chatty\n")

	if _, err := LoadGlobalConfig(); err == nil {
		t.Error("LoadGlobalConfig() should reject an unknown log_level")
	}
}

func TestLoadGlobalConfig_EnvOverrides(t *testing.T) {
	dir := isolateConfig(t)
	writeGlobalConfig(t, dir, "user_agent: from-file\nrate_limit: 2\n")

	t.Setenv("DBLP2WD_USER_AGENT", "from-env")
	t.Setenv("DBLP2WD_SEARCH_ENDPOINT", "http://localhost/search")
	t.Setenv("DBLP2WD_RATE_LIMIT", "-1")
	t.Setenv("DBLP2WD_TIMEOUT", "3s")

	cfg, err := LoadGlobalConfig()
	if err != nil {
		t.Fatalf("LoadGlobalConfig() error = %v", err)
	}
	if cfg.UserAgent != "from-env" {
		t.Errorf("UserAgent = %q, want from-env", cfg.UserAgent)
	}
	if cfg.SearchEndpoint != "http://localhost/search" {
		t.Errorf("SearchEndpoint = %q", cfg.SearchEndpoint)
	}
	if cfg.RateLimit != -1 {
		t.Errorf("RateLimit = %v, want -1", cfg.RateLimit)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("Timeout = %v, want 3s", cfg.Timeout)
	}
}

func TestLoadGlobalConfig_BadEnv(t *testing.T) {
	tests := []struct {
		key, value string
	}{
		{"DBLP2WD_RATE_LIMIT", "fast"},
		{"DBLP2WD_TIMEOUT", "soon"},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			isolateConfig(t)
			t.Setenv(tt.key, tt.value)
			if _, err := LoadGlobalConfig(); err == nil {
				t.Errorf("LoadGlobalConfig() should fail for %s=%s", tt.key, tt.value)
			}
		})
	}
}

func TestLoadGlobalConfig_Cached(t *testing.T) {
	isolateConfig(t)

	first, err := LoadGlobalConfig()
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("DBLP2WD_USER_AGENT", "changed")
	second, _ := LoadGlobalConfig()
	if first != second {
		t.Error("LoadGlobalConfig() should return the cached config")
	}

	ResetGlobalConfigCache()
	third, _ := LoadGlobalConfig()
	if third.UserAgent != "changed" {
		t.Errorf("after reset UserAgent = %q, want changed", third.UserAgent)
	}
}

func TestClientOptions(t *testing.T) {
	cfg := DefaultGlobalConfig()
	if got := len(cfg.ClientOptions()); got != 5 {
		t.Errorf("ClientOptions() returned %d options, want 5", got)
	}
}

func TestHelpfulConfigMessage(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	msg := HelpfulConfigMessage()
	for _, want := range []string{"/cfg/dblp2wd/config.yml", "DBLP2WD_"} {
		if !strings.Contains(msg, want) {
			t.Errorf("HelpfulConfigMessage() missing %q", want)
		}
	}
}
