package config

import (
	"os"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"gh-repo-cache/internal/models"
)

func createTestConfigFile(t *testing.T, content string) string {
	tmpFile, err := os.CreateTemp("", "repo_cache_config_*.yaml")
	if err != nil {
		t.Fatalf("Failed to create temp file: %v", err)
	}

	if _, err := tmpFile.WriteString(content); err != nil {
		t.Fatalf("Failed to write to temp file: %v", err)
	}

	if err := tmpFile.Close(); err != nil {
		t.Fatalf("Failed to close temp file: %v", err)
	}

	return tmpFile.Name()
}

func TestLoadConfig(t *testing.T) {
	logger := zaptest.NewLogger(t)

	validConfig := `
server:
  socket_path: /run/gh-repo-cache.sock
  metrics_port: 9191
  sweep_interval_seconds: 120

github:
  token: test-token
  identity: alice

l1:
  enabled: true
  size: 200
  life_window_seconds: 3600

l2:
  enabled: true
  url: redis://cache:6379
  read_timeout: 250
  write_timeout: 750
  scan_count: 100

ttl:
  short_seconds: 120
  long_seconds: 7200
  negative_seconds: 30
  hard_multiplier: 5

rules:
  repos.get: long
  issues.list: short
  orgs.list: permanent
`

	configFile := createTestConfigFile(t, validConfig)
	defer os.Remove(configFile)

	config, err := LoadConfig(configFile, logger)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Server.SocketPath != "/run/gh-repo-cache.sock" {
		t.Errorf("LoadConfig() Server.SocketPath = %v, want /run/gh-repo-cache.sock", config.Server.SocketPath)
	}
	if config.Server.MetricsPort != 9191 {
		t.Errorf("LoadConfig() Server.MetricsPort = %v, want 9191", config.Server.MetricsPort)
	}
	if config.GitHub.Identity != "alice" {
		t.Errorf("LoadConfig() GitHub.Identity = %v, want alice", config.GitHub.Identity)
	}

	if !config.L1.Enabled {
		t.Errorf("LoadConfig() L1.Enabled = false, want true")
	}
	if config.L1.Size != 200 {
		t.Errorf("LoadConfig() L1.Size = %v, want 200", config.L1.Size)
	}

	if !config.L2.Enabled {
		t.Errorf("LoadConfig() L2.Enabled = false, want true")
	}
	if config.GetL2ReadTimeout() != 250*time.Millisecond {
		t.Errorf("LoadConfig() GetL2ReadTimeout() = %v, want 250ms", config.GetL2ReadTimeout())
	}
	if config.L2.ScanCount != 100 {
		t.Errorf("LoadConfig() L2.ScanCount = %v, want 100", config.L2.ScanCount)
	}

	ttls := config.ClassTTLs()
	if ttls[models.TTLClassShort] != 2*time.Minute {
		t.Errorf("ClassTTLs() short = %v, want 2m", ttls[models.TTLClassShort])
	}
	if ttls[models.TTLClassLong] != 2*time.Hour {
		t.Errorf("ClassTTLs() long = %v, want 2h", ttls[models.TTLClassLong])
	}
	if _, ok := ttls[models.TTLClassPermanent]; ok {
		t.Errorf("ClassTTLs() permanent should be unset so the policy default applies")
	}

	if config.Rules[models.EndpointRepoGet] != models.TTLClassLong {
		t.Errorf("LoadConfig() Rules[repos.get] = %v, want long", config.Rules[models.EndpointRepoGet])
	}
	if config.Rules[models.EndpointOrgsList] != models.TTLClassPermanent {
		t.Errorf("LoadConfig() Rules[orgs.list] = %v, want permanent", config.Rules[models.EndpointOrgsList])
	}
}

func TestLoadConfig_WithDefaults(t *testing.T) {
	logger := zaptest.NewLogger(t)

	minimalConfig := `
github:
  identity: alice

l1:
  enabled: true
`

	configFile := createTestConfigFile(t, minimalConfig)
	defer os.Remove(configFile)

	config, err := LoadConfig(configFile, logger)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.Server.SocketPath != "/tmp/gh-repo-cache.sock" {
		t.Errorf("LoadConfig() Server.SocketPath = %v, want /tmp/gh-repo-cache.sock (default)", config.Server.SocketPath)
	}
	if config.Server.MetricsPort != 9090 {
		t.Errorf("LoadConfig() Server.MetricsPort = %v, want 9090 (default)", config.Server.MetricsPort)
	}
	if config.GetSweepInterval() != 5*time.Minute {
		t.Errorf("LoadConfig() GetSweepInterval() = %v, want 5m (default)", config.GetSweepInterval())
	}
	if config.L1.Size != 100 {
		t.Errorf("LoadConfig() L1.Size = %v, want 100 (default)", config.L1.Size)
	}
	if config.GetL1LifeWindow() != 24*time.Hour {
		t.Errorf("LoadConfig() GetL1LifeWindow() = %v, want 24h (default)", config.GetL1LifeWindow())
	}
	if config.GetL2ReadTimeout() != 500*time.Millisecond {
		t.Errorf("LoadConfig() GetL2ReadTimeout() = %v, want 500ms (default)", config.GetL2ReadTimeout())
	}
	if config.GetL2WriteTimeout() != time.Second {
		t.Errorf("LoadConfig() GetL2WriteTimeout() = %v, want 1s (default)", config.GetL2WriteTimeout())
	}
	if config.L2.ScanCount != 200 {
		t.Errorf("LoadConfig() L2.ScanCount = %v, want 200 (default)", config.L2.ScanCount)
	}
}

func TestLoadConfig_TokenFromEnvironment(t *testing.T) {
	logger := zaptest.NewLogger(t)
	t.Setenv("GITHUB_TOKEN", "env-token")

	minimalConfig := `
github:
  identity: alice
`

	configFile := createTestConfigFile(t, minimalConfig)
	defer os.Remove(configFile)

	config, err := LoadConfig(configFile, logger)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}

	if config.GitHub.Token != "env-token" {
		t.Errorf("LoadConfig() GitHub.Token = %v, want env-token", config.GitHub.Token)
	}
}

func TestLoadConfig_MissingIdentity(t *testing.T) {
	logger := zaptest.NewLogger(t)

	configFile := createTestConfigFile(t, "l1:\n  enabled: true\n")
	defer os.Remove(configFile)

	if _, err := LoadConfig(configFile, logger); err == nil {
		t.Fatal("LoadConfig() should return error when github.identity is missing")
	}
}

func TestLoadConfig_UnknownEndpointRule(t *testing.T) {
	logger := zaptest.NewLogger(t)

	badRules := `
github:
  identity: alice

rules:
  repos.nope: short
`

	configFile := createTestConfigFile(t, badRules)
	defer os.Remove(configFile)

	if _, err := LoadConfig(configFile, logger); err == nil {
		t.Fatal("LoadConfig() should return error for unknown endpoint in rules")
	}
}

func TestLoadConfig_InvalidTTLClass(t *testing.T) {
	logger := zaptest.NewLogger(t)

	badClass := `
github:
  identity: alice

rules:
  repos.get: eternal
`

	configFile := createTestConfigFile(t, badClass)
	defer os.Remove(configFile)

	if _, err := LoadConfig(configFile, logger); err == nil {
		t.Fatal("LoadConfig() should return error for invalid TTL class")
	}
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	logger := zaptest.NewLogger(t)

	_, err := LoadConfig("/nonexistent/file.yaml", logger)
	if err == nil {
		t.Fatal("LoadConfig() should return error for nonexistent file")
	}
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	logger := zaptest.NewLogger(t)

	invalidConfig := `
l1:
  enabled: true
  invalid yaml syntax [
`

	configFile := createTestConfigFile(t, invalidConfig)
	defer os.Remove(configFile)

	_, err := LoadConfig(configFile, logger)
	if err == nil {
		t.Fatal("LoadConfig() should return error for invalid YAML")
	}
}
