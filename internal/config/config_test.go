package config

import (
	"errors"
	"os"
	"testing"
)

const sampleConfig = `
llm:
  api_key: dummy
  base_url: https://api.example.com/v1
  model: meta-llama/llama-3-8b-instruct
  referer: https://example.com
  title: Example App
log_level: debug
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	tmp, err := os.CreateTemp(t.TempDir(), "cfg-*.yaml")
	if err != nil {
		t.Fatalf("temp file: %v", err)
	}
	if _, err := tmp.WriteString(contents); err != nil {
		t.Fatalf("write: %v", err)
	}
	tmp.Close()
	return tmp.Name()
}

// TestLoad_File verifies that Load unmarshals a full config file.
func TestLoad_File(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, sampleConfig))
	t.Setenv("OPENROUTER_API_KEY", "")
	t.Setenv("OPENROUTER_API_URL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.APIKey != "dummy" {
		t.Fatalf("unexpected api key: %s", cfg.LLM.APIKey)
	}
	if cfg.LLM.BaseURL != "https://api.example.com/v1" {
		t.Fatalf("unexpected base url: %s", cfg.LLM.BaseURL)
	}
	if cfg.LLM.Model != "meta-llama/llama-3-8b-instruct" {
		t.Fatalf("unexpected model: %s", cfg.LLM.Model)
	}
	if cfg.LLM.Title != "Example App" {
		t.Fatalf("unexpected title: %s", cfg.LLM.Title)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("unexpected log level: %s", cfg.LogLevel)
	}
}

// TestLoad_Defaults verifies endpoint and model defaults when the file only
// carries the credential.
func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "llm:\n  api_key: dummy\n"))
	t.Setenv("OPENROUTER_API_URL", "")
	t.Setenv("OPENROUTER_MODEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.BaseURL != DefaultBaseURL {
		t.Fatalf("expected default base url, got %s", cfg.LLM.BaseURL)
	}
	if cfg.LLM.Model != DefaultModel {
		t.Fatalf("expected default model, got %s", cfg.LLM.Model)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("expected default log level, got %s", cfg.LogLevel)
	}
}

// TestLoad_EnvOverride verifies environment values win over file values.
func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "llm:\n  api_key: from-file\n"))
	t.Setenv("OPENROUTER_API_KEY", "from-env")
	t.Setenv("OPENROUTER_API_URL", "https://proxy.internal/v1")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.LLM.APIKey != "from-env" {
		t.Fatalf("expected env api key, got %s", cfg.LLM.APIKey)
	}
	if cfg.LLM.BaseURL != "https://proxy.internal/v1" {
		t.Fatalf("expected env base url, got %s", cfg.LLM.BaseURL)
	}
}

// TestLoad_MissingAPIKey verifies that starting without a credential fails.
func TestLoad_MissingAPIKey(t *testing.T) {
	t.Setenv("CONFIG_PATH", writeConfig(t, "llm:\n  model: something\n"))
	t.Setenv("OPENROUTER_API_KEY", "")

	if _, err := Load(); !errors.Is(err, ErrMissingAPIKey) {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
}
