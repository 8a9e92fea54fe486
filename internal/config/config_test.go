package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_ValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
assistant:
  title: Acme Screening Bot
ai:
  model: gpt-4o
  api_key: sk-test
  timeout: 10s
exit_keywords:
  - exit
  - adios
store:
  path: acme.db
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Assistant.Title != "Acme Screening Bot" {
		t.Errorf("Title = %q", cfg.Assistant.Title)
	}
	if cfg.AI.Model != "gpt-4o" || cfg.AI.APIKey != "sk-test" {
		t.Errorf("AI = %+v", cfg.AI)
	}
	if cfg.AI.Timeout != 10*time.Second {
		t.Errorf("Timeout = %v, want 10s", cfg.AI.Timeout)
	}
	if cfg.AI.BaseURL != "https://api.openai.com/v1" {
		t.Errorf("BaseURL default missing: %q", cfg.AI.BaseURL)
	}
	if len(cfg.ExitKeywords) != 2 || cfg.ExitKeywords[1] != "adios" {
		t.Errorf("ExitKeywords = %v", cfg.ExitKeywords)
	}
	if cfg.Store.Path != "acme.db" {
		t.Errorf("Store.Path = %q", cfg.Store.Path)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("OPENAI_API_KEY", "sk-from-env")

	cfg, err := Load(filepath.Join(t.TempDir(), "nonexistent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.APIKey != "sk-from-env" {
		t.Errorf("APIKey = %q, want env fallback", cfg.AI.APIKey)
	}
	if cfg.AI.Timeout != 30*time.Second {
		t.Errorf("Timeout = %v, want default 30s", cfg.AI.Timeout)
	}
	if len(cfg.ExitKeywords) != 5 {
		t.Errorf("ExitKeywords = %v, want defaults", cfg.ExitKeywords)
	}
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("TEST_TS_KEY", "sk-expanded")

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := "ai:\n  api_key: ${TEST_TS_KEY}\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.AI.APIKey != "sk-expanded" {
		t.Errorf("APIKey = %q, want expanded env var", cfg.AI.APIKey)
	}
}

func TestLoad_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(path, []byte("ai: [broken"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for invalid yaml")
	}
}

func TestLoad_InvalidTimeout(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("ai:\n  timeout: soon\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("Load: expected error for unparseable timeout")
	}
}

func TestRequireAPIKey(t *testing.T) {
	cfg := Default()
	cfg.AI.APIKey = ""
	if err := cfg.RequireAPIKey(); err == nil {
		t.Fatal("RequireAPIKey: expected error for missing key")
	}

	cfg.AI.APIKey = "sk-present"
	if err := cfg.RequireAPIKey(); err != nil {
		t.Fatalf("RequireAPIKey: %v", err)
	}
}
