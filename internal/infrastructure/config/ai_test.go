package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadAIConfigMissing(t *testing.T) {
	tempDir := t.TempDir()

	cfg, err := LoadAIConfig(tempDir)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg != nil {
		t.Fatalf("expected nil config for missing file")
	}
}

func TestSaveAndLoadAIConfig(t *testing.T) {
	tempDir := t.TempDir()

	input := &AIConfig{Provider: "mock", Model: "test-model"}
	if err := SaveAIConfig(tempDir, input); err != nil {
		t.Fatalf("save config: %v", err)
	}

	cfg, err := LoadAIConfig(tempDir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg == nil {
		t.Fatalf("expected config")
	}
	if cfg.Provider != input.Provider || cfg.Model != input.Model {
		t.Fatalf("unexpected config: %+v", cfg)
	}
}

func TestSaveAIConfigNil(t *testing.T) {
	if err := SaveAIConfig(t.TempDir(), nil); err == nil {
		t.Fatal("expected error for nil config")
	}
}

func TestLoadAIConfigInvalid(t *testing.T) {
	tempDir := t.TempDir()
	workDir := filepath.Join(tempDir, ".testplan")
	if err := os.MkdirAll(workDir, 0700); err != nil {
		t.Fatalf("mkdir .testplan: %v", err)
	}

	badPath := filepath.Join(workDir, "ai.yaml")
	if err := os.WriteFile(badPath, []byte("::bad"), 0600); err != nil {
		t.Fatalf("write bad config: %v", err)
	}

	_, err := LoadAIConfig(tempDir)
	if err == nil {
		t.Fatalf("expected error for invalid yaml")
	}
}
