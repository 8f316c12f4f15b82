package config

import (
	"os"
	"path/filepath"
	"testing"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{EnvProvider, EnvListen, EnvRelayURL, EnvDataDir, EnvDebug, EnvNearAIKey, EnvGeminiKey, EnvLighthouseKey} {
		t.Setenv(key, "")
	}
}

func TestLoadCreatesTemplate(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	path := filepath.Join(dir, "cfg", "config.toml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !FileExists(path) {
		t.Fatal("expected config template to be written")
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("expected 0600 permissions, got %v", info.Mode().Perm())
	}

	if cfg.ProviderType != DefaultProvider {
		t.Errorf("expected provider %q, got %q", DefaultProvider, cfg.ProviderType)
	}
	if cfg.Listen != DefaultListen {
		t.Errorf("expected listen %q, got %q", DefaultListen, cfg.Listen)
	}
	if cfg.ProviderAPIKey != "" {
		t.Errorf("expected no provider key, got %q", cfg.ProviderAPIKey)
	}
	if !cfg.ClientArchive || cfg.ServerArchive {
		t.Errorf("unexpected archive defaults: client=%v server=%v", cfg.ClientArchive, cfg.ServerArchive)
	}
}

func TestLoadFileValues(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `data_directory = "` + filepath.Join(dir, "data") + `"

[server]
listen = ":8080"

[provider]
type = "gemini"
model = "gemini-1.5-pro"
api_key = "file-key"

[lighthouse]
api_key = "lh-file"
archive = true

[client]
relay_url = "http://relay:8080"
archive = false
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ProviderType != "gemini" || cfg.ProviderModel != "gemini-1.5-pro" {
		t.Errorf("unexpected provider settings: %+v", cfg)
	}
	if cfg.ProviderAPIKey != "file-key" {
		t.Errorf("expected file key, got %q", cfg.ProviderAPIKey)
	}
	if cfg.ProviderKeyEnv() != EnvGeminiKey {
		t.Errorf("expected %s, got %s", EnvGeminiKey, cfg.ProviderKeyEnv())
	}
	if cfg.Listen != ":8080" || cfg.RelayURL != "http://relay:8080" {
		t.Errorf("unexpected addresses: listen=%q relay=%q", cfg.Listen, cfg.RelayURL)
	}
	if !cfg.ServerArchive || cfg.ClientArchive {
		t.Errorf("unexpected archive flags: server=%v client=%v", cfg.ServerArchive, cfg.ClientArchive)
	}
	if cfg.LighthouseUploadURL != DefaultLighthouseUploadURL {
		t.Errorf("expected default upload URL, got %q", cfg.LighthouseUploadURL)
	}
	if _, err := os.Stat(cfg.DataDir()); err != nil {
		t.Errorf("expected data dir to exist: %v", err)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `data_directory = "` + filepath.Join(dir, "data") + `"

[provider]
type = "nearai"
api_key = "file-key"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvProvider, "gemini")
	t.Setenv(EnvGeminiKey, "env-gemini")
	t.Setenv(EnvNearAIKey, "env-near")
	t.Setenv(EnvLighthouseKey, "env-lh")
	t.Setenv(EnvDataDir, filepath.Join(dir, "override"))

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ProviderType != "gemini" {
		t.Errorf("expected gemini, got %q", cfg.ProviderType)
	}
	// Only the key matching the selected provider applies.
	if cfg.ProviderAPIKey != "env-gemini" {
		t.Errorf("expected env-gemini, got %q", cfg.ProviderAPIKey)
	}
	if cfg.LighthouseAPIKey != "env-lh" {
		t.Errorf("expected env-lh, got %q", cfg.LighthouseAPIKey)
	}
	if cfg.DataDir() != filepath.Join(dir, "override") {
		t.Errorf("unexpected data dir %q", cfg.DataDir())
	}
}

func TestExpandPath(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	t.Setenv("PEERMIND_TEST_DIR", "/srv/data")

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~/notes", "/home/tester/notes"},
		{"$PEERMIND_TEST_DIR/peermind", "/srv/data/peermind"},
		{"/tmp/../tmp/x", "/tmp/x"},
	}

	for _, tt := range tests {
		if got := ExpandPath(tt.in); got != tt.want {
			t.Errorf("ExpandPath(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestProviderKeyEnv(t *testing.T) {
	tests := []struct {
		provider string
		want     string
	}{
		{"nearai", EnvNearAIKey},
		{"near", EnvNearAIKey},
		{"near-ai", EnvNearAIKey},
		{"gemini", EnvGeminiKey},
		{"google", EnvGeminiKey},
	}

	for _, tt := range tests {
		cfg := &Config{ProviderType: tt.provider}
		if got := cfg.ProviderKeyEnv(); got != tt.want {
			t.Errorf("ProviderKeyEnv(%q) = %s, want %s", tt.provider, got, tt.want)
		}
	}
}

func TestGoogleAliasReadsGeminiKey(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `data_directory = "` + filepath.Join(dir, "data") + `"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(EnvProvider, "google")
	t.Setenv(EnvGeminiKey, "env-gemini")
	t.Setenv(EnvNearAIKey, "env-near")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	// The NEAR key must never be handed to Google.
	if cfg.ProviderAPIKey != "env-gemini" {
		t.Errorf("expected env-gemini, got %q", cfg.ProviderAPIKey)
	}
}

func TestFileWithoutArchiveKeysKeepsDefaults(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `data_directory = "` + filepath.Join(dir, "data") + `"

[lighthouse]
api_key = "lh-file"

[client]
relay_url = "http://relay:8080"
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !cfg.ClientArchive {
		t.Error("client archiving should stay on when the key is absent")
	}
	if cfg.ServerArchive {
		t.Error("server archiving should stay off when the key is absent")
	}
}
