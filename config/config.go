package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

// Environment variables recognised by peermind. Credentials are read from
// the environment first and fall back to the config file.
const (
	EnvProvider      = "PEERMIND_PROVIDER"
	EnvListen        = "PEERMIND_LISTEN"
	EnvRelayURL      = "PEERMIND_RELAY_URL"
	EnvDataDir       = "PEERMIND_DATA_DIR"
	EnvDebug         = "PEERMIND_DEBUG"
	EnvNearAIKey     = "NEAR_AI_API_KEY"
	EnvGeminiKey     = "GEMINI_API_KEY"
	EnvLighthouseKey = "LIGHTHOUSE_API_KEY"
)

type ServerConfig struct {
	Listen string `toml:"listen"`
}

type ProviderConfig struct {
	Type         string `toml:"type"`
	BaseURL      string `toml:"base_url,omitempty"`
	Model        string `toml:"model,omitempty"`
	APIKey       string `toml:"api_key,omitempty"`
	SystemPrompt string `toml:"system_prompt,omitempty"`
}

type LighthouseConfig struct {
	APIKey     string `toml:"api_key,omitempty"`
	UploadURL  string `toml:"upload_url,omitempty"`
	GatewayURL string `toml:"gateway_url,omitempty"`
	// Archive controls the relay's background transcript upload.
	Archive bool `toml:"archive"`
}

type ClientConfig struct {
	RelayURL string `toml:"relay_url"`
	// Archive controls the chat panel's upload after each exchange.
	Archive bool `toml:"archive"`
}

// FileConfig mirrors config.toml on disk.
type FileConfig struct {
	DataDirectory string           `toml:"data_directory"`
	Server        ServerConfig     `toml:"server"`
	Provider      ProviderConfig   `toml:"provider"`
	Lighthouse    LighthouseConfig `toml:"lighthouse"`
	Client        ClientConfig     `toml:"client"`
}

// Config is the resolved runtime configuration (file + env overrides).
type Config struct {
	DataDirectory string
	Listen        string
	RelayURL      string

	ProviderType         string
	ProviderBaseURL      string
	ProviderModel        string
	ProviderAPIKey       string
	ProviderSystemPrompt string

	LighthouseAPIKey     string
	LighthouseUploadURL  string
	LighthouseGatewayURL string
	ServerArchive        bool
	ClientArchive        bool
}

var Debug = false

// Log is the always-on logger used by the relay and the archiver.
var Log = log.New(os.Stderr, "", log.LstdFlags)

// DebugLog is nil unless PEERMIND_DEBUG is set.
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

// Canonical provider IDs.
const (
	ProviderNearAI = "nearai"
	ProviderGemini = "gemini"
)

// CanonicalProvider resolves a provider ID or alias ("near", "google", ...)
// to its canonical ID. Unknown IDs are returned unchanged.
func CanonicalProvider(id string) string {
	switch id {
	case "nearai", "near", "near-ai":
		return ProviderNearAI
	case "gemini", "google":
		return ProviderGemini
	default:
		return id
	}
}

// ProviderKeyEnv names the environment variable that holds the credential
// for the configured provider.
func (c *Config) ProviderKeyEnv() string {
	switch CanonicalProvider(c.ProviderType) {
	case ProviderGemini:
		return EnvGeminiKey
	default:
		return EnvNearAIKey
	}
}

func (c *Config) applyFile(fc *FileConfig) {
	if fc.DataDirectory != "" {
		c.DataDirectory = fc.DataDirectory
	}
	if fc.Server.Listen != "" {
		c.Listen = fc.Server.Listen
	}
	if fc.Client.RelayURL != "" {
		c.RelayURL = fc.Client.RelayURL
	}
	if fc.Provider.Type != "" {
		c.ProviderType = fc.Provider.Type
	}
	c.ProviderBaseURL = fc.Provider.BaseURL
	c.ProviderModel = fc.Provider.Model
	c.ProviderAPIKey = fc.Provider.APIKey
	c.ProviderSystemPrompt = fc.Provider.SystemPrompt
	c.LighthouseAPIKey = fc.Lighthouse.APIKey
	if fc.Lighthouse.UploadURL != "" {
		c.LighthouseUploadURL = fc.Lighthouse.UploadURL
	}
	if fc.Lighthouse.GatewayURL != "" {
		c.LighthouseGatewayURL = fc.Lighthouse.GatewayURL
	}
	c.ServerArchive = fc.Lighthouse.Archive
	c.ClientArchive = fc.Client.Archive
}

func (c *Config) applyEnvOverrides() {
	if provider := os.Getenv(EnvProvider); provider != "" {
		c.ProviderType = provider
	}
	if listen := os.Getenv(EnvListen); listen != "" {
		c.Listen = listen
	}
	if relayURL := os.Getenv(EnvRelayURL); relayURL != "" {
		c.RelayURL = relayURL
	}
	if dataDir := os.Getenv(EnvDataDir); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if key := os.Getenv(c.ProviderKeyEnv()); key != "" {
		c.ProviderAPIKey = key
	}
	if key := os.Getenv(EnvLighthouseKey); key != "" {
		c.LighthouseAPIKey = key
	}
}

func CheckDebug() bool {
	debug := os.Getenv(EnvDebug)
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: the log may contain transcript fragments
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (%s=%s) ===", EnvDebug, os.Getenv(EnvDebug))
	DebugLog.Printf("Log path: %s", logPath)
}

// Debugf writes to DebugLog when debug logging is enabled.
func Debugf(format string, args ...any) {
	if DebugLog != nil {
		DebugLog.Printf(format, args...)
	}
}

// Load reads config.toml (creating it from the template when missing) and
// applies environment overrides. An empty path selects the default location.
// Missing credentials are not an error here; the relay reports them per request.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path == "" {
		path = GetSettingsFilePath()
	}

	fc, err := LoadFileConfig(path)
	if err != nil {
		return nil, err
	}
	cfg.applyFile(fc)
	cfg.applyEnvOverrides()

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	return cfg, nil
}
