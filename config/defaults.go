package config

const (
	DefaultProvider             = ProviderNearAI
	DefaultListen               = "127.0.0.1:3000"
	DefaultRelayURL             = "http://127.0.0.1:3000"
	DefaultLighthouseUploadURL  = "https://node.lighthouse.storage/api/v0/add"
	DefaultLighthouseGatewayURL = "https://gateway.lighthouse.storage"
)

// Defaults returns the configuration used when no file or env value is set.
func Defaults() *Config {
	return &Config{
		DataDirectory:        GetDefaultDataDir(),
		Listen:               DefaultListen,
		RelayURL:             DefaultRelayURL,
		ProviderType:         DefaultProvider,
		LighthouseUploadURL:  DefaultLighthouseUploadURL,
		LighthouseGatewayURL: DefaultLighthouseGatewayURL,
		ClientArchive:        true,
	}
}

func DefaultFileConfig() *FileConfig {
	return &FileConfig{
		DataDirectory: "~/.local/share/peermind",
		Server: ServerConfig{
			Listen: DefaultListen,
		},
		Provider: ProviderConfig{
			Type: DefaultProvider,
		},
		Lighthouse: LighthouseConfig{
			Archive: false,
		},
		Client: ClientConfig{
			RelayURL: DefaultRelayURL,
			Archive:  true,
		},
	}
}

func GenerateConfigTemplate() string {
	return `# peermind configuration
# Location: ~/.config/peermind/config.toml
# This file uses TOML format: https://toml.io

# Directory for the local history database and debug log
data_directory = "~/.local/share/peermind"

[server]
# Address the relay (peermind serve) listens on
listen = "127.0.0.1:3000"

[provider]
# Upstream used by the relay: "nearai" or "gemini"
type = "nearai"

# Optional overrides (defaults depend on the provider type)
# base_url = "https://generativelanguage.googleapis.com/v1beta"
# model = "gemini-2.0-flash"
# system_prompt = ""

# Credential for the provider. Prefer NEAR_AI_API_KEY / GEMINI_API_KEY.
# api_key = ""

[lighthouse]
# Credential for transcript uploads. Prefer LIGHTHOUSE_API_KEY.
# api_key = ""

# Upload the transcript from the relay after every reply
archive = false

[client]
# Relay endpoint used by the chat panel (peermind chat)
relay_url = "http://127.0.0.1:3000"

# Upload the transcript from the chat panel after every exchange
archive = true
`
}
