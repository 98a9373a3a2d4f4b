package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for carerag.
type Config struct {
	Knowledge  KnowledgeConfig  `yaml:"knowledge"`
	Retrieve   RetrieveConfig   `yaml:"retrieve"`
	Generative GenerativeConfig `yaml:"generative"`
	Server     ServerConfig     `yaml:"server"`
	Logging    LoggingConfig    `yaml:"logging"`
}

// KnowledgeConfig locates the markdown knowledge sources.
type KnowledgeConfig struct {
	Root       string   `yaml:"root"`     // relative to the project directory unless absolute
	Includes   []string `yaml:"includes"` // doublestar patterns relative to Root
	Excludes   []string `yaml:"excludes"`
	Watch      bool     `yaml:"watch"`
	DebounceMs int      `yaml:"debounce_ms"`
}

// RetrieveConfig holds retrieval configuration.
type RetrieveConfig struct {
	TopK         int `yaml:"top_k"`
	DetailedTopK int `yaml:"detailed_top_k"`
	CacheSize    int `yaml:"cache_size"` // 0 disables the query cache
	CacheTTLSecs int `yaml:"cache_ttl_secs"`
}

// GenerativeConfig holds the optional OpenAI-compatible backend.
type GenerativeConfig struct {
	Enabled     bool    `yaml:"enabled"`
	BaseURL     string  `yaml:"base_url"`    // e.g. http://localhost:11434/v1 for Ollama
	Model       string  `yaml:"model"`
	APIKeyEnv   string  `yaml:"api_key_env"` // Environment variable for API key
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSecs int     `yaml:"timeout_secs"` // 0 = no limit
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host               string `yaml:"host"`
	Port               int    `yaml:"port"`
	RequestTimeoutSecs int    `yaml:"request_timeout_secs"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Knowledge: KnowledgeConfig{
			Root:       "knowledge",
			Includes:   []string{"**/*.md"},
			Excludes:   []string{"**/.git/**", "**/drafts/**"},
			Watch:      false,
			DebounceMs: 400,
		},
		Retrieve: RetrieveConfig{
			TopK:         5,
			DetailedTopK: 8,
			CacheSize:    256,
			CacheTTLSecs: 300,
		},
		Generative: GenerativeConfig{
			Enabled:     false, // Disabled by default (requires a running backend)
			BaseURL:     "http://localhost:11434/v1",
			Model:       "llama3.2",
			APIKeyEnv:   "OPENAI_API_KEY",
			Temperature: 0.3,
			MaxTokens:   1024,
			TimeoutSecs: 30,
		},
		Server: ServerConfig{
			Host:               "127.0.0.1",
			Port:               8080,
			RequestTimeoutSecs: 60,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for carerag.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "carerag.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".carerag", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// KnowledgeRoot resolves the knowledge root against the project directory.
func (c *Config) KnowledgeRoot(dir string) string {
	if filepath.IsAbs(c.Knowledge.Root) {
		return c.Knowledge.Root
	}
	return filepath.Join(dir, c.Knowledge.Root)
}

func (k KnowledgeConfig) Debounce() time.Duration {
	return time.Duration(k.DebounceMs) * time.Millisecond
}

func (r RetrieveConfig) CacheTTL() time.Duration {
	return time.Duration(r.CacheTTLSecs) * time.Second
}

func (g GenerativeConfig) Timeout() time.Duration {
	return time.Duration(g.TimeoutSecs) * time.Second
}

func (s ServerConfig) RequestTimeout() time.Duration {
	return time.Duration(s.RequestTimeoutSecs) * time.Second
}
