// Package config provides configuration loading and structs for the hdlbot service.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the application.
type Config struct {
	Debug    bool           `yaml:"debug"`
	Telegram TelegramConfig `yaml:"telegram"`
	Disk     DiskConfig     `yaml:"disk"`
	AI       AIConfig       `yaml:"ai"`
	Search   SearchConfig   `yaml:"search"`
}

// TelegramConfig holds Bot API credentials and chat routing.
type TelegramConfig struct {
	Token string `yaml:"token"`
	// APIBaseURL allows pointing at a local Bot API server in tests.
	APIBaseURL string `yaml:"api_base_url"`
	// SupportChatID is the group chat that receives support tickets.
	SupportChatID int64 `yaml:"support_chat_id"`
	// SupportURL is the direct-contact link shown when ticket delivery fails.
	SupportURL string  `yaml:"support_url"`
	CoursesURL string  `yaml:"courses_url"`
	AdminIDs   []int64 `yaml:"admin_ids"`
	// BroadcastIDs are the chats an admin broadcast is delivered to.
	BroadcastIDs []int64 `yaml:"broadcast_ids"`
	// PollTimeoutSeconds is the getUpdates long-poll timeout.
	PollTimeoutSeconds int           `yaml:"poll_timeout_seconds"`
	Webhook            WebhookConfig `yaml:"webhook"`
}

// WebhookConfig enables webhook mode when BaseURL is set; otherwise the bot long-polls.
type WebhookConfig struct {
	BaseURL string `yaml:"base_url"`
	Host    string `yaml:"host"`
	Port    int    `yaml:"port"`
}

// DiskConfig holds the documentation drive API settings.
type DiskConfig struct {
	Token      string `yaml:"token"`
	BaseURL    string `yaml:"base_url"`
	BaseFolder string `yaml:"base_folder"`
	// DocsPublicKey is the public key embedded into docs viewer URLs.
	DocsPublicKey string `yaml:"docs_public_key"`
	// PublicFolderURL is the browsable root of the shared documentation folder.
	PublicFolderURL string `yaml:"public_folder_url"`
}

// AIConfig holds the hosted chat-completion service settings.
type AIConfig struct {
	APIKey         string  `yaml:"api_key"`
	BaseURL        string  `yaml:"base_url"`
	Model          string  `yaml:"model"`
	Referer        string  `yaml:"referer"`
	Title          string  `yaml:"title"`
	Temperature    float64 `yaml:"temperature"`
	MaxTokens      int     `yaml:"max_tokens"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	MaxRetries     int     `yaml:"max_retries"`
}

// SearchConfig holds file-index and result-limit settings.
type SearchConfig struct {
	IndexPath string `yaml:"index_path"`
	// Limit is the maximum number of results shown to the user.
	Limit int `yaml:"limit"`
}

// Load reads and parses the config file at path, applies defaults, expands the
// index path relative to the config directory, and picks up secret overrides
// from the environment. Returns an error if the file cannot be read or parsed.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	ApplyDefaults(&cfg)
	applyEnvOverrides(&cfg)

	configDir := filepath.Dir(path)
	cfg.Search.IndexPath = expandPath(cfg.Search.IndexPath, configDir)

	return &cfg, nil
}

// applyEnvOverrides lets secrets come from the environment instead of the
// config file, so config.yaml can be committed without credentials.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HDLBOT_TELEGRAM_TOKEN"); v != "" {
		cfg.Telegram.Token = v
	}
	if v := os.Getenv("HDLBOT_DISK_TOKEN"); v != "" {
		cfg.Disk.Token = v
	}
	if v := os.Getenv("HDLBOT_AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
}

// expandPath converts a path to absolute. Paths starting with "./" are relative
// to configDir; other relative paths are relative to the home directory.
func expandPath(path string, configDir string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	if strings.HasPrefix(path, "./") || path == "." {
		return filepath.Join(configDir, path)
	}
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, path)
	}
	return path
}
