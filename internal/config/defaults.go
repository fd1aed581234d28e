package config

// ApplyDefaults sets default values for any zero values in cfg.
func ApplyDefaults(cfg *Config) {
	if cfg.Telegram.APIBaseURL == "" {
		cfg.Telegram.APIBaseURL = "https://api.telegram.org"
	}
	if cfg.Telegram.PollTimeoutSeconds == 0 {
		cfg.Telegram.PollTimeoutSeconds = 30
	}
	if cfg.Telegram.Webhook.Host == "" {
		cfg.Telegram.Webhook.Host = "0.0.0.0"
	}
	if cfg.Telegram.Webhook.Port == 0 {
		cfg.Telegram.Webhook.Port = 3000
	}
	if cfg.Disk.BaseURL == "" {
		cfg.Disk.BaseURL = "https://cloud-api.yandex.net/v1/disk"
	}
	if cfg.Disk.BaseFolder == "" {
		cfg.Disk.BaseFolder = "/"
	}
	if cfg.AI.BaseURL == "" {
		cfg.AI.BaseURL = "https://openrouter.ai/api/v1"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "google/gemma-2-9b-it:free"
	}
	if cfg.AI.Temperature == 0 {
		cfg.AI.Temperature = 0.3
	}
	if cfg.AI.MaxTokens == 0 {
		cfg.AI.MaxTokens = 350
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = 30
	}
	if cfg.AI.MaxRetries == 0 {
		cfg.AI.MaxRetries = 3
	}
	if cfg.Search.IndexPath == "" {
		cfg.Search.IndexPath = "./data/cache/file_index.json"
	}
	if cfg.Search.Limit == 0 {
		cfg.Search.Limit = 3
	}
}
