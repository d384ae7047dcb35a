package app

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const apiKeyEnv = "APP_GEMINI_API_KEY"

type Config struct {
	GeminiAPIKey    string  `yaml:"gemini_api_key"`
	BaseURL         string  `yaml:"base_url"`
	Model           string  `yaml:"model"`
	MaxOutputTokens int     `yaml:"max_output_tokens"`
	Temperature     float64 `yaml:"temperature"`
	ThinkingBudget  int     `yaml:"thinking_budget"`
	Storage         string  `yaml:"storage"` // file|sqlite
	StorageRoot     string  `yaml:"storage_root"`
}

func DefaultConfig() Config {
	return Config{
		BaseURL:         "https://generativelanguage.googleapis.com/v1beta",
		Model:           "gemini-3-pro-preview",
		MaxOutputTokens: 8192,
		Temperature:     0.7,
		ThinkingBudget:  32768,
		Storage:         "file",
		StorageRoot:     DefaultStorageRoot(),
	}
}

func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		cfg.applyEnv()
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			cfg.applyEnv()
			return cfg, nil
		}
		return cfg, err
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://generativelanguage.googleapis.com/v1beta"
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-3-pro-preview"
	}
	if cfg.MaxOutputTokens <= 0 {
		cfg.MaxOutputTokens = 8192
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = 0.7
	}
	if cfg.Storage == "" {
		cfg.Storage = "file"
	}
	if cfg.StorageRoot == "" {
		cfg.StorageRoot = DefaultStorageRoot()
	}
	cfg.applyEnv()
	return cfg, nil
}

// applyEnv fills the key from the environment when the file leaves it unset,
// matching the deployment convention of the hosted original.
func (c *Config) applyEnv() {
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		c.GeminiAPIKey = strings.TrimSpace(os.Getenv(apiKeyEnv))
	}
}

func SaveConfig(cfg Config, path string) error {
	if path == "" {
		return errors.New("no path provided for config")
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

func DefaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(base, "faceless-studio", "config.yml")
}

// DefaultStorageRoot prefers the XDG data dir, then ~/.local/share, then tmp.
func DefaultStorageRoot() string {
	if base := strings.TrimSpace(os.Getenv("XDG_DATA_HOME")); base != "" {
		return filepath.Join(base, "faceless-studio")
	}
	if base, err := os.UserHomeDir(); err == nil && base != "" {
		return filepath.Join(base, ".local", "share", "faceless-studio")
	}
	return filepath.Join(os.TempDir(), "faceless-studio")
}
