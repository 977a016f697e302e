package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultConfigPath     = "config.yaml"
	defaultOutputDir      = "./output"
	defaultGeminiModel    = "gemini-2.5-flash"
	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-sonnet-4-20250514"
	defaultMistralModel   = "mistral-small-latest"
	defaultGroqModel      = "llama-3.3-70b-versatile"
	defaultImageModel     = "dall-e-3"
	defaultImageSize      = "1024x1024"
	defaultGCSPrefix      = "scripts"
)

type Config struct {
	Models  ModelsConfig  `yaml:"models"`
	Image   ImageConfig   `yaml:"image"`
	Output  OutputConfig  `yaml:"output"`
	GCS     GCSConfig     `yaml:"gcs"`
	Secrets SecretsConfig `yaml:"secrets"`
}

// ModelsConfig selects the model used on each text provider.
type ModelsConfig struct {
	Gemini    string `yaml:"gemini"`
	OpenAI    string `yaml:"openai"`
	Anthropic string `yaml:"anthropic"`
	Mistral   string `yaml:"mistral"`
	Groq      string `yaml:"groq"`
}

type ImageConfig struct {
	Model string `yaml:"model"`
	Size  string `yaml:"size"`
}

type OutputConfig struct {
	Dir string `yaml:"dir"`
}

// GCSConfig mirrors generated artifacts to a bucket when enabled.
type GCSConfig struct {
	Enabled bool   `yaml:"enabled"`
	Bucket  string `yaml:"bucket"`
	Prefix  string `yaml:"prefix"`
}

// SecretsConfig enables reading credentials from GCP Secret Manager
// in addition to the local keystore.
type SecretsConfig struct {
	Project string `yaml:"project"`
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, relying on environment variables")
	}

	cfg := &Config{}
	loadYAMLConfig(cfg)
	applyDefaults(cfg)

	if cfg.Secrets.Project == "" {
		cfg.Secrets.Project = os.Getenv("SCRIPTFORGE_SECRETS_PROJECT")
	}
	if bucket := os.Getenv("SCRIPTFORGE_GCS_BUCKET"); bucket != "" {
		cfg.GCS.Enabled = true
		cfg.GCS.Bucket = bucket
	}

	return cfg
}

func loadYAMLConfig(cfg *Config) {
	data, err := os.ReadFile(defaultConfigPath)
	if err != nil {
		slog.Debug("No config.yaml found, using defaults")
		return
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		slog.Error("Failed to parse config.yaml", "error", err)
	}
}

func applyDefaults(cfg *Config) {
	applyModelDefaults(cfg)
	applyImageDefaults(cfg)
	applyOutputDefaults(cfg)
	applyGCSDefaults(cfg)
}

func applyModelDefaults(cfg *Config) {
	if cfg.Models.Gemini == "" {
		cfg.Models.Gemini = defaultGeminiModel
	}
	if cfg.Models.OpenAI == "" {
		cfg.Models.OpenAI = defaultOpenAIModel
	}
	if cfg.Models.Anthropic == "" {
		cfg.Models.Anthropic = defaultAnthropicModel
	}
	if cfg.Models.Mistral == "" {
		cfg.Models.Mistral = defaultMistralModel
	}
	if cfg.Models.Groq == "" {
		cfg.Models.Groq = defaultGroqModel
	}
}

func applyImageDefaults(cfg *Config) {
	if cfg.Image.Model == "" {
		cfg.Image.Model = defaultImageModel
	}
	if cfg.Image.Size == "" {
		cfg.Image.Size = defaultImageSize
	}
}

func applyOutputDefaults(cfg *Config) {
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = defaultOutputDir
	}
}

func applyGCSDefaults(cfg *Config) {
	if cfg.GCS.Prefix == "" {
		cfg.GCS.Prefix = defaultGCSPrefix
	}
}

// TextModels returns the model map keyed by text provider identifier.
func (c *Config) TextModels() map[string]string {
	return map[string]string{
		"gemini":    c.Models.Gemini,
		"openai":    c.Models.OpenAI,
		"anthropic": c.Models.Anthropic,
		"mistral":   c.Models.Mistral,
		"groq":      c.Models.Groq,
	}
}

// Model returns the configured model for a text provider identifier.
func (c *Config) Model(providerID string) string {
	switch providerID {
	case "gemini":
		return c.Models.Gemini
	case "openai":
		return c.Models.OpenAI
	case "anthropic":
		return c.Models.Anthropic
	case "mistral":
		return c.Models.Mistral
	case "groq":
		return c.Models.Groq
	}
	return ""
}
