// CLAUDE:SUMMARY YAML configuration for the processing pipeline with defaults.
package pipeline

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"
)

// Config configures the full processing pipeline.
type Config struct {
	// MaxInputSize caps any single document payload (default: 16 MiB).
	MaxInputSize int64 `yaml:"max_input_size"`

	OCR       OCRConfig       `yaml:"ocr"`
	Translate TranslateConfig `yaml:"translate"`

	Logger *slog.Logger `yaml:"-"`
}

// OCRConfig selects the recognition engines.
type OCRConfig struct {
	// Enabled turns on OCR for images and scanned PDFs.
	Enabled bool `yaml:"enabled"`

	// Tesseract enables the local Tesseract engine (default on when
	// Enabled).
	Tesseract *bool `yaml:"tesseract"`

	// RemoteEndpoint adds an HTTP recognition engine when set.
	RemoteEndpoint string `yaml:"remote_endpoint"`
	RemoteAPIKey   string `yaml:"remote_api_key"`

	// Parallelism bounds concurrent page recognition.
	Parallelism int `yaml:"parallelism"`
}

// TranslateConfig tunes the provider chain.
type TranslateConfig struct {
	LibreTranslateURL string   `yaml:"libretranslate_url"`
	MaxChunkChars     int      `yaml:"max_chunk_chars"`
	RatePerSec        float64  `yaml:"rate_per_sec"`
	DefaultSource     string   `yaml:"default_source"`
	GlossaryFiles     []string `yaml:"glossary_files"`
}

func (c *Config) defaults() {
	if c.MaxInputSize <= 0 {
		c.MaxInputSize = 16 << 20
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
}

// LoadConfig reads a YAML config file. A missing path yields the defaults.
func LoadConfig(path string) (*Config, error) {
	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.defaults()
	return &cfg, nil
}
