package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"cardscan/internal/logger"
)

type Config struct {
	// OCR Engine Configuration
	OCREngine    string // "tesseract" or "vision"
	OCRLanguages []string
	PageSegMode  int
	EngineMode   int

	// Preprocessing Configuration
	ScanStrategy string // "binarized", "raw" or "best"

	// Logging Configuration
	LogLevel      string
	LogFormat     string
	LogTimeFormat string
	LogOutput     string
}

func Load() (*Config, error) {
	config := &Config{
		OCREngine:     getEnv("OCR_ENGINE", "tesseract"),
		OCRLanguages:  splitList(getEnv("OCR_LANGUAGES", "chi_tra,eng")),
		PageSegMode:   getEnvInt("OCR_PAGE_SEG_MODE", 6),
		EngineMode:    getEnvInt("OCR_ENGINE_MODE", 1),
		ScanStrategy:  getEnv("SCAN_STRATEGY", "binarized"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		LogFormat:     getEnv("LOG_FORMAT", "console"),
		LogTimeFormat: getEnv("LOG_TIME_FORMAT", "2006-01-02T15:04:05Z07:00"),
		LogOutput:     getEnv("LOG_OUTPUT", "stderr"),
	}

	if err := config.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return config, nil
}

func (c *Config) validate() error {
	switch c.OCREngine {
	case "tesseract", "vision":
	default:
		return fmt.Errorf("OCR_ENGINE must be \"tesseract\" or \"vision\", got %q", c.OCREngine)
	}
	switch c.ScanStrategy {
	case "binarized", "raw", "best":
	default:
		return fmt.Errorf("SCAN_STRATEGY must be \"binarized\", \"raw\" or \"best\", got %q", c.ScanStrategy)
	}
	if len(c.OCRLanguages) == 0 {
		return fmt.Errorf("OCR_LANGUAGES must list at least one language")
	}
	if c.PageSegMode < 0 || c.PageSegMode > 13 {
		return fmt.Errorf("OCR_PAGE_SEG_MODE must be between 0 and 13, got %d", c.PageSegMode)
	}
	return nil
}

// GetLoggerConfig returns a logger configuration from the main config
func (c *Config) GetLoggerConfig() logger.LogConfig {
	return logger.LogConfig{
		Level:      c.LogLevel,
		Format:     c.LogFormat,
		TimeFormat: c.LogTimeFormat,
		Output:     c.LogOutput,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
