package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the settings book-journal needs to reach the reading
// tracker service and to persist local state.
type Config struct {
	APIBaseURL string
	ReaderPath string
	LogPath    string
}

const (
	defaultConfigPath = "~/.config/bookjournal/config.toml"
	defaultReaderPath = "~/.config/bookjournal/reader.toml"
	defaultLogPath    = "~/.local/state/bookjournal/bookjournal.log"
	defaultAPIBaseURL = "http://localhost:3000/api"

	// EnvAPIBaseURL overrides the configured api_url when set.
	EnvAPIBaseURL = "BOOKJOURNAL_API_URL"
)

// Load locates and parses the book-journal config, falling back to defaults
// when missing. The BOOKJOURNAL_API_URL environment variable wins over the
// api_url field.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		APIBaseURL: defaultAPIBaseURL,
		ReaderPath: mustExpand(defaultReaderPath),
		LogPath:    mustExpand(defaultLogPath),
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			applyEnv(&cfg)
			return cfg, nil
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL     string `toml:"api_url"`
		ReaderPath string `toml:"reader_path"`
		LogPath    string `toml:"log_path"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if apiURL := strings.TrimSpace(raw.APIURL); apiURL != "" {
		cfg.APIBaseURL = apiURL
	}
	if readerPath := strings.TrimSpace(raw.ReaderPath); readerPath != "" {
		cfg.ReaderPath = mustExpand(readerPath)
	}
	if logPath := strings.TrimSpace(raw.LogPath); logPath != "" {
		cfg.LogPath = mustExpand(logPath)
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	if fromEnv := strings.TrimSpace(os.Getenv(EnvAPIBaseURL)); fromEnv != "" {
		cfg.APIBaseURL = fromEnv
	}
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
