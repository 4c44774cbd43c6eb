package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DefaultRevealDelay = 1500 * time.Millisecond
	appDirName         = "quizzy"
	preferencesFile    = "preferences.json"
)

type Settings struct {
	CatalogPath     string
	PreferencesPath string
	DatabaseDSN     string
	RevealDelay     time.Duration
	Timezone        string
	LogLevel        string
	LogFormat       string
}

// LoadSettings reads an optional .env file and then the process environment.
// A missing .env is not an error.
func LoadSettings() (*Settings, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("erro ao carregar .env: %w", err)
	}
	return settingsFromEnv(os.Getenv)
}

func settingsFromEnv(getenv func(string) string) (*Settings, error) {
	s := &Settings{
		CatalogPath:     strings.TrimSpace(getenv("QUIZZY_CATALOG_PATH")),
		PreferencesPath: strings.TrimSpace(getenv("QUIZZY_PREFERENCES_PATH")),
		DatabaseDSN:     strings.TrimSpace(getenv("QUIZZY_DATABASE_DSN")),
		RevealDelay:     DefaultRevealDelay,
		Timezone:        strings.TrimSpace(getenv("QUIZZY_TIMEZONE")),
		LogLevel:        strings.TrimSpace(getenv("LOG_LEVEL")),
		LogFormat:       strings.TrimSpace(getenv("LOG_FORMAT")),
	}

	if raw := strings.TrimSpace(getenv("QUIZZY_REVEAL_DELAY")); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("QUIZZY_REVEAL_DELAY inválido %q: %w", raw, err)
		}
		if d < 0 {
			return nil, fmt.Errorf("QUIZZY_REVEAL_DELAY não pode ser negativo: %s", d)
		}
		s.RevealDelay = d
	}

	if s.PreferencesPath == "" {
		s.PreferencesPath = DefaultPreferencesPath()
	}

	return s, nil
}

// DefaultPreferencesPath falls back to the working directory when the user
// config dir cannot be resolved.
func DefaultPreferencesPath() string {
	dir, err := os.UserConfigDir()
	if err != nil || dir == "" {
		return filepath.Join(".", "."+appDirName, preferencesFile)
	}
	return filepath.Join(dir, appDirName, preferencesFile)
}
