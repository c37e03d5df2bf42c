package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"

	"github.com/arcanaland/ringside/internal/validator"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "RINGSIDE_"

// deckExt is the extension of deck listings in the library.
const deckExt = ".txt"

// Config represents the application configuration
type Config struct {
	CardFiles   []string        `toml:"card_files" env:"CARD_FILES"`
	DefaultDeck string          `toml:"default_deck" env:"DEFAULT_DECK"`
	Rules       validator.Rules `toml:"rules" envPrefix:"RULES_"`
}

// Default returns the configuration written on first run.
func Default() *Config {
	return &Config{
		DefaultDeck: "default",
		Rules:       validator.DefaultRules(),
	}
}

// Validate checks that the rules are usable.
func (c *Config) Validate() error {
	r := c.Rules
	if r.StartingMaxSize < 1 || r.StartingMaxCopies < 1 || r.MaxCopies < 1 {
		return fmt.Errorf("invalid rules: starting_max_size, starting_max_copies and max_copies must be positive")
	}
	if r.PurchaseMaxSize < 0 {
		return fmt.Errorf("invalid rules: purchase_max_size must not be negative")
	}
	return nil
}

// GetXDGDataHome returns XDG_DATA_HOME or default path
func GetXDGDataHome() string {
	if xdgData := os.Getenv("XDG_DATA_HOME"); xdgData != "" {
		return xdgData
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".local", "share")
}

// GetXDGConfigHome returns XDG_CONFIG_HOME or default path
func GetXDGConfigHome() string {
	if xdgConfig := os.Getenv("XDG_CONFIG_HOME"); xdgConfig != "" {
		return xdgConfig
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, ".config")
}

// GetDeckLibraryPath returns the path to the deck library
func GetDeckLibraryPath() string {
	return filepath.Join(GetXDGDataHome(), "ringside", "decks")
}

// GetConfigFilePath returns the path to the config file
func GetConfigFilePath() string {
	return filepath.Join(GetXDGConfigHome(), "ringside", "config.toml")
}

// LoadConfig loads the config file, creating it with defaults if missing,
// then applies RINGSIDE_* environment overrides.
func LoadConfig() (*Config, error) {
	configPath := GetConfigFilePath()

	config := Default()
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		if err := writeConfig(configPath, config); err != nil {
			return nil, err
		}
	} else if _, err := toml.DecodeFile(configPath, config); err != nil {
		return nil, fmt.Errorf("error decoding config file: %w", err)
	}

	if err := env.ParseWithOptions(config, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// writeConfig encodes config as TOML at path, creating parent directories.
func writeConfig(path string, config *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating config file: %w", err)
	}
	defer file.Close()

	if err := toml.NewEncoder(file).Encode(config); err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	return nil
}

// GetDeckPath returns the listing path for a deck name. Names that look
// like paths are used as given; anything else lives in the deck library.
func GetDeckPath(deckName string) string {
	if strings.ContainsRune(deckName, filepath.Separator) || strings.HasSuffix(deckName, deckExt) {
		return deckName
	}
	return filepath.Join(GetDeckLibraryPath(), deckName+deckExt)
}

// ListDecks returns the deck names in the library, sorted.
func ListDecks() ([]string, error) {
	entries, err := os.ReadDir(GetDeckLibraryPath())
	if err != nil {
		return nil, err
	}

	var names []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != deckExt {
			continue
		}
		names = append(names, strings.TrimSuffix(entry.Name(), deckExt))
	}
	return names, nil
}

// GetDefaultDeck returns the default deck name from config
func GetDefaultDeck() (string, error) {
	config, err := LoadConfig()
	if err != nil {
		return "", err
	}

	return config.DefaultDeck, nil
}

// SetDefaultDeck sets the default deck in the config
func SetDefaultDeck(deckName string) error {
	configPath := GetConfigFilePath()

	config := Default()
	if _, err := os.Stat(configPath); err == nil {
		if _, err := toml.DecodeFile(configPath, config); err != nil {
			return fmt.Errorf("error decoding config file: %w", err)
		}
	}

	config.DefaultDeck = deckName
	return writeConfig(configPath, config)
}
