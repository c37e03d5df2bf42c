package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/ringside/internal/validator"
)

func setHomes(t *testing.T) (configHome, dataHome string) {
	t.Helper()
	configHome = t.TempDir()
	dataHome = t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("XDG_DATA_HOME", dataHome)
	return configHome, dataHome
}

func TestLoadConfig_CreatesDefault(t *testing.T) {
	configHome, _ := setHomes(t)

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "default", cfg.DefaultDeck)
	assert.Equal(t, validator.DefaultRules(), cfg.Rules)

	_, err = os.Stat(filepath.Join(configHome, "ringside", "config.toml"))
	assert.NoError(t, err)
}

func TestLoadConfig_FileAndEnv(t *testing.T) {
	configHome, _ := setHomes(t)

	path := filepath.Join(configHome, "ringside", "config.toml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`
card_files = ["a.tsv", "b.tsv"]
default_deck = "tag-team"

[rules]
starting_max_size = 30
starting_max_copies = 2
max_copies = 3
purchase_max_size = 40
`), 0o644))

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"a.tsv", "b.tsv"}, cfg.CardFiles)
	assert.Equal(t, "tag-team", cfg.DefaultDeck)
	assert.Equal(t, 30, cfg.Rules.StartingMaxSize)
	assert.Equal(t, 40, cfg.Rules.PurchaseMaxSize)

	t.Setenv("RINGSIDE_CARD_FILES", "x.tsv,y.tsv")
	t.Setenv("RINGSIDE_RULES_MAX_COPIES", "4")

	cfg, err = LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, []string{"x.tsv", "y.tsv"}, cfg.CardFiles)
	assert.Equal(t, 4, cfg.Rules.MaxCopies)
	assert.Equal(t, 30, cfg.Rules.StartingMaxSize, "unset variables keep file values")
}

func TestLoadConfig_InvalidRules(t *testing.T) {
	setHomes(t)
	t.Setenv("RINGSIDE_RULES_MAX_COPIES", "0")

	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestSetDefaultDeck(t *testing.T) {
	setHomes(t)

	require.NoError(t, SetDefaultDeck("heel-turn"))
	name, err := GetDefaultDeck()
	require.NoError(t, err)
	assert.Equal(t, "heel-turn", name)
}

func TestGetDeckPath(t *testing.T) {
	_, dataHome := setHomes(t)

	assert.Equal(t, filepath.Join(dataHome, "ringside", "decks", "main.txt"), GetDeckPath("main"))
	assert.Equal(t, "./decks/main.txt", GetDeckPath("./decks/main.txt"))
	assert.Equal(t, "main.txt", GetDeckPath("main.txt"))
}

func TestListDecks(t *testing.T) {
	setHomes(t)

	_, err := ListDecks()
	assert.ErrorIs(t, err, os.ErrNotExist)

	lib := GetDeckLibraryPath()
	require.NoError(t, os.MkdirAll(lib, 0o755))
	for _, name := range []string{"b.txt", "a.txt", "notes.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(lib, name), nil, 0o644))
	}

	names, err := ListDecks()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, names)
}
