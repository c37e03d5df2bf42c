package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arcanaland/ringside/internal/deck"
)

const cliCards = "Name\tType\tCost\tDamage\tMomentum\tStarting For\n" +
	"Bobby Lashley Wrestler\tWrestler\t\t\t\t\n" +
	"Fireball\tAction\t0\t\t1\t\n" +
	"Haymaker\tStrike\t3\t5\t1\t\n" +
	"Spear\tStrike\t0\t4\t2\tBobby Lashley\n"

func run(t *testing.T, args ...string) error {
	t.Helper()
	RootCmd.SetArgs(args)
	return RootCmd.Execute()
}

func TestDeckWorkflow(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	cardsPath := filepath.Join(t.TempDir(), "cards.tsv")
	require.NoError(t, os.WriteFile(cardsPath, []byte(cliCards), 0o644))
	deckPath := filepath.Join(t.TempDir(), "mine.txt")

	common := []string{"--cards", cardsPath, "--deck", deckPath}

	require.NoError(t, run(t, append([]string{"deck", "persona", "bobby lashley"}, common...)...))
	require.NoError(t, run(t, append([]string{"deck", "add", "fireball", "--to", "starting", "--copies", "2"}, common...)...))
	require.NoError(t, run(t, append([]string{"deck", "add", "Haymaker", "--to", "purchase", "--copies", "1"}, common...)...))

	err := run(t, append([]string{"deck", "add", "Haymaker", "--to", "starting", "--copies", "1"}, common...)...)
	assert.ErrorIs(t, err, deck.ErrCostRestriction)

	err = run(t, append([]string{"deck", "add", "Spear", "--to", "purchase", "--copies", "1"}, common...)...)
	assert.ErrorIs(t, err, deck.ErrKitCard)

	data, err := os.ReadFile(deckPath)
	require.NoError(t, err)
	assert.Equal(t, "Wrestler: Bobby Lashley\n"+
		"Manager: None\n"+
		"Kit1: Spear\n"+
		"--- Starting Deck (2/24) ---\n"+
		"2x Fireball\n"+
		"--- Purchase Deck (1) ---\n"+
		"1x Haymaker\n", string(data))

	require.NoError(t, run(t, append([]string{"validate"}, common...)...))
	require.NoError(t, run(t, append([]string{"stats", "--json"}, common...)...))

	require.NoError(t, run(t, append([]string{"deck", "rm", "Haymaker", "--to", "purchase"}, common...)...))
	data, err = os.ReadFile(deckPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "--- Purchase Deck (0) ---\n")

	for _, n := range []string{"0", "-1"} {
		err = run(t, append([]string{"deck", "add", "Fireball", "--to", "starting", "--copies", n}, common...)...)
		assert.ErrorContains(t, err, "--copies must be at least 1")
	}
	after, err := os.ReadFile(deckPath)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(after))
}

func TestDeckNew(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	dataHome := t.TempDir()
	t.Setenv("XDG_DATA_HOME", dataHome)

	require.NoError(t, run(t, "deck", "new", "fresh"))

	path := filepath.Join(dataHome, "ringside", "decks", "fresh.txt")
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Wrestler: None\n"+
		"Manager: None\n"+
		"--- Starting Deck (0/24) ---\n"+
		"--- Purchase Deck (0) ---\n", string(data))

	state, err := deck.ParseExport(string(data))
	require.NoError(t, err)
	assert.Empty(t, state.Starting)
	assert.Empty(t, state.Purchase)

	require.NoError(t, os.WriteFile(path, []byte("Wrestler: Bobby Lashley\n"), 0o644))
	assert.ErrorContains(t, run(t, "deck", "new", "fresh"), "already exists")

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Wrestler: Bobby Lashley\n", string(data))
}

func TestWrapText(t *testing.T) {
	assert.Equal(t, []string{""}, wrapText("", 20))
	assert.Equal(t, []string{"one two", "three"}, wrapText("one two three", 10))
}

func TestSortedCosts(t *testing.T) {
	got := sortedCosts(map[string]int{"N/A": 1, "10": 1, "2": 1, "0": 1})
	assert.Equal(t, []string{"0", "2", "10", "N/A"}, got)
}

func TestBar(t *testing.T) {
	assert.Equal(t, "", bar(1, 0, 10))
	assert.Equal(t, "█████", bar(1, 2, 10))
}
