package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/arcanaland/ringside/internal/card"
	"github.com/arcanaland/ringside/internal/tsv"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const personasTSV = "Name\tType\tCost\nBobby Lashley Wrestler\tWrestler\t\nMVP Manager\tManager\t\n"

const cardsTSV = "Card Name\tType\tCost\tDamage\tMomentum\tStarting For\tWrestler Kit\n" +
	"Fireball\tAction\t0\t\t1\t\t\n" +
	"Spear\tStrike\t0\t4\t2\tBobby Lashley\t\n" +
	"Hurt Lock\tSubmission\t3\t5\t\t\tyes\n" +
	"Clothesline\tStrike\t1\t2\t1\t\tfalse\n"

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestDB(t *testing.T) *Database {
	t.Helper()
	l := NewLoader(nil, nil)
	a, err := l.Parse([]byte(personasTSV), "personas.tsv")
	require.NoError(t, err)
	b, err := l.Parse([]byte(cardsTSV), "cards.tsv")
	require.NoError(t, err)
	return New(append(a, b...))
}

func TestLookupCaseInsensitive(t *testing.T) {
	db := newTestDB(t)

	for _, q := range []string{"fireball", "FIREBALL", "  Fireball "} {
		c, ok := db.Lookup(q)
		require.True(t, ok, "lookup %q", q)
		assert.Equal(t, "Fireball", c.Title)
	}

	c, ok := db.Lookup("bobby lashley")
	require.True(t, ok)
	assert.Equal(t, card.Wrestler, c.Type)

	_, ok = db.Lookup("Bobby Lashley Wrestler")
	assert.False(t, ok, "lookups must not strip display suffixes")
}

func TestViews(t *testing.T) {
	db := newTestDB(t)

	titles := func(cards []*card.Card) []string {
		var out []string
		for _, c := range cards {
			out = append(out, c.Title)
		}
		return out
	}

	assert.Equal(t, []string{"Clothesline", "Fireball"}, titles(db.Pool()))
	assert.Equal(t, []string{"Bobby Lashley"}, titles(db.PersonasOf(card.Wrestler)))
	assert.Equal(t, []string{"MVP"}, titles(db.PersonasOf(card.Manager)))
	assert.Equal(t, []string{"Hurt Lock", "Spear"}, titles(db.Kits()))
	assert.Equal(t, []string{"Spear"}, titles(db.KitFor("BOBBY LASHLEY")))
	assert.Empty(t, db.KitFor("MVP"))
}

func TestCollisionLaterWins(t *testing.T) {
	first := &card.Card{Title: "Fireball", Type: card.Action, SourceFile: "a.tsv"}
	second := &card.Card{Title: "FIREBALL", Type: card.Strike, SourceFile: "b.tsv"}
	db := New([]*card.Card{first, second})

	c, ok := db.Lookup("fireball")
	require.True(t, ok)
	assert.Same(t, second, c)
	assert.Equal(t, 1, db.Len())
	assert.Len(t, db.Cards(), 2)
	require.Len(t, db.Collisions(), 1)
	assert.Same(t, first, db.Collisions()[0].Lost)
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	p1 := writeFile(t, dir, "personas.tsv", personasTSV)
	p2 := writeFile(t, dir, "cards.tsv", cardsTSV)
	p3 := writeFile(t, dir, "errata.tsv", "Name\tType\tCost\nFireball\tAction\t2\n")

	db, err := NewLoader(nil, nil).LoadFiles(context.Background(), p1, p2, p3)
	require.NoError(t, err)

	c, ok := db.Lookup("Fireball")
	require.True(t, ok)
	require.NotNil(t, c.Cost)
	assert.Equal(t, 2.0, *c.Cost, "later file wins")
	assert.Equal(t, p3, c.SourceFile)
	assert.Len(t, db.Collisions(), 1)
}

func TestLoadFiles_Failures(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "cards.tsv", cardsTSV)
	empty := writeFile(t, dir, "empty.tsv", "\n  \n")

	_, err := NewLoader(nil, nil).LoadFiles(context.Background(), good, empty)
	assert.ErrorIs(t, err, tsv.ErrMalformedInput)

	_, err = NewLoader(nil, nil).LoadFiles(context.Background(), good, filepath.Join(dir, "missing.tsv"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = NewLoader(nil, nil).LoadFiles(context.Background())
	assert.ErrorIs(t, err, tsv.ErrMalformedInput)
}

func TestLoadFiles_Canceled(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "cards.tsv", cardsTSV)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewLoader(nil, nil).LoadFiles(ctx, good)
	assert.ErrorIs(t, err, context.Canceled)
}
