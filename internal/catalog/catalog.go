// Package catalog holds the read-only card database for a session and the
// case-insensitive title index every other component looks cards up through.
package catalog

import (
	"sort"

	"github.com/arcanaland/ringside/internal/card"
)

// Collision records two cards whose titles share a lookup key.
// The later card in load order wins the index entry.
type Collision struct {
	Key    string
	Lost   *card.Card
	Winner *card.Card
}

// Database is the canonical card list plus its title index.
type Database struct {
	cards      []*card.Card
	index      map[string]*card.Card
	collisions []Collision
}

// New builds a database from cards in load order.
func New(cards []*card.Card) *Database {
	db := &Database{cards: cards}
	db.Reindex()
	return db
}

// Reindex rebuilds the title index from the card list. When two cards share a
// title case-insensitively the later one wins and the pair is recorded in
// Collisions.
func (db *Database) Reindex() {
	db.index = make(map[string]*card.Card, len(db.cards))
	db.collisions = nil
	for _, c := range db.cards {
		k := card.Key(c.Title)
		if prev, ok := db.index[k]; ok {
			db.collisions = append(db.collisions, Collision{Key: k, Lost: prev, Winner: c})
		}
		db.index[k] = c
	}
}

// Lookup resolves a title case-insensitively.
func (db *Database) Lookup(title string) (*card.Card, bool) {
	c, ok := db.index[card.Key(title)]
	return c, ok
}

// Cards returns every loaded card in load order, including shadowed duplicates.
func (db *Database) Cards() []*card.Card {
	return db.cards
}

// Len returns the number of distinct lookup keys.
func (db *Database) Len() int {
	return len(db.index)
}

// Collisions returns the title collisions found by the last Reindex.
func (db *Database) Collisions() []Collision {
	return db.collisions
}

// indexed returns the cards that won their index entry, sorted by title.
func (db *Database) indexed(keep func(*card.Card) bool) []*card.Card {
	var out []*card.Card
	for _, c := range db.index {
		if keep(c) {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return card.Key(out[i].Title) < card.Key(out[j].Title)
	})
	return out
}

// Pool returns the cards that may be picked into the purchase deck.
func (db *Database) Pool() []*card.Card {
	return db.indexed(func(c *card.Card) bool { return c.PoolEligible() })
}

// PersonasOf returns the persona cards of type t.
func (db *Database) PersonasOf(t card.Type) []*card.Card {
	return db.indexed(func(c *card.Card) bool { return c.IsPersona() && c.Type == t })
}

// Kits returns every kit or starter card.
func (db *Database) Kits() []*card.Card {
	return db.indexed(func(c *card.Card) bool { return c.IsKit() })
}

// KitFor returns the kit cards that start with persona.
func (db *Database) KitFor(persona string) []*card.Card {
	return db.indexed(func(c *card.Card) bool { return c.IsKit() && c.StartsWith(persona) })
}
