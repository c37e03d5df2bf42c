// Package card defines the canonical card record and how spreadsheet rows
// become classified cards.
package card

import (
	"strings"
)

// Card represents a single card from the card database.
// Cards are built once at load time and never mutated afterwards.
type Card struct {
	Title       string   // Display name, bookkeeping suffix stripped
	SourceName  string   // Name exactly as it appeared in the source row
	Type        Type     // Canonical card type
	RawType     string   // Type cell as it appeared in the source row
	Cost        *float64 // nil when absent or not a finite number
	Damage      *float64
	Momentum    *float64
	Text        string   // Rules text
	StartingFor []string // Persona titles this card starts with, in source order
	KitFlag     bool     // Explicit kit marker
	Set         string
	SourceFile  string
	Line        int

	// Extra holds columns that matched no alias, keyed by normalized header.
	Extra map[string]string

	Class Classification
}

// Key is the lookup form of a title: trimmed and lower-cased.
// Suffix stripping never happens here.
func Key(title string) string {
	return strings.ToLower(strings.TrimSpace(title))
}

// IsPersona reports whether the card anchors a deck.
func (c *Card) IsPersona() bool { return c.Class.IsPersona }

// IsKit reports whether the card is granted automatically rather than picked.
func (c *Card) IsKit() bool { return c.Class.IsKit }

// IsStarter reports whether the card starts with at least one persona.
func (c *Card) IsStarter() bool { return c.Class.IsStarter }

// PoolEligible reports whether the card may be picked into the purchase deck.
func (c *Card) PoolEligible() bool { return c.Class.PoolEligible }

// StartsWith reports whether persona appears in StartingFor, ignoring case.
func (c *Card) StartsWith(persona string) bool {
	k := Key(persona)
	for _, p := range c.StartingFor {
		if Key(p) == k {
			return true
		}
	}
	return false
}

// HasZeroCost reports whether the card has a cost of exactly zero.
func (c *Card) HasZeroCost() bool {
	return c.Cost != nil && *c.Cost == 0
}

// Target returns the "Target" trait annotated in the rules text, if any.
// Traits are written as "Target: Head" or "Target = Head" and end at the
// next period, semicolon or line break.
func (c *Card) Target() string {
	lower := strings.ToLower(c.Text)
	i := strings.Index(lower, "target")
	if i < 0 {
		return ""
	}
	rest := strings.TrimLeft(c.Text[i+len("target"):], " ")
	if rest == "" || (rest[0] != ':' && rest[0] != '=') {
		return ""
	}
	rest = rest[1:]
	if j := strings.IndexAny(rest, ".;\n"); j >= 0 {
		rest = rest[:j]
	}
	return strings.TrimSpace(rest)
}
