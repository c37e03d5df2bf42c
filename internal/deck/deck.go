// Package deck implements the deck-building session: two decks, persona
// selection, legality checks and statistics.
package deck

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/arcanaland/ringside/internal/card"
	"github.com/arcanaland/ringside/internal/validator"
)

// Name identifies one of the two decks.
type Name string

const (
	Starting Name = validator.DeckStarting
	Purchase Name = validator.DeckPurchase
)

// ParseName resolves a deck name case-insensitively.
func ParseName(s string) (Name, error) {
	switch Name(strings.ToLower(strings.TrimSpace(s))) {
	case Starting:
		return Starting, nil
	case Purchase:
		return Purchase, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDeck, s)
}

// Catalog is the read-only card database a session consults.
type Catalog interface {
	Lookup(title string) (*card.Card, bool)
	KitFor(persona string) []*card.Card
}

// State is a snapshot of a session's mutable contents.
type State struct {
	Personas map[card.Type]string
	Starting []string
	Purchase []string
}

// Session owns the decks and persona selection for one deck-building run.
// All methods are safe for concurrent use; each mutation is checked and
// committed under one lock.
type Session struct {
	ID string

	cards  Catalog
	rules  validator.Rules
	logger *zap.Logger

	mu       sync.Mutex
	starting []string
	purchase []string
	personas map[card.Type]string
}

// NewSession starts an empty session. A nil logger discards output.
func NewSession(cards Catalog, rules validator.Rules, logger *zap.Logger) *Session {
	if logger == nil {
		logger = zap.NewNop()
	}
	id := ulid.Make().String()
	return &Session{
		ID:       id,
		cards:    cards,
		rules:    rules,
		logger:   logger.With(zap.String("session", id)),
		personas: make(map[card.Type]string),
	}
}

// Rules returns the limits the session enforces.
func (s *Session) Rules() validator.Rules {
	return s.rules
}

func (s *Session) deck(name Name) (*[]string, error) {
	switch name {
	case Starting:
		return &s.starting, nil
	case Purchase:
		return &s.purchase, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDeck, name)
}

func countOf(titles []string, key string) int {
	n := 0
	for _, t := range titles {
		if card.Key(t) == key {
			n++
		}
	}
	return n
}

// AddCard appends title to the target deck after checking every rule that
// applies to it. On rejection the deck is unchanged.
func (s *Session) AddCard(title string, target Name) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := s.addLocked(title, target)
	if err != nil {
		s.logger.Debug("Add rejected",
			zap.String("title", title), zap.String("deck", string(target)), zap.Error(err))
		return err
	}
	s.logger.Debug("Card added", zap.String("title", title), zap.String("deck", string(target)))
	return nil
}

func (s *Session) addLocked(title string, target Name) error {
	d, err := s.deck(target)
	if err != nil {
		return err
	}

	c, ok := s.cards.Lookup(title)
	if !ok {
		return fmt.Errorf("%w: %s", ErrCardNotFound, title)
	}
	if c.IsKit() {
		return fmt.Errorf("%w: %s", ErrKitCard, c.Title)
	}

	key := card.Key(c.Title)
	total := countOf(s.starting, key) + countOf(s.purchase, key)
	if total+1 > s.rules.MaxCopies {
		return fmt.Errorf("%w: %s already has %d copies (max %d)", ErrCopyLimit, c.Title, total, s.rules.MaxCopies)
	}

	switch target {
	case Starting:
		if !c.HasZeroCost() {
			return fmt.Errorf("%w: %s costs %s", ErrCostRestriction, c.Title, validator.FormatCost(c.Cost))
		}
		if len(s.starting) >= s.rules.StartingMaxSize {
			return fmt.Errorf("%w: starting deck has %d cards", ErrCapacity, len(s.starting))
		}
		if n := countOf(s.starting, key); n+1 > s.rules.StartingMaxCopies {
			return fmt.Errorf("%w: %s already has %d copies (max %d)", ErrStartingCopyLimit, c.Title, n, s.rules.StartingMaxCopies)
		}
	case Purchase:
		if s.rules.PurchaseMaxSize > 0 && len(s.purchase) >= s.rules.PurchaseMaxSize {
			return fmt.Errorf("%w: purchase deck has %d cards", ErrCapacity, len(s.purchase))
		}
	}

	*d = append(*d, c.Title)
	return nil
}

// RemoveCard removes the most recently added copy of title from the named
// deck. It reports whether a copy was removed; a missing card is not an error.
func (s *Session) RemoveCard(title string, from Name) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.deck(from)
	if err != nil {
		return false, err
	}

	key := card.Key(title)
	for i := len(*d) - 1; i >= 0; i-- {
		if card.Key((*d)[i]) == key {
			*d = append((*d)[:i], (*d)[i+1:]...)
			s.logger.Debug("Card removed", zap.String("title", title), zap.String("deck", string(from)))
			return true, nil
		}
	}
	return false, nil
}

// Clear empties both decks. Persona selection is kept.
func (s *Session) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.starting = nil
	s.purchase = nil
	s.logger.Debug("Decks cleared")
}

// Cards returns a copy of the named deck in insertion order.
func (s *Session) Cards(name Name) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.deck(name)
	if err != nil {
		return nil, err
	}
	return append([]string(nil), (*d)...), nil
}

// SelectPersona makes title the selected persona of its type, replacing any
// earlier choice of that type.
func (s *Session) SelectPersona(title string) (*card.Card, error) {
	c, ok := s.cards.Lookup(title)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrCardNotFound, title)
	}
	if !c.IsPersona() {
		return nil, fmt.Errorf("%w: %s is a %s", ErrNotPersona, c.Title, c.Type)
	}

	s.mu.Lock()
	s.personas[c.Type] = c.Title
	s.mu.Unlock()

	s.logger.Debug("Persona selected", zap.String("type", c.Type.String()), zap.String("title", c.Title))
	return c, nil
}

// ClearPersona drops the selection for t.
func (s *Session) ClearPersona(t card.Type) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.personas, t)
}

// Persona returns the selected persona title of type t, or "".
func (s *Session) Persona(t card.Type) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.personas[t]
}

// KitCards returns the kit cards of every selected persona, sorted by title.
func (s *Session) KitCards() []*card.Card {
	s.mu.Lock()
	selected := make([]string, 0, len(s.personas))
	for _, p := range s.personas {
		selected = append(selected, p)
	}
	s.mu.Unlock()

	seen := make(map[*card.Card]bool)
	var out []*card.Card
	for _, p := range selected {
		for _, c := range s.cards.KitFor(p) {
			if !seen[c] {
				seen[c] = true
				out = append(out, c)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Title < out[j].Title })
	return out
}

// State returns a snapshot of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stateLocked()
}

func (s *Session) stateLocked() State {
	st := State{
		Personas: make(map[card.Type]string, len(s.personas)),
		Starting: append([]string(nil), s.starting...),
		Purchase: append([]string(nil), s.purchase...),
	}
	for t, p := range s.personas {
		st.Personas[t] = p
	}
	return st
}

// Restore replaces the session contents with st without checking rules.
// Titles that resolve are stored under their canonical spelling. Call
// Validate afterwards to find out whether the restored decks are legal.
func (s *Session) Restore(st State) {
	canonical := func(title string) string {
		if c, ok := s.cards.Lookup(title); ok {
			return c.Title
		}
		return title
	}

	personas := make(map[card.Type]string)
	for t, p := range st.Personas {
		if p != "" {
			personas[t] = canonical(p)
		}
	}
	var starting, purchase []string
	for _, t := range st.Starting {
		starting = append(starting, canonical(t))
	}
	for _, t := range st.Purchase {
		purchase = append(purchase, canonical(t))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.personas = personas
	s.starting = starting
	s.purchase = purchase
}

// Validate recomputes every legality rule from the current decks.
func (s *Session) Validate() validator.ValidationResults {
	st := s.State()
	return validator.NewValidator(s.cards, s.rules).Validate(validator.Input{
		Starting: st.Starting,
		Purchase: st.Purchase,
		Personas: st.Personas,
	})
}
