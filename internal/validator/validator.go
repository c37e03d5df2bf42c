package validator

import (
	"fmt"
	"sort"

	"github.com/arcanaland/ringside/internal/card"
)

// Deck names as they appear in violations.
const (
	DeckStarting = "starting"
	DeckPurchase = "purchase"
)

// Rule identifies a deck-construction rule.
type Rule string

const (
	RuleUnknownCard       Rule = "unknown_card"
	RuleKitCard           Rule = "kit_card"
	RuleCopyLimit         Rule = "copy_limit"
	RuleStartingCost      Rule = "starting_cost"
	RuleStartingCapacity  Rule = "starting_capacity"
	RuleStartingCopyLimit Rule = "starting_copy_limit"
	RulePurchaseCapacity  Rule = "purchase_capacity"
	RuleUnknownPersona    Rule = "unknown_persona"
	RulePersonaType       Rule = "persona_type"
)

// Rules are the configurable deck limits.
type Rules struct {
	StartingMaxSize   int `toml:"starting_max_size" env:"STARTING_MAX_SIZE"`
	StartingMaxCopies int `toml:"starting_max_copies" env:"STARTING_MAX_COPIES"`
	MaxCopies         int `toml:"max_copies" env:"MAX_COPIES"`
	PurchaseMaxSize   int `toml:"purchase_max_size" env:"PURCHASE_MAX_SIZE"` // 0 means no cap
}

// DefaultRules returns the base ruleset.
func DefaultRules() Rules {
	return Rules{
		StartingMaxSize:   24,
		StartingMaxCopies: 2,
		MaxCopies:         3,
	}
}

// Violation is a single broken rule.
type Violation struct {
	Rule    Rule
	Deck    string // empty when the rule spans both decks
	Title   string // empty for deck-wide rules
	Message string
}

func (v Violation) String() string {
	return v.Message
}

// Lookup resolves card titles.
type Lookup interface {
	Lookup(title string) (*card.Card, bool)
}

// Input is the deck state to check.
type Input struct {
	Starting []string
	Purchase []string
	Personas map[card.Type]string
}

type ValidationResults struct {
	Errors   []Violation
	Warnings []string
}

// Valid reports whether no rule is violated. Warnings do not count.
func (r ValidationResults) Valid() bool {
	return len(r.Errors) == 0
}

// Has reports whether rule appears among the errors.
func (r ValidationResults) Has(rule Rule) bool {
	for _, v := range r.Errors {
		if v.Rule == rule {
			return true
		}
	}
	return false
}

type Validator struct {
	Cards   Lookup
	Rules   Rules
	Results ValidationResults
}

func NewValidator(cards Lookup, rules Rules) *Validator {
	return &Validator{
		Cards: cards,
		Rules: rules,
	}
}

// Validate recomputes every rule from scratch against in. It keeps no state
// between calls.
func (v *Validator) Validate(in Input) ValidationResults {
	v.Results = ValidationResults{}

	v.validateCards(DeckStarting, in.Starting)
	v.validateCards(DeckPurchase, in.Purchase)
	v.validateStarting(in.Starting)
	v.validatePurchase(in.Purchase)
	v.validateCopies(in.Starting, in.Purchase)
	v.validatePersonas(in.Personas)

	return v.Results
}

func (v *Validator) addError(rule Rule, deck, title, format string, args ...any) {
	v.Results.Errors = append(v.Results.Errors, Violation{
		Rule:    rule,
		Deck:    deck,
		Title:   title,
		Message: fmt.Sprintf(format, args...),
	})
}

// validateCards checks that each distinct title resolves and is not a kit card.
func (v *Validator) validateCards(deck string, titles []string) {
	seen := make(map[string]bool)
	for _, title := range titles {
		k := card.Key(title)
		if seen[k] {
			continue
		}
		seen[k] = true

		c, ok := v.Cards.Lookup(title)
		if !ok {
			v.addError(RuleUnknownCard, deck, title, "%s deck: card not found: %s", deck, title)
			continue
		}
		if c.IsKit() {
			v.addError(RuleKitCard, deck, c.Title, "%s deck: kit card cannot be added manually: %s", deck, c.Title)
		}
		if c.IsPersona() {
			v.Results.Warnings = append(v.Results.Warnings,
				fmt.Sprintf("%s deck contains persona card %s", deck, c.Title))
		}
	}
}

// validateStarting checks size, per-title copies and zero cost.
func (v *Validator) validateStarting(titles []string) {
	if len(titles) > v.Rules.StartingMaxSize {
		v.addError(RuleStartingCapacity, DeckStarting, "",
			"starting deck has %d cards (max %d)", len(titles), v.Rules.StartingMaxSize)
	}

	for _, tc := range countTitles(titles) {
		if tc.count > v.Rules.StartingMaxCopies {
			v.addError(RuleStartingCopyLimit, DeckStarting, tc.title,
				"starting deck has %d copies of %s (max %d)", tc.count, tc.title, v.Rules.StartingMaxCopies)
		}
		c, ok := v.Cards.Lookup(tc.title)
		if ok && !c.HasZeroCost() {
			v.addError(RuleStartingCost, DeckStarting, c.Title,
				"starting deck card %s must cost 0 (cost %s)", c.Title, FormatCost(c.Cost))
		}
	}
}

func (v *Validator) validatePurchase(titles []string) {
	if v.Rules.PurchaseMaxSize > 0 && len(titles) > v.Rules.PurchaseMaxSize {
		v.addError(RulePurchaseCapacity, DeckPurchase, "",
			"purchase deck has %d cards (max %d)", len(titles), v.Rules.PurchaseMaxSize)
	}
}

// validateCopies checks the combined per-title limit across both decks.
func (v *Validator) validateCopies(starting, purchase []string) {
	all := make([]string, 0, len(starting)+len(purchase))
	all = append(all, starting...)
	all = append(all, purchase...)

	for _, tc := range countTitles(all) {
		if tc.count > v.Rules.MaxCopies {
			v.addError(RuleCopyLimit, "", tc.title,
				"%d copies of %s across both decks (max %d)", tc.count, tc.title, v.Rules.MaxCopies)
		}
	}
}

// validatePersonas checks that every selected title resolves to a persona
// card of the slot's type. Imported listings skip SelectPersona.
func (v *Validator) validatePersonas(personas map[card.Type]string) {
	for _, slot := range card.PersonaTypes() {
		title := personas[slot]
		if title == "" {
			continue
		}
		c, ok := v.Cards.Lookup(title)
		if !ok {
			v.addError(RuleUnknownPersona, "", title, "%s %s is not in the card database", slot, title)
			continue
		}
		if c.Type != slot {
			v.addError(RulePersonaType, "", c.Title, "%s slot holds %s, a %s card", slot, c.Title, c.Type)
		}
	}

	if personas[card.Wrestler] == "" {
		v.Results.Warnings = append(v.Results.Warnings, "no wrestler selected")
	}
}

type titleCount struct {
	title string
	count int
}

// countTitles counts titles case-insensitively, sorted by lookup key. The
// first spelling seen is reported.
func countTitles(titles []string) []titleCount {
	idx := make(map[string]int)
	var out []titleCount
	for _, t := range titles {
		k := card.Key(t)
		if i, ok := idx[k]; ok {
			out[i].count++
			continue
		}
		idx[k] = len(out)
		out = append(out, titleCount{title: t, count: 1})
	}
	sort.Slice(out, func(i, j int) bool {
		return card.Key(out[i].title) < card.Key(out[j].title)
	})
	return out
}

// FormatCost renders a cost for display, "N/A" when absent.
func FormatCost(cost *float64) string {
	if cost == nil {
		return "N/A"
	}
	return fmt.Sprintf("%g", *cost)
}
