package card

import (
	"math"
	"strconv"
	"strings"

	"github.com/arcanaland/ringside/internal/tsv"
)

// Field names a canonical card field.
type Field string

const (
	FieldName        Field = "name"
	FieldType        Field = "type"
	FieldCost        Field = "cost"
	FieldDamage      Field = "damage"
	FieldMomentum    Field = "momentum"
	FieldText        Field = "text"
	FieldStartingFor Field = "starting for"
	FieldKit         Field = "kit"
	FieldSet         Field = "set"
)

// Aliases maps each canonical field to the normalized headers that may carry
// it, highest priority first. Supporting a new spreadsheet convention means
// adding an entry here.
type Aliases map[Field][]string

// DefaultAliases returns the header aliases seen across the known exports.
func DefaultAliases() Aliases {
	return Aliases{
		FieldName:        {"name", "card name", "title"},
		FieldType:        {"type", "card type"},
		FieldCost:        {"cost"},
		FieldDamage:      {"damage"},
		FieldMomentum:    {"momentum"},
		FieldText:        {"game text", "text", "card text"},
		FieldStartingFor: {"starting for", "signature for", "starter for"},
		FieldKit:         {"wrestler kit", "kit", "is kit"},
		FieldSet:         {"set"},
	}
}

// displaySuffixes are bookkeeping suffixes some exports append to persona
// names. At most one is stripped.
var displaySuffixes = []string{" call name", " wrestler", " manager", " faction"}

// falsy are the flag values treated as false after lower-casing.
var falsy = map[string]bool{
	"":          true,
	"false":     true,
	"0":         true,
	"n/a":       true,
	"na":        true,
	"null":      true,
	"undefined": true,
}

// Truthy reports whether a flag-like cell is set.
func Truthy(v string) bool {
	return !falsy[strings.ToLower(strings.TrimSpace(v))]
}

// ParseNumber returns a pointer to the parsed value, or nil when v is not a
// finite number. It never fails.
func ParseNumber(v string) *float64 {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// SplitPersonas splits a "starting for" cell on commas, slashes and
// semicolons. Empty segments and case-insensitive repeats are dropped.
func SplitPersonas(v string) []string {
	parts := strings.FieldsFunc(v, func(r rune) bool {
		return r == ',' || r == '/' || r == ';'
	})

	var out []string
	seen := make(map[string]bool, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" || seen[Key(p)] {
			continue
		}
		seen[Key(p)] = true
		out = append(out, p)
	}
	return out
}

// DisplayName strips one trailing bookkeeping suffix, so "Bobby Lashley
// Wrestler" becomes "Bobby Lashley". A name that is only a suffix is kept.
func DisplayName(name string) string {
	name = strings.TrimSpace(name)
	for _, suffix := range displaySuffixes {
		if len(name) >= len(suffix) && strings.EqualFold(name[len(name)-len(suffix):], suffix) {
			stripped := strings.TrimSpace(name[:len(name)-len(suffix)])
			if stripped != "" {
				return stripped
			}
			return name
		}
	}
	return name
}

// Mapper resolves canonical fields from normalized rows.
type Mapper struct {
	aliases Aliases
	known   map[string]bool
}

// NewMapper returns a Mapper using aliases. A nil map selects DefaultAliases.
func NewMapper(aliases Aliases) *Mapper {
	if aliases == nil {
		aliases = DefaultAliases()
	}
	m := &Mapper{aliases: make(Aliases, len(aliases)), known: make(map[string]bool)}
	for field, headers := range aliases {
		normalized := make([]string, 0, len(headers))
		for _, h := range headers {
			h = tsv.NormalizeHeader(h)
			normalized = append(normalized, h)
			m.known[h] = true
		}
		m.aliases[field] = normalized
	}
	return m
}

// resolve returns the value of the first alias with a non-empty cell in
// the row. An empty cell falls through to the next alias.
func (m *Mapper) resolve(row tsv.Row, f Field) string {
	for _, h := range m.aliases[f] {
		if v := strings.TrimSpace(row.Fields[h]); v != "" {
			return v
		}
	}
	return ""
}

// Map builds a classified card from row. It reports false when the row has
// no name, which happens for spreadsheet blank-row artifacts.
func (m *Mapper) Map(row tsv.Row, sourceFile string) (*Card, bool) {
	name := m.resolve(row, FieldName)
	if strings.TrimSpace(name) == "" {
		return nil, false
	}

	rawType := m.resolve(row, FieldType)
	c := &Card{
		Title:       DisplayName(name),
		SourceName:  name,
		Type:        ParseType(rawType),
		RawType:     rawType,
		Cost:        ParseNumber(m.resolve(row, FieldCost)),
		Damage:      ParseNumber(m.resolve(row, FieldDamage)),
		Momentum:    ParseNumber(m.resolve(row, FieldMomentum)),
		Text:        m.resolve(row, FieldText),
		StartingFor: SplitPersonas(m.resolve(row, FieldStartingFor)),
		KitFlag:     Truthy(m.resolve(row, FieldKit)),
		Set:         m.resolve(row, FieldSet),
		SourceFile:  sourceFile,
		Line:        row.Line,
	}

	for h, v := range row.Fields {
		if m.known[h] {
			continue
		}
		if c.Extra == nil {
			c.Extra = make(map[string]string)
		}
		c.Extra[h] = v
	}

	c.Class = Classify(c)
	return c, true
}

// MapTable maps every row of table, returning the cards in row order and the
// number of rows dropped for having no name.
func (m *Mapper) MapTable(table *tsv.Table, sourceFile string) ([]*Card, int) {
	cards := make([]*Card, 0, len(table.Rows))
	dropped := 0
	for _, row := range table.Rows {
		c, ok := m.Map(row, sourceFile)
		if !ok {
			dropped++
			continue
		}
		cards = append(cards, c)
	}
	return cards, dropped
}
