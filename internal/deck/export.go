package deck

import (
	"bufio"
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/arcanaland/ringside/internal/card"
)

// exportPersonas are the persona lines in listing order. Wrestler and Manager
// are always written; the others only when selected.
var exportPersonas = []struct {
	label  string
	typ    card.Type
	always bool
}{
	{"Wrestler", card.Wrestler, true},
	{"Manager", card.Manager, true},
	{"Call Name", card.CallName, false},
	{"Faction", card.Faction, false},
}

const noPersona = "None"

var (
	startingHeader = regexp.MustCompile(`^--- Starting Deck \((\d+)(?:/(\d+))?\) ---$`)
	purchaseHeader = regexp.MustCompile(`^--- Purchase Deck \((\d+)\) ---$`)
	countLine      = regexp.MustCompile(`^(\d+)x (.+)$`)
	kitLine        = regexp.MustCompile(`^Kit\d+:`)
)

// Export renders the session as a plain-text deck listing.
func (s *Session) Export() string {
	return FormatExport(s.State(), s.KitCards(), s.rules.StartingMaxSize)
}

// FormatExport renders st as a deck listing. Kit lines list kits in the
// order given. Titles within each deck are counted and sorted.
func FormatExport(st State, kits []*card.Card, startingMax int) string {
	var b strings.Builder

	for _, p := range exportPersonas {
		title := st.Personas[p.typ]
		if title == "" {
			if !p.always {
				continue
			}
			title = noPersona
		}
		fmt.Fprintf(&b, "%s: %s\n", p.label, title)
	}

	for i, k := range kits {
		fmt.Fprintf(&b, "Kit%d: %s\n", i+1, k.Title)
	}

	fmt.Fprintf(&b, "--- Starting Deck (%d/%d) ---\n", len(st.Starting), startingMax)
	writeCounts(&b, st.Starting)
	fmt.Fprintf(&b, "--- Purchase Deck (%d) ---\n", len(st.Purchase))
	writeCounts(&b, st.Purchase)

	return b.String()
}

func writeCounts(b *strings.Builder, titles []string) {
	counts := make(map[string]int)
	for _, t := range titles {
		counts[t]++
	}
	sorted := make([]string, 0, len(counts))
	for t := range counts {
		sorted = append(sorted, t)
	}
	sort.Strings(sorted)
	for _, t := range sorted {
		fmt.Fprintf(b, "%dx %s\n", counts[t], t)
	}
}

// ParseExport reads a listing produced by FormatExport. Kit lines are
// skipped since kits follow from the personas. Each deck comes back grouped
// by title in listing order.
func ParseExport(text string) (State, error) {
	st := State{Personas: make(map[card.Type]string)}

	var current *[]string
	scanner := bufio.NewScanner(strings.NewReader(text))
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if startingHeader.MatchString(line) {
			current = &st.Starting
			continue
		}
		if purchaseHeader.MatchString(line) {
			current = &st.Purchase
			continue
		}

		if current != nil {
			m := countLine.FindStringSubmatch(line)
			if m == nil {
				return State{}, fmt.Errorf("%w: line %d: expected \"<count>x <title>\", got %q", ErrMalformedExport, lineNo, line)
			}
			n, err := strconv.Atoi(m[1])
			if err != nil || n < 1 {
				return State{}, fmt.Errorf("%w: line %d: bad count %q", ErrMalformedExport, lineNo, m[1])
			}
			title := strings.TrimSpace(m[2])
			for i := 0; i < n; i++ {
				*current = append(*current, title)
			}
			continue
		}

		if kitLine.MatchString(line) {
			continue
		}
		if !parsePersonaLine(st.Personas, line) {
			return State{}, fmt.Errorf("%w: line %d: unexpected %q", ErrMalformedExport, lineNo, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return State{}, fmt.Errorf("%w: %v", ErrMalformedExport, err)
	}

	return st, nil
}

func parsePersonaLine(personas map[card.Type]string, line string) bool {
	label, value, ok := strings.Cut(line, ":")
	if !ok {
		return false
	}
	label = strings.TrimSpace(label)
	value = strings.TrimSpace(value)
	for _, p := range exportPersonas {
		if strings.EqualFold(label, p.label) {
			if value != "" && value != noPersona {
				personas[p.typ] = value
			}
			return true
		}
	}
	return false
}
