package deck

import (
	"github.com/arcanaland/ringside/internal/card"
	"github.com/arcanaland/ringside/internal/validator"
)

// Statistics summarizes both decks.
type Statistics struct {
	Total    int `json:"total"`
	Starting int `json:"starting"`
	Purchase int `json:"purchase"`
	Unique   int `json:"unique"`

	// CostDistribution is keyed by the formatted cost, "N/A" when absent.
	CostDistribution map[string]int    `json:"cost_distribution"`
	TypeDistribution map[card.Type]int `json:"type_distribution"`

	// AverageMomentum covers non-persona cards with a momentum value.
	AverageMomentum float64 `json:"average_momentum"`
	// AverageDamage covers strikes, grapples and submissions with a damage value.
	AverageDamage float64 `json:"average_damage"`
}

// Statistics computes deck statistics over every card in both decks.
// Titles missing from the catalog count toward the totals only.
func (s *Session) Statistics() Statistics {
	st := s.State()

	stats := Statistics{
		Starting:         len(st.Starting),
		Purchase:         len(st.Purchase),
		CostDistribution: make(map[string]int),
		TypeDistribution: make(map[card.Type]int),
	}
	stats.Total = stats.Starting + stats.Purchase

	var momentum, damage mean
	unique := make(map[string]bool)

	for _, titles := range [][]string{st.Starting, st.Purchase} {
		for _, title := range titles {
			unique[card.Key(title)] = true

			c, ok := s.cards.Lookup(title)
			if !ok {
				continue
			}
			stats.CostDistribution[validator.FormatCost(c.Cost)]++
			stats.TypeDistribution[c.Type]++

			if !c.IsPersona() && c.Momentum != nil {
				momentum.add(*c.Momentum)
			}
			if c.Type.IsManeuver() && c.Damage != nil {
				damage.add(*c.Damage)
			}
		}
	}

	stats.Unique = len(unique)
	stats.AverageMomentum = momentum.value()
	stats.AverageDamage = damage.value()
	return stats
}

type mean struct {
	sum float64
	n   int
}

func (m *mean) add(v float64) {
	m.sum += v
	m.n++
}

// value is 0 over an empty set.
func (m *mean) value() float64 {
	if m.n == 0 {
		return 0
	}
	return m.sum / float64(m.n)
}
