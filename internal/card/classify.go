package card

// Classification holds the facets derived from a card's raw fields.
type Classification struct {
	IsPersona    bool
	IsKit        bool
	IsStarter    bool
	PoolEligible bool
}

// Classify derives the classification from raw fields only, so calling it
// again on an already classified card gives the same result.
//
// A card listed as starting for any persona is kit territory even when the
// kit flag is not set.
func Classify(c *Card) Classification {
	var cl Classification
	cl.IsPersona = c.Type.IsPersona()
	cl.IsStarter = len(c.StartingFor) > 0
	cl.IsKit = c.KitFlag || cl.IsStarter
	cl.PoolEligible = !cl.IsPersona && !cl.IsKit
	return cl
}
