package deck

import "errors"

// Rejections from deck mutations. The deck is left unchanged whenever one of
// these is returned.
var (
	ErrCardNotFound      = errors.New("card not found")
	ErrKitCard           = errors.New("kit cards cannot be added manually")
	ErrCopyLimit         = errors.New("copy limit reached")
	ErrCostRestriction   = errors.New("starting deck cards must cost 0")
	ErrCapacity          = errors.New("deck is full")
	ErrStartingCopyLimit = errors.New("starting deck copy limit reached")
	ErrNotPersona        = errors.New("card is not a persona")
	ErrUnknownDeck       = errors.New("unknown deck")
	ErrMalformedExport   = errors.New("malformed deck listing")
)
