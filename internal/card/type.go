package card

import "strings"

// Type is the canonical card type.
type Type int

const (
	Unknown Type = iota
	Wrestler
	Manager
	CallName
	Faction
	Action
	Response
	Submission
	Strike
	Grapple
	Boon
	Injury
)

var typeNames = map[Type]string{
	Unknown:    "Unknown",
	Wrestler:   "Wrestler",
	Manager:    "Manager",
	CallName:   "Call Name",
	Faction:    "Faction",
	Action:     "Action",
	Response:   "Response",
	Submission: "Submission",
	Strike:     "Strike",
	Grapple:    "Grapple",
	Boon:       "Boon",
	Injury:     "Injury",
}

// String returns the display form of the type.
func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return typeNames[Unknown]
}

// Types lists every known type except Unknown, in declaration order.
func Types() []Type {
	return []Type{Wrestler, Manager, CallName, Faction, Action, Response, Submission, Strike, Grapple, Boon, Injury}
}

// PersonaTypes lists the types that anchor a deck.
func PersonaTypes() []Type {
	return []Type{Wrestler, Manager, CallName, Faction}
}

// IsPersona reports whether t is one of the persona types.
func (t Type) IsPersona() bool {
	switch t {
	case Wrestler, Manager, CallName, Faction:
		return true
	}
	return false
}

// IsManeuver reports whether t deals damage in play.
func (t Type) IsManeuver() bool {
	switch t {
	case Strike, Grapple, Submission:
		return true
	}
	return false
}

// typeKey folds a type string to letters only, lower-cased, so that
// "Call Name", "call_name" and "CALLNAME" all compare equal.
func typeKey(s string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(s) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

var typesByKey = func() map[string]Type {
	m := make(map[string]Type, len(typeNames))
	for t, name := range typeNames {
		if t != Unknown {
			m[typeKey(name)] = t
		}
	}
	return m
}()

// ParseType canonicalizes a type string. Unrecognized values map to Unknown.
func ParseType(s string) Type {
	if t, ok := typesByKey[typeKey(s)]; ok {
		return t
	}
	return Unknown
}

// MarshalText encodes the display form, so types read well as JSON map keys.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

// UnmarshalText canonicalizes text with ParseType.
func (t *Type) UnmarshalText(b []byte) error {
	*t = ParseType(string(b))
	return nil
}
