package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseType(t *testing.T) {
	tests := []struct {
		in   string
		want Type
	}{
		{"Wrestler", Wrestler},
		{"manager", Manager},
		{"Call Name", CallName},
		{"call_name", CallName},
		{"CALLNAME", CallName},
		{"Faction", Faction},
		{"Action", Action},
		{"response", Response},
		{"Submission", Submission},
		{"Strike", Strike},
		{"Grapple", Grapple},
		{"Boon", Boon},
		{"Injury", Injury},
		{"", Unknown},
		{"Kit", Unknown},
		{"Spell", Unknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseType(tt.in), "ParseType(%q)", tt.in)
	}
}

func TestTypeStringRoundTrip(t *testing.T) {
	for _, typ := range Types() {
		assert.Equal(t, typ, ParseType(typ.String()))
	}
	assert.Equal(t, "Unknown", Type(99).String())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		card Card
		want Classification
	}{
		{
			name: "pool action",
			card: Card{Type: Action},
			want: Classification{PoolEligible: true},
		},
		{
			name: "wrestler persona",
			card: Card{Type: Wrestler},
			want: Classification{IsPersona: true},
		},
		{
			name: "call name persona",
			card: Card{Type: CallName},
			want: Classification{IsPersona: true},
		},
		{
			name: "explicit kit",
			card: Card{Type: Strike, KitFlag: true},
			want: Classification{IsKit: true},
		},
		{
			name: "starter implies kit",
			card: Card{Type: Action, StartingFor: []string{"Bobby Lashley"}},
			want: Classification{IsKit: true, IsStarter: true},
		},
		{
			name: "unknown type still pool",
			card: Card{Type: Unknown, RawType: "Spell"},
			want: Classification{PoolEligible: true},
		},
		{
			name: "unknown type kit",
			card: Card{Type: Unknown, KitFlag: true},
			want: Classification{IsKit: true},
		},
		{
			name: "persona with starting for",
			card: Card{Type: Manager, StartingFor: []string{"X"}},
			want: Classification{IsPersona: true, IsKit: true, IsStarter: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := tt.card
			got := Classify(&c)
			assert.Equal(t, tt.want, got)

			c.Class = got
			assert.Equal(t, got, Classify(&c), "classification must be idempotent")
			assert.False(t, got.IsPersona && got.PoolEligible)
			if got.IsKit {
				assert.False(t, got.PoolEligible)
			}
		})
	}
}
