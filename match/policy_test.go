package match

import (
	"testing"

	"github.com/kimeguida/ProCare/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePolicy(t *testing.T) {
	tests := []struct {
		in   string
		want Policy
	}{
		{"strict", Strict},
		{"ph4_strict", Strict},
		{"soft", SoftNearest},
		{"ph4_soft", SoftNearest},
		{"rules", RulesCompatible},
		{"ph4_rules", RulesCompatible},
		{"radius", RadiusAny},
		{"ph4_ext", RadiusAny},
		{" Strict ", Strict},
	}
	for _, tt := range tests {
		got, err := ParsePolicy(tt.in)
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}

	_, err := ParsePolicy("fuzzy")
	assert.ErrorIs(t, err, ErrUnknownPolicy)
}

func TestPolicyNames(t *testing.T) {
	for _, p := range Policies {
		back, err := ParsePolicy(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, back)

		back, err = ParsePolicy(p.ColumnName())
		require.NoError(t, err)
		assert.Equal(t, p, back)
	}
	assert.Equal(t, "Unknown(9)", Policy(9).String())
	assert.Empty(t, Policy(9).ColumnName())
}

func TestPolicyText(t *testing.T) {
	b, err := RadiusAny.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "radius", string(b))

	var p Policy
	require.NoError(t, p.UnmarshalText([]byte("ph4_rules")))
	assert.Equal(t, RulesCompatible, p)

	_, err = Policy(-1).MarshalText()
	assert.Error(t, err)
}

func TestCompatible(t *testing.T) {
	tests := []struct {
		fit  model.Label
		refs []model.Label
	}{
		{model.CA, []model.Label{model.CA, model.CZ}},
		{model.CZ, []model.Label{model.CZ, model.CA}},
		{model.N, []model.Label{model.N, model.NZ, model.OG}},
		{model.NZ, []model.Label{model.NZ, model.N, model.OG}},
		{model.O, []model.Label{model.O, model.OD1, model.OG}},
		{model.OD1, []model.Label{model.OD1, model.O, model.OG}},
		{model.OG, []model.Label{model.OG, model.N, model.O, model.NZ, model.OD1}},
		{model.DU, []model.Label{model.DU}},
	}
	for _, tt := range tests {
		allowed := map[model.Label]bool{}
		for _, r := range tt.refs {
			allowed[r] = true
		}
		for _, ref := range model.Labels {
			assert.Equal(t, allowed[ref], Compatible(tt.fit, ref), "%s~%s", tt.fit, ref)
			assert.Equal(t, Compatible(tt.fit, ref), Compatible(ref, tt.fit), "symmetry %s~%s", tt.fit, ref)
		}
	}
	assert.False(t, Compatible(model.Label(12), model.CA))
}
