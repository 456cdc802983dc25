package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLabel(t *testing.T) {
	for _, l := range Labels {
		got, err := ParseLabel(l.String())
		require.NoError(t, err)
		assert.Equal(t, l, got)
	}

	_, err := ParseLabel("ca")
	assert.ErrorIs(t, err, ErrUnknownLabel)

	_, err = ParseLabel("XX")
	assert.ErrorIs(t, err, ErrUnknownLabel)
}

func TestLabelFrequency(t *testing.T) {
	assert.InDelta(t, 0.3817, CA.Frequency(), 1e-12)
	assert.InDelta(t, 0.0999, DU.Frequency(), 1e-12)
	assert.Equal(t, 0.0, Label(42).Frequency())

	var sum float64
	for _, l := range Labels {
		sum += l.Frequency()
	}
	assert.InDelta(t, 1.0, sum, 1e-3)
}

func TestLabelText(t *testing.T) {
	b, err := OD1.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "OD1", string(b))

	var l Label
	require.NoError(t, l.UnmarshalText([]byte("NZ")))
	assert.Equal(t, NZ, l)

	assert.Error(t, l.UnmarshalText([]byte("??")))
	assert.Equal(t, "Label(9)", Label(9).String())
}

func TestNewPointSet(t *testing.T) {
	pts := []LabeledPoint{
		{Ordinal: 1, Label: CA, Coords: [3]float64{0, 0, 0}},
		{Ordinal: 2, Label: DU, Coords: [3]float64{1, 2, 3}},
	}
	ps, err := NewPointSet("a", pts)
	require.NoError(t, err)

	// Mutating the input must not leak into the set.
	pts[0].Label = OG
	assert.Equal(t, CA, ps.At(0).Label)
	assert.Equal(t, 2, ps.Len())
	assert.Equal(t, "a", ps.Name())
	assert.Equal(t, []Label{CA, DU}, ps.Labels())
	assert.Equal(t, [][]float64{{0, 0, 0}, {1, 2, 3}}, ps.Coords())

	comp := ps.Composition()
	assert.Equal(t, 1, comp[CA])
	assert.Equal(t, 1, comp[DU])

	_, err = NewPointSet("bad", []LabeledPoint{{Ordinal: 1, Label: Label(12)}})
	assert.ErrorIs(t, err, ErrUnknownLabel)

	var empty PointSet
	assert.True(t, empty.Empty())
}

func TestAssign(t *testing.T) {
	three := MustPointSet("three", make([]LabeledPoint, 3))
	two := MustPointSet("two", make([]LabeledPoint, 2))
	otherTwo := MustPointSet("other", make([]LabeledPoint, 2))

	t.Run("SourceLarger", func(t *testing.T) {
		fit, ref, swapped := Assign(three, two)
		assert.Equal(t, "two", fit.Name())
		assert.Equal(t, "three", ref.Name())
		assert.True(t, swapped)
	})

	t.Run("TargetLarger", func(t *testing.T) {
		fit, ref, swapped := Assign(two, three)
		assert.Equal(t, "two", fit.Name())
		assert.Equal(t, "three", ref.Name())
		assert.False(t, swapped)
	})

	t.Run("TieTargetIsRef", func(t *testing.T) {
		fit, ref, swapped := Assign(two, otherTwo)
		assert.Equal(t, "two", fit.Name())
		assert.Equal(t, "other", ref.Name())
		assert.False(t, swapped)
	})
}
