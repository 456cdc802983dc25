package metric

import (
	"math/rand"
	"testing"

	"github.com/kimeguida/ProCare/match"
	"github.com/kimeguida/ProCare/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func scenarioStats(t *testing.T) match.Statistics {
	t.Helper()
	source := model.MustPointSet("source", []model.LabeledPoint{
		{Ordinal: 1, Label: model.CA, Coords: [3]float64{0, 0, 0}},
		{Ordinal: 2, Label: model.CA, Coords: [3]float64{1, 0, 0}},
		{Ordinal: 3, Label: model.DU, Coords: [3]float64{5, 5, 5}},
	})
	target := model.MustPointSet("target", []model.LabeledPoint{
		{Ordinal: 1, Label: model.CA, Coords: [3]float64{0, 0, 0.2}},
		{Ordinal: 2, Label: model.DU, Coords: [3]float64{5, 5, 5.1}},
	})
	stats, err := match.Compare(match.Strict, source, target, match.DefaultConfig())
	require.NoError(t, err)
	return stats
}

func TestScenarioScores(t *testing.T) {
	s := scenarioStats(t)

	got, err := Compute(s, DefaultTverskyAlpha, DefaultTverskyBeta)
	require.NoError(t, err)

	// n=2 fit=2 ref=3
	want := Scores{
		Tanimoto:      0.6667,
		Tversky:       0.9756, // 2 / (0 + 0.05 + 2)
		Cosine:        0.8165, // 2 / sqrt(6)
		Dice:          0.8,
		PerScore:      1,
		WeightedScore: 6.3149, // (1/0.3817 + 1/0.0999) / 2
		Hamming:       1,
		Soergel:       0.3333,
	}
	assert.Equal(t, want, got)
}

func TestSelfSimilarity(t *testing.T) {
	s := match.Statistics{Identity: 40, FitSize: 40, RefSize: 40}
	s.Counts[model.CA] = 40

	got, err := Compute(s, DefaultTverskyAlpha, DefaultTverskyBeta)
	require.NoError(t, err)
	assert.Equal(t, 1.0, got.Tanimoto)
	assert.Equal(t, 1.0, got.Tversky)
	assert.Equal(t, 1.0, got.Cosine)
	assert.Equal(t, 1.0, got.Dice)
	assert.Equal(t, 1.0, got.PerScore)
	assert.Equal(t, 0.0, got.Hamming)
	assert.Equal(t, 0.0, got.Soergel)
}

func TestTverskyAsymmetry(t *testing.T) {
	s := match.Statistics{Identity: 10, FitSize: 20, RefSize: 50}
	swapped := match.Statistics{Identity: 10, FitSize: 50, RefSize: 20}

	a, err := Tversky(s, DefaultTverskyAlpha, DefaultTverskyBeta)
	require.NoError(t, err)
	b, err := Tversky(swapped, DefaultTverskyAlpha, DefaultTverskyBeta)
	require.NoError(t, err)
	assert.NotEqual(t, a, b)

	// Symmetric measures are unaffected by the role swap.
	for _, fn := range []func(match.Statistics) (float64, error){Tanimoto, Cosine, Dice, Hamming, Soergel} {
		x, err := fn(s)
		require.NoError(t, err)
		y, err := fn(swapped)
		require.NoError(t, err)
		assert.Equal(t, x, y)
	}

	// Equal weights make Tversky the Dice coefficient.
	tv, err := Tversky(s, 0.5, 0.5)
	require.NoError(t, err)
	dice, err := Dice(s)
	require.NoError(t, err)
	assert.Equal(t, dice, tv)
}

func TestEmptyFit(t *testing.T) {
	s := match.Statistics{RefSize: 10}

	fns := map[string]func(match.Statistics) (float64, error){
		"tanimoto": Tanimoto,
		"cosine":   Cosine,
		"dice":     Dice,
		"per":      PerScore,
		"weighted": WeightedScore,
		"hamming":  Hamming,
		"soergel":  Soergel,
	}
	for name, fn := range fns {
		t.Run(name, func(t *testing.T) {
			_, err := fn(s)
			assert.ErrorIs(t, err, ErrDivisionUndefined)
		})
	}

	_, err := Tversky(s, DefaultTverskyAlpha, DefaultTverskyBeta)
	assert.ErrorIs(t, err, ErrDivisionUndefined)

	_, err = Compute(s, DefaultTverskyAlpha, DefaultTverskyBeta)
	assert.ErrorIs(t, err, ErrDivisionUndefined)

	// Zero weights with no identity leave nothing to divide by.
	_, err = Tversky(match.Statistics{FitSize: 3, RefSize: 3}, 0, 0)
	assert.ErrorIs(t, err, ErrDivisionUndefined)
}

func TestNoMatches(t *testing.T) {
	s := match.Statistics{FitSize: 5, RefSize: 8}
	got, err := Compute(s, DefaultTverskyAlpha, DefaultTverskyBeta)
	require.NoError(t, err)
	assert.Equal(t, Scores{Hamming: 13, Soergel: 1}, got)
}

func TestBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(4))
	for range 200 {
		fit := 1 + rng.Intn(100)
		ref := fit + rng.Intn(100)
		n := rng.Float64() * float64(fit)
		s := match.Statistics{Identity: n, FitSize: fit, RefSize: ref}

		got, err := Compute(s, DefaultTverskyAlpha, DefaultTverskyBeta)
		require.NoError(t, err)
		for _, v := range []float64{got.Tanimoto, got.Tversky, got.Cosine, got.Dice, got.PerScore, got.Soergel} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 1.0)
		}
		assert.GreaterOrEqual(t, got.Hamming, 0.0)
	}
}
