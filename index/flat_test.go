package index

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimeguida/ProCare/model"
)

func TestFlatMatchesTree(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	points := randomPoints(rng, 250, 3, 15)
	queries := randomPoints(rng, 40, 3, 15)

	tree, err := New(points)
	require.NoError(t, err)
	flat, err := NewFlat(points)
	require.NoError(t, err)
	assert.Equal(t, tree.Len(), flat.Len())
	assert.Equal(t, tree.Dimension(), flat.Dimension())

	for _, k := range []int{1, 4, 12, 1000} {
		want, err := tree.KNearest(queries, k)
		require.NoError(t, err)
		got, err := flat.KNearest(queries, k)
		require.NoError(t, err)

		for i := range queries {
			require.Len(t, got[i], len(want[i]))
			assert.Equal(t, ordinals(want[i]), ordinals(got[i]), "k=%d query %d", k, i)
			for j := range want[i] {
				assert.InDelta(t, want[i][j].Distance, got[i][j].Distance, 1e-9)
			}
		}
	}

	for _, r := range []float64{0, 2, 5} {
		want, err := tree.WithinRadius(queries, r)
		require.NoError(t, err)
		got, err := flat.WithinRadius(queries, r)
		require.NoError(t, err)
		for i := range queries {
			assert.Equal(t, ordinals(want[i]), ordinals(got[i]), "r=%v query %d", r, i)
		}
	}
}

func TestFlatTieBreak(t *testing.T) {
	flat, err := NewFlat([][]float64{{0, 0, 1}, {0, 1, 0}, {1, 0, 0}, {0, 0, -1}})
	require.NoError(t, err)

	res, err := flat.KNearest([][]float64{{0, 0, 0}}, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, ordinals(res[0]))
}

func TestFlatErrors(t *testing.T) {
	_, err := NewFlat(nil)
	assert.ErrorIs(t, err, model.ErrEmptySet)

	_, err = NewFlat([][]float64{{0, 0, 0}, {1}})
	var dm *ErrDimensionMismatch
	assert.ErrorAs(t, err, &dm)

	flat, err := NewFlat([][]float64{{0, 0, 0}})
	require.NoError(t, err)

	_, err = flat.KNearest([][]float64{{0, 0, 0}}, 0)
	assert.ErrorIs(t, err, ErrInvalidK)
	_, err = flat.KNearest(nil, 1)
	assert.ErrorIs(t, err, model.ErrEmptySet)
	_, err = flat.WithinRadius([][]float64{{0, 0, 0}}, -1)
	assert.ErrorIs(t, err, ErrInvalidRadius)
	_, err = flat.WithinRadius([][]float64{{0, 0}}, 1)
	assert.ErrorAs(t, err, &dm)
}

func TestBuild(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	small, err := Build(randomPoints(rng, FlatLimit, 8, 1))
	require.NoError(t, err)
	assert.IsType(t, &Flat{}, small)
	assert.Equal(t, 8, small.Dimension())

	large, err := Build(randomPoints(rng, FlatLimit+1, 8, 1))
	require.NoError(t, err)
	assert.IsType(t, &Tree{}, large)

	_, err = Build(nil)
	assert.ErrorIs(t, err, model.ErrEmptySet)
}
