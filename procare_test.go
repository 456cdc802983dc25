package procare

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kimeguida/ProCare/fingerprint"
	"github.com/kimeguida/ProCare/match"
	"github.com/kimeguida/ProCare/metric"
	"github.com/kimeguida/ProCare/model"
	"github.com/kimeguida/ProCare/mol2"
	"github.com/kimeguida/ProCare/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func pt(ordinal int, l model.Label, x, y, z float64) model.LabeledPoint {
	return model.LabeledPoint{Ordinal: ordinal, Label: l, Coords: [3]float64{x, y, z}}
}

func scenario() (source, target model.PointSet) {
	source = model.MustPointSet("source", []model.LabeledPoint{
		pt(1, model.CA, 0, 0, 0),
		pt(2, model.CA, 1, 0, 0),
		pt(3, model.DU, 5, 5, 5),
	})
	target = model.MustPointSet("target", []model.LabeledPoint{
		pt(1, model.CA, 0, 0, 0.2),
		pt(2, model.DU, 5, 5, 5.1),
	})
	return source, target
}

func TestCompare_Scenario(t *testing.T) {
	scorer, err := New()
	require.NoError(t, err)

	source, target := scenario()
	res, err := scorer.Compare(context.Background(), source, target)
	require.NoError(t, err)

	assert.Equal(t, "source", res.Source)
	assert.Equal(t, "target", res.Target)
	assert.Equal(t, 2, res.FitSize)
	assert.Equal(t, 3, res.RefSize)
	assert.True(t, res.Swapped)
	assert.True(t, res.HasFingerprint)

	var order []match.Policy
	for _, pr := range res.Policies {
		order = append(order, pr.Policy)
	}
	assert.Equal(t, match.Policies, order)

	strict, ok := res.Policy(match.Strict)
	require.True(t, ok)
	assert.Equal(t, [9]float64{1, 0.5, 0, 0, 0, 0, 0, 0, 0.5}, strict.Ratios.Tuple())
	assert.Equal(t, 0.6667, strict.Scores.Tanimoto)
	assert.Equal(t, 1.0, strict.Scores.PerScore)
}

func TestCompare_SelfSimilarity(t *testing.T) {
	scorer, err := New(WithPolicies(match.Strict))
	require.NoError(t, err)

	a := testutil.NewRNG(11).Cavity("a", 80, 12)
	b := model.MustPointSet("b", a.Points())

	res, err := scorer.Compare(context.Background(), a, b)
	require.NoError(t, err)
	require.Len(t, res.Policies, 1)

	want := metric.Scores{
		Tanimoto: 1, Tversky: 1, Cosine: 1, Dice: 1, PerScore: 1,
		WeightedScore: res.Policies[0].Scores.WeightedScore,
		Hamming:       0, Soergel: 0,
	}
	if diff := cmp.Diff(want, res.Policies[0].Scores); diff != "" {
		t.Errorf("scores mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1.0, res.Policies[0].Ratios.Aligned)
	assert.Equal(t, 0.0, res.FingerprintDistance)
}

func TestCompare_Symmetry(t *testing.T) {
	scorer, err := New(WithPolicies(match.Strict, match.SoftNearest, match.RadiusAny), WithoutFingerprint())
	require.NoError(t, err)

	rng := testutil.NewRNG(3)
	a := rng.Cavity("a", 60, 10)
	b := rng.Jitter(testutil.Subset(a, "b", 40), "b", 0.3)

	ab, err := scorer.Compare(context.Background(), a, b)
	require.NoError(t, err)
	ba, err := scorer.Compare(context.Background(), b, a)
	require.NoError(t, err)

	assert.False(t, ab.HasFingerprint)
	assert.NotEqual(t, ab.Swapped, ba.Swapped)
	for i := range ab.Policies {
		x, y := ab.Policies[i].Scores, ba.Policies[i].Scores
		assert.Equal(t, x.Tanimoto, y.Tanimoto, ab.Policies[i].Policy.String())
		assert.Equal(t, x.Cosine, y.Cosine)
		assert.Equal(t, x.Dice, y.Dice)
	}
}

func TestCompare_Errors(t *testing.T) {
	scorer, err := New()
	require.NoError(t, err)

	source, _ := scenario()
	empty := model.MustPointSet("empty", nil)

	_, err = scorer.Compare(context.Background(), source, empty)
	assert.ErrorIs(t, err, ErrEmptySet)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = scorer.Compare(ctx, source, source)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCompare_MetricsAndLogging(t *testing.T) {
	mc := &BasicMetricsCollector{}
	scorer, err := New(WithMetricsCollector(mc), WithLogger(nil))
	require.NoError(t, err)

	source, target := scenario()
	_, err = scorer.Compare(context.Background(), source, target)
	require.NoError(t, err)
	_, err = scorer.Compare(context.Background(), source, model.MustPointSet("empty", nil))
	require.Error(t, err)

	assert.Equal(t, int64(2), mc.CompareCount.Load())
	assert.Equal(t, int64(1), mc.CompareErrors.Load())
	assert.GreaterOrEqual(t, mc.AverageCompareLatency().Nanoseconds(), int64(0))
}

func TestNew_Validation(t *testing.T) {
	tests := []struct {
		name string
		opts []Option
		want error
	}{
		{"negative threshold", []Option{WithThreshold(-1)}, ErrInvalidThreshold},
		{"negative radius", []Option{WithFingerprintRadius(-2)}, ErrInvalidThreshold},
		{"no policies", []Option{WithPolicies()}, ErrUnknownPolicy},
		{"bad policy", []Option{WithPolicies(match.Policy(42))}, ErrUnknownPolicy},
		{"bad weights", []Option{WithTversky(-0.1, 0.5)}, ErrInvalidWeights},
		{"bad rule", []Option{WithFingerprintRule(fingerprint.Rule(9))}, ErrUnknownRule},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	scorer, err := New(WithThreshold(2), WithPartialCredit(true), WithWorkers(0))
	require.NoError(t, err)
	assert.Equal(t, 2.0, scorer.Threshold())
	assert.Equal(t, match.Policies, scorer.Policies())
	assert.GreaterOrEqual(t, scorer.opts.workers, 1)
	assert.Equal(t, 2.0, scorer.opts.radius())
}

func TestTranslateError(t *testing.T) {
	_, err := mol2.ParseBytes("bad.mol2", []byte("@<TRIPOS>ATOM\n1 XX 0 0 0\n"))
	require.Error(t, err)

	translated := translateError(err)
	var ipr *InvalidPointRecordError
	require.True(t, errors.As(translated, &ipr))
	assert.Equal(t, 2, ipr.Line)
	assert.Equal(t, "label", ipr.Field)
	assert.ErrorIs(t, translated, ErrInvalidPointRecord)

	_, err = mol2.ParseBytes("none.mol2", []byte("@<TRIPOS>MOLECULE\nx\n"))
	assert.ErrorIs(t, translateError(err), ErrInvalidPointRecord)

	assert.Nil(t, translateError(nil))
}
