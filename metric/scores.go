package metric

import "github.com/kimeguida/ProCare/match"

// Scores bundles every similarity and distance of one Statistics value.
type Scores struct {
	Tanimoto      float64 `json:"tanimoto"`
	Tversky       float64 `json:"tversky"`
	Cosine        float64 `json:"cosine"`
	Dice          float64 `json:"dice"`
	PerScore      float64 `json:"per_score"`
	WeightedScore float64 `json:"weighted_score"`
	Hamming       float64 `json:"hamming"`
	Soergel       float64 `json:"soergel"`
}

// Compute fills Scores using the given Tversky weights.
func Compute(s match.Statistics, alpha, beta float64) (Scores, error) {
	var (
		out Scores
		err error
	)
	steps := []struct {
		dst *float64
		fn  func(match.Statistics) (float64, error)
	}{
		{&out.Tanimoto, Tanimoto},
		{&out.Tversky, func(s match.Statistics) (float64, error) { return Tversky(s, alpha, beta) }},
		{&out.Cosine, Cosine},
		{&out.Dice, Dice},
		{&out.PerScore, PerScore},
		{&out.WeightedScore, WeightedScore},
		{&out.Hamming, Hamming},
		{&out.Soergel, Soergel},
	}
	for _, st := range steps {
		if *st.dst, err = st.fn(s); err != nil {
			return Scores{}, err
		}
	}
	return out, nil
}
