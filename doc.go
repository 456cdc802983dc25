// Package procare scores the similarity of two protein cavities described
// as clouds of pharmacophoric points.
//
// Each cavity point carries one of eight labels (CA, CZ, N, NZ, O, OD1,
// OG, DU) and a 3-D coordinate. Scoring pairs every point of the smaller
// cloud (the fit set) with its nearest neighbour in the larger one (the
// ref set) and counts the pairings a correspondence policy accepts.
//
// # Quick Start
//
//	scorer, _ := procare.New()
//	res, _ := scorer.Compare(ctx, source, target)
//	fmt.Println(res.Policy(match.Strict).Scores.Tversky)
//
// # Policies
//
//   - match.Strict: same label, within the threshold, ordinal check
//   - match.RadiusAny: the fit label occurs among ref points within the threshold
//   - match.SoftNearest: same label as the nearest ref point
//   - match.RulesCompatible: label compatible per the chemistry table, within the threshold
//
// # Batch Scoring
//
// Batch fans pairs out over a bounded worker group. Cavities are loaded
// through a Loader; NewStoreLoader reads mol2 blobs from any
// blobstore.BlobStore and caches parsed sets:
//
//	loader := procare.NewStoreLoader(blobstore.NewLocalStore("./cavities"))
//	stats, err := scorer.Batch(ctx, loader, pairs, func(r procare.PairResult) error {
//	    return w.Add(report.NewRecord(r, runID, ""))
//	})
//
// A failing pair is reported in its PairResult and never aborts the batch.
package procare
