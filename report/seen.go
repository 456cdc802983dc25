package report

import (
	"github.com/RoaringBitmap/roaring/v2/roaring64"
	"github.com/cespare/xxhash/v2"
)

// pairKey hashes an ordered pair of point-set names.
func pairKey(source, target string) uint64 {
	d := xxhash.New()
	_, _ = d.WriteString(source)
	_, _ = d.Write([]byte{0})
	_, _ = d.WriteString(target)
	return d.Sum64()
}

// seenSet tracks reported pairs. Hash collisions make a pair look
// reported; at 64 bits that is accepted.
type seenSet struct {
	bm *roaring64.Bitmap
}

func newSeenSet() *seenSet {
	return &seenSet{bm: roaring64.New()}
}

func (s *seenSet) add(source, target string) {
	s.bm.Add(pairKey(source, target))
}

func (s *seenSet) contains(source, target string) bool {
	return s.bm.Contains(pairKey(source, target))
}

func (s *seenSet) len() uint64 {
	return s.bm.GetCardinality()
}
