package conv

import (
	"errors"
	"fmt"
	"math"
)

// ErrPositionRange is returned for positions a uint32 bitmap cannot hold.
var ErrPositionRange = errors.New("position out of bitmap range")

// Member turns a point position into a roaring bitmap member.
func Member(pos int) (uint32, error) {
	if pos < 0 || uint64(pos) > math.MaxUint32 {
		return 0, fmt.Errorf("%w: %d", ErrPositionRange, pos)
	}
	return uint32(pos), nil
}

// Position turns a bitmap member back into a point position. Only 32-bit
// platforms can fail.
func Position(m uint32) (int, error) {
	if uint64(m) > uint64(math.MaxInt) {
		return 0, fmt.Errorf("%w: %d", ErrPositionRange, m)
	}
	return int(m), nil
}
