//go:build unix

package mmap

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

var advice = map[AccessPattern]int{
	AccessNormal:     unix.MADV_NORMAL,
	AccessSequential: unix.MADV_SEQUENTIAL,
	AccessRandom:     unix.MADV_RANDOM,
}

// osMap maps size bytes of f read-only and returns the matching unmap func.
func osMap(f *os.File, size int) ([]byte, func([]byte) error, error) {
	data, err := unix.Mmap(int(f.Fd()), 0, size, unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, nil, err
	}
	return data, unix.Munmap, nil
}

func osAdvise(data []byte, pattern AccessPattern) error {
	a, ok := advice[pattern]
	if !ok || len(data) == 0 {
		return nil
	}
	// The hint is advisory; unaligned slices report EINVAL.
	if err := unix.Madvise(data, a); err != nil && !errors.Is(err, unix.EINVAL) {
		return err
	}
	return nil
}
