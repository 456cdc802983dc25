package mmap

import "errors"

// AccessPattern tells the kernel how a mapping is about to be read.
type AccessPattern uint8

const (
	AccessNormal AccessPattern = iota
	// AccessSequential suits whole-file parsing of cavity files.
	AccessSequential
	// AccessRandom suits ranged reads.
	AccessRandom
)

var (
	ErrClosed        = errors.New("mmap: mapping is closed")
	ErrInvalidSize   = errors.New("mmap: invalid file size")
	ErrInvalidOffset = errors.New("mmap: invalid offset")
)
