package blobstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrNotFound is returned when a blob does not exist.
//
// Implementations should return an error that satisfies errors.Is(err, ErrNotFound).
var ErrNotFound = os.ErrNotExist

var (
	// ErrInvalidPattern is returned by Glob for malformed patterns.
	ErrInvalidPattern = errors.New("blobstore: invalid pattern")

	// ErrConcurrentModification is returned by stores with conditional
	// writes when another writer published the blob first.
	ErrConcurrentModification = errors.New("blobstore: concurrent modification detected")
)

// BlobStore stores named immutable blobs.
type BlobStore interface {
	// Open opens a blob for reading.
	Open(ctx context.Context, name string) (Blob, error)
	// Put replaces the blob atomically.
	Put(ctx context.Context, name string, data []byte) error
	// Delete removes a blob. Missing blobs are not an error.
	Delete(ctx context.Context, name string) error
	// List returns the sorted names that start with prefix.
	List(ctx context.Context, prefix string) ([]string, error)
}

// Blob is a read-only handle to a stored blob.
type Blob interface {
	ReadAt(ctx context.Context, p []byte, off int64) (int, error)
	Size() int64
	Close() error
}

// ReadAll opens name and returns its full contents.
func ReadAll(ctx context.Context, store BlobStore, name string) ([]byte, error) {
	b, err := store.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	defer b.Close()

	size := b.Size()
	if size == 0 {
		return []byte{}, nil
	}

	buf := make([]byte, size)
	n, err := b.ReadAt(ctx, buf, 0)
	if err != nil && !(errors.Is(err, io.EOF) && int64(n) == size) {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	if int64(n) != size {
		return nil, fmt.Errorf("read %s: short read %d of %d bytes: %w", name, n, size, io.ErrUnexpectedEOF)
	}
	return buf, nil
}

// Glob returns the sorted blob names matching pattern.
// Only the static prefix of the pattern is listed from the store.
func Glob(ctx context.Context, store BlobStore, pattern string) ([]string, error) {
	if !doublestar.ValidatePattern(pattern) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPattern, pattern)
	}

	base, _ := doublestar.SplitPattern(pattern)
	prefix := ""
	if base != "." {
		prefix = base
	}

	names, err := store.List(ctx, prefix)
	if err != nil {
		return nil, err
	}

	var matches []string
	for _, name := range names {
		ok, err := doublestar.Match(pattern, name)
		if err != nil {
			return nil, err
		}
		if ok {
			matches = append(matches, name)
		}
	}
	return matches, nil
}

// Base returns the last element of a blob name without its extension.
func Base(name string) string {
	b := path.Base(name)
	return b[:len(b)-len(path.Ext(b))]
}

type bytesBlob struct {
	data []byte
}

func (b *bytesBlob) ReadAt(_ context.Context, p []byte, off int64) (int, error) {
	if off < 0 {
		return 0, fmt.Errorf("blobstore: negative offset %d", off)
	}
	if off >= int64(len(b.data)) {
		return 0, io.EOF
	}
	n := copy(p, b.data[off:])
	if n < len(p) {
		return n, io.EOF
	}
	return n, nil
}

func (b *bytesBlob) Size() int64 { return int64(len(b.data)) }

func (b *bytesBlob) Close() error { return nil }

// NewBytesBlob wraps data as a Blob.
func NewBytesBlob(data []byte) Blob {
	return &bytesBlob{data: data}
}
