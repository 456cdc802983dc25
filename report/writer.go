package report

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/kimeguida/ProCare"
	"github.com/kimeguida/ProCare/blobstore"
	"github.com/kimeguida/ProCare/codec"
	"github.com/kimeguida/ProCare/resource"
)

// DefaultMaxRetries bounds Flush retries after a concurrent modification.
const DefaultMaxRetries = 3

// Option configures a Writer.
type Option func(*Writer)

// WithCodec sets the JSON codec used for JSON-lines reports.
func WithCodec(c codec.Codec) Option {
	return func(w *Writer) {
		if c != nil {
			w.codec = c
		}
	}
}

// WithMaxRetries sets how often Flush retries on a concurrent modification.
func WithMaxRetries(n int) Option {
	return func(w *Writer) {
		if n >= 0 {
			w.maxRetries = n
		}
	}
}

// WithLogger sets the logger.
func WithLogger(l *procare.Logger) Option {
	return func(w *Writer) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithResourceController throttles flushed bytes through rc.
func WithResourceController(rc *resource.Controller) Option {
	return func(w *Writer) {
		w.rc = rc
	}
}

// Writer buffers report rows and appends them to a blob on Flush.
// It is safe for concurrent use.
type Writer struct {
	store       blobstore.BlobStore
	name        string
	format      Format
	compression Compression
	codec       codec.Codec
	maxRetries  int
	logger      *procare.Logger
	rc          *resource.Controller

	mu      sync.Mutex
	pending []Record
	seen    *seenSet
}

// NewWriter returns a Writer for the blob name in store. Format and
// compression follow the name.
func NewWriter(store blobstore.BlobStore, name string, opts ...Option) *Writer {
	w := &Writer{
		store:       store,
		name:        name,
		format:      FormatFor(name),
		compression: CompressionFor(name),
		codec:       codec.Default,
		maxRetries:  DefaultMaxRetries,
		logger:      procare.NoopLogger(),
		seen:        newSeenSet(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Name returns the blob name.
func (w *Writer) Name() string { return w.name }

// Format returns the row format.
func (w *Writer) Format() Format { return w.format }

// Load marks every successfully scored pair already stored as seen.
// A missing blob is not an error. It returns the number of stored rows.
func (w *Writer) Load(ctx context.Context) (int, error) {
	data, _, err := w.read(ctx)
	if err != nil {
		return 0, err
	}
	keys, err := scanRows(data, w.format, w.codec)
	if err != nil {
		return 0, fmt.Errorf("report %s: %w", w.name, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	for _, k := range keys {
		if !k.failed {
			w.seen.add(k.source, k.target)
		}
	}
	return len(keys), nil
}

// Add buffers a row. Successful rows mark their pair as seen.
func (w *Writer) Add(rec Record) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = append(w.pending, rec)
	if !rec.Failed() {
		w.seen.add(rec.Source, rec.Target)
	}
}

// Seen reports whether the pair was already scored successfully.
func (w *Writer) Seen(source, target string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seen.contains(source, target)
}

// SeenCount returns the number of distinct pairs marked as seen.
func (w *Writer) SeenCount() uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.seen.len()
}

// Pending returns the number of buffered rows.
func (w *Writer) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

// Flush appends the buffered rows to the blob. The TSV header is written
// only when the blob does not exist yet. On ErrConcurrentModification the
// blob is re-read and the append retried.
func (w *Writer) Flush(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 {
		return nil
	}
	if err := w.appendRows(ctx, len(w.pending), w.encodePending); err != nil {
		return err
	}
	w.pending = w.pending[:0]
	return nil
}

func (w *Writer) encodePending(buf *bytes.Buffer, exists bool) error {
	if w.format == FormatJSONL {
		return WriteJSONL(buf, w.codec, w.pending)
	}
	return WriteTSV(buf, w.pending, !exists)
}

// encodeFunc appends rows to buf; exists reports whether the blob was
// already present.
type encodeFunc func(buf *bytes.Buffer, exists bool) error

func (w *Writer) appendRows(ctx context.Context, rows int, encode encodeFunc) error {
	var (
		err      error
		attempts int
	)
	for attempts = 1; attempts <= w.maxRetries+1; attempts++ {
		err = w.appendOnce(ctx, encode)
		if !errors.Is(err, blobstore.ErrConcurrentModification) {
			break
		}
		w.logger.WarnContext(ctx, "report flush conflict, retrying",
			"name", w.name,
			"attempt", attempts,
		)
	}
	if attempts > w.maxRetries+1 {
		attempts = w.maxRetries + 1
	}

	w.logger.LogFlush(ctx, w.name, rows, attempts, err)
	return err
}

func (w *Writer) appendOnce(ctx context.Context, encode encodeFunc) error {
	existing, exists, err := w.read(ctx)
	if err != nil {
		return err
	}

	var plain bytes.Buffer
	plain.Grow(len(existing))
	plain.Write(existing)
	if len(existing) > 0 && existing[len(existing)-1] != '\n' {
		plain.WriteByte('\n')
	}

	if err := encode(&plain, exists); err != nil {
		return fmt.Errorf("report %s: encode: %w", w.name, err)
	}

	packed, err := compress(w.compression, plain.Bytes())
	if err != nil {
		return fmt.Errorf("report %s: compress: %w", w.name, err)
	}

	var out bytes.Buffer
	out.Grow(len(packed))
	if _, err := resource.NewRateLimitedWriter(ctx, &out, w.rc).Write(packed); err != nil {
		return err
	}
	return w.store.Put(ctx, w.name, out.Bytes())
}

// read returns the decompressed blob and whether it exists.
func (w *Writer) read(ctx context.Context) ([]byte, bool, error) {
	raw, err := blobstore.ReadAll(ctx, w.store, w.name)
	if errors.Is(err, blobstore.ErrNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	data, err := decompress(w.compression, raw)
	if err != nil {
		return nil, true, fmt.Errorf("report %s: decompress: %w", w.name, err)
	}
	return data, true, nil
}
