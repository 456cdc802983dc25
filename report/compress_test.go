package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatAndCompressionFor(t *testing.T) {
	tests := []struct {
		name        string
		format      Format
		compression Compression
	}{
		{"scores.tsv", FormatTSV, CompressionNone},
		{"scores.tsv.zst", FormatTSV, CompressionZSTD},
		{"scores.jsonl", FormatJSONL, CompressionNone},
		{"scores.json.lz4", FormatJSONL, CompressionLZ4},
		{"runs/2024/scores", FormatTSV, CompressionNone},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.format, FormatFor(tt.name))
			assert.Equal(t, tt.compression, CompressionFor(tt.name))
		})
	}
}

func TestCompressRoundTrip(t *testing.T) {
	payload := bytes.Repeat([]byte(Header()+"\n"), 50)

	for _, c := range []Compression{CompressionNone, CompressionZSTD, CompressionLZ4} {
		t.Run(c.String(), func(t *testing.T) {
			packed, err := compress(c, payload)
			require.NoError(t, err)
			if c != CompressionNone {
				assert.Less(t, len(packed), len(payload))
			}

			got, err := decompress(c, packed)
			require.NoError(t, err)
			assert.Equal(t, payload, got)

			empty, err := compress(c, nil)
			require.NoError(t, err)
			assert.Empty(t, empty)
		})
	}
}

func TestDecompress_Corrupt(t *testing.T) {
	_, err := decompress(CompressionZSTD, []byte("not zstd"))
	assert.Error(t, err)
}

func TestSeenSet(t *testing.T) {
	s := newSeenSet()
	s.add("a", "b")
	s.add("a", "b")

	assert.True(t, s.contains("a", "b"))
	assert.False(t, s.contains("b", "a"))
	assert.False(t, s.contains("ab", ""))
	assert.Equal(t, uint64(1), s.len())
}
