package report

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/kimeguida/ProCare/codec"
)

// Format is the row encoding of a report.
type Format uint8

const (
	FormatTSV Format = iota
	FormatJSONL
)

func (f Format) String() string {
	switch f {
	case FormatTSV:
		return "tsv"
	case FormatJSONL:
		return "jsonl"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// FormatFor derives the row format from a blob name, ignoring any
// compression suffix. Names ending in .jsonl or .json are JSON lines;
// everything else is TSV.
func FormatFor(name string) Format {
	switch path.Ext(trimCompression(name)) {
	case ".jsonl", ".json":
		return FormatJSONL
	default:
		return FormatTSV
	}
}

// WriteTSV writes recs as TSV rows, preceded by the header when withHeader is set.
func WriteTSV(w io.Writer, recs []Record, withHeader bool) error {
	bw := bufio.NewWriter(w)
	if withHeader {
		if _, err := bw.WriteString(header + "\n"); err != nil {
			return err
		}
	}
	for _, r := range recs {
		if _, err := bw.WriteString(r.TSV() + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteJSONL writes recs as JSON lines using c, or codec.Default when nil.
func WriteJSONL(w io.Writer, c codec.Codec, recs []Record) error {
	for _, r := range recs {
		if err := codec.WriteLine(w, c, r); err != nil {
			return err
		}
	}
	return nil
}

// rowKey is the identity of a stored row.
type rowKey struct {
	source, target string
	failed         bool
}

// scanRows returns the pair identity of every stored row.
func scanRows(data []byte, f Format, c codec.Codec) ([]rowKey, error) {
	if c == nil {
		c = codec.Default
	}

	var keys []rowKey
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := sc.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		switch f {
		case FormatTSV:
			if lineNo == 1 && line == header {
				continue
			}
			src, tgt, failed, err := parseTSVKey(line)
			if err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			keys = append(keys, rowKey{src, tgt, failed})
		case FormatJSONL:
			var r Record
			if err := c.Unmarshal([]byte(line), &r); err != nil {
				return nil, fmt.Errorf("line %d: %w", lineNo, err)
			}
			keys = append(keys, rowKey{r.Source, r.Target, r.Failed()})
		}
	}
	return keys, sc.Err()
}
