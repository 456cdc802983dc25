package mol2

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/kimeguida/ProCare/model"
)

const (
	sectionPrefix = "@<TRIPOS>"
	atomSection   = "@<TRIPOS>ATOM"
	maxLineBytes  = 1 << 20
)

// Parse reads the point set from the last ATOM section of r.
func Parse(name string, r io.Reader) (model.PointSet, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	var (
		points  []model.LabeledPoint
		seen    bool
		inAtoms bool
		lineNo  int
	)
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())

		if strings.HasPrefix(line, sectionPrefix) {
			inAtoms = line == atomSection
			if inAtoms {
				seen = true
				points = points[:0]
			}
			continue
		}
		if !inAtoms || line == "" {
			continue
		}

		p, err := parseRecord(lineNo, line)
		if err != nil {
			return model.PointSet{}, fmt.Errorf("%s: %w", name, err)
		}
		points = append(points, p)
	}
	if err := sc.Err(); err != nil {
		return model.PointSet{}, fmt.Errorf("%s: %w", name, err)
	}
	if !seen {
		return model.PointSet{}, fmt.Errorf("%s: %w", name, ErrNoAtoms)
	}

	return model.NewPointSet(name, points)
}

// ParseBytes parses an in-memory mol2 file.
func ParseBytes(name string, data []byte) (model.PointSet, error) {
	return Parse(name, bytes.NewReader(data))
}

func parseRecord(lineNo int, line string) (model.LabeledPoint, error) {
	cols := strings.Fields(line)
	if len(cols) < 5 {
		return model.LabeledPoint{}, &RecordError{
			Line:  lineNo,
			Field: "record",
			Err:   fmt.Errorf("want at least 5 columns, got %d", len(cols)),
		}
	}

	var p model.LabeledPoint
	var err error

	if p.Ordinal, err = strconv.Atoi(cols[0]); err != nil {
		return p, &RecordError{Line: lineNo, Field: "ordinal", Err: err}
	}
	if p.Label, err = model.ParseLabel(cols[1]); err != nil {
		return p, &RecordError{Line: lineNo, Field: "label", Err: err}
	}
	for i, field := range [3]string{"x", "y", "z"} {
		if p.Coords[i], err = strconv.ParseFloat(cols[2+i], 64); err != nil {
			return p, &RecordError{Line: lineNo, Field: field, Err: err}
		}
	}
	return p, nil
}
