package main

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/kimeguida/ProCare"
	"github.com/kimeguida/ProCare/blobstore"
)

// parsePairs reads whitespace-separated "source target" lines. Blank
// lines, comments and a leading "source target" header are skipped.
func parsePairs(data []byte) ([]procare.Pair, error) {
	var pairs []procare.Pair
	sc := bufio.NewScanner(bytes.NewReader(data))
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) != 2 {
			return nil, fmt.Errorf("pairs line %d: want 2 fields, got %d", lineNo, len(fields))
		}
		if len(pairs) == 0 && fields[0] == "source" && fields[1] == "target" {
			continue
		}
		pairs = append(pairs, procare.Pair{Source: fields[0], Target: fields[1]})
	}
	return pairs, sc.Err()
}

// globPairs pairs every blob matching pattern with each target. A blob
// is never paired with itself.
func globPairs(ctx context.Context, store blobstore.BlobStore, pattern string, targets []string) ([]procare.Pair, error) {
	if len(targets) == 0 {
		return nil, fmt.Errorf("--source-glob needs at least one --target")
	}
	sources, err := blobstore.Glob(ctx, store, pattern)
	if err != nil {
		return nil, err
	}
	if len(sources) == 0 {
		return nil, fmt.Errorf("no blobs match %q", pattern)
	}

	pairs := make([]procare.Pair, 0, len(sources)*len(targets))
	for _, t := range targets {
		for _, s := range sources {
			if s == t {
				continue
			}
			pairs = append(pairs, procare.Pair{Source: s, Target: t})
		}
	}
	return pairs, nil
}

// unseen drops the pairs already present in a report.
func unseen(pairs []procare.Pair, seen func(source, target string) bool) []procare.Pair {
	out := pairs[:0:0]
	for _, p := range pairs {
		if !seen(p.Source, p.Target) {
			out = append(out, p)
		}
	}
	return out
}
