package report

import (
	"bytes"
	"context"
	"strings"

	"github.com/kimeguida/ProCare/blobstore"
	"github.com/kimeguida/ProCare/codec"
	"github.com/kimeguida/ProCare/match"
	"github.com/kimeguida/ProCare/model"
)

// contributionOrder is the label column order of contribution rows.
var contributionOrder = []model.Label{
	model.CA, model.CZ, model.O, model.N, model.OD1, model.OG, model.NZ, model.DU,
}

var contributionHeader = func() string {
	cols := []string{"cavity1", "cavity2", "ratio_aligned"}
	for _, l := range contributionOrder {
		cols = append(cols, l.String()+"_contrib")
	}
	return strings.Join(cols, "\t")
}()

// ContributionHeader returns the TSV header of contribution rows.
func ContributionHeader() string { return contributionHeader }

// Contribution is one row of an alignment contribution report.
type Contribution struct {
	Source  string             `json:"cavity1"`
	Target  string             `json:"cavity2"`
	Aligned float64            `json:"ratio_aligned"`
	Labels  map[string]float64 `json:"contrib"`
}

// NewContribution builds a row from the ratios of an alignment.
func NewContribution(source, target string, r match.Ratios) Contribution {
	c := Contribution{
		Source:  source,
		Target:  target,
		Aligned: r.Aligned,
		Labels:  make(map[string]float64, len(contributionOrder)),
	}
	for _, l := range contributionOrder {
		c.Labels[l.String()] = r.Category(l)
	}
	return c
}

// TSV renders the row in ContributionHeader column order.
func (c Contribution) TSV() string {
	cols := []string{field(c.Source), field(c.Target), formatFloat(c.Aligned)}
	for _, l := range contributionOrder {
		cols = append(cols, formatFloat(c.Labels[l.String()]))
	}
	return strings.Join(cols, "\t")
}

// AppendContribution appends c to the blob name, writing the TSV header
// only when the blob is new. Format, compression and conflict retries work
// as for Writer.
func AppendContribution(ctx context.Context, store blobstore.BlobStore, name string, c Contribution, opts ...Option) error {
	w := NewWriter(store, name, opts...)
	return w.appendRows(ctx, 1, func(buf *bytes.Buffer, exists bool) error {
		if w.format == FormatJSONL {
			return codec.WriteLine(buf, w.codec, c)
		}
		if !exists {
			buf.WriteString(contributionHeader + "\n")
		}
		buf.WriteString(c.TSV() + "\n")
		return nil
	})
}
