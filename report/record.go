package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kimeguida/ProCare"
	"github.com/kimeguida/ProCare/internal/conv"
	"github.com/kimeguida/ProCare/match"
)

// PolicyScores is the per-policy part of a row.
type PolicyScores struct {
	Policy   match.Policy `json:"policy"`
	Tversky  float64      `json:"tversky"`
	Tanimoto float64      `json:"tanimoto"`
	Aligned  float64      `json:"aligned"`
}

// Record is one report row.
type Record struct {
	Source              string         `json:"source"`
	Target              string         `json:"target"`
	Policies            []PolicyScores `json:"policies,omitempty"`
	FingerprintDistance *float64       `json:"fingerprint_distance,omitempty"`
	ParamID             string         `json:"param_id,omitempty"`
	Class               string         `json:"class,omitempty"`
	Error               string         `json:"error,omitempty"`
}

// NewRecord converts a scoring result into a row.
func NewRecord(res *procare.Result, paramID, class string) Record {
	rec := Record{
		Source:  res.Source,
		Target:  res.Target,
		ParamID: paramID,
		Class:   class,
	}
	for _, pr := range res.Policies {
		rec.Policies = append(rec.Policies, PolicyScores{
			Policy:   pr.Policy,
			Tversky:  pr.Scores.Tversky,
			Tanimoto: pr.Scores.Tanimoto,
			Aligned:  pr.Ratios.Aligned,
		})
	}
	if res.HasFingerprint {
		d := conv.Round4(res.FingerprintDistance)
		rec.FingerprintDistance = &d
	}
	return rec
}

// ErrorRecord reports a pair that could not be scored.
func ErrorRecord(pair procare.Pair, err error, paramID, class string) Record {
	return Record{
		Source:  pair.Source,
		Target:  pair.Target,
		ParamID: paramID,
		Class:   class,
		Error:   err.Error(),
	}
}

// FromPairResult builds the row for a batch outcome.
func FromPairResult(r procare.PairResult, paramID, class string) Record {
	if r.Err != nil {
		return ErrorRecord(r.Pair, r.Err, paramID, class)
	}
	return NewRecord(r.Result, paramID, class)
}

// Failed reports whether the row records an error.
func (r Record) Failed() bool { return r.Error != "" }

// Policy returns the scores for p, if present.
func (r Record) Policy(p match.Policy) (PolicyScores, bool) {
	for _, ps := range r.Policies {
		if ps.Policy == p {
			return ps, true
		}
	}
	return PolicyScores{}, false
}

const missing = "NA"

var header = func() string {
	cols := []string{"source", "target"}
	for _, p := range match.Policies {
		cols = append(cols, p.ColumnName()+"_tv")
	}
	for _, p := range match.Policies {
		cols = append(cols, p.ColumnName()+"_tc")
	}
	cols = append(cols, "aligned_strict", "fingerprint_distance", "param_id", "class", "error")
	return strings.Join(cols, "\t")
}()

// Header returns the TSV header line without a trailing newline.
func Header() string { return header }

func formatFloat(v float64) string {
	return strconv.FormatFloat(conv.Round4(v), 'f', -1, 64)
}

// TSV renders the row in Header column order. Absent values are NA.
// Tabs and newlines inside text fields are replaced by spaces.
func (r Record) TSV() string {
	cols := []string{field(r.Source), field(r.Target)}

	score := func(p match.Policy, tversky bool) string {
		ps, ok := r.Policy(p)
		switch {
		case !ok:
			return missing
		case tversky:
			return formatFloat(ps.Tversky)
		default:
			return formatFloat(ps.Tanimoto)
		}
	}
	for _, p := range match.Policies {
		cols = append(cols, score(p, true))
	}
	for _, p := range match.Policies {
		cols = append(cols, score(p, false))
	}

	aligned := missing
	if ps, ok := r.Policy(match.Strict); ok {
		aligned = formatFloat(ps.Aligned)
	}
	fp := missing
	if r.FingerprintDistance != nil {
		fp = formatFloat(*r.FingerprintDistance)
	}
	cols = append(cols, aligned, fp, field(r.ParamID), field(r.Class), field(r.Error))
	return strings.Join(cols, "\t")
}

func field(s string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(s)
}

// parseTSVKey extracts the pair and failure flag from a TSV row.
func parseTSVKey(line string) (source, target string, failed bool, err error) {
	cols := strings.Split(line, "\t")
	if len(cols) < 2 {
		return "", "", false, fmt.Errorf("report: row has %d columns", len(cols))
	}
	n := strings.Count(header, "\t") + 1
	failed = len(cols) >= n && cols[n-1] != ""
	return cols[0], cols[1], failed, nil
}
