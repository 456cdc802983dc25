package main

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/urfave/cli/v2"

	"github.com/kimeguida/ProCare"
	"github.com/kimeguida/ProCare/codec"
	"github.com/kimeguida/ProCare/report"
)

func scoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "score",
		Usage: "Score one source cavity against one target cavity",
		Flags: append([]cli.Flag{
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "Source mol2 blob", Required: true},
			&cli.StringFlag{Name: "target", Aliases: []string{"t"}, Usage: "Target mol2 blob", Required: true},
			&cli.BoolFlag{Name: "json", Aliases: []string{"j"}, Usage: "Print the result as JSON"},
		}, scoringFlags()...),
		Action: runScore,
	}
}

func runScore(c *cli.Context) error {
	ctx := c.Context
	e := getEnv(c)

	sc := e.cfg.Scoring
	if err := applyScoringFlags(c, &sc); err != nil {
		return err
	}
	scorer, rc, err := newScorer(e, sc, nil)
	if err != nil {
		return err
	}

	loader := procare.NewStoreLoader(e.store,
		procare.WithLoaderCache(nil),
		procare.WithLoaderResourceController(rc),
		procare.WithLoaderLogger(e.logger),
	)
	source, err := loader.Load(ctx, c.String("source"))
	if err != nil {
		return err
	}
	target, err := loader.Load(ctx, c.String("target"))
	if err != nil {
		return err
	}

	res, err := scorer.Compare(ctx, source, target)
	if err != nil {
		return err
	}

	if c.Bool("json") {
		if err := codec.WriteLine(c.App.Writer, codec.Default, res); err != nil {
			return err
		}
	} else if err := printResult(c.App.Writer, res); err != nil {
		return err
	}

	out := c.String("output")
	if out == "" {
		return nil
	}
	w := report.NewWriter(e.store, out,
		report.WithLogger(e.logger),
		report.WithResourceController(rc),
	)
	w.Add(report.NewRecord(res, paramID(e, sc), sc.Class))
	return w.Flush(ctx)
}

// printResult writes one line per policy with the 9-tuple and the main scores.
func printResult(w io.Writer, res *procare.Result) error {
	fmt.Fprintf(w, "source %s (%d points)  target %s (%d points)", res.Source, res.FitSize, res.Target, res.RefSize)
	if res.Swapped {
		fmt.Fprint(w, "  [swapped]")
	}
	fmt.Fprintln(w)

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "policy\ttuple\ttversky\ttanimoto\tcosine\tdice")
	for _, pr := range res.Policies {
		tuple := pr.Ratios.Tuple()
		parts := make([]string, len(tuple))
		for i, v := range tuple {
			parts[i] = fmt.Sprintf("%.4f", v)
		}
		fmt.Fprintf(tw, "%s\t%s\t%.4f\t%.4f\t%.4f\t%.4f\n",
			pr.Policy.ColumnName(),
			strings.Join(parts, " "),
			pr.Scores.Tversky,
			pr.Scores.Tanimoto,
			pr.Scores.Cosine,
			pr.Scores.Dice,
		)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if res.HasFingerprint {
		_, err := fmt.Fprintf(w, "fingerprint distance %.4f\n", res.FingerprintDistance)
		return err
	}
	return nil
}
