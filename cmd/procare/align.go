package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/kimeguida/ProCare"
	"github.com/kimeguida/ProCare/match"
	"github.com/kimeguida/ProCare/model"
	"github.com/kimeguida/ProCare/mol2"
	"github.com/kimeguida/ProCare/report"
)

func alignCommand() *cli.Command {
	return &cli.Command{
		Name:  "align",
		Usage: "Extract the points of two cavities that lie near a same-labelled partner",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "source", Aliases: []string{"s"}, Usage: "Source mol2 blob", Required: true},
			&cli.StringFlag{Name: "target", Aliases: []string{"t"}, Usage: "Target mol2 blob", Required: true},
			&cli.Float64Flag{
				Name:    "distance",
				Aliases: []string{"d"},
				Usage:   "Alignment radius in angstroms",
				Value:   match.DefaultThreshold,
			},
			&cli.StringFlag{Name: "out-source", Usage: "Blob receiving the aligned source points"},
			&cli.StringFlag{Name: "out-target", Usage: "Blob receiving the aligned target points"},
			&cli.StringFlag{
				Name:  "contrib-output",
				Usage: "Report blob the contribution row is appended to (e.g. procare_scores_contribution.tsv)",
			},
		},
		Action: runAlign,
	}
}

func runAlign(c *cli.Context) error {
	ctx := c.Context
	e := getEnv(c)

	loader := procare.NewStoreLoader(e.store,
		procare.WithLoaderCache(nil),
		procare.WithLoaderLogger(e.logger),
	)
	a, err := loader.Load(ctx, c.String("source"))
	if err != nil {
		return err
	}
	b, err := loader.Load(ctx, c.String("target"))
	if err != nil {
		return err
	}

	al, err := match.Align(a, b, c.Float64("distance"))
	if err != nil {
		return err
	}

	tuple := al.Contribution().Tuple()
	parts := make([]string, len(tuple))
	for i, v := range tuple {
		parts[i] = fmt.Sprintf("%.4f", v)
	}
	fmt.Fprintf(c.App.Writer, "aligned %s %d/%d  %s %d/%d\n", a.Name(), al.A.Len(), a.Len(), b.Name(), al.B.Len(), b.Len())
	fmt.Fprintln(c.App.Writer, strings.Join(parts, " "))

	if name := c.String("contrib-output"); name != "" {
		row := report.NewContribution(a.Name(), b.Name(), al.Contribution())
		if err := report.AppendContribution(ctx, e.store, name, row, report.WithLogger(e.logger)); err != nil {
			return err
		}
	}

	for _, out := range []struct {
		name string
		ps   model.PointSet
	}{
		{c.String("out-source"), al.A},
		{c.String("out-target"), al.B},
	} {
		if out.name == "" {
			continue
		}
		var buf bytes.Buffer
		if err := mol2.Write(&buf, out.ps); err != nil {
			return err
		}
		if err := e.store.Put(ctx, out.name, buf.Bytes()); err != nil {
			return err
		}
		e.logger.InfoContext(ctx, "aligned points written", "name", out.name, "points", out.ps.Len())
	}
	return nil
}
