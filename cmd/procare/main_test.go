package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kimeguida/ProCare/report"
	"github.com/kimeguida/ProCare/testutil"
)

func writeCavities(t *testing.T, dir string) {
	t.Helper()
	rng := testutil.NewRNG(11)
	a := rng.Cavity("a", 25, 10)
	sets := map[string][]byte{
		"cav/a.mol2": testutil.Mol2(t, a),
		"cav/b.mol2": testutil.Mol2(t, rng.Jitter(a, "b", 0.4)),
		"cav/c.mol2": testutil.Mol2(t, rng.Cavity("c", 18, 10)),
	}
	for name, data := range sets {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, data, 0o644))
	}
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	app := newApp()
	var out bytes.Buffer
	app.Writer = &out
	app.ErrWriter = &out
	err := app.RunContext(context.Background(), append([]string{"procare", "--log-level", "error"}, args...))
	return out.String(), err
}

func reportLines(t *testing.T, path string) []string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
}

func TestScoreCommand(t *testing.T) {
	dir := t.TempDir()
	writeCavities(t, dir)

	out, err := run(t, "--root", dir, "score", "--source", "cav/a.mol2", "--target", "cav/b.mol2", "--param-id", "p1")
	require.NoError(t, err)
	assert.Contains(t, out, "ph4_strict")
	assert.Contains(t, out, "fingerprint distance")

	lines := reportLines(t, filepath.Join(dir, "procare_rescoring.tsv"))
	require.Len(t, lines, 2)
	assert.Equal(t, report.Header(), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "cav/a.mol2\tcav/b.mol2\t"), lines[1])
	assert.Contains(t, lines[1], "\tp1\t")
}

func TestScoreCommand_JSON(t *testing.T) {
	dir := t.TempDir()
	writeCavities(t, dir)

	out, err := run(t, "--root", dir, "score", "-s", "cav/a.mol2", "-t", "cav/c.mol2", "--json", "--output", "")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "{"), out)
	assert.Contains(t, out, `"policy":"strict"`)

	_, err = os.Stat(filepath.Join(dir, "procare_rescoring.tsv"))
	assert.True(t, os.IsNotExist(err))
}

func TestScoreCommand_MissingCavity(t *testing.T) {
	_, err := run(t, "--root", t.TempDir(), "score", "-s", "none.mol2", "-t", "none.mol2")
	assert.Error(t, err)
}

func TestBatchCommand_Resume(t *testing.T) {
	dir := t.TempDir()
	writeCavities(t, dir)

	args := []string{"--root", dir, "batch", "--source-glob", "cav/*.mol2", "--target", "cav/a.mol2", "--workers", "2", "--output", "out.tsv.zst"}
	out, err := run(t, args...)
	require.NoError(t, err)
	assert.Contains(t, out, "pairs 2  scored 2  failed 0")

	out, err = run(t, append(args, "--resume")...)
	require.NoError(t, err)
	assert.Contains(t, out, "pairs 0  scored 0")

	_, err = os.Stat(filepath.Join(dir, "out.tsv.zst"))
	require.NoError(t, err)
}

func TestBatchCommand_PairsFile(t *testing.T) {
	dir := t.TempDir()
	writeCavities(t, dir)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "pairs.txt"),
		[]byte("cav/a.mol2 cav/b.mol2\ncav/a.mol2 cav/missing.mol2\n"), 0o644))

	out, err := run(t, "--root", dir, "batch", "--pairs", "pairs.txt", "--output", "out.jsonl")
	require.NoError(t, err)
	assert.Contains(t, out, "pairs 2  scored 1  failed 1")

	lines := reportLines(t, filepath.Join(dir, "out.jsonl"))
	require.Len(t, lines, 2)
}

func TestBatchCommand_NeedsPairs(t *testing.T) {
	_, err := run(t, "--root", t.TempDir(), "batch")
	assert.Error(t, err)
}

func TestAlignCommand(t *testing.T) {
	dir := t.TempDir()
	writeCavities(t, dir)

	out, err := run(t, "--root", dir, "align", "-s", "cav/a.mol2", "-t", "cav/b.mol2", "--out-source", "aligned/a.mol2")
	require.NoError(t, err)
	assert.Contains(t, out, "aligned cav/a.mol2")

	data, err := os.ReadFile(filepath.Join(dir, "aligned", "a.mol2"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "@<TRIPOS>ATOM")
}

func TestAlignContribOutput(t *testing.T) {
	dir := t.TempDir()
	writeCavities(t, dir)

	for i := 0; i < 2; i++ {
		_, err := run(t, "--root", dir, "align", "-s", "cav/a.mol2", "-t", "cav/b.mol2",
			"--contrib-output", "procare_scores_contribution.tsv")
		require.NoError(t, err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "procare_scores_contribution.tsv"))
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, report.ContributionHeader(), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "cav/a.mol2\tcav/b.mol2\t"))
	assert.Equal(t, lines[1], lines[2])
}
