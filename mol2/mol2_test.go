package mol2

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/kimeguida/ProCare/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFixture(t *testing.T) {
	data, err := os.ReadFile("testdata/cavity.mol2")
	require.NoError(t, err)

	ps, err := ParseBytes("cavity.mol2", data)
	require.NoError(t, err)

	assert.Equal(t, "cavity.mol2", ps.Name())
	require.Equal(t, 4, ps.Len())
	assert.Equal(t, []model.Label{model.CA, model.OG, model.DU, model.OD1}, ps.Labels())
	assert.Equal(t, model.LabeledPoint{
		Ordinal: 3,
		Label:   model.DU,
		Coords:  [3]float64{12.25, 19.75, -2.5},
	}, ps.At(2))
}

func TestParseLastAtomSection(t *testing.T) {
	in := strings.Join([]string{
		"@<TRIPOS>ATOM",
		"1 CA 0 0 0",
		"2 CA 1 0 0",
		"@<TRIPOS>BOND",
		"1 1 2 1",
		"@<TRIPOS>ATOM",
		"1 NZ 5 5 5",
		"@<TRIPOS>SUBSTRUCTURE",
		"1 CUB 1",
	}, "\n")

	ps, err := Parse("multi", strings.NewReader(in))
	require.NoError(t, err)
	require.Equal(t, 1, ps.Len())
	assert.Equal(t, model.NZ, ps.At(0).Label)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		field string
		line  int
	}{
		{"bad ordinal", "@<TRIPOS>ATOM\nx CA 0 0 0\n", "ordinal", 2},
		{"bad label", "@<TRIPOS>ATOM\n1 C.ar 0 0 0\n", "label", 2},
		{"bad x", "@<TRIPOS>ATOM\n1 CA 0 0 0\n2 CA zero 0 0\n", "x", 3},
		{"bad z", "@<TRIPOS>ATOM\n1 CA 0 0 nan?\n", "z", 2},
		{"short", "@<TRIPOS>ATOM\n1 CA 0 0\n", "record", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse("bad.mol2", strings.NewReader(tt.input))
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrInvalidPointRecord)

			var re *RecordError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.field, re.Field)
			assert.Equal(t, tt.line, re.Line)
			assert.Contains(t, err.Error(), "bad.mol2")
		})
	}

	t.Run("unknown label keeps cause", func(t *testing.T) {
		_, err := Parse("bad.mol2", strings.NewReader("@<TRIPOS>ATOM\n1 XX 0 0 0\n"))
		assert.ErrorIs(t, err, model.ErrUnknownLabel)
	})

	t.Run("no atoms", func(t *testing.T) {
		_, err := Parse("empty.mol2", strings.NewReader("@<TRIPOS>MOLECULE\nfoo\n"))
		assert.ErrorIs(t, err, ErrNoAtoms)
	})

	t.Run("empty section", func(t *testing.T) {
		ps, err := Parse("empty.mol2", strings.NewReader("@<TRIPOS>ATOM\n@<TRIPOS>BOND\n"))
		require.NoError(t, err)
		assert.True(t, ps.Empty())
	})
}

func TestWriteRoundTrip(t *testing.T) {
	data, err := os.ReadFile("testdata/cavity.mol2")
	require.NoError(t, err)
	ps, err := ParseBytes("dir/cavity.mol2", data)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, ps))
	assert.Contains(t, buf.String(), "# Name: cavity.mol2")
	assert.Contains(t, buf.String(), "SER2")

	back, err := Parse("copy", &buf)
	require.NoError(t, err)
	require.Equal(t, ps.Len(), back.Len())
	for i := 0; i < ps.Len(); i++ {
		assert.Equal(t, ps.At(i).Label, back.At(i).Label)
		assert.Equal(t, ps.At(i).Coords, back.At(i).Coords)
		assert.Equal(t, i+1, back.At(i).Ordinal)
	}
}
