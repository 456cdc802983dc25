package mol2

import (
	"bufio"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/kimeguida/ProCare/model"
)

// residueNames maps each label to the residue it is typically found on.
var residueNames = [model.NumLabels]string{
	model.CA:  "GLY",
	model.CZ:  "PHE",
	model.O:   "ALA",
	model.OD1: "ASP",
	model.OG:  "SER",
	model.N:   "ALA",
	model.NZ:  "LYS",
	model.DU:  "CUB",
}

// Write serializes ps as a mol2 molecule. Points are renumbered from 1 so
// the output reads back with consecutive ordinals.
func Write(w io.Writer, ps model.PointSet) error {
	name := strings.TrimSuffix(path.Base(ps.Name()), path.Ext(ps.Name()))
	if name == "" || name == "." {
		name = "cavity"
	}

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# Written by procare\n# Name: %s.mol2\n\n", name)
	fmt.Fprintf(bw, "@<TRIPOS>MOLECULE\n%s\n", name)
	fmt.Fprintf(bw, "%5d%6d%6d%6d%6d\n", ps.Len(), 0, 0, 0, 0)
	fmt.Fprint(bw, "PROTEIN\nNO_CHARGES\n")
	fmt.Fprint(bw, atomSection+"\n")

	for i := 0; i < ps.Len(); i++ {
		p := ps.At(i)
		fmt.Fprintf(bw, "%7d %-8s %9.4f %9.4f %9.4f %-5s %5d %-8s %9.4f\n",
			i+1, p.Label, p.Coords[0], p.Coords[1], p.Coords[2],
			"Du", i+1, fmt.Sprintf("%s%d", residueNames[p.Label], i+1), 0.0)
	}
	fmt.Fprint(bw, "@<TRIPOS>BOND\n")
	return bw.Flush()
}
