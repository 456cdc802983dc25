package model

import (
	"errors"
	"fmt"
)

// ErrUnknownLabel is returned by ParseLabel for names outside the vocabulary.
var ErrUnknownLabel = errors.New("unknown label")

// Label is a pharmacophoric feature category.
type Label uint8

// Labels in category order.
const (
	CA Label = iota
	CZ
	O
	OD1
	OG
	N
	NZ
	DU
)

// NumLabels is the size of the label vocabulary.
const NumLabels = 8

// Labels lists every label in category order.
var Labels = [NumLabels]Label{CA, CZ, O, OD1, OG, N, NZ, DU}

var labelNames = [NumLabels]string{"CA", "CZ", "O", "OD1", "OG", "N", "NZ", "DU"}

// Population background frequency of each label across cavity surfaces.
var backgroundFrequency = [NumLabels]float64{
	CA:  0.3817,
	CZ:  0.1110,
	O:   0.0659,
	OD1: 0.0593,
	OG:  0.0867,
	N:   0.1376,
	NZ:  0.0579,
	DU:  0.0999,
}

// ParseLabel returns the label with the given canonical name.
func ParseLabel(s string) (Label, error) {
	for i, name := range labelNames {
		if name == s {
			return Label(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownLabel, s)
}

// Valid reports whether l is part of the vocabulary.
func (l Label) Valid() bool {
	return l < NumLabels
}

// String returns the canonical label name.
func (l Label) String() string {
	if !l.Valid() {
		return fmt.Sprintf("Label(%d)", uint8(l))
	}
	return labelNames[l]
}

// Frequency returns the background frequency used by the weighted score.
func (l Label) Frequency() float64 {
	if !l.Valid() {
		return 0
	}
	return backgroundFrequency[l]
}

// MarshalText implements encoding.TextMarshaler.
func (l Label) MarshalText() ([]byte, error) {
	if !l.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownLabel, uint8(l))
	}
	return []byte(labelNames[l]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *Label) UnmarshalText(b []byte) error {
	v, err := ParseLabel(string(b))
	if err != nil {
		return err
	}
	*l = v
	return nil
}
