// Package codec selects the JSON encoder used for machine-readable reports
// and CLI output.
package codec

import (
	"fmt"
	"io"
)

// Codec encodes/decodes values.
// Implementations must be safe for concurrent use.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error
	Name() string
}

// ByName returns a built-in codec by its name, as given on the command line
// or in a config file.
func ByName(name string) (Codec, error) {
	switch name {
	case "", "go-json":
		return GoJSON{}, nil
	case "json":
		return JSON{}, nil
	default:
		return nil, fmt.Errorf("unknown codec %q", name)
	}
}

// WriteLine marshals v and writes it to w followed by a newline, producing
// one JSON-lines record.
func WriteLine(w io.Writer, c Codec, v any) error {
	if c == nil {
		c = Default
	}
	b, err := c.Marshal(v)
	if err != nil {
		return fmt.Errorf("codec %s: %w", c.Name(), err)
	}
	b = append(b, '\n')
	_, err = w.Write(b)
	return err
}
