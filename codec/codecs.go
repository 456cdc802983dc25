package codec

import (
	"encoding/json"

	gojson "github.com/goccy/go-json"
)

// Default is the codec used when none is configured.
var Default Codec = GoJSON{}

// GoJSON encodes with github.com/goccy/go-json. Indent produces
// two-space indented output for terminals; reports leave it off.
type GoJSON struct {
	Indent bool
}

func (c GoJSON) Marshal(v any) ([]byte, error) {
	if c.Indent {
		return gojson.MarshalIndent(v, "", "  ")
	}
	return gojson.Marshal(v)
}

func (GoJSON) Unmarshal(data []byte, v any) error { return gojson.Unmarshal(data, v) }

func (GoJSON) Name() string { return "go-json" }

// JSON encodes with encoding/json, for consumers that compare report
// bytes against other encoding/json output.
type JSON struct {
	Indent bool
}

func (c JSON) Marshal(v any) ([]byte, error) {
	if c.Indent {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}

func (JSON) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }

func (JSON) Name() string { return "json" }
