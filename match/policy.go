package match

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPolicy is returned by ParsePolicy.
var ErrUnknownPolicy = errors.New("unknown policy")

// Policy is a correspondence acceptance rule.
type Policy int

const (
	Strict Policy = iota
	SoftNearest
	RulesCompatible
	RadiusAny
)

// Policies lists every policy in report column order.
var Policies = []Policy{Strict, RadiusAny, SoftNearest, RulesCompatible}

func (p Policy) String() string {
	switch p {
	case Strict:
		return "strict"
	case SoftNearest:
		return "soft"
	case RulesCompatible:
		return "rules"
	case RadiusAny:
		return "radius"
	default:
		return fmt.Sprintf("Unknown(%d)", int(p))
	}
}

// ColumnName returns the prefix used for the policy in rescoring reports.
func (p Policy) ColumnName() string {
	switch p {
	case Strict:
		return "ph4_strict"
	case SoftNearest:
		return "ph4_soft"
	case RulesCompatible:
		return "ph4_rules"
	case RadiusAny:
		return "ph4_ext"
	default:
		return ""
	}
}

// Valid reports whether p is a known policy.
func (p Policy) Valid() bool {
	return p >= Strict && p <= RadiusAny
}

// usesThreshold reports whether the policy rejects correspondences beyond
// the distance threshold.
func (p Policy) usesThreshold() bool {
	return p != SoftNearest
}

// ParsePolicy accepts both the short names and the report column names.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "strict", "ph4_strict":
		return Strict, nil
	case "soft", "ph4_soft":
		return SoftNearest, nil
	case "rules", "ph4_rules":
		return RulesCompatible, nil
	case "radius", "ext", "ph4_ext":
		return RadiusAny, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownPolicy, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Policy) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownPolicy, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Policy) UnmarshalText(b []byte) error {
	v, err := ParsePolicy(string(b))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
