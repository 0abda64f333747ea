package game

import "fmt"

// Phase is the top-level state of a run.
type Phase uint8

const (
	Playing Phase = iota
	Shop
	Lost
)

// String returns the string representation of the phase
func (p Phase) String() string {
	switch p {
	case Playing:
		return "playing"
	case Shop:
		return "shop"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// MarshalText encodes the phase by name.
func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name.
func (p *Phase) UnmarshalText(text []byte) error {
	switch string(text) {
	case "playing":
		*p = Playing
	case "shop":
		*p = Shop
	case "lost":
		*p = Lost
	default:
		return fmt.Errorf("unknown phase %q", text)
	}
	return nil
}
