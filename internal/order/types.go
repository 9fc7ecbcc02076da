// Package order classifies and prices spoken order lines against a menu.
//
// Verify never fails and never drops a line. Each result is verified (name,
// price and id copied from the menu), a special instruction (price 0), or
// unverified with an optional suggestion. The caller decides what to do with
// unverified lines.
package order

import "gopkg.in/yaml.v3"

// RequestedLine is one line of an order as captured from the conversation.
type RequestedLine struct {
	Name      string   `json:"name" yaml:"name"`
	Quantity  int      `json:"quantity,omitempty" yaml:"quantity,omitempty"`
	PriceHint *float64 `json:"priceHint,omitempty" yaml:"priceHint,omitempty"`
	ID        string   `json:"id,omitempty" yaml:"id,omitempty"`
}

// UnmarshalYAML accepts either a mapping or a bare string such as
// "2x hot americano".
func (l *RequestedLine) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*l = ParseLine(value.Value)
		return nil
	}
	type plain RequestedLine
	var p plain
	if err := value.Decode(&p); err != nil {
		return err
	}
	*l = RequestedLine(p)
	return nil
}

// VerifiedLine is the verdict for one RequestedLine.
type VerifiedLine struct {
	Name                 string   `json:"name"`
	Quantity             int      `json:"quantity"`
	Price                float64  `json:"price"`
	ID                   string   `json:"id,omitempty"`
	Verified             bool     `json:"verified"`
	IsSpecialInstruction bool     `json:"isSpecialInstruction"`
	Confidence           float64  `json:"confidence"`
	Suggestion           string   `json:"suggestion,omitempty"`
	Modifiers            []string `json:"modifiers"`
	SpecialInstructions  string   `json:"specialInstructions,omitempty"`
}

// Status is a one-word summary of a VerifiedLine.
type Status string

const (
	StatusVerified   Status = "verified"
	StatusSpecial    Status = "special"
	StatusUnverified Status = "unverified"
)

// Status reports which of the three outcomes v is.
func (v VerifiedLine) Status() Status {
	switch {
	case v.Verified:
		return StatusVerified
	case v.IsSpecialInstruction:
		return StatusSpecial
	default:
		return StatusUnverified
	}
}
