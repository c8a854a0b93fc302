package manifests

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Argument is one entry of a structured argument list. Plain strings decode
// to an unconditional argument; objects carry rules and a string or list value.
type Argument struct {
	Value []string
	Rules []Rule
}

func (a Argument) Conditional() bool {
	return a.Rules != nil
}

func (a *Argument) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		a.Value = []string{s}
		a.Rules = nil
		return nil
	}

	var raw struct {
		Rules []Rule          `json:"rules"`
		Value json.RawMessage `json:"value"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("invalid argument entry: %w", err)
	}

	a.Rules = raw.Rules
	if a.Rules == nil {
		a.Rules = []Rule{}
	}

	value := bytes.TrimSpace(raw.Value)
	switch {
	case len(value) == 0:
		a.Value = nil
	case value[0] == '[':
		if err := json.Unmarshal(value, &a.Value); err != nil {
			return fmt.Errorf("invalid argument value: %w", err)
		}
	default:
		var s string
		if err := json.Unmarshal(value, &s); err != nil {
			return fmt.Errorf("invalid argument value: %w", err)
		}
		a.Value = []string{s}
	}
	return nil
}

func (a Argument) MarshalJSON() ([]byte, error) {
	if !a.Conditional() && len(a.Value) == 1 {
		return json.Marshal(a.Value[0])
	}
	return json.Marshal(struct {
		Rules []Rule   `json:"rules"`
		Value []string `json:"value"`
	}{Rules: a.Rules, Value: a.Value})
}

// Split separates unconditional and conditional entries, keeping their order.
func Split(args []Argument) (unconditional []string, conditional []Argument) {
	for _, arg := range args {
		if arg.Conditional() {
			conditional = append(conditional, arg)
			continue
		}
		unconditional = append(unconditional, arg.Value...)
	}
	return unconditional, conditional
}
