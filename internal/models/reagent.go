package models

import "encoding/json"

// ReagentKind tags a normalized reagent record.
type ReagentKind string

const (
	// ReagentElement is a single element, identified by its symbol.
	ReagentElement ReagentKind = "element"
	// ReagentMolecule is a compound, identified by its formula.
	ReagentMolecule ReagentKind = "molecule"
)

// Reagent is the normalized form of one reactant or product record.
// Stored records are heterogeneous — element entries carry a "symbol" key,
// molecular entries a "formula" (plus an "elements" list of constituent
// symbols) and sometimes a display "name". The shape is resolved once here,
// at the model boundary, so call sites never re-sniff keys.
type Reagent struct {
	Kind       ReagentKind `json:"kind"`
	Identifier string      `json:"identifier"`
	Name       string      `json:"name,omitempty"`
	Elements   []string    `json:"elements,omitempty"`
	Count      int         `json:"count"`
	State      string      `json:"state,omitempty"`
}

type rawReagent struct {
	Symbol   string   `json:"symbol"`
	Formula  string   `json:"formula"`
	Name     string   `json:"name"`
	Elements []string `json:"elements"`
	Count    int      `json:"count"`
	State    string   `json:"state"`
}

// UnmarshalJSON normalizes a stored reagent record into the tagged form.
func (r *Reagent) UnmarshalJSON(data []byte) error {
	var raw rawReagent
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	count := raw.Count
	if count <= 0 {
		count = 1
	}

	switch {
	case raw.Formula != "":
		*r = Reagent{
			Kind:       ReagentMolecule,
			Identifier: raw.Formula,
			Name:       raw.Name,
			Elements:   raw.Elements,
			Count:      count,
			State:      raw.State,
		}
	case raw.Symbol != "":
		*r = Reagent{
			Kind:       ReagentElement,
			Identifier: raw.Symbol,
			Name:       raw.Name,
			Elements:   raw.Elements,
			Count:      count,
			State:      raw.State,
		}
	default:
		// Record with neither symbol nor formula: keep what we can so the
		// element list still contributes to matching.
		*r = Reagent{
			Kind:       ReagentMolecule,
			Identifier: raw.Name,
			Name:       raw.Name,
			Elements:   raw.Elements,
			Count:      count,
			State:      raw.State,
		}
	}
	return nil
}

// MarshalJSON writes the normalized form back using the stored keys, so
// round-tripped records stay readable by the frontend.
func (r Reagent) MarshalJSON() ([]byte, error) {
	raw := rawReagent{
		Name:     r.Name,
		Elements: r.Elements,
		Count:    r.Count,
		State:    r.State,
	}
	if r.Kind == ReagentElement {
		raw.Symbol = r.Identifier
	} else {
		raw.Formula = r.Identifier
	}
	return json.Marshal(raw)
}

// Display returns the human-readable identifier for prompts and messages.
func (r Reagent) Display() string {
	if r.Identifier != "" {
		return r.Identifier
	}
	return r.Name
}
