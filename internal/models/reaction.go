package models

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"
)

// Reaction types as stored in the database.
const (
	TypeSynthesis         = "synthesis"
	TypeDecomposition     = "decomposition"
	TypeSingleReplacement = "single_replacement"
	TypeDoubleReplacement = "double_replacement"
	TypeCombustion        = "combustion"
	TypeRedox             = "redox"
	TypeAcidBase          = "acid_base"
	TypePrecipitation     = "precipitation"
	TypeComplexation      = "complexation"
	TypeOrganic           = "organic"
)

// Energy change classifications.
const (
	EnergyExothermic  = "exothermic"
	EnergyEndothermic = "endothermic"
	EnergyNeutral     = "neutral"
)

var reactionTypeNamesES = map[string]string{
	TypeSynthesis:         "Síntesis",
	TypeDecomposition:     "Descomposición",
	TypeSingleReplacement: "Sustitución Simple",
	TypeDoubleReplacement: "Sustitución Doble",
	TypeCombustion:        "Combustión",
	TypeRedox:             "Oxidación-Reducción",
	TypeAcidBase:          "Ácido-Base",
	TypePrecipitation:     "Precipitación",
	TypeComplexation:      "Complejación",
	TypeOrganic:           "Reacción Orgánica",
}

var energyChangeNamesES = map[string]string{
	EnergyExothermic:  "Exotérmica",
	EnergyEndothermic: "Endotérmica",
	EnergyNeutral:     "Neutral",
}

// Reaction represents a verified chemical reaction. Only reactions with
// IsVerified=true are ever listed, matched, or explained.
type Reaction struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name             string `gorm:"size:200;not null" json:"name"`
	Equation         string `gorm:"size:500;not null" json:"equation"`
	EquationBalanced bool   `gorm:"default:true" json:"equation_balanced"`

	ReactionType string `gorm:"size:20;index" json:"reaction_type"`
	IsReversible bool   `json:"is_reversible"`

	// Thermodynamics
	EnergyChange     string   `gorm:"size:20;default:neutral" json:"energy_change"`
	EnthalpyChange   *float64 `json:"enthalpy_change"`
	ActivationEnergy *float64 `json:"activation_energy"`

	// Conditions
	RequiresCatalyst   bool   `json:"requires_catalyst"`
	Catalyst           string `gorm:"size:100" json:"catalyst,omitempty"`
	TemperatureRange   string `gorm:"size:50" json:"temperature_range,omitempty"`
	PressureConditions string `gorm:"size:50" json:"pressure_conditions,omitempty"`

	// Composition, stored as JSON lists of reagent records
	Reactants datatypes.JSON `gorm:"not null;default:'[]'" json:"reactants"`
	Products  datatypes.JSON `gorm:"not null;default:'[]'" json:"products"`

	// 3D animation payload for the frontend renderer
	AnimationData datatypes.JSON `gorm:"default:'{}'" json:"animation_data,omitempty"`

	// Educational metadata
	DifficultyLevel   int    `gorm:"default:1;index" json:"difficulty_level"`
	EducationalNotes  string `gorm:"type:text" json:"educational_notes,omitempty"`
	RealWorldExamples string `gorm:"type:text" json:"real_world_examples,omitempty"`
	SafetyWarnings    string `gorm:"type:text" json:"safety_warnings,omitempty"`

	IsVerified bool `gorm:"index" json:"is_verified"`

	ReactionElements []ReactionElement `json:"-"`
}

// ReactionTypeNameES returns the Spanish display name of the reaction type.
func (r *Reaction) ReactionTypeNameES() string {
	if name, ok := reactionTypeNamesES[r.ReactionType]; ok {
		return name
	}
	return r.ReactionType
}

// EnergyChangeNameES returns the Spanish display name of the energy change.
func (r *Reaction) EnergyChangeNameES() string {
	if name, ok := energyChangeNamesES[r.EnergyChange]; ok {
		return name
	}
	return r.EnergyChange
}

// ReactantList decodes the reactant records into normalized reagents.
func (r *Reaction) ReactantList() ([]Reagent, error) {
	return decodeReagents(r.Reactants)
}

// ProductList decodes the product records into normalized reagents.
func (r *Reaction) ProductList() ([]Reagent, error) {
	return decodeReagents(r.Products)
}

// ReactantSymbols returns the set of distinct element symbols appearing on
// the reactant side: the union of single-element symbols and the element
// lists of molecular reagents.
func (r *Reaction) ReactantSymbols() map[string]bool {
	symbols := make(map[string]bool)
	reagents, err := r.ReactantList()
	if err != nil {
		return symbols
	}
	for _, reagent := range reagents {
		if reagent.Kind == ReagentElement && reagent.Identifier != "" {
			symbols[reagent.Identifier] = true
		}
		for _, sym := range reagent.Elements {
			symbols[sym] = true
		}
	}
	return symbols
}

func decodeReagents(data datatypes.JSON) ([]Reagent, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var reagents []Reagent
	if err := json.Unmarshal(data, &reagents); err != nil {
		return nil, fmt.Errorf("decode reagents: %w", err)
	}
	return reagents, nil
}

// Roles an element can play in a reaction.
const (
	RoleReactant = "reactant"
	RoleProduct  = "product"
	RoleCatalyst = "catalyst"
)

// ReactionElement associates a reaction with an element, tagged with the
// element's role and stoichiometric coefficient. The (reaction, element,
// role) triple is unique.
type ReactionElement struct {
	ID                 uint   `gorm:"primaryKey" json:"id"`
	ReactionID         uint   `gorm:"uniqueIndex:idx_reaction_element_role;not null" json:"reaction_id"`
	ElementAtomicNumber int   `gorm:"uniqueIndex:idx_reaction_element_role;not null" json:"element_atomic_number"`
	Role               string `gorm:"size:20;uniqueIndex:idx_reaction_element_role;not null" json:"role"`
	Coefficient        int    `gorm:"default:1" json:"coefficient"`
	OxidationState     *int   `json:"oxidation_state,omitempty"`

	Element Element `gorm:"foreignKey:ElementAtomicNumber" json:"-"`
}
