package models

import "gorm.io/datatypes"

// Physical states at room temperature.
const (
	StateSolid  = "solid"
	StateLiquid = "liquid"
	StateGas    = "gas"
)

// Molecule represents a common molecule for quick lookup and 3D rendering.
// Independent of the Reaction/Element lifecycle; looked up by formula.
type Molecule struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Formula string `gorm:"size:50;uniqueIndex;not null" json:"formula"`
	Name   string `gorm:"size:100;not null" json:"name"`
	NameES string `gorm:"size:100;not null" json:"name_es"`

	// Atom positions, bonds and geometry for the 3D viewer
	Structure3D datatypes.JSON `gorm:"default:'{}'" json:"structure_3d"`

	MolecularWeight *float64 `json:"molecular_weight"`
	IsPolar         *bool    `json:"is_polar"`
	StateAtRoomTemp string   `gorm:"size:20" json:"state_at_room_temp,omitempty"`
}
