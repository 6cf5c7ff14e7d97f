package models

// Element categories as stored in the database.
const (
	CategoryAlkaliMetal         = "alkali-metal"
	CategoryAlkalineEarth       = "alkaline-earth"
	CategoryTransitionMetal     = "transition-metal"
	CategoryPostTransitionMetal = "post-transition-metal"
	CategoryMetalloid           = "metalloid"
	CategoryNonmetal            = "nonmetal"
	CategoryHalogen             = "halogen"
	CategoryNobleGas            = "noble-gas"
	CategoryLanthanide          = "lanthanide"
	CategoryActinide            = "actinide"
	CategoryUnknown             = "unknown"
)

// Element represents a chemical element from the periodic table.
// Reference data: seeded once, never mutated by request handling.
type Element struct {
	AtomicNumber int    `gorm:"primaryKey" json:"atomic_number"`
	Symbol       string `gorm:"size:3;uniqueIndex;not null" json:"symbol"`
	Name         string `gorm:"size:50;not null" json:"name"`
	NameES       string `gorm:"size:50;not null" json:"name_es"`
	Category     string `gorm:"size:25;index" json:"category"`

	// Physical properties
	AtomicMass   float64  `json:"atomic_mass"`
	Density      *float64 `json:"density"`
	MeltingPoint *float64 `json:"melting_point"`
	BoilingPoint *float64 `json:"boiling_point"`

	// Electronic properties
	Electronegativity *float64 `json:"electronegativity"`
	ElectronAffinity  *float64 `json:"electron_affinity"`
	IonizationEnergy  *float64 `json:"ionization_energy"`
	ElectronConfig    string   `gorm:"size:100" json:"electron_config"`
	OxidationStates   string   `gorm:"size:100" json:"oxidation_states,omitempty"`

	// Position in the periodic table
	Group  int    `gorm:"column:group_number" json:"group"`
	Period int    `json:"period"`
	Block  string `gorm:"size:2" json:"block"`

	// Visualization data
	ColorHex      string   `gorm:"size:7;default:#CCCCCC" json:"color_hex"`
	CPKColor      string   `gorm:"size:7;default:#CCCCCC" json:"cpk_color"`
	AtomicRadius  *float64 `json:"atomic_radius"`
	CovalentRadius *float64 `json:"covalent_radius"`

	// Metadata
	DiscoveredBy   string `gorm:"size:200" json:"discovered_by,omitempty"`
	YearDiscovered *int   `json:"year_discovered,omitempty"`
	Description    string `gorm:"type:text" json:"description,omitempty"`
}

// ValenceElectrons derives the number of valence electrons from the
// element's group and block.
func (e *Element) ValenceElectrons() int {
	switch e.Block {
	case "s":
		return e.Group
	case "p":
		return e.Group - 10
	case "d":
		if e.Group <= 10 {
			return e.Group - 2
		}
		return e.Group - 10
	default: // f block: lanthanides and actinides typically show +3
		return 3
	}
}

// CategoryNameES returns the Spanish display name for the element's category.
func (e *Element) CategoryNameES() string {
	names := map[string]string{
		CategoryAlkaliMetal:         "metal alcalino",
		CategoryAlkalineEarth:       "metal alcalinotérreo",
		CategoryTransitionMetal:     "metal de transición",
		CategoryPostTransitionMetal: "metal post-transición",
		CategoryMetalloid:           "metaloide",
		CategoryNonmetal:            "no metal",
		CategoryHalogen:             "halógeno",
		CategoryNobleGas:            "gas noble",
		CategoryLanthanide:          "lantánido",
		CategoryActinide:            "actínido",
	}
	if name, ok := names[e.Category]; ok {
		return name
	}
	return e.Category
}

// NobleGases is the set of noble-gas symbols, used when explaining why a
// selection has no known reaction.
var NobleGases = map[string]bool{
	"He": true, "Ne": true, "Ar": true, "Kr": true, "Xe": true, "Rn": true,
}
