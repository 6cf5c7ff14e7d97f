// Package seed loads the demo periodic-table and reaction dataset. The
// request path treats this data as immutable reference data.
package seed

import (
	"fmt"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/quimilab/backend/internal/models"
)

// Load inserts elements, molecules and verified reactions, skipping rows
// that already exist. Safe to run repeatedly.
func Load(db *gorm.DB) error {
	if err := loadElements(db); err != nil {
		return fmt.Errorf("seed elements: %w", err)
	}
	if err := loadMolecules(db); err != nil {
		return fmt.Errorf("seed molecules: %w", err)
	}
	if err := loadReactions(db); err != nil {
		return fmt.Errorf("seed reactions: %w", err)
	}
	return nil
}

func f(v float64) *float64 { return &v }

// Elements returns the seeded element set: periods 1–3 complete plus a
// selection of period 4.
func Elements() []models.Element {
	return []models.Element{
		{AtomicNumber: 1, Symbol: "H", Name: "Hydrogen", NameES: "Hidrógeno", Category: models.CategoryNonmetal, AtomicMass: 1.008, Electronegativity: f(2.20), ElectronConfig: "1s¹", Group: 1, Period: 1, Block: "s", ColorHex: "#FFFFFF", CPKColor: "#FFFFFF", AtomicRadius: f(53)},
		{AtomicNumber: 2, Symbol: "He", Name: "Helium", NameES: "Helio", Category: models.CategoryNobleGas, AtomicMass: 4.003, ElectronConfig: "1s²", Group: 18, Period: 1, Block: "s", ColorHex: "#D9FFFF", CPKColor: "#D9FFFF", AtomicRadius: f(31)},
		{AtomicNumber: 3, Symbol: "Li", Name: "Lithium", NameES: "Litio", Category: models.CategoryAlkaliMetal, AtomicMass: 6.941, Electronegativity: f(0.98), ElectronConfig: "[He] 2s¹", Group: 1, Period: 2, Block: "s", ColorHex: "#CC80FF", CPKColor: "#CC80FF", AtomicRadius: f(167)},
		{AtomicNumber: 4, Symbol: "Be", Name: "Beryllium", NameES: "Berilio", Category: models.CategoryAlkalineEarth, AtomicMass: 9.012, Electronegativity: f(1.57), ElectronConfig: "[He] 2s²", Group: 2, Period: 2, Block: "s", ColorHex: "#C2FF00", CPKColor: "#C2FF00", AtomicRadius: f(112)},
		{AtomicNumber: 5, Symbol: "B", Name: "Boron", NameES: "Boro", Category: models.CategoryMetalloid, AtomicMass: 10.81, Electronegativity: f(2.04), ElectronConfig: "[He] 2s² 2p¹", Group: 13, Period: 2, Block: "p", ColorHex: "#FFB5B5", CPKColor: "#FFB5B5", AtomicRadius: f(87)},
		{AtomicNumber: 6, Symbol: "C", Name: "Carbon", NameES: "Carbono", Category: models.CategoryNonmetal, AtomicMass: 12.01, Electronegativity: f(2.55), ElectronConfig: "[He] 2s² 2p²", Group: 14, Period: 2, Block: "p", ColorHex: "#909090", CPKColor: "#909090", AtomicRadius: f(67)},
		{AtomicNumber: 7, Symbol: "N", Name: "Nitrogen", NameES: "Nitrógeno", Category: models.CategoryNonmetal, AtomicMass: 14.01, Electronegativity: f(3.04), ElectronConfig: "[He] 2s² 2p³", Group: 15, Period: 2, Block: "p", ColorHex: "#3050F8", CPKColor: "#3050F8", AtomicRadius: f(56)},
		{AtomicNumber: 8, Symbol: "O", Name: "Oxygen", NameES: "Oxígeno", Category: models.CategoryNonmetal, AtomicMass: 16.00, Electronegativity: f(3.44), ElectronConfig: "[He] 2s² 2p⁴", Group: 16, Period: 2, Block: "p", ColorHex: "#FF0D0D", CPKColor: "#FF0D0D", AtomicRadius: f(48)},
		{AtomicNumber: 9, Symbol: "F", Name: "Fluorine", NameES: "Flúor", Category: models.CategoryHalogen, AtomicMass: 19.00, Electronegativity: f(3.98), ElectronConfig: "[He] 2s² 2p⁵", Group: 17, Period: 2, Block: "p", ColorHex: "#90E050", CPKColor: "#90E050", AtomicRadius: f(42)},
		{AtomicNumber: 10, Symbol: "Ne", Name: "Neon", NameES: "Neón", Category: models.CategoryNobleGas, AtomicMass: 20.18, ElectronConfig: "[He] 2s² 2p⁶", Group: 18, Period: 2, Block: "p", ColorHex: "#B3E3F5", CPKColor: "#B3E3F5", AtomicRadius: f(38)},
		{AtomicNumber: 11, Symbol: "Na", Name: "Sodium", NameES: "Sodio", Category: models.CategoryAlkaliMetal, AtomicMass: 22.99, Electronegativity: f(0.93), ElectronConfig: "[Ne] 3s¹", Group: 1, Period: 3, Block: "s", ColorHex: "#AB5CF2", CPKColor: "#AB5CF2", AtomicRadius: f(190)},
		{AtomicNumber: 12, Symbol: "Mg", Name: "Magnesium", NameES: "Magnesio", Category: models.CategoryAlkalineEarth, AtomicMass: 24.31, Electronegativity: f(1.31), ElectronConfig: "[Ne] 3s²", Group: 2, Period: 3, Block: "s", ColorHex: "#8AFF00", CPKColor: "#8AFF00", AtomicRadius: f(145)},
		{AtomicNumber: 13, Symbol: "Al", Name: "Aluminum", NameES: "Aluminio", Category: models.CategoryPostTransitionMetal, AtomicMass: 26.98, Electronegativity: f(1.61), ElectronConfig: "[Ne] 3s² 3p¹", Group: 13, Period: 3, Block: "p", ColorHex: "#BFA6A6", CPKColor: "#BFA6A6", AtomicRadius: f(118)},
		{AtomicNumber: 14, Symbol: "Si", Name: "Silicon", NameES: "Silicio", Category: models.CategoryMetalloid, AtomicMass: 28.09, Electronegativity: f(1.90), ElectronConfig: "[Ne] 3s² 3p²", Group: 14, Period: 3, Block: "p", ColorHex: "#F0C8A0", CPKColor: "#F0C8A0", AtomicRadius: f(111)},
		{AtomicNumber: 15, Symbol: "P", Name: "Phosphorus", NameES: "Fósforo", Category: models.CategoryNonmetal, AtomicMass: 30.97, Electronegativity: f(2.19), ElectronConfig: "[Ne] 3s² 3p³", Group: 15, Period: 3, Block: "p", ColorHex: "#FF8000", CPKColor: "#FF8000", AtomicRadius: f(98)},
		{AtomicNumber: 16, Symbol: "S", Name: "Sulfur", NameES: "Azufre", Category: models.CategoryNonmetal, AtomicMass: 32.07, Electronegativity: f(2.58), ElectronConfig: "[Ne] 3s² 3p⁴", Group: 16, Period: 3, Block: "p", ColorHex: "#FFFF30", CPKColor: "#FFFF30", AtomicRadius: f(88)},
		{AtomicNumber: 17, Symbol: "Cl", Name: "Chlorine", NameES: "Cloro", Category: models.CategoryHalogen, AtomicMass: 35.45, Electronegativity: f(3.16), ElectronConfig: "[Ne] 3s² 3p⁵", Group: 17, Period: 3, Block: "p", ColorHex: "#1FF01F", CPKColor: "#1FF01F", AtomicRadius: f(79)},
		{AtomicNumber: 18, Symbol: "Ar", Name: "Argon", NameES: "Argón", Category: models.CategoryNobleGas, AtomicMass: 39.95, ElectronConfig: "[Ne] 3s² 3p⁶", Group: 18, Period: 3, Block: "p", ColorHex: "#80D1E3", CPKColor: "#80D1E3", AtomicRadius: f(71)},
		{AtomicNumber: 19, Symbol: "K", Name: "Potassium", NameES: "Potasio", Category: models.CategoryAlkaliMetal, AtomicMass: 39.10, Electronegativity: f(0.82), ElectronConfig: "[Ar] 4s¹", Group: 1, Period: 4, Block: "s", ColorHex: "#8F40D4", CPKColor: "#8F40D4", AtomicRadius: f(243)},
		{AtomicNumber: 20, Symbol: "Ca", Name: "Calcium", NameES: "Calcio", Category: models.CategoryAlkalineEarth, AtomicMass: 40.08, Electronegativity: f(1.00), ElectronConfig: "[Ar] 4s²", Group: 2, Period: 4, Block: "s", ColorHex: "#3DFF00", CPKColor: "#3DFF00", AtomicRadius: f(194)},
		{AtomicNumber: 26, Symbol: "Fe", Name: "Iron", NameES: "Hierro", Category: models.CategoryTransitionMetal, AtomicMass: 55.85, Electronegativity: f(1.83), ElectronConfig: "[Ar] 3d⁶ 4s²", Group: 8, Period: 4, Block: "d", ColorHex: "#E06633", CPKColor: "#E06633", AtomicRadius: f(156)},
		{AtomicNumber: 29, Symbol: "Cu", Name: "Copper", NameES: "Cobre", Category: models.CategoryTransitionMetal, AtomicMass: 63.55, Electronegativity: f(1.90), ElectronConfig: "[Ar] 3d¹⁰ 4s¹", Group: 11, Period: 4, Block: "d", ColorHex: "#C88033", CPKColor: "#C88033", AtomicRadius: f(145)},
		{AtomicNumber: 30, Symbol: "Zn", Name: "Zinc", NameES: "Zinc", Category: models.CategoryTransitionMetal, AtomicMass: 65.38, Electronegativity: f(1.65), ElectronConfig: "[Ar] 3d¹⁰ 4s²", Group: 12, Period: 4, Block: "d", ColorHex: "#7D80B0", CPKColor: "#7D80B0", AtomicRadius: f(142)},
	}
}

func loadElements(db *gorm.DB) error {
	for _, element := range Elements() {
		var existing models.Element
		err := db.Where("atomic_number = ?", element.AtomicNumber).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&element).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func t(v bool) *bool { return &v }

// Molecules returns the seeded molecule set for the 3D viewer.
func Molecules() []models.Molecule {
	return []models.Molecule{
		{
			Formula: "H2O", Name: "Water", NameES: "Agua",
			MolecularWeight: f(18.015), IsPolar: t(true), StateAtRoomTemp: models.StateLiquid,
			Structure3D: datatypes.JSON(`{"atoms":[{"element":"O","position":[0,0,0]},{"element":"H","position":[-0.8,0.6,0]},{"element":"H","position":[0.8,0.6,0]}],"bonds":[{"from":0,"to":1,"type":"covalent","order":1},{"from":0,"to":2,"type":"covalent","order":1}],"geometry":"bent"}`),
		},
		{
			Formula: "CO2", Name: "Carbon Dioxide", NameES: "Dióxido de Carbono",
			MolecularWeight: f(44.01), IsPolar: t(false), StateAtRoomTemp: models.StateGas,
			Structure3D: datatypes.JSON(`{"atoms":[{"element":"C","position":[0,0,0]},{"element":"O","position":[-1.2,0,0]},{"element":"O","position":[1.2,0,0]}],"bonds":[{"from":0,"to":1,"type":"covalent","order":2},{"from":0,"to":2,"type":"covalent","order":2}],"geometry":"linear"}`),
		},
		{
			Formula: "NaCl", Name: "Sodium Chloride", NameES: "Cloruro de Sodio",
			MolecularWeight: f(58.44), IsPolar: t(true), StateAtRoomTemp: models.StateSolid,
			Structure3D: datatypes.JSON(`{"atoms":[{"element":"Na","position":[-0.7,0,0]},{"element":"Cl","position":[0.7,0,0]}],"bonds":[{"from":0,"to":1,"type":"ionic","order":1}],"geometry":"linear"}`),
		},
	}
}

func loadMolecules(db *gorm.DB) error {
	for _, molecule := range Molecules() {
		var existing models.Molecule
		err := db.Where("formula = ?", molecule.Formula).First(&existing).Error
		if err == gorm.ErrRecordNotFound {
			if err := db.Create(&molecule).Error; err != nil {
				return err
			}
			continue
		}
		if err != nil {
			return err
		}
	}
	return nil
}

type seedReaction struct {
	reaction models.Reaction
	// (symbol, role, coefficient) triples for the join table
	elements []seedReactionElement
}

type seedReactionElement struct {
	symbol      string
	role        string
	coefficient int
}

// Reactions returns the seeded verified reactions.
func Reactions() []models.Reaction {
	out := make([]models.Reaction, 0, len(seedReactions()))
	for _, sr := range seedReactions() {
		out = append(out, sr.reaction)
	}
	return out
}

func seedReactions() []seedReaction {
	return []seedReaction{
		{
			reaction: models.Reaction{
				Name: "Formación de Agua", Equation: "2H₂ + O₂ → 2H₂O",
				ReactionType: models.TypeSynthesis, EnergyChange: models.EnergyExothermic,
				EnthalpyChange: f(-572), DifficultyLevel: 1, IsVerified: true,
				EducationalNotes:  "Una de las reacciones más fundamentales. El hidrógeno se combina con oxígeno para formar agua, liberando una gran cantidad de energía.",
				RealWorldExamples: "Células de combustible de hidrógeno, motores de cohetes.",
				SafetyWarnings:    "⚠️ Mezcla explosiva. Mantener alejado de llamas.",
				Reactants:         datatypes.JSON(`[{"formula":"H2","elements":["H"],"count":2,"state":"gas"},{"formula":"O2","elements":["O"],"count":1,"state":"gas"}]`),
				Products:          datatypes.JSON(`[{"formula":"H2O","name":"Agua","count":2,"state":"gas"}]`),
				AnimationData:     datatypes.JSON(`{"total_duration_ms":5000}`),
			},
			elements: []seedReactionElement{{"H", models.RoleReactant, 2}, {"O", models.RoleReactant, 1}},
		},
		{
			reaction: models.Reaction{
				Name: "Combustión del Metano", Equation: "CH₄ + 2O₂ → CO₂ + 2H₂O",
				ReactionType: models.TypeCombustion, EnergyChange: models.EnergyExothermic,
				EnthalpyChange: f(-890), DifficultyLevel: 2, IsVerified: true,
				EducationalNotes:  "Combustión completa del gas natural. Es la principal fuente de energía en muchos hogares.",
				RealWorldExamples: "Cocinas de gas, calentadores, plantas de energía.",
				SafetyWarnings:    "⚠️ Gas inflamable. Mantener ventilación adecuada.",
				Reactants:         datatypes.JSON(`[{"formula":"CH4","elements":["C","H"],"count":1,"state":"gas"},{"formula":"O2","elements":["O"],"count":2,"state":"gas"}]`),
				Products:          datatypes.JSON(`[{"formula":"CO2","name":"Dióxido de Carbono","count":1,"state":"gas"},{"formula":"H2O","name":"Agua","count":2,"state":"gas"}]`),
				AnimationData:     datatypes.JSON(`{"total_duration_ms":6000}`),
			},
			elements: []seedReactionElement{{"C", models.RoleReactant, 1}, {"H", models.RoleReactant, 4}, {"O", models.RoleReactant, 2}},
		},
		{
			reaction: models.Reaction{
				Name: "Formación de Cloruro de Sodio", Equation: "2Na + Cl₂ → 2NaCl",
				ReactionType: models.TypeSynthesis, EnergyChange: models.EnergyExothermic,
				EnthalpyChange: f(-411), DifficultyLevel: 2, IsVerified: true,
				EducationalNotes:  "El sodio metálico reacciona vigorosamente con el cloro gaseoso para formar sal de mesa.",
				RealWorldExamples: "Producción industrial de sal, demostración en laboratorio.",
				SafetyWarnings:    "⚠️ Reacción muy violenta. Sodio inflamable al contacto con agua.",
				Reactants:         datatypes.JSON(`[{"symbol":"Na","count":2,"state":"solid"},{"formula":"Cl2","elements":["Cl"],"count":1,"state":"gas"}]`),
				Products:          datatypes.JSON(`[{"formula":"NaCl","name":"Cloruro de Sodio","count":2,"state":"solid"}]`),
				AnimationData:     datatypes.JSON(`{"total_duration_ms":4000}`),
			},
			elements: []seedReactionElement{{"Na", models.RoleReactant, 2}, {"Cl", models.RoleReactant, 1}},
		},
		{
			reaction: models.Reaction{
				Name: "Oxidación del Hierro (Herrumbre)", Equation: "4Fe + 3O₂ → 2Fe₂O₃",
				ReactionType: models.TypeRedox, EnergyChange: models.EnergyExothermic,
				EnthalpyChange: f(-1648), DifficultyLevel: 2, IsVerified: true,
				EducationalNotes:  "El hierro se oxida lentamente al exponerse al oxígeno y humedad, formando óxido de hierro III (herrumbre).",
				RealWorldExamples: "Corrosión de estructuras metálicas, proceso natural de oxidación.",
				SafetyWarnings:    "Proceso lento a temperatura ambiente.",
				Reactants:         datatypes.JSON(`[{"symbol":"Fe","count":4,"state":"solid"},{"formula":"O2","elements":["O"],"count":3,"state":"gas"}]`),
				Products:          datatypes.JSON(`[{"formula":"Fe2O3","name":"Óxido de Hierro III","count":2,"state":"solid"}]`),
				AnimationData:     datatypes.JSON(`{"total_duration_ms":5000}`),
			},
			elements: []seedReactionElement{{"Fe", models.RoleReactant, 4}, {"O", models.RoleReactant, 3}},
		},
		{
			reaction: models.Reaction{
				Name: "Síntesis del Amoníaco (Haber-Bosch)", Equation: "N₂ + 3H₂ ⇌ 2NH₃",
				ReactionType: models.TypeSynthesis, IsReversible: true, EnergyChange: models.EnergyExothermic,
				EnthalpyChange: f(-92), DifficultyLevel: 4, IsVerified: true,
				RequiresCatalyst: true, Catalyst: "Hierro",
				TemperatureRange: "400-500°C", PressureConditions: "150-300 atm",
				EducationalNotes:  "Proceso industrial fundamental para la producción de fertilizantes. Desarrollado por Fritz Haber y Carl Bosch.",
				RealWorldExamples: "Fertilizantes agrícolas, explosivos, productos químicos.",
				Reactants:         datatypes.JSON(`[{"formula":"N2","elements":["N"],"count":1,"state":"gas"},{"formula":"H2","elements":["H"],"count":3,"state":"gas"}]`),
				Products:          datatypes.JSON(`[{"formula":"NH3","name":"Amoníaco","count":2,"state":"gas"}]`),
				AnimationData:     datatypes.JSON(`{"total_duration_ms":6000}`),
			},
			elements: []seedReactionElement{{"N", models.RoleReactant, 1}, {"H", models.RoleReactant, 3}, {"Fe", models.RoleCatalyst, 1}},
		},
		{
			reaction: models.Reaction{
				Name: "Neutralización Ácido-Base", Equation: "HCl + NaOH → NaCl + H₂O",
				ReactionType: models.TypeAcidBase, EnergyChange: models.EnergyExothermic,
				EnthalpyChange: f(-57), DifficultyLevel: 1, IsVerified: true,
				EducationalNotes:  "Reacción clásica de neutralización entre un ácido fuerte y una base fuerte.",
				RealWorldExamples: "Antiácidos estomacales, tratamiento de aguas.",
				Reactants:         datatypes.JSON(`[{"formula":"HCl","elements":["H","Cl"],"count":1,"state":"liquid"},{"formula":"NaOH","elements":["Na","O","H"],"count":1,"state":"liquid"}]`),
				Products:          datatypes.JSON(`[{"formula":"NaCl","name":"Cloruro de Sodio","count":1,"state":"liquid"},{"formula":"H2O","name":"Agua","count":1,"state":"liquid"}]`),
				AnimationData:     datatypes.JSON(`{"total_duration_ms":4000}`),
			},
			elements: []seedReactionElement{{"H", models.RoleReactant, 1}, {"Cl", models.RoleReactant, 1}, {"Na", models.RoleReactant, 1}, {"O", models.RoleReactant, 1}},
		},
	}
}

func loadReactions(db *gorm.DB) error {
	for _, sr := range seedReactions() {
		var existing models.Reaction
		err := db.Where("equation = ?", sr.reaction.Equation).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return err
		}

		reaction := sr.reaction
		if err := db.Create(&reaction).Error; err != nil {
			return err
		}

		for _, se := range sr.elements {
			var element models.Element
			if err := db.Where("symbol = ?", se.symbol).First(&element).Error; err != nil {
				return fmt.Errorf("element %s for reaction %q: %w", se.symbol, reaction.Name, err)
			}
			link := models.ReactionElement{
				ReactionID:          reaction.ID,
				ElementAtomicNumber: element.AtomicNumber,
				Role:                se.role,
				Coefficient:         se.coefficient,
			}
			if err := db.Create(&link).Error; err != nil {
				return err
			}
		}
	}
	return nil
}
