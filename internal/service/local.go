package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/quimilab/backend/internal/models"
)

// SourceLocalTemplate identifies explanations produced by the template engine.
const SourceLocalTemplate = "local_template"

// LocalTemplateProvider generates explanations by pure string formatting
// over already-validated subject fields. It is the cascade's terminal tier:
// always available, never errors, never returns an empty string.
type LocalTemplateProvider struct{}

// NewLocalTemplateProvider creates the template-based provider.
func NewLocalTemplateProvider() *LocalTemplateProvider {
	return &LocalTemplateProvider{}
}

func (p *LocalTemplateProvider) Name() string { return SourceLocalTemplate }

func (p *LocalTemplateProvider) Available(ctx context.Context) bool { return true }

var elementIntroTemplates = []string{
	"El **%s** (%s) es un elemento fascinante con número atómico %d.",
	"Con el símbolo **%s**, el **%s** ocupa la posición %d en la tabla periódica.",
	"El elemento número %d es el **%s** (%s), clasificado como %s.",
}

var categoryBlurbsES = map[string]string{
	models.CategoryAlkaliMetal:     "Como metal alcalino, es altamente reactivo y nunca se encuentra puro en la naturaleza.",
	models.CategoryAlkalineEarth:   "Es un metal alcalinotérreo, reactivo pero menos que los metales alcalinos.",
	models.CategoryTransitionMetal: "Es un metal de transición, conocido por formar compuestos coloridos y tener varios estados de oxidación.",
	models.CategoryNobleGas:        "Es un gas noble, caracterizado por su gran estabilidad y falta de reactividad química.",
	models.CategoryHalogen:         "Pertenece a los halógenos, elementos muy reactivos que forman sales fácilmente.",
	models.CategoryNonmetal:        "Es un no metal, fundamental para la vida y con propiedades muy variadas.",
	models.CategoryMetalloid:       "Es un metaloide, con propiedades intermedias entre metales y no metales.",
}

// ExplainElement formats an element explanation from the stored fields.
// The intro template is chosen by atomic number, so output is deterministic
// for a given element.
func (p *LocalTemplateProvider) ExplainElement(ctx context.Context, element *models.Element, level string) (string, error) {
	name := element.NameES
	if name == "" {
		name = element.Symbol
	}

	var intro string
	switch element.AtomicNumber % len(elementIntroTemplates) {
	case 0:
		intro = fmt.Sprintf(elementIntroTemplates[0], name, element.Symbol, element.AtomicNumber)
	case 1:
		intro = fmt.Sprintf(elementIntroTemplates[1], element.Symbol, name, element.AtomicNumber)
	default:
		intro = fmt.Sprintf(elementIntroTemplates[2], element.AtomicNumber, name, element.Symbol, element.CategoryNameES())
	}

	catDesc, ok := categoryBlurbsES[element.Category]
	if !ok {
		catDesc = fmt.Sprintf("Pertenece a la categoría de los %s.", element.CategoryNameES())
	}

	var b strings.Builder
	fmt.Fprintf(&b, "## %s - %s\n\n", element.Symbol, name)
	b.WriteString(intro)
	b.WriteString("\n\n**Propiedades Químicas:**\n")
	b.WriteString(catDesc)
	if element.Description != "" {
		b.WriteString(" " + element.Description)
	}
	b.WriteString("\n\n**Datos Clave:**\n")
	fmt.Fprintf(&b, "- **Número Atómico:** %d\n", element.AtomicNumber)
	fmt.Fprintf(&b, "- **Masa Atómica:** %.4g u\n", element.AtomicMass)
	fmt.Fprintf(&b, "- **Categoría:** %s\n", element.CategoryNameES())
	fmt.Fprintf(&b, "- **Configuración Electrónica:** %s\n", element.ElectronConfig)
	fmt.Fprintf(&b, "- **Ubicación:** período %d, grupo %d\n", element.Period, element.Group)

	if level != LevelBasic {
		fmt.Fprintf(&b, "- **Electrones de Valencia:** %d\n", element.ValenceElectrons())
		if element.Electronegativity != nil {
			fmt.Fprintf(&b, "- **Electronegatividad:** %.2f\n", *element.Electronegativity)
		}
	}

	b.WriteString("\nEste elemento es fundamental para comprender la química. Su estructura atómica define cómo interactúa con otros elementos para formar compuestos.")

	return b.String(), nil
}

var reactionTypeBlurbsES = map[string]string{
	models.TypeSynthesis:         "dos o más sustancias se combinan para formar un producto más complejo. Es como construir una estructura con bloques.",
	models.TypeDecomposition:     "una sustancia compleja se descompone en sustancias más simples. Es el proceso inverso a la síntesis.",
	models.TypeCombustion:        "una sustancia reacciona rápidamente con oxígeno, liberando energía en forma de luz y calor.",
	models.TypeSingleReplacement: "un elemento más reactivo desplaza a otro menos reactivo de su compuesto.",
	models.TypeDoubleReplacement: "los iones de dos compuestos intercambian lugares para formar dos nuevos compuestos.",
	models.TypeAcidBase:          "un ácido y una base reaccionan para formar agua y una sal, neutralizando sus propiedades.",
	models.TypeRedox:             "hay transferencia de electrones entre las especies: una se oxida y la otra se reduce.",
}

// ExplainReaction formats a reaction explanation from the stored fields.
func (p *LocalTemplateProvider) ExplainReaction(ctx context.Context, reaction *models.Reaction, level string) (string, error) {
	typeDesc, ok := reactionTypeBlurbsES[reaction.ReactionType]
	if !ok {
		typeDesc = "ocurre una transformación química significativa."
	}

	var energyDesc string
	switch reaction.EnergyChange {
	case models.EnergyExothermic:
		energyDesc = "Esta es una reacción **exotérmica**, lo que significa que libera energía al entorno, generalmente como calor."
	case models.EnergyEndothermic:
		energyDesc = "Esta es una reacción **endotérmica**, por lo que necesita absorber energía del entorno para ocurrir."
	default:
		energyDesc = "El balance energético de esta reacción es aproximadamente neutro."
	}

	notes := reaction.EducationalNotes
	if notes == "" {
		notes = "Esta reacción es un ejemplo clásico estudiado en química para entender los principios de conservación de la masa y la energía."
	}

	var b strings.Builder
	b.WriteString("## Análisis del Experimento\n\n")
	fmt.Fprintf(&b, "En la reacción **%s**, observamos la ecuación:\n`%s`\n\n", reaction.Name, reaction.Equation)
	fmt.Fprintf(&b, "**¿Qué está sucediendo?**\nEn este tipo de reacción de **%s**, %s\n\n", reaction.ReactionTypeNameES(), typeDesc)
	fmt.Fprintf(&b, "**Aspectos Energéticos:**\n%s\n", energyDesc)

	if level != LevelBasic && reaction.EnthalpyChange != nil {
		fmt.Fprintf(&b, "El cambio de entalpía es de %.0f kJ/mol.\n", *reaction.EnthalpyChange)
	}

	fmt.Fprintf(&b, "\n**Notas Educativas:**\n%s", notes)

	if level == LevelAdvanced && reaction.RealWorldExamples != "" {
		fmt.Fprintf(&b, "\n\n**Aplicaciones:** %s", reaction.RealWorldExamples)
	}

	return b.String(), nil
}
