package service

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/quimilab/backend/internal/logger"
	"github.com/quimilab/backend/internal/models"
)

// SourceOllama identifies explanations generated by the local model server.
const SourceOllama = "ollama"

// availabilityTTL bounds repeated health probes against the Ollama endpoint.
const availabilityTTL = 60 * time.Second

// OllamaProvider talks to a local Ollama server. Generation uses the
// streaming API and reads the response incrementally; the caller blocks
// until the stream signals completion or the client timeout elapses.
type OllamaProvider struct {
	baseURL string
	model   string
	client  *http.Client
	probe   *http.Client
	log     *logger.Logger

	// availability cache, shared across requests
	mu          sync.Mutex
	available   bool
	checkedAt   time.Time
	now         func() time.Time
}

// NewOllamaProvider creates a provider for the given Ollama endpoint.
func NewOllamaProvider(baseURL, model string, timeout time.Duration, log *logger.Logger) *OllamaProvider {
	return &OllamaProvider{
		baseURL: strings.TrimRight(baseURL, "/"),
		model:   model,
		client:  &http.Client{Timeout: timeout},
		probe:   &http.Client{Timeout: 3 * time.Second},
		log:     log,
		now:     time.Now,
	}
}

func (p *OllamaProvider) Name() string { return SourceOllama }

// Available reports whether the Ollama server answers its tags endpoint.
// The result is memoized for 60 seconds; a lost refresh under concurrency
// only costs one extra probe.
func (p *OllamaProvider) Available(ctx context.Context) bool {
	p.mu.Lock()
	if !p.checkedAt.IsZero() && p.now().Sub(p.checkedAt) < availabilityTTL {
		available := p.available
		p.mu.Unlock()
		return available
	}
	p.mu.Unlock()

	available := p.healthCheck(ctx)

	p.mu.Lock()
	p.available = available
	p.checkedAt = p.now()
	p.mu.Unlock()

	return available
}

func (p *OllamaProvider) healthCheck(ctx context.Context) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return false
	}

	resp, err := p.probe.Do(req)
	if err != nil {
		p.log.Warn("ollama not available", "error", err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// Models returns the list of models the Ollama server has loaded.
func (p *OllamaProvider) Models(ctx context.Context) []string {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.baseURL+"/api/tags", nil)
	if err != nil {
		return nil
	}
	resp, err := p.probe.Do(req)
	if err != nil {
		return nil
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil
	}

	var tags struct {
		Models []struct {
			Name string `json:"name"`
		} `json:"models"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names
}

// token budgets per level, tuned for response speed
var (
	elementTokenLimits  = map[string]int{LevelBasic: 300, LevelIntermediate: 500, LevelAdvanced: 800}
	reactionTokenLimits = map[string]int{LevelBasic: 200, LevelIntermediate: 350, LevelAdvanced: 500}
)

func (p *OllamaProvider) ExplainReaction(ctx context.Context, reaction *models.Reaction, level string) (string, error) {
	prompt := buildReactionPrompt(reaction, level)
	return p.generate(ctx, prompt, reactionTokenLimits[NormalizeLevel(level)])
}

func (p *OllamaProvider) ExplainElement(ctx context.Context, element *models.Element, level string) (string, error) {
	prompt := buildElementPrompt(element, level)
	return p.generate(ctx, prompt, elementTokenLimits[NormalizeLevel(level)])
}

type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
	NumCtx      int     `json:"num_ctx"`
}

type ollamaChunk struct {
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// generate calls the Ollama generate API and accumulates the streamed
// response until the server signals completion.
func (p *OllamaProvider) generate(ctx context.Context, prompt string, maxTokens int) (string, error) {
	if maxTokens == 0 {
		maxTokens = 400
	}

	reqBody := ollamaRequest{
		Model:  p.model,
		Prompt: prompt,
		Stream: true,
		Options: ollamaOptions{
			Temperature: 0.7,
			TopP:        0.9,
			NumPredict:  maxTokens,
			NumCtx:      2048,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/api/generate", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ollama API returned status %d", resp.StatusCode)
	}

	var full strings.Builder
	tokenCount := 0
	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var chunk ollamaChunk
		if err := json.Unmarshal(line, &chunk); err != nil {
			continue
		}

		full.WriteString(chunk.Response)
		tokenCount++
		if chunk.Done {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("failed to read stream: %w", err)
	}

	p.log.Debug("ollama generation finished", "tokens", tokenCount, "chars", full.Len())

	if full.Len() == 0 {
		return "", fmt.Errorf("empty response from ollama")
	}

	return full.String(), nil
}

var levelInstructionsElementES = map[string]string{
	LevelBasic:        "Explica para un estudiante de secundaria. Usa lenguaje simple. Máximo 150 palabras.",
	LevelIntermediate: "Explica para un estudiante universitario. Incluye aplicaciones y propiedades importantes. Máximo 250 palabras.",
	LevelAdvanced:     "Explica a nivel profesional. Incluye configuración electrónica detallada, propiedades químicas avanzadas y aplicaciones industriales. Máximo 400 palabras.",
}

var levelInstructionsReactionES = map[string]string{
	LevelBasic: `Explica esta reacción química para un estudiante de secundaria.
Usa lenguaje simple y ejemplos cotidianos.
Evita términos técnicos complejos.
Máximo 300 palabras.

Incluye:
1. Qué sucede paso a paso en la reacción
2. Por qué ocurre esta reacción
3. Un ejemplo de la vida cotidiana donde se ve esto
4. Qué observaríamos si hiciéramos esta reacción`,
	LevelIntermediate: `Explica esta reacción química para un estudiante universitario de primer año.
Máximo 500 palabras.

Incluye:
1. Descripción detallada del mecanismo de reacción
2. Tipos de enlaces que se rompen y se forman
3. Explicación energética (por qué es exotérmica o endotérmica)
4. Condiciones necesarias para que ocurra
5. Aplicaciones prácticas en la industria o laboratorio
6. Precauciones de seguridad relevantes`,
	LevelAdvanced: `Explica esta reacción química con rigor científico avanzado y profesional.
Máximo 800 palabras.

Incluye:
1. Mecanismo de reacción detallado paso a paso
2. Análisis termodinámico completo (ΔH, ΔG, ΔS)
3. Cinética de la reacción y factores que la afectan
4. Estados de transición y energía de activación
5. Aplicaciones industriales y de investigación
6. Impacto ambiental o tecnológico si es relevante`,
}

func buildElementPrompt(element *models.Element, level string) string {
	electronegativity := "N/A"
	if element.Electronegativity != nil {
		electronegativity = fmt.Sprintf("%.2f", *element.Electronegativity)
	}

	return fmt.Sprintf(`Eres un profesor de química experto. Explica el siguiente elemento químico en español:

Elemento: %s (%s)
Número atómico: %d
Masa atómica: %.4g u
Categoría: %s
Configuración electrónica: %s
Electrones de valencia: %d
Electronegatividad: %s
Período: %d, Grupo: %d

%s

Incluye:
1. Propiedades físicas y químicas principales
2. Dónde se encuentra en la naturaleza
3. Usos y aplicaciones importantes
4. Datos curiosos o históricos

Responde SOLO con la explicación, sin introducción ni despedida.`,
		element.NameES, element.Symbol,
		element.AtomicNumber,
		element.AtomicMass,
		element.CategoryNameES(),
		element.ElectronConfig,
		element.ValenceElectrons(),
		electronegativity,
		element.Period, element.Group,
		levelInstructionsElementES[NormalizeLevel(level)],
	)
}

func buildReactionPrompt(reaction *models.Reaction, level string) string {
	enthalpy := "No especificado"
	if reaction.EnthalpyChange != nil {
		enthalpy = fmt.Sprintf("%.0f kJ/mol", *reaction.EnthalpyChange)
	}

	energy := "REACCIÓN ENDOTÉRMICA"
	if reaction.EnergyChange == models.EnergyExothermic {
		energy = "REACCIÓN EXOTÉRMICA"
	}

	return fmt.Sprintf(`Eres un profesor de química experto. Tu tarea es explicar la siguiente reacción química REAL.

REACCIÓN: %s
TIPO: %s
REACTIVOS: %s
PRODUCTOS: %s
CAMBIO DE ENTALPÍA: %s
%s

INSTRUCCIONES:
%s

IMPORTANTE:
- Solo explica lo que REALMENTE ocurre en esta reacción
- No inventes información ni reacciones alternativas
- Sé preciso y educativo
- Responde en español

Tu explicación:`,
		reaction.Equation,
		reaction.ReactionTypeNameES(),
		describeReagents(reaction.Reactants),
		describeReagents(reaction.Products),
		enthalpy,
		energy,
		levelInstructionsReactionES[NormalizeLevel(level)],
	)
}
