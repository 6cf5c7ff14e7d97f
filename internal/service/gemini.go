package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/quimilab/backend/internal/logger"
	"github.com/quimilab/backend/internal/models"
)

// SourceGemini identifies explanations generated by the Gemini API.
const SourceGemini = "gemini"

const geminiEndpoint = "https://generativelanguage.googleapis.com/v1beta/models"

// Candidate model names, tried in order at first use. The first one that
// answers a probe request is kept for the process lifetime.
var geminiModelCandidates = []string{
	"gemini-2.5-flash",
	"gemini-2.0-flash-exp",
	"gemini-1.5-flash",
	"gemini-1.5-pro",
	"gemini-pro",
}

// GeminiProvider talks to Google's Gemini API over HTTP. The provider is
// available iff an API key is configured and a model was verified; model
// verification is lazy and happens once per process.
type GeminiProvider struct {
	apiKey   string
	endpoint string
	client   *http.Client
	log      *logger.Logger

	initOnce sync.Once
	model    string
}

// NewGeminiProvider creates a provider for the given API key. An empty key
// yields a provider that always reports unavailable.
func NewGeminiProvider(apiKey string, log *logger.Logger) *GeminiProvider {
	return &GeminiProvider{
		apiKey:   apiKey,
		endpoint: geminiEndpoint,
		client:   &http.Client{Timeout: 60 * time.Second},
		log:      log,
	}
}

func (p *GeminiProvider) Name() string { return SourceGemini }

// Available reports whether the API key is configured and a model loaded.
func (p *GeminiProvider) Available(ctx context.Context) bool {
	if p.apiKey == "" {
		return false
	}
	p.ensureModel(ctx)
	return p.model != ""
}

// ensureModel walks the candidate list once, keeping the first model that
// answers a minimal generation request.
func (p *GeminiProvider) ensureModel(ctx context.Context) {
	p.initOnce.Do(func() {
		for _, name := range geminiModelCandidates {
			if _, err := p.generateContent(ctx, name, "test", 10); err != nil {
				p.log.Warn("gemini model probe failed", "model", name, "error", err)
				continue
			}
			p.log.Info("gemini model verified", "model", name)
			p.model = name
			return
		}
		p.log.Error("all gemini model probes failed; provider disabled")
	})
}

func (p *GeminiProvider) ExplainReaction(ctx context.Context, reaction *models.Reaction, level string) (string, error) {
	if !p.Available(ctx) {
		return "", fmt.Errorf("gemini not available")
	}
	prompt := buildGeminiReactionPrompt(reaction, level)
	return p.generateContent(ctx, p.model, prompt, 1000)
}

func (p *GeminiProvider) ExplainElement(ctx context.Context, element *models.Element, level string) (string, error) {
	if !p.Available(ctx) {
		return "", fmt.Errorf("gemini not available")
	}
	prompt := buildGeminiElementPrompt(element)
	return p.generateContent(ctx, p.model, prompt, 1000)
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiGenerationConfig struct {
	Temperature     float64 `json:"temperature"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiResponse struct {
	Candidates []struct {
		Content struct {
			Parts []geminiPart `json:"parts"`
		} `json:"content"`
		FinishReason string `json:"finishReason"`
	} `json:"candidates"`
	PromptFeedback struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback"`
}

func (p *GeminiProvider) generateContent(ctx context.Context, model, prompt string, maxTokens int) (string, error) {
	reqBody := geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     0.7,
			MaxOutputTokens: maxTokens,
		},
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	url := fmt.Sprintf("%s/%s:generateContent", p.endpoint, model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", p.apiKey)

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("gemini API returned status %d: %s", resp.StatusCode, body)
	}

	var result geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if result.PromptFeedback.BlockReason != "" {
		return "", fmt.Errorf("response blocked by safety filters: %s", result.PromptFeedback.BlockReason)
	}
	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from gemini")
	}

	text := result.Candidates[0].Content.Parts[0].Text
	if text == "" {
		return "", fmt.Errorf("empty response from gemini")
	}
	return text, nil
}

var geminiDifficultyAudienceES = map[int]string{
	1: "estudiantes de secundaria",
	2: "estudiantes de preparatoria",
	3: "estudiantes universitarios de primer año",
	4: "estudiantes universitarios avanzados",
	5: "profesionales de química",
}

func buildGeminiReactionPrompt(reaction *models.Reaction, level string) string {
	audience, ok := geminiDifficultyAudienceES[reaction.DifficultyLevel]
	if !ok {
		audience = "estudiantes"
	}
	// The requested level can raise the audience above the reaction's own
	// difficulty rating.
	if NormalizeLevel(level) == LevelAdvanced {
		audience = geminiDifficultyAudienceES[5]
	}

	return fmt.Sprintf(`Eres un profesor de química experto. Explica la siguiente reacción química
REAL y VERIFICADA de forma educativa y precisa.

REACCIÓN A EXPLICAR:
%s

INFORMACIÓN ADICIONAL:
- Tipo de reacción: %s
- Cambio energético: %s
- Nivel del estudiante: %s

Por favor proporciona:

1. **¿Qué sucede en esta reacción?**
2. **¿Por qué ocurre esta reacción?**
3. **Aplicaciones en la vida real**
4. **Datos interesantes**
5. **Precauciones de seguridad** (si aplica)

IMPORTANTE:
- Responde en español
- Usa un lenguaje apropiado para %s
- Sé preciso científicamente
- Formatea con markdown para mejor legibilidad`,
		reaction.Equation,
		reaction.ReactionTypeNameES(),
		reaction.EnergyChangeNameES(),
		audience,
		audience,
	)
}

func buildGeminiElementPrompt(element *models.Element) string {
	return fmt.Sprintf(`Eres un profesor de química experto. Proporciona una explicación educativa
breve (máximo 200 palabras) sobre el siguiente elemento químico:

ELEMENTO: %s (%s)
Número atómico: %d
Categoría: %s

Incluye:
1. Propiedades principales
2. Dónde se encuentra en la naturaleza
3. Usos más importantes
4. Un dato curioso

Responde en español, de forma clara y educativa.`,
		element.NameES, element.Symbol,
		element.AtomicNumber,
		element.CategoryNameES(),
	)
}
