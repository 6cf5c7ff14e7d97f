package service

import (
	"context"
	"strings"

	"gorm.io/datatypes"

	"github.com/quimilab/backend/internal/logger"
	"github.com/quimilab/backend/internal/models"
)

// Cascade tries an ordered list of providers until one produces a usable
// explanation. The last provider must be the template engine, which cannot
// fail, so Explain* never errors and never returns an empty string. Each
// provider gets exactly one attempt per request.
type Cascade struct {
	providers []Provider
	fallback  *LocalTemplateProvider
	log       *logger.Logger
}

// NewCascade builds a cascade over the given providers, in order. The
// template fallback is appended implicitly as the terminal tier.
func NewCascade(log *logger.Logger, providers ...Provider) *Cascade {
	return &Cascade{
		providers: providers,
		fallback:  NewLocalTemplateProvider(),
		log:       log,
	}
}

// ExplainReaction generates an explanation for a verified reaction.
func (c *Cascade) ExplainReaction(ctx context.Context, reaction *models.Reaction, level string) Explanation {
	level = NormalizeLevel(level)

	for _, provider := range c.providers {
		if !provider.Available(ctx) {
			c.log.Debug("provider unavailable, skipping", "provider", provider.Name())
			continue
		}

		raw, err := provider.ExplainReaction(ctx, reaction, level)
		if err != nil {
			c.log.Warn("provider failed, falling through",
				"provider", provider.Name(), "reaction_id", reaction.ID, "error", err)
			continue
		}

		cleaned := CleanResponse(raw)
		if !usable(cleaned) {
			c.log.Warn("provider returned unusable response, falling through",
				"provider", provider.Name(), "reaction_id", reaction.ID, "length", len(cleaned))
			continue
		}

		return Explanation{Text: cleaned, Source: provider.Name()}
	}

	// Terminal tier: pure formatting over validated fields, cannot fail.
	text, _ := c.fallback.ExplainReaction(ctx, reaction, level)
	return Explanation{Text: text, Source: c.fallback.Name()}
}

// ExplainElement generates an explanation for an element.
func (c *Cascade) ExplainElement(ctx context.Context, element *models.Element, level string) Explanation {
	level = NormalizeLevel(level)

	for _, provider := range c.providers {
		if !provider.Available(ctx) {
			c.log.Debug("provider unavailable, skipping", "provider", provider.Name())
			continue
		}

		raw, err := provider.ExplainElement(ctx, element, level)
		if err != nil {
			c.log.Warn("provider failed, falling through",
				"provider", provider.Name(), "symbol", element.Symbol, "error", err)
			continue
		}

		cleaned := CleanResponse(raw)
		if !usable(cleaned) {
			c.log.Warn("provider returned unusable response, falling through",
				"provider", provider.Name(), "symbol", element.Symbol, "length", len(cleaned))
			continue
		}

		return Explanation{Text: cleaned, Source: provider.Name()}
	}

	text, _ := c.fallback.ExplainElement(ctx, element, level)
	return Explanation{Text: text, Source: c.fallback.Name()}
}

// Status reports each provider's current availability, plus the always-on
// template tier.
func (c *Cascade) Status(ctx context.Context) map[string]bool {
	status := make(map[string]bool, len(c.providers)+1)
	for _, provider := range c.providers {
		status[provider.Name()] = provider.Available(ctx)
	}
	status[c.fallback.Name()] = true
	return status
}

// describeReagents renders a stored reagent list for prompt context.
func describeReagents(data datatypes.JSON) string {
	reagents, err := decodeReagentsJSON(data)
	if err != nil || len(reagents) == 0 {
		return "No especificado"
	}

	names := make([]string, 0, len(reagents))
	for _, r := range reagents {
		if name := r.Display(); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return "No especificado"
	}
	return strings.Join(names, ", ")
}

func decodeReagentsJSON(data datatypes.JSON) ([]models.Reagent, error) {
	r := models.Reaction{Reactants: data}
	return r.ReactantList()
}
