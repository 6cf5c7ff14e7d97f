package service

import (
	"context"

	"github.com/quimilab/backend/internal/models"
)

// Explanation detail levels.
const (
	LevelBasic        = "basic"
	LevelIntermediate = "intermediate"
	LevelAdvanced     = "advanced"
)

// NormalizeLevel maps unknown level values to the intermediate default.
func NormalizeLevel(level string) string {
	switch level {
	case LevelBasic, LevelIntermediate, LevelAdvanced:
		return level
	default:
		return LevelIntermediate
	}
}

// Provider is one explanation-generation backend: a local model server, a
// cloud API, or the static template engine. Generation errors are internal
// to the cascade and never surface to API clients.
type Provider interface {
	// Name identifies the provider in the response's source field.
	Name() string
	// Available reports whether the provider is worth attempting.
	Available(ctx context.Context) bool
	// ExplainReaction generates an explanation for a verified reaction.
	ExplainReaction(ctx context.Context, reaction *models.Reaction, level string) (string, error)
	// ExplainElement generates an explanation for an element.
	ExplainElement(ctx context.Context, element *models.Element, level string) (string, error)
}

// Explanation is the cascade's result. The cascade is total: Text is never
// empty and the cascade itself never returns an error.
type Explanation struct {
	Text   string `json:"explanation"`
	Source string `json:"source"`
}
