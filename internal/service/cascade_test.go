package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quimilab/backend/internal/logger"
	"github.com/quimilab/backend/internal/models"
)

// fakeProvider is a scripted provider for cascade tests.
type fakeProvider struct {
	name      string
	available bool
	text      string
	err       error
	calls     int
}

func (f *fakeProvider) Name() string                           { return f.name }
func (f *fakeProvider) Available(ctx context.Context) bool     { return f.available }
func (f *fakeProvider) ExplainReaction(ctx context.Context, reaction *models.Reaction, level string) (string, error) {
	f.calls++
	return f.text, f.err
}
func (f *fakeProvider) ExplainElement(ctx context.Context, element *models.Element, level string) (string, error) {
	f.calls++
	return f.text, f.err
}

func TestCascadeFirstProviderWins(t *testing.T) {
	first := &fakeProvider{name: "primary", available: true, text: "una explicación suficientemente larga del experimento"}
	second := &fakeProvider{name: "secondary", available: true, text: "no debería usarse nunca en este caso"}
	cascade := NewCascade(logger.NewNop(), first, second)

	result := cascade.ExplainReaction(context.Background(), saltFormationReaction(), LevelBasic)

	assert.Equal(t, "primary", result.Source)
	assert.Equal(t, first.text, result.Text)
	assert.Equal(t, 1, first.calls)
	assert.Zero(t, second.calls)
}

func TestCascadeSkipsUnavailableProvider(t *testing.T) {
	down := &fakeProvider{name: "primary", available: false}
	up := &fakeProvider{name: "secondary", available: true, text: "la segunda opción produce esta explicación válida"}
	cascade := NewCascade(logger.NewNop(), down, up)

	result := cascade.ExplainElement(context.Background(), sodiumElement(), LevelBasic)

	assert.Equal(t, "secondary", result.Source)
	assert.Zero(t, down.calls)
	assert.Equal(t, 1, up.calls)
}

func TestCascadeFallsThroughOnError(t *testing.T) {
	failing := &fakeProvider{name: "primary", available: true, err: errors.New("connection refused")}
	backup := &fakeProvider{name: "secondary", available: true, text: "la reserva entrega una explicación completa y válida"}
	cascade := NewCascade(logger.NewNop(), failing, backup)

	result := cascade.ExplainReaction(context.Background(), saltFormationReaction(), LevelIntermediate)

	assert.Equal(t, "secondary", result.Source)
	// exactly one attempt per provider, no retries
	assert.Equal(t, 1, failing.calls)
	assert.Equal(t, 1, backup.calls)
}

func TestCascadeRejectsShortResponses(t *testing.T) {
	terse := &fakeProvider{name: "primary", available: true, text: "muy corto"}
	cascade := NewCascade(logger.NewNop(), terse)

	result := cascade.ExplainReaction(context.Background(), saltFormationReaction(), LevelBasic)

	assert.Equal(t, SourceLocalTemplate, result.Source)
	assert.Equal(t, 1, terse.calls)
}

func TestCascadeCleansProviderOutput(t *testing.T) {
	noisy := &fakeProvider{
		name:      "primary",
		available: true,
		text:      "<think>razonando sobre la pregunta</think>Explicación: El sodio reacciona vigorosamente con el cloro.",
	}
	cascade := NewCascade(logger.NewNop(), noisy)

	result := cascade.ExplainReaction(context.Background(), saltFormationReaction(), LevelBasic)

	assert.Equal(t, "primary", result.Source)
	assert.Equal(t, "El sodio reacciona vigorosamente con el cloro.", result.Text)
}

func TestCascadeTotalWithoutProviders(t *testing.T) {
	cascade := NewCascade(logger.NewNop())

	reaction := cascade.ExplainReaction(context.Background(), saltFormationReaction(), "nonsense-level")
	require.NotEmpty(t, reaction.Text)
	assert.Equal(t, SourceLocalTemplate, reaction.Source)

	element := cascade.ExplainElement(context.Background(), sodiumElement(), "")
	require.NotEmpty(t, element.Text)
	assert.Equal(t, SourceLocalTemplate, element.Source)
}

func TestCascadeStatus(t *testing.T) {
	up := &fakeProvider{name: "primary", available: true}
	down := &fakeProvider{name: "secondary", available: false}
	cascade := NewCascade(logger.NewNop(), up, down)

	status := cascade.Status(context.Background())

	assert.Equal(t, map[string]bool{
		"primary":           true,
		"secondary":         false,
		SourceLocalTemplate: true,
	}, status)
}
