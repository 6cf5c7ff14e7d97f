package service

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"

	"github.com/quimilab/backend/internal/models"
)

// Matcher result limits.
const (
	maxPartialMatches = 5
	maxSuggestions    = 8
)

// Matcher determines which verified reactions a set of selected element
// symbols can form. Callers are expected to have validated the symbols
// against the element store already.
type Matcher struct {
	db *gorm.DB
}

// NewMatcher creates a matcher over the reaction store.
func NewMatcher(db *gorm.DB) *Matcher {
	return &Matcher{db: db}
}

// MatchResult is the outcome of FindReactions. Exact and partial matches
// are mutually exclusive: when any exact match exists only exact matches
// are reported.
type MatchResult struct {
	Exact   []models.Reaction
	Partial []models.Reaction
}

// Found reports whether any match was found.
func (r MatchResult) Found() bool {
	return len(r.Exact) > 0 || len(r.Partial) > 0
}

// Reactions returns the reactions the result reports: exact matches when
// any exist, otherwise at most 5 partial matches in scan order.
func (r MatchResult) Reactions() []models.Reaction {
	if len(r.Exact) > 0 {
		return r.Exact
	}
	return r.Partial
}

// FindReactions scans the verified reactions and classifies each against
// the selected symbols:
//   - exact: the reaction's reactant symbol set equals the selection
//   - partial: the selection is a proper subset of the reactant set, or,
//     for a single selected symbol, intersects it at all
func (m *Matcher) FindReactions(ctx context.Context, symbols []string) (MatchResult, error) {
	selected := symbolSet(symbols)

	reactions, err := m.verifiedReactions(ctx)
	if err != nil {
		return MatchResult{}, err
	}

	var result MatchResult
	for _, reaction := range reactions {
		reactantSet := reaction.ReactantSymbols()

		switch {
		case setsEqual(selected, reactantSet):
			result.Exact = append(result.Exact, reaction)
		case isProperSubset(selected, reactantSet):
			if len(result.Partial) < maxPartialMatches {
				result.Partial = append(result.Partial, reaction)
			}
		case len(selected) == 1 && intersectionSize(selected, reactantSet) > 0:
			if len(result.Partial) < maxPartialMatches {
				result.Partial = append(result.Partial, reaction)
			}
		}
	}

	return result, nil
}

// Suggest returns up to 8 verified reactions sharing at least one reactant
// with the selection, ordered by intersection size descending; ties keep
// scan order.
func (m *Matcher) Suggest(ctx context.Context, symbols []string) ([]models.Reaction, error) {
	selected := symbolSet(symbols)

	reactions, err := m.verifiedReactions(ctx)
	if err != nil {
		return nil, err
	}

	type scored struct {
		reaction models.Reaction
		score    int
	}
	var candidates []scored
	for _, reaction := range reactions {
		score := intersectionSize(selected, reaction.ReactantSymbols())
		if score > 0 {
			candidates = append(candidates, scored{reaction, score})
		}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > maxSuggestions {
		candidates = candidates[:maxSuggestions]
	}

	suggestions := make([]models.Reaction, 0, len(candidates))
	for _, c := range candidates {
		suggestions = append(suggestions, c.reaction)
	}
	return suggestions, nil
}

// NoMatchMessage builds the user-facing message for a selection with no
// known reaction. Noble gases get their own wording.
func NoMatchMessage(symbols []string) string {
	var nobles []string
	for _, s := range symbols {
		if models.NobleGases[s] {
			nobles = append(nobles, s)
		}
	}

	joined := strings.Join(symbols, ", ")
	if len(nobles) > 0 {
		return fmt.Sprintf(
			"Los elementos %s no forman una reacción conocida. Nota: %s es/son gas(es) noble(s) y generalmente no reaccionan debido a su configuración electrónica estable.",
			joined, strings.Join(nobles, ", "))
	}

	return fmt.Sprintf(
		"No se encontró una reacción conocida entre %s. Esto puede deberse a que estos elementos no reaccionan entre sí bajo condiciones normales, o la reacción no está en nuestra base de datos. Prueba con una combinación diferente.",
		joined)
}

// verifiedReactions loads verified reactions in insertion order; matching
// and suggestion results preserve that scan order.
func (m *Matcher) verifiedReactions(ctx context.Context) ([]models.Reaction, error) {
	var reactions []models.Reaction
	if err := m.db.WithContext(ctx).
		Where("is_verified = ?", true).
		Order("id").
		Find(&reactions).Error; err != nil {
		return nil, fmt.Errorf("load verified reactions: %w", err)
	}
	return reactions, nil
}

func symbolSet(symbols []string) map[string]bool {
	set := make(map[string]bool, len(symbols))
	for _, s := range symbols {
		set[s] = true
	}
	return set
}

func setsEqual(a, b map[string]bool) bool {
	if len(a) != len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

// isProperSubset reports whether a ⊂ b strictly.
func isProperSubset(a, b map[string]bool) bool {
	if len(a) >= len(b) {
		return false
	}
	for k := range a {
		if !b[k] {
			return false
		}
	}
	return true
}

func intersectionSize(a, b map[string]bool) int {
	n := 0
	for k := range a {
		if b[k] {
			n++
		}
	}
	return n
}
