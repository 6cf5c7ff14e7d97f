package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quimilab/backend/internal/logger"
	"github.com/quimilab/backend/internal/models"
	"github.com/quimilab/backend/internal/service"
)

type ReactionHandler struct {
	db      *gorm.DB
	matcher *service.Matcher
	log     *logger.Logger
}

func NewReactionHandler(db *gorm.DB, matcher *service.Matcher, log *logger.Logger) *ReactionHandler {
	return &ReactionHandler{db: db, matcher: matcher, log: log}
}

func (h *ReactionHandler) RegisterRoutes(router *gin.RouterGroup) {
	reactions := router.Group("/reactions")
	{
		reactions.GET("", h.ListReactions)
		reactions.GET("/by-type/:type", h.ByType)
		reactions.GET("/:id", h.GetReaction)
		reactions.GET("/:id/animation", h.GetAnimation)
		reactions.POST("/validate", h.ValidateSelection)
	}
}

// reactionSummary is the lightweight shape used by lists and match results.
type reactionSummary struct {
	ID              uint   `json:"id"`
	Name            string `json:"name"`
	Equation        string `json:"equation"`
	ReactionType    string `json:"reaction_type"`
	ReactionTypeES  string `json:"reaction_type_es"`
	EnergyChange    string `json:"energy_change"`
	DifficultyLevel int    `json:"difficulty_level"`
}

func summarizeReaction(r models.Reaction) reactionSummary {
	return reactionSummary{
		ID:              r.ID,
		Name:            r.Name,
		Equation:        r.Equation,
		ReactionType:    r.ReactionType,
		ReactionTypeES:  r.ReactionTypeNameES(),
		EnergyChange:    r.EnergyChange,
		DifficultyLevel: r.DifficultyLevel,
	}
}

func summarizeReactions(reactions []models.Reaction) []reactionSummary {
	summaries := make([]reactionSummary, 0, len(reactions))
	for _, r := range reactions {
		summaries = append(summaries, summarizeReaction(r))
	}
	return summaries
}

func (h *ReactionHandler) ListReactions(c *gin.Context) {
	query := h.db.WithContext(c.Request.Context()).Where("is_verified = ?", true)

	if reactionType := sanitizeQuery(c.Query("type")); reactionType != "" {
		query = query.Where("reaction_type = ?", reactionType)
	}
	if difficulty := sanitizeQuery(c.Query("difficulty")); difficulty != "" {
		query = query.Where("difficulty_level = ?", difficulty)
	}

	var reactions []models.Reaction
	if err := query.Order("id").Find(&reactions).Error; err != nil {
		h.log.Error("list reactions failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"count":     len(reactions),
		"reactions": summarizeReactions(reactions),
	})
}

// loadVerifiedReaction fetches a verified reaction by path id, writing the
// 404 envelope itself when missing. Unverified reactions are invisible.
func (h *ReactionHandler) loadVerifiedReaction(c *gin.Context) (*models.Reaction, bool) {
	var reaction models.Reaction
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND is_verified = ?", c.Param("id"), true).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "Reacción no encontrada")
		return nil, false
	}
	if err != nil {
		h.log.Error("load reaction failed", "id", c.Param("id"), "error", err)
		respondError(c, http.StatusInternalServerError, "Error interno del servidor")
		return nil, false
	}
	return &reaction, true
}

func (h *ReactionHandler) GetReaction(c *gin.Context) {
	reaction, ok := h.loadVerifiedReaction(c)
	if !ok {
		return
	}
	respondOK(c, http.StatusOK, gin.H{"reaction": reaction})
}

func (h *ReactionHandler) GetAnimation(c *gin.Context) {
	reaction, ok := h.loadVerifiedReaction(c)
	if !ok {
		return
	}
	respondOK(c, http.StatusOK, gin.H{
		"reaction_id": reaction.ID,
		"equation":    reaction.Equation,
		"animation":   reaction.AnimationData,
	})
}

func (h *ReactionHandler) ByType(c *gin.Context) {
	reactionType := sanitizeQuery(c.Param("type"))

	var reactions []models.Reaction
	if err := h.db.WithContext(c.Request.Context()).
		Where("is_verified = ? AND reaction_type = ?", true, reactionType).
		Order("id").
		Find(&reactions).Error; err != nil {
		h.log.Error("list reactions by type failed", "type", reactionType, "error", err)
		respondError(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"reaction_type": reactionType,
		"count":         len(reactions),
		"reactions":     summarizeReactions(reactions),
	})
}

// ValidateRequest is the body of POST /api/reactions/validate.
type ValidateRequest struct {
	Elements []string `json:"elements" binding:"required,min=1,max=5"`
}

// ValidateSelection checks whether the selected elements form a known
// verified reaction, and suggests near misses when they do not.
func (h *ReactionHandler) ValidateSelection(c *gin.Context) {
	var req ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Debes seleccionar entre 1 y 5 elementos")
		return
	}

	symbols, badInput := normalizeSymbols(req.Elements)
	if badInput {
		respondError(c, http.StatusBadRequest, "Debes seleccionar entre 1 y 5 elementos")
		return
	}

	unknown, err := h.unknownSymbols(c, symbols)
	if err != nil {
		h.log.Error("element lookup failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}
	if len(unknown) > 0 {
		respondError(c, http.StatusBadRequest,
			fmt.Sprintf("Elementos no encontrados: %s", strings.Join(unknown, ", ")))
		return
	}

	result, err := h.matcher.FindReactions(c.Request.Context(), symbols)
	if err != nil {
		h.log.Error("reaction matching failed", "symbols", symbols, "error", err)
		respondError(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	if result.Found() {
		matchType := "exact"
		if len(result.Exact) == 0 {
			matchType = "partial"
		}
		respondOK(c, http.StatusOK, gin.H{
			"found":      true,
			"match_type": matchType,
			"elements":   symbols,
			"reactions":  summarizeReactions(result.Reactions()),
		})
		return
	}

	suggestions, err := h.matcher.Suggest(c.Request.Context(), symbols)
	if err != nil {
		h.log.Error("reaction suggestion failed", "symbols", symbols, "error", err)
		respondError(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"found":       false,
		"elements":    symbols,
		"message":     service.NoMatchMessage(symbols),
		"suggestions": summarizeReactions(suggestions),
	})
}

// normalizeSymbols sanitizes and deduplicates the selection, preserving
// order. Reports bad input when sanitization empties a symbol or the
// deduplicated selection leaves the 1–5 range.
func normalizeSymbols(raw []string) ([]string, bool) {
	seen := make(map[string]bool, len(raw))
	symbols := make([]string, 0, len(raw))
	for _, r := range raw {
		s := sanitizeSymbol(r)
		if s == "" || len(s) > 3 {
			return nil, true
		}
		if seen[s] {
			continue
		}
		seen[s] = true
		symbols = append(symbols, s)
	}
	if len(symbols) == 0 || len(symbols) > 5 {
		return nil, true
	}
	return symbols, false
}

// unknownSymbols returns the selected symbols missing from the element store.
func (h *ReactionHandler) unknownSymbols(c *gin.Context, symbols []string) ([]string, error) {
	var known []string
	if err := h.db.WithContext(c.Request.Context()).
		Model(&models.Element{}).
		Where("symbol IN ?", symbols).
		Pluck("symbol", &known).Error; err != nil {
		return nil, err
	}

	knownSet := make(map[string]bool, len(known))
	for _, s := range known {
		knownSet[s] = true
	}

	var unknown []string
	for _, s := range symbols {
		if !knownSet[s] {
			unknown = append(unknown, s)
		}
	}
	return unknown, nil
}
