package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quimilab/backend/internal/logger"
	"github.com/quimilab/backend/internal/models"
	"github.com/quimilab/backend/internal/service"
)

// SourceLocalFallback marks explanations produced after the handler itself
// recovered from a generation crash, as opposed to an orderly cascade fall
// through to the template tier.
const SourceLocalFallback = "local_fallback"

type AIHandler struct {
	db      *gorm.DB
	cascade *service.Cascade
	log     *logger.Logger
}

func NewAIHandler(db *gorm.DB, cascade *service.Cascade, log *logger.Logger) *AIHandler {
	return &AIHandler{db: db, cascade: cascade, log: log}
}

// RegisterRoutes mounts the AI endpoints. The optional throttle applies to
// the generation endpoints only; status stays unthrottled so frontends can
// poll it.
func (h *AIHandler) RegisterRoutes(router *gin.RouterGroup, throttle ...gin.HandlerFunc) {
	ai := router.Group("/ai")
	{
		ai.POST("/explain-reaction", append(throttle, h.ExplainReaction)...)
		ai.POST("/explain-element", append(throttle, h.ExplainElement)...)
		ai.GET("/status", h.Status)
	}
}

// ExplainReactionRequest is the body of POST /api/ai/explain-reaction.
type ExplainReactionRequest struct {
	ReactionID uint   `json:"reaction_id" binding:"required"`
	Level      string `json:"level"`
}

// ExplainElementRequest is the body of POST /api/ai/explain-element. One of
// symbol or atomic_number identifies the element.
type ExplainElementRequest struct {
	Symbol       string `json:"symbol"`
	AtomicNumber int    `json:"atomic_number"`
	Level        string `json:"level"`
}

func (h *AIHandler) ExplainReaction(c *gin.Context) {
	var req ExplainReactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "El campo 'reaction_id' es requerido")
		return
	}

	var reaction models.Reaction
	err := h.db.WithContext(c.Request.Context()).
		Where("id = ? AND is_verified = ?", req.ReactionID, true).
		First(&reaction).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "Reacción no encontrada")
		return
	}
	if err != nil {
		h.log.Error("load reaction for explanation failed", "id", req.ReactionID, "error", err)
		respondError(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	level := service.NormalizeLevel(req.Level)
	explanation := h.explainReactionSafely(c.Request.Context(), &reaction, level)

	respondOK(c, http.StatusOK, gin.H{
		"reaction":    summarizeReaction(reaction),
		"level":       level,
		"explanation": explanation.Text,
		"source":      explanation.Source,
	})
}

func (h *AIHandler) ExplainElement(c *gin.Context) {
	var req ExplainElementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "Cuerpo de solicitud inválido")
		return
	}

	symbol := sanitizeSymbol(req.Symbol)
	if symbol == "" && req.AtomicNumber <= 0 {
		respondError(c, http.StatusBadRequest, "Se requiere 'symbol' o 'atomic_number'")
		return
	}

	query := h.db.WithContext(c.Request.Context())
	if symbol != "" {
		query = query.Where("symbol = ?", symbol)
	} else {
		query = query.Where("atomic_number = ?", req.AtomicNumber)
	}

	var element models.Element
	err := query.First(&element).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "Elemento no encontrado")
		return
	}
	if err != nil {
		h.log.Error("load element for explanation failed", "symbol", symbol, "error", err)
		respondError(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	level := service.NormalizeLevel(req.Level)
	explanation := h.explainElementSafely(c.Request.Context(), &element, level)

	respondOK(c, http.StatusOK, gin.H{
		"element": gin.H{
			"atomic_number": element.AtomicNumber,
			"symbol":        element.Symbol,
			"name_es":       element.NameES,
			"category":      element.Category,
		},
		"level":       level,
		"explanation": explanation.Text,
		"source":      explanation.Source,
	})
}

// Status reports each cascade tier's availability.
func (h *AIHandler) Status(c *gin.Context) {
	respondOK(c, http.StatusOK, gin.H{
		"providers": h.cascade.Status(c.Request.Context()),
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// explainReactionSafely shields the endpoint from generation crashes: a
// panic anywhere in the cascade demotes the response to the template text
// under the local_fallback source, never an error.
func (h *AIHandler) explainReactionSafely(ctx context.Context, reaction *models.Reaction, level string) (result service.Explanation) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("explanation generation panicked", "reaction_id", reaction.ID, "panic", r)
			text, _ := service.NewLocalTemplateProvider().ExplainReaction(ctx, reaction, level)
			result = service.Explanation{Text: text, Source: SourceLocalFallback}
		}
	}()
	return h.cascade.ExplainReaction(ctx, reaction, level)
}

func (h *AIHandler) explainElementSafely(ctx context.Context, element *models.Element, level string) (result service.Explanation) {
	defer func() {
		if r := recover(); r != nil {
			h.log.Error("explanation generation panicked", "symbol", element.Symbol, "panic", r)
			text, _ := service.NewLocalTemplateProvider().ExplainElement(ctx, element, level)
			result = service.Explanation{Text: text, Source: SourceLocalFallback}
		}
	}()
	return h.cascade.ExplainElement(ctx, element, level)
}
