package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quimilab/backend/internal/logger"
	"github.com/quimilab/backend/internal/models"
)

type ElementHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewElementHandler(db *gorm.DB, log *logger.Logger) *ElementHandler {
	return &ElementHandler{db: db, log: log}
}

func (h *ElementHandler) RegisterRoutes(router *gin.RouterGroup) {
	elements := router.Group("/elements")
	{
		elements.GET("", h.ListElements)
		elements.GET("/by-category", h.ByCategory)
		elements.GET("/periodic-table", h.PeriodicTable)
		elements.GET("/:symbol", h.GetElement)
	}
}

// elementSummary is the lightweight shape used by list endpoints; the full
// model is reserved for the detail endpoint.
type elementSummary struct {
	AtomicNumber int     `json:"atomic_number"`
	Symbol       string  `json:"symbol"`
	NameES       string  `json:"name_es"`
	Category     string  `json:"category"`
	AtomicMass   float64 `json:"atomic_mass"`
	Group        int     `json:"group"`
	Period       int     `json:"period"`
	ColorHex     string  `json:"color_hex"`
}

func summarizeElement(e models.Element) elementSummary {
	return elementSummary{
		AtomicNumber: e.AtomicNumber,
		Symbol:       e.Symbol,
		NameES:       e.NameES,
		Category:     e.Category,
		AtomicMass:   e.AtomicMass,
		Group:        e.Group,
		Period:       e.Period,
		ColorHex:     e.ColorHex,
	}
}

func (h *ElementHandler) ListElements(c *gin.Context) {
	var elements []models.Element
	if err := h.db.WithContext(c.Request.Context()).Order("atomic_number").Find(&elements).Error; err != nil {
		h.log.Error("list elements failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	summaries := make([]elementSummary, 0, len(elements))
	for _, e := range elements {
		summaries = append(summaries, summarizeElement(e))
	}
	respondOK(c, http.StatusOK, gin.H{"count": len(summaries), "elements": summaries})
}

func (h *ElementHandler) GetElement(c *gin.Context) {
	symbol := sanitizeSymbol(c.Param("symbol"))
	if symbol == "" {
		respondError(c, http.StatusBadRequest, "Símbolo de elemento inválido")
		return
	}

	var element models.Element
	err := h.db.WithContext(c.Request.Context()).Where("symbol = ?", symbol).First(&element).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "Elemento no encontrado: "+symbol)
		return
	}
	if err != nil {
		h.log.Error("get element failed", "symbol", symbol, "error", err)
		respondError(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	respondOK(c, http.StatusOK, gin.H{
		"element":           element,
		"valence_electrons": element.ValenceElectrons(),
		"category_name":     element.CategoryNameES(),
	})
}

func (h *ElementHandler) ByCategory(c *gin.Context) {
	category := sanitizeQuery(c.Query("category"))
	if category == "" {
		respondError(c, http.StatusBadRequest, "El parámetro 'category' es requerido")
		return
	}

	var elements []models.Element
	if err := h.db.WithContext(c.Request.Context()).
		Where("category = ?", category).
		Order("atomic_number").
		Find(&elements).Error; err != nil {
		h.log.Error("list elements by category failed", "category", category, "error", err)
		respondError(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	summaries := make([]elementSummary, 0, len(elements))
	for _, e := range elements {
		summaries = append(summaries, summarizeElement(e))
	}
	respondOK(c, http.StatusOK, gin.H{"category": category, "count": len(summaries), "elements": summaries})
}

// PeriodicTable groups the elements by period for the frontend grid.
func (h *ElementHandler) PeriodicTable(c *gin.Context) {
	var elements []models.Element
	if err := h.db.WithContext(c.Request.Context()).
		Order("period").
		Order("group_number").
		Find(&elements).Error; err != nil {
		h.log.Error("periodic table query failed", "error", err)
		respondError(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	periods := make(map[int][]elementSummary)
	for _, e := range elements {
		periods[e.Period] = append(periods[e.Period], summarizeElement(e))
	}
	respondOK(c, http.StatusOK, gin.H{"periods": periods, "count": len(elements)})
}
