package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/quimilab/backend/internal/logger"
	"github.com/quimilab/backend/internal/models"
)

type MoleculeHandler struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewMoleculeHandler(db *gorm.DB, log *logger.Logger) *MoleculeHandler {
	return &MoleculeHandler{db: db, log: log}
}

func (h *MoleculeHandler) RegisterRoutes(router *gin.RouterGroup) {
	molecules := router.Group("/molecules")
	{
		molecules.GET("/search", h.Search)
		molecules.GET("/:formula", h.GetByFormula)
	}
}

// GetByFormula looks up a molecule by chemical formula. The stored formula
// casing (H2O, NaCl) is matched case-insensitively.
func (h *MoleculeHandler) GetByFormula(c *gin.Context) {
	formula := sanitizeQuery(c.Param("formula"))
	if formula == "" {
		respondError(c, http.StatusBadRequest, "Fórmula inválida")
		return
	}

	var molecule models.Molecule
	err := h.db.WithContext(c.Request.Context()).
		Where("UPPER(formula) = ?", strings.ToUpper(formula)).
		First(&molecule).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		respondError(c, http.StatusNotFound, "Molécula no encontrada: "+formula)
		return
	}
	if err != nil {
		h.log.Error("get molecule failed", "formula", formula, "error", err)
		respondError(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"molecule": molecule})
}

// Search matches molecules by formula or name substring; queries under two
// characters are rejected to keep result sets meaningful.
func (h *MoleculeHandler) Search(c *gin.Context) {
	q := sanitizeQuery(c.Query("q"))
	if len(q) < 2 {
		respondError(c, http.StatusBadRequest, "La búsqueda requiere al menos 2 caracteres")
		return
	}

	like := "%" + strings.ToLower(q) + "%"
	var molecules []models.Molecule
	if err := h.db.WithContext(c.Request.Context()).
		Where("LOWER(formula) LIKE ? OR LOWER(name) LIKE ? OR LOWER(name_es) LIKE ?", like, like, like).
		Order("formula").
		Find(&molecules).Error; err != nil {
		h.log.Error("molecule search failed", "query", q, "error", err)
		respondError(c, http.StatusInternalServerError, "Error interno del servidor")
		return
	}

	respondOK(c, http.StatusOK, gin.H{"query": q, "count": len(molecules), "molecules": molecules})
}
