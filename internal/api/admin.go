package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/pantrybase/backend/internal/models"
	"github.com/pantrybase/backend/internal/service"
	"github.com/pantrybase/backend/internal/types"
)

// AdminHandler serves the superuser-only surface: account overview and
// registry management.
type AdminHandler struct {
	db              *gorm.DB
	allergenService *service.AllergenService
}

func NewAdminHandler(db *gorm.DB, allergenService *service.AllergenService) *AdminHandler {
	return &AdminHandler{db: db, allergenService: allergenService}
}

func (h *AdminHandler) ListUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.WithContext(c.Request.Context()).Order("created_at").Find(&users).Error; err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"users": users})
}

// CreateAllergen adds a custom entry to the global allergen registry.
func (h *AdminHandler) CreateAllergen(c *gin.Context) {
	var req types.CreateAllergenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allergen, err := h.allergenService.Create(c.Request.Context(), req.Name, req.Description, req.AlternativeNames)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, allergen)
}
