package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrybase/backend/internal/service"
)

type AllergenHandler struct {
	allergenService *service.AllergenService
}

func NewAllergenHandler(allergenService *service.AllergenService) *AllergenHandler {
	return &AllergenHandler{allergenService: allergenService}
}

func (h *AllergenHandler) ListAllergens(c *gin.Context) {
	allergens, err := h.allergenService.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"allergens": allergens})
}

func (h *AllergenHandler) GetAllergen(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	allergen, err := h.allergenService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, allergen)
}
