package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/pantrybase/backend/internal/service"
	"github.com/pantrybase/backend/internal/types"
)

type PantryHandler struct {
	pantryService *service.PantryService
}

func NewPantryHandler(pantryService *service.PantryService) *PantryHandler {
	return &PantryHandler{pantryService: pantryService}
}

func (h *PantryHandler) ListPantry(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	items, err := h.pantryService.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"pantry": items})
}

// AddPantryItem adds an ingredient to the caller's pantry, or updates its
// quantity when already present.
func (h *PantryHandler) AddPantryItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.AddPantryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ids, ok := parseUUIDs(c, []string{req.IngredientID})
	if !ok {
		return
	}

	item, err := h.pantryService.Add(c.Request.Context(), userID, ids[0], req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

func (h *PantryHandler) RemovePantryItem(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}
	ingredientID, ok := pathUUID(c, "ingredient_id")
	if !ok {
		return
	}

	if err := h.pantryService.Remove(c.Request.Context(), userID, ingredientID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ingredient removed from pantry"})
}
