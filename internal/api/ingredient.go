package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantrybase/backend/internal/service"
	"github.com/pantrybase/backend/internal/types"
)

type IngredientHandler struct {
	ingredientService *service.IngredientService
}

func NewIngredientHandler(ingredientService *service.IngredientService) *IngredientHandler {
	return &IngredientHandler{ingredientService: ingredientService}
}

func (h *IngredientHandler) CreateIngredient(c *gin.Context) {
	var req types.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	allergenIDs, ok := parseUUIDs(c, req.AllergenIDs)
	if !ok {
		return
	}

	ingredient, err := h.ingredientService.Create(c.Request.Context(), req.Name, *req.Calories, allergenIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ingredient)
}

func (h *IngredientHandler) GetIngredient(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	ingredient, err := h.ingredientService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) UpdateIngredient(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	var req types.UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var allergenIDs []uuid.UUID
	if req.AllergenIDs != nil {
		var ok bool
		if allergenIDs, ok = parseUUIDs(c, req.AllergenIDs); !ok {
			return
		}
	}

	ingredient, err := h.ingredientService.Update(c.Request.Context(), id, req.Name, req.Calories, allergenIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, ingredient)
}

func (h *IngredientHandler) DeleteIngredient(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	if err := h.ingredientService.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "ingredient deleted successfully",
		"id":      id,
	})
}

func (h *IngredientHandler) ListIngredients(c *gin.Context) {
	ingredients, err := h.ingredientService.List(c.Request.Context(), c.Query("q"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"ingredients": ingredients})
}

func parseUUIDs(c *gin.Context, raw []string) ([]uuid.UUID, bool) {
	ids := make([]uuid.UUID, 0, len(raw))
	for _, r := range raw {
		id, err := uuid.Parse(r)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id: " + r})
			return nil, false
		}
		ids = append(ids, id)
	}
	return ids, true
}
