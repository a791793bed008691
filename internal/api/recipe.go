package api

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pantrybase/backend/internal/models"
	"github.com/pantrybase/backend/internal/service"
	"github.com/pantrybase/backend/internal/types"
)

type RecipeHandler struct {
	recipeService  *service.RecipeService
	profileService *service.ProfileService
	imageService   *service.ImageService
}

// NewRecipeHandler wires the recipe endpoints. imageService may be nil when
// no object storage is configured; photo upload then responds 503.
func NewRecipeHandler(recipeService *service.RecipeService, profileService *service.ProfileService, imageService *service.ImageService) *RecipeHandler {
	return &RecipeHandler{
		recipeService:  recipeService,
		profileService: profileService,
		imageService:   imageService,
	}
}

// recipeResponse is a recipe with its derived allergen set attached.
type recipeResponse struct {
	models.Recipe
	Allergens []models.Allergen `json:"allergens"`
}

func newRecipeResponse(r *models.Recipe) recipeResponse {
	allergens := service.DerivedAllergens(r)
	if allergens == nil {
		allergens = []models.Allergen{}
	}
	return recipeResponse{Recipe: *r, Allergens: allergens}
}

func (h *RecipeHandler) CreateRecipe(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.CreateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"recipe": newRecipeResponse(recipe)})
}

func (h *RecipeHandler) GetRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}

	recipe, err := h.recipeService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(recipe))
}

func (h *RecipeHandler) UpdateRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.UpdateRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.Update(c.Request.Context(), id, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, newRecipeResponse(recipe))
}

func (h *RecipeHandler) DeleteRecipe(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.recipeService.Delete(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "recipe deleted successfully",
		"id":      id,
	})
}

// ListRecipes returns recipes filtered by allergen exclusion. The exclusion
// set comes from the exclude query parameter (comma-separated allergen
// IDs); when absent, the caller's avoided allergens apply.
func (h *RecipeHandler) ListRecipes(c *gin.Context) {
	var exclude []uuid.UUID

	if ex, present := c.GetQuery("exclude"); present {
		for _, raw := range strings.Split(ex, ",") {
			raw = strings.TrimSpace(raw)
			if raw == "" {
				continue
			}
			id, err := uuid.Parse(raw)
			if err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid allergen id: " + raw})
				return
			}
			exclude = append(exclude, id)
		}
	} else if v, authed := c.Get("user_id"); authed {
		if userID, ok := v.(uuid.UUID); ok {
			ids, err := h.profileService.AvoidedAllergenIDs(c.Request.Context(), userID)
			if err != nil {
				respondError(c, err)
				return
			}
			exclude = ids
		}
	}

	recipes, err := h.recipeService.List(c.Request.Context(), exclude)
	if err != nil {
		respondError(c, err)
		return
	}

	views := make([]recipeResponse, len(recipes))
	for i := range recipes {
		views[i] = newRecipeResponse(&recipes[i])
	}
	c.JSON(http.StatusOK, gin.H{"recipes": views})
}

// SuggestRecipes is the pantry-based suggestion endpoint. Unbuilt; always
// responds 501 rather than guessing.
func (h *RecipeHandler) SuggestRecipes(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if _, err := h.recipeService.SuggestByPantry(c.Request.Context(), userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipes": []recipeResponse{}})
}

func (h *RecipeHandler) AddRecipeIngredient(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	var req types.RecipeIngredientInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	recipe, err := h.recipeService.AddIngredient(c.Request.Context(), id, userID, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"recipe": newRecipeResponse(recipe)})
}

func (h *RecipeHandler) RemoveRecipeIngredient(c *gin.Context) {
	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	ingredientID, ok := pathUUID(c, "ingredient_id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	if err := h.recipeService.RemoveIngredient(c.Request.Context(), id, userID, ingredientID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ingredient removed from recipe"})
}

// UploadRecipeImage stores a photo for the recipe and records its URL.
func (h *RecipeHandler) UploadRecipeImage(c *gin.Context) {
	if h.imageService == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "image storage not configured"})
		return
	}

	id, ok := pathUUID(c, "id")
	if !ok {
		return
	}
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "image file is required"})
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file must be an image"})
		return
	}

	url, err := h.imageService.UploadRecipeImage(c.Request.Context(), id, file, contentType)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.recipeService.SetImageURL(c.Request.Context(), id, userID, url); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"image_url": url})
}
