package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrybase/backend/internal/models"
	"github.com/pantrybase/backend/internal/types"
)

// RecipeService handles the recipe catalog. A recipe's allergen set is
// derived from its ingredients; there is no independently declared set.
type RecipeService struct {
	db *gorm.DB
}

func NewRecipeService(db *gorm.DB) *RecipeService {
	return &RecipeService{db: db}
}

// Create stores a recipe with its ingredient associations. Titles are
// unique per author.
func (s *RecipeService) Create(ctx context.Context, userID uuid.UUID, req *types.CreateRecipeRequest) (*models.Recipe, error) {
	var existing models.Recipe
	if err := s.db.WithContext(ctx).Where("title = ? AND user_id = ?", req.Title, userID).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: recipe %q", ErrAlreadyExists, req.Title)
	}

	recipe := models.Recipe{
		Title:        req.Title,
		UserID:       userID,
		Instructions: models.JSONBStringArray(req.Instructions),
		Servings:     req.Servings,
		PrepTime:     req.PrepTime,
		CookTime:     req.CookTime,
		Difficulty:   req.Difficulty,
	}
	if recipe.Servings == 0 {
		recipe.Servings = 4
	}
	if recipe.Difficulty == "" {
		recipe.Difficulty = "medium"
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&recipe).Error; err != nil {
			return err
		}
		for i, input := range req.Ingredients {
			ingredientID, err := uuid.Parse(input.IngredientID)
			if err != nil {
				return fmt.Errorf("%w: ingredient id %q", ErrInvalidInput, input.IngredientID)
			}
			var ingredient models.Ingredient
			if err := tx.First(&ingredient, "id = ?", ingredientID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: ingredient %s", ErrNotFound, ingredientID)
				}
				return err
			}
			ri := models.RecipeIngredient{
				RecipeID:     recipe.ID,
				IngredientID: ingredientID,
				Amount:       input.Amount,
				Unit:         input.Unit,
				Note:         input.Note,
				Position:     i,
			}
			if err := tx.Create(&ri).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, recipe.ID)
}

// Get returns a recipe with its ingredient list and their allergens.
func (s *RecipeService) Get(ctx context.Context, id uuid.UUID) (*models.Recipe, error) {
	var recipe models.Recipe
	err := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Ingredients.Ingredient.Allergens").
		First(&recipe, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &recipe, nil
}

// Update applies partial updates. Only the owner may update a recipe.
func (s *RecipeService) Update(ctx context.Context, id, userID uuid.UUID, req *types.UpdateRecipeRequest) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, ErrForbidden
	}

	if req.Title != nil {
		recipe.Title = *req.Title
	}
	if req.Instructions != nil {
		recipe.Instructions = models.JSONBStringArray(req.Instructions)
	}
	if req.Servings != nil {
		recipe.Servings = *req.Servings
	}
	if req.PrepTime != nil {
		recipe.PrepTime = *req.PrepTime
	}
	if req.CookTime != nil {
		recipe.CookTime = *req.CookTime
	}
	if req.Difficulty != nil {
		recipe.Difficulty = *req.Difficulty
	}

	if err := s.db.WithContext(ctx).Omit("Ingredients").Save(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// SetImageURL records the stored photo location on the recipe.
func (s *RecipeService) SetImageURL(ctx context.Context, id, userID uuid.UUID, url string) error {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if recipe.UserID != userID {
		return ErrForbidden
	}
	return s.db.WithContext(ctx).Model(&models.Recipe{}).Where("id = ?", id).Update("image_url", url).Error
}

// Delete removes a recipe and its ingredient associations. Owner only.
func (s *RecipeService) Delete(ctx context.Context, id, userID uuid.UUID) error {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if recipe.UserID != userID {
		return ErrForbidden
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", id).Delete(&models.RecipeIngredient{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Recipe{}, "id = ?", id).Error
	})
}

// AddIngredient attaches an ingredient to the recipe, or updates the amount
// of an existing association. Owner only.
func (s *RecipeService) AddIngredient(ctx context.Context, recipeID, userID uuid.UUID, input *types.RecipeIngredientInput) (*models.Recipe, error) {
	recipe, err := s.Get(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.UserID != userID {
		return nil, ErrForbidden
	}

	ingredientID, err := uuid.Parse(input.IngredientID)
	if err != nil {
		return nil, fmt.Errorf("%w: ingredient id %q", ErrInvalidInput, input.IngredientID)
	}
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", ingredientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ingredient %s", ErrNotFound, ingredientID)
		}
		return nil, err
	}

	var ri models.RecipeIngredient
	err = s.db.WithContext(ctx).Where("recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID).First(&ri).Error
	switch {
	case err == nil:
		ri.Amount = input.Amount
		ri.Unit = input.Unit
		ri.Note = input.Note
		if err := s.db.WithContext(ctx).Save(&ri).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		ri = models.RecipeIngredient{
			RecipeID:     recipeID,
			IngredientID: ingredientID,
			Amount:       input.Amount,
			Unit:         input.Unit,
			Note:         input.Note,
			Position:     len(recipe.Ingredients),
		}
		if err := s.db.WithContext(ctx).Create(&ri).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	return s.Get(ctx, recipeID)
}

// RemoveIngredient detaches an ingredient from the recipe. Owner only.
func (s *RecipeService) RemoveIngredient(ctx context.Context, recipeID, userID, ingredientID uuid.UUID) error {
	recipe, err := s.Get(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.UserID != userID {
		return ErrForbidden
	}

	result := s.db.WithContext(ctx).
		Where("recipe_id = ? AND ingredient_id = ?", recipeID, ingredientID).
		Delete(&models.RecipeIngredient{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// List returns recipes whose derived allergen set does not intersect the
// excluded set. An empty exclusion returns everything. The intersection
// check runs in SQL: recipes reachable from an excluded allergen through
// recipe_ingredients and ingredient_allergens are filtered out.
func (s *RecipeService) List(ctx context.Context, excludeAllergenIDs []uuid.UUID) ([]models.Recipe, error) {
	query := s.db.WithContext(ctx).
		Preload("Ingredients", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		Preload("Ingredients.Ingredient.Allergens").
		Order("created_at DESC")

	if len(excludeAllergenIDs) > 0 {
		unsafe := s.db.Table("recipe_ingredients").
			Select("recipe_ingredients.recipe_id").
			Joins("JOIN ingredient_allergens ON ingredient_allergens.ingredient_id = recipe_ingredients.ingredient_id").
			Where("ingredient_allergens.allergen_id IN ?", excludeAllergenIDs)
		query = query.Where("recipes.id NOT IN (?)", unsafe)
	}

	var recipes []models.Recipe
	if err := query.Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// SuggestByPantry would rank recipes by the caller's pantry contents. It is
// declared but unbuilt and reports that rather than returning partial
// matches.
func (s *RecipeService) SuggestByPantry(ctx context.Context, userID uuid.UUID) ([]models.Recipe, error) {
	return nil, ErrNotImplemented
}

// DerivedAllergens returns the union of the recipe's ingredient allergens,
// sorted by name. Requires the recipe to be loaded via Get or List.
func DerivedAllergens(recipe *models.Recipe) []models.Allergen {
	seen := make(map[uuid.UUID]bool)
	var allergens []models.Allergen
	for _, ri := range recipe.Ingredients {
		for _, a := range ri.Ingredient.Allergens {
			if !seen[a.ID] {
				seen[a.ID] = true
				allergens = append(allergens, a)
			}
		}
	}
	sort.Slice(allergens, func(i, j int) bool { return allergens[i].Name < allergens[j].Name })
	return allergens
}
