package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrybase/backend/internal/models"
)

// IngredientService handles the ingredient catalog. Ingredients are shared
// across users; any authenticated user may create or edit them.
type IngredientService struct {
	db *gorm.DB
}

func NewIngredientService(db *gorm.DB) *IngredientService {
	return &IngredientService{db: db}
}

// Create adds an ingredient with its allergen set. Name is required and
// calories must be non-negative.
func (s *IngredientService) Create(ctx context.Context, name string, calories int, allergenIDs []uuid.UUID) (*models.Ingredient, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
	}
	if calories < 0 {
		return nil, fmt.Errorf("%w: calories must be non-negative", ErrInvalidInput)
	}

	var existing models.Ingredient
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: ingredient %q", ErrAlreadyExists, name)
	}

	allergens, err := findAllergens(ctx, s.db, allergenIDs)
	if err != nil {
		return nil, err
	}

	ingredient := models.Ingredient{
		Name:      name,
		Calories:  calories,
		Allergens: allergens,
	}
	if err := s.db.WithContext(ctx).Create(&ingredient).Error; err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// Get returns an ingredient with its allergens loaded.
func (s *IngredientService) Get(ctx context.Context, id uuid.UUID) (*models.Ingredient, error) {
	var ingredient models.Ingredient
	err := s.db.WithContext(ctx).Preload("Allergens").First(&ingredient, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &ingredient, nil
}

// Update applies partial updates. A nil field leaves the current value; a
// nil allergen slice leaves the association untouched.
func (s *IngredientService) Update(ctx context.Context, id uuid.UUID, name *string, calories *int, allergenIDs []uuid.UUID) (*models.Ingredient, error) {
	ingredient, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, fmt.Errorf("%w: name is required", ErrInvalidInput)
		}
		ingredient.Name = trimmed
	}
	if calories != nil {
		if *calories < 0 {
			return nil, fmt.Errorf("%w: calories must be non-negative", ErrInvalidInput)
		}
		ingredient.Calories = *calories
	}

	if err := s.db.WithContext(ctx).Save(ingredient).Error; err != nil {
		return nil, err
	}

	if allergenIDs != nil {
		allergens, err := findAllergens(ctx, s.db, allergenIDs)
		if err != nil {
			return nil, err
		}
		if err := s.db.WithContext(ctx).Model(ingredient).Association("Allergens").Replace(allergens); err != nil {
			return nil, err
		}
		ingredient.Allergens = allergens
	}

	return ingredient, nil
}

// Delete removes an ingredient. Deletion is blocked while any recipe still
// references it; pantry entries are cleaned up with it.
func (s *IngredientService) Delete(ctx context.Context, id uuid.UUID) error {
	ingredient, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	var refs int64
	if err := s.db.WithContext(ctx).Model(&models.RecipeIngredient{}).
		Where("ingredient_id = ?", id).Count(&refs).Error; err != nil {
		return err
	}
	if refs > 0 {
		return ErrIngredientInUse
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ingredient_id = ?", id).Delete(&models.PantryItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(ingredient).Error
	})
}

// List returns ingredients, optionally filtered by a case-insensitive name
// substring.
func (s *IngredientService) List(ctx context.Context, nameFilter string) ([]models.Ingredient, error) {
	query := s.db.WithContext(ctx).Preload("Allergens").Order("name")
	if nameFilter != "" {
		query = query.Where("LOWER(name) LIKE ?", "%"+strings.ToLower(nameFilter)+"%")
	}

	var ingredients []models.Ingredient
	if err := query.Find(&ingredients).Error; err != nil {
		return nil, err
	}
	return ingredients, nil
}
