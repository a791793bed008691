package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrybase/backend/internal/models"
)

// PantryService handles a user's personal ingredient inventory. All
// operations are scoped to the owning user.
type PantryService struct {
	db *gorm.DB
}

func NewPantryService(db *gorm.DB) *PantryService {
	return &PantryService{db: db}
}

// List returns the user's pantry with ingredient details loaded.
func (s *PantryService) List(ctx context.Context, userID uuid.UUID) ([]models.PantryItem, error) {
	var items []models.PantryItem
	err := s.db.WithContext(ctx).
		Preload("Ingredient.Allergens").
		Where("user_id = ?", userID).
		Order("created_at").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Add puts an ingredient into the user's pantry. Adding an ingredient
// already present updates its quantity instead of duplicating the row.
func (s *PantryService) Add(ctx context.Context, userID, ingredientID uuid.UUID, quantity string) (*models.PantryItem, error) {
	var ingredient models.Ingredient
	if err := s.db.WithContext(ctx).First(&ingredient, "id = ?", ingredientID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: ingredient %s", ErrNotFound, ingredientID)
		}
		return nil, err
	}

	var item models.PantryItem
	err := s.db.WithContext(ctx).Where("user_id = ? AND ingredient_id = ?", userID, ingredientID).First(&item).Error
	switch {
	case err == nil:
		item.Quantity = quantity
		if err := s.db.WithContext(ctx).Save(&item).Error; err != nil {
			return nil, err
		}
	case errors.Is(err, gorm.ErrRecordNotFound):
		item = models.PantryItem{
			UserID:       userID,
			IngredientID: ingredientID,
			Quantity:     quantity,
		}
		if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
			return nil, err
		}
	default:
		return nil, err
	}

	item.Ingredient = ingredient
	return &item, nil
}

// Remove takes an ingredient out of the user's pantry.
func (s *PantryService) Remove(ctx context.Context, userID, ingredientID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND ingredient_id = ?", userID, ingredientID).
		Delete(&models.PantryItem{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
