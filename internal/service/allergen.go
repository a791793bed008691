package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrybase/backend/internal/models"
)

// AllergenService exposes the global allergen registry. Entries are
// referenced by ingredients and profiles and never deleted.
type AllergenService struct {
	db *gorm.DB
}

func NewAllergenService(db *gorm.DB) *AllergenService {
	return &AllergenService{db: db}
}

// List returns the full registry ordered by name.
func (s *AllergenService) List(ctx context.Context) ([]models.Allergen, error) {
	var allergens []models.Allergen
	if err := s.db.WithContext(ctx).Order("name").Find(&allergens).Error; err != nil {
		return nil, err
	}
	return allergens, nil
}

// Get returns a single registry entry.
func (s *AllergenService) Get(ctx context.Context, id uuid.UUID) (*models.Allergen, error) {
	var allergen models.Allergen
	err := s.db.WithContext(ctx).First(&allergen, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &allergen, nil
}

// Create adds a custom allergen. Duplicate names are rejected rather than
// silently merged; only seeding has upsert semantics.
func (s *AllergenService) Create(ctx context.Context, name, description string, alternativeNames []string) (*models.Allergen, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	var existing models.Allergen
	if err := s.db.WithContext(ctx).Where("name = ?", name).First(&existing).Error; err == nil {
		return nil, ErrAlreadyExists
	}

	allergen := models.Allergen{
		Name:             name,
		Category:         models.CategoryCustom,
		Description:      description,
		AlternativeNames: models.JSONBStringArray(alternativeNames),
	}
	if err := s.db.WithContext(ctx).Create(&allergen).Error; err != nil {
		return nil, err
	}
	return &allergen, nil
}
