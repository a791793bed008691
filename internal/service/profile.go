package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/pantrybase/backend/internal/models"
	"github.com/pantrybase/backend/internal/types"
)

// ProfileService handles user profile operations, including the avoided
// allergen set that gates default recipe visibility.
type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

// GetProfile returns the profile for the given user with its avoided
// allergens loaded.
func (s *ProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := s.db.WithContext(ctx).Preload("Allergens").Where("user_id = ?", userID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile applies the given field updates.
func (s *ProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, req *types.UpdateProfileRequest) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if err := s.db.WithContext(ctx).Save(profile).Error; err != nil {
		return nil, err
	}
	return profile, nil
}

// UpdateAllergens replaces the profile's avoided allergen set. Every ID
// must name an existing registry entry.
func (s *ProfileService) UpdateAllergens(ctx context.Context, userID uuid.UUID, allergenIDs []uuid.UUID) (*models.UserProfile, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}

	allergens, err := findAllergens(ctx, s.db, allergenIDs)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Model(profile).Association("Allergens").Replace(allergens); err != nil {
		return nil, err
	}
	profile.Allergens = allergens
	return profile, nil
}

// AvoidedAllergenIDs returns the IDs of the allergens the user avoids.
func (s *ProfileService) AvoidedAllergenIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	profile, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]uuid.UUID, len(profile.Allergens))
	for i, a := range profile.Allergens {
		ids[i] = a.ID
	}
	return ids, nil
}

// findAllergens resolves registry entries by ID, failing when any is missing.
func findAllergens(ctx context.Context, db *gorm.DB, ids []uuid.UUID) ([]models.Allergen, error) {
	if len(ids) == 0 {
		return []models.Allergen{}, nil
	}
	var allergens []models.Allergen
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&allergens).Error; err != nil {
		return nil, err
	}
	if len(allergens) != len(ids) {
		return nil, ErrNotFound
	}
	return allergens, nil
}
