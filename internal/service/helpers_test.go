package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/pantrybase/backend/internal/models"
	"github.com/pantrybase/backend/internal/testhelpers"
)

func setupServiceDB(t *testing.T) *gorm.DB {
	t.Helper()
	return testhelpers.SetupTestDatabase(t)
}

func createTestUser(t *testing.T, db *gorm.DB, email, username string) (*models.User, *models.UserProfile) {
	t.Helper()
	auth := NewAuthService(db, "test-secret", nil)
	user, profile, err := auth.Register(context.Background(), "Test User", email, username, "password123")
	require.NoError(t, err)
	return user, profile
}

func createTestAllergen(t *testing.T, db *gorm.DB, name string) *models.Allergen {
	t.Helper()
	allergen, err := NewAllergenService(db).Create(context.Background(), name, "", nil)
	require.NoError(t, err)
	return allergen
}

func createTestIngredient(t *testing.T, db *gorm.DB, name string, calories int, allergens ...*models.Allergen) *models.Ingredient {
	t.Helper()
	var ids []uuid.UUID
	for _, a := range allergens {
		ids = append(ids, a.ID)
	}
	ingredient, err := NewIngredientService(db).Create(context.Background(), name, calories, ids)
	require.NoError(t, err)
	return ingredient
}
