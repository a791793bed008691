package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pantrybase/backend/internal/models"
)

func TestSeedAllergensIdempotent(t *testing.T) {
	db := setupServiceDB(t)

	created, err := SeedAllergens(db)
	require.NoError(t, err)
	assert.Equal(t, len(seedAllergens), created)

	// Re-running creates nothing and changes nothing.
	for i := 0; i < 3; i++ {
		created, err = SeedAllergens(db)
		require.NoError(t, err)
		assert.Zero(t, created)
	}

	var count int64
	require.NoError(t, db.Model(&models.Allergen{}).Count(&count).Error)
	assert.Equal(t, int64(len(seedAllergens)), count)

	var peanuts models.Allergen
	require.NoError(t, db.Where("name = ?", "Peanuts").First(&peanuts).Error)
	assert.Equal(t, models.CategoryMajorAllergen, peanuts.Category)
	assert.Contains(t, []string(peanuts.AlternativeNames), "groundnut")
}

func TestSeedAllergensKeepsExistingRows(t *testing.T) {
	db := setupServiceDB(t)

	// A pre-existing registry entry with the same name is left untouched.
	custom := models.Allergen{Name: "Peanuts", Category: models.CategoryCustom, Description: "hand-entered"}
	require.NoError(t, db.Create(&custom).Error)

	_, err := SeedAllergens(db)
	require.NoError(t, err)

	var got models.Allergen
	require.NoError(t, db.Where("name = ?", "Peanuts").First(&got).Error)
	assert.Equal(t, custom.ID, got.ID)
	assert.Equal(t, "hand-entered", got.Description)
}

func TestSeedSampleRecipesIdempotent(t *testing.T) {
	db := setupServiceDB(t)

	_, err := SeedAllergens(db)
	require.NoError(t, err)

	created, err := SeedSampleRecipes(db)
	require.NoError(t, err)
	assert.Equal(t, len(seedRecipes), created)

	created, err = SeedSampleRecipes(db)
	require.NoError(t, err)
	assert.Zero(t, created)

	var recipeCount int64
	require.NoError(t, db.Model(&models.Recipe{}).Count(&recipeCount).Error)
	assert.Equal(t, int64(len(seedRecipes)), recipeCount)

	// Only one seed author account exists.
	var userCount int64
	require.NoError(t, db.Model(&models.User{}).Where("email = ?", seedAuthorEmail).Count(&userCount).Error)
	assert.Equal(t, int64(1), userCount)
}

func TestSeedSampleRecipesRequiresAllergens(t *testing.T) {
	db := setupServiceDB(t)

	_, err := SeedSampleRecipes(db)
	assert.Error(t, err)
}

func TestSeededSandwichCarriesDerivedAllergens(t *testing.T) {
	db := setupServiceDB(t)

	_, err := SeedAllergens(db)
	require.NoError(t, err)
	_, err = SeedSampleRecipes(db)
	require.NoError(t, err)

	var recipe models.Recipe
	require.NoError(t, db.Where("title = ?", "Peanut Butter Sandwich").First(&recipe).Error)

	svc := NewRecipeService(db)
	got, err := svc.Get(context.Background(), recipe.ID)
	require.NoError(t, err)

	derived := DerivedAllergens(got)
	names := make([]string, len(derived))
	for i, a := range derived {
		names[i] = a.Name
	}
	assert.Equal(t, []string{"Peanuts", "Wheat"}, names)

	// The sandwich disappears from a peanut-free listing.
	var peanuts models.Allergen
	require.NoError(t, db.Where("name = ?", "Peanuts").First(&peanuts).Error)
	safe, err := svc.List(context.Background(), []uuid.UUID{peanuts.ID})
	require.NoError(t, err)
	for _, r := range safe {
		assert.NotEqual(t, "Peanut Butter Sandwich", r.Title)
	}
	assert.Len(t, safe, 3)
}

func TestEnsureSuperuser(t *testing.T) {
	db := setupServiceDB(t)

	created, err := EnsureSuperuser(db, "admin", "admin@example.com", "supersecret")
	require.NoError(t, err)
	assert.True(t, created)

	var user models.User
	require.NoError(t, db.Where("email = ?", "admin@example.com").First(&user).Error)
	assert.True(t, user.IsSuperuser)

	var profile models.UserProfile
	require.NoError(t, db.Where("username = ?", "admin").First(&profile).Error)
	assert.Equal(t, user.ID, profile.UserID)

	// The admin can log in with the bootstrap password.
	auth := NewAuthService(db, "test-secret", nil)
	_, _, err = auth.Login(context.Background(), "admin@example.com", "supersecret")
	assert.NoError(t, err)
}

func TestEnsureSuperuserDoesNotTouchExisting(t *testing.T) {
	db := setupServiceDB(t)

	created, err := EnsureSuperuser(db, "admin", "admin@example.com", "firstpassword")
	require.NoError(t, err)
	require.True(t, created)

	var before models.User
	require.NoError(t, db.Where("email = ?", "admin@example.com").First(&before).Error)

	created, err = EnsureSuperuser(db, "admin", "other@example.com", "secondpassword")
	require.NoError(t, err)
	assert.False(t, created)

	var after models.User
	require.NoError(t, db.Where("email = ?", "admin@example.com").First(&after).Error)
	assert.Equal(t, before.PasswordHash, after.PasswordHash)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestEnsureSuperuserRequiresAllFields(t *testing.T) {
	db := setupServiceDB(t)

	_, err := EnsureSuperuser(db, "", "admin@example.com", "pw")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = EnsureSuperuser(db, "admin", "", "pw")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, err = EnsureSuperuser(db, "admin", "admin@example.com", "")
	assert.ErrorIs(t, err, ErrInvalidInput)
}
