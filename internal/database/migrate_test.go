package database

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pantrybase/backend/internal/models"
)

func TestRunMigrationsOnSQLite(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	// SQLite skips the SQL files and migrates from the models.
	require.NoError(t, RunMigrations(db, "no-such-dir"))

	assert.True(t, db.Migrator().HasTable(&models.User{}))
	assert.True(t, db.Migrator().HasTable(&models.UserProfile{}))
	assert.True(t, db.Migrator().HasTable(&models.Allergen{}))
	assert.True(t, db.Migrator().HasTable(&models.Ingredient{}))
	assert.True(t, db.Migrator().HasTable(&models.Recipe{}))
	assert.True(t, db.Migrator().HasTable(&models.RecipeIngredient{}))
	assert.True(t, db.Migrator().HasTable(&models.PantryItem{}))
}
