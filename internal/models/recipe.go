package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Recipe struct {
	ID           uuid.UUID          `gorm:"type:varchar(36);primarykey" json:"id"`
	Title        string             `gorm:"size:200;not null;uniqueIndex:idx_recipes_title_user" json:"title"`
	UserID       uuid.UUID          `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipes_title_user" json:"user_id"`
	Instructions JSONBStringArray   `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Servings     int                `gorm:"not null;default:4" json:"servings"`
	PrepTime     int                `json:"prep_time"`
	CookTime     int                `json:"cook_time"`
	Difficulty   string             `gorm:"size:10;not null;default:'medium'" json:"difficulty"`
	ImageURL     string             `gorm:"size:255" json:"image_url"`
	Ingredients  []RecipeIngredient `gorm:"foreignKey:RecipeID" json:"ingredients"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
	DeletedAt    gorm.DeletedAt     `gorm:"index" json:"-"`
}

func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// TotalTime returns prep plus cook time in minutes, 0 when neither is set.
func (r *Recipe) TotalTime() int {
	return r.PrepTime + r.CookTime
}

// RecipeIngredient associates an ingredient with a recipe, carrying the
// amount ("2"), unit ("cups") and an optional note ("chopped"). One row per
// (recipe, ingredient) pair; rows are hard-deleted with the association.
type RecipeIngredient struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	RecipeID     uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredient" json:"recipe_id"`
	IngredientID uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_recipe_ingredient" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
	Amount       string     `gorm:"size:50" json:"amount"`
	Unit         string     `gorm:"size:50" json:"unit"`
	Note         string     `gorm:"size:200" json:"note"`
	Position     int        `gorm:"not null;default:0" json:"position"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (ri *RecipeIngredient) BeforeCreate(tx *gorm.DB) error {
	if ri.ID == uuid.Nil {
		ri.ID = uuid.New()
	}
	return nil
}
