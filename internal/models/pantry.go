package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PantryItem records that a user currently holds an ingredient. Quantity is
// free text ("2 cups", "500g"); one row per (user, ingredient) pair.
type PantryItem struct {
	ID           uuid.UUID  `gorm:"type:varchar(36);primarykey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_pantry_user_ingredient" json:"user_id"`
	IngredientID uuid.UUID  `gorm:"type:varchar(36);not null;uniqueIndex:idx_pantry_user_ingredient" json:"ingredient_id"`
	Ingredient   Ingredient `gorm:"foreignKey:IngredientID" json:"ingredient"`
	Quantity     string     `gorm:"size:100" json:"quantity"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

func (p *PantryItem) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
