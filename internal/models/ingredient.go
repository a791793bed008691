package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ingredient is a catalog entry with nutrition and allergen metadata.
// Calories are per 100g. The allergen set is a subset of the global
// registry via the ingredient_allergens join table.
type Ingredient struct {
	ID        uuid.UUID      `gorm:"type:varchar(36);primarykey" json:"id"`
	Name      string         `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Calories  int            `gorm:"not null;check:calories >= 0" json:"calories"`
	Allergens []Allergen     `gorm:"many2many:ingredient_allergens" json:"allergens"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (i *Ingredient) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
