package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Allergen categories. MajorAllergen covers the FDA major nine; dietary
// preferences (meat, animal products) ride the same registry so the
// exclusion filter can treat them uniformly.
const (
	CategoryMajorAllergen     = "major_allergen"
	CategoryDietaryPreference = "dietary_preference"
	CategoryCustom            = "custom"
)

// Allergen is a global registry entry referenced, never owned, by
// ingredients and profiles. Names are unique; seeded rows are not removed.
type Allergen struct {
	ID               uuid.UUID        `gorm:"type:varchar(36);primarykey" json:"id"`
	Name             string           `gorm:"size:100;not null;uniqueIndex" json:"name"`
	Category         string           `gorm:"size:50;not null;default:'custom'" json:"category"`
	AlternativeNames JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"alternative_names"`
	Description      string           `gorm:"type:text" json:"description"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

func (a *Allergen) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
