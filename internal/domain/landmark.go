package domain

import (
	"time"

	"github.com/google/uuid"
)

type LandmarkCategory string

const (
	LandmarkCategoryHistorical LandmarkCategory = "historical"
	LandmarkCategoryNatural    LandmarkCategory = "natural"
	LandmarkCategoryCultural   LandmarkCategory = "cultural"
	LandmarkCategoryOther      LandmarkCategory = "other"
)

// ValidLandmarkCategory reports whether value is one of the fixed category set.
func ValidLandmarkCategory(value LandmarkCategory) bool {
	switch value {
	case LandmarkCategoryHistorical, LandmarkCategoryNatural, LandmarkCategoryCultural, LandmarkCategoryOther:
		return true
	default:
		return false
	}
}

type Landmark struct {
	ID          uuid.UUID        `db:"id" json:"id"`
	Name        string           `db:"name" json:"name"`
	Latitude    float64          `db:"latitude" json:"latitude"`
	Longitude   float64          `db:"longitude" json:"longitude"`
	Description string           `db:"description" json:"description"`
	Category    LandmarkCategory `db:"category" json:"category"`
	CreatedAt   time.Time        `db:"created_at" json:"created_at"`
}

// LandmarkUpdate carries a partial update; nil fields are left untouched.
// Latitude and longitude travel together or not at all.
type LandmarkUpdate struct {
	Name        *string
	Latitude    *float64
	Longitude   *float64
	Description *string
	Category    *LandmarkCategory
}

type LandmarkListFilter struct {
	Name     string
	Category *LandmarkCategory
}
