package domain

import (
	"time"

	"github.com/google/uuid"
)

// VisitedLandmark is a visit log entry. LandmarkID is a soft reference: it
// must resolve at creation time but is never re-validated afterwards.
type VisitedLandmark struct {
	ID          uuid.UUID `db:"id" json:"id"`
	LandmarkID  uuid.UUID `db:"landmark_id" json:"landmark_id"`
	VisitedDate time.Time `db:"visited_date" json:"visited_date"`
	VisitorName string    `db:"visitor_name" json:"visitor_name"`
	Notes       string    `db:"notes" json:"notes"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

// EnrichedVisit is a visit with the referenced landmark attached at read
// time. Landmark is the deleted placeholder when the reference dangles.
type EnrichedVisit struct {
	VisitedLandmark
	Landmark LandmarkDetails `json:"landmark"`
}

// LandmarkDetails is the read-time projection attached to visits and plan
// entries. Deleted is set (and every other field zeroed except Name) when the
// referenced landmark no longer exists.
type LandmarkDetails struct {
	ID        uuid.UUID        `json:"id,omitempty"`
	Name      string           `json:"name"`
	Latitude  float64          `json:"latitude,omitempty"`
	Longitude float64          `json:"longitude,omitempty"`
	Category  LandmarkCategory `json:"category,omitempty"`
	Deleted   bool             `json:"deleted,omitempty"`
}

const DeletedLandmarkName = "Deleted Landmark"

// DeletedLandmarkPlaceholder is attached wherever a soft reference no longer
// resolves.
func DeletedLandmarkPlaceholder() LandmarkDetails {
	return LandmarkDetails{Name: DeletedLandmarkName, Deleted: true}
}

// DetailsFor projects a landmark into the enrichment shape.
func DetailsFor(landmark *Landmark) LandmarkDetails {
	return LandmarkDetails{
		ID:        landmark.ID,
		Name:      landmark.Name,
		Latitude:  landmark.Latitude,
		Longitude: landmark.Longitude,
		Category:  landmark.Category,
	}
}

type VisitUpdate struct {
	VisitorName *string
	VisitedDate *time.Time
	Notes       *string
}

type VisitListFilter struct {
	LandmarkID *uuid.UUID
}
