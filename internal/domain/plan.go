package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlanEntry is one stop of a visiting plan. Entries are embedded in their
// plan and are never addressable on their own; LandmarkID is a soft
// reference like VisitedLandmark.LandmarkID. Order is whatever the client
// supplied at creation time, or the entry's submission index when it did
// not. Entries keep submission order regardless of the Order values.
type PlanEntry struct {
	LandmarkID uuid.UUID `db:"landmark_id" json:"landmark_id"`
	Notes      string    `db:"notes" json:"notes"`
	Order      int       `db:"entry_order" json:"order"`
}

type VisitingPlan struct {
	ID          uuid.UUID   `db:"id" json:"id"`
	Name        string      `db:"name" json:"name"`
	Creator     string      `db:"creator" json:"creator"`
	Entries     []PlanEntry `json:"landmarks"`
	Description string      `db:"description" json:"description"`
	IsPublic    bool        `db:"is_public" json:"is_public"`
	PlannedDate *time.Time  `db:"planned_date" json:"planned_date,omitempty"`
	CreatedAt   time.Time   `db:"created_at" json:"created_at"`
}

// EnrichedPlanEntry pairs a stored entry with the current state of its
// landmark, resolved at read time.
type EnrichedPlanEntry struct {
	PlanEntry
	LandmarkDetails LandmarkDetails `json:"landmark_details"`
}

type EnrichedPlan struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Creator     string              `json:"creator"`
	Entries     []EnrichedPlanEntry `json:"landmarks"`
	Description string              `json:"description"`
	IsPublic    bool                `json:"is_public"`
	PlannedDate *time.Time          `json:"planned_date,omitempty"`
	CreatedAt   time.Time           `json:"created_at"`
}
