package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/oguzk/landmark-tracker/internal/domain"
)

type PlanRepository interface {
	// Create persists the plan together with its entries in submission
	// order.
	Create(ctx context.Context, plan *domain.VisitingPlan) (*domain.VisitingPlan, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.VisitingPlan, error)
	// List returns plans newest first by creation time, entries attached.
	List(ctx context.Context) ([]domain.VisitingPlan, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// RemoveEntriesByLandmark strips every entry referencing the landmark
	// from every plan, leaving the plans themselves and their remaining
	// entries untouched.
	RemoveEntriesByLandmark(ctx context.Context, landmarkID uuid.UUID) (int64, error)
}
