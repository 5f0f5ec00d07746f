package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/oguzk/landmark-tracker/internal/domain"
)

type VisitRepository interface {
	Create(ctx context.Context, visit *domain.VisitedLandmark) (*domain.VisitedLandmark, error)
	// List returns visits newest first by visited date.
	List(ctx context.Context, filter domain.VisitListFilter) ([]domain.VisitedLandmark, error)
	Update(ctx context.Context, id uuid.UUID, update domain.VisitUpdate) (*domain.VisitedLandmark, error)
	Delete(ctx context.Context, id uuid.UUID) error
	// DeleteByLandmark removes every visit referencing the landmark and
	// reports how many records went away.
	DeleteByLandmark(ctx context.Context, landmarkID uuid.UUID) (int64, error)
}
