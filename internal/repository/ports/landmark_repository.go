package ports

import (
	"context"

	"github.com/google/uuid"

	"github.com/oguzk/landmark-tracker/internal/domain"
)

type LandmarkRepository interface {
	Create(ctx context.Context, landmark *domain.Landmark) (*domain.Landmark, error)
	FindByID(ctx context.Context, id uuid.UUID) (*domain.Landmark, error)
	FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Landmark, error)
	List(ctx context.Context, filter domain.LandmarkListFilter) ([]domain.Landmark, error)
	Update(ctx context.Context, id uuid.UUID, update domain.LandmarkUpdate) (*domain.Landmark, error)
	Delete(ctx context.Context, id uuid.UUID) (*domain.Landmark, error)
}
