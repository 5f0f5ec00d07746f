package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/oguzk/landmark-tracker/internal/domain"
	"github.com/oguzk/landmark-tracker/internal/repository/ports"
)

type LandmarkRepository struct {
	db *sqlx.DB
}

func NewLandmarkRepo(db *sqlx.DB) *LandmarkRepository {
	return &LandmarkRepository{db: db}
}

const landmarkColumns = `id, name, latitude, longitude, description, category, created_at`

func (r *LandmarkRepository) Create(ctx context.Context, landmark *domain.Landmark) (*domain.Landmark, error) {
	const query = `
		INSERT INTO landmark (name, latitude, longitude, description, category)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + landmarkColumns + `
	`

	var stored domain.Landmark
	err := r.db.GetContext(ctx, &stored, query,
		landmark.Name, landmark.Latitude, landmark.Longitude,
		landmark.Description, landmark.Category,
	)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *LandmarkRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.Landmark, error) {
	const query = `
		SELECT ` + landmarkColumns + `
		FROM landmark
		WHERE id = $1
	`
	var landmark domain.Landmark
	if err := r.db.GetContext(ctx, &landmark, query, id); err != nil {
		return nil, err
	}
	return &landmark, nil
}

func (r *LandmarkRepository) FindManyByIDs(ctx context.Context, ids []uuid.UUID) ([]domain.Landmark, error) {
	if len(ids) == 0 {
		return []domain.Landmark{}, nil
	}

	const query = `
		SELECT ` + landmarkColumns + `
		FROM landmark
		WHERE id = ANY($1)
	`

	raw := make([]string, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.String())
	}

	landmarks := make([]domain.Landmark, 0, len(ids))
	if err := r.db.SelectContext(ctx, &landmarks, query, pq.StringArray(raw)); err != nil {
		return nil, err
	}
	return landmarks, nil
}

func (r *LandmarkRepository) List(ctx context.Context, filter domain.LandmarkListFilter) ([]domain.Landmark, error) {
	var builder strings.Builder
	builder.WriteString(`
		SELECT ` + landmarkColumns + `
		FROM landmark
		WHERE TRUE
	`)

	params := make([]any, 0, 2)
	if trimmed := strings.TrimSpace(filter.Name); trimmed != "" {
		params = append(params, "%"+trimmed+"%")
		builder.WriteString(fmt.Sprintf("\n\tAND name ILIKE $%d", len(params)))
	}
	if filter.Category != nil {
		params = append(params, *filter.Category)
		builder.WriteString(fmt.Sprintf("\n\tAND category = $%d", len(params)))
	}
	builder.WriteString("\n\tORDER BY created_at DESC, id DESC")

	landmarks := make([]domain.Landmark, 0)
	if err := r.db.SelectContext(ctx, &landmarks, builder.String(), params...); err != nil {
		return nil, err
	}
	return landmarks, nil
}

func (r *LandmarkRepository) Update(ctx context.Context, id uuid.UUID, update domain.LandmarkUpdate) (*domain.Landmark, error) {
	setParts := make([]string, 0, 5)
	args := make([]any, 0, 6)

	if update.Name != nil {
		args = append(args, *update.Name)
		setParts = append(setParts, fmt.Sprintf("name = $%d", len(args)))
	}
	if update.Latitude != nil && update.Longitude != nil {
		args = append(args, *update.Latitude)
		setParts = append(setParts, fmt.Sprintf("latitude = $%d", len(args)))
		args = append(args, *update.Longitude)
		setParts = append(setParts, fmt.Sprintf("longitude = $%d", len(args)))
	}
	if update.Description != nil {
		args = append(args, *update.Description)
		setParts = append(setParts, fmt.Sprintf("description = $%d", len(args)))
	}
	if update.Category != nil {
		args = append(args, *update.Category)
		setParts = append(setParts, fmt.Sprintf("category = $%d", len(args)))
	}

	if len(setParts) == 0 {
		return r.FindByID(ctx, id)
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE landmark
		SET %s
		WHERE id = $%d
		RETURNING `+landmarkColumns+`
	`, strings.Join(setParts, ", "), len(args))

	var landmark domain.Landmark
	if err := r.db.GetContext(ctx, &landmark, query, args...); err != nil {
		return nil, err
	}
	return &landmark, nil
}

func (r *LandmarkRepository) Delete(ctx context.Context, id uuid.UUID) (*domain.Landmark, error) {
	const query = `
		DELETE FROM landmark
		WHERE id = $1
		RETURNING ` + landmarkColumns + `
	`
	var landmark domain.Landmark
	if err := r.db.GetContext(ctx, &landmark, query, id); err != nil {
		return nil, err
	}
	return &landmark, nil
}

var _ ports.LandmarkRepository = (*LandmarkRepository)(nil)
