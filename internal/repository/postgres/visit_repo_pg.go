package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/oguzk/landmark-tracker/internal/domain"
	"github.com/oguzk/landmark-tracker/internal/repository/ports"
)

type VisitRepository struct {
	db *sqlx.DB
}

func NewVisitRepo(db *sqlx.DB) *VisitRepository {
	return &VisitRepository{db: db}
}

const visitColumns = `id, landmark_id, visited_date, visitor_name, notes, created_at`

func (r *VisitRepository) Create(ctx context.Context, visit *domain.VisitedLandmark) (*domain.VisitedLandmark, error) {
	const query = `
		INSERT INTO visited_landmark (landmark_id, visited_date, visitor_name, notes)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + visitColumns + `
	`

	var stored domain.VisitedLandmark
	err := r.db.GetContext(ctx, &stored, query,
		visit.LandmarkID, visit.VisitedDate, visit.VisitorName, visit.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (r *VisitRepository) List(ctx context.Context, filter domain.VisitListFilter) ([]domain.VisitedLandmark, error) {
	var builder strings.Builder
	builder.WriteString(`
		SELECT ` + visitColumns + `
		FROM visited_landmark
	`)

	params := make([]any, 0, 1)
	if filter.LandmarkID != nil {
		params = append(params, *filter.LandmarkID)
		builder.WriteString("\tWHERE landmark_id = $1\n")
	}
	builder.WriteString("\tORDER BY visited_date DESC, id DESC")

	visits := make([]domain.VisitedLandmark, 0)
	if err := r.db.SelectContext(ctx, &visits, builder.String(), params...); err != nil {
		return nil, err
	}
	return visits, nil
}

func (r *VisitRepository) Update(ctx context.Context, id uuid.UUID, update domain.VisitUpdate) (*domain.VisitedLandmark, error) {
	setParts := make([]string, 0, 3)
	args := make([]any, 0, 4)

	if update.VisitorName != nil {
		args = append(args, *update.VisitorName)
		setParts = append(setParts, fmt.Sprintf("visitor_name = $%d", len(args)))
	}
	if update.VisitedDate != nil {
		args = append(args, *update.VisitedDate)
		setParts = append(setParts, fmt.Sprintf("visited_date = $%d", len(args)))
	}
	if update.Notes != nil {
		args = append(args, *update.Notes)
		setParts = append(setParts, fmt.Sprintf("notes = $%d", len(args)))
	}

	if len(setParts) == 0 {
		const query = `SELECT ` + visitColumns + ` FROM visited_landmark WHERE id = $1`
		var visit domain.VisitedLandmark
		if err := r.db.GetContext(ctx, &visit, query, id); err != nil {
			return nil, err
		}
		return &visit, nil
	}

	args = append(args, id)
	query := fmt.Sprintf(`
		UPDATE visited_landmark
		SET %s
		WHERE id = $%d
		RETURNING `+visitColumns+`
	`, strings.Join(setParts, ", "), len(args))

	var visit domain.VisitedLandmark
	if err := r.db.GetContext(ctx, &visit, query, args...); err != nil {
		return nil, err
	}
	return &visit, nil
}

func (r *VisitRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM visited_landmark WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *VisitRepository) DeleteByLandmark(ctx context.Context, landmarkID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM visited_landmark WHERE landmark_id = $1`, landmarkID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

var _ ports.VisitRepository = (*VisitRepository)(nil)
