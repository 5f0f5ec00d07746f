package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/oguzk/landmark-tracker/internal/domain"
	"github.com/oguzk/landmark-tracker/internal/repository/ports"
)

type PlanRepository struct {
	db *sqlx.DB
}

func NewPlanRepo(db *sqlx.DB) *PlanRepository {
	return &PlanRepository{db: db}
}

const planColumns = `id, name, creator, description, is_public, planned_date, created_at`

// planEntryRow carries the child-table surrogate key so entries can be read
// back in insertion order, which stands in for the submitted array order.
type planEntryRow struct {
	PlanID     uuid.UUID `db:"plan_id"`
	LandmarkID uuid.UUID `db:"landmark_id"`
	Notes      string    `db:"notes"`
	Order      int       `db:"entry_order"`
}

// Create stores the plan and its entries in a single transaction, the
// relational stand-in for writing one embedded document.
func (r *PlanRepository) Create(ctx context.Context, plan *domain.VisitingPlan) (*domain.VisitingPlan, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer func() { _ = tx.Rollback() }()

	const planQuery = `
		INSERT INTO visiting_plan (name, creator, description, is_public, planned_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + planColumns + `
	`

	var stored domain.VisitingPlan
	err = tx.GetContext(ctx, &stored, planQuery,
		plan.Name, plan.Creator, plan.Description, plan.IsPublic, plan.PlannedDate,
	)
	if err != nil {
		return nil, err
	}

	const entryQuery = `
		INSERT INTO visiting_plan_entry (plan_id, landmark_id, notes, entry_order)
		VALUES ($1, $2, $3, $4)
	`
	for _, entry := range plan.Entries {
		if _, err := tx.ExecContext(ctx, entryQuery, stored.ID, entry.LandmarkID, entry.Notes, entry.Order); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	stored.Entries = append([]domain.PlanEntry(nil), plan.Entries...)
	return &stored, nil
}

func (r *PlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*domain.VisitingPlan, error) {
	const query = `
		SELECT ` + planColumns + `
		FROM visiting_plan
		WHERE id = $1
	`
	var plan domain.VisitingPlan
	if err := r.db.GetContext(ctx, &plan, query, id); err != nil {
		return nil, err
	}

	entries, err := r.entriesForPlans(ctx, []uuid.UUID{plan.ID})
	if err != nil {
		return nil, err
	}
	plan.Entries = entries[plan.ID]
	if plan.Entries == nil {
		plan.Entries = []domain.PlanEntry{}
	}
	return &plan, nil
}

func (r *PlanRepository) List(ctx context.Context) ([]domain.VisitingPlan, error) {
	const query = `
		SELECT ` + planColumns + `
		FROM visiting_plan
		ORDER BY created_at DESC, id DESC
	`
	plans := make([]domain.VisitingPlan, 0)
	if err := r.db.SelectContext(ctx, &plans, query); err != nil {
		return nil, err
	}
	if len(plans) == 0 {
		return plans, nil
	}

	ids := make([]uuid.UUID, 0, len(plans))
	for _, plan := range plans {
		ids = append(ids, plan.ID)
	}
	entries, err := r.entriesForPlans(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range plans {
		plans[i].Entries = entries[plans[i].ID]
		if plans[i].Entries == nil {
			plans[i].Entries = []domain.PlanEntry{}
		}
	}
	return plans, nil
}

func (r *PlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM visiting_plan WHERE id = $1`, id)
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

func (r *PlanRepository) RemoveEntriesByLandmark(ctx context.Context, landmarkID uuid.UUID) (int64, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM visiting_plan_entry WHERE landmark_id = $1`, landmarkID)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

func (r *PlanRepository) entriesForPlans(ctx context.Context, planIDs []uuid.UUID) (map[uuid.UUID][]domain.PlanEntry, error) {
	const query = `
		SELECT plan_id, landmark_id, notes, entry_order
		FROM visiting_plan_entry
		WHERE plan_id = ANY($1)
		ORDER BY id ASC
	`

	raw := make([]string, 0, len(planIDs))
	for _, id := range planIDs {
		raw = append(raw, id.String())
	}

	rows := make([]planEntryRow, 0)
	if err := r.db.SelectContext(ctx, &rows, query, pq.StringArray(raw)); err != nil {
		return nil, err
	}

	result := make(map[uuid.UUID][]domain.PlanEntry, len(planIDs))
	for _, row := range rows {
		result[row.PlanID] = append(result[row.PlanID], domain.PlanEntry{
			LandmarkID: row.LandmarkID,
			Notes:      row.Notes,
			Order:      row.Order,
		})
	}
	return result, nil
}

var _ ports.PlanRepository = (*PlanRepository)(nil)
