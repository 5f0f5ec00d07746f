package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oguzk/landmark-tracker/internal/domain"
	"github.com/oguzk/landmark-tracker/internal/repository/ports"
)

var (
	ErrPlanValidation = errors.New("plan validation failed")
	ErrPlanNotFound   = errors.New("visiting plan not found")
)

type PlanServiceConfig struct {
	// AnonymousCreator is recorded when no creator is supplied.
	AnonymousCreator string
}

// PlanEntryInput is one submitted stop. Order is optional; entries without
// an explicit order receive their zero-based position in the submitted list.
type PlanEntryInput struct {
	LandmarkID uuid.UUID
	Notes      string
	Order      *int
}

type PlanCreateInput struct {
	Name        string
	Creator     string
	Entries     []PlanEntryInput
	Description string
	IsPublic    *bool
	PlannedDate *time.Time
}

type PlanService struct {
	plans     ports.PlanRepository
	landmarks ports.LandmarkRepository

	anonymousCreator string
}

func NewPlanService(planRepo ports.PlanRepository, landmarkRepo ports.LandmarkRepository, cfg PlanServiceConfig) *PlanService {
	anonymous := strings.TrimSpace(cfg.AnonymousCreator)
	if anonymous == "" {
		anonymous = defaultAnonymousName
	}
	return &PlanService{
		plans:            planRepo,
		landmarks:        landmarkRepo,
		anonymousCreator: anonymous,
	}
}

// Create validates every landmark reference against the current landmark
// set, assigns missing order values, and persists the plan. Validation is a
// pure check before any write; a failed create leaves no trace. Nothing
// serializes this against a concurrent landmark delete, so a plan can win
// validation and still end up holding a dangling reference.
func (s *PlanService) Create(ctx context.Context, input PlanCreateInput) (*domain.VisitingPlan, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrPlanValidation)
	}
	if len(input.Entries) == 0 {
		return nil, fmt.Errorf("%w: at least one landmark is required", ErrPlanValidation)
	}

	if err := s.validateReferences(ctx, input.Entries); err != nil {
		return nil, err
	}

	entries := assignOrder(input.Entries)

	creator := strings.TrimSpace(input.Creator)
	if creator == "" {
		creator = s.anonymousCreator
	}
	isPublic := true
	if input.IsPublic != nil {
		isPublic = *input.IsPublic
	}

	return s.plans.Create(ctx, &domain.VisitingPlan{
		Name:        name,
		Creator:     creator,
		Entries:     entries,
		Description: strings.TrimSpace(input.Description),
		IsPublic:    isPublic,
		PlannedDate: input.PlannedDate,
	})
}

func (s *PlanService) Get(ctx context.Context, id uuid.UUID) (*domain.EnrichedPlan, error) {
	plan, err := s.plans.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}

	enriched, err := s.enrich(ctx, []domain.VisitingPlan{*plan})
	if err != nil {
		return nil, err
	}
	return &enriched[0], nil
}

// List returns every plan newest first, entries enriched with the current
// landmark details or the deleted placeholder.
func (s *PlanService) List(ctx context.Context) ([]domain.EnrichedPlan, error) {
	plans, err := s.plans.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.enrich(ctx, plans)
}

func (s *PlanService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.plans.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrPlanNotFound
		}
		return err
	}
	return nil
}

// validateReferences passes when every distinct referenced landmark exists.
// Duplicate references to the same landmark are legal, so the found count is
// compared against the distinct-id count rather than the entry count.
func (s *PlanService) validateReferences(ctx context.Context, entries []PlanEntryInput) error {
	seen := make(map[uuid.UUID]struct{}, len(entries))
	ids := make([]uuid.UUID, 0, len(entries))
	for _, entry := range entries {
		if entry.LandmarkID == uuid.Nil {
			return fmt.Errorf("%w: landmark_id is required on every entry", ErrPlanValidation)
		}
		if _, ok := seen[entry.LandmarkID]; ok {
			continue
		}
		seen[entry.LandmarkID] = struct{}{}
		ids = append(ids, entry.LandmarkID)
	}

	found, err := s.landmarks.FindManyByIDs(ctx, ids)
	if err != nil {
		return err
	}
	if len(found) != len(ids) {
		return fmt.Errorf("%w: some landmarks were not found", ErrPlanValidation)
	}
	return nil
}

// assignOrder keeps client-supplied order values verbatim and defaults the
// rest to the entry's position in the submitted list. No global re-sort
// happens afterwards, so mixing explicit and defaulted values can yield a
// non-monotonic sequence.
func assignOrder(entries []PlanEntryInput) []domain.PlanEntry {
	result := make([]domain.PlanEntry, 0, len(entries))
	for i, entry := range entries {
		order := i
		if entry.Order != nil {
			order = *entry.Order
		}
		result = append(result, domain.PlanEntry{
			LandmarkID: entry.LandmarkID,
			Notes:      strings.TrimSpace(entry.Notes),
			Order:      order,
		})
	}
	return result
}

func (s *PlanService) enrich(ctx context.Context, plans []domain.VisitingPlan) ([]domain.EnrichedPlan, error) {
	seen := make(map[uuid.UUID]struct{})
	ids := make([]uuid.UUID, 0)
	for _, plan := range plans {
		for _, entry := range plan.Entries {
			if _, ok := seen[entry.LandmarkID]; ok {
				continue
			}
			seen[entry.LandmarkID] = struct{}{}
			ids = append(ids, entry.LandmarkID)
		}
	}

	details := make(map[uuid.UUID]domain.LandmarkDetails, len(ids))
	if len(ids) > 0 {
		landmarks, err := s.landmarks.FindManyByIDs(ctx, ids)
		if err != nil {
			return nil, err
		}
		for i := range landmarks {
			details[landmarks[i].ID] = domain.DetailsFor(&landmarks[i])
		}
	}

	enriched := make([]domain.EnrichedPlan, 0, len(plans))
	for _, plan := range plans {
		item := domain.EnrichedPlan{
			ID:          plan.ID,
			Name:        plan.Name,
			Creator:     plan.Creator,
			Entries:     make([]domain.EnrichedPlanEntry, 0, len(plan.Entries)),
			Description: plan.Description,
			IsPublic:    plan.IsPublic,
			PlannedDate: plan.PlannedDate,
			CreatedAt:   plan.CreatedAt,
		}
		for _, entry := range plan.Entries {
			detail, ok := details[entry.LandmarkID]
			if !ok {
				detail = domain.DeletedLandmarkPlaceholder()
			}
			item.Entries = append(item.Entries, domain.EnrichedPlanEntry{
				PlanEntry:       entry,
				LandmarkDetails: detail,
			})
		}
		enriched = append(enriched, item)
	}
	return enriched, nil
}
