package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/oguzk/landmark-tracker/internal/domain"
	"github.com/oguzk/landmark-tracker/internal/repository/ports"
)

var ErrVisitNotFound = errors.New("visit record not found")

const defaultAnonymousName = "Anonymous"

type VisitServiceConfig struct {
	// AnonymousName is recorded when no visitor name is supplied.
	AnonymousName string
}

type VisitCreateInput struct {
	LandmarkID  uuid.UUID
	VisitorName string
	VisitedDate *time.Time
	Notes       string
}

type VisitUpdateInput struct {
	VisitorName *string
	VisitedDate *time.Time
	Notes       *string
}

type VisitService struct {
	visits    ports.VisitRepository
	landmarks ports.LandmarkRepository

	anonymousName string
	now           func() time.Time
}

func NewVisitService(visitRepo ports.VisitRepository, landmarkRepo ports.LandmarkRepository, cfg VisitServiceConfig) *VisitService {
	anonymous := strings.TrimSpace(cfg.AnonymousName)
	if anonymous == "" {
		anonymous = defaultAnonymousName
	}
	return &VisitService{
		visits:        visitRepo,
		landmarks:     landmarkRepo,
		anonymousName: anonymous,
		now:           time.Now,
	}
}

// Create logs a visit. The landmark must exist at this moment; after that the
// stored reference is soft and never re-checked.
func (s *VisitService) Create(ctx context.Context, input VisitCreateInput) (*domain.VisitedLandmark, error) {
	if input.LandmarkID == uuid.Nil {
		return nil, ErrLandmarkNotFound
	}
	if _, err := s.landmarks.FindByID(ctx, input.LandmarkID); err != nil {
		if isNotFound(err) {
			return nil, ErrLandmarkNotFound
		}
		return nil, err
	}

	visitedDate := s.now()
	if input.VisitedDate != nil {
		visitedDate = *input.VisitedDate
	}
	visitorName := strings.TrimSpace(input.VisitorName)
	if visitorName == "" {
		visitorName = s.anonymousName
	}

	return s.visits.Create(ctx, &domain.VisitedLandmark{
		LandmarkID:  input.LandmarkID,
		VisitedDate: visitedDate,
		VisitorName: visitorName,
		Notes:       strings.TrimSpace(input.Notes),
	})
}

// ListEnriched returns every visit newest first, each carrying the current
// landmark details or the deleted placeholder when the reference dangles.
func (s *VisitService) ListEnriched(ctx context.Context) ([]domain.EnrichedVisit, error) {
	visits, err := s.visits.List(ctx, domain.VisitListFilter{})
	if err != nil {
		return nil, err
	}

	details, err := s.landmarkDetails(ctx, visits)
	if err != nil {
		return nil, err
	}

	enriched := make([]domain.EnrichedVisit, 0, len(visits))
	for _, visit := range visits {
		item := domain.EnrichedVisit{VisitedLandmark: visit}
		if d, ok := details[visit.LandmarkID]; ok {
			item.Landmark = d
		} else {
			item.Landmark = domain.DeletedLandmarkPlaceholder()
		}
		enriched = append(enriched, item)
	}
	return enriched, nil
}

// HistoryForLandmark returns the visit log of one landmark newest first. The
// landmark itself may already be gone; the history is served regardless.
func (s *VisitService) HistoryForLandmark(ctx context.Context, landmarkID uuid.UUID) ([]domain.VisitedLandmark, error) {
	return s.visits.List(ctx, domain.VisitListFilter{LandmarkID: &landmarkID})
}

func (s *VisitService) Update(ctx context.Context, id uuid.UUID, input VisitUpdateInput) (*domain.VisitedLandmark, error) {
	update := domain.VisitUpdate{
		VisitedDate: input.VisitedDate,
	}
	if input.VisitorName != nil {
		trimmed := strings.TrimSpace(*input.VisitorName)
		update.VisitorName = &trimmed
	}
	if input.Notes != nil {
		trimmed := strings.TrimSpace(*input.Notes)
		update.Notes = &trimmed
	}

	visit, err := s.visits.Update(ctx, id, update)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrVisitNotFound
		}
		return nil, err
	}
	return visit, nil
}

func (s *VisitService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.visits.Delete(ctx, id); err != nil {
		if isNotFound(err) {
			return ErrVisitNotFound
		}
		return err
	}
	return nil
}

func (s *VisitService) landmarkDetails(ctx context.Context, visits []domain.VisitedLandmark) (map[uuid.UUID]domain.LandmarkDetails, error) {
	seen := make(map[uuid.UUID]struct{}, len(visits))
	ids := make([]uuid.UUID, 0, len(visits))
	for _, visit := range visits {
		if _, ok := seen[visit.LandmarkID]; ok {
			continue
		}
		seen[visit.LandmarkID] = struct{}{}
		ids = append(ids, visit.LandmarkID)
	}
	if len(ids) == 0 {
		return map[uuid.UUID]domain.LandmarkDetails{}, nil
	}

	landmarks, err := s.landmarks.FindManyByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	details := make(map[uuid.UUID]domain.LandmarkDetails, len(landmarks))
	for i := range landmarks {
		details[landmarks[i].ID] = domain.DetailsFor(&landmarks[i])
	}
	return details, nil
}
