package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"

	"github.com/oguzk/landmark-tracker/internal/domain"
	"github.com/oguzk/landmark-tracker/internal/repository/ports"
)

var (
	ErrLandmarkValidation = errors.New("landmark validation failed")
	ErrLandmarkNotFound   = errors.New("landmark not found")
)

type LandmarkCreateInput struct {
	Name        string
	Latitude    *float64
	Longitude   *float64
	Description string
	Category    string
}

type LandmarkUpdateInput struct {
	Name        *string
	Latitude    *float64
	Longitude   *float64
	Description *string
	Category    *string
}

// CascadeResult reports what the best-effort cleanup managed to remove after
// a landmark delete. Sub-step errors are logged, never escalated.
type CascadeResult struct {
	Landmark       *domain.Landmark
	VisitsDeleted  int64
	EntriesRemoved int64
}

type LandmarkService struct {
	landmarks ports.LandmarkRepository
	visits    ports.VisitRepository
	plans     ports.PlanRepository
}

func NewLandmarkService(landmarkRepo ports.LandmarkRepository, visitRepo ports.VisitRepository, planRepo ports.PlanRepository) *LandmarkService {
	return &LandmarkService{
		landmarks: landmarkRepo,
		visits:    visitRepo,
		plans:     planRepo,
	}
}

func (s *LandmarkService) Create(ctx context.Context, input LandmarkCreateInput) (*domain.Landmark, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", ErrLandmarkValidation)
	}
	if input.Latitude == nil || input.Longitude == nil {
		return nil, fmt.Errorf("%w: latitude and longitude are required", ErrLandmarkValidation)
	}

	category, err := parseCategory(input.Category)
	if err != nil {
		return nil, err
	}

	return s.landmarks.Create(ctx, &domain.Landmark{
		Name:        name,
		Latitude:    *input.Latitude,
		Longitude:   *input.Longitude,
		Description: strings.TrimSpace(input.Description),
		Category:    category,
	})
}

func (s *LandmarkService) Get(ctx context.Context, id uuid.UUID) (*domain.Landmark, error) {
	landmark, err := s.landmarks.FindByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrLandmarkNotFound
		}
		return nil, err
	}
	return landmark, nil
}

func (s *LandmarkService) List(ctx context.Context, filter domain.LandmarkListFilter) ([]domain.Landmark, error) {
	if filter.Category != nil && !domain.ValidLandmarkCategory(*filter.Category) {
		return nil, fmt.Errorf("%w: unknown category %q", ErrLandmarkValidation, *filter.Category)
	}
	return s.landmarks.List(ctx, filter)
}

func (s *LandmarkService) Update(ctx context.Context, id uuid.UUID, input LandmarkUpdateInput) (*domain.Landmark, error) {
	update := domain.LandmarkUpdate{
		Latitude:  input.Latitude,
		Longitude: input.Longitude,
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", ErrLandmarkValidation)
		}
		update.Name = &name
	}
	if (input.Latitude == nil) != (input.Longitude == nil) {
		return nil, fmt.Errorf("%w: latitude and longitude must be updated together", ErrLandmarkValidation)
	}
	if input.Description != nil {
		trimmed := strings.TrimSpace(*input.Description)
		update.Description = &trimmed
	}
	if input.Category != nil {
		category, err := parseCategory(*input.Category)
		if err != nil {
			return nil, err
		}
		update.Category = &category
	}

	landmark, err := s.landmarks.Update(ctx, id, update)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrLandmarkNotFound
		}
		return nil, err
	}
	return landmark, nil
}

// Delete removes the landmark and then runs the cascade cleanup: visit
// records referencing it, then plan entries referencing it. The cascade is
// sequential and best-effort; once the landmark row is gone it stays gone
// even when a later step fails, so those failures are logged and swallowed.
func (s *LandmarkService) Delete(ctx context.Context, id uuid.UUID) (*CascadeResult, error) {
	landmark, err := s.landmarks.Delete(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, ErrLandmarkNotFound
		}
		return nil, err
	}

	result := &CascadeResult{Landmark: landmark}

	visitsDeleted, err := s.visits.DeleteByLandmark(ctx, id)
	if err != nil {
		log.Printf("landmark cascade: deleting visits for %s: %v", id, err)
	} else {
		result.VisitsDeleted = visitsDeleted
	}

	entriesRemoved, err := s.plans.RemoveEntriesByLandmark(ctx, id)
	if err != nil {
		log.Printf("landmark cascade: pruning plan entries for %s: %v", id, err)
	} else {
		result.EntriesRemoved = entriesRemoved
	}

	return result, nil
}

func parseCategory(raw string) (domain.LandmarkCategory, error) {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return domain.LandmarkCategoryOther, nil
	}
	category := domain.LandmarkCategory(trimmed)
	if !domain.ValidLandmarkCategory(category) {
		return "", fmt.Errorf("%w: unknown category %q", ErrLandmarkValidation, raw)
	}
	return category, nil
}
