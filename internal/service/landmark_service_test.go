package service

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/oguzk/landmark-tracker/internal/domain"
	"github.com/oguzk/landmark-tracker/internal/repository/ports"
)

func TestLandmarkService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	svc := NewLandmarkService(newMemoryLandmarkRepo(), newMemoryVisitRepo(), newMemoryPlanRepo())

	lat, lng := 41.0086, 28.9802

	if _, err := svc.Create(ctx, LandmarkCreateInput{Latitude: &lat, Longitude: &lng}); !errors.Is(err, ErrLandmarkValidation) {
		t.Fatalf("expected ErrLandmarkValidation for missing name, got %v", err)
	}
	if _, err := svc.Create(ctx, LandmarkCreateInput{Name: "Hagia Sophia", Latitude: &lat}); !errors.Is(err, ErrLandmarkValidation) {
		t.Fatalf("expected ErrLandmarkValidation for missing longitude, got %v", err)
	}
	if _, err := svc.Create(ctx, LandmarkCreateInput{Name: "Hagia Sophia", Latitude: &lat, Longitude: &lng, Category: "medieval"}); !errors.Is(err, ErrLandmarkValidation) {
		t.Fatalf("expected ErrLandmarkValidation for unknown category, got %v", err)
	}

	landmark, err := svc.Create(ctx, LandmarkCreateInput{Name: "  Hagia Sophia  ", Latitude: &lat, Longitude: &lng})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if landmark.Name != "Hagia Sophia" {
		t.Fatalf("expected trimmed name, got %q", landmark.Name)
	}
	if landmark.Category != domain.LandmarkCategoryOther {
		t.Fatalf("expected default category other, got %q", landmark.Category)
	}
}

func TestLandmarkService_Delete_CascadesVisitsAndPlanEntries(t *testing.T) {
	ctx := context.Background()

	landmarkRepo := newMemoryLandmarkRepo()
	visitRepo := newMemoryVisitRepo()
	planRepo := newMemoryPlanRepo()
	svc := NewLandmarkService(landmarkRepo, visitRepo, planRepo)

	landmarkA := landmarkRepo.seed("Galata Tower")
	landmarkB := landmarkRepo.seed("Topkapi Palace")

	visitRepo.seed(landmarkA.ID)
	visitRepo.seed(landmarkA.ID)
	unrelated := visitRepo.seed(landmarkB.ID)

	plan := planRepo.seed("Weekend Tour", []domain.PlanEntry{
		{LandmarkID: landmarkB.ID, Order: 0},
		{LandmarkID: landmarkA.ID, Order: 1},
	})

	result, err := svc.Delete(ctx, landmarkA.ID)
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if result.VisitsDeleted != 2 {
		t.Fatalf("expected 2 visits deleted, got %d", result.VisitsDeleted)
	}
	if result.EntriesRemoved != 1 {
		t.Fatalf("expected 1 plan entry removed, got %d", result.EntriesRemoved)
	}

	if _, err := landmarkRepo.FindByID(ctx, landmarkA.ID); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("landmark should be gone, got %v", err)
	}

	remaining, err := visitRepo.List(ctx, domain.VisitListFilter{})
	if err != nil {
		t.Fatalf("List visits returned error: %v", err)
	}
	if len(remaining) != 1 || remaining[0].ID != unrelated.ID {
		t.Fatalf("expected only the unrelated visit to remain, got %d visits", len(remaining))
	}

	stored, err := planRepo.FindByID(ctx, plan.ID)
	if err != nil {
		t.Fatalf("FindByID plan returned error: %v", err)
	}
	if len(stored.Entries) != 1 {
		t.Fatalf("expected plan to keep one entry, got %d", len(stored.Entries))
	}
	if stored.Entries[0].LandmarkID != landmarkB.ID || stored.Entries[0].Order != 0 {
		t.Fatalf("surviving entry should be landmark B at order 0, got %+v", stored.Entries[0])
	}
}

func TestLandmarkService_Delete_NotFoundAbortsCascade(t *testing.T) {
	ctx := context.Background()

	landmarkRepo := newMemoryLandmarkRepo()
	visitRepo := newMemoryVisitRepo()
	planRepo := newMemoryPlanRepo()
	svc := NewLandmarkService(landmarkRepo, visitRepo, planRepo)

	landmark := landmarkRepo.seed("Maiden's Tower")
	visitRepo.seed(landmark.ID)

	if _, err := svc.Delete(ctx, uuid.New()); !errors.Is(err, ErrLandmarkNotFound) {
		t.Fatalf("expected ErrLandmarkNotFound, got %v", err)
	}
	if visitRepo.deleteByLandmarkCalls != 0 {
		t.Fatalf("cascade must not run when the primary delete fails")
	}
	if planRepo.removeEntriesCalls != 0 {
		t.Fatalf("plan pruning must not run when the primary delete fails")
	}
}

func TestLandmarkService_Delete_PartialCascadeFailureKeepsLandmarkDeleted(t *testing.T) {
	ctx := context.Background()

	landmarkRepo := newMemoryLandmarkRepo()
	visitRepo := newMemoryVisitRepo()
	visitRepo.deleteByLandmarkErr = errors.New("storage unavailable")
	planRepo := newMemoryPlanRepo()
	svc := NewLandmarkService(landmarkRepo, visitRepo, planRepo)

	landmark := landmarkRepo.seed("Basilica Cistern")
	planRepo.seed("City Walk", []domain.PlanEntry{{LandmarkID: landmark.ID, Order: 0}})

	result, err := svc.Delete(ctx, landmark.ID)
	if err != nil {
		t.Fatalf("a failed cascade sub-step must not surface an error, got %v", err)
	}
	if _, findErr := landmarkRepo.FindByID(ctx, landmark.ID); !errors.Is(findErr, sql.ErrNoRows) {
		t.Fatalf("landmark must stay deleted despite the cascade failure")
	}
	if result.VisitsDeleted != 0 {
		t.Fatalf("no visits were deleted, got count %d", result.VisitsDeleted)
	}
	if result.EntriesRemoved != 1 {
		t.Fatalf("plan pruning still runs after a visit-cleanup failure, got %d", result.EntriesRemoved)
	}
}

func TestLandmarkService_Update_PairedCoordinates(t *testing.T) {
	ctx := context.Background()
	landmarkRepo := newMemoryLandmarkRepo()
	svc := NewLandmarkService(landmarkRepo, newMemoryVisitRepo(), newMemoryPlanRepo())

	landmark := landmarkRepo.seed("Blue Mosque")

	lat := 40.0
	if _, err := svc.Update(ctx, landmark.ID, LandmarkUpdateInput{Latitude: &lat}); !errors.Is(err, ErrLandmarkValidation) {
		t.Fatalf("expected ErrLandmarkValidation for lone latitude, got %v", err)
	}

	name := "Sultan Ahmed Mosque"
	updated, err := svc.Update(ctx, landmark.ID, LandmarkUpdateInput{Name: &name})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Sultan Ahmed Mosque" {
		t.Fatalf("expected updated name, got %q", updated.Name)
	}
}

// --- Test doubles ---

type memoryLandmarkRepo struct {
	items map[uuid.UUID]*domain.Landmark
	clock *fakeClock
}

func newMemoryLandmarkRepo() *memoryLandmarkRepo {
	return &memoryLandmarkRepo{
		items: make(map[uuid.UUID]*domain.Landmark),
		clock: newFakeClock(),
	}
}

func (m *memoryLandmarkRepo) seed(name string) *domain.Landmark {
	landmark := &domain.Landmark{
		ID:        uuid.New(),
		Name:      name,
		Latitude:  41.0,
		Longitude: 29.0,
		Category:  domain.LandmarkCategoryHistorical,
		CreatedAt: m.clock.next(),
	}
	m.items[landmark.ID] = landmark
	return landmark
}

func (m *memoryLandmarkRepo) Create(_ context.Context, landmark *domain.Landmark) (*domain.Landmark, error) {
	cloned := *landmark
	cloned.ID = uuid.New()
	cloned.CreatedAt = m.clock.next()
	m.items[cloned.ID] = &cloned
	result := cloned
	return &result, nil
}

func (m *memoryLandmarkRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.Landmark, error) {
	landmark, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cloned := *landmark
	return &cloned, nil
}

func (m *memoryLandmarkRepo) FindManyByIDs(_ context.Context, ids []uuid.UUID) ([]domain.Landmark, error) {
	found := make([]domain.Landmark, 0, len(ids))
	for _, id := range ids {
		if landmark, ok := m.items[id]; ok {
			found = append(found, *landmark)
		}
	}
	return found, nil
}

func (m *memoryLandmarkRepo) List(_ context.Context, filter domain.LandmarkListFilter) ([]domain.Landmark, error) {
	items := make([]domain.Landmark, 0, len(m.items))
	for _, landmark := range m.items {
		if filter.Category != nil && landmark.Category != *filter.Category {
			continue
		}
		items = append(items, *landmark)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (m *memoryLandmarkRepo) Update(_ context.Context, id uuid.UUID, update domain.LandmarkUpdate) (*domain.Landmark, error) {
	landmark, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if update.Name != nil {
		landmark.Name = *update.Name
	}
	if update.Latitude != nil && update.Longitude != nil {
		landmark.Latitude = *update.Latitude
		landmark.Longitude = *update.Longitude
	}
	if update.Description != nil {
		landmark.Description = *update.Description
	}
	if update.Category != nil {
		landmark.Category = *update.Category
	}
	cloned := *landmark
	return &cloned, nil
}

func (m *memoryLandmarkRepo) Delete(_ context.Context, id uuid.UUID) (*domain.Landmark, error) {
	landmark, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	delete(m.items, id)
	cloned := *landmark
	return &cloned, nil
}

type memoryVisitRepo struct {
	items map[uuid.UUID]*domain.VisitedLandmark
	clock *fakeClock

	deleteByLandmarkErr   error
	deleteByLandmarkCalls int
}

func newMemoryVisitRepo() *memoryVisitRepo {
	return &memoryVisitRepo{
		items: make(map[uuid.UUID]*domain.VisitedLandmark),
		clock: newFakeClock(),
	}
}

func (m *memoryVisitRepo) seed(landmarkID uuid.UUID) *domain.VisitedLandmark {
	visit := &domain.VisitedLandmark{
		ID:          uuid.New(),
		LandmarkID:  landmarkID,
		VisitedDate: m.clock.next(),
		VisitorName: "Anonymous",
		CreatedAt:   m.clock.next(),
	}
	m.items[visit.ID] = visit
	return visit
}

func (m *memoryVisitRepo) Create(_ context.Context, visit *domain.VisitedLandmark) (*domain.VisitedLandmark, error) {
	cloned := *visit
	cloned.ID = uuid.New()
	cloned.CreatedAt = m.clock.next()
	m.items[cloned.ID] = &cloned
	result := cloned
	return &result, nil
}

func (m *memoryVisitRepo) List(_ context.Context, filter domain.VisitListFilter) ([]domain.VisitedLandmark, error) {
	items := make([]domain.VisitedLandmark, 0, len(m.items))
	for _, visit := range m.items {
		if filter.LandmarkID != nil && visit.LandmarkID != *filter.LandmarkID {
			continue
		}
		items = append(items, *visit)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].VisitedDate.After(items[j].VisitedDate) })
	return items, nil
}

func (m *memoryVisitRepo) Update(_ context.Context, id uuid.UUID, update domain.VisitUpdate) (*domain.VisitedLandmark, error) {
	visit, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	if update.VisitorName != nil {
		visit.VisitorName = *update.VisitorName
	}
	if update.VisitedDate != nil {
		visit.VisitedDate = *update.VisitedDate
	}
	if update.Notes != nil {
		visit.Notes = *update.Notes
	}
	cloned := *visit
	return &cloned, nil
}

func (m *memoryVisitRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func (m *memoryVisitRepo) DeleteByLandmark(_ context.Context, landmarkID uuid.UUID) (int64, error) {
	m.deleteByLandmarkCalls++
	if m.deleteByLandmarkErr != nil {
		return 0, m.deleteByLandmarkErr
	}
	var deleted int64
	for id, visit := range m.items {
		if visit.LandmarkID == landmarkID {
			delete(m.items, id)
			deleted++
		}
	}
	return deleted, nil
}

type memoryPlanRepo struct {
	items map[uuid.UUID]*domain.VisitingPlan
	clock *fakeClock

	removeEntriesErr   error
	removeEntriesCalls int
}

func newMemoryPlanRepo() *memoryPlanRepo {
	return &memoryPlanRepo{
		items: make(map[uuid.UUID]*domain.VisitingPlan),
		clock: newFakeClock(),
	}
}

func (m *memoryPlanRepo) seed(name string, entries []domain.PlanEntry) *domain.VisitingPlan {
	plan := &domain.VisitingPlan{
		ID:        uuid.New(),
		Name:      name,
		Creator:   "Anonymous",
		Entries:   append([]domain.PlanEntry(nil), entries...),
		IsPublic:  true,
		CreatedAt: m.clock.next(),
	}
	m.items[plan.ID] = plan
	return plan
}

func (m *memoryPlanRepo) Create(_ context.Context, plan *domain.VisitingPlan) (*domain.VisitingPlan, error) {
	cloned := *plan
	cloned.ID = uuid.New()
	cloned.CreatedAt = m.clock.next()
	cloned.Entries = append([]domain.PlanEntry(nil), plan.Entries...)
	m.items[cloned.ID] = &cloned

	result := cloned
	result.Entries = append([]domain.PlanEntry(nil), cloned.Entries...)
	return &result, nil
}

func (m *memoryPlanRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.VisitingPlan, error) {
	plan, ok := m.items[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	cloned := *plan
	cloned.Entries = append([]domain.PlanEntry(nil), plan.Entries...)
	return &cloned, nil
}

func (m *memoryPlanRepo) List(_ context.Context) ([]domain.VisitingPlan, error) {
	items := make([]domain.VisitingPlan, 0, len(m.items))
	for _, plan := range m.items {
		cloned := *plan
		cloned.Entries = append([]domain.PlanEntry(nil), plan.Entries...)
		items = append(items, cloned)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].CreatedAt.After(items[j].CreatedAt) })
	return items, nil
}

func (m *memoryPlanRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := m.items[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.items, id)
	return nil
}

func (m *memoryPlanRepo) RemoveEntriesByLandmark(_ context.Context, landmarkID uuid.UUID) (int64, error) {
	m.removeEntriesCalls++
	if m.removeEntriesErr != nil {
		return 0, m.removeEntriesErr
	}
	var removed int64
	for _, plan := range m.items {
		kept := plan.Entries[:0]
		for _, entry := range plan.Entries {
			if entry.LandmarkID == landmarkID {
				removed++
				continue
			}
			kept = append(kept, entry)
		}
		plan.Entries = kept
	}
	return removed, nil
}

// fakeClock hands out strictly increasing timestamps so ordering assertions
// stay deterministic.
type fakeClock struct {
	current time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{current: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) next() time.Time {
	c.current = c.current.Add(time.Second)
	return c.current
}

var _ ports.LandmarkRepository = (*memoryLandmarkRepo)(nil)
var _ ports.VisitRepository = (*memoryVisitRepo)(nil)
var _ ports.PlanRepository = (*memoryPlanRepo)(nil)
