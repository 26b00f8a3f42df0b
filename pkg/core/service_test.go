package core_test

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/aretw0/jurnalo/pkg/core"
)

// MockRepository implements the parts of core.Repository the service touches.
// It deliberately does NOT implement core.Seeder to test fallback/errors.
type MockRepository struct {
	core.Repository

	categories map[string]core.Category
	choices    []core.Choice
	entries    []core.NewEntry
	reminders  map[string]*int
	shifted    time.Duration
}

func NewMockRepository() *MockRepository {
	return &MockRepository{
		categories: make(map[string]core.Category),
		reminders:  make(map[string]*int),
	}
}

func (m *MockRepository) CreateCategory(ctx context.Context, c core.Category) error {
	if _, ok := m.categories[c.Label]; ok {
		return core.ErrAlreadyExists
	}
	m.categories[c.Label] = c
	return nil
}

func (m *MockRepository) ListCategories(ctx context.Context) ([]core.Category, error) {
	var out []core.Category
	for _, c := range m.categories {
		out = append(out, c)
	}
	// Sort for deterministic tests
	sort.Slice(out, func(i, j int) bool {
		return out[i].Label < out[j].Label
	})
	return out, nil
}

func (m *MockRepository) CreateChoice(ctx context.Context, c core.Choice) error {
	if _, ok := m.categories[c.CategoryLabel]; !ok {
		return core.ErrNotFound
	}
	m.choices = append(m.choices, c)
	return nil
}

func (m *MockRepository) SetChoiceReminder(ctx context.Context, categoryLabel, label string, days *int) error {
	m.reminders[categoryLabel+"/"+label] = days
	return nil
}

func (m *MockRepository) CreateEntries(ctx context.Context, entries []core.NewEntry) error {
	m.entries = append(m.entries, entries...)
	return nil
}

func (m *MockRepository) ShiftLatestEntry(ctx context.Context, d time.Duration) error {
	m.shifted += d
	return nil
}

// seedingRepository adds core.Seeder on top of the mock.
type seedingRepository struct {
	*MockRepository
	seeded int
}

func (s *seedingRepository) IsEmpty(ctx context.Context) (bool, error) {
	return len(s.categories) == 0, nil
}

func (s *seedingRepository) Seed(ctx context.Context, data core.SeedData) error {
	for _, c := range data.Categories {
		s.categories[c.Label] = c
	}
	s.seeded++
	return nil
}

func TestService_Categories(t *testing.T) {
	repo := NewMockRepository()
	service := core.NewService(repo)
	ctx := context.TODO()

	for _, label := range []string{"mood", "sleep", "meds/morning", "meds/evening"} {
		if err := service.CreateCategory(ctx, label, "How about "+label+"?"); err != nil {
			t.Fatalf("CreateCategory(%q) failed: %v", label, err)
		}
	}

	if err := service.CreateCategory(ctx, "mood", "again"); !errors.Is(err, core.ErrAlreadyExists) {
		t.Errorf("expected ErrAlreadyExists, got %v", err)
	}
	if err := service.CreateCategory(ctx, "  ", "prompt"); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for blank label, got %v", err)
	}

	all, err := service.ListCategories(ctx, "")
	if err != nil {
		t.Fatalf("ListCategories failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("expected 4 categories, got %d", len(all))
	}

	meds, err := service.ListCategories(ctx, "meds/*")
	if err != nil {
		t.Fatalf("ListCategories with pattern failed: %v", err)
	}
	if len(meds) != 2 || meds[0].Label != "meds/evening" || meds[1].Label != "meds/morning" {
		t.Errorf("unexpected filtered categories: %+v", meds)
	}

	if _, err := service.ListCategories(ctx, "meds/["); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for bad pattern, got %v", err)
	}
}

func TestService_AddChoice(t *testing.T) {
	repo := NewMockRepository()
	service := core.NewService(repo)
	ctx := context.TODO()

	if err := service.AddChoice(ctx, "mood", "happy", "h"); !errors.Is(err, core.ErrNotFound) {
		t.Errorf("expected ErrNotFound for unknown category, got %v", err)
	}

	_ = service.CreateCategory(ctx, "mood", "How do you feel?")
	if err := service.AddChoice(ctx, "mood", "happy", "h"); err != nil {
		t.Fatalf("AddChoice failed: %v", err)
	}
	if err := service.AddChoice(ctx, "mood", "sad", "s d"); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for shortcut with space, got %v", err)
	}
	if err := service.AddChoice(ctx, "mood", "sad", "s:"); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for shortcut with colon, got %v", err)
	}
	if len(repo.choices) != 1 {
		t.Errorf("expected 1 stored choice, got %d", len(repo.choices))
	}
}

func TestService_ChangeChoiceTimer(t *testing.T) {
	repo := NewMockRepository()
	service := core.NewService(repo)
	ctx := context.TODO()

	if err := service.ChangeChoiceTimer(ctx, "meds", "pill", 3); err != nil {
		t.Fatalf("ChangeChoiceTimer failed: %v", err)
	}
	if got := repo.reminders["meds/pill"]; got == nil || *got != 3 {
		t.Errorf("expected reminder 3, got %v", got)
	}

	if err := service.ChangeChoiceTimer(ctx, "meds", "pill", -1); err != nil {
		t.Fatalf("ChangeChoiceTimer(-1) failed: %v", err)
	}
	if got := repo.reminders["meds/pill"]; got != nil {
		t.Errorf("expected reminder to be cleared, got %d", *got)
	}

	for _, bad := range []int{0, -2} {
		if err := service.ChangeChoiceTimer(ctx, "meds", "pill", bad); !errors.Is(err, core.ErrInvalidInput) {
			t.Errorf("timer %d: expected ErrInvalidInput, got %v", bad, err)
		}
	}
}

func TestService_AddNote(t *testing.T) {
	repo := NewMockRepository()
	service := core.NewService(repo)
	ctx := context.TODO()

	if err := service.AddNote(ctx, "  slept in the car  "); err != nil {
		t.Fatalf("AddNote failed: %v", err)
	}
	if len(repo.entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(repo.entries))
	}
	e := repo.entries[0]
	if e.CategoryID != nil || e.ChoiceID != nil {
		t.Errorf("quick note must not reference a category or choice: %+v", e)
	}
	if e.Details == nil || *e.Details != "slept in the car" {
		t.Errorf("unexpected details: %v", e.Details)
	}

	if err := service.AddNote(ctx, "   "); !errors.Is(err, core.ErrInvalidInput) {
		t.Errorf("expected ErrInvalidInput for empty note, got %v", err)
	}
}

func TestService_PushLatestToYesterday(t *testing.T) {
	repo := NewMockRepository()
	service := core.NewService(repo)

	if err := service.PushLatestToYesterday(context.TODO()); err != nil {
		t.Fatalf("PushLatestToYesterday failed: %v", err)
	}
	if repo.shifted != 24*time.Hour {
		t.Errorf("expected a one day shift, got %v", repo.shifted)
	}
}

func TestService_Seed_Unsupported(t *testing.T) {
	service := core.NewService(NewMockRepository())

	_, err := service.Seed(context.TODO(), core.SeedData{})
	if err == nil {
		t.Fatal("expected error for non-seeding repo")
	}
	if err.Error() != "repository does not support seeding" {
		t.Errorf("unexpected error msg: %v", err)
	}
}

func TestService_Seed_OnlyWhenEmpty(t *testing.T) {
	repo := &seedingRepository{MockRepository: NewMockRepository()}
	service := core.NewService(repo)
	ctx := context.TODO()
	data := core.SeedData{Categories: []core.Category{{Label: "mood", Prompt: "How do you feel?"}}}

	seeded, err := service.Seed(ctx, data)
	if err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if !seeded {
		t.Error("expected first seed to write data")
	}

	seeded, err = service.Seed(ctx, data)
	if err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}
	if seeded {
		t.Error("expected second seed to be skipped")
	}
	if repo.seeded != 1 {
		t.Errorf("expected Seed to reach the repository once, got %d", repo.seeded)
	}
}

func TestService_State(t *testing.T) {
	service := core.NewService(&seedingRepository{MockRepository: NewMockRepository()})

	state, ok := service.State().(core.ServiceState)
	if !ok {
		t.Fatalf("unexpected state type %T", service.State())
	}
	if state.RepositoryType != "repository" {
		t.Errorf("expected generic repository type, got %q", state.RepositoryType)
	}
	if !state.Seedable {
		t.Error("expected seedable repository")
	}
	if service.ComponentType() != "service" {
		t.Errorf("unexpected component type %q", service.ComponentType())
	}
}
