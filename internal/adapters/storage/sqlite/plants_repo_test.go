package sqlite

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/wickenico/plantos/internal/domain/plants"
)

func newTestRepo(t *testing.T) *PlantsRepo {
	t.Helper()

	tempDir, err := os.MkdirTemp("", "plantos-test-*")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	t.Cleanup(func() { os.RemoveAll(tempDir) })

	db, err := Open(filepath.Join(tempDir, "test.db"))
	if err != nil {
		t.Fatalf("failed to open store: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return NewPlantsRepo(db)
}

func samplePlant(owner string) plants.Plant {
	h := 42.5
	wc := 7
	lw := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)

	return plants.Plant{
		ID:             uuid.NewString(),
		OwnerUserID:    owner,
		Name:           "Aloe Vera",
		Category:       "Succulent",
		Nickname:       "Alo",
		Location:       "Kitchen",
		Height:         &h,
		WaterCycle:     &wc,
		LastWatered:    &lw,
		ReferenceLinks: []string{"a.com", "b.com", "a.com"},
		IsFavorite:     true,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
}

func TestPlantsRepo_CreateGetRoundTrip(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := samplePlant("owner-1")
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	if got.ID != p.ID || got.OwnerUserID != p.OwnerUserID || got.Name != p.Name {
		t.Fatalf("basic fields differ: %+v", got)
	}
	if got.Height == nil || *got.Height != 42.5 {
		t.Fatalf("height lost: %v", got.Height)
	}
	if got.WaterCycle == nil || *got.WaterCycle != 7 {
		t.Fatalf("water cycle lost: %v", got.WaterCycle)
	}
	if got.LastWatered == nil || !got.LastWatered.Equal(*p.LastWatered) {
		t.Fatalf("last watered lost: %v", got.LastWatered)
	}
	if got.LastRepotted != nil {
		t.Fatalf("expected nil last repotted, got %v", got.LastRepotted)
	}
	if len(got.ReferenceLinks) != 3 || got.ReferenceLinks[2] != "a.com" {
		t.Fatalf("reference links mangled: %v", got.ReferenceLinks)
	}
	if !got.IsFavorite || got.IsDead {
		t.Fatalf("flags mangled: fav=%v dead=%v", got.IsFavorite, got.IsDead)
	}
	if !got.CreatedAt.Equal(p.CreatedAt) || !got.UpdatedAt.Equal(p.UpdatedAt) {
		t.Fatalf("timestamps differ: %v / %v", got.CreatedAt, got.UpdatedAt)
	}
}

func TestPlantsRepo_ListByOwner_ScopesAndOrders(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	first := samplePlant("owner-1")
	second := samplePlant("owner-1")
	second.Name = "Monstera"
	second.CreatedAt = first.CreatedAt.Add(time.Minute)
	second.UpdatedAt = second.CreatedAt
	other := samplePlant("owner-2")

	for _, p := range []plants.Plant{second, first, other} {
		if err := repo.Create(ctx, p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	got, err := repo.ListByOwner(ctx, "owner-1")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 plants, got %d", len(got))
	}
	// created_at asc
	if got[0].ID != first.ID || got[1].ID != second.ID {
		t.Fatalf("wrong order: %s, %s", got[0].Name, got[1].Name)
	}
}

func TestPlantsRepo_UpdateReplacesRecord(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := samplePlant("owner-1")
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	p.OwnerUserID = "owner-2"
	p.Name = "Aloe renamed"
	p.Height = nil
	p.ReferenceLinks = nil
	p.UpdatedAt = p.UpdatedAt.Add(time.Hour)

	if err := repo.Update(ctx, p); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := repo.GetByID(ctx, p.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.OwnerUserID != "owner-2" || got.Name != "Aloe renamed" {
		t.Fatalf("update not applied: %+v", got)
	}
	if got.Height != nil || got.ReferenceLinks != nil {
		t.Fatalf("cleared fields came back: %+v", got)
	}
}

func TestPlantsRepo_UpdateMissing_NotFound(t *testing.T) {
	repo := newTestRepo(t)

	p := samplePlant("owner-1")
	err := repo.Update(context.Background(), p)
	if !errors.Is(err, plants.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPlantsRepo_DeleteThenGet_NotFound(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	p := samplePlant("owner-1")
	if err := repo.Create(ctx, p); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.Delete(ctx, p.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}

	if _, err := repo.GetByID(ctx, p.ID); !errors.Is(err, plants.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := repo.Delete(ctx, p.ID); !errors.Is(err, plants.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
