package plants

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/wickenico/plantos/internal/platform/logger"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID   map[string]Plant
	order  []string
	writes int

	failList error
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Plant{}}
}

func (r *testRepo) Create(ctx context.Context, p Plant) error {
	if p.ID == "" {
		return errors.New("repo: id required")
	}
	if _, ok := r.byID[p.ID]; ok {
		return errors.New("repo: already exists")
	}
	r.writes++
	r.byID[p.ID] = p
	r.order = append(r.order, p.ID)
	return nil
}

func (r *testRepo) Update(ctx context.Context, p Plant) error {
	if _, ok := r.byID[p.ID]; !ok {
		return ErrNotFound
	}
	r.writes++
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Plant, error) {
	p, ok := r.byID[id]
	if !ok {
		return Plant{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]Plant, error) {
	if r.failList != nil {
		return nil, r.failList
	}
	out := make([]Plant, 0)
	for _, id := range r.order {
		p, ok := r.byID[id]
		if ok && p.OwnerUserID == ownerUserID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *testRepo) Delete(ctx context.Context, id string) error {
	if _, ok := r.byID[id]; !ok {
		return ErrNotFound
	}
	r.writes++
	delete(r.byID, id)
	return nil
}

// -------------------------
// Helpers
// -------------------------

func quietLogger() logger.Logger {
	return logger.New(logger.Options{Level: logger.Error + 1})
}

func testFields(name string) NormalizedFields {
	wc := 7
	return NormalizedFields{
		Name:       name,
		Category:   "Indoor",
		Location:   "Living Room",
		WaterCycle: &wc,
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Create_StampsOwnerIDAndTimestamps(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, quietLogger())

	now := time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	p, err := svc.Create(context.Background(), "owner-1", testFields("Aloe"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	if p.ID == "" {
		t.Fatal("expected generated id")
	}
	if p.OwnerUserID != "owner-1" {
		t.Fatalf("expected owner-1, got %q", p.OwnerUserID)
	}
	if !p.CreatedAt.Equal(now) || !p.UpdatedAt.Equal(now) {
		t.Fatalf("expected timestamps %v, got %v / %v", now, p.CreatedAt, p.UpdatedAt)
	}
}

func TestService_Create_Unauthenticated_RefusesWithoutTouchingStorage(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, quietLogger())

	_, err := svc.Create(context.Background(), "  ", testFields("Aloe"))
	if !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected ErrUnauthenticated, got %v", err)
	}
	if repo.writes != 0 {
		t.Fatalf("storage touched %d times on refused write", repo.writes)
	}
}

func TestService_CreateThenGetByID_ReturnsEqualRecord(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, quietLogger())

	created, err := svc.Create(context.Background(), "owner-1", testFields("Aloe"))
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	got, err := svc.GetByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !reflect.DeepEqual(created, got) {
		t.Fatalf("records differ:\ncreated=%+v\ngot=%+v", created, got)
	}
}

func TestService_List_IsOwnerScoped(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, quietLogger())
	ctx := context.Background()

	mine, _ := svc.Create(ctx, "owner-1", testFields("Aloe"))
	theirs, _ := svc.Create(ctx, "owner-2", testFields("Monstera"))

	got, err := svc.List(ctx, "owner-1", "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != mine.ID {
		t.Fatalf("expected only own plant, got %+v", got)
	}

	other, err := svc.List(ctx, "owner-2", "", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(other) != 1 || other[0].ID != theirs.ID {
		t.Fatalf("expected only other plant, got %+v", other)
	}
}

func TestService_List_AppliesSearchAndCategory(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, quietLogger())
	ctx := context.Background()

	aloe := testFields("Aloe Vera")
	aloe.Category = "Succulent"
	_, _ = svc.Create(ctx, "owner-1", aloe)
	_, _ = svc.Create(ctx, "owner-1", testFields("Monstera"))

	got, err := svc.List(ctx, "owner-1", "ALOE", "Succulent")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].Name != "Aloe Vera" {
		t.Fatalf("expected [Aloe Vera], got %+v", got)
	}
}

func TestService_List_StorageFailurePropagatesForDegradedHandling(t *testing.T) {
	repo := newTestRepo()
	repo.failList = errors.New("db down")
	svc := NewService(repo, quietLogger())

	_, err := svc.List(context.Background(), "owner-1", "", "")
	if err == nil {
		t.Fatal("expected error from failing storage")
	}
}

// Documenta el re-estampado: editar SIEMPRE reasigna el registro a quien
// edita, sea o no el dueño original. Comportamiento intencional observado,
// no un bug a corregir acá.
func TestService_Update_ReStampsOwnerToCaller(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, quietLogger())
	ctx := context.Background()

	created, _ := svc.Create(ctx, "owner-1", testFields("Aloe"))

	updated, err := svc.Update(ctx, created.ID, "owner-2", testFields("Aloe renamed"))
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.OwnerUserID != "owner-2" {
		t.Fatalf("expected re-stamped owner-2, got %q", updated.OwnerUserID)
	}

	got, _ := svc.GetByID(ctx, created.ID)
	if got.OwnerUserID != "owner-2" {
		t.Fatalf("persisted owner not re-stamped: %q", got.OwnerUserID)
	}
	if got.Name != "Aloe renamed" {
		t.Fatalf("fields not replaced: %q", got.Name)
	}
	if !got.CreatedAt.Equal(created.CreatedAt) {
		t.Fatalf("created_at must survive updates")
	}
}

func TestService_Update_NotFound(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, quietLogger())

	_, err := svc.Update(context.Background(), "nope", "owner-1", testFields("X"))
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestService_Delete_ReturnsPriorState_ThenNotFound(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, quietLogger())
	ctx := context.Background()

	created, _ := svc.Create(ctx, "owner-1", testFields("Aloe"))

	prior, err := svc.Delete(ctx, created.ID, "owner-1")
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if !reflect.DeepEqual(prior, created) {
		t.Fatalf("expected prior state %+v, got %+v", created, prior)
	}

	if _, err := svc.GetByID(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	// Segundo delete: falla duro, no silencio.
	if _, err := svc.Delete(ctx, created.ID, "owner-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}

func TestService_RefreshHook_FiresAfterEachSuccessfulMutation(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo, quietLogger())
	ctx := context.Background()

	var refreshed []string
	svc.SetRefreshHook(func(op, owner string) { refreshed = append(refreshed, op+":"+owner) })

	created, _ := svc.Create(ctx, "owner-1", testFields("Aloe"))
	_, _ = svc.Update(ctx, created.ID, "owner-1", testFields("Aloe 2"))
	_, _ = svc.Delete(ctx, created.ID, "owner-1")

	want := []string{"create:owner-1", "update:owner-1", "delete:owner-1"}
	if !reflect.DeepEqual(refreshed, want) {
		t.Fatalf("expected %v, got %v", want, refreshed)
	}

	// Mutación fallida: no refresca.
	refreshed = nil
	if _, err := svc.Delete(ctx, "nope", "owner-1"); err == nil {
		t.Fatal("expected error")
	}
	if len(refreshed) != 0 {
		t.Fatalf("refresh fired on failed mutation")
	}
}
