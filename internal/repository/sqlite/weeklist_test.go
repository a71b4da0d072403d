package sqlite_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/msomdec/weeklist/internal/domain"
	"github.com/msomdec/weeklist/internal/repository/sqlite"
)

var t0 = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)

func createWeekList(t *testing.T, db *sqlite.DB, userID, name string, at time.Time) *domain.WeekList {
	t.Helper()
	wl := domain.NewWeekList(userID, name, "desc "+name, at)
	if err := db.WeekLists().Create(context.Background(), wl, nil); err != nil {
		t.Fatalf("Create week list: %v", err)
	}
	return wl
}

func TestWeekListRepository_CreateAndGet(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "wl@example.com")
	repo := sqlite.NewWeekListRepository(db)
	ctx := context.Background()

	wl := domain.NewWeekList(user.ID, "Week 1", "first week", t0)
	if err := repo.Create(ctx, wl, nil); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if wl.ID == "" {
		t.Fatal("expected ID to be set")
	}

	got, err := repo.GetByID(ctx, wl.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.UserID != user.ID || got.Name != "Week 1" || got.Description != "first week" {
		t.Fatalf("unexpected week list: %+v", got)
	}
	if !got.CreatedAt.Equal(t0) || !got.ActiveUntil.Equal(t0.Add(domain.ActiveWindow)) {
		t.Fatalf("timestamps not round-tripped: created=%v activeUntil=%v", got.CreatedAt, got.ActiveUntil)
	}
	if got.State != domain.WeekListActive || got.Completed || got.CompletedAt != nil {
		t.Fatalf("expected active, uncompleted week list: %+v", got)
	}
	if got.Tasks == nil || len(got.Tasks) != 0 {
		t.Fatalf("expected empty task slice, got %v", got.Tasks)
	}
}

func TestWeekListRepository_Create_AdmitRejects(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "admit@example.com")
	repo := sqlite.NewWeekListRepository(db)
	ctx := context.Background()

	createWeekList(t, db, user.ID, "one", t0)
	createWeekList(t, db, user.ID, "two", t0)

	var seen int
	admit := func(existing []domain.WeekList) error {
		seen = len(existing)
		return domain.ErrLimitExceeded
	}

	err := repo.Create(ctx, domain.NewWeekList(user.ID, "three", "", t0), admit)
	if !errors.Is(err, domain.ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
	if seen != 2 {
		t.Fatalf("admit saw %d existing week lists, want 2", seen)
	}

	lists, err := repo.ListByUser(ctx, user.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("rejected insert must not persist, got %d week lists", len(lists))
	}
}

func TestWeekListRepository_Create_UnknownUser(t *testing.T) {
	db := newTestDB(t)

	err := db.WeekLists().Create(context.Background(), domain.NewWeekList("ghost", "", "", t0), nil)
	if err == nil {
		t.Fatal("expected foreign key error for unknown user")
	}
}

func TestWeekListRepository_GetByID_NotFound(t *testing.T) {
	db := newTestDB(t)

	_, err := db.WeekLists().GetByID(context.Background(), "missing")
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWeekListRepository_ListByUser_InsertionOrder(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	ctx := context.Background()

	first := createWeekList(t, db, alice.ID, "first", t0)
	second := createWeekList(t, db, alice.ID, "second", t0)
	createWeekList(t, db, bob.ID, "bob's", t0)

	lists, err := db.WeekLists().ListByUser(ctx, alice.ID)
	if err != nil {
		t.Fatalf("ListByUser: %v", err)
	}
	if len(lists) != 2 {
		t.Fatalf("expected 2 week lists, got %d", len(lists))
	}
	if lists[0].ID != first.ID || lists[1].ID != second.ID {
		t.Fatalf("expected insertion order [%s %s], got [%s %s]", first.ID, second.ID, lists[0].ID, lists[1].ID)
	}
}

func TestWeekListRepository_ListByState(t *testing.T) {
	db := newTestDB(t)
	alice := createUser(t, db, "alice@example.com")
	bob := createUser(t, db, "bob@example.com")
	ctx := context.Background()

	a := createWeekList(t, db, alice.ID, "a", t0)
	done := createWeekList(t, db, alice.ID, "done", t0)
	b := createWeekList(t, db, bob.ID, "b", t0)

	if err := db.WeekLists().MarkCompleted(ctx, done.ID, t0.Add(time.Hour)); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	active, err := db.WeekLists().ListByState(ctx, domain.WeekListActive)
	if err != nil {
		t.Fatalf("ListByState: %v", err)
	}
	ids := map[string]bool{}
	for _, w := range active {
		ids[w.ID] = true
	}
	if len(active) != 2 || !ids[a.ID] || !ids[b.ID] {
		t.Fatalf("expected active lists %s and %s across users, got %v", a.ID, b.ID, ids)
	}
}

func TestWeekListRepository_UpdateDescription(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "upd@example.com")
	wl := createWeekList(t, db, user.ID, "w", t0)
	ctx := context.Background()

	if err := db.WeekLists().UpdateDescription(ctx, wl.ID, "new description"); err != nil {
		t.Fatalf("UpdateDescription: %v", err)
	}
	got, err := db.WeekLists().GetByID(ctx, wl.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Description != "new description" {
		t.Fatalf("expected updated description, got %q", got.Description)
	}

	if err := db.WeekLists().UpdateDescription(ctx, "missing", "x"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWeekListRepository_MarkCompleted(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "done@example.com")
	wl := createWeekList(t, db, user.ID, "w", t0)
	ctx := context.Background()
	at := t0.Add(5 * time.Hour)

	if err := db.WeekLists().MarkCompleted(ctx, wl.ID, at); err != nil {
		t.Fatalf("MarkCompleted: %v", err)
	}

	got, err := db.WeekLists().GetByID(ctx, wl.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if !got.Completed || got.State != domain.WeekListCompleted {
		t.Fatalf("expected completed week list, got %+v", got)
	}
	if got.CompletedAt == nil || !got.CompletedAt.Equal(at) {
		t.Fatalf("expected completedAt %v, got %v", at, got.CompletedAt)
	}

	if err := db.WeekLists().MarkCompleted(ctx, wl.ID, at.Add(time.Hour)); !errors.Is(err, domain.ErrAlreadyCompleted) {
		t.Fatalf("expected ErrAlreadyCompleted on second call, got %v", err)
	}
	if err := db.WeekLists().MarkCompleted(ctx, "missing", at); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestWeekListRepository_Delete(t *testing.T) {
	db := newTestDB(t)
	user := createUser(t, db, "del@example.com")
	wl := createWeekList(t, db, user.ID, "w", t0)
	ctx := context.Background()

	if err := db.Tasks().Create(ctx, &domain.Task{WeekListID: wl.ID, Description: "t"}); err != nil {
		t.Fatalf("Create task: %v", err)
	}

	if err := db.WeekLists().Delete(ctx, wl.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := db.WeekLists().GetByID(ctx, wl.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}

	tasks, err := db.Tasks().ListByWeekList(ctx, wl.ID)
	if err != nil {
		t.Fatalf("ListByWeekList: %v", err)
	}
	if len(tasks) != 0 {
		t.Fatalf("expected tasks to be deleted with the week list, got %d", len(tasks))
	}

	if err := db.WeekLists().Delete(ctx, wl.ID); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound deleting twice, got %v", err)
	}
}
