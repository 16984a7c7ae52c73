package repositories

import (
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/session"
	"github.com/desertthunder/fivhter/internal/shared"
	"github.com/desertthunder/fivhter/internal/store"
	tu "github.com/desertthunder/fivhter/internal/testing"
)

// setupTestDB creates an in-memory SQLite database with migrations applied
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := shared.OpenDatabase(shared.DatabaseConfig{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	return db
}

var created = time.Date(2025, 4, 1, 14, 45, 0, 123000, time.UTC)

func TestProfileRepository(t *testing.T) {
	t.Run("Create and Get", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewProfileRepository(db)
		updated := created.Add(time.Hour)
		want := models.Profile{
			ID:        "user-1",
			Username:  "alice",
			AvatarURL: tu.Ptr("https://example.com/a.png"),
			CreatedAt: created,
			UpdatedAt: &updated,
		}

		if err := repo.Create(want); err != nil {
			t.Fatalf("failed to create profile: %v", err)
		}

		got, err := repo.Get("user-1")
		if err != nil {
			t.Fatalf("failed to get profile: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("profile mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Nullable columns", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewProfileRepository(db)
		if err := repo.Create(models.Profile{ID: "user-2", Username: "bob", CreatedAt: created}); err != nil {
			t.Fatalf("failed to create profile: %v", err)
		}

		got, _ := repo.Get("user-2")
		if got.AvatarURL != nil || got.UpdatedAt != nil {
			t.Errorf("expected nil avatar and updated_at, got %+v", got)
		}
	})

	t.Run("Duplicate", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewProfileRepository(db)
		p := models.Profile{ID: "user-1", Username: "alice", CreatedAt: created}
		repo.Create(p)
		if err := repo.Create(p); err == nil {
			t.Fatal("expected error when creating a duplicate profile")
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		_, err := NewProfileRepository(db).Get("nonexistent-id")
		if !errors.Is(err, shared.ErrNotFound) {
			t.Fatalf("expected ErrNotFound, got %v", err)
		}
	})
}

func TestListRepository(t *testing.T) {
	list := func(id, title string) models.List {
		return models.List{
			ID:          id,
			Title:       title,
			Description: tu.Ptr("desc"),
			UserID:      "user-1",
			Category:    tu.Ptr("food"),
			Visibility:  models.VisibilityPrivate,
			VoteCount:   3,
			CreatedAt:   created,
		}
	}

	t.Run("Create, Get and List", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewListRepository(db)
		second, first := list("list-b", "Second"), list("list-a", "First")
		first.Description = nil

		if err := repo.Create(second, 1); err != nil {
			t.Fatalf("failed to create list: %v", err)
		}
		if err := repo.Create(first, 0); err != nil {
			t.Fatalf("failed to create list: %v", err)
		}

		got, err := repo.Get("list-b")
		if err != nil {
			t.Fatalf("failed to get list: %v", err)
		}
		if diff := cmp.Diff(second, got); diff != "" {
			t.Errorf("list mismatch (-want +got):\n%s", diff)
		}

		all, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list: %v", err)
		}
		if diff := cmp.Diff([]models.List{first, second}, all); diff != "" {
			t.Errorf("lists should follow position (-want +got):\n%s", diff)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewListRepository(db)
		repo.Create(list("list-a", "First"), 0)

		if err := repo.Delete("list-a"); err != nil {
			t.Fatalf("failed to delete list: %v", err)
		}
		if _, err := repo.Get("list-a"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete("list-a"); !errors.Is(err, shared.ErrNotFound) {
			t.Errorf("expected ErrNotFound deleting twice, got %v", err)
		}
	})
}

func TestItemRepository(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	repo := NewItemRepository(db)
	items := []models.ListItem{
		{ID: "i3", ListID: "list-a", Title: "Third", Rank: 3, CreatedAt: created},
		{ID: "i1", ListID: "list-a", Title: "First", Description: tu.Ptr("top"), Rank: 1, CreatedAt: created},
		{ID: "x1", ListID: "list-b", Title: "Other", Rank: 1, CreatedAt: created},
		{ID: "i2", ListID: "list-a", Title: "Second", Rank: 2, CreatedAt: created},
	}
	for i, it := range items {
		if err := repo.Create(it, i); err != nil {
			t.Fatalf("failed to create item: %v", err)
		}
	}

	t.Run("ListByList orders by rank", func(t *testing.T) {
		got, err := repo.ListByList("list-a")
		if err != nil {
			t.Fatalf("failed to list items: %v", err)
		}
		if diff := cmp.Diff([]models.ListItem{items[1], items[3], items[0]}, got); diff != "" {
			t.Errorf("items mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("List keeps insertion order", func(t *testing.T) {
		got, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list items: %v", err)
		}
		if diff := cmp.Diff(items, got); diff != "" {
			t.Errorf("items mismatch (-want +got):\n%s", diff)
		}
	})
}

func TestSocialRepositories(t *testing.T) {
	t.Run("Votes are unique per list and user", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewVoteRepository(db)
		v := models.Vote{ID: "v1", ListID: "list-a", UserID: "user-1", CreatedAt: created}
		if err := repo.Create(v); err != nil {
			t.Fatalf("failed to create vote: %v", err)
		}

		dup := v
		dup.ID = "v2"
		if err := repo.Create(dup); err == nil {
			t.Fatal("expected unique constraint violation")
		}

		votes, err := repo.List()
		if err != nil {
			t.Fatalf("failed to list votes: %v", err)
		}
		if diff := cmp.Diff([]models.Vote{v}, votes); diff != "" {
			t.Errorf("votes mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Comments", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewCommentRepository(db)
		comments := []models.Comment{
			{ID: "c1", ListID: "list-a", UserID: "user-1", Username: "alice", Content: "first", CreatedAt: created},
			{ID: "c2", ListID: "list-b", UserID: "user-2", Username: "bob", Content: "elsewhere", CreatedAt: created},
			{ID: "c3", ListID: "list-a", UserID: "user-2", Username: "bob", Content: "second", CreatedAt: created.Add(time.Minute)},
		}
		for i, c := range comments {
			if err := repo.Create(c, i); err != nil {
				t.Fatalf("failed to create comment: %v", err)
			}
		}

		got, err := repo.ListByList("list-a")
		if err != nil {
			t.Fatalf("failed to list comments: %v", err)
		}
		if diff := cmp.Diff([]models.Comment{comments[0], comments[2]}, got); diff != "" {
			t.Errorf("comments mismatch (-want +got):\n%s", diff)
		}

		if none, _ := repo.ListByList("list-z"); len(none) != 0 {
			t.Errorf("expected no comments, got %d", len(none))
		}
	})
}

func TestSnapshotRepository(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		st := store.New(store.WithDemoData(), store.WithClock(tu.StepClock(time.Second)))
		list, err := st.CreateList(tu.SampleList(store.DemoUserID, "Mine", 2, 1))
		if err != nil {
			t.Fatalf("failed to create list: %v", err)
		}
		st.ToggleVote(list.ID, store.NewUserID)
		st.ToggleVote("demo-1", store.DemoUserID)
		st.AddComment("demo-1", store.NewUserID, "classic picks")
		st.UpdateList(list.ID, models.ListPatch{Description: models.Some("edited")})

		want := st.Snapshot()
		repo := NewSnapshotRepository(db)

		if empty, _ := repo.Empty(); !empty {
			t.Fatal("expected empty database before save")
		}
		if err := repo.Save(want); err != nil {
			t.Fatalf("failed to save snapshot: %v", err)
		}
		if empty, _ := repo.Empty(); empty {
			t.Fatal("expected rows after save")
		}

		got, err := repo.Load()
		if err != nil {
			t.Fatalf("failed to load snapshot: %v", err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("snapshot mismatch (-want +got):\n%s", diff)
		}

		restored := store.New(store.WithSnapshot(got))
		wantList, _ := st.GetList(list.ID)
		gotList, err := restored.GetList(list.ID)
		if err != nil {
			t.Fatalf("failed to get restored list: %v", err)
		}
		if diff := cmp.Diff(wantList, gotList); diff != "" {
			t.Errorf("hydrated list mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("Save replaces previous rows", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		repo.Save(store.DemoSnapshot())

		st := store.New(store.WithDemoData())
		st.DeleteList("demo-1")
		if err := repo.Save(st.Snapshot()); err != nil {
			t.Fatalf("failed to save snapshot: %v", err)
		}

		got, _ := repo.Load()
		if len(got.Lists) != 8 {
			t.Errorf("expected 8 lists after delete, got %d", len(got.Lists))
		}
		for _, it := range got.Items {
			if it.ListID == "demo-1" {
				t.Fatalf("deleted list item %s was persisted", it.ID)
			}
		}
	})

	t.Run("Failed save rolls back", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSnapshotRepository(db)
		repo.Save(store.DemoSnapshot())

		bad := store.DemoSnapshot()
		bad.Votes = []models.Vote{
			{ID: "v1", ListID: "demo-1", UserID: "user-1", CreatedAt: created},
			{ID: "v2", ListID: "demo-1", UserID: "user-1", CreatedAt: created},
		}
		bad.Lists = bad.Lists[:1]
		if err := repo.Save(bad); err == nil {
			t.Fatal("expected duplicate vote to fail the save")
		}

		got, _ := repo.Load()
		if len(got.Lists) != 9 {
			t.Errorf("expected previous 9 lists to survive a failed save, got %d", len(got.Lists))
		}
	})
}

func TestSlotRepository(t *testing.T) {
	t.Run("Get, Set and Remove", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		repo := NewSlotRepository(db)

		if _, ok, err := repo.Get(session.Key); err != nil || ok {
			t.Fatalf("expected empty slot, got ok=%v err=%v", ok, err)
		}

		repo.Set(session.Key, "one")
		if err := repo.Set(session.Key, "two"); err != nil {
			t.Fatalf("failed to overwrite slot: %v", err)
		}

		v, ok, err := repo.Get(session.Key)
		if err != nil || !ok || v != "two" {
			t.Errorf("expected two, got %q ok=%v err=%v", v, ok, err)
		}

		if err := repo.Remove(session.Key); err != nil {
			t.Fatalf("failed to remove slot: %v", err)
		}
		if err := repo.Remove(session.Key); err != nil {
			t.Fatalf("removing a missing slot should succeed: %v", err)
		}
	})

	t.Run("Backs a session store", func(t *testing.T) {
		db := setupTestDB(t)
		defer db.Close()

		sessions := session.New(NewSlotRepository(db), nil)
		want := models.Session{User: &models.User{ID: "mock-user-id", Username: "alice"}}
		if err := sessions.Save(want); err != nil {
			t.Fatalf("failed to save session: %v", err)
		}

		got, err := session.New(NewSlotRepository(db), nil).Load()
		if err != nil || got == nil {
			t.Fatalf("expected session, got %v err=%v", got, err)
		}
		if diff := cmp.Diff(want.User, got.User); diff != "" {
			t.Errorf("user mismatch (-want +got):\n%s", diff)
		}
	})
}
