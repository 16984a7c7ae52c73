package session

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"golang.org/x/oauth2"

	"github.com/desertthunder/fivhter/internal/models"
)

func sampleSession() models.Session {
	return models.Session{
		User: &models.User{ID: "mock-user-id", Email: "demo@example.com", Username: "demo"},
		Token: &oauth2.Token{
			AccessToken:  "access",
			RefreshToken: "refresh",
			TokenType:    "bearer",
			Expiry:       time.Date(2025, 5, 1, 13, 0, 0, 0, time.UTC),
		},
	}
}

func TestStore(t *testing.T) {
	slots := map[string]func(t *testing.T) Slot{
		"memory": func(t *testing.T) Slot { return NewMemorySlot() },
		"file": func(t *testing.T) Slot {
			return NewFileSlot(filepath.Join(t.TempDir(), "nested", "session.json"))
		},
	}

	for name, newSlot := range slots {
		t.Run(name, func(t *testing.T) {
			t.Run("Load empty", func(t *testing.T) {
				s := New(newSlot(t), nil)

				got, err := s.Load()
				if err != nil {
					t.Fatalf("failed to load: %v", err)
				}
				if got != nil {
					t.Errorf("expected nil session, got %+v", got)
				}
			})

			t.Run("Save and load", func(t *testing.T) {
				s := New(newSlot(t), nil)
				want := sampleSession()

				if err := s.Save(want); err != nil {
					t.Fatalf("failed to save: %v", err)
				}

				got, err := s.Load()
				if err != nil {
					t.Fatalf("failed to load: %v", err)
				}
				if got == nil {
					t.Fatal("expected a session")
				}
				if diff := cmp.Diff(want.User, got.User); diff != "" {
					t.Errorf("user mismatch (-want +got):\n%s", diff)
				}
				if got.Token == nil || got.Token.AccessToken != "access" || !got.Token.Expiry.Equal(want.Token.Expiry) {
					t.Errorf("token did not round trip: %+v", got.Token)
				}
			})

			t.Run("Save replaces", func(t *testing.T) {
				s := New(newSlot(t), nil)
				s.Save(sampleSession())

				next := models.Session{User: &models.User{ID: "google-user-id", Username: "google_user"}}
				if err := s.Save(next); err != nil {
					t.Fatalf("failed to save: %v", err)
				}

				got, _ := s.Load()
				if got == nil || got.User.ID != "google-user-id" || got.Token != nil {
					t.Errorf("expected replaced session, got %+v", got)
				}
			})

			t.Run("Clear", func(t *testing.T) {
				s := New(newSlot(t), nil)

				if err := s.Clear(); err != nil {
					t.Fatalf("clearing an empty slot should succeed: %v", err)
				}

				s.Save(sampleSession())
				if err := s.Clear(); err != nil {
					t.Fatalf("failed to clear: %v", err)
				}
				if got, _ := s.Load(); got != nil {
					t.Errorf("expected nil session after clear, got %+v", got)
				}
			})
		})
	}
}

func TestFileSlot(t *testing.T) {
	t.Run("Keeps other keys", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "slots.json")
		slot := NewFileSlot(path)

		slot.Set("theme", "dark")
		slot.Set(Key, "{}")
		if err := slot.Remove(Key); err != nil {
			t.Fatalf("failed to remove: %v", err)
		}

		v, ok, err := NewFileSlot(path).Get("theme")
		if err != nil || !ok || v != "dark" {
			t.Errorf("expected theme=dark, got %q ok=%v err=%v", v, ok, err)
		}
	})

	t.Run("Corrupt file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "slots.json")
		if err := os.WriteFile(path, []byte("{not json"), 0o600); err != nil {
			t.Fatalf("failed to write fixture: %v", err)
		}

		if _, err := New(NewFileSlot(path), nil).Load(); err == nil {
			t.Error("expected error for corrupt session file")
		}
	})

	t.Run("Signed out payload loads as nil", func(t *testing.T) {
		slot := NewMemorySlot()
		slot.Set(Key, `{"user":null}`)

		got, err := New(slot, nil).Load()
		if err != nil || got != nil {
			t.Errorf("expected nil session, got %+v err=%v", got, err)
		}
	})
}
