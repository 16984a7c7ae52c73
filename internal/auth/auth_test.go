package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/session"
	"github.com/desertthunder/fivhter/internal/shared"
	"github.com/desertthunder/fivhter/internal/store"
	tu "github.com/desertthunder/fivhter/internal/testing"
)

func setupService(t *testing.T, opts ...Option) (*Service, *store.Store) {
	t.Helper()
	st := store.New()
	sessions := session.New(session.NewMemorySlot(), nil)
	return New(sessions, st, append([]Option{WithClock(tu.FixedClock(tu.Epoch))}, opts...)...), st
}

func TestSignIn(t *testing.T) {
	ctx := context.Background()

	t.Run("Success persists the session", func(t *testing.T) {
		svc, st := setupService(t)

		sess, err := svc.SignIn(ctx, "alice@example.com", "secret1")
		if err != nil {
			t.Fatalf("failed to sign in: %v", err)
		}

		want := &models.User{ID: "mock-user-id", Email: "alice@example.com", Username: "alice"}
		if diff := cmp.Diff(want, sess.User); diff != "" {
			t.Errorf("user mismatch (-want +got):\n%s", diff)
		}
		if sess.Token == nil || sess.Token.AccessToken != "mock-token" {
			t.Fatalf("expected mock token, got %+v", sess.Token)
		}
		if !sess.Token.Expiry.Equal(tu.Epoch.Add(time.Hour)) {
			t.Errorf("expected expiry one hour out, got %v", sess.Token.Expiry)
		}

		stored, err := svc.GetSession(ctx)
		if err != nil || stored == nil {
			t.Fatalf("expected stored session, got %v err=%v", stored, err)
		}
		if diff := cmp.Diff(sess.User, stored.User); diff != "" {
			t.Errorf("stored user mismatch (-want +got):\n%s", diff)
		}

		if p, err := st.GetProfile("mock-user-id"); err != nil || p.Username != "alice" {
			t.Errorf("expected profile alice, got %+v err=%v", p, err)
		}
	})

	t.Run("Invalid credentials", func(t *testing.T) {
		tests := []struct {
			name     string
			email    string
			password string
		}{
			{"missing at sign", "alice.example.com", "secret1"},
			{"short password", "alice@example.com", "12345"},
			{"both wrong", "", ""},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, _ := setupService(t)

				_, err := svc.SignIn(ctx, tt.email, tt.password)
				if !errors.Is(err, shared.ErrInvalidCredentials) {
					t.Fatalf("expected ErrInvalidCredentials, got %v", err)
				}
				if msg := shared.Message(err); msg != "Invalid email or password" {
					t.Errorf("unexpected message %q", msg)
				}
				if sess, _ := svc.GetSession(ctx); sess != nil {
					t.Errorf("failed sign in should not persist a session, got %+v", sess)
				}
			})
		}
	})

	t.Run("Six character password is enough", func(t *testing.T) {
		svc, _ := setupService(t)
		if _, err := svc.SignIn(ctx, "a@b", "123456"); err != nil {
			t.Errorf("expected success, got %v", err)
		}
	})

	t.Run("Cancelled context", func(t *testing.T) {
		svc, _ := setupService(t)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		if _, err := svc.SignIn(cctx, "alice@example.com", "secret1"); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestSignUp(t *testing.T) {
	ctx := context.Background()

	t.Run("Success does not sign in", func(t *testing.T) {
		svc, st := setupService(t)

		user, err := svc.SignUp(ctx, "bob@example.com", "hunter22")
		if err != nil {
			t.Fatalf("failed to sign up: %v", err)
		}
		if diff := cmp.Diff(models.User{ID: "new-user-id", Email: "bob@example.com", Username: "bob"}, user); diff != "" {
			t.Errorf("user mismatch (-want +got):\n%s", diff)
		}
		if sess, _ := svc.GetSession(ctx); sess != nil {
			t.Errorf("sign up should not start a session, got %+v", sess)
		}
		if _, err := st.GetProfile("new-user-id"); err != nil {
			t.Errorf("expected profile to be created: %v", err)
		}
	})

	t.Run("Errors", func(t *testing.T) {
		tests := []struct {
			name     string
			email    string
			password string
			kind     shared.Kind
			message  string
		}{
			{"invalid email", "bob", "hunter22", shared.KindInvalidEmail, "Invalid email address"},
			{"weak password", "bob@example.com", "12345", shared.KindWeakPassword, "Password must be at least 6 characters"},
			{"email checked first", "bob", "1", shared.KindInvalidEmail, "Invalid email address"},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc, _ := setupService(t)

				_, err := svc.SignUp(ctx, tt.email, tt.password)
				if kind := shared.KindOf(err); kind != tt.kind {
					t.Errorf("expected kind %s, got %s", tt.kind, kind)
				}
				if msg := shared.Message(err); msg != tt.message {
					t.Errorf("expected message %q, got %q", tt.message, msg)
				}
			})
		}
	})
}

func TestSignOut(t *testing.T) {
	ctx := context.Background()
	svc, _ := setupService(t)

	if err := svc.SignOut(ctx); err != nil {
		t.Fatalf("sign out while signed out should succeed: %v", err)
	}

	svc.SignIn(ctx, "alice@example.com", "secret1")
	if err := svc.SignOut(ctx); err != nil {
		t.Fatalf("failed to sign out: %v", err)
	}

	if sess, _ := svc.GetSession(ctx); sess != nil {
		t.Errorf("expected no session after sign out, got %+v", sess)
	}
	if _, err := svc.CurrentUser(ctx); !errors.Is(err, shared.ErrNotAuthenticated) {
		t.Errorf("expected ErrNotAuthenticated, got %v", err)
	}
}

func TestSignInWithGoogle(t *testing.T) {
	ctx := context.Background()

	t.Run("Fixed user and existing profile kept", func(t *testing.T) {
		svc, st := setupService(t)
		st.EnsureProfile("google-user-id", "renamed")

		sess, err := svc.SignInWithGoogle(ctx)
		if err != nil {
			t.Fatalf("failed to sign in with google: %v", err)
		}
		if diff := cmp.Diff(&GoogleUser, sess.User); diff != "" {
			t.Errorf("user mismatch (-want +got):\n%s", diff)
		}

		p, _ := st.GetProfile("google-user-id")
		if p.Username != "renamed" {
			t.Errorf("existing profile should not be overwritten, got %q", p.Username)
		}

		user, err := svc.CurrentUser(ctx)
		if err != nil || user.ID != "google-user-id" {
			t.Errorf("expected google user signed in, got %+v err=%v", user, err)
		}
	})

	t.Run("Auth URL", func(t *testing.T) {
		svc, _ := setupService(t, WithGoogle(shared.GoogleConfig{
			ClientID:    "client-123",
			RedirectURI: "http://localhost:8080/callback",
		}))

		url, err := svc.GoogleAuthURL("state-xyz")
		if err != nil {
			t.Fatalf("failed to build auth url: %v", err)
		}
		for _, part := range []string{googleAuthURL, "client_id=client-123", "state=state-xyz", "access_type=offline"} {
			if !strings.Contains(url, part) {
				t.Errorf("expected %q in %s", part, url)
			}
		}
	})

	t.Run("Auth URL without client", func(t *testing.T) {
		svc, _ := setupService(t)
		if _, err := svc.GoogleAuthURL("state"); !errors.Is(err, shared.ErrMissingConfig) {
			t.Errorf("expected ErrMissingConfig, got %v", err)
		}
	})
}

func TestValidateCredentialsForm(t *testing.T) {
	tests := []struct {
		name     string
		email    string
		password string
		confirm  string
		signUp   bool
		kind     shared.Kind
		message  string
	}{
		{"valid sign in", "a@b.co", "secret1", "", false, "", ""},
		{"valid sign up", "a@b.co", "secret1", "secret1", true, "", ""},
		{"blank email", "  ", "secret1", "", false, shared.KindEmptyField, "Email is required"},
		{"blank password", "a@b.co", "", "", false, shared.KindEmptyField, "Password is required"},
		{"no domain dot", "a@b", "secret1", "", false, shared.KindInvalidEmail, "Please enter a valid email address"},
		{"whitespace in email", "a b@c.de", "secret1", "", false, shared.KindInvalidEmail, "Please enter a valid email address"},
		{"short password", "a@b.co", "12345", "", false, shared.KindWeakPassword, "Password must be at least 6 characters"},
		{"mismatch on sign up", "a@b.co", "secret1", "secret2", true, shared.KindPasswordMismatch, "Passwords do not match"},
		{"confirm ignored on sign in", "a@b.co", "secret1", "other", false, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateCredentialsForm(tt.email, tt.password, tt.confirm, tt.signUp)
			if kind := shared.KindOf(err); kind != tt.kind {
				t.Errorf("expected kind %q, got %q (%v)", tt.kind, kind, err)
			}
			if msg := shared.Message(err); msg != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, msg)
			}
		})
	}
}

func TestValidateListForm(t *testing.T) {
	items := func(titles ...string) []models.NewItem {
		var out []models.NewItem
		for i, title := range titles {
			out = append(out, models.NewItem{Title: title, Rank: i + 1})
		}
		return out
	}

	tests := []struct {
		name    string
		title   string
		items   []models.NewItem
		message string
	}{
		{"valid", "Top 5", items("a", "b", "c", "d", "e"), ""},
		{"blank title", "   ", items("a"), "Please provide a title for your list"},
		{"blank item", "Top 5", items("a", "b", " ", "d", ""), "Please provide a title for item #3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateListForm(tt.title, tt.items)
			if tt.message == "" {
				if err != nil {
					t.Errorf("expected no error, got %v", err)
				}
				return
			}
			if !errors.Is(err, shared.ErrEmptyField) {
				t.Fatalf("expected ErrEmptyField, got %v", err)
			}
			if msg := shared.Message(err); msg != tt.message {
				t.Errorf("expected message %q, got %q", tt.message, msg)
			}
		})
	}
}
