// package auth is the mock identity provider: password and Google sign-in backed by the session store.
package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/oauth2"

	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/session"
	"github.com/desertthunder/fivhter/internal/shared"
)

const (
	googleAuthURL  = "https://accounts.google.com/o/oauth2/v2/auth"
	googleTokenURL = "https://oauth2.googleapis.com/token"

	tokenTTL          = time.Hour
	minPasswordLength = 6
)

// Fixed identities handed out by the mock flows.
var (
	PasswordUser = models.User{ID: "mock-user-id"}
	SignUpUser   = models.User{ID: "new-user-id"}
	GoogleUser   = models.User{ID: "google-user-id", Email: "google-user@example.com", Username: "google_user"}
)

// Profiles creates author profiles for users on first sign-in. [store.Store] satisfies it.
type Profiles interface {
	EnsureProfile(id, username string) (models.Profile, bool, error)
}

// Service accepts any well formed credentials and persists the resulting session.
type Service struct {
	sessions *session.Store
	profiles Profiles
	google   *oauth2.Config
	clock    func() time.Time
	logger   *log.Logger
}

// Option configures a [Service].
type Option func(*Service)

// WithClock overrides the time source used for token expiry.
func WithClock(clock func() time.Time) Option {
	return func(s *Service) { s.clock = clock }
}

// WithLogger sets the logger; the default discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Service) { s.logger = l }
}

// WithGoogle configures the OAuth client used by [Service.GoogleAuthURL].
func WithGoogle(cfg shared.GoogleConfig) Option {
	return func(s *Service) {
		if cfg.ClientID == "" {
			s.google = nil
			return
		}
		s.google = &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURI,
			Scopes:       []string{"openid", "email", "profile"},
			Endpoint: oauth2.Endpoint{
				AuthURL:  googleAuthURL,
				TokenURL: googleTokenURL,
			},
		}
	}
}

// New returns a Service persisting sessions to sessions and creating profiles through profiles.
func New(sessions *session.Store, profiles Profiles, opts ...Option) *Service {
	s := &Service{
		sessions: sessions,
		profiles: profiles,
		clock:    shared.Now,
		logger:   shared.NopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SignIn starts a session for any email containing "@" and a password of at least six characters.
func (s *Service) SignIn(ctx context.Context, email, password string) (models.Session, error) {
	if err := ctx.Err(); err != nil {
		return models.Session{}, err
	}

	if !strings.Contains(email, "@") || len(password) < minPasswordLength {
		s.logger.Debug("rejected sign in", "email", email)
		return models.Session{}, shared.ErrInvalidCredentials
	}

	user := PasswordUser
	user.Email = email
	user.Username = shared.Username(email)

	return s.establish(user)
}

// SignUp registers an account without signing it in; the caller is expected to verify the email first.
func (s *Service) SignUp(ctx context.Context, email, password string) (models.User, error) {
	if err := ctx.Err(); err != nil {
		return models.User{}, err
	}

	if !strings.Contains(email, "@") {
		return models.User{}, shared.ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return models.User{}, shared.ErrWeakPassword
	}

	user := SignUpUser
	user.Email = email
	user.Username = shared.Username(email)

	if err := s.ensureProfile(user); err != nil {
		return models.User{}, err
	}

	s.logger.Info("signed up", "user", user.ID, "username", user.Username)
	return user, nil
}

// SignOut forgets the current session. Signing out while signed out succeeds.
func (s *Service) SignOut(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return s.sessions.Clear()
}

// GetSession returns the persisted session, or nil when nobody is signed in.
func (s *Service) GetSession(ctx context.Context) (*models.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.sessions.Load()
}

// CurrentUser returns the signed in user or [shared.ErrNotAuthenticated].
func (s *Service) CurrentUser(ctx context.Context) (models.User, error) {
	sess, err := s.GetSession(ctx)
	if err != nil {
		return models.User{}, err
	}
	if sess == nil {
		return models.User{}, shared.ErrNotAuthenticated
	}
	return *sess.User, nil
}

// SignInWithGoogle signs in the fixed Google account without contacting Google.
func (s *Service) SignInWithGoogle(ctx context.Context) (models.Session, error) {
	if err := ctx.Err(); err != nil {
		return models.Session{}, err
	}
	return s.establish(GoogleUser)
}

// GoogleAuthURL returns the consent page a real OAuth flow would start from.
func (s *Service) GoogleAuthURL(state string) (string, error) {
	if s.google == nil {
		return "", fmt.Errorf("%w: google client_id is not set", shared.ErrMissingConfig)
	}
	return s.google.AuthCodeURL(state, oauth2.AccessTypeOffline), nil
}

func (s *Service) establish(user models.User) (models.Session, error) {
	if err := s.ensureProfile(user); err != nil {
		return models.Session{}, err
	}

	sess := models.Session{
		User: &user,
		Token: &oauth2.Token{
			AccessToken:  "mock-token",
			RefreshToken: "mock-refresh-token",
			TokenType:    "bearer",
			Expiry:       s.clock().Add(tokenTTL),
		},
	}

	if err := s.sessions.Save(sess); err != nil {
		return models.Session{}, err
	}

	s.logger.Info("signed in", "user", user.ID, "username", user.Username)
	return sess, nil
}

func (s *Service) ensureProfile(user models.User) error {
	if s.profiles == nil {
		return nil
	}
	if _, created, err := s.profiles.EnsureProfile(user.ID, user.Username); err != nil {
		return fmt.Errorf("failed to ensure profile: %w", err)
	} else if created {
		s.logger.Debug("created profile on sign in", "user", user.ID)
	}
	return nil
}
