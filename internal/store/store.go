// package store holds the in-memory entity tables behind the Top 5 lists backend.
package store

import (
	"slices"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/fivhter/internal/models"
	"github.com/desertthunder/fivhter/internal/shared"
)

// Store is the single source of truth for lists, items, profiles, votes and comments.
//
// Each table is an independent map keyed by id. Every exported method runs as one critical section,
// so multi-table changes such as a cascading delete are never observed half done.
// Values handed out are copies.
type Store struct {
	mu sync.RWMutex

	lists    map[string]*models.List
	order    []string                      // list ids in insertion order
	items    map[string][]*models.ListItem // by list id, insertion order
	profiles map[string]*models.Profile
	votes    map[string]map[string]models.Vote // list id -> user id
	comments map[string][]models.Comment       // by list id, oldest first

	clock  func() time.Time
	logger *log.Logger
}

// Option configures a [Store] at construction.
type Option func(*Store)

// WithClock overrides the time source used for ids and timestamps.
func WithClock(clock func() time.Time) Option {
	return func(s *Store) { s.clock = clock }
}

// WithLogger sets the logger; the default discards output.
func WithLogger(l *log.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithSnapshot loads the tables from a previously taken [Snapshot].
func WithSnapshot(snap Snapshot) Option {
	return func(s *Store) { s.restoreLocked(snap) }
}

// New creates an empty store and applies opts in order.
func New(opts ...Option) *Store {
	s := &Store{
		lists:    make(map[string]*models.List),
		items:    make(map[string][]*models.ListItem),
		profiles: make(map[string]*models.Profile),
		votes:    make(map[string]map[string]models.Vote),
		comments: make(map[string][]models.Comment),
		clock:    shared.Now,
		logger:   shared.NopLogger(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Len returns the number of lists held.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}

func (s *Store) now() time.Time {
	return s.clock().UTC()
}

// hydrateLocked joins l with its rank sorted items and author; caller holds at least the read lock.
func (s *Store) hydrateLocked(l *models.List) models.TopFiveList {
	stored := s.items[l.ID]
	items := make([]models.ListItem, 0, len(stored))
	for _, it := range stored {
		items = append(items, it.Clone())
	}
	slices.SortStableFunc(items, func(a, b models.ListItem) int { return a.Rank - b.Rank })

	hydrated := models.TopFiveList{List: l.Clone(), Items: items}
	if p, ok := s.profiles[l.UserID]; ok {
		author := p.Clone()
		hydrated.User = &author
	}
	return hydrated
}

// nilIfEmpty maps an empty string to nil, the way the hosted backend stores blank optional text.
func nilIfEmpty(p *string) *string {
	if p == nil || *p == "" {
		return nil
	}
	v := *p
	return &v
}
