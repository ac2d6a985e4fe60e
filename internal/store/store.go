// Package store holds the in-memory timeline dataset.
//
// Every mutation follows the same path: clone the state, apply the change,
// check it, commit it (rebuilding the index and warnings from scratch), run the
// one-time king sweep when events or wars were touched, then notify subscribers.
package store

import (
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/palemoky/dynasty-timeline/internal/index"
	"github.com/palemoky/dynasty-timeline/internal/logger"
	"github.com/palemoky/dynasty-timeline/internal/model"
	"github.com/palemoky/dynasty-timeline/internal/validation"
)

// AppVersion is written into every export file
const AppVersion = "1.0.0"

// Listener receives a snapshot of the state after each committed change
type Listener func(model.State)

// Option configures a Store
type Option func(*Store)

// WithClock overrides the time source used for timestamps
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// WithIDGenerator overrides the id source used for new entities
func WithIDGenerator(newID func() string) Option {
	return func(s *Store) { s.newID = newID }
}

// Store is the single shared dataset. It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	state     model.State
	idx       *index.Index
	warnings  []model.Warning
	listeners []Listener

	now   func() time.Time
	newID func() string
	log   *zap.Logger
}

// New creates an empty store
func New(opts ...Option) *Store {
	s := &Store{
		now:   time.Now,
		newID: uuid.NewString,
		log:   logger.Named("store"),
	}
	for _, opt := range opts {
		opt(s)
	}
	st := model.NewState()
	s.commit(st, index.Build(st))
	return s
}

// Subscribe registers a listener called after every committed change
func (s *Store) Subscribe(l Listener) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, l)
}

// Snapshot returns a deep copy of the current state
func (s *Store) Snapshot() model.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state.Clone()
}

// Restore replaces the whole state without notifying listeners.
// Used when the state was just read from storage.
func (s *Store) Restore(st model.State) {
	st = st.Clone()
	st.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.commit(st, index.Build(st))
}

// Warnings returns the current warnings, optionally filtered by level
func (s *Store) Warnings(level model.WarningLevel) []model.Warning {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(validation.Filter(s.warnings, level))
}

type mutateOpts struct {
	// guarded mutations are subject to strict validation
	guarded bool
	// sweep runs the one-time king cleanup after commit
	sweep bool
}

var (
	entityChange     = mutateOpts{guarded: true}
	referenceChange  = mutateOpts{guarded: true, sweep: true}
	wholesaleReplace = mutateOpts{}
)

func (s *Store) mutate(opts mutateOpts, fn func(st *model.State) error) error {
	s.mu.Lock()

	next := s.state.Clone()
	if err := fn(&next); err != nil {
		s.mu.Unlock()
		return err
	}
	next.Normalize()
	nextIdx := index.Build(next)

	if opts.guarded && next.UISettings.ValidationLevel == model.ValidationStrict {
		introduced := validation.Introduced(validation.Run(s.state, s.idx), validation.Run(next, nextIdx))
		if len(introduced) > 0 {
			s.mu.Unlock()
			return &StrictError{Warnings: introduced}
		}
	}

	s.commit(next, nextIdx)
	if opts.sweep {
		s.reconcile()
	}

	snap := s.state.Clone()
	listeners := slices.Clone(s.listeners)
	s.mu.Unlock()

	for _, l := range listeners {
		l(snap)
	}
	return nil
}

// commit swaps in a new state and recomputes everything derived from it.
// Callers must hold the write lock.
func (s *Store) commit(st model.State, idx *index.Index) {
	s.state = st
	s.idx = idx
	if st.UISettings.ValidationLevel == model.ValidationOff {
		s.warnings = []model.Warning{}
		return
	}
	s.warnings = validation.Run(st, idx)
}

// reconcile removes one-time kings that the committed state no longer references.
// Callers must hold the write lock.
func (s *Store) reconcile() {
	next, removed := SweepOneTimeKings(s.state, s.idx)
	if len(removed) == 0 {
		return
	}
	s.log.Debug("removed unreferenced one-time kings", zap.Strings("ids", removed))
	s.commit(next, index.Build(next))
}

func (s *Store) stamp() time.Time {
	return s.now().UTC()
}

func findByID[T any](items []T, id string, idOf func(T) string) int {
	return slices.IndexFunc(items, func(item T) bool { return idOf(item) == id })
}
