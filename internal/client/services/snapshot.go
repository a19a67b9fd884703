package services

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/dmitrijs2005/shopadmin/internal/client/policy"
	"github.com/dmitrijs2005/shopadmin/internal/common"
	"github.com/dmitrijs2005/shopadmin/internal/logging"
)

// Reconciler brings a snapshot back in line with the backend. Mutations call
// it after every successful network call; it is the only place that decides
// how a snapshot catches up.
type Reconciler interface {
	Reconcile(ctx context.Context) error
}

// snapshot is the in-memory copy of one backend collection. Fetches are
// serialized, so the snapshot reflects the fetch issued last.
type snapshot[T any] struct {
	resource policy.Resource
	session  Session
	log      logging.Logger
	load     func(ctx context.Context) ([]T, error)
	id       func(T) models.ID

	fetchMu sync.Mutex

	mu    sync.RWMutex
	items []T
	// gen is bumped by clear so a fetch finishing after logout is dropped.
	gen uint64
}

func newSnapshot[T any](resource policy.Resource, session Session, log logging.Logger,
	load func(ctx context.Context) ([]T, error), id func(T) models.ID) *snapshot[T] {
	return &snapshot[T]{
		resource: resource,
		session:  session,
		log:      log.With("resource", string(resource)),
		load:     load,
		id:       id,
	}
}

// Reconcile replaces the snapshot with the backend's current collection. It
// makes no call while anonymous or when the role may not read the resource.
func (s *snapshot[T]) Reconcile(ctx context.Context) error {
	if !s.session.IsAuthenticated() {
		return common.ErrNotAuthenticated
	}
	if err := policy.Check(s.session.Role(), s.resource, policy.Read); err != nil {
		return err
	}

	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()

	s.mu.RLock()
	gen := s.gen
	s.mu.RUnlock()

	items, err := s.load(ctx)
	if err != nil {
		return fmt.Errorf("fetch %s: %w", s.resource, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return common.ErrNotAuthenticated
	}
	s.items = items
	return nil
}

// FetchAll is Reconcile for callers that only want the side effect. Failures
// leave the snapshot unchanged and are logged.
func (s *snapshot[T]) FetchAll(ctx context.Context) {
	err := s.Reconcile(ctx)
	switch {
	case err == nil:
		s.log.Debug(ctx, "snapshot refreshed", "count", s.Len())
	case isSkip(err):
		s.log.Debug(ctx, "fetch skipped", "reason", err)
	default:
		s.log.Warn(ctx, "fetch failed, keeping previous snapshot", "error", err)
	}
}

// All returns a copy of the snapshot.
func (s *snapshot[T]) All() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *snapshot[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}

// GetByID looks id up in the snapshot without a network call.
func (s *snapshot[T]) GetByID(id models.ID) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, it := range s.items {
		if s.id(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

func (s *snapshot[T]) clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	s.gen++
}

// AuthChanged fetches on login and drops the snapshot on logout.
func (s *snapshot[T]) AuthChanged(ctx context.Context, authenticated bool) {
	if !authenticated {
		s.clear()
		return
	}
	s.clear()
	s.FetchAll(ctx)
}

// afterMutation runs once a mutation succeeded on the backend.
func (s *snapshot[T]) afterMutation(ctx context.Context) {
	if err := s.Reconcile(ctx); err != nil {
		s.log.Warn(ctx, "refetch after mutation failed", "error", err)
	}
}

// guard checks the session and the role policy before a mutation.
func (s *snapshot[T]) guard(action policy.Action) error {
	if !s.session.IsAuthenticated() {
		return common.ErrNotAuthenticated
	}
	return policy.Check(s.session.Role(), s.resource, action)
}
