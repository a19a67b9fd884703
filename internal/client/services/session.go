package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/dmitrijs2005/shopadmin/internal/client/client"
	"github.com/dmitrijs2005/shopadmin/internal/client/models"
	"github.com/dmitrijs2005/shopadmin/internal/client/repositories/cookies"
	"github.com/dmitrijs2005/shopadmin/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/shopadmin/internal/common"
	"github.com/dmitrijs2005/shopadmin/internal/dbx"
	"github.com/dmitrijs2005/shopadmin/internal/logging"
	"golang.org/x/sync/errgroup"
)

type SessionState int

const (
	Anonymous SessionState = iota
	PendingValidation
	Authenticated
)

func (s SessionState) String() string {
	switch s {
	case PendingValidation:
		return "pending-validation"
	case Authenticated:
		return "authenticated"
	default:
		return "anonymous"
	}
}

// Session is the read side of the session store used by resource contexts.
type Session interface {
	IsAuthenticated() bool
	Role() models.Role
}

// AuthListener is told about authentication transitions.
type AuthListener interface {
	AuthChanged(ctx context.Context, authenticated bool)
}

// SessionStore owns the authenticated identity and its lifecycle. The
// identity is mirrored to the local metadata table so a restarted client can
// restore it after the backend confirms the session.
type SessionStore struct {
	client client.Client
	db     *sql.DB
	log    logging.Logger

	// op serializes login, logout and validation.
	op sync.Mutex

	mu       sync.RWMutex
	state    SessionState
	identity models.Identity

	listenersMu sync.Mutex
	listeners   []AuthListener
}

var _ Session = (*SessionStore)(nil)

func NewSessionStore(c client.Client, db *sql.DB, log logging.Logger) *SessionStore {
	return &SessionStore{client: c, db: db, log: log.With("component", "session")}
}

func (s *SessionStore) State() SessionState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *SessionStore) IsAuthenticated() bool {
	return s.State() == Authenticated
}

// Identity returns the current identity while authenticated.
func (s *SessionStore) Identity() (models.Identity, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.state != Authenticated {
		return models.Identity{}, false
	}
	return s.identity, true
}

// Role is empty unless authenticated.
func (s *SessionStore) Role() models.Role {
	id, ok := s.Identity()
	if !ok {
		return ""
	}
	return id.Role
}

// Subscribe registers l for authentication transitions.
func (s *SessionStore) Subscribe(l AuthListener) {
	s.listenersMu.Lock()
	defer s.listenersMu.Unlock()
	s.listeners = append(s.listeners, l)
}

// notify runs every listener concurrently and waits for all of them.
func (s *SessionStore) notify(ctx context.Context, authenticated bool) {
	s.listenersMu.Lock()
	listeners := slices.Clone(s.listeners)
	s.listenersMu.Unlock()

	var g errgroup.Group
	for _, l := range listeners {
		g.Go(func() error {
			l.AuthChanged(ctx, authenticated)
			return nil
		})
	}
	_ = g.Wait()
}

func (s *SessionStore) set(state SessionState, id models.Identity) (prevState SessionState, prev models.Identity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	prevState, prev = s.state, s.identity
	s.state, s.identity = state, id
	return prevState, prev
}

// Login authenticates against the backend. On failure the previous state is
// kept and false is returned; the cause is logged.
func (s *SessionStore) Login(ctx context.Context, email, password string) bool {
	s.op.Lock()
	defer s.op.Unlock()

	res, err := s.client.Login(ctx, email, password)
	if err != nil {
		s.log.Warn(ctx, "login failed", "email", email, "error", err)
		return false
	}

	s.client.SetBearerToken(res.Token)
	if err := s.persist(ctx, res.User, res.Token); err != nil {
		s.log.Error(ctx, "failed to persist identity", "error", err)
	}

	prevState, prev := s.set(Authenticated, res.User)
	s.log.Info(ctx, "logged in", "user", res.User.Email, "role", res.User.Role)

	if prevState != Authenticated || prev.ID != res.User.ID || prev.Role != res.User.Role {
		s.notify(ctx, true)
	}
	return true
}

// Logout is always locally effective: memory and durable storage are cleared
// first, then the backend is told on a best-effort basis. Calling it again is
// harmless.
func (s *SessionStore) Logout(ctx context.Context) {
	s.op.Lock()
	defer s.op.Unlock()
	s.logout(ctx)
}

func (s *SessionStore) logout(ctx context.Context) {
	prevState, _ := s.set(Anonymous, models.Identity{})

	if err := s.clearPersisted(ctx); err != nil {
		s.log.Error(ctx, "failed to clear persisted identity", "error", err)
	}
	if err := s.client.Logout(ctx); err != nil {
		s.log.Debug(ctx, "backend logout failed", "error", err)
	}

	if prevState == Authenticated {
		s.log.Info(ctx, "logged out")
		s.notify(ctx, false)
	}
}

// Forget logs out and then wipes every key and cookie kept on this machine,
// including entries a plain logout leaves alone.
func (s *SessionStore) Forget(ctx context.Context) error {
	s.op.Lock()
	defer s.op.Unlock()

	s.logout(ctx)
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := metadata.NewSQLiteRepository(tx).Clear(ctx); err != nil {
			return err
		}
		return cookies.NewSQLiteRepository(tx).Clear(ctx)
	})
	if err != nil {
		return fmt.Errorf("forget local state: %w", err)
	}
	s.log.Info(ctx, "local session state removed")
	return nil
}

// Restore is the startup path: a persisted identity is adopted only after
// the backend confirms the session.
func (s *SessionStore) Restore(ctx context.Context) {
	s.op.Lock()
	defer s.op.Unlock()

	repo := metadata.NewSQLiteRepository(s.db)
	raw, err := repo.Get(ctx, common.UserStorageKey)
	if err != nil {
		s.log.Error(ctx, "failed to read persisted identity", "error", err)
		return
	}
	if raw == nil {
		return
	}

	var id models.Identity
	if err := json.Unmarshal(raw, &id); err != nil {
		s.log.Warn(ctx, "persisted identity is corrupt", "error", err)
		s.logout(ctx)
		return
	}

	token, err := repo.Get(ctx, common.TokenStorageKey)
	if err != nil {
		s.log.Warn(ctx, "failed to read persisted token", "error", err)
	}
	s.client.SetBearerToken(string(token))

	s.set(PendingValidation, id)
	s.validateSession(ctx, id)
}

// Revalidate checks an authenticated session with the backend and logs out
// when it is no longer accepted.
func (s *SessionStore) Revalidate(ctx context.Context) {
	s.op.Lock()
	defer s.op.Unlock()

	id, ok := s.Identity()
	if !ok {
		return
	}
	s.validateSession(ctx, id)
}

func (s *SessionStore) validateSession(ctx context.Context, candidate models.Identity) {
	if err := s.client.ValidateSession(ctx); err != nil {
		s.log.Warn(ctx, "session validation failed", "user", candidate.Email, "error", err)
		s.logout(ctx)
		return
	}

	prevState, _ := s.set(Authenticated, candidate)
	if prevState != Authenticated {
		s.log.Info(ctx, "session restored", "user", candidate.Email, "role", candidate.Role)
		s.notify(ctx, true)
	}
}

// Watch revalidates the session every interval until ctx is done. A
// non-positive interval disables it.
func (s *SessionStore) Watch(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.Revalidate(ctx)
		case <-ctx.Done():
			return
		}
	}
}

func (s *SessionStore) persist(ctx context.Context, id models.Identity, token string) error {
	raw, err := json.Marshal(id)
	if err != nil {
		return err
	}
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := metadata.NewSQLiteRepository(tx)
		if err := repo.Set(ctx, common.UserStorageKey, raw); err != nil {
			return err
		}
		if token == "" {
			return repo.Delete(ctx, common.TokenStorageKey)
		}
		return repo.Set(ctx, common.TokenStorageKey, []byte(token))
	})
}

func (s *SessionStore) clearPersisted(ctx context.Context) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return metadata.NewSQLiteRepository(tx).Delete(ctx, common.UserStorageKey, common.TokenStorageKey)
	})
	if err != nil {
		return fmt.Errorf("clear session keys: %w", err)
	}
	return nil
}
