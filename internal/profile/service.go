package profile

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/newthinker/stratix/internal/assessment"
	"github.com/newthinker/stratix/internal/core"
	"github.com/newthinker/stratix/internal/session"
)

// Service owns the in-memory session profiles and mirrors every mutation to
// the session store. The in-memory copy is authoritative for a live session;
// store writes are best-effort and never surface an error to the caller.
type Service struct {
	store  session.Store
	logger *zap.Logger

	mu       sync.RWMutex
	profiles map[string]*Profile // keyed by session token
}

// NewService creates a profile service backed by the given session store.
func NewService(store session.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		logger:   logger,
		profiles: make(map[string]*Profile),
	}
}

// Login creates a session with the starter profile, identified only by
// email. This is identity assignment, not authentication: any email opens a
// demo session, as in the shipped product.
func (s *Service) Login(ctx context.Context, email string) (Profile, string) {
	token := uuid.NewString()
	p := defaultProfile(email)
	p.ID = uuid.NewString()

	s.mu.Lock()
	s.profiles[token] = &p
	s.mu.Unlock()

	s.mirror(ctx, token, p)
	s.logger.Info("session opened", zap.String("email", email))
	return p, token
}

// Logout discards the profile and removes the session key.
func (s *Service) Logout(ctx context.Context, token string) {
	s.mu.Lock()
	delete(s.profiles, token)
	s.mu.Unlock()

	if err := s.store.Delete(ctx, token); err != nil {
		s.logger.Warn("session delete failed", zap.Error(err))
	}
}

// Get returns a copy of the session's profile. If the process restarted,
// the profile is recovered from the store; absence of the key means no
// session.
func (s *Service) Get(ctx context.Context, token string) (Profile, error) {
	s.mu.RLock()
	p, ok := s.profiles[token]
	s.mu.RUnlock()
	if ok {
		return *p, nil
	}

	data, found, err := s.store.Load(ctx, token)
	if err != nil || !found {
		return Profile{}, core.WrapError(core.ErrSessionNotFound, err)
	}

	var recovered Profile
	if err := json.Unmarshal(data, &recovered); err != nil {
		return Profile{}, core.WrapError(core.ErrSessionNotFound, err)
	}

	s.mu.Lock()
	s.profiles[token] = &recovered
	s.mu.Unlock()
	return recovered, nil
}

// Update shallow-merges the patch into the session's profile.
func (s *Service) Update(ctx context.Context, token string, patch Patch) (Profile, error) {
	return s.mutate(ctx, token, func(p *Profile) {
		patch.apply(p)
	})
}

// CompleteAssessment commits a computed skill level and the user-entered
// starting capital. XP resets and the next-level requirement scales with the
// new level. This is the only place scorer output reaches the profile.
func (s *Service) CompleteAssessment(ctx context.Context, token string, level assessment.Level, capital float64) (Profile, error) {
	return s.mutate(ctx, token, func(p *Profile) {
		p.Level = int(level)
		p.Capital = capital
		p.CompletedAssessment = true
		p.XP = 0
		p.XPToNextLevel = xpPerLevel * int(level)
	})
}

func (s *Service) mutate(ctx context.Context, token string, fn func(*Profile)) (Profile, error) {
	if _, err := s.Get(ctx, token); err != nil {
		return Profile{}, err
	}

	s.mu.Lock()
	p, ok := s.profiles[token]
	if !ok {
		s.mu.Unlock()
		return Profile{}, core.ErrSessionNotFound
	}
	fn(p)
	updated := *p
	s.mu.Unlock()

	s.mirror(ctx, token, updated)
	return updated, nil
}

// mirror writes the profile to the store without waiting on the outcome.
// A failed write leaves the in-memory profile as the source of truth for the
// remainder of the session.
func (s *Service) mirror(ctx context.Context, token string, p Profile) {
	data, err := json.Marshal(p)
	if err != nil {
		s.logger.Warn("profile marshal failed", zap.Error(err))
		return
	}
	if err := s.store.Save(ctx, token, data); err != nil {
		s.logger.Warn("session mirror failed", zap.Error(err))
	}
}
