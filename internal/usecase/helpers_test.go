package usecase

import (
	"context"
	"sync"
	"time"

	"JaxSpot/internal/domain/models"
	domrepo "JaxSpot/internal/domain/repository"
	"JaxSpot/pkg/logger"
)

func testLogger() *logger.Logger {
	l, _ := logger.New(&logger.Config{Level: "error", Format: "console", Output: "stderr"})
	return l
}

type nopMetrics struct{}

func (nopMetrics) RecordTick(int)                {}
func (nopMetrics) RecordTransition(string)       {}
func (nopMetrics) RecordPickResolved(string)     {}
func (nopMetrics) RecordLogin(string)            {}
func (nopMetrics) RecordError(string)            {}
func (nopMetrics) RecordLatency(string, float64) {}

type memPickStore struct {
	mu    sync.Mutex
	picks map[string]*models.Pick
	order []string
}

func newMemPickStore() *memPickStore {
	return &memPickStore{picks: make(map[string]*models.Pick)}
}

func (s *memPickStore) Create(ctx context.Context, p *models.Pick) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *p
	s.picks[p.ID] = &cp
	s.order = append(s.order, p.ID)
	return nil
}

func (s *memPickStore) GetByID(ctx context.Context, id string) (*models.Pick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.picks[id]
	if !ok {
		return nil, domrepo.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (s *memPickStore) List(ctx context.Context, filter domrepo.PickFilter) ([]*models.Pick, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*models.Pick
	for i := len(s.order) - 1; i >= 0; i-- {
		p := s.picks[s.order[i]]
		if filter.Stage != "" && p.Stage != filter.Stage {
			continue
		}
		if filter.Status != "" && p.Status != filter.Status {
			continue
		}
		cp := *p
		out = append(out, &cp)
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

func (s *memPickStore) Update(ctx context.Context, p *models.Pick) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.picks[p.ID]; !ok {
		return domrepo.ErrNotFound
	}
	cp := *p
	s.picks[p.ID] = &cp
	return nil
}

type memUserStore struct {
	mu    sync.Mutex
	byID  map[string]*models.User
	byEml map[string]*models.User
}

func newMemUserStore() *memUserStore {
	return &memUserStore{byID: make(map[string]*models.User), byEml: make(map[string]*models.User)}
}

func (s *memUserStore) Create(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.byID[u.ID] = &cp
	s.byEml[u.Email] = &cp
	return nil
}

func (s *memUserStore) GetByID(ctx context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byID[id]
	if !ok {
		return nil, domrepo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.byEml[email]
	if !ok {
		return nil, domrepo.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *memUserStore) Update(ctx context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[u.ID]; !ok {
		return domrepo.ErrNotFound
	}
	cp := *u
	s.byID[u.ID] = &cp
	s.byEml[u.Email] = &cp
	return nil
}

type memSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newMemSessionStore() *memSessionStore {
	return &memSessionStore{sessions: make(map[string]*models.Session)}
}

func (s *memSessionStore) Put(ctx context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *sess
	s.sessions[sess.Token] = &cp
	return nil
}

func (s *memSessionStore) Get(ctx context.Context, token string) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return nil, domrepo.ErrNotFound
	}
	cp := *sess
	return &cp, nil
}

func (s *memSessionStore) Delete(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, token)
	return nil
}

func (s *memSessionStore) Extend(ctx context.Context, token string, until time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[token]
	if !ok {
		return domrepo.ErrNotFound
	}
	sess.ExpiresAt = until
	return nil
}

type captureSink struct {
	mu     sync.Mutex
	events []models.TransitionEvent
}

func (s *captureSink) Process(ctx context.Context, ev *models.TransitionEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, *ev)
	return nil
}

func (s *captureSink) all() []models.TransitionEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.TransitionEvent(nil), s.events...)
}
