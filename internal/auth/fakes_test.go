package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ayush/gyft/backend/internal/models"
)

type memUsers struct {
	mu     sync.Mutex
	nextID int
	byID   map[string]*models.User
}

func newMemUsers() *memUsers {
	return &memUsers{byID: map[string]*models.User{}}
}

func (m *memUsers) CreateUser(_ context.Context, u *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, existing := range m.byID {
		if existing.Username == u.Username || existing.Email == u.Email {
			return nil, models.ErrDuplicateCredential
		}
	}
	m.nextID++
	out := *u
	out.ID = fmt.Sprintf("user-%d", m.nextID)
	out.CreatedAt = time.Now()
	m.byID[out.ID] = &out
	cp := out
	return &cp, nil
}

func (m *memUsers) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, u := range m.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, models.ErrNotFound
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.byID[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

type memSessions struct {
	mu   sync.Mutex
	next int
	m    map[string]string
}

func newMemSessions() *memSessions {
	return &memSessions{m: map[string]string{}}
}

func (s *memSessions) Create(_ context.Context, userID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	sid := fmt.Sprintf("sid-%d", s.next)
	s.m[sid] = userID
	return sid, nil
}

func (s *memSessions) Get(_ context.Context, sid string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.m[sid], nil
}

func (s *memSessions) Delete(_ context.Context, sid string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sid)
	return nil
}

func (s *memSessions) TTL() time.Duration { return time.Hour }

func (s *memSessions) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.m)
}
