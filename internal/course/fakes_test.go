package course

import (
	"context"
	"errors"
	"sort"
	"sync"

	"github.com/ayush/gyft/backend/internal/models"
)

type memCourses struct {
	mu        sync.Mutex
	m         map[string]models.Course
	insertErr error
}

func newMemCourses() *memCourses {
	return &memCourses{m: map[string]models.Course{}}
}

func (s *memCourses) Insert(_ context.Context, c *models.Course) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return s.insertErr
	}
	s.m[c.ID.Hex()] = *c
	return nil
}

func (s *memCourses) ListByUser(_ context.Context, userID string) ([]models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Course
	for _, c := range s.m {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *memCourses) CountByUser(ctx context.Context, userID string) (int64, error) {
	list, _ := s.ListByUser(ctx, userID)
	return int64(len(list)), nil
}

func (s *memCourses) GetForUser(_ context.Context, id, userID string) (*models.Course, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.m[id]
	if !ok || c.UserID != userID {
		return nil, models.ErrNotFound
	}
	return &c, nil
}

func (s *memCourses) DeleteForUser(_ context.Context, id, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.m[id]
	if !ok || c.UserID != userID {
		return models.ErrNotFound
	}
	delete(s.m, id)
	return nil
}

type memFiles struct {
	mu        sync.Mutex
	m         map[string][]byte
	uploadErr error
}

func newMemFiles() *memFiles {
	return &memFiles{m: map[string][]byte{}}
}

func (f *memFiles) Upload(_ context.Context, key string, data []byte, _ string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.uploadErr != nil {
		return f.uploadErr
	}
	f.m[key] = append([]byte(nil), data...)
	return nil
}

func (f *memFiles) Download(_ context.Context, key string) ([]byte, string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	data, ok := f.m[key]
	if !ok {
		return nil, "", models.ErrNotFound
	}
	return data, "application/json", nil
}

func (f *memFiles) Remove(_ context.Context, key string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.m, key)
	return nil
}

func (f *memFiles) len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.m)
}

type stubGateway struct {
	gen    *Generated
	err    error
	calls  int
	topics []string
}

func (g *stubGateway) GenerateCourse(_ context.Context, topic string) (*Generated, error) {
	g.calls++
	g.topics = append(g.topics, topic)
	if g.err != nil {
		return nil, g.err
	}
	gen := *g.gen
	return &gen, nil
}

var errUpstream = errors.New("gateway returned 502: bad gateway")

func sampleGenerated() *Generated {
	return &Generated{
		Title:       "Go Basics",
		Description: "Learn Go",
		Language:    "en",
		Chapters: []models.Chapter{
			{Name: "Intro", Description: "Start here", Sections: []models.Section{{Title: "Hello", Content: "fmt.Println"}}},
		},
		Raw: []byte(sampleCourse),
	}
}
