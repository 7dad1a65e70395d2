package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/isdelr/resume-builder-be/internal/models"
)

// MemoryStore keeps drafts in process memory. Idle drafts are dropped by Sweep.
type MemoryStore struct {
	mu     sync.Mutex
	drafts map[string]*models.Draft
	ttl    time.Duration
	now    func() time.Time
}

// NewMemoryStore creates a MemoryStore whose drafts expire after ttl of inactivity.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		drafts: make(map[string]*models.Draft),
		ttl:    ttl,
		now:    time.Now,
	}
}

func (s *MemoryStore) Create(_ context.Context, email string) (models.Draft, error) {
	now := s.now().UTC()
	d := &models.Draft{
		ID:        uuid.New().String(),
		Email:     email,
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.drafts[d.ID] = d
	s.mu.Unlock()
	return cloneDraft(d), nil
}

func (s *MemoryStore) Get(_ context.Context, email, id string) (models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.lookup(email, id)
	if err != nil {
		return models.Draft{}, err
	}
	return cloneDraft(d), nil
}

func (s *MemoryStore) AddEducation(_ context.Context, email, id string, e models.Education) (models.Draft, error) {
	return s.mutate(email, id, func(d *models.Draft) { d.Education = append(d.Education, e) })
}

func (s *MemoryStore) AddExperience(_ context.Context, email, id string, e models.Experience) (models.Draft, error) {
	return s.mutate(email, id, func(d *models.Draft) { d.Experience = append(d.Experience, e) })
}

func (s *MemoryStore) AddProject(_ context.Context, email, id string, p models.Project) (models.Draft, error) {
	return s.mutate(email, id, func(d *models.Draft) { d.Projects = append(d.Projects, p) })
}

func (s *MemoryStore) Delete(_ context.Context, email, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.lookup(email, id); err != nil {
		return err
	}
	delete(s.drafts, id)
	return nil
}

// Sweep removes drafts that have been idle longer than the store TTL and
// returns how many were dropped.
func (s *MemoryStore) Sweep() int {
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for id, d := range s.drafts {
		if d.UpdatedAt.Before(cutoff) {
			delete(s.drafts, id)
			n++
		}
	}
	return n
}

// Len returns the number of live drafts.
func (s *MemoryStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.drafts)
}

func (s *MemoryStore) mutate(email, id string, fn func(*models.Draft)) (models.Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, err := s.lookup(email, id)
	if err != nil {
		return models.Draft{}, err
	}
	fn(d)
	d.UpdatedAt = s.now().UTC()
	return cloneDraft(d), nil
}

// lookup must be called with mu held.
func (s *MemoryStore) lookup(email, id string) (*models.Draft, error) {
	d, ok := s.drafts[id]
	if !ok || d.Email != email || s.now().Sub(d.UpdatedAt) > s.ttl {
		return nil, ErrNotFound
	}
	return d, nil
}

func cloneDraft(d *models.Draft) models.Draft {
	out := *d
	out.Education = append([]models.Education(nil), d.Education...)
	out.Experience = append([]models.Experience(nil), d.Experience...)
	out.Projects = append([]models.Project(nil), d.Projects...)
	return out
}
