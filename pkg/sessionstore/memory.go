package sessionstore

import (
	"context"
	"sync"

	"github.com/campusgate/admission_service/internal/domain"
)

// MemoryStore keeps the collection in process memory only. Used in tests and
// when no persistence backend is configured.
type MemoryStore struct {
	mu       sync.Mutex
	students []domain.StudentProfile
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load(ctx context.Context) ([]domain.StudentProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.StudentProfile(nil), s.students...), nil
}

func (s *MemoryStore) Save(ctx context.Context, students []domain.StudentProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.students = append([]domain.StudentProfile(nil), students...)
	return nil
}
