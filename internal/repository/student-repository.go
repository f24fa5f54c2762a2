package repository

import (
	"context"
	"fmt"
	"log"
	"sort"
	"sync"
	"time"

	"github.com/campusgate/admission_service/internal/domain"
	"github.com/campusgate/admission_service/internal/interfaces"
)

type StudentFilter struct {
	BranchID string
	Stage    domain.WorkflowStage
	Limit    int
	Offset   int
}

type StudentRepository interface {
	CreateStudent(student *domain.StudentProfile) (*domain.StudentProfile, error)
	FindStudentByID(id string) (*domain.StudentProfile, error)
	SaveStudent(student *domain.StudentProfile) error
	ListStudents(filter StudentFilter) ([]domain.StudentProfile, error)
	CountStudents() int
}

// studentRepository holds the authoritative in-memory collection. Single
// writer: every mutation replaces a whole record under the lock and pushes
// the whole collection to the session store.
type studentRepository struct {
	mu      sync.RWMutex
	byID    map[string]*domain.StudentProfile
	nextSeq int
	store   interfaces.SessionStore
}

func NewStudentRepository(store interfaces.SessionStore) (StudentRepository, error) {
	r := &studentRepository{
		byID:    make(map[string]*domain.StudentProfile),
		nextSeq: 1,
		store:   store,
	}

	students, err := store.Load(context.Background())
	if err != nil {
		return nil, fmt.Errorf("load student collection: %w", err)
	}
	for i := range students {
		s := students[i]
		r.byID[s.ID] = s.Clone()
		if seq := sequenceOf(s.ID); seq >= r.nextSeq {
			r.nextSeq = seq + 1
		}
	}
	if len(students) > 0 {
		log.Printf("loaded %d students from session store", len(students))
	}

	return r, nil
}

// sequenceOf extracts the numeric part of a "ST###" ID, 0 if it doesn't parse.
func sequenceOf(id string) int {
	var seq int
	if _, err := fmt.Sscanf(id, "ST%d", &seq); err != nil {
		return 0
	}
	return seq
}

func (r *studentRepository) CreateStudent(student *domain.StudentProfile) (*domain.StudentProfile, error) {
	if student == nil {
		return nil, domain.Validationf("nil student")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if student.ID == "" {
		student.ID = fmt.Sprintf("ST%03d", r.nextSeq)
		r.nextSeq++
	} else if _, exists := r.byID[student.ID]; exists {
		return nil, domain.NewError(domain.ErrConflict, "student %s already exists", student.ID)
	} else if seq := sequenceOf(student.ID); seq >= r.nextSeq {
		r.nextSeq = seq + 1
	}

	now := time.Now().UTC()
	student.CreatedAt = now
	student.UpdatedAt = now

	r.byID[student.ID] = student.Clone()
	if err := r.persistLocked(); err != nil {
		delete(r.byID, student.ID)
		return nil, err
	}
	return student.Clone(), nil
}

func (r *studentRepository) FindStudentByID(id string) (*domain.StudentProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return nil, domain.NotFoundf("student %s not found", id)
	}
	return s.Clone(), nil
}

func (r *studentRepository) SaveStudent(student *domain.StudentProfile) error {
	if student == nil {
		return domain.Validationf("nil student")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	prev, ok := r.byID[student.ID]
	if !ok {
		return domain.NotFoundf("student %s not found", student.ID)
	}

	student.UpdatedAt = time.Now().UTC()
	r.byID[student.ID] = student.Clone()
	if err := r.persistLocked(); err != nil {
		r.byID[student.ID] = prev
		return err
	}
	return nil
}

func (r *studentRepository) ListStudents(filter StudentFilter) ([]domain.StudentProfile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.StudentProfile, 0, len(r.byID))
	for _, s := range r.byID {
		if filter.BranchID != "" && s.BranchID != filter.BranchID {
			continue
		}
		if filter.Stage != "" && s.WorkflowState != filter.Stage {
			continue
		}
		out = append(out, *s.Clone())
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	if filter.Offset > 0 {
		if filter.Offset >= len(out) {
			return []domain.StudentProfile{}, nil
		}
		out = out[filter.Offset:]
	}
	if filter.Limit > 0 && filter.Limit < len(out) {
		out = out[:filter.Limit]
	}
	return out, nil
}

func (r *studentRepository) CountStudents() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byID)
}

// persistLocked snapshots the collection and hands it to the session store.
// Callers must hold the write lock.
func (r *studentRepository) persistLocked() error {
	students := make([]domain.StudentProfile, 0, len(r.byID))
	for _, s := range r.byID {
		students = append(students, *s.Clone())
	}
	sort.Slice(students, func(i, j int) bool { return students[i].ID < students[j].ID })

	if err := r.store.Save(context.Background(), students); err != nil {
		log.Printf("persist student collection error: %v", err)
		return fmt.Errorf("persist student collection: %w", err)
	}
	return nil
}
