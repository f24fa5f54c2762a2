package repository

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/campusgate/admission_service/internal/domain"
)

type UserRepository interface {
	CreateUser(user *domain.User) (*domain.User, error)
	FindUserByEmail(email string) (*domain.User, error)
	FindUserByID(userID uint) (*domain.User, error)
}

// userRepository keeps the demo accounts in memory. Real account storage is
// out of scope; the portal only needs enough identity to resolve a principal.
type userRepository struct {
	mu      sync.RWMutex
	byID    map[uint]*domain.User
	byEmail map[string]*domain.User
	nextID  uint
}

func NewUserRepository() UserRepository {
	return &userRepository{
		byID:    make(map[uint]*domain.User),
		byEmail: make(map[string]*domain.User),
		nextID:  1,
	}
}

func (r *userRepository) CreateUser(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, errors.New("nil user")
	}
	email := strings.TrimSpace(strings.ToLower(user.Email))
	if email == "" {
		return nil, errors.New("email is required")
	}
	if !user.Role.IsValid() {
		return nil, errors.New("invalid role")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byEmail[email]; exists {
		return nil, errors.New("email already exists")
	}

	u := *user
	u.Email = email
	u.ID = r.nextID
	u.CreatedAt = time.Now().UTC()
	r.nextID++

	r.byID[u.ID] = &u
	r.byEmail[email] = &u

	out := u
	return &out, nil
}

func (r *userRepository) FindUserByEmail(email string) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byEmail[strings.TrimSpace(strings.ToLower(email))]
	if !ok {
		return nil, errors.New("user not found")
	}
	out := *u
	return &out, nil
}

func (r *userRepository) FindUserByID(userID uint) (*domain.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	u, ok := r.byID[userID]
	if !ok {
		return nil, errors.New("user not found")
	}
	out := *u
	return &out, nil
}
