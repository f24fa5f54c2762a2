package interfaces

import (
	"context"

	"github.com/campusgate/admission_service/internal/domain"
)

// SessionStore is the pluggable persistence collaborator. The repository
// loads the whole collection once at startup and hands the whole collection
// back after every mutation; the store only has to serialize it as JSON.
type SessionStore interface {
	Load(ctx context.Context) ([]domain.StudentProfile, error)
	Save(ctx context.Context, students []domain.StudentProfile) error
}
