package dto

import "github.com/campusgate/admission_service/internal/domain"

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is the verified JWT claim set stashed in the request context.
type AuthResponse struct {
	UserID    uint    `json:"user_id"`
	Role      string  `json:"role"`
	BranchID  string  `json:"branch_id,omitempty"`
	StudentID string  `json:"student_id,omitempty"`
	Expiry    float64 `json:"exp"`
	Iat       float64 `json:"iat"`
}

// Principal converts the claims into the domain principal the access layer
// consumes.
func (a AuthResponse) Principal() *domain.Principal {
	return &domain.Principal{
		UserID:    a.UserID,
		Role:      domain.Role(a.Role),
		BranchID:  a.BranchID,
		StudentID: a.StudentID,
	}
}
