package domain

import "time"

type Role string

const (
	RoleAdmin   Role = "admin"
	RoleStaff   Role = "staff"
	RoleStudent Role = "student"
	RoleParent  Role = "parent"
	RoleAgent   Role = "agent"
	RoleAuditor Role = "auditor"
)

func (r Role) IsValid() bool {
	switch r {
	case RoleAdmin, RoleStaff, RoleStudent, RoleParent, RoleAgent, RoleAuditor:
		return true
	default:
		return false
	}
}

// ReadOnly reports whether the role may never perform a write action,
// regardless of scope.
func (r Role) ReadOnly() bool {
	return r == RoleParent || r == RoleAgent || r == RoleAuditor
}

// User is a portal account. Accounts are demo fixtures seeded at startup;
// there is no registration flow in this service.
type User struct {
	ID           uint   `json:"id"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	DisplayName  string `json:"display_name"`
	Role         Role   `json:"role"`
	// BranchID is set for staff accounts and scopes their access.
	BranchID string `json:"branch_id,omitempty"`
	// StudentID links student accounts to their own record and parent
	// accounts to the one student they may view.
	StudentID string    `json:"student_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
