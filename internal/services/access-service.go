package services

import (
	"github.com/campusgate/admission_service/internal/domain"
	"github.com/campusgate/admission_service/internal/repository"
)

type AccessService interface {
	// Authorize decides whether the principal may perform the action on the
	// target student. It returns a decision, never an error: an unknown
	// target simply fails the scope check for scoped roles.
	Authorize(principal *domain.Principal, action domain.Action, targetStudentID string) domain.Decision
}

type accessService struct {
	repo repository.StudentRepository
}

func NewAccessService(repo repository.StudentRepository) AccessService {
	return &accessService{repo: repo}
}

func (a *accessService) Authorize(principal *domain.Principal, action domain.Action, targetStudentID string) domain.Decision {
	if principal == nil || principal.UserID == 0 {
		return domain.Deny(domain.DenyNotAuthenticated)
	}
	if !principal.Role.IsValid() {
		return domain.Deny(domain.DenyRoleForbidden)
	}

	// Parent, agent and auditor can never write, whatever the target.
	if action.IsWrite() && principal.Role.ReadOnly() {
		return domain.Deny(domain.DenyRoleForbidden)
	}

	switch principal.Role {
	case domain.RoleAdmin:
		return domain.Allow()

	case domain.RoleAuditor:
		// Read-only global visibility; writes were rejected above.
		return domain.Allow()

	case domain.RoleStaff:
		// Untargeted actions (intake, branch listings) are allowed; the
		// handler scopes listings to the principal's branch.
		if targetStudentID == "" {
			return domain.Allow()
		}
		student, err := a.repo.FindStudentByID(targetStudentID)
		if err != nil || student.BranchID != principal.BranchID {
			return domain.Deny(domain.DenyScopeMismatch)
		}
		return domain.Allow()

	case domain.RoleStudent:
		if targetStudentID == "" || targetStudentID != principal.StudentID {
			return domain.Deny(domain.DenyScopeMismatch)
		}
		return domain.Allow()

	case domain.RoleParent:
		if targetStudentID == "" || targetStudentID != principal.StudentID {
			return domain.Deny(domain.DenyScopeMismatch)
		}
		return domain.Allow()

	case domain.RoleAgent:
		if targetStudentID == "" {
			return domain.Deny(domain.DenyScopeMismatch)
		}
		student, err := a.repo.FindStudentByID(targetStudentID)
		if err != nil || student.ReferredBy == 0 || student.ReferredBy != principal.UserID {
			return domain.Deny(domain.DenyScopeMismatch)
		}
		return domain.Allow()

	default:
		return domain.Deny(domain.DenyRoleForbidden)
	}
}
