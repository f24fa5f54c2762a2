package services_test

import (
	"testing"

	"github.com/campusgate/admission_service/internal/domain"
	"github.com/campusgate/admission_service/internal/dto"
	"github.com/campusgate/admission_service/internal/repository"
	"github.com/campusgate/admission_service/internal/services"
	"github.com/campusgate/admission_service/pkg/sessionstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAccessFixture(t *testing.T) (services.AccessService, services.LifecycleService, *domain.StudentProfile) {
	t.Helper()
	repo, err := repository.NewStudentRepository(sessionstore.NewMemoryStore())
	require.NoError(t, err)
	svc := services.NewLifecycleService(repo, nil, nil)

	student, err := svc.CreateStudent(dto.CreateStudentRequest{
		Name:       "Ananya Sharma",
		Email:      "ananya@example.com",
		BranchID:   "BR01",
		ReferredBy: 42,
	})
	require.NoError(t, err)

	return services.NewAccessService(repo), svc, student
}

func TestAuthorizeUnauthenticated(t *testing.T) {
	access, _, student := newAccessFixture(t)

	d := access.Authorize(nil, domain.ActionViewStudent, student.ID)
	assert.False(t, d.Allowed)
	assert.Equal(t, domain.DenyNotAuthenticated, d.Reason)

	// A zero principal is as good as none.
	d = access.Authorize(&domain.Principal{}, domain.ActionAdvanceWorkflow, student.ID)
	assert.False(t, d.Allowed)
	assert.Equal(t, domain.DenyNotAuthenticated, d.Reason)
}

func TestAuthorizeReadOnlyRolesNeverWrite(t *testing.T) {
	access, _, student := newAccessFixture(t)

	writes := []domain.Action{
		domain.ActionAdvanceWorkflow,
		domain.ActionUpdateDocument,
		domain.ActionUpdatePayment,
		domain.ActionCollectPayment,
		domain.ActionSubmitPreferences,
		domain.ActionLockPreferences,
		domain.ActionRegisterCounseling,
		domain.ActionCreateStudent,
	}
	principals := []*domain.Principal{
		{UserID: 7, Role: domain.RoleParent, StudentID: student.ID},
		{UserID: 42, Role: domain.RoleAgent},
		{UserID: 9, Role: domain.RoleAuditor},
	}

	for _, p := range principals {
		for _, action := range writes {
			d := access.Authorize(p, action, student.ID)
			assert.False(t, d.Allowed, "%s / %s", p.Role, action)
			assert.Equal(t, domain.DenyRoleForbidden, d.Reason)
		}
	}
}

func TestAuthorizeStudentSelfScope(t *testing.T) {
	access, _, student := newAccessFixture(t)

	self := &domain.Principal{UserID: 3, Role: domain.RoleStudent, StudentID: student.ID}
	assert.True(t, access.Authorize(self, domain.ActionSubmitPreferences, student.ID).Allowed)
	assert.True(t, access.Authorize(self, domain.ActionViewStudent, student.ID).Allowed)

	d := access.Authorize(self, domain.ActionSubmitPreferences, "ST999")
	assert.False(t, d.Allowed)
	assert.Equal(t, domain.DenyScopeMismatch, d.Reason)
}

func TestAuthorizeStaffBranchScope(t *testing.T) {
	access, svc, student := newAccessFixture(t)

	sameBranch := &domain.Principal{UserID: 5, Role: domain.RoleStaff, BranchID: "BR01"}
	assert.True(t, access.Authorize(sameBranch, domain.ActionUpdateDocument, student.ID).Allowed)

	before, err := svc.GetStudent(student.ID)
	require.NoError(t, err)

	otherBranch := &domain.Principal{UserID: 6, Role: domain.RoleStaff, BranchID: "BR02"}
	d := access.Authorize(otherBranch, domain.ActionUpdateDocument, student.ID)
	assert.False(t, d.Allowed)
	assert.Equal(t, domain.DenyScopeMismatch, d.Reason)

	// A denied caller never reaches the lifecycle service, so the record is
	// untouched.
	after, err := svc.GetStudent(student.ID)
	require.NoError(t, err)
	assert.Equal(t, before, after)

	// Unknown targets fail the scope check too.
	d = access.Authorize(sameBranch, domain.ActionUpdateDocument, "ST999")
	assert.False(t, d.Allowed)
	assert.Equal(t, domain.DenyScopeMismatch, d.Reason)
}

func TestAuthorizeParentLinkedStudentOnly(t *testing.T) {
	access, _, student := newAccessFixture(t)

	parent := &domain.Principal{UserID: 7, Role: domain.RoleParent, StudentID: student.ID}
	assert.True(t, access.Authorize(parent, domain.ActionViewStudent, student.ID).Allowed)

	d := access.Authorize(parent, domain.ActionViewStudent, "ST999")
	assert.False(t, d.Allowed)
	assert.Equal(t, domain.DenyScopeMismatch, d.Reason)
}

func TestAuthorizeAgentReferredStudentsOnly(t *testing.T) {
	access, svc, student := newAccessFixture(t)

	agent := &domain.Principal{UserID: 42, Role: domain.RoleAgent}
	assert.True(t, access.Authorize(agent, domain.ActionViewStudent, student.ID).Allowed)

	// A student referred by someone else is out of scope.
	other, err := svc.CreateStudent(dto.CreateStudentRequest{
		Name: "Rohit Verma", Email: "rohit@example.com", BranchID: "BR02",
	})
	require.NoError(t, err)

	d := access.Authorize(agent, domain.ActionViewStudent, other.ID)
	assert.False(t, d.Allowed)
	assert.Equal(t, domain.DenyScopeMismatch, d.Reason)
}

func TestAuthorizeAdminAndAuditor(t *testing.T) {
	access, _, student := newAccessFixture(t)

	admin := &domain.Principal{UserID: 1, Role: domain.RoleAdmin}
	assert.True(t, access.Authorize(admin, domain.ActionAdvanceWorkflow, student.ID).Allowed)
	assert.True(t, access.Authorize(admin, domain.ActionCreateStudent, "").Allowed)
	assert.True(t, access.Authorize(admin, domain.ActionViewStudent, "ST999").Allowed)

	auditor := &domain.Principal{UserID: 9, Role: domain.RoleAuditor}
	assert.True(t, access.Authorize(auditor, domain.ActionViewStudent, student.ID).Allowed)
	assert.True(t, access.Authorize(auditor, domain.ActionViewStudent, "").Allowed)
}

func TestAuthorizeUnknownRole(t *testing.T) {
	access, _, student := newAccessFixture(t)

	d := access.Authorize(&domain.Principal{UserID: 8, Role: domain.Role("superuser")}, domain.ActionViewStudent, student.ID)
	assert.False(t, d.Allowed)
	assert.Equal(t, domain.DenyRoleForbidden, d.Reason)
}
