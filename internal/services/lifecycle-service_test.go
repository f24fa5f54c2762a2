package services_test

import (
	"context"
	"testing"

	"github.com/campusgate/admission_service/internal/clients/gateway"
	"github.com/campusgate/admission_service/internal/domain"
	"github.com/campusgate/admission_service/internal/dto"
	"github.com/campusgate/admission_service/internal/repository"
	"github.com/campusgate/admission_service/internal/services"
	"github.com/campusgate/admission_service/pkg/sessionstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (services.LifecycleService, repository.StudentRepository) {
	t.Helper()
	repo, err := repository.NewStudentRepository(sessionstore.NewMemoryStore())
	require.NoError(t, err)
	return services.NewLifecycleService(repo, nil, gateway.New(0)), repo
}

func intake(t *testing.T, svc services.LifecycleService) *domain.StudentProfile {
	t.Helper()
	student, err := svc.CreateStudent(dto.CreateStudentRequest{
		Name:     "Ananya Sharma",
		Email:    "ananya@example.com",
		BranchID: "BR01",
		Category: "general",
	})
	require.NoError(t, err)
	return student
}

// uploadAll moves every document slot off pending.
func uploadAll(t *testing.T, svc services.LifecycleService, studentID string) {
	t.Helper()
	student, err := svc.GetStudent(studentID)
	require.NoError(t, err)
	for _, doc := range student.Documents {
		_, err := svc.UpdateDocumentStatus(studentID, doc.ID, domain.DocStatusUploaded, domain.DocumentTransitionMeta{
			FileURL: "https://files.example.com/" + doc.ID,
		})
		require.NoError(t, err)
	}
}

// verifyAll marks every uploaded document verified via the fast path.
func verifyAll(t *testing.T, svc services.LifecycleService, studentID string) {
	t.Helper()
	student, err := svc.GetStudent(studentID)
	require.NoError(t, err)
	for _, doc := range student.Documents {
		_, err := svc.UpdateDocumentStatus(studentID, doc.ID, domain.DocStatusVerified, domain.DocumentTransitionMeta{
			VerifiedBy: "staff.br01",
		})
		require.NoError(t, err)
	}
}

// advanceTo walks a student forward, doing the gate work each stage demands.
func advanceTo(t *testing.T, svc services.LifecycleService, studentID string, target domain.WorkflowStage) {
	t.Helper()
	for {
		student, err := svc.GetStudent(studentID)
		require.NoError(t, err)
		if student.WorkflowState == target {
			return
		}

		switch student.WorkflowState {
		case domain.StageDocuments:
			uploadAll(t, svc, studentID)
		case domain.StageVerification:
			verifyAll(t, svc, studentID)
		case domain.StageCounseling:
			_, err := svc.SubmitPreferences(studentID, []domain.CounselingPreference{
				{CollegeID: "C-ENG-01", CollegeName: "College of Engineering", Rank: 1},
			})
			require.NoError(t, err)
			_, err = svc.LockPreferences(studentID)
			require.NoError(t, err)
		case domain.StagePayment:
			fresh, err := svc.GetStudent(studentID)
			require.NoError(t, err)
			for _, p := range fresh.Payments {
				if p.FeeType == domain.FeeTypeRegistration && p.Status == domain.PaymentStatusUnpaid {
					_, err := svc.CollectPayment(context.Background(), studentID, p.ID, "upi")
					require.NoError(t, err)
				}
			}
		}

		_, err = svc.AdvanceWorkflow(studentID)
		require.NoError(t, err)
	}
}

func TestAdvanceWorkflowVisitsEveryStageOnceInOrder(t *testing.T) {
	svc, _ := newTestService(t)
	student := intake(t, svc)
	require.Equal(t, domain.StageInquiry, student.WorkflowState)

	visited := []domain.WorkflowStage{domain.StageInquiry}
	for range domain.WorkflowStages[1:] {
		fresh, err := svc.GetStudent(student.ID)
		require.NoError(t, err)

		switch fresh.WorkflowState {
		case domain.StageDocuments:
			uploadAll(t, svc, student.ID)
		case domain.StageVerification:
			verifyAll(t, svc, student.ID)
		case domain.StageCounseling:
			_, err := svc.SubmitPreferences(student.ID, []domain.CounselingPreference{{CollegeID: "C1", Rank: 1}})
			require.NoError(t, err)
			_, err = svc.LockPreferences(student.ID)
			require.NoError(t, err)
		case domain.StagePayment:
			for _, p := range fresh.Payments {
				if p.Status == domain.PaymentStatusUnpaid {
					_, err := svc.CollectPayment(context.Background(), student.ID, p.ID, "card")
					require.NoError(t, err)
				}
			}
		}

		next, err := svc.AdvanceWorkflow(student.ID)
		require.NoError(t, err)
		visited = append(visited, next)
	}

	assert.Equal(t, domain.WorkflowStages, visited)

	// Past enrollment every attempt is a terminal-state failure.
	for i := 0; i < 3; i++ {
		_, err := svc.AdvanceWorkflow(student.ID)
		require.Error(t, err)
		assert.Equal(t, domain.ErrTerminalState, domain.KindOf(err))
	}
}

func TestAdvanceWorkflowDocumentGate(t *testing.T) {
	svc, _ := newTestService(t)
	student := intake(t, svc)
	advanceTo(t, svc, student.ID, domain.StageDocuments)

	_, err := svc.AdvanceWorkflow(student.ID)
	require.Error(t, err)
	assert.Equal(t, domain.ErrPrecondition, domain.KindOf(err))

	// Upload all but one: still gated.
	fresh, err := svc.GetStudent(student.ID)
	require.NoError(t, err)
	for _, doc := range fresh.Documents[1:] {
		_, err := svc.UpdateDocumentStatus(student.ID, doc.ID, domain.DocStatusUploaded, domain.DocumentTransitionMeta{})
		require.NoError(t, err)
	}
	_, err = svc.AdvanceWorkflow(student.ID)
	assert.Equal(t, domain.ErrPrecondition, domain.KindOf(err))

	_, err = svc.UpdateDocumentStatus(student.ID, fresh.Documents[0].ID, domain.DocStatusUploaded, domain.DocumentTransitionMeta{})
	require.NoError(t, err)

	next, err := svc.AdvanceWorkflow(student.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageVerification, next)
}

func TestAdvanceWorkflowVerificationGate(t *testing.T) {
	svc, _ := newTestService(t)
	student := intake(t, svc)
	advanceTo(t, svc, student.ID, domain.StageVerification)

	_, err := svc.AdvanceWorkflow(student.ID)
	require.Error(t, err)
	assert.Equal(t, domain.ErrPrecondition, domain.KindOf(err))

	verifyAll(t, svc, student.ID)

	fresh, err := svc.GetStudent(student.ID)
	require.NoError(t, err)
	assert.True(t, fresh.DocumentsVerified)

	next, err := svc.AdvanceWorkflow(student.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageCounseling, next)
}

func TestUpdateDocumentStatusIllegalTransitionLeavesStateUnchanged(t *testing.T) {
	svc, _ := newTestService(t)
	student := intake(t, svc)
	docID := student.Documents[0].ID

	illegal := []domain.DocumentStatus{
		domain.DocStatusReviewed, domain.DocStatusVerified, domain.DocStatusRejected, domain.DocStatusPending,
	}
	for _, to := range illegal {
		_, err := svc.UpdateDocumentStatus(student.ID, docID, to, domain.DocumentTransitionMeta{VerifiedBy: "someone"})
		require.Error(t, err, "pending -> %s", to)
		assert.Equal(t, domain.ErrInvalidTransition, domain.KindOf(err))

		fresh, err := svc.GetStudent(student.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.DocStatusPending, fresh.FindDocument(docID).Status)
	}
}

func TestUpdateDocumentStatusRequiresVerifier(t *testing.T) {
	svc, _ := newTestService(t)
	student := intake(t, svc)
	docID := student.Documents[0].ID

	_, err := svc.UpdateDocumentStatus(student.ID, docID, domain.DocStatusUploaded, domain.DocumentTransitionMeta{})
	require.NoError(t, err)

	_, err = svc.UpdateDocumentStatus(student.ID, docID, domain.DocStatusVerified, domain.DocumentTransitionMeta{})
	require.Error(t, err)
	assert.Equal(t, domain.ErrValidation, domain.KindOf(err))

	fresh, err := svc.GetStudent(student.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DocStatusUploaded, fresh.FindDocument(docID).Status)

	_, err = svc.UpdateDocumentStatus(student.ID, docID, domain.DocStatusVerified, domain.DocumentTransitionMeta{VerifiedBy: "staff.br01"})
	require.NoError(t, err)
}

func TestDocumentResubmissionLoop(t *testing.T) {
	svc, _ := newTestService(t)
	student := intake(t, svc)
	docID := student.Documents[0].ID
	meta := domain.DocumentTransitionMeta{VerifiedBy: "staff.br01"}

	step := func(to domain.DocumentStatus) {
		_, err := svc.UpdateDocumentStatus(student.ID, docID, to, meta)
		require.NoError(t, err, "-> %s", to)
	}

	// Two full rejection loops, then a successful verification.
	step(domain.DocStatusUploaded)
	step(domain.DocStatusReviewed)
	step(domain.DocStatusRejected)
	step(domain.DocStatusUploaded)
	step(domain.DocStatusReviewed)
	step(domain.DocStatusRejected)
	step(domain.DocStatusUploaded)
	step(domain.DocStatusReviewed)
	step(domain.DocStatusVerified)

	fresh, err := svc.GetStudent(student.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DocStatusVerified, fresh.FindDocument(docID).Status)
}

func TestPaymentRefundIsTerminal(t *testing.T) {
	svc, _ := newTestService(t)
	student := intake(t, svc)
	advanceTo(t, svc, student.ID, domain.StagePayment)

	fresh, err := svc.GetStudent(student.ID)
	require.NoError(t, err)
	require.NotEmpty(t, fresh.Payments)
	paymentID := fresh.Payments[0].ID

	_, err = svc.CollectPayment(context.Background(), student.ID, paymentID, "netbanking")
	require.NoError(t, err)

	refunded, err := svc.UpdatePaymentStatus(student.ID, paymentID, domain.PaymentStatusRefunded, domain.PaymentTransitionMeta{})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusRefunded, refunded.Status)

	for _, to := range []domain.PaymentStatus{domain.PaymentStatusUnpaid, domain.PaymentStatusPaid, domain.PaymentStatusRefunded} {
		_, err := svc.UpdatePaymentStatus(student.ID, paymentID, to, domain.PaymentTransitionMeta{
			TransactionID: "TXN-X", Method: "upi",
		})
		require.Error(t, err, "refunded -> %s", to)
		assert.Equal(t, domain.ErrInvalidTransition, domain.KindOf(err))
	}
}

func TestUpdatePaymentStatusRequiresGatewayConfirmation(t *testing.T) {
	svc, _ := newTestService(t)
	student := intake(t, svc)
	advanceTo(t, svc, student.ID, domain.StagePayment)

	fresh, err := svc.GetStudent(student.ID)
	require.NoError(t, err)
	paymentID := fresh.Payments[0].ID

	_, err = svc.UpdatePaymentStatus(student.ID, paymentID, domain.PaymentStatusPaid, domain.PaymentTransitionMeta{})
	require.Error(t, err)
	assert.Equal(t, domain.ErrValidation, domain.KindOf(err))

	paid, err := svc.UpdatePaymentStatus(student.ID, paymentID, domain.PaymentStatusPaid, domain.PaymentTransitionMeta{
		TransactionID: "TXN-MANUAL-1",
		Method:        "cash",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusPaid, paid.Status)
	require.NotNil(t, paid.PaidAt)
}

func TestRegistrationFeeBecomesDueOnEnteringPayment(t *testing.T) {
	svc, _ := newTestService(t)
	student := intake(t, svc)
	assert.Empty(t, student.Payments)

	advanceTo(t, svc, student.ID, domain.StagePayment)

	fresh, err := svc.GetStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, fresh.Payments, 1)
	assert.Equal(t, domain.FeeTypeRegistration, fresh.Payments[0].FeeType)
	assert.Equal(t, domain.PaymentStatusUnpaid, fresh.Payments[0].Status)

	// Leaving payment is gated on that fee being paid.
	_, err = svc.AdvanceWorkflow(student.ID)
	require.Error(t, err)
	assert.Equal(t, domain.ErrPrecondition, domain.KindOf(err))
}

func TestSubmitPreferencesNormalizesRanks(t *testing.T) {
	svc, _ := newTestService(t)
	student := intake(t, svc)

	prefs, err := svc.SubmitPreferences(student.ID, []domain.CounselingPreference{
		{CollegeID: "A", Rank: 5},
		{CollegeID: "B", Rank: 1},
	})
	require.NoError(t, err)
	require.Len(t, prefs, 2)
	assert.Equal(t, "B", prefs[0].CollegeID)
	assert.Equal(t, 1, prefs[0].Rank)
	assert.Equal(t, "A", prefs[1].CollegeID)
	assert.Equal(t, 2, prefs[1].Rank)
	assert.Equal(t, domain.PreferenceSelected, prefs[0].Status)
}

func TestSubmitPreferencesRejectsDuplicatesAndKeepsOldList(t *testing.T) {
	svc, _ := newTestService(t)
	student := intake(t, svc)

	_, err := svc.SubmitPreferences(student.ID, []domain.CounselingPreference{{CollegeID: "A", Rank: 1}})
	require.NoError(t, err)

	_, err = svc.SubmitPreferences(student.ID, []domain.CounselingPreference{
		{CollegeID: "B", Rank: 1},
		{CollegeID: "B", Rank: 2},
	})
	require.Error(t, err)
	assert.Equal(t, domain.ErrValidation, domain.KindOf(err))

	fresh, err := svc.GetStudent(student.ID)
	require.NoError(t, err)
	require.Len(t, fresh.Preferences, 1)
	assert.Equal(t, "A", fresh.Preferences[0].CollegeID)
}

func TestSubmitPreferencesValidation(t *testing.T) {
	svc, _ := newTestService(t)
	student := intake(t, svc)

	_, err := svc.SubmitPreferences(student.ID, nil)
	assert.Equal(t, domain.ErrValidation, domain.KindOf(err))

	over := make([]domain.CounselingPreference, domain.MaxPreferences+1)
	for i := range over {
		over[i] = domain.CounselingPreference{CollegeID: string(rune('A' + i)), Rank: i + 1}
	}
	_, err = svc.SubmitPreferences(student.ID, over)
	assert.Equal(t, domain.ErrValidation, domain.KindOf(err))

	_, err = svc.SubmitPreferences("ST999", []domain.CounselingPreference{{CollegeID: "A", Rank: 1}})
	assert.Equal(t, domain.ErrNotFound, domain.KindOf(err))
}

func TestLockPreferencesIsAtomicAndIdempotent(t *testing.T) {
	svc, _ := newTestService(t)
	student := intake(t, svc)

	// Locking an empty list fails.
	_, err := svc.LockPreferences(student.ID)
	require.Error(t, err)
	assert.Equal(t, domain.ErrPrecondition, domain.KindOf(err))

	_, err = svc.SubmitPreferences(student.ID, []domain.CounselingPreference{
		{CollegeID: "A", Rank: 1},
		{CollegeID: "B", Rank: 2},
		{CollegeID: "C", Rank: 3},
	})
	require.NoError(t, err)

	locked, err := svc.LockPreferences(student.ID)
	require.NoError(t, err)
	for _, p := range locked {
		assert.Equal(t, domain.PreferenceLocked, p.Status)
	}

	// Re-lock is a no-op, not an error.
	again, err := svc.LockPreferences(student.ID)
	require.NoError(t, err)
	assert.Equal(t, locked, again)

	// Post-lock edits are blocked.
	_, err = svc.SubmitPreferences(student.ID, []domain.CounselingPreference{{CollegeID: "D", Rank: 1}})
	require.Error(t, err)
	assert.Equal(t, domain.ErrPrecondition, domain.KindOf(err))
}

func TestRegisterForCounselingSetSemantics(t *testing.T) {
	svc, _ := newTestService(t)
	student := intake(t, svc)

	regs, err := svc.RegisterForCounseling(student.ID, domain.CounselingTypeJEE)
	require.NoError(t, err)
	assert.Equal(t, []domain.CounselingType{domain.CounselingTypeJEE}, regs)

	// Re-registration is a no-op.
	regs, err = svc.RegisterForCounseling(student.ID, domain.CounselingTypeJEE)
	require.NoError(t, err)
	assert.Len(t, regs, 1)

	regs, err = svc.RegisterForCounseling(student.ID, domain.CounselingTypeState)
	require.NoError(t, err)
	assert.Len(t, regs, 2)

	_, err = svc.RegisterForCounseling(student.ID, domain.CounselingType("astrology"))
	assert.Equal(t, domain.ErrValidation, domain.KindOf(err))

	_, err = svc.RegisterForCounseling("ST999", domain.CounselingTypeJEE)
	assert.Equal(t, domain.ErrNotFound, domain.KindOf(err))
}

// Full admission walk for one student, all actions as an unrestricted caller.
func TestEndToEndAdmissionScenario(t *testing.T) {
	svc, _ := newTestService(t)
	student := intake(t, svc)
	require.Equal(t, "ST001", student.ID)
	require.Equal(t, domain.StageInquiry, student.WorkflowState)

	// (1) inquiry -> application
	next, err := svc.AdvanceWorkflow(student.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageApplication, next)

	// (2) application -> documents
	next, err = svc.AdvanceWorkflow(student.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageDocuments, next)

	// (3) blocked: documents still pending
	_, err = svc.AdvanceWorkflow(student.ID)
	require.Error(t, err)
	assert.Equal(t, domain.ErrPrecondition, domain.KindOf(err))

	// (4) upload then verify everything
	uploadAll(t, svc, student.ID)
	next, err = svc.AdvanceWorkflow(student.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageVerification, next)

	verifyAll(t, svc, student.ID)
	fresh, err := svc.GetStudent(student.ID)
	require.NoError(t, err)
	assert.True(t, fresh.DocumentsVerified)

	// (5)-(6) verification -> counseling
	next, err = svc.AdvanceWorkflow(student.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.StageCounseling, next)

	// (7) one college, rank 1
	prefs, err := svc.SubmitPreferences(student.ID, []domain.CounselingPreference{
		{CollegeID: "C-ENG-01", CollegeName: "College of Engineering", Rank: 7},
	})
	require.NoError(t, err)
	require.Len(t, prefs, 1)
	assert.Equal(t, 1, prefs[0].Rank)

	// (8) lock, then further submissions fail
	_, err = svc.LockPreferences(student.ID)
	require.NoError(t, err)

	_, err = svc.SubmitPreferences(student.ID, []domain.CounselingPreference{{CollegeID: "C-X", Rank: 1}})
	require.Error(t, err)
	assert.Equal(t, domain.ErrPrecondition, domain.KindOf(err))
}
