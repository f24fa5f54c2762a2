package services

import "github.com/campusgate/admission_service/internal/domain"

// PlanAdvance validates that the student may leave its current stage and
// returns the stage it should move to. It is a pure planner: committing the
// new stage (and any side effects of entering it) is the lifecycle service's
// job, so that all mutation stays behind the repository.
func PlanAdvance(student *domain.StudentProfile) (domain.WorkflowStage, error) {
	current := student.WorkflowState

	if current.IsTerminal() {
		return "", domain.TerminalStatef("student %s is already enrolled", student.ID)
	}

	next, ok := domain.NextStage(current)
	if !ok {
		return "", domain.Validationf("unknown workflow stage %q", current)
	}

	// One gate per stage exit. Each message tells the caller what to finish
	// before retrying.
	switch current {
	case domain.StageDocuments:
		if !student.AllDocumentsSubmitted() {
			return "", domain.Preconditionf("all documents must be uploaded before leaving the documents stage")
		}
	case domain.StageVerification:
		if !student.DocumentsVerified {
			return "", domain.Preconditionf("every document must be verified before leaving the verification stage")
		}
	case domain.StageCounseling:
		if len(student.Preferences) == 0 || !student.PreferencesLocked() {
			return "", domain.Preconditionf("preferences must be submitted and locked before leaving the counseling stage")
		}
	case domain.StagePayment:
		if !student.HasPaidFee(domain.FeeTypeRegistration) {
			return "", domain.Preconditionf("registration fee must be paid before leaving the payment stage")
		}
	}

	return next, nil
}
