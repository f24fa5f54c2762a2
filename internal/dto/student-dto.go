package dto

import "github.com/campusgate/admission_service/internal/domain"

type CreateStudentRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Category      string `json:"category"`
	DomicileState string `json:"domicile_state"`
	DomicileCity  string `json:"domicile_city"`
	BranchID      string `json:"branch_id"`
	ReferredBy    uint   `json:"referred_by,omitempty"`
	ParentUserID  uint   `json:"parent_user_id,omitempty"`

	AcademicHistory []ExamScoreInput `json:"academic_history,omitempty"`
}

type ExamScoreInput struct {
	Exam       string  `json:"exam"`
	Year       int     `json:"year"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
	BoardOrUni string  `json:"board_or_uni,omitempty"`
}

type UpdateDocumentRequest struct {
	Status     string `json:"status"`
	FileURL    string `json:"file_url,omitempty"`
	Remarks    string `json:"remarks,omitempty"`
	VerifiedBy string `json:"verified_by,omitempty"`
}

type UpdatePaymentRequest struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
	Method        string `json:"method,omitempty"`
}

type CollectPaymentRequest struct {
	Method string `json:"method"`
}

type PreferenceInput struct {
	CollegeID   string `json:"college_id"`
	CollegeName string `json:"college_name,omitempty"`
	Rank        int    `json:"rank"`
}

type SubmitPreferencesRequest struct {
	Preferences []PreferenceInput `json:"preferences"`
}

type RegisterCounselingRequest struct {
	CounselingType string `json:"counseling_type"`
}

// ToDomain converts caller inputs to domain values; ranks are re-numbered
// by the service, so the caller-supplied rank only decides ordering.
func (r SubmitPreferencesRequest) ToDomain() []domain.CounselingPreference {
	prefs := make([]domain.CounselingPreference, 0, len(r.Preferences))
	for _, p := range r.Preferences {
		prefs = append(prefs, domain.CounselingPreference{
			CollegeID:   p.CollegeID,
			CollegeName: p.CollegeName,
			Rank:        p.Rank,
		})
	}
	return prefs
}
