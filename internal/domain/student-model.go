package domain

import "time"

type Category string

const (
	CategoryGeneral Category = "general"
	CategoryOBC     Category = "obc"
	CategorySC      Category = "sc"
	CategoryST      Category = "st"
	CategoryEWS     Category = "ews"
)

func (c Category) IsValid() bool {
	switch c {
	case CategoryGeneral, CategoryOBC, CategorySC, CategoryST, CategoryEWS:
		return true
	default:
		return false
	}
}

// ExamScore is one prior-exam entry in the academic history.
type ExamScore struct {
	Exam       string  `json:"exam"`
	Year       int     `json:"year"`
	Score      float64 `json:"score"`
	MaxScore   float64 `json:"max_score"`
	BoardOrUni string  `json:"board_or_uni,omitempty"`
}

// AcademicHistory is immutable after intake; no update operation exists for it.
type AcademicHistory struct {
	Scores []ExamScore `json:"scores,omitempty"`
}

// StudentProfile is the canonical admission record. The repository owns the
// collection; everything else works on clones and writes back whole records.
type StudentProfile struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Phone         string   `json:"phone,omitempty"`
	Category      Category `json:"category"`
	DomicileState string   `json:"domicile_state,omitempty"`
	DomicileCity  string   `json:"domicile_city,omitempty"`

	// BranchID scopes staff access; never touched by the lifecycle itself.
	BranchID string `json:"branch_id"`
	// ReferredBy is the agent user ID that referred this student, if any.
	ReferredBy uint `json:"referred_by,omitempty"`
	// ParentUserID is the linked parent account, if any.
	ParentUserID uint `json:"parent_user_id,omitempty"`

	WorkflowState   WorkflowStage   `json:"workflow_state"`
	AcademicHistory AcademicHistory `json:"academic_history"`

	Documents []StudentDocument `json:"documents"`
	// DocumentsVerified is derived from Documents and recomputed after every
	// document change; it is never accepted as input.
	DocumentsVerified bool `json:"documents_verified"`

	CounselingRegistrations []CounselingType       `json:"counseling_registrations,omitempty"`
	Preferences             []CounselingPreference `json:"preferences,omitempty"`
	Payments                []StudentPayment       `json:"payments,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Clone returns a deep copy so callers can mutate freely before writing back.
func (s *StudentProfile) Clone() *StudentProfile {
	if s == nil {
		return nil
	}
	clone := *s
	clone.Documents = append([]StudentDocument(nil), s.Documents...)
	clone.CounselingRegistrations = append([]CounselingType(nil), s.CounselingRegistrations...)
	clone.Preferences = append([]CounselingPreference(nil), s.Preferences...)
	clone.Payments = append([]StudentPayment(nil), s.Payments...)
	clone.AcademicHistory.Scores = append([]ExamScore(nil), s.AcademicHistory.Scores...)
	return &clone
}

// FindDocument returns a pointer into s.Documents, so mutations through it
// stick to this record.
func (s *StudentProfile) FindDocument(documentID string) *StudentDocument {
	for i := range s.Documents {
		if s.Documents[i].ID == documentID {
			return &s.Documents[i]
		}
	}
	return nil
}

// FindPayment returns a pointer into s.Payments.
func (s *StudentProfile) FindPayment(paymentID string) *StudentPayment {
	for i := range s.Payments {
		if s.Payments[i].ID == paymentID {
			return &s.Payments[i]
		}
	}
	return nil
}

// AllDocumentsSubmitted reports whether every slot has at least been uploaded.
func (s *StudentProfile) AllDocumentsSubmitted() bool {
	for _, d := range s.Documents {
		if d.Status == DocStatusPending {
			return false
		}
	}
	return true
}

// RecomputeDocumentsVerified rebuilds the derived flag from scratch: true iff
// there is at least one document and every one of them is verified.
func (s *StudentProfile) RecomputeDocumentsVerified() {
	if len(s.Documents) == 0 {
		s.DocumentsVerified = false
		return
	}
	for _, d := range s.Documents {
		if d.Status != DocStatusVerified {
			s.DocumentsVerified = false
			return
		}
	}
	s.DocumentsVerified = true
}

// PreferencesLocked reports whether the preference list has been locked.
// Locking is atomic, so checking any entry is enough.
func (s *StudentProfile) PreferencesLocked() bool {
	for _, p := range s.Preferences {
		if p.Status == PreferenceLocked {
			return true
		}
	}
	return false
}

// HasCounselingRegistration reports whether the student already opted into
// the given counseling type.
func (s *StudentProfile) HasCounselingRegistration(ct CounselingType) bool {
	for _, reg := range s.CounselingRegistrations {
		if reg == ct {
			return true
		}
	}
	return false
}

// HasPaidFee reports whether some payment of the given fee type is paid.
func (s *StudentProfile) HasPaidFee(ft FeeType) bool {
	for _, p := range s.Payments {
		if p.FeeType == ft && p.Status == PaymentStatusPaid {
			return true
		}
	}
	return false
}

// HasFee reports whether any payment record of the given fee type exists.
func (s *StudentProfile) HasFee(ft FeeType) bool {
	for _, p := range s.Payments {
		if p.FeeType == ft {
			return true
		}
	}
	return false
}
