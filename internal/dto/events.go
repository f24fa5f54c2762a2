package dto

// Event keys published to the admission events topic.
const (
	EventStudentCreated       = "admission.student.created"
	EventStageAdvanced        = "admission.stage.advanced"
	EventDocumentUpdated      = "admission.document.updated"
	EventPaymentUpdated       = "admission.payment.updated"
	EventPreferencesSubmitted = "admission.preferences.submitted"
	EventPreferencesLocked    = "admission.preferences.locked"
	EventCounselingRegistered = "admission.counseling.registered"
)

type StudentCreatedEvent struct {
	StudentID string `json:"student_id"`
	BranchID  string `json:"branch_id"`
	Stage     string `json:"stage"`
}

type StageAdvancedEvent struct {
	StudentID string `json:"student_id"`
	From      string `json:"from"`
	To        string `json:"to"`
}

type DocumentUpdatedEvent struct {
	StudentID  string `json:"student_id"`
	DocumentID string `json:"document_id"`
	Type       string `json:"type"`
	From       string `json:"from"`
	To         string `json:"to"`
	VerifiedBy string `json:"verified_by,omitempty"`
}

type PaymentUpdatedEvent struct {
	StudentID     string `json:"student_id"`
	PaymentID     string `json:"payment_id"`
	FeeType       string `json:"fee_type"`
	From          string `json:"from"`
	To            string `json:"to"`
	TransactionID string `json:"transaction_id,omitempty"`
}

type PreferencesEvent struct {
	StudentID string `json:"student_id"`
	Count     int    `json:"count"`
	Locked    bool   `json:"locked"`
}

type CounselingRegisteredEvent struct {
	StudentID      string `json:"student_id"`
	CounselingType string `json:"counseling_type"`
}
