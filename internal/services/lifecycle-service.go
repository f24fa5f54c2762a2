package services

import (
	"context"
	"encoding/json"
	"log"
	"sort"
	"strings"
	"time"

	"github.com/campusgate/admission_service/internal/clients/gateway"
	"github.com/campusgate/admission_service/internal/domain"
	"github.com/campusgate/admission_service/internal/dto"
	"github.com/campusgate/admission_service/internal/interfaces"
	"github.com/campusgate/admission_service/internal/repository"
	"github.com/google/uuid"
)

// registrationFeeAmount is charged when a student enters the payment stage.
const registrationFeeAmount = 1500.0

type LifecycleService interface {
	// Intake & reads
	CreateStudent(input dto.CreateStudentRequest) (*domain.StudentProfile, error)
	GetStudent(studentID string) (*domain.StudentProfile, error)
	ListStudents(filter repository.StudentFilter) ([]domain.StudentProfile, error)

	// Lifecycle mutations
	AdvanceWorkflow(studentID string) (domain.WorkflowStage, error)
	UpdateDocumentStatus(studentID, documentID string, newStatus domain.DocumentStatus, meta domain.DocumentTransitionMeta) (*domain.StudentDocument, error)
	UpdatePaymentStatus(studentID, paymentID string, newStatus domain.PaymentStatus, meta domain.PaymentTransitionMeta) (*domain.StudentPayment, error)
	CollectPayment(ctx context.Context, studentID, paymentID, method string) (*domain.StudentPayment, error)
	SubmitPreferences(studentID string, prefs []domain.CounselingPreference) ([]domain.CounselingPreference, error)
	LockPreferences(studentID string) ([]domain.CounselingPreference, error)
	RegisterForCounseling(studentID string, counselingType domain.CounselingType) ([]domain.CounselingType, error)
}

type lifecycleService struct {
	repo     repository.StudentRepository
	producer interfaces.ProducerHandler
	gateway  *gateway.Client
}

func NewLifecycleService(
	repo repository.StudentRepository,
	producer interfaces.ProducerHandler,
	gw *gateway.Client,
) LifecycleService {
	return &lifecycleService{
		repo:     repo,
		producer: producer,
		gateway:  gw,
	}
}

// INTAKE

func (l *lifecycleService) CreateStudent(input dto.CreateStudentRequest) (*domain.StudentProfile, error) {
	name := strings.TrimSpace(input.Name)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	branch := strings.TrimSpace(strings.ToUpper(input.BranchID))
	category := domain.Category(strings.TrimSpace(strings.ToLower(input.Category)))

	if name == "" || email == "" || branch == "" {
		return nil, domain.Validationf("name, email and branch_id are required")
	}
	if category == "" {
		category = domain.CategoryGeneral
	}
	if !category.IsValid() {
		return nil, domain.Validationf("unknown category %q", input.Category)
	}

	scores := make([]domain.ExamScore, 0, len(input.AcademicHistory))
	for _, s := range input.AcademicHistory {
		scores = append(scores, domain.ExamScore{
			Exam:       s.Exam,
			Year:       s.Year,
			Score:      s.Score,
			MaxScore:   s.MaxScore,
			BoardOrUni: s.BoardOrUni,
		})
	}

	student := &domain.StudentProfile{
		Name:            name,
		Email:           email,
		Phone:           strings.TrimSpace(input.Phone),
		Category:        category,
		DomicileState:   strings.TrimSpace(input.DomicileState),
		DomicileCity:    strings.TrimSpace(input.DomicileCity),
		BranchID:        branch,
		ReferredBy:      input.ReferredBy,
		ParentUserID:    input.ParentUserID,
		WorkflowState:   domain.StageInquiry,
		AcademicHistory: domain.AcademicHistory{Scores: scores},
		Documents:       newDocumentSlate(),
	}
	student.RecomputeDocumentsVerified()

	created, err := l.repo.CreateStudent(student)
	if err != nil {
		return nil, err
	}

	l.publishEvent(dto.EventStudentCreated, dto.StudentCreatedEvent{
		StudentID: created.ID,
		BranchID:  created.BranchID,
		Stage:     string(created.WorkflowState),
	})
	return created, nil
}

// newDocumentSlate builds the fixed pending slot per required document type.
func newDocumentSlate() []domain.StudentDocument {
	docs := make([]domain.StudentDocument, 0, len(domain.RequiredDocumentTypes))
	for _, t := range domain.RequiredDocumentTypes {
		docs = append(docs, domain.StudentDocument{
			ID:     uuid.NewString(),
			Type:   t,
			Status: domain.DocStatusPending,
		})
	}
	return docs
}

func (l *lifecycleService) GetStudent(studentID string) (*domain.StudentProfile, error) {
	return l.repo.FindStudentByID(studentID)
}

func (l *lifecycleService) ListStudents(filter repository.StudentFilter) ([]domain.StudentProfile, error) {
	return l.repo.ListStudents(filter)
}

// WORKFLOW

func (l *lifecycleService) AdvanceWorkflow(studentID string) (domain.WorkflowStage, error) {
	student, err := l.repo.FindStudentByID(studentID)
	if err != nil {
		return "", err
	}

	from := student.WorkflowState
	next, err := PlanAdvance(student)
	if err != nil {
		return "", err
	}

	student.WorkflowState = next

	// The registration fee becomes due on entry to the payment stage.
	if next == domain.StagePayment && !student.HasFee(domain.FeeTypeRegistration) {
		student.Payments = append(student.Payments, domain.StudentPayment{
			ID:      uuid.NewString(),
			FeeType: domain.FeeTypeRegistration,
			Amount:  registrationFeeAmount,
			Status:  domain.PaymentStatusUnpaid,
		})
	}

	if err := l.repo.SaveStudent(student); err != nil {
		return "", err
	}

	l.publishEvent(dto.EventStageAdvanced, dto.StageAdvancedEvent{
		StudentID: studentID,
		From:      string(from),
		To:        string(next),
	})
	return next, nil
}

// DOCUMENTS

func (l *lifecycleService) UpdateDocumentStatus(studentID, documentID string, newStatus domain.DocumentStatus, meta domain.DocumentTransitionMeta) (*domain.StudentDocument, error) {
	if !newStatus.IsValid() {
		return nil, domain.Validationf("unknown document status %q", newStatus)
	}

	student, err := l.repo.FindStudentByID(studentID)
	if err != nil {
		return nil, err
	}

	doc := student.FindDocument(documentID)
	if doc == nil {
		return nil, domain.NotFoundf("document %s not found for student %s", documentID, studentID)
	}

	from := doc.Status
	if !domain.CanDocumentTransition(from, newStatus) {
		return nil, domain.InvalidTransitionf("document %s cannot move from %s to %s", doc.Type, from, newStatus)
	}
	if newStatus.RequiresVerifier() && strings.TrimSpace(meta.VerifiedBy) == "" {
		return nil, domain.Validationf("verified_by is required to mark a document %s", newStatus)
	}

	now := time.Now().UTC()
	doc.Status = newStatus
	switch newStatus {
	case domain.DocStatusUploaded:
		doc.UploadedAt = &now
		// A re-upload starts a fresh review.
		doc.VerifiedBy = ""
		doc.ReviewedAt = nil
		if meta.FileURL != "" {
			doc.FileURL = meta.FileURL
		}
	case domain.DocStatusReviewed:
		doc.ReviewedAt = &now
	case domain.DocStatusVerified, domain.DocStatusRejected:
		doc.VerifiedBy = strings.TrimSpace(meta.VerifiedBy)
		doc.ReviewedAt = &now
	}
	if meta.Remarks != "" {
		doc.Remarks = meta.Remarks
	}

	student.RecomputeDocumentsVerified()

	if err := l.repo.SaveStudent(student); err != nil {
		return nil, err
	}

	l.publishEvent(dto.EventDocumentUpdated, dto.DocumentUpdatedEvent{
		StudentID:  studentID,
		DocumentID: documentID,
		Type:       string(doc.Type),
		From:       string(from),
		To:         string(newStatus),
		VerifiedBy: doc.VerifiedBy,
	})

	out := *doc
	return &out, nil
}

// PAYMENTS

func (l *lifecycleService) UpdatePaymentStatus(studentID, paymentID string, newStatus domain.PaymentStatus, meta domain.PaymentTransitionMeta) (*domain.StudentPayment, error) {
	if !newStatus.IsValid() {
		return nil, domain.Validationf("unknown payment status %q", newStatus)
	}

	student, err := l.repo.FindStudentByID(studentID)
	if err != nil {
		return nil, err
	}

	payment := student.FindPayment(paymentID)
	if payment == nil {
		return nil, domain.NotFoundf("payment %s not found for student %s", paymentID, studentID)
	}

	from := payment.Status
	if !domain.CanPaymentTransition(from, newStatus) {
		return nil, domain.InvalidTransitionf("payment %s cannot move from %s to %s", payment.FeeType, from, newStatus)
	}

	if newStatus == domain.PaymentStatusPaid {
		if strings.TrimSpace(meta.TransactionID) == "" || strings.TrimSpace(meta.Method) == "" {
			return nil, domain.Validationf("transaction_id and method are required to mark a payment paid")
		}
		payment.TransactionID = strings.TrimSpace(meta.TransactionID)
		payment.Method = strings.TrimSpace(meta.Method)
		if payment.PaidAt == nil {
			now := time.Now().UTC()
			payment.PaidAt = &now
		}
	}
	payment.Status = newStatus

	if err := l.repo.SaveStudent(student); err != nil {
		return nil, err
	}

	l.publishEvent(dto.EventPaymentUpdated, dto.PaymentUpdatedEvent{
		StudentID:     studentID,
		PaymentID:     paymentID,
		FeeType:       string(payment.FeeType),
		From:          string(from),
		To:            string(newStatus),
		TransactionID: payment.TransactionID,
	})

	out := *payment
	return &out, nil
}

// CollectPayment drives an unpaid payment through the gateway and applies the
// confirmation via the payment state machine.
func (l *lifecycleService) CollectPayment(ctx context.Context, studentID, paymentID, method string) (*domain.StudentPayment, error) {
	student, err := l.repo.FindStudentByID(studentID)
	if err != nil {
		return nil, err
	}

	payment := student.FindPayment(paymentID)
	if payment == nil {
		return nil, domain.NotFoundf("payment %s not found for student %s", paymentID, studentID)
	}
	if payment.Status != domain.PaymentStatusUnpaid {
		return nil, domain.InvalidTransitionf("payment %s is %s, only unpaid payments can be collected", paymentID, payment.Status)
	}

	result, err := l.gateway.Charge(ctx, studentID, payment.Amount, method)
	if err != nil {
		return nil, domain.Preconditionf("payment gateway declined the charge: %v", err)
	}

	return l.UpdatePaymentStatus(studentID, paymentID, domain.PaymentStatusPaid, domain.PaymentTransitionMeta{
		TransactionID: result.TransactionID,
		Method:        result.Method,
	})
}

// PREFERENCES

func (l *lifecycleService) SubmitPreferences(studentID string, prefs []domain.CounselingPreference) ([]domain.CounselingPreference, error) {
	student, err := l.repo.FindStudentByID(studentID)
	if err != nil {
		return nil, err
	}

	if student.PreferencesLocked() {
		return nil, domain.Preconditionf("preferences are locked and can no longer be changed")
	}
	if len(prefs) == 0 {
		return nil, domain.Validationf("preference list cannot be empty")
	}
	if len(prefs) > domain.MaxPreferences {
		return nil, domain.Validationf("at most %d preferences are allowed", domain.MaxPreferences)
	}

	seen := make(map[string]bool, len(prefs))
	normalized := make([]domain.CounselingPreference, 0, len(prefs))
	for _, p := range prefs {
		collegeID := strings.TrimSpace(p.CollegeID)
		if collegeID == "" {
			return nil, domain.Validationf("every preference needs a college_id")
		}
		if seen[collegeID] {
			return nil, domain.Validationf("duplicate college %s in preference list", collegeID)
		}
		seen[collegeID] = true
		normalized = append(normalized, domain.CounselingPreference{
			CollegeID:   collegeID,
			CollegeName: strings.TrimSpace(p.CollegeName),
			Rank:        p.Rank,
			Status:      domain.PreferenceSelected,
		})
	}

	// Caller ranks decide order only; stored ranks are always 1..N.
	sort.SliceStable(normalized, func(i, j int) bool {
		return normalized[i].Rank < normalized[j].Rank
	})
	for i := range normalized {
		normalized[i].Rank = i + 1
	}

	student.Preferences = normalized
	if err := l.repo.SaveStudent(student); err != nil {
		return nil, err
	}

	l.publishEvent(dto.EventPreferencesSubmitted, dto.PreferencesEvent{
		StudentID: studentID,
		Count:     len(normalized),
	})

	return append([]domain.CounselingPreference(nil), normalized...), nil
}

func (l *lifecycleService) LockPreferences(studentID string) ([]domain.CounselingPreference, error) {
	student, err := l.repo.FindStudentByID(studentID)
	if err != nil {
		return nil, err
	}

	if len(student.Preferences) == 0 {
		return nil, domain.Preconditionf("cannot lock an empty preference list")
	}

	// Re-locking a locked list is a no-op, not an error.
	if !student.PreferencesLocked() {
		for i := range student.Preferences {
			student.Preferences[i].Status = domain.PreferenceLocked
		}
		if err := l.repo.SaveStudent(student); err != nil {
			return nil, err
		}
		l.publishEvent(dto.EventPreferencesLocked, dto.PreferencesEvent{
			StudentID: studentID,
			Count:     len(student.Preferences),
			Locked:    true,
		})
	}

	return append([]domain.CounselingPreference(nil), student.Preferences...), nil
}

// COUNSELING

func (l *lifecycleService) RegisterForCounseling(studentID string, counselingType domain.CounselingType) ([]domain.CounselingType, error) {
	if !counselingType.IsValid() {
		return nil, domain.Validationf("unknown counseling type %q", counselingType)
	}

	student, err := l.repo.FindStudentByID(studentID)
	if err != nil {
		return nil, err
	}

	// Set semantics: re-registering is a no-op.
	if !student.HasCounselingRegistration(counselingType) {
		student.CounselingRegistrations = append(student.CounselingRegistrations, counselingType)
		if err := l.repo.SaveStudent(student); err != nil {
			return nil, err
		}
		l.publishEvent(dto.EventCounselingRegistered, dto.CounselingRegisteredEvent{
			StudentID:      studentID,
			CounselingType: string(counselingType),
		})
	}

	return append([]domain.CounselingType(nil), student.CounselingRegistrations...), nil
}

// publishEvent is best-effort: broker trouble must never fail a mutation.
func (l *lifecycleService) publishEvent(key string, payload interface{}) {
	if l.producer == nil {
		return
	}
	value, err := json.Marshal(payload)
	if err != nil {
		log.Printf("marshal event %s error: %v", key, err)
		return
	}
	if err := l.producer.PublishMessage([]byte(key), value); err != nil {
		log.Printf("publish event %s error: %v", key, err)
	}
}
