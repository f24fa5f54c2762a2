package handlers

import (
	"errors"

	"github.com/campusgate/admission_service/internal/api/rest/middleware"
	"github.com/campusgate/admission_service/internal/domain"
	"github.com/campusgate/admission_service/internal/dto"
	"github.com/campusgate/admission_service/internal/helper"
	"github.com/campusgate/admission_service/internal/repository"
	"github.com/campusgate/admission_service/internal/services"
	"github.com/campusgate/admission_service/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type AdmissionHandler struct {
	svc    services.LifecycleService
	access services.AccessService
	auth   helper.Auth
}

func NewAdmissionHandler(svc services.LifecycleService, access services.AccessService, auth helper.Auth) *AdmissionHandler {
	return &AdmissionHandler{svc: svc, access: access, auth: auth}
}

func (h *AdmissionHandler) SetupRoutes(app *fiber.App) {
	app.Use(middleware.AuthMiddleware(h.auth))

	students := app.Group("/api/students")

	// Intake & reads
	students.Post("/", h.CreateStudent)
	students.Get("/", h.ListStudents)
	students.Get("/:studentID", h.GetStudent)

	// Lifecycle
	students.Post("/:studentID/advance", h.AdvanceWorkflow)
	students.Patch("/:studentID/documents/:documentID", h.UpdateDocumentStatus)
	students.Patch("/:studentID/payments/:paymentID", h.UpdatePaymentStatus)
	students.Post("/:studentID/payments/:paymentID/collect", h.CollectPayment)
	students.Put("/:studentID/preferences", h.SubmitPreferences)
	students.Post("/:studentID/preferences/lock", h.LockPreferences)
	students.Post("/:studentID/counseling", h.RegisterForCounseling)
}

// principal resolves the authenticated caller; nil means no valid claims.
func (h *AdmissionHandler) principal(ctx *fiber.Ctx) *domain.Principal {
	claims, err := h.auth.GetCurrentUser(ctx)
	if err != nil {
		return nil
	}
	return claims.Principal()
}

// authorize runs the access check and renders the deny response itself. The
// second return is false when the handler must stop.
func (h *AdmissionHandler) authorize(ctx *fiber.Ctx, action domain.Action, targetStudentID string) (*domain.Principal, bool) {
	p := h.principal(ctx)
	decision := h.access.Authorize(p, action, targetStudentID)
	if !decision.Allowed {
		_ = utils.ResponseDeny(ctx, string(decision.Reason))
		return p, false
	}
	return p, true
}

// statusForError maps lifecycle error kinds to HTTP statuses.
func statusForError(err error) int {
	switch domain.KindOf(err) {
	case domain.ErrNotFound:
		return fiber.StatusNotFound
	case domain.ErrValidation:
		return fiber.StatusBadRequest
	case domain.ErrPrecondition:
		return fiber.StatusUnprocessableEntity
	case domain.ErrInvalidTransition, domain.ErrTerminalState, domain.ErrConflict:
		return fiber.StatusConflict
	default:
		return fiber.StatusInternalServerError
	}
}

func respondLifecycleError(ctx *fiber.Ctx, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		return ctx.Status(statusForError(err)).JSON(fiber.Map{
			"error": de.Message,
			"kind":  de.Kind,
		})
	}
	return utils.ResponseError(ctx, fiber.StatusInternalServerError, err.Error())
}

func (h *AdmissionHandler) CreateStudent(ctx *fiber.Ctx) error {
	if _, ok := h.authorize(ctx, domain.ActionCreateStudent, ""); !ok {
		return nil
	}

	var requestBody dto.CreateStudentRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	student, err := h.svc.CreateStudent(requestBody)
	if err != nil {
		return respondLifecycleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusCreated, student)
}

func (h *AdmissionHandler) ListStudents(ctx *fiber.Ctx) error {
	p, ok := h.authorize(ctx, domain.ActionViewStudent, "")
	if !ok {
		return nil
	}

	filter := repository.StudentFilter{
		BranchID: ctx.Query("branch_id"),
		Stage:    domain.WorkflowStage(ctx.Query("stage")),
		Limit:    ctx.QueryInt("limit", 50),
		Offset:   ctx.QueryInt("offset", 0),
	}
	// Staff only ever see their own branch, whatever they ask for.
	if p.Role == domain.RoleStaff {
		filter.BranchID = p.BranchID
	}

	students, err := h.svc.ListStudents(filter)
	if err != nil {
		return respondLifecycleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, students)
}

func (h *AdmissionHandler) GetStudent(ctx *fiber.Ctx) error {
	studentID := ctx.Params("studentID")
	if _, ok := h.authorize(ctx, domain.ActionViewStudent, studentID); !ok {
		return nil
	}

	student, err := h.svc.GetStudent(studentID)
	if err != nil {
		return respondLifecycleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, student)
}

func (h *AdmissionHandler) AdvanceWorkflow(ctx *fiber.Ctx) error {
	studentID := ctx.Params("studentID")
	if _, ok := h.authorize(ctx, domain.ActionAdvanceWorkflow, studentID); !ok {
		return nil
	}

	next, err := h.svc.AdvanceWorkflow(studentID)
	if err != nil {
		return respondLifecycleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, fiber.Map{
		"student_id":     studentID,
		"workflow_state": next,
	})
}

func (h *AdmissionHandler) UpdateDocumentStatus(ctx *fiber.Ctx) error {
	studentID := ctx.Params("studentID")
	if _, ok := h.authorize(ctx, domain.ActionUpdateDocument, studentID); !ok {
		return nil
	}

	var requestBody dto.UpdateDocumentRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Status == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "status is required")
	}

	doc, err := h.svc.UpdateDocumentStatus(
		studentID,
		ctx.Params("documentID"),
		domain.DocumentStatus(requestBody.Status),
		domain.DocumentTransitionMeta{
			FileURL:    requestBody.FileURL,
			Remarks:    requestBody.Remarks,
			VerifiedBy: requestBody.VerifiedBy,
		},
	)
	if err != nil {
		return respondLifecycleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, doc)
}

func (h *AdmissionHandler) UpdatePaymentStatus(ctx *fiber.Ctx) error {
	studentID := ctx.Params("studentID")
	if _, ok := h.authorize(ctx, domain.ActionUpdatePayment, studentID); !ok {
		return nil
	}

	var requestBody dto.UpdatePaymentRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.Status == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "status is required")
	}

	payment, err := h.svc.UpdatePaymentStatus(
		studentID,
		ctx.Params("paymentID"),
		domain.PaymentStatus(requestBody.Status),
		domain.PaymentTransitionMeta{
			TransactionID: requestBody.TransactionID,
			Method:        requestBody.Method,
		},
	)
	if err != nil {
		return respondLifecycleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, payment)
}

func (h *AdmissionHandler) CollectPayment(ctx *fiber.Ctx) error {
	studentID := ctx.Params("studentID")
	if _, ok := h.authorize(ctx, domain.ActionCollectPayment, studentID); !ok {
		return nil
	}

	var requestBody dto.CollectPaymentRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	payment, err := h.svc.CollectPayment(ctx.UserContext(), studentID, ctx.Params("paymentID"), requestBody.Method)
	if err != nil {
		return respondLifecycleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, payment)
}

func (h *AdmissionHandler) SubmitPreferences(ctx *fiber.Ctx) error {
	studentID := ctx.Params("studentID")
	if _, ok := h.authorize(ctx, domain.ActionSubmitPreferences, studentID); !ok {
		return nil
	}

	var requestBody dto.SubmitPreferencesRequest
	if err := ctx.BodyParser(&requestBody); err != nil {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "please provide valid inputs")
	}

	prefs, err := h.svc.SubmitPreferences(studentID, requestBody.ToDomain())
	if err != nil {
		return respondLifecycleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, prefs)
}

func (h *AdmissionHandler) LockPreferences(ctx *fiber.Ctx) error {
	studentID := ctx.Params("studentID")
	if _, ok := h.authorize(ctx, domain.ActionLockPreferences, studentID); !ok {
		return nil
	}

	prefs, err := h.svc.LockPreferences(studentID)
	if err != nil {
		return respondLifecycleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, prefs)
}

func (h *AdmissionHandler) RegisterForCounseling(ctx *fiber.Ctx) error {
	studentID := ctx.Params("studentID")
	if _, ok := h.authorize(ctx, domain.ActionRegisterCounseling, studentID); !ok {
		return nil
	}

	var requestBody dto.RegisterCounselingRequest
	if err := ctx.BodyParser(&requestBody); err != nil || requestBody.CounselingType == "" {
		return utils.ResponseError(ctx, fiber.StatusBadRequest, "counseling_type is required")
	}

	registrations, err := h.svc.RegisterForCounseling(studentID, domain.CounselingType(requestBody.CounselingType))
	if err != nil {
		return respondLifecycleError(ctx, err)
	}
	return utils.ResponseSuccess(ctx, fiber.StatusOK, registrations)
}
