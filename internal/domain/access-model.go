package domain

// Principal is the resolved identity of the caller. A nil *Principal means
// the request was not authenticated at all.
type Principal struct {
	UserID uint `json:"user_id"`
	Role   Role `json:"role"`
	// BranchID scopes staff principals.
	BranchID string `json:"branch_id,omitempty"`
	// StudentID is the self-scope for student principals and the linked
	// student for parent principals.
	StudentID string `json:"student_id,omitempty"`
}

type Action string

const (
	ActionViewStudent        Action = "view_student"
	ActionCreateStudent      Action = "create_student"
	ActionAdvanceWorkflow    Action = "advance_workflow"
	ActionUpdateDocument     Action = "update_document_status"
	ActionUpdatePayment      Action = "update_payment_status"
	ActionCollectPayment     Action = "collect_payment"
	ActionSubmitPreferences  Action = "submit_preferences"
	ActionLockPreferences    Action = "lock_preferences"
	ActionRegisterCounseling Action = "register_for_counseling"
)

// IsWrite reports whether the action mutates a student record.
func (a Action) IsWrite() bool {
	return a != ActionViewStudent
}

type DenyReason string

const (
	DenyNotAuthenticated DenyReason = "not_authenticated"
	DenyRoleForbidden    DenyReason = "role_forbidden"
	DenyScopeMismatch    DenyReason = "scope_mismatch"
)

// Decision is the result of an authorization check. It is a value, never an
// error: callers branch on Allowed and surface Reason on deny.
type Decision struct {
	Allowed bool       `json:"allowed"`
	Reason  DenyReason `json:"reason,omitempty"`
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason DenyReason) Decision {
	return Decision{Allowed: false, Reason: reason}
}
