package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusUnpaid   PaymentStatus = "unpaid"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

func (p PaymentStatus) IsValid() bool {
	switch p {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

type FeeType string

const (
	FeeTypeRegistration FeeType = "registration"
	FeeTypeCounseling   FeeType = "counseling"
	FeeTypeTuition      FeeType = "tuition"
)

type StudentPayment struct {
	ID            string        `json:"id"`
	FeeType       FeeType       `json:"fee_type"`
	Amount        float64       `json:"amount"`
	Status        PaymentStatus `json:"status"`
	Method        string        `json:"method,omitempty"`
	TransactionID string        `json:"transaction_id,omitempty"`
	PaidAt        *time.Time    `json:"paid_at,omitempty"`
}

// CanPaymentTransition reports whether from→to is a legal payment edge.
// unpaid→paid happens through a gateway confirmation; paid→refunded is an
// administrative reversal. refunded is terminal.
func CanPaymentTransition(from, to PaymentStatus) bool {
	switch {
	case from == PaymentStatusUnpaid && to == PaymentStatusPaid:
		return true
	case from == PaymentStatusPaid && to == PaymentStatusRefunded:
		return true
	default:
		return false
	}
}

// PaymentTransitionMeta carries the gateway confirmation for unpaid→paid.
type PaymentTransitionMeta struct {
	TransactionID string `json:"transaction_id,omitempty"`
	Method        string `json:"method,omitempty"`
}
