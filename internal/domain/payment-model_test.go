package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanPaymentTransition(t *testing.T) {
	statuses := []PaymentStatus{PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusRefunded}

	for _, from := range statuses {
		for _, to := range statuses {
			want := (from == PaymentStatusUnpaid && to == PaymentStatusPaid) ||
				(from == PaymentStatusPaid && to == PaymentStatusRefunded)
			assert.Equal(t, want, CanPaymentTransition(from, to), "%s -> %s", from, to)
		}
	}
}

func TestErrorKinds(t *testing.T) {
	err := NotFoundf("student %s not found", "ST999")
	assert.Equal(t, ErrNotFound, KindOf(err))
	assert.True(t, IsKind(err, ErrNotFound))
	assert.Contains(t, err.Error(), "ST999")

	assert.Equal(t, ErrorKind(""), KindOf(nil))
	assert.Equal(t, ErrInvalidTransition, KindOf(InvalidTransitionf("nope")))
	assert.Equal(t, ErrPrecondition, KindOf(Preconditionf("nope")))
	assert.Equal(t, ErrValidation, KindOf(Validationf("nope")))
	assert.Equal(t, ErrTerminalState, KindOf(TerminalStatef("nope")))
}
