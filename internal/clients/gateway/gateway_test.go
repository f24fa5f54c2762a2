package gateway_test

import (
	"context"
	"strings"
	"testing"

	"github.com/campusgate/admission_service/internal/clients/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChargeIssuesTransactionIDs(t *testing.T) {
	client := gateway.New(0)

	first, err := client.Charge(context.Background(), "ST001", 1500, "UPI")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(first.TransactionID, "TXN-"))
	assert.Equal(t, "upi", first.Method)
	assert.False(t, first.ChargedAt.IsZero())

	second, err := client.Charge(context.Background(), "ST001", 1500, "")
	require.NoError(t, err)
	assert.NotEqual(t, first.TransactionID, second.TransactionID)
	assert.Equal(t, "upi", second.Method)
}

func TestChargeRejectsBadInput(t *testing.T) {
	client := gateway.New(0)

	_, err := client.Charge(context.Background(), "", 1500, "upi")
	assert.Error(t, err)

	_, err = client.Charge(context.Background(), "ST001", 0, "upi")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = client.Charge(ctx, "ST001", 1500, "upi")
	assert.ErrorIs(t, err, context.Canceled)
}
