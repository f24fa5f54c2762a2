// Package gateway simulates the payment gateway collaborator. It issues
// transaction IDs in-process; there is no real network call behind it.
package gateway

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

type ChargeResult struct {
	TransactionID string    `json:"transaction_id"`
	Method        string    `json:"method"`
	ChargedAt     time.Time `json:"charged_at"`
}

var ErrChargeDeclined = errors.New("gateway declined the charge")

type Client struct {
	mu sync.Mutex
	// failureRate in [0,1): fraction of charges declined, for demoing the
	// failure path. 0 makes every charge succeed.
	failureRate float64
	rng         *rand.Rand
}

func New(failureRate float64) *Client {
	if failureRate < 0 || failureRate >= 1 {
		failureRate = 0
	}
	return &Client{
		failureRate: failureRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Charge confirms a payment and returns the gateway transaction reference.
func (c *Client) Charge(ctx context.Context, studentID string, amount float64, method string) (*ChargeResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if studentID == "" {
		return nil, errors.New("missing student id")
	}
	if amount <= 0 {
		return nil, errors.New("amount must be positive")
	}
	method = strings.TrimSpace(strings.ToLower(method))
	if method == "" {
		method = "upi"
	}

	c.mu.Lock()
	declined := c.failureRate > 0 && c.rng.Float64() < c.failureRate
	c.mu.Unlock()
	if declined {
		return nil, ErrChargeDeclined
	}

	return &ChargeResult{
		TransactionID: "TXN-" + strings.ToUpper(uuid.NewString()[:12]),
		Method:        method,
		ChargedAt:     time.Now().UTC(),
	}, nil
}
