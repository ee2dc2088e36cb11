package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusPlaced, StatusPreparing, StatusReady, StatusDelivered, StatusCancelled} {
		assert.True(t, s.Valid(), "expected %s to be valid", s)
	}
	assert.False(t, Status("shipped").Valid())
	assert.False(t, Status("").Valid())
}

func TestPaymentStatus_Valid(t *testing.T) {
	for _, p := range []PaymentStatus{PaymentPending, PaymentPaid, PaymentFailed} {
		assert.True(t, p.Valid(), "expected %s to be valid", p)
	}
	assert.False(t, PaymentStatus("refunded").Valid())
}

func TestStatus_CanTransitionTo(t *testing.T) {
	assert.True(t, StatusPlaced.CanTransitionTo(StatusPreparing))
	assert.True(t, StatusPreparing.CanTransitionTo(StatusReady))
	assert.True(t, StatusReady.CanTransitionTo(StatusDelivered))

	// Cancellation is reachable from any non-terminal state.
	assert.True(t, StatusPlaced.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusPreparing.CanTransitionTo(StatusCancelled))
	assert.True(t, StatusReady.CanTransitionTo(StatusCancelled))

	// Pipeline skips are unconventional.
	assert.False(t, StatusPlaced.CanTransitionTo(StatusDelivered))
	assert.False(t, StatusDelivered.CanTransitionTo(StatusPlaced))
	assert.False(t, StatusCancelled.CanTransitionTo(StatusPreparing))
}

func TestStatus_Terminal(t *testing.T) {
	assert.True(t, StatusDelivered.Terminal())
	assert.True(t, StatusCancelled.Terminal())
	assert.False(t, StatusPlaced.Terminal())
	assert.False(t, StatusPreparing.Terminal())
	assert.False(t, StatusReady.Terminal())
}
