package statemachine

import (
	"testing"

	"pizza-delivery-api/apperr"
	"pizza-delivery-api/models"

	"github.com/stretchr/testify/assert"
)

func TestForwardLifecycle(t *testing.T) {
	chain := []models.OrderStatus{
		models.StatusPending,
		models.StatusConfirmed,
		models.StatusInKitchen,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	}
	for i := 0; i < len(chain)-1; i++ {
		assert.NoError(t, CanTransition(chain[i], chain[i+1], "admin"))
	}

	// no skipping ahead
	assert.Error(t, CanTransition(models.StatusPending, models.StatusInKitchen, "admin"))
	assert.Error(t, CanTransition(models.StatusConfirmed, models.StatusDelivered, "admin"))
}

func TestCancellationOnlyWhilePending(t *testing.T) {
	assert.NoError(t, CanTransition(models.StatusPending, models.StatusCancelled, "customer"))
	assert.NoError(t, CanTransition(models.StatusPending, models.StatusCancelled, "admin"))

	for _, from := range []models.OrderStatus{
		models.StatusConfirmed,
		models.StatusInKitchen,
		models.StatusOutForDelivery,
		models.StatusDelivered,
	} {
		err := CanTransition(from, models.StatusCancelled, "customer")
		assert.Error(t, err, "cancel from %s must fail", from)
		assert.True(t, apperr.IsKind(err, apperr.KindConflict))
	}
}

func TestCustomerCannotDriveForward(t *testing.T) {
	assert.Error(t, CanTransition(models.StatusPending, models.StatusConfirmed, "customer"))
	assert.Error(t, CanTransition(models.StatusConfirmed, models.StatusInKitchen, "customer"))
}

func TestTerminalStates(t *testing.T) {
	assert.Empty(t, ValidTransitionsFrom(models.StatusDelivered))
	assert.Empty(t, ValidTransitionsFrom(models.StatusCancelled))
}

func TestPaymentTransitions(t *testing.T) {
	assert.NoError(t, CanTransitionPayment(models.PaymentPending, models.PaymentCompleted))
	assert.NoError(t, CanTransitionPayment(models.PaymentPending, models.PaymentFailed))
	assert.NoError(t, CanTransitionPayment(models.PaymentCompleted, models.PaymentRefunded))

	assert.Error(t, CanTransitionPayment(models.PaymentPending, models.PaymentRefunded))
	assert.Error(t, CanTransitionPayment(models.PaymentFailed, models.PaymentCompleted))
	assert.Error(t, CanTransitionPayment(models.PaymentRefunded, models.PaymentPending))
}
