package statemachine

import (
	"pizza-delivery-api/apperr"
	"pizza-delivery-api/models"
)

// Transition defines a valid state change and who can perform it
type Transition struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string // "admin" or "customer"
}

// validTransitions is the authoritative state machine definition.
// Forward movement is admin-driven; the only customer edge is cancelling
// an order that is still pending.
var validTransitions = []Transition{
	{From: models.StatusPending, To: models.StatusConfirmed, Actor: "admin"},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "customer"},
	{From: models.StatusPending, To: models.StatusCancelled, Actor: "admin"},
	{From: models.StatusConfirmed, To: models.StatusInKitchen, Actor: "admin"},
	{From: models.StatusInKitchen, To: models.StatusOutForDelivery, Actor: "admin"},
	{From: models.StatusOutForDelivery, To: models.StatusDelivered, Actor: "admin"},
}

type transitionKey struct {
	From  models.OrderStatus
	To    models.OrderStatus
	Actor string
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[transitionKey]bool {
	m := make(map[transitionKey]bool)
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.To, t.Actor}] = true
	}
	return m
}()

// ValidTransitionsFrom returns all valid next states from a given state
func ValidTransitionsFrom(status models.OrderStatus) []models.OrderStatus {
	var nexts []models.OrderStatus
	seen := map[models.OrderStatus]bool{}
	for _, t := range validTransitions {
		if t.From == status && !seen[t.To] {
			nexts = append(nexts, t.To)
			seen[t.To] = true
		}
	}
	return nexts
}

// CanTransition checks if a given actor can move an order between states
func CanTransition(from, to models.OrderStatus, actor string) error {
	if transitionMap[transitionKey{From: from, To: to, Actor: actor}] {
		return nil
	}
	return apperr.Conflict(
		"invalid transition: " + string(from) + " to " + string(to) +
			" is not allowed for actor '" + actor + "'. " +
			"Valid transitions from " + string(from) + " are: " + describeValidFrom(from),
	)
}

func describeValidFrom(status models.OrderStatus) string {
	nexts := ValidTransitionsFrom(status)
	if len(nexts) == 0 {
		return "none (terminal state)"
	}
	result := ""
	for i, s := range nexts {
		if i > 0 {
			result += ", "
		}
		result += string(s)
	}
	return result
}

// paymentTransitions covers the payment lifecycle, which runs independently
// of the order status machine. Completed-to-refunded is an admin action.
var paymentTransitions = map[models.PaymentStatus][]models.PaymentStatus{
	models.PaymentPending:   {models.PaymentCompleted, models.PaymentFailed},
	models.PaymentCompleted: {models.PaymentRefunded},
}

// CanTransitionPayment checks a payment status change.
func CanTransitionPayment(from, to models.PaymentStatus) error {
	for _, next := range paymentTransitions[from] {
		if next == to {
			return nil
		}
	}
	return apperr.Conflict("invalid payment transition: " + string(from) + " to " + string(to))
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
