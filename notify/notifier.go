// Package notify is the interface to the external notification collaborator.
// Actual email delivery is owned by another system; this package only defines
// the contract and a log-backed default used in development.
package notify

import (
	"context"
	"log"

	"pizza-delivery-api/models"
)

// Notifier dispatches operational and customer notifications. Implementations
// must be safe for concurrent use; callers treat every failure as best-effort.
type Notifier interface {
	LowStock(ctx context.Context, items []models.InventoryItem) error
	OrderStatus(ctx context.Context, email, orderNumber string, status models.OrderStatus) error
}

// LogNotifier writes notifications to the process log.
type LogNotifier struct{}

func (LogNotifier) LowStock(_ context.Context, items []models.InventoryItem) error {
	for _, item := range items {
		log.Printf("low stock alert: %s (%s) at %.2f %s, threshold %.2f",
			item.Name, item.Category, item.CurrentStock, item.Unit, item.Threshold)
	}
	return nil
}

func (LogNotifier) OrderStatus(_ context.Context, email, orderNumber string, status models.OrderStatus) error {
	log.Printf("order update for %s: %s is now %s", email, orderNumber, status)
	return nil
}
