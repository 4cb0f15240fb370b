// Package settlement turns a validated cart submission into a persisted order
// and applies its effect on inventory. The order is the customer-facing
// contract; inventory bookkeeping is best-effort and never blocks placement.
package settlement

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"pizza-delivery-api/apperr"
	"pizza-delivery-api/models"
	"pizza-delivery-api/notify"

	"gorm.io/gorm"
)

// StockLedger is the slice of the inventory ledger the workflow depends on.
type StockLedger interface {
	DecrementByName(ctx context.Context, name string, category models.StockCategory, qty float64) error
	ScanLowStock(ctx context.Context) ([]models.InventoryItem, error)
}

// Workflow orchestrates order creation, inventory decrement and low-stock
// notification.
type Workflow struct {
	db       *gorm.DB
	stock    StockLedger
	notifier notify.Notifier
	pricing  Pricing
	now      func() time.Time
}

func NewWorkflow(db *gorm.DB, stock StockLedger, notifier notify.Notifier, pricing Pricing) *Workflow {
	return &Workflow{
		db:       db,
		stock:    stock,
		notifier: notifier,
		pricing:  pricing,
		now:      time.Now,
	}
}

// SelectionInput is one customization choice as submitted by the client.
type SelectionInput struct {
	Name  string  `json:"name" binding:"required"`
	Price float64 `json:"price" binding:"min=0"`
}

// OrderItemInput is one cart line as submitted by the client.
type OrderItemInput struct {
	PizzaID  uint             `json:"pizza_id" binding:"required"`
	Base     SelectionInput   `json:"base" binding:"required"`
	Sauce    SelectionInput   `json:"sauce" binding:"required"`
	Cheese   SelectionInput   `json:"cheese" binding:"required"`
	Veggies  []SelectionInput `json:"veggies"`
	Meat     []SelectionInput `json:"meat"`
	Quantity int              `json:"quantity" binding:"required,min=1"`
}

// OrderInput is a validated cart submission.
type OrderInput struct {
	Items               []OrderItemInput
	DeliveryAddress     models.DeliveryAddress
	SpecialInstructions string
	PaymentMethod       models.PaymentMethod
}

// PlaceOrder persists a new pending order and applies its inventory effects.
// The order write must succeed; decrement and notification failures are
// collected and logged but never surfaced to the customer.
func (w *Workflow) PlaceOrder(ctx context.Context, userID uint, input OrderInput) (*models.Order, error) {
	if len(input.Items) == 0 {
		return nil, apperr.Validation("Order must contain at least one item")
	}
	if !models.ValidPaymentMethod(string(input.PaymentMethod)) {
		return nil, apperr.Validation("Payment method must be razorpay or cod")
	}

	items, err := w.buildItems(ctx, input.Items)
	if err != nil {
		return nil, err
	}
	totals := ComputeTotals(items, w.pricing)

	order := &models.Order{
		UserID:              userID,
		Items:               items,
		Subtotal:            totals.Subtotal,
		Tax:                 totals.Tax,
		DeliveryFee:         totals.DeliveryFee,
		Total:               totals.Total,
		Status:              models.StatusPending,
		PaymentStatus:       models.PaymentPending,
		PaymentMethod:       input.PaymentMethod,
		DeliveryAddress:     input.DeliveryAddress,
		SpecialInstructions: input.SpecialInstructions,
	}

	if err := w.createWithOrderNumber(ctx, order); err != nil {
		return nil, err
	}

	w.applyInventory(ctx, order)

	if err := w.db.WithContext(ctx).
		Preload("Items.Pizza").Preload("Items.Addons").
		First(order, order.ID).Error; err != nil {
		return nil, apperr.Storage("Failed to load order", err)
	}
	return order, nil
}

func (w *Workflow) buildItems(ctx context.Context, inputs []OrderItemInput) ([]models.OrderItem, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	for _, in := range inputs {
		var pizza models.Pizza
		err := w.db.WithContext(ctx).First(&pizza, in.PizzaID).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("Pizza not found")
		}
		if err != nil {
			return nil, apperr.Storage("Failed to look up pizza", err)
		}
		if !pizza.IsAvailable {
			return nil, apperr.Validation("Pizza '" + pizza.Name + "' is not available")
		}

		var addons []models.OrderAddon
		for _, v := range in.Veggies {
			addons = append(addons, models.OrderAddon{Category: models.StockVeggie, Name: v.Name, Price: v.Price})
		}
		for _, m := range in.Meat {
			addons = append(addons, models.OrderAddon{Category: models.StockMeat, Name: m.Name, Price: m.Price})
		}

		base := models.Selection{Name: in.Base.Name, Price: in.Base.Price}
		sauce := models.Selection{Name: in.Sauce.Name, Price: in.Sauce.Price}
		cheese := models.Selection{Name: in.Cheese.Name, Price: in.Cheese.Price}

		items = append(items, models.OrderItem{
			PizzaID:  pizza.ID,
			Base:     base,
			Sauce:    sauce,
			Cheese:   cheese,
			Addons:   addons,
			Quantity: in.Quantity,
			Price:    LinePrice(pizza.BasePrice, base, sauce, cheese, addons),
		})
	}
	return items, nil
}

// createWithOrderNumber assigns the next date-coded order number and inserts
// the order. The number is derived from a count of today's orders without a
// reservation step, so two concurrent placements can collide on the unique
// index; the loser recounts and retries once before surfacing a conflict.
func (w *Workflow) createWithOrderNumber(ctx context.Context, order *models.Order) error {
	for attempt := 0; attempt < 2; attempt++ {
		count, err := w.countOrdersToday(ctx)
		if err != nil {
			return err
		}
		order.OrderNumber = NextOrderNumber(w.now(), count)

		err = w.db.WithContext(ctx).Create(order).Error
		if err == nil {
			return nil
		}
		if !isUniqueViolation(err) {
			return apperr.Storage("Failed to create order", err)
		}
		log.Printf("settlement: order number %s collided, retrying", order.OrderNumber)
		order.ID = 0
	}
	return apperr.Conflict("Order number conflict, please retry")
}

func (w *Workflow) countOrdersToday(ctx context.Context) (int64, error) {
	now := w.now().UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var count int64
	err := w.db.WithContext(ctx).Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", start, start.AddDate(0, 0, 1)).
		Count(&count).Error
	if err != nil {
		return 0, apperr.Storage("Failed to count today's orders", err)
	}
	return count, nil
}

// applyInventory decrements stock for every customization on the order, then
// raises a low-stock notification if any item crossed its threshold. Every
// sub-step is best-effort: failures are collected into one log record and the
// already-committed order stands.
func (w *Workflow) applyInventory(ctx context.Context, order *models.Order) {
	var failures []string
	decrement := func(name string, category models.StockCategory, qty float64) {
		if name == "" {
			return
		}
		if err := w.stock.DecrementByName(ctx, name, category, qty); err != nil {
			failures = append(failures, name+": "+err.Error())
		}
	}

	for _, item := range order.Items {
		qty := float64(item.Quantity)
		decrement(item.Base.Name, models.StockBase, qty)
		decrement(item.Sauce.Name, models.StockSauce, qty)
		decrement(item.Cheese.Name, models.StockCheese, qty)
		for _, a := range item.Addons {
			decrement(a.Name, a.Category, qty)
		}
	}
	if len(failures) > 0 {
		err := apperr.Dependency("Inventory decrement incomplete", errors.New(strings.Join(failures, "; ")))
		log.Printf("settlement: order %s placed with %d inventory decrement failures: %v",
			order.OrderNumber, len(failures), err)
	}

	low, err := w.stock.ScanLowStock(ctx)
	if err != nil {
		log.Printf("settlement: low-stock scan failed after order %s: %v", order.OrderNumber, err)
		return
	}
	if len(low) > 0 {
		if err := w.notifier.LowStock(ctx, low); err != nil {
			log.Printf("settlement: low-stock notification failed: %v", err)
		}
	}
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) ||
		strings.Contains(err.Error(), "UNIQUE constraint")
}
