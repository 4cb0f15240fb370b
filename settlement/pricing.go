package settlement

import (
	"fmt"
	"math"
	"time"

	"pizza-delivery-api/models"
)

// Pricing holds the order-level charge configuration.
type Pricing struct {
	TaxRate           float64
	FreeDeliveryAbove float64
	DeliveryFee       float64
}

// Totals are the derived order-level amounts.
type Totals struct {
	Subtotal    float64
	Tax         float64
	DeliveryFee float64
	Total       float64
}

// ComputeTotals derives the order charges from its line items. Totals are
// always recomputed server-side; client-submitted amounts are never trusted.
func ComputeTotals(items []models.OrderItem, p Pricing) Totals {
	var subtotal float64
	for _, item := range items {
		subtotal += item.Price * float64(item.Quantity)
	}
	subtotal = round2(subtotal)

	tax := round2(subtotal * p.TaxRate)
	fee := p.DeliveryFee
	if subtotal > p.FreeDeliveryAbove {
		fee = 0
	}
	return Totals{
		Subtotal:    subtotal,
		Tax:         tax,
		DeliveryFee: fee,
		Total:       round2(subtotal + tax + fee),
	}
}

// LinePrice computes the unit price of one order line: the pizza base price
// plus every customization selection.
func LinePrice(basePrice float64, base, sauce, cheese models.Selection, addons []models.OrderAddon) float64 {
	price := basePrice + base.Price + sauce.Price + cheese.Price
	for _, a := range addons {
		price += a.Price
	}
	return round2(price)
}

// NextOrderNumber formats the order number for the nth order of the day:
// "PZ" + 2-digit year, month, day + zero-padded daily sequence. The day
// boundary is UTC. todayCount is the number of orders already created today,
// so the generated sequence is todayCount+1.
func NextOrderNumber(t time.Time, todayCount int64) string {
	t = t.UTC()
	return fmt.Sprintf("PZ%02d%02d%02d%03d", t.Year()%100, int(t.Month()), t.Day(), todayCount+1)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
