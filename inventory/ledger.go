// Package inventory owns ingredient stock levels and low-stock detection.
package inventory

import (
	"context"
	"errors"
	"log"
	"time"

	"pizza-delivery-api/apperr"
	"pizza-delivery-api/models"

	"gorm.io/gorm"
)

// Ledger is the single source of truth for ingredient stock. Stock mutations
// go through a single in-database read-modify-write so concurrent orders never
// lose updates.
type Ledger struct {
	db *gorm.DB
}

func NewLedger(db *gorm.DB) *Ledger {
	return &Ledger{db: db}
}

// UpdateStock applies delta to the item's stock, clamping at zero. A positive
// delta is a restock and stamps LastRestocked. The clamp runs inside one
// UPDATE statement, so two concurrent decrements of the same item both land.
func (l *Ledger) UpdateStock(ctx context.Context, id uint, delta float64) (*models.InventoryItem, error) {
	updates := map[string]interface{}{
		"current_stock": gorm.Expr("MAX(0, current_stock + ?)", delta),
	}
	if delta > 0 {
		updates["last_restocked"] = time.Now()
	}

	res := l.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("id = ?", id).
		Updates(updates)
	if res.Error != nil {
		return nil, apperr.Storage("Failed to update stock", res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apperr.NotFound("Inventory item not found")
	}

	var item models.InventoryItem
	if err := l.db.WithContext(ctx).First(&item, id).Error; err != nil {
		return nil, apperr.Storage("Failed to reload inventory item", err)
	}
	return &item, nil
}

// DecrementByName reduces stock for the item identified by name+category.
// A missing item is a logged no-op: a customization may reference an
// ingredient that was renamed or removed since menu authoring, and inventory
// tracking is advisory, never order-blocking.
func (l *Ledger) DecrementByName(ctx context.Context, name string, category models.StockCategory, qty float64) error {
	var item models.InventoryItem
	err := l.db.WithContext(ctx).
		Where("name = ? AND category = ?", name, category).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("inventory: no item %q in category %q, skipping decrement", name, category)
		return nil
	}
	if err != nil {
		return apperr.Storage("Failed to look up inventory item", err)
	}

	_, err = l.UpdateStock(ctx, item.ID, -qty)
	return err
}

// ScanLowStock returns every available item at or below its threshold.
func (l *Ledger) ScanLowStock(ctx context.Context) ([]models.InventoryItem, error) {
	var items []models.InventoryItem
	err := l.db.WithContext(ctx).
		Where("is_available = ? AND current_stock <= threshold", true).
		Order("category, name").
		Find(&items).Error
	if err != nil {
		return nil, apperr.Storage("Failed to scan inventory", err)
	}
	return items, nil
}

// ItemSummary is one row in a category summary
type ItemSummary struct {
	Name         string  `json:"name"`
	CurrentStock float64 `json:"current_stock"`
	Threshold    float64 `json:"threshold"`
	IsLowStock   bool    `json:"is_low_stock"`
}

// CategorySummary aggregates one stock category for the admin dashboard
type CategorySummary struct {
	Category      models.StockCategory `json:"category"`
	TotalItems    int                  `json:"total_items"`
	LowStockItems int                  `json:"low_stock_items"`
	TotalStock    float64              `json:"total_stock"`
	Items         []ItemSummary        `json:"items"`
}

// Summarize groups the whole ledger by category for the admin dashboard.
func (l *Ledger) Summarize(ctx context.Context) ([]CategorySummary, error) {
	var items []models.InventoryItem
	if err := l.db.WithContext(ctx).Order("category, name").Find(&items).Error; err != nil {
		return nil, apperr.Storage("Failed to load inventory", err)
	}

	byCategory := make(map[models.StockCategory]*CategorySummary)
	for i := range items {
		item := &items[i]
		s, ok := byCategory[item.Category]
		if !ok {
			s = &CategorySummary{Category: item.Category}
			byCategory[item.Category] = s
		}
		s.TotalItems++
		s.TotalStock += item.CurrentStock
		low := item.IsLowStock()
		if low {
			s.LowStockItems++
		}
		s.Items = append(s.Items, ItemSummary{
			Name:         item.Name,
			CurrentStock: item.CurrentStock,
			Threshold:    item.Threshold,
			IsLowStock:   low,
		})
	}

	summaries := make([]CategorySummary, 0, len(byCategory))
	for _, c := range models.StockCategories {
		if s, ok := byCategory[c]; ok {
			summaries = append(summaries, *s)
		}
	}
	return summaries, nil
}
