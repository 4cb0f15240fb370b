package models

import "time"

// StockCategory groups inventory items by the customization slot they fill
type StockCategory string

const (
	StockBase   StockCategory = "base"
	StockSauce  StockCategory = "sauce"
	StockCheese StockCategory = "cheese"
	StockVeggie StockCategory = "veggies"
	StockMeat   StockCategory = "meat"
)

// StockCategories lists every category in dashboard display order.
var StockCategories = []StockCategory{StockBase, StockSauce, StockCheese, StockVeggie, StockMeat}

// ValidStockCategory reports whether s is a known inventory category.
func ValidStockCategory(s string) bool {
	switch StockCategory(s) {
	case StockBase, StockSauce, StockCheese, StockVeggie, StockMeat:
		return true
	}
	return false
}

// StockUnit is the unit of measure for an inventory item
type StockUnit string

const (
	UnitPieces StockUnit = "pieces"
	UnitKg     StockUnit = "kg"
	UnitLiters StockUnit = "liters"
	UnitGrams  StockUnit = "grams"
)

// ValidStockUnit reports whether s is a known unit of measure.
func ValidStockUnit(s string) bool {
	switch StockUnit(s) {
	case UnitPieces, UnitKg, UnitLiters, UnitGrams:
		return true
	}
	return false
}

// Supplier is informational contact data for reordering
type Supplier struct {
	Name    string `json:"name"`
	Contact string `json:"contact"`
	Email   string `json:"email"`
}

// InventoryItem is one stocked ingredient. Identity is the name+category pair:
// a "Mozzarella" base is distinct from a "Mozzarella" cheese.
type InventoryItem struct {
	ID            uint          `json:"id" gorm:"primaryKey"`
	Name          string        `json:"name" gorm:"not null;uniqueIndex:idx_inventory_name_category"`
	Category      StockCategory `json:"category" gorm:"not null;uniqueIndex:idx_inventory_name_category"`
	CurrentStock  float64       `json:"current_stock" gorm:"not null"`
	MaxStock      float64       `json:"max_stock" gorm:"not null"`
	Threshold     float64       `json:"threshold" gorm:"not null"`
	Unit          StockUnit     `json:"unit" gorm:"not null"`
	Price         float64       `json:"price" gorm:"not null"`
	IsAvailable   bool          `json:"is_available" gorm:"default:true"`
	LastRestocked time.Time     `json:"last_restocked"`
	Supplier      Supplier      `json:"supplier" gorm:"embedded;embeddedPrefix:supplier_"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// IsLowStock is true when the item sits at or below its reorder threshold.
func (i *InventoryItem) IsLowStock() bool {
	return i.CurrentStock <= i.Threshold
}
