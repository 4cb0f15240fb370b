package models

import "time"

// PizzaCategory classifies a menu pizza by dietary type
type PizzaCategory string

const (
	CategoryVegetarian    PizzaCategory = "vegetarian"
	CategoryNonVegetarian PizzaCategory = "non-vegetarian"
	CategoryVegan         PizzaCategory = "vegan"
)

// ValidPizzaCategory reports whether s is one of the known menu categories.
func ValidPizzaCategory(s string) bool {
	switch PizzaCategory(s) {
	case CategoryVegetarian, CategoryNonVegetarian, CategoryVegan:
		return true
	}
	return false
}

type Pizza struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	Name        string        `json:"name" gorm:"uniqueIndex;not null"`
	Description string        `json:"description" gorm:"not null"`
	Image       string        `json:"image" gorm:"not null"`
	BasePrice   float64       `json:"base_price" gorm:"not null"`
	Category    PizzaCategory `json:"category" gorm:"not null"`
	IsAvailable bool          `json:"is_available" gorm:"default:true"`
	Ingredients []Ingredient  `json:"ingredients,omitempty" gorm:"foreignKey:PizzaID"`
	Nutrition   Nutrition     `json:"nutrition" gorm:"embedded;embeddedPrefix:nutrition_"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Ingredient is informational: it describes the recipe, not the stock ledger
type Ingredient struct {
	ID       uint    `json:"id" gorm:"primaryKey"`
	PizzaID  uint    `json:"pizza_id" gorm:"not null"`
	Name     string  `json:"name" gorm:"not null"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
}

type Nutrition struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
}
