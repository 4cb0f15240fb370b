// Package seed populates a fresh database with an admin account, the menu
// and the inventory ledger. Seeding is idempotent: existing rows are kept.
package seed

import (
	"log"
	"time"

	"pizza-delivery-api/models"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func Run(db *gorm.DB) error {
	if err := seedAdmin(db); err != nil {
		return err
	}
	if err := seedPizzas(db); err != nil {
		return err
	}
	if err := seedInventory(db); err != nil {
		return err
	}
	log.Println("database seeding complete")
	return nil
}

func seedAdmin(db *gorm.DB) error {
	var existing models.User
	if err := db.Where("email = ?", "admin@pizzadelivery.com").First(&existing).Error; err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Name:            "Admin User",
		Email:           "admin@pizzadelivery.com",
		PasswordHash:    string(hash),
		Role:            models.RoleAdmin,
		Phone:           "9876543210",
		IsEmailVerified: true,
		Address: models.Address{
			Street: "Admin Street", City: "Admin City", State: "Admin State", ZipCode: "123456",
		},
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	log.Println("seed: admin user created")
	return nil
}

func seedPizzas(db *gorm.DB) error {
	var count int64
	db.Model(&models.Pizza{}).Count(&count)
	if count > 0 {
		return nil
	}

	pizzas := []models.Pizza{
		{
			Name:        "Margherita",
			Description: "Classic tomato sauce with mozzarella cheese and fresh basil",
			Image:       "https://images.unsplash.com/photo-1604382354936-07c5d9983bd3?w=400",
			BasePrice:   299,
			Category:    models.CategoryVegetarian,
			IsAvailable: true,
			Ingredients: []models.Ingredient{
				{Name: "Tomato Sauce", Quantity: 100, Unit: "ml"},
				{Name: "Mozzarella Cheese", Quantity: 150, Unit: "grams"},
				{Name: "Fresh Basil", Quantity: 10, Unit: "grams"},
			},
			Nutrition: models.Nutrition{Calories: 266, Protein: 11, Carbs: 33, Fat: 10},
		},
		{
			Name:        "Pepperoni",
			Description: "Spicy pepperoni with mozzarella cheese and tomato sauce",
			Image:       "https://images.unsplash.com/photo-1628840042765-356cda07504e?w=400",
			BasePrice:   399,
			Category:    models.CategoryNonVegetarian,
			IsAvailable: true,
			Ingredients: []models.Ingredient{
				{Name: "Tomato Sauce", Quantity: 100, Unit: "ml"},
				{Name: "Mozzarella Cheese", Quantity: 150, Unit: "grams"},
				{Name: "Pepperoni", Quantity: 80, Unit: "grams"},
			},
			Nutrition: models.Nutrition{Calories: 312, Protein: 14, Carbs: 33, Fat: 15},
		},
		{
			Name:        "Veggie Supreme",
			Description: "Loaded with fresh vegetables and mozzarella cheese",
			Image:       "https://images.unsplash.com/photo-1513104890138-7c749659a591?w=400",
			BasePrice:   349,
			Category:    models.CategoryVegetarian,
			IsAvailable: true,
			Ingredients: []models.Ingredient{
				{Name: "Tomato Sauce", Quantity: 100, Unit: "ml"},
				{Name: "Mozzarella Cheese", Quantity: 150, Unit: "grams"},
				{Name: "Bell Peppers", Quantity: 50, Unit: "grams"},
				{Name: "Mushrooms", Quantity: 40, Unit: "grams"},
				{Name: "Onions", Quantity: 30, Unit: "grams"},
				{Name: "Olives", Quantity: 20, Unit: "grams"},
			},
			Nutrition: models.Nutrition{Calories: 245, Protein: 10, Carbs: 35, Fat: 8},
		},
		{
			Name:        "BBQ Chicken",
			Description: "BBQ sauce with grilled chicken and red onions",
			Image:       "https://images.unsplash.com/photo-1565299624946-b28f40a0ca4b?w=400",
			BasePrice:   449,
			Category:    models.CategoryNonVegetarian,
			IsAvailable: true,
			Ingredients: []models.Ingredient{
				{Name: "BBQ Sauce", Quantity: 100, Unit: "ml"},
				{Name: "Mozzarella Cheese", Quantity: 150, Unit: "grams"},
				{Name: "Grilled Chicken", Quantity: 100, Unit: "grams"},
				{Name: "Onions", Quantity: 30, Unit: "grams"},
			},
			Nutrition: models.Nutrition{Calories: 340, Protein: 18, Carbs: 34, Fat: 14},
		},
		{
			Name:        "Vegan Delight",
			Description: "Plant-based cheese with roasted vegetables",
			Image:       "https://images.unsplash.com/photo-1511689660979-10d2b1aada49?w=400",
			BasePrice:   379,
			Category:    models.CategoryVegan,
			IsAvailable: true,
			Ingredients: []models.Ingredient{
				{Name: "Tomato Sauce", Quantity: 100, Unit: "ml"},
				{Name: "Vegan Cheese", Quantity: 120, Unit: "grams"},
				{Name: "Zucchini", Quantity: 40, Unit: "grams"},
				{Name: "Cherry Tomatoes", Quantity: 40, Unit: "grams"},
			},
			Nutrition: models.Nutrition{Calories: 230, Protein: 8, Carbs: 36, Fat: 7},
		},
	}

	if err := db.Create(&pizzas).Error; err != nil {
		return err
	}
	log.Printf("seed: %d pizzas created", len(pizzas))
	return nil
}

func seedInventory(db *gorm.DB) error {
	var count int64
	db.Model(&models.InventoryItem{}).Count(&count)
	if count > 0 {
		return nil
	}

	now := time.Now()
	supplier := models.Supplier{
		Name: "Fresh Foods Co", Contact: "9123456780", Email: "orders@freshfoods.example",
	}

	items := []models.InventoryItem{
		{Name: "Thin Crust", Category: models.StockBase, CurrentStock: 100, MaxStock: 200, Threshold: 20, Unit: models.UnitPieces, Price: 0},
		{Name: "Thick Crust", Category: models.StockBase, CurrentStock: 80, MaxStock: 150, Threshold: 20, Unit: models.UnitPieces, Price: 20},
		{Name: "Cheese Burst", Category: models.StockBase, CurrentStock: 60, MaxStock: 120, Threshold: 15, Unit: models.UnitPieces, Price: 60},
		{Name: "Tomato Sauce", Category: models.StockSauce, CurrentStock: 50, MaxStock: 100, Threshold: 10, Unit: models.UnitLiters, Price: 0},
		{Name: "BBQ Sauce", Category: models.StockSauce, CurrentStock: 30, MaxStock: 60, Threshold: 8, Unit: models.UnitLiters, Price: 30},
		{Name: "Pesto Sauce", Category: models.StockSauce, CurrentStock: 20, MaxStock: 40, Threshold: 5, Unit: models.UnitLiters, Price: 40},
		{Name: "Mozzarella", Category: models.StockCheese, CurrentStock: 40, MaxStock: 80, Threshold: 10, Unit: models.UnitKg, Price: 0},
		{Name: "Cheddar", Category: models.StockCheese, CurrentStock: 25, MaxStock: 50, Threshold: 8, Unit: models.UnitKg, Price: 40},
		{Name: "Vegan Cheese", Category: models.StockCheese, CurrentStock: 15, MaxStock: 30, Threshold: 5, Unit: models.UnitKg, Price: 60},
		{Name: "Bell Peppers", Category: models.StockVeggie, CurrentStock: 30, MaxStock: 60, Threshold: 8, Unit: models.UnitKg, Price: 25},
		{Name: "Mushrooms", Category: models.StockVeggie, CurrentStock: 25, MaxStock: 50, Threshold: 8, Unit: models.UnitKg, Price: 30},
		{Name: "Onions", Category: models.StockVeggie, CurrentStock: 40, MaxStock: 80, Threshold: 10, Unit: models.UnitKg, Price: 15},
		{Name: "Olives", Category: models.StockVeggie, CurrentStock: 20, MaxStock: 40, Threshold: 6, Unit: models.UnitKg, Price: 35},
		{Name: "Jalapenos", Category: models.StockVeggie, CurrentStock: 18, MaxStock: 35, Threshold: 6, Unit: models.UnitKg, Price: 30},
		{Name: "Pepperoni", Category: models.StockMeat, CurrentStock: 20, MaxStock: 40, Threshold: 6, Unit: models.UnitKg, Price: 60},
		{Name: "Grilled Chicken", Category: models.StockMeat, CurrentStock: 25, MaxStock: 50, Threshold: 8, Unit: models.UnitKg, Price: 70},
		{Name: "Italian Sausage", Category: models.StockMeat, CurrentStock: 15, MaxStock: 30, Threshold: 5, Unit: models.UnitKg, Price: 80},
	}
	for i := range items {
		items[i].IsAvailable = true
		items[i].LastRestocked = now
		items[i].Supplier = supplier
	}

	if err := db.Create(&items).Error; err != nil {
		return err
	}
	log.Printf("seed: %d inventory items created", len(items))
	return nil
}
