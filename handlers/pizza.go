package handlers

import (
	"net/http"

	"pizza-delivery-api/apperr"
	"pizza-delivery-api/models"

	"github.com/gin-gonic/gin"
)

// ListPizzas returns all available pizzas (public)
func (h *Handler) ListPizzas(c *gin.Context) {
	var pizzas []models.Pizza
	query := h.DB.Preload("Ingredients").Where("is_available = ?", true)

	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ?", "%"+search+"%")
	}

	if err := query.Find(&pizzas).Error; err != nil {
		respondErr(c, apperr.Storage("Failed to load pizzas", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(pizzas), "pizzas": pizzas})
}

// GetPizza returns a single pizza (public)
func (h *Handler) GetPizza(c *gin.Context) {
	var pizza models.Pizza
	if err := h.DB.Preload("Ingredients").First(&pizza, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pizza not found"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pizza": pizza})
}

// PizzasByCategory lists available pizzas in one dietary category (public)
func (h *Handler) PizzasByCategory(c *gin.Context) {
	category := c.Param("category")
	if !models.ValidPizzaCategory(category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category must be vegetarian, non-vegetarian or vegan"})
		return
	}

	var pizzas []models.Pizza
	if err := h.DB.Preload("Ingredients").
		Where("category = ? AND is_available = ?", category, true).
		Find(&pizzas).Error; err != nil {
		respondErr(c, apperr.Storage("Failed to load pizzas", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(pizzas), "pizzas": pizzas})
}

// CustomizationOptions lists the in-stock choices per slot (public).
// Only items that are available and have stock on hand are offered.
func (h *Handler) CustomizationOptions(c *gin.Context) {
	options := gin.H{}
	keys := map[models.StockCategory]string{
		models.StockBase:   "bases",
		models.StockSauce:  "sauces",
		models.StockCheese: "cheeses",
		models.StockVeggie: "veggies",
		models.StockMeat:   "meat",
	}

	for _, category := range models.StockCategories {
		var items []models.InventoryItem
		if err := h.DB.
			Where("category = ? AND is_available = ? AND current_stock > 0", category, true).
			Order("name").
			Find(&items).Error; err != nil {
			respondErr(c, apperr.Storage("Failed to load customization options", err))
			return
		}
		options[keys[category]] = items
	}

	c.JSON(http.StatusOK, options)
}

type PizzaRequest struct {
	Name        string              `json:"name" binding:"required"`
	Description string              `json:"description" binding:"required"`
	Image       string              `json:"image" binding:"required"`
	BasePrice   float64             `json:"base_price" binding:"required,min=0"`
	Category    string              `json:"category" binding:"required"`
	IsAvailable *bool               `json:"is_available"`
	Ingredients []models.Ingredient `json:"ingredients"`
	Nutrition   models.Nutrition    `json:"nutrition"`
}

// CreatePizza adds a menu pizza (admin only)
func (h *Handler) CreatePizza(c *gin.Context) {
	var req PizzaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidPizzaCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category must be vegetarian, non-vegetarian or vegan"})
		return
	}

	pizza := models.Pizza{
		Name:        req.Name,
		Description: req.Description,
		Image:       req.Image,
		BasePrice:   req.BasePrice,
		Category:    models.PizzaCategory(req.Category),
		IsAvailable: true,
		Ingredients: req.Ingredients,
		Nutrition:   req.Nutrition,
	}
	if req.IsAvailable != nil {
		pizza.IsAvailable = *req.IsAvailable
	}

	if err := h.DB.Create(&pizza).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "A pizza with this name already exists"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"pizza": pizza})
}

// UpdatePizza edits a menu pizza (admin only)
func (h *Handler) UpdatePizza(c *gin.Context) {
	var pizza models.Pizza
	if err := h.DB.First(&pizza, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pizza not found"})
		return
	}

	var req PizzaRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidPizzaCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category must be vegetarian, non-vegetarian or vegan"})
		return
	}

	pizza.Name = req.Name
	pizza.Description = req.Description
	pizza.Image = req.Image
	pizza.BasePrice = req.BasePrice
	pizza.Category = models.PizzaCategory(req.Category)
	pizza.Nutrition = req.Nutrition
	if req.IsAvailable != nil {
		pizza.IsAvailable = *req.IsAvailable
	}

	if err := h.DB.Save(&pizza).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pizza"})
		return
	}

	if req.Ingredients != nil {
		h.DB.Where("pizza_id = ?", pizza.ID).Delete(&models.Ingredient{})
		for i := range req.Ingredients {
			req.Ingredients[i].PizzaID = pizza.ID
		}
		h.DB.Create(&req.Ingredients)
	}

	c.JSON(http.StatusOK, gin.H{"pizza": pizza})
}

// DeletePizza removes a menu pizza (admin only)
func (h *Handler) DeletePizza(c *gin.Context) {
	var pizza models.Pizza
	if err := h.DB.First(&pizza, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Pizza not found"})
		return
	}
	h.DB.Where("pizza_id = ?", pizza.ID).Delete(&models.Ingredient{})
	h.DB.Delete(&pizza)
	c.JSON(http.StatusOK, gin.H{"message": "Pizza deleted successfully"})
}
