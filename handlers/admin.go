package handlers

import (
	"net/http"
	"strconv"
	"time"

	"pizza-delivery-api/apperr"
	"pizza-delivery-api/models"

	"github.com/gin-gonic/gin"
)

// Dashboard aggregates order stats and the inventory summary (admin only)
func (h *Handler) Dashboard(c *gin.Context) {
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var totalUsers, totalOrders, todayOrders, pendingOrders int64
	h.DB.Model(&models.User{}).Where("role = ?", models.RoleUser).Count(&totalUsers)
	h.DB.Model(&models.Order{}).Count(&totalOrders)
	h.DB.Model(&models.Order{}).Where("created_at >= ?", startOfDay).Count(&todayOrders)
	h.DB.Model(&models.Order{}).Where("status = ?", models.StatusPending).Count(&pendingOrders)

	var totalRevenue float64
	h.DB.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentCompleted).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue)

	summary, err := h.Ledger.Summarize(c.Request.Context())
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total_users":       totalUsers,
		"total_orders":      totalOrders,
		"today_orders":      todayOrders,
		"pending_orders":    pendingOrders,
		"total_revenue":     totalRevenue,
		"inventory_summary": summary,
	})
}

// ListUsers returns customer accounts with pagination and search (admin only)
func (h *Handler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := h.DB.Model(&models.User{}).Where("role = ?", models.RoleUser)
	if search := c.Query("search"); search != "" {
		query = query.Where("name LIKE ? OR email LIKE ?", "%"+search+"%", "%"+search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondErr(c, apperr.Storage("Failed to count users", err))
		return
	}

	var users []models.User
	if err := query.Order("created_at desc").Limit(limit).Offset((page - 1) * limit).Find(&users).Error; err != nil {
		respondErr(c, apperr.Storage("Failed to load users", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":        users,
		"total":        total,
		"current_page": page,
		"total_pages":  (total + int64(limit) - 1) / int64(limit),
	})
}

type AdminUpdateUserRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email" binding:"omitempty,email"`
	Phone           string `json:"phone"`
	IsEmailVerified *bool  `json:"is_email_verified"`
}

// UpdateUser edits a customer account (admin only)
func (h *Handler) UpdateUser(c *gin.Context) {
	var req AdminUpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var user models.User
	if err := h.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.Email != "" {
		user.Email = req.Email
	}
	if req.Phone != "" {
		user.Phone = req.Phone
	}
	if req.IsEmailVerified != nil {
		user.IsEmailVerified = *req.IsEmailVerified
	}

	if err := h.DB.Save(&user).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"user": user})
}

// DeleteUser removes a customer account (admin only)
func (h *Handler) DeleteUser(c *gin.Context) {
	var user models.User
	if err := h.DB.First(&user, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}
	h.DB.Delete(&user)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}

// ListInventory returns stock items with pagination and category filter (admin only)
func (h *Handler) ListInventory(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := h.DB.Model(&models.InventoryItem{})
	if category := c.Query("category"); category != "" {
		if !models.ValidStockCategory(category) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown inventory category"})
			return
		}
		query = query.Where("category = ?", category)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondErr(c, apperr.Storage("Failed to count inventory", err))
		return
	}

	var items []models.InventoryItem
	if err := query.Order("category, name").Limit(limit).Offset((page - 1) * limit).Find(&items).Error; err != nil {
		respondErr(c, apperr.Storage("Failed to load inventory", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"inventory":    items,
		"total":        total,
		"current_page": page,
		"total_pages":  (total + int64(limit) - 1) / int64(limit),
	})
}

type InventoryRequest struct {
	Name         string          `json:"name" binding:"required"`
	Category     string          `json:"category" binding:"required"`
	CurrentStock float64         `json:"current_stock" binding:"min=0"`
	MaxStock     float64         `json:"max_stock" binding:"min=0"`
	Threshold    float64         `json:"threshold" binding:"min=0"`
	Unit         string          `json:"unit" binding:"required"`
	Price        float64         `json:"price" binding:"min=0"`
	IsAvailable  *bool           `json:"is_available"`
	Supplier     models.Supplier `json:"supplier"`
}

// CreateInventory adds a stock item (admin only)
func (h *Handler) CreateInventory(c *gin.Context) {
	var req InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStockCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category must be base, sauce, cheese, veggies or meat"})
		return
	}
	if !models.ValidStockUnit(req.Unit) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unit must be pieces, kg, liters or grams"})
		return
	}

	item := models.InventoryItem{
		Name:          req.Name,
		Category:      models.StockCategory(req.Category),
		CurrentStock:  req.CurrentStock,
		MaxStock:      req.MaxStock,
		Threshold:     req.Threshold,
		Unit:          models.StockUnit(req.Unit),
		Price:         req.Price,
		IsAvailable:   true,
		LastRestocked: time.Now(),
		Supplier:      req.Supplier,
	}
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := h.DB.Create(&item).Error; err != nil {
		c.JSON(http.StatusConflict, gin.H{"error": "An item with this name already exists in this category"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"item": item})
}

// UpdateInventory edits a stock item's metadata (admin only). Stock levels
// are changed through restock or order settlement, not through this endpoint.
func (h *Handler) UpdateInventory(c *gin.Context) {
	var item models.InventoryItem
	if err := h.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}

	var req InventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidStockCategory(req.Category) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Category must be base, sauce, cheese, veggies or meat"})
		return
	}
	if !models.ValidStockUnit(req.Unit) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unit must be pieces, kg, liters or grams"})
		return
	}

	item.Name = req.Name
	item.Category = models.StockCategory(req.Category)
	item.MaxStock = req.MaxStock
	item.Threshold = req.Threshold
	item.Unit = models.StockUnit(req.Unit)
	item.Price = req.Price
	item.Supplier = req.Supplier
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}

	if err := h.DB.Save(&item).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update inventory item"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}

// DeleteInventory removes a stock item (admin only)
func (h *Handler) DeleteInventory(c *gin.Context) {
	var item models.InventoryItem
	if err := h.DB.First(&item, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Inventory item not found"})
		return
	}
	h.DB.Delete(&item)
	c.JSON(http.StatusOK, gin.H{"message": "Inventory item deleted successfully"})
}

type RestockRequest struct {
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
}

// Restock increments a stock item's quantity (admin only)
func (h *Handler) Restock(c *gin.Context) {
	var req RestockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid quantity"})
		return
	}

	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid inventory id"})
		return
	}

	item, err := h.Ledger.UpdateStock(c.Request.Context(), uint(id), req.Quantity)
	if err != nil {
		respondErr(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": item})
}
