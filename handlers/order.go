package handlers

import (
	"log"
	"net/http"
	"strconv"
	"time"

	"pizza-delivery-api/apperr"
	"pizza-delivery-api/middleware"
	"pizza-delivery-api/models"
	"pizza-delivery-api/settlement"
	"pizza-delivery-api/statemachine"

	"github.com/gin-gonic/gin"
)

type PlaceOrderRequest struct {
	Items               []settlement.OrderItemInput `json:"items" binding:"required,min=1,dive"`
	DeliveryAddress     models.DeliveryAddress      `json:"delivery_address" binding:"required"`
	SpecialInstructions string                      `json:"special_instructions"`
	PaymentMethod       string                      `json:"payment_method" binding:"required"`
}

// PlaceOrder creates a new order (verified users only)
func (h *Handler) PlaceOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)

	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	order, err := h.Workflow.PlaceOrder(c.Request.Context(), userID, settlement.OrderInput{
		Items:               req.Items,
		DeliveryAddress:     req.DeliveryAddress,
		SpecialInstructions: req.SpecialInstructions,
		PaymentMethod:       models.PaymentMethod(req.PaymentMethod),
	})
	if err != nil {
		respondErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Order placed successfully",
		"order":   order,
	})
}

// MyOrders returns all orders for the logged-in user
func (h *Handler) MyOrders(c *gin.Context) {
	userID := middleware.GetUserID(c)
	var orders []models.Order
	if err := h.DB.Preload("Items.Pizza").Preload("Items.Addons").
		Where("user_id = ?", userID).
		Order("created_at desc").
		Find(&orders).Error; err != nil {
		respondErr(c, apperr.Storage("Failed to load orders", err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"count": len(orders), "orders": orders})
}

// GetOrder returns one order; visible to its owner or to an admin
func (h *Handler) GetOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var order models.Order
	if err := h.DB.
		Preload("Items.Pizza").Preload("Items.Addons").Preload("User").
		First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}
	if order.UserID != userID && role != models.RoleAdmin {
		respondErr(c, apperr.Authorization("Not authorized to view this order"))
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// CancelOrder cancels the caller's own order, allowed only while pending
func (h *Handler) CancelOrder(c *gin.Context) {
	userID := middleware.GetUserID(c)
	role := middleware.GetRole(c)

	var order models.Order
	if err := h.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	actor := "customer"
	if role == models.RoleAdmin {
		actor = "admin"
	} else if order.UserID != userID {
		respondErr(c, apperr.Authorization("Not authorized to cancel this order"))
		return
	}

	if err := statemachine.CanTransition(order.Status, models.StatusCancelled, actor); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":          "Order cannot be cancelled at this stage",
			"current_status": order.Status,
		})
		return
	}

	h.DB.Model(&order).Update("status", models.StatusCancelled)
	c.JSON(http.StatusOK, gin.H{"message": "Order cancelled successfully", "order_id": order.ID})
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateOrderStatus moves an order forward through its lifecycle (admin only)
func (h *Handler) UpdateOrderStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := h.DB.Preload("User").First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := statemachine.CanTransition(order.Status, req.Status, "admin"); err != nil {
		c.JSON(http.StatusConflict, gin.H{
			"error":             "Invalid state transition",
			"current_status":    order.Status,
			"requested":         req.Status,
			"valid_next_states": statemachine.ValidTransitionsFrom(order.Status),
		})
		return
	}

	updates := map[string]interface{}{"status": req.Status}
	if req.Status == models.StatusDelivered {
		updates["actual_delivery_time"] = time.Now()
	}
	prevStatus := order.Status
	h.DB.Model(&order).Updates(updates)

	// Status mail is best-effort; a delivery failure never fails the update.
	if err := h.Notifier.OrderStatus(c.Request.Context(), order.User.Email, order.OrderNumber, req.Status); err != nil {
		log.Printf("orders: status notification failed for %s: %v", order.OrderNumber, err)
	}

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"order_id":        order.ID,
		"previous_status": prevStatus,
		"current_status":  req.Status,
	})
}

type UpdatePaymentStatusRequest struct {
	PaymentStatus    models.PaymentStatus `json:"payment_status" binding:"required"`
	GatewayOrderID   string               `json:"gateway_order_id"`
	GatewayPaymentID string               `json:"gateway_payment_id"`
}

// UpdatePaymentStatus is the payment collaborator's callback. It runs the
// payment state machine independently of order status; by business convention
// a completed payment also confirms a still-pending order.
func (h *Handler) UpdatePaymentStatus(c *gin.Context) {
	var req UpdatePaymentStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var order models.Order
	if err := h.DB.First(&order, c.Param("id")).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
		return
	}

	if err := statemachine.CanTransitionPayment(order.PaymentStatus, req.PaymentStatus); err != nil {
		respondErr(c, err)
		return
	}

	updates := map[string]interface{}{"payment_status": req.PaymentStatus}
	if req.GatewayOrderID != "" {
		updates["gateway_order_id"] = req.GatewayOrderID
	}
	if req.GatewayPaymentID != "" {
		updates["gateway_payment_id"] = req.GatewayPaymentID
	}
	if req.PaymentStatus == models.PaymentCompleted && order.Status == models.StatusPending {
		updates["status"] = models.StatusConfirmed
	}
	h.DB.Model(&order).Updates(updates)

	h.DB.First(&order, order.ID)
	c.JSON(http.StatusOK, gin.H{"order": order})
}

// ListOrders returns all orders with pagination and status filter (admin only)
func (h *Handler) ListOrders(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}

	query := h.DB.Model(&models.Order{})
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		respondErr(c, apperr.Storage("Failed to count orders", err))
		return
	}

	var orders []models.Order
	if err := query.Preload("Items.Pizza").Preload("Items.Addons").Preload("User").
		Order("created_at desc").
		Limit(limit).Offset((page - 1) * limit).
		Find(&orders).Error; err != nil {
		respondErr(c, apperr.Storage("Failed to load orders", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"orders":       orders,
		"total":        total,
		"current_page": page,
		"total_pages":  (total + int64(limit) - 1) / int64(limit),
	})
}

// OrderStats returns order counts and revenue for the dashboard (admin only)
func (h *Handler) OrderStats(c *gin.Context) {
	now := time.Now().UTC()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)

	var totalOrders, todayOrders, pendingOrders, completedOrders int64
	h.DB.Model(&models.Order{}).Count(&totalOrders)
	h.DB.Model(&models.Order{}).Where("created_at >= ?", startOfDay).Count(&todayOrders)
	h.DB.Model(&models.Order{}).Where("status = ?", models.StatusPending).Count(&pendingOrders)
	h.DB.Model(&models.Order{}).Where("status = ?", models.StatusDelivered).Count(&completedOrders)

	var totalRevenue float64
	h.DB.Model(&models.Order{}).
		Where("payment_status = ?", models.PaymentCompleted).
		Select("COALESCE(SUM(total), 0)").
		Scan(&totalRevenue)

	c.JSON(http.StatusOK, gin.H{
		"total_orders":     totalOrders,
		"today_orders":     todayOrders,
		"pending_orders":   pendingOrders,
		"completed_orders": completedOrders,
		"total_revenue":    totalRevenue,
	})
}
