package routes

import (
	"pizza-delivery-api/handlers"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, h *handlers.Handler) {
	// ── Public routes ──────────────────────────────────────────────
	public := r.Group("/api")
	{
		// Auth
		public.POST("/auth/register", h.Register)
		public.POST("/auth/login", h.Login)
		public.GET("/auth/verify-email/:token", h.VerifyEmail)

		// Menu (no auth needed)
		public.GET("/pizza", h.ListPizzas)
		public.GET("/pizza/customization/options", h.CustomizationOptions)
		public.GET("/pizza/category/:category", h.PizzasByCategory)
		public.GET("/pizza/:id", h.GetPizza)

		// State machine info (great for docs/Postman)
		public.GET("/state-machine", h.StateMachineInfo)
	}

	// ── Authenticated routes ───────────────────────────────────────
	auth := r.Group("/api")
	auth.Use(h.Auth.Required())
	{
		auth.GET("/user/profile", h.GetProfile)
		auth.PUT("/user/profile", h.UpdateProfile)
		auth.PUT("/user/change-password", h.ChangePassword)

		// Orders
		auth.POST("/order", h.Auth.VerifiedRequired(), h.PlaceOrder)
		auth.GET("/order/my-orders", h.MyOrders)
		auth.GET("/order/:id", h.GetOrder)
		auth.DELETE("/order/:id", h.CancelOrder)
	}

	// ── Admin routes ───────────────────────────────────────────────
	admin := r.Group("/api")
	admin.Use(h.Auth.Required(), h.Auth.AdminRequired())
	{
		admin.GET("/order", h.ListOrders)
		admin.GET("/order/stats/dashboard", h.OrderStats)
		admin.PUT("/order/:id/status", h.UpdateOrderStatus)
		admin.PUT("/order/:id/payment-status", h.UpdatePaymentStatus)

		admin.POST("/pizza", h.CreatePizza)
		admin.PUT("/pizza/:id", h.UpdatePizza)
		admin.DELETE("/pizza/:id", h.DeletePizza)

		admin.GET("/admin/dashboard", h.Dashboard)
		admin.GET("/admin/users", h.ListUsers)
		admin.PUT("/admin/users/:id", h.UpdateUser)
		admin.DELETE("/admin/users/:id", h.DeleteUser)

		admin.GET("/admin/inventory", h.ListInventory)
		admin.POST("/admin/inventory", h.CreateInventory)
		admin.PUT("/admin/inventory/:id", h.UpdateInventory)
		admin.DELETE("/admin/inventory/:id", h.DeleteInventory)
		admin.POST("/admin/inventory/:id/restock", h.Restock)
	}
}
