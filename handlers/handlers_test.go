package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"pizza-delivery-api/config"
	"pizza-delivery-api/handlers"
	"pizza-delivery-api/inventory"
	"pizza-delivery-api/middleware"
	"pizza-delivery-api/models"
	"pizza-delivery-api/notify"
	"pizza-delivery-api/routes"
	"pizza-delivery-api/settlement"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	auth   *middleware.Auth
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := config.OpenDB(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)

	cfg := &config.Config{
		JWTSecret:         []byte("test-secret"),
		TaxRate:           0.05,
		FreeDeliveryAbove: 500,
		DeliveryFee:       50,
	}
	notifier := notify.LogNotifier{}
	ledger := inventory.NewLedger(db)
	workflow := settlement.NewWorkflow(db, ledger, notifier, settlement.Pricing{
		TaxRate:           cfg.TaxRate,
		FreeDeliveryAbove: cfg.FreeDeliveryAbove,
		DeliveryFee:       cfg.DeliveryFee,
	})
	auth := middleware.NewAuth(cfg.JWTSecret, db)
	h := handlers.New(db, cfg, auth, ledger, workflow, notifier)

	router := gin.New()
	routes.SetupRoutes(router, h)
	return &testApp{router: router, db: db, auth: auth}
}

func (a *testApp) createUser(t *testing.T, email string, role models.UserRole, verified bool) (models.User, string) {
	t.Helper()
	user := models.User{
		Name: "Test User", Email: email, PasswordHash: "x",
		Role: role, IsEmailVerified: verified,
	}
	require.NoError(t, a.db.Create(&user).Error)
	token, err := a.auth.GenerateToken(&user)
	require.NoError(t, err)
	return user, token
}

func (a *testApp) createOrder(t *testing.T, userID uint, status models.OrderStatus) models.Order {
	t.Helper()
	order := models.Order{
		OrderNumber:   settlement.NextOrderNumber(time.Now(), int64(time.Now().UnixNano()%1000)),
		UserID:        userID,
		Status:        status,
		PaymentStatus: models.PaymentPending,
		PaymentMethod: models.MethodCashOnDelivery,
		Subtotal:      400, Tax: 20, DeliveryFee: 50, Total: 470,
	}
	require.NoError(t, a.db.Create(&order).Error)
	return order
}

func (a *testApp) do(method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func TestCancelPendingOrder(t *testing.T) {
	app := newTestApp(t)
	user, token := app.createUser(t, "u@example.com", models.RoleUser, true)
	order := app.createOrder(t, user.ID, models.StatusPending)

	w := app.do("DELETE", "/api/order/1", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.Order
	require.NoError(t, app.db.First(&got, order.ID).Error)
	assert.Equal(t, models.StatusCancelled, got.Status)
}

func TestCancelConfirmedOrderRejected(t *testing.T) {
	app := newTestApp(t)
	user, token := app.createUser(t, "u@example.com", models.RoleUser, true)
	order := app.createOrder(t, user.ID, models.StatusConfirmed)

	w := app.do("DELETE", "/api/order/1", token, nil)
	assert.Equal(t, http.StatusConflict, w.Code)

	var got models.Order
	require.NoError(t, app.db.First(&got, order.ID).Error)
	assert.Equal(t, models.StatusConfirmed, got.Status)
}

func TestCancelSomeoneElsesOrder(t *testing.T) {
	app := newTestApp(t)
	owner, _ := app.createUser(t, "owner@example.com", models.RoleUser, true)
	_, token := app.createUser(t, "other@example.com", models.RoleUser, true)
	app.createOrder(t, owner.ID, models.StatusPending)

	w := app.do("DELETE", "/api/order/1", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"authorization_error"`)
}

func TestPlaceOrderRequiresVerifiedEmail(t *testing.T) {
	app := newTestApp(t)
	_, token := app.createUser(t, "unverified@example.com", models.RoleUser, false)

	w := app.do("POST", "/api/order", token, gin.H{
		"items":          []gin.H{},
		"payment_method": "cod",
	})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

// A token issued at registration must become usable for ordering once the
// email is verified; no re-login should be needed.
func TestOrderWithTokenIssuedBeforeVerification(t *testing.T) {
	app := newTestApp(t)

	w := app.do("POST", "/api/auth/register", "", gin.H{
		"name":     "New User",
		"email":    "new@example.com",
		"password": "secret123",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))

	// Still unverified: ordering is rejected.
	w = app.do("POST", "/api/order", reg.Token, gin.H{
		"items":          []gin.H{},
		"payment_method": "cod",
	})
	require.Equal(t, http.StatusForbidden, w.Code)

	var user models.User
	require.NoError(t, app.db.Where("email = ?", "new@example.com").First(&user).Error)
	w = app.do("GET", "/api/auth/verify-email/"+user.VerifyToken, "", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	pizza := models.Pizza{
		Name: "Margherita", Description: "d", Image: "i",
		BasePrice: 299, Category: models.CategoryVegetarian, IsAvailable: true,
	}
	require.NoError(t, app.db.Create(&pizza).Error)

	// Same token, now-verified account: order goes through.
	w = app.do("POST", "/api/order", reg.Token, gin.H{
		"items": []gin.H{{
			"pizza_id": pizza.ID,
			"base":     gin.H{"name": "Thin Crust", "price": 0},
			"sauce":    gin.H{"name": "Tomato Sauce", "price": 0},
			"cheese":   gin.H{"name": "Mozzarella", "price": 0},
			"quantity": 1,
		}},
		"delivery_address": gin.H{"street": "1 Main St", "city": "Pune"},
		"payment_method":   "cod",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
}

func TestPlaceOrderEndToEnd(t *testing.T) {
	app := newTestApp(t)
	_, token := app.createUser(t, "verified@example.com", models.RoleUser, true)

	pizza := models.Pizza{
		Name: "Margherita", Description: "d", Image: "i",
		BasePrice: 299, Category: models.CategoryVegetarian, IsAvailable: true,
	}
	require.NoError(t, app.db.Create(&pizza).Error)

	w := app.do("POST", "/api/order", token, gin.H{
		"items": []gin.H{{
			"pizza_id": pizza.ID,
			"base":     gin.H{"name": "Thin Crust", "price": 0},
			"sauce":    gin.H{"name": "Tomato Sauce", "price": 0},
			"cheese":   gin.H{"name": "Mozzarella", "price": 0},
			"quantity": 1,
		}},
		"delivery_address": gin.H{"street": "1 Main St", "city": "Pune"},
		"payment_method":   "cod",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var resp struct {
		Order models.Order `json:"order"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusPending, resp.Order.Status)
	assert.Equal(t, 299.0, resp.Order.Subtotal)
	assert.Equal(t, 14.95, resp.Order.Tax)
	assert.Equal(t, 50.0, resp.Order.DeliveryFee)
	assert.Equal(t, 363.95, resp.Order.Total)
}

func TestRestockAdminOnly(t *testing.T) {
	app := newTestApp(t)
	_, userToken := app.createUser(t, "u@example.com", models.RoleUser, true)
	_, adminToken := app.createUser(t, "a@example.com", models.RoleAdmin, true)

	item := models.InventoryItem{
		Name: "Mozzarella", Category: models.StockCheese,
		CurrentStock: 5, MaxStock: 50, Threshold: 10,
		Unit: models.UnitKg, IsAvailable: true,
	}
	require.NoError(t, app.db.Create(&item).Error)

	w := app.do("POST", "/api/admin/inventory/1/restock", userToken, gin.H{"quantity": 10})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = app.do("POST", "/api/admin/inventory/1/restock", adminToken, gin.H{"quantity": 10})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.InventoryItem
	require.NoError(t, app.db.First(&got, item.ID).Error)
	assert.Equal(t, 15.0, got.CurrentStock)
}

func TestPaymentCompletionConfirmsOrder(t *testing.T) {
	app := newTestApp(t)
	user, _ := app.createUser(t, "u@example.com", models.RoleUser, true)
	_, adminToken := app.createUser(t, "a@example.com", models.RoleAdmin, true)
	order := app.createOrder(t, user.ID, models.StatusPending)

	w := app.do("PUT", "/api/order/1/payment-status", adminToken, gin.H{
		"payment_status":     "completed",
		"gateway_payment_id": "pay_123",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got models.Order
	require.NoError(t, app.db.First(&got, order.ID).Error)
	assert.Equal(t, models.PaymentCompleted, got.PaymentStatus)
	assert.Equal(t, models.StatusConfirmed, got.Status)
	assert.Equal(t, "pay_123", got.GatewayPaymentID)
}

func TestPaymentRefundRequiresCompleted(t *testing.T) {
	app := newTestApp(t)
	user, _ := app.createUser(t, "u@example.com", models.RoleUser, true)
	_, adminToken := app.createUser(t, "a@example.com", models.RoleAdmin, true)
	app.createOrder(t, user.ID, models.StatusPending)

	w := app.do("PUT", "/api/order/1/payment-status", adminToken, gin.H{
		"payment_status": "refunded",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestGetOrderVisibleToOwnerAndAdmin(t *testing.T) {
	app := newTestApp(t)
	owner, ownerToken := app.createUser(t, "owner@example.com", models.RoleUser, true)
	_, otherToken := app.createUser(t, "other@example.com", models.RoleUser, true)
	_, adminToken := app.createUser(t, "a@example.com", models.RoleAdmin, true)
	app.createOrder(t, owner.ID, models.StatusPending)

	assert.Equal(t, http.StatusOK, app.do("GET", "/api/order/1", ownerToken, nil).Code)
	assert.Equal(t, http.StatusForbidden, app.do("GET", "/api/order/1", otherToken, nil).Code)
	assert.Equal(t, http.StatusOK, app.do("GET", "/api/order/1", adminToken, nil).Code)
}

func TestMyOrdersSurfacesStorageFailure(t *testing.T) {
	app := newTestApp(t)
	_, token := app.createUser(t, "u@example.com", models.RoleUser, true)

	require.NoError(t, app.db.Migrator().DropTable(&models.Order{}))

	w := app.do("GET", "/api/order/my-orders", token, nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), `"kind":"storage_error"`)
}

func TestCustomizationOptionsOnlyInStock(t *testing.T) {
	app := newTestApp(t)
	inStock := models.InventoryItem{
		Name: "Thin Crust", Category: models.StockBase,
		CurrentStock: 10, Threshold: 2, Unit: models.UnitPieces, IsAvailable: true,
	}
	outOfStock := models.InventoryItem{
		Name: "Cheese Burst", Category: models.StockBase,
		CurrentStock: 0, Threshold: 2, Unit: models.UnitPieces, IsAvailable: true,
	}
	require.NoError(t, app.db.Create(&inStock).Error)
	require.NoError(t, app.db.Create(&outOfStock).Error)

	w := app.do("GET", "/api/pizza/customization/options", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Bases []models.InventoryItem `json:"bases"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Bases, 1)
	assert.Equal(t, "Thin Crust", resp.Bases[0].Name)
}
