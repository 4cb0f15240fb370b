package models

import "time"

// OrderStatus represents all possible states of an order
type OrderStatus string

const (
	StatusPending        OrderStatus = "pending"
	StatusConfirmed      OrderStatus = "confirmed"
	StatusInKitchen      OrderStatus = "in-kitchen"
	StatusOutForDelivery OrderStatus = "out-for-delivery"
	StatusDelivered      OrderStatus = "delivered"
	StatusCancelled      OrderStatus = "cancelled"
)

// PaymentStatus tracks the payment lifecycle, independent of order status
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// PaymentMethod identifies how the customer pays
type PaymentMethod string

const (
	MethodRazorpay       PaymentMethod = "razorpay"
	MethodCashOnDelivery PaymentMethod = "cod"
)

// ValidPaymentMethod reports whether s is an accepted payment method.
func ValidPaymentMethod(s string) bool {
	switch PaymentMethod(s) {
	case MethodRazorpay, MethodCashOnDelivery:
		return true
	}
	return false
}

// Selection is a customization choice with its price snapshotted at order time,
// independent of the live catalog price.
type Selection struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// OrderAddon is one vegetable or meat add-on on an order line
type OrderAddon struct {
	ID          uint          `json:"id" gorm:"primaryKey"`
	OrderItemID uint          `json:"order_item_id" gorm:"not null"`
	Category    StockCategory `json:"category" gorm:"not null"`
	Name        string        `json:"name" gorm:"not null"`
	Price       float64       `json:"price"`
}

type OrderItem struct {
	ID       uint         `json:"id" gorm:"primaryKey"`
	OrderID  uint         `json:"order_id" gorm:"not null"`
	PizzaID  uint         `json:"pizza_id" gorm:"not null"`
	Pizza    Pizza        `json:"pizza,omitempty" gorm:"foreignKey:PizzaID"`
	Base     Selection    `json:"base" gorm:"embedded;embeddedPrefix:base_"`
	Sauce    Selection    `json:"sauce" gorm:"embedded;embeddedPrefix:sauce_"`
	Cheese   Selection    `json:"cheese" gorm:"embedded;embeddedPrefix:cheese_"`
	Addons   []OrderAddon `json:"addons,omitempty" gorm:"foreignKey:OrderItemID"`
	Quantity int          `json:"quantity" gorm:"not null"`
	Price    float64      `json:"price" gorm:"not null"` // snapshot line price at time of order
}

// DeliveryAddress is snapshotted onto the order at placement time
type DeliveryAddress struct {
	Street       string `json:"street"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Instructions string `json:"instructions"`
}

type Order struct {
	ID                    uint            `json:"id" gorm:"primaryKey"`
	OrderNumber           string          `json:"order_number" gorm:"uniqueIndex;not null"`
	UserID                uint            `json:"user_id" gorm:"not null"`
	User                  User            `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items                 []OrderItem     `json:"items,omitempty" gorm:"foreignKey:OrderID"`
	Subtotal              float64         `json:"subtotal"`
	Tax                   float64         `json:"tax"`
	DeliveryFee           float64         `json:"delivery_fee"`
	Total                 float64         `json:"total"`
	Status                OrderStatus     `json:"status" gorm:"not null;default:'pending'"`
	PaymentStatus         PaymentStatus   `json:"payment_status" gorm:"not null;default:'pending'"`
	PaymentMethod         PaymentMethod   `json:"payment_method" gorm:"not null"`
	GatewayOrderID        string          `json:"gateway_order_id,omitempty"`
	GatewayPaymentID      string          `json:"gateway_payment_id,omitempty"`
	DeliveryAddress       DeliveryAddress `json:"delivery_address" gorm:"embedded;embeddedPrefix:delivery_"`
	SpecialInstructions   string          `json:"special_instructions"`
	EstimatedDeliveryTime *time.Time      `json:"estimated_delivery_time"`
	ActualDeliveryTime    *time.Time      `json:"actual_delivery_time"`
	CreatedAt             time.Time       `json:"created_at"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
