package models

import "time"

type OrderStatus string
type PaymentStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // placed, awaiting confirmation
	OrderStatusPaid      OrderStatus = "paid"      // payment settled
	OrderStatusShipped   OrderStatus = "shipped"   // out for delivery
	OrderStatusDelivered OrderStatus = "delivered" // customer received the items
	OrderStatusReturned  OrderStatus = "returned"  // customer returned the items
	OrderStatusCancelled OrderStatus = "cancelled" // cancelled before shipping

	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusPaid     PaymentStatus = "paid"
	PaymentStatusFailed   PaymentStatus = "failed"
	PaymentStatusRefunded PaymentStatus = "refunded"
)

type Order struct {
	ID                   uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID               uint          `gorm:"index;not null" json:"user_id"`
	User                 *User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Items                []OrderItem   `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	Total                float64       `json:"total"`
	Status               OrderStatus   `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	PaymentMethod        string        `json:"payment_method"`
	PaymentStatus        PaymentStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"payment_status"`
	PaidAt               *time.Time    `json:"paid_at"`
	ShippingTrackingCode string        `json:"shipping_tracking_code"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// OrderItem snapshots the product price at order time; it never tracks the
// current Product.Price.
type OrderItem struct {
	ID        uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID   uint     `gorm:"index;not null" json:"order_id"`
	ProductID uint     `gorm:"index;not null" json:"product_id"`
	Product   *Product `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	Quantity  int      `gorm:"not null" json:"quantity"`
	Price     float64  `gorm:"not null" json:"price"`
}
