package model

import "time"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "Pending"
	OrderStatusProcessing OrderStatus = "Processing"
	OrderStatusShipped    OrderStatus = "Shipped"
	OrderStatusDelivered  OrderStatus = "Delivered"
	OrderStatusCancelled  OrderStatus = "Cancelled"
)

type PaymentMethod string

const (
	PaymentMethodCOD    PaymentMethod = "cod"
	PaymentMethodOnline PaymentMethod = "online"
)

// 注文ヘッダ。IDはクライアント採番の不透明文字列（例：ORD-...）
type Order struct {
	ID                string        `gorm:"type:varchar(255);primaryKey" json:"id"`
	UserID            int64         `gorm:"not null;index" json:"userId"`
	UserName          string        `gorm:"type:varchar(255);not null" json:"userName"`
	UserEmail         string        `gorm:"type:varchar(255);not null" json:"userEmail"`
	PhoneNumber       string        `gorm:"type:varchar(50);not null" json:"phoneNumber"`
	DeliveryAddress   string        `gorm:"type:text;not null" json:"deliveryAddress"`
	PaymentMethod     PaymentMethod `gorm:"type:varchar(20);not null" json:"paymentMethod"`
	AdditionalNotes   string        `gorm:"type:text" json:"additionalNotes"`
	TotalAmount       int64         `gorm:"not null" json:"totalAmount"`
	Status            OrderStatus   `gorm:"type:varchar(20);not null;default:'Pending';index" json:"status"`
	EstimatedDelivery time.Time     `gorm:"not null" json:"estimatedDelivery"`
	OrderDate         time.Time     `gorm:"not null" json:"orderDate"`
	CreatedAt         time.Time     `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt         time.Time     `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
