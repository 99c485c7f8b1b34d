package model

import "time"

// 注文時点のラップトップ名・画像・価格のスナップショット。
// カタログが後で変わっても過去の注文は変わらない。
type OrderItem struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     string    `gorm:"type:varchar(255);not null;index" json:"orderId"`
	LaptopID    int64     `gorm:"not null;index" json:"laptopId"`
	LaptopName  string    `gorm:"type:varchar(255);not null" json:"laptopName"`
	LaptopImage string    `gorm:"type:text;not null" json:"laptopImage"`
	Quantity    int64     `gorm:"not null;default:1" json:"quantity"`
	Price       int64     `gorm:"not null" json:"price"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}
