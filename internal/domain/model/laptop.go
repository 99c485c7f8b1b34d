package model

import "time"

type Laptop struct {
	ID            int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string    `gorm:"type:varchar(255);not null" json:"name"`
	Brand         string    `gorm:"type:varchar(255);not null" json:"brand"`
	Price         int64     `gorm:"not null" json:"price"`
	OriginalPrice int64     `gorm:"not null" json:"originalPrice"`
	Image         string    `gorm:"type:text;not null" json:"image"`
	Description   string    `gorm:"type:text" json:"description"`
	Processor     string    `gorm:"type:varchar(255);not null" json:"processor"`
	RAM           string    `gorm:"column:ram;type:varchar(100);not null" json:"ram"`
	Storage       string    `gorm:"type:varchar(100);not null" json:"storage"`
	Display       string    `gorm:"type:varchar(255);not null" json:"display"`
	OS            string    `gorm:"column:os;type:varchar(100);not null" json:"os"`
	InStock       bool      `gorm:"not null;default:true" json:"inStock"`
	IsNew         bool      `gorm:"not null;default:false" json:"isNew"`
	Rating        float64   `gorm:"not null;default:4.0" json:"rating"`
	Reviews       int64     `gorm:"not null;default:0" json:"reviews"`
	Discount      int64     `gorm:"not null;default:0" json:"discount"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updatedAt"`
}
