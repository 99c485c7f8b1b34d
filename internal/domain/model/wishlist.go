package model

import "time"

type Wishlist struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_wishlist_user_laptop" json:"userId"`
	LaptopID  int64     `gorm:"not null;uniqueIndex:idx_wishlist_user_laptop" json:"laptopId"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"createdAt"`
}
