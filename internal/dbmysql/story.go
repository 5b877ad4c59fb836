package dbmysql

import (
	"time"
)

type Story struct {
	ID           string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	UserID       string    `gorm:"column:user_id;size:36;not null;index" json:"user_id"`
	MediaID      string    `gorm:"column:media_id;size:36;not null" json:"media_id"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null;index" json:"expires_at"`
	ViewersCount int64     `gorm:"column:viewers_count;default:0" json:"viewers_count"`
	Privacy      JSONMap   `gorm:"column:privacy;type:json" json:"privacy"`
}
