package dbmysql

import (
	"time"
)

// Verse is a standalone long-form content item, separate from Post, with
// its own realtime channel.
type Verse struct {
	ID        string     `gorm:"primaryKey;column:id;size:36" json:"id"`
	UserID    string     `gorm:"column:user_id;size:36;not null;index" json:"user_id"`
	Title     string     `gorm:"column:title;size:255;not null" json:"title"`
	Content   string     `gorm:"column:content;type:text;not null" json:"content"`
	IsPublic  bool       `gorm:"column:is_public;default:true" json:"is_public"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}
