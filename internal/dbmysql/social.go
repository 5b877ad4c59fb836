package dbmysql

import (
	"time"
)

// Follow is a directed edge follower -> followee, unique per ordered pair.
type Follow struct {
	FollowerID string    `gorm:"primaryKey;column:follower_id;size:36" json:"follower_id"`
	FolloweeID string    `gorm:"primaryKey;column:followee_id;size:36" json:"followee_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// Like is an edge from a user to a polymorphic target, unique per
// (user, target_type, target_id).
type Like struct {
	ID         string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	UserID     string    `gorm:"column:user_id;size:36;not null;index:idx_like_target,unique" json:"user_id"`
	TargetType string    `gorm:"column:target_type;size:20;not null;index:idx_like_target,unique" json:"target_type"`
	TargetID   string    `gorm:"column:target_id;size:36;not null;index:idx_like_target,unique" json:"target_id"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

type Comment struct {
	ID        string     `gorm:"primaryKey;column:id;size:36" json:"id"`
	PostID    string     `gorm:"column:post_id;size:36;not null;index" json:"post_id"`
	UserID    string     `gorm:"column:user_id;size:36;not null" json:"user_id"`
	ParentID  *string    `gorm:"column:parent_id;size:36" json:"parent_id,omitempty"`
	Content   string     `gorm:"column:content;type:text;not null" json:"content"`
	Metadata  JSONMap    `gorm:"column:metadata;type:json" json:"metadata"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}
