package dbmysql

import (
	"time"
)

type GroupPrivacy string

const (
	GroupPublic  GroupPrivacy = "public"
	GroupPrivate GroupPrivacy = "private"
	GroupSecret  GroupPrivacy = "secret"
)

type GroupRole string

const (
	RoleOwner     GroupRole = "owner"
	RoleAdmin     GroupRole = "admin"
	RoleModerator GroupRole = "moderator"
	RoleMember    GroupRole = "member"
)

// CanManageMembers reports whether the role may change member roles or
// remove members.
func (r GroupRole) CanManageMembers() bool {
	return r == RoleOwner || r == RoleAdmin
}

type Group struct {
	ID           string       `gorm:"primaryKey;column:id;size:36" json:"id"`
	OwnerID      string       `gorm:"column:owner_id;size:36;not null;index" json:"owner_id"`
	Name         string       `gorm:"column:name;size:255;not null" json:"name"`
	Handle       *string      `gorm:"column:handle;size:50;uniqueIndex" json:"handle,omitempty"`
	Description  *string      `gorm:"column:description;type:text" json:"description,omitempty"`
	CoverMediaID *string      `gorm:"column:cover_media_id;size:36" json:"cover_media_id,omitempty"`
	Privacy      GroupPrivacy `gorm:"column:privacy;type:enum('public','private','secret');default:'public'" json:"privacy"`
	Settings     JSONMap      `gorm:"column:settings;type:json" json:"settings"`
	CreatedAt    time.Time    `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

type GroupMember struct {
	GroupID  string    `gorm:"primaryKey;column:group_id;size:36" json:"group_id"`
	UserID   string    `gorm:"primaryKey;column:user_id;size:36" json:"user_id"`
	Role     GroupRole `gorm:"column:role;type:enum('owner','admin','moderator','member');default:'member'" json:"role"`
	JoinedAt time.Time `gorm:"column:joined_at;autoCreateTime" json:"joined_at"`
}
