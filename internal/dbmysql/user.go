package dbmysql

import (
	"time"
)

type ProfileType string

const (
	ProfilePersonal     ProfileType = "personal"
	ProfileProfessional ProfileType = "professional"
	ProfileCompany      ProfileType = "company"
)

type User struct {
	ID           string      `gorm:"primaryKey;column:id;size:36" json:"id"`
	Email        *string     `gorm:"column:email;size:255;uniqueIndex" json:"email,omitempty"`
	Phone        *string     `gorm:"column:phone;size:20" json:"phone,omitempty"`
	PasswordHash string      `gorm:"column:password_hash;size:255;not null" json:"-"`
	Handle       string      `gorm:"column:handle;uniqueIndex;size:50;not null" json:"handle"`
	DisplayName  *string     `gorm:"column:display_name;size:100" json:"display_name,omitempty"`
	AvatarURL    *string     `gorm:"column:avatar_url;size:512" json:"avatar_url,omitempty"`
	ProfileType  ProfileType `gorm:"column:profile_type;type:enum('personal','professional','company');default:'personal'" json:"profile_type"`
	IsVerified   bool        `gorm:"column:is_verified;default:false" json:"is_verified"`
	CreatedAt    time.Time   `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	LastSeenAt   *time.Time  `gorm:"column:last_seen_at" json:"last_seen_at,omitempty"`
	Metadata     JSONMap     `gorm:"column:metadata;type:json" json:"metadata"`
}

// Profile is the one-to-one long-form extension of User.
type Profile struct {
	UserID         string     `gorm:"primaryKey;column:user_id;size:36" json:"user_id"`
	Headline       *string    `gorm:"column:headline;size:255" json:"headline,omitempty"`
	Bio            *string    `gorm:"column:bio;type:text" json:"bio,omitempty"`
	Location       *string    `gorm:"column:location;size:255" json:"location,omitempty"`
	Website        *string    `gorm:"column:website;size:512" json:"website,omitempty"`
	Skills         StringList `gorm:"column:skills;type:json" json:"skills"`
	Education      JSONMap    `gorm:"column:education;type:json" json:"education"`
	Experience     JSONMap    `gorm:"column:experience;type:json" json:"experience"`
	PortfolioLinks StringList `gorm:"column:portfolio_links;type:json" json:"portfolio_links"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}
