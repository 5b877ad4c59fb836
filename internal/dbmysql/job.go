package dbmysql

import (
	"time"
)

type Company struct {
	ID           string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	Name         string    `gorm:"column:name;size:255;not null" json:"name"`
	Handle       *string   `gorm:"column:handle;size:50;uniqueIndex" json:"handle,omitempty"`
	Description  *string   `gorm:"column:description;type:text" json:"description,omitempty"`
	Website      *string   `gorm:"column:website;size:512" json:"website,omitempty"`
	LogoMediaID  *string   `gorm:"column:logo_media_id;size:36" json:"logo_media_id,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

type Job struct {
	ID             string     `gorm:"primaryKey;column:id;size:36" json:"id"`
	CompanyID      *string    `gorm:"column:company_id;size:36;index" json:"company_id,omitempty"`
	PosterID       *string    `gorm:"column:poster_id;size:36" json:"poster_id,omitempty"`
	Title          string     `gorm:"column:title;size:255;not null" json:"title"`
	Description    *string    `gorm:"column:description;type:text" json:"description,omitempty"`
	Location       *string    `gorm:"column:location;size:255" json:"location,omitempty"`
	EmploymentType *string    `gorm:"column:employment_type;size:50" json:"employment_type,omitempty"`
	SalaryRange    JSONMap    `gorm:"column:salary_range;type:json" json:"salary_range"`
	Requirements   StringList `gorm:"column:requirements;type:json" json:"requirements"`
	CreatedAt      time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ExpiresAt      *time.Time `gorm:"column:expires_at;index" json:"expires_at,omitempty"`
}
