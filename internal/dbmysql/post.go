package dbmysql

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type PostVisibility string

const (
	VisibilityPublic    PostVisibility = "public"
	VisibilityFollowers PostVisibility = "followers"
	VisibilityPrivate   PostVisibility = "private"
	VisibilityGroups    PostVisibility = "groups"
)

// PostContent is the structured payload of a post: text, tag list, and
// references to attached media rows.
type PostContent struct {
	Text     string   `json:"text"`
	Tags     []string `json:"tags,omitempty"`
	MediaIDs []string `json:"media_ids,omitempty"`
}

func (c PostContent) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *PostContent) Scan(src interface{}) error {
	if src == nil {
		*c = PostContent{}
		return nil
	}
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, c)
}

type Post struct {
	ID         string         `gorm:"primaryKey;column:id;size:36" json:"id"`
	UserID     string         `gorm:"column:user_id;size:36;not null;index" json:"user_id"`
	Caption    *string        `gorm:"column:caption;type:text" json:"caption,omitempty"`
	Content    PostContent    `gorm:"column:content;type:json" json:"content"`
	Visibility PostVisibility `gorm:"column:visibility;type:enum('public','followers','private','groups');default:'public'" json:"visibility"`
	IsPinned   bool           `gorm:"column:is_pinned;default:false" json:"is_pinned"`

	// Denormalized counters, maintained only by the social service.
	LikesCount    int64 `gorm:"column:likes_count;default:0" json:"likes_count"`
	CommentsCount int64 `gorm:"column:comments_count;default:0" json:"comments_count"`

	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	UpdatedAt *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`
}
