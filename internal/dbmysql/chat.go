package dbmysql

import (
	"database/sql/driver"
	"encoding/json"
	"time"
)

type Thread struct {
	ID        string    `gorm:"primaryKey;column:id;size:36" json:"id"`
	IsGroup   bool      `gorm:"column:is_group;default:false" json:"is_group"`
	Name      *string   `gorm:"column:name;size:255" json:"name,omitempty"`
	Metadata  JSONMap   `gorm:"column:metadata;type:json" json:"metadata"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// ThreadMember carries the per-member read horizon; unread counts are
// derived from LastReadAt, never stored.
type ThreadMember struct {
	ThreadID   string     `gorm:"primaryKey;column:thread_id;size:36" json:"thread_id"`
	UserID     string     `gorm:"primaryKey;column:user_id;size:36;index" json:"user_id"`
	JoinedAt   time.Time  `gorm:"column:joined_at;autoCreateTime" json:"joined_at"`
	LastReadAt *time.Time `gorm:"column:last_read_at" json:"last_read_at,omitempty"`
}

// MessageContent is the structured message payload.
type MessageContent struct {
	Text        string                 `json:"text"`
	Attachments []string               `json:"attachments,omitempty"`
	Meta        map[string]interface{} `json:"meta,omitempty"`
}

func (c MessageContent) Value() (driver.Value, error) {
	b, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (c *MessageContent) Scan(src interface{}) error {
	if src == nil {
		*c = MessageContent{}
		return nil
	}
	b, err := jsonBytes(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, c)
}

type Message struct {
	ID        string         `gorm:"primaryKey;column:id;size:36" json:"id"`
	ThreadID  string         `gorm:"column:thread_id;size:36;not null;index" json:"thread_id"`
	SenderID  string         `gorm:"column:sender_id;size:36;not null" json:"sender_id"`
	Content   MessageContent `gorm:"column:content;type:json" json:"content"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime;index" json:"created_at"`
	EditedAt  *time.Time     `gorm:"column:edited_at" json:"edited_at,omitempty"`
}
