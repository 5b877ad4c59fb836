package dbmysql

import (
	"time"
)

type MediaType string

const (
	MediaImage     MediaType = "image"
	MediaVideo     MediaType = "video"
	MediaAudio     MediaType = "audio"
	MediaThumbnail MediaType = "thumbnail"
	MediaOther     MediaType = "other"
)

type TranscodingStatus string

const (
	TranscodingPending    TranscodingStatus = "pending"
	TranscodingQueued     TranscodingStatus = "queued"
	TranscodingProcessing TranscodingStatus = "processing"
	TranscodingDone       TranscodingStatus = "done"
	TranscodingFailed     TranscodingStatus = "failed"
)

type Media struct {
	ID              string            `gorm:"primaryKey;column:id;size:36" json:"id"`
	OwnerID         string            `gorm:"column:owner_id;size:36;not null;index" json:"owner_id"`
	PostID          *string           `gorm:"column:post_id;size:36;index" json:"post_id,omitempty"`
	StorageKey      string            `gorm:"column:storage_key;size:255;not null" json:"storage_key"`
	URL             *string           `gorm:"column:url;size:512" json:"url,omitempty"`
	Type            MediaType         `gorm:"column:type;type:enum('image','video','audio','thumbnail','other');not null" json:"type"`
	Width           *int              `gorm:"column:width" json:"width,omitempty"`
	Height          *int              `gorm:"column:height" json:"height,omitempty"`
	DurationSeconds *int              `gorm:"column:duration_seconds" json:"duration_seconds,omitempty"`
	SizeBytes       *int64            `gorm:"column:size_bytes" json:"size_bytes,omitempty"`
	Meta            JSONMap           `gorm:"column:meta;type:json" json:"meta"`
	Status          TranscodingStatus `gorm:"column:transcoding_status;type:enum('pending','queued','processing','done','failed');default:'pending'" json:"transcoding_status"`
	CreatedAt       time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

// Video carries the transcoding renditions/thumbnails record for video media.
type Video struct {
	ID         string            `gorm:"primaryKey;column:id;size:36" json:"id"`
	MediaID    string            `gorm:"column:media_id;size:36;not null;uniqueIndex" json:"media_id"`
	Status     TranscodingStatus `gorm:"column:transcoding_status;type:enum('pending','queued','processing','done','failed');default:'pending'" json:"transcoding_status"`
	Renditions JSONMap           `gorm:"column:renditions;type:json" json:"renditions"`
	Thumbnails JSONMap           `gorm:"column:thumbnails;type:json" json:"thumbnails"`
	CreatedAt  time.Time         `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt  *time.Time        `gorm:"column:updated_at" json:"updated_at,omitempty"`
}
