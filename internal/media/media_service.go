package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"connectrealm/internal/dbmongo"
	"connectrealm/internal/dbmysql"
	"connectrealm/internal/store"
)

// mediaBucket is the GridFS bucket all user uploads land in.
const mediaBucket = "media"

const maxUploadBytes = 100 << 20

type UploadInput struct {
	Filename string
	MimeType string
	Size     int64
	Width    *int
	Height   *int
	Duration *int
	Content  io.Reader
}

type MediaService interface {
	Upload(ctx context.Context, ownerID string, in UploadInput) (*dbmysql.Media, error)
	Get(ctx context.Context, mediaID string) (*dbmysql.Media, error)
	ForPost(ctx context.Context, postID string) ([]*dbmysql.Media, error)
	AttachToPost(ctx context.Context, ownerID, mediaID, postID string) error
	Delete(ctx context.Context, ownerID, mediaID string) error
	// RecordRenditions stores transcoder output for a video and marks the
	// media done.
	RecordRenditions(ctx context.Context, mediaID string, renditions, thumbnails dbmysql.JSONMap) error
	MarkFailed(ctx context.Context, mediaID string) error
}

type mediaService struct {
	media MediaRepository
	blobs *dbmongo.BlobStorage
}

func NewMediaService(media MediaRepository, blobs *dbmongo.BlobStorage) MediaService {
	return &mediaService{media: media, blobs: blobs}
}

func (s *mediaService) Upload(ctx context.Context, ownerID string, in UploadInput) (*dbmysql.Media, error) {
	if ownerID == "" {
		return nil, store.ErrAuthRequired
	}
	if in.Content == nil {
		return nil, errors.New("upload content is required")
	}
	if in.Size > maxUploadBytes {
		return nil, fmt.Errorf("%w: upload exceeds %d bytes", store.ErrInvalidOperation, maxUploadBytes)
	}

	blob, err := s.blobs.Upload(ctx, mediaBucket, in.Filename, in.MimeType, ownerID, in.Content)
	if err != nil {
		return nil, store.Classify(err)
	}

	url := s.blobs.PublicURL(blob.Key)
	mediaType := typeFromMime(in.MimeType)
	media := &dbmysql.Media{
		ID:              uuid.New().String(),
		OwnerID:         ownerID,
		StorageKey:      blob.Key,
		URL:             &url,
		Type:            mediaType,
		Width:           in.Width,
		Height:          in.Height,
		DurationSeconds: in.Duration,
		SizeBytes:       &blob.Size,
		Meta:            dbmysql.JSONMap{"filename": in.Filename, "mime_type": in.MimeType},
		Status:          dbmysql.TranscodingPending,
	}
	// Only videos go through the transcoder.
	if mediaType != dbmysql.MediaVideo {
		media.Status = dbmysql.TranscodingDone
	}

	if err := s.media.Create(ctx, media); err != nil {
		// The row failed, drop the orphaned blob.
		_ = s.blobs.Remove(ctx, blob.Key)
		return nil, store.Classify(err)
	}

	if mediaType == dbmysql.MediaVideo {
		video := &dbmysql.Video{
			ID:      uuid.New().String(),
			MediaID: media.ID,
			Status:  dbmysql.TranscodingPending,
		}
		if err := s.media.CreateVideo(ctx, video); err != nil {
			return nil, store.Classify(err)
		}
	}
	return media, nil
}

func (s *mediaService) Get(ctx context.Context, mediaID string) (*dbmysql.Media, error) {
	media, err := s.media.ByID(ctx, mediaID)
	if err != nil {
		return nil, store.Classify(err)
	}
	return media, nil
}

func (s *mediaService) ForPost(ctx context.Context, postID string) ([]*dbmysql.Media, error) {
	media, err := s.media.ByPost(ctx, postID)
	if err != nil {
		return nil, store.Classify(err)
	}
	if media == nil {
		media = []*dbmysql.Media{}
	}
	return media, nil
}

func (s *mediaService) AttachToPost(ctx context.Context, ownerID, mediaID, postID string) error {
	if ownerID == "" {
		return store.ErrAuthRequired
	}

	affected, err := s.media.AttachToPost(ctx, mediaID, ownerID, postID)
	if err != nil {
		return store.Classify(err)
	}
	if affected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *mediaService) Delete(ctx context.Context, ownerID, mediaID string) error {
	if ownerID == "" {
		return store.ErrAuthRequired
	}

	media, err := s.media.ByID(ctx, mediaID)
	if err != nil {
		return store.Classify(err)
	}
	if media.OwnerID != ownerID {
		return fmt.Errorf("%w: media belongs to another user", store.ErrUnauthorized)
	}

	deleted, err := s.media.DeleteOwned(ctx, mediaID, ownerID)
	if err != nil {
		return store.Classify(err)
	}
	if deleted == 0 {
		return store.ErrNotFound
	}
	return store.Classify(s.blobs.Remove(ctx, media.StorageKey))
}

func (s *mediaService) RecordRenditions(ctx context.Context, mediaID string, renditions, thumbnails dbmysql.JSONMap) error {
	err := s.media.UpdateVideo(ctx, mediaID, map[string]interface{}{
		"renditions":         renditions,
		"thumbnails":         thumbnails,
		"transcoding_status": dbmysql.TranscodingDone,
	})
	if err != nil {
		return store.Classify(err)
	}
	return store.Classify(s.media.SetStatus(ctx, mediaID, dbmysql.TranscodingDone))
}

func (s *mediaService) MarkFailed(ctx context.Context, mediaID string) error {
	if err := s.media.UpdateVideo(ctx, mediaID, map[string]interface{}{
		"transcoding_status": dbmysql.TranscodingFailed,
	}); err != nil && !store.IsNotFound(store.Classify(err)) {
		return store.Classify(err)
	}
	return store.Classify(s.media.SetStatus(ctx, mediaID, dbmysql.TranscodingFailed))
}

func typeFromMime(mime string) dbmysql.MediaType {
	switch {
	case strings.HasPrefix(mime, "image/"):
		return dbmysql.MediaImage
	case strings.HasPrefix(mime, "video/"):
		return dbmysql.MediaVideo
	case strings.HasPrefix(mime, "audio/"):
		return dbmysql.MediaAudio
	default:
		return dbmysql.MediaOther
	}
}
