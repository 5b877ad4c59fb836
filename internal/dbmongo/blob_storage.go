package dbmongo

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/gridfs"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// BlobStorage stores media blobs in GridFS, one GridFS bucket per named
// storage bucket. Keys returned to callers are "<bucket>/<objectID hex>".
type BlobStorage struct {
	client *MongoClient
	// Base URL prepended to keys when building public URLs
	publicBaseURL string

	mu      sync.Mutex
	buckets map[string]*gridfs.Bucket
}

func NewBlobStorage(client *MongoClient, publicBaseURL string) *BlobStorage {
	return &BlobStorage{
		client:        client,
		publicBaseURL: publicBaseURL,
		buckets:       make(map[string]*gridfs.Bucket),
	}
}

// BlobInfo describes one stored blob.
type BlobInfo struct {
	Key        string    `json:"key"`
	PublicURL  string    `json:"public_url"`
	Filename   string    `json:"filename"`
	Size       int64     `json:"size"`
	MimeType   string    `json:"mime_type"`
	UploadedBy string    `json:"uploaded_by"`
	UploadedAt time.Time `json:"uploaded_at"`
}

func (bs *BlobStorage) Upload(ctx context.Context, bucket, filename, mimeType, uploaderID string, content io.Reader) (*BlobInfo, error) {
	gb, err := bs.bucket(bucket)
	if err != nil {
		return nil, err
	}

	metadata := bson.M{
		"mime_type":   mimeType,
		"uploaded_by": uploaderID,
		"uploaded_at": time.Now(),
	}

	opts := options.GridFSUpload().SetMetadata(metadata)
	stream, err := gb.OpenUploadStream(filename, opts)
	if err != nil {
		return nil, fmt.Errorf("upload failed: %w", err)
	}
	defer stream.Close()

	size, err := io.Copy(stream, content)
	if err != nil {
		return nil, fmt.Errorf("file copy failed: %w", err)
	}

	key := bucket + "/" + stream.FileID.(primitive.ObjectID).Hex()
	return &BlobInfo{
		Key:        key,
		PublicURL:  bs.PublicURL(key),
		Filename:   filename,
		Size:       size,
		MimeType:   mimeType,
		UploadedBy: uploaderID,
		UploadedAt: time.Now(),
	}, nil
}

func (bs *BlobStorage) Download(ctx context.Context, key string) (io.Reader, *BlobInfo, error) {
	bucket, objectID, err := bs.parseKey(key)
	if err != nil {
		return nil, nil, err
	}
	gb, err := bs.bucket(bucket)
	if err != nil {
		return nil, nil, err
	}

	stream, err := gb.OpenDownloadStream(objectID)
	if err != nil {
		return nil, nil, fmt.Errorf("download failed: %w", err)
	}

	fileInfo := stream.GetFile()
	var metadata bson.M
	if fileInfo.Metadata != nil {
		bson.Unmarshal(fileInfo.Metadata, &metadata)
	}

	info := &BlobInfo{
		Key:        key,
		PublicURL:  bs.PublicURL(key),
		Filename:   fileInfo.Name,
		Size:       fileInfo.Length,
		MimeType:   metadataString(metadata, "mime_type"),
		UploadedBy: metadataString(metadata, "uploaded_by"),
		UploadedAt: fileInfo.UploadDate,
	}
	return stream, info, nil
}

func (bs *BlobStorage) Remove(ctx context.Context, key string) error {
	bucket, objectID, err := bs.parseKey(key)
	if err != nil {
		return err
	}
	gb, err := bs.bucket(bucket)
	if err != nil {
		return err
	}
	return gb.Delete(objectID)
}

// PublicURL builds the externally reachable URL for a storage key.
func (bs *BlobStorage) PublicURL(key string) string {
	return bs.publicBaseURL + key
}

func (bs *BlobStorage) bucket(name string) (*gridfs.Bucket, error) {
	bs.mu.Lock()
	defer bs.mu.Unlock()

	if b, ok := bs.buckets[name]; ok {
		return b, nil
	}
	b, err := gridfs.NewBucket(bs.client.Database, options.GridFSBucket().SetName(name))
	if err != nil {
		return nil, fmt.Errorf("failed to create GridFS bucket %q: %w", name, err)
	}
	bs.buckets[name] = b
	return b, nil
}

func (bs *BlobStorage) parseKey(key string) (string, primitive.ObjectID, error) {
	bucket, hex, ok := strings.Cut(key, "/")
	if !ok {
		return "", primitive.NilObjectID, fmt.Errorf("invalid storage key %q", key)
	}
	objectID, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return "", primitive.NilObjectID, fmt.Errorf("invalid storage key %q: %w", key, err)
	}
	return bucket, objectID, nil
}

func metadataString(m bson.M, key string) string {
	if m == nil {
		return ""
	}
	if val, ok := m[key]; ok {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return ""
}
