package verse

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"connectrealm/internal/dbmysql"
	"connectrealm/internal/realtime"
	"connectrealm/internal/store"
)

// VersesCollection is the realtime topic verse inserts and updates are
// published on.
const VersesCollection = "verses"

type VersePage struct {
	Verses  []*dbmysql.Verse `json:"verses"`
	Total   int64            `json:"total"`
	HasMore bool             `json:"has_more"`
}

type VerseUpdate struct {
	Title    *string
	Content  *string
	IsPublic *bool
}

type VerseService interface {
	CreateVerse(ctx context.Context, userID, title, content string, isPublic bool) (*dbmysql.Verse, error)
	// GetVerse distinguishes a verse that does not exist from one the viewer
	// may not read: the latter is ErrAccessDenied.
	GetVerse(ctx context.Context, viewerID, verseID string) (*dbmysql.Verse, error)
	ListVerses(ctx context.Context, viewerID string, page store.Page) (*VersePage, error)
	UserVerses(ctx context.Context, viewerID, userID string) ([]*dbmysql.Verse, error)
	UpdateVerse(ctx context.Context, userID, verseID string, update VerseUpdate) (*dbmysql.Verse, error)
	DeleteVerse(ctx context.Context, userID, verseID string) error
}

type verseService struct {
	verses VerseRepository
	broker *realtime.Broker
}

func NewVerseService(verses VerseRepository, broker *realtime.Broker) VerseService {
	return &verseService{verses: verses, broker: broker}
}

func (s *verseService) CreateVerse(ctx context.Context, userID, title, content string, isPublic bool) (*dbmysql.Verse, error) {
	if userID == "" {
		return nil, store.ErrAuthRequired
	}
	if strings.TrimSpace(title) == "" {
		return nil, errors.New("verse title cannot be empty")
	}

	verse := &dbmysql.Verse{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Content:   content,
		IsPublic:  isPublic,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.verses.Create(ctx, verse); err != nil {
		return nil, store.Classify(err)
	}

	s.broker.Publish(realtime.Event{
		Collection: VersesCollection,
		Kind:       realtime.EventInsert,
		Row:        verse,
	})
	return verse, nil
}

func (s *verseService) GetVerse(ctx context.Context, viewerID, verseID string) (*dbmysql.Verse, error) {
	verse, err := s.verses.ByID(ctx, verseID)
	if err != nil {
		return nil, store.Classify(err)
	}
	if !verse.IsPublic && verse.UserID != viewerID {
		return nil, fmt.Errorf("%w: verse is private", store.ErrAccessDenied)
	}
	return verse, nil
}

func (s *verseService) ListVerses(ctx context.Context, viewerID string, page store.Page) (*VersePage, error) {
	verses, total, err := s.verses.Visible(ctx, viewerID, page)
	if err != nil {
		return nil, store.Classify(err)
	}
	if verses == nil {
		verses = []*dbmysql.Verse{}
	}
	return &VersePage{Verses: verses, Total: total, HasMore: page.HasMore(total)}, nil
}

func (s *verseService) UserVerses(ctx context.Context, viewerID, userID string) ([]*dbmysql.Verse, error) {
	verses, err := s.verses.ByUser(ctx, userID)
	if err != nil {
		return nil, store.Classify(err)
	}

	visible := make([]*dbmysql.Verse, 0, len(verses))
	for _, v := range verses {
		if v.IsPublic || v.UserID == viewerID {
			visible = append(visible, v)
		}
	}
	return visible, nil
}

func (s *verseService) UpdateVerse(ctx context.Context, userID, verseID string, update VerseUpdate) (*dbmysql.Verse, error) {
	if userID == "" {
		return nil, store.ErrAuthRequired
	}

	fields := map[string]interface{}{"updated_at": time.Now().UTC()}
	if update.Title != nil {
		fields["title"] = *update.Title
	}
	if update.Content != nil {
		fields["content"] = *update.Content
	}
	if update.IsPublic != nil {
		fields["is_public"] = *update.IsPublic
	}

	affected, err := s.verses.UpdateOwned(ctx, verseID, userID, fields)
	if err != nil {
		return nil, store.Classify(err)
	}
	if affected == 0 {
		return nil, store.ErrNotFound
	}

	verse, err := s.verses.ByID(ctx, verseID)
	if err != nil {
		return nil, store.Classify(err)
	}

	s.broker.Publish(realtime.Event{
		Collection: VersesCollection,
		Kind:       realtime.EventUpdate,
		Row:        verse,
	})
	return verse, nil
}

func (s *verseService) DeleteVerse(ctx context.Context, userID, verseID string) error {
	if userID == "" {
		return store.ErrAuthRequired
	}

	deleted, err := s.verses.DeleteOwned(ctx, verseID, userID)
	if err != nil {
		return store.Classify(err)
	}
	if deleted == 0 {
		return store.ErrNotFound
	}
	return nil
}
